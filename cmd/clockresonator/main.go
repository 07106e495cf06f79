package main

import (
	_ "embed"

	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"github.com/octylFractal/clock-resonator/internal/report"
	"github.com/octylFractal/clock-resonator/internal/store"
	"github.com/octylFractal/clock-resonator/internal/ui"
	"github.com/octylFractal/clock-resonator/internal/updater"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

//go:embed Icon.png
var embeddedIconBytes []byte

var userConfigFilePath string

func setupViper() error {
	viper.SetConfigName("clockresonator")
	viper.SetConfigType("yaml")

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}

	configDir := filepath.Join(configHome, "clockresonator")
	userConfigFilePath = filepath.Join(configDir, "clockresonator.yml")
	viper.SetConfigFile(userConfigFilePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	viper.SetDefault("data_folder", filepath.Join(configDir, "data"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			slog.Info("config file not found, creating one with defaults")
			if err := viper.WriteConfigAs(userConfigFilePath); err != nil {
				return fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func main() {
	os.Setenv("FYNE_SCALE", "auto")
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	go func() {
		if err := updater.SelfUpdate("octylFractal", "clock-resonator"); err != nil {
			slog.Warn("self-update failed", "err", err)
		}
	}()

	a := app.NewWithID("net.octyl.clockresonator")

	iconResource := fyne.NewStaticResource("clockresonator.png", embeddedIconBytes)
	a.SetIcon(iconResource)

	w := a.NewWindow("Clock Resonator")
	w.Resize(fyne.NewSize(500, 700))

	if err := setupViper(); err != nil {
		dialog.ShowError(err, w)
		w.ShowAndRun()
		return
	}

	reporter := report.New(nil)
	reporter.SetHook(func(msg string, err error) {
		fyne.Do(func() {
			dialog.ShowError(fmt.Errorf("%s: %w", msg, err), w)
		})
	})

	storage := store.NewStorage(viper.GetString("data_folder"))
	manager := store.NewManager(storage, reporter, fyne.Do)

	roster := ui.NewRoster(w, manager)
	reports := ui.NewReports(w, manager)
	configUI := ui.NewConfig(w, storage, manager, userConfigFilePath)

	tabs := container.NewAppTabs(
		container.NewTabItem("Tasks", roster.MakeUI()),
		container.NewTabItem("Reports", reports.MakeUI()),
		container.NewTabItem("Config", configUI.MakeUI()),
	)
	w.SetContent(tabs)

	ui.NewWindowRestorer(storage, reporter).Attach("main", w)
	ui.SetupTray(a, w, iconResource, manager)
	ui.CheckVersion(w, storage)

	manager.Initialize()

	// Pending debounced saves must land before the process exits.
	a.Lifecycle().SetOnStopped(func() {
		manager.Flush()
	})

	w.ShowAndRun()
	manager.Flush()
}
