package ui

import (
	"path/filepath"

	"github.com/octylFractal/clock-resonator/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/viper"
)

type Config struct {
	window             fyne.Window
	storage            *store.Storage
	manager            *store.Manager
	userConfigFilePath string
}

func NewConfig(w fyne.Window, s *store.Storage, m *store.Manager, userConfigFilePath string) *Config {
	return &Config{window: w, storage: s, manager: m, userConfigFilePath: userConfigFilePath}
}

func (c *Config) MakeUI() fyne.CanvasObject {
	dataFolder := viper.GetString("data_folder")
	entry := widget.NewEntry()
	entry.SetText(dataFolder)

	browseBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			if uri == nil {
				return
			}
			entry.SetText(uri.Path())
		}, c.window).Show()
	})

	folderContainer := container.NewBorder(nil, nil, nil, browseBtn, entry)

	saveBtn := widget.NewButton("Save Configuration", func() {
		newDataFolder := entry.Text
		if newDataFolder == "" {
			dialog.ShowError(filepath.ErrBadPattern, c.window)
			return
		}

		oldDataFolder := c.storage.BaseDir()

		saveConfig := func() {
			viper.Set("data_folder", newDataFolder)
			err := viper.WriteConfigAs(c.userConfigFilePath)
			if err != nil {
				dialog.ShowError(err, c.window)
				return
			}
			dialog.ShowInformation("Success", "Configuration saved.", c.window)
		}

		if newDataFolder != oldDataFolder {
			// The pending debounce must not race the move.
			c.manager.Flush()

			var d dialog.Dialog

			moveBtn := widget.NewButton("Move existing data", func() {
				d.Hide()
				if err := c.storage.MoveData(newDataFolder); err != nil {
					dialog.ShowError(err, c.window)
					return
				}
				saveConfig()
			})

			freshBtn := widget.NewButton("Start fresh", func() {
				d.Hide()
				c.storage.UpdateBaseDir(newDataFolder)
				saveConfig()
			})

			content := container.NewVBox(
				widget.NewLabel("The data folder changed. Move your existing tasks there, or start fresh?"),
				container.NewHBox(moveBtn, freshBtn),
			)

			d = dialog.NewCustom("Data Folder Changed", "Cancel", content, c.window)
			d.Show()
			return
		}

		// Same folder, just save (maybe other settings in future)
		saveConfig()
	})

	eraseBtn := widget.NewButtonWithIcon("Erase All Tasks", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Erase All Tasks", "Delete every task? This cannot be undone.", func(confirmed bool) {
			if !confirmed {
				return
			}
			// Delete through the manager so the live roster empties too.
			entries := c.manager.Entries()
			ids := make([]string, 0, entries.Len())
			for i := 0; i < entries.Len(); i++ {
				ids = append(ids, entries.At(i).ID())
			}
			for _, id := range ids {
				c.manager.Delete(id)
			}
			dialog.ShowInformation("Success", "All tasks erased.", c.window)
		}, c.window)
	})
	eraseBtn.Importance = widget.DangerImportance

	quitBtn := widget.NewButtonWithIcon("Quit", theme.LogoutIcon(), func() {
		fyne.CurrentApp().Quit()
	})

	return container.NewVBox(
		widget.NewLabel("Settings"),
		widget.NewForm(
			widget.NewFormItem("Data Folder", folderContainer),
		),
		saveBtn,
		widget.NewSeparator(),
		eraseBtn,
		widget.NewSeparator(),
		quitBtn,
	)
}
