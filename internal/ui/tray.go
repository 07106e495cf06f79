package ui

import (
	"github.com/octylFractal/clock-resonator/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// SetupTray installs a system tray menu where the platform has one and
// turns window close into hide-to-tray.
func SetupTray(a fyne.App, w fyne.Window, icon fyne.Resource, m *store.Manager) {
	if desk, ok := a.(desktop.App); ok {
		menu := fyne.NewMenu("Clock Resonator",
			fyne.NewMenuItem("Show", func() {
				w.Show()
			}),
			fyne.NewMenuItem("New Task", func() {
				w.Show()
				ShowEditor(w, m, nil)
			}),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Quit", func() {
				a.Quit()
			}),
		)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(icon)
	}

	w.SetCloseIntercept(func() {
		w.Hide()
	})
}
