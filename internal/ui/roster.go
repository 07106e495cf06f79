package ui

import (
	"time"

	"github.com/octylFractal/clock-resonator/internal/livelist"
	"github.com/octylFractal/clock-resonator/internal/models"
	"github.com/octylFractal/clock-resonator/internal/service"
	"github.com/octylFractal/clock-resonator/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// rosterRow is the presentation shape of one task line, derived lazily from
// the live entry list.
type rosterRow struct {
	id      string
	name    string
	last    time.Time
	next    time.Time
	nextErr error
}

// Roster is the main task list: a live view over the store's sorted
// entries, with complete/edit/delete actions per row.
type Roster struct {
	window  fyne.Window
	manager *store.Manager
	rows    *livelist.Mapped[models.TaskEntry, rosterRow]
}

func NewRoster(w fyne.Window, m *store.Manager) *Roster {
	r := &Roster{window: w, manager: m}
	r.rows = livelist.NewMapped(m.Entries(), func(e models.TaskEntry) rosterRow {
		row := rosterRow{id: e.ID(), name: e.Name(), last: e.LastOccurrence()}
		row.next, row.nextErr = e.NextOccurrence()
		return row
	})
	return r
}

func (r *Roster) MakeUI() fyne.CanvasObject {
	list := widget.NewList(
		func() int { return r.rows.Len() },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				container.NewHBox(
					widget.NewLabel("due"),
					widget.NewButtonWithIcon("", theme.ConfirmIcon(), nil),
					widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
					widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
				),
				container.NewVBox(
					widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
					widget.NewProgressBar(),
				))
		},
		func(i int, o fyne.CanvasObject) {
			if i >= r.rows.Len() {
				return
			}
			row := r.rows.At(i)

			box := o.(*fyne.Container)
			rightBox := box.Objects[1].(*fyne.Container)
			dueLabel := rightBox.Objects[0].(*widget.Label)
			doneBtn := rightBox.Objects[1].(*widget.Button)
			editBtn := rightBox.Objects[2].(*widget.Button)
			delBtn := rightBox.Objects[3].(*widget.Button)

			infoBox := box.Objects[0].(*fyne.Container)
			nameLabel := infoBox.Objects[0].(*widget.Label)
			progress := infoBox.Objects[1].(*widget.ProgressBar)

			nameLabel.SetText(row.name)
			if row.nextErr != nil {
				dueLabel.SetText("schedule error")
				dueLabel.TextStyle = fyne.TextStyle{Italic: true}
				progress.SetValue(0)
			} else {
				now := time.Now()
				dueLabel.SetText(service.FormatCountdown(now, row.next))
				dueLabel.TextStyle = fyne.TextStyle{}
				progress.SetValue(service.Progress(row.last, row.next, now))
			}

			doneBtn.OnTapped = func() {
				r.completeTask(row.id)
			}
			editBtn.OnTapped = func() {
				if entry, ok := r.manager.Get(row.id); ok {
					ShowEditor(r.window, r.manager, entry)
				}
			}
			delBtn.OnTapped = func() {
				dialog.ShowConfirm("Confirm Deletion", "Are you sure you want to delete this task?", func(confirmed bool) {
					if !confirmed {
						return
					}
					r.manager.Delete(row.id)
				}, r.window)
			}
		},
	)

	r.rows.AddListener(func(livelist.Change) {
		list.Refresh()
	})

	// Clock tick: countdowns and progress bars are live even when the
	// roster itself is unchanged. Display only.
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		for range ticker.C {
			fyne.Do(func() {
				list.Refresh()
			})
		}
	}()

	newBtn := widget.NewButtonWithIcon("New Task", theme.ContentAddIcon(), func() {
		ShowEditor(r.window, r.manager, nil)
	})

	return container.NewBorder(
		container.NewBorder(nil, nil, nil, newBtn, widget.NewLabel("Tasks")),
		nil, nil, nil,
		list,
	)
}

func (r *Roster) completeTask(id string) {
	if err := r.manager.Complete(id, time.Now()); err != nil {
		dialog.ShowError(err, r.window)
	}
}
