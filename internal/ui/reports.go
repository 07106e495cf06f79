package ui

import (
	"fmt"
	"sort"
	"time"

	"github.com/octylFractal/clock-resonator/internal/models"
	"github.com/octylFractal/clock-resonator/internal/service"
	"github.com/octylFractal/clock-resonator/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Reports shows what is coming up (and what is overdue) over a selectable
// period, with PDF export.
type Reports struct {
	window  fyne.Window
	manager *store.Manager
}

func NewReports(w fyne.Window, m *store.Manager) *Reports {
	return &Reports{window: w, manager: m}
}

// reportRow pairs a task with its computed due time for report rendering.
type reportRow struct {
	entry models.TaskEntry
	due   time.Time
	err   error
}

func (r *Reports) MakeUI() fyne.CanvasObject {
	dailyContent := container.NewStack()
	weeklyContent := container.NewStack()
	monthlyContent := container.NewStack()

	refreshReport := func(content *fyne.Container, start, end time.Time, groupBy string) {
		content.Objects = []fyne.CanvasObject{r.renderUpcoming(start, end, groupBy)}
		content.Refresh()
	}

	// Daily tab
	selectedDay := time.Now()
	dailyLabel := widget.NewLabel("")
	var updateDaily func()
	updateDaily = func() {
		dailyLabel.SetText("Due on " + selectedDay.Format("Mon, 02 Jan 2006"))
		start := dayStart(selectedDay)
		refreshReport(dailyContent, start, start.AddDate(0, 0, 1), service.GroupByDay)
	}
	updateDaily()

	dailyTab := container.NewBorder(
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
				selectedDay = selectedDay.AddDate(0, 0, -1)
				updateDaily()
			}),
			widget.NewButton("Today", func() {
				selectedDay = time.Now()
				updateDaily()
			}),
			widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
				selectedDay = selectedDay.AddDate(0, 0, 1)
				updateDaily()
			}),
			layout.NewSpacer(),
			dailyLabel,
		),
		nil, nil, nil,
		dailyContent,
	)

	// Weekly tab
	selectedWeekStart := service.GetWeekStart(time.Now())
	weeklyLabel := widget.NewLabel("")
	var updateWeekly func()
	updateWeekly = func() {
		end := selectedWeekStart.AddDate(0, 0, 6)
		weeklyLabel.SetText(fmt.Sprintf("Week %s - %s", selectedWeekStart.Format("Jan 02"), end.Format("Jan 02")))
		start := dayStart(selectedWeekStart)
		refreshReport(weeklyContent, start, start.AddDate(0, 0, 7), service.GroupByDay)
	}
	updateWeekly()

	weeklyTab := container.NewBorder(
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
				selectedWeekStart = selectedWeekStart.AddDate(0, 0, -7)
				updateWeekly()
			}),
			widget.NewButton("This Week", func() {
				selectedWeekStart = service.GetWeekStart(time.Now())
				updateWeekly()
			}),
			widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
				selectedWeekStart = selectedWeekStart.AddDate(0, 0, 7)
				updateWeekly()
			}),
			layout.NewSpacer(),
			weeklyLabel,
		),
		nil, nil, nil,
		weeklyContent,
	)

	// Monthly tab
	monthStart := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	selectedMonth := monthStart(time.Now())
	monthlyLabel := widget.NewLabel("")
	var updateMonthly func()
	updateMonthly = func() {
		monthlyLabel.SetText("Due in " + selectedMonth.Format("January 2006"))
		refreshReport(monthlyContent, selectedMonth, selectedMonth.AddDate(0, 1, 0), service.GroupByWeek)
	}
	updateMonthly()

	monthlyTab := container.NewBorder(
		container.NewHBox(
			widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
				selectedMonth = selectedMonth.AddDate(0, -1, 0)
				updateMonthly()
			}),
			widget.NewButton("This Month", func() {
				selectedMonth = monthStart(time.Now())
				updateMonthly()
			}),
			widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
				selectedMonth = selectedMonth.AddDate(0, 1, 0)
				updateMonthly()
			}),
			layout.NewSpacer(),
			monthlyLabel,
		),
		nil, nil, nil,
		monthlyContent,
	)

	return container.NewAppTabs(
		container.NewTabItem("Daily", dailyTab),
		container.NewTabItem("Weekly", weeklyTab),
		container.NewTabItem("Monthly", monthlyTab),
	)
}

// rowsDueBetween projects the live roster into report rows with due times
// inside [start, end), sorted by due time. Entries whose schedule cannot be
// computed are included so the report never hides a broken task.
func (r *Reports) rowsDueBetween(start, end time.Time) []reportRow {
	entries := r.manager.Entries()
	var rows []reportRow
	for i := 0; i < entries.Len(); i++ {
		entry := entries.At(i)
		due, err := entry.NextOccurrence()
		if err != nil {
			rows = append(rows, reportRow{entry: entry, err: err})
			continue
		}
		if due.Before(start) || !due.Before(end) {
			continue
		}
		rows = append(rows, reportRow{entry: entry, due: due})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].due.Before(rows[j].due) })
	return rows
}

func (r *Reports) overdueCount(now time.Time) int {
	entries := r.manager.Entries()
	count := 0
	for i := 0; i < entries.Len(); i++ {
		if due, err := entries.At(i).NextOccurrence(); err == nil && due.Before(now) {
			count++
		}
	}
	return count
}

func (r *Reports) renderUpcoming(start, end time.Time, groupBy string) fyne.CanvasObject {
	rows := r.rowsDueBetween(start, end)

	exportBtn := widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), func() {
		r.exportPDF(rows, groupBy)
	})

	summary := widget.NewLabel(fmt.Sprintf(
		"%d task(s) due in this period, %d overdue overall",
		len(rows), r.overdueCount(time.Now()),
	))

	if len(rows) == 0 {
		return container.NewVBox(summary, widget.NewLabel("Nothing due in this period."))
	}

	listView := widget.NewList(
		func() int { return len(rows) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewLabel("due"),
				container.NewVBox(
					widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
					widget.NewLabelWithStyle("Date", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
				))
		},
		func(i int, o fyne.CanvasObject) {
			row := rows[i]
			box := o.(*fyne.Container)
			dueLabel := box.Objects[1].(*widget.Label)
			infoBox := box.Objects[0].(*fyne.Container)
			nameLabel := infoBox.Objects[0].(*widget.Label)
			dateLabel := infoBox.Objects[1].(*widget.Label)

			nameLabel.SetText(row.entry.Name())
			if row.err != nil {
				dateLabel.SetText("schedule error")
				dueLabel.SetText("")
				return
			}
			dateLabel.SetText(row.due.Local().Format("Mon, 02 Jan 15:04"))
			dueLabel.SetText(service.FormatCountdown(time.Now(), row.due))
		},
	)

	return container.NewBorder(
		container.NewVBox(container.NewBorder(nil, nil, nil, exportBtn, summary), widget.NewSeparator()),
		nil, nil, nil,
		listView,
	)
}

func (r *Reports) exportPDF(rows []reportRow, groupBy string) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, r.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := GeneratePDF(path, rows, groupBy); err != nil {
			dialog.ShowError(err, r.window)
		}
	}, r.window)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
