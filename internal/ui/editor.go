package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/octylFractal/clock-resonator/internal/models"
	"github.com/octylFractal/clock-resonator/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"
	"github.com/sosodev/duration"
)

const timeLayout = "2006-01-02 15:04"

const (
	kindOneTime  = "One-time"
	kindPattern  = "Repeating (cron pattern)"
	kindInterval = "Repeating (interval)"
)

// ShowEditor opens the task editor dialog. A nil existing entry creates a
// new task; otherwise the entry is replaced wholesale under the same id.
func ShowEditor(w fyne.Window, m *store.Manager, existing models.TaskEntry) {
	nameEntry := widget.NewEntry()
	nameEntry.PlaceHolder = "What needs doing?"

	dueEntry := widget.NewEntry()
	dueEntry.PlaceHolder = timeLayout
	dueEntry.SetText(time.Now().Add(time.Hour).Format(timeLayout))

	patternEntry := widget.NewEntry()
	patternEntry.PlaceHolder = "0 9 * * *"
	zoneEntry := widget.NewEntry()
	zoneEntry.SetText("Local")

	yearsEntry := widget.NewEntry()
	yearsEntry.SetText("0")
	monthsEntry := widget.NewEntry()
	monthsEntry.SetText("0")
	daysEntry := widget.NewEntry()
	daysEntry.SetText("1")

	stopEntry := widget.NewEntry()
	stopEntry.PlaceHolder = timeLayout + " (optional)"

	oneTimeForm := widget.NewForm(
		widget.NewFormItem("Due", dueEntry),
	)
	patternForm := widget.NewForm(
		widget.NewFormItem("Pattern", patternEntry),
		widget.NewFormItem("Time Zone", zoneEntry),
	)
	intervalForm := widget.NewForm(
		widget.NewFormItem("Years", yearsEntry),
		widget.NewFormItem("Months", monthsEntry),
		widget.NewFormItem("Days", daysEntry),
	)
	// Stop time only applies to the recurring kinds.
	stopForm := widget.NewForm(
		widget.NewFormItem("Stop After", stopEntry),
	)

	kind := kindOneTime
	showKind := func(k string) {
		oneTimeForm.Hide()
		patternForm.Hide()
		intervalForm.Hide()
		stopForm.Hide()
		switch k {
		case kindOneTime:
			oneTimeForm.Show()
		case kindPattern:
			patternForm.Show()
			stopForm.Show()
		case kindInterval:
			intervalForm.Show()
			stopForm.Show()
		}
	}
	kindSelect := widget.NewSelect(
		[]string{kindOneTime, kindPattern, kindInterval},
		func(k string) {
			kind = k
			showKind(k)
		},
	)

	title := "New Task"
	if existing != nil {
		title = "Edit Task"
		nameEntry.SetText(existing.Name())
		switch e := existing.(type) {
		case models.OneTimeTask:
			due, _ := e.NextOccurrence()
			dueEntry.SetText(due.Local().Format(timeLayout))
			kindSelect.SetSelected(kindOneTime)
		case models.PatternTask:
			patternEntry.SetText(e.Pattern())
			zoneEntry.SetText(e.Zone().String())
			if stop, ok := e.StopTime(); ok {
				stopEntry.SetText(stop.Local().Format(timeLayout))
			}
			kindSelect.SetSelected(kindPattern)
		case models.IntervalTask:
			iv := e.Interval()
			yearsEntry.SetText(strconv.Itoa(int(iv.Years)))
			monthsEntry.SetText(strconv.Itoa(int(iv.Months)))
			daysEntry.SetText(strconv.Itoa(int(iv.Weeks)*7 + int(iv.Days)))
			if stop, ok := e.StopTime(); ok {
				stopEntry.SetText(stop.Local().Format(timeLayout))
			}
			kindSelect.SetSelected(kindInterval)
		}
	} else {
		kindSelect.SetSelected(kindOneTime)
	}

	content := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Schedule", kindSelect),
		),
		oneTimeForm,
		patternForm,
		intervalForm,
		stopForm,
	)

	dlg := dialog.NewCustomConfirm(title, "Save", "Cancel", content, func(confirmed bool) {
		if !confirmed {
			return
		}
		entry, err := buildEntry(existing, kind, editorFields{
			name:    nameEntry.Text,
			due:     dueEntry.Text,
			pattern: patternEntry.Text,
			zone:    zoneEntry.Text,
			years:   yearsEntry.Text,
			months:  monthsEntry.Text,
			days:    daysEntry.Text,
			stop:    stopEntry.Text,
		})
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		m.Put(entry)
	}, w)
	dlg.Resize(fyne.NewSize(w.Canvas().Size().Width*3/4, dlg.MinSize().Height))
	dlg.Show()
}

type editorFields struct {
	name    string
	due     string
	pattern string
	zone    string
	years   string
	months  string
	days    string
	stop    string
}

// buildEntry assembles and validates the replacement entry. Validation
// includes computing the first occurrence, so a pattern with no reachable
// match is rejected here rather than exploding in the roster.
func buildEntry(existing models.TaskEntry, kind string, f editorFields) (models.TaskEntry, error) {
	if f.name == "" {
		return nil, fmt.Errorf("task name must not be empty")
	}

	id := uuid.NewString()
	last := time.Now()
	if existing != nil {
		id = existing.ID()
		last = existing.LastOccurrence()
	}

	stop, err := parseOptionalTime(f.stop)
	if err != nil {
		return nil, fmt.Errorf("parse stop time: %w", err)
	}

	var entry models.TaskEntry
	switch kind {
	case kindOneTime:
		due, err := time.ParseInLocation(timeLayout, f.due, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse due time: %w", err)
		}
		entry = models.NewOneTimeTask(id, f.name, last, due)
	case kindPattern:
		zone, err := time.LoadLocation(f.zone)
		if err != nil {
			return nil, fmt.Errorf("unknown time zone %q: %w", f.zone, err)
		}
		entry, err = models.NewPatternTask(id, f.name, f.pattern, zone, stop, last, time.Time{})
		if err != nil {
			return nil, err
		}
	case kindInterval:
		years, err1 := strconv.Atoi(f.years)
		months, err2 := strconv.Atoi(f.months)
		days, err3 := strconv.Atoi(f.days)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("interval fields must be whole numbers")
		}
		if years == 0 && months == 0 && days == 0 {
			return nil, fmt.Errorf("interval must not be empty")
		}
		iv := duration.Duration{
			Years:  float64(years),
			Months: float64(months),
			Days:   float64(days),
		}
		entry = models.NewIntervalTask(id, f.name, iv, stop, last)
	default:
		return nil, fmt.Errorf("no schedule selected")
	}

	if _, err := entry.NextOccurrence(); err != nil {
		return nil, err
	}
	return entry, nil
}

func parseOptionalTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(timeLayout, s, time.Local)
}
