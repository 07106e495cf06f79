package ui

import (
	"fmt"
	"sort"
	"time"

	"github.com/octylFractal/clock-resonator/internal/service"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

var reportTableProps = props.TableList{
	HeaderProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{4, 5, 3},
	},
	ContentProp: props.TableListContent{
		Size:      10,
		GridSizes: []uint{4, 5, 3},
	},
	Align:                consts.Center,
	AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
	HeaderContentSpace:   1,
	Line:                 false,
}

// GeneratePDF writes an upcoming-tasks report to path. Rows are expected in
// due order; groupBy buckets them under dated headings.
func GeneratePDF(path string, rows []reportRow, groupBy string) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Upcoming Tasks", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Generated "+time.Now().Format("2006-01-02 15:04"), props.Text{
					Top:   3,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	headers := []string{"Due", "Task", "Countdown"}

	tableRow := func(r reportRow) []string {
		if r.err != nil {
			return []string{"", r.entry.Name(), "schedule error"}
		}
		return []string{
			r.due.Local().Format("2006-01-02 15:04"),
			r.entry.Name(),
			service.FormatCountdown(time.Now(), r.due),
		}
	}

	if groupBy == service.GroupByNone {
		table := [][]string{}
		for _, r := range rows {
			table = append(table, tableRow(r))
		}
		m.TableList(headers, table, reportTableProps)
	} else {
		groups := make(map[string][]reportRow)
		var keys []string

		for _, r := range rows {
			key := service.GetGroupKey(r.due, groupBy)
			if _, exists := groups[key]; !exists {
				keys = append(keys, key)
			}
			groups[key] = append(groups[key], r)
		}

		sort.Strings(keys)

		for _, key := range keys {
			groupRows := groups[key]
			table := [][]string{}
			for _, r := range groupRows {
				table = append(table, tableRow(r))
			}

			title := ""
			if len(groupRows) > 0 {
				title = service.GetGroupTitle(groupRows[0].due, groupBy)
			}

			m.Row(10, func() {
				m.Col(12, func() {
					m.Text(title, props.Text{
						Top:   5,
						Style: consts.Bold,
						Size:  12,
						Align: consts.Left,
					})
				})
			})

			m.TableList(headers, table, reportTableProps)

			m.Row(5, func() {})
		}
	}

	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%d task(s) in report", len(rows)), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	return m.OutputFileAndClose(path)
}
