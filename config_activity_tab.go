package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var activityColumns = []string{"Time", "Kind", "Category", "Detail"}

func (cw *ConfigWindow) buildActivityTab() fyne.CanvasObject {
	cw.activityData = cw.activity.All()

	cw.activityTable = widget.NewTable(
		func() (int, int) {
			return len(cw.activityData) + 1, len(activityColumns)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template content")
		},
		func(id widget.TableCellID, cell fyne.CanvasObject) {
			label := cell.(*widget.Label)
			if id.Row == 0 {
				label.SetText(activityColumns[id.Col])
				label.TextStyle = fyne.TextStyle{Bold: true}
				return
			}
			label.TextStyle = fyne.TextStyle{}

			entry := cw.activityData[id.Row-1]
			switch id.Col {
			case 0:
				label.SetText(entry.At.Format("Jan 2 3:04 PM"))
			case 1:
				label.SetText(string(entry.Kind))
			case 2:
				label.SetText(entry.Category)
			case 3:
				label.SetText(truncateString(entry.Detail, 60))
			}
		},
	)
	cw.activityTable.SetColumnWidth(0, 130)
	cw.activityTable.SetColumnWidth(1, 110)
	cw.activityTable.SetColumnWidth(2, 140)
	cw.activityTable.SetColumnWidth(3, 340)

	refreshButton := widget.NewButton("Refresh", func() {
		cw.refreshActivityData()
	})
	clearButton := widget.NewButton("Clear Log", func() {
		cw.activity.Clear()
		cw.refreshActivityData()
	})

	buttonRow := container.NewHBox(refreshButton, clearButton)

	cw.activityContainer = container.NewBorder(
		container.NewVBox(widget.NewLabel("Emergency Activity"), widget.NewSeparator()),
		container.NewPadded(buttonRow),
		nil, nil,
		cw.activityTable,
	)

	return cw.activityContainer
}

func (cw *ConfigWindow) refreshActivityData() {
	cw.activityData = cw.activity.All()
	cw.activityTable.Refresh()
}
