package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

func (cw *ConfigWindow) buildEmergencyTab() fyne.CanvasObject {
	cw.pollIntervalSelect = widget.NewSelect(
		[]string{"5 seconds", "10 seconds", "30 seconds", "60 seconds"},
		func(string) { cw.markChanged() },
	)
	cw.pollIntervalSelect.SetSelected(fmt.Sprintf("%d seconds", cw.config.PollIntervalSec))
	if cw.pollIntervalSelect.Selected == "" {
		cw.pollIntervalSelect.SetSelected("10 seconds")
	}

	cw.holdTimeSelect = widget.NewSelect(
		[]string{"2 seconds", "3 seconds", "5 seconds"},
		func(string) { cw.markChanged() },
	)
	cw.holdTimeSelect.SetSelected(fmt.Sprintf("%d seconds", cw.config.HoldTimeSeconds))
	if cw.holdTimeSelect.Selected == "" {
		cw.holdTimeSelect.SetSelected("3 seconds")
	}

	pollHelp := widget.NewLabel("How often this device checks the building for active alerts")
	pollHelp.Importance = widget.MediumImportance

	holdHelp := widget.NewLabel("How long emergency buttons must be held before they act")
	holdHelp.Importance = widget.MediumImportance

	// Tone preview; the siren loops until stopped, same as a real alarm
	testMedicalButton := widget.NewButton("Test Medical Tone", func() {
		cw.alarm.Play("medical")
	})
	testFireButton := widget.NewButton("Test Fire Tone", func() {
		cw.alarm.Play("fire")
	})
	stopTestButton := widget.NewButton("Stop", func() {
		cw.alarm.StopAll()
	})
	stopTestButton.Importance = widget.HighImportance

	toneRow := container.NewHBox(testMedicalButton, testFireButton, stopTestButton)

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Poll Interval:"), pollHelp),
		cw.pollIntervalSelect,

		container.NewVBox(widget.NewLabel("Hold Time:"), holdHelp),
		cw.holdTimeSelect,

		widget.NewLabel("Alarm Tones:"),
		toneRow,
	)

	return container.NewVBox(
		widget.NewLabel("Emergency Settings"),
		widget.NewSeparator(),
		container.NewPadded(form),
	)
}
