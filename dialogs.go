package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/borgmon/sos-sentinel/pkg/models"
	"github.com/borgmon/sos-sentinel/pkg/sos"
)

// confirmActivation asks the resident to confirm raising an alert for the
// chosen category before anything is sent or sounded.
func confirmActivation(parent fyne.Window, category models.Category, onConfirm func()) {
	body := "This will notify the society office immediately."
	if category.ToneID() != "" {
		body += " A loud local alarm will also start on this device."
	}

	dialog.ShowConfirm("Activate "+string(category)+"?", body, func(confirmed bool) {
		if confirmed {
			onConfirm()
		}
	}, parent)
}

// confirmStopAlarm guards the stop control for a self-triggered alarm.
// Declining leaves the alarm sounding.
func confirmStopAlarm(parent fyne.Window, onConfirm func()) {
	dialog.ShowConfirm("Stop Alarm?",
		"The local alarm will stop sounding. The alert you raised stays active with the society office.",
		func(confirmed bool) {
			if confirmed {
				onConfirm()
			}
		}, parent)
}

// showOutcome reports the activation result. The resident is never left
// without feedback, whichever of the two side effects failed.
func showOutcome(parent fyne.Window, outcome sos.Outcome) {
	title := string(outcome.Category)
	if !outcome.Submitted {
		title += " - delivery failed"
	}
	dialog.ShowInformation(title, outcome.Message(), parent)
}
