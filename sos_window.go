package main

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sos-sentinel/pkg/models"
)

// optionRevealStagger is the delay between successive category buttons
// appearing when the panel expands: first immediately, then +50ms each.
const optionRevealStagger = 50 * time.Millisecond

// SOSWindow is the emergency panel. A single SOS button expands into the
// three category buttons; picking one walks the resident through a confirm
// dialog, then fires the activation. While a self-triggered alarm sounds,
// the main button turns into the stop control.
type SOSWindow struct {
	window   fyne.Window
	sentinel *Sentinel

	mainButton    *widget.Button
	optionButtons []*widget.Button
	statusLabel   *widget.Label

	expanded    bool
	submitting  bool
	alarmActive bool
}

// NewSOSWindow builds the panel. Show it with Show.
func NewSOSWindow(s *Sentinel) *SOSWindow {
	sw := &SOSWindow{sentinel: s}

	sw.window = s.app.NewWindow("SOS Sentinel")
	sw.window.Resize(fyne.NewSize(360, 420))
	sw.buildUI()

	// Closing the panel hides it; the app lives in the tray
	sw.window.SetCloseIntercept(func() {
		sw.window.Hide()
	})

	return sw
}

func (sw *SOSWindow) buildUI() {
	sw.mainButton = widget.NewButton("SOS", func() {
		sw.onMainButton()
	})
	sw.mainButton.Importance = widget.DangerImportance

	for _, category := range models.Categories() {
		cat := category
		btn := widget.NewButton(string(cat), func() {
			sw.onCategory(cat)
		})
		btn.Importance = widget.WarningImportance
		btn.Hide()
		sw.optionButtons = append(sw.optionButtons, btn)
	}

	sw.statusLabel = widget.NewLabel("Tap SOS to choose an emergency category.")
	sw.statusLabel.Wrapping = fyne.TextWrapWord
	sw.statusLabel.Alignment = fyne.TextAlignCenter

	options := container.NewVBox()
	for _, btn := range sw.optionButtons {
		options.Add(btn)
	}

	content := container.NewVBox(
		container.NewPadded(sw.mainButton),
		options,
		widget.NewSeparator(),
		sw.statusLabel,
	)

	sw.window.SetContent(container.NewPadded(content))
}

func (sw *SOSWindow) onMainButton() {
	if sw.alarmActive {
		confirmStopAlarm(sw.window, func() {
			sw.sentinel.alarm.StopAll()
			sw.setAlarmActive(false)
			sw.statusLabel.SetText("Alarm stopped. Tap SOS to choose an emergency category.")
		})
		return
	}

	if sw.expanded {
		sw.collapse()
	} else {
		sw.expand()
	}
}

// expand reveals the category buttons with the staggered order: first
// option immediately, the second +50ms, the third +100ms.
func (sw *SOSWindow) expand() {
	sw.expanded = true
	for i, btn := range sw.optionButtons {
		b := btn
		if i == 0 {
			b.Show()
			continue
		}
		time.AfterFunc(time.Duration(i)*optionRevealStagger, func() {
			fyne.Do(func() {
				// The panel may have collapsed while this reveal was pending
				if sw.expanded {
					b.Show()
				}
			})
		})
	}
}

func (sw *SOSWindow) collapse() {
	sw.expanded = false
	for _, btn := range sw.optionButtons {
		btn.Hide()
	}
}

func (sw *SOSWindow) onCategory(category models.Category) {
	confirmActivation(sw.window, category, func() {
		// Collapse runs regardless of how the activation turns out
		sw.collapse()
		sw.activate(category)
	})
}

func (sw *SOSWindow) activate(category models.Category) {
	if sw.submitting {
		log.Printf("Activation of %q ignored, another activation is in flight", category)
		return
	}
	sw.submitting = true
	sw.statusLabel.SetText("Raising " + string(category) + "...")

	go func() {
		outcome := sw.sentinel.activator.Activate(context.Background(), category)

		fyne.Do(func() {
			sw.submitting = false
			sw.setAlarmActive(outcome.AlarmStarted)
			sw.statusLabel.SetText(outcome.Message())
			showOutcome(sw.window, outcome)
			sw.sentinel.updateSystemTrayMenu()
		})
	}()
}

func (sw *SOSWindow) setAlarmActive(active bool) {
	sw.alarmActive = active
	if active {
		sw.mainButton.SetText("STOP ALARM")
	} else {
		sw.mainButton.SetText("SOS")
	}
}

// Show brings the panel to the front.
func (sw *SOSWindow) Show() {
	sw.window.Show()
	sw.window.RequestFocus()
}
