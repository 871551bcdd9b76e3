package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/hotkey"

	"github.com/borgmon/sos-sentinel/pkg/models"
	"github.com/borgmon/sos-sentinel/pkg/platform"
	"github.com/borgmon/sos-sentinel/pkg/ui/components"
)

// BuildingAlertWindow is the fullscreen, acknowledge-only notification for
// a building-wide alert. There is no cancel path: the only way out is
// holding the acknowledge button, and even that only closes the window -
// the siren runs until the server clears the alert.
type BuildingAlertWindow struct {
	window          fyne.Window
	app             fyne.App
	alert           models.AlertRecord
	holdTimeSeconds int
	onAcknowledge   func()

	ackProgress    float64
	ackTicker      *time.Ticker
	ackHeld        bool
	stopMonitoring chan struct{}

	// The quit-guard hotkey is handed between the registration goroutine,
	// the focus monitor and the close handler
	hotkeyMu   sync.Mutex
	cmdQHotkey *hotkey.Hotkey
}

// NewBuildingAlertWindow builds the window. Call Show on the UI thread.
func NewBuildingAlertWindow(app fyne.App, alert models.AlertRecord, holdTimeSeconds int, onAcknowledge func()) *BuildingAlertWindow {
	if holdTimeSeconds <= 0 {
		holdTimeSeconds = models.DefaultHoldTimeSeconds
	}

	aw := &BuildingAlertWindow{
		app:             app,
		alert:           alert,
		holdTimeSeconds: holdTimeSeconds,
		onAcknowledge:   onAcknowledge,
		stopMonitoring:  make(chan struct{}),
	}

	aw.window = app.NewWindow("Building Emergency")
	aw.window.SetFullScreen(true)
	aw.buildUI()

	// Register Cmd+Q hotkey while the alert demands attention
	aw.registerCmdQPrevention()

	// Monitor window focus and refocus when needed
	aw.setupFocusMonitoring()

	aw.window.SetOnClosed(func() {
		close(aw.stopMonitoring)
		if hk := aw.takeQuitGuard(); hk != nil {
			hk.Unregister()
		}
		if aw.onAcknowledge != nil {
			aw.onAcknowledge()
		}
	})

	return aw
}

func (aw *BuildingAlertWindow) buildUI() {
	heading := canvas.NewText("BUILDING EMERGENCY", nil)
	heading.TextSize = 36
	heading.Alignment = fyne.TextAlignCenter

	category := aw.alert.Category
	if category == "" {
		category = "Emergency"
	}
	categoryText := canvas.NewText(category, nil)
	categoryText.TextSize = 26
	categoryText.Alignment = fyne.TextAlignCenter

	message := widget.NewLabel(aw.alert.Message)
	message.Wrapping = fyne.TextWrapWord
	message.Alignment = fyne.TextAlignCenter

	postedLabel := widget.NewLabel(fmt.Sprintf("Reported at %s", aw.alert.CreatedAt.Format("3:04 PM")))
	postedLabel.Alignment = fyne.TextAlignCenter

	var ackButton *components.HoldButton
	ackButton = components.NewHoldButton(fmt.Sprintf("Acknowledge (Hold %ds)", aw.holdTimeSeconds), func() {
		aw.startAckProgress(ackButton)
	}, func() {
		aw.stopAckProgress(ackButton)
	})

	content := container.NewVBox(
		container.NewPadded(heading),
		categoryText,
		widget.NewSeparator(),
		container.NewPadded(message),
		postedLabel,
		widget.NewSeparator(),
		container.NewCenter(ackButton),
	)

	aw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (aw *BuildingAlertWindow) startAckProgress(button *components.HoldButton) {
	if aw.ackHeld {
		return
	}

	aw.ackHeld = true
	aw.ackProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})

	tickInterval := 50 * time.Millisecond
	totalTicks := float64(aw.holdTimeSeconds*1000) / float64(tickInterval.Milliseconds())
	progressIncrement := 1.0 / totalTicks

	aw.ackTicker = time.NewTicker(tickInterval)

	go func() {
		for range aw.ackTicker.C {
			if !aw.ackHeld {
				return
			}

			aw.ackProgress += progressIncrement
			currentProgress := aw.ackProgress

			fyne.Do(func() {
				button.SetProgress(currentProgress)
			})

			if currentProgress >= 1.0 {
				aw.ackTicker.Stop()
				fyne.Do(func() {
					aw.window.Close()
				})
				return
			}
		}
	}()
}

func (aw *BuildingAlertWindow) stopAckProgress(button *components.HoldButton) {
	aw.ackHeld = false
	if aw.ackTicker != nil {
		aw.ackTicker.Stop()
	}
	aw.ackProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})
}

// Show presents the window fullscreen.
func (aw *BuildingAlertWindow) Show() {
	if aw.window != nil {
		aw.window.Show()
	}
}

func (aw *BuildingAlertWindow) registerCmdQPrevention() {
	go func() {
		// Cmd+Q must not bypass the acknowledge hold
		hk := hotkey.New([]hotkey.Modifier{quitGuardModifier}, hotkey.KeyQ)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register Cmd+Q hotkey prevention: %v", err)
			return
		}
		aw.setQuitGuard(hk)

		// Consume Cmd+Q events and prevent default quit behavior
		for range hk.Keydown() {
			log.Println("Cmd+Q blocked - hold the Acknowledge button to dismiss the alert")
		}
	}()
}

func (aw *BuildingAlertWindow) setQuitGuard(hk *hotkey.Hotkey) {
	aw.hotkeyMu.Lock()
	defer aw.hotkeyMu.Unlock()
	aw.cmdQHotkey = hk
}

// takeQuitGuard hands ownership of the registered hotkey to the caller,
// which is then responsible for unregistering it.
func (aw *BuildingAlertWindow) takeQuitGuard() *hotkey.Hotkey {
	aw.hotkeyMu.Lock()
	defer aw.hotkeyMu.Unlock()
	hk := aw.cmdQHotkey
	aw.cmdQHotkey = nil
	return hk
}

func (aw *BuildingAlertWindow) hasQuitGuard() bool {
	aw.hotkeyMu.Lock()
	defer aw.hotkeyMu.Unlock()
	return aw.cmdQHotkey != nil
}

func (aw *BuildingAlertWindow) setupFocusMonitoring() {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		wasFocused := true
		for {
			select {
			case <-aw.stopMonitoring:
				log.Println("Stopping alert window focus monitoring")
				return
			case <-ticker.C:
				if aw.window == nil {
					return
				}

				isFocused := platform.IsAppActive()

				// Hotkey capture follows focus so other apps keep Cmd+Q
				if wasFocused && !isFocused {
					if hk := aw.takeQuitGuard(); hk != nil {
						hk.Unregister()
					}
				} else if !wasFocused && isFocused {
					if !aw.hasQuitGuard() {
						aw.registerCmdQPrevention()
					}
				}

				// An unacknowledged emergency stays in front
				if !isFocused {
					platform.ActivateApp()
					fyne.Do(func() {
						if aw.window != nil {
							aw.window.Show()
						}
					})
				}

				wasFocused = isFocused
			}
		}
	}()
}
