package main

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sos-sentinel/pkg/audio"
	"github.com/borgmon/sos-sentinel/pkg/models"
	"github.com/borgmon/sos-sentinel/pkg/store"
)

type ConfigWindow struct {
	window   fyne.Window
	app      fyne.App
	config   *models.Config
	activity *store.ActivityStore
	alarm    *audio.Player
	onSave   func(*models.Config)

	// General tab
	serverEntry    *widget.Entry
	tokenEntry     *widget.Entry
	buildingEntry  *widget.Entry
	autoStartCheck *widget.Check

	// Emergency tab
	pollIntervalSelect *widget.Select
	holdTimeSelect     *widget.Select

	// Activity tab
	activityTable     *widget.Table
	activityData      []models.ActivityEntry
	activityContainer *fyne.Container

	// UI state
	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewConfigWindow(app fyne.App, config *models.Config, activity *store.ActivityStore, alarm *audio.Player, onSave func(*models.Config)) *ConfigWindow {
	cw := &ConfigWindow{
		app:      app,
		config:   config,
		activity: activity,
		alarm:    alarm,
		onSave:   onSave,
	}

	cw.window = app.NewWindow("SOS Sentinel - Settings")
	cw.buildUI()

	return cw
}

func (cw *ConfigWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", cw.buildGeneralTab()),
		container.NewTabItem("Emergency", cw.buildEmergencyTab()),
		container.NewTabItem("Activity", cw.buildActivityTab()),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	cw.saveStatusLabel = widget.NewLabel("")
	cw.saveButton = widget.NewButton("Save", func() {
		cw.save()
	})
	cw.saveButton.Importance = widget.HighImportance
	cw.saveButton.Disable()

	bottomBar := container.NewBorder(nil, nil, cw.saveStatusLabel, cw.saveButton)

	cw.window.SetContent(container.NewBorder(nil, container.NewPadded(bottomBar), nil, nil, tabs))
	cw.window.Resize(fyne.NewSize(560, 480))
}

func (cw *ConfigWindow) markChanged() {
	cw.hasUnsavedChanges = true
	cw.saveStatusLabel.SetText("Unsaved changes")
	cw.saveButton.Enable()
}

func (cw *ConfigWindow) save() {
	newConfig := &models.Config{
		ServerURL:         cw.serverEntry.Text,
		APIToken:          cw.tokenEntry.Text,
		BuildingID:        cw.buildingEntry.Text,
		AutoStart:         cw.autoStartCheck.Checked,
		PollIntervalSec:   parseSeconds(cw.pollIntervalSelect.Selected, models.DefaultPollIntervalSec),
		NoticeSyncMinutes: cw.config.NoticeSyncMinutes,
		HoldTimeSeconds:   parseSeconds(cw.holdTimeSelect.Selected, models.DefaultHoldTimeSeconds),
	}

	if !newConfig.Validate() && !newConfig.NeedsConfiguration() {
		dialog.ShowError(errInvalidServerURL, cw.window)
		return
	}

	cw.config = newConfig
	cw.hasUnsavedChanges = false
	cw.saveStatusLabel.SetText("Saved")
	cw.saveButton.Disable()

	if cw.onSave != nil {
		cw.onSave(newConfig)
	}
}

// parseSeconds extracts the leading number from a select option like
// "10 seconds".
func parseSeconds(option string, fallback int) int {
	for i, r := range option {
		if r < '0' || r > '9' {
			if i == 0 {
				return fallback
			}
			n, err := strconv.Atoi(option[:i])
			if err != nil {
				return fallback
			}
			return n
		}
	}
	if n, err := strconv.Atoi(option); err == nil {
		return n
	}
	return fallback
}

func (cw *ConfigWindow) Show() {
	cw.window.Show()
}
