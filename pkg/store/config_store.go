package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/sos-sentinel/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()

	return &models.Config{
		ServerURL:         prefs.String("server_url"),
		APIToken:          prefs.String("api_token"),
		BuildingID:        prefs.String("building_id"),
		AutoStart:         prefs.BoolWithFallback("auto_start", false),
		PollIntervalSec:   prefs.IntWithFallback("poll_interval_sec", models.DefaultPollIntervalSec),
		NoticeSyncMinutes: prefs.IntWithFallback("notice_sync_minutes", models.DefaultNoticeSyncMinutes),
		HoldTimeSeconds:   prefs.IntWithFallback("hold_time_seconds", models.DefaultHoldTimeSeconds),
	}
}

// Save persists configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetString("server_url", config.ServerURL)
	prefs.SetString("api_token", config.APIToken)
	prefs.SetString("building_id", config.BuildingID)
	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetInt("poll_interval_sec", config.PollIntervalSec)
	prefs.SetInt("notice_sync_minutes", config.NoticeSyncMinutes)
	prefs.SetInt("hold_time_seconds", config.HoldTimeSeconds)
}
