package models

import (
	"net/url"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerURL         string `json:"server_url"`          // society backend base URL
	APIToken          string `json:"api_token"`           // bearer token for the backend
	BuildingID        string `json:"building_id"`         // building this resident belongs to
	AutoStart         bool   `json:"auto_start"`          // launch on login
	PollIntervalSec   int    `json:"poll_interval_sec"`   // active-alerts poll interval
	NoticeSyncMinutes int    `json:"notice_sync_minutes"` // notice board refresh interval
	HoldTimeSeconds   int    `json:"hold_time_seconds"`   // button hold time
}

const (
	DefaultPollIntervalSec   = 10
	DefaultNoticeSyncMinutes = 10
	DefaultHoldTimeSeconds   = 3
)

// NeedsConfiguration returns true if the config needs initial setup
func (c *Config) NeedsConfiguration() bool {
	return strings.TrimSpace(c.ServerURL) == "" || strings.TrimSpace(c.BuildingID) == ""
}

// Validate checks the fields a running poller depends on.
func (c *Config) Validate() bool {
	if c.NeedsConfiguration() {
		return false
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// PollInterval returns the active-alerts poll interval, clamped to a sane
// minimum so a bad preference value cannot hammer the backend.
func (c *Config) PollInterval() time.Duration {
	sec := c.PollIntervalSec
	if sec < 5 {
		sec = DefaultPollIntervalSec
	}
	return time.Duration(sec) * time.Second
}

// NoticeSyncInterval returns the notice board refresh interval.
func (c *Config) NoticeSyncInterval() time.Duration {
	min := c.NoticeSyncMinutes
	if min < 1 {
		min = DefaultNoticeSyncMinutes
	}
	return time.Duration(min) * time.Minute
}
