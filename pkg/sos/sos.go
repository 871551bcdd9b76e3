// Package sos holds the emergency coordination logic: raising alerts from
// this device and watching the building for alerts raised by anyone else.
// It is wired to the audio and backend layers through narrow interfaces so
// the state machines are testable without hardware or network.
package sos

import (
	"context"

	"github.com/borgmon/sos-sentinel/pkg/models"
)

// Alarm is what the coordinators need from the audio layer. Play reports
// whether a playback attempt was dispatched; it must stop any other tone
// first. All implementations degrade to "no sound" instead of failing.
type Alarm interface {
	Play(toneID string) bool
	StopAll()
	IsPlaying() bool
	Release()
}

// AlertCreator files a new emergency alert with the backend.
type AlertCreator interface {
	CreateAlert(ctx context.Context, category models.Category) error
}

// AlertLister fetches the active alerts for the configured building.
type AlertLister interface {
	ActiveAlerts(ctx context.Context) ([]models.AlertRecord, error)
}

// Recorder receives activity log entries. May be nil-checked by callers;
// recording never affects the emergency flow.
type Recorder interface {
	Record(entry models.ActivityEntry)
}
