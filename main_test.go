package main

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/borgmon/sos-sentinel/pkg/models"
)

// Saving settings restarts the notice sync; every replaced sync loop has to
// exit instead of blocking on its stopped ticker forever.
func TestRestartNoticeSyncStopsOldLoop(t *testing.T) {
	// Unconfigured backend, so syncNotices returns without touching the
	// network or the UI
	s := &Sentinel{config: &models.Config{NoticeSyncMinutes: 60}}

	baseline := runtime.NumGoroutine()

	s.startNoticeSync()
	for i := 0; i < 25; i++ {
		s.restartNoticeSync()
	}
	s.stopNoticeSync()

	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline+2
	}, time.Second, 10*time.Millisecond, "replaced notice sync loops must exit")
}
