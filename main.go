package main

import (
	"context"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/borgmon/sos-sentinel/pkg/audio"
	"github.com/borgmon/sos-sentinel/pkg/backend"
	"github.com/borgmon/sos-sentinel/pkg/models"
	"github.com/borgmon/sos-sentinel/pkg/platform"
	"github.com/borgmon/sos-sentinel/pkg/sos"
	"github.com/borgmon/sos-sentinel/pkg/store"
)

// Sentinel is the desktop SOS client: it raises emergency alerts for this
// resident, sounds the local siren, and watches the building for alerts
// raised by anyone else.
type Sentinel struct {
	app          fyne.App
	config       *models.Config
	configStore  *store.ConfigStore
	activity     *store.ActivityStore
	alarm        *audio.Player
	client       *backend.Client
	activator    *sos.Activator
	poller       *sos.Poller
	sosWindow    *SOSWindow
	configWindow *ConfigWindow
	noticeTicker *time.Ticker
	noticeDone   chan struct{}

	noticesMu sync.Mutex
	notices   []models.Notice
}

func main() {
	s := &Sentinel{
		app:      app.New(),
		activity: store.NewActivityStore(),
		alarm:    audio.NewPlayer(),
	}

	if err := s.initialize(); err != nil {
		log.Fatal(err)
	}

	s.run()
}

func (s *Sentinel) initialize() error {
	s.configStore = store.NewConfigStore(s.app)
	s.config = s.configStore.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(s.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	s.configStore.Save(s.config)

	// Custom tone files live next to the preferences
	s.alarm.Initialize(s.app.Storage().RootURI().Path())

	s.rebuildBackend()
	s.setupSystemTray()
	s.startNoticeSync()
	s.startMonitoring()

	s.showSOSWindow()

	if s.config.NeedsConfiguration() {
		s.showConfigWindow()
	}

	return nil
}

func (s *Sentinel) run() {
	s.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy()
	})
	s.app.Run()
}

// rebuildBackend recreates the client and the coordinators that hold it.
// Called at startup and whenever the settings change.
func (s *Sentinel) rebuildBackend() {
	s.client = backend.NewClient(s.config)
	s.activator = sos.NewActivator(s.client, s.alarm, s.activity)
	s.poller = sos.NewPoller(s.client, s.alarm, s.notifyBuildingAlert, s.activity, s.config.PollInterval())
}

func (s *Sentinel) startMonitoring() {
	if !s.config.Validate() {
		log.Println("Backend not configured, building monitoring is off")
		return
	}
	s.poller.Start(s.config.BuildingID)
}

// notifyBuildingAlert is the poller's notification callback. The siren is
// already sounding by the time it runs; this only raises the
// acknowledge-only window on the UI thread.
func (s *Sentinel) notifyBuildingAlert(alert models.AlertRecord) {
	fyne.Do(func() {
		aw := NewBuildingAlertWindow(s.app, alert, s.config.HoldTimeSeconds, func() {
			log.Printf("Building alert %s acknowledged", alert.ID)
			s.updateSystemTrayMenu()
		})
		aw.Show()
		s.updateSystemTrayMenu()
	})
}

func (s *Sentinel) showSOSWindow() {
	if s.sosWindow == nil {
		s.sosWindow = NewSOSWindow(s)
	}
	s.sosWindow.Show()
}

func (s *Sentinel) showConfigWindow() {
	// If config window already exists and is showing, just bring it to front
	if s.configWindow != nil && s.configWindow.window != nil {
		s.configWindow.window.RequestFocus()
		s.configWindow.window.Show()
		return
	}

	s.configWindow = NewConfigWindow(s.app, s.config, s.activity, s.alarm, func(newConfig *models.Config) {
		s.applyConfig(newConfig)
	})

	s.configWindow.window.SetOnClosed(func() {
		s.configWindow = nil
	})

	s.configWindow.Show()
}

func (s *Sentinel) applyConfig(newConfig *models.Config) {
	s.config = newConfig
	s.configStore.Save(s.config)

	if err := setupAutostart(s.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	// Monitoring restarts against the new backend settings
	s.poller.Stop()
	s.rebuildBackend()
	s.startMonitoring()
	s.restartNoticeSync()
	s.updateSystemTrayMenu()
}

// syncNotices refreshes the notice board shown in the tray.
func (s *Sentinel) syncNotices() {
	if !s.config.Validate() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	notices, err := s.client.Notices(ctx)
	if err != nil {
		log.Printf("Error fetching notices: %v", err)
		return
	}

	s.noticesMu.Lock()
	s.notices = notices
	s.noticesMu.Unlock()

	log.Printf("Synced %d notices for building %s", len(notices), s.config.BuildingID)
	fyne.Do(func() { s.updateSystemTrayMenu() })
}

func (s *Sentinel) recentNotices(limit int) []models.Notice {
	s.noticesMu.Lock()
	defer s.noticesMu.Unlock()

	if limit > len(s.notices) {
		limit = len(s.notices)
	}
	out := make([]models.Notice, limit)
	copy(out, s.notices[:limit])
	return out
}

func (s *Sentinel) startNoticeSync() {
	// Initial sync in the background so startup never waits on the network
	go s.syncNotices()

	s.noticeTicker = time.NewTicker(s.config.NoticeSyncInterval())
	s.noticeDone = make(chan struct{})
	ticker, done := s.noticeTicker, s.noticeDone
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.syncNotices()
			}
		}
	}()
}

// stopNoticeSync stops the ticker and lets the sync goroutine exit; a
// stopped ticker alone would leave it blocked forever.
func (s *Sentinel) stopNoticeSync() {
	if s.noticeTicker != nil {
		s.noticeTicker.Stop()
	}
	if s.noticeDone != nil {
		close(s.noticeDone)
		s.noticeDone = nil
	}
}

func (s *Sentinel) restartNoticeSync() {
	s.stopNoticeSync()
	s.startNoticeSync()
}

func (s *Sentinel) quit() {
	s.stopNoticeSync()
	s.poller.Release()
	s.app.Quit()
}
