package sos

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/borgmon/sos-sentinel/pkg/models"
)

// DefaultPollInterval is how often the building is checked for active
// alerts when no interval is configured.
const DefaultPollInterval = 10 * time.Second

const checkTimeout = 8 * time.Second

// Notifier surfaces a blocking, acknowledge-only notification for a newly
// observed building alert. Presentation is up to the caller.
type Notifier func(alert models.AlertRecord)

// Poller watches the building's active alerts and drives the local alarm:
// a new alert id starts the siren and notifies, the list going empty stops
// it. The only state is the last-seen alert id, so re-observing the same
// alert is a no-op and a missed poll self-heals on the next tick.
type Poller struct {
	client   AlertLister
	alarm    Alarm
	notify   Notifier
	recorder Recorder
	interval time.Duration

	mu         sync.Mutex
	ticker     *time.Ticker
	done       chan struct{}
	generation int
	lastSeen   string
	running    bool
}

// NewPoller wires a Poller. interval <= 0 selects DefaultPollInterval;
// notify and recorder may be nil.
func NewPoller(client AlertLister, alarm Alarm, notify Notifier, recorder Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:   client,
		alarm:    alarm,
		notify:   notify,
		recorder: recorder,
		interval: interval,
	}
}

// Start begins monitoring: an immediate check, then one per interval.
// A blank building id is rejected with a warning and nothing is scheduled.
// Calling Start while running replaces the previous schedule, so there is
// never more than one ticker alive.
func (p *Poller) Start(buildingID string) {
	if buildingID == "" {
		log.Println("Poller started without a building id, not scheduling checks")
		return
	}

	p.mu.Lock()
	p.stopScheduleLocked()
	p.generation++
	gen := p.generation
	p.ticker = time.NewTicker(p.interval)
	p.done = make(chan struct{})
	p.running = true
	ticker, done := p.ticker, p.done
	p.mu.Unlock()

	log.Printf("Monitoring building %s for active alerts", buildingID)

	go func() {
		p.checkOnce(gen)
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.checkOnce(gen)
			}
		}
	}()
}

// Stop cancels the schedule, silences the alarm and forgets the watermark.
// Safe to call when not running. The alarm is stopped under the poller lock
// so Stop cannot interleave with an in-flight check's Play: once Stop
// returns, nothing is sounding and nothing stale can start.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopScheduleLocked()
	p.generation++
	p.lastSeen = ""
	p.alarm.StopAll()
	p.mu.Unlock()
}

// Release is Stop plus teardown of the audio resources. For shutdown.
func (p *Poller) Release() {
	p.Stop()
	p.alarm.Release()
}

// Running reports whether a schedule is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// LastSeenAlertID exposes the watermark, primarily for status display.
func (p *Poller) LastSeenAlertID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSeen
}

func (p *Poller) stopScheduleLocked() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
	}
	if p.done != nil {
		close(p.done)
		p.done = nil
	}
	p.running = false
}

// checkOnce performs a single poll. Errors are logged and swallowed; the
// next tick retries. gen guards against a check whose response arrives
// after Stop or a restart - stale results must not touch the watermark or
// the alarm.
func (p *Poller) checkOnce(gen int) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	alerts, err := p.client.ActiveAlerts(ctx)
	if err != nil {
		log.Printf("Active-alerts check failed, will retry: %v", err)
		return
	}

	// The alarm side effect happens under the lock, atomically with the
	// generation check, so a concurrent Stop cannot complete in between and
	// leave a stale Play sounding with nothing left to clear it. The alarm
	// has its own lock and never calls back into the poller.
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return
	}

	switch {
	case len(alerts) > 0 && alerts[0].ID != p.lastSeen:
		alert := alerts[0]
		p.lastSeen = alert.ID
		sounded := p.alarm.Play(alert.ToneID())
		p.mu.Unlock()
		p.onNewAlert(alert, sounded)

	case len(alerts) == 0 && p.lastSeen != "":
		p.lastSeen = ""
		p.alarm.StopAll()
		p.mu.Unlock()
		p.onAlertCleared()

	default:
		// Same alert still active, or no alert and none before
		p.mu.Unlock()
	}
}

func (p *Poller) onNewAlert(alert models.AlertRecord, sounded bool) {
	log.Printf("Building alert %s active: %s", alert.ID, alert.Message)

	if !sounded {
		log.Printf("Siren for building alert %s could not be started", alert.ID)
	}

	if p.recorder != nil {
		p.recorder.Record(models.ActivityEntry{
			Kind:     models.ActivityBuildingAlert,
			Category: alert.Category,
			Detail:   alert.Message,
			Sounded:  sounded,
			At:       time.Now(),
		})
	}

	if p.notify != nil {
		p.notify(alert)
	}
}

func (p *Poller) onAlertCleared() {
	log.Println("Building alert cleared, stopping siren")

	if p.recorder != nil {
		p.recorder.Record(models.ActivityEntry{
			Kind:   models.ActivityAlertCleared,
			Detail: "Building alert resolved",
			At:     time.Now(),
		})
	}
}
