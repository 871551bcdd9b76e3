package sos

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/sos-sentinel/pkg/models"
)

// scriptedLister replays a fixed sequence of poll results; the final step
// repeats forever.
type scriptedLister struct {
	mu    sync.Mutex
	steps []listStep
	calls int
}

type listStep struct {
	alerts []models.AlertRecord
	err    error
}

func (s *scriptedLister) ActiveAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.calls
	if idx >= len(s.steps) {
		idx = len(s.steps) - 1
	}
	s.calls++
	return s.steps[idx].alerts, s.steps[idx].err
}

func (s *scriptedLister) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type notifyRecorder struct {
	mu     sync.Mutex
	alerts []models.AlertRecord
}

func (n *notifyRecorder) notify(alert models.AlertRecord) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *notifyRecorder) all() []models.AlertRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.AlertRecord(nil), n.alerts...)
}

func alertX(id, category, message string) models.AlertRecord {
	return models.AlertRecord{ID: id, BuildingID: "B1", Category: category, Message: message}
}

// Watermark transitions: empty, new alert A, same alert A, cleared.
// Exactly one alarm start and exactly one clear-attributed stop.
func TestCheckOnceWatermarkTransitions(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{
		{alerts: nil},
		{alerts: []models.AlertRecord{alertX("A", "Fire Emergency", "smoke on floor 3")}},
		{alerts: []models.AlertRecord{alertX("A", "Fire Emergency", "smoke on floor 3")}},
		{alerts: nil},
	}}
	alarm := &fakeAlarm{}
	notified := &notifyRecorder{}

	p := NewPoller(lister, alarm, notified.notify, nil, time.Second)

	for i := 0; i < 4; i++ {
		p.checkOnce(0)
	}

	assert.Equal(t, []string{"fire"}, alarm.plays(), "repeated observation must not restart the alarm")
	assert.Equal(t, 1, alarm.stops(), "clearing must stop exactly once")
	assert.Len(t, notified.all(), 1)
	assert.Equal(t, "", p.LastSeenAlertID())
}

func TestCheckOnceAlertReplacedByDifferentAlert(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{
		{alerts: []models.AlertRecord{alertX("A", "Fire Emergency", "fire")}},
		{alerts: []models.AlertRecord{alertX("B", "Medical Emergency", "collapse in lobby")}},
	}}
	alarm := &fakeAlarm{}
	notified := &notifyRecorder{}

	p := NewPoller(lister, alarm, notified.notify, nil, time.Second)
	p.checkOnce(0)
	p.checkOnce(0)

	assert.Equal(t, []string{"fire", "medical"}, alarm.plays())
	assert.Equal(t, "B", p.LastSeenAlertID())
	require.Len(t, notified.all(), 2)
	assert.Equal(t, "B", notified.all()[1].ID)
}

func TestCheckOnceSwallowsErrors(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{
		{err: errors.New("network down")},
		{alerts: []models.AlertRecord{alertX("A", "Fire Emergency", "fire")}},
	}}
	alarm := &fakeAlarm{}

	p := NewPoller(lister, alarm, nil, nil, time.Second)

	p.checkOnce(0)
	assert.Equal(t, "", p.LastSeenAlertID(), "a failed check must not touch the watermark")

	p.checkOnce(0)
	assert.Equal(t, "A", p.LastSeenAlertID(), "the next tick recovers")
}

func TestCheckOnceStaleGenerationIsDiscarded(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{
		{alerts: []models.AlertRecord{alertX("A", "Fire Emergency", "fire")}},
	}}
	alarm := &fakeAlarm{}

	p := NewPoller(lister, alarm, nil, nil, time.Second)
	p.Stop() // bumps the generation past 0

	p.checkOnce(0)

	assert.Equal(t, "", p.LastSeenAlertID())
	assert.Empty(t, alarm.plays())
}

func TestStartRejectsEmptyBuildingID(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{{alerts: nil}}}
	p := NewPoller(lister, &fakeAlarm{}, nil, nil, 10*time.Millisecond)

	p.Start("")

	assert.False(t, p.Running())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, lister.callCount())
}

// Scenario: poller started, first check finds alert X, next finds nothing.
func TestStartObserveAndClear(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{
		{alerts: []models.AlertRecord{alertX("X", "Fire Emergency", "Fire")}},
		{alerts: nil},
	}}
	alarm := &fakeAlarm{}
	notified := &notifyRecorder{}
	recorder := &fakeRecorder{}

	p := NewPoller(lister, alarm, notified.notify, recorder, 20*time.Millisecond)
	p.Start("B1")
	defer p.Stop()

	require.Eventually(t, func() bool {
		return p.LastSeenAlertID() == "" && len(alarm.plays()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"fire"}, alarm.plays())
	require.Len(t, notified.all(), 1)
	assert.Equal(t, "X", notified.all()[0].ID)
	assert.Equal(t, "Fire", notified.all()[0].Message)
	assert.False(t, alarm.IsPlaying())

	kinds := []models.ActivityKind{}
	for _, e := range recorder.all() {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []models.ActivityKind{models.ActivityBuildingAlert, models.ActivityAlertCleared}, kinds)
}

// gateAlarm blocks inside Play until released, so a Stop can be raced
// against a check that is mid-way through starting the siren.
type gateAlarm struct {
	fakeAlarm
	entered chan struct{}
	release chan struct{}
}

func (g *gateAlarm) Play(toneID string) bool {
	close(g.entered)
	<-g.release
	return g.fakeAlarm.Play(toneID)
}

// A Stop that lands while a check is starting the siren must still win:
// once Stop returns, nothing may be sounding and the watermark is gone.
func TestStopSilencesInFlightCheck(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{
		{alerts: []models.AlertRecord{alertX("A", "Fire Emergency", "fire")}},
	}}
	alarm := &gateAlarm{entered: make(chan struct{}), release: make(chan struct{})}

	p := NewPoller(lister, alarm, nil, nil, time.Second)

	checkDone := make(chan struct{})
	go func() {
		p.checkOnce(0)
		close(checkDone)
	}()
	<-alarm.entered

	stopDone := make(chan struct{})
	go func() {
		p.Stop()
		close(stopDone)
	}()

	// Stop must not complete while the check still holds the alarm
	select {
	case <-stopDone:
		t.Fatal("Stop returned while a check was still starting the siren")
	case <-time.After(50 * time.Millisecond):
	}

	close(alarm.release)
	<-checkDone
	<-stopDone

	assert.False(t, alarm.IsPlaying(), "no siren may survive Stop")
	assert.Equal(t, "", p.LastSeenAlertID())
	assert.Equal(t, []string{"fire"}, alarm.plays())
	assert.GreaterOrEqual(t, alarm.stops(), 1)
}

// Stop must cancel future checks: no checkOnce runs more than one interval
// after Stop.
func TestStopCancelsFutureChecks(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{{alerts: nil}}}
	alarm := &fakeAlarm{}

	p := NewPoller(lister, alarm, nil, nil, 20*time.Millisecond)
	p.Start("B1")

	require.Eventually(t, func() bool {
		return lister.callCount() >= 3
	}, time.Second, 5*time.Millisecond)

	p.Stop()
	time.Sleep(25 * time.Millisecond) // let an already-fired tick drain
	after := lister.callCount()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, lister.callCount(), "no checks after stop")
	assert.False(t, p.Running())
	assert.GreaterOrEqual(t, alarm.stops(), 1, "stop silences the alarm")
}

func TestStartIsReentrant(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{{alerts: nil}}}
	p := NewPoller(lister, &fakeAlarm{}, nil, nil, 20*time.Millisecond)

	p.Start("B1")
	p.Start("B1")
	p.Start("B1")
	assert.True(t, p.Running())

	p.Stop()
	time.Sleep(25 * time.Millisecond)
	after := lister.callCount()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, lister.callCount(), "restarts must not leak tickers")
}

func TestReleaseStopsAndReleasesAudio(t *testing.T) {
	lister := &scriptedLister{steps: []listStep{{alerts: nil}}}
	alarm := &fakeAlarm{}

	p := NewPoller(lister, alarm, nil, nil, 20*time.Millisecond)
	p.Start("B1")
	p.Release()

	assert.False(t, p.Running())
	assert.True(t, alarm.wasReleased())
}

func TestDefaultInterval(t *testing.T) {
	p := NewPoller(&scriptedLister{steps: []listStep{{}}}, &fakeAlarm{}, nil, nil, 0)
	assert.Equal(t, DefaultPollInterval, p.interval)
}
