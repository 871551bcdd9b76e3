package sos

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/sos-sentinel/pkg/models"
)

type fakeAlarm struct {
	mu        sync.Mutex
	playing   string
	playCalls []string
	stopCalls int
	released  bool
	failPlay  bool
}

func (f *fakeAlarm) Play(toneID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playCalls = append(f.playCalls, toneID)
	if f.failPlay {
		return false
	}
	f.playing = toneID
	return true
}

func (f *fakeAlarm) StopAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = ""
	f.stopCalls++
}

func (f *fakeAlarm) IsPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing != ""
}

func (f *fakeAlarm) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
}

func (f *fakeAlarm) playingTone() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

func (f *fakeAlarm) plays() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.playCalls...)
}

func (f *fakeAlarm) stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopCalls
}

func (f *fakeAlarm) wasReleased() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

type fakeCreator struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeCreator) CreateAlert(ctx context.Context, category models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []models.ActivityEntry
}

func (f *fakeRecorder) Record(entry models.ActivityEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func (f *fakeRecorder) all() []models.ActivityEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ActivityEntry(nil), f.entries...)
}

func TestActivateMedicalSuccess(t *testing.T) {
	creator := &fakeCreator{}
	alarm := &fakeAlarm{}
	recorder := &fakeRecorder{}

	outcome := NewActivator(creator, alarm, recorder).Activate(context.Background(), models.CategoryMedical)

	assert.True(t, outcome.Submitted)
	assert.True(t, outcome.AlarmStarted)
	assert.NoError(t, outcome.SubmitErr)
	assert.Equal(t, "medical", alarm.playingTone())
	assert.Equal(t, 1, creator.callCount())
	assert.Contains(t, outcome.Message(), "sent to the society office")

	entries := recorder.all()
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActivityActivation, entries[0].Kind)
	assert.True(t, entries[0].Submitted)
	assert.True(t, entries[0].Sounded)
}

func TestActivateAlarmStartsDespiteNetworkFailure(t *testing.T) {
	creator := &fakeCreator{err: errors.New("connection refused")}
	alarm := &fakeAlarm{}

	outcome := NewActivator(creator, alarm, nil).Activate(context.Background(), models.CategoryMedical)

	assert.False(t, outcome.Submitted)
	assert.Error(t, outcome.SubmitErr)
	assert.True(t, outcome.AlarmStarted)
	assert.Equal(t, "medical", alarm.playingTone())
	assert.Contains(t, outcome.Message(), "Contact emergency services directly")
}

func TestActivateSubmitsDespiteAudioFailure(t *testing.T) {
	creator := &fakeCreator{}
	alarm := &fakeAlarm{failPlay: true}

	outcome := NewActivator(creator, alarm, nil).Activate(context.Background(), models.CategoryFire)

	assert.Equal(t, 1, creator.callCount())
	assert.True(t, outcome.Submitted)
	assert.False(t, outcome.AlarmStarted)
	assert.Contains(t, outcome.Message(), "no audible alarm")
}

func TestActivateBothSidesFail(t *testing.T) {
	creator := &fakeCreator{err: errors.New("timeout")}
	alarm := &fakeAlarm{failPlay: true}

	outcome := NewActivator(creator, alarm, nil).Activate(context.Background(), models.CategoryFire)

	assert.False(t, outcome.Submitted)
	assert.False(t, outcome.AlarmStarted)
	assert.Contains(t, outcome.Message(), "Contact emergency services directly")
}

func TestActivateTheftNeverSoundsAlarm(t *testing.T) {
	creator := &fakeCreator{}
	alarm := &fakeAlarm{}

	outcome := NewActivator(creator, alarm, nil).Activate(context.Background(), models.CategoryTheft)

	assert.True(t, outcome.Submitted)
	assert.False(t, outcome.AlarmStarted)
	assert.Empty(t, alarm.plays())
	assert.Contains(t, outcome.Message(), "report has been sent")
}

func TestActivateTheftFailureMessage(t *testing.T) {
	creator := &fakeCreator{err: errors.New("503")}
	alarm := &fakeAlarm{}

	outcome := NewActivator(creator, alarm, nil).Activate(context.Background(), models.CategoryTheft)

	assert.False(t, outcome.Submitted)
	assert.Empty(t, alarm.plays())
	assert.Contains(t, outcome.Message(), "police")
}
