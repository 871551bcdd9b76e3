package sos

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/borgmon/sos-sentinel/pkg/models"
)

// Outcome is the result of one emergency activation. Submission and local
// alarm playback are independent side effects; either can fail without
// cancelling the other, and the user-facing message reports both.
type Outcome struct {
	Category     models.Category
	Submitted    bool
	SubmitErr    error
	AlarmStarted bool
}

// Message phrases the outcome for the resident, always in terms of what to
// do next rather than technical detail.
func (o Outcome) Message() string {
	if o.Category.ToneID() == "" {
		// Report-only categories (Theft) never sound an alarm
		if o.Submitted {
			return "Your report has been sent to the society office."
		}
		return "Failed to send the report. Contact the society office or the police directly."
	}

	switch {
	case o.Submitted && o.AlarmStarted:
		return "Your alert has been sent to the society office and the local alarm is sounding."
	case o.Submitted && !o.AlarmStarted:
		return "Your alert has been recorded by the society office, but no audible alarm could be started on this device."
	case !o.Submitted && o.AlarmStarted:
		return "Failed to send the alert, but the local alarm is sounding. Contact emergency services directly."
	default:
		return "Failed to send the alert and no alarm could be started. Contact emergency services directly."
	}
}

// Activator performs the activate-emergency operation.
type Activator struct {
	client   AlertCreator
	alarm    Alarm
	recorder Recorder
}

// NewActivator wires an Activator. recorder may be nil.
func NewActivator(client AlertCreator, alarm Alarm, recorder Recorder) *Activator {
	return &Activator{client: client, alarm: alarm, recorder: recorder}
}

// Activate files the alert and, for categories with a tone, starts the
// local alarm. The two side effects run concurrently and neither blocks or
// cancels the other: a dead network still gets a siren, a broken speaker
// still gets a server-side record.
func (a *Activator) Activate(ctx context.Context, category models.Category) Outcome {
	outcome := Outcome{Category: category}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		outcome.SubmitErr = a.client.CreateAlert(ctx, category)
	}()

	if tone := category.ToneID(); tone != "" {
		outcome.AlarmStarted = a.alarm.Play(tone)
		if !outcome.AlarmStarted {
			log.Printf("Local alarm for %q could not be started", category)
		}
	}

	wg.Wait()
	outcome.Submitted = outcome.SubmitErr == nil
	if outcome.SubmitErr != nil {
		log.Printf("Alert submission for %q failed: %v", category, outcome.SubmitErr)
	}

	a.record(outcome)
	return outcome
}

func (a *Activator) record(o Outcome) {
	if a.recorder == nil {
		return
	}
	a.recorder.Record(models.ActivityEntry{
		Kind:      models.ActivityActivation,
		Category:  string(o.Category),
		Detail:    o.Message(),
		Submitted: o.Submitted,
		Sounded:   o.AlarmStarted,
		At:        time.Now(),
	})
}
