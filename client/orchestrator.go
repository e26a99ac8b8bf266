// Package client drives a booking submission from the guest's side and
// falls back to a pre-filled email draft or WhatsApp chat when the booking
// endpoint cannot take the booking.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"safaricamp/models"
	"safaricamp/services/booking"
	"safaricamp/services/contact"
)

// State of a booking attempt.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

var (
	ErrInvalidTransition = errors.New("invalid booking state transition")
	ErrNoBooking         = errors.New("no booking has been prepared")
)

// Orchestrator holds one guest's booking attempt. It is not shared between
// guests; each booking form owns its own instance.
type Orchestrator struct {
	submitter Submitter
	handles   contact.Handles
	policy    booking.PricingPolicy
	now       func() time.Time

	mu        sync.Mutex
	state     State
	bookingID string
	record    *models.BookingRecord
	response  *models.BookingResponse
	err       error
}

func NewOrchestrator(submitter Submitter, handles contact.Handles, policy booking.PricingPolicy) *Orchestrator {
	return &Orchestrator{
		submitter: submitter,
		handles:   handles,
		policy:    policy,
		now:       time.Now,
		state:     StateIdle,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// BookingID is the reference shown to the guest. It is issued on the first
// submit and kept across retries, so it stays valid whichever channel the
// booking finally reaches the camp through.
func (o *Orchestrator) BookingID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bookingID
}

// Record is the priced booking as last submitted.
func (o *Orchestrator) Record() *models.BookingRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.record
}

// Response is the endpoint's last answer, nil if it never answered.
func (o *Orchestrator) Response() *models.BookingResponse {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.response
}

// Err is the reason the last attempt failed.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Submit prices the form, posts it and moves to Succeeded or Failed.
// A form that fails local validation is returned as an error and the
// orchestrator stays Idle, since nothing was sent.
func (o *Orchestrator) Submit(ctx context.Context, form models.BookingRequest) (*models.BookingResponse, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		state := o.state
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, state)
	}
	if o.bookingID == "" {
		o.bookingID = booking.GenerateBookingID()
	}
	form.BookingID = o.bookingID
	if form.SubmittedAt.IsZero() {
		form.SubmittedAt = o.now().UTC()
	}

	record, err := booking.BuildRecord(form, o.policy, o.now())
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	form.Nights = record.Pricing.Nights
	form.Total = record.Pricing.Total

	o.record = record
	o.response = nil
	o.err = nil
	o.state = StateSubmitting
	o.mu.Unlock()

	resp, err := o.submitter.SubmitBooking(ctx, form)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.response = resp
	switch {
	case err != nil:
		o.err = err
		o.state = StateFailed
	case resp == nil:
		o.err = errors.New("empty response from booking endpoint")
		o.state = StateFailed
	case !resp.Success:
		o.err = fmt.Errorf("booking endpoint rejected the booking: %s", resp.Message)
		o.state = StateFailed
		if resp.Code == booking.CodeBookingIDConflict {
			// The reference already carries different details at the camp.
			o.bookingID = ""
		}
	default:
		if resp.BookingID != "" {
			o.bookingID = resp.BookingID
			o.record.ID = resp.BookingID
		}
		o.state = StateSucceeded
	}
	return resp, o.err
}

// Reset returns to Idle. After a failure the booking id and record are kept
// so a retry carries the same reference, unless the server reported the
// reference as taken; after a success they are cleared for a new booking.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case StateSubmitting:
		return fmt.Errorf("%w: reset while submitting", ErrInvalidTransition)
	case StateSucceeded:
		o.bookingID = ""
		o.record = nil
	}
	o.response = nil
	o.err = nil
	o.state = StateIdle
	return nil
}
