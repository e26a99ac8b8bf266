package client

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safaricamp/models"
	"safaricamp/services/booking"
	"safaricamp/services/contact"
)

type scriptedSubmitter struct {
	mu        sync.Mutex
	responses []*models.BookingResponse
	errs      []error
	requests  []models.BookingRequest
	gate      chan struct{}
}

func (s *scriptedSubmitter) SubmitBooking(_ context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.requests)
	s.requests = append(s.requests, req)

	var resp *models.BookingResponse
	var err error
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return resp, err
}

var handles = contact.Handles{
	SupportEmail:   "ops@gmail.com",
	CustomEmail:    "hello@camp.example",
	WhatsAppNumber: "+254 711 222 333",
}

func form() models.BookingRequest {
	return models.BookingRequest{
		FirstName:         "Amina",
		LastName:          "Otieno",
		Email:             "amina@example.com",
		Phone:             "+254 700 000 000",
		CheckIn:           "2026-07-10",
		CheckOut:          "2026-07-12",
		GroupSize:         4,
		AccommodationType: models.LuxuryTent,
		MealPlan:          models.FullBoard,
		Location: models.Location{
			Name:          "Mara River Camp",
			Address:       "Maasai Mara, Kenya",
			PricePerNight: 700,
		},
	}
}

func ok(id string) *models.BookingResponse {
	return &models.BookingResponse{Success: true, Message: "Booking submitted successfully!", BookingID: id}
}

func newOrchestrator(s Submitter) *Orchestrator {
	return NewOrchestrator(s, handles, booking.DefaultPricingPolicy())
}

func TestOrchestrator_Success(t *testing.T) {
	s := &scriptedSubmitter{}
	o := newOrchestrator(s)
	assert.Equal(t, StateIdle, o.State())

	s.responses = []*models.BookingResponse{ok("")}
	resp, err := o.Submit(context.Background(), form())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, StateSucceeded, o.State())

	require.Len(t, s.requests, 1)
	sent := s.requests[0]
	assert.True(t, booking.ValidBookingID(sent.BookingID))
	assert.Equal(t, sent.BookingID, o.BookingID())
	assert.Equal(t, 2, sent.Nights)
	assert.Equal(t, 2700.0, sent.Total)
	assert.False(t, sent.SubmittedAt.IsZero())
}

func TestOrchestrator_AdoptsServerBookingID(t *testing.T) {
	serverID := booking.GenerateBookingID()
	o := newOrchestrator(&scriptedSubmitter{responses: []*models.BookingResponse{ok(serverID)}})

	_, err := o.Submit(context.Background(), form())
	require.NoError(t, err)
	assert.Equal(t, serverID, o.BookingID())
	assert.Equal(t, serverID, o.Record().ID)
}

func TestOrchestrator_RetryKeepsBookingID(t *testing.T) {
	s := &scriptedSubmitter{
		responses: []*models.BookingResponse{nil, ok("")},
		errs:      []error{errors.New("connection reset by peer"), nil},
	}
	o := newOrchestrator(s)

	_, err := o.Submit(context.Background(), form())
	require.Error(t, err)
	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, err, o.Err())
	first := o.BookingID()

	require.NoError(t, o.Reset())
	assert.Equal(t, StateIdle, o.State())
	assert.Equal(t, first, o.BookingID())

	_, err = o.Submit(context.Background(), form())
	require.NoError(t, err)
	require.Len(t, s.requests, 2)
	assert.Equal(t, first, s.requests[1].BookingID)
}

func TestOrchestrator_ResetAfterSuccessStartsOver(t *testing.T) {
	s := &scriptedSubmitter{responses: []*models.BookingResponse{ok(""), ok("")}}
	o := newOrchestrator(s)

	_, err := o.Submit(context.Background(), form())
	require.NoError(t, err)
	first := o.BookingID()

	require.NoError(t, o.Reset())
	assert.Empty(t, o.BookingID())
	assert.Nil(t, o.Record())

	_, err = o.Submit(context.Background(), form())
	require.NoError(t, err)
	assert.NotEqual(t, first, o.BookingID())
}

func TestOrchestrator_RejectedResponseFails(t *testing.T) {
	s := &scriptedSubmitter{responses: []*models.BookingResponse{{
		Success: false,
		Code:    "NoAdminConfigured",
		Message: "Online booking is temporarily unavailable.",
		Fallback: &models.FallbackContacts{
			WhatsApp: "https://wa.me/254711222333",
			Email:    "reservations@camp.example",
		},
	}}}
	o := newOrchestrator(s)

	resp, err := o.Submit(context.Background(), form())
	require.Error(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, StateFailed, o.State())
	assert.Contains(t, err.Error(), "temporarily unavailable")

	link, err := o.MailtoLink()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "mailto:reservations@camp.example?"))
}

func TestOrchestrator_InvalidFormStaysIdle(t *testing.T) {
	s := &scriptedSubmitter{}
	o := newOrchestrator(s)

	f := form()
	f.Email = "amina-at-example"
	_, err := o.Submit(context.Background(), f)
	require.Error(t, err)
	assert.Equal(t, StateIdle, o.State())
	assert.Empty(t, s.requests)

	_, err = o.MailtoLink()
	assert.ErrorIs(t, err, ErrNoBooking)
}

func TestOrchestrator_InvalidTransitions(t *testing.T) {
	gate := make(chan struct{})
	s := &scriptedSubmitter{responses: []*models.BookingResponse{ok("")}, gate: gate}
	o := newOrchestrator(s)

	done := make(chan error)
	go func() {
		_, err := o.Submit(context.Background(), form())
		done <- err
	}()

	assert.Eventually(t, func() bool { return o.State() == StateSubmitting }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, o.Reset(), ErrInvalidTransition)
	_, err := o.WhatsAppLink()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	close(gate)
	require.NoError(t, <-done)

	_, err = o.Submit(context.Background(), form())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, s.requests, 1)
}

func TestOrchestrator_SameTotalOnEveryChannel(t *testing.T) {
	s := &scriptedSubmitter{errs: []error{errors.New("dial tcp: i/o timeout")}}
	o := newOrchestrator(s)

	_, err := o.Submit(context.Background(), form())
	require.Error(t, err)
	id := o.BookingID()

	mailto, err := o.MailtoLink()
	require.NoError(t, err)
	u, err := url.Parse(mailto)
	require.NoError(t, err)
	assert.Equal(t, "ops@gmail.com", u.Opaque)
	body := u.Query().Get("body")
	assert.Contains(t, body, "Total: $2,700")
	assert.Contains(t, body, id)
	assert.Contains(t, u.Query().Get("subject"), id)

	whatsapp, err := o.WhatsAppLink()
	require.NoError(t, err)
	w, err := url.Parse(whatsapp)
	require.NoError(t, err)
	assert.Equal(t, "/254711222333", w.Path)
	assert.Contains(t, w.Query().Get("text"), "Total: $2,700")
	assert.Contains(t, w.Query().Get("text"), id)

	assert.Equal(t, 2700.0, s.requests[0].Total)
}

func TestOrchestrator_ConflictIssuesNewBookingID(t *testing.T) {
	s := &scriptedSubmitter{responses: []*models.BookingResponse{
		{Success: false, Code: booking.CodeBookingIDConflict, Message: "reference already used"},
		ok(""),
	}}
	o := newOrchestrator(s)

	_, err := o.Submit(context.Background(), form())
	require.Error(t, err)
	first := s.requests[0].BookingID

	require.NoError(t, o.Reset())
	_, err = o.Submit(context.Background(), form())
	require.NoError(t, err)
	require.Len(t, s.requests, 2)
	assert.NotEqual(t, first, s.requests[1].BookingID)
	assert.True(t, booking.ValidBookingID(s.requests[1].BookingID))
}
