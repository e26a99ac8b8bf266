package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"safaricamp/models"
	"safaricamp/services/booking"
	"safaricamp/services/contact"
	"safaricamp/services/notification"
	"safaricamp/utils"
)

// Failure codes that are not validation errors.
const (
	CodeNoAdminConfigured       = "NoAdminConfigured"
	CodeAdminNotificationFailed = "AdminNotificationFailed"
	CodeInternalError           = "InternalError"
)

// BookingHandler exposes the booking submission pipeline over HTTP.
type BookingHandler struct {
	Service  booking.BookingService
	Contacts contact.Handles
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService, contacts contact.Handles) *BookingHandler {
	registerFieldNames.Do(useJSONFieldNames)
	return &BookingHandler{
		Service:  svc,
		Contacts: contacts,
	}
}

// SubmitBooking validates a booking, notifies the camp and the guest, and
// reports per-channel delivery. Every failure response carries the manual
// contact handles.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	logger := getLogger(c)
	fallback := h.Contacts.Fallback()

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Info("invalid booking payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, booking.CodeInvalidRequest, bindingMessage(err), fallback)
		return
	}

	sub, err := h.Service.Submit(c.Request.Context(), req)
	if err != nil {
		h.submitError(c, err)
		return
	}

	record := sub.Record
	whatsapp := contact.WhatsAppLink(h.Contacts.WhatsAppNumber, contact.WhatsAppSummary(record))

	if sub.Duplicate {
		c.JSON(http.StatusOK, models.BookingResponse{
			Success:      true,
			Message:      "This booking has already been received.",
			BookingID:    record.ID,
			Duplicate:    true,
			EmailStatus:  models.SkippedEmailStatus(),
			Pricing:      &record.Pricing,
			WhatsAppLink: whatsapp,
		})
		return
	}

	result := sub.Result
	if result.AdminSucceeded() == 0 {
		logger.Error("no admin notification delivered", zap.String("bookingId", record.ID))
		c.JSON(http.StatusInternalServerError, models.BookingResponse{
			Success:      false,
			Code:         CodeAdminNotificationFailed,
			Message:      "We could not deliver your booking to our team. Please contact us directly and quote your booking ID.",
			BookingID:    record.ID,
			EmailStatus:  models.NewEmailStatus(result),
			Pricing:      &record.Pricing,
			WhatsAppLink: whatsapp,
			Fallback:     fallback,
		})
		return
	}

	c.JSON(http.StatusOK, models.BookingResponse{
		Success:      true,
		Message:      successMessage(result),
		BookingID:    record.ID,
		EmailStatus:  models.NewEmailStatus(result),
		Pricing:      &record.Pricing,
		WhatsAppLink: whatsapp,
	})
}

// QuoteBooking prices a stay so every page shows the same breakdown the
// submission will charge.
func (h *BookingHandler) QuoteBooking(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": booking.CodeInvalidRequest, "message": bindingMessage(err)})
		return
	}
	pricing, err := h.Service.Quote(req.GroupSize, req.Nights, req.PricePerNight)
	if err != nil {
		if ve, ok := booking.AsValidationError(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": ve.Code, "message": ve.Message})
			return
		}
		getLogger(c).Error("quote failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": CodeInternalError, "message": "could not compute price"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pricing": pricing})
}

func (h *BookingHandler) submitError(c *gin.Context, err error) {
	fallback := h.Contacts.Fallback()

	if ve, ok := booking.AsValidationError(err); ok {
		utils.JSONError(c, http.StatusBadRequest, ve.Code, ve.Message, fallback)
		return
	}
	if errors.Is(err, booking.ErrBookingIDConflict) {
		utils.JSONError(c, http.StatusConflict, booking.CodeBookingIDConflict,
			"This booking reference was already used for a booking with different details. Please submit again to get a new reference.", fallback)
		return
	}
	if errors.Is(err, notification.ErrNoAdminConfigured) {
		utils.JSONError(c, http.StatusInternalServerError, CodeNoAdminConfigured,
			"Online booking is temporarily unavailable. Please contact us directly.", fallback)
		return
	}

	getLogger(c).Error("booking submission failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, CodeInternalError,
		"We could not process your booking automatically. Please contact us directly.", fallback)
}

func successMessage(r models.DispatchResult) string {
	switch {
	case r.FullyDelivered():
		return "Booking submitted successfully! Check your email for confirmation."
	case !r.Customer.Delivered():
		return "Booking received, but we could not send your confirmation email. Please keep your booking ID."
	default:
		return "Booking received. Some of our team's notifications could not be delivered; we may contact you to confirm."
	}
}

var registerFieldNames sync.Once

// useJSONFieldNames makes gin's validator report fields by their JSON key.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindingMessage turns a binding failure into a sentence a guest can act on.
func bindingMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " has the wrong type"
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "request body is not valid JSON"
	}
	return "invalid booking details"
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "email address is not valid"
	case "gte", "min":
		return field + " must be at least " + fe.Param()
	default:
		return field + " is not valid"
	}
}

// jsonPath drops the root struct from a validator namespace such as
// "BookingRequest.location.name", leaving the request's JSON path.
func jsonPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}
