// Package services contains the submission orchestration for the registration
// backend: the sequencing of validation, identifier generation, phone
// normalization, persistence, and confirmation dispatch, together with the
// fatal-versus-best-effort decisions between those steps.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/event-registration/registration-backend/internal/config"
	"github.com/event-registration/registration-backend/internal/db/models"
	"github.com/event-registration/registration-backend/internal/db/repositories"
	"github.com/event-registration/registration-backend/internal/sms"
	"github.com/event-registration/registration-backend/internal/telemetry"
	"github.com/event-registration/registration-backend/internal/validation"
	"github.com/event-registration/registration-backend/pkg/regcode"
)

// RegistrationStore is the narrow persistence surface the orchestrator needs.
// *repositories.RegistrationRepository satisfies it; tests substitute fakes.
type RegistrationStore interface {
	Insert(ctx context.Context, reg *models.Registration) error
	MarkNotified(ctx context.Context, id string) error
}

// Notifier delivers the confirmation message. *sms.Client satisfies it.
type Notifier interface {
	Send(ctx context.Context, destination, message string) sms.Result
}

// Status classifies the outcome of a submission.
type Status int

const (
	// StatusAccepted — the registration was persisted (SMS delivery may still
	// have failed; check SMSSent).
	StatusAccepted Status = iota
	// StatusInvalid — the payload failed validation; nothing was persisted.
	StatusInvalid
	// StatusDuplicate — the phone number is already registered.
	StatusDuplicate
	// StatusStoreFailed — the store was unavailable; safe for the caller to retry.
	StatusStoreFailed
)

// Result is the caller-facing outcome of one submission.
type Result struct {
	Status       Status
	Message      string
	FieldErrors  []validation.FieldError
	Registration *models.Registration
	SMSSent      bool
}

// SubmissionService sequences one registration from payload to stored record
// plus confirmation message. Each call is independent; the service holds no
// per-request state, so a single instance serves concurrent submissions.
type SubmissionService struct {
	store    RegistrationStore
	notifier Notifier
	event    *config.EventConfig
}

// NewSubmissionService creates a SubmissionService.
func NewSubmissionService(store RegistrationStore, notifier Notifier, event *config.EventConfig) *SubmissionService {
	return &SubmissionService{store: store, notifier: notifier, event: event}
}

// Submit runs the submission pipeline:
//
//	Received → Validated → Persisted → Notified|NotifyFailed → Completed
//
// Validation and persistence failures terminate the pipeline with no partial
// writes. Notification failure does NOT roll anything back: the registration
// must not be lost because the SMS provider is unreachable, so a failed send
// only leaves SMSSent false on the stored record.
func (s *SubmissionService) Submit(ctx context.Context, req *models.RegistrationRequest) *Result {
	if fieldErrs := validation.ValidateRegistration(req); len(fieldErrs) > 0 {
		telemetry.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return &Result{
			Status:      StatusInvalid,
			Message:     "Please correct the highlighted fields and try again.",
			FieldErrors: fieldErrs,
		}
	}

	reg := models.FromRequest(req, regcode.Generate())

	if err := s.store.Insert(ctx, reg); err != nil {
		if errors.Is(err, repositories.ErrDuplicateContact) {
			telemetry.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return &Result{
				Status:  StatusDuplicate,
				Message: "This phone number is already registered. Please use a different number.",
			}
		}
		telemetry.RegistrationsTotal.WithLabelValues("store_error").Inc()
		slog.Error("registration insert failed", "error", err)
		return &Result{
			Status:  StatusStoreFailed,
			Message: "Registration failed. Please try again.",
		}
	}

	telemetry.RegistrationsTotal.WithLabelValues("accepted").Inc()

	destination := validation.FormatPhoneNumber(reg.PhoneNumber)
	outcome := s.notifier.Send(ctx, destination, s.confirmationMessage(reg))

	if outcome.Delivered {
		reg.SMSSent = true
		// Best effort: the message already reached the attendee. A failure
		// here only leaves sms_sent stale in the admin dashboard.
		if err := s.store.MarkNotified(ctx, reg.ID); err != nil {
			slog.Warn("failed to mark registration notified",
				"registration_id", reg.ID, "error", err)
		}
	} else {
		slog.Warn("confirmation sms not delivered",
			"registration_id", reg.ID, "reason", outcome.ErrorReason)
	}

	return &Result{
		Status:       StatusAccepted,
		Message:      "Registration successful!",
		Registration: reg,
		SMSSent:      outcome.Delivered,
	}
}

// confirmationMessage renders the SMS body sent to a newly registered
// attendee, embedding their registration number and the event logistics.
func (s *SubmissionService) confirmationMessage(reg *models.Registration) string {
	return fmt.Sprintf(
		"Hi %s!\n\nYou're registered for %s!\n\nRegistration #: %s\nDate: %s\nTime: %s\nVenue: %s\n\nSee you there!\n- %s",
		reg.FullName,
		s.event.Name,
		reg.RegistrationNumber,
		s.event.DateLine,
		s.event.TimeLine,
		s.event.VenueLine,
		s.event.Organizer,
	)
}
