package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
)

// RSVPService handles guest replies. RSVP writes are independent of the
// payment tables; nothing here touches a payment row.
type RSVPService struct {
	attendees application.AttendeeRepository
	mailer    application.Mailer
	logger    *slog.Logger
}

func NewRSVPService(attendees application.AttendeeRepository, mailer application.Mailer, logger *slog.Logger) *RSVPService {
	return &RSVPService{attendees: attendees, mailer: mailer, logger: logger}
}

// GetAttendeeByToken returns the guest record behind an invitation token,
// used to prefill the RSVP form.
func (s *RSVPService) GetAttendeeByToken(ctx context.Context, token string) (*domain.Attendee, error) {
	attendee, err := s.attendees.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, application.ErrAttendeeNotFound) {
			return nil, application.NewNotFoundError(domain.NewAttendeeNotFoundError(token))
		}
		return nil, application.NewInternalError(err)
	}
	return attendee, nil
}

// SubmitRSVP records a guest's reply. A token updates the existing guest
// record; without one a new record is created. Confirmation mail is
// send-and-log: a delivery failure never fails the reply.
func (s *RSVPService) SubmitRSVP(ctx context.Context, cmd SubmitRSVPCommand) (*domain.Attendee, error) {
	if !domain.ValidRSVPStatus(cmd.Status) {
		return nil, application.NewInvalidInputError(fmt.Errorf("invalid rsvp status %q", cmd.Status))
	}

	var attendee *domain.Attendee
	if cmd.Token != "" {
		found, err := s.attendees.FindByToken(ctx, cmd.Token)
		if err != nil {
			if errors.Is(err, application.ErrAttendeeNotFound) {
				return nil, application.NewNotFoundError(domain.NewAttendeeNotFoundError(cmd.Token))
			}
			return nil, application.NewInternalError(err)
		}
		found.RSVPStatus = cmd.Status
		found.PlusOne = cmd.PlusOne
		found.PlusOneName = cmd.PlusOneName
		if err := s.attendees.UpdateRSVP(ctx, found); err != nil {
			return nil, application.NewInternalError(err)
		}
		attendee = found
	} else {
		if cmd.FirstName == "" {
			return nil, application.NewInvalidInputError(domain.NewMissingRequiredError("first_name"))
		}
		created := domain.NewAttendee(cmd.UserID, cmd.FirstName, cmd.LastName, cmd.Contact)
		created.RSVPStatus = cmd.Status
		created.PlusOne = cmd.PlusOne
		created.PlusOneName = cmd.PlusOneName
		if err := s.attendees.Create(ctx, created); err != nil {
			return nil, application.NewInternalError(err)
		}
		attendee = created
	}

	s.sendConfirmation(ctx, attendee)
	return attendee, nil
}

// UpdateRSVPStatus is the owner-side correction of a reply. An attendee
// belonging to another owner reads as not found.
func (s *RSVPService) UpdateRSVPStatus(ctx context.Context, cmd UpdateRSVPCommand) (*domain.Attendee, error) {
	if !domain.ValidRSVPStatus(cmd.Status) {
		return nil, application.NewInvalidInputError(fmt.Errorf("invalid rsvp status %q", cmd.Status))
	}

	attendee, err := s.attendees.FindByID(ctx, cmd.AttendeeID)
	if err != nil {
		if errors.Is(err, application.ErrAttendeeNotFound) {
			return nil, application.NewNotFoundError(domain.NewAttendeeNotFoundError(cmd.AttendeeID.String()))
		}
		return nil, application.NewInternalError(err)
	}
	if attendee.UserID != cmd.OwnerID {
		return nil, application.NewNotFoundError(domain.NewAttendeeNotFoundError(cmd.AttendeeID.String()))
	}

	attendee.RSVPStatus = cmd.Status
	if err := s.attendees.UpdateRSVP(ctx, attendee); err != nil {
		return nil, application.NewInternalError(err)
	}
	return attendee, nil
}

func (s *RSVPService) sendConfirmation(ctx context.Context, attendee *domain.Attendee) {
	if !strings.Contains(attendee.Contact, "@") {
		return
	}
	body := fmt.Sprintf("Hi %s, your reply (%s) has been recorded. Thank you!",
		attendee.FirstName, attendee.RSVPStatus)
	if err := s.mailer.Send(ctx, attendee.Contact, "RSVP received", body); err != nil {
		s.logger.Warn("rsvp confirmation mail failed",
			"attendee_id", attendee.ID, "error", err)
	}
}
