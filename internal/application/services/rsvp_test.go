package services_test

import (
	"context"
	"testing"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/application/mocks"
	"github.com/MatiasOrellano/invitly-backend/internal/application/services"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRSVP_WithTokenUpdatesExistingGuest(t *testing.T) {
	existing := domain.NewAttendee(uuid.New(), "Ana", "García", "ana@example.com")
	var updated *domain.Attendee
	mailedTo := ""

	attendees := &mocks.AttendeeRepository{
		FindByTokenFn: func(ctx context.Context, token string) (*domain.Attendee, error) {
			require.Equal(t, existing.InvitationToken, token)
			return existing, nil
		},
		UpdateRSVPFn: func(ctx context.Context, a *domain.Attendee) error {
			updated = a
			return nil
		},
	}
	mailer := &mocks.Mailer{
		SendFn: func(ctx context.Context, to, subject, body string) error {
			mailedTo = to
			return nil
		},
	}

	svc := services.NewRSVPService(attendees, mailer, discardLogger())

	attendee, err := svc.SubmitRSVP(context.Background(), services.SubmitRSVPCommand{
		Token:       existing.InvitationToken,
		Status:      domain.RSVPAttending,
		PlusOne:     true,
		PlusOneName: "Luis",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.RSVPAttending, attendee.RSVPStatus)
	assert.True(t, attendee.PlusOne)
	assert.Equal(t, "Luis", attendee.PlusOneName)
	assert.Equal(t, "ana@example.com", mailedTo)
}

func TestSubmitRSVP_WithoutTokenCreatesGuest(t *testing.T) {
	userID := uuid.New()
	var created *domain.Attendee

	attendees := &mocks.AttendeeRepository{
		CreateFn: func(ctx context.Context, a *domain.Attendee) error {
			created = a
			return nil
		},
	}

	svc := services.NewRSVPService(attendees, &mocks.Mailer{}, discardLogger())

	attendee, err := svc.SubmitRSVP(context.Background(), services.SubmitRSVPCommand{
		UserID:    userID,
		FirstName: "Pedro",
		LastName:  "López",
		Contact:   "555-1234",
		Status:    domain.RSVPDeclined,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, domain.RSVPDeclined, attendee.RSVPStatus)
	assert.NotEmpty(t, attendee.InvitationToken)
}

func TestSubmitRSVP_InvalidStatus(t *testing.T) {
	svc := services.NewRSVPService(&mocks.AttendeeRepository{}, &mocks.Mailer{}, discardLogger())

	_, err := svc.SubmitRSVP(context.Background(), services.SubmitRSVPCommand{
		FirstName: "Pedro",
		Status:    "maybe",
	})

	require.Error(t, err)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeInvalidInput, svcErr.Code)
}

func TestSubmitRSVP_MailFailureDoesNotFailReply(t *testing.T) {
	existing := domain.NewAttendee(uuid.New(), "Ana", "García", "ana@example.com")

	attendees := &mocks.AttendeeRepository{
		FindByTokenFn: func(ctx context.Context, token string) (*domain.Attendee, error) {
			return existing, nil
		},
	}
	mailer := &mocks.Mailer{
		SendFn: func(ctx context.Context, to, subject, body string) error {
			return assert.AnError
		},
	}

	svc := services.NewRSVPService(attendees, mailer, discardLogger())

	_, err := svc.SubmitRSVP(context.Background(), services.SubmitRSVPCommand{
		Token:  existing.InvitationToken,
		Status: domain.RSVPAttending,
	})

	require.NoError(t, err)
}

func TestUpdateRSVPStatus_ForeignAttendeeReadsAsNotFound(t *testing.T) {
	existing := domain.NewAttendee(uuid.New(), "Ana", "García", "ana@example.com")

	attendees := &mocks.AttendeeRepository{
		FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
			return existing, nil
		},
	}

	svc := services.NewRSVPService(attendees, &mocks.Mailer{}, discardLogger())

	_, err := svc.UpdateRSVPStatus(context.Background(), services.UpdateRSVPCommand{
		AttendeeID: existing.ID,
		OwnerID:    uuid.New(), // not the owner
		Status:     domain.RSVPDeclined,
	})

	require.Error(t, err)
	svcErr, ok := application.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, application.ErrCodeNotFound, svcErr.Code)
}

func TestUpdateRSVPStatus_Success(t *testing.T) {
	ownerID := uuid.New()
	existing := domain.NewAttendee(ownerID, "Ana", "García", "ana@example.com")
	var updated *domain.Attendee

	attendees := &mocks.AttendeeRepository{
		FindByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
			return existing, nil
		},
		UpdateRSVPFn: func(ctx context.Context, a *domain.Attendee) error {
			updated = a
			return nil
		},
	}

	svc := services.NewRSVPService(attendees, &mocks.Mailer{}, discardLogger())

	attendee, err := svc.UpdateRSVPStatus(context.Background(), services.UpdateRSVPCommand{
		AttendeeID: existing.ID,
		OwnerID:    ownerID,
		Status:     domain.RSVPDeclined,
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.RSVPDeclined, attendee.RSVPStatus)
}
