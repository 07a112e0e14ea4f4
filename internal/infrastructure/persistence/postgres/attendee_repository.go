package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const attendeeColumns = `id, user_id, first_name, last_name, contact, rsvp_status, plus_one, plus_one_name, invitation_token, created_at, updated_at`

type AttendeeRepository struct {
	db Executor
}

func NewAttendeeRepository(db *DB) *AttendeeRepository {
	return &AttendeeRepository{db: db.Pool}
}

func (r *AttendeeRepository) Create(ctx context.Context, attendee *domain.Attendee) error {
	query := `
		INSERT INTO attendees (
			id, user_id, first_name, last_name, contact, rsvp_status,
			plus_one, plus_one_name, invitation_token, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		attendee.ID,
		attendee.UserID,
		attendee.FirstName,
		attendee.LastName,
		attendee.Contact,
		string(attendee.RSVPStatus),
		attendee.PlusOne,
		attendee.PlusOneName,
		attendee.InvitationToken,
		attendee.CreatedAt,
		attendee.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create attendee: %w", err)
	}

	return nil
}

func (r *AttendeeRepository) FindByToken(ctx context.Context, token string) (*domain.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM attendees WHERE invitation_token = $1`

	row := r.db.QueryRow(ctx, query, token)
	return scanAttendee(row)
}

func (r *AttendeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM attendees WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanAttendee(row)
}

func (r *AttendeeRepository) UpdateRSVP(ctx context.Context, attendee *domain.Attendee) error {
	query := `
		UPDATE attendees
		SET rsvp_status = $1, plus_one = $2, plus_one_name = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query,
		string(attendee.RSVPStatus),
		attendee.PlusOne,
		attendee.PlusOneName,
		time.Now().UTC(),
		attendee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rsvp: %w", err)
	}
	if result.RowsAffected() == 0 {
		return application.ErrAttendeeNotFound
	}
	return nil
}

func scanAttendee(row pgx.Row) (*domain.Attendee, error) {
	var m AttendeeModel
	err := row.Scan(
		&m.ID, &m.UserID, &m.FirstName, &m.LastName, &m.Contact, &m.RSVPStatus,
		&m.PlusOne, &m.PlusOneName, &m.InvitationToken, &m.CreatedAt, &m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("failed to scan attendee: %w", err)
	}
	return toDomainAttendee(m), nil
}
