package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, user_id, amount, description, type, status, preference_id, payment_details, created_at, updated_at`

type PaymentRepository struct {
	db Executor
}

func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db.Pool}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, user_id, amount, description, type, status,
			preference_id, payment_details, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.UserID,
		payment.Amount,
		payment.Description,
		string(payment.Type),
		string(payment.Status),
		payment.PreferenceID,
		payment.PaymentDetails,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return application.ErrDuplicatePending
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanPayment(row)
}

func (r *PaymentRepository) FindByPreferenceID(ctx context.Context, preferenceID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE preference_id = $1`

	row := r.db.QueryRow(ctx, query, preferenceID)
	return scanPayment(row)
}

// FindLatestPending retrieves the most recent pending payment of the given
// type for a user. It backs the webhook reconciler's best-effort fallback
// when an event carries no embedded payment id.
func (r *PaymentRepository) FindLatestPending(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE user_id = $1 AND type = $2 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`

	row := r.db.QueryRow(ctx, query, userID, string(t))
	return scanPayment(row)
}

func (r *PaymentRepository) HasPending(ctx context.Context, userID uuid.UUID, t domain.PaymentType) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payments WHERE user_id = $1 AND type = $2 AND status = 'pending')`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, string(t)).Scan(&exists); err != nil {
		return false, fmt.Errorf("query pending payments: %w", err)
	}
	return exists, nil
}

func (r *PaymentRepository) AttachPreference(ctx context.Context, id uuid.UUID, preferenceID string) error {
	query := `UPDATE payments SET preference_id = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, preferenceID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to attach preference: %w", err)
	}
	if result.RowsAffected() == 0 {
		return application.ErrPaymentNotFound
	}
	return nil
}

// Approve transitions a payment pending → approved and stores the event
// payload for audit in one conditional update. The status guard makes the
// transition safe under concurrent duplicate deliveries: only one update
// matches, every other returns false.
func (r *PaymentRepository) Approve(ctx context.Context, id uuid.UUID, details json.RawMessage) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'approved', payment_details = $1, updated_at = $2
		WHERE id = $3 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, details, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to approve payment: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ExpirePendingBefore sweeps pending rows created before the cutoff to
// expired. Approved rows are never touched; the guard keeps approval
// monotonic even if the worker races a webhook.
func (r *PaymentRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		UPDATE payments
		SET status = 'expired', updated_at = $1
		WHERE id IN (
			SELECT id FROM payments
			WHERE status = 'pending' AND created_at < $2
			ORDER BY created_at ASC
			LIMIT $3
		) AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, time.Now().UTC(), cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("expire pending payments: %w", err)
	}
	return result.RowsAffected(), nil
}

// scanPayment converts a database row into a domain Payment.
// Returns application.ErrPaymentNotFound if the row doesn't exist.
func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var m PaymentModel
	err := row.Scan(
		&m.ID, &m.UserID, &m.Amount, &m.Description, &m.Type, &m.Status,
		&m.PreferenceID, &m.PaymentDetails, &m.CreatedAt, &m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return toDomainPayment(m), nil
}
