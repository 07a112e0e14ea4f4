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

const giftPaymentColumns = `id, gift_item_id, amount, status, preference_id, payer_email, payer_name, payment_details, created_at, updated_at`
const itemColumns = `id, user_id, name, price, icon, paid, payment_status`

type GiftRepository struct {
	pool interface {
		Executor
		Begin(ctx context.Context) (pgx.Tx, error)
	}
}

func NewGiftRepository(db *DB) *GiftRepository {
	return &GiftRepository{pool: db.Pool}
}

func (r *GiftRepository) CreatePayment(ctx context.Context, payment *domain.GiftPayment) error {
	query := `
		INSERT INTO gift_payments (
			id, gift_item_id, amount, status, preference_id,
			payer_email, payer_name, payment_details, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.GiftItemID,
		payment.Amount,
		string(payment.Status),
		payment.PreferenceID,
		payment.PayerEmail,
		payment.PayerName,
		payment.PaymentDetails,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create gift payment: %w", err)
	}

	return nil
}

func (r *GiftRepository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*domain.GiftPayment, error) {
	query := `SELECT ` + giftPaymentColumns + ` FROM gift_payments WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanGiftPayment(row)
}

func (r *GiftRepository) FindPaymentByPreferenceID(ctx context.Context, preferenceID string) (*domain.GiftPayment, error) {
	query := `SELECT ` + giftPaymentColumns + ` FROM gift_payments WHERE preference_id = $1`

	row := r.pool.QueryRow(ctx, query, preferenceID)
	return scanGiftPayment(row)
}

func (r *GiftRepository) AttachPreference(ctx context.Context, id uuid.UUID, preferenceID string) error {
	query := `UPDATE gift_payments SET preference_id = $1, updated_at = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, preferenceID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to attach preference: %w", err)
	}
	if result.RowsAffected() == 0 {
		return application.ErrGiftPaymentNotFound
	}
	return nil
}

func (r *GiftRepository) FindItem(ctx context.Context, id uuid.UUID) (*domain.WishListItem, error) {
	query := `SELECT ` + itemColumns + ` FROM wish_list_items WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanItem(row)
}

func (r *GiftRepository) ListItemsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WishListItem, error) {
	query := `SELECT ` + itemColumns + ` FROM wish_list_items WHERE user_id = $1 ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query wish list items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.WishListItem, error) {
		var m WishListItemModel
		err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Price, &m.Icon, &m.Paid, &m.PaymentStatus)
		return toDomainItem(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan wish list items: %w", err)
	}
	return items, nil
}

// CompletePayment applies the gift approval as two conditional updates in
// one transaction: the item flips paid only while still unpaid, and the
// payment flips approved only while still pending. Either guard failing
// rolls everything back and reports false, which callers treat as an
// idempotent no-op (duplicate delivery, or a second checkout losing the
// race for the same item).
func (r *GiftRepository) CompletePayment(ctx context.Context, paymentID, itemID uuid.UUID, details json.RawMessage) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	itemUpdate := `
		UPDATE wish_list_items
		SET paid = TRUE, payment_status = 'approved'
		WHERE id = $1 AND paid = FALSE
	`
	itemResult, err := tx.Exec(ctx, itemUpdate, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to mark item paid: %w", err)
	}
	if itemResult.RowsAffected() == 0 {
		return false, nil
	}

	paymentUpdate := `
		UPDATE gift_payments
		SET status = 'approved', payment_details = $1, updated_at = $2
		WHERE id = $3 AND status = 'pending'
	`
	paymentResult, err := tx.Exec(ctx, paymentUpdate, details, now, paymentID)
	if err != nil {
		return false, fmt.Errorf("failed to approve gift payment: %w", err)
	}
	if paymentResult.RowsAffected() == 0 {
		return false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

func (r *GiftRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		UPDATE gift_payments
		SET status = 'expired', updated_at = $1
		WHERE id IN (
			SELECT id FROM gift_payments
			WHERE status = 'pending' AND created_at < $2
			ORDER BY created_at ASC
			LIMIT $3
		) AND status = 'pending'
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("expire pending gift payments: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanGiftPayment(row pgx.Row) (*domain.GiftPayment, error) {
	var m GiftPaymentModel
	err := row.Scan(
		&m.ID, &m.GiftItemID, &m.Amount, &m.Status, &m.PreferenceID,
		&m.PayerEmail, &m.PayerName, &m.PaymentDetails, &m.CreatedAt, &m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrGiftPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan gift payment: %w", err)
	}
	return toDomainGiftPayment(m), nil
}

func scanItem(row pgx.Row) (*domain.WishListItem, error) {
	var m WishListItemModel
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Price, &m.Icon, &m.Paid, &m.PaymentStatus)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to scan wish list item: %w", err)
	}
	return toDomainItem(m), nil
}
