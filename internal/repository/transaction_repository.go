package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/billscout/backend/internal/model"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, merchant_name, normalized_merchant,
			category_id, date, due_date, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`

	tx.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		tx.ID, tx.UserID, tx.Type, tx.Amount, tx.MerchantName, tx.NormalizedMerchant,
		tx.CategoryID, tx.Date, tx.DueDate, tx.PaymentStatus,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	query := `SELECT * FROM transactions WHERE id = $1`
	err := r.db.GetContext(ctx, &tx, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	return &tx, err
}

type TransactionFilters struct {
	Type      *model.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Merchant  *string
	Limit     int
	Offset    int
}

func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filters TransactionFilters) ([]model.Transaction, error) {
	var transactions []model.Transaction
	query := `
		SELECT * FROM transactions
		WHERE user_id = $1
		AND ($2::text IS NULL OR type = $2)
		AND ($3::timestamp IS NULL OR date >= $3)
		AND ($4::timestamp IS NULL OR date <= $4)
		AND ($5::text IS NULL OR normalized_merchant = $5)
		ORDER BY date DESC, created_at DESC
		LIMIT $6 OFFSET $7`

	err := r.db.SelectContext(ctx, &transactions, query,
		userID, filters.Type, filters.StartDate, filters.EndDate, filters.Merchant, filters.Limit, filters.Offset,
	)
	return transactions, err
}

// ListDebits returns the full debit history for a user in chronological
// order. The pattern detector consumes this.
func (r *TransactionRepository) ListDebits(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	var transactions []model.Transaction
	query := `
		SELECT * FROM transactions
		WHERE user_id = $1 AND type = 'DEBIT'
		ORDER BY date ASC`
	err := r.db.SelectContext(ctx, &transactions, query, userID)
	return transactions, err
}

// GetSpentTotal sums debit amounts in [startDate, endDate], optionally
// limited to one category. Used by the budget status calculator.
func (r *TransactionRepository) GetSpentTotal(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error) {
	var spent decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = $1 AND type = 'DEBIT'
		AND date >= $2 AND date <= $3
		AND ($4::uuid IS NULL OR category_id = $4)`
	err := r.db.GetContext(ctx, &spent, query, userID, startDate, endDate, categoryID)
	return spent, err
}

// UpdatePaymentStatus marks a transaction's payment status; the only
// transaction mutation this service performs.
func (r *TransactionRepository) UpdatePaymentStatus(ctx context.Context, id, userID uuid.UUID, status model.PaymentStatus) error {
	query := `
		UPDATE transactions
		SET payment_status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID, status)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ListActiveUserIDs returns users with transactions on or after since. The
// scheduled detection sweep iterates over these.
func (r *TransactionRepository) ListActiveUserIDs(ctx context.Context, since time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT DISTINCT user_id FROM transactions WHERE date >= $1`
	err := r.db.SelectContext(ctx, &ids, query, since)
	return ids, err
}
