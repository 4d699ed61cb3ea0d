package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/billscout/backend/internal/model"
)

var ErrCreditCardNotFound = errors.New("credit card not found")

type CreditCardRepository struct {
	db *sqlx.DB
}

func NewCreditCardRepository(db *sqlx.DB) *CreditCardRepository {
	return &CreditCardRepository{db: db}
}

func (r *CreditCardRepository) Create(ctx context.Context, card *model.CreditCard) error {
	query := `
		INSERT INTO credit_cards (id, user_id, name, last_four, previous_due, total_due,
			due_date, statement_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`

	card.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		card.ID, card.UserID, card.Name, card.LastFour, card.PreviousDue, card.TotalDue,
		card.DueDate, card.StatementDate, card.IsActive,
	).Scan(&card.CreatedAt, &card.UpdatedAt)
}

func (r *CreditCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CreditCard, error) {
	var card model.CreditCard
	query := `SELECT * FROM credit_cards WHERE id = $1`
	err := r.db.GetContext(ctx, &card, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCreditCardNotFound
	}
	return &card, err
}

func (r *CreditCardRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]model.CreditCard, error) {
	var cards []model.CreditCard
	query := `
		SELECT * FROM credit_cards
		WHERE user_id = $1 AND is_active = true
		ORDER BY due_date ASC NULLS LAST`
	err := r.db.SelectContext(ctx, &cards, query, userID)
	return cards, err
}

func (r *CreditCardRepository) Update(ctx context.Context, card *model.CreditCard) error {
	query := `
		UPDATE credit_cards
		SET name = $2, last_four = $3, previous_due = $4, total_due = $5,
			due_date = $6, statement_date = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.db.QueryRowxContext(ctx, query,
		card.ID, card.Name, card.LastFour, card.PreviousDue, card.TotalDue,
		card.DueDate, card.StatementDate, card.IsActive,
	).Scan(&card.UpdatedAt)
}

func (r *CreditCardRepository) Deactivate(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE credit_cards
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active = true`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCreditCardNotFound
	}
	return nil
}
