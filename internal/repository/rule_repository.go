package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/billscout/backend/internal/model"
)

var ErrRuleNotFound = errors.New("recurring rule not found")

type RuleRepository struct {
	db *sqlx.DB
}

func NewRuleRepository(db *sqlx.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) Create(ctx context.Context, rule *model.RecurringRule) error {
	query := `
		INSERT INTO recurring_rules (id, user_id, merchant_pattern, display_name, category_id,
			expected_amount, amount_variance, frequency, day_of_period, last_occurrence,
			next_expected, occurrence_count, is_active, is_user_confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING created_at, updated_at`

	rule.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		rule.ID, rule.UserID, rule.MerchantPattern, rule.DisplayName, rule.CategoryID,
		rule.ExpectedAmount, rule.AmountVariance, rule.Frequency, rule.DayOfPeriod,
		rule.LastOccurrence, rule.NextExpected, rule.OccurrenceCount, rule.IsActive, rule.IsUserConfirmed,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
}

func (r *RuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RecurringRule, error) {
	var rule model.RecurringRule
	query := `SELECT * FROM recurring_rules WHERE id = $1`
	err := r.db.GetContext(ctx, &rule, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	return &rule, err
}

func (r *RuleRepository) List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	var rules []model.RecurringRule
	query := `SELECT * FROM recurring_rules WHERE user_id = $1 ORDER BY next_expected ASC NULLS LAST`
	err := r.db.SelectContext(ctx, &rules, query, userID)
	return rules, err
}

func (r *RuleRepository) ListActive(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	var rules []model.RecurringRule
	query := `
		SELECT * FROM recurring_rules
		WHERE user_id = $1 AND is_active = true
		ORDER BY next_expected ASC NULLS LAST`
	err := r.db.SelectContext(ctx, &rules, query, userID)
	return rules, err
}

func (r *RuleRepository) Update(ctx context.Context, rule *model.RecurringRule) error {
	query := `
		UPDATE recurring_rules
		SET merchant_pattern = $2, display_name = $3, category_id = $4, expected_amount = $5,
			amount_variance = $6, frequency = $7, day_of_period = $8, last_occurrence = $9,
			next_expected = $10, occurrence_count = $11, is_active = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.db.QueryRowxContext(ctx, query,
		rule.ID, rule.MerchantPattern, rule.DisplayName, rule.CategoryID, rule.ExpectedAmount,
		rule.AmountVariance, rule.Frequency, rule.DayOfPeriod, rule.LastOccurrence,
		rule.NextExpected, rule.OccurrenceCount, rule.IsActive,
	).Scan(&rule.UpdatedAt)
}

// Deactivate soft-deletes a rule; history stays intact and the merchant can
// be re-suggested later.
func (r *RuleRepository) Deactivate(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE recurring_rules
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
		return ErrRuleNotFound
	}
	return nil
}

// RecordOccurrence advances a rule after a matching payment was observed.
func (r *RuleRepository) RecordOccurrence(ctx context.Context, id uuid.UUID, occurredAt, nextExpected time.Time) error {
	query := `
		UPDATE recurring_rules
		SET last_occurrence = $2, next_expected = $3, occurrence_count = occurrence_count + 1, updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, occurredAt, nextExpected)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRuleNotFound
	}
	return nil
}
