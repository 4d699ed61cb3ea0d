package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/billscout/backend/internal/model"
)

var (
	ErrSuggestionNotFound = errors.New("suggestion not found")

	// ErrDuplicateSuggestion is returned when a non-dismissed suggestion
	// already exists for the merchant pattern. The partial unique index on
	// (user_id, merchant_pattern) WHERE status <> 'DISMISSED' makes the
	// existence check + insert atomic under concurrent creation.
	ErrDuplicateSuggestion = errors.New("suggestion already exists for merchant pattern")
)

const pqUniqueViolation = "23505"

type SuggestionRepository struct {
	db *sqlx.DB
}

func NewSuggestionRepository(db *sqlx.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

func (r *SuggestionRepository) Create(ctx context.Context, s *model.PatternSuggestion) error {
	query := `
		INSERT INTO pattern_suggestions (id, user_id, merchant_pattern, display_name, average_amount,
			amount_variance, frequency, typical_day, occurrence_count, confidence, next_expected,
			category_id, status, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING created_at`

	s.ID = uuid.New()
	err := r.db.QueryRowxContext(ctx, query,
		s.ID, s.UserID, s.MerchantPattern, s.DisplayName, s.AverageAmount,
		s.AmountVariance, s.Frequency, s.TypicalDay, s.OccurrenceCount, s.Confidence,
		s.NextExpected, s.CategoryID, s.Status, s.Source,
	).Scan(&s.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrDuplicateSuggestion
	}
	return err
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PatternSuggestion, error) {
	var s model.PatternSuggestion
	query := `SELECT * FROM pattern_suggestions WHERE id = $1`
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSuggestionNotFound
	}
	return &s, err
}

func (r *SuggestionRepository) ListPending(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error) {
	var suggestions []model.PatternSuggestion
	query := `
		SELECT * FROM pattern_suggestions
		WHERE user_id = $1 AND status = 'PENDING'
		ORDER BY confidence DESC, created_at ASC`
	err := r.db.SelectContext(ctx, &suggestions, query, userID)
	return suggestions, err
}

func (r *SuggestionRepository) ListNonDismissed(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error) {
	var suggestions []model.PatternSuggestion
	query := `
		SELECT * FROM pattern_suggestions
		WHERE user_id = $1 AND status <> 'DISMISSED'
		ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &suggestions, query, userID)
	return suggestions, err
}

func (r *SuggestionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SuggestionStatus, dismissedAt *time.Time) error {
	query := `
		UPDATE pattern_suggestions
		SET status = $2, dismissed_at = $3
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, dismissedAt)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSuggestionNotFound
	}
	return nil
}

// DeleteDismissedBefore purges dismissed suggestions older than the cutoff,
// allowing persistent patterns to be re-suggested after the retention window.
func (r *SuggestionRepository) DeleteDismissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM pattern_suggestions WHERE status = 'DISMISSED' AND dismissed_at < $1`
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
