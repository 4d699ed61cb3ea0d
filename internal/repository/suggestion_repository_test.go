package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/billscout/backend/internal/model"
)

var suggestionColumns = []string{
	"id", "user_id", "merchant_pattern", "display_name", "average_amount",
	"amount_variance", "frequency", "typical_day", "occurrence_count", "confidence",
	"next_expected", "category_id", "status", "source", "created_at", "dismissed_at",
}

func suggestionRow(id, userID uuid.UUID, pattern string, status model.SuggestionStatus) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, userID, pattern, pattern, decimal.NewFromFloat(499),
		0.05, "MONTHLY", 15, 4, 0.9,
		now, nil, status, "PATTERN_DETECTION", now, nil,
	}
}

func pendingSuggestion(userID uuid.UUID) *model.PatternSuggestion {
	return &model.PatternSuggestion{
		UserID:          userID,
		MerchantPattern: "netflix",
		DisplayName:     "Netflix",
		AverageAmount:   decimal.NewFromFloat(499),
		AmountVariance:  0.05,
		Frequency:       model.FrequencyMonthly,
		TypicalDay:      15,
		OccurrenceCount: 4,
		Confidence:      0.9,
		NextExpected:    time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		Status:          model.SuggestionStatusPending,
		Source:          model.SuggestionSourceDetection,
	}
}

func TestSuggestionRepository_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewSuggestionRepository(db)

	s := pendingSuggestion(uuid.New())
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())

	mock.ExpectQuery(`INSERT INTO pattern_suggestions`).
		WithArgs(sqlmock.AnyArg(), s.UserID, s.MerchantPattern, s.DisplayName, s.AverageAmount,
			s.AmountVariance, s.Frequency, s.TypicalDay, s.OccurrenceCount, s.Confidence,
			s.NextExpected, nil, s.Status, s.Source).
		WillReturnRows(rows)

	err := repo.Create(context.Background(), s)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The partial unique index on (user_id, merchant_pattern) raises a unique
// violation when a non-dismissed suggestion already exists; the repository
// maps it to ErrDuplicateSuggestion so callers can treat it as a no-op.
func TestSuggestionRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewSuggestionRepository(db)

	s := pendingSuggestion(uuid.New())

	mock.ExpectQuery(`INSERT INTO pattern_suggestions`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.Create(context.Background(), s)

	assert.ErrorIs(t, err, ErrDuplicateSuggestion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionRepository_GetByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock, uuid.UUID)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				rows := sqlmock.NewRows(suggestionColumns).
					AddRow(suggestionRow(id, uuid.New(), "netflix", model.SuggestionStatusPending)...)
				mock.ExpectQuery(`SELECT \* FROM pattern_suggestions WHERE id = \$1`).
					WithArgs(id).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectQuery(`SELECT \* FROM pattern_suggestions WHERE id = \$1`).
					WithArgs(id).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrSuggestionNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewSuggestionRepository(db)

			id := uuid.New()
			tt.setupMock(mock, id)

			s, err := repo.GetByID(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, id, s.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSuggestionRepository_ListPending(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewSuggestionRepository(db)

	userID := uuid.New()
	rows := sqlmock.NewRows(suggestionColumns).
		AddRow(suggestionRow(uuid.New(), userID, "netflix", model.SuggestionStatusPending)...).
		AddRow(suggestionRow(uuid.New(), userID, "spotify", model.SuggestionStatusPending)...)

	mock.ExpectQuery(`SELECT \* FROM pattern_suggestions`).
		WithArgs(userID).
		WillReturnRows(rows)

	suggestions, err := repo.ListPending(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, suggestions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionRepository_UpdateStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "success", rowsAffected: 1},
		{name: "not found", rowsAffected: 0, wantErr: ErrSuggestionNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewSuggestionRepository(db)

			id := uuid.New()
			dismissedAt := time.Now()

			mock.ExpectExec(`UPDATE pattern_suggestions`).
				WithArgs(id, model.SuggestionStatusDismissed, &dismissedAt).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.UpdateStatus(context.Background(), id, model.SuggestionStatusDismissed, &dismissedAt)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSuggestionRepository_DeleteDismissedBefore(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewSuggestionRepository(db)

	cutoff := time.Now().AddDate(0, -1, 0)

	mock.ExpectExec(`DELETE FROM pattern_suggestions WHERE status = 'DISMISSED' AND dismissed_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteDismissedBefore(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
