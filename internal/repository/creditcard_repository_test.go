package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/billscout/backend/internal/model"
)

var creditCardColumns = []string{
	"id", "user_id", "name", "last_four", "previous_due", "total_due",
	"due_date", "statement_date", "is_active", "created_at", "updated_at",
}

func creditCardRow(id, userID uuid.UUID, name string) []driver.Value {
	now := time.Now()
	due := now.AddDate(0, 0, 10)
	return []driver.Value{
		id, userID, name, "4242", decimal.NewFromFloat(15000), decimal.NewFromFloat(22000),
		due, nil, true, now, now,
	}
}

func TestCreditCardRepository_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewCreditCardRepository(db)

	due := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	card := &model.CreditCard{
		UserID:      uuid.New(),
		Name:        "HDFC Regalia",
		LastFour:    "4242",
		PreviousDue: decimal.NewFromFloat(15000),
		TotalDue:    decimal.NewFromFloat(22000),
		DueDate:     &due,
		IsActive:    true,
	}

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now)

	mock.ExpectQuery(`INSERT INTO credit_cards`).
		WithArgs(sqlmock.AnyArg(), card.UserID, card.Name, card.LastFour, card.PreviousDue,
			card.TotalDue, &due, nil, card.IsActive).
		WillReturnRows(rows)

	err := repo.Create(context.Background(), card)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditCardRepository_GetByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock, uuid.UUID)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				rows := sqlmock.NewRows(creditCardColumns).
					AddRow(creditCardRow(id, uuid.New(), "HDFC Regalia")...)
				mock.ExpectQuery(`SELECT \* FROM credit_cards WHERE id = \$1`).
					WithArgs(id).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectQuery(`SELECT \* FROM credit_cards WHERE id = \$1`).
					WithArgs(id).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrCreditCardNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewCreditCardRepository(db)

			id := uuid.New()
			tt.setupMock(mock, id)

			card, err := repo.GetByID(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, id, card.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreditCardRepository_ListActive(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewCreditCardRepository(db)

	userID := uuid.New()
	rows := sqlmock.NewRows(creditCardColumns).
		AddRow(creditCardRow(uuid.New(), userID, "HDFC Regalia")...)

	mock.ExpectQuery(`SELECT \* FROM credit_cards`).
		WithArgs(userID).
		WillReturnRows(rows)

	cards, err := repo.ListActive(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditCardRepository_Deactivate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "success", rowsAffected: 1},
		{name: "already inactive", rowsAffected: 0, wantErr: ErrCreditCardNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewCreditCardRepository(db)

			id := uuid.New()
			userID := uuid.New()

			mock.ExpectExec(`UPDATE credit_cards`).
				WithArgs(id, userID).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.Deactivate(context.Background(), id, userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
