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

var budgetColumns = []string{
	"id", "user_id", "category_id", "amount", "period_start", "period_end",
	"is_active", "created_at", "updated_at",
}

func budgetRow(id, userID uuid.UUID) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, userID, nil, decimal.NewFromFloat(10000), now, nil,
		true, now, now,
	}
}

func TestBudgetRepository_Create(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewBudgetRepository(db)

	budget := &model.Budget{
		UserID:      uuid.New(),
		Amount:      decimal.NewFromFloat(10000),
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	}

	now := time.Now()
	rows := sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now)

	mock.ExpectQuery(`INSERT INTO budgets`).
		WithArgs(sqlmock.AnyArg(), budget.UserID, nil, budget.Amount,
			budget.PeriodStart, nil, budget.IsActive).
		WillReturnRows(rows)

	err := repo.Create(context.Background(), budget)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, budget.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetRepository_GetByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock, uuid.UUID)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				rows := sqlmock.NewRows(budgetColumns).AddRow(budgetRow(id, uuid.New())...)
				mock.ExpectQuery(`SELECT \* FROM budgets WHERE id = \$1`).
					WithArgs(id).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectQuery(`SELECT \* FROM budgets WHERE id = \$1`).
					WithArgs(id).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrBudgetNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewBudgetRepository(db)

			id := uuid.New()
			tt.setupMock(mock, id)

			budget, err := repo.GetByID(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, id, budget.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBudgetRepository_GetActiveForUser(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewBudgetRepository(db)

	userID := uuid.New()
	rows := sqlmock.NewRows(budgetColumns).
		AddRow(budgetRow(uuid.New(), userID)...).
		AddRow(budgetRow(uuid.New(), userID)...)

	mock.ExpectQuery(`SELECT \* FROM budgets`).
		WithArgs(userID).
		WillReturnRows(rows)

	budgets, err := repo.GetActiveForUser(context.Background(), userID)

	assert.NoError(t, err)
	assert.Len(t, budgets, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetRepository_Update(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewBudgetRepository(db)

	budget := &model.Budget{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Amount:      decimal.NewFromFloat(12000),
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	}

	rows := sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now())

	mock.ExpectQuery(`UPDATE budgets`).
		WithArgs(budget.ID, nil, budget.Amount, budget.PeriodStart, nil, budget.IsActive, budget.UserID).
		WillReturnRows(rows)

	err := repo.Update(context.Background(), budget)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetRepository_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "success", rowsAffected: 1},
		{name: "not found", rowsAffected: 0, wantErr: ErrBudgetNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewBudgetRepository(db)

			id := uuid.New()
			userID := uuid.New()

			mock.ExpectExec(`DELETE FROM budgets WHERE id = \$1 AND user_id = \$2`).
				WithArgs(id, userID).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.Delete(context.Background(), id, userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
