package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
	"github.com/billscout/backend/pkg/datetime"
)

var ErrBudgetNotFound = errors.New("budget not found")

// warningThreshold is the percentage of the budget at which the alert
// level turns WARNING.
const warningThreshold = 75.0

// BudgetRepositoryInterface defines the budget store contract.
type BudgetRepositoryInterface interface {
	Create(ctx context.Context, budget *model.Budget) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Budget, error)
	GetActiveForUser(ctx context.Context, userID uuid.UUID) ([]model.Budget, error)
	Update(ctx context.Context, budget *model.Budget) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// SpentTotaler sums DEBIT spend for a user over a window, optionally
// narrowed to one category.
type SpentTotaler interface {
	GetSpentTotal(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error)
}

// BudgetService computes spend-vs-budget status for active budgets.
type BudgetService struct {
	budgetRepo      BudgetRepositoryInterface
	transactionRepo SpentTotaler
	now             func() time.Time
}

func NewBudgetService(budgetRepo BudgetRepositoryInterface, transactionRepo SpentTotaler) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// CalculateBudgetStatus derives status figures for one budget. Pure: all
// inputs are explicit. Projection fields are only set for closed periods;
// an open-ended budget (nil PeriodEnd) has nothing to project against.
func CalculateBudgetStatus(budget model.Budget, spent decimal.Decimal, today time.Time) model.BudgetStatus {
	today = datetime.StartOfDay(today)
	start := datetime.StartOfDay(budget.PeriodStart)

	status := model.BudgetStatus{
		BudgetID:     budget.ID,
		CategoryID:   budget.CategoryID,
		Spent:        spent,
		BudgetAmount: budget.Amount,
		Remaining:    budget.Amount.Sub(spent),
		DailyAverage: decimal.Zero,
		AlertLevel:   model.AlertLevelNormal,
	}

	if budget.Amount.IsPositive() {
		pct, _ := spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Float64()
		status.PercentageUsed = pct
	}

	daysElapsed := datetime.DaysBetween(start, today) + 1
	if budget.PeriodEnd != nil {
		end := datetime.StartOfDay(*budget.PeriodEnd)
		if today.After(end) {
			daysElapsed = datetime.DaysBetween(start, end) + 1
		}
	}
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	status.DaysElapsed = daysElapsed

	if daysElapsed > 0 {
		status.DailyAverage = spent.Div(decimal.NewFromInt(int64(daysElapsed)))
	}

	if budget.PeriodEnd != nil {
		end := datetime.StartOfDay(*budget.PeriodEnd)
		totalDays := datetime.DaysBetween(start, end) + 1
		remaining := totalDays - daysElapsed
		if remaining < 0 {
			remaining = 0
		}
		status.DaysRemaining = &remaining

		if daysElapsed > 0 && totalDays > 0 {
			projected := status.DailyAverage.Mul(decimal.NewFromInt(int64(totalDays)))
			status.ProjectedTotal = &projected
			status.ProjectedOverBudget = projected.GreaterThan(budget.Amount)
		}
	}

	switch {
	case spent.GreaterThanOrEqual(budget.Amount) && budget.Amount.IsPositive():
		status.AlertLevel = model.AlertLevelExceeded
	case status.PercentageUsed >= warningThreshold:
		status.AlertLevel = model.AlertLevelWarning
	}

	return status
}

// ListWithStatus returns every active budget for the user with its computed
// status. Spend windows run from the period start to the period end or
// today, whichever comes first.
func (s *BudgetService) ListWithStatus(ctx context.Context, userID uuid.UUID) ([]model.BudgetStatus, error) {
	budgets, err := s.budgetRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets for user %s: %w", userID, err)
	}

	today := datetime.StartOfDay(s.now())
	statuses := make([]model.BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		status, err := s.statusFor(ctx, userID, budget, today)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// GetStatus computes the status of a single budget owned by the user.
func (s *BudgetService) GetStatus(ctx context.Context, userID, budgetID uuid.UUID) (*model.BudgetStatus, error) {
	budget, err := s.ownedBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	status, err := s.statusFor(ctx, userID, *budget, datetime.StartOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *BudgetService) statusFor(ctx context.Context, userID uuid.UUID, budget model.Budget, today time.Time) (model.BudgetStatus, error) {
	windowEnd := today
	if budget.PeriodEnd != nil && budget.PeriodEnd.Before(windowEnd) {
		windowEnd = *budget.PeriodEnd
	}

	spent, err := s.transactionRepo.GetSpentTotal(ctx, userID, budget.CategoryID, budget.PeriodStart, windowEnd)
	if err != nil {
		return model.BudgetStatus{}, fmt.Errorf("summing spend for budget %s: %w", budget.ID, err)
	}

	return CalculateBudgetStatus(budget, spent, today), nil
}

// Create persists a new budget for the user.
func (s *BudgetService) Create(ctx context.Context, budget *model.Budget) (*model.Budget, error) {
	if !budget.Amount.IsPositive() {
		return nil, errors.New("budget amount must be positive")
	}
	if budget.PeriodEnd != nil && budget.PeriodEnd.Before(budget.PeriodStart) {
		return nil, errors.New("budget period end precedes its start")
	}
	budget.IsActive = true
	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("creating budget: %w", err)
	}
	return budget, nil
}

// List returns all budgets for the user, active or not.
func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]model.Budget, error) {
	return s.budgetRepo.List(ctx, userID)
}

// Update replaces a budget's mutable fields after an ownership check.
func (s *BudgetService) Update(ctx context.Context, userID uuid.UUID, budget *model.Budget) (*model.Budget, error) {
	if _, err := s.ownedBudget(ctx, userID, budget.ID); err != nil {
		return nil, err
	}
	budget.UserID = userID
	if err := s.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("updating budget %s: %w", budget.ID, err)
	}
	return budget, nil
}

// Delete removes a budget owned by the user.
func (s *BudgetService) Delete(ctx context.Context, userID, budgetID uuid.UUID) error {
	err := s.budgetRepo.Delete(ctx, budgetID, userID)
	if errors.Is(err, repository.ErrBudgetNotFound) {
		return ErrBudgetNotFound
	}
	return err
}

func (s *BudgetService) ownedBudget(ctx context.Context, userID, budgetID uuid.UUID) (*model.Budget, error) {
	budget, err := s.budgetRepo.GetByID(ctx, budgetID)
	if errors.Is(err, repository.ErrBudgetNotFound) {
		return nil, ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching budget %s: %w", budgetID, err)
	}
	if budget.UserID != userID {
		return nil, ErrBudgetNotFound
	}
	return budget, nil
}
