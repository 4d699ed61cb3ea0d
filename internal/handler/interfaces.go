package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
)

// BillServiceInterface for handler testing
type BillServiceInterface interface {
	GetUpcomingBills(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.UpcomingBill, error)
	MarkPaid(ctx context.Context, userID uuid.UUID, billID string, transactionID *uuid.UUID) error
}

// SuggestionServiceInterface for handler testing
type SuggestionServiceInterface interface {
	ListPending(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error)
	Confirm(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error)
	Dismiss(ctx context.Context, userID, id uuid.UUID) error
	RunDetection(ctx context.Context, userID uuid.UUID) (int, error)
}

// RuleServiceInterface for handler testing
type RuleServiceInterface interface {
	Create(ctx context.Context, rule *model.RecurringRule) (*model.RecurringRule, error)
	Get(ctx context.Context, userID, ruleID uuid.UUID) (*model.RecurringRule, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
	Update(ctx context.Context, userID uuid.UUID, rule *model.RecurringRule) (*model.RecurringRule, error)
	Deactivate(ctx context.Context, userID, ruleID uuid.UUID) error
	RecordOccurrence(ctx context.Context, userID, ruleID uuid.UUID, occurredAt time.Time) error
}

// BudgetServiceInterface for handler testing
type BudgetServiceInterface interface {
	Create(ctx context.Context, budget *model.Budget) (*model.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Budget, error)
	ListWithStatus(ctx context.Context, userID uuid.UUID) ([]model.BudgetStatus, error)
	Update(ctx context.Context, userID uuid.UUID, budget *model.Budget) (*model.Budget, error)
	Delete(ctx context.Context, userID, budgetID uuid.UUID) error
}

// TransactionServiceInterface for handler testing
type TransactionServiceInterface interface {
	Ingest(ctx context.Context, tx *model.Transaction, isSubscription bool) (*model.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filters repository.TransactionFilters) ([]model.Transaction, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error)
}

// CreditCardServiceInterface for handler testing
type CreditCardServiceInterface interface {
	Create(ctx context.Context, card *model.CreditCard) (*model.CreditCard, error)
	Get(ctx context.Context, userID, cardID uuid.UUID) (*model.CreditCard, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.CreditCard, error)
	Update(ctx context.Context, userID uuid.UUID, card *model.CreditCard) (*model.CreditCard, error)
	Deactivate(ctx context.Context, userID, cardID uuid.UUID) error
}
