package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDebit   TransactionType = "DEBIT"
	TransactionTypeCredit  TransactionType = "CREDIT"
	TransactionTypeSavings TransactionType = "SAVINGS"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// Transaction is produced by the upstream parser and is read-only to this
// service, except for payment status updates on bill settlement.
type Transaction struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	UserID             uuid.UUID       `db:"user_id" json:"userId"`
	Type               TransactionType `db:"type" json:"type"`
	Amount             decimal.Decimal `db:"amount" json:"amount"`
	MerchantName       string          `db:"merchant_name" json:"merchantName"`
	NormalizedMerchant string          `db:"normalized_merchant" json:"normalizedMerchant"`
	CategoryID         *uuid.UUID      `db:"category_id" json:"categoryId,omitempty"`
	Date               time.Time       `db:"date" json:"date"`
	DueDate            *time.Time      `db:"due_date" json:"dueDate,omitempty"`
	PaymentStatus      PaymentStatus   `db:"payment_status" json:"paymentStatus"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updatedAt"`
}

type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
	// FrequencyOneTime marks rules for single obligations; settling one
	// deactivates the rule instead of advancing it.
	FrequencyOneTime Frequency = "ONE_TIME"
)

// PatternCandidate is the ephemeral output of one detection pass. It is never
// persisted; the suggestion lifecycle turns accepted candidates into
// PatternSuggestions.
type PatternCandidate struct {
	MerchantPattern string          `json:"merchantPattern"`
	DisplayName     string          `json:"displayName"`
	AverageAmount   decimal.Decimal `json:"averageAmount"`
	AmountVariance  float64         `json:"amountVariance"`
	Frequency       Frequency       `json:"frequency"`
	TypicalDay      int             `json:"typicalDay"`
	OccurrenceCount int             `json:"occurrenceCount"`
	Confidence      float64         `json:"confidence"`
	NextExpected    time.Time       `json:"nextExpected"`
	CategoryID      *uuid.UUID      `json:"categoryId,omitempty"`
}

type SuggestionStatus string

const (
	SuggestionStatusPending   SuggestionStatus = "PENDING"
	SuggestionStatusConfirmed SuggestionStatus = "CONFIRMED"
	SuggestionStatusDismissed SuggestionStatus = "DISMISSED"
)

type SuggestionSource string

const (
	SuggestionSourceSMS       SuggestionSource = "SMS_SUBSCRIPTION"
	SuggestionSourceDetection SuggestionSource = "PATTERN_DETECTION"
)

// PatternSuggestion is a system-proposed recurring pattern awaiting user
// confirmation or dismissal. At most one non-dismissed suggestion may exist
// per (user, merchant pattern); the database enforces this with a partial
// unique index.
type PatternSuggestion struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	UserID          uuid.UUID        `db:"user_id" json:"userId"`
	MerchantPattern string           `db:"merchant_pattern" json:"merchantPattern"`
	DisplayName     string           `db:"display_name" json:"displayName"`
	AverageAmount   decimal.Decimal  `db:"average_amount" json:"averageAmount"`
	AmountVariance  float64          `db:"amount_variance" json:"amountVariance"`
	Frequency       Frequency        `db:"frequency" json:"frequency"`
	TypicalDay      int              `db:"typical_day" json:"typicalDay"`
	OccurrenceCount int              `db:"occurrence_count" json:"occurrenceCount"`
	Confidence      float64          `db:"confidence" json:"confidence"`
	NextExpected    time.Time        `db:"next_expected" json:"nextExpected"`
	CategoryID      *uuid.UUID       `db:"category_id" json:"categoryId,omitempty"`
	Status          SuggestionStatus `db:"status" json:"status"`
	Source          SuggestionSource `db:"source" json:"source"`
	CreatedAt       time.Time        `db:"created_at" json:"createdAt"`
	DismissedAt     *time.Time       `db:"dismissed_at" json:"dismissedAt,omitempty"`
}

// RecurringRule is a confirmed (or manually entered) recurring obligation.
// Rules are soft-deleted via IsActive.
type RecurringRule struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	UserID          uuid.UUID       `db:"user_id" json:"userId"`
	MerchantPattern string          `db:"merchant_pattern" json:"merchantPattern"`
	DisplayName     string          `db:"display_name" json:"displayName"`
	CategoryID      *uuid.UUID      `db:"category_id" json:"categoryId,omitempty"`
	ExpectedAmount  decimal.Decimal `db:"expected_amount" json:"expectedAmount"`
	AmountVariance  float64         `db:"amount_variance" json:"amountVariance"`
	Frequency       Frequency       `db:"frequency" json:"frequency"`
	DayOfPeriod     int             `db:"day_of_period" json:"dayOfPeriod"`
	LastOccurrence  *time.Time      `db:"last_occurrence" json:"lastOccurrence,omitempty"`
	NextExpected    *time.Time      `db:"next_expected" json:"nextExpected,omitempty"`
	OccurrenceCount int             `db:"occurrence_count" json:"occurrenceCount"`
	IsActive        bool            `db:"is_active" json:"isActive"`
	IsUserConfirmed bool            `db:"is_user_confirmed" json:"isUserConfirmed"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// CreditCard carries the statement dues that feed the bill aggregator.
type CreditCard struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"userId"`
	Name          string          `db:"name" json:"name"`
	LastFour      string          `db:"last_four" json:"lastFour"`
	PreviousDue   decimal.Decimal `db:"previous_due" json:"previousDue"`
	TotalDue      decimal.Decimal `db:"total_due" json:"totalDue"`
	DueDate       *time.Time      `db:"due_date" json:"dueDate,omitempty"`
	StatementDate *time.Time      `db:"statement_date" json:"statementDate,omitempty"`
	IsActive      bool            `db:"is_active" json:"isActive"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

// Budget is a spend ceiling over a period. A nil CategoryID means the budget
// covers all spending. Open-ended budgets have a nil PeriodEnd.
type Budget struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"userId"`
	CategoryID  *uuid.UUID      `db:"category_id" json:"categoryId,omitempty"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	PeriodStart time.Time       `db:"period_start" json:"periodStart"`
	PeriodEnd   *time.Time      `db:"period_end" json:"periodEnd,omitempty"`
	IsActive    bool            `db:"is_active" json:"isActive"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

type AlertLevel string

const (
	AlertLevelNormal   AlertLevel = "NORMAL"
	AlertLevelWarning  AlertLevel = "WARNING"
	AlertLevelExceeded AlertLevel = "EXCEEDED"
)

// BudgetStatus is the derived budget position: spend to date, pace, and a
// linear projection of end-of-period spend.
type BudgetStatus struct {
	BudgetID            uuid.UUID        `json:"budgetId"`
	CategoryID          *uuid.UUID       `json:"categoryId,omitempty"`
	Spent               decimal.Decimal  `json:"spent"`
	BudgetAmount        decimal.Decimal  `json:"budgetAmount"`
	PercentageUsed      float64          `json:"percentageUsed"`
	Remaining           decimal.Decimal  `json:"remaining"`
	DailyAverage        decimal.Decimal  `json:"dailyAverage"`
	DaysElapsed         int              `json:"daysElapsed"`
	DaysRemaining       *int             `json:"daysRemaining,omitempty"`
	ProjectedTotal      *decimal.Decimal `json:"projectedTotal,omitempty"`
	ProjectedOverBudget bool             `json:"projectedOverBudget"`
	AlertLevel          AlertLevel       `json:"alertLevel"`
}
