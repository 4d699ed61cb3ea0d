package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billscout/backend/pkg/datetime"
)

type BillSource string

const (
	BillSourceRecurringRule     BillSource = "RECURRING_RULE"
	BillSourceCreditCard        BillSource = "CREDIT_CARD"
	BillSourcePatternSuggestion BillSource = "PATTERN_SUGGESTION"
)

type BillStatus string

const (
	BillStatusOverdue     BillStatus = "OVERDUE"
	BillStatusDueToday    BillStatus = "DUE_TODAY"
	BillStatusDueTomorrow BillStatus = "DUE_TOMORROW"
	BillStatusDueThisWeek BillStatus = "DUE_THIS_WEEK"
	BillStatusUpcoming    BillStatus = "UPCOMING"
	BillStatusPaid        BillStatus = "PAID"
)

// statusUrgency orders statuses for sorting grouped views; lower is more urgent.
var statusUrgency = map[BillStatus]int{
	BillStatusOverdue:     0,
	BillStatusDueToday:    1,
	BillStatusDueTomorrow: 2,
	BillStatusDueThisWeek: 3,
	BillStatusUpcoming:    4,
	BillStatusPaid:        5,
}

// Urgency returns the sort rank of the status; OVERDUE ranks first.
func (s BillStatus) Urgency() int {
	return statusUrgency[s]
}

// CalculateBillStatus classifies a due date relative to today at calendar-day
// granularity. DUE_THIS_WEEK ends 6 days out; exactly 7 days out is UPCOMING.
func CalculateBillStatus(dueDate time.Time, isPaid bool, today time.Time) BillStatus {
	if isPaid {
		return BillStatusPaid
	}
	days := datetime.DaysBetween(today, dueDate)
	switch {
	case days < 0:
		return BillStatusOverdue
	case days == 0:
		return BillStatusDueToday
	case days == 1:
		return BillStatusDueTomorrow
	case days < 7:
		return BillStatusDueThisWeek
	default:
		return BillStatusUpcoming
	}
}

// UpcomingBill is the merged view over rules, credit-card dues, and pending
// suggestions. It is derived on every query and never persisted.
type UpcomingBill struct {
	ID                 string           `json:"id"`
	Source             BillSource       `json:"source"`
	SourceID           string           `json:"sourceId"`
	MerchantName       string           `json:"merchantName"`
	DisplayName        string           `json:"displayName"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	AmountVariance     *float64         `json:"amountVariance,omitempty"`
	DueDate            time.Time        `json:"dueDate"`
	Frequency          *Frequency       `json:"frequency,omitempty"`
	CategoryID         *uuid.UUID       `json:"categoryId,omitempty"`
	Status             BillStatus       `json:"status"`
	IsPaid             bool             `json:"isPaid"`
	IsUserConfirmed    bool             `json:"isUserConfirmed"`
	Confidence         float64          `json:"confidence"`
	CreditCardLastFour *string          `json:"creditCardLastFour,omitempty"`
}

// BillSummary buckets bills into this month vs next month by due date.
// Overdue and due-today bills always count against this month, so a bill
// carried over from last month still weighs on the current total.
type BillSummary struct {
	DueThisMonth   decimal.Decimal `json:"dueThisMonth"`
	DueNextMonth   decimal.Decimal `json:"dueNextMonth"`
	CountThisMonth int             `json:"countThisMonth"`
	CountNextMonth int             `json:"countNextMonth"`
	OverdueCount   int             `json:"overdueCount"`
	TotalCount     int             `json:"totalCount"`
}

type BillGroupKey string

const (
	BillGroupOverdue        BillGroupKey = "OVERDUE"
	BillGroupDueToday       BillGroupKey = "DUE_TODAY"
	BillGroupDueTomorrow    BillGroupKey = "DUE_TOMORROW"
	BillGroupDueThisWeek    BillGroupKey = "DUE_THIS_WEEK"
	BillGroupLaterThisMonth BillGroupKey = "LATER_THIS_MONTH"
	BillGroupNextMonth      BillGroupKey = "NEXT_MONTH"
)

// BillGroup is one bucket of the grouped bills view.
type BillGroup struct {
	Key   BillGroupKey    `json:"key"`
	Total decimal.Decimal `json:"total"`
	Bills []UpcomingBill  `json:"bills"`
}
