package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billscout/backend/internal/detect"
	"github.com/billscout/backend/internal/logger"
	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
	"github.com/billscout/backend/pkg/datetime"
)

// Service-level errors for bill aggregation.
var (
	ErrBillNotFound   = errors.New("bill not found")
	ErrBillNotPayable = errors.New("only recurring-rule bills can be marked paid")
)

// billIDSeparator joins the source prefix and source ID in derived bill IDs.
const billIDSeparator = ":"

// Source precedence for deterministic ordering of same-day bills.
var sourcePrecedence = map[model.BillSource]int{
	model.BillSourceRecurringRule:     0,
	model.BillSourceCreditCard:        1,
	model.BillSourcePatternSuggestion: 2,
}

// RuleRepositoryInterface defines the rule store contract for aggregation
// and settlement.
type RuleRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.RecurringRule, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
	Deactivate(ctx context.Context, id, userID uuid.UUID) error
	RecordOccurrence(ctx context.Context, id uuid.UUID, occurredAt, nextExpected time.Time) error
}

// CreditCardReader supplies active cards with statement dues.
type CreditCardReader interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.CreditCard, error)
}

// SuggestionReader supplies pending suggestions for the merged view.
type SuggestionReader interface {
	ListPending(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error)
}

// TransactionSettler marks a source transaction paid on bill settlement.
type TransactionSettler interface {
	UpdatePaymentStatus(ctx context.Context, id, userID uuid.UUID, status model.PaymentStatus) error
}

// BillService merges recurring rules, credit-card dues, and pending pattern
// suggestions into the unified upcoming-bills view.
type BillService struct {
	ruleRepo        RuleRepositoryInterface
	cardRepo        CreditCardReader
	suggestionRepo  SuggestionReader
	transactionRepo TransactionSettler
	cache           repository.BillCache
	cacheTTL        time.Duration
	now             func() time.Time
}

// NewBillService creates a BillService. cache may be nil, which disables
// response caching.
func NewBillService(ruleRepo RuleRepositoryInterface, cardRepo CreditCardReader, suggestionRepo SuggestionReader, transactionRepo TransactionSettler, cache repository.BillCache, cacheTTL time.Duration) *BillService {
	return &BillService{
		ruleRepo:        ruleRepo,
		cardRepo:        cardRepo,
		suggestionRepo:  suggestionRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		now:             time.Now,
	}
}

// GetUpcomingBills returns every bill due in [start, end], sorted by due date
// with ties broken by source precedence (rule > card > suggestion). A rule
// and a suggestion for the same merchant never both appear: the rule wins.
func (s *BillService) GetUpcomingBills(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.UpcomingBill, error) {
	start = datetime.StartOfDay(start)
	end = datetime.StartOfDay(end)

	today := datetime.StartOfDay(s.now())

	cacheKey := repository.BillCacheKey(userID, start, end)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, cacheKey); ok {
			var bills []model.UpcomingBill
			if err := json.Unmarshal(raw, &bills); err == nil {
				// An entry cached before midnight carries yesterday's
				// classifications; status is a function of today.
				for i := range bills {
					bills[i].Status = model.CalculateBillStatus(bills[i].DueDate, bills[i].IsPaid, today)
				}
				return bills, nil
			}
		}
	}

	rules, err := s.ruleRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing rules for user %s: %w", userID, err)
	}

	cards, err := s.cardRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing credit cards for user %s: %w", userID, err)
	}

	suggestions, err := s.suggestionRepo.ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions for user %s: %w", userID, err)
	}

	var bills []model.UpcomingBill
	var rulePatterns []string

	for _, rule := range rules {
		if rule.NextExpected == nil {
			continue
		}
		due := datetime.StartOfDay(*rule.NextExpected)
		if due.Before(start) || due.After(end) {
			continue
		}
		rulePatterns = append(rulePatterns, strings.ToUpper(rule.MerchantPattern))
		bills = append(bills, billFromRule(rule, due, today))
	}

	for _, card := range cards {
		if card.DueDate == nil || !card.PreviousDue.IsPositive() {
			continue
		}
		due := datetime.StartOfDay(*card.DueDate)
		if due.Before(start) || due.After(end) {
			continue
		}
		bills = append(bills, billFromCard(card, due, today))
	}

	for _, suggestion := range suggestions {
		due := datetime.StartOfDay(suggestion.NextExpected)
		if due.Before(start) || due.After(end) {
			continue
		}
		if suggestionShadowedByRule(suggestion.MerchantPattern, rulePatterns) {
			continue
		}
		bills = append(bills, billFromSuggestion(suggestion, due, today))
	}

	sort.Slice(bills, func(i, j int) bool {
		if !bills[i].DueDate.Equal(bills[j].DueDate) {
			return bills[i].DueDate.Before(bills[j].DueDate)
		}
		if sourcePrecedence[bills[i].Source] != sourcePrecedence[bills[j].Source] {
			return sourcePrecedence[bills[i].Source] < sourcePrecedence[bills[j].Source]
		}
		return bills[i].ID < bills[j].ID
	})

	if s.cache != nil {
		if raw, err := json.Marshal(bills); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
				logger.FromContext(ctx).Warn("caching bills", "user_id", userID.String(), "error", err.Error())
			}
		}
	}

	return bills, nil
}

// Summary buckets bills into this month vs next month. OVERDUE and DUE_TODAY
// bills always count against this month regardless of their nominal due
// month, so a bill carried over from last month still weighs on the current
// total.
func Summary(bills []model.UpcomingBill, today time.Time) model.BillSummary {
	var summary model.BillSummary
	summary.DueThisMonth = decimal.Zero
	summary.DueNextMonth = decimal.Zero

	for _, bill := range bills {
		amount := decimal.Zero
		if bill.Amount != nil {
			amount = *bill.Amount
		}

		thisMonth := datetime.SameMonth(bill.DueDate, today)
		if bill.Status == model.BillStatusOverdue || bill.Status == model.BillStatusDueToday {
			thisMonth = true
		}

		if thisMonth {
			summary.DueThisMonth = summary.DueThisMonth.Add(amount)
			summary.CountThisMonth++
		} else {
			summary.DueNextMonth = summary.DueNextMonth.Add(amount)
			summary.CountNextMonth++
		}

		if bill.Status == model.BillStatusOverdue {
			summary.OverdueCount++
		}
		summary.TotalCount++
	}

	return summary
}

// Groups buckets bills by status urgency, splitting the generic UPCOMING
// bucket into later-this-month vs next-month by calendar month. Empty
// buckets are omitted; bucket order is fixed.
func Groups(bills []model.UpcomingBill, today time.Time) []model.BillGroup {
	buckets := make(map[model.BillGroupKey][]model.UpcomingBill)
	for _, bill := range bills {
		key := groupKey(bill, today)
		buckets[key] = append(buckets[key], bill)
	}

	order := []model.BillGroupKey{
		model.BillGroupOverdue,
		model.BillGroupDueToday,
		model.BillGroupDueTomorrow,
		model.BillGroupDueThisWeek,
		model.BillGroupLaterThisMonth,
		model.BillGroupNextMonth,
	}

	var groups []model.BillGroup
	for _, key := range order {
		members := buckets[key]
		if len(members) == 0 {
			continue
		}
		total := decimal.Zero
		for _, bill := range members {
			if bill.Amount != nil {
				total = total.Add(*bill.Amount)
			}
		}
		groups = append(groups, model.BillGroup{Key: key, Total: total, Bills: members})
	}
	return groups
}

// Calendar maps bills onto their due dates, keyed YYYY-MM-DD.
func Calendar(bills []model.UpcomingBill) map[string][]model.UpcomingBill {
	calendar := make(map[string][]model.UpcomingBill)
	for _, bill := range bills {
		key := bill.DueDate.Format(datetime.DateFormat)
		calendar[key] = append(calendar[key], bill)
	}
	return calendar
}

// MarkPaid settles a rule-sourced bill. ONE_TIME rules are deactivated;
// recurring rules advance by one period from today, not from the original
// due date, so a late payment does not compound lateness into the next
// cycle. transactionID, when given, is the settling payment whose status is
// flipped to PAID.
func (s *BillService) MarkPaid(ctx context.Context, userID uuid.UUID, billID string, transactionID *uuid.UUID) error {
	source, rawID, found := strings.Cut(billID, billIDSeparator)
	if !found || source != "rule" {
		return ErrBillNotPayable
	}

	ruleID, err := uuid.Parse(rawID)
	if err != nil {
		return ErrBillNotFound
	}

	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if errors.Is(err, repository.ErrRuleNotFound) {
		return ErrBillNotFound
	}
	if err != nil {
		return fmt.Errorf("fetching rule %s: %w", ruleID, err)
	}
	if rule.UserID != userID || !rule.IsActive {
		return ErrBillNotFound
	}

	today := datetime.StartOfDay(s.now())

	if rule.Frequency == model.FrequencyOneTime {
		if err := s.ruleRepo.Deactivate(ctx, ruleID, userID); err != nil {
			return fmt.Errorf("deactivating one-time rule %s: %w", ruleID, err)
		}
	} else {
		next := detect.NextExpected(today, rule.Frequency, today.Day())
		if err := s.ruleRepo.RecordOccurrence(ctx, ruleID, today, next); err != nil {
			return fmt.Errorf("recording occurrence on rule %s: %w", ruleID, err)
		}
	}

	if transactionID != nil {
		if err := s.transactionRepo.UpdatePaymentStatus(ctx, *transactionID, userID, model.PaymentStatusPaid); err != nil {
			return fmt.Errorf("marking transaction %s paid: %w", *transactionID, err)
		}
	}

	s.invalidateBills(ctx, userID)
	return nil
}

func (s *BillService) invalidateBills(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Warn("invalidating bill cache", "user_id", userID.String(), "error", err.Error())
	}
}

func billFromRule(rule model.RecurringRule, due, today time.Time) model.UpcomingBill {
	amount := rule.ExpectedAmount
	variance := rule.AmountVariance
	frequency := rule.Frequency
	return model.UpcomingBill{
		ID:              "rule" + billIDSeparator + rule.ID.String(),
		Source:          model.BillSourceRecurringRule,
		SourceID:        rule.ID.String(),
		MerchantName:    rule.MerchantPattern,
		DisplayName:     rule.DisplayName,
		Amount:          &amount,
		AmountVariance:  &variance,
		DueDate:         due,
		Frequency:       &frequency,
		CategoryID:      rule.CategoryID,
		Status:          model.CalculateBillStatus(due, false, today),
		IsUserConfirmed: rule.IsUserConfirmed,
		Confidence:      1,
	}
}

func billFromCard(card model.CreditCard, due, today time.Time) model.UpcomingBill {
	amount := card.PreviousDue
	lastFour := card.LastFour
	return model.UpcomingBill{
		ID:                 "card" + billIDSeparator + card.ID.String(),
		Source:             model.BillSourceCreditCard,
		SourceID:           card.ID.String(),
		MerchantName:       card.Name,
		DisplayName:        card.Name,
		Amount:             &amount,
		DueDate:            due,
		Status:             model.CalculateBillStatus(due, false, today),
		IsUserConfirmed:    true,
		Confidence:         1,
		CreditCardLastFour: &lastFour,
	}
}

func billFromSuggestion(suggestion model.PatternSuggestion, due, today time.Time) model.UpcomingBill {
	amount := suggestion.AverageAmount
	variance := suggestion.AmountVariance
	frequency := suggestion.Frequency
	return model.UpcomingBill{
		ID:             "suggestion" + billIDSeparator + patternHash(suggestion.MerchantPattern),
		Source:         model.BillSourcePatternSuggestion,
		SourceID:       suggestion.ID.String(),
		MerchantName:   suggestion.MerchantPattern,
		DisplayName:    suggestion.DisplayName,
		Amount:         &amount,
		AmountVariance: &variance,
		DueDate:        due,
		Frequency:      &frequency,
		CategoryID:     suggestion.CategoryID,
		Status:         model.CalculateBillStatus(due, false, today),
		Confidence:     suggestion.Confidence,
	}
}

func groupKey(bill model.UpcomingBill, today time.Time) model.BillGroupKey {
	switch bill.Status {
	case model.BillStatusOverdue:
		return model.BillGroupOverdue
	case model.BillStatusDueToday:
		return model.BillGroupDueToday
	case model.BillStatusDueTomorrow:
		return model.BillGroupDueTomorrow
	case model.BillStatusDueThisWeek:
		return model.BillGroupDueThisWeek
	default:
		if datetime.SameMonth(bill.DueDate, today) {
			return model.BillGroupLaterThisMonth
		}
		return model.BillGroupNextMonth
	}
}

func suggestionShadowedByRule(pattern string, rulePatterns []string) bool {
	upper := strings.ToUpper(pattern)
	for _, rp := range rulePatterns {
		if strings.Contains(upper, rp) || strings.Contains(rp, upper) {
			return true
		}
	}
	return false
}

// patternHash derives a stable bill ID for suggestions, which have no
// natural identity in the merged view.
func patternHash(pattern string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToUpper(pattern)))
	return fmt.Sprintf("%08x", h.Sum32())
}
