package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billscout/backend/internal/detect"
	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
	"github.com/billscout/backend/pkg/datetime"
)

var ErrRuleNotFound = errors.New("recurring rule not found")

// RuleStore is the full rule repository contract used by RuleService.
type RuleStore interface {
	Create(ctx context.Context, rule *model.RecurringRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.RecurringRule, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
	Update(ctx context.Context, rule *model.RecurringRule) error
	Deactivate(ctx context.Context, id, userID uuid.UUID) error
	RecordOccurrence(ctx context.Context, id uuid.UUID, occurredAt, nextExpected time.Time) error
}

// RuleService manages user-confirmed recurring rules. Rules created here are
// manual entries; confirmation of detected patterns goes through
// SuggestionService instead.
type RuleService struct {
	ruleRepo RuleStore
	cache    repository.BillCache
	now      func() time.Time
}

// NewRuleService creates a RuleService. cache may be nil.
func NewRuleService(ruleRepo RuleStore, cache repository.BillCache) *RuleService {
	return &RuleService{ruleRepo: ruleRepo, cache: cache, now: time.Now}
}

// Create stores a manually entered rule. The merchant pattern is normalized
// and next_expected is derived from today when the caller leaves it unset.
func (s *RuleService) Create(ctx context.Context, rule *model.RecurringRule) (*model.RecurringRule, error) {
	rule.MerchantPattern = detect.NormalizeMerchant(rule.MerchantPattern)
	if rule.MerchantPattern == "" {
		return nil, errors.New("merchant pattern is required")
	}
	if rule.DisplayName == "" {
		rule.DisplayName = rule.MerchantPattern
	}
	if !validFrequency(rule.Frequency) {
		return nil, fmt.Errorf("unknown frequency %q", rule.Frequency)
	}

	today := datetime.StartOfDay(s.now())
	if rule.DayOfPeriod == 0 {
		rule.DayOfPeriod = dayOfPeriodFor(rule.Frequency, today)
	}
	if rule.NextExpected == nil && rule.Frequency != model.FrequencyOneTime {
		next := detect.NextExpected(today, rule.Frequency, rule.DayOfPeriod)
		rule.NextExpected = &next
	}

	rule.IsActive = true
	rule.IsUserConfirmed = true
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("creating rule: %w", err)
	}

	s.invalidateBills(ctx, rule.UserID)
	return rule, nil
}

func (s *RuleService) Get(ctx context.Context, userID, ruleID uuid.UUID) (*model.RecurringRule, error) {
	return s.ownedRule(ctx, userID, ruleID)
}

func (s *RuleService) List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	return s.ruleRepo.List(ctx, userID)
}

func (s *RuleService) ListActive(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	return s.ruleRepo.ListActive(ctx, userID)
}

// Update replaces a rule's mutable fields after an ownership check.
func (s *RuleService) Update(ctx context.Context, userID uuid.UUID, rule *model.RecurringRule) (*model.RecurringRule, error) {
	existing, err := s.ownedRule(ctx, userID, rule.ID)
	if err != nil {
		return nil, err
	}
	if !validFrequency(rule.Frequency) {
		return nil, fmt.Errorf("unknown frequency %q", rule.Frequency)
	}

	rule.UserID = userID
	rule.MerchantPattern = detect.NormalizeMerchant(rule.MerchantPattern)
	if rule.MerchantPattern == "" {
		rule.MerchantPattern = existing.MerchantPattern
	}
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("updating rule %s: %w", rule.ID, err)
	}

	s.invalidateBills(ctx, userID)
	return rule, nil
}

// Deactivate soft-deletes a rule. History stays in place so a later
// detection sweep does not resurface the merchant as a fresh suggestion.
func (s *RuleService) Deactivate(ctx context.Context, userID, ruleID uuid.UUID) error {
	err := s.ruleRepo.Deactivate(ctx, ruleID, userID)
	if errors.Is(err, repository.ErrRuleNotFound) {
		return ErrRuleNotFound
	}
	if err != nil {
		return fmt.Errorf("deactivating rule %s: %w", ruleID, err)
	}
	s.invalidateBills(ctx, userID)
	return nil
}

// RecordOccurrence logs a matched payment against a rule and advances its
// next expected date one period from the occurrence.
func (s *RuleService) RecordOccurrence(ctx context.Context, userID, ruleID uuid.UUID, occurredAt time.Time) error {
	rule, err := s.ownedRule(ctx, userID, ruleID)
	if err != nil {
		return err
	}

	occurredAt = datetime.StartOfDay(occurredAt)
	if rule.Frequency == model.FrequencyOneTime {
		return s.Deactivate(ctx, userID, ruleID)
	}

	next := detect.NextExpected(occurredAt, rule.Frequency, rule.DayOfPeriod)
	if err := s.ruleRepo.RecordOccurrence(ctx, ruleID, occurredAt, next); err != nil {
		return fmt.Errorf("recording occurrence on rule %s: %w", ruleID, err)
	}
	s.invalidateBills(ctx, userID)
	return nil
}

func (s *RuleService) ownedRule(ctx context.Context, userID, ruleID uuid.UUID) (*model.RecurringRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if errors.Is(err, repository.ErrRuleNotFound) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching rule %s: %w", ruleID, err)
	}
	if rule.UserID != userID {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

func (s *RuleService) invalidateBills(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateUser(ctx, userID)
}

func validFrequency(f model.Frequency) bool {
	switch f {
	case model.FrequencyWeekly, model.FrequencyMonthly, model.FrequencyYearly, model.FrequencyOneTime:
		return true
	}
	return false
}

func dayOfPeriodFor(frequency model.Frequency, day time.Time) int {
	if frequency == model.FrequencyWeekly {
		return int(day.Weekday())
	}
	return day.Day()
}
