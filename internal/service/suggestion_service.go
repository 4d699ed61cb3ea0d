package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billscout/backend/internal/detect"
	"github.com/billscout/backend/internal/logger"
	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
)

// Service-level errors for the suggestion lifecycle.
var (
	ErrSuggestionNotFound   = errors.New("suggestion not found")
	ErrSuggestionNotPending = errors.New("suggestion is not pending")
)

// SMSSuggestionConfidence is assigned to suggestions created directly from a
// single SMS-flagged subscription transaction; one flagged message is strong
// evidence even without repeat occurrences.
const SMSSuggestionConfidence = 0.85

// SuggestionRepositoryInterface defines the contract for suggestion data
// access. Create must be atomic with respect to the one-non-dismissed-per-
// pattern invariant and return repository.ErrDuplicateSuggestion on conflict.
type SuggestionRepositoryInterface interface {
	Create(ctx context.Context, s *model.PatternSuggestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PatternSuggestion, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error)
	ListNonDismissed(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SuggestionStatus, dismissedAt *time.Time) error
	DeleteDismissedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RuleStoreForSuggestions provides the rule operations the lifecycle needs:
// coverage checks on create and rule creation on confirm.
type RuleStoreForSuggestions interface {
	Create(ctx context.Context, rule *model.RecurringRule) error
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
}

// PatternDetector produces the current candidate set for a user.
type PatternDetector interface {
	DetectPatterns(ctx context.Context, userID uuid.UUID) ([]model.PatternCandidate, error)
}

// SuggestionService manages the suggestion state machine:
// (none) -> PENDING -> {CONFIRMED, DISMISSED}.
type SuggestionService struct {
	suggestionRepo SuggestionRepositoryInterface
	ruleRepo       RuleStoreForSuggestions
	detector       PatternDetector
	cache          repository.BillCache
}

// NewSuggestionService creates a SuggestionService. cache may be nil.
func NewSuggestionService(suggestionRepo SuggestionRepositoryInterface, ruleRepo RuleStoreForSuggestions, detector PatternDetector, cache repository.BillCache) *SuggestionService {
	return &SuggestionService{
		suggestionRepo: suggestionRepo,
		ruleRepo:       ruleRepo,
		detector:       detector,
		cache:          cache,
	}
}

// CreateFromCandidate persists a detector candidate as a PENDING suggestion.
// It returns (nil, nil) when the pattern is already covered by an active rule
// or a non-dismissed suggestion; callers must treat a nil suggestion as a
// normal outcome, not a failure. Two concurrent creates for the same pattern
// cannot both succeed: the losing insert maps to the same nil result.
func (s *SuggestionService) CreateFromCandidate(ctx context.Context, userID uuid.UUID, candidate model.PatternCandidate) (*model.PatternSuggestion, error) {
	return s.create(ctx, userID, candidate, model.SuggestionSourceDetection)
}

// CreateFromSMS creates a suggestion from a single SMS-flagged subscription
// transaction, assuming a monthly cycle anchored on the transaction date.
func (s *SuggestionService) CreateFromSMS(ctx context.Context, tx model.Transaction) (*model.PatternSuggestion, error) {
	pattern := tx.NormalizedMerchant
	if pattern == "" {
		pattern = detect.NormalizeMerchant(tx.MerchantName)
	}

	day := tx.Date.Day()
	candidate := model.PatternCandidate{
		MerchantPattern: pattern,
		DisplayName:     tx.MerchantName,
		AverageAmount:   tx.Amount.Abs(),
		Frequency:       model.FrequencyMonthly,
		TypicalDay:      day,
		OccurrenceCount: 1,
		Confidence:      SMSSuggestionConfidence,
		NextExpected:    detect.NextExpected(tx.Date, model.FrequencyMonthly, day),
		CategoryID:      tx.CategoryID,
	}
	return s.create(ctx, tx.UserID, candidate, model.SuggestionSourceSMS)
}

func (s *SuggestionService) create(ctx context.Context, userID uuid.UUID, candidate model.PatternCandidate, source model.SuggestionSource) (*model.PatternSuggestion, error) {
	if candidate.MerchantPattern == "" {
		return nil, fmt.Errorf("candidate has empty merchant pattern")
	}

	rules, err := s.ruleRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking rule coverage for %q: %w", candidate.MerchantPattern, err)
	}
	for _, r := range rules {
		if detect.PatternsMatch(candidate.MerchantPattern, r.MerchantPattern) {
			return nil, nil
		}
	}

	suggestion := &model.PatternSuggestion{
		UserID:          userID,
		MerchantPattern: candidate.MerchantPattern,
		DisplayName:     candidate.DisplayName,
		AverageAmount:   candidate.AverageAmount,
		AmountVariance:  candidate.AmountVariance,
		Frequency:       candidate.Frequency,
		TypicalDay:      candidate.TypicalDay,
		OccurrenceCount: candidate.OccurrenceCount,
		Confidence:      candidate.Confidence,
		NextExpected:    candidate.NextExpected,
		CategoryID:      candidate.CategoryID,
		Status:          model.SuggestionStatusPending,
		Source:          source,
	}

	err = s.suggestionRepo.Create(ctx, suggestion)
	if errors.Is(err, repository.ErrDuplicateSuggestion) {
		// Lost the race or the suggestion already existed.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating suggestion for %q: %w", candidate.MerchantPattern, err)
	}

	s.invalidateBills(ctx, userID)
	return suggestion, nil
}

// ListPending returns the user's pending suggestions, highest confidence first.
func (s *SuggestionService) ListPending(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error) {
	suggestions, err := s.suggestionRepo.ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing pending suggestions for user %s: %w", userID, err)
	}
	return suggestions, nil
}

// Confirm converts a pending suggestion into a user-confirmed RecurringRule
// and returns the new rule's ID. It never touches historical transactions.
func (s *SuggestionService) Confirm(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error) {
	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrSuggestionNotFound) {
		return uuid.Nil, ErrSuggestionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("fetching suggestion %s: %w", id, err)
	}
	if suggestion.UserID != userID {
		return uuid.Nil, ErrSuggestionNotFound
	}
	if suggestion.Status == model.SuggestionStatusDismissed {
		return uuid.Nil, ErrSuggestionNotFound
	}
	if suggestion.Status != model.SuggestionStatusPending {
		return uuid.Nil, ErrSuggestionNotPending
	}

	nextExpected := suggestion.NextExpected
	rule := &model.RecurringRule{
		UserID:          userID,
		MerchantPattern: suggestion.MerchantPattern,
		DisplayName:     suggestion.DisplayName,
		CategoryID:      suggestion.CategoryID,
		ExpectedAmount:  suggestion.AverageAmount,
		AmountVariance:  suggestion.AmountVariance,
		Frequency:       suggestion.Frequency,
		DayOfPeriod:     suggestion.TypicalDay,
		NextExpected:    &nextExpected,
		OccurrenceCount: suggestion.OccurrenceCount,
		IsActive:        true,
		IsUserConfirmed: true,
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return uuid.Nil, fmt.Errorf("creating rule from suggestion %s: %w", id, err)
	}

	if err := s.suggestionRepo.UpdateStatus(ctx, id, model.SuggestionStatusConfirmed, nil); err != nil {
		return uuid.Nil, fmt.Errorf("marking suggestion %s confirmed: %w", id, err)
	}

	s.invalidateBills(ctx, userID)
	return rule.ID, nil
}

// Dismiss marks a suggestion DISMISSED with a timestamp. The pattern stays
// suppressed until the retention cleanup purges the row.
func (s *SuggestionService) Dismiss(ctx context.Context, userID, id uuid.UUID) error {
	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrSuggestionNotFound) {
		return ErrSuggestionNotFound
	}
	if err != nil {
		return fmt.Errorf("fetching suggestion %s: %w", id, err)
	}
	if suggestion.UserID != userID {
		return ErrSuggestionNotFound
	}

	now := time.Now().UTC()
	if err := s.suggestionRepo.UpdateStatus(ctx, id, model.SuggestionStatusDismissed, &now); err != nil {
		return fmt.Errorf("dismissing suggestion %s: %w", id, err)
	}

	s.invalidateBills(ctx, userID)
	return nil
}

// CleanupDismissed purges dismissed suggestions older than the cutoff and
// returns the purged count. A pattern that persists past the retention window
// becomes eligible for re-suggestion.
func (s *SuggestionService) CleanupDismissed(ctx context.Context, olderThan time.Time) (int64, error) {
	count, err := s.suggestionRepo.DeleteDismissedBefore(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("cleaning up dismissed suggestions: %w", err)
	}
	return count, nil
}

// RunDetection executes a full detection pass for one user and persists the
// resulting candidates. Returns the number of suggestions actually created;
// already-covered candidates are skipped silently.
func (s *SuggestionService) RunDetection(ctx context.Context, userID uuid.UUID) (int, error) {
	candidates, err := s.detector.DetectPatterns(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("detecting patterns for user %s: %w", userID, err)
	}

	created := 0
	for _, candidate := range candidates {
		suggestion, err := s.CreateFromCandidate(ctx, userID, candidate)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping candidate",
				"merchant_pattern", candidate.MerchantPattern,
				"error", err.Error(),
			)
			continue
		}
		if suggestion != nil {
			created++
		}
	}

	return created, nil
}

func (s *SuggestionService) invalidateBills(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Warn("invalidating bill cache", "user_id", userID.String(), "error", err.Error())
	}
}
