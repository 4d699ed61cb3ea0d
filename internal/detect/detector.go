package detect

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/billscout/backend/internal/model"
)

// TransactionSource supplies the debit history to mine.
type TransactionSource interface {
	ListDebits(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
}

// RuleSource supplies the active rules that already cover merchants.
type RuleSource interface {
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error)
}

// SuggestionSource supplies existing non-dismissed suggestions.
type SuggestionSource interface {
	ListNonDismissed(ctx context.Context, userID uuid.UUID) ([]model.PatternSuggestion, error)
}

// Detector produces the current set of pattern candidates from a user's
// transaction history. A detection pass is read-only and idempotent: running
// it twice without new transactions yields the same candidates.
type Detector struct {
	transactions TransactionSource
	rules        RuleSource
	suggestions  SuggestionSource
}

func NewDetector(transactions TransactionSource, rules RuleSource, suggestions SuggestionSource) *Detector {
	return &Detector{
		transactions: transactions,
		rules:        rules,
		suggestions:  suggestions,
	}
}

// DetectPatterns groups the user's debits by normalized merchant, classifies
// each group, and returns candidates for merchants not already covered by an
// active rule or a pending suggestion. Records with a zero date are skipped
// rather than failing the pass.
func (d *Detector) DetectPatterns(ctx context.Context, userID uuid.UUID) ([]model.PatternCandidate, error) {
	txs, err := d.transactions.ListDebits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing debits for user %s: %w", userID, err)
	}

	rules, err := d.rules.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing active rules for user %s: %w", userID, err)
	}

	suggestions, err := d.suggestions.ListNonDismissed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions for user %s: %w", userID, err)
	}

	groups := make(map[string][]model.Transaction)
	displayNames := make(map[string]string) // pattern -> most recent merchant name
	for _, tx := range txs {
		if tx.Date.IsZero() {
			continue
		}
		pattern := tx.NormalizedMerchant
		if pattern == "" {
			pattern = NormalizeMerchant(tx.MerchantName)
		}
		if pattern == "" {
			continue
		}
		groups[pattern] = append(groups[pattern], tx)
		displayNames[pattern] = tx.MerchantName
	}

	var candidates []model.PatternCandidate
	for pattern, group := range groups {
		if len(group) < 2 {
			continue
		}
		if coveredByRule(pattern, rules) || coveredBySuggestion(pattern, suggestions) {
			continue
		}

		occ := make([]Occurrence, len(group))
		for i, tx := range group {
			occ[i] = Occurrence{Date: tx.Date, Amount: tx.Amount}
		}

		c, ok := Classify(occ)
		if !ok {
			continue
		}

		candidates = append(candidates, model.PatternCandidate{
			MerchantPattern: pattern,
			DisplayName:     displayNames[pattern],
			AverageAmount:   c.AverageAmount,
			AmountVariance:  c.AmountVariance,
			Frequency:       c.Frequency,
			TypicalDay:      c.TypicalDay,
			OccurrenceCount: c.OccurrenceCount,
			Confidence:      c.Confidence,
			NextExpected:    c.NextExpected,
			CategoryID:      modalCategory(group),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].MerchantPattern < candidates[j].MerchantPattern
	})

	return candidates, nil
}

// NormalizeMerchant case-folds a merchant name and collapses whitespace. The
// result is the dedup/join key across transactions, rules, and suggestions.
func NormalizeMerchant(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// PatternsMatch reports whether two normalized merchant patterns refer to the
// same merchant. Containment in either direction counts; merchant strings
// drift between statement variants ("netflix" vs "netflix com.bill").
func PatternsMatch(a, b string) bool {
	a = NormalizeMerchant(a)
	b = NormalizeMerchant(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func coveredByRule(pattern string, rules []model.RecurringRule) bool {
	for _, r := range rules {
		if PatternsMatch(pattern, r.MerchantPattern) {
			return true
		}
	}
	return false
}

func coveredBySuggestion(pattern string, suggestions []model.PatternSuggestion) bool {
	for _, s := range suggestions {
		if s.Status == model.SuggestionStatusDismissed {
			continue
		}
		if PatternsMatch(pattern, s.MerchantPattern) {
			return true
		}
	}
	return false
}

// modalCategory returns the most frequent non-nil category in a group.
func modalCategory(group []model.Transaction) *uuid.UUID {
	counts := make(map[uuid.UUID]int)
	for _, tx := range group {
		if tx.CategoryID != nil {
			counts[*tx.CategoryID]++
		}
	}
	var best *uuid.UUID
	bestCount := 0
	for id, count := range counts {
		if count > bestCount {
			id := id
			best, bestCount = &id, count
		}
	}
	return best
}
