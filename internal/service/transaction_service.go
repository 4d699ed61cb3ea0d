package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/billscout/backend/internal/detect"
	"github.com/billscout/backend/internal/logger"
	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionStore is the transaction repository contract used here.
type TransactionStore interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filters repository.TransactionFilters) ([]model.Transaction, error)
	UpdatePaymentStatus(ctx context.Context, id, userID uuid.UUID, status model.PaymentStatus) error
}

// SubscriptionSuggester turns a flagged transaction into a pattern
// suggestion. Satisfied by SuggestionService.
type SubscriptionSuggester interface {
	CreateFromSMS(ctx context.Context, tx model.Transaction) (*model.PatternSuggestion, error)
}

// TransactionService ingests parsed transactions from the upstream SMS
// pipeline and serves filtered history.
type TransactionService struct {
	transactionRepo TransactionStore
	suggester       SubscriptionSuggester
}

func NewTransactionService(transactionRepo TransactionStore, suggester SubscriptionSuggester) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo, suggester: suggester}
}

// Ingest stores one parsed transaction. The merchant is normalized at write
// time so detection never has to renormalize history. When the upstream
// parser has already tagged the transaction as a subscription charge, a
// suggestion is raised immediately instead of waiting for the nightly sweep;
// a suggestion failure never fails the ingest.
func (s *TransactionService) Ingest(ctx context.Context, tx *model.Transaction, isSubscription bool) (*model.Transaction, error) {
	if tx.MerchantName == "" {
		return nil, errors.New("merchant name is required")
	}
	if !tx.Amount.IsPositive() {
		return nil, errors.New("transaction amount must be positive")
	}
	if tx.Date.IsZero() {
		return nil, errors.New("transaction date is required")
	}
	switch tx.Type {
	case model.TransactionTypeDebit, model.TransactionTypeCredit, model.TransactionTypeSavings:
	default:
		return nil, fmt.Errorf("unknown transaction type %q", tx.Type)
	}

	tx.NormalizedMerchant = detect.NormalizeMerchant(tx.MerchantName)
	if tx.PaymentStatus == "" {
		tx.PaymentStatus = model.PaymentStatusPending
	}

	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("storing transaction: %w", err)
	}

	if isSubscription && tx.Type == model.TransactionTypeDebit && s.suggester != nil {
		if _, err := s.suggester.CreateFromSMS(ctx, *tx); err != nil {
			logger.FromContext(ctx).Warn("creating suggestion from flagged transaction",
				"transaction_id", tx.ID.String(), "error", err.Error())
		}
	}

	return tx, nil
}

// List returns the user's transactions narrowed by the given filters.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, filters repository.TransactionFilters) ([]model.Transaction, error) {
	return s.transactionRepo.List(ctx, userID, filters)
}

// Get fetches one transaction owned by the user.
func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching transaction %s: %w", id, err)
	}
	if tx.UserID != userID {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// UpdatePaymentStatus flips a transaction's payment status.
func (s *TransactionService) UpdatePaymentStatus(ctx context.Context, userID, id uuid.UUID, status model.PaymentStatus) error {
	err := s.transactionRepo.UpdatePaymentStatus(ctx, id, userID, status)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return ErrTransactionNotFound
	}
	return err
}
