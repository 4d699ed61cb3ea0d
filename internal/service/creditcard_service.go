package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
)

var ErrCreditCardNotFound = errors.New("credit card not found")

// CreditCardStore is the card repository contract used by CreditCardService.
type CreditCardStore interface {
	Create(ctx context.Context, card *model.CreditCard) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CreditCard, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]model.CreditCard, error)
	Update(ctx context.Context, card *model.CreditCard) error
	Deactivate(ctx context.Context, id, userID uuid.UUID) error
}

// CreditCardService manages card records whose statement dues feed the
// upcoming-bills view.
type CreditCardService struct {
	cardRepo CreditCardStore
	cache    repository.BillCache
}

// NewCreditCardService creates a CreditCardService. cache may be nil.
func NewCreditCardService(cardRepo CreditCardStore, cache repository.BillCache) *CreditCardService {
	return &CreditCardService{cardRepo: cardRepo, cache: cache}
}

func (s *CreditCardService) Create(ctx context.Context, card *model.CreditCard) (*model.CreditCard, error) {
	if card.Name == "" {
		return nil, errors.New("card name is required")
	}
	if card.PreviousDue.IsNegative() || card.TotalDue.IsNegative() {
		return nil, errors.New("card dues cannot be negative")
	}
	card.IsActive = true
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("creating credit card: %w", err)
	}
	s.invalidateBills(ctx, card.UserID)
	return card, nil
}

func (s *CreditCardService) Get(ctx context.Context, userID, cardID uuid.UUID) (*model.CreditCard, error) {
	return s.ownedCard(ctx, userID, cardID)
}

func (s *CreditCardService) ListActive(ctx context.Context, userID uuid.UUID) ([]model.CreditCard, error) {
	return s.cardRepo.ListActive(ctx, userID)
}

// Update replaces a card's statement figures after an ownership check. A new
// statement typically moves total_due into previous_due and bumps due_date.
func (s *CreditCardService) Update(ctx context.Context, userID uuid.UUID, card *model.CreditCard) (*model.CreditCard, error) {
	if _, err := s.ownedCard(ctx, userID, card.ID); err != nil {
		return nil, err
	}
	card.UserID = userID
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("updating credit card %s: %w", card.ID, err)
	}
	s.invalidateBills(ctx, userID)
	return card, nil
}

func (s *CreditCardService) Deactivate(ctx context.Context, userID, cardID uuid.UUID) error {
	err := s.cardRepo.Deactivate(ctx, cardID, userID)
	if errors.Is(err, repository.ErrCreditCardNotFound) {
		return ErrCreditCardNotFound
	}
	if err != nil {
		return fmt.Errorf("deactivating credit card %s: %w", cardID, err)
	}
	s.invalidateBills(ctx, userID)
	return nil
}

func (s *CreditCardService) ownedCard(ctx context.Context, userID, cardID uuid.UUID) (*model.CreditCard, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if errors.Is(err, repository.ErrCreditCardNotFound) {
		return nil, ErrCreditCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching credit card %s: %w", cardID, err)
	}
	if card.UserID != userID {
		return nil, ErrCreditCardNotFound
	}
	return card, nil
}

func (s *CreditCardService) invalidateBills(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateUser(ctx, userID)
}
