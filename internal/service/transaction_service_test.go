package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
)

type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionStore) List(ctx context.Context, userID uuid.UUID, filters repository.TransactionFilters) ([]model.Transaction, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockTransactionStore) UpdatePaymentStatus(ctx context.Context, id, userID uuid.UUID, status model.PaymentStatus) error {
	args := m.Called(ctx, id, userID, status)
	return args.Error(0)
}

type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) CreateFromSMS(ctx context.Context, tx model.Transaction) (*model.PatternSuggestion, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PatternSuggestion), args.Error(1)
}

func validDebit() *model.Transaction {
	return &model.Transaction{
		UserID:       uuid.New(),
		Amount:       decimal.NewFromInt(499),
		MerchantName: "NETFLIX COM.BILL",
		Type:         model.TransactionTypeDebit,
		Date:         date(2024, 3, 15),
	}
}

func TestTransactionService_IngestNormalizesMerchant(t *testing.T) {
	t.Parallel()

	store := new(MockTransactionStore)
	svc := NewTransactionService(store, nil)

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	tx, err := svc.Ingest(context.Background(), validDebit(), false)

	require.NoError(t, err)
	assert.Equal(t, "netflix com.bill", tx.NormalizedMerchant)
	assert.Equal(t, model.PaymentStatusPending, tx.PaymentStatus)
}

func TestTransactionService_IngestValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(tx *model.Transaction)
	}{
		{"missing merchant", func(tx *model.Transaction) { tx.MerchantName = "" }},
		{"zero amount", func(tx *model.Transaction) { tx.Amount = decimal.Zero }},
		{"negative amount", func(tx *model.Transaction) { tx.Amount = decimal.NewFromInt(-10) }},
		{"zero date", func(tx *model.Transaction) { tx.Date = time.Time{} }},
		{"unknown type", func(tx *model.Transaction) { tx.Type = model.TransactionType("TRANSFER") }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := new(MockTransactionStore)
			svc := NewTransactionService(store, nil)

			tx := validDebit()
			tt.mutate(tx)

			_, err := svc.Ingest(context.Background(), tx, false)

			assert.Error(t, err)
			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTransactionService_IngestFlaggedRaisesSuggestion(t *testing.T) {
	t.Parallel()

	store := new(MockTransactionStore)
	suggester := new(MockSuggester)
	svc := NewTransactionService(store, suggester)

	store.On("Create", mock.Anything, mock.Anything).Return(nil)
	suggester.On("CreateFromSMS", mock.Anything, mock.MatchedBy(func(tx model.Transaction) bool {
		return tx.NormalizedMerchant == "netflix com.bill"
	})).Return(&model.PatternSuggestion{}, nil)

	_, err := svc.Ingest(context.Background(), validDebit(), true)

	require.NoError(t, err)
	suggester.AssertExpectations(t)
}

func TestTransactionService_SuggestionFailureDoesNotFailIngest(t *testing.T) {
	t.Parallel()

	store := new(MockTransactionStore)
	suggester := new(MockSuggester)
	svc := NewTransactionService(store, suggester)

	store.On("Create", mock.Anything, mock.Anything).Return(nil)
	suggester.On("CreateFromSMS", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	tx, err := svc.Ingest(context.Background(), validDebit(), true)

	require.NoError(t, err)
	require.NotNil(t, tx)
}

func TestTransactionService_FlaggedCreditIsNotSuggested(t *testing.T) {
	t.Parallel()

	store := new(MockTransactionStore)
	suggester := new(MockSuggester)
	svc := NewTransactionService(store, suggester)

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	tx := validDebit()
	tx.Type = model.TransactionTypeCredit

	_, err := svc.Ingest(context.Background(), tx, true)

	require.NoError(t, err)
	suggester.AssertNotCalled(t, "CreateFromSMS", mock.Anything, mock.Anything)
}

func TestTransactionService_GetEnforcesOwnership(t *testing.T) {
	t.Parallel()

	store := new(MockTransactionStore)
	svc := NewTransactionService(store, nil)

	someoneElses := validDebit()
	someoneElses.ID = uuid.New()
	store.On("GetByID", mock.Anything, someoneElses.ID).Return(someoneElses, nil)

	_, err := svc.Get(context.Background(), uuid.New(), someoneElses.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
