package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/service"
)

type MockRuleService struct {
	mock.Mock
}

func (m *MockRuleService) Create(ctx context.Context, rule *model.RecurringRule) (*model.RecurringRule, error) {
	args := m.Called(ctx, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecurringRule), args.Error(1)
}

func (m *MockRuleService) Get(ctx context.Context, userID, ruleID uuid.UUID) (*model.RecurringRule, error) {
	args := m.Called(ctx, userID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecurringRule), args.Error(1)
}

func (m *MockRuleService) List(ctx context.Context, userID uuid.UUID) ([]model.RecurringRule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecurringRule), args.Error(1)
}

func (m *MockRuleService) Update(ctx context.Context, userID uuid.UUID, rule *model.RecurringRule) (*model.RecurringRule, error) {
	args := m.Called(ctx, userID, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecurringRule), args.Error(1)
}

func (m *MockRuleService) Deactivate(ctx context.Context, userID, ruleID uuid.UUID) error {
	args := m.Called(ctx, userID, ruleID)
	return args.Error(0)
}

func (m *MockRuleService) RecordOccurrence(ctx context.Context, userID, ruleID uuid.UUID, occurredAt time.Time) error {
	args := m.Called(ctx, userID, ruleID, occurredAt)
	return args.Error(0)
}

func newRuleRouter(svc RuleServiceInterface) chi.Router {
	h := NewRuleHandler(svc)
	r := chi.NewRouter()
	r.Get("/rules", h.List)
	r.Post("/rules", h.Create)
	r.Get("/rules/{id}", h.Get)
	r.Delete("/rules/{id}", h.Delete)
	r.Post("/rules/{id}/occurrence", h.RecordOccurrence)
	return r
}

func TestRuleHandler_Create(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	svc := new(MockRuleService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *model.RecurringRule) bool {
		return r.UserID == userID &&
			r.MerchantPattern == "rent landlord" &&
			r.Frequency == model.FrequencyMonthly &&
			r.NextExpected != nil &&
			r.NextExpected.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&model.RecurringRule{ID: uuid.New()}, nil)

	body := `{
		"merchantPattern": "rent landlord",
		"expectedAmount": "15000",
		"frequency": "MONTHLY",
		"dayOfPeriod": 1,
		"nextExpected": "2024-04-01"
	}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/rules", bytes.NewBufferString(body)), userID)
	w := httptest.NewRecorder()
	newRuleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestRuleHandler_GetNotFound(t *testing.T) {
	t.Parallel()

	svc := new(MockRuleService)
	svc.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrRuleNotFound)

	req := withUser(httptest.NewRequest(http.MethodGet, "/rules/"+uuid.NewString(), nil), uuid.New())
	w := httptest.NewRecorder()
	newRuleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRuleHandler_Delete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ruleID := uuid.New()

	svc := new(MockRuleService)
	svc.On("Deactivate", mock.Anything, userID, ruleID).Return(nil)

	req := withUser(httptest.NewRequest(http.MethodDelete, "/rules/"+ruleID.String(), nil), userID)
	w := httptest.NewRecorder()
	newRuleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestRuleHandler_RecordOccurrence(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ruleID := uuid.New()

	svc := new(MockRuleService)
	svc.On("RecordOccurrence", mock.Anything, userID, ruleID,
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)).Return(nil)

	body := `{"occurredAt": "2024-03-02"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/rules/"+ruleID.String()+"/occurrence", bytes.NewBufferString(body)), userID)
	w := httptest.NewRecorder()
	newRuleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
