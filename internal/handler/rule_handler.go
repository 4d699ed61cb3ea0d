package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/service"
	"github.com/billscout/backend/pkg/datetime"
)

type RuleHandler struct {
	service RuleServiceInterface
}

func NewRuleHandler(service RuleServiceInterface) *RuleHandler {
	return &RuleHandler{service: service}
}

type ruleRequest struct {
	MerchantPattern string          `json:"merchantPattern"`
	DisplayName     string          `json:"displayName"`
	CategoryID      *uuid.UUID      `json:"categoryId"`
	ExpectedAmount  decimal.Decimal `json:"expectedAmount"`
	Frequency       model.Frequency `json:"frequency"`
	DayOfPeriod     int             `json:"dayOfPeriod"`
	NextExpected    *datetime.Date  `json:"nextExpected"`
}

func (req ruleRequest) toModel(userID uuid.UUID) *model.RecurringRule {
	rule := &model.RecurringRule{
		UserID:          userID,
		MerchantPattern: req.MerchantPattern,
		DisplayName:     req.DisplayName,
		CategoryID:      req.CategoryID,
		ExpectedAmount:  req.ExpectedAmount,
		Frequency:       req.Frequency,
		DayOfPeriod:     req.DayOfPeriod,
	}
	if req.NextExpected != nil {
		next := req.NextExpected.Time
		rule.NextExpected = &next
	}
	return rule
}

// Create godoc
// @Summary Create a recurring rule
// @Description Manually enter a known obligation without waiting for detection
// @Tags rules
// @Accept json
// @Produce json
// @Security UserID
// @Param input body ruleRequest true "Rule data"
// @Success 201 {object} model.RecurringRule
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rules [post]
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.service.Create(r.Context(), req.toModel(userID))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, rule)
}

// List godoc
// @Summary List recurring rules
// @Tags rules
// @Produce json
// @Security UserID
// @Success 200 {array} model.RecurringRule
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rules [get]
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	rules, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rules")
		return
	}
	if rules == nil {
		rules = []model.RecurringRule{}
	}

	respondJSON(w, http.StatusOK, rules)
}

// Get godoc
// @Summary Get a recurring rule
// @Tags rules
// @Produce json
// @Security UserID
// @Param id path string true "Rule ID"
// @Success 200 {object} model.RecurringRule
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rules/{id} [get]
func (h *RuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	rule, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		respondError(w, http.StatusNotFound, "rule not found")
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

// Update godoc
// @Summary Update a recurring rule
// @Tags rules
// @Accept json
// @Produce json
// @Security UserID
// @Param id path string true "Rule ID"
// @Param input body ruleRequest true "Updated rule data"
// @Success 200 {object} model.RecurringRule
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rules/{id} [put]
func (h *RuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule := req.toModel(userID)
	rule.ID = id

	updated, err := h.service.Update(r.Context(), userID, rule)
	switch {
	case errors.Is(err, service.ErrRuleNotFound):
		respondError(w, http.StatusNotFound, "rule not found")
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondJSON(w, http.StatusOK, updated)
	}
}

// Delete godoc
// @Summary Deactivate a recurring rule
// @Description Soft delete; occurrence history is kept so the pattern is not re-suggested
// @Tags rules
// @Produce json
// @Security UserID
// @Param id path string true "Rule ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rules/{id} [delete]
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.service.Deactivate(r.Context(), userID, id)
	switch {
	case errors.Is(err, service.ErrRuleNotFound):
		respondError(w, http.StatusNotFound, "rule not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to deactivate rule")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

type occurrenceRequest struct {
	OccurredAt datetime.Date `json:"occurredAt"`
}

// RecordOccurrence godoc
// @Summary Record a rule occurrence
// @Description Logs a matched payment and advances the rule's next expected date
// @Tags rules
// @Accept json
// @Produce json
// @Security UserID
// @Param id path string true "Rule ID"
// @Param input body occurrenceRequest true "Occurrence date"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rules/{id}/occurrence [post]
func (h *RuleHandler) RecordOccurrence(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req occurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	occurredAt := req.OccurredAt.Time
	if occurredAt.IsZero() {
		occurredAt = datetime.StartOfDay(time.Now())
	}

	err = h.service.RecordOccurrence(r.Context(), userID, id, occurredAt)
	switch {
	case errors.Is(err, service.ErrRuleNotFound):
		respondError(w, http.StatusNotFound, "rule not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to record occurrence")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
