package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/service"
	"github.com/billscout/backend/pkg/datetime"
)

type BudgetHandler struct {
	service BudgetServiceInterface
}

func NewBudgetHandler(service BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{service: service}
}

type budgetRequest struct {
	CategoryID  *uuid.UUID      `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	PeriodStart datetime.Date   `json:"periodStart"`
	PeriodEnd   *datetime.Date  `json:"periodEnd"`
}

func (req budgetRequest) toModel(userID uuid.UUID) *model.Budget {
	budget := &model.Budget{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		PeriodStart: req.PeriodStart.Time,
	}
	if req.PeriodEnd != nil {
		end := req.PeriodEnd.Time
		budget.PeriodEnd = &end
	}
	return budget
}

// Create godoc
// @Summary Create a budget
// @Description Create a spending budget, overall (no category) or per category
// @Tags budgets
// @Accept json
// @Produce json
// @Security UserID
// @Param input body budgetRequest true "Budget data"
// @Success 201 {object} model.Budget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets [post]
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	budget, err := h.service.Create(r.Context(), req.toModel(userID))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, budget)
}

// List godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security UserID
// @Success 200 {array} model.Budget
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets [get]
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	budgets, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list budgets")
		return
	}
	if budgets == nil {
		budgets = []model.Budget{}
	}

	respondJSON(w, http.StatusOK, budgets)
}

// Status godoc
// @Summary Budget status with spend and projections
// @Description Every active budget with spent amount, daily average, projected total, and alert level
// @Tags budgets
// @Produce json
// @Security UserID
// @Success 200 {array} model.BudgetStatus
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /budgets/status [get]
func (h *BudgetHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	statuses, err := h.service.ListWithStatus(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute budget status")
		return
	}
	if statuses == nil {
		statuses = []model.BudgetStatus{}
	}

	respondJSON(w, http.StatusOK, statuses)
}

// Update godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security UserID
// @Param id path string true "Budget ID"
// @Param input body budgetRequest true "Updated budget data"
// @Success 200 {object} model.Budget
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{id} [put]
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	budget := req.toModel(userID)
	budget.ID = id
	budget.IsActive = true

	updated, err := h.service.Update(r.Context(), userID, budget)
	switch {
	case errors.Is(err, service.ErrBudgetNotFound):
		respondError(w, http.StatusNotFound, "budget not found")
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondJSON(w, http.StatusOK, updated)
	}
}

// Delete godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Security UserID
// @Param id path string true "Budget ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.service.Delete(r.Context(), userID, id)
	switch {
	case errors.Is(err, service.ErrBudgetNotFound):
		respondError(w, http.StatusNotFound, "budget not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to delete budget")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
