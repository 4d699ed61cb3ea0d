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

type CreditCardHandler struct {
	service CreditCardServiceInterface
}

func NewCreditCardHandler(service CreditCardServiceInterface) *CreditCardHandler {
	return &CreditCardHandler{service: service}
}

type creditCardRequest struct {
	Name          string          `json:"name"`
	LastFour      string          `json:"lastFour"`
	PreviousDue   decimal.Decimal `json:"previousDue"`
	TotalDue      decimal.Decimal `json:"totalDue"`
	DueDate       *datetime.Date  `json:"dueDate"`
	StatementDate *datetime.Date  `json:"statementDate"`
}

func (req creditCardRequest) toModel(userID uuid.UUID) *model.CreditCard {
	card := &model.CreditCard{
		UserID:      userID,
		Name:        req.Name,
		LastFour:    req.LastFour,
		PreviousDue: req.PreviousDue,
		TotalDue:    req.TotalDue,
	}
	if req.DueDate != nil {
		due := req.DueDate.Time
		card.DueDate = &due
	}
	if req.StatementDate != nil {
		stmt := req.StatementDate.Time
		card.StatementDate = &stmt
	}
	return card
}

// Create godoc
// @Summary Register a credit card
// @Description A card's statement due feeds the upcoming-bills view once previous_due and due_date are set
// @Tags credit-cards
// @Accept json
// @Produce json
// @Security UserID
// @Param input body creditCardRequest true "Card data"
// @Success 201 {object} model.CreditCard
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /credit-cards [post]
func (h *CreditCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var req creditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.service.Create(r.Context(), req.toModel(userID))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, card)
}

// List godoc
// @Summary List active credit cards
// @Tags credit-cards
// @Produce json
// @Security UserID
// @Success 200 {array} model.CreditCard
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /credit-cards [get]
func (h *CreditCardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	cards, err := h.service.ListActive(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list credit cards")
		return
	}
	if cards == nil {
		cards = []model.CreditCard{}
	}

	respondJSON(w, http.StatusOK, cards)
}

// Get godoc
// @Summary Get a credit card
// @Tags credit-cards
// @Produce json
// @Security UserID
// @Param id path string true "Card ID"
// @Success 200 {object} model.CreditCard
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /credit-cards/{id} [get]
func (h *CreditCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	card, err := h.service.Get(r.Context(), userID, id)
	if errors.Is(err, service.ErrCreditCardNotFound) {
		respondError(w, http.StatusNotFound, "credit card not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch credit card")
		return
	}

	respondJSON(w, http.StatusOK, card)
}

// Update godoc
// @Summary Update a credit card
// @Description Typically called when a new statement arrives to roll dues forward
// @Tags credit-cards
// @Accept json
// @Produce json
// @Security UserID
// @Param id path string true "Card ID"
// @Param input body creditCardRequest true "Updated card data"
// @Success 200 {object} model.CreditCard
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /credit-cards/{id} [put]
func (h *CreditCardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req creditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card := req.toModel(userID)
	card.ID = id
	card.IsActive = true

	updated, err := h.service.Update(r.Context(), userID, card)
	switch {
	case errors.Is(err, service.ErrCreditCardNotFound):
		respondError(w, http.StatusNotFound, "credit card not found")
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondJSON(w, http.StatusOK, updated)
	}
}

// Delete godoc
// @Summary Deactivate a credit card
// @Tags credit-cards
// @Produce json
// @Security UserID
// @Param id path string true "Card ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /credit-cards/{id} [delete]
func (h *CreditCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.service.Deactivate(r.Context(), userID, id)
	switch {
	case errors.Is(err, service.ErrCreditCardNotFound):
		respondError(w, http.StatusNotFound, "credit card not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to deactivate credit card")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
