package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billscout/backend/internal/apperror"
	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/repository"
	"github.com/billscout/backend/internal/service"
	"github.com/billscout/backend/pkg/datetime"
)

type TransactionHandler struct {
	service TransactionServiceInterface
}

func NewTransactionHandler(service TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type ingestTransactionRequest struct {
	Amount         decimal.Decimal       `json:"amount"`
	MerchantName   string                `json:"merchantName"`
	CategoryID     *uuid.UUID            `json:"categoryId"`
	Type           model.TransactionType `json:"type"`
	Date           datetime.Date         `json:"date"`
	DueDate        *datetime.Date        `json:"dueDate"`
	IsSubscription bool                  `json:"isSubscription"`
}

// Ingest godoc
// @Summary Ingest a parsed transaction
// @Description Accepts one transaction from the upstream SMS parser. Subscription-flagged debits raise a suggestion immediately.
// @Tags transactions
// @Accept json
// @Produce json
// @Security UserID
// @Param input body ingestTransactionRequest true "Transaction data"
// @Success 201 {object} model.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var req ingestTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperror.BadRequest("invalid request body: "+err.Error()))
		return
	}

	if req.MerchantName == "" {
		respondAppError(w, apperror.ValidationError("merchantName", "merchant name is required"))
		return
	}
	if !req.Amount.IsPositive() {
		respondAppError(w, apperror.ValidationError("amount", "amount is required and must be greater than 0"))
		return
	}
	if req.Date.IsZero() {
		respondAppError(w, apperror.ValidationError("date", "date is required (YYYY-MM-DD)"))
		return
	}

	tx := &model.Transaction{
		UserID:       userID,
		Amount:       req.Amount,
		MerchantName: req.MerchantName,
		CategoryID:   req.CategoryID,
		Type:         req.Type,
		Date:         req.Date.Time,
	}
	if req.DueDate != nil {
		due := req.DueDate.Time
		tx.DueDate = &due
	}

	created, err := h.service.Ingest(r.Context(), tx, req.IsSubscription)
	if err != nil {
		respondAppError(w, apperror.BadRequest(err.Error()))
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// List godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security UserID
// @Param type query string false "DEBIT, CREDIT, or SAVINGS"
// @Param merchant query string false "Merchant substring filter"
// @Param start query string false "Earliest date (YYYY-MM-DD)"
// @Param end query string false "Latest date (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	filters, err := parseTransactionFilters(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid filters")
		return
	}

	transactions, err := h.service.List(r.Context(), userID, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	respondJSON(w, http.StatusOK, transactions)
}

// Get godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security UserID
// @Param id path string true "Transaction ID"
// @Success 200 {object} model.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.service.Get(r.Context(), userID, id)
	if errors.Is(err, service.ErrTransactionNotFound) {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

func parseTransactionFilters(r *http.Request) (repository.TransactionFilters, error) {
	var filters repository.TransactionFilters
	q := r.URL.Query()

	if raw := q.Get("type"); raw != "" {
		t := model.TransactionType(raw)
		filters.Type = &t
	}
	if raw := q.Get("merchant"); raw != "" {
		filters.Merchant = &raw
	}
	if raw := q.Get("start"); raw != "" {
		start, err := time.Parse(datetime.DateFormat, raw)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}
	if raw := q.Get("end"); raw != "" {
		end, err := time.Parse(datetime.DateFormat, raw)
		if err != nil {
			return filters, err
		}
		filters.EndDate = &end
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filters, errors.New("invalid limit")
		}
		filters.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filters, errors.New("invalid offset")
		}
		filters.Offset = offset
	}

	return filters, nil
}
