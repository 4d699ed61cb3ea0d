package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/internal/service"
	"github.com/billscout/backend/pkg/datetime"
)

type BillHandler struct {
	service BillServiceInterface
	now     func() time.Time
}

func NewBillHandler(service BillServiceInterface) *BillHandler {
	return &BillHandler{service: service, now: time.Now}
}

// defaultRange spans from the start of last month through the end of next
// month, so recently missed bills stay visible without an explicit start.
func (h *BillHandler) defaultRange() (time.Time, time.Time) {
	today := datetime.StartOfDay(h.now())
	start := datetime.StartOfMonth(today).AddDate(0, -1, 0)
	end := datetime.NextMonth(datetime.NextMonth(today)).AddDate(0, 0, -1)
	return start, end
}

func (h *BillHandler) billRange(r *http.Request) (time.Time, time.Time, error) {
	defaultStart, defaultEnd := h.defaultRange()
	start, err := parseDateParam(r, "start", defaultStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDateParam(r, "end", defaultEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end precedes start")
	}
	return start, end, nil
}

// List godoc
// @Summary List upcoming bills
// @Description Merged view of recurring rules, credit-card dues, and pending suggestions in a date range
// @Tags bills
// @Produce json
// @Security UserID
// @Param start query string false "Range start (YYYY-MM-DD)"
// @Param end query string false "Range end (YYYY-MM-DD)"
// @Success 200 {array} model.UpcomingBill
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bills [get]
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	start, end, err := h.billRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	bills, err := h.service.GetUpcomingBills(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list bills")
		return
	}
	if bills == nil {
		bills = []model.UpcomingBill{}
	}

	respondJSON(w, http.StatusOK, bills)
}

// Summary godoc
// @Summary Bill totals for this month and next
// @Tags bills
// @Produce json
// @Security UserID
// @Success 200 {object} model.BillSummary
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bills/summary [get]
func (h *BillHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	start, end := h.defaultRange()
	bills, err := h.service.GetUpcomingBills(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to summarize bills")
		return
	}

	respondJSON(w, http.StatusOK, service.Summary(bills, datetime.StartOfDay(h.now())))
}

// Groups godoc
// @Summary Bills grouped by urgency
// @Description Buckets: OVERDUE, DUE_TODAY, DUE_TOMORROW, DUE_THIS_WEEK, LATER_THIS_MONTH, NEXT_MONTH
// @Tags bills
// @Produce json
// @Security UserID
// @Success 200 {array} model.BillGroup
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bills/groups [get]
func (h *BillHandler) Groups(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	start, end := h.defaultRange()
	bills, err := h.service.GetUpcomingBills(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to group bills")
		return
	}

	groups := service.Groups(bills, datetime.StartOfDay(h.now()))
	if groups == nil {
		groups = []model.BillGroup{}
	}

	respondJSON(w, http.StatusOK, groups)
}

// Calendar godoc
// @Summary Bills mapped onto calendar days
// @Tags bills
// @Produce json
// @Security UserID
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} map[string][]model.UpcomingBill
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bills/calendar [get]
func (h *BillHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := datetime.NextMonth(start).AddDate(0, 0, -1)

	bills, err := h.service.GetUpcomingBills(r.Context(), userID, start, end)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}

	respondJSON(w, http.StatusOK, service.Calendar(bills))
}

type payBillRequest struct {
	TransactionID *uuid.UUID `json:"transactionId,omitempty"`
}

// Pay godoc
// @Summary Mark a bill paid
// @Description Settles a rule-sourced bill: ONE_TIME rules deactivate, recurring rules advance one period from today
// @Tags bills
// @Accept json
// @Produce json
// @Security UserID
// @Param id path string true "Bill ID (rule:<uuid>)"
// @Param input body payBillRequest false "Optional settling transaction"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bills/{id}/pay [post]
func (h *BillHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	billID := chi.URLParam(r, "id")

	var req payBillRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	err := h.service.MarkPaid(r.Context(), userID, billID, req.TransactionID)
	switch {
	case errors.Is(err, service.ErrBillNotPayable):
		respondError(w, http.StatusBadRequest, "only recurring-rule bills can be marked paid")
	case errors.Is(err, service.ErrBillNotFound):
		respondError(w, http.StatusNotFound, "bill not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to mark bill paid")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
