package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
	"thoonsheet-backend/internal/service"

	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	transactions service.TransactionService
	summaries    service.SummaryService
}

func NewTransactionHandler(transactions service.TransactionService, summaries service.SummaryService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, summaries: summaries}
}

type transactionRequest struct {
	TransactionDate  *string          `json:"transaction_date"`
	GroupID          *int32           `json:"group"`
	PaymentAccountID *int32           `json:"payment_account"`
	TransferIDLast6  *string          `json:"transfer_id_last_6_digits"`
	Amount           *decimal.Decimal `json:"amount"`
	Type             *string          `json:"transaction_type"`
	Image            *string          `json:"image"`
	OwnerNotes       *string          `json:"owner_notes"`
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("transaction_date", "invalid date format")
	}
	return t, nil
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var in service.CreateTransactionInput
	if req.TransactionDate != nil {
		date, err := parseDate(*req.TransactionDate)
		if err != nil {
			writeError(w, err)
			return
		}
		in.TransactionDate = date
	}
	if req.GroupID != nil {
		in.GroupID = *req.GroupID
	}
	if req.PaymentAccountID != nil {
		in.PaymentAccountID = *req.PaymentAccountID
	}
	if req.TransferIDLast6 != nil {
		in.TransferIDLast6 = *req.TransferIDLast6
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	if req.Type != nil {
		in.Type = domain.TransactionType(*req.Type)
	}
	if req.Image != nil {
		in.Image = *req.Image
	}

	tx, err := h.transactions.Create(r.Context(), actorFrom(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tx, err := h.transactions.Get(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func filterFromQuery(r *http.Request) (repository.TransactionFilter, error) {
	var filter repository.TransactionFilter
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		filter.Status = domain.TransactionStatus(v)
	}
	if v := q.Get("transaction_type"); v != "" {
		filter.Type = domain.TransactionType(v)
	}
	if v := q.Get("transfer_id_last_6_digits"); v != "" {
		filter.TransferIDLast6 = v
	}
	if v := q.Get("search"); v != "" {
		filter.Search = v
	}
	for param, dst := range map[string]**int32{
		"group":           &filter.GroupID,
		"payment_account": &filter.PaymentAccountID,
		"submitted_by":    &filter.SubmittedBy,
	} {
		if v := q.Get(param); v != "" {
			id, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				return filter, domain.NewValidationError(param, "invalid id")
			}
			val := int32(id)
			*dst = &val
		}
	}
	for param, dst := range map[string]**time.Time{
		"date_from": &filter.DateFrom,
		"date_to":   &filter.DateTo,
	} {
		if v := q.Get(param); v != "" {
			t, err := parseDate(v)
			if err != nil {
				return filter, domain.NewValidationError(param, "invalid date format")
			}
			*dst = &t
		}
	}
	return filter, nil
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	txs, err := h.transactions.List(r.Context(), actorFrom(r.Context()), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// ListPending and ListRejected are the owner review queues.
func (h *TransactionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, domain.TransactionStatusPending)
}

func (h *TransactionHandler) ListRejected(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, domain.TransactionStatusRejected)
}

func (h *TransactionHandler) listByStatus(w http.ResponseWriter, r *http.Request, status domain.TransactionStatus) {
	actor := actorFrom(r.Context())
	if !policy.CanReviewTransactions(actor) {
		logger.RequestDenied("list review queue", actor.ID)
		writeError(w, domain.ErrPermissionDenied)
		return
	}
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	filter.Status = status
	txs, err := h.transactions.List(r.Context(), actor, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	in := service.UpdateTransactionInput{
		GroupID:          req.GroupID,
		PaymentAccountID: req.PaymentAccountID,
		TransferIDLast6:  req.TransferIDLast6,
		Amount:           req.Amount,
		Image:            req.Image,
		OwnerNotes:       req.OwnerNotes,
	}
	if req.TransactionDate != nil {
		date, err := parseDate(*req.TransactionDate)
		if err != nil {
			writeError(w, err)
			return
		}
		in.TransactionDate = &date
	}
	if req.Type != nil {
		txType := domain.TransactionType(*req.Type)
		in.Type = &txType
	}

	tx, err := h.transactions.Update(r.Context(), actorFrom(r.Context()), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.transactions.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reviewRequest struct {
	OwnerNotes *string `json:"owner_notes"`
}

func (h *TransactionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.transactions.Approve)
}

func (h *TransactionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.transactions.Reject)
}

func (h *TransactionHandler) review(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, actor policy.Actor, id int32, notes *string) (*domain.Transaction, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req reviewRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	tx, err := action(r.Context(), actorFrom(r.Context()), id, req.OwnerNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tx, err := h.transactions.Resubmit(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period := domain.SummaryPeriod(q.Get("period"))

	var start, end *time.Time
	if v := q.Get("start_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, domain.NewValidationError("start_date", "invalid date format"))
			return
		}
		start = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, domain.NewValidationError("end_date", "invalid date format"))
			return
		}
		end = &t
	}

	report, err := h.summaries.Report(r.Context(), actorFrom(r.Context()), period, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
