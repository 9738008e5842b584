package http

import (
	"net/http"

	"thoonsheet-backend/internal/service"
)

type PaymentAccountHandler struct {
	accounts service.PaymentAccountService
}

func NewPaymentAccountHandler(accounts service.PaymentAccountService) *PaymentAccountHandler {
	return &PaymentAccountHandler{accounts: accounts}
}

func (h *PaymentAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.PaymentAccountInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	account, err := h.accounts.Create(r.Context(), actorFrom(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *PaymentAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	account, err := h.accounts.Get(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *PaymentAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *PaymentAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.PaymentAccountInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	account, err := h.accounts.Update(r.Context(), actorFrom(r.Context()), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *PaymentAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.accounts.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
