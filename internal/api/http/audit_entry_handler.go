package http

import (
	"net/http"

	"thoonsheet-backend/internal/service"
)

type AuditEntryHandler struct {
	entries service.AuditEntryService
}

func NewAuditEntryHandler(entries service.AuditEntryService) *AuditEntryHandler {
	return &AuditEntryHandler{entries: entries}
}

func (h *AuditEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.AuditEntryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.entries.Create(r.Context(), actorFrom(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *AuditEntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.entries.Get(r.Context(), actorFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *AuditEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.List(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *AuditEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var in service.AuditEntryInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	entry, err := h.entries.Update(r.Context(), actorFrom(r.Context()), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *AuditEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.entries.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
