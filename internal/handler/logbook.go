package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitweb/fitweb/internal/ctxkeys"
	"github.com/fitweb/fitweb/internal/model"
	"github.com/fitweb/fitweb/internal/reconcile"
	"github.com/fitweb/fitweb/internal/service"
)

// LogbookHandler serves the log history list and the per-entry edit flow.
type LogbookHandler struct {
	logbook  *service.LogbookService
	sessions *service.SessionService
}

func NewLogbookHandler(logbook *service.LogbookService, sessions *service.SessionService) *LogbookHandler {
	return &LogbookHandler{logbook: logbook, sessions: sessions}
}

func (h *LogbookHandler) List(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	typ := r.URL.Query().Get("type")
	if typ == "" {
		typ = "all"
	}
	entries, err := h.logbook.History(r.Context(), session.Token, session.ID, rangeParam(r, "30d"), typ)
	if err != nil {
		respondUpstreamError(w, r, h.sessions, err, "failed to load log history")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// Fields returns the structured edit form state for one cached entry.
func (h *LogbookHandler) Fields(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	entryID := r.PathValue("id")

	fields, err := h.logbook.Fields(session.ID, entryID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotCached) {
			respondError(w, http.StatusNotFound, "entry not found in current history")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load entry fields")
		return
	}
	respondJSON(w, http.StatusOK, fields)
}

// Update saves an edited entry. The response is the patched display row the
// SPA swaps in place of the old one.
func (h *LogbookHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	kind, err := model.ParseEntryKind(r.PathValue("type"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown log entry type")
		return
	}
	entryID := r.PathValue("id")

	var fields reconcile.Fields
	err = json.NewDecoder(r.Body).Decode(&fields)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fields payload")
		return
	}
	if fields.Kind != kind {
		respondError(w, http.StatusBadRequest, "payload type does not match path")
		return
	}

	patched, err := h.logbook.Update(r.Context(), session.Token, session.ID, entryID, fields)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotCached) {
			respondError(w, http.StatusNotFound, "entry not found in current history")
			return
		}
		// Bad input is the client's problem, not an upstream outage.
		if errors.Is(err, service.ErrKindMismatch) {
			respondError(w, http.StatusBadRequest, "payload type does not match entry")
			return
		}
		if errors.Is(err, reconcile.ErrInvalidTimestamp) {
			respondError(w, http.StatusBadRequest, "invalid timestamp")
			return
		}
		respondUpstreamError(w, r, h.sessions, err, "failed to update log entry")
		return
	}
	respondJSON(w, http.StatusOK, patched)
}

type deleteResponse struct {
	Armed   bool   `json:"armed"`
	EntryID string `json:"entry_id"`
}

// Delete implements the two-step confirmation over one route: the first call
// arms the entry and answers 202, the call with ?confirm=1 performs the
// delete. Confirming anything but the armed entry is a conflict.
func (h *LogbookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	kind, err := model.ParseEntryKind(r.PathValue("type"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown log entry type")
		return
	}
	entryID := r.PathValue("id")
	confirmed := r.URL.Query().Get("confirm") == "1"

	armed, err := h.logbook.Delete(r.Context(), session.Token, session.ID, kind, entryID, confirmed)
	if err != nil {
		if errors.Is(err, service.ErrDeleteNotArmed) {
			respondError(w, http.StatusConflict, "delete not armed for this entry")
			return
		}
		respondUpstreamError(w, r, h.sessions, err, "failed to delete log entry")
		return
	}
	if armed {
		respondJSON(w, http.StatusAccepted, deleteResponse{Armed: true, EntryID: entryID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancel disarms a pending delete (escape key, navigation away).
func (h *LogbookHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	h.logbook.Cancel(session.ID)
	w.WriteHeader(http.StatusNoContent)
}
