package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/history"
)

// HistoryHandler exposes the attempt history and bank list over plain JSON
// endpoints for review screens.
type HistoryHandler struct {
	store *history.Store
	banks []domain.QuestionBank
}

func NewHistoryHandler(store *history.Store, banks []domain.QuestionBank) *HistoryHandler {
	return &HistoryHandler{store: store, banks: banks}
}

// Register mounts the handler's routes on mux.
func (h *HistoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /banks", h.listBanks)
	mux.HandleFunc("GET /banks/{name}/notes", h.bankNotes)
	mux.HandleFunc("GET /history", h.load)
	mux.HandleFunc("DELETE /history", h.clear)
	mux.HandleFunc("GET /history/{id}", h.getAttempt)
	mux.HandleFunc("DELETE /history/{id}", h.deleteAttempt)
}

func (h *HistoryHandler) listBanks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.banks)
}

func (h *HistoryHandler) bankNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.store.NotesForBank(r.Context(), r.PathValue("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *HistoryHandler) load(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Load(r.Context()))
}

func (h *HistoryHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) getAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := h.store.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAttemptNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, attempt)
}

func (h *HistoryHandler) deleteAttempt(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteByID(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrAttemptNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
