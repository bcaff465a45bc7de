package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobinfo-engine/internal/events"
	"jobinfo-engine/internal/session"

	"go.uber.org/zap"
)

type SessionHandler struct {
	Sess *session.Session
	Hub  *events.Hub
	Log  *zap.Logger
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), 400)
		return false
	}
	if dec.More() {
		http.Error(w, "invalid JSON: trailing data", 400)
		return false
	}
	return true
}

// writeSessionError maps session errors onto HTTP statuses.
func writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNoActiveJob):
		WriteError(w, r, http.StatusConflict, "no_active_job", err.Error())
	case errors.Is(err, session.ErrUnknownJob),
		errors.Is(err, session.ErrUnknownSector),
		errors.Is(err, session.ErrUnknownOffer):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, session.ErrUnknownField):
		WriteError(w, r, http.StatusBadRequest, "unknown_field", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal", err.Error())
	}
}

func (h SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Sess.State())
}

func (h SessionHandler) SelectJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.Sess.SelectJob(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, session.ErrUnknownJob) {
			writeSessionError(w, r, err)
			return
		}
		h.Log.Warn("persist last search", zap.Error(err))
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobViewed, 1, map[string]any{
		"id":    view.Job.ID,
		"title": view.Job.Title(),
	}))
	writeJSON(w, view)
}

func (h SessionHandler) SelectInstitution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.Sess.SelectInstitution(req.Name)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (h SessionHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	breakdown, err := h.Sess.UpdateField(req.Field, req.Value)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"breakdown": breakdown})
}

func (h SessionHandler) AddAllowance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	state, err := h.Sess.AddAllowance(req.Name)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"calculator": state})
}

func (h SessionHandler) ResetCalculator(w http.ResponseWriter, r *http.Request) {
	view, err := h.Sess.ResetCalculator()
	if err != nil {
		writeSessionError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (h SessionHandler) SwitchCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency string `json:"currency"`
		Rate     string `json:"rate"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.Sess.SwitchCurrency(req.Currency, req.Rate)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeCurrencySwitched, 1, map[string]any{
		"currency": view.Currency,
		"rate":     view.Rate,
	}))
	writeJSON(w, view)
}
