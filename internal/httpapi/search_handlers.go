package httpapi

import (
	"net/http"
	"strconv"

	"jobinfo-engine/internal/events"
	"jobinfo-engine/internal/resolve"
	"jobinfo-engine/internal/session"

	"go.uber.org/zap"
)

type SearchHandler struct {
	Sess *session.Session
	Hub  *events.Hub
	Log  *zap.Logger
}

// Search resolves ?q= against the catalog. A hit returns the activated
// job view; a miss returns the suggestion/sector recovery payload.
func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	result, err := h.Sess.Search(r.Context(), q)
	if err != nil {
		// Persistence failure only; the result is still usable.
		h.Log.Warn("persist last search", zap.Error(err))
	}

	reqID := RequestIDFrom(r.Context())
	if result.Job != nil {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobViewed, 1, map[string]any{
			"id":    result.Job.Job.ID,
			"title": result.Job.Job.Title(),
		}))
	} else {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeSearchNotFound, 1, map[string]any{
			"query": q,
		}))
	}
	writeJSON(w, result)
}

func (h SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	max := resolve.DefaultSuggestions
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, r, http.StatusBadRequest, "bad_max", "max must be a positive integer")
			return
		}
		max = n
	}

	res := h.Sess.Resolver()
	suggestions := res.Suggest(q, max)
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, map[string]any{"query": q, "suggestions": suggestions})
}

func (h SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	res := h.Sess.Resolver()
	matches := res.Autocomplete(q)
	if matches == nil {
		matches = []string{}
	}
	writeJSON(w, map[string]any{"query": q, "matches": matches})
}
