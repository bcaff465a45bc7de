package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"jobinfo-engine/internal/catalog"
	"jobinfo-engine/internal/events"
	"jobinfo-engine/internal/sector"
	"jobinfo-engine/internal/session"

	"go.uber.org/zap"
)

type SectorHandler struct {
	Cat  *catalog.Catalog
	Sess *session.Session
	Hub  *events.Hub
	Log  *zap.Logger
}

type sectorSummary struct {
	Name  string        `json:"name"`
	Desc  string        `json:"desc"`
	Jobs  int           `json:"jobs"`
	Range *sector.Range `json:"range,omitempty"`
}

// List returns every sector with its typical salary range, in catalog
// order.
func (h SectorHandler) List(w http.ResponseWriter, r *http.Request) {
	secs := h.Cat.Sectors()
	out := make([]sectorSummary, 0, len(secs))
	for _, s := range secs {
		sum := sectorSummary{Name: s.Name, Desc: s.Desc, Jobs: len(s.Jobs)}
		if rng, ok := sector.SalaryRange(h.Cat, s.Name); ok {
			r := rng
			sum.Range = &r
		}
		out = append(out, sum)
	}
	writeJSON(w, map[string]any{"sectors": out})
}

// sectorFromPath extracts the sector name from /sectors/{name} or
// /sectors/{name}/select.
func sectorFromPath(path string) (name string, selecting bool, ok bool) {
	rest := strings.TrimPrefix(path, "/sectors/")
	if rest == path || rest == "" {
		return "", false, false
	}
	if tail, found := strings.CutSuffix(rest, "/select"); found {
		rest = tail
		selecting = true
	}
	name, err := url.PathUnescape(rest)
	if err != nil || name == "" || strings.Contains(name, "/") {
		return "", false, false
	}
	return name, selecting, true
}

func (h SectorHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	name, selecting, ok := sectorFromPath(r.URL.Path)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "bad_sector", "invalid sector path")
		return
	}

	switch {
	case selecting && r.Method == http.MethodPost:
		h.selectSector(w, r, name)
	case !selecting && r.Method == http.MethodGet:
		h.getSector(w, r, name)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h SectorHandler) getSector(w http.ResponseWriter, r *http.Request, name string) {
	sec, ok := h.Cat.Sector(name)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_sector", "unknown sector: "+name)
		return
	}

	view := session.SectorView{
		Name: sec.Name,
		Desc: sec.Desc,
		Jobs: sector.JobsFor(h.Cat, name),
	}
	if rng, ok := sector.SalaryRange(h.Cat, name); ok {
		view.Range = &rng
	}
	writeJSON(w, view)
}

// selectSector browses a sector through the session so the choice is
// remembered across restarts.
func (h SectorHandler) selectSector(w http.ResponseWriter, r *http.Request, name string) {
	view, err := h.Sess.SelectSector(r.Context(), name)
	if err != nil {
		if errors.Is(err, session.ErrUnknownSector) {
			WriteError(w, r, http.StatusNotFound, "unknown_sector", err.Error())
			return
		}
		h.Log.Warn("persist last sector", zap.Error(err))
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeSectorSelected, 1, map[string]any{
		"name": name,
	}))
	writeJSON(w, view)
}
