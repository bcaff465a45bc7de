package httpapi

import (
	"net/http"

	"jobinfo-engine/internal/catalog"
)

const homeScreenJobs = 4

type CatalogHandler struct {
	Cat *catalog.Catalog
}

func (h CatalogHandler) Titles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"titles": h.Cat.Titles()})
}

// Popular returns the records with the most alias titles, for the home
// screen cards.
func (h CatalogHandler) Popular(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"jobs": h.Cat.Popular(homeScreenJobs)})
}

// Recent returns the newest catalog entries, last-added first.
func (h CatalogHandler) Recent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"jobs": h.Cat.Recent(homeScreenJobs)})
}

func (h CatalogHandler) Terms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"terms": h.Cat.Terms()})
}
