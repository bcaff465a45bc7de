package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Search
	srh := SearchHandler{Sess: d.Sess, Hub: d.Hub, Log: d.Log}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Search,
	}))
	mux.HandleFunc("/suggest", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Suggest,
	}))
	mux.HandleFunc("/autocomplete", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Autocomplete,
	}))

	// Catalog
	cah := CatalogHandler{Cat: d.Cat}
	mux.HandleFunc("/titles", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cah.Titles,
	}))
	mux.HandleFunc("/jobs/popular", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cah.Popular,
	}))
	mux.HandleFunc("/jobs/recent", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cah.Recent,
	}))
	mux.HandleFunc("/terms", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cah.Terms,
	}))

	// Sectors
	seh := SectorHandler{Cat: d.Cat, Sess: d.Sess, Hub: d.Hub, Log: d.Log}
	mux.HandleFunc("/sectors", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: seh.List,
	}))
	mux.HandleFunc("/sectors/", seh.ByPath) // GET /sectors/{name}, POST /sectors/{name}/select

	// Session
	ssh := SessionHandler{Sess: d.Sess, Hub: d.Hub, Log: d.Log}
	mux.HandleFunc("/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ssh.Get,
	}))
	mux.HandleFunc("/session/job", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ssh.SelectJob,
	}))
	mux.HandleFunc("/session/institution", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ssh.SelectInstitution,
	}))
	mux.HandleFunc("/session/field", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ssh.UpdateField,
	}))
	mux.HandleFunc("/session/allowance", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ssh.AddAllowance,
	}))
	mux.HandleFunc("/session/reset", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ssh.ResetCalculator,
	}))
	mux.HandleFunc("/session/currency", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ssh.SwitchCurrency,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
