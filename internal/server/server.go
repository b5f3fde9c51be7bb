package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aussiedatagal/nsw-food-penalty-map/internal/filterengine"
	"github.com/aussiedatagal/nsw-food-penalty-map/internal/model"
)

// Server serves the map API over a chi router.
type Server struct {
	ds *Dataset
}

// New creates a Server for the given dataset snapshot.
func New(ds *Dataset) *Server {
	return &Server{ds: ds}
}

// Router builds the HTTP handler: health check, derived domains, and
// filtered location queries, behind CORS for the static frontend.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/domains", s.handleDomains)
	r.Get("/api/locations", s.handleLocations)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// domainsResponse carries the derived domains plus dataset counts, so
// clients can tell sentinel ranges (groups == 0) from real single-value
// spans.
type domainsResponse struct {
	Groups  int                  `json:"groups"`
	Records int                  `json:"records"`
	Loaded  bool                 `json:"loaded"`
	Domains filterengine.Domains `json:"domains"`
}

func (s *Server) handleDomains(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domainsResponse{
		Groups:  len(s.ds.Groups),
		Records: s.ds.RecordCount(),
		Loaded:  s.ds.Domains.Loaded(),
		Domains: s.ds.Domains,
	})
}

type locationsResponse struct {
	Total     int                   `json:"total"`
	Matched   int                   `json:"matched"`
	Active    bool                  `json:"active"`
	Stats     filterengine.Stats    `json:"stats"`
	Locations []model.LocationGroup `json:"locations"`
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	var defaults filterengine.State
	if d := s.ds.Defaults(); d != nil {
		defaults = *d
	}

	f, err := parseFilter(r.URL.Query(), defaults)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	matched, stats := filterengine.ApplyWithStats(s.ds.Groups, f, s.ds.Defaults())
	if matched == nil {
		matched = []model.LocationGroup{}
	}

	writeJSON(w, http.StatusOK, locationsResponse{
		Total:     len(s.ds.Groups),
		Matched:   len(matched),
		Active:    filterengine.Active(f, s.ds.Defaults()),
		Stats:     stats,
		Locations: matched,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}
