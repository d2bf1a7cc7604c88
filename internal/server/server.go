package server

import (
	"net/http"
	"time"

	"github.com/atmdb/atmdb/internal/utils"
	"github.com/atmdb/atmdb/pkg/catalog"
	"github.com/gorilla/mux"
)

// Server renders the species browser over a loaded catalog.
type Server struct {
	Catalog *catalog.Catalog
	router  *mux.Router
}

func New(c *catalog.Catalog) *Server {
	s := &Server{Catalog: c}

	router := mux.NewRouter()
	router.Use(recoveryMiddleware)
	router.Use(loggingMiddleware)

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.Handle("/", http.RedirectHandler("/species", http.StatusFound)).Methods("GET")

	// Pages
	router.HandleFunc("/species", s.handleSpeciesPage).Methods("GET")
	router.HandleFunc("/species/{number:[0-9]+}", s.handleDetailPage).Methods("GET")

	// API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/species", s.handleSpeciesList).Methods("GET")
	api.HandleFunc("/species/{number:[0-9]+}", s.handleSpeciesGet).Methods("GET")

	s.router = router
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(addr string) error {
	utils.Log.Infof("Starting server on %s (%d records)", addr, s.Catalog.Len())
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		utils.Log.WithFields(map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Debug("request")
	})
}

func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				utils.Log.Errorf("Panic serving %s: %v", r.URL.Path, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
