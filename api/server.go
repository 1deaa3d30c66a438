// Package api exposes the budget calculator as a small JSON HTTP API.
// Each client works in its own in-memory session.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"boligbudsjett/catalog"
	"boligbudsjett/config"
	"boligbudsjett/scraper/finn"
	"boligbudsjett/session"
	"boligbudsjett/utils"
)

// ListingScraper fetches and parses one listing page.
type ListingScraper interface {
	Scrape(ctx context.Context, url string) finn.Result
}

type Server struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	scraper   ListingScraper
	store     *session.Store
	validator *utils.Validator
	logger    *utils.Logger
}

func NewServer(cfg *config.Config, cat *catalog.Catalog, scraper ListingScraper, store *session.Store, logger *utils.Logger) *Server {
	logger = logger.Named("api")
	return &Server{
		cfg:       cfg,
		catalog:   cat,
		scraper:   scraper,
		store:     store,
		validator: utils.NewValidator(),
		logger:    logger,
	}
}

// Router wires every route onto a gorilla/mux router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	api.HandleFunc("/financing/compare", s.handleCompare).Methods(http.MethodPost)

	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	sess := api.PathPrefix("/sessions/{id}").Subrouter()
	sess.HandleFunc("", s.handleGetSession).Methods(http.MethodGet)
	sess.HandleFunc("", s.handleDeleteSession).Methods(http.MethodDelete)
	sess.HandleFunc("/fetch", s.handleFetch).Methods(http.MethodPost)
	sess.HandleFunc("/property", s.handlePutProperty).Methods(http.MethodPut)
	sess.HandleFunc("/selections/{item}", s.handlePutSelection).Methods(http.MethodPut)
	sess.HandleFunc("/selections/{item}", s.handleDeleteSelection).Methods(http.MethodDelete)
	sess.HandleFunc("/budget", s.handleBudget).Methods(http.MethodGet)
	sess.HandleFunc("/financing", s.handlePutFinancing).Methods(http.MethodPut)
	sess.HandleFunc("/financing", s.handleGetFinancing).Methods(http.MethodGet)
	sess.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	sess.HandleFunc("/breakdown.csv", s.handleBreakdownCSV).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Zerolog().Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
