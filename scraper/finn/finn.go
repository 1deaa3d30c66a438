// Package finn fetches a Norwegian real-estate listing page and extracts
// the property facts from its label/value (dt/dd) pairs.
package finn

import (
	"context"
	"errors"
	"fmt"

	"boligbudsjett/config"
	"boligbudsjett/models"
	"boligbudsjett/utils"
)

// Status messages shown to the user.
const (
	msgSuccess      = "Boligdata hentet"
	msgNetworkError = "Nettverksfeil: %v"
	msgParseError   = "Feil ved henting av data: %v"
)

// Result is the outcome of one fetch-and-parse attempt. Err is nil on
// success and holds a *NetworkError or *ParseError otherwise.
type Result struct {
	Record  models.PropertyRecord `json:"record"`
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Err     error                 `json:"-"`
}

// Scraper fetches one listing page per call and parses it. There is no
// retry and no caching.
type Scraper struct {
	fetcher Fetcher
	logger  *utils.Logger
}

// New creates a Scraper using the fetch mode from cfg.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	logger = logger.Named("finn")

	var fetcher Fetcher
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		fetcher = NewBrowserFetcher(cfg, logger)
	default:
		if cfg.FetchMode != config.FetchModeHTTP {
			logger.Warn("unknown FETCH_MODE %q, using %s", cfg.FetchMode, config.FetchModeHTTP)
		}
		fetcher = NewHTTPFetcher(cfg)
	}
	return NewWithFetcher(fetcher, logger)
}

// NewWithFetcher creates a Scraper around an explicit Fetcher.
func NewWithFetcher(fetcher Fetcher, logger *utils.Logger) *Scraper {
	return &Scraper{fetcher: fetcher, logger: logger}
}

// Scrape fetches url and extracts the property record. It never returns
// an error; failures are reported through Result.
func (s *Scraper) Scrape(ctx context.Context, url string) Result {
	s.logger.Info("fetching listing %s", url)

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		var netErr *NetworkError
		if !errors.As(err, &netErr) {
			netErr = &NetworkError{URL: url, Err: err}
		}
		if IsTimeout(err) {
			s.logger.Warn("listing fetch timed out: %v", err)
		} else {
			s.logger.Error("listing fetch failed: %v", err)
		}
		return Result{Success: false, Message: fmt.Sprintf(msgNetworkError, netErr), Err: netErr}
	}

	s.logger.Debug("fetched %d bytes from %s", len(html), url)
	return s.Parse(html)
}

// Parse extracts a record from an already fetched document.
func (s *Scraper) Parse(html string) Result {
	rec, err := Extract(html)
	if err != nil {
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			parseErr = &ParseError{Err: err}
		}
		s.logger.Error("listing parse failed: %v", err)
		return Result{Success: false, Message: fmt.Sprintf(msgParseError, parseErr), Err: parseErr}
	}

	s.logger.Info("extracted listing: price=%s area=%s",
		utils.FormatNOK(rec.PurchasePrice()), utils.FormatArea(rec.LivableArea()))
	return Result{Record: rec, Success: true, Message: msgSuccess}
}
