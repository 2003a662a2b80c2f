package checks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/felixarntz/screen-reader-check/internal/database"
	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/fetch"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

// ErrCheckNotFound is returned when a check ID does not exist.
var ErrCheckNotFound = errors.New("check not found")

// Service creates, loads and deletes checks and resolves their options.
type Service struct {
	db      *database.CheckDB
	fetcher *fetch.Fetcher
	logger  *slog.Logger
}

// NewService creates a check service. A nil logger discards log output.
func NewService(db *database.CheckDB, fetcher *fetch.Fetcher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		db:      db,
		fetcher: fetcher,
		logger:  logger,
	}
}

// CreateInput carries the parameters for creating a check. Exactly one of
// URL and HTML must be set.
type CreateInput struct {
	// URL is the address to fetch the document from.
	URL string

	// HTML is a raw document submitted directly.
	HTML string

	// Options are initial option key/value pairs to store with the check.
	Options map[string]string
}

// Create validates the input, resolves the HTML document, extracts the
// document title and persists the new check.
//
// Title extraction doubles as the parseability gate: a document without an
// extractable, non-empty title is rejected. If the initial options cannot
// be written after the check row exists, the check is deleted again so no
// half-created check remains.
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Check, error) {
	if (input.URL == "") == (input.HTML == "") {
		return nil, errors.New("exactly one of URL and HTML must be provided")
	}

	html := input.HTML
	if input.URL != "" {
		fetched, err := s.fetcher.Fetch(ctx, input.URL)
		if err != nil {
			return nil, fmt.Errorf("fetch check document: %w", err)
		}
		html = fetched
	}

	doc, err := dom.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("parse check document: %w", err)
	}
	title := ""
	if node := doc.FindFirst("title"); node != nil {
		title = strings.TrimSpace(node.Text())
	}
	if title == "" {
		return nil, errors.New("document has no extractable title")
	}

	check := &model.Check{
		URL:   input.URL,
		HTML:  html,
		Title: title,
	}
	id, err := s.db.CreateCheck(ctx, check)
	if err != nil {
		return nil, fmt.Errorf("create check: %w", err)
	}
	check.ID = id

	if host := check.Hostname(); host != "" {
		if _, err := s.db.EnsureDomain(ctx, host); err != nil {
			s.rollbackCreate(ctx, id)
			return nil, fmt.Errorf("ensure domain for check: %w", err)
		}
	}

	if len(input.Options) > 0 {
		if err := s.SetOptions(ctx, check, input.Options); err != nil {
			s.rollbackCreate(ctx, id)
			return nil, fmt.Errorf("store initial options: %w", err)
		}
	}

	s.logger.Info("check created",
		slog.Int64("check_id", id),
		slog.String("url", check.URL),
		slog.String("title", title))

	return check, nil
}

// rollbackCreate removes a freshly created check after a later creation
// step failed.
func (s *Service) rollbackCreate(ctx context.Context, id int64) {
	if err := s.db.DeleteCheck(ctx, id); err != nil {
		s.logger.Error("rollback of half-created check failed",
			slog.Int64("check_id", id),
			slog.String("error", err.Error()))
	}
}

// Get loads a check by ID.
func (s *Service) Get(ctx context.Context, id int64) (*model.Check, error) {
	check, err := s.db.GetCheck(ctx, id)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, fmt.Errorf("%w: id %d", ErrCheckNotFound, id)
	}
	return check, nil
}

// Delete removes a check with its private options and results. Shared
// domain options are kept.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.DeleteCheck(ctx, id)
}

// GetOptions returns the full option map visible to a check. URL-based
// checks read the domain store of their hostname; raw-HTML checks read
// their private store.
func (s *Service) GetOptions(ctx context.Context, check *model.Check) (map[string]string, error) {
	if host := check.Hostname(); host != "" {
		return s.db.GetDomainOptions(ctx, host)
	}
	return s.db.GetCheckOptions(ctx, check.ID)
}

// SetOptions merges new option values into the store visible to the
// check. Values merge per key with MergeOptionValue, so list-valued
// options accumulate instead of being replaced.
//
// The write is committed before any rule run that consumes it; a failed
// run later does not roll options back. Persisted answers must survive
// the run they were collected for, otherwise the same question would be
// asked again.
func (s *Service) SetOptions(ctx context.Context, check *model.Check, options map[string]string) error {
	if len(options) == 0 {
		return nil
	}

	existing, err := s.GetOptions(ctx, check)
	if err != nil {
		return fmt.Errorf("load options for merge: %w", err)
	}

	merged := make(map[string]string, len(options))
	for key, value := range options {
		merged[key] = MergeOptionValue(existing[key], value)
	}

	if host := check.Hostname(); host != "" {
		return s.db.SetDomainOptions(ctx, host, merged)
	}
	return s.db.SetCheckOptions(ctx, check.ID, merged)
}
