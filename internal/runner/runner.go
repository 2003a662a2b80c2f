package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/felixarntz/screen-reader-check/internal/checks"
	"github.com/felixarntz/screen-reader-check/internal/database"
	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
	"github.com/felixarntz/screen-reader-check/internal/rules"
)

// ErrCompleted signals that every rule in the catalog has produced a
// persisted result for the check. It is a terminal sentinel, not a
// failure, and callers must not surface it as one.
var ErrCompleted = errors.New("all rules have been completed for this check")

// Runner advances audits through the rule catalog.
//
// Design decision: Progress is derived from the last persisted result
// rather than kept in memory because:
//  1. Audits span many calls, often across process restarts
//  2. The persisted results are authoritative anyway
//  3. It keeps the runner itself stateless apart from serialization locks
type Runner struct {
	db      *database.CheckDB
	service *checks.Service
	catalog []rules.Rule
	logger  *slog.Logger

	// mu guards locks. Each check id gets its own mutex so concurrent
	// calls for the same check cannot both read the same last result
	// and advance past different rules.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// New creates a Runner. A nil logger discards log output.
func New(db *database.CheckDB, service *checks.Service, catalog []rules.Rule, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		db:      db,
		service: service,
		catalog: catalog,
		logger:  logger,
		locks:   make(map[int64]*sync.Mutex),
	}
}

func (r *Runner) lockFor(checkID int64) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[checkID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[checkID] = lock
	}
	return lock
}

// nextRule resolves which rule the check's next call should run.
func (r *Runner) nextRule(ctx context.Context, checkID int64) (rules.Rule, error) {
	last, err := r.db.LastResult(ctx, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to load last result: %w", err)
	}
	if last == nil {
		return r.catalog[0], nil
	}

	idx := rules.IndexOf(r.catalog, last.TestSlug)
	if idx < 0 {
		return nil, fmt.Errorf("persisted result references unknown rule %q", last.TestSlug)
	}
	if !last.IsDone() {
		return r.catalog[idx], nil
	}
	if idx+1 >= len(r.catalog) {
		return nil, ErrCompleted
	}
	return r.catalog[idx+1], nil
}

// RunNextTest runs the next pending rule for the check and returns its
// result. Supplied answers are persisted to the option store before the
// rule runs and survive even if the run itself fails. A result that
// still carries open questions is returned without being persisted, and
// the same rule runs again on the next call. Once the catalog is
// exhausted, ErrCompleted is returned.
func (r *Runner) RunNextTest(ctx context.Context, checkID int64, answers map[string]string) (*model.Result, error) {
	lock := r.lockFor(checkID)
	lock.Lock()
	defer lock.Unlock()

	check, err := r.service.Get(ctx, checkID)
	if err != nil {
		return nil, err
	}

	rule, err := r.nextRule(ctx, checkID)
	if err != nil {
		if errors.Is(err, ErrCompleted) {
			r.logger.Info("check completed", "check_id", checkID)
		}
		return nil, err
	}
	meta := rule.Metadata()

	if len(answers) > 0 {
		prefixed := make(map[string]string, len(answers))
		for key, value := range answers {
			prefixed[rules.OptionKey(meta.Slug, key)] = value
		}
		if err := r.service.SetOptions(ctx, check, prefixed); err != nil {
			return nil, fmt.Errorf("failed to store answers: %w", err)
		}
	}

	doc, err := dom.Parse(check.HTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse check document: %w", err)
	}

	options, err := r.service.GetOptions(ctx, check)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("running rule", "check_id", checkID, "rule", meta.Slug)

	result, err := rules.Evaluate(ctx, rule, checkID, check.URL, doc, options)
	if err != nil {
		return nil, fmt.Errorf("rule %s failed: %w", meta.Slug, err)
	}

	if result.IsDone() {
		if err := r.db.SaveResult(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to persist result for %s: %w", meta.Slug, err)
		}
	}

	return result, nil
}

// RunAll advances the check until either the catalog is exhausted or a
// rule needs answers. It returns the results produced during this call;
// when the last of them carries open questions the audit is paused on
// that rule.
func (r *Runner) RunAll(ctx context.Context, checkID int64, answers map[string]string) ([]*model.Result, error) {
	var results []*model.Result
	for {
		result, err := r.RunNextTest(ctx, checkID, answers)
		if errors.Is(err, ErrCompleted) {
			return results, nil
		}
		if err != nil {
			return results, err
		}
		// Answers apply to the first rule only; later rules read their
		// own persisted options.
		answers = nil

		results = append(results, result)
		if !result.IsDone() {
			return results, nil
		}
	}
}

// RunMany runs RunAll for several checks in parallel. Results are keyed
// by check id; the first failing check aborts the remaining ones.
func (r *Runner) RunMany(ctx context.Context, checkIDs []int64) (map[int64][]*model.Result, error) {
	var mu sync.Mutex
	results := make(map[int64][]*model.Result, len(checkIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, checkID := range checkIDs {
		checkID := checkID
		g.Go(func() error {
			res, err := r.RunAll(ctx, checkID, nil)
			if err != nil {
				return err
			}
			mu.Lock()
			results[checkID] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Results returns all persisted results for the check in catalog order.
func (r *Runner) Results(ctx context.Context, checkID int64) ([]*model.Result, error) {
	return r.db.Results(ctx, checkID)
}
