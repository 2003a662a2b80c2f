package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/felixarntz/screen-reader-check/internal/checks"
	"github.com/felixarntz/screen-reader-check/internal/database"
	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/fetch"
	"github.com/felixarntz/screen-reader-check/internal/model"
	"github.com/felixarntz/screen-reader-check/internal/rules"
)

const testPage = "<!DOCTYPE html><html lang=\"en\"><head><title>Runner Test</title></head><body><p>hi</p></body></html>"

// stubRule is a minimal rule for driver tests. When question is set it
// asks it once and succeeds as soon as an answer is stored.
type stubRule struct {
	slug     string
	question string
}

func (s stubRule) Metadata() rules.Metadata {
	return rules.Metadata{Slug: s.slug, Title: s.slug}
}

func (s stubRule) Run(_ context.Context, rep *rules.Report, _ *dom.Document, opts rules.Options) error {
	if s.question != "" {
		if _, answered := opts.Value(s.question); !answered {
			rep.Request(model.RequestData{
				Slug:  s.question,
				Type:  "text",
				Label: "Stub question",
			})
		}
	}
	rep.Finish("stub rule passed")
	return nil
}

type testEnv struct {
	db      *database.CheckDB
	service *checks.Service
	checkID int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cdb, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	t.Cleanup(func() { _ = cdb.Close() })

	svc := checks.NewService(cdb, fetch.New(nil), nil)
	check, err := svc.Create(context.Background(), checks.CreateInput{HTML: testPage})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}
	return &testEnv{db: cdb, service: svc, checkID: check.ID}
}

// TestRunNextTestSequence tests that repeated calls walk the catalog in
// order and end with the completion sentinel.
func TestRunNextTestSequence(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	catalog := []rules.Rule{stubRule{slug: "rule_a"}, stubRule{slug: "rule_b"}}
	r := New(env.db, env.service, catalog, nil)

	for _, expected := range []string{"rule_a", "rule_b"} {
		result, err := r.RunNextTest(ctx, env.checkID, nil)
		if err != nil {
			t.Fatalf("RunNextTest() returned error: %v", err)
		}
		if result.TestSlug != expected {
			t.Errorf("TestSlug = %q, expected %q", result.TestSlug, expected)
		}
		if !result.IsDone() {
			t.Errorf("result for %s should be done", expected)
		}
	}

	if _, err := r.RunNextTest(ctx, env.checkID, nil); !errors.Is(err, ErrCompleted) {
		t.Errorf("expected ErrCompleted after catalog exhausted, got %v", err)
	}

	results, err := r.Results(ctx, env.checkID)
	if err != nil {
		t.Fatalf("Results() returned error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("persisted %d results, expected 2", len(results))
	}
}

// TestRunNextTestPendingQuestion tests that a rule with an open question
// is not persisted and re-runs until the answer arrives.
func TestRunNextTestPendingQuestion(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	catalog := []rules.Rule{stubRule{slug: "rule_q", question: "really"}}
	r := New(env.db, env.service, catalog, nil)

	result, err := r.RunNextTest(ctx, env.checkID, nil)
	if err != nil {
		t.Fatalf("RunNextTest() returned error: %v", err)
	}
	if result.IsDone() {
		t.Fatal("result with open question should not be done")
	}
	if result.Type != model.ResultTypeInfo {
		t.Errorf("Type = %q, expected %q", result.Type, model.ResultTypeInfo)
	}
	if len(result.RequestData) != 1 {
		t.Fatalf("RequestData length = %d, expected 1", len(result.RequestData))
	}

	// Nothing may be persisted while the question is open.
	last, err := env.db.LastResult(ctx, env.checkID)
	if err != nil {
		t.Fatalf("LastResult() returned error: %v", err)
	}
	if last != nil {
		t.Error("incomplete result was persisted")
	}

	// Re-running without answers routes to the same rule again.
	again, err := r.RunNextTest(ctx, env.checkID, nil)
	if err != nil {
		t.Fatalf("RunNextTest() returned error: %v", err)
	}
	if again.TestSlug != "rule_q" || again.IsDone() {
		t.Error("driver should re-run the pending rule until answered")
	}

	// Supplying the answer completes the rule and persists the result.
	answered, err := r.RunNextTest(ctx, env.checkID, map[string]string{"really": "yes"})
	if err != nil {
		t.Fatalf("RunNextTest() returned error: %v", err)
	}
	if !answered.IsDone() {
		t.Fatal("answered rule should be done")
	}
	if answered.Type != model.ResultTypeSuccess {
		t.Errorf("Type = %q, expected %q", answered.Type, model.ResultTypeSuccess)
	}

	last, err = env.db.LastResult(ctx, env.checkID)
	if err != nil {
		t.Fatalf("LastResult() returned error: %v", err)
	}
	if last == nil || last.TestSlug != "rule_q" {
		t.Error("answered result was not persisted")
	}
}

// TestRunNextTestAnswerPrefixing tests that answers are namespaced with
// the pending rule's slug before being stored.
func TestRunNextTestAnswerPrefixing(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	catalog := []rules.Rule{stubRule{slug: "rule_q", question: "really"}}
	r := New(env.db, env.service, catalog, nil)

	if _, err := r.RunNextTest(ctx, env.checkID, map[string]string{"really": "yes"}); err != nil {
		t.Fatalf("RunNextTest() returned error: %v", err)
	}

	check, err := env.service.Get(ctx, env.checkID)
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	options, err := env.service.GetOptions(ctx, check)
	if err != nil {
		t.Fatalf("GetOptions() returned error: %v", err)
	}
	if options["rule_q_really"] != "yes" {
		t.Errorf("options = %v, expected rule_q_really=yes", options)
	}
}

// TestRunNextTestUnknownCheck tests the lookup failure path.
func TestRunNextTestUnknownCheck(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	r := New(env.db, env.service, []rules.Rule{stubRule{slug: "rule_a"}}, nil)
	if _, err := r.RunNextTest(context.Background(), 9999, nil); !errors.Is(err, checks.ErrCheckNotFound) {
		t.Errorf("expected ErrCheckNotFound, got %v", err)
	}
}

// TestRunAll tests driving a check to completion in one call.
func TestRunAll(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	catalog := []rules.Rule{
		stubRule{slug: "rule_a"},
		stubRule{slug: "rule_q", question: "really"},
		stubRule{slug: "rule_b"},
	}
	r := New(env.db, env.service, catalog, nil)

	// The run pauses on the rule with the open question.
	results, err := r.RunAll(ctx, env.checkID, nil)
	if err != nil {
		t.Fatalf("RunAll() returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, expected 2", len(results))
	}
	if last := results[len(results)-1]; last.TestSlug != "rule_q" || last.IsDone() {
		t.Error("run should pause on the pending rule")
	}

	// Supplying the answer resumes and finishes the catalog.
	results, err = r.RunAll(ctx, env.checkID, map[string]string{"really": "yes"})
	if err != nil {
		t.Fatalf("RunAll() returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results after resume, expected 2", len(results))
	}

	persisted, err := r.Results(ctx, env.checkID)
	if err != nil {
		t.Fatalf("Results() returned error: %v", err)
	}
	if len(persisted) != 3 {
		t.Errorf("persisted %d results, expected 3", len(persisted))
	}
}

// TestRunMany tests parallel evaluation of independent checks.
func TestRunMany(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	second, err := env.service.Create(ctx, checks.CreateInput{HTML: testPage})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	catalog := []rules.Rule{stubRule{slug: "rule_a"}, stubRule{slug: "rule_b"}}
	r := New(env.db, env.service, catalog, nil)

	results, err := r.RunMany(ctx, []int64{env.checkID, second.ID})
	if err != nil {
		t.Fatalf("RunMany() returned error: %v", err)
	}
	for _, id := range []int64{env.checkID, second.ID} {
		if len(results[id]) != 2 {
			t.Errorf("check %d: got %d results, expected 2", id, len(results[id]))
		}
	}
}
