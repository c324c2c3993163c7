package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/raddict/internal/dictionary"
	"github.com/roach88/raddict/internal/store"
	"github.com/roach88/raddict/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs steps against one dictionary handle and journals every load.
type Harness struct {
	scenario *Scenario
	dict     *dictionary.Dictionary
	store    *store.Store
	logger   *slog.Logger

	// filesDir holds the materialized scenario files, empty if none.
	filesDir string
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger sends dictionary and harness logs to logger.
// Default: logs are discarded.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh dictionary handle and a fresh
// in-memory journal for isolation. Handle and journal IDs are
// deterministic so results are reproducible.
//
// Execution flow:
// 1. Materialize scenario files into a private temp directory
// 2. Execute steps in order, comparing each outcome to expect_error
// 3. Snapshot the final dictionary
// 4. Evaluate assertions
//
// A step failing unexpectedly does not stop later steps; records from the
// failed load persist, as they would for any caller.
func Run(scenario *Scenario, opts ...RunOption) (*Result, error) {
	cfg := runConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequenceIDGenerator("load")))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer st.Close()

	h := &Harness{
		scenario: scenario,
		store:    st,
		logger:   cfg.logger.With(slog.String("scenario", scenario.Name)),
	}
	h.dict = dictionary.New(
		dictionary.WithLogger(h.logger),
		dictionary.WithID("scenario-"+scenario.Name),
	)

	if len(scenario.Files) > 0 {
		dir, err := os.MkdirTemp("", "raddict-scenario-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create scenario directory: %w", err)
		}
		defer os.RemoveAll(dir)
		h.filesDir = dir

		if err := h.materializeFiles(); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i+1, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	var snapshot bytes.Buffer
	if err := dictionary.Format(&snapshot, h.dict); err != nil {
		return nil, fmt.Errorf("failed to snapshot dictionary: %w", err)
	}
	result.Snapshot = snapshot.String()

	actx := &AssertionContext{
		Dict:  h.dict,
		Store: st,
		Ctx:   ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func (h *Harness) materializeFiles() error {
	for name, content := range h.scenario.Files {
		path := filepath.Join(h.filesDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// executeStep runs one step, journals loads and checks expect_error.
// Only journal failures are returned as errors; dictionary failures are
// step outcomes.
func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	sr := StepResult{Index: index, Op: step.Op()}

	var loadErr error
	switch sr.Op {
	case OpLoad:
		sr.Arg = step.Load
		path := h.resolve(step.Load)
		before := len(h.dict.Files())
		loadErr = h.dict.LoadFile(path)
		if _, err := h.store.WriteLoad(ctx, store.NewLoadRecord(h.dict, path, before, loadErr)); err != nil {
			return fmt.Errorf("failed to journal load: %w", err)
		}
	case OpBuffer:
		sr.Arg = step.Buffer
		loadErr = h.dict.LoadBuffer([]byte(step.Buffer))
		if _, err := h.store.WriteLoad(ctx, store.NewLoadRecord(h.dict, "memory", len(h.dict.Files()), loadErr)); err != nil {
			return fmt.Errorf("failed to journal load: %w", err)
		}
	case OpFree:
		h.dict.Free()
	}

	if loadErr != nil {
		sr.ErrorCode = string(dictionary.CodeOf(loadErr))
		var de *dictionary.Error
		if errors.As(loadErr, &de) {
			sr.ErrorSource = h.displayPath(de.Source)
			sr.ErrorLine = de.Line
		}
	}
	sr.Stats = h.dict.Stats()
	result.AddStep(sr)

	switch {
	case step.ExpectError == "" && sr.ErrorCode != "":
		result.AddError(fmt.Sprintf("step %d (%s): unexpected error %s", index, sr.Op, sr.ErrorCode))
	case step.ExpectError != "" && sr.ErrorCode == "":
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, got success", index, sr.Op, step.ExpectError))
	case step.ExpectError != sr.ErrorCode:
		result.AddError(fmt.Sprintf("step %d (%s): expected error %s, got %s", index, sr.Op, step.ExpectError, sr.ErrorCode))
	}

	h.logger.Debug("scenario step completed",
		"step", index,
		"op", sr.Op,
		"error_code", sr.ErrorCode,
	)
	return nil
}

// resolve maps a load name to a path: scenario files first, then absolute
// paths, then the scenario directory.
func (h *Harness) resolve(name string) string {
	if _, ok := h.scenario.Files[name]; ok {
		return filepath.Join(h.filesDir, name)
	}
	if filepath.IsAbs(name) || h.scenario.Dir == "" {
		return name
	}
	return filepath.Join(h.scenario.Dir, name)
}

// displayPath reports an error source relative to the scenario: files under
// the temp directory by their scenario file name, anything else relative to
// the scenario directory.
func (h *Harness) displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	if h.filesDir != "" {
		if rel, err := filepath.Rel(h.filesDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	if h.scenario.Dir != "" {
		if rel, err := filepath.Rel(h.scenario.Dir, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}
