package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/raddict/internal/dictionary"
)

// StepResult records the outcome of one scenario step.
type StepResult struct {
	// Index is the 1-based step number.
	Index int `json:"index"`

	// Op is "load", "buffer" or "free".
	Op string `json:"op"`

	// Arg is the load name as written in the scenario, or the buffer text.
	Arg string `json:"arg,omitempty"`

	// ErrorCode is the dictionary error code, empty on success.
	ErrorCode string `json:"error_code,omitempty"`

	// ErrorSource and ErrorLine locate the failing line. ErrorSource is
	// relative to the scenario so transcripts never contain temp paths.
	ErrorSource string `json:"error_source,omitempty"`
	ErrorLine   int    `json:"error_line,omitempty"`

	// Stats holds the record counts after the step.
	Stats dictionary.Stats `json:"stats"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step matched its expected outcome and every assertion held.
	Pass bool `json:"pass"`

	// Steps contains one entry per executed step, in order.
	Steps []StepResult `json:"steps"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Snapshot is the final dictionary rendered by dictionary.Format.
	Snapshot string `json:"snapshot"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStep appends a step outcome.
func (r *Result) AddStep(step StepResult) {
	r.Steps = append(r.Steps, step)
}

// Transcript renders the step outcomes and the final dictionary as stable
// text for golden comparison.
func (r *Result) Transcript(name string) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "scenario: %s\n", name)
	for _, step := range r.Steps {
		fmt.Fprintf(&buf, "step %d: %s\n", step.Index, step.describe())
	}
	buf.WriteString("--- dictionary\n")
	buf.WriteString(r.Snapshot)
	return buf.String()
}

func (s StepResult) describe() string {
	var head string
	switch s.Op {
	case OpLoad:
		head = "load " + s.Arg
	case OpBuffer:
		head = fmt.Sprintf("buffer %q", s.Arg)
	default:
		head = s.Op
	}

	outcome := "ok"
	if s.ErrorCode != "" {
		outcome = s.ErrorCode
		if s.ErrorSource != "" && s.ErrorLine > 0 {
			outcome = fmt.Sprintf("%s at %s:%d", s.ErrorCode, s.ErrorSource, s.ErrorLine)
		} else if s.ErrorSource != "" {
			outcome = fmt.Sprintf("%s at %s", s.ErrorCode, s.ErrorSource)
		}
	}

	return fmt.Sprintf("%s: %s [attributes=%d values=%d vendors=%d]",
		head, outcome, s.Stats.Attributes, s.Stats.Values, s.Stats.Vendors)
}
