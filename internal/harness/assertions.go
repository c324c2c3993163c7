package harness

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/roach88/raddict/internal/dictionary"
	"github.com/roach88/raddict/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Steps    []StepResult // Step outcomes for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Steps) > 0 {
		fmt.Fprintf(&buf, "\nSteps:\n")
		for _, step := range e.Steps {
			fmt.Fprintf(&buf, "  [%d] %s\n", step.Index, step.describe())
		}
	}

	return buf.String()
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Dict  *dictionary.Dictionary
	Store *store.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the final state.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch {
		case actx == nil || actx.Dict == nil:
			err = fmt.Errorf("assertion[%d]: %s requires a dictionary", i, assertion.Type)
		case assertion.Type == AssertJournal && actx.Store == nil:
			err = fmt.Errorf("assertion[%d]: journal requires a load journal", i)
		default:
			err = evaluate(actx, assertion)
		}

		if err != nil {
			if ae, ok := err.(*AssertionError); ok && result != nil {
				ae.Steps = result.Steps
			}
			errors = append(errors, err.Error())
		}
	}

	return errors
}

func evaluate(actx *AssertionContext, a Assertion) error {
	d := actx.Dict

	switch a.Type {
	case AssertAttributeByName:
		attr, ok := d.AttributeByName(a.Name)
		return checkLookup(a, fmt.Sprintf("AttributeByName(%q)", a.Name), ok, attributeFields(attr))

	case AssertAttributeByID:
		id := dictionary.NewAttributeID(*a.Code, a.Vendor)
		attr, ok := d.AttributeByID(id)
		return checkLookup(a, fmt.Sprintf("AttributeByID(%s)", id), ok, attributeFields(attr))

	case AssertValueByName:
		val, ok := d.ValueByName(a.Name)
		return checkLookup(a, fmt.Sprintf("ValueByName(%q)", a.Name), ok, valueFields(val))

	case AssertValueByAttribute:
		val, ok := d.ValueByAttributeAndNumber(a.Attribute, *a.Number)
		return checkLookup(a, fmt.Sprintf("ValueByAttributeAndNumber(%q, %d)", a.Attribute, *a.Number), ok, valueFields(val))

	case AssertVendorByName:
		vend, ok := d.VendorByName(a.Name)
		return checkLookup(a, fmt.Sprintf("VendorByName(%q)", a.Name), ok, vendorFields(vend))

	case AssertVendorByCode:
		vend, ok := d.VendorByCode(*a.Code)
		return checkLookup(a, fmt.Sprintf("VendorByCode(%d)", *a.Code), ok, vendorFields(vend))

	case AssertStats:
		return matchFields(a.Type, "Stats()", statsFields(d.Stats()), a.Expect)

	case AssertJournal:
		fields, err := journalFields(actx.Ctx, actx.Store)
		if err != nil {
			return err
		}
		return matchFields(a.Type, "journal", fields, a.Expect)

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// checkLookup applies the absent flag and the expect subset to a lookup.
func checkLookup(a Assertion, lookup string, found bool, fields map[string]any) error {
	if a.Absent {
		if found {
			return &AssertionError{
				Type:     a.Type,
				Expected: lookup + " not found",
				Actual:   "found " + formatFields(fields),
			}
		}
		return nil
	}

	if !found {
		return &AssertionError{
			Type:     a.Type,
			Expected: lookup + " found",
			Actual:   "not found",
		}
	}

	return matchFields(a.Type, lookup, fields, a.Expect)
}

// matchFields checks that actual contains every expected field (subset match).
func matchFields(typ, lookup string, actual, expect map[string]any) error {
	for _, key := range sortedKeys(expect) {
		actualValue, exists := actual[key]
		if !exists {
			return &AssertionError{
				Type:     typ,
				Expected: fmt.Sprintf("%s field %q to exist", lookup, key),
				Actual:   fmt.Sprintf("fields: %s", formatFields(actual)),
			}
		}

		if !valuesEqual(expect[key], actualValue) {
			return &AssertionError{
				Type:     typ,
				Expected: fmt.Sprintf("%s field %q = %v", lookup, key, expect[key]),
				Actual:   fmt.Sprintf("%s field %q = %v", lookup, key, actualValue),
			}
		}
	}
	return nil
}

func attributeFields(a dictionary.Attribute) map[string]any {
	return map[string]any{
		"name":   a.Name,
		"code":   a.ID.Code(),
		"vendor": a.ID.Vendor(),
		"type":   a.Type.String(),
		"id":     a.ID.String(),
	}
}

func valueFields(v dictionary.Value) map[string]any {
	return map[string]any{
		"attribute": v.Attribute,
		"name":      v.Name,
		"number":    v.Number,
	}
}

func vendorFields(v dictionary.Vendor) map[string]any {
	return map[string]any{
		"name": v.Name,
		"code": v.Code,
	}
}

func statsFields(s dictionary.Stats) map[string]any {
	return map[string]any{
		"attributes": s.Attributes,
		"values":     s.Values,
		"vendors":    s.Vendors,
	}
}

func journalFields(ctx context.Context, st *store.Store) (map[string]any, error) {
	loads, err := st.ReadLoads(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	ok := 0
	for _, l := range loads {
		if l.OK {
			ok++
		}
	}
	return map[string]any{
		"loads":  len(loads),
		"ok":     ok,
		"failed": len(loads) - ok,
	}, nil
}

// formatFields renders a field map with sorted keys.
func formatFields(fields map[string]any) string {
	parts := make([]string, 0, len(fields))
	for _, k := range sortedKeys(fields) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// valuesEqual compares a YAML-decoded expected value with an actual field.
// Integers compare by value regardless of Go type.
func valuesEqual(expected, actual any) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	e, eok := toInt64(expected)
	a, aok := toInt64(actual)
	if eok && aok {
		return e == a
	}
	if eok != aok {
		return false
	}

	return reflect.DeepEqual(expected, actual)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
