package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/raddict/internal/dictionary"
)

// Scenario defines a dictionary test scenario.
// A scenario runs a sequence of load, buffer and free steps against one
// fresh dictionary handle, then checks lookups against the final state.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Files are dictionary files materialized into a private directory before
	// the steps run. Keys are relative file names; $INCLUDE lines between
	// them resolve inside that directory.
	Files map[string]string `yaml:"files,omitempty"`

	// Steps run in order against the same handle.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final dictionary state.
	Assertions []Assertion `yaml:"assertions"`

	// Dir is the directory load names outside Files resolve against.
	// Set by LoadScenario to the scenario file's directory.
	Dir string `yaml:"-"`
}

// Step is one operation on the handle. Exactly one of Load, Buffer or Free
// is set.
type Step struct {
	// Load names a dictionary file passed to LoadFile.
	Load string `yaml:"load,omitempty"`

	// Buffer is dictionary text passed to LoadBuffer.
	Buffer string `yaml:"buffer,omitempty"`

	// Free empties the handle.
	Free bool `yaml:"free,omitempty"`

	// ExpectError is the error code the step must fail with.
	// Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Op returns the step's operation name.
func (s Step) Op() string {
	switch {
	case s.Load != "":
		return OpLoad
	case s.Buffer != "":
		return OpBuffer
	case s.Free:
		return OpFree
	default:
		return ""
	}
}

// Step operations.
const (
	OpLoad   = "load"
	OpBuffer = "buffer"
	OpFree   = "free"
)

// Assertion validates the final dictionary state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "attribute_by_name": AttributeByName(name)
	// - "attribute_by_id": AttributeByID(code, vendor)
	// - "value_by_name": ValueByName(name)
	// - "value_by_attribute": ValueByAttributeAndNumber(attribute, number)
	// - "vendor_by_name": VendorByName(name)
	// - "vendor_by_code": VendorByCode(code)
	// - "stats": record counts
	// - "journal": load journal counts
	Type string `yaml:"type"`

	// Name is the lookup name (attribute_by_name, value_by_name, vendor_by_name).
	Name string `yaml:"name,omitempty"`

	// Attribute is the owning attribute name (value_by_attribute).
	Attribute string `yaml:"attribute,omitempty"`

	// Code is the attribute code (attribute_by_id) or vendor code (vendor_by_code).
	Code *uint32 `yaml:"code,omitempty"`

	// Vendor is the vendor code of attribute_by_id. Default 0.
	Vendor uint32 `yaml:"vendor,omitempty"`

	// Number is the value number (value_by_attribute).
	Number *uint32 `yaml:"number,omitempty"`

	// Absent expects the lookup to find nothing.
	Absent bool `yaml:"absent,omitempty"`

	// Expect contains expected field values of the found record.
	// Subset match - only specified fields are validated.
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertAttributeByName  = "attribute_by_name"
	AssertAttributeByID    = "attribute_by_id"
	AssertValueByName      = "value_by_name"
	AssertValueByAttribute = "value_by_attribute"
	AssertVendorByName     = "vendor_by_name"
	AssertVendorByCode     = "vendor_by_code"
	AssertStats            = "stats"
	AssertJournal          = "journal"
)

// knownErrorCodes are the codes a step may expect.
var knownErrorCodes = map[string]bool{
	string(dictionary.ErrCodeInvalidLineFormat):   true,
	string(dictionary.ErrCodeInvalidNameLength):   true,
	string(dictionary.ErrCodeInvalidType):         true,
	string(dictionary.ErrCodeInvalidNumericField): true,
	string(dictionary.ErrCodeUnknownVendor):       true,
	string(dictionary.ErrCodeIO):                  true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scenario directory: %w", err)
	}
	scenario.Dir = dir
	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for name := range s.Files {
		if name == "" || filepath.IsAbs(name) || strings.HasPrefix(filepath.Clean(name), "..") {
			return fmt.Errorf("files: %q must be a relative path inside the scenario", name)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step Step) error {
	set := 0
	if step.Load != "" {
		set++
	}
	if step.Buffer != "" {
		set++
	}
	if step.Free {
		set++
	}
	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one of load, buffer or free is required", index)
	}

	if step.ExpectError != "" {
		if step.Free {
			return fmt.Errorf("steps[%d]: free cannot fail, expect_error is not allowed", index)
		}
		if !knownErrorCodes[step.ExpectError] {
			return fmt.Errorf("steps[%d]: unknown error code %q", index, step.ExpectError)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertAttributeByName, AssertValueByName, AssertVendorByName:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for %s", index, a.Type)
		}
	case AssertAttributeByID, AssertVendorByCode:
		if a.Code == nil {
			return fmt.Errorf("assertions[%d]: code is required for %s", index, a.Type)
		}
	case AssertValueByAttribute:
		if a.Attribute == "" {
			return fmt.Errorf("assertions[%d]: attribute is required for value_by_attribute", index)
		}
		if a.Number == nil {
			return fmt.Errorf("assertions[%d]: number is required for value_by_attribute", index)
		}
	case AssertStats, AssertJournal:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for %s", index, a.Type)
		}
		if a.Absent {
			return fmt.Errorf("assertions[%d]: absent is not allowed for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Absent && len(a.Expect) > 0 {
		return fmt.Errorf("assertions[%d]: absent and expect are mutually exclusive", index)
	}

	return nil
}
