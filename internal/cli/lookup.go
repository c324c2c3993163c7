package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/raddict/internal/dictionary"
)

// Lookup kinds accepted by the lookup command.
const (
	KindAttribute   = "attribute"    // by name
	KindAttributeID = "attribute-id" // <code> or <vendor>:<code>
	KindValue       = "value"        // by name
	KindValueOf     = "value-of"     // <attribute>:<number>
	KindVendor      = "vendor"       // by name
	KindVendorCode  = "vendor-code"  // by number
)

// LookupKinds lists the kinds in help order.
var LookupKinds = []string{KindAttribute, KindAttributeID, KindValue, KindValueOf, KindVendor, KindVendorCode}

// LookupResult is the record found by a lookup. Exactly one of Attribute,
// Value and Vendor is set.
type LookupResult struct {
	Kind      string                `json:"kind"`
	Key       string                `json:"key"`
	Attribute *dictionary.Attribute `json:"attribute,omitempty"`
	Value     *dictionary.Value     `json:"value,omitempty"`
	Vendor    *dictionary.Vendor    `json:"vendor,omitempty"`
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <kind> <key>",
		Short: "Find one record in the loaded dictionaries",
		Long: `Load dictionaries from -d flags or the config file and look up
one record. Names compare case-insensitively, except the attribute
name in value-of which must match exactly. When several records match,
the most recently defined one wins.

Kinds:
  attribute     <name>
  attribute-id  <code> | <vendor>:<code>
  value         <name>
  value-of      <attribute>:<number>
  vendor        <name>
  vendor-code   <number>

Exit codes:
  0 - Record found
  1 - Not found, or a dictionary failed to load
  2 - Command error (bad kind or key, no dictionaries)

Examples:
  raddict lookup -d dictionary attribute framed-ip-address
  raddict lookup -d dictionary attribute-id 14988:3
  raddict lookup -d dictionary value-of Service-Type:2`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runLookup(opts *RootOptions, kind, key string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd.ErrOrStderr()); err != nil {
		return err
	}
	formatter := newFormatter(opts, cmd)

	if !isValidKind(kind) {
		msg := fmt.Sprintf("unknown lookup kind %q: must be one of %v", kind, LookupKinds)
		_ = formatter.Error(ErrCodeBadKey, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	// Positional args are the query, so dictionaries come from -d or config.
	d, _, err := loadDictionaries(cmd.Context(), opts, formatter, opts.dictionaryPaths(nil))
	if err != nil {
		return err
	}

	result, found, err := lookup(d, kind, key)
	if err != nil {
		_ = formatter.Error(ErrCodeBadKey, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid lookup key", err)
	}
	if !found {
		msg := fmt.Sprintf("%s %q not found", kind, key)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, describeLookup(d, result))
	return nil
}

func isValidKind(kind string) bool {
	for _, k := range LookupKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// lookup runs one query. The error is non-nil only for malformed keys.
func lookup(d *dictionary.Dictionary, kind, key string) (LookupResult, bool, error) {
	result := LookupResult{Kind: kind, Key: key}

	switch kind {
	case KindAttribute:
		attr, ok := d.AttributeByName(key)
		result.Attribute = &attr
		return result, ok, nil

	case KindAttributeID:
		id, err := parseAttributeID(key)
		if err != nil {
			return result, false, err
		}
		attr, ok := d.AttributeByID(id)
		result.Attribute = &attr
		return result, ok, nil

	case KindValue:
		val, ok := d.ValueByName(key)
		result.Value = &val
		return result, ok, nil

	case KindValueOf:
		i := strings.LastIndexByte(key, ':')
		if i <= 0 {
			return result, false, fmt.Errorf("value-of key %q: want <attribute>:<number>", key)
		}
		number, err := parseUint32(key[i+1:])
		if err != nil {
			return result, false, fmt.Errorf("value-of key %q: %w", key, err)
		}
		val, ok := d.ValueByAttributeAndNumber(key[:i], number)
		result.Value = &val
		return result, ok, nil

	case KindVendor:
		vend, ok := d.VendorByName(key)
		result.Vendor = &vend
		return result, ok, nil

	case KindVendorCode:
		code, err := parseUint32(key)
		if err != nil {
			return result, false, fmt.Errorf("vendor-code key %q: %w", key, err)
		}
		vend, ok := d.VendorByCode(code)
		result.Vendor = &vend
		return result, ok, nil
	}

	return result, false, fmt.Errorf("unknown lookup kind %q", kind)
}

// parseAttributeID accepts "<code>" for standard attributes and
// "<vendor>:<code>" for vendor-specific ones, matching AttributeID.String.
func parseAttributeID(key string) (dictionary.AttributeID, error) {
	vendorPart, codePart, hasVendor := strings.Cut(key, ":")
	if !hasVendor {
		codePart, vendorPart = vendorPart, "0"
	}

	vendor, err := parseUint32(vendorPart)
	if err != nil {
		return 0, fmt.Errorf("attribute-id key %q: vendor: %w", key, err)
	}
	code, err := parseUint32(codePart)
	if err != nil {
		return 0, fmt.Errorf("attribute-id key %q: code: %w", key, err)
	}
	return dictionary.NewAttributeID(code, vendor), nil
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// describeLookup renders a found record as one dictionary-style line.
func describeLookup(d *dictionary.Dictionary, r LookupResult) string {
	switch {
	case r.Attribute != nil:
		a := r.Attribute
		line := fmt.Sprintf("ATTRIBUTE %s %d %s", a.Name, a.ID.Code(), a.Type)
		if vendor := a.ID.Vendor(); vendor != 0 {
			if v, ok := d.VendorByCode(vendor); ok {
				line += " vendor=" + v.Name
			} else {
				line += fmt.Sprintf(" vendor=%d", vendor)
			}
		}
		return line
	case r.Value != nil:
		return fmt.Sprintf("VALUE %s %s %d", r.Value.Attribute, r.Value.Name, r.Value.Number)
	case r.Vendor != nil:
		return fmt.Sprintf("VENDOR %s %d", r.Vendor.Name, r.Vendor.Code)
	}
	return ""
}
