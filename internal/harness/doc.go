// Package harness runs YAML dictionary scenarios.
//
// A scenario drives one fresh dictionary handle through a sequence of
// loads, buffer loads and frees, checks each step's outcome, then validates
// lookups against the final state.
//
// # Scenario Format
//
//	name: vendor_scope
//	description: "What this scenario validates"
//	files:
//	  dictionary: |
//	    VENDOR Acme 9
//	    $INCLUDE dictionary.acme
//	  dictionary.acme: |
//	    BEGIN-VENDOR Acme
//	    ATTRIBUTE Acme-Thing 1 integer
//	    END-VENDOR
//	steps:
//	  - load: dictionary
//	  - buffer: "ATTRIBUTE X 1 bogustype"
//	    expect_error: INVALID_TYPE
//	assertions:
//	  - type: attribute_by_name
//	    name: acme-thing
//	    expect: { code: 1, vendor: 9, type: integer }
//	  - type: value_by_attribute
//	    attribute: Service-Type
//	    number: 1
//	    absent: true
//	  - type: stats
//	    expect: { attributes: 1, vendors: 1 }
//
// Load names resolve to scenario files first, then to absolute paths, then
// to paths relative to the scenario file.
//
// # Assertion Types
//
//   - attribute_by_name, attribute_by_id: attribute lookups
//   - value_by_name, value_by_attribute: enumerated value lookups
//   - vendor_by_name, vendor_by_code: vendor lookups
//   - stats: record counts of the final handle
//   - journal: counts of journaled loads (loads, ok, failed)
//
// Lookup assertions either expect a record (with an optional subset match
// on its fields) or, with absent: true, expect nothing.
//
// # Deterministic Testing
//
// The handle ID is derived from the scenario name, journal IDs come from a
// sequence generator, and error locations are reported relative to the
// scenario. Transcripts are therefore identical across runs and machines.
package harness
