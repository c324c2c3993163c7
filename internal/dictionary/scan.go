package dictionary

import (
	"strconv"
	"strings"
)

// directive is the kind of a dictionary line.
type directive int

const (
	dirNone directive = iota
	dirAttribute
	dirValue
	dirInclude
	dirEndVendor
	dirBeginVendor
	dirVendor
)

const (
	keywordAttribute   = "ATTRIBUTE"
	keywordValue       = "VALUE"
	keywordInclude     = "$INCLUDE"
	keywordEndVendor   = "END-VENDOR"
	keywordBeginVendor = "BEGIN-VENDOR"
	keywordVendor      = "VENDOR"
)

// skipLine reports whether a raw line is skipped before any other processing.
func skipLine(line string) bool {
	if line == "" {
		return true
	}
	switch line[0] {
	case '#', '\n', '\r':
		return true
	}
	return false
}

// stripComment cuts the line at the first '#'.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// classify matches the line against the directive keywords by literal prefix,
// in dispatch order. END-VENDOR and BEGIN-VENDOR are tested before VENDOR.
// $INCLUDE is only recognized in file sources.
func classify(line string, fromFile bool) directive {
	switch {
	case strings.HasPrefix(line, keywordAttribute):
		return dirAttribute
	case strings.HasPrefix(line, keywordValue):
		return dirValue
	case fromFile && strings.HasPrefix(line, keywordInclude):
		return dirInclude
	case strings.HasPrefix(line, keywordEndVendor):
		return dirEndVendor
	case strings.HasPrefix(line, keywordBeginVendor):
		return dirBeginVendor
	case strings.HasPrefix(line, keywordVendor):
		return dirVendor
	default:
		return dirNone
	}
}

// splitFields splits s on whitespace and truncates each field to
// MaxFieldLength bytes.
func splitFields(s string) []string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if len(f) > MaxFieldLength {
			fields[i] = f[:MaxFieldLength]
		}
	}
	return fields
}

// parseNumber decodes a numeric field. The field must start with a digit;
// the leading run of digits is the value, anything after it is ignored.
func parseNumber(field string) (uint32, bool) {
	if field == "" || !isDigit(field[0]) {
		return 0, false
	}
	end := 1
	for end < len(field) && isDigit(field[end]) {
		end++
	}
	n, err := strconv.ParseUint(field[:end], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
