package dictionary

import "fmt"

const (
	// NameLength is the longest attribute, value or vendor name accepted.
	NameLength = 32

	// MaxFieldLength is the scan width for a single whitespace-delimited field.
	// Longer fields are truncated to this many bytes before validation.
	MaxFieldLength = 63
)

// ValueType is the wire type of an attribute.
type ValueType int

// Value types, numbered as the radcli PW_TYPE_* constants.
const (
	TypeString ValueType = iota
	TypeInteger
	TypeIPAddr
	TypeDate
	TypeIPv6Addr
	TypeIPv6Prefix

	typeMax
)

var typeKeywords = map[string]ValueType{
	"string":     TypeString,
	"integer":    TypeInteger,
	"ipaddr":     TypeIPAddr,
	"ipv4addr":   TypeIPAddr,
	"ipv6addr":   TypeIPv6Addr,
	"ipv6prefix": TypeIPv6Prefix,
	"date":       TypeDate,
}

// ParseValueType maps a type keyword to a ValueType.
// Matching is exact and case-sensitive.
func ParseValueType(keyword string) (ValueType, bool) {
	t, ok := typeKeywords[keyword]
	return t, ok
}

// Valid reports whether t is one of the recognized value types.
func (t ValueType) Valid() bool {
	return t >= 0 && t < typeMax
}

// String returns the canonical dictionary keyword for t.
func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeIPAddr:
		return "ipaddr"
	case TypeDate:
		return "date"
	case TypeIPv6Addr:
		return "ipv6addr"
	case TypeIPv6Prefix:
		return "ipv6prefix"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// MarshalText encodes t as its keyword.
func (t ValueType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid value type %d", int(t))
	}
	return []byte(t.String()), nil
}

// Attribute is a named, typed attribute definition.
type Attribute struct {
	Name string      `json:"name"`
	ID   AttributeID `json:"id"`
	Type ValueType   `json:"type"`
}

// Value is a named enumerated constant of one attribute. The attribute is
// referenced by name only; it need not exist.
type Value struct {
	Attribute string `json:"attribute"`
	Name      string `json:"name"`
	Number    uint32 `json:"number"`
}

// Vendor is an enterprise owning a private attribute namespace.
type Vendor struct {
	Name string `json:"name"`
	Code uint32 `json:"code"`
}

// Stats holds record counts of a dictionary.
type Stats struct {
	Attributes int `json:"attributes"`
	Values     int `json:"values"`
	Vendors    int `json:"vendors"`
}

// Records are stored with their folded names so lookups fold only the query.
type attributeRecord struct {
	Attribute
	fold string
}

type valueRecord struct {
	Value
	fold string
}

type vendorRecord struct {
	Vendor
	fold string
}
