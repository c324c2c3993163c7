package dictionary

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Dictionary is the handle owning one loaded set of attribute, value and
// vendor definitions.
//
// Each collection is append-only until Free. Lookups walk it from the newest
// record to the oldest.
type Dictionary struct {
	id     string
	logger *slog.Logger

	attributes []attributeRecord
	values     []valueRecord
	vendors    []vendorRecord

	// firstFile is the first path opened by LoadFile. Loading it again is a no-op.
	firstFile string
	files     []string
}

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithLogger sets the logger diagnostics are written to.
// Default: slog.Default(). Pass a discard logger to silence the handle.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dictionary) {
		d.logger = logger
	}
}

// WithID overrides the handle ID used in log records.
// Default: a fresh UUIDv7.
func WithID(id string) Option {
	return func(d *Dictionary) {
		d.id = id
	}
}

// New creates an empty dictionary.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{}
	for _, opt := range opts {
		opt(d)
	}
	if d.id == "" {
		d.id = uuid.Must(uuid.NewV7()).String()
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.logger = d.logger.With(slog.String("component", "dictionary"), slog.String("dict", d.id))
	return d
}

// ID returns the handle ID.
func (d *Dictionary) ID() string {
	return d.id
}

// AddAttribute inserts an attribute without parsing. The vendor number is
// used as given; no vendor scope applies and duplicates are not checked.
func (d *Dictionary) AddAttribute(name string, code uint32, typ ValueType, vendor uint32) (Attribute, error) {
	if len(name) > NameLength {
		return Attribute{}, d.addFailed(ErrCodeInvalidNameLength, "invalid attribute name length %d", len(name))
	}
	if !typ.Valid() {
		return Attribute{}, d.addFailed(ErrCodeInvalidType, "invalid attribute type %d", int(typ))
	}
	return d.insertAttribute(name, NewAttributeID(code, vendor), typ), nil
}

// AddValue inserts an enumerated value without parsing. The owning attribute
// is not required to exist.
func (d *Dictionary) AddValue(attribute, name string, number uint32) (Value, error) {
	if len(attribute) > NameLength {
		return Value{}, d.addFailed(ErrCodeInvalidNameLength, "invalid attribute name length %d", len(attribute))
	}
	if len(name) > NameLength {
		return Value{}, d.addFailed(ErrCodeInvalidNameLength, "invalid value name length %d", len(name))
	}
	return d.insertValue(attribute, name, number), nil
}

// AddVendor inserts a vendor without parsing.
func (d *Dictionary) AddVendor(name string, code uint32) (Vendor, error) {
	if len(name) > NameLength {
		return Vendor{}, d.addFailed(ErrCodeInvalidNameLength, "invalid vendor name length %d", len(name))
	}
	return d.insertVendor(name, code), nil
}

func (d *Dictionary) addFailed(code ErrorCode, format string, args ...any) *Error {
	err := newError(code, format, args...)
	d.logger.Error("dictionary add failed", "code", string(code), "error", err.Message)
	return err
}

func (d *Dictionary) insertAttribute(name string, id AttributeID, typ ValueType) Attribute {
	attr := Attribute{Name: name, ID: id, Type: typ}
	d.attributes = append(d.attributes, attributeRecord{Attribute: attr, fold: foldName(name)})
	return attr
}

func (d *Dictionary) insertValue(attribute, name string, number uint32) Value {
	val := Value{Attribute: attribute, Name: name, Number: number}
	d.values = append(d.values, valueRecord{Value: val, fold: foldName(name)})
	return val
}

func (d *Dictionary) insertVendor(name string, code uint32) Vendor {
	vend := Vendor{Name: name, Code: code}
	d.vendors = append(d.vendors, vendorRecord{Vendor: vend, fold: foldName(name)})
	return vend
}

// Free releases every record and empties the three collections. Records
// returned by earlier lookups are copies and stay valid. Safe to call on an
// empty dictionary.
//
// Free does not forget the first loaded file; loading that path again stays
// a no-op.
func (d *Dictionary) Free() {
	d.logger.Debug("dictionary freed",
		"attributes", len(d.attributes),
		"values", len(d.values),
		"vendors", len(d.vendors),
	)
	d.attributes = nil
	d.values = nil
	d.vendors = nil
}

// Stats returns the number of records in each collection.
func (d *Dictionary) Stats() Stats {
	return Stats{
		Attributes: len(d.attributes),
		Values:     len(d.values),
		Vendors:    len(d.vendors),
	}
}

// Attributes returns all attributes in insertion order.
func (d *Dictionary) Attributes() []Attribute {
	out := make([]Attribute, len(d.attributes))
	for i, rec := range d.attributes {
		out[i] = rec.Attribute
	}
	return out
}

// Values returns all values in insertion order.
func (d *Dictionary) Values() []Value {
	out := make([]Value, len(d.values))
	for i, rec := range d.values {
		out[i] = rec.Value
	}
	return out
}

// Vendors returns all vendors in insertion order.
func (d *Dictionary) Vendors() []Vendor {
	out := make([]Vendor, len(d.vendors))
	for i, rec := range d.vendors {
		out[i] = rec.Vendor
	}
	return out
}

// Files returns every path opened by LoadFile on this handle, outer files
// and includes alike, in the order they were opened.
func (d *Dictionary) Files() []string {
	out := make([]string, len(d.files))
	copy(out, d.files)
	return out
}

// foldName returns the caseless form of a name under Unicode full case
// folding. It agrees with ASCII case-insensitive comparison on ASCII input.
func foldName(name string) string {
	return cases.Fold().String(name)
}
