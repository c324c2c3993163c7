package dictionary

import "fmt"

// AttributeID is the namespaced key of an attribute: the vendor number in the
// high 32 bits and the per-vendor attribute code in the low 32 bits. Standard
// attributes have vendor 0. Every (code, vendor) pair maps to a distinct ID.
type AttributeID uint64

// NewAttributeID combines an attribute code and a vendor number.
func NewAttributeID(code, vendor uint32) AttributeID {
	return AttributeID(uint64(vendor)<<32 | uint64(code))
}

// Code returns the per-vendor attribute code.
func (id AttributeID) Code() uint32 {
	return uint32(id)
}

// Vendor returns the vendor number, 0 for standard attributes.
func (id AttributeID) Vendor() uint32 {
	return uint32(id >> 32)
}

// String renders the ID as "code" or "vendor:code".
func (id AttributeID) String() string {
	if id.Vendor() == 0 {
		return fmt.Sprintf("%d", id.Code())
	}
	return fmt.Sprintf("%d:%d", id.Vendor(), id.Code())
}
