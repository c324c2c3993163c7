package dictionary

// All finders scan from the newest record to the oldest and return the first
// match, so later definitions shadow earlier ones.

// AttributeByID returns the attribute with exactly this ID.
func (d *Dictionary) AttributeByID(id AttributeID) (Attribute, bool) {
	for i := len(d.attributes) - 1; i >= 0; i-- {
		if d.attributes[i].ID == id {
			return d.attributes[i].Attribute, true
		}
	}
	return Attribute{}, false
}

// AttributeByName returns the attribute with this name, ignoring case.
//
// Names compare under full Unicode case folding. For the ASCII names the
// file grammar produces this is plain ASCII case-insensitivity; names added
// directly may also match across non-ASCII forms ("Straße" and "STRASSE").
func (d *Dictionary) AttributeByName(name string) (Attribute, bool) {
	key := foldName(name)
	for i := len(d.attributes) - 1; i >= 0; i-- {
		if d.attributes[i].fold == key {
			return d.attributes[i].Attribute, true
		}
	}
	return Attribute{}, false
}

// ValueByName returns the value whose own name matches, ignoring case. The
// owning attribute is not considered.
func (d *Dictionary) ValueByName(name string) (Value, bool) {
	key := foldName(name)
	for i := len(d.values) - 1; i >= 0; i-- {
		if d.values[i].fold == key {
			return d.values[i].Value, true
		}
	}
	return Value{}, false
}

// ValueByAttributeAndNumber returns the value of the named attribute with
// this number. The attribute name comparison is case-sensitive.
func (d *Dictionary) ValueByAttributeAndNumber(attribute string, number uint32) (Value, bool) {
	for i := len(d.values) - 1; i >= 0; i-- {
		v := d.values[i]
		if v.Attribute == attribute && v.Number == number {
			return v.Value, true
		}
	}
	return Value{}, false
}

// VendorByName returns the vendor with this name, ignoring case. Names
// compare under full Unicode case folding, as in AttributeByName. BEGIN-VENDOR
// and the vendor option of ATTRIBUTE resolve through here.
func (d *Dictionary) VendorByName(name string) (Vendor, bool) {
	key := foldName(name)
	for i := len(d.vendors) - 1; i >= 0; i-- {
		if d.vendors[i].fold == key {
			return d.vendors[i].Vendor, true
		}
	}
	return Vendor{}, false
}

// VendorByCode returns the vendor with this enterprise number.
func (d *Dictionary) VendorByCode(code uint32) (Vendor, bool) {
	for i := len(d.vendors) - 1; i >= 0; i-- {
		if d.vendors[i].Code == code {
			return d.vendors[i].Vendor, true
		}
	}
	return Vendor{}, false
}
