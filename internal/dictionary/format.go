package dictionary

import (
	"bufio"
	"fmt"
	"io"
)

// Format writes d in dictionary syntax: vendors, then attributes, then
// values, each in insertion order. As long as no two vendors share a name,
// loading the output into an empty dictionary yields the same lookup
// results as d.
//
// An attribute whose vendor number has no VENDOR record cannot be expressed
// as a directive and is written as a comment.
func Format(w io.Writer, d *Dictionary) error {
	bw := bufio.NewWriter(w)

	for _, v := range d.vendors {
		fmt.Fprintf(bw, "VENDOR %s %d\n", v.Name, v.Code)
	}

	for _, a := range d.attributes {
		vendor := a.ID.Vendor()
		if vendor == 0 {
			fmt.Fprintf(bw, "ATTRIBUTE %s %d %s\n", a.Name, a.ID.Code(), a.Type)
			continue
		}
		v, ok := d.VendorByCode(vendor)
		if !ok {
			fmt.Fprintf(bw, "# ATTRIBUTE %s %d %s (undefined vendor %d)\n", a.Name, a.ID.Code(), a.Type, vendor)
			continue
		}
		fmt.Fprintf(bw, "ATTRIBUTE %s %d %s vendor=%s\n", a.Name, a.ID.Code(), a.Type, v.Name)
	}

	for _, v := range d.values {
		fmt.Fprintf(bw, "VALUE %s %s %d\n", v.Attribute, v.Name, v.Number)
	}

	return bw.Flush()
}
