package dictionary

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// memorySource names buffer content in errors and logs.
const memorySource = "memory"

// LoadFile reads the dictionary at path into d, following $INCLUDE lines.
//
// The first path ever opened on d is remembered; a later LoadFile with the
// identical path string returns nil without reading anything. This covers a
// dictionary that includes itself, but not a cycle through a different
// spelling of the same file.
//
// The first malformed line in path or any included file aborts the load.
// Records from lines processed before it are kept.
func (d *Dictionary) LoadFile(path string) error {
	if d.firstFile != "" && path == d.firstFile {
		d.logger.Debug("dictionary already loaded", "path", path)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		e := &Error{Code: ErrCodeIO, Message: "couldn't open dictionary", Source: path, Err: err}
		d.logger.Error("dictionary load failed", "code", string(e.Code), "source", path, "error", err)
		return e
	}
	defer f.Close()

	if d.firstFile == "" {
		d.firstFile = path
	}
	d.files = append(d.files, path)

	d.logger.Debug("loading dictionary", "path", path)
	return d.parse(f, path)
}

// LoadBuffer reads dictionary lines from buf into d. $INCLUDE lines are not
// followed since a buffer has no directory to resolve them against.
func (d *Dictionary) LoadBuffer(buf []byte) error {
	d.logger.Debug("loading dictionary buffer", "size", len(buf))
	return d.parse(bytes.NewReader(buf), "")
}

// ResolveIncludePath returns the path an $INCLUDE of name refers to when it
// appears in the file parent. Absolute names are returned unchanged. Relative
// names are placed in parent's directory; if parent has no directory part,
// name is returned as is.
func ResolveIncludePath(parent, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	i := strings.LastIndexByte(parent, filepath.Separator)
	if i < 0 {
		return name
	}
	return parent[:i] + string(filepath.Separator) + name
}

// parser holds the state of one pass over one source. Each included file
// gets its own parser, so vendor scope never leaks across files.
type parser struct {
	dict     *Dictionary
	logger   *slog.Logger
	filename string // empty for buffers
	source   string
	lineNo   int

	// vendorScope is the vendor set by BEGIN-VENDOR, 0 at top level.
	// A second BEGIN-VENDOR replaces it; END-VENDOR always resets to 0.
	vendorScope uint32
}

func (d *Dictionary) parse(r io.Reader, filename string) error {
	p := &parser{
		dict:     d,
		filename: filename,
		source:   filename,
	}
	if p.source == "" {
		p.source = memorySource
	}
	p.logger = d.logger.With(slog.String("source", p.source))

	// Lines have no length limit.
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			line := p.lineNo + 1
			e := &Error{Code: ErrCodeIO, Message: "read failed", Source: p.source, Line: line, Err: err}
			p.logger.Error("dictionary load failed", "code", string(e.Code), "line", line, "error", err)
			return e
		}
		if raw != "" {
			p.lineNo++
			raw = strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if lerr := p.line(raw); lerr != nil {
				return lerr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// fail builds the load error for the current line and logs it.
func (p *parser) fail(code ErrorCode, message string) error {
	err := &Error{Code: code, Message: message, Source: p.source, Line: p.lineNo}
	p.logger.Error("dictionary load failed", "code", string(code), "line", p.lineNo, "error", message)
	return err
}

func (p *parser) line(raw string) error {
	if skipLine(raw) {
		return nil
	}
	line := stripComment(raw)

	switch classify(line, p.filename != "") {
	case dirAttribute:
		return p.attribute(line)
	case dirValue:
		return p.value(line)
	case dirInclude:
		return p.include(line)
	case dirEndVendor:
		p.vendorScope = 0
		return nil
	case dirBeginVendor:
		return p.beginVendor(line)
	case dirVendor:
		return p.vendor(line)
	default:
		if p.filename == "" && strings.HasPrefix(line, keywordInclude) {
			p.logger.Warn("ignoring $INCLUDE in buffer", "line", p.lineNo)
		}
		return nil
	}
}

// ATTRIBUTE NAME CODE TYPE [OPTIONS]
func (p *parser) attribute(line string) error {
	fields := splitFields(line)
	if len(fields) < 4 {
		return p.fail(ErrCodeInvalidLineFormat, "invalid attribute")
	}
	name, codeStr, typeStr := fields[1], fields[2], fields[3]

	if len(name) > NameLength {
		return p.fail(ErrCodeInvalidNameLength, "invalid name length")
	}
	code, ok := parseNumber(codeStr)
	if !ok {
		return p.fail(ErrCodeInvalidNumericField, "invalid value")
	}
	typ, ok := ParseValueType(typeStr)
	if !ok {
		return p.fail(ErrCodeInvalidType, "invalid type "+typeStr)
	}

	vendor := p.vendorScope
	if len(fields) > 4 {
		// Every option must name a known vendor; the last one wins.
		for _, opt := range strings.Split(fields[4], ",") {
			opt = strings.TrimPrefix(opt, "vendor=")
			v, ok := p.dict.VendorByName(opt)
			if !ok {
				return p.fail(ErrCodeUnknownVendor, "unknown Vendor-Id "+opt)
			}
			vendor = v.Code
		}
	}

	p.dict.insertAttribute(name, NewAttributeID(code, vendor), typ)
	return nil
}

// VALUE ATTR-NAME VALUE-NAME NUMBER
func (p *parser) value(line string) error {
	fields := splitFields(line)
	if len(fields) < 4 {
		return p.fail(ErrCodeInvalidLineFormat, "invalid value entry")
	}
	attr, name, numStr := fields[1], fields[2], fields[3]

	if len(attr) > NameLength {
		return p.fail(ErrCodeInvalidNameLength, "invalid attribute length")
	}
	if len(name) > NameLength {
		return p.fail(ErrCodeInvalidNameLength, "invalid name length")
	}
	number, ok := parseNumber(numStr)
	if !ok {
		return p.fail(ErrCodeInvalidNumericField, "invalid value")
	}

	p.dict.insertValue(attr, name, number)
	return nil
}

// VENDOR NAME NUMBER
func (p *parser) vendor(line string) error {
	fields := splitFields(line)
	if len(fields) < 3 {
		return p.fail(ErrCodeInvalidLineFormat, "invalid Vendor-Id")
	}
	name, codeStr := fields[1], fields[2]

	if len(name) > NameLength {
		return p.fail(ErrCodeInvalidNameLength, "invalid vendor name length")
	}
	code, ok := parseNumber(codeStr)
	if !ok {
		return p.fail(ErrCodeInvalidNumericField, "invalid Vendor-Id")
	}

	p.dict.insertVendor(name, code)
	return nil
}

// BEGIN-VENDOR NAME
func (p *parser) beginVendor(line string) error {
	fields := splitFields(line[len(keywordBeginVendor):])
	if len(fields) < 1 {
		return p.fail(ErrCodeInvalidLineFormat, "invalid Vendor-Id")
	}
	v, ok := p.dict.VendorByName(fields[0])
	if !ok {
		return p.fail(ErrCodeUnknownVendor, "unknown Vendor "+fields[0])
	}
	p.vendorScope = v.Code
	return nil
}

// $INCLUDE PATH
func (p *parser) include(line string) error {
	fields := splitFields(line)
	if len(fields) < 2 {
		return p.fail(ErrCodeInvalidLineFormat, "invalid include entry")
	}
	path := ResolveIncludePath(p.filename, fields[1])
	p.logger.Debug("including dictionary", "line", p.lineNo, "path", path)
	return p.dict.LoadFile(path)
}
