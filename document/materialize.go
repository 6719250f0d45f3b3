package document

import (
	"github.com/emurenMRz/pdftools/object"
	"github.com/emurenMRz/pdftools/pdferrors"
)

// resolve returns the materialized object for ref, parsing it out of the
// file on first use and caching the result in the xref table. A reference
// to an unused (free) or out-of-range slot resolves to object.Null,
// mirroring the reference's dummy-xref-entry semantics rather than
// raising an error: a dangling reference is a fact about the file, not a
// parse failure.
func (ld *loader) resolve(ref object.Indirect) (object.Object, error) {
	n := int(ref)
	if n < 0 || n >= len(ld.xref) {
		return object.Null, nil
	}

	entry := &ld.xref[n]
	if !entry.Used {
		return object.Null, nil
	}
	if entry.resolved {
		return entry.Object, nil
	}

	ld.im.Seek(entry.Offset)
	groups := ld.im.GetLineRegex(objHeaderRe, true)
	if groups == nil {
		return nil, pdferrors.NewParseError("resolve", "malformed object header")
	}

	body, err := ld.ps.Parse(nil)
	if err != nil {
		return nil, pdferrors.WrapParse("resolve", err)
	}

	line := string(ld.im.GetLine())
	switch line {
	case "endobj":
		entry.Object = body
		entry.resolved = true
		return body, nil

	case "stream":
		dict, err := object.AsDict("resolve", body)
		if err != nil {
			return nil, err
		}
		begin := ld.im.Tell()
		size, err := ld.streamLength(dict, begin)
		if err != nil {
			return nil, err
		}

		if err := ld.im.Skip(size); err != nil {
			return nil, pdferrors.WrapParse("resolve", err)
		}

		if string(ld.im.GetLine()) != "endstream" {
			return nil, pdferrors.NewParseError("resolve", "missing endstream")
		}
		if string(ld.im.GetLine()) != "endobj" {
			return nil, pdferrors.NewParseError("resolve", "missing endobj")
		}

		entry.Object = dict
		entry.Stream = object.Stream{Begin: begin, Size: size, Bytes: ld.im.Data()[begin : begin+size]}
		entry.resolved = true
		return dict, nil

	default:
		return nil, pdferrors.NewParseError("resolve", "missing endobj")
	}
}

// streamLength dereferences /Length, which the spec permits to be either
// a direct Numeric or an Indirect reference to one. Resolving an Indirect
// reference seeks the cursor elsewhere to parse the referenced object, so
// the cursor is restored to fp (the stream's data start) before returning.
func (ld *loader) streamLength(dict object.Dict, fp int) (int, error) {
	lengthObj, ok := dict.Lookup("Length")
	if !ok {
		return 0, pdferrors.NewParseError("streamLength", "missing /Length")
	}
	if ref, ok := lengthObj.(object.Indirect); ok {
		resolved, err := ld.resolve(ref)
		if err != nil {
			return 0, err
		}
		ld.im.Seek(fp)
		lengthObj = resolved
	}
	n, err := object.AsNumeric("streamLength", lengthObj)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
