// Package document ties together byteimage, token, parser and object into
// the end-to-end structural decoder for a single PDF file: it locates and
// walks the xref/trailer chain, materializes indirect objects on demand,
// and compares two loaded Documents for structural equality and diff.
package document

import (
	"fmt"
	"io"
	"os"

	"github.com/emurenMRz/pdftools/byteimage"
	"github.com/emurenMRz/pdftools/object"
	"github.com/emurenMRz/pdftools/pdferrors"
)

// XrefEntry is one slot of a Document's cross-reference table.
type XrefEntry struct {
	Offset   int // absolute byte offset of the "obj" header, for Used entries
	Revision int // 5-digit generation number
	Used     bool

	Object object.Object // materialized lazily; object.Null until resolved
	Stream object.Stream // attached stream payload, if any (Size==0 means none)

	resolved bool // distinguishes "not yet materialized" from an object that legitimately IS Null
}

// Trailer is the aggregated trailer information across the whole
// xref/Prev chain.
type Trailer struct {
	Size int
	Root object.Dict
	Info object.Dict
}

// Document is a fully-loaded PDF structural skeleton: version, xref table
// (with every used entry materialized), and aggregated trailer.
type Document struct {
	im      *byteimage.Image
	Version string
	Xref    []XrefEntry
	Trailer Trailer
}

// Open reads path and analyzes it as a PDF file.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Analyze(data)
}

// Analyze decodes data as a PDF file's structural skeleton: header,
// xref/trailer chain, and every used indirect object.
func Analyze(data []byte) (*Document, error) {
	im := byteimage.New(data)
	doc := &Document{im: im}

	if err := doc.readHeader(); err != nil {
		return nil, err
	}

	offset, err := doc.findStartXref()
	if err != nil {
		return nil, err
	}

	ld := newLoader(im)
	im.Seek(offset)
	if err := ld.parseXref(); err != nil {
		return nil, err
	}

	doc.Xref = ld.xref
	doc.Trailer = Trailer{Size: ld.trailer.size, Root: ld.trailer.root, Info: ld.trailer.info}

	// Pre-decode every object (idempotent for the ones already resolved
	// while dereferencing /Root and /Info during trailer processing).
	for i := range doc.Xref {
		if _, err := ld.resolve(object.Indirect(i)); err != nil {
			return nil, err
		}
	}
	doc.Xref = ld.xref

	return doc, nil
}

func (d *Document) readHeader() error {
	d.im.Seek(0)
	line := d.im.GetLine()
	const prefix = "%PDF-"
	if len(line) < len(prefix) || string(line[:len(prefix)]) != prefix {
		return pdferrors.NewParseError("readHeader", "missing %PDF- header")
	}
	d.Version = string(line[len(prefix):])
	return nil
}

// findStartXref scans backward from EOF for the %%EOF / offset / startxref
// triple that bootstraps xref parsing (spec.md §4.E step 2).
func (d *Document) findStartXref() (int, error) {
	d.im.Seek(byteimage.End)

	line, err := d.im.GetLineBack()
	if err != nil || string(line) != "%%EOF" {
		return 0, pdferrors.NewParseError("findStartXref", "missing %%EOF")
	}

	offsetLine, err := d.im.GetLineBack()
	if err != nil || len(offsetLine) == 0 {
		return 0, pdferrors.NewParseError("findStartXref", "missing xref offset")
	}
	offset, convErr := atoi(string(offsetLine))
	if convErr != nil {
		return 0, pdferrors.WrapParse("findStartXref", convErr)
	}

	line, err = d.im.GetLineBack()
	if err != nil || string(line) != "startxref" {
		return 0, pdferrors.NewParseError("findStartXref", "missing startxref")
	}

	return offset, nil
}

// Table renders the version line, header row and one row per xref entry,
// matching the reference's operator<<(ostream&, const Document&) exactly
// (spec.md §6 per-entry row format).
func (d *Document) Table(w io.Writer) {
	fmt.Fprintf(w, "pdf version: %s\n", d.Version)
	fmt.Fprintf(w, "%10s %10s %5s %6s object\n", "no", "xref", "rev", "used")
	for i, e := range d.Xref {
		fmt.Fprintf(w, "%10d %s\n", i, formatEntryRow(e))
	}
}

func formatEntryRow(e XrefEntry) string {
	used := "unused"
	if e.Used {
		used = "used"
	}
	rendered := object.Display(e.Object)
	if d, ok := e.Object.(object.Dict); ok {
		rendered = object.Label(d)
	}
	row := fmt.Sprintf("%10d %5d %6s %s", e.Offset, e.Revision, used, rendered)
	if e.Stream.Size > 0 {
		row += fmt.Sprintf(" stream[%d]", e.Stream.Size)
	}
	return row
}
