package document

import (
	"regexp"
	"strconv"

	"github.com/emurenMRz/pdftools/byteimage"
	"github.com/emurenMRz/pdftools/object"
	"github.com/emurenMRz/pdftools/parser"
	"github.com/emurenMRz/pdftools/pdferrors"
	"github.com/emurenMRz/pdftools/token"
)

var (
	subsectionHeaderRe = regexp.MustCompile(`^([0-9]+) ([0-9]+)$`)
	xrefEntryRe        = regexp.MustCompile(`^([0-9]{10}) ([0-9]{5}) ([fn])[ \r][\r\n]`)
	objHeaderRe        = regexp.MustCompile(`^([0-9]+) ([0-9]+) obj`)
)

type trailerAccum struct {
	size int
	root object.Dict
	info object.Dict
}

// loader holds the state accumulated while walking one Document's
// xref/Prev chain: the xref table under construction and a tie-break
// side table fixing the "last write wins" inversion documented in the
// reference (spec.md §4.E / §9): the newest section is always processed
// first, so once a slot is written by it, older /Prev sections must not
// overwrite it.
type loader struct {
	im      *byteimage.Image
	lx      *token.Lexer
	ps      *parser.Parser
	xref    []XrefEntry
	written []bool
	trailer trailerAccum
	seenPrev map[int]bool
}

func newLoader(im *byteimage.Image) *loader {
	lx := token.New(im)
	return &loader{
		im:       im,
		lx:       lx,
		ps:       parser.New(lx),
		seenPrev: map[int]bool{},
	}
}

func (ld *loader) ensureLen(n int) {
	if n <= len(ld.xref) {
		return
	}
	grown := make([]XrefEntry, n)
	copy(grown, ld.xref)
	for i := len(ld.xref); i < n; i++ {
		grown[i].Object = object.Null
	}
	ld.xref = grown
	grownW := make([]bool, n)
	copy(grownW, ld.written)
	ld.written = grownW
}

// parseXref parses the xref section at the image's current position, then
// recurses into /Prev (if present) for incremental-update chains. Avoid
// infinite /Prev loops by refusing to revisit an offset.
func (ld *loader) parseXref() error {
	offset := ld.im.Tell()
	if ld.seenPrev[offset] {
		return pdferrors.NewParseError("parseXref", "cyclic /Prev chain")
	}
	ld.seenPrev[offset] = true

	if string(ld.im.GetLine()) != "xref" {
		return pdferrors.NewParseError("parseXref", "missing xref keyword")
	}

	for {
		text := string(ld.im.GetLine())
		if text == "trailer" {
			break
		}
		groups := subsectionHeaderRe.FindStringSubmatch(text)
		if groups == nil {
			// Any other line is skipped; running out of input first means
			// the section has no trailer.
			if ld.im.Tell() >= ld.im.Len() {
				return pdferrors.NewParseError("parseXref", "missing trailer")
			}
			continue
		}
		begin, err := atoi(groups[1])
		if err != nil {
			return pdferrors.WrapParse("parseXref", err)
		}
		count, err := atoi(groups[2])
		if err != nil {
			return pdferrors.WrapParse("parseXref", err)
		}
		if begin+count > len(ld.xref) {
			ld.ensureLen(begin + count)
		}
		for i := 0; i < count; i++ {
			groups := ld.im.GetLineRegex(xrefEntryRe, true)
			if groups == nil {
				return pdferrors.NewParseError("parseXref", "malformed xref entry")
			}
			idx := begin + i
			if ld.written[idx] {
				continue
			}
			offs, err := atoi(groups[1])
			if err != nil {
				return pdferrors.WrapParse("parseXref", err)
			}
			rev, err := atoi(groups[2])
			if err != nil {
				return pdferrors.WrapParse("parseXref", err)
			}
			ld.xref[idx] = XrefEntry{Offset: offs, Revision: rev, Used: groups[3] == "n", Object: object.Null}
			ld.written[idx] = true
		}
	}

	obj, err := ld.ps.Parse(nil)
	if err != nil {
		return pdferrors.WrapParse("parseXref", err)
	}
	trailerDict, err := object.AsDict("parseXref", obj)
	if err != nil {
		return err
	}

	// Size: required, never indirect; running max across the whole chain.
	sizeObj, ok := trailerDict.Lookup("Size")
	if !ok {
		return pdferrors.NewParseError("parseXref", "trailer missing /Size")
	}
	size, err := object.AsNumeric("parseXref", sizeObj)
	if err != nil {
		return err
	}
	if int(size) > ld.trailer.size {
		ld.trailer.size = int(size)
	}

	// /Prev is chased before /Info and /Root are dereferenced, so an older
	// section's objects are already in the table if this trailer's /Info or
	// /Root point at them.
	if prevObj, ok := trailerDict.Lookup("Prev"); ok {
		prevOffset, err := object.AsNumeric("parseXref", prevObj)
		if err != nil {
			return err
		}
		ld.im.Seek(int(prevOffset))
		if err := ld.parseXref(); err != nil {
			return err
		}
	}

	if infoObj, ok := trailerDict.Lookup("Info"); ok {
		if ld.trailer.info != nil {
			return pdferrors.NewParseError("parseXref", "duplicated Info item")
		}
		info, err := ld.resolveDict("parseXref:Info", infoObj)
		if err != nil {
			return err
		}
		ld.trailer.info = info
	}

	if rootObj, ok := trailerDict.Lookup("Root"); ok {
		if ld.trailer.root != nil {
			return pdferrors.NewParseError("parseXref", "duplicated Root item")
		}
		root, err := ld.resolveDict("parseXref:Root", rootObj)
		if err != nil {
			return err
		}
		ld.trailer.root = root
	}

	return nil
}

// resolveDict requires o to be an Indirect reference to a Dict (the
// reference rejects a direct /Root or /Info, spec.md §4.E).
func (ld *loader) resolveDict(op string, o object.Object) (object.Dict, error) {
	ref, err := object.AsIndirect(op, o)
	if err != nil {
		return nil, err
	}
	resolved, err := ld.resolve(ref)
	if err != nil {
		return nil, err
	}
	return object.AsDict(op, resolved)
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	return n, err
}
