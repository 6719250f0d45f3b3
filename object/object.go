// Package object implements the PDF object model: a closed, nine-case
// tagged variant (Nil, Bool, Numeric, String, Name, Array, Dict, Stream,
// Indirect) together with structural equality, a hierarchical diff, and a
// compact Display rendering.
//
// Each case is realized as its own Go type implementing the Object
// interface, rather than as a single struct with a discriminant field and
// a union of payloads: the interface is the idiomatic way to express a
// closed sum type here, and a type switch in Equal/Diff/Display plays the
// role the reference's Type enum + switch statements play.
package object

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Object is implemented by every PDF value kind. The interface itself
// carries no behaviour beyond marking membership in the variant: Equal,
// Diff and Display are free functions that type-switch once, matching the
// single dispatch point the reference's Object::operator==/diff/Display
// use internally.
type Object interface {
	isObject()
}

// Nil is the PDF null object. All Nil values compare equal.
type Nil struct{}

func (Nil) isObject() {}

// Null is the canonical Nil value, handed out by the materializer for
// not-yet-resolved xref slots and by the parser for the PDF `null` literal
// were it ever written out (the reference tokenizer does not special-case
// it, and neither do we: an unrecognized bareword is a parse error).
var Null Object = Nil{}

// Bool is a PDF boolean object.
type Bool bool

func (Bool) isObject() {}

// Numeric is a PDF numeric object, stored as the IEEE-754 double the
// textual representation parses to. Equality is Go's float64 ==, with no
// tolerance: two different textual forms (1 vs 1.0) compare equal only
// because they parse to the same double; -0 and +0 also compare equal,
// since == treats them as equal although their bit patterns differ.
type Numeric float64

func (Numeric) isObject() {}

// Name is a PDF name object: the bytes after the leading '/', up to the
// next whitespace/delimiter. Names are small, so unlike String they are
// owned (copied into a Go string) rather than borrowed from the source
// buffer.
type Name string

func (Name) isObject() {}

// String is a PDF string object: a byte range borrowed from the Document's
// backing buffer, including the surrounding delimiters ("(...)" or
// "<...>"). Hex and literal strings are not distinguished by tag, only by
// their (different) byte content.
type String struct {
	Raw []byte
}

func (String) isObject() {}

// Array is an ordered sequence of Objects.
type Array []Object

func (Array) isObject() {}

// Dict is a PDF dictionary: Name keys (unique, insertion order not
// significant) mapping to Objects.
type Dict map[Name]Object

func (Dict) isObject() {}

// Stream is a byte blob attached to an indirect object, borrowed from the
// Document's backing buffer. Begin/Size record the absolute byte range for
// diagnostics; Bytes is the corresponding slice and is what equality and
// diff actually compare.
type Stream struct {
	Begin, Size int
	Bytes       []byte
}

func (Stream) isObject() {}

// Indirect is a reference to another object by number: "n 0 R". The
// generation is required to be 0 (checked at parse time, see package
// token) so a single integer fully identifies the reference.
type Indirect uint32

func (Indirect) isObject() {}

// Equal reports whether a and b are the same tagged variant with equal
// payloads, per the table in spec.md §3.
func Equal(a, b Object) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Numeric:
		bv, ok := b.(Numeric)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && bytes.Equal(av.Raw, bv.Raw)
	case Name:
		bv, ok := b.(Name)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Dict:
		bv, ok := b.(Dict)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			ov, ok := bv[k]
			if !ok || !Equal(v, ov) {
				return false
			}
		}
		return true
	case Stream:
		bv, ok := b.(Stream)
		return ok && av.Size == bv.Size && bytes.Equal(av.Bytes, bv.Bytes)
	case Indirect:
		bv, ok := b.(Indirect)
		return ok && av == bv
	default:
		return false
	}
}

func kind(o Object) string {
	switch o.(type) {
	case Nil:
		return "NIL"
	case Bool:
		return "BOOLEAN"
	case Numeric:
		return "NUMERIC"
	case String:
		return "STRING"
	case Name:
		return "NAME"
	case Array:
		return "ARRAY"
	case Dict:
		return "DICTIONARY"
	case Stream:
		return "STREAM"
	case Indirect:
		return "INDIRECT"
	default:
		return "<invalid>"
	}
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat(" ", depth*4))
}

// Diff writes, to w, the human-readable discrepancies between a and b,
// indented by depth*4 spaces. Composite variants recurse, incrementing
// depth only when descending into named sub-elements.
func Diff(w io.Writer, a, b Object, depth int) {
	if kind(a) != kind(b) {
		indent(w, depth)
		fmt.Fprintf(w, "Type: %s / %s\n", kind(a), kind(b))
		return
	}

	switch av := a.(type) {
	case Bool:
		bv := b.(Bool)
		if av != bv {
			indent(w, depth)
			fmt.Fprintf(w, "Boolean: %v / %v\n", bool(av), bool(bv))
		}
	case Numeric:
		bv := b.(Numeric)
		if av != bv {
			indent(w, depth)
			fmt.Fprintf(w, "Numeric: %v / %v\n", float64(av), float64(bv))
		}
	case String:
		bv := b.(String)
		if !bytes.Equal(av.Raw, bv.Raw) {
			indent(w, depth)
			fmt.Fprintf(w, "String: %s / %s\n", av.Raw, bv.Raw)
		}
	case Name:
		bv := b.(Name)
		if av != bv {
			indent(w, depth)
			fmt.Fprintf(w, "Name: %s / %s\n", av, bv)
		}
	case Array:
		diffArray(w, av, b.(Array), depth)
	case Dict:
		diffDict(w, av, b.(Dict), depth)
	case Stream:
		diffStream(w, av, b.(Stream), depth)
	case Indirect:
		bv := b.(Indirect)
		if av != bv {
			indent(w, depth)
			fmt.Fprintf(w, "Indirect: %d / %d\n", av, bv)
		}
	}
}

func diffArray(w io.Writer, a, b Array, depth int) {
	if len(a) != len(b) {
		indent(w, depth)
		fmt.Fprintf(w, "Array size: %d / %d\n", len(a), len(b))
		return
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			Diff(w, a[i], b[i], depth+1)
		}
	}
}

func sortedKeys(d Dict) []Name {
	keys := make([]Name, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// unionKeys returns the sorted set of keys present in a, b, or both,
// matching the reference's approach of building one std::map over both
// dictionaries' keys and walking it in a single sorted pass.
func unionKeys(a, b Dict) []Name {
	union := make(Dict, len(a)+len(b))
	for k := range a {
		union[k] = nil
	}
	for k := range b {
		union[k] = nil
	}
	return sortedKeys(union)
}

func diffDict(w io.Writer, a, b Dict, depth int) {
	for _, k := range unionKeys(a, b) {
		lv, lok := a[k]
		rv, rok := b[k]
		if !lok {
			indent(w, depth)
			fmt.Fprintf(w, "%s: No key in the left dictionary.\n", k)
			continue
		}
		if !rok {
			indent(w, depth)
			fmt.Fprintf(w, "%s: No key in the right dictionary.\n", k)
			continue
		}
		if !Equal(lv, rv) {
			indent(w, depth)
			fmt.Fprintf(w, "%s: \n", k)
			Diff(w, lv, rv, depth+1)
		}
	}
}

func diffStream(w io.Writer, a, b Stream, depth int) {
	if a.Size != b.Size {
		indent(w, depth)
		fmt.Fprintf(w, "Size: %d / %d\n", a.Size, b.Size)
		return
	}
	for i := 0; i < a.Size && i < len(a.Bytes) && i < len(b.Bytes); i++ {
		if a.Bytes[i] != b.Bytes[i] {
			indent(w, depth)
			fmt.Fprintf(w, "Offset[%d]\n", i)
			return
		}
	}
}

// Display produces a compact, single-line string representation of o,
// suitable for the per-entry CLI row (spec.md §6) and for logging. It is
// not a semantic renderer: it exists purely for human inspection.
func Display(o Object) string {
	switch v := o.(type) {
	case Nil:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(v))
	case Numeric:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case String:
		return string(v.Raw)
	case Name:
		return "/" + string(v)
	case Array:
		return displayArray(v)
	case Dict:
		return displayDict(v)
	case Stream:
		return fmt.Sprintf("%d", v.Size)
	case Indirect:
		return fmt.Sprintf("%d 0 R", uint32(v))
	default:
		return "<invalid>"
	}
}

func displayArray(a Array) string {
	var sb strings.Builder
	for _, o := range a {
		sb.WriteString(Display(o))
		sb.WriteByte(' ')
	}
	s := sb.String()
	if len(s) > 32 {
		s = fmt.Sprintf("..%d..", len(s))
	}
	return "[" + s + "]"
}

// displayDict renders "<</Key value /Key2 value2 >>", with the keys in
// sorted order (Display is for logging only and is never compared).
func displayDict(d Dict) string {
	var sb strings.Builder
	sb.WriteString("<<")
	for _, k := range sortedKeys(d) {
		fmt.Fprintf(&sb, "/%s %s ", k, Display(d[k]))
	}
	sb.WriteString(">>")
	return sb.String()
}

// Label picks a one-word prefix for d's Display, following the same
// key-sniffing heuristic as the reference's operator<<(ostream&, const
// Dictionary&): purely cosmetic, never used by Equal or Diff.
func Label(d Dict) string {
	if t, ok := d[Name("Type")]; ok {
		if n, ok := t.(Name); ok {
			return string(n) + ": " + displayDict(d)
		}
	}
	if _, ok := d[Name("Font")]; ok {
		return "Font: " + displayDict(d)
	}
	if _, ok := d[Name("CreationDate")]; ok {
		return "Info: " + displayDict(d)
	}
	if _, ok := d[Name("ModDate")]; ok {
		return "Info: " + displayDict(d)
	}
	if _, ok := d[Name("Producer")]; ok {
		return "Info: " + displayDict(d)
	}
	if _, ok := d[Name("Length")]; ok {
		return "Stream?: " + displayDict(d)
	}
	return "*: " + displayDict(d)
}
