package document

import (
	"fmt"
	"io"

	"github.com/emurenMRz/pdftools/object"
)

// Equal reports whether d and r are structurally identical: same version,
// same xref table length, equal entries (offset excluded, per the
// reference: a byte offset is an artifact of the file's physical layout,
// not of its structure), and equal trailer size/Root/Info.
func (d *Document) Equal(r *Document) bool {
	if d.Version != r.Version {
		return false
	}
	if len(d.Xref) != len(r.Xref) {
		return false
	}
	for i := range d.Xref {
		if !xrefEqual(d.Xref[i], r.Xref[i]) {
			return false
		}
	}
	return d.Trailer.Size == r.Trailer.Size &&
		object.Equal(d.Trailer.Root, r.Trailer.Root) &&
		object.Equal(d.Trailer.Info, r.Trailer.Info)
}

func xrefEqual(a, b XrefEntry) bool {
	return a.Revision == b.Revision &&
		a.Used == b.Used &&
		object.Equal(a.Object, b.Object) &&
		streamEqual(a.Stream, b.Stream)
}

func streamEqual(a, b object.Stream) bool {
	return object.Equal(a, b)
}

// Diff writes, to w, the hierarchical structural differences between d and
// r, following the reference's Document::diff/Xref::diff exactly: offsets
// are never compared or reported, since they are layout, not structure.
func (d *Document) Diff(w io.Writer, r *Document) {
	if d.Version != r.Version {
		fmt.Fprintf(w, "Version: %s / %s\n", d.Version, r.Version)
	}

	if len(d.Xref) != len(r.Xref) {
		fmt.Fprintf(w, "Xref table size: %d / %d\n", len(d.Xref), len(r.Xref))
	} else {
		for i := range d.Xref {
			lo, ro := d.Xref[i], r.Xref[i]
			if !xrefEqual(lo, ro) {
				fmt.Fprintf(w, "Xref table [%d]\n", i)
				diffXrefEntry(w, lo, ro, 1)
			}
		}
	}

	if d.Trailer.Size != r.Trailer.Size {
		fmt.Fprintf(w, "File trailer size: %d / %d\n", d.Trailer.Size, r.Trailer.Size)
	}
}

func diffXrefEntry(w io.Writer, a, b XrefEntry, depth int) {
	pad := func() {
		for i := 0; i < depth*4; i++ {
			fmt.Fprint(w, " ")
		}
	}
	if a.Revision != b.Revision {
		pad()
		fmt.Fprintf(w, "Revision: %d / %d\n", a.Revision, b.Revision)
	}
	if a.Used != b.Used {
		pad()
		fmt.Fprintf(w, "Used: %v / %v\n", a.Used, b.Used)
	}
	if !object.Equal(a.Object, b.Object) {
		pad()
		fmt.Fprintln(w, "Object:")
		object.Diff(w, a.Object, b.Object, depth+1)
	}
	if !streamEqual(a.Stream, b.Stream) {
		pad()
		fmt.Fprintln(w, "Stream:")
		object.Diff(w, a.Stream, b.Stream, depth+1)
	}
}
