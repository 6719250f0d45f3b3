package object

import (
	"bytes"
	"strings"
	"testing"
)

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Object
		want bool
	}{
		{"nil==nil", Nil{}, Nil{}, true},
		{"bool same", Bool(true), Bool(true), true},
		{"bool diff", Bool(true), Bool(false), false},
		{"numeric 1 vs 1.0", Numeric(1), Numeric(1.0), true},
		{"numeric diff", Numeric(1), Numeric(2), false},
		{"name same", Name("Type"), Name("Type"), true},
		{"name diff", Name("Type"), Name("SubType"), false},
		{"string same bytes", String{Raw: []byte("(abc)")}, String{Raw: []byte("(abc)")}, true},
		{"string diff bytes", String{Raw: []byte("(abc)")}, String{Raw: []byte("(abd)")}, false},
		{"type mismatch", Numeric(1), Name("1"), false},
		{
			"array same order",
			Array{Numeric(1), Bool(true)},
			Array{Numeric(1), Bool(true)},
			true,
		},
		{
			"array different order",
			Array{Numeric(1), Bool(true)},
			Array{Bool(true), Numeric(1)},
			false,
		},
		{
			"dict same keys and values",
			Dict{"A": Numeric(1), "B": Name("x")},
			Dict{"B": Name("x"), "A": Numeric(1)},
			true,
		},
		{
			"dict missing key",
			Dict{"A": Numeric(1)},
			Dict{"A": Numeric(1), "B": Name("x")},
			false,
		},
		{"indirect same", Indirect(5), Indirect(5), true},
		{"indirect diff", Indirect(5), Indirect(6), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestDiffReportsTypeMismatch(t *testing.T) {
	var buf bytes.Buffer
	Diff(&buf, Numeric(1), Name("x"), 0)
	want := "Type: NUMERIC / NAME\n"
	if buf.String() != want {
		t.Fatalf("Diff() = %q, want %q", buf.String(), want)
	}
}

func TestDiffDictReportsMissingKeys(t *testing.T) {
	var buf bytes.Buffer
	a := Dict{"A": Numeric(1)}
	b := Dict{"A": Numeric(1), "B": Name("x")}
	Diff(&buf, a, b, 0)
	got := buf.String()
	if !bytes.Contains([]byte(got), []byte("No key in the left dictionary")) {
		t.Fatalf("Diff() = %q, want a missing-left-key line", got)
	}
}

func TestDiffDictInterleavesKeysInSortedOrder(t *testing.T) {
	var buf bytes.Buffer
	// "A" is common, "Z" is left-only, "M" is right-only: sorted order is
	// A, M, Z, so the M line (right-only) must land between A and Z, not
	// after every left-side line.
	a := Dict{"A": Numeric(1), "Z": Numeric(2)}
	b := Dict{"A": Numeric(2), "M": Numeric(3)}
	Diff(&buf, a, b, 0)
	got := buf.String()
	iA := strings.Index(got, "A:")
	iM := strings.Index(got, "M: No key in the left dictionary.")
	iZ := strings.Index(got, "Z: No key in the right dictionary.")
	if iA < 0 || iM < 0 || iZ < 0 {
		t.Fatalf("Diff() = %q, want lines for A, M and Z", got)
	}
	if !(iA < iM && iM < iZ) {
		t.Fatalf("Diff() = %q, want key lines in sorted order A, M, Z", got)
	}
}

func TestDiffArraySizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	Diff(&buf, Array{Numeric(1)}, Array{Numeric(1), Numeric(2)}, 0)
	want := "Array size: 1 / 2\n"
	if buf.String() != want {
		t.Fatalf("Diff() = %q, want %q", buf.String(), want)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		o    Object
		want string
	}{
		{Nil{}, "null"},
		{Bool(true), "true"},
		{Numeric(1), "1"},
		{Name("Type"), "/Type"},
		{Indirect(3), "3 0 R"},
	}
	for _, c := range cases {
		if got := Display(c.o); got != c.want {
			t.Errorf("Display(%v) = %q, want %q", c.o, got, c.want)
		}
	}
}

func TestLabelPrefersType(t *testing.T) {
	d := Dict{"Type": Name("Catalog")}
	got := Label(d)
	want := "Catalog: " + displayDict(d)
	if got != want {
		t.Fatalf("Label() = %q, want %q", got, want)
	}
}
