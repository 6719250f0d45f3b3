package token

import (
	"testing"

	"github.com/emurenMRz/pdftools/byteimage"
	"github.com/emurenMRz/pdftools/object"
)

func lex(t *testing.T, src string) Token {
	t.Helper()
	im := byteimage.New([]byte(src))
	lx := New(im)
	tok, err := lx.Lex()
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", src, err)
	}
	return tok
}

func TestLexLiterals(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"true", Leaf},
		{"false", Leaf},
		{"123", Leaf},
		{"-3.5", Leaf},
		{"/Name", Leaf},
		{"[", ArrayBegin},
		{"]", ArrayEnd},
		{"<<", DictionaryBegin},
		{">>", DictionaryEnd},
		{"endobj", ObjectEnd},
		{"endstream", StreamEnd},
	}
	for _, c := range cases {
		tok := lex(t, c.src)
		if tok.Kind != c.kind {
			t.Errorf("Lex(%q).Kind = %v, want %v", c.src, tok.Kind, c.kind)
		}
	}
}

func TestLexBool(t *testing.T) {
	tok := lex(t, "true")
	b, ok := tok.Value.(object.Bool)
	if !ok || !bool(b) {
		t.Fatalf("Lex(\"true\").Value = %#v, want Bool(true)", tok.Value)
	}
}

func TestLexIndirectReference(t *testing.T) {
	tok := lex(t, "12 0 R")
	ref, ok := tok.Value.(object.Indirect)
	if !ok || ref != 12 {
		t.Fatalf("Lex(\"12 0 R\").Value = %#v, want Indirect(12)", tok.Value)
	}
}

func TestLexIndirectReferenceRejectsNonZeroGeneration(t *testing.T) {
	im := byteimage.New([]byte("12 1 R"))
	lx := New(im)
	if _, err := lx.Lex(); err == nil {
		t.Fatal("Lex(\"12 1 R\") = nil error, want error for non-zero generation")
	}
}

func TestLexNumeric(t *testing.T) {
	tok := lex(t, "3.14")
	n, ok := tok.Value.(object.Numeric)
	if !ok || float64(n) != 3.14 {
		t.Fatalf("Lex(\"3.14\").Value = %#v, want Numeric(3.14)", tok.Value)
	}
}

func TestLexName(t *testing.T) {
	tok := lex(t, "/Type ")
	n, ok := tok.Value.(object.Name)
	if !ok || n != "Type" {
		t.Fatalf("Lex(\"/Type\").Value = %#v, want Name(\"Type\")", tok.Value)
	}
}

func TestLexLiteralStringBalancesParens(t *testing.T) {
	tok := lex(t, "(a(b)c)")
	s, ok := tok.Value.(object.String)
	if !ok || string(s.Raw) != "(a(b)c)" {
		t.Fatalf("Lex(\"(a(b)c)\").Value = %#v, want String{(a(b)c)}", tok.Value)
	}
}

func TestLexLiteralStringOctalEscape(t *testing.T) {
	tok := lex(t, `(\101)`)
	s, ok := tok.Value.(object.String)
	if !ok || string(s.Raw) != `(\101)` {
		t.Fatalf(`Lex("(\\101)").Value = %#v, want the raw byte range`, tok.Value)
	}
}

func TestLexHexString(t *testing.T) {
	tok := lex(t, "<41 42>")
	s, ok := tok.Value.(object.String)
	if !ok || string(s.Raw) != "<41 42>" {
		t.Fatalf("Lex(\"<41 42>\").Value = %#v, want String{<41 42>}", tok.Value)
	}
}

func TestLexSkipsComments(t *testing.T) {
	tok := lex(t, "%a comment\ntrue")
	if tok.Kind != Leaf {
		t.Fatalf("Lex() after comment: Kind = %v, want Leaf", tok.Kind)
	}
	if b, ok := tok.Value.(object.Bool); !ok || !bool(b) {
		t.Fatalf("Lex() after comment: Value = %#v, want Bool(true)", tok.Value)
	}
}

func TestLexStreamBeginConsumesToNewline(t *testing.T) {
	im := byteimage.New([]byte("stream\r\ndata"))
	lx := New(im)
	tok, err := lx.Lex()
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	if tok.Kind != StreamBegin {
		t.Fatalf("Lex().Kind = %v, want StreamBegin", tok.Kind)
	}
	if im.Tell() != len("stream\r\n") {
		t.Fatalf("Tell() = %d, want %d", im.Tell(), len("stream\r\n"))
	}
}
