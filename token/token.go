// Package token implements the single-entry-point lexer for PDF's
// context-sensitive lexical grammar: Lex classifies the next lexeme under
// the cursor into a structural token sentinel or a fully-formed leaf
// Object.
package token

import (
	"fmt"
	"regexp"

	"github.com/emurenMRz/pdftools/byteimage"
	"github.com/emurenMRz/pdftools/object"
	"github.com/emurenMRz/pdftools/pdferrors"
)

// Kind distinguishes the structural sentinels Lex can return from the case
// where Lex instead returns a fully-formed leaf Object (Kind == Leaf).
type Kind uint8

const (
	Leaf Kind = iota
	ArrayBegin
	ArrayEnd
	DictionaryBegin
	DictionaryEnd
	StreamBegin
	StreamEnd
	ObjectEnd
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "Leaf"
	case ArrayBegin:
		return "ArrayBegin"
	case ArrayEnd:
		return "ArrayEnd"
	case DictionaryBegin:
		return "DictionaryBegin"
	case DictionaryEnd:
		return "DictionaryEnd"
	case StreamBegin:
		return "StreamBegin"
	case StreamEnd:
		return "StreamEnd"
	case ObjectEnd:
		return "ObjectEnd"
	default:
		return "<invalid token kind>"
	}
}

// Token is what Lex returns: either a structural sentinel (Kind != Leaf,
// Value is nil) or a leaf Object (Kind == Leaf, Value holds it).
type Token struct {
	Kind  Kind
	Value object.Object
}

// IsComposite reports whether t introduces a container the parser must
// recurse into.
func (t Token) IsComposite() bool {
	return t.Kind == ArrayBegin || t.Kind == DictionaryBegin
}

var (
	indirectRefRe = regexp.MustCompile(`^([0-9]+) ([0-9]+) R`)
)

// Lexer wraps a byteimage.Image with the PDF lexical grammar: it owns no
// state beyond the underlying cursor.
type Lexer struct {
	im *byteimage.Image
}

// New returns a Lexer reading from im.
func New(im *byteimage.Image) *Lexer {
	return &Lexer{im: im}
}

// Image returns the underlying byte image, so callers (the parser, the
// object materializer) can seek/tell alongside lexing.
func (lx *Lexer) Image() *byteimage.Image { return lx.im }

// Lex reads and consumes the next lexeme, returning either a structural
// token or a leaf Object. See spec.md §4.C for the full dispatch table.
func (lx *Lexer) Lex() (Token, error) {
	lx.im.SkipWS()

	if ch, ok := lx.im.GetCH(); ok && ch == '%' {
		lx.im.SkipUntil("\r\n")
		lx.im.SkipWS()
	}

	ch, ok := lx.im.GetCH()
	if !ok {
		return Token{}, pdferrors.NewParseError("Lex", "unexpected EOF")
	}

	switch {
	case ch == 't':
		if string(lx.im.GetLineDelim(byteimage.WhitespaceAndDelimiters, true)) != "true" {
			return Token{}, pdferrors.NewParseError("Lex", "unknown token")
		}
		return Token{Kind: Leaf, Value: object.Bool(true)}, nil

	case ch == 'f':
		if string(lx.im.GetLineDelim(byteimage.WhitespaceAndDelimiters, true)) != "false" {
			return Token{}, pdferrors.NewParseError("Lex", "unknown token")
		}
		return Token{Kind: Leaf, Value: object.Bool(false)}, nil

	case ch == '+' || ch == '-' || (ch >= '0' && ch <= '9'):
		return lx.lexNumericOrIndirect()

	case ch == '(':
		return lx.lexLiteralString()

	case ch == '<':
		return lx.lexAngle()

	case ch == '>':
		if !lx.im.Check(">>", true) {
			return Token{}, pdferrors.NewParseError("Lex", "unknown token")
		}
		return Token{Kind: DictionaryEnd}, nil

	case ch == '/':
		lx.im.Get()
		name := lx.im.GetLineDelim(byteimage.WhitespaceAndDelimiters, true)
		return Token{Kind: Leaf, Value: object.Name(name)}, nil

	case ch == '[':
		lx.im.Get()
		return Token{Kind: ArrayBegin}, nil

	case ch == ']':
		lx.im.Get()
		return Token{Kind: ArrayEnd}, nil

	case ch == 's':
		if !lx.im.Check("stream", true) {
			return Token{}, pdferrors.NewParseError("Lex", "unknown token")
		}
		// Only CR-LF or LF is permitted immediately after "stream".
		for {
			b, ok := lx.im.Get()
			if !ok {
				return Token{}, pdferrors.NewParseError("Lex", "unterminated stream header")
			}
			if b == '\n' {
				break
			}
		}
		return Token{Kind: StreamBegin}, nil

	case ch == 'e':
		if lx.im.Check("endstream", true) {
			return Token{Kind: StreamEnd}, nil
		}
		if lx.im.Check("endobj", true) {
			return Token{Kind: ObjectEnd}, nil
		}
		return Token{}, pdferrors.NewParseError("Lex", "unknown token")

	default:
		return Token{}, pdferrors.NewParseError("Lex", fmt.Sprintf("unknown token starting with %q", ch))
	}
}

func (lx *Lexer) lexNumericOrIndirect() (Token, error) {
	if groups := lx.im.CheckRegex(indirectRefRe); groups != nil {
		n2 := groups[2]
		if n2 != "0" {
			return Token{}, pdferrors.NewParseError("Lex", "no support for non-zero generation")
		}
		lx.im.GetLineRegex(indirectRefRe, true)
		n1, err := parseUint(groups[1])
		if err != nil {
			return Token{}, pdferrors.WrapParse("Lex", err)
		}
		return Token{Kind: Leaf, Value: object.Indirect(n1)}, nil
	}

	num := lx.im.GetLineDelim(byteimage.WhitespaceAndDelimiters, true)
	f, err := parseFloat(string(num))
	if err != nil {
		return Token{}, pdferrors.WrapParse("Lex", err)
	}
	return Token{Kind: Leaf, Value: object.Numeric(f)}, nil
}

func (lx *Lexer) lexLiteralString() (Token, error) {
	begin := lx.im.Tell()
	stack := 0
	for {
		ch, ok := lx.im.Get()
		if !ok {
			return Token{}, pdferrors.NewParseError("Lex", "unterminated string")
		}
		switch ch {
		case '\\':
			esc, ok := lx.im.Get()
			if !ok {
				return Token{}, pdferrors.NewParseError("Lex", "unterminated string escape")
			}
			switch {
			case isOneCharEscape(esc):
				// consumed
			case esc >= '0' && esc <= '7':
				// exactly 1-3 octal digits, strict (spec.md §9).
				for i := 0; i < 2; i++ {
					next, ok := lx.im.GetCH()
					if !ok || next < '0' || next > '7' {
						break
					}
					lx.im.Get()
				}
			default:
				lx.im.Unget()
			}
		case '(':
			stack++
		case ')':
			stack--
			if stack == 0 {
				return Token{Kind: Leaf, Value: object.String{Raw: lx.im.Data()[begin:lx.im.Tell()]}}, nil
			}
		}
	}
}

func isOneCharEscape(ch byte) bool {
	switch ch {
	case 'n', 'r', 't', 'b', 'f', '(', ')', '\\':
		return true
	default:
		return false
	}
}

func (lx *Lexer) lexAngle() (Token, error) {
	if lx.im.Check("<<", true) {
		return Token{Kind: DictionaryBegin}, nil
	}
	begin := lx.im.Tell()
	lx.im.Get() // the leading '<'
	stack := 1
	for {
		ch, ok := lx.im.Get()
		if !ok {
			return Token{}, pdferrors.NewParseError("Lex", "unterminated hex string")
		}
		switch {
		case isHex(ch):
		case ch == '<':
			stack++
		case ch == '>':
			stack--
			if stack == 0 {
				return Token{Kind: Leaf, Value: object.String{Raw: lx.im.Data()[begin:lx.im.Tell()]}}, nil
			}
		case isWS(ch):
		default:
			return Token{}, pdferrors.NewParseError("Lex", "invalid hex string byte")
		}
	}
}

func isHex(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F') || (ch >= 'a' && ch <= 'f')
}

func isWS(ch byte) bool {
	switch ch {
	case 0, '\f', '\t', '\r', '\n', ' ':
		return true
	default:
		return false
	}
}
