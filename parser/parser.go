// Package parser implements the recursive-descent assembly of PDF Array
// and Dict objects out of the token stream package token produces.
package parser

import (
	"github.com/emurenMRz/pdftools/byteimage"
	"github.com/emurenMRz/pdftools/object"
	"github.com/emurenMRz/pdftools/pdferrors"
	"github.com/emurenMRz/pdftools/token"
)

// maxDepth caps nested Array/Dict recursion (spec.md §9 "Recursion on
// containers"): real PDFs never come close to this; it exists only to
// reject pathologically deep, likely adversarial input in bounded time.
const maxDepth = 500

// Parser turns a token stream into an object.Object tree.
type Parser struct {
	lx *token.Lexer
}

// New returns a Parser reading tokens from lx.
func New(lx *token.Lexer) *Parser {
	return &Parser{lx: lx}
}

// Image exposes the underlying byte image, for callers (the object
// materializer) that need to seek/tell around a Parse call.
func (p *Parser) Image() *byteimage.Image { return p.lx.Image() }

// Parse reads one Object. If stock is non-nil, it is used as the first
// token (the caller has already peeked it to decide how to dispatch);
// otherwise Parse calls Lex itself.
func (p *Parser) Parse(stock *token.Token) (object.Object, error) {
	return p.parse(stock, 0)
}

func (p *Parser) parse(stock *token.Token, depth int) (object.Object, error) {
	if depth > maxDepth {
		return nil, pdferrors.NewParseError("Parse", "exceeded maximum nesting depth")
	}

	var tok token.Token
	var err error
	if stock != nil {
		tok = *stock
	} else {
		tok, err = p.lx.Lex()
		if err != nil {
			return nil, err
		}
	}

	switch tok.Kind {
	case token.ArrayBegin:
		return p.parseArray(depth)
	case token.DictionaryBegin:
		return p.parseDict(depth)
	default:
		return tok.Value, nil
	}
}

func (p *Parser) parseArray(depth int) (object.Object, error) {
	var arr object.Array
	for {
		tok, err := p.lx.Lex()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.ArrayEnd {
			return arr, nil
		}
		if tok.IsComposite() {
			v, err := p.parse(&tok, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
			continue
		}
		if tok.Kind != token.Leaf {
			return nil, pdferrors.NewParseError("parseArray", "unexpected token "+tok.Kind.String())
		}
		arr = append(arr, tok.Value)
	}
}

func (p *Parser) parseDict(depth int) (object.Object, error) {
	dict := object.Dict{}
	for {
		keyTok, err := p.lx.Lex()
		if err != nil {
			return nil, err
		}
		if keyTok.Kind == token.DictionaryEnd {
			return dict, nil
		}
		name, ok := keyTok.Value.(object.Name)
		if keyTok.Kind != token.Leaf || !ok {
			return nil, pdferrors.NewParseError("parseDict", "need Name")
		}

		valTok, err := p.lx.Lex()
		if err != nil {
			return nil, err
		}
		var value object.Object
		if valTok.IsComposite() {
			value, err = p.parse(&valTok, depth+1)
			if err != nil {
				return nil, err
			}
		} else if valTok.Kind == token.Leaf {
			value = valTok.Value
		} else {
			return nil, pdferrors.NewParseError("parseDict", "unexpected token "+valTok.Kind.String())
		}
		dict[name] = value
	}
}
