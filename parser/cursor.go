package parser

import (
	"strings"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/token"
)

const sourceURLPrefix = "sourceURL="

// Token cursor over the lexer's stream. The stream is filled on demand, so
// lookahead with peek may lex further than the current token.

// fill returns the token at absolute stream index i, lexing as needed.
func (p *Parser) fill(i int) token.Token {
	for i > p.stream.Last() {
		if p.stream.IsFull() {
			p.stream.Grow()
		}
		p.lexer.Lexify()
	}
	return p.stream.Get(i)
}

// peek returns the type of the token n positions ahead of the current one.
func (p *Parser) peek(n int) token.Type {
	return p.fill(p.k + n).Type()
}

// first positions the cursor on the first significant token of the stream.
func (p *Parser) first() {
	p.k = -1
	p.next()
}

// advance moves to the following token, comments and line breaks included.
func (p *Parser) advance() token.Type {
	if p.typ != token.COMMENT {
		p.last = p.typ
	}
	if p.typ == token.EOF {
		return p.typ
	}
	p.k++
	lastToken := p.tok
	p.previousToken = p.tok
	p.tok = p.fill(p.k)
	p.typ = p.tok.Type()
	if p.last != token.EOL {
		p.finish = p.start + lastToken.Length()
	}
	if p.typ == token.EOL {
		p.line = p.tok.Length()
		p.linePosition = p.tok.Position()
	} else {
		p.start = p.tok.Position()
	}
	return p.typ
}

// nextOrEOL moves to the following token, skipping comments but stopping at
// line breaks.
func (p *Parser) nextOrEOL() token.Type {
	for {
		p.advance()
		if p.typ == token.DIRECTIVE_COMMENT {
			p.directiveComment()
		}
		if p.typ != token.COMMENT && p.typ != token.DIRECTIVE_COMMENT {
			return p.typ
		}
	}
}

// next moves to the following significant token.
func (p *Parser) next() token.Type {
	for {
		p.nextOrEOL()
		if p.typ != token.EOL && p.typ != token.COMMENT {
			return p.typ
		}
	}
}

func (p *Parser) directiveComment() {
	if _, ok := p.src.ExplicitURL(); ok {
		return
	}
	comment := p.tok.Text(p.src.Content())
	if len(comment) > 4 && strings.HasPrefix(comment[4:], sourceURLPrefix) {
		p.src.SetExplicitURL(comment[4+len(sourceURLPrefix):])
	}
}

// check reports whether the current token has type typ.
func (p *Parser) check(typ token.Type) bool { return p.typ == typ }

// expect consumes a token of type typ.
func (p *Parser) expect(typ token.Type) error {
	if err := p.expectDontAdvance(typ); err != nil {
		return err
	}
	p.next()
	return nil
}

// expectDontAdvance fails unless the current token has type typ.
func (p *Parser) expectDontAdvance(typ token.Type) error {
	if p.typ != typ {
		return p.expected(typ.NameOrType())
	}
	return nil
}

// expectValue consumes a token of type typ and returns its value.
func (p *Parser) expectValue(typ token.Type) (token.Value, error) {
	if err := p.expectDontAdvance(typ); err != nil {
		return nil, err
	}
	v, err := p.value(p.tok)
	if err != nil {
		return nil, err
	}
	p.next()
	return v, nil
}

// value decodes a token value under the current strictness.
func (p *Parser) value(tok token.Token) (token.Value, error) {
	v, err := p.lexer.ValueOf(tok, p.strict)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// stringValue decodes identifiers and strings; other tokens yield "".
func (p *Parser) stringValue(tok token.Token) string {
	v, err := p.lexer.ValueOf(tok, false)
	if err != nil {
		return tok.Text(p.src.Content())
	}
	if s, ok := v.(token.String); ok {
		return string(s)
	}
	return ""
}

// isIdentName reports whether the current token is the identifier name.
func (p *Parser) isIdentName(name string) bool {
	return p.typ == token.IDENT && p.stringValue(p.tok) == name
}

func (p *Parser) isNonStrictModeIdent() bool {
	return !p.strict && p.typ.Kind() == token.FutureStrict
}

// isBindingIdentifier reports whether the current token may name a binding.
func (p *Parser) isBindingIdentifier() bool {
	return p.typ == token.IDENT || p.isNonStrictModeIdent()
}

func (p *Parser) isAwait(tok token.Token) bool {
	return tok.Type() == token.IDENT && p.stringValue(tok) == "await"
}

// ident consumes an identifier. Future strict reserved words are accepted
// outside strict mode.
func (p *Parser) ident() (*ast.Ident, error) {
	tok := p.tok
	if p.isNonStrictModeIdent() {
		tok = tok.Recast(token.IDENT)
		name := p.names.Intern(p.stringValue(tok))
		p.next()
		id := ast.NewIdent(tok, p.finish, name)
		id.Flags |= ast.FutureStrictName
		return id, nil
	}
	if p.typ != token.IDENT {
		return nil, p.expected(token.IDENT.NameOrType())
	}
	v, err := p.value(tok)
	if err != nil {
		return nil, err
	}
	p.next()
	return ast.NewIdent(tok, p.finish, p.names.Intern(v.String())), nil
}

// identifierName consumes an IdentifierName: an identifier or any keyword.
func (p *Parser) identifierName() (*ast.Ident, error) {
	if p.typ == token.IDENT {
		return p.ident()
	}
	if !p.typ.IsIdentifierName() {
		return nil, p.expected(token.IDENT.NameOrType())
	}
	tok := p.tok.Recast(token.IDENT)
	name := p.names.Intern(p.stringValue(tok))
	p.next()
	return ast.NewIdent(tok, p.finish, name), nil
}

// literal consumes a literal token.
func (p *Parser) literal() (*ast.Literal, error) {
	tok := p.tok
	v, err := p.value(tok)
	if err != nil {
		return nil, err
	}
	p.next()
	if v == nil {
		v = token.Null{}
	}
	return &ast.Literal{Range: ast.NewRange(tok, p.finish), Value: v}, nil
}

// found describes the current token for diagnostics.
func (p *Parser) found() string {
	switch p.typ {
	case token.EOF:
		return "eof"
	case token.EOL:
		return "end of line"
	}
	if text := p.tok.Text(p.src.Content()); text != "" {
		return text
	}
	return p.typ.NameOrType()
}

// error builds a syntax error at the current token. When the current token
// is an ERROR token, the lexical error behind it is returned instead.
func (p *Parser) error(key string, args ...string) error {
	if p.typ == token.ERROR {
		return p.lexer.Err(p.tok)
	}
	return p.errorAt(p.tok, key, args...)
}

// errorAt builds a syntax error at tok.
func (p *Parser) errorAt(tok token.Token, key string, args ...string) error {
	return errors.NewParserError(errors.SyntaxError, errors.Message("parser."+key, args...), p.src, tok)
}

// expected reports that something other than the current token was expected.
func (p *Parser) expected(what string) error {
	return p.error("expected", what, p.found())
}

// unexpected reports the current token as out of place in a statement.
func (p *Parser) unexpected() error {
	return p.error("expected.stmt", p.found())
}

// warning records a warning at tok. A non-nil result aborts the parse.
func (p *Parser) warning(tok token.Token, key string, args ...string) error {
	return p.errs.WarningAt(errors.Message("parser."+key, args...), p.src, tok)
}
