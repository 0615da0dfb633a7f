package parser

import (
	"strings"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/token"
)

// jsxElement parses an element starting at the current "<". The lexer has
// already switched into tag mode.
func (p *Parser) jsxElement() (ast.Expression, error) {
	startToken := p.tok
	if startToken.Type() == token.LT {
		startToken = startToken.Recast(token.JSX_ELEM_START)
	}
	p.next()

	name, err := p.jsxElementName()
	if err != nil {
		return nil, err
	}

	if p.typ == token.JSX_ELEM_CLOSE {
		p.next()
		if err := p.expect(token.JSX_ELEM_END); err != nil {
			return nil, err
		}
		return &ast.JsxElement{Range: ast.NewRange(startToken, p.finish), Name: name}, nil
	}

	var attributes []ast.Expression
	for {
		attr, err := p.jsxAttribute()
		if err != nil {
			return nil, err
		}
		if attr == nil {
			break
		}
		attributes = append(attributes, attr)
	}

	closed := false
	if p.typ == token.JSX_ELEM_CLOSE {
		p.next()
		closed = true
	}
	if err := p.expect(token.JSX_ELEM_END); err != nil {
		return nil, err
	}
	if closed {
		return &ast.JsxElement{Range: ast.NewRange(startToken, p.finish), Name: name, Attributes: attributes}, nil
	}

	var children []ast.Expression
	for {
		switch p.typ {
		case token.JSX_TEXT:
			textToken := p.tok
			text := p.stringValue(textToken)
			p.next()
			children = append(children, &ast.Literal{Range: ast.NewRange(textToken, p.finish), Value: token.String(text)})

		case token.JSX_ELEM_START:
			if p.peek(1) != token.JSX_ELEM_CLOSE {
				child, err := p.jsxElement()
				if err != nil {
					return nil, err
				}
				children = append(children, child)
				continue
			}
			p.next()
			p.next()
			endName, err := p.jsxElementName()
			if err != nil {
				return nil, err
			}
			if endName != name {
				return nil, p.error("expected.jsx.name.mismatch", name, endName)
			}
			if err := p.expect(token.JSX_ELEM_END); err != nil {
				return nil, err
			}
			return &ast.JsxElement{
				Range:      ast.NewRange(startToken, p.finish),
				Name:       name,
				Attributes: attributes,
				Children:   children,
			}, nil

		case token.LBRACE:
			if p.jsxEmptyExpression() {
				p.next()
				p.next()
				continue
			}
			p.next()
			expr, err := p.assignmentExpression(false)
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RBRACE); err != nil {
				return nil, err
			}
			children = append(children, expr)

		default:
			return nil, p.error("expected.jsx.child", p.found())
		}
	}
}

// jsxEmptyExpression reports whether the "{" at the cursor is closed
// again with nothing but comments in between.
func (p *Parser) jsxEmptyExpression() bool {
	for i := 1; ; i++ {
		if t := p.peek(i); t != token.COMMENT {
			return t == token.RBRACE
		}
	}
}

// jsxAttribute parses one attribute. It returns nil when the tag has no
// further attributes.
func (p *Parser) jsxAttribute() (ast.Expression, error) {
	switch p.typ {
	case token.LBRACE:
		p.next()
		spreadToken := p.tok
		if err := p.expect(token.ELLIPSIS); err != nil {
			return nil, err
		}
		expr, err := p.assignmentExpression(false)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBRACE); err != nil {
			return nil, err
		}
		return &ast.Unary{
			Range:   ast.NewRange(spreadToken.Recast(token.SPREAD_OBJECT), expr.End()),
			Op:      token.SPREAD_OBJECT,
			Operand: expr,
		}, nil

	case token.JSX_IDENTIFIER:
		attrToken := p.tok
		name := p.stringValue(attrToken)
		p.next()
		if p.typ == token.COLON {
			p.next()
			if err := p.expectDontAdvance(token.JSX_IDENTIFIER); err != nil {
				return nil, err
			}
			name += ":" + p.stringValue(p.tok)
			p.next()
		}

		var value ast.Expression
		if p.typ == token.ASSIGN {
			p.next()
			switch p.typ {
			case token.JSX_STRING:
				textToken := p.tok
				text := p.stringValue(textToken)
				p.next()
				value = &ast.Literal{Range: ast.NewRange(textToken, p.finish), Value: token.String(text)}
			case token.LBRACE:
				p.next()
				expr, err := p.assignmentExpression(false)
				if err != nil {
					return nil, err
				}
				if err := p.expect(token.RBRACE); err != nil {
					return nil, err
				}
				value = expr
			case token.JSX_ELEM_START:
				elem, err := p.jsxElement()
				if err != nil {
					return nil, err
				}
				value = elem
			default:
				return nil, p.error("expected.jsx.attribute", p.found())
			}
		}
		return &ast.JsxAttribute{Range: ast.NewRange(attrToken, p.finish), Name: name, Value: value}, nil
	}
	return nil, nil
}

// jsxElementName reads a possibly namespaced or dotted tag name. An empty
// name denotes a fragment.
func (p *Parser) jsxElementName() (string, error) {
	if p.typ == token.JSX_ELEM_END {
		return "", nil
	}
	if err := p.expectDontAdvance(token.JSX_IDENTIFIER); err != nil {
		return "", err
	}
	var name strings.Builder
	name.WriteString(p.stringValue(p.tok))
	p.next()

	switch p.typ {
	case token.COLON:
		p.next()
		if err := p.expectDontAdvance(token.JSX_IDENTIFIER); err != nil {
			return "", err
		}
		name.WriteString(":" + p.stringValue(p.tok))
		p.next()
	case token.PERIOD:
		for p.typ == token.PERIOD {
			p.next()
			if err := p.expectDontAdvance(token.JSX_IDENTIFIER); err != nil {
				return "", err
			}
			name.WriteString("." + p.stringValue(p.tok))
			p.next()
		}
	}
	return name.String(), nil
}
