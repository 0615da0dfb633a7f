package parser

import (
	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/token"
)

// templateLiteral parses an untagged template. A template with
// substitutions becomes a concatenation of its strings and the string
// conversions of its expressions.
func (p *Parser) templateLiteral() (ast.Expression, error) {
	noSubstitution := p.typ == token.TEMPLATE
	literalToken := p.tok
	lit, err := p.literal()
	if err != nil {
		return nil, err
	}
	if noSubstitution {
		return lit, nil
	}

	var concat ast.Expression = lit
	for {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.typ != token.TEMPLATE_MIDDLE && p.typ != token.TEMPLATE_TAIL {
			return nil, p.error("unterminated.template.expression")
		}
		str := &ast.Runtime{Range: ast.Range{Token: expr.FirstToken(), Start: expr.Pos(), Finish: expr.End()}, Request: ast.ToString, Args: []ast.Expression{expr}}
		concat = templateConcat(literalToken, concat, str)

		lastType := p.typ
		literalToken = p.tok
		if lit, err = p.literal(); err != nil {
			return nil, err
		}
		concat = templateConcat(literalToken, concat, lit)
		if lastType == token.TEMPLATE_TAIL {
			return concat, nil
		}
	}
}

func templateConcat(tok token.Token, lhs, rhs ast.Expression) ast.Expression {
	return &ast.Binary{
		Range: ast.Range{Token: tok.Recast(token.ADD), Start: lhs.Pos(), Finish: rhs.End()},
		Op:    token.ADD,
		Left:  lhs,
		Right: rhs,
	}
}

// templateLiteralArgumentList parses the template of a tagged template
// call. The first argument is a request for the template object built
// from the raw and cooked strings, the substitutions follow.
func (p *Parser) templateLiteralArgumentList() ([]ast.Expression, error) {
	templateToken := p.tok
	hasSubstitutions := p.typ == token.TEMPLATE_HEAD
	args := []ast.Expression{nil}
	var raw, cooked []ast.Expression

	addString := func() error {
		stringToken := p.tok
		rawString := p.lexer.RawString(stringToken)
		var cookedValue ast.Expression
		v, err := p.lexer.ValueOf(stringToken, true)
		switch {
		case err == nil:
			p.next()
			cookedValue = &ast.Literal{Range: ast.NewRange(stringToken, p.finish), Value: v}
		case p.env.AtLeast(config.ES9):
			// Tagged templates may contain invalid escapes; the cooked
			// string is undefined then.
			p.next()
			cookedValue = undefinedLiteral(stringToken, p.finish)
		default:
			return err
		}
		raw = append(raw, &ast.Literal{Range: ast.NewRange(stringToken, p.finish), Value: token.String(rawString)})
		cooked = append(cooked, cookedValue)
		return nil
	}

	if err := addString(); err != nil {
		return nil, err
	}
	for hasSubstitutions {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.typ != token.TEMPLATE_MIDDLE && p.typ != token.TEMPLATE_TAIL {
			return nil, p.error("unterminated.template.expression")
		}
		args = append(args, expr)
		hasSubstitutions = p.typ == token.TEMPLATE_MIDDLE
		if err := addString(); err != nil {
			return nil, err
		}
	}

	rawArray := &ast.ArrayLiteral{Range: ast.NewRange(templateToken, p.finish), Elements: raw}
	cookedArray := &ast.ArrayLiteral{Range: ast.NewRange(templateToken, p.finish), Elements: cooked}
	args[0] = &ast.Runtime{
		Range:   ast.NewRange(templateToken, p.finish),
		Request: ast.GetTemplateObject,
		Args:    []ast.Expression{rawArray, cookedArray},
	}
	return args, nil
}
