package parser

import (
	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/token"
)

// Destructuring patterns are parsed as array and object literals and
// checked afterwards, once it is known they are assignment targets.

// patternVerifier walks an array or object literal used as a pattern.
type patternVerifier struct {
	p *Parser
	// spread checks the target of a rest element.
	spread func(ast.Expression) error
	// ident is called for every identifier target.
	ident func(*ast.Ident) error
	// member accepts property accesses as targets.
	member bool
}

func (v *patternVerifier) visit(e ast.Expression) error {
	p := v.p
	switch e := e.(type) {
	case *ast.ArrayLiteral:
		return v.array(e)
	case *ast.ObjectLiteral:
		return v.object(e)
	case *ast.Binary:
		// The initializer of a default can be any expression.
		if e.Op == token.ASSIGN {
			return v.visit(e.Left)
		}
	case *ast.Unary:
		if e.Op == token.SPREAD_ARRAY || e.Op == token.SPREAD_OBJECT {
			return v.visit(e.Operand)
		}
	case *ast.Ident:
		return v.ident(e)
	case *ast.Access, *ast.Index:
		if v.member {
			return nil
		}
	}
	return p.errorAt(e.FirstToken(), "invalid.destructuring.target")
}

func (v *patternVerifier) array(lit *ast.ArrayLiteral) error {
	p := v.p
	if lit.HasSpread && lit.HasTrailingComma && len(lit.Elements) > 0 {
		if last := lit.Elements[len(lit.Elements)-1]; last != nil {
			return p.errorAt(last.FirstToken(), "invalid.rest.trailing.comma")
		}
		return p.errorAt(lit.Token, "invalid.rest.trailing.comma")
	}
	rest := false
	for _, elem := range lit.Elements {
		if elem == nil {
			continue
		}
		if rest {
			return p.errorAt(elem.FirstToken(), "invalid.rest.element")
		}
		if u, ok := elem.(*ast.Unary); ok && u.Op == token.SPREAD_ARRAY {
			rest = true
			if err := v.spread(u.Operand); err != nil {
				return err
			}
		}
		if err := v.visit(elem); err != nil {
			return err
		}
	}
	return nil
}

func (v *patternVerifier) object(lit *ast.ObjectLiteral) error {
	p := v.p
	rest := false
	for _, prop := range lit.Properties {
		if rest {
			return p.errorAt(prop.Token, "invalid.rest.element")
		}
		if prop.Value == nil {
			return p.errorAt(prop.Token, "invalid.destructuring.target")
		}
		if u, ok := prop.Value.(*ast.Unary); ok && u.Op == token.SPREAD_OBJECT {
			rest = true
			if err := v.spread(u.Operand); err != nil {
				return err
			}
		}
		if err := v.visit(prop.Value); err != nil {
			return err
		}
	}
	return nil
}

// verifyDestructuringBindingPattern checks a pattern of a declaration or a
// parameter and reports every bound identifier to bind.
func (p *Parser) verifyDestructuringBindingPattern(pattern ast.Expression, bind func(*ast.Ident) error) error {
	v := &patternVerifier{p: p, ident: bind}
	v.spread = func(target ast.Expression) error {
		// Identifiers reach bind through the walk, nested patterns are
		// walked themselves.
		if _, ok := target.(*ast.Ident); ok || p.isDestructuringLhs(target) {
			return nil
		}
		return p.errorAt(target.FirstToken(), "expected.binding.identifier")
	}
	return v.visit(pattern)
}

// verifyDestructuringAssignmentPattern checks a pattern on the left of an
// assignment, where any assignable expression is a valid target.
func (p *Parser) verifyDestructuringAssignmentPattern(pattern ast.Expression, context string) error {
	v := &patternVerifier{p: p, member: true}
	v.ident = func(id *ast.Ident) error {
		if err := p.verifyIdent(id, context); err != nil {
			return err
		}
		if !checkIdentLValue(id) {
			_, err := p.referenceError(id, nil, true)
			return err
		}
		return nil
	}
	v.spread = func(target ast.Expression) error {
		ok, err := p.checkValidLValue(target, context)
		if err != nil {
			return err
		}
		if !ok {
			return p.errorAt(target.FirstToken(), "invalid.lvalue")
		}
		return nil
	}
	return v.visit(pattern)
}

// isDestructuringLhs reports whether lhs is an array or object pattern.
func (p *Parser) isDestructuringLhs(lhs ast.Expression) bool {
	switch lhs.(type) {
	case *ast.ArrayLiteral, *ast.ObjectLiteral:
		return p.env.AtLeast(config.ES6)
	}
	return false
}

// checkIdentLValue rejects keywords such as this used as targets.
func checkIdentLValue(id *ast.Ident) bool {
	return id.Token.Type().Kind() != token.Keyword
}

// verifyAssignment builds an assignment after checking its target. Invalid
// targets either fail right away or become a runtime reference error,
// depending on the environment.
func (p *Parser) verifyAssignment(op token.Token, lhs, rhs ast.Expression) (ast.Expression, error) {
	opType := op.Type()
	if opType.IsAssignment() {
		switch l := lhs.(type) {
		case *ast.Ident:
			if !checkIdentLValue(l) {
				return p.referenceError(lhs, rhs, false)
			}
			if err := p.verifyIdent(l, "assignment"); err != nil {
				return nil, err
			}
		case *ast.Access, *ast.Index:
		default:
			if opType == token.ASSIGN && p.isDestructuringLhs(lhs) {
				if err := p.verifyDestructuringAssignmentPattern(lhs, "assignment"); err != nil {
					return nil, err
				}
				break
			}
			return p.referenceError(lhs, rhs, p.env.EarlyLvalueError)
		}
	}
	return &ast.Binary{
		Range: ast.Range{Token: op, Start: lhs.Pos(), Finish: rhs.End()},
		Op:    opType,
		Left:  lhs,
		Right: rhs,
	}, nil
}

// referenceError reports an invalid assignment target. Unless early is
// set, the failure is deferred to a runtime request carrying the target,
// the value and the source text of the target.
func (p *Parser) referenceError(lhs, rhs ast.Expression, early bool) (ast.Expression, error) {
	if early {
		return nil, errors.NewParserError(errors.ReferenceError, errors.Message("parser.invalid.lvalue"), p.src, lhs.FirstToken())
	}
	tok := lhs.FirstToken()
	if rhs == nil {
		rhs = &ast.Literal{Range: ast.NewRange(tok, lhs.End()), Value: token.Null{}}
	}
	text := p.src.Substring(lhs.Pos(), lhs.End()-lhs.Pos())
	return &ast.Runtime{
		Range:   ast.NewRange(tok, lhs.End()),
		Request: ast.ReferenceError,
		Args: []ast.Expression{
			lhs,
			rhs,
			&ast.Literal{Range: ast.NewRange(tok, lhs.End()), Value: token.String(text)},
		},
	}, nil
}

// newBinary builds a binary operation. The right operand of a logical
// operator is evaluated conditionally and gets wrapped accordingly.
func newBinary(op token.Token, lhs, rhs ast.Expression) *ast.Binary {
	if op.Type().IsLogical() {
		lhs = ast.NewJoinPredecessor(lhs)
		rhs = ast.NewJoinPredecessor(rhs)
	}
	return &ast.Binary{
		Range: ast.Range{Token: op, Start: lhs.Pos(), Finish: rhs.End()},
		Op:    op.Type(),
		Left:  lhs,
		Right: rhs,
	}
}

// undefinedLiteral builds "void 0".
func undefinedLiteral(tok token.Token, finish int) *ast.Unary {
	zero := &ast.Literal{Range: ast.NewRange(tok, finish), Value: token.Int(0)}
	return &ast.Unary{Range: ast.NewRange(tok.Recast(token.VOID), finish), Op: token.VOID, Operand: zero}
}
