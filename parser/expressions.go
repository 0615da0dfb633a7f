package parser

import (
	"strings"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/token"
)

const (
	execName   = "$EXEC"
	protoName  = "__proto__"
	superName  = "super"
	thisName   = "this"
	importName = "import"
)

// Expression grammar. Binary operators are parsed by precedence climbing
// over the precedences of the token table.

func (p *Parser) expression() (ast.Expression, error) {
	return p.commaExpression(false, false)
}

// expressionNoIn parses an expression in a for head, where "in" does not
// start a binary operation.
func (p *Parser) expressionNoIn(noIn bool) (ast.Expression, error) {
	return p.commaExpression(noIn, false)
}

// joinPredecessorExpression parses an expression that is evaluated
// conditionally, such as a loop test.
func (p *Parser) joinPredecessorExpression() (*ast.JoinPredecessor, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.NewJoinPredecessor(expr), nil
}

// commaExpression parses a comma separated sequence. Inside parentheses the
// sequence may be an arrow parameter list, ending in a rest parameter or a
// trailing comma.
func (p *Parser) commaExpression(noIn, parenthesized bool) (ast.Expression, error) {
	expr, err := p.assignmentExpression(noIn)
	if err != nil {
		return nil, err
	}
	for p.typ == token.COMMARIGHT {
		commaToken := p.tok
		p.next()

		if parenthesized && p.typ == token.RPAREN && p.env.AtLeast(config.ES8) {
			if t, _ := p.peekSignificant(1, false); t == token.ARROW {
				break
			}
			return nil, p.error("expected.operand", p.found())
		}

		rest := false
		if p.typ == token.ELLIPSIS && p.env.AtLeast(config.ES6) && p.isRestParameterEndOfArrowFunctionParameterList() {
			p.next()
			rest = true
		}
		rhs, err := p.assignmentExpression(noIn)
		if err != nil {
			return nil, err
		}
		if rest {
			ident, ok := rhs.(*ast.Ident)
			if !ok {
				return nil, p.errorAt(rhs.FirstToken(), "invalid.arrow.parameter")
			}
			rhs = ident.With(ast.RestParameter)
		}
		expr = &ast.Binary{
			Range: ast.Range{Token: commaToken, Start: expr.Pos(), Finish: rhs.End()},
			Op:    token.COMMARIGHT,
			Left:  expr,
			Right: rhs,
		}
	}
	return expr, nil
}

// assignmentExpression parses an assignment, a yield, an arrow function or
// a conditional expression.
func (p *Parser) assignmentExpression(noIn bool) (ast.Expression, error) {
	if p.typ == token.YIELD && p.inGeneratorFunction() && p.env.AtLeast(config.ES6) {
		return p.yieldExpression(noIn)
	}

	startToken, startLine := p.tok, p.line
	async := false
	if p.isAsyncArrowStart() {
		async = true
		p.nextOrEOL()
	}

	lhs, err := p.conditionalExpression(noIn)
	if err != nil {
		return nil, err
	}

	if p.typ == token.ARROW && p.env.AtLeast(config.ES6) && p.checkNoLineTerminator() {
		params := lhs
		switch e := lhs.(type) {
		case *ast.ExpressionList:
			params = nil
			if len(e.Expressions) > 0 {
				params = e.Expressions[0]
			}
		case *ast.Call:
			if isAsyncCall(e) {
				async = true
			}
		}
		return p.arrowFunction(startToken, startLine, params, async)
	}
	if _, ok := lhs.(*ast.ExpressionList); ok {
		return nil, p.expected(token.ARROW.NameOrType())
	}
	if async {
		return nil, p.expected(token.ARROW.NameOrType())
	}

	if p.typ.IsAssignment() {
		assignToken := p.tok
		isAssign := p.typ == token.ASSIGN
		if isAssign {
			p.pushDefaultName(lhs)
		}
		p.next()
		rhs, err := p.assignmentExpression(noIn)
		if isAssign {
			p.popDefaultName()
		}
		if err != nil {
			return nil, err
		}
		if err := p.verifyCoverInitializedNames(rhs); err != nil {
			return nil, err
		}
		return p.verifyAssignment(assignToken, lhs, rhs)
	}

	if p.coverInitializedNames > 0 && !p.mayContinuePattern() {
		if err := p.verifyCoverInitializedNames(lhs); err != nil {
			return nil, err
		}
	}
	return lhs, nil
}

// isAsyncArrowStart reports whether "async" is followed by a single
// parameter and an arrow, as in "async x => x".
func (p *Parser) isAsyncArrowStart() bool {
	if !p.env.AtLeast(config.ES8) || !p.isIdentName("async") {
		return false
	}
	t, i := p.peekSignificant(1, false)
	if t != token.IDENT && t.Kind() != token.FutureStrict {
		return false
	}
	t, _ = p.peekSignificant(i+1, false)
	return t == token.ARROW
}

// isAsyncCall reports whether call is "async(...)", the parameter list of
// an async arrow function.
func isAsyncCall(call *ast.Call) bool {
	ident, ok := call.Function.(*ast.Ident)
	return ok && !call.IsNew && !call.Optional && ident.Name == "async"
}

// mayContinuePattern reports whether the expression just parsed may still
// turn out to be part of a destructuring pattern.
func (p *Parser) mayContinuePattern() bool {
	switch p.typ {
	case token.COMMARIGHT, token.RPAREN, token.RBRACKET, token.RBRACE, token.COLON, token.IN:
		return true
	}
	return p.isIdentName("of")
}

// verifyCoverInitializedNames rejects "{a = 1}" outside of patterns.
func (p *Parser) verifyCoverInitializedNames(expr ast.Expression) error {
	if p.coverInitializedNames == 0 || expr == nil {
		return nil
	}
	var err error
	ast.Inspect(expr, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.Function, *ast.Class:
			return false
		case *ast.Property:
			if n.CoverInitializedName {
				err = p.errorAt(n.Token, "invalid.property.initializer")
				return false
			}
		case *ast.Binary:
			if n.IsAssignment() {
				err = p.verifyCoverInitializedNames(n.Right)
				return false
			}
		}
		return true
	})
	return err
}

func (p *Parser) conditionalExpression(noIn bool) (ast.Expression, error) {
	lhs, err := p.unaryExpression()
	if err != nil {
		return nil, err
	}
	return p.binaryExpression(lhs, token.TERNARY.Precedence(), noIn)
}

func (p *Parser) checkOperator(noIn bool) bool {
	return p.typ.IsOperator(noIn) && (p.typ != token.EXP || p.env.AtLeast(config.ES7))
}

// binaryExpression extends lhs with the operators binding at least as
// tightly as minPrecedence.
func (p *Parser) binaryExpression(lhs ast.Expression, minPrecedence int, noIn bool) (ast.Expression, error) {
	precedence := p.typ.Precedence()
	for p.checkOperator(noIn) && precedence >= minPrecedence {
		op := p.tok
		if p.typ == token.TERNARY {
			p.next()
			// The middle operand may use "in" even in a for head.
			pass, err := p.assignmentExpression(false)
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			fail, err := p.assignmentExpression(noIn)
			if err != nil {
				return nil, err
			}
			lhs = &ast.Ternary{
				Range: ast.Range{Token: op, Start: lhs.Pos(), Finish: fail.End()},
				Test:  lhs,
				True:  ast.NewJoinPredecessor(pass),
				False: ast.NewJoinPredecessor(fail),
			}
		} else {
			p.next()
			rhs, err := p.unaryExpression()
			if err != nil {
				return nil, err
			}
			next := p.typ.Precedence()
			for p.checkOperator(noIn) && (next > precedence || next == precedence && !p.typ.IsLeftAssociative()) {
				if rhs, err = p.binaryExpression(rhs, next, noIn); err != nil {
					return nil, err
				}
				next = p.typ.Precedence()
			}
			if err := p.verifyNullishMix(op, lhs, rhs); err != nil {
				return nil, err
			}
			lhs = newBinary(op, lhs, rhs)
		}
		precedence = p.typ.Precedence()
	}
	return lhs, nil
}

// verifyNullishMix rejects "??" next to "&&" or "||" unless one side is
// parenthesized.
func (p *Parser) verifyNullishMix(op token.Token, lhs, rhs ast.Expression) error {
	opType := op.Type()
	if !opType.IsLogical() {
		return nil
	}
	for _, operand := range [...]ast.Expression{lhs, rhs} {
		b, ok := operand.(*ast.Binary)
		if !ok || !b.Op.IsLogical() || p.parenthesized[operand] {
			continue
		}
		if (opType == token.NULLISHCOALESC) != (b.Op == token.NULLISHCOALESC) {
			return p.errorAt(op, "invalid.nullish.mix")
		}
	}
	return nil
}

func (p *Parser) unaryExpression() (ast.Expression, error) {
	unaryToken := p.tok
	switch p.typ {
	case token.ADD, token.SUB, token.NOT, token.BIT_NOT, token.TYPEOF, token.VOID, token.DELETE:
		opType := p.typ
		p.next()
		expr, err := p.unaryExpression()
		if err != nil {
			return nil, err
		}
		// "-a ** b" is ambiguous and must be parenthesized.
		if p.typ == token.EXP {
			return nil, p.error("unexpected.token", p.found())
		}
		if opType == token.DELETE && p.strict {
			if ident, ok := expr.(*ast.Ident); ok {
				return nil, p.errorAt(ident.Token, "strict.cant.delete.ident", ident.Name)
			}
		}
		return &ast.Unary{Range: ast.NewRange(unaryToken, expr.End()), Op: opType, Operand: expr}, nil

	case token.INCPREFIX, token.DECPREFIX:
		opType := p.typ
		p.next()
		expr, err := p.leftHandSideExpression()
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, p.error("expected.lvalue", p.found())
		}
		return p.verifyIncDec(unaryToken, opType, expr, false)
	}

	if p.isAwait(p.tok) && p.inAsyncFunction() && p.env.AtLeast(config.ES8) {
		return p.awaitExpression()
	}

	expr, err := p.leftHandSideExpression()
	if err != nil {
		return nil, err
	}
	if p.last != token.EOL && (p.typ == token.INCPREFIX || p.typ == token.DECPREFIX) {
		opToken, opType := p.tok, p.typ
		if expr == nil {
			return nil, p.error("expected.lvalue", p.found())
		}
		p.next()
		return p.verifyIncDec(opToken, opType, expr, true)
	}
	if expr == nil {
		return nil, p.error("expected.operand", p.found())
	}
	return expr, nil
}

// verifyIncDec builds an increment or decrement after checking that its
// operand can be assigned to.
func (p *Parser) verifyIncDec(opToken token.Token, opType token.Type, expr ast.Expression, postfix bool) (ast.Expression, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		if !checkIdentLValue(e) {
			return p.referenceError(expr, nil, false)
		}
		if err := p.verifyIdent(e, "operand for "+opType.Name()+" operator"); err != nil {
			return nil, err
		}
	case *ast.Access, *ast.Index:
	default:
		return p.referenceError(expr, nil, p.env.EarlyLvalueError)
	}

	if !postfix {
		return &ast.Unary{Range: ast.NewRange(opToken, expr.End()), Op: opType, Operand: expr}, nil
	}
	postfixType := token.INCPOSTFIX
	if opType == token.DECPREFIX {
		postfixType = token.DECPOSTFIX
	}
	return &ast.Unary{
		Range:   ast.Range{Token: opToken.Recast(postfixType), Start: expr.Pos(), Finish: opToken.End()},
		Op:      postfixType,
		Operand: expr,
	}, nil
}

// leftHandSideExpression parses calls and property accesses, including
// optional chains and tagged templates. It returns nil without an error
// when no operand starts at the current token.
func (p *Parser) leftHandSideExpression() (ast.Expression, error) {
	callLine, callToken := p.line, p.tok
	lhs, err := p.memberExpression()
	if err != nil || lhs == nil {
		return nil, err
	}

	if p.typ == token.LPAREN {
		args, err := p.argumentList()
		if err != nil {
			return nil, err
		}
		p.detectSpecialFunction(lhs)
		lhs = &ast.Call{
			Range:      ast.Range{Token: callToken, Start: lhs.Pos(), Finish: p.finish},
			LineNumber: callLine,
			Function:   lhs,
			Args:       args,
		}
	}

	optionalChain := false
	for {
		callLine, callToken = p.line, p.tok
		switch p.typ {
		case token.LPAREN:
			args, err := p.argumentList()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Call{
				Range:      ast.Range{Token: callToken, Start: lhs.Pos(), Finish: p.finish},
				LineNumber: callLine,
				Function:   lhs,
				Args:       args,
			}

		case token.LBRACKET:
			if lhs, err = p.indexAccess(lhs, false); err != nil {
				return nil, err
			}

		case token.PERIOD:
			p.next()
			if lhs, err = p.propertyAccess(callToken, lhs, false); err != nil {
				return nil, err
			}

		case token.OPTIONAL_ACCESS:
			optionalChain = true
			p.next()
			switch p.typ {
			case token.LPAREN:
				args, err := p.argumentList()
				if err != nil {
					return nil, err
				}
				lhs = &ast.Call{
					Range:      ast.Range{Token: callToken, Start: lhs.Pos(), Finish: p.finish},
					LineNumber: callLine,
					Function:   lhs,
					Args:       args,
					Optional:   true,
				}
			case token.LBRACKET:
				if lhs, err = p.indexAccess(lhs, true); err != nil {
					return nil, err
				}
			default:
				if lhs, err = p.propertyAccess(callToken, lhs, true); err != nil {
					return nil, err
				}
			}

		case token.TEMPLATE, token.TEMPLATE_HEAD:
			if optionalChain {
				return nil, p.error("invalid.optional.template")
			}
			args, err := p.templateLiteralArgumentList()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Call{
				Range:      ast.Range{Token: callToken, Start: lhs.Pos(), Finish: p.finish},
				LineNumber: callLine,
				Function:   lhs,
				Args:       args,
			}

		default:
			return lhs, nil
		}
	}
}

// indexAccess parses "[expr]" after base.
func (p *Parser) indexAccess(base ast.Expression, optional bool) (ast.Expression, error) {
	indexToken := p.tok
	p.next()
	index, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.Index{
		Range:    ast.Range{Token: indexToken, Start: base.Pos(), Finish: p.finish},
		Base:     base,
		Index:    index,
		Optional: optional,
	}, nil
}

// propertyAccess parses the name after "." or "?.". Private names start
// with "#".
func (p *Parser) propertyAccess(accessToken token.Token, base ast.Expression, optional bool) (ast.Expression, error) {
	name, err := p.identifierName()
	if err != nil {
		return nil, err
	}
	return &ast.Access{
		Range:    ast.Range{Token: accessToken, Start: base.Pos(), Finish: p.finish},
		Base:     base,
		Property: name.Name,
		Optional: optional,
		Private:  strings.HasPrefix(name.Name, "#"),
	}, nil
}

// detectSpecialFunction marks direct eval and super calls.
func (p *Parser) detectSpecialFunction(callee ast.Expression) {
	ident, ok := callee.(*ast.Ident)
	if !ok {
		return
	}
	switch {
	case ident.Name == evalName:
		p.markEval()
	case ident.Is(ast.DirectSuper):
		p.markSuperCall()
	}
}

// detectSpecialProperty marks uses of arguments.
func (p *Parser) detectSpecialProperty(ident *ast.Ident) {
	if ident.Name != argumentsName {
		return
	}
	if fn := p.lc.currentNonArrowFunction(); fn != nil {
		fn.setFlag(ast.UsesArguments)
	}
}

func (p *Parser) newExpression() (ast.Expression, error) {
	newToken := p.tok
	p.next()

	if p.typ == token.PERIOD && p.env.AtLeast(config.ES6) {
		p.next()
		if !p.isIdentName("target") {
			return nil, p.error("expected.target")
		}
		if fn := p.lc.currentNonArrowFunction(); fn == nil || fn.isProgram() {
			return nil, p.errorAt(newToken, "invalid.new.target")
		}
		p.next()
		p.markNewTarget()
		return ast.NewIdent(newToken, p.finish, "new.target"), nil
	}

	callLine := p.line
	constructor, err := p.memberExpression()
	if err != nil || constructor == nil {
		return nil, err
	}
	if p.typ == token.OPTIONAL_ACCESS {
		return nil, p.error("invalid.optional.new")
	}

	var args []ast.Expression
	if p.typ == token.LPAREN {
		if args, err = p.argumentList(); err != nil {
			return nil, err
		}
	}
	// A trailing object literal is passed as the last argument.
	if p.env.SyntaxExtensions && p.typ == token.LBRACE {
		obj, err := p.objectLiteral()
		if err != nil {
			return nil, err
		}
		args = append(args, obj)
	}

	call := &ast.Call{
		Range:      ast.Range{Token: constructor.FirstToken(), Start: constructor.Pos(), Finish: p.finish},
		LineNumber: callLine,
		Function:   constructor,
		Args:       args,
		IsNew:      true,
	}
	return &ast.Unary{Range: ast.NewRange(newToken, call.End()), Op: token.NEW, Operand: call}, nil
}

// memberExpression parses a primary expression followed by property
// accesses and tagged templates, but no calls.
func (p *Parser) memberExpression() (ast.Expression, error) {
	var lhs ast.Expression
	switch {
	case p.typ == token.NEW:
		expr, err := p.newExpression()
		if err != nil || expr == nil {
			return nil, err
		}
		lhs = expr
	case p.typ == token.FUNCTION:
		fn, err := p.functionExpression(false, false, false)
		if err != nil {
			return nil, err
		}
		lhs = fn
	case p.env.AtLeast(config.ES6) && (p.typ == token.CLASS || p.env.AtLeast(config.ES7) && p.typ == token.AT):
		class, err := p.classExpression()
		if err != nil {
			return nil, err
		}
		lhs = class
	case p.typ == token.SUPER && p.env.AtLeast(config.ES6):
		expr, err := p.superExpression()
		if err != nil {
			return nil, err
		}
		lhs = expr
	case p.typ == token.IMPORT && p.env.AtLeast(config.ES11):
		expr, err := p.importCall()
		if err != nil {
			return nil, err
		}
		return expr, nil
	case p.isAsyncFunctionStart(false):
		p.nextOrEOL()
		fn, err := p.functionExpression(false, false, true)
		if err != nil {
			return nil, err
		}
		lhs = fn
	default:
		expr, err := p.primaryExpression()
		if err != nil || expr == nil {
			return nil, err
		}
		lhs = expr
	}

	for {
		callLine, callToken := p.line, p.tok
		switch p.typ {
		case token.LBRACKET:
			var err error
			if lhs, err = p.indexAccess(lhs, false); err != nil {
				return nil, err
			}
		case token.PERIOD:
			p.next()
			var err error
			if lhs, err = p.propertyAccess(callToken, lhs, false); err != nil {
				return nil, err
			}
		case token.TEMPLATE, token.TEMPLATE_HEAD:
			args, err := p.templateLiteralArgumentList()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Call{
				Range:      ast.Range{Token: callToken, Start: lhs.Pos(), Finish: p.finish},
				LineNumber: callLine,
				Function:   lhs,
				Args:       args,
			}
		default:
			return lhs, nil
		}
	}
}

// superExpression parses "super" in a method: a property access on the
// home object, or a constructor call in a derived class constructor.
func (p *Parser) superExpression() (ast.Expression, error) {
	superToken := p.tok
	fn := p.lc.currentNonArrowFunction()
	if fn == nil || !fn.isMethod() {
		return nil, p.error("invalid.super")
	}
	p.next()
	ident := ast.NewIdent(superToken, p.finish, superName)
	switch p.typ {
	case token.LBRACKET, token.PERIOD:
		fn.setFlag(ast.UsesSuper)
		return ident, nil
	case token.LPAREN:
		if fn.is(ast.IsSubclassConstructor) {
			return ident.With(ast.DirectSuper), nil
		}
	}
	return nil, p.errorAt(superToken, "invalid.super")
}

// importCall parses a dynamic "import(specifier)".
func (p *Parser) importCall() (ast.Expression, error) {
	importToken, importLine := p.tok, p.line
	p.next()
	if p.typ == token.PERIOD {
		return nil, p.errorAt(importToken, "unexpected.import.meta")
	}
	if err := p.expectDontAdvance(token.LPAREN); err != nil {
		return nil, err
	}
	callee := ast.NewIdent(importToken, importToken.End(), importName)
	args, err := p.argumentList()
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, p.errorAt(importToken, "expected", "one argument", importName)
	}
	return &ast.Call{
		Range:      ast.NewRange(importToken, p.finish),
		LineNumber: importLine,
		Function:   callee,
		Args:       args,
	}, nil
}

// argumentList parses a parenthesized argument list.
func (p *Parser) argumentList() ([]ast.Expression, error) {
	p.next()
	var args []ast.Expression
	first := true
	for p.typ != token.RPAREN {
		if !first {
			if err := p.expect(token.COMMARIGHT); err != nil {
				return nil, err
			}
			if p.typ == token.RPAREN && p.env.AtLeast(config.ES8) {
				break
			}
		}
		first = false

		var spreadToken token.Token
		if p.typ == token.ELLIPSIS && p.env.AtLeast(config.ES6) {
			spreadToken = p.tok
			p.next()
		}
		arg, err := p.assignmentExpression(false)
		if err != nil {
			return nil, err
		}
		if spreadToken != 0 {
			arg = &ast.Unary{Range: ast.NewRange(spreadToken.Recast(token.SPREAD_ARGUMENT), arg.End()), Op: token.SPREAD_ARGUMENT, Operand: arg}
		}
		args = append(args, arg)
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// primaryExpression parses identifiers, literals and parenthesized
// expressions. It returns nil without an error when nothing matches.
func (p *Parser) primaryExpression() (ast.Expression, error) {
	primaryLine, primaryToken := p.line, p.tok

	switch p.typ {
	case token.THIS:
		p.next()
		p.markThis()
		return ast.NewIdent(primaryToken, p.finish, thisName), nil

	case token.IDENT:
		ident, err := p.ident()
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(ident.Name, "#") {
			// Only "#x in obj" uses a private name on its own.
			if p.typ != token.IN {
				return nil, p.errorAt(ident.Token, "invalid.private.ident")
			}
			ident = ident.With(ast.PrivateName)
		}
		p.detectSpecialProperty(ident)
		return ident, nil

	case token.OCTAL_LEGACY:
		if p.strict {
			return nil, p.error("strict.no.octal")
		}
		return p.literalExpression()

	case token.STRING, token.ESCSTRING, token.DECIMAL, token.HEXADECIMAL, token.OCTAL,
		token.BINARY_NUMBER, token.FLOATING, token.BIGINT, token.REGEX, token.XML:
		return p.literalExpression()

	case token.EXECSTRING:
		return p.execString(primaryLine, primaryToken)

	case token.FALSE, token.TRUE:
		p.next()
		return &ast.Literal{Range: ast.NewRange(primaryToken, p.finish), Value: token.Bool(primaryToken.Type() == token.TRUE)}, nil

	case token.NULL:
		p.next()
		return &ast.Literal{Range: ast.NewRange(primaryToken, p.finish), Value: token.Null{}}, nil

	case token.LBRACKET:
		return p.arrayLiteral()

	case token.LBRACE:
		return p.objectLiteral()

	case token.LPAREN:
		return p.parenthesizedExpression()

	case token.TEMPLATE, token.TEMPLATE_HEAD:
		return p.templateLiteral()
	}

	// Some operators start a literal in operand position.
	if p.env.JSX && p.typ == token.LT && p.lexer.ScanJSX(p.tok, p.typ) {
		return p.jsxElement()
	}
	if p.lexer.ScanLiteral(p.tok, p.typ, p.lineInfo) {
		p.next()
		return p.literalExpression()
	}
	if p.isNonStrictModeIdent() {
		ident, err := p.ident()
		if err != nil {
			return nil, err
		}
		return ident, nil
	}
	return nil, nil
}

func (p *Parser) literalExpression() (ast.Expression, error) {
	lit, err := p.literal()
	if err != nil {
		return nil, err
	}
	return lit, nil
}

// lineInfo receives the line state after a literal spanning lines.
func (p *Parser) lineInfo(line, linePosition int) {
	p.line = line
	p.linePosition = linePosition
}

// parenthesizedExpression parses "(expr)". From ES6 on "()" and
// "(...rest)" are accepted as arrow parameter lists.
func (p *Parser) parenthesizedExpression() (ast.Expression, error) {
	parenToken := p.tok
	p.next()

	if p.env.AtLeast(config.ES6) {
		switch p.typ {
		case token.RPAREN:
			p.nextOrEOL()
			if err := p.expectDontAdvance(token.ARROW); err != nil {
				return nil, err
			}
			return &ast.ExpressionList{Range: ast.NewRange(parenToken, p.finish)}, nil
		case token.ELLIPSIS:
			p.next()
			rest, err := p.bindingIdentifier("function parameter")
			if err != nil {
				return nil, err
			}
			if err := p.expectDontAdvance(token.RPAREN); err != nil {
				return nil, err
			}
			p.nextOrEOL()
			if err := p.expectDontAdvance(token.ARROW); err != nil {
				return nil, err
			}
			return &ast.ExpressionList{
				Range:       ast.NewRange(parenToken, p.finish),
				Expressions: []ast.Expression{rest.With(ast.RestParameter)},
			}, nil
		}
	}

	expr, err := p.commaExpression(false, true)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	p.parenthesized[expr] = true
	return expr, nil
}

// execString parses a backquoted command of a shell script into a call
// of $EXEC.
func (p *Parser) execString(line int, tok token.Token) (ast.Expression, error) {
	callee := ast.NewIdent(tok, tok.End(), execName)
	p.next()
	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	command, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Call{
		Range:      ast.NewRange(tok, p.finish),
		LineNumber: line,
		Function:   callee,
		Args:       []ast.Expression{command},
	}, nil
}

// arrayLiteral parses an array initializer. Holes are nil elements.
func (p *Parser) arrayLiteral() (ast.Expression, error) {
	arrayToken := p.tok
	p.next()

	var elements []ast.Expression
	elision := true
	hasSpread := false
loop:
	for {
		switch p.typ {
		case token.RBRACKET:
			p.next()
			break loop
		case token.COMMARIGHT:
			p.next()
			if elision {
				elements = append(elements, nil)
			}
			elision = true
		default:
			if !elision {
				return nil, p.error("expected.comma", p.found())
			}
			var spreadToken token.Token
			if p.typ == token.ELLIPSIS && p.env.AtLeast(config.ES6) {
				hasSpread = true
				spreadToken = p.tok
				p.next()
			}
			expr, err := p.assignmentExpression(false)
			if err != nil {
				return nil, err
			}
			if spreadToken != 0 {
				expr = &ast.Unary{Range: ast.NewRange(spreadToken.Recast(token.SPREAD_ARRAY), expr.End()), Op: token.SPREAD_ARRAY, Operand: expr}
			}
			elements = append(elements, expr)
			elision = false
		}
	}
	return &ast.ArrayLiteral{
		Range:            ast.NewRange(arrayToken, p.finish),
		Elements:         elements,
		HasSpread:        hasSpread,
		HasTrailingComma: elision && len(elements) > 0,
	}, nil
}

// objectLiteral parses an object initializer. A getter and a setter of the
// same name are merged into one property.
func (p *Parser) objectLiteral() (ast.Expression, error) {
	objectToken := p.tok
	p.next()

	var properties []*ast.Property
	seen := make(map[string]int)
	commaSeen := true
loop:
	for {
		switch p.typ {
		case token.RBRACE:
			p.next()
			break loop
		case token.COMMARIGHT:
			if commaSeen {
				return nil, p.error("expected.property.id", p.found())
			}
			p.next()
			commaSeen = true
		default:
			if !commaSeen {
				return nil, p.error("expected.comma", p.found())
			}
			commaSeen = false

			prop, err := p.propertyAssignment()
			if err != nil {
				return nil, err
			}
			if _, spread := prop.Key.(*ast.Unary); prop.Computed || spread {
				properties = append(properties, prop)
				continue
			}
			key := prop.KeyName()
			at, ok := seen[key]
			if !ok {
				seen[key] = len(properties)
				properties = append(properties, prop)
				continue
			}

			existing := properties[at]
			if !p.env.AtLeast(config.ES6) {
				if err := p.checkPropertyRedefinition(prop, existing); err != nil {
					return nil, err
				}
			} else if prop.Proto && existing.Proto {
				return nil, p.errorAt(prop.Token, "multiple.proto.key")
			}

			switch {
			case prop.Value != nil || existing.Value != nil:
				seen[key] = len(properties)
				properties = append(properties, prop)
			case prop.Getter != nil:
				merged := *existing
				merged.Getter = prop.Getter
				properties[at] = &merged
			case prop.Setter != nil:
				merged := *existing
				merged.Setter = prop.Setter
				properties[at] = &merged
			}
		}
	}
	return &ast.ObjectLiteral{Range: ast.NewRange(objectToken, p.finish), Properties: properties}, nil
}

// checkPropertyRedefinition applies the ES5 rules on duplicate property
// names.
func (p *Parser) checkPropertyRedefinition(prop, existing *ast.Property) error {
	isAccessor := prop.Getter != nil || prop.Setter != nil
	wasAccessor := existing.Getter != nil || existing.Setter != nil
	redefined := false
	switch {
	case p.strict && prop.Value != nil && existing.Value != nil:
		redefined = true
	case existing.Value != nil && isAccessor:
		redefined = true
	case wasAccessor && prop.Value != nil:
		redefined = true
	case prop.Getter != nil && existing.Getter != nil, prop.Setter != nil && existing.Setter != nil:
		redefined = true
	}
	if redefined {
		return p.errorAt(prop.Token, "property.redefinition", prop.KeyName())
	}
	return nil
}

// propertyAssignment parses one member of an object literal.
func (p *Parser) propertyAssignment() (*ast.Property, error) {
	propertyToken, functionLine := p.tok, p.line

	var decorators []ast.Expression
	if p.typ == token.AT && p.env.AtLeast(config.ES7) {
		var err error
		if decorators, err = p.decoratorList(); err != nil {
			return nil, err
		}
	}

	if p.typ == token.ELLIPSIS && p.env.AtLeast(config.ES9) && decorators == nil {
		spreadToken := p.tok
		p.next()
		expr, err := p.assignmentExpression(false)
		if err != nil {
			return nil, err
		}
		spread := &ast.Unary{Range: ast.NewRange(spreadToken.Recast(token.SPREAD_OBJECT), expr.End()), Op: token.SPREAD_OBJECT, Operand: expr}
		return &ast.Property{Range: ast.NewRange(propertyToken, p.finish), Key: spread, Value: spread}, nil
	}

	async := false
	if p.isAsyncFunctionStart(true) {
		async = true
		p.next()
	}
	generator := false
	if p.typ == token.MUL && p.env.AtLeast(config.ES6) {
		generator = true
		p.next()
	}

	computed := p.typ == token.LBRACKET
	var (
		key   ast.Expression
		ident *ast.Ident
	)
	if p.typ == token.IDENT && !async && !generator {
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		if p.typ != token.COLON && (p.typ != token.LPAREN || !p.env.AtLeast(config.ES6)) && p.isPropertyNameStart() {
			switch name.Name {
			case "get":
				getter, err := p.propertyGetterFunction(propertyToken, functionLine)
				if err != nil {
					return nil, err
				}
				return &ast.Property{
					Range:      ast.NewRange(propertyToken, p.finish),
					Key:        getter.key,
					Getter:     getter.function,
					Computed:   getter.computed,
					Decorators: decorators,
				}, nil
			case "set":
				setter, err := p.propertySetterFunction(propertyToken, functionLine)
				if err != nil {
					return nil, err
				}
				return &ast.Property{
					Range:      ast.NewRange(propertyToken, p.finish),
					Key:        setter.key,
					Setter:     setter.function,
					Computed:   setter.computed,
					Decorators: decorators,
				}, nil
			}
		}
		ident = name.With(ast.PropertyName)
		key = ident
	} else {
		isIdentifier := p.isNonStrictModeIdent()
		var err error
		if key, err = p.propertyName(); err != nil {
			return nil, err
		}
		if isIdentifier {
			ident, _ = key.(*ast.Ident)
		}
	}

	if generator || async {
		if err := p.expectDontAdvance(token.LPAREN); err != nil {
			return nil, err
		}
	}

	prop := &ast.Property{Key: key, Computed: computed, Decorators: decorators}
	switch {
	case p.typ == token.LPAREN && p.env.AtLeast(config.ES6):
		method, err := p.propertyMethodFunction(key, propertyToken, functionLine, generator, async, ast.IsMethod, computed)
		if err != nil {
			return nil, err
		}
		prop.Value = method.function

	case decorators != nil:
		return nil, p.errorAt(propertyToken, "invalid.decorator")

	case ident != nil && p.env.AtLeast(config.ES6) && (p.typ == token.COMMARIGHT || p.typ == token.RBRACE || p.typ == token.ASSIGN):
		ref := ast.NewIdent(ident.Token, ident.End(), ident.Name)
		prop.Value = ref
		if p.typ == token.ASSIGN {
			// Only valid when the literal turns out to be a pattern.
			assignToken := p.tok
			p.next()
			init, err := p.assignmentExpression(false)
			if err != nil {
				return nil, err
			}
			if prop.Value, err = p.verifyAssignment(assignToken, ref, init); err != nil {
				return nil, err
			}
			prop.CoverInitializedName = true
			p.coverInitializedNames++
		}

	default:
		if err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		if ident != nil && ident.Name == protoName && !computed {
			prop.Proto = true
			prop.Key = ident.With(ast.ProtoProperty)
		}
		p.pushDefaultName(key)
		value, err := p.assignmentExpression(false)
		p.popDefaultName()
		if err != nil {
			return nil, err
		}
		prop.Value = value
	}
	prop.Range = ast.NewRange(propertyToken, p.finish)
	return prop, nil
}

// isPropertyNameStart reports whether the current token can start a
// property name.
func (p *Parser) isPropertyNameStart() bool {
	return p.isPropertyNameType(p.typ)
}

func (p *Parser) isPropertyNameType(typ token.Type) bool {
	switch typ {
	case token.STRING, token.ESCSTRING, token.DECIMAL, token.HEXADECIMAL, token.OCTAL,
		token.OCTAL_LEGACY, token.BINARY_NUMBER, token.FLOATING, token.BIGINT:
		return true
	case token.LBRACKET:
		return p.env.AtLeast(config.ES6)
	}
	return typ.IsIdentifierName()
}

func (p *Parser) propertyName() (ast.Expression, error) {
	if p.typ == token.LBRACKET && p.env.AtLeast(config.ES6) {
		return p.computedPropertyName()
	}
	return p.literalPropertyName()
}

func (p *Parser) literalPropertyName() (ast.Expression, error) {
	switch p.typ {
	case token.IDENT:
		ident, err := p.ident()
		if err != nil {
			return nil, err
		}
		return ident.With(ast.PropertyName), nil
	case token.OCTAL_LEGACY:
		if p.strict {
			return nil, p.error("strict.no.octal")
		}
		return p.literalExpression()
	case token.STRING, token.ESCSTRING, token.DECIMAL, token.HEXADECIMAL, token.OCTAL,
		token.BINARY_NUMBER, token.FLOATING, token.BIGINT:
		return p.literalExpression()
	}
	ident, err := p.identifierName()
	if err != nil {
		return nil, p.error("expected.property.id", p.found())
	}
	return ident.With(ast.PropertyName), nil
}

func (p *Parser) computedPropertyName() (ast.Expression, error) {
	if err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	expr, err := p.assignmentExpression(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return expr, nil
}

// peekSignificant returns the first token type at or after offset i that
// is not a comment, skipping line breaks too when eol is set.
func (p *Parser) peekSignificant(i int, eol bool) (token.Type, int) {
	for {
		switch t := p.peek(i); t {
		case token.COMMENT, token.DIRECTIVE_COMMENT:
		case token.EOL:
			if !eol {
				return t, i
			}
		default:
			return t, i
		}
		i++
	}
}

// isRestParameterEndOfArrowFunctionParameterList reports whether the
// ellipsis at the current token is followed by an identifier, a closing
// parenthesis and an arrow.
func (p *Parser) isRestParameterEndOfArrowFunctionParameterList() bool {
	t, i := p.peekSignificant(1, true)
	if t != token.IDENT {
		return false
	}
	if t, i = p.peekSignificant(i+1, true); t != token.RPAREN {
		return false
	}
	t, _ = p.peekSignificant(i+1, false)
	return t == token.ARROW
}

// checkNoLineTerminator reports whether the arrow at the current token
// follows its parameters on the same line.
func (p *Parser) checkNoLineTerminator() bool {
	switch p.last {
	case token.RPAREN, token.IDENT:
		return true
	}
	for i := p.k - 1; i >= p.stream.First(); i-- {
		switch t := p.stream.Get(i).Type(); t {
		case token.RPAREN, token.IDENT:
			return true
		case token.EOL:
			return false
		case token.COMMENT, token.DIRECTIVE_COMMENT:
		default:
			return t.Kind() == token.FutureStrict
		}
	}
	return false
}
