package parser

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/lexer"
	"github.com/robinvdvleuten/jsparse/token"
)

const (
	anonymousPrefix = "L:"
	arrowPrefix     = "=>:"
)

// FunctionData is what a reparse needs to know about a function parsed
// before.
type FunctionData struct {
	Flags    ast.FunctionFlags
	EndState *ast.ResumeState
}

// Reparse describes a parse of a source that was parsed before. Only the
// target function and the functions preceding it get their bodies parsed;
// the bodies of the others are skipped using their recorded end states,
// and their flags are taken over from the earlier parse.
type Reparse struct {
	Target    int
	functions map[int]FunctionData
}

// NewReparse records the functions of prior, the tree of the earlier
// parse, for a reparse of the function with the given ID.
func NewReparse(prior *ast.Function, target int) *Reparse {
	r := &Reparse{Target: target, functions: make(map[int]FunctionData)}
	if prior == nil {
		return r
	}
	ast.Inspect(prior, func(n ast.Node) bool {
		if fn, ok := n.(*ast.Function); ok {
			r.functions[fn.ID] = FunctionData{Flags: fn.Flags, EndState: fn.EndState}
		}
		return true
	})
	return r
}

// Function returns the recorded data of the function with the given ID.
func (r *Reparse) Function(id int) (FunctionData, bool) {
	data, ok := r.functions[id]
	return data, ok
}

// functionExpression parses a function declaration or expression. The
// current token is FUNCTION.
func (p *Parser) functionExpression(isStatement, topLevel, async bool) (*ast.Function, error) {
	functionToken, functionLine := p.tok, p.line
	p.next()

	generator := false
	if p.typ == token.MUL && p.env.AtLeast(config.ES6) {
		if async && !p.env.AtLeast(config.ES9) {
			return nil, p.unexpected()
		}
		generator = true
		p.next()
	}

	var name *ast.Ident
	if p.isBindingIdentifier() {
		if p.typ == token.YIELD && (!isStatement && generator || isStatement && p.inGeneratorFunction()) {
			return nil, p.expected(token.IDENT.NameOrType())
		}
		if p.isAwait(p.tok) && (!isStatement && async || p.isModule) {
			return nil, p.error("invalid.await")
		}
		var err error
		if name, err = p.ident(); err != nil {
			return nil, err
		}
		if err := p.verifyStrictIdent(name, "function name"); err != nil {
			return nil, err
		}
	} else if isStatement && !p.env.SyntaxExtensions && p.reparse == nil {
		// Anonymous function statements are a syntax extension. A reparse
		// may start at a function that was an expression in its context.
		return nil, p.expected(token.IDENT.NameOrType())
	}

	anonymous := false
	if name == nil {
		name = ast.NewIdent(functionToken, functionToken.Position(), p.defaultFunctionName(functionLine, true))
		anonymous = true
	}

	kind := ast.NormalFunction
	if generator {
		kind = ast.GeneratorFunction
	}
	fn := p.createFunction(name, functionToken, kind, functionLine, nil)
	if async {
		fn.setFlag(ast.IsAsync)
	}
	p.lc.push(fn)
	// Anonymous functions nested in this one must not pick up the name
	// this function is assigned to.
	p.hideDefaultName()
	body, err := p.functionParametersAndBody(fn, generator, async)
	p.popDefaultName()
	p.lc.pop(fn)
	if err != nil {
		return nil, err
	}

	if isStatement {
		switch {
		case topLevel || p.env.AtLeast(config.ES6) || !p.strict && p.env.FunctionDeclarationHoisting && p.env.FunctionStatement == config.AcceptFunctionStatements:
			fn.setFlag(ast.IsDeclared)
		case p.strict:
			return nil, p.errorAt(functionToken, "strict.no.func.decl.here")
		case p.env.FunctionStatement == config.RejectFunctionStatements:
			return nil, p.errorAt(functionToken, "no.func.decl.here")
		case p.env.FunctionStatement == config.WarnFunctionStatements:
			if err := p.warning(functionToken, "no.func.decl.here.warn"); err != nil {
				return nil, err
			}
		}
		fn.setFlag(ast.IsStatement)
		if name.Name == argumentsName {
			p.lc.currentFunction().setFlag(ast.DefinesArguments)
		}
	}
	if anonymous {
		fn.setFlag(ast.IsAnonymous)
	}
	if err := p.verifyParameterList(fn); err != nil {
		return nil, err
	}

	function := p.function(fn, functionToken, body)
	if isStatement {
		if anonymous {
			p.lc.appendStatement(&ast.ExpressionStatement{
				StmtRange:  ast.NewStmtRange(functionLine, functionToken, p.finish),
				Expression: function,
			})
			return function, nil
		}
		var flags ast.VarFlags
		if !topLevel && p.env.AtLeast(config.ES6) {
			flags = ast.IsLet
		}
		decl := &ast.Var{
			StmtRange:   ast.NewStmtRange(functionLine, functionToken, p.finish),
			Name:        name,
			Init:        function,
			Flags:       flags,
			SourceOrder: -1,
		}
		switch {
		case topLevel:
			current := p.lc.currentFunction()
			current.declarations = append(current.declarations, decl)
		case p.env.AtLeast(config.ES6):
			// Block scoped functions are hoisted to the top of their block.
			p.lc.prependStatement(decl)
		default:
			p.lc.appendStatement(decl)
		}
	}
	return function, nil
}

// functionParametersAndBody parses "(params) { body }" of fn, which is on
// the context stack. Parameter initializers go to a separate block that
// wraps the body.
func (p *Parser) functionParametersAndBody(fn *functionBuilder, generator, async bool) (*ast.Block, error) {
	parameterBlock := p.newBlock()
	err := p.expect(token.LPAREN)
	if err == nil {
		fn.parameters, err = p.formalParameterList(token.RPAREN, generator, async)
	}
	if err == nil {
		err = p.expect(token.RPAREN)
	}
	p.lc.pop(parameterBlock)
	if err != nil {
		return nil, err
	}
	body, err := p.functionBody(fn)
	if err != nil {
		return nil, err
	}
	return p.wrapBodyInParameterBlock(fn, body, parameterBlock), nil
}

// wrapBodyInParameterBlock returns body, or a parameter block ending in
// body when parameter initializers were desugared into statements.
func (p *Parser) wrapBodyInParameterBlock(fn *functionBuilder, body *ast.Block, parameterBlock *blockBuilder) *ast.Block {
	if len(parameterBlock.statements) == 0 {
		return body
	}
	parameterBlock.append(ast.NewBlockStatement(fn.line, body))
	flags := (body.Flags | ast.IsParameterBlock) &^ ast.IsBody
	tok := parameterBlock.tok
	return &ast.Block{
		Range:      ast.Range{Token: tok, Start: tok.Position(), Finish: body.End()},
		Statements: parameterBlock.statements,
		Flags:      flags,
	}
}

// formalParameterList parses parameters up to endType. Defaults and
// patterns are desugared into statements of the parameter block.
func (p *Parser) formalParameterList(endType token.Type, yield, await bool) ([]*ast.Ident, error) {
	var parameters []*ast.Ident
	fn := p.lc.currentFunction()
	for first := true; p.typ != endType; first = false {
		if !first {
			if err := p.expect(token.COMMARIGHT); err != nil {
				return nil, err
			}
			// Trailing comma.
			if p.typ == endType && p.env.AtLeast(config.ES8) {
				break
			}
		}

		rest := false
		if p.typ == token.ELLIPSIS && p.env.AtLeast(config.ES6) {
			p.next()
			rest = true
		}
		if p.typ == token.YIELD && yield {
			return nil, p.expected(token.IDENT.NameOrType())
		}
		if await && p.isAwait(p.tok) {
			return nil, p.error("invalid.await")
		}

		paramToken, paramLine := p.tok, p.line
		const context = "function parameter"
		if p.isBindingIdentifier() || rest || !p.env.AtLeast(config.ES6) {
			ident, err := p.bindingIdentifier(context)
			if err != nil {
				return nil, err
			}
			if rest {
				ident = ident.With(ast.RestParameter)
				if err := p.expectDontAdvance(endType); err != nil {
					return nil, err
				}
			} else if p.typ == token.ASSIGN && p.env.AtLeast(config.ES6) {
				p.next()
				ident = ident.With(ast.DefaultParameter)
				if p.typ == token.YIELD && yield {
					return nil, p.expected(token.IDENT.NameOrType())
				}
				init, err := p.assignmentExpression(false)
				if err != nil {
					return nil, err
				}
				if fn != nil {
					value := defaultParameterValue(paramToken, ident, init, p.finish)
					p.appendParameterStatement(fn, paramLine, paramToken, ident, value)
				}
			}
			if fn != nil {
				fn.addParameterBinding(ident)
				if rest || ident.Is(ast.DefaultParameter) {
					fn.nonSimpleParameters = true
				}
			}
			parameters = append(parameters, ident)
			if rest {
				break
			}
			continue
		}

		pattern, err := p.bindingPattern()
		if err != nil {
			return nil, err
		}
		ident := ast.NewIdent(paramToken, pattern.End(), fmt.Sprintf("arguments[%d]", len(parameters))).With(ast.DestructuredParameter)
		if err := p.verifyDestructuringParameter(fn, pattern, paramToken, paramLine, context); err != nil {
			return nil, err
		}
		var value ast.Expression = ident
		if p.typ == token.ASSIGN {
			p.next()
			ident = ident.With(ast.DefaultParameter)
			init, err := p.assignmentExpression(false)
			if err != nil {
				return nil, err
			}
			value = defaultParameterValue(paramToken, ident, init, p.finish)
		}
		if fn != nil {
			p.appendParameterStatement(fn, paramLine, paramToken, pattern, value)
		}
		parameters = append(parameters, ident)
	}
	return parameters, nil
}

// verifyDestructuringParameter checks a parameter pattern and declares
// the names it binds in the function.
func (p *Parser) verifyDestructuringParameter(fn *functionBuilder, pattern ast.Expression, paramToken token.Token, paramLine int, context string) error {
	return p.verifyDestructuringBindingPattern(pattern, func(ident *ast.Ident) error {
		if err := p.verifyIdent(ident, context); err != nil {
			return err
		}
		if fn == nil {
			return nil
		}
		p.lc.functionBody(fn).append(&ast.Var{
			StmtRange:   ast.NewStmtRange(paramLine, paramToken.Recast(token.VAR), pattern.End()),
			Name:        ident,
			Flags:       ast.IsDestructuring,
			SourceOrder: -1,
		})
		fn.addParameterBinding(ident)
		fn.nonSimpleParameters = true
		return nil
	})
}

// defaultParameterValue builds "param === void 0 ? init : param".
func defaultParameterValue(paramToken token.Token, param, init ast.Expression, finish int) ast.Expression {
	test := &ast.Binary{
		Range: ast.Range{Token: paramToken.Recast(token.EQ_STRICT), Start: param.Pos(), Finish: finish},
		Op:    token.EQ_STRICT,
		Left:  param,
		Right: undefinedLiteral(paramToken, finish),
	}
	return &ast.Ternary{
		Range: ast.Range{Token: paramToken.Recast(token.TERNARY), Start: param.Pos(), Finish: max(finish, init.End())},
		Test:  test,
		True:  ast.NewJoinPredecessor(init),
		False: ast.NewJoinPredecessor(param),
	}
}

// appendParameterStatement appends "target = value" to the parameter
// block of fn.
func (p *Parser) appendParameterStatement(fn *functionBuilder, line int, paramToken token.Token, target, value ast.Expression) {
	tok := paramToken.Recast(token.ASSIGN)
	assignment := &ast.Binary{
		Range: ast.Range{Token: tok, Start: target.Pos(), Finish: max(target.End(), value.End())},
		Op:    token.ASSIGN,
		Left:  target,
		Right: value,
	}
	p.lc.functionBody(fn).append(&ast.ExpressionStatement{
		StmtRange:  ast.NewStmtRange(line, tok, assignment.End()),
		Expression: assignment,
	})
}

// verifyParameterList handles duplicate parameter names. They are errors
// in strict mode, in arrows, in methods and with non-simple parameters;
// otherwise the earlier occurrences are renamed so the last one wins.
func (p *Parser) verifyParameterList(fn *functionBuilder) error {
	dup := fn.duplicateParameter
	if dup == nil {
		return nil
	}
	if fn.is(ast.IsStrict) || fn.isArrow() || fn.isMethod() || fn.nonSimpleParameters {
		return p.errorAt(dup.Token, "strict.param.redefinition", dup.Name)
	}
	seen := make(map[string]bool, len(fn.parameters))
	for i := len(fn.parameters) - 1; i >= 0; i-- {
		param := fn.parameters[i]
		if !seen[param.Name] {
			// Claim the name so earlier occurrences always get a suffix.
			fn.namespace.UniqueName(param.Name)
			seen[param.Name] = true
			continue
		}
		fn.parameters[i] = param.Renamed(fn.namespace.UniqueName(param.Name))
	}
	return nil
}

// functionBody parses the body of fn, which is on the context stack. With
// syntax extensions, and for arrows, the body may be a single expression.
// During a reparse the bodies of functions after the target are skipped.
func (p *Parser) functionBody(fn *functionBuilder) (*ast.Block, error) {
	bodyToken := p.tok
	parseBody := p.reparse == nil || fn.id() <= p.reparse.Target
	body := p.newBlock()
	flags := ast.IsBody
	braced := false
	err := func() error {
		if (p.env.SyntaxExtensions || fn.isArrow()) && p.typ != token.LBRACE {
			switch p.typ {
			case token.EOF, token.SEMICOLON, token.RPAREN, token.RBRACKET, token.RBRACE, token.COMMARIGHT:
				return p.error("invalid.arrow.body", p.found())
			}
			returnLine := p.line
			expr, err := p.assignmentExpression(false)
			if err != nil {
				return err
			}
			fn.lastToken = p.previousToken
			fn.setFlag(ast.HasExpressionBody)
			flags |= ast.IsSynthetic
			if parseBody {
				p.lc.appendStatement(&ast.Return{
					StmtRange:  ast.NewStmtRange(returnLine, expr.FirstToken(), expr.End()),
					Expression: expr,
				})
			}
			return nil
		}

		if err := p.expectDontAdvance(token.LBRACE); err != nil {
			return err
		}
		braced = true
		if parseBody || !p.skipFunctionBody(fn) {
			p.next()
			if err := p.sourceElements(false); err != nil {
				return err
			}
			p.addFunctionDeclarations(fn)
			if parseBody {
				opts := p.lexerOptions()
				fn.endState = &ast.ResumeState{
					Position:     p.tok.Position(),
					Line:         p.line,
					LinePosition: p.linePosition,
					Edition:      opts.Edition,
					JSX:          opts.JSX,
					Scripting:    opts.Scripting,
				}
			}
		}
		fn.lastToken = p.tok
		return p.expectDontAdvance(token.RBRACE)
	}()
	p.lc.pop(body)
	if err != nil {
		return nil, err
	}

	finish := p.finish
	if braced {
		finish = fn.lastToken.End()
		p.next()
	}

	if p.reparse != nil {
		if data, ok := p.reparse.functions[fn.id()]; ok {
			// Flags found by the earlier parse, such as eval in a skipped
			// nested function.
			fn.setFlag(data.Flags &^ ast.HasNonSimpleParameterList)
			if fn.is(ast.HasNestedEval) {
				body.flags |= ast.NeedsScope
			}
		}
	}
	if !parseBody {
		body.statements = nil
	}
	if err := p.verifyBlockScopedBindings(body.statements); err != nil {
		return nil, err
	}
	return p.block(body, bodyToken, finish, flags), nil
}

// skipFunctionBody moves the cursor from the opening brace of fn's body to
// its closing brace, using the end state recorded by an earlier parse. It
// reports false when the body has to be parsed.
func (p *Parser) skipFunctionBody(fn *functionBuilder) bool {
	data, ok := p.reparse.functions[fn.id()]
	if !ok || data.EndState == nil {
		return false
	}
	state := data.EndState
	opts := p.lexerOptions()
	if state.Edition != opts.Edition || state.JSX != opts.JSX || state.Scripting != opts.Scripting {
		p.log.Debug("not skipping function body lexed in another mode", zap.String("function", fn.name))
		return false
	}
	// The closing brace may already be in the stream.
	last := p.stream.Last()
	if p.k < last && state.Position <= p.stream.Get(last).Position() {
		for k := p.k + 1; k <= last; k++ {
			if tok := p.stream.Get(k); tok.Position() == state.Position && tok.Type() == token.RBRACE {
				fn.endState = state
				p.k = k - 1
				p.next()
				return true
			}
		}
	}

	if p.lexer.Embedded() {
		return false
	}
	p.stream.Reset()
	fn.endState = state
	p.lexer.Resume(state.Position, state.Line, state.LinePosition)
	p.line, p.linePosition = state.Line, state.LinePosition
	p.start = state.Position
	p.typ = token.SEMICOLON
	p.first()
	return true
}

// addFunctionDeclarations prepends the hoisted function declarations of fn
// to the current block. The last one in source order is marked.
func (p *Parser) addFunctionDeclarations(fn *functionBuilder) {
	var marked bool
	for i := len(fn.declarations) - 1; i >= 0; i-- {
		decl := fn.declarations[i]
		if v, ok := decl.(*ast.Var); ok && !marked {
			c := *v
			c.Flags |= ast.IsLastFunctionDeclaration
			decl = &c
			marked = true
			fn.setFlag(ast.HasFunctionDeclarations)
		}
		p.lc.prependStatement(decl)
	}
	fn.declarations = nil
}

// arrowFunction parses the body of an arrow function whose parameters,
// parsed as an expression, are params. The current token is ARROW.
func (p *Parser) arrowFunction(startToken token.Token, line int, params ast.Expression, async bool) (ast.Expression, error) {
	if err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	functionToken := startToken.Recast(token.ARROW)
	name := ast.NewIdent(functionToken, functionToken.Position(), arrowPrefix+strconv.Itoa(line))
	fn := p.createFunction(name, functionToken, ast.ArrowFunction, line, nil)
	fn.setFlag(ast.IsAnonymous)
	if async {
		fn.setFlag(ast.IsAsync)
	}

	p.lc.push(fn)
	defer p.lc.pop(fn)

	parameterBlock := p.newBlock()
	var err error
	fn.parameters, err = p.convertArrowParameters(fn, params, line)
	if err == nil && fn.nonSimpleParameters {
		p.markEvalInArrowParameters(fn, parameterBlock)
	}
	p.lc.pop(parameterBlock)
	if err != nil {
		return nil, err
	}

	body, err := p.functionBody(fn)
	if err != nil {
		return nil, err
	}
	body = p.wrapBodyInParameterBlock(fn, body, parameterBlock)
	if err := p.verifyParameterList(fn); err != nil {
		return nil, err
	}
	return p.function(fn, functionToken, body), nil
}

// convertArrowParameters turns the expression parsed before an arrow into
// parameters.
func (p *Parser) convertArrowParameters(fn *functionBuilder, params ast.Expression, line int) ([]*ast.Ident, error) {
	// The parentheses around the whole list are expected.
	delete(p.parenthesized, params)
	var exprs []ast.Expression
	switch e := params.(type) {
	case nil:
		return nil, nil
	case *ast.Call:
		if !isAsyncCall(e) {
			return nil, p.errorAt(e.FirstToken(), "expected.arrow.parameter")
		}
		exprs = e.Args
	case *ast.Binary:
		if e.Op != token.COMMARIGHT {
			exprs = []ast.Expression{e}
			break
		}
		for car := ast.Expression(e); ; {
			b, ok := car.(*ast.Binary)
			if !ok || b.Op != token.COMMARIGHT || p.parenthesized[car] {
				exprs = append([]ast.Expression{car}, exprs...)
				break
			}
			exprs = append([]ast.Expression{b.Right}, exprs...)
			car = b.Left
		}
	default:
		exprs = []ast.Expression{e}
	}

	parameters := make([]*ast.Ident, 0, len(exprs))
	for i, expr := range exprs {
		if u, ok := expr.(*ast.Unary); ok && u.Op == token.SPREAD_ARGUMENT {
			ident, ok := u.Operand.(*ast.Ident)
			if !ok || i != len(exprs)-1 {
				return nil, p.errorAt(u.FirstToken(), "invalid.arrow.parameter")
			}
			expr = ident.With(ast.RestParameter)
		}
		param, err := p.verifyArrowParameter(fn, expr, i, line)
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, param)
	}
	return parameters, nil
}

// verifyArrowParameter checks one arrow parameter and desugars defaults
// and patterns like formalParameterList does.
func (p *Parser) verifyArrowParameter(fn *functionBuilder, param ast.Expression, index, line int) (*ast.Ident, error) {
	const context = "function parameter"
	if p.parenthesized[param] {
		return nil, p.errorAt(param.FirstToken(), "invalid.arrow.parameter")
	}
	switch e := param.(type) {
	case *ast.Ident:
		if err := p.verifyIdent(e, context); err != nil {
			return nil, err
		}
		fn.addParameterBinding(e)
		if e.Is(ast.RestParameter) {
			fn.nonSimpleParameters = true
		}
		return e, nil

	case *ast.Binary:
		if e.Op != token.ASSIGN {
			break
		}
		paramToken := e.Left.FirstToken()
		switch target := e.Left.(type) {
		case *ast.Ident:
			if err := p.verifyIdent(target, context); err != nil {
				return nil, err
			}
			ident := target.With(ast.DefaultParameter)
			value := defaultParameterValue(paramToken, ident, e.Right, e.End())
			p.appendParameterStatement(fn, line, paramToken, ident, value)
			fn.addParameterBinding(ident)
			fn.nonSimpleParameters = true
			return ident, nil
		default:
			if !p.isDestructuringLhs(target) {
				break
			}
			ident := ast.NewIdent(paramToken, e.End(), fmt.Sprintf("arguments[%d]", index)).With(ast.DestructuredParameter | ast.DefaultParameter)
			if err := p.verifyDestructuringParameter(fn, target, paramToken, line, context); err != nil {
				return nil, err
			}
			value := defaultParameterValue(paramToken, ident, e.Right, e.End())
			p.appendParameterStatement(fn, line, paramToken, target, value)
			return ident, nil
		}

	default:
		if !p.isDestructuringLhs(param) {
			break
		}
		paramToken := param.FirstToken()
		ident := ast.NewIdent(paramToken, param.End(), fmt.Sprintf("arguments[%d]", index)).With(ast.DestructuredParameter)
		if err := p.verifyDestructuringParameter(fn, param, paramToken, line, context); err != nil {
			return nil, err
		}
		p.appendParameterStatement(fn, line, paramToken, param, ident)
		return ident, nil
	}
	return nil, p.errorAt(param.FirstToken(), "invalid.arrow.parameter")
}

// markEvalInArrowParameters flags fn as calling eval when one of its
// parameter initializers does. The call was attributed to the enclosing
// function while the parameters were parsed as an expression.
func (p *Parser) markEvalInArrowParameters(fn *functionBuilder, parameterBlock *blockBuilder) {
	fns := p.lc.functions()
	if len(fns) < 2 || !fns[1].is(ast.HasEval) {
		return
	}
	for _, stmt := range parameterBlock.statements {
		ast.Inspect(stmt, func(n ast.Node) bool {
			if call, ok := n.(*ast.Call); ok {
				if ident, ok := call.Function.(*ast.Ident); ok && ident.Name == evalName {
					fn.setFlag(ast.HasEval)
				}
			}
			return true
		})
	}
}

// markEval flags the current function as calling eval and its enclosing
// functions as containing such a call. Their bodies need a scope.
func (p *Parser) markEval() {
	for i, fn := range p.lc.functions() {
		if i == 0 {
			fn.setFlag(ast.HasEval)
			if fn.isArrow() {
				// eval in an arrow may refer to this and new.target.
				p.markThis()
				p.markNewTarget()
				if outer := p.lc.currentNonArrowFunction(); outer != nil {
					outer.setFlag(ast.HasArrowEval)
				}
			}
		} else {
			fn.setFlag(ast.HasNestedEval)
		}
		if body := p.lc.functionBody(fn); body != nil {
			body.flags |= ast.NeedsScope
		}
		fn.setFlag(ast.HasScopeBlock)
	}
}

// markSuperCall flags the constructor that calls super.
func (p *Parser) markSuperCall() {
	if fn := p.lc.currentNonArrowFunction(); fn != nil {
		fn.setFlag(ast.HasDirectSuper)
	}
}

// markThis flags the functions this refers to: the current one and, for
// arrows, the enclosing ones up to the first ordinary function.
func (p *Parser) markThis() {
	for _, fn := range p.lc.functions() {
		fn.setFlag(ast.UsesThis)
		if !fn.isArrow() {
			return
		}
	}
}

func (p *Parser) markNewTarget() {
	if fn := p.lc.currentNonArrowFunction(); fn != nil && !fn.isProgram() {
		fn.setFlag(ast.UsesNewTarget)
	}
}

func (p *Parser) inGeneratorFunction() bool {
	fn := p.lc.currentFunction()
	return fn != nil && fn.kind == ast.GeneratorFunction
}

// inAsyncFunction reports whether await is an operator here: inside async
// functions and, from ES13, at the top level of modules.
func (p *Parser) inAsyncFunction() bool {
	fn := p.lc.currentFunction()
	if fn == nil {
		return false
	}
	if fn.is(ast.IsAsync) {
		return true
	}
	return fn.isProgram() && fn.kind == ast.ModuleFunction && p.env.AtLeast(config.ES13)
}

// isAsyncFunctionStart reports whether the current token is an "async"
// modifier: of a function when method is false, of a method otherwise.
func (p *Parser) isAsyncFunctionStart(method bool) bool {
	if !p.env.AtLeast(config.ES8) || !p.isIdentName("async") {
		return false
	}
	t, _ := p.peekSignificant(1, false)
	if !method {
		return t == token.FUNCTION
	}
	if t == token.MUL {
		return p.env.AtLeast(config.ES9)
	}
	return p.isPropertyNameType(t)
}

// yieldExpression parses "yield", "yield value" and "yield* value".
func (p *Parser) yieldExpression(noIn bool) (ast.Expression, error) {
	yieldToken := p.tok
	op := token.YIELD
	p.nextOrEOL()
	if p.typ == token.MUL {
		op = token.YIELD_STAR
		yieldToken = yieldToken.Recast(token.YIELD_STAR)
		p.next()
	}

	var expr ast.Expression
	switch p.typ {
	case token.RBRACKET, token.RPAREN, token.RBRACE, token.COMMARIGHT, token.EOL, token.COLON, token.SEMICOLON, token.EOF:
		if op == token.YIELD {
			expr = undefinedLiteral(yieldToken, p.finish)
			if p.typ == token.EOL {
				p.next()
			}
			break
		}
		fallthrough
	default:
		var err error
		if expr, err = p.assignmentExpression(noIn); err != nil {
			return nil, err
		}
	}
	return &ast.Unary{Range: ast.Range{Token: yieldToken, Start: yieldToken.Position(), Finish: expr.End()}, Op: op, Operand: expr}, nil
}

// awaitExpression parses "await operand".
func (p *Parser) awaitExpression() (ast.Expression, error) {
	awaitToken := p.tok.Recast(token.AWAIT)
	p.next()
	expr, err := p.unaryExpression()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.error("expected.operand", p.found())
	}
	return &ast.Unary{Range: ast.NewRange(awaitToken, expr.End()), Op: token.AWAIT, Operand: expr}, nil
}

// pushDefaultName records the target of an assignment that anonymous
// functions in its value are named after.
func (p *Parser) pushDefaultName(target ast.Expression) {
	p.defaultNames = append(p.defaultNames, target)
}

func (p *Parser) popDefaultName() {
	p.defaultNames = p.defaultNames[:len(p.defaultNames)-1]
}

// hideDefaultName pushes a marker hiding the default name below it.
func (p *Parser) hideDefaultName() { p.pushDefaultName(nil) }

// markDefaultNameUsed hides the default name once a function took it, so a
// second function in the same value stays anonymous.
func (p *Parser) markDefaultNameUsed() {
	p.popDefaultName()
	p.hideDefaultName()
}

// defaultFunctionName returns the name for an anonymous function: the
// target it is assigned to when that is a valid identifier, a name
// derived from its line otherwise.
func (p *Parser) defaultFunctionName(line int, allowPropertyFunction bool) string {
	if name := p.defaultName(); isValidIdentifier(name) {
		if allowPropertyFunction {
			p.markDefaultNameUsed()
		}
		return name
	}
	return anonymousPrefix + strconv.Itoa(line)
}

func (p *Parser) defaultName() string {
	if len(p.defaultNames) == 0 {
		return ""
	}
	switch target := p.defaultNames[len(p.defaultNames)-1].(type) {
	case ast.PropertyKey:
		p.markDefaultNameUsed()
		return target.PropertyName()
	case *ast.Access:
		p.markDefaultNameUsed()
		return target.Property
	}
	return ""
}

func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !lexer.IsIdentifierStart(r) || i > 0 && !lexer.IsIdentifierPart(r) {
			return false
		}
	}
	return true
}

// propertyFunction is an accessor or method together with its key.
type propertyFunction struct {
	key      ast.Expression
	function *ast.Function
	computed bool
}

// propertyFunctionName names a function defined by a property.
func (p *Parser) propertyFunctionName(key ast.Expression, line int) string {
	if k, ok := key.(ast.PropertyKey); ok {
		return k.PropertyName()
	}
	return p.defaultFunctionName(line, false)
}

func (p *Parser) propertyGetterFunction(tok token.Token, line int) (*propertyFunction, error) {
	return p.propertyAccessorFunction(true, tok, line, ast.IsMethod)
}

func (p *Parser) propertySetterFunction(tok token.Token, line int) (*propertyFunction, error) {
	return p.propertyAccessorFunction(false, tok, line, ast.IsMethod)
}

// propertyAccessorFunction parses "name() {}" after get or "name(v) {}"
// after set. A setter without a parameter is accepted.
func (p *Parser) propertyAccessorFunction(getter bool, tok token.Token, line int, flags ast.FunctionFlags) (*propertyFunction, error) {
	computed := p.typ == token.LBRACKET
	key, err := p.propertyName()
	if err != nil {
		return nil, err
	}
	kind, prefix := ast.GetterFunction, "get "
	if !getter {
		kind, prefix = ast.SetterFunction, "set "
	}
	name := ast.NewIdent(key.FirstToken(), p.finish, prefix+p.propertyFunctionName(key, line))
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var parameters []*ast.Ident
	if !getter && p.isBindingIdentifier() {
		arg, err := p.bindingIdentifier("setter argument")
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, arg)
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	fn := p.createFunction(name, tok, kind, line, parameters)
	fn.setFlag(flags)
	if computed {
		fn.setFlag(ast.IsAnonymous)
	}
	p.lc.push(fn)
	body, err := p.functionBody(fn)
	p.lc.pop(fn)
	if err != nil {
		return nil, err
	}
	return &propertyFunction{key: key, function: p.function(fn, tok, body), computed: computed}, nil
}

// propertyMethodFunction parses the parameters and body of a method with
// the given key. The current token is LPAREN.
func (p *Parser) propertyMethodFunction(key ast.Expression, tok token.Token, line int, generator, async bool, flags ast.FunctionFlags, computed bool) (*propertyFunction, error) {
	name := ast.NewIdent(key.FirstToken(), p.finish, p.propertyFunctionName(key, line))
	kind := ast.NormalFunction
	if generator {
		kind = ast.GeneratorFunction
	}
	fn := p.createFunction(name, tok, kind, line, nil)
	fn.setFlag(flags)
	if async {
		fn.setFlag(ast.IsAsync)
	}
	if computed {
		fn.setFlag(ast.IsAnonymous)
	}
	p.lc.push(fn)
	body, err := p.functionParametersAndBody(fn, generator, async)
	p.lc.pop(fn)
	if err != nil {
		return nil, err
	}
	if err := p.verifyParameterList(fn); err != nil {
		return nil, err
	}
	return &propertyFunction{key: key, function: p.function(fn, tok, body), computed: computed}, nil
}
