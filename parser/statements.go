package parser

import (
	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/token"
)

// Statement grammar. Every production appends what it parsed to the
// innermost block of the context stack.

// getBlock parses a block. Without braces it parses a statement list up to
// the closing token of the enclosing production.
func (p *Parser) getBlock(needsBraces bool) (*ast.Block, error) {
	blockToken := p.tok
	b := p.newBlock()
	err := func() error {
		if needsBraces {
			if err := p.expect(token.LBRACE); err != nil {
				return err
			}
		}
		return p.statementList()
	}()
	p.lc.pop(b)
	if err != nil {
		return nil, err
	}

	var flags ast.BlockFlags
	realFinish := p.finish
	if needsBraces {
		if err := p.expectDontAdvance(token.RBRACE); err != nil {
			return nil, err
		}
		// The block ends at its own brace, not after trailing comments.
		realFinish = p.tok.End()
		p.next()
	} else {
		flags = ast.IsSynthetic
	}
	if err := p.verifyBlockScopedBindings(b.statements); err != nil {
		return nil, err
	}
	return p.block(b, blockToken, realFinish, flags), nil
}

// getStatement parses the body of a compound statement.
func (p *Parser) getStatement(labelled bool) (*ast.Block, error) {
	if p.typ == token.LBRACE {
		return p.getBlock(true)
	}
	b := p.newBlock()
	err := p.statement(false, false, true, labelled, nil)
	p.lc.pop(b)
	if err != nil {
		return nil, err
	}
	if err := p.verifyBlockScopedBindings(b.statements); err != nil {
		return nil, err
	}
	return p.block(b, b.tok, p.finish, ast.IsSynthetic), nil
}

func (p *Parser) caseStatementList() ([]ast.Statement, error) {
	b := p.newBlock()
	err := p.statementList()
	p.lc.pop(b)
	return b.statements, err
}

func (p *Parser) statementList() error {
	for {
		switch p.typ {
		case token.EOF, token.CASE, token.DEFAULT, token.RBRACE:
			return nil
		}
		if err := p.statement(false, false, false, false, nil); err != nil {
			return err
		}
	}
}

// statement dispatches on the current token. topLevel is set for the
// statements of a function body, singleStatement for the body of a
// compound statement.
func (p *Parser) statement(topLevel, allowPropertyFunction, singleStatement, labelled bool, decorators []ast.Expression) error {
	if len(decorators) > 0 && p.typ != token.CLASS {
		return p.expected(token.CLASS.NameOrType())
	}

	switch p.typ {
	case token.LBRACE:
		return p.blockStatement()
	case token.VAR:
		_, err := p.variableDeclarationList(token.VAR, true, -1)
		return err
	case token.SEMICOLON:
		p.emptyStatement()
		return nil
	case token.IF:
		return p.ifStatement()
	case token.FOR:
		return p.forStatement()
	case token.WHILE:
		return p.whileStatement()
	case token.DO:
		return p.doStatement()
	case token.CONTINUE:
		return p.continueStatement()
	case token.BREAK:
		return p.breakStatement()
	case token.RETURN:
		return p.returnStatement()
	case token.WITH:
		return p.withStatement()
	case token.SWITCH:
		return p.switchStatement()
	case token.THROW:
		return p.throwStatement()
	case token.TRY:
		return p.tryStatement()
	case token.DEBUGGER:
		return p.debuggerStatement()
	case token.RPAREN, token.RBRACKET, token.EOF:
		return p.expect(token.SEMICOLON)
	case token.FUNCTION:
		// Labelled function declarations are a legacy exception.
		if singleStatement && (!labelled || p.strict) {
			return p.errorAt(p.tok, "expected.stmt", "function declaration")
		}
		_, err := p.functionExpression(true, topLevel || labelled, false)
		return err
	}

	switch {
	case p.env.AtLeast(config.ES6) && (p.typ == token.LET && p.lookaheadIsLetDeclaration(false) || p.typ == token.CONST):
		if singleStatement {
			return p.errorAt(p.tok, "expected.stmt", p.typ.Name()+" declaration")
		}
		_, err := p.variableDeclarationList(p.typ, true, -1)
		return err
	case p.env.AtLeast(config.ES6) && (p.typ == token.CLASS || p.env.AtLeast(config.ES7) && p.typ == token.AT):
		if singleStatement {
			return p.errorAt(p.tok, "expected.stmt", "class declaration")
		}
		_, err := p.classDeclaration(false, decorators)
		return err
	case p.isAsyncFunctionStart(false):
		p.nextOrEOL()
		_, err := p.functionExpression(true, topLevel || labelled, true)
		return err
	case p.env.ConstAsVar && p.typ == token.CONST:
		_, err := p.variableDeclarationList(token.VAR, true, -1)
		return err
	}

	if p.isBindingIdentifier() {
		if p.peek(1) == token.COLON && (p.typ != token.YIELD || !p.inGeneratorFunction()) && (!p.isAwait(p.tok) || !p.inAsyncFunction()) {
			return p.labelStatement()
		}
		if allowPropertyFunction && p.typ == token.IDENT {
			switch name := p.stringValue(p.tok); name {
			case "get", "set":
				return p.propertyFunctionStatement(name == "get")
			}
		}
	}
	return p.expressionStatement()
}

// propertyFunctionStatement parses a top level accessor definition.
func (p *Parser) propertyFunctionStatement(getter bool) error {
	propertyToken, propertyLine := p.tok, p.line
	p.next()
	var (
		prop *propertyFunction
		err  error
	)
	if getter {
		prop, err = p.propertyGetterFunction(propertyToken, propertyLine)
	} else {
		prop, err = p.propertySetterFunction(propertyToken, propertyLine)
	}
	if err != nil {
		return err
	}
	fn := p.lc.currentFunction()
	f := prop.function
	fn.declarations = append(fn.declarations, &ast.ExpressionStatement{
		StmtRange:  ast.NewStmtRange(f.LineNumber, f.Token, p.finish),
		Expression: f,
	})
	return nil
}

func (p *Parser) blockStatement() error {
	line := p.line
	b, err := p.getBlock(true)
	if err != nil {
		return err
	}
	p.lc.appendStatement(ast.NewBlockStatement(line, b))
	return nil
}

// verifyIdent checks a binding name against the reserved words.
func (p *Parser) verifyIdent(ident *ast.Ident, context string) error {
	if err := p.verifyStrictIdent(ident, context); err != nil {
		return err
	}
	if p.env.AtLeast(config.ES6) {
		typ := token.LookupKeyword(ident.Name)
		if typ != token.IDENT && typ.Kind() != token.FutureStrict {
			return p.expected(token.IDENT.NameOrType())
		}
		if p.isModule && ident.Name == "await" {
			return p.errorAt(ident.Token, "strict.name", ident.Name, context)
		}
	}
	return nil
}

func (p *Parser) verifyStrictIdent(ident *ast.Ident, context string) error {
	if !p.strict {
		return nil
	}
	switch ident.Name {
	case evalName, argumentsName:
		return p.errorAt(ident.Token, "strict.name", ident.Name, context)
	}
	if ident.Is(ast.FutureStrictName) {
		return p.errorAt(ident.Token, "strict.name", ident.Name, context)
	}
	return nil
}

// verifyBlockScopedBindings rejects a let or const binding whose name is
// already bound in the same block.
func (p *Parser) verifyBlockScopedBindings(statements []ast.Statement) error {
	bound := make(map[string]bool)
	for _, s := range statements {
		v, ok := s.(*ast.Var)
		if !ok {
			continue
		}
		if v.IsBlockScoped() && bound[v.Name.Name] {
			return p.errorAt(v.Token, "redeclare.variable", v.Name.Name)
		}
		bound[v.Name.Name] = true
	}
	return nil
}

// forDeclarations collects what a declaration list in a for head needs
// checked once the kind of loop is known.
type forDeclarations struct {
	missingAssignment ast.Expression
	initializerToken  token.Token
	init              ast.Expression
	firstBinding      ast.Expression
	secondBinding     ast.Expression
}

func (f *forDeclarations) recordMissingAssignment(binding ast.Expression) {
	if f.missingAssignment == nil {
		f.missingAssignment = binding
	}
}

func (f *forDeclarations) recordInitializer(tok token.Token) {
	if f.initializerToken == 0 {
		f.initializerToken = tok
	}
}

func (f *forDeclarations) addBinding(binding ast.Expression) {
	switch {
	case f.firstBinding == nil:
		f.firstBinding = binding
	case f.secondBinding == nil:
		f.secondBinding = binding
	}
}

func (f *forDeclarations) addAssignment(assignment ast.Expression) {
	if f.init == nil {
		f.init = assignment
		return
	}
	f.init = &ast.Binary{
		Range: ast.Range{Token: f.init.FirstToken().Recast(token.COMMARIGHT), Start: f.init.Pos(), Finish: assignment.End()},
		Op:    token.COMMARIGHT,
		Left:  f.init,
		Right: assignment,
	}
}

// variableDeclarationList parses var, let and const declarations. In a for
// head (isStatement unset) the checks that depend on the loop kind are
// deferred to the caller through the returned forDeclarations.
func (p *Parser) variableDeclarationList(varType token.Type, isStatement bool, sourceOrder int) (*forDeclarations, error) {
	p.next()

	var varFlags ast.VarFlags
	switch varType {
	case token.LET:
		varFlags |= ast.IsLet
	case token.CONST:
		varFlags |= ast.IsConst
	}

	var forResult *forDeclarations
	if !isStatement {
		forResult = &forDeclarations{}
	}

	for {
		varLine := p.line
		varToken := p.tok.Recast(varType)

		if p.typ == token.YIELD && p.inGeneratorFunction() {
			return nil, p.expect(token.IDENT)
		}

		const context = "variable name"
		binding, err := p.bindingIdentifierOrPattern(context)
		if err != nil {
			return nil, err
		}
		ident, isIdent := binding.(*ast.Ident)
		if !isIdent {
			flags := varFlags | ast.IsDestructuring
			err := p.verifyDestructuringBindingPattern(binding, func(id *ast.Ident) error {
				if err := p.verifyIdent(id, context); err != nil {
					return err
				}
				p.lc.appendStatement(&ast.Var{
					StmtRange:   ast.StmtRange{Range: ast.Range{Token: varToken, Start: varToken.Position(), Finish: id.End()}, LineNumber: varLine},
					Name:        id.With(ast.InitializedHere),
					Flags:       flags,
					SourceOrder: sourceOrder,
				})
				return nil
			})
			if err != nil {
				return nil, err
			}
		}

		var init ast.Expression
		switch {
		case p.typ == token.ASSIGN:
			if !isStatement {
				forResult.recordInitializer(varToken)
			}
			p.next()
			if isIdent {
				p.pushDefaultName(ident)
			}
			init, err = p.assignmentExpression(!isStatement)
			if isIdent {
				p.popDefaultName()
			}
			if err != nil {
				return nil, err
			}
		case isStatement && !isIdent:
			return nil, p.errorAt(p.tok, "missing.destructuring.assignment")
		case isStatement && varType == token.CONST:
			return nil, p.error("missing.const.assignment", ident.Name)
		}

		if isIdent {
			if !isStatement {
				if ident.Name == "let" {
					return nil, p.error("let.binding.for")
				}
				if init == nil && varType == token.CONST {
					forResult.recordMissingAssignment(binding)
				}
				forResult.addBinding(binding)
			}
			p.lc.appendStatement(&ast.Var{
				StmtRange:   ast.StmtRange{Range: ast.Range{Token: varToken, Start: varToken.Position(), Finish: p.finish}, LineNumber: varLine},
				Name:        ident.With(ast.InitializedHere),
				Init:        init,
				Flags:       varFlags,
				SourceOrder: sourceOrder,
			})
		} else {
			switch {
			case init != nil:
				assignment, err := p.verifyAssignment(varToken.Recast(token.ASSIGN), binding, init)
				if err != nil {
					return nil, err
				}
				if isStatement {
					p.lc.appendStatement(&ast.ExpressionStatement{
						StmtRange:  ast.StmtRange{Range: ast.Range{Token: assignment.FirstToken(), Start: assignment.Pos(), Finish: p.finish}, LineNumber: varLine},
						Expression: assignment,
					})
				} else {
					forResult.addAssignment(assignment)
					forResult.addBinding(assignment)
				}
			case !isStatement:
				forResult.recordMissingAssignment(binding)
				forResult.addBinding(binding)
			}
		}

		if p.typ != token.COMMARIGHT {
			break
		}
		p.next()
	}

	if isStatement {
		if err := p.endOfLine(); err != nil {
			return nil, err
		}
	}
	return forResult, nil
}

// bindingIdentifier consumes an identifier and verifies it can be bound.
func (p *Parser) bindingIdentifier(context string) (*ast.Ident, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.verifyIdent(name, context); err != nil {
		return nil, err
	}
	return name, nil
}

func (p *Parser) bindingPattern() (ast.Expression, error) {
	switch p.typ {
	case token.LBRACKET:
		return p.arrayLiteral()
	case token.LBRACE:
		return p.objectLiteral()
	}
	return nil, p.error("expected.binding", p.found())
}

func (p *Parser) bindingIdentifierOrPattern(context string) (ast.Expression, error) {
	if p.isBindingIdentifier() || !p.env.AtLeast(config.ES6) {
		id, err := p.bindingIdentifier(context)
		if err != nil {
			return nil, err
		}
		return id, nil
	}
	return p.bindingPattern()
}

func (p *Parser) emptyStatement() {
	if p.env.EmptyStatements {
		p.lc.appendStatement(&ast.Empty{StmtRange: ast.NewStmtRange(p.line, p.tok, p.tok.End())})
	}
	p.next()
}

func (p *Parser) expressionStatement() error {
	expressionLine, expressionToken := p.line, p.tok
	expr, err := p.expression()
	if err != nil {
		return err
	}
	if expr == nil {
		return p.expected("expression")
	}
	if err := p.endOfLine(); err != nil {
		return err
	}
	p.lc.appendStatement(&ast.ExpressionStatement{
		StmtRange:  ast.NewStmtRange(expressionLine, expressionToken, p.finish),
		Expression: expr,
	})
	return nil
}

func (p *Parser) ifStatement() error {
	ifLine, ifToken := p.line, p.tok
	p.next()
	if err := p.expect(token.LPAREN); err != nil {
		return err
	}
	test, err := p.expression()
	if err != nil {
		return err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return err
	}
	pass, err := p.getStatement(false)
	if err != nil {
		return err
	}
	var fail *ast.Block
	finish := pass.End()
	if p.typ == token.ELSE {
		p.next()
		if fail, err = p.getStatement(false); err != nil {
			return err
		}
		finish = fail.End()
	}
	p.lc.appendStatement(&ast.If{
		StmtRange: ast.NewStmtRange(ifLine, ifToken, finish),
		Test:      test,
		Pass:      pass,
		Fail:      fail,
	})
	return nil
}

// forStatement parses every form of for loop. From ES6 on the loop is
// wrapped in a block that holds the declarations of its head.
func (p *Parser) forStatement() error {
	forToken, forLine := p.tok, p.line
	forStart := forToken.Position()

	var outer *blockBuilder
	if p.env.AtLeast(config.ES6) {
		outer = p.newBlock()
	}
	loop := &loopBuilder{tok: forToken}
	p.lc.push(loop)
	node, err := p.forHead(forLine, forToken, forStart)
	p.lc.pop(loop)
	if outer != nil {
		p.lc.pop(outer)
	}
	if err != nil {
		return err
	}

	if outer == nil {
		p.lc.appendStatement(node)
		return nil
	}
	outer.append(node)
	if err := p.verifyBlockScopedBindings(outer.statements); err != nil {
		return err
	}
	p.lc.appendStatement(ast.NewBlockStatement(forLine, p.block(outer, outer.tok, node.Body.End(), 0)))
	return nil
}

func (p *Parser) forHead(forLine int, forToken token.Token, forStart int) (*ast.For, error) {
	var (
		init         ast.Expression
		test, modify *ast.JoinPredecessor
		decls        *forDeclarations
		varType      token.Type
		flags        ast.ForFlags
		err          error
	)
	p.next()

	if p.env.SyntaxExtensions && p.isIdentName("each") {
		flags |= ast.IsForEach
		p.next()
	}
	if p.env.AtLeast(config.ES9) && p.isAwait(p.tok) {
		if !p.inAsyncFunction() {
			return nil, p.error("invalid.for.await.of")
		}
		flags |= ast.IsForAwaitOf
		p.next()
	}
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	switch {
	case p.typ == token.VAR:
		varType = token.VAR
		decls, err = p.variableDeclarationList(varType, false, forStart)
	case p.typ == token.SEMICOLON:
	case p.env.AtLeast(config.ES6) && (p.typ == token.LET && p.lookaheadIsLetDeclaration(true) || p.typ == token.CONST):
		if p.typ == token.LET {
			flags |= ast.PerIterationScope
		}
		varType = p.typ
		decls, err = p.variableDeclarationList(varType, false, forStart)
	case p.env.ConstAsVar && p.typ == token.CONST:
		varType = token.VAR
		decls, err = p.variableDeclarationList(varType, false, forStart)
	default:
		init, err = p.expressionNoIn(true)
	}
	if err != nil {
		return nil, err
	}

	isForOf := p.env.AtLeast(config.ES6) && p.isIdentName("of")
	switch {
	case p.typ == token.SEMICOLON:
		if decls != nil {
			init = decls.init
			if m := decls.missingAssignment; m != nil {
				if id, ok := m.(*ast.Ident); ok {
					return nil, p.error("missing.const.assignment", id.Name)
				}
				return nil, p.errorAt(m.FirstToken(), "missing.destructuring.assignment")
			}
		}
		if flags&ast.IsForEach != 0 {
			return nil, p.errorAt(p.tok, "for.each.without.in")
		}
		p.next()
		if p.typ != token.SEMICOLON {
			if test, err = p.joinPredecessorExpression(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		if p.typ != token.RPAREN {
			if modify, err = p.joinPredecessorExpression(); err != nil {
				return nil, err
			}
		}

	case isForOf || p.typ == token.IN:
		kind := "for-in"
		if isForOf {
			kind = "for-of"
			flags |= ast.IsForOf
		} else {
			flags |= ast.IsForIn
		}
		test = ast.NewJoinPredecessor(nil)
		if decls != nil {
			if decls.secondBinding != nil {
				return nil, p.errorAt(decls.secondBinding.FirstToken(), "many.vars.in.for.in.loop", kind)
			}
			// A legacy "for (var i = x in o)" is tolerated in sloppy code.
			if decls.initializerToken != 0 && (p.strict || p.typ != token.IN || varType != token.VAR || decls.init != nil) {
				return nil, p.errorAt(decls.initializerToken, "for.in.loop.initializer", kind)
			}
			init = decls.firstBinding
			if varType == token.CONST {
				flags |= ast.PerIterationScope
			}
		} else {
			context := "for-in iterator"
			if isForOf {
				context = "for-of iterator"
			}
			ok, err := p.checkValidLValue(init, context)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, p.errorAt(init.FirstToken(), "not.lvalue.for.in.loop", kind)
			}
		}
		p.next()
		if isForOf {
			expr, err := p.assignmentExpression(false)
			if err != nil {
				return nil, err
			}
			modify = ast.NewJoinPredecessor(expr)
		} else if modify, err = p.joinPredecessorExpression(); err != nil {
			return nil, err
		}

	default:
		return nil, p.expect(token.SEMICOLON)
	}

	if flags&ast.IsForAwaitOf != 0 && flags&ast.IsForOf == 0 {
		return nil, p.errorAt(forToken, "invalid.for.await.of")
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.getStatement(false)
	if err != nil {
		return nil, err
	}
	return &ast.For{
		StmtRange: ast.NewStmtRange(forLine, forToken, body.End()),
		Init:      init,
		Test:      test,
		Modify:    modify,
		Body:      body,
		Flags:     flags,
	}, nil
}

// checkValidLValue reports whether init can be assigned to. Destructuring
// patterns are verified on the way.
func (p *Parser) checkValidLValue(init ast.Expression, context string) (bool, error) {
	switch e := init.(type) {
	case *ast.Ident:
		if !checkIdentLValue(e) {
			return false, nil
		}
		return true, p.verifyIdent(e, context)
	case *ast.Access, *ast.Index:
		return true, nil
	}
	if p.isDestructuringLhs(init) {
		return true, p.verifyDestructuringAssignmentPattern(init, context)
	}
	return false, nil
}

// lookaheadIsLetDeclaration reports whether let starts a declaration
// rather than being used as an identifier.
func (p *Parser) lookaheadIsLetDeclaration(ofContextual bool) bool {
	for i := 1; ; i++ {
		switch t := p.peek(i); t {
		case token.EOL, token.COMMENT:
			continue
		case token.IDENT:
			if ofContextual && p.env.AtLeast(config.ES6) && p.stringValue(p.fill(p.k+i)) == "of" {
				return false
			}
			return true
		case token.LBRACKET, token.LBRACE:
			return true
		default:
			return !p.strict && t.Kind() == token.FutureStrict
		}
	}
}

func (p *Parser) whileStatement() error {
	whileToken, whileLine := p.tok, p.line
	p.next()
	loop := &loopBuilder{tok: whileToken}
	p.lc.push(loop)
	test, body, err := func() (*ast.JoinPredecessor, *ast.Block, error) {
		if err := p.expect(token.LPAREN); err != nil {
			return nil, nil, err
		}
		test, err := p.joinPredecessorExpression()
		if err != nil {
			return nil, nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, nil, err
		}
		body, err := p.getStatement(false)
		return test, body, err
	}()
	p.lc.pop(loop)
	if err != nil {
		return err
	}
	p.lc.appendStatement(&ast.While{
		StmtRange: ast.NewStmtRange(whileLine, whileToken, body.End()),
		Test:      test,
		Body:      body,
	})
	return nil
}

func (p *Parser) doStatement() error {
	doToken := p.tok
	doLine := 0
	p.next()
	loop := &loopBuilder{tok: doToken}
	p.lc.push(loop)
	test, body, err := func() (*ast.JoinPredecessor, *ast.Block, error) {
		body, err := p.getStatement(false)
		if err != nil {
			return nil, nil, err
		}
		if err := p.expect(token.WHILE); err != nil {
			return nil, nil, err
		}
		if err := p.expect(token.LPAREN); err != nil {
			return nil, nil, err
		}
		doLine = p.line
		test, err := p.joinPredecessorExpression()
		if err != nil {
			return nil, nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, nil, err
		}
		if p.typ == token.SEMICOLON {
			if err := p.endOfLine(); err != nil {
				return nil, nil, err
			}
		}
		return test, body, nil
	}()
	p.lc.pop(loop)
	if err != nil {
		return err
	}
	p.lc.appendStatement(&ast.While{
		StmtRange: ast.NewStmtRange(doLine, doToken, p.finish),
		Test:      test,
		Body:      body,
		DoWhile:   true,
	})
	return nil
}

// jumpLabel reads the optional label of a break or continue.
func (p *Parser) jumpLabel() (string, error) {
	switch p.typ {
	case token.RBRACE, token.SEMICOLON, token.EOL, token.EOF:
		return "", nil
	}
	ident, err := p.ident()
	if err != nil {
		return "", err
	}
	if label, _ := p.lc.findLabel(ident.Name); label == nil {
		return "", p.errorAt(ident.Token, "undefined.label", ident.Name)
	}
	return ident.Name, nil
}

func (p *Parser) continueStatement() error {
	continueLine, continueToken := p.line, p.tok
	p.nextOrEOL()
	label, err := p.jumpLabel()
	if err != nil {
		return err
	}
	if p.lc.continueTo(label) == nil {
		return p.errorAt(continueToken, "illegal.continue.stmt")
	}
	if err := p.endOfLine(); err != nil {
		return err
	}
	p.lc.appendStatement(&ast.Continue{StmtRange: ast.NewStmtRange(continueLine, continueToken, p.finish), Label: label})
	return nil
}

func (p *Parser) breakStatement() error {
	breakLine, breakToken := p.line, p.tok
	p.nextOrEOL()
	label, err := p.jumpLabel()
	if err != nil {
		return err
	}
	if p.lc.breakable(label) == nil {
		return p.errorAt(breakToken, "illegal.break.stmt")
	}
	if err := p.endOfLine(); err != nil {
		return err
	}
	p.lc.appendStatement(&ast.Break{StmtRange: ast.NewStmtRange(breakLine, breakToken, p.finish), Label: label})
	return nil
}

func (p *Parser) returnStatement() error {
	switch p.lc.currentFunction().kind {
	case ast.ScriptFunction, ast.ModuleFunction:
		return p.error("invalid.return")
	}
	returnLine, returnToken := p.line, p.tok
	p.nextOrEOL()

	var expr ast.Expression
	switch p.typ {
	case token.RBRACE, token.SEMICOLON, token.EOL, token.EOF:
	default:
		var err error
		if expr, err = p.expression(); err != nil {
			return err
		}
	}
	if err := p.endOfLine(); err != nil {
		return err
	}
	p.lc.appendStatement(&ast.Return{StmtRange: ast.NewStmtRange(returnLine, returnToken, p.finish), Expression: expr})
	return nil
}

func (p *Parser) withStatement() error {
	withLine, withToken := p.line, p.tok
	p.next()
	if p.strict {
		return p.errorAt(withToken, "strict.no.with")
	}
	if err := p.expect(token.LPAREN); err != nil {
		return err
	}
	expr, err := p.expression()
	if err != nil {
		return err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return err
	}
	body, err := p.getStatement(false)
	if err != nil {
		return err
	}
	p.lc.appendStatement(&ast.With{StmtRange: ast.NewStmtRange(withLine, withToken, p.finish), Expression: expr, Body: body})
	return nil
}

// switchStatement parses a switch. The statement is wrapped in a synthetic
// block that scopes the declarations of its cases.
func (p *Parser) switchStatement() error {
	switchLine, switchToken := p.line, p.tok
	switchBlock := p.newBlock()
	p.next()
	sw := &switchBuilder{tok: switchToken}
	p.lc.push(sw)

	node := &ast.Switch{DefaultCase: -1}
	err := func() error {
		if err := p.expect(token.LPAREN); err != nil {
			return err
		}
		expr, err := p.expression()
		if err != nil {
			return err
		}
		node.Expression = expr
		if err := p.expect(token.RPAREN); err != nil {
			return err
		}
		if err := p.expect(token.LBRACE); err != nil {
			return err
		}

		for p.typ != token.RBRACE {
			caseToken := p.tok
			var test ast.Expression
			switch p.typ {
			case token.CASE:
				p.next()
				if test, err = p.expression(); err != nil {
					return err
				}
			case token.DEFAULT:
				if node.DefaultCase >= 0 {
					return p.error("multiple.defaults")
				}
				p.next()
			default:
				return p.expect(token.CASE)
			}
			if err := p.expect(token.COLON); err != nil {
				return err
			}
			statements, err := p.caseStatementList()
			if err != nil {
				return err
			}
			if test == nil {
				node.DefaultCase = len(node.Cases)
			}
			node.Cases = append(node.Cases, &ast.Case{
				Range: ast.NewRange(caseToken, p.finish),
				Test:  test,
				Body: &ast.Block{
					Range:      ast.NewRange(caseToken, p.finish),
					Statements: statements,
					Flags:      ast.IsSynthetic,
				},
			})
		}
		// All cases share one scope.
		var declarations []ast.Statement
		for _, c := range node.Cases {
			declarations = append(declarations, c.Body.Statements...)
		}
		if err := p.verifyBlockScopedBindings(declarations); err != nil {
			return err
		}
		p.next()
		return nil
	}()
	p.lc.pop(sw)
	p.lc.pop(switchBlock)
	if err != nil {
		return err
	}

	node.StmtRange = ast.NewStmtRange(switchLine, switchToken, p.finish)
	switchBlock.append(node)
	p.lc.appendStatement(ast.NewBlockStatement(switchLine, p.block(switchBlock, switchToken, p.finish, ast.IsSynthetic|ast.IsSwitchBlock)))
	return nil
}

func (p *Parser) labelStatement() error {
	labelToken := p.tok
	ident, err := p.ident()
	if err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	if label, _ := p.lc.findLabel(ident.Name); label != nil {
		return p.errorAt(labelToken, "duplicate.label", ident.Name)
	}

	label := &labelBuilder{name: ident.Name}
	p.lc.push(label)
	body, err := p.getStatement(true)
	p.lc.pop(label)
	if err != nil {
		return err
	}
	p.lc.appendStatement(&ast.Label{StmtRange: ast.NewStmtRange(p.line, labelToken, p.finish), Name: ident.Name, Body: body})
	return nil
}

func (p *Parser) throwStatement() error {
	throwLine, throwToken := p.line, p.tok
	p.nextOrEOL()

	var expr ast.Expression
	switch p.typ {
	case token.RBRACE, token.SEMICOLON, token.EOL:
	default:
		var err error
		if expr, err = p.expression(); err != nil {
			return err
		}
	}
	if expr == nil {
		return p.error("expected.operand", p.typ.NameOrType())
	}
	if err := p.endOfLine(); err != nil {
		return err
	}
	p.lc.appendStatement(&ast.Throw{StmtRange: ast.NewStmtRange(throwLine, throwToken, p.finish), Expression: expr})
	return nil
}

// tryStatement parses try, catch and finally. The statement is wrapped in
// a block that a labelled break can target.
func (p *Parser) tryStatement() error {
	tryLine, tryToken := p.line, p.tok
	p.next()
	startLine := p.line
	outer := p.newBlock()

	err := func() error {
		body, err := p.getBlock(true)
		if err != nil {
			return err
		}

		var catches []*ast.Block
		for p.typ == token.CATCH {
			catchBlock, conditional, err := p.catchClause()
			if err != nil {
				return err
			}
			catches = append(catches, catchBlock)
			// An unconditional catch ends the list.
			if !conditional {
				break
			}
		}

		var finally *ast.Block
		if p.typ == token.FINALLY {
			p.next()
			if finally, err = p.getBlock(true); err != nil {
				return err
			}
		}
		if len(catches) == 0 && finally == nil {
			return p.errorAt(tryToken, "missing.catch.or.finally")
		}
		p.lc.appendStatement(&ast.Try{
			StmtRange: ast.NewStmtRange(tryLine, tryToken, p.finish),
			Body:      body,
			Catches:   catches,
			Finally:   finally,
		})
		return nil
	}()
	p.lc.pop(outer)
	if err != nil {
		return err
	}

	if err := p.verifyBlockScopedBindings(outer.statements); err != nil {
		return err
	}
	p.lc.appendStatement(ast.NewBlockStatement(startLine, p.block(outer, tryToken, p.finish, ast.IsSynthetic)))
	return nil
}

// catchClause parses one catch clause into a synthetic block holding the
// Catch statement and the declarations of a destructured parameter.
func (p *Parser) catchClause() (*ast.Block, bool, error) {
	catchLine, catchToken := p.line, p.tok
	p.next()
	if !p.env.AtLeast(config.ES10) {
		if err := p.expectDontAdvance(token.LPAREN); err != nil {
			return nil, false, err
		}
	}

	catchBlock := p.newBlock()
	var condition ast.Expression
	err := func() error {
		var param ast.Expression
		if p.typ == token.LPAREN {
			p.next()
			const context = "catch argument"
			binding, err := p.bindingIdentifierOrPattern(context)
			if err != nil {
				return err
			}
			if _, ok := binding.(*ast.Ident); !ok {
				err := p.verifyDestructuringBindingPattern(binding, func(id *ast.Ident) error {
					if err := p.verifyIdent(id, context); err != nil {
						return err
					}
					p.lc.appendStatement(&ast.Var{
						StmtRange: ast.StmtRange{Range: ast.Range{Token: catchToken.Recast(token.LET), Start: catchToken.Position(), Finish: id.End()}, LineNumber: catchLine},
						Name:      id.With(ast.InitializedHere),
						Flags:     ast.IsLet | ast.IsDestructuring,
					})
					return nil
				})
				if err != nil {
					return err
				}
			}
			param = binding
			if p.env.SyntaxExtensions && p.typ == token.IF {
				p.next()
				if condition, err = p.expression(); err != nil {
					return err
				}
			}
			if err := p.expect(token.RPAREN); err != nil {
				return err
			}
		}

		body, err := p.getBlock(true)
		if err != nil {
			return err
		}
		p.lc.appendStatement(&ast.Catch{
			StmtRange: ast.NewStmtRange(catchLine, catchToken, p.finish),
			Parameter: param,
			Condition: condition,
			Body:      body,
		})
		return nil
	}()
	p.lc.pop(catchBlock)
	if err != nil {
		return nil, false, err
	}
	if err := p.verifyBlockScopedBindings(catchBlock.statements); err != nil {
		return nil, false, err
	}
	return p.block(catchBlock, catchBlock.tok, p.finish, ast.IsSynthetic), condition != nil, nil
}

func (p *Parser) debuggerStatement() error {
	debuggerLine, debuggerToken := p.line, p.tok
	p.next()
	if err := p.endOfLine(); err != nil {
		return err
	}
	p.lc.appendStatement(&ast.Debugger{StmtRange: ast.NewStmtRange(debuggerLine, debuggerToken, p.finish)})
	return nil
}

// endOfLine consumes the end of a statement: a semicolon, a line break, or
// nothing before a closing token.
func (p *Parser) endOfLine() error {
	switch p.typ {
	case token.SEMICOLON, token.EOL:
		p.next()
	case token.RPAREN, token.RBRACKET, token.RBRACE, token.EOF:
	default:
		if p.last != token.EOL {
			return p.expect(token.SEMICOLON)
		}
	}
	return nil
}
