// Package parser implements a recursive descent parser for JavaScript.
//
// A Parser reads one source and produces an *ast.Function for the program
// or module. Syntax errors inside a statement list are recorded in the
// error manager and parsing resumes at the next statement; any other error
// aborts the parse.
package parser

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/lexer"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

const (
	programName     = ":program"
	nestedSeparator = "#"
	evalName        = "eval"
	argumentsName   = "arguments"
)

// Option configures a Parser.
type Option func(*Parser)

// WithReparse makes the parser skip the bodies of functions recorded in r,
// except for the target function and the functions enclosing it.
func WithReparse(r *Reparse) Option {
	return func(p *Parser) { p.reparse = r }
}

// WithPropertyFunctions allows "get name() {}" and "set name(v) {}" as the
// first statement of a script, for sources that define a single accessor.
func WithPropertyFunctions() Option {
	return func(p *Parser) { p.allowPropertyFunction = true }
}

// Parser holds the state of one parse. A Parser must not be reused after
// one of its entry points returned.
type Parser struct {
	src  *source.Source
	env  *config.Environment
	errs *errors.Manager
	log  *zap.Logger

	lexer  *lexer.Lexer
	stream *lexer.TokenStream
	names  *Interner

	// Cursor state.
	k             int
	tok           token.Token
	typ           token.Type
	last          token.Type
	start         int
	finish        int
	line          int
	linePosition  int
	previousToken token.Token

	strict                bool
	isModule              bool
	scripting             bool
	allowPropertyFunction bool

	lc        parserContext
	namespace *Namespace
	reparse   *Reparse

	// defaultNames holds the targets of enclosing assignments, used to name
	// anonymous functions.
	defaultNames []ast.Expression
	// parenthesized records expressions written inside parentheses.
	parenthesized map[ast.Expression]bool
	// coverInitializedNames counts "{a = 1}" properties seen so far.
	coverInitializedNames int
}

// New creates a parser for src. Diagnostics are recorded in errs.
func New(src *source.Source, env *config.Environment, errs *errors.Manager, opts ...Option) *Parser {
	if env == nil {
		env = config.New()
	}
	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Parser{
		src:           src,
		env:           env,
		errs:          errs,
		log:           logger.With(zap.String("source", src.Name())),
		names:         NewInterner(256),
		strict:        env.Strict,
		scripting:     env.Scripting && env.SyntaxExtensions,
		namespace:     NewNamespace(nil),
		parenthesized: make(map[ast.Expression]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) lexerOptions() lexer.Options {
	return lexer.Options{
		Edition:             p.env.Edition,
		Scripting:           p.scripting,
		Shebang:             p.env.Shebang && p.env.SyntaxExtensions,
		JSX:                 p.env.JSX,
		PauseOnFunctionBody: p.reparse != nil,
	}
}

// begin sets up a fresh lexer and reads the first token.
func (p *Parser) begin() {
	p.stream = lexer.NewTokenStream()
	p.lexer = lexer.New(p.src, p.stream, p.lexerOptions())
	p.line = 0
	p.first()
}

// run executes an entry point. Errors that abort the parse are recorded
// unless the error manager already holds them; panics become internal
// errors.
func (p *Parser) run(production func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Debug("internal parser failure", zap.Any("panic", r))
			err = p.errs.Internal(r)
		}
	}()
	p.begin()
	if err := production(); err != nil {
		return p.abort(err)
	}
	return nil
}

func (p *Parser) abort(err error) error {
	if _, ok := err.(*errors.TooManyErrorsError); ok {
		return err
	}
	if slices.Contains(p.errs.Errors(), err) {
		return err
	}
	if _, ok := err.(*errors.ParserError); !ok {
		err = fmt.Errorf("parse %s: %w", p.src.Name(), err)
	}
	if rerr := p.errs.Error(err); rerr != nil {
		if _, ok := rerr.(*errors.TooManyErrorsError); ok {
			return rerr
		}
	}
	return err
}

// Parse parses the source as a script. Syntax errors the parser recovered
// from are recorded in the error manager only; the returned error is set
// when the parse was aborted, in which case the tree is nil.
func (p *Parser) Parse() (*ast.Function, error) {
	var fn *ast.Function
	err := p.run(func() error {
		var err error
		fn, err = p.program(programName, ast.ScriptFunction)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// ParseModule parses the source as a module. The root function carries the
// module's import and export entries.
func (p *Parser) ParseModule() (*ast.Function, error) {
	var fn *ast.Function
	p.strict = true
	p.isModule = true
	err := p.run(func() error {
		var err error
		fn, err = p.program(p.src.Name(), ast.ModuleFunction)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// ParseFormalParameterList parses the whole source as the parameter list of
// a function, as written for a dynamically created function.
func (p *Parser) ParseFormalParameterList() ([]*ast.Ident, error) {
	var params []*ast.Ident
	err := p.run(func() error {
		var err error
		params, err = p.formalParameterList(token.EOF, false, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return params, nil
}

// ParseFunctionBody parses the whole source as the body of a function.
func (p *Parser) ParseFunctionBody() (*ast.Function, error) {
	var fn *ast.Function
	err := p.run(func() error {
		var err error
		fn, err = p.functionBodySource()
		return err
	})
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// program parses a script or a module.
func (p *Parser) program(name string, kind ast.FunctionKind) (*ast.Function, error) {
	first := p.tok
	if p.typ == token.STRING || p.typ == token.ESCSTRING {
		first = first.WithDelimiter()
	}
	functionStart := min(first.Position(), p.finish)
	functionToken := token.New(token.FUNCTION, functionStart, p.src.Len()-functionStart)
	functionLine := p.line

	ident := ast.NewIdent(functionToken, functionStart, name)
	script := p.createFunction(ident, functionToken, kind, functionLine, nil)
	var module *moduleBuilder
	if kind == ast.ModuleFunction {
		script.setFlag(ast.IsStrict)
		module = &moduleBuilder{name: name}
		script.module = module
	}

	p.lc.push(script)
	if module != nil {
		p.lc.push(module)
	}
	body := p.newBlock()
	var err error
	if module != nil {
		err = p.moduleBody()
	} else {
		err = p.sourceElements(p.allowPropertyFunction)
	}
	if err == nil {
		p.addFunctionDeclarations(script)
	}
	p.lc.pop(body)
	if module != nil {
		p.lc.pop(module)
	}
	p.lc.pop(script)
	if err != nil {
		return nil, err
	}

	body.flags |= ast.NeedsScope
	if err := p.verifyBlockScopedBindings(body.statements); err != nil {
		return nil, err
	}
	programBody := p.block(body, functionToken, p.finish, ast.IsSynthetic|ast.IsBody)
	script.lastToken = p.tok
	if err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	fn := p.function(script, functionToken, programBody)
	if module != nil {
		fn.Module = module.build()
	}
	return fn, nil
}

// functionBodySource parses the source as the statements of a function.
func (p *Parser) functionBodySource() (*ast.Function, error) {
	functionLine := p.line
	functionToken := token.New(token.FUNCTION, 0, p.src.Len())
	ident := ast.NewIdent(functionToken, 0, programName)
	fn := p.createFunction(ident, functionToken, ast.NormalFunction, functionLine, nil)

	p.lc.push(fn)
	body := p.newBlock()
	err := p.sourceElements(false)
	if err == nil {
		p.addFunctionDeclarations(fn)
	}
	p.lc.pop(body)
	p.lc.pop(fn)
	if err != nil {
		return nil, err
	}

	body.flags |= ast.NeedsScope
	if err := p.verifyBlockScopedBindings(body.statements); err != nil {
		return nil, err
	}
	functionBody := p.block(body, functionToken, p.finish, ast.IsSynthetic|ast.IsBody)
	if err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return p.function(fn, functionToken, functionBody), nil
}

// sourceElements parses statements up to the end of the enclosing block
// and handles the directive prologue. Syntax errors are recorded and
// recovered from here; the returned error is always fatal.
func (p *Parser) sourceElements(allowPropertyFunction bool) error {
	var directives []ast.Statement
	checkDirective := true
	oldStrict := p.strict
	defer func() { p.strict = oldStrict }()

	for p.typ != token.EOF && p.typ != token.RBRACE {
		names := len(p.defaultNames)
		err := p.statement(true, allowPropertyFunction, false, false, nil)
		allowPropertyFunction = false
		if err == nil && checkDirective {
			checkDirective, err = p.directivePrologue(&directives, oldStrict)
		}
		if err != nil {
			if errors.IsFatal(err) {
				return err
			}
			p.defaultNames = p.defaultNames[:names]
			if err := p.recoverStatement(err); err != nil {
				return err
			}
		}
		// No backtracking from here on.
		p.stream.Commit(p.k)
	}
	return nil
}

// directivePrologue inspects the statement just parsed. It reports whether
// the prologue continues.
func (p *Parser) directivePrologue(directives *[]ast.Statement, oldStrict bool) (bool, error) {
	last := p.lc.lastStatement()
	directive, ok := p.directive(last)
	if !ok {
		return false, nil
	}
	if !oldStrict {
		*directives = append(*directives, last)
	}
	if directive != "use strict" {
		return true, nil
	}

	p.strict = true
	fn := p.lc.currentFunction()
	fn.setFlag(ast.IsStrict)
	if fn.nonSimpleParameters {
		return false, p.errorAt(last.FirstToken(), "use.strict.non.simple.param")
	}
	if oldStrict {
		return true, nil
	}
	// Earlier directives are decoded again under strict rules, and the
	// names bound so far are checked against the strict reserved words.
	for _, stmt := range *directives {
		if _, err := p.value(stmt.FirstToken()); err != nil {
			return false, err
		}
	}
	if fn.ident != nil {
		if err := p.verifyIdent(fn.ident, "function name"); err != nil {
			return false, err
		}
	}
	for _, param := range fn.parameters {
		if err := p.verifyIdent(param, "function parameter"); err != nil {
			return false, err
		}
	}
	return true, nil
}

// directive returns the raw text of a string literal statement.
func (p *Parser) directive(stmt ast.Statement) (string, bool) {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		return "", false
	}
	lit, ok := es.Expression.(*ast.Literal)
	if !ok {
		return "", false
	}
	switch lit.Token.Type() {
	case token.STRING, token.ESCSTRING:
		return p.src.Substring(lit.Start, lit.Token.Length()), true
	}
	return "", false
}

// recoverStatement records err and skips to the next statement. The
// skipped tokens are replaced by an error statement.
func (p *Parser) recoverStatement(err error) error {
	errorLine, errorToken := p.line, p.tok
	if rerr := p.errs.Error(err); rerr != nil {
		return rerr
	}
	p.log.Debug("recovering from syntax error",
		zap.Int("line", errorLine),
		zap.Int("position", errorToken.Position()),
		zap.String("error", err.Error()),
	)

loop:
	for {
		switch p.typ {
		case token.EOF:
			break loop
		case token.EOL, token.SEMICOLON, token.RBRACE:
			p.next()
			break loop
		default:
			p.nextOrEOL()
		}
	}

	errorExpr := &ast.ErrorExpr{Range: ast.NewRange(errorToken, p.finish)}
	p.lc.appendStatement(&ast.ExpressionStatement{
		StmtRange:  ast.NewStmtRange(errorLine, errorToken, p.finish),
		Expression: errorExpr,
	})
	return nil
}

// newBlock pushes a block starting at the current token.
func (p *Parser) newBlock() *blockBuilder {
	b := &blockBuilder{tok: p.tok}
	p.lc.push(b)
	return b
}

// block freezes a popped block builder.
func (p *Parser) block(b *blockBuilder, tok token.Token, finish int, flags ast.BlockFlags) *ast.Block {
	return &ast.Block{
		Range:      ast.Range{Token: tok, Start: tok.Position(), Finish: max(finish, tok.Position())},
		Statements: b.statements,
		Flags:      b.flags | flags,
	}
}

// createFunction starts a function. Its name is made unique in the parse
// and prefixed with the names of the enclosing functions.
func (p *Parser) createFunction(ident *ast.Ident, tok token.Token, kind ast.FunctionKind, line int, parameters []*ast.Ident) *functionBuilder {
	name := ident.Name
	parent := p.lc.currentFunction()
	if parent != nil && !parent.isProgram() {
		name = parent.name + nestedSeparator + name
	}
	fn := &functionBuilder{
		tok:        tok,
		ident:      ident,
		name:       p.namespace.UniqueName(name),
		line:       line,
		kind:       kind,
		parameters: parameters,
		namespace:  NewNamespace(p.namespace),
	}
	if p.strict {
		fn.setFlag(ast.IsStrict)
	}
	if parent == nil {
		fn.setFlag(ast.IsProgram)
	}
	return fn
}

// function freezes a function builder.
func (p *Parser) function(fn *functionBuilder, startToken token.Token, body *ast.Block) *ast.Function {
	finish := body.End()
	if fn.lastToken != 0 {
		finish = fn.lastToken.End()
	}
	flags := fn.flags
	if fn.nonSimpleParameters {
		flags |= ast.HasNonSimpleParameterList
	}
	return &ast.Function{
		Range:      ast.Range{Token: startToken, Start: startToken.Position(), Finish: max(finish, startToken.Position())},
		LineNumber: fn.line,
		LastToken:  fn.lastToken,
		Ident:      fn.ident,
		Name:       fn.name,
		Parameters: fn.parameters,
		Body:       body,
		Kind:       fn.kind,
		Flags:      flags,
		ID:         fn.id(),
		EndState:   fn.endState,
		Source:     p.src.Name(),
	}
}
