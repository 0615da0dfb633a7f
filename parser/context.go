package parser

import (
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/token"
)

// builder is a node under construction. Builders live on the context stack
// while their production is being parsed and are turned into immutable ast
// nodes when popped.
type builder interface {
	builder()
}

// blockBuilder collects the statements of a block, a function body or a
// synthetic block. Blocks are breakable only through a label.
type blockBuilder struct {
	tok        token.Token
	statements []ast.Statement
	flags      ast.BlockFlags
}

func (b *blockBuilder) append(s ast.Statement) { b.statements = append(b.statements, s) }

func (b *blockBuilder) prepend(s ast.Statement) {
	b.statements = append([]ast.Statement{s}, b.statements...)
}

func (b *blockBuilder) last() ast.Statement {
	if len(b.statements) == 0 {
		return nil
	}
	return b.statements[len(b.statements)-1]
}

// functionBuilder tracks a function while its parameters and body are
// parsed.
type functionBuilder struct {
	tok        token.Token
	ident      *ast.Ident
	name       string
	line       int
	kind       ast.FunctionKind
	flags      ast.FunctionFlags
	parameters []*ast.Ident
	namespace  *Namespace
	lastToken  token.Token
	endState   *ast.ResumeState
	module     *moduleBuilder

	bindings            map[string]bool
	duplicateParameter  *ast.Ident
	nonSimpleParameters bool

	// declarations holds the hoisted function declarations of the body.
	declarations []ast.Statement
}

func (f *functionBuilder) setFlag(flags ast.FunctionFlags) { f.flags |= flags }

func (f *functionBuilder) is(flags ast.FunctionFlags) bool { return f.flags&flags == flags }

func (f *functionBuilder) isProgram() bool { return f.is(ast.IsProgram) }

func (f *functionBuilder) isArrow() bool { return f.kind == ast.ArrowFunction }

func (f *functionBuilder) isMethod() bool { return f.is(ast.IsMethod) }

// id identifies the function across parses of the same source.
func (f *functionBuilder) id() int {
	if f.isProgram() {
		return -1
	}
	return f.tok.Position()
}

// addParameterBinding records a bound parameter name, remembering the first
// duplicate.
func (f *functionBuilder) addParameterBinding(id *ast.Ident) {
	if f.bindings == nil {
		f.bindings = make(map[string]bool)
	}
	if f.bindings[id.Name] && f.duplicateParameter == nil {
		f.duplicateParameter = id
	}
	f.bindings[id.Name] = true
}

// loopBuilder is a for, while or do-while loop.
type loopBuilder struct {
	tok token.Token
}

// switchBuilder is a switch statement.
type switchBuilder struct {
	tok token.Token
}

// labelBuilder is a labelled statement.
type labelBuilder struct {
	name string
}

// moduleBuilder accumulates the import and export entries of a module.
type moduleBuilder struct {
	name            string
	requests        []string
	importEntries   []ast.ImportEntry
	localExports    []ast.ExportEntry
	indirectExports []ast.ExportEntry
	starExports     []ast.ExportEntry
	imports         []*ast.ImportDeclaration
	exports         []*ast.ExportDeclaration
}

func (m *moduleBuilder) addRequest(specifier string) {
	if !slices.Contains(m.requests, specifier) {
		m.requests = append(m.requests, specifier)
	}
}

func (m *moduleBuilder) build() *ast.Module {
	return &ast.Module{
		Requests:        m.requests,
		ImportEntries:   m.importEntries,
		LocalExports:    m.localExports,
		IndirectExports: m.indirectExports,
		StarExports:     m.starExports,
		Imports:         m.imports,
		Exports:         m.exports,
	}
}

func (*blockBuilder) builder()    {}
func (*functionBuilder) builder() {}
func (*loopBuilder) builder()     {}
func (*switchBuilder) builder()   {}
func (*labelBuilder) builder()    {}
func (*moduleBuilder) builder()   {}

// parserContext is the stack of builders. Lookups walk it from the top
// down, and most of them stop at the innermost function.
type parserContext struct {
	stack []builder
}

func (c *parserContext) push(b builder) { c.stack = append(c.stack, b) }

func (c *parserContext) pop(b builder) {
	top := len(c.stack) - 1
	if top < 0 || c.stack[top] != b {
		panic("parser: unbalanced context stack")
	}
	c.stack[top] = nil
	c.stack = c.stack[:top]
}

// currentFunction returns the innermost function.
func (c *parserContext) currentFunction() *functionBuilder {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if fn, ok := c.stack[i].(*functionBuilder); ok {
			return fn
		}
	}
	return nil
}

// functions returns the enclosing functions, innermost first.
func (c *parserContext) functions() []*functionBuilder {
	var fns []*functionBuilder
	for i := len(c.stack) - 1; i >= 0; i-- {
		if fn, ok := c.stack[i].(*functionBuilder); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// currentNonArrowFunction skips arrows, which share this, arguments and
// new.target with their enclosing function.
func (c *parserContext) currentNonArrowFunction() *functionBuilder {
	for _, fn := range c.functions() {
		if !fn.isArrow() {
			return fn
		}
	}
	return nil
}

// functionBody returns the first block pushed after fn: the parameter
// block while parameters are parsed, the body afterwards.
func (c *parserContext) functionBody(fn *functionBuilder) *blockBuilder {
	at := slices.Index(c.stack, builder(fn))
	if at < 0 {
		return nil
	}
	for _, b := range c.stack[at+1:] {
		if block, ok := b.(*blockBuilder); ok {
			return block
		}
	}
	return nil
}

// currentBlock returns the innermost block.
func (c *parserContext) currentBlock() *blockBuilder {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if b, ok := c.stack[i].(*blockBuilder); ok {
			return b
		}
	}
	return nil
}

func (c *parserContext) appendStatement(s ast.Statement) { c.currentBlock().append(s) }

func (c *parserContext) prependStatement(s ast.Statement) { c.currentBlock().prepend(s) }

func (c *parserContext) lastStatement() ast.Statement { return c.currentBlock().last() }

// currentModule returns the module being parsed when the parser is at its
// top level.
func (c *parserContext) currentModule() *moduleBuilder {
	for i := len(c.stack) - 1; i >= 0; i-- {
		switch b := c.stack[i].(type) {
		case *moduleBuilder:
			return b
		case *functionBuilder:
			if !b.isProgram() {
				return nil
			}
		}
	}
	return nil
}

// functionIndex returns the stack index of the innermost function, or -1.
func (c *parserContext) functionIndex() int {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if _, ok := c.stack[i].(*functionBuilder); ok {
			return i
		}
	}
	return -1
}

// findLabel looks for a label within the current function.
func (c *parserContext) findLabel(name string) (*labelBuilder, int) {
	until := c.functionIndex()
	for i := len(c.stack) - 1; i > until; i-- {
		if l, ok := c.stack[i].(*labelBuilder); ok && l.name == name {
			return l, i
		}
	}
	return nil, -1
}

func isBreakable(b builder) bool {
	switch b.(type) {
	case *blockBuilder, *loopBuilder, *switchBuilder:
		return true
	}
	return false
}

func isBreakableWithoutLabel(b builder) bool {
	switch b.(type) {
	case *loopBuilder, *switchBuilder:
		return true
	}
	return false
}

// breakable returns the statement a break jumps out of. A labelled break
// targets the statement the label is attached to; an unlabelled one the
// innermost loop or switch of the current function.
func (c *parserContext) breakable(label string) builder {
	if label != "" {
		_, at := c.findLabel(label)
		if at < 0 {
			return nil
		}
		for i := at + 1; i < len(c.stack); i++ {
			if isBreakable(c.stack[i]) {
				return c.stack[i]
			}
		}
		return nil
	}
	until := c.functionIndex()
	for i := len(c.stack) - 1; i > until; i-- {
		if isBreakableWithoutLabel(c.stack[i]) {
			return c.stack[i]
		}
	}
	return nil
}

// continueTo returns the loop a continue jumps to.
func (c *parserContext) continueTo(label string) *loopBuilder {
	if label != "" {
		_, at := c.findLabel(label)
		if at < 0 {
			return nil
		}
		for i := at + 1; i < len(c.stack); i++ {
			if loop, ok := c.stack[i].(*loopBuilder); ok {
				return loop
			}
		}
		return nil
	}
	until := c.functionIndex()
	for i := len(c.stack) - 1; i > until; i-- {
		if loop, ok := c.stack[i].(*loopBuilder); ok {
			return loop
		}
	}
	return nil
}
