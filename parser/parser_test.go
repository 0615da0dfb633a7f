package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

func newParser(t testing.TB, text string, env *config.Environment, opts ...Option) (*Parser, *errors.Manager) {
	t.Helper()
	src, err := source.New("test.js", text)
	assert.NoError(t, err)
	errs := errors.NewManager()
	return New(src, env, errs, opts...), errs
}

func parse(t testing.TB, text string, envOpts ...config.Option) (*ast.Function, *errors.Manager) {
	t.Helper()
	p, errs := newParser(t, text, config.New(envOpts...))
	fn, err := p.Parse()
	assert.NoError(t, err)
	return fn, errs
}

func parseClean(t testing.TB, text string, envOpts ...config.Option) *ast.Function {
	t.Helper()
	fn, errs := parse(t, text, envOpts...)
	if errs.HasErrors() {
		t.Fatalf("unexpected error: %s", errs.First().Message)
	}
	return fn
}

func parseModule(t testing.TB, text string) *ast.Function {
	t.Helper()
	p, errs := newParser(t, text, config.New())
	fn, err := p.ParseModule()
	assert.NoError(t, err)
	if errs.HasErrors() {
		t.Fatalf("unexpected error: %s", errs.First().Message)
	}
	return fn
}

// collect returns every node of type T under root in walk order.
func collect[T ast.Node](root ast.Node) []T {
	var found []T
	ast.Inspect(root, func(n ast.Node) bool {
		if v, ok := n.(T); ok {
			found = append(found, v)
		}
		return true
	})
	return found
}

func function(t testing.TB, root ast.Node, name string) *ast.Function {
	t.Helper()
	for _, fn := range collect[*ast.Function](root) {
		if fn.Ident != nil && fn.Ident.Name == name {
			return fn
		}
	}
	t.Fatalf("function %q not found", name)
	return nil
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "Empty", input: "", want: 0},
		{name: "Var", input: "var a = 1, b;", want: 2},
		{name: "LetConst", input: "let a = 1; const b = 2;", want: 2},
		{name: "If", input: "if (a) b(); else c();", want: 1},
		{name: "For", input: "for (;;) {}", want: 1},
		{name: "ForOf", input: "for (const x of xs) {}", want: 1},
		{name: "While", input: "while (a) { a--; }", want: 1},
		{name: "DoWhile", input: "do { a--; } while (a)", want: 1},
		{name: "Switch", input: "switch (a) { case 1: break; default: }", want: 1},
		{name: "Try", input: "try { a() } catch (e) { b() } finally { c() }", want: 1},
		{name: "Label", input: "outer: for (;;) { break outer; }", want: 1},
		{name: "Throw", input: "throw new Error('x');", want: 1},
		{name: "Debugger", input: "debugger;", want: 1},
		{name: "FunctionDeclaration", input: "function f() {}", want: 1},
		{name: "ClassDeclaration", input: "class A {}", want: 1},
		{name: "AutomaticSemicolons", input: "a = 1\nb = 2\n", want: 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fn := parseClean(t, test.input)
			assert.True(t, fn.IsProgram())
			assert.Equal(t, test.want, len(fn.Body.Statements))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []config.Option
		want  string
	}{
		{name: "MissingOperand", input: "a = ;", want: "Expected an operand but found ;"},
		{name: "InvalidAssignmentTarget", input: "1 = 2;", want: "Invalid left hand side for assignment"},
		{name: "StrictWith", input: "'use strict'; with (a) {}", want: "\"with\" statement cannot be used in strict mode"},
		{name: "DuplicateLabel", input: "a: a: ;", want: "Duplicate label a"},
		{name: "IllegalBreak", input: "break;", want: "Illegal break statement"},
		{name: "DuplicateArrowParameter", input: "(a, a) => 1;", want: "duplicate parameter name \"a\""},
		{name: "MultipleConstructors", input: "class A { constructor() {} constructor() {} }", want: "more than one constructor"},
		{name: "SuperOutsideMethod", input: "function f() { super.x; }", want: "\"super\""},
		{name: "ArrowWithoutBody", input: "x => ;", want: "Expected arrow function body"},
		{
			name:  "JsxNameMismatch",
			input: "<a></b>;",
			opts:  []config.Option{config.JSX()},
			want:  "Expected closing tag </a> but found </b>",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, errs := parse(t, test.input, test.opts...)
			assert.True(t, errs.HasErrors())
			assert.Contains(t, errs.First().Message, test.want)
		})
	}
}

func TestErrorRecovery(t *testing.T) {
	fn, errs := parse(t, "var = 1;\nvar b = 2;\nc(;\nd();")
	assert.Equal(t, 2, errs.ErrorCount())
	assert.NotZero(t, fn)

	assert.Equal(t, 2, len(collect[*ast.ErrorExpr](fn)))
	vars := collect[*ast.Var](fn)
	assert.Equal(t, 1, len(vars))
	assert.Equal(t, "b", vars[0].Name.Name)
}

func TestEditionGates(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		edition int
		fails   bool
	}{
		{name: "ArrowES5", input: "x => x;", edition: config.ES5, fails: true},
		{name: "ArrowES6", input: "x => x;", edition: config.ES6},
		{name: "AsyncES8", input: "async function f() { await g(); }", edition: config.ES8},
		{name: "OptionalChainingES10", input: "a?.b;", edition: config.ES10, fails: true},
		{name: "OptionalChainingES11", input: "a?.b;", edition: config.ES11},
		{name: "PrivateFieldES12", input: "class A { #x = 1; }", edition: config.ES12, fails: true},
		{name: "PrivateFieldES13", input: "class A { #x = 1; }", edition: config.ES13},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// A rejected construct may abort the parse, so only the recorded
			// errors count.
			p, errs := newParser(t, test.input, config.New(config.Edition(test.edition)))
			_, err := p.Parse()
			assert.Equal(t, test.fails, errs.HasErrors())
			if !test.fails {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseFunctions(t *testing.T) {
	t.Run("Declaration", func(t *testing.T) {
		fn := parseClean(t, "function add(a, b) { return a + b; }")
		add := function(t, fn, "add")
		assert.Equal(t, ast.NormalFunction, add.Kind)
		assert.True(t, add.Is(ast.IsDeclared|ast.IsStatement))
		assert.Equal(t, 2, len(add.Parameters))
		assert.True(t, fn.Is(ast.HasFunctionDeclarations))

		decls := collect[*ast.Var](fn)
		assert.Equal(t, 1, len(decls))
		assert.True(t, decls[0].Is(ast.IsLastFunctionDeclaration))
	})

	t.Run("DefaultParameter", func(t *testing.T) {
		fn := parseClean(t, "function f(a, b = 2) {}")
		f := function(t, fn, "f")
		assert.True(t, f.Is(ast.HasNonSimpleParameterList))
		assert.True(t, f.Body.Flags&ast.IsParameterBlock != 0)
		assert.Equal(t, 1, len(collect[*ast.Ternary](f)))
	})

	t.Run("Generator", func(t *testing.T) {
		fn := parseClean(t, "function* g() { yield 1; yield* other(); }")
		g := function(t, fn, "g")
		assert.True(t, g.IsGenerator())
		var ops []token.Type
		for _, u := range collect[*ast.Unary](g) {
			ops = append(ops, u.Op)
		}
		assert.Equal(t, []token.Type{token.YIELD, token.YIELD_STAR}, ops)
	})

	t.Run("Async", func(t *testing.T) {
		fn := parseClean(t, "async function f() { await g(); }")
		f := function(t, fn, "f")
		assert.True(t, f.IsAsync())
		assert.Equal(t, token.AWAIT, collect[*ast.Unary](f)[0].Op)
	})

	t.Run("ArrowExpressionBody", func(t *testing.T) {
		fn := parseClean(t, "const add = (a, b) => a + b;")
		arrows := collect[*ast.Function](fn.Body)
		assert.Equal(t, 1, len(arrows))
		arrow := arrows[0]
		assert.True(t, arrow.IsArrow())
		assert.True(t, arrow.Is(ast.HasExpressionBody))
		assert.Equal(t, 2, len(arrow.Parameters))
		assert.Equal(t, "a", arrow.Parameters[0].Name)
		assert.Equal(t, "b", arrow.Parameters[1].Name)
	})

	t.Run("ArrowRestParameter", func(t *testing.T) {
		fn := parseClean(t, "const f = (a, ...rest) => rest;")
		arrow := collect[*ast.Function](fn.Body)[0]
		assert.Equal(t, 2, len(arrow.Parameters))
		assert.True(t, arrow.Parameters[1].Flags&ast.RestParameter != 0)
	})

	t.Run("Eval", func(t *testing.T) {
		fn := parseClean(t, "function outer() { function inner() { eval('x'); } }")
		assert.True(t, function(t, fn, "inner").Is(ast.HasEval))
		assert.True(t, function(t, fn, "outer").Is(ast.HasNestedEval))
	})

	t.Run("AnonymousNamedAfterTarget", func(t *testing.T) {
		fn := parseClean(t, "var handler = function () {};")
		f := collect[*ast.Function](fn.Body)[0]
		assert.True(t, f.Is(ast.IsAnonymous))
		assert.Equal(t, "handler", f.Ident.Name)
	})
}

func TestParseClasses(t *testing.T) {
	fn := parseClean(t, `
		class Point extends Base {
			static origin = new Point(0, 0);
			#secret = 1;
			constructor(x, y) { super(x); this.y = y; }
			get length() { return 0; }
			set length(v) {}
			static { Point.count = 0; }
			scale(k) { return k; }
		}
	`)
	classes := collect[*ast.Class](fn)
	assert.Equal(t, 1, len(classes))
	class := classes[0]
	assert.Equal(t, "Point", class.Ident.Name)
	assert.NotZero(t, class.Heritage)
	assert.NotZero(t, class.Constructor)

	var kinds []ast.ClassElementKind
	for _, e := range class.Elements {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []ast.ClassElementKind{
		ast.FieldElement,
		ast.FieldElement,
		ast.AccessorElement,
		ast.StaticInitializerElement,
		ast.MethodElement,
	}, kinds)

	accessor := class.Elements[2]
	assert.NotZero(t, accessor.Getter)
	assert.NotZero(t, accessor.Setter)

	ctor := class.Constructor.Value.(*ast.Function)
	assert.True(t, ctor.Is(ast.IsClassConstructor|ast.IsSubclassConstructor|ast.HasDirectSuper))
}

func TestDefaultConstructor(t *testing.T) {
	fn := parseClean(t, "class A extends B {}")
	class := collect[*ast.Class](fn)[0]
	ctor := class.Constructor.Value.(*ast.Function)
	assert.True(t, ctor.Is(ast.IsSubclassConstructor))
	assert.Equal(t, 1, len(ctor.Parameters))
	assert.True(t, ctor.Parameters[0].Flags&ast.RestParameter != 0)
}

func TestDecorators(t *testing.T) {
	fn := parseClean(t, "@sealed @log.level('debug') class A { @readonly name() {} }", config.Edition(config.ES13))
	class := collect[*ast.Class](fn)[0]
	assert.Equal(t, 2, len(class.Decorators))
	_, isCall := class.Decorators[1].(*ast.Call)
	assert.True(t, isCall)
	assert.Equal(t, 1, len(class.Elements[0].Decorators))
}

func TestParseTemplates(t *testing.T) {
	t.Run("Untagged", func(t *testing.T) {
		fn := parseClean(t, "`a${b}c${d}e`;")
		requests := collect[*ast.Runtime](fn)
		assert.Equal(t, 2, len(requests))
		for _, r := range requests {
			assert.Equal(t, ast.ToString, r.Request)
		}
	})

	t.Run("NoSubstitution", func(t *testing.T) {
		fn := parseClean(t, "`plain`;")
		lits := collect[*ast.Literal](fn)
		assert.Equal(t, 1, len(lits))
		assert.Equal(t, token.Value(token.String("plain")), lits[0].Value)
	})

	t.Run("Tagged", func(t *testing.T) {
		fn := parseClean(t, "tag`a${b}c`;")
		call := collect[*ast.Call](fn)[0]
		assert.Equal(t, 2, len(call.Args))
		object := call.Args[0].(*ast.Runtime)
		assert.Equal(t, ast.GetTemplateObject, object.Request)
		raw := object.Args[0].(*ast.ArrayLiteral)
		assert.Equal(t, 2, len(raw.Elements))
	})
}

func TestParseJSX(t *testing.T) {
	fn := parseClean(t, `<a href="x" {...props}>hi {y}<br/></a>;`, config.JSX())
	elems := collect[*ast.JsxElement](fn)
	assert.Equal(t, 2, len(elems))

	a := elems[0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, 2, len(a.Attributes))
	href := a.Attributes[0].(*ast.JsxAttribute)
	assert.Equal(t, "href", href.Name)
	assert.Equal(t, token.Value(token.String("x")), href.Value.(*ast.Literal).Value)
	assert.Equal(t, token.SPREAD_OBJECT, a.Attributes[1].(*ast.Unary).Op)

	assert.Equal(t, 3, len(a.Children))
	assert.Equal(t, token.Value(token.String("hi ")), a.Children[0].(*ast.Literal).Value)
	assert.Equal(t, "y", a.Children[1].(*ast.Ident).Name)
	assert.Equal(t, "br", a.Children[2].(*ast.JsxElement).Name)
}

func TestParseJSXAttributeElement(t *testing.T) {
	fn := parseClean(t, "<a d=<e/> f>t</a>;", config.JSX())
	a := collect[*ast.JsxElement](fn)[0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, 2, len(a.Attributes))

	d := a.Attributes[0].(*ast.JsxAttribute)
	assert.Equal(t, "e", d.Value.(*ast.JsxElement).Name)
	assert.Equal(t, "f", a.Attributes[1].(*ast.JsxAttribute).Name)

	assert.Equal(t, 1, len(a.Children))
	assert.Equal(t, token.Value(token.String("t")), a.Children[0].(*ast.Literal).Value)
}

func TestParseJSXNames(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "<Foo.Bar.Baz />;", want: "Foo.Bar.Baz"},
		{input: "<svg:rect />;", want: "svg:rect"},
		{input: "<data-item></data-item>;", want: "data-item"},
		{input: "<></>;", want: ""},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			fn := parseClean(t, test.input, config.JSX())
			assert.Equal(t, test.want, collect[*ast.JsxElement](fn)[0].Name)
		})
	}
}

func TestParseModule(t *testing.T) {
	fn := parseModule(t, `
		import def, { b as c, d } from "./lib.js";
		import * as ns from "./ns.js";
		import "./side-effect.js";
		export const x = 1;
		export { c as renamed };
		export * from "./all.js";
		export * as grouped from "./grouped.js";
		export { e } from "./lib.js";
		export function f() {}
	`)
	assert.True(t, fn.IsStrict())
	module := fn.Module
	assert.NotZero(t, module)

	assert.Equal(t, []string{"./lib.js", "./ns.js", "./side-effect.js", "./all.js", "./grouped.js"}, module.Requests)
	assert.Equal(t, []ast.ImportEntry{
		{ModuleRequest: "./lib.js", ImportName: "default", LocalName: "def"},
		{ModuleRequest: "./lib.js", ImportName: "b", LocalName: "c"},
		{ModuleRequest: "./lib.js", ImportName: "d", LocalName: "d"},
		{ModuleRequest: "./ns.js", ImportName: ast.StarName, LocalName: "ns"},
	}, module.ImportEntries)
	assert.Equal(t, []ast.ExportEntry{
		{ExportName: "x", LocalName: "x"},
		{ExportName: "renamed", LocalName: "c"},
		{ExportName: "f", LocalName: "f"},
	}, module.LocalExports)
	assert.Equal(t, []ast.ExportEntry{
		{ExportName: "e", ModuleRequest: "./lib.js", ImportName: "e"},
	}, module.IndirectExports)
	assert.Equal(t, []ast.ExportEntry{
		{ModuleRequest: "./all.js", ImportName: ast.StarName},
		{ExportName: "grouped", ModuleRequest: "./grouped.js", ImportName: ast.StarName},
	}, module.StarExports)
	assert.Equal(t, 3, len(module.Imports))
	assert.Equal(t, 6, len(module.Exports))
}

func TestExportDefaultClass(t *testing.T) {
	fn := parseModule(t, "export default class { }")
	assert.Equal(t, []ast.ExportEntry{
		{ExportName: "default", LocalName: ast.DefaultExportBinding},
	}, fn.Module.LocalExports)

	assert.Equal(t, 1, len(fn.Body.Statements))
	decl := fn.Body.Statements[0].(*ast.Var)
	assert.True(t, decl.Is(ast.IsLet))
	assert.Equal(t, ast.DefaultExportBinding, decl.Name.Name)
	_, isClass := decl.Init.(*ast.Class)
	assert.True(t, isClass)
}

func TestExportDefaultExpression(t *testing.T) {
	fn := parseModule(t, "export default 1 + 2;")
	decl := fn.Body.Statements[0].(*ast.Var)
	assert.True(t, decl.Is(ast.IsLet|ast.IsExport))
	assert.Equal(t, ast.DefaultExportBinding, decl.Name.Name)
	assert.Equal(t, []ast.ExportEntry{
		{ExportName: "default", LocalName: ast.DefaultExportBinding},
	}, fn.Module.LocalExports)
}

func TestDynamicImportInModule(t *testing.T) {
	fn := parseModule(t, "import('./lazy.js').then(m => m.run());")
	assert.Equal(t, 0, len(fn.Module.Imports))
	assert.Equal(t, 1, len(fn.Body.Statements))
}

func TestReparse(t *testing.T) {
	const text = "function a() { return 1; }\nfunction b() { var x = 2; return x; }\n"
	prior := parseClean(t, text)
	a := function(t, prior, "a")
	b := function(t, prior, "b")
	assert.NotZero(t, b.EndState)

	p, errs := newParser(t, text, config.New(), WithReparse(NewReparse(prior, a.ID)))
	fn, err := p.Parse()
	assert.NoError(t, err)
	assert.False(t, errs.HasErrors())

	reparsedA := function(t, fn, "a")
	reparsedB := function(t, fn, "b")
	assert.Equal(t, 1, len(reparsedA.Body.Statements))
	assert.Equal(t, 0, len(reparsedB.Body.Statements))
	assert.Equal(t, b.EndState, reparsedB.EndState)
	assert.Equal(t, b.End(), reparsedB.End())
}

func TestReparseNestedTarget(t *testing.T) {
	const text = "function outer(){ function inner(){ return 1; } return inner; }"
	prior := parseClean(t, text)
	outer := function(t, prior, "outer")
	inner := function(t, prior, "inner")

	p, errs := newParser(t, text, config.New(), WithReparse(NewReparse(prior, inner.ID)))
	fn, err := p.Parse()
	assert.NoError(t, err)
	assert.False(t, errs.HasErrors())

	reparsedInner := function(t, fn, "inner")
	assert.Equal(t, 1, len(reparsedInner.Body.Statements))
	_, isReturn := reparsedInner.Body.Statements[0].(*ast.Return)
	assert.True(t, isReturn)

	reparsedOuter := function(t, fn, "outer")
	assert.Equal(t, outer.Flags, reparsedOuter.Flags)
	assert.Equal(t, outer.Is(ast.HasEval), reparsedOuter.Is(ast.HasEval))
}

func TestReparseKeepsFlags(t *testing.T) {
	const text = "function a() {}\nfunction b() { eval('1'); }\n"
	prior := parseClean(t, text)
	a := function(t, prior, "a")

	p, _ := newParser(t, text, config.New(), WithReparse(NewReparse(prior, a.ID)))
	fn, err := p.Parse()
	assert.NoError(t, err)
	assert.True(t, function(t, fn, "b").Is(ast.HasEval))
}

func TestReparseInAnotherLexerMode(t *testing.T) {
	const text = "function a() { return 1; }\nfunction b() { var x = 2; return x; }\nvar c = 3;\n"
	prior := parseClean(t, text)
	a := function(t, prior, "a")

	// The recorded end state of b belongs to a non-JSX lex, so b is lexed
	// again instead of fast-forwarded.
	p, errs := newParser(t, text, config.New(config.JSX()), WithReparse(NewReparse(prior, a.ID)))
	fn, err := p.Parse()
	assert.NoError(t, err)
	assert.False(t, errs.HasErrors())

	reparsedB := function(t, fn, "b")
	assert.Equal(t, 0, len(reparsedB.Body.Statements))
	assert.Zero(t, reparsedB.EndState)

	vars := collect[*ast.Var](fn.Body)
	assert.Equal(t, "c", vars[len(vars)-1].Name.Name)
}

func TestParseFormalParameterList(t *testing.T) {
	p, _ := newParser(t, "a, b, ...c", config.New())
	params, err := p.ParseFormalParameterList()
	assert.NoError(t, err)
	var names []string
	for _, param := range params {
		names = append(names, param.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestParseFunctionBody(t *testing.T) {
	p, errs := newParser(t, "var x = 1; return x;", config.New())
	fn, err := p.ParseFunctionBody()
	assert.NoError(t, err)
	assert.False(t, errs.HasErrors())
	assert.Equal(t, ast.NormalFunction, fn.Kind)
	assert.Equal(t, 2, len(fn.Body.Statements))
}

func TestPropertyFunctions(t *testing.T) {
	p, errs := newParser(t, "get size() { return 1; }", config.New(), WithPropertyFunctions())
	fn, err := p.Parse()
	assert.NoError(t, err)
	assert.False(t, errs.HasErrors())
	getter := collect[*ast.Function](fn.Body)[0]
	assert.Equal(t, ast.GetterFunction, getter.Kind)
}

func TestKitchensink(t *testing.T) {
	src, err := source.ReadFile("../testdata/kitchensink.js")
	assert.NoError(t, err)
	errs := errors.NewManager()
	fn, err := New(src, config.New(), errs).Parse()
	assert.NoError(t, err)
	if errs.HasErrors() {
		t.Fatalf("unexpected error: %s", errs.First().Formatted)
	}
	assert.True(t, fn.IsStrict())
	assert.Equal(t, 2, len(collect[*ast.Class](fn)))
}

func TestDuplicateParameters(t *testing.T) {
	t.Run("RenamedOutsideStrictMode", func(t *testing.T) {
		fn := parseClean(t, "function f(a, a) { return a; }")
		f := function(t, fn, "f")
		assert.Equal(t, 2, len(f.Parameters))
		assert.Equal(t, "a-1", f.Parameters[0].Name)
		assert.Equal(t, "a", f.Parameters[1].Name)
	})

	t.Run("RejectedInStrictMode", func(t *testing.T) {
		p, errs := newParser(t, "'use strict'; function f(a, a) {}", config.New())
		_, _ = p.Parse()
		assert.True(t, errs.HasErrors())
		assert.Contains(t, errs.First().Message, "duplicate parameter name \"a\"")
	})
}

func TestBindingRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []config.Option
		want  string
	}{
		{name: "VarRedeclaration", input: "var x = 1, x = 2;"},
		{name: "LetRedeclaration", input: "let x = 1; let x = 2;", want: "Variable \"x\" has already been declared"},
		{name: "LetAcrossCases", input: "switch (x) { case 1: let a; case 2: let a; }", want: "Variable \"a\" has already been declared"},
		{name: "LetInSeparateCaseBlocks", input: "switch (x) { case 1: { let a; } case 2: { let a; } }"},
		{name: "NullishWithOr", input: "a ?? b || c;", want: "Cannot mix ?? with || or &&"},
		{name: "NullishWithAnd", input: "a && b ?? c;", want: "Cannot mix ?? with || or &&"},
		{name: "NullishParenthesized", input: "(a ?? b) || c;"},
		{name: "YieldAsIdentifier", input: "var yield = 1;"},
		{name: "YieldStrict", input: "'use strict'; var yield = 1;", want: "yield"},
		{name: "JsxDisabled", input: "<a href=\"x\">{y}</a>;", want: "<"},
		{name: "JsxEnabled", input: "<a href=\"x\">{y}</a>;", opts: []config.Option{config.JSX()}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Some of these abort the parse, so only the recorded errors count.
			p, errs := newParser(t, test.input, config.New(test.opts...))
			_, _ = p.Parse()
			if test.want == "" {
				assert.False(t, errs.HasErrors(), "%v", errs.Errors())
				return
			}
			assert.True(t, errs.HasErrors())
			assert.Contains(t, errs.First().Message, test.want)
		})
	}
}
