package parser

import (
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/token"
)

const (
	defaultExportName = "default"
	asName            = "as"
	fromName          = "from"
)

func (m *moduleBuilder) addImportEntry(entry ast.ImportEntry) {
	if !slices.Contains(m.importEntries, entry) {
		m.importEntries = append(m.importEntries, entry)
	}
}

func (m *moduleBuilder) addLocalExport(entry ast.ExportEntry) {
	if !slices.Contains(m.localExports, entry) {
		m.localExports = append(m.localExports, entry)
	}
}

func (m *moduleBuilder) addIndirectExport(entry ast.ExportEntry) {
	if !slices.Contains(m.indirectExports, entry) {
		m.indirectExports = append(m.indirectExports, entry)
	}
}

func (m *moduleBuilder) addStarExport(entry ast.ExportEntry) {
	if !slices.Contains(m.starExports, entry) {
		m.starExports = append(m.starExports, entry)
	}
}

// moduleBody parses the items of a module. Decorators written before an
// export apply to the exported class.
func (p *Parser) moduleBody() error {
	var decorators []ast.Expression
	for p.typ != token.EOF {
		names := len(p.defaultNames)
		var err error
		switch {
		case p.typ == token.IMPORT && !p.isImportCall():
			err = p.importDeclaration()
			decorators = nil
		case p.typ == token.EXPORT:
			err = p.exportDeclaration(decorators)
			decorators = nil
		case p.typ == token.AT && p.env.AtLeast(config.ES7):
			var more []ast.Expression
			if more, err = p.decoratorList(); err == nil {
				decorators = append(decorators, more...)
			}
		default:
			err = p.statement(true, false, false, false, decorators)
			decorators = nil
		}
		if err != nil {
			if errors.IsFatal(err) {
				return err
			}
			decorators = nil
			p.defaultNames = p.defaultNames[:names]
			if err := p.recoverStatement(err); err != nil {
				return err
			}
		}
		p.stream.Commit(p.k)
	}
	return nil
}

// isImportCall reports whether the current IMPORT starts an expression:
// a dynamic import or import.meta.
func (p *Parser) isImportCall() bool {
	t, _ := p.peekSignificant(1, true)
	return t == token.LPAREN || t == token.PERIOD
}

// importDeclaration parses
//
//	import "mod";
//	import a, * as ns from "mod";
//	import a, { b, c as d } from "mod";
func (p *Parser) importDeclaration() error {
	importToken, importLine := p.tok, p.line
	if err := p.expect(token.IMPORT); err != nil {
		return err
	}
	module := p.lc.currentModule()

	if p.typ == token.STRING || p.typ == token.ESCSTRING {
		specifier, err := p.literal()
		if err != nil {
			return err
		}
		module.addRequest(specifier.Value.String())
		module.imports = append(module.imports, &ast.ImportDeclaration{
			StmtRange:       ast.NewStmtRange(importLine, importToken, p.finish),
			ModuleSpecifier: specifier,
		})
		return p.endOfLine()
	}

	clauseToken := p.tok
	clause := &ast.ImportClause{}
	var entries []ast.ImportEntry
	switch {
	case p.typ == token.MUL:
		ns, err := p.nameSpaceImport()
		if err != nil {
			return err
		}
		clause.NameSpace = ns
		entries = append(entries, ast.ImportEntry{ImportName: ast.StarName, LocalName: ns.Binding.Name})
	case p.typ == token.LBRACE:
		named, err := p.namedImports()
		if err != nil {
			return err
		}
		clause.Named = named
		entries = append(entries, importEntries(named)...)
	case p.isBindingIdentifier():
		binding, err := p.bindingIdentifier("ImportedBinding")
		if err != nil {
			return err
		}
		clause.Default = binding
		entries = append(entries, ast.ImportEntry{ImportName: defaultExportName, LocalName: binding.Name})
		if p.typ == token.COMMARIGHT {
			p.next()
			switch p.typ {
			case token.MUL:
				ns, err := p.nameSpaceImport()
				if err != nil {
					return err
				}
				clause.NameSpace = ns
				entries = append(entries, ast.ImportEntry{ImportName: ast.StarName, LocalName: ns.Binding.Name})
			case token.LBRACE:
				named, err := p.namedImports()
				if err != nil {
					return err
				}
				clause.Named = named
				entries = append(entries, importEntries(named)...)
			default:
				return p.error("expected.named.import")
			}
		}
	default:
		return p.error("expected.import")
	}
	clause.Range = ast.NewRange(clauseToken, p.finish)

	from, err := p.fromClause()
	if err != nil {
		return err
	}
	module.imports = append(module.imports, &ast.ImportDeclaration{
		StmtRange: ast.NewStmtRange(importLine, importToken, p.finish),
		Clause:    clause,
		From:      from,
	})
	request := from.Specifier()
	module.addRequest(request)
	for _, entry := range entries {
		entry.ModuleRequest = request
		module.addImportEntry(entry)
	}
	return p.endOfLine()
}

// nameSpaceImport parses "* as name".
func (p *Parser) nameSpaceImport() (*ast.NameSpaceImport, error) {
	startToken := p.tok
	p.next()
	if err := p.expectContextual(asName, "expected.as"); err != nil {
		return nil, err
	}
	binding, err := p.bindingIdentifier("ImportedBinding")
	if err != nil {
		return nil, err
	}
	return &ast.NameSpaceImport{Range: ast.NewRange(startToken, p.finish), Binding: binding}, nil
}

// namedImports parses "{ a, b as c }". A trailing comma is allowed.
func (p *Parser) namedImports() (*ast.NamedImports, error) {
	startToken := p.tok
	p.next()
	var specifiers []*ast.ImportSpecifier
	for p.typ != token.RBRACE {
		isBinding := p.isBindingIdentifier()
		nameToken := p.tok
		name, err := p.identifierName()
		if err != nil {
			return nil, err
		}
		switch {
		case p.isIdentName(asName):
			p.next()
			binding, err := p.bindingIdentifier("ImportedBinding")
			if err != nil {
				return nil, err
			}
			specifiers = append(specifiers, &ast.ImportSpecifier{Range: ast.NewRange(nameToken, p.finish), Binding: binding, Name: name})
		case !isBinding:
			return nil, p.errorAt(nameToken, "expected.binding.identifier")
		default:
			if err := p.verifyIdent(name, "ImportedBinding"); err != nil {
				return nil, err
			}
			specifiers = append(specifiers, &ast.ImportSpecifier{Range: ast.NewRange(nameToken, p.finish), Binding: name})
		}
		if p.typ != token.COMMARIGHT {
			break
		}
		p.next()
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.NamedImports{Range: ast.NewRange(startToken, p.finish), Specifiers: specifiers}, nil
}

func importEntries(named *ast.NamedImports) []ast.ImportEntry {
	entries := make([]ast.ImportEntry, 0, len(named.Specifiers))
	for _, s := range named.Specifiers {
		entry := ast.ImportEntry{ImportName: s.Binding.Name, LocalName: s.Binding.Name}
		if s.Name != nil {
			entry.ImportName = s.Name.Name
		}
		entries = append(entries, entry)
	}
	return entries
}

// fromClause parses "from" followed by a module specifier.
func (p *Parser) fromClause() (*ast.From, error) {
	fromToken := p.tok
	if err := p.expectContextual(fromName, "expected.from"); err != nil {
		return nil, err
	}
	if p.typ != token.STRING && p.typ != token.ESCSTRING {
		return nil, p.expected(token.STRING.NameOrType())
	}
	specifier, err := p.literal()
	if err != nil {
		return nil, err
	}
	return &ast.From{Range: ast.NewRange(fromToken, p.finish), ModuleSpecifier: specifier}, nil
}

// expectContextual consumes the identifier name or fails with key.
func (p *Parser) expectContextual(name, key string) error {
	if !p.isIdentName(name) {
		return p.error(key)
	}
	p.next()
	return nil
}

// exportDeclaration parses an export statement. Declarations are added to
// the current block like their unexported counterparts.
func (p *Parser) exportDeclaration(decorators []ast.Expression) error {
	exportToken, exportLine := p.tok, p.line
	if err := p.expect(token.EXPORT); err != nil {
		return err
	}
	module := p.lc.currentModule()
	if len(decorators) > 0 && p.typ != token.DEFAULT && p.typ != token.CLASS && p.typ != token.AT {
		return p.expected(token.CLASS.NameOrType())
	}
	export := func(decl *ast.ExportDeclaration) {
		decl.StmtRange = ast.NewStmtRange(exportLine, exportToken, p.finish)
		module.exports = append(module.exports, decl)
	}

	switch p.typ {
	case token.MUL:
		p.next()
		var exportName *ast.Ident
		if p.isIdentName(asName) && p.env.AtLeast(config.ES11) {
			p.next()
			var err error
			if exportName, err = p.identifierName(); err != nil {
				return err
			}
		}
		from, err := p.fromClause()
		if err != nil {
			return err
		}
		request := from.Specifier()
		module.addRequest(request)
		entry := ast.ExportEntry{ModuleRequest: request, ImportName: ast.StarName}
		if exportName != nil {
			entry.ExportName = exportName.Name
		}
		module.addStarExport(entry)
		export(&ast.ExportDeclaration{From: from, StarName: exportName})
		return p.endOfLine()

	case token.LBRACE:
		clause, err := p.exportClause()
		if err != nil {
			return err
		}
		if p.isIdentName(fromName) {
			from, err := p.fromClause()
			if err != nil {
				return err
			}
			export(&ast.ExportDeclaration{Clause: clause, From: from})
			request := from.Specifier()
			module.addRequest(request)
			for _, entry := range exportEntries(clause) {
				entry.ModuleRequest = request
				entry.ImportName, entry.LocalName = entry.LocalName, ""
				module.addIndirectExport(entry)
			}
			return p.endOfLine()
		}
		for _, s := range clause.Specifiers {
			if err := p.verifyIdent(s.Local, "ExportedBinding"); err != nil {
				return err
			}
		}
		export(&ast.ExportDeclaration{Clause: clause})
		for _, entry := range exportEntries(clause) {
			module.addLocalExport(entry)
		}
		return p.endOfLine()

	case token.DEFAULT:
		p.next()
		return p.exportDefault(decorators, export)

	case token.VAR, token.LET, token.CONST:
		block := p.lc.currentBlock()
		previous := len(block.statements)
		if _, err := p.variableDeclarationList(p.typ, true, -1); err != nil {
			return err
		}
		for _, stmt := range block.statements[previous:] {
			if v, ok := stmt.(*ast.Var); ok {
				export(&ast.ExportDeclaration{Var: v})
				module.addLocalExport(ast.ExportEntry{ExportName: v.Name.Name, LocalName: v.Name.Name})
			}
		}
		return nil

	case token.CLASS, token.AT:
		class, err := p.classDeclaration(false, decorators)
		if err != nil {
			return err
		}
		export(&ast.ExportDeclaration{Expression: class})
		module.addLocalExport(ast.ExportEntry{ExportName: class.Ident.Name, LocalName: class.Ident.Name})
		return nil

	case token.FUNCTION:
		fn, err := p.functionExpression(true, true, false)
		if err != nil {
			return err
		}
		export(&ast.ExportDeclaration{Expression: fn})
		module.addLocalExport(ast.ExportEntry{ExportName: fn.Ident.Name, LocalName: fn.Ident.Name})
		return nil
	}

	if p.isAsyncFunctionStart(false) {
		p.nextOrEOL()
		fn, err := p.functionExpression(true, true, true)
		if err != nil {
			return err
		}
		export(&ast.ExportDeclaration{Expression: fn})
		module.addLocalExport(ast.ExportEntry{ExportName: fn.Ident.Name, LocalName: fn.Ident.Name})
		return nil
	}
	return p.error("invalid.export")
}

// exportDefault parses what follows "export default". Named function and
// class declarations export their own binding; anything else is bound to
// the default export name by a synthetic let declaration.
func (p *Parser) exportDefault(decorators []ast.Expression, export func(*ast.ExportDeclaration)) error {
	module := p.lc.currentModule()
	if len(decorators) > 0 && p.typ != token.AT && p.typ != token.CLASS {
		return p.expected(token.CLASS.NameOrType())
	}
	rhsLine, rhsToken := p.line, p.tok

	var expr ast.Expression
	declaration := false
	switch {
	case p.typ == token.CLASS || p.typ == token.AT:
		class, err := p.classDeclaration(true, decorators)
		if err != nil {
			return err
		}
		localName := ast.DefaultExportBinding
		if class.Ident != nil {
			localName = class.Ident.Name
		}
		export(&ast.ExportDeclaration{Expression: class, Default: true})
		module.addLocalExport(ast.ExportEntry{ExportName: defaultExportName, LocalName: localName})
		return nil

	case p.typ == token.FUNCTION || p.isAsyncFunctionStart(false):
		async := p.typ != token.FUNCTION
		if async {
			p.nextOrEOL()
		}
		if p.namedFunctionFollows() {
			fn, err := p.functionExpression(true, true, async)
			if err != nil {
				return err
			}
			export(&ast.ExportDeclaration{Expression: fn, Default: true})
			module.addLocalExport(ast.ExportEntry{ExportName: defaultExportName, LocalName: fn.Ident.Name})
			return nil
		}
		fn, err := p.functionExpression(false, true, async)
		if err != nil {
			return err
		}
		expr = fn
		declaration = true

	default:
		var err error
		if expr, err = p.assignmentExpression(false); err != nil {
			return err
		}
	}

	export(&ast.ExportDeclaration{Expression: expr, Default: true})
	ident := ast.NewIdent(rhsToken.Recast(token.IDENT), p.finish, ast.DefaultExportBinding)
	p.lc.appendStatement(&ast.Var{
		StmtRange:   ast.NewStmtRange(rhsLine, rhsToken.Recast(token.LET), p.finish),
		Name:        ident,
		Init:        expr,
		Flags:       ast.IsLet | ast.IsExport,
		SourceOrder: -1,
	})
	module.addLocalExport(ast.ExportEntry{ExportName: defaultExportName, LocalName: ast.DefaultExportBinding})
	if !declaration {
		return p.endOfLine()
	}
	return nil
}

// namedFunctionFollows reports whether the FUNCTION at the cursor, with an
// optional "*", is followed by a name.
func (p *Parser) namedFunctionFollows() bool {
	t, i := p.peekSignificant(1, true)
	if t == token.MUL {
		t, _ = p.peekSignificant(i+1, true)
	}
	switch {
	case t == token.IDENT, t == token.YIELD:
		return true
	case t.Kind() == token.FutureStrict:
		return !p.strict
	}
	return false
}

// exportClause parses "{ a, b as c }". A trailing comma is allowed.
func (p *Parser) exportClause() (*ast.ExportClause, error) {
	startToken := p.tok
	p.next()
	var specifiers []*ast.ExportSpecifier
	for p.typ != token.RBRACE {
		nameToken := p.tok
		local, err := p.identifierName()
		if err != nil {
			return nil, err
		}
		spec := &ast.ExportSpecifier{Local: local}
		if p.isIdentName(asName) {
			p.next()
			if spec.Export, err = p.identifierName(); err != nil {
				return nil, err
			}
		}
		spec.Range = ast.NewRange(nameToken, p.finish)
		specifiers = append(specifiers, spec)
		if p.typ != token.COMMARIGHT {
			break
		}
		p.next()
	}
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.ExportClause{Range: ast.NewRange(startToken, p.finish), Specifiers: specifiers}, nil
}

func exportEntries(clause *ast.ExportClause) []ast.ExportEntry {
	entries := make([]ast.ExportEntry, 0, len(clause.Specifiers))
	for _, s := range clause.Specifiers {
		entry := ast.ExportEntry{ExportName: s.Local.Name, LocalName: s.Local.Name}
		if s.Export != nil {
			entry.ExportName = s.Export.Name
		}
		entries = append(entries, entry)
	}
	return entries
}
