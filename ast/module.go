package ast

// DefaultExportBinding is the local name bound by "export default" of an
// anonymous declaration or a bare expression.
const DefaultExportBinding = "*default*"

// StarName is the import or export name used for namespace entries.
const StarName = "*"

// ImportEntry is one binding introduced by an import declaration.
type ImportEntry struct {
	ModuleRequest string
	ImportName    string
	LocalName     string
}

// ExportEntry is one name made available by an export declaration.
// Star exports without a name have an empty ExportName.
type ExportEntry struct {
	ExportName    string
	ModuleRequest string
	ImportName    string
	LocalName     string
}

// Module describes the imports and exports of a module. It is attached to
// the module's root Function.
type Module struct {
	Requests        []string
	ImportEntries   []ImportEntry
	LocalExports    []ExportEntry
	IndirectExports []ExportEntry
	StarExports     []ExportEntry
	Imports         []*ImportDeclaration
	Exports         []*ExportDeclaration
}

// ImportDeclaration is an import statement. Side-effect imports have a nil
// Clause and From, and carry only ModuleSpecifier.
//
// Example:
//
//	import a, { b as c } from "./mod.js";
type ImportDeclaration struct {
	StmtRange
	ModuleSpecifier *Literal
	Clause          *ImportClause
	From            *From
}

// ImportClause is the binding part of an import declaration.
type ImportClause struct {
	Range
	Default   *Ident
	NameSpace *NameSpaceImport
	Named     *NamedImports
}

// NameSpaceImport is "* as name".
type NameSpaceImport struct {
	Range
	Binding *Ident
}

// NamedImports is "{ a, b as c }".
type NamedImports struct {
	Range
	Specifiers []*ImportSpecifier
}

// ImportSpecifier imports Name, bound locally as Binding or, when nil, as Name.
type ImportSpecifier struct {
	Range
	Binding *Ident
	Name    *Ident
}

// From is the "from" clause of an import or export declaration.
type From struct {
	Range
	ModuleSpecifier *Literal
}

// Specifier returns the module request.
func (f *From) Specifier() string { return f.ModuleSpecifier.Value.String() }

// ExportDeclaration is an export statement. Exactly one of Clause (with an
// optional From), From alone (star export), Expression or Var is set.
type ExportDeclaration struct {
	StmtRange
	Clause     *ExportClause
	From       *From
	StarName   *Ident
	Expression Expression
	Var        *Var
	Default    bool
}

// ExportClause is "{ a, b as c }" in an export declaration.
type ExportClause struct {
	Range
	Specifiers []*ExportSpecifier
}

// ExportSpecifier exports Local as Export or, when nil, under its own name.
type ExportSpecifier struct {
	Range
	Local  *Ident
	Export *Ident
}

func (*ImportClause) clauseNode()    {}
func (*NameSpaceImport) clauseNode() {}
func (*NamedImports) clauseNode()    {}
func (*ImportSpecifier) clauseNode() {}
func (*From) clauseNode()            {}
func (*ExportClause) clauseNode()    {}
func (*ExportSpecifier) clauseNode() {}
