// Package ast declares the types used to represent syntax trees for JavaScript programs.
//
// A parse produces a *Function for the program or module, whose Body holds
// the statements. Nodes fall into closed families: Expression, Statement,
// and the module clause nodes used by import and export declarations. Each
// family is an interface with an unexported marker method implemented only
// by the types in this package, so a type switch over a family can be
// checked for exhaustiveness.
//
// Trees are built bottom-up by the parser and must not be modified after
// they are returned.
package ast

import "github.com/robinvdvleuten/jsparse/token"

// Node is implemented by every syntax tree node.
type Node interface {
	// FirstToken returns the token the node originates from.
	FirstToken() token.Token
	// Pos returns the offset of the first character of the node.
	Pos() int
	// End returns the offset just past the node.
	End() int
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node that appears in a statement list.
type Statement interface {
	Node
	Line() int
	stmtNode()
}

// ModuleClause is a node that only appears inside import and export
// declarations.
type ModuleClause interface {
	Node
	clauseNode()
}

// Range holds the origin token and the extent of a node.
type Range struct {
	Token  token.Token
	Start  int
	Finish int
}

// NewRange builds a range starting at the token position.
func NewRange(tok token.Token, finish int) Range {
	return Range{Token: tok, Start: tok.Position(), Finish: finish}
}

func (r Range) FirstToken() token.Token { return r.Token }
func (r Range) Pos() int                { return r.Start }
func (r Range) End() int                { return r.Finish }

// Span returns the extent as a Span.
func (r Range) Span() Span { return Span{Start: r.Start, End: r.Finish} }

// StmtRange is a Range with the line the statement starts on.
type StmtRange struct {
	Range
	LineNumber int
}

// NewStmtRange builds a statement range starting at the token position.
func NewStmtRange(line int, tok token.Token, finish int) StmtRange {
	return StmtRange{Range: NewRange(tok, finish), LineNumber: line}
}

func (s StmtRange) Line() int { return s.LineNumber }
