package ast

import "github.com/robinvdvleuten/jsparse/token"

// Block is a brace-delimited statement list, or a synthetic one created by
// the parser for function bodies, loop heads and switch statements.
type Block struct {
	Range
	Statements []Statement
	Flags      BlockFlags
}

// Is reports whether all of the given flags are set.
func (b *Block) Is(flags BlockFlags) bool { return b.Flags&flags == flags }

// Last returns the final statement, or nil for an empty block.
func (b *Block) Last() Statement {
	if len(b.Statements) == 0 {
		return nil
	}
	return b.Statements[len(b.Statements)-1]
}

// ExpressionStatement is an expression evaluated for its side effects.
type ExpressionStatement struct {
	StmtRange
	Expression Expression
}

// Var is a single binding of a var, let or const declaration, a function
// declaration or a class declaration.
type Var struct {
	StmtRange
	Name  *Ident
	Init  Expression
	Flags VarFlags
	// SourceOrder is the position used to order hoisted declarations.
	SourceOrder int
}

// Is reports whether all of the given flags are set.
func (v *Var) Is(flags VarFlags) bool { return v.Flags&flags == flags }

// IsBlockScoped reports whether the binding is let or const.
func (v *Var) IsBlockScoped() bool { return v.Flags&(IsLet|IsConst) != 0 }

// IsFunctionDeclaration reports whether the binding declares a function.
func (v *Var) IsFunctionDeclaration() bool {
	f, ok := v.Init.(*Function)
	return ok && f.Is(IsDeclared)
}

// BlockStatement wraps a Block in statement position.
type BlockStatement struct {
	StmtRange
	Block *Block
}

// NewBlockStatement wraps block, taking its extent.
func NewBlockStatement(line int, block *Block) *BlockStatement {
	return &BlockStatement{StmtRange: StmtRange{Range: block.Range, LineNumber: line}, Block: block}
}

// If is an if statement. Fail is nil without an else branch.
type If struct {
	StmtRange
	Test Expression
	Pass *Block
	Fail *Block
}

// For is a for, for-in, for-of, for-each or for-await-of loop. For in and
// of loops Init holds the binding target and Modify the iterated object.
type For struct {
	StmtRange
	Init   Expression
	Test   *JoinPredecessor
	Modify *JoinPredecessor
	Body   *Block
	Flags  ForFlags
}

// Is reports whether all of the given flags are set.
func (f *For) Is(flags ForFlags) bool { return f.Flags&flags == flags }

// While is a while or do-while loop.
type While struct {
	StmtRange
	Test    *JoinPredecessor
	Body    *Block
	DoWhile bool
}

// Switch is a switch statement. DefaultCase indexes Cases, or is -1.
type Switch struct {
	StmtRange
	Expression  Expression
	Cases       []*Case
	DefaultCase int
}

// Case is a case or default clause. Default clauses have a nil Test.
type Case struct {
	Range
	Test Expression
	Body *Block
}

// Try is a try statement. Catches holds one block per catch clause, each
// wrapping a Catch statement.
type Try struct {
	StmtRange
	Body    *Block
	Catches []*Block
	Finally *Block
}

// Catch is a catch clause. Parameter is nil for an optional catch binding;
// Condition holds the guard of a conditional catch.
type Catch struct {
	StmtRange
	Parameter Expression
	Condition Expression
	Body      *Block
}

// Label is a labelled statement.
type Label struct {
	StmtRange
	Name string
	Body *Block
}

// Throw is a throw statement.
type Throw struct {
	StmtRange
	Expression Expression
}

// Return is a return statement. Expression is nil for a bare return.
type Return struct {
	StmtRange
	Expression Expression
}

// Break is a break statement with an optional label.
type Break struct {
	StmtRange
	Label string
}

// Continue is a continue statement with an optional label.
type Continue struct {
	StmtRange
	Label string
}

// Empty is a lone semicolon.
type Empty struct {
	StmtRange
}

// Debugger is a debugger statement.
type Debugger struct {
	StmtRange
}

// With is a with statement.
type With struct {
	StmtRange
	Expression Expression
	Body       *Block
}

// ErrorStatement stands in for a statement that failed to parse.
type ErrorStatement struct {
	StmtRange
}

// NewErrorStatement marks the span of a statement the parser skipped.
func NewErrorStatement(line int, tok token.Token, finish int) *ErrorStatement {
	return &ErrorStatement{StmtRange: NewStmtRange(line, tok, finish)}
}

func (*ExpressionStatement) stmtNode() {}
func (*Var) stmtNode()                 {}
func (*BlockStatement) stmtNode()      {}
func (*If) stmtNode()                  {}
func (*For) stmtNode()                 {}
func (*While) stmtNode()               {}
func (*Switch) stmtNode()              {}
func (*Try) stmtNode()                 {}
func (*Catch) stmtNode()               {}
func (*Label) stmtNode()               {}
func (*Throw) stmtNode()               {}
func (*Return) stmtNode()              {}
func (*Break) stmtNode()               {}
func (*Continue) stmtNode()            {}
func (*Empty) stmtNode()               {}
func (*Debugger) stmtNode()            {}
func (*With) stmtNode()                {}
func (*ErrorStatement) stmtNode()      {}
func (*ImportDeclaration) stmtNode()   {}
func (*ExportDeclaration) stmtNode()   {}
