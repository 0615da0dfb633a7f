package ast

import "strings"

// BlockFlags describe a Block.
type BlockFlags uint32

const (
	// NeedsScope marks blocks that must materialize a scope object, e.g.
	// because of eval or block-scoped declarations.
	NeedsScope BlockFlags = 1 << iota
	// IsSynthetic marks blocks the parser created without braces in the source.
	IsSynthetic
	// IsBody marks the body block of a function or program.
	IsBody
	// IsParameterBlock marks the block holding parameter initializers; its
	// last statement wraps the real body.
	IsParameterBlock
	// IsSwitchBlock marks the block enclosing a switch statement.
	IsSwitchBlock
)

var blockFlagNames = []string{"NeedsScope", "IsSynthetic", "IsBody", "IsParameterBlock", "IsSwitchBlock"}

func (f BlockFlags) String() string { return flagString(uint32(f), blockFlagNames) }

// FunctionFlags describe a Function.
type FunctionFlags uint32

const (
	IsAnonymous FunctionFlags = 1 << iota
	IsDeclared
	IsStrict
	// HasEval marks functions that call eval directly.
	HasEval
	// HasNestedEval marks functions with a nested function that calls eval.
	HasNestedEval
	HasScopeBlock
	DefinesArguments
	UsesArguments
	HasFunctionDeclarations
	IsProgram
	UsesThis
	IsStatement
	IsMethod
	IsClassConstructor
	IsSubclassConstructor
	UsesSuper
	HasDirectSuper
	HasArrowEval
	UsesNewTarget
	HasNonSimpleParameterList
	IsAsync
	HasExpressionBody
)

var functionFlagNames = []string{
	"IsAnonymous", "IsDeclared", "IsStrict", "HasEval", "HasNestedEval", "HasScopeBlock",
	"DefinesArguments", "UsesArguments", "HasFunctionDeclarations", "IsProgram", "UsesThis",
	"IsStatement", "IsMethod", "IsClassConstructor", "IsSubclassConstructor", "UsesSuper",
	"HasDirectSuper", "HasArrowEval", "UsesNewTarget", "HasNonSimpleParameterList", "IsAsync",
	"HasExpressionBody",
}

func (f FunctionFlags) String() string { return flagString(uint32(f), functionFlagNames) }

// VarFlags describe a Var declaration.
type VarFlags uint32

const (
	IsLet VarFlags = 1 << iota
	IsConst
	// IsLastFunctionDeclaration marks the last hoisted function declaration
	// at the top of a body.
	IsLastFunctionDeclaration
	IsExport
	// IsDestructuring marks bindings introduced by a destructuring pattern.
	IsDestructuring
)

var varFlagNames = []string{"IsLet", "IsConst", "IsLastFunctionDeclaration", "IsExport", "IsDestructuring"}

func (f VarFlags) String() string { return flagString(uint32(f), varFlagNames) }

// IdentFlags describe an Ident.
type IdentFlags uint32

const (
	PropertyName IdentFlags = 1 << iota
	InitializedHere
	// FutureStrictName marks identifiers spelled like a strict mode reserved word.
	FutureStrictName
	DirectSuper
	RestParameter
	ProtoProperty
	DefaultParameter
	DestructuredParameter
	PrivateName
)

var identFlagNames = []string{
	"PropertyName", "InitializedHere", "FutureStrictName", "DirectSuper", "RestParameter",
	"ProtoProperty", "DefaultParameter", "DestructuredParameter", "PrivateName",
}

func (f IdentFlags) String() string { return flagString(uint32(f), identFlagNames) }

// ForFlags describe a For statement.
type ForFlags uint32

const (
	IsForIn ForFlags = 1 << iota
	IsForOf
	IsForEach
	IsForAwaitOf
	// PerIterationScope marks loops whose let/const bindings get a fresh
	// scope on every iteration.
	PerIterationScope
)

var forFlagNames = []string{"IsForIn", "IsForOf", "IsForEach", "IsForAwaitOf", "PerIterationScope"}

func (f ForFlags) String() string { return flagString(uint32(f), forFlagNames) }

func flagString(bits uint32, names []string) string {
	if bits == 0 {
		return "0"
	}
	var parts []string
	for i, name := range names {
		if bits&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
