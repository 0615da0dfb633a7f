package ast

import "github.com/robinvdvleuten/jsparse/token"

// FunctionKind distinguishes the sorts of functions.
type FunctionKind uint8

const (
	ScriptFunction FunctionKind = iota
	NormalFunction
	ArrowFunction
	GetterFunction
	SetterFunction
	GeneratorFunction
	ModuleFunction
	ClassFieldInitializer
)

var functionKindNames = [...]string{
	ScriptFunction:        "SCRIPT",
	NormalFunction:        "NORMAL",
	ArrowFunction:         "ARROW",
	GetterFunction:        "GETTER",
	SetterFunction:        "SETTER",
	GeneratorFunction:     "GENERATOR",
	ModuleFunction:        "MODULE",
	ClassFieldInitializer: "CLASS_FIELD_INITIALIZER",
}

func (k FunctionKind) String() string {
	if int(k) < len(functionKindNames) {
		return functionKindNames[k]
	}
	return "UNKNOWN"
}

// ResumeState records where the lexer stood after the closing brace of a
// function body, so a later parse can skip the body. The lexing modes are
// recorded so the skip is only taken under the same tokenization.
type ResumeState struct {
	Position     int
	Line         int
	LinePosition int
	Edition      int
	JSX          bool
	Scripting    bool
}

// Function is a function, method, arrow, accessor, program or module.
// Programs and modules are the root of every parse.
type Function struct {
	Range
	LineNumber int
	LastToken  token.Token
	Ident      *Ident
	// Name is unique within the parse: nested functions are named after
	// their enclosing functions.
	Name       string
	Parameters []*Ident
	Body       *Block
	Kind       FunctionKind
	Flags      FunctionFlags
	// ID is the position of the function token, or -1 for the program. It
	// stays stable across parses of the same source.
	ID int
	// EndState is set for functions whose body can be skipped on a reparse.
	EndState *ResumeState
	// Module is set for the root of a module parse.
	Module *Module
	Source string
}

// Is reports whether all of the given flags are set.
func (f *Function) Is(flags FunctionFlags) bool { return f.Flags&flags == flags }

func (f *Function) IsStrict() bool    { return f.Is(IsStrict) }
func (f *Function) IsProgram() bool   { return f.Is(IsProgram) }
func (f *Function) IsAsync() bool     { return f.Is(IsAsync) }
func (f *Function) IsArrow() bool     { return f.Kind == ArrowFunction }
func (f *Function) IsGenerator() bool { return f.Kind == GeneratorFunction }
func (f *Function) IsModule() bool    { return f.Kind == ModuleFunction }

// IsAnonymous reports whether the function has no name in the source.
func (f *Function) IsAnonymous() bool { return f.Is(IsAnonymous) }

// NeedsScope reports whether the function or one of its nested functions
// calls eval, which forces a materialized scope.
func (f *Function) NeedsScope() bool { return f.Flags&(HasEval|HasNestedEval) != 0 }
