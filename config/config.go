// Package config holds the environment that controls how sources are lexed
// and parsed: language edition, extensions and error policies.
package config

import (
	"fmt"

	"go.uber.org/zap"
)

// Edition numbers of the ECMAScript language versions.
const (
	ES5  = 5
	ES6  = 6
	ES7  = 7
	ES8  = 8
	ES9  = 9
	ES10 = 10
	ES11 = 11
	ES12 = 12
	ES13 = 13

	// Latest is the default edition.
	Latest = ES13
)

// FunctionStatementBehavior selects how function declarations in statement
// position (e.g. directly inside an if branch) are treated.
type FunctionStatementBehavior uint8

const (
	// AcceptFunctionStatements parses them as function expressions bound to a var.
	AcceptFunctionStatements FunctionStatementBehavior = iota
	// WarnFunctionStatements accepts them and records a warning.
	WarnFunctionStatements
	// RejectFunctionStatements reports a syntax error.
	RejectFunctionStatements
)

func (b FunctionStatementBehavior) String() string {
	switch b {
	case AcceptFunctionStatements:
		return "accept"
	case WarnFunctionStatements:
		return "warning"
	case RejectFunctionStatements:
		return "error"
	}
	return "unknown"
}

// ParseFunctionStatementBehavior parses "accept", "warning" or "error".
func ParseFunctionStatementBehavior(s string) (FunctionStatementBehavior, error) {
	switch s {
	case "accept":
		return AcceptFunctionStatements, nil
	case "warning", "warn":
		return WarnFunctionStatements, nil
	case "error":
		return RejectFunctionStatements, nil
	}
	return 0, fmt.Errorf("unknown function statement behavior %q", s)
}

// Environment is the configuration a parse runs under. The zero value is
// not useful; build one with New.
type Environment struct {
	Strict                      bool
	Edition                     int
	JSX                         bool
	Scripting                   bool
	Shebang                     bool
	SyntaxExtensions            bool
	ConstAsVar                  bool
	FunctionDeclarationHoisting bool
	FunctionStatement           FunctionStatementBehavior
	EarlyLvalueError            bool
	EmptyStatements             bool
	DumpOnError                 bool

	Logger *zap.Logger
}

// Option configures an Environment.
type Option func(*Environment)

// New creates an Environment for the latest edition with early lvalue
// errors and the given options applied.
func New(opts ...Option) *Environment {
	env := &Environment{
		Edition:          Latest,
		EarlyLvalueError: true,
		Logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// Strict parses all code as strict mode code.
func Strict() Option {
	return func(e *Environment) { e.Strict = true }
}

// Edition selects the language edition, clamped to ES5..Latest.
func Edition(n int) Option {
	return func(e *Environment) {
		switch {
		case n < ES5:
			n = ES5
		case n > Latest:
			n = Latest
		}
		e.Edition = n
	}
}

// JSX enables JSX elements.
func JSX() Option {
	return func(e *Environment) { e.JSX = true }
}

// Scripting enables shell-style extensions: # comments, here strings, edit
// strings and exec strings. It implies syntax extensions.
func Scripting() Option {
	return func(e *Environment) {
		e.Scripting = true
		e.SyntaxExtensions = true
	}
}

// Shebang allows a leading #! line.
func Shebang() Option {
	return func(e *Environment) { e.Shebang = true }
}

// SyntaxExtensions enables non-standard syntax such as for each loops,
// conditional catch clauses and expression closures.
func SyntaxExtensions() Option {
	return func(e *Environment) { e.SyntaxExtensions = true }
}

// ConstAsVar treats const declarations as var declarations.
func ConstAsVar() Option {
	return func(e *Environment) { e.ConstAsVar = true }
}

// FunctionDeclarationHoisting hoists function declarations in blocks to
// the enclosing function.
func FunctionDeclarationHoisting() Option {
	return func(e *Environment) { e.FunctionDeclarationHoisting = true }
}

// FunctionStatement sets the policy for function declarations in statement
// position.
func FunctionStatement(b FunctionStatementBehavior) Option {
	return func(e *Environment) { e.FunctionStatement = b }
}

// EarlyLvalueError controls whether invalid assignment targets fail the
// parse or become deferred runtime reference errors.
func EarlyLvalueError(enabled bool) Option {
	return func(e *Environment) { e.EarlyLvalueError = enabled }
}

// EmptyStatements keeps lone semicolons as Empty statements.
func EmptyStatements() Option {
	return func(e *Environment) { e.EmptyStatements = true }
}

// DumpOnError writes a stack trace when the parser fails internally.
func DumpOnError() Option {
	return func(e *Environment) { e.DumpOnError = true }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Environment) {
		if logger != nil {
			e.Logger = logger
		}
	}
}

// AtLeast reports whether the configured edition is at least n.
func (e *Environment) AtLeast(n int) bool { return e.Edition >= n }

// Fingerprint identifies the settings that change tokenization or the
// resulting tree, for use in cache keys.
func (e *Environment) Fingerprint() string {
	bit := func(b bool) byte {
		if b {
			return '1'
		}
		return '0'
	}
	flags := []byte{
		bit(e.Strict), bit(e.JSX), bit(e.Scripting), bit(e.Shebang), bit(e.SyntaxExtensions),
		bit(e.ConstAsVar), bit(e.FunctionDeclarationHoisting), bit(e.EarlyLvalueError), bit(e.EmptyStatements),
	}
	return fmt.Sprintf("es%d/%s/%s", e.Edition, flags, e.FunctionStatement)
}
