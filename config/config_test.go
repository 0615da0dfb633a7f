package config

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"go.uber.org/zap"
)

func TestNew_Defaults(t *testing.T) {
	env := New()
	assert.Equal(t, Latest, env.Edition)
	assert.True(t, env.EarlyLvalueError)
	assert.False(t, env.Strict)
	assert.False(t, env.JSX)
	assert.Equal(t, AcceptFunctionStatements, env.FunctionStatement)
	assert.True(t, env.Logger != nil)
}

func TestOptions(t *testing.T) {
	logger := zap.NewExample()
	env := New(
		Strict(),
		Edition(ES6),
		JSX(),
		Scripting(),
		Shebang(),
		ConstAsVar(),
		FunctionDeclarationHoisting(),
		FunctionStatement(WarnFunctionStatements),
		EarlyLvalueError(false),
		EmptyStatements(),
		DumpOnError(),
		WithLogger(logger),
	)

	assert.True(t, env.Strict)
	assert.Equal(t, ES6, env.Edition)
	assert.True(t, env.JSX)
	assert.True(t, env.Scripting)
	assert.True(t, env.SyntaxExtensions)
	assert.True(t, env.Shebang)
	assert.True(t, env.ConstAsVar)
	assert.True(t, env.FunctionDeclarationHoisting)
	assert.Equal(t, WarnFunctionStatements, env.FunctionStatement)
	assert.False(t, env.EarlyLvalueError)
	assert.True(t, env.EmptyStatements)
	assert.True(t, env.DumpOnError)
	assert.True(t, env.Logger == logger)
}

func TestEdition_Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"too old", 3, ES5},
		{"in range", ES11, ES11},
		{"too new", 99, Latest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := New(Edition(tt.in))
			assert.Equal(t, tt.want, env.Edition)
			assert.True(t, env.AtLeast(ES5))
		})
	}
}

func TestWithLogger_IgnoresNil(t *testing.T) {
	env := New(WithLogger(nil))
	assert.True(t, env.Logger != nil)
}

func TestParseFunctionStatementBehavior(t *testing.T) {
	for _, s := range []string{"accept", "warning", "error"} {
		b, err := ParseFunctionStatementBehavior(s)
		assert.NoError(t, err)
		assert.Equal(t, s, b.String())
	}
	_, err := ParseFunctionStatementBehavior("maybe")
	assert.EqualError(t, err, `unknown function statement behavior "maybe"`)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, New().Fingerprint(), New().Fingerprint())
	assert.NotEqual(t, New().Fingerprint(), New(JSX()).Fingerprint())
	assert.NotEqual(t, New().Fingerprint(), New(Edition(ES6)).Fingerprint())
	assert.Equal(t, "es13/000000010/accept", New().Fingerprint())
}
