package jsparse

import (
	stdErrors "errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
)

func TestParseScript(t *testing.T) {
	fn, err := ParseScript("app.js", "function add(a, b) { return a + b; }")
	assert.NoError(t, err)
	assert.True(t, fn.IsProgram())
	assert.False(t, fn.IsModule())

	var names []string
	for _, f := range ast.Functions(fn) {
		if !f.IsProgram() {
			names = append(names, f.Ident.Name)
		}
	}
	assert.Equal(t, []string{"add"}, names)
}

func TestParseModule(t *testing.T) {
	fn, err := ParseModule("main.mjs", `import { a } from "./a.js"; export default a;`)
	assert.NoError(t, err)
	assert.True(t, fn.IsModule())
	assert.True(t, fn.IsStrict())
	assert.Equal(t, []string{"./a.js"}, fn.Module.Requests)
}

func TestParseErrors(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		_, err := ParseScript("app.js", "var a = ;")
		assert.Error(t, err)

		var parseErr *Error
		assert.True(t, stdErrors.As(err, &parseErr))
		assert.Equal(t, 1, len(parseErr.Errors))

		var syntaxErr *errors.ParserError
		assert.True(t, stdErrors.As(err, &syntaxErr))
		assert.Equal(t, 1, syntaxErr.Line)
		assert.Equal(t, errors.SyntaxError, syntaxErr.Type)
	})

	t.Run("Multiple", func(t *testing.T) {
		_, err := ParseScript("app.js", "var a = ;\nvar b = );\n")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "(and 1 more errors)")
	})
}

func TestParseOptions(t *testing.T) {
	_, err := ParseScript("app.jsx", "const el = <div>{name}</div>;", config.JSX())
	assert.NoError(t, err)

	_, err = ParseScript("app.js", "let x = 1;", config.Edition(config.ES5))
	assert.Error(t, err)
}
