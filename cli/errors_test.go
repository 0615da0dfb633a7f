package cli

import (
	stdErrors "errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

const rendererSource = `function greet(name) {
  const message = "hello " + name;
  return message
}
let total = greet("world") +;
console.log(total);`

func rendererError(t *testing.T, content string, position, length int, message string) *errors.ParserError {
	t.Helper()
	src, err := source.New("app.js", content)
	assert.NoError(t, err)
	return errors.NewParserError(errors.SyntaxError, message, src, token.New(token.SEMICOLON, position, length))
}

func TestErrorRendererWithSourceContext(t *testing.T) {
	position := strings.Index(rendererSource, "+;") + 1
	parseErr := rendererError(t, rendererSource, position, 1, "Expected an operand but found ;")

	output := NewErrorRenderer([]rune(rendererSource)).Render(parseErr)

	assert.Contains(t, output, "app.js:5:29: Expected an operand but found ;")
	assert.Contains(t, output, `let total = greet("world") +;`)
	assert.Contains(t, output, "return message")
	assert.Contains(t, output, "^")

	// "5 │ " prefixes the source line, four spaces the caret line.
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if strings.Contains(line, "let total") {
			caretLine := lines[i+1]
			want := 4 + strings.Index(`let total = greet("world") +;`, ";")
			assert.Equal(t, want, strings.Index(caretLine, "^"))
		}
	}
}

func TestErrorRendererWithoutSourceContext(t *testing.T) {
	parseErr := rendererError(t, "var = 1;", 4, 1, "Expected ident but found =")

	output := NewErrorRenderer(nil).Render(parseErr)

	assert.Contains(t, output, "app.js:1:5: Expected ident but found =")
	assert.NotContains(t, output, "^")
}

func TestErrorRendererPlainError(t *testing.T) {
	output := NewErrorRenderer([]rune("x")).Render(stdErrors.New("too many errors"))
	assert.Contains(t, output, "too many errors")
}

func TestErrorRendererBoundsChecking(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		position int
	}{
		{"FirstLine", "}", 0},
		{"LastLine", "a;\nb;\n)", 6},
		{"SingleLine", "let x = );", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseErr := rendererError(t, tt.content, tt.position, 1, "unexpected token")
			output := NewErrorRenderer([]rune(tt.content)).Render(parseErr)
			assert.Contains(t, output, "unexpected token")
			assert.Contains(t, output, "^")
		})
	}
}

func TestErrorRendererRenderAll(t *testing.T) {
	first := rendererError(t, "a b\nc d", 2, 1, "first problem")
	second := rendererError(t, "a b\nc d", 6, 1, "second problem")

	output := NewErrorRenderer([]rune("a b\nc d")).RenderAll([]error{first, second})

	assert.Contains(t, output, "first problem")
	assert.Contains(t, output, "second problem")
	assert.True(t, strings.Index(output, "first problem") < strings.Index(output, "second problem"))
	assert.Equal(t, "", NewErrorRenderer(nil).RenderAll(nil))
}
