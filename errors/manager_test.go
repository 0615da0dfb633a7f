package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

func TestManager_BufferReporter(t *testing.T) {
	m := NewManager()
	first := newParserError(t, "x y", token.New(token.IDENT, 2, 1), "Expected ; but found y")
	second := newParserError(t, "x y", token.New(token.EOF, 3, 0), "Expected ; but found eof")

	assert.NoError(t, m.Error(first))
	assert.NoError(t, m.Error(second))
	assert.NoError(t, m.Warning(fmt.Errorf("careful")))

	assert.True(t, m.HasErrors())
	assert.Equal(t, 2, m.ErrorCount())
	assert.Equal(t, 1, m.WarningCount())
	assert.True(t, m.First() == first)
	assert.Equal(t, 2, len(m.Errors()))

	out := m.Reporter().(*BufferReporter).String()
	assert.Contains(t, out, "app.js:1:2 Expected ; but found y\nx y\n  ^\n")
	assert.Contains(t, out, "warning: careful\n")
}

func TestManager_PrintReporter(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(WithReporter(&PrintReporter{W: &buf}))

	assert.NoError(t, m.ErrorMessage("plain failure"))
	assert.Equal(t, "plain failure\n", buf.String())
	assert.Zero(t, m.First())
}

func TestManager_ThrowReporter(t *testing.T) {
	m := NewThrowManager()
	pe := newParserError(t, "}", token.New(token.RBRACE, 0, 1), "Unexpected token }")

	err := m.Error(pe)
	assert.Error(t, err)
	assert.True(t, err == error(pe))
	assert.NoError(t, m.Warning(fmt.Errorf("ignored")))
}

func TestManager_Limit(t *testing.T) {
	tests := []struct {
		name             string
		opts             []ManagerOption
		errors, warnings int
		wantFatal        bool
	}{
		{"under limit", []ManagerOption{WithLimit(3)}, 3, 0, false},
		{"at limit plus one is still recorded", []ManagerOption{WithLimit(3)}, 4, 0, false},
		{"over limit", []ManagerOption{WithLimit(3)}, 5, 0, true},
		{"warnings ignored", []ManagerOption{WithLimit(1)}, 1, 10, false},
		{"warnings as errors", []ManagerOption{WithLimit(1), WithWarningsAsErrors()}, 1, 2, true},
		{"unlimited", []ManagerOption{WithLimit(0)}, 500, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.opts...)
			var last error
			for i := 0; i < tt.errors; i++ {
				if err := m.ErrorMessage("e"); err != nil {
					last = err
				}
			}
			for i := 0; i < tt.warnings; i++ {
				if err := m.Warning(fmt.Errorf("w")); err != nil {
					last = err
				}
			}
			if tt.wantFatal {
				assert.True(t, last != nil)
				tooMany, ok := last.(*TooManyErrorsError)
				assert.True(t, ok)
				assert.True(t, IsFatal(tooMany))
			} else {
				assert.NoError(t, last)
			}
		})
	}
}

func TestManager_Internal(t *testing.T) {
	var dump bytes.Buffer
	m := NewManager(WithDump(&dump))

	err := m.Internal("index out of range")
	assert.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 1, m.ErrorCount())
	assert.Contains(t, dump.String(), "index out of range")
}

func TestManager_Reset(t *testing.T) {
	m := NewManager()
	assert.NoError(t, m.ErrorMessage("e"))
	m.Reset()
	assert.False(t, m.HasErrors())
	assert.Equal(t, 0, len(m.Errors()))
}

func TestFormat(t *testing.T) {
	src, err := source.New("tabs.js", "\tif (x) {\n\t\treturn @;\n\t}")
	assert.NoError(t, err)

	at := strings.Index(src.Text(), "@")
	tok := token.New(token.ERROR, at, 1)
	line, column := src.Line(at), src.Column(at)

	got := Format("Unexpected character @", src, line, column, tok)
	assert.Equal(t, "tabs.js:2:9 Unexpected character @\n\t\treturn @;\n\t\t       ^", got)
}

func TestParserError(t *testing.T) {
	pe := newParserError(t, "a\n  b c", token.New(token.IDENT, 6, 1), "Expected ; but found c")

	assert.Equal(t, "app.js:2:4 Expected ; but found c", pe.Error())
	pos := pe.GetPosition()
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 5, pos.Column)
	assert.Equal(t, 6, pos.Offset)
	assert.False(t, IsFatal(pe))

	anonymous := &ParserError{Message: "oops", Line: 3, Column: 1}
	assert.Equal(t, "line 3:1 oops", anonymous.Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Expected ; but found }", Message("parser.expected", ";", "}"))
	assert.Equal(t, "Duplicate label a", Message("parser.duplicate.label", "a"))
	assert.Equal(t, "no.such.key", Message("no.such.key"))
	assert.Equal(t, "no.such.key: a, b", Message("no.such.key", "a", "b"))
}
