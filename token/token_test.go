package token

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenPacking(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		position int
		length   int
	}{
		{"zero", EOF, 0, 0},
		{"ident", IDENT, 42, 7},
		{"max position", STRING, MaxValue, 1},
		{"max length", TEMPLATE, 3, MaxValue},
		{"last type", AWAIT, MaxValue, MaxValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := New(tt.typ, tt.position, tt.length)
			assert.Equal(t, tt.typ, tok.Type())
			assert.Equal(t, tt.position, tok.Position())
			assert.Equal(t, tt.length, tok.Length())
			assert.Equal(t, tt.position+tt.length, tok.End())
		})
	}
}

func TestTokenRecast(t *testing.T) {
	tok := New(LET, 10, 3)
	recast := tok.Recast(IDENT)
	assert.Equal(t, IDENT, recast.Type())
	assert.Equal(t, 10, recast.Position())
	assert.Equal(t, 3, recast.Length())
}

func TestTokenWithDelimiter(t *testing.T) {
	content := []rune(`x = "abc"`)
	tok := New(STRING, 5, 3)
	assert.Equal(t, "abc", tok.Text(content))
	assert.Equal(t, `"abc"`, tok.WithDelimiter().Text(content))
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"function", FUNCTION},
		{"let", LET},
		{"yield", YIELD},
		{"typeof", TYPEOF},
		{"instanceof", INSTANCEOF},
		{"true", TRUE},
		{"async", IDENT},
		{"await", IDENT},
		{"of", IDENT},
		{"functions", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupKeyword(tt.input))
		})
	}
}

func TestLookupOperator(t *testing.T) {
	tests := []struct {
		input   string
		edition int
		want    Type
		ok      bool
	}{
		{">>>=", 13, ASSIGN_SHR, true},
		{">>>a", 13, SHR, true},
		{">>a", 13, SAR, true},
		{"===", 13, EQ_STRICT, true},
		{"=>", 13, ARROW, true},
		{"=>", 5, ASSIGN, true},
		{"**=", 13, ASSIGN_EXP, true},
		{"**", 5, MUL, true},
		{"?.a", 13, OPTIONAL_ACCESS, true},
		{"?.a", 10, TERNARY, true},
		{"??=", 13, ASSIGN_NULLISH, true},
		{"??=", 11, NULLISHCOALESC, true},
		{"...", 13, ELLIPSIS, true},
		{"..", 13, PERIOD, true},
		{"#", 13, ERROR, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			window := []rune(tt.input + "\x00\x00\x00\x00")
			got, ok := LookupOperator(window[0], window[1], window[2], window[3], tt.edition)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeClassification(t *testing.T) {
	assert.True(t, ADD.IsOperator(false))
	assert.True(t, IN.IsOperator(false))
	assert.False(t, IN.IsOperator(true))
	assert.False(t, LPAREN.IsOperator(false))
	assert.False(t, COLON.IsOperator(false))
	assert.True(t, ASSIGN_ADD.IsAssignment())
	assert.False(t, EQ.IsAssignment())
	assert.True(t, NULLISHCOALESC.IsLogical())
	assert.False(t, EXP.IsLeftAssociative())
	assert.True(t, DIV.StartsWith('/'))
	assert.True(t, ASSIGN_DIV.StartsWith('/'))
	assert.True(t, SHL.StartsWith('<'))
	assert.Equal(t, "ident", IDENT.NameOrType())
	assert.Equal(t, "{", LBRACE.NameOrType())
	assert.Equal(t, "LBRACE", LBRACE.String())
	assert.True(t, IN.IsIdentifierName())
	assert.True(t, CLASS.IsIdentifierName())
	assert.False(t, ADD.IsIdentifierName())
}
