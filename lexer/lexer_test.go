package lexer

import (
	"math/big"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

var latest = Options{Edition: 13}

func newSource(t testing.TB, text string) *source.Source {
	t.Helper()
	src, err := source.New("test.js", text)
	assert.NoError(t, err)
	return src
}

// significant drops line breaks.
func significant(tokens []token.Token) []token.Type {
	var types []token.Type
	for _, tok := range tokens {
		if tok.Type() != token.EOL {
			types = append(types, tok.Type())
		}
	}
	return types
}

func tokenize(t *testing.T, text string, opts Options) []token.Token {
	t.Helper()
	tokens, err := Tokenize(newSource(t, text), opts)
	assert.NoError(t, err)
	return tokens
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []token.Type
	}{
		{
			name:  "assignment",
			input: "a = 1;",
			want:  []token.Type{token.IDENT, token.ASSIGN, token.DECIMAL, token.SEMICOLON, token.EOF},
		},
		{
			name:  "longest operator",
			input: "a >>>= b",
			want:  []token.Type{token.IDENT, token.ASSIGN_SHR, token.IDENT, token.EOF},
		},
		{
			name:  "optional chaining",
			input: "a?.b",
			want:  []token.Type{token.IDENT, token.OPTIONAL_ACCESS, token.IDENT, token.EOF},
		},
		{
			name:  "conditional before fraction",
			input: "a?.5:1",
			want:  []token.Type{token.IDENT, token.TERNARY, token.FLOATING, token.COLON, token.DECIMAL, token.EOF},
		},
		{
			name:  "nullish coalescing",
			input: "a ?? b",
			want:  []token.Type{token.IDENT, token.NULLISHCOALESC, token.IDENT, token.EOF},
		},
		{
			name:  "nullish coalescing before es2020",
			input: "a ?? b",
			opts:  Options{Edition: 10},
			want:  []token.Type{token.IDENT, token.TERNARY, token.TERNARY, token.IDENT, token.EOF},
		},
		{
			name:  "keywords",
			input: "class if yield",
			want:  []token.Type{token.CLASS, token.IF, token.YIELD, token.EOF},
		},
		{
			name:  "private name",
			input: "this.#x",
			want:  []token.Type{token.THIS, token.PERIOD, token.IDENT, token.EOF},
		},
		{
			name:  "escaped keyword is an identifier",
			input: `\u0069f`,
			want:  []token.Type{token.IDENT, token.EOF},
		},
		{
			name:  "spread and arrow",
			input: "(...a) => a",
			want:  []token.Type{token.LPAREN, token.ELLIPSIS, token.IDENT, token.RPAREN, token.ARROW, token.IDENT, token.EOF},
		},
		{
			name:  "division is an operator without parser context",
			input: "a / b",
			want:  []token.Type{token.IDENT, token.DIV, token.IDENT, token.EOF},
		},
		{
			name:  "decorator",
			input: "@dec class A {}",
			want:  []token.Type{token.AT, token.IDENT, token.CLASS, token.IDENT, token.LBRACE, token.RBRACE, token.EOF},
		},
		{
			name:  "empty input",
			input: "",
			want:  []token.Type{token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			if opts.Edition == 0 {
				opts.Edition = latest.Edition
			}
			assert.Equal(t, tt.want, significant(tokenize(t, tt.input, opts)))
		})
	}
}

func TestLexerSpans(t *testing.T) {
	text := "let x = 'str' + 42; // done"
	src := newSource(t, text)
	tokens, err := Tokenize(src, latest)
	assert.NoError(t, err)

	var texts []string
	for _, tok := range tokens {
		switch tok.Type() {
		case token.EOL, token.EOF:
			continue
		}
		texts = append(texts, tok.Text(src.Content()))
	}
	assert.Equal(t, []string{"let", "x", "=", "str", "+", "42", ";", "// done"}, texts)
}

func TestLexerLineBreaks(t *testing.T) {
	tokens := tokenize(t, "a\n\n\nb", latest)
	assert.Equal(t, []token.Token{
		token.New(token.EOL, 0, 1),
		token.New(token.IDENT, 0, 1),
		token.New(token.EOL, 4, 4),
		token.New(token.IDENT, 4, 1),
		token.New(token.EOF, 5, 0),
	}, tokens)
}

func TestLexerComments(t *testing.T) {
	tokens := tokenize(t, "a // c\nb /* x */ c", latest)
	types := make([]token.Type, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type())
	}
	assert.Equal(t, []token.Type{
		token.EOL, token.IDENT, token.COMMENT, token.EOL, token.IDENT, token.COMMENT, token.IDENT, token.EOF,
	}, types)

	directive := tokenize(t, "//# sourceURL=x.js", latest)
	assert.Equal(t, []token.Type{token.DIRECTIVE_COMMENT, token.EOF}, significant(directive))
}

func TestLexerShebang(t *testing.T) {
	tokens := tokenize(t, "#!/usr/bin/env node\nx", Options{Edition: 13, Shebang: true})
	assert.Equal(t, []token.Type{token.COMMENT, token.IDENT, token.EOF}, significant(tokens))
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{"unterminated string", "'abc", latest, "Missing close quote"},
		{"unterminated comment", "/* abc", latest, "Missing close of comment"},
		{"unterminated template", "`abc", latest, "Missing close of template literal"},
		{"trailing separator", "1_", latest, "Invalid use of numeric separator"},
		{"number followed by identifier", "3in", latest, "Missing space after numeric literal"},
		{"unknown character", "a \u2603 b", Options{Edition: 5}, "Unexpected character \u2603"},
		{"template before es6", "`a`", Options{Edition: 5}, "Unexpected character `"},
		{"private name before es2022", "#x", Options{Edition: 12}, "Unexpected character #"},
		{"bad identifier escape", `a\u00zz`, latest, "Invalid hex digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(newSource(t, tt.input), tt.opts)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	bigHex, _ := new(big.Int).SetString("1f", 16)
	tests := []struct {
		input string
		typ   token.Type
		want  token.Value
	}{
		{"42", token.DECIMAL, token.Int(42)},
		{"2147483648", token.DECIMAL, token.Long(2147483648)},
		{"9223372036854775808", token.DECIMAL, token.Double(9223372036854775808)},
		{"0x1F", token.HEXADECIMAL, token.Int(31)},
		{"0o17", token.OCTAL, token.Int(15)},
		{"0b101", token.BINARY_NUMBER, token.Int(5)},
		{"017", token.OCTAL_LEGACY, token.Int(15)},
		{"019", token.DECIMAL, token.Int(19)},
		{"1_000_000", token.DECIMAL, token.Int(1000000)},
		{"1.5", token.FLOATING, token.Double(1.5)},
		{".5", token.FLOATING, token.Double(0.5)},
		{"1e3", token.FLOATING, token.Int(1000)},
		{"5e18", token.FLOATING, token.Long(5000000000000000000)},
		{"1e20", token.FLOATING, token.Double(1e20)},
		{"1e-3", token.FLOATING, token.Double(0.001)},
		{"0x1fn", token.BIGINT, token.BigInt{Int: bigHex}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src := newSource(t, tt.input)
			stream := NewTokenStream()
			l := New(src, stream, latest)
			l.Lexify()

			tok := stream.Get(stream.First() + 1)
			assert.Equal(t, tt.typ, tok.Type())

			value, err := l.ValueOf(tok, false)
			assert.NoError(t, err)
			assert.Equal(t, tt.want.String(), value.String())
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestLexerBigInt(t *testing.T) {
	src := newSource(t, "123456789012345678901234567890n")
	stream := NewTokenStream()
	l := New(src, stream, latest)
	l.Lexify()

	tok := stream.Get(1)
	assert.Equal(t, token.BIGINT, tok.Type())
	value, err := l.ValueOf(tok, false)
	assert.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890n", value.String())
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		strict bool
		typ    token.Type
		want   string
	}{
		{"plain", `"abc"`, false, token.STRING, "abc"},
		{"escapes", `'a\tb\n'`, false, token.ESCSTRING, "a\tb\n"},
		{"hex", `'\x41'`, false, token.ESCSTRING, "A"},
		{"unicode", `'\u0041'`, false, token.ESCSTRING, "A"},
		{"code point", `'\u{1F600}'`, false, token.ESCSTRING, "\U0001F600"},
		{"surrogate pair", `'\uD83D\uDE00'`, false, token.ESCSTRING, "\U0001F600"},
		{"legacy octal", `'\101'`, false, token.ESCSTRING, "A"},
		{"null escape in strict mode", `'\0'`, true, token.ESCSTRING, "\x00"},
		{"line continuation", "'a\\\nb'", false, token.ESCSTRING, "ab"},
		{"identity escape", `'\q'`, false, token.ESCSTRING, "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSource(t, tt.input)
			stream := NewTokenStream()
			l := New(src, stream, latest)
			l.Lexify()

			tok := stream.Get(1)
			assert.Equal(t, tt.typ, tok.Type())
			value, err := l.ValueOf(tok, tt.strict)
			assert.NoError(t, err)
			assert.Equal(t, token.Value(token.String(tt.want)), value)
		})
	}
}

func TestLexerStrictOctal(t *testing.T) {
	for _, input := range []string{`'\101'`, `'\01'`, `'\8'`} {
		t.Run(input, func(t *testing.T) {
			src := newSource(t, input)
			stream := NewTokenStream()
			l := New(src, stream, latest)
			l.Lexify()

			_, err := l.ValueOf(stream.Get(1), true)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "strict mode")
		})
	}
}

func TestLexerTemplates(t *testing.T) {
	src := newSource(t, "`a${b}c${ {d:1}.d }e\\n`")
	tokens, err := Tokenize(src, latest)
	assert.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.TEMPLATE_HEAD, token.IDENT, token.TEMPLATE_MIDDLE,
		token.LBRACE, token.IDENT, token.COLON, token.DECIMAL, token.RBRACE, token.PERIOD, token.IDENT,
		token.TEMPLATE_TAIL, token.EOF,
	}, significant(tokens))

	stream := NewTokenStream()
	l := New(src, stream, latest)
	tail := tokens[len(tokens)-2]
	value, err := l.ValueOf(tail, false)
	assert.NoError(t, err)
	assert.Equal(t, token.Value(token.String("e\n")), value)
	assert.Equal(t, `e\n`, l.RawString(tail))
}

func TestLexerNoSubstitutionTemplate(t *testing.T) {
	tokens := tokenize(t, "`line\r\nbreak`", latest)
	assert.Equal(t, []token.Type{token.TEMPLATE, token.EOF}, significant(tokens))

	l := New(newSource(t, "`line\r\nbreak`"), NewTokenStream(), latest)
	assert.Equal(t, "line\nbreak", l.RawString(tokens[1]))
}

func TestLexerRegex(t *testing.T) {
	src := newSource(t, "x = /[/]b+c/gi;")
	stream := NewTokenStream()
	l := New(src, stream, latest)
	l.Lexify()

	div := stream.Get(stream.Last())
	assert.Equal(t, token.DIV, div.Type())
	assert.True(t, l.ScanLiteral(div, token.DIV, nil))

	regex := stream.Get(stream.Last())
	assert.Equal(t, token.REGEX, regex.Type())
	value, err := l.ValueOf(regex, false)
	assert.NoError(t, err)
	assert.Equal(t, token.Value(token.Regex{Expression: "[/]b+c", Options: "gi"}), value)

	l.Lexify()
	assert.Equal(t, token.SEMICOLON, stream.Get(stream.Last()-1).Type())
	assert.Equal(t, token.EOF, stream.Get(stream.Last()).Type())
}

func TestLexerXMLValue(t *testing.T) {
	src := newSource(t, "x = <a>b</a>;")
	l := New(src, NewTokenStream(), latest)

	value, err := l.ValueOf(token.New(token.XML, 4, 8), false)
	assert.NoError(t, err)
	assert.Equal(t, token.Value(token.XMLValue{Expression: "<a>b</a>"}), value)
	assert.Equal(t, "<a>b</a>", value.String())
	assert.False(t, token.IsNumeric(value))
}

func TestLexerRegexRejected(t *testing.T) {
	src := newSource(t, "a /\n/")
	stream := NewTokenStream()
	l := New(src, stream, latest)
	l.Lexify()

	div := stream.Get(stream.Last())
	assert.False(t, l.ScanLiteral(div, token.DIV, nil))
	assert.Equal(t, div, stream.Get(stream.Last()))
}

func TestLexerJSX(t *testing.T) {
	src := newSource(t, `<div className="x">hi {name}</div>`)
	stream := NewTokenStream()
	l := New(src, stream, Options{Edition: 13, JSX: true})
	l.Lexify()

	lt := stream.Get(stream.Last())
	assert.Equal(t, token.LT, lt.Type())
	assert.True(t, l.ScanJSX(lt, token.LT))

	for stream.Get(stream.Last()).Type() != token.EOF {
		l.Lexify()
	}

	var types []token.Type
	var texts []string
	for k := stream.First(); k <= stream.Last(); k++ {
		tok := stream.Get(k)
		if tok.Type() == token.EOL {
			continue
		}
		types = append(types, tok.Type())
		texts = append(texts, tok.Text(src.Content()))
	}
	assert.Equal(t, []token.Type{
		token.LT, token.JSX_IDENTIFIER, token.JSX_IDENTIFIER, token.ASSIGN, token.JSX_STRING, token.JSX_ELEM_END,
		token.JSX_TEXT, token.LBRACE, token.IDENT, token.RBRACE,
		token.JSX_ELEM_START, token.JSX_ELEM_CLOSE, token.JSX_IDENTIFIER, token.JSX_ELEM_END, token.EOF,
	}, types)
	assert.Equal(t, "x", texts[4])
	assert.Equal(t, "hi ", texts[6])
}

func TestLexerJSXAttributeElement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Type
	}{
		{
			name:  "SelfClosing",
			input: "<a d=<e/>>t</a>",
			want: []token.Type{
				token.LT, token.JSX_IDENTIFIER, token.JSX_IDENTIFIER, token.ASSIGN,
				token.JSX_ELEM_START, token.JSX_IDENTIFIER, token.JSX_ELEM_CLOSE, token.JSX_ELEM_END,
				token.JSX_ELEM_END, token.JSX_TEXT,
				token.JSX_ELEM_START, token.JSX_ELEM_CLOSE, token.JSX_IDENTIFIER, token.JSX_ELEM_END, token.EOF,
			},
		},
		{
			name:  "WithChildren",
			input: "<a d=<e>x</e> f>t</a>",
			want: []token.Type{
				token.LT, token.JSX_IDENTIFIER, token.JSX_IDENTIFIER, token.ASSIGN,
				token.JSX_ELEM_START, token.JSX_IDENTIFIER, token.JSX_ELEM_END, token.JSX_TEXT,
				token.JSX_ELEM_START, token.JSX_ELEM_CLOSE, token.JSX_IDENTIFIER, token.JSX_ELEM_END,
				token.JSX_IDENTIFIER, token.JSX_ELEM_END, token.JSX_TEXT,
				token.JSX_ELEM_START, token.JSX_ELEM_CLOSE, token.JSX_IDENTIFIER, token.JSX_ELEM_END, token.EOF,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src := newSource(t, test.input)
			stream := NewTokenStream()
			l := New(src, stream, Options{Edition: 13, JSX: true})
			l.Lexify()
			assert.True(t, l.ScanJSX(stream.Get(stream.Last()), token.LT))
			for stream.Get(stream.Last()).Type() != token.EOF {
				l.Lexify()
			}

			var types []token.Type
			for k := stream.First(); k <= stream.Last(); k++ {
				if typ := stream.Get(k).Type(); typ != token.EOL {
					types = append(types, typ)
				}
			}
			assert.Equal(t, test.want, types)
		})
	}
}

func TestLexerJSXDashedName(t *testing.T) {
	src := newSource(t, `<a data-id-x="1"/>`)
	stream := NewTokenStream()
	l := New(src, stream, Options{Edition: 13, JSX: true})
	l.Lexify()
	assert.True(t, l.ScanJSX(stream.Get(stream.Last()), token.LT))
	l.Lexify()

	attr := stream.Get(stream.First() + 3)
	assert.Equal(t, token.JSX_IDENTIFIER, attr.Type())
	assert.Equal(t, "data-id-x", attr.Text(src.Content()))
}

func TestLexerHereString(t *testing.T) {
	src := newSource(t, "var s = <<EOF\nhello ${name}\nEOF\n;")
	stream := NewTokenStream()
	l := New(src, stream, Options{Edition: 13, Scripting: true})
	l.Lexify()

	shl := stream.Get(stream.Last())
	assert.Equal(t, token.SHL, shl.Type())

	var line, linePosition int
	assert.True(t, l.ScanLiteral(shl, token.SHL, func(ln, pos int) {
		line, linePosition = ln, pos
	}))
	assert.Equal(t, 3, line)
	assert.Equal(t, 28, linePosition)

	for stream.Get(stream.Last()).Type() != token.EOF {
		l.Lexify()
	}

	var types []token.Type
	for k := stream.First(); k <= stream.Last(); k++ {
		if typ := stream.Get(k).Type(); typ != token.EOL {
			types = append(types, typ)
		}
	}
	assert.Equal(t, []token.Type{
		token.VAR, token.IDENT, token.ASSIGN, token.SHL,
		token.STRING, token.ADD, token.LPAREN, token.IDENT, token.RPAREN,
		token.SEMICOLON, token.EOF,
	}, types)

	str := stream.Get(stream.First() + 5)
	assert.Equal(t, "hello ", str.Text(src.Content()))
}

func TestLexerHereStringMissingMarker(t *testing.T) {
	src := newSource(t, "x = <<END\nno end here\n")
	stream := NewTokenStream()
	l := New(src, stream, Options{Edition: 13, Scripting: true})
	l.Lexify()

	shl := stream.Get(stream.Last())
	assert.True(t, l.ScanLiteral(shl, token.SHL, nil))

	bad := stream.Get(stream.Last())
	assert.Equal(t, token.ERROR, bad.Type())
	assert.Contains(t, l.Err(bad).Error(), `Here string missing end marker "END"`)
}

func TestLexerEditString(t *testing.T) {
	tokens := tokenize(t, `"a${b}c"`, Options{Edition: 13, Scripting: true})
	assert.Equal(t, []token.Type{
		token.STRING, token.ADD, token.LPAREN, token.IDENT, token.RPAREN, token.ADD, token.STRING, token.EOF,
	}, significant(tokens))
}

func TestLexerExecString(t *testing.T) {
	tokens := tokenize(t, "`ls ${dir}`", Options{Edition: 5, Scripting: true})
	assert.Equal(t, []token.Type{
		token.EXECSTRING, token.LBRACE,
		token.STRING, token.ADD, token.LPAREN, token.IDENT, token.RPAREN,
		token.RBRACE, token.EOF,
	}, significant(tokens))
}

func TestLexerHashComment(t *testing.T) {
	tokens := tokenize(t, "# comment\nx", Options{Edition: 13, Scripting: true})
	assert.Equal(t, []token.Type{token.COMMENT, token.IDENT, token.EOF}, significant(tokens))
}

func TestLexerPauseOnFunctionBody(t *testing.T) {
	src := newSource(t, "function f() { return 1 }")
	stream := NewTokenStream()
	l := New(src, stream, Options{Edition: 13, PauseOnFunctionBody: true})
	l.Lexify()
	assert.Equal(t, token.LBRACE, stream.Get(stream.Last()).Type())

	l.Lexify()
	assert.Equal(t, token.EOF, stream.Get(stream.Last()).Type())
}

func TestLexerResume(t *testing.T) {
	text := "function f() {\n  return 1\n}\nx"
	src := newSource(t, text)
	stream := NewTokenStream()
	l := New(src, stream, latest)

	closing := len([]rune(text)) - 3
	stream.Reset()
	l.Resume(closing, 3, closing)
	l.Lexify()

	assert.Equal(t, []token.Type{token.RBRACE, token.IDENT, token.EOF}, significant([]token.Token{
		stream.Get(0), stream.Get(1), stream.Get(2), stream.Get(3),
	}))
	assert.Equal(t, token.New(token.EOL, closing+2, 4), stream.Get(1))
}

func TestIdentifierClasses(t *testing.T) {
	assert.True(t, IsIdentifierStart('$'))
	assert.True(t, IsIdentifierStart('é'))
	assert.False(t, IsIdentifierStart('1'))
	assert.True(t, IsIdentifierPart('1'))
	assert.True(t, IsIdentifierPart('\u200d'))
	assert.True(t, IsWhitespace('\u00a0'))
	assert.False(t, IsWhitespace('\n'))
	assert.True(t, IsEOL('\u2028'))
}

func BenchmarkLexer(b *testing.B) {
	src := newSource(b, `
import { a } from "m";
export default class Point {
  #x = 0;
  constructor(x, y) { this.#x = x; this.y = y ?? 0; }
  get length() { return Math.sqrt(this.#x ** 2 + this.y ** 2); }
}
const label = `+"`point ${new Point(1, 2).length}`"+`;
`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Tokenize(src, latest)
	}
}
