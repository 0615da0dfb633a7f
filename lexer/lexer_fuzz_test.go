package lexer

import (
	"testing"

	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

func FuzzLexer(f *testing.F) {
	seeds := []string{
		// Punctuators
		"{}", "()", "[]", "a?.b", "a ?? b", "a >>>= b", "...x", "=>", "**=",

		// Numbers
		"0", "42", "1.5e-3", ".5", "0x1F", "0o17", "0b1010", "017", "1_000", "123n", "1_",

		// Strings and templates
		`"double"`, `'single'`, `'\x41A\u{41}'`, "`a${b}c`", "`${`${x}`}`", "'open",

		// Comments
		"// line", "/* block */", "/* open", "//# sourceURL=a.js",

		// Identifiers
		"ident", "$_", "#priv", `\u0061b`, "caf\u00e9",

		// Whitespace and line breaks
		" ", "\t", "\n", "\r\n", "\u2028", "\ufeff",

		// Edge cases
		"", "`", "}", "${", "\\", "\x00",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("lexer panicked on input %q: %v", data, r)
			}
		}()

		src, err := source.New("fuzz.js", data)
		if err != nil {
			return
		}
		for _, opts := range []Options{
			{Edition: 13},
			{Edition: 5, Scripting: true},
			{Edition: 13, JSX: true, Shebang: true},
		} {
			tokens, err := Tokenize(src, opts)
			if len(tokens) == 0 {
				t.Fatalf("no tokens for %q", data)
			}
			last := tokens[len(tokens)-1]
			if err == nil && last.Type() != token.EOF {
				t.Errorf("last token must be EOF, got %v", last)
			}
			if err != nil && last.Type() != token.ERROR {
				t.Errorf("error %v without ERROR token", err)
			}
			for i, tok := range tokens {
				if tok.Type() == token.EOL {
					continue
				}
				if tok.End() > src.Len() {
					t.Errorf("token %d %v ends beyond %d", i, tok, src.Len())
				}
			}
		}
	})
}
