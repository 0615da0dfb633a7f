package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/lexer"
	"github.com/robinvdvleuten/jsparse/output"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

// TokensCmd prints the token stream of a JavaScript file.
type TokensCmd struct {
	File     FileOrStdin `help:"JavaScript input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Comments bool        `help:"Include comments and line breaks."`
}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	env, err := globals.Environment(globals.Logger())
	if err != nil {
		return err
	}

	src, err := cmd.File.Source()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tokens, lexErr := lexer.Tokenize(src, lexerOptions(env))
	writeTokens(ctx.Stdout, output.NewStyles(ctx.Stdout), src, tokens, cmd.Comments)

	if lexErr != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(src.Content()).Render(lexErr))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "lexical error")
		return NewCommandError(1)
	}
	return nil
}

func lexerOptions(env *config.Environment) lexer.Options {
	return lexer.Options{
		Edition:   env.Edition,
		Scripting: env.Scripting,
		Shebang:   env.Shebang,
		JSX:       env.JSX,
	}
}

// writeTokens prints one token per line: TYPE line:col length "text".
func writeTokens(w io.Writer, styles *output.Styles, src *source.Source, tokens []token.Token, comments bool) {
	for _, tok := range tokens {
		switch tok.Type() {
		case token.EOF:
			continue
		case token.COMMENT, token.EOL:
			if !comments {
				continue
			}
		}

		pos := tok.Position()
		span := ast.Span{Start: pos, End: tok.End()}
		_, _ = fmt.Fprintf(w, "%s %s %s %s\n",
			styles.TokenType(fmt.Sprintf("%-16s", tok.Type())),
			styles.Dim(fmt.Sprintf("%4d:%-3d", src.Line(pos), src.Column(pos)+1)),
			styles.Dim(fmt.Sprintf("%3d", tok.Length())),
			styleTokenText(styles, tok.Type(), fmt.Sprintf("%q", span.Text(src.Content()))),
		)
	}
}

// styleTokenText colors names and literal values; other tokens print plain.
func styleTokenText(styles *output.Styles, typ token.Type, text string) string {
	switch {
	case typ == token.IDENT || typ == token.JSX_IDENTIFIER:
		return styles.Identifier(text)
	case typ.Kind() == token.Literal:
		return styles.Literal(text)
	case typ.Kind() == token.Keyword:
		return styles.Keyword(text)
	}
	return text
}
