package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/jsparse"
	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/loader"
	"github.com/robinvdvleuten/jsparse/output"
	"github.com/robinvdvleuten/jsparse/token"
)

// run executes the command line args in process and returns what the
// command wrote to stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var cli Commands
	var stdout, stderr bytes.Buffer
	parser, err := kong.New(&cli,
		kong.Name("jsparse"),
		kong.Writers(&stdout, &stderr),
		kong.Bind(&cli.Globals),
		kong.Exit(func(int) {}),
	)
	assert.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return stdout.String(), stderr.String(), err
	}
	err = ctx.Run()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertExitCode(t *testing.T, want int, err error) {
	t.Helper()
	code, reported := ExitCode(err)
	assert.True(t, reported, "unexpected unreported error: %v", err)
	assert.Equal(t, want, code)
}

func TestParseCmd(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "app.js", "let answer = 42;\n")

	t.Run("Repr", func(t *testing.T) {
		stdout, _, err := run(t, "parse", file)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "ast.Function")
		assert.Contains(t, stdout, "answer")
	})

	t.Run("JSON", func(t *testing.T) {
		stdout, _, err := run(t, "parse", "--format", "json", file)
		assert.NoError(t, err)

		var tree map[string]interface{}
		assert.NoError(t, json.Unmarshal([]byte(stdout), &tree))
		assert.Contains(t, stdout, `"answer"`)
	})

	t.Run("Module", func(t *testing.T) {
		module := writeFile(t, dir, "mod.mjs", `export const answer = 42;`)
		stdout, _, err := run(t, "parse", "--module", module)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "ast.Module")
	})

	t.Run("OutputFile", func(t *testing.T) {
		out := writeFile(t, dir, "tree.txt", "stale")
		_, stderr, err := run(t, "parse", "--output", out, "--force", file)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "Wrote")

		data, err := os.ReadFile(out)
		assert.NoError(t, err)
		assert.Contains(t, string(data), "answer")
	})

	t.Run("RefusesOverwriteWithoutTerminal", func(t *testing.T) {
		if isTerminal() {
			t.Skip("stdin is a terminal")
		}
		out := writeFile(t, dir, "keep.txt", "keep")
		_, _, err := run(t, "parse", "--output", out, file)
		assert.Error(t, err)

		data, err := os.ReadFile(out)
		assert.NoError(t, err)
		assert.Equal(t, "keep", string(data))
	})

	t.Run("SyntaxError", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.js", "let = ;\n")
		_, stderr, err := run(t, "parse", broken)
		assertExitCode(t, 1, err)
		assert.Contains(t, stderr, "parse error")
		assert.Contains(t, stderr, "broken.js:1:")
	})
}

func TestTokensCmd(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "app.js", "let answer = 42; // done\n")

	t.Run("Default", func(t *testing.T) {
		stdout, _, err := run(t, "tokens", file)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "LET")
		assert.Contains(t, stdout, `"answer"`)
		assert.Contains(t, stdout, `"42"`)
		assert.NotContains(t, stdout, "COMMENT")
	})

	t.Run("Comments", func(t *testing.T) {
		stdout, _, err := run(t, "tokens", "--comments", file)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "COMMENT")
	})

	t.Run("LexicalError", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.js", "let s = \"unterminated\n")
		_, stderr, err := run(t, "tokens", broken)
		assertExitCode(t, 1, err)
		assert.Contains(t, stderr, "lexical error")
	})
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.js", "function add(a, b) { return a + b; }\n")
	bad := writeFile(t, dir, "bad.js", "var a = ;\nvar b = );\n")

	t.Run("Passes", func(t *testing.T) {
		stdout, _, err := run(t, "check", good)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed (1 file(s))")
	})

	t.Run("ReportsErrors", func(t *testing.T) {
		_, stderr, err := run(t, "check", good, bad)
		assertExitCode(t, 1, err)
		assert.Contains(t, stderr, "2 syntax error(s) found")
		assert.Contains(t, stderr, "bad.js:1:")
		assert.Contains(t, stderr, "bad.js:2:")
	})

	t.Run("JSON", func(t *testing.T) {
		stdout, _, err := run(t, "check", "--format", "json", good, bad)
		assertExitCode(t, 1, err)

		var report checkReport
		assert.NoError(t, json.Unmarshal([]byte(stdout), &report))
		assert.Equal(t, 2, report.ErrorCount)
		assert.Equal(t, 2, len(report.Files))
		assert.Equal(t, 0, len(report.Files[0].Errors))
		assert.Equal(t, 2, len(report.Files[1].Errors))
		assert.Equal(t, "SyntaxError", report.Files[1].Errors[0].Type)
	})

	t.Run("EditionFlag", func(t *testing.T) {
		arrow := writeFile(t, dir, "arrow.js", "var f = (x) => x;\n")
		_, _, err := run(t, "check", arrow)
		assert.NoError(t, err)

		_, _, err = run(t, "check", "--edition", "5", arrow)
		assertExitCode(t, 1, err)
	})

	t.Run("FollowsImports", func(t *testing.T) {
		modDir := t.TempDir()
		main := writeFile(t, modDir, "main.mjs", `import { x } from "./dep"; import "./gone.js"; export { x };`)
		writeFile(t, modDir, "dep.js", `export const x = ;`)

		_, stderr, err := run(t, "check", "--module", main)
		assertExitCode(t, 1, err)
		assert.Contains(t, stderr, "dep.js")
		assert.Contains(t, stderr, `cannot resolve "./gone.js"`)

		stdout, _, err := run(t, "check", "--module", "--no-follow", main)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed (1 file(s))")
	})

	t.Run("Telemetry", func(t *testing.T) {
		_, stderr, err := run(t, "--telemetry", "check", good)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "check good.js")
		assert.Contains(t, stderr, "parse good.js")
	})
}

func TestModulesCmd(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "main.mjs", `
import def, { b as c } from "./lib.js";
export { c as renamed };
export * from "./all.js";
`)

	stdout, _, err := run(t, "modules", file)
	assert.NoError(t, err)
	assert.Contains(t, stdout, "KIND")
	assert.Contains(t, stdout, "./lib.js")
	assert.Contains(t, stdout, "renamed")
	assert.Contains(t, stdout, "export *")
}

func TestModuleRows(t *testing.T) {
	rows := moduleRows(&ast.Module{
		ImportEntries:   []ast.ImportEntry{{ModuleRequest: "./a.js", ImportName: "default", LocalName: "a"}},
		LocalExports:    []ast.ExportEntry{{ExportName: "b", LocalName: "b"}},
		IndirectExports: []ast.ExportEntry{{ExportName: "c", ModuleRequest: "./c.js", ImportName: "c"}},
		StarExports:     []ast.ExportEntry{{ModuleRequest: "./d.js", ImportName: ast.StarName}},
	})
	assert.Equal(t, [][]string{
		{"import", "", "./a.js", "default", "a"},
		{"export", "b", "", "", "b"},
		{"re-export", "c", "./c.js", "c", ""},
		{"export *", "", "./d.js", "*", ""},
	}, rows)
}

func TestModuleDeclarations(t *testing.T) {
	text := "import def from \"./lib.js\";\nexport { def as renamed };\n"
	fn, err := jsparse.ParseModule("main.mjs", text)
	assert.NoError(t, err)

	decls := moduleDeclarations(fn.Module, []rune(text))
	assert.Equal(t, 2, len(decls))
	assert.True(t, strings.HasPrefix(decls[0], `import def from "./lib.js"`), decls[0])
	assert.True(t, strings.HasPrefix(decls[1], "export { def as renamed }"), decls[1])
}

func TestStyleTokenText(t *testing.T) {
	var buf bytes.Buffer
	styles := output.NewStyles(&buf)

	tests := []struct {
		name string
		typ  token.Type
		want func(string) string
	}{
		{name: "Identifier", typ: token.IDENT, want: styles.Identifier},
		{name: "Number", typ: token.DECIMAL, want: styles.Literal},
		{name: "String", typ: token.STRING, want: styles.Literal},
		{name: "Keyword", typ: token.RETURN, want: styles.Keyword},
		{name: "Punctuator", typ: token.SEMICOLON, want: func(s string) string { return s }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want(`"x"`), styleTokenText(styles, test.typ, `"x"`))
		})
	}
}

func TestGlobalsEnvironment(t *testing.T) {
	t.Run("Flags", func(t *testing.T) {
		g := &Globals{Edition: 6, Strict: true, JSX: true, Scripting: true, FunctionStatement: "error"}
		env, err := g.Environment(zap.NewNop())
		assert.NoError(t, err)
		assert.Equal(t, config.ES6, env.Edition)
		assert.True(t, env.Strict)
		assert.True(t, env.JSX)
		assert.True(t, env.Scripting)
		assert.Equal(t, config.RejectFunctionStatements, env.FunctionStatement)
	})

	t.Run("UnsupportedEdition", func(t *testing.T) {
		g := &Globals{Edition: 42, FunctionStatement: "accept"}
		_, err := g.Environment(zap.NewNop())
		assert.Error(t, err)
	})
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "app.js", "var a = 1;\n")

	var stdout, stderr bytes.Buffer
	w := newFileWatcher(loader.New(), file, &stdout, &stderr, zap.NewNop())
	checks := make(chan *loader.Result, 4)
	w.onCheck = func(r *loader.Result) { checks <- r }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	next := func() *loader.Result {
		select {
		case r := <-checks:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a check")
			return nil
		}
	}

	first := next()
	assert.Equal(t, 0, first.ErrorCount())

	assert.NoError(t, os.WriteFile(file, []byte("var a = ;\n"), 0o644))
	second := next()
	assert.Equal(t, 1, second.ErrorCount())

	cancel()
	assert.NoError(t, <-done)
}
