package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/loader"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A8A8A8", Dark: "#5F5F5F"})
)

// ModulesCmd prints the module descriptor of a file.
type ModulesCmd struct {
	File FileOrStdin `help:"JavaScript module filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *ModulesCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	logger := globals.Logger()
	defer func() { _ = logger.Sync() }()

	env, err := globals.Environment(logger)
	if err != nil {
		return err
	}

	ldr := loader.New(loader.WithModule(), loader.WithEnvironment(env), loader.WithLogger(logger))
	result, err := cmd.File.Load(context.Background(), ldr)
	if err != nil {
		return err
	}

	file := result.RootFile()
	if file.HasErrors() {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(file.Source.Content()).RenderAll(file.Diagnostics()))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	writeModuleTable(ctx.Stdout, file.Tree.Module, file.Source.Content())
	return nil
}

// moduleDeclarations returns the source text of every import and export
// declaration, imports first.
func moduleDeclarations(module *ast.Module, content []rune) []string {
	spans := make([]ast.Span, 0, len(module.Imports)+len(module.Exports))
	for _, d := range module.Imports {
		spans = append(spans, d.Span())
	}
	for _, d := range module.Exports {
		spans = append(spans, d.Span())
	}

	var decls []string
	for _, span := range spans {
		if text := span.Text(content); text != "" {
			decls = append(decls, text)
		}
	}
	return decls
}

// moduleRows flattens a module descriptor into table rows of kind, export
// name, module request, import name and local name.
func moduleRows(module *ast.Module) [][]string {
	var rows [][]string
	for _, e := range module.ImportEntries {
		rows = append(rows, []string{"import", "", e.ModuleRequest, e.ImportName, e.LocalName})
	}
	for _, e := range module.LocalExports {
		rows = append(rows, []string{"export", e.ExportName, "", "", e.LocalName})
	}
	for _, e := range module.IndirectExports {
		rows = append(rows, []string{"re-export", e.ExportName, e.ModuleRequest, e.ImportName, ""})
	}
	for _, e := range module.StarExports {
		rows = append(rows, []string{"export *", e.ExportName, e.ModuleRequest, e.ImportName, ""})
	}
	return rows
}

func writeModuleTable(w io.Writer, module *ast.Module, content []rune) {
	if module == nil {
		return
	}

	if len(module.Requests) > 0 {
		printInfof(w, "Requests:")
		for _, request := range module.Requests {
			_, _ = fmt.Fprintf(w, "  %s\n", pathStyle.Render(request))
		}
		_, _ = fmt.Fprintln(w)
	}

	if decls := moduleDeclarations(module, content); len(decls) > 0 {
		printInfof(w, "Declarations:")
		for _, decl := range decls {
			_, _ = fmt.Fprintf(w, "  %s\n", decl)
		}
		_, _ = fmt.Fprintln(w)
	}

	rows := moduleRows(module)
	if len(rows) == 0 {
		printInfof(w, "No imports or exports")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("KIND", "EXPORT", "MODULE", "IMPORT", "LOCAL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	_, _ = fmt.Fprintln(w, t.Render())
}
