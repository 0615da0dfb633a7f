package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/loader"
)

type ParseCmd struct {
	File   FileOrStdin `help:"JavaScript input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Module bool        `help:"Parse the input as a module." short:"m"`
	Format string      `help:"Output format (${enum})." enum:"repr,json" default:"repr" short:"f"`
	Output string      `help:"Write the tree to this file instead of stdout." short:"o" type:"path"`
	Force  bool        `help:"Overwrite the output file without asking."`
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	logger := globals.Logger()
	defer func() { _ = logger.Sync() }()

	env, err := globals.Environment(logger)
	if err != nil {
		return err
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), ctx.Stderr,
		fmt.Sprintf("parse %s", filepath.Base(cmd.File.Filename)))
	defer reportTelemetry()

	opts := []loader.Option{loader.WithEnvironment(env), loader.WithLogger(logger)}
	if cmd.Module {
		opts = append(opts, loader.WithModule())
	}
	result, err := cmd.File.Load(runCtx, loader.New(opts...))
	if err != nil {
		return err
	}

	file := result.RootFile()
	if file.HasErrors() {
		renderer := NewErrorRenderer(file.Source.Content())
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(file.Diagnostics()))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		if file.Tree == nil {
			reportTelemetry()
			return NewCommandError(1)
		}
	}

	w := io.Writer(ctx.Stdout)
	if cmd.Output != "" {
		f, err := cmd.createOutput()
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := writeTree(w, file.Tree, cmd.Format); err != nil {
		return err
	}

	if cmd.Output != "" {
		printSuccess(ctx.Stderr, fmt.Sprintf("Wrote %s", pathStyle.Render(cmd.Output)))
	}
	if file.HasErrors() {
		reportTelemetry()
		return NewCommandError(1)
	}
	return nil
}

// createOutput opens the output file, asking before an existing file is
// replaced.
func (cmd *ParseCmd) createOutput() (*os.File, error) {
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q exists. Overwrite it?", cmd.Output))
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return nil, fmt.Errorf("refusing to overwrite %s (use --force)", cmd.Output)
		}
	}
	return os.Create(cmd.Output)
}

func writeTree(w io.Writer, tree *ast.Function, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	default:
		repr.New(w, repr.Indent("  "), repr.OmitEmpty(true)).Println(tree)
		return nil
	}
}
