package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/loader"
)

type CheckCmd struct {
	Files    []string `help:"JavaScript files to check (omit for stdin)." arg:"" optional:"" type:"existingfile"`
	Module   bool     `help:"Parse the inputs as modules." short:"m"`
	NoFollow bool     `help:"Do not check the files a module imports."`
	Format   string   `help:"Diagnostics format (${enum})." enum:"text,json" default:"text" short:"f"`
}

// checkReport is the JSON shape of a check run.
type checkReport struct {
	Files      []checkFileReport   `json:"files"`
	Unresolved []loader.Unresolved `json:"unresolved,omitempty"`
	ErrorCount int                 `json:"error_count"`
}

type checkFileReport struct {
	Path   string             `json:"path"`
	Errors []errors.ErrorJSON `json:"errors"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	logger := globals.Logger()
	defer func() { _ = logger.Sync() }()

	env, err := globals.Environment(logger)
	if err != nil {
		return err
	}

	name := loader.StdinName
	if len(cmd.Files) > 0 {
		name = filepath.Base(cmd.Files[0])
	}
	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), ctx.Stderr, fmt.Sprintf("check %s", name))
	defer reportTelemetry()

	opts := []loader.Option{loader.WithEnvironment(env), loader.WithLogger(logger)}
	switch {
	case cmd.Module && !cmd.NoFollow:
		opts = append(opts, loader.WithFollowImports())
	case cmd.Module:
		opts = append(opts, loader.WithModule())
	}
	ldr := loader.New(opts...)

	results, err := cmd.load(runCtx, ldr)
	if err != nil {
		return err
	}

	var errorCount int
	if cmd.Format == "json" {
		errorCount, err = writeCheckJSON(ctx.Stdout, results)
		if err != nil {
			return err
		}
	} else {
		errorCount = writeCheckText(ctx.Stdout, ctx.Stderr, results)
	}

	if errorCount > 0 {
		reportTelemetry()
		return NewCommandError(1)
	}
	return nil
}

func (cmd *CheckCmd) load(ctx context.Context, ldr *loader.Loader) ([]*loader.Result, error) {
	if len(cmd.Files) == 0 {
		input := FileOrStdin{}
		if err := input.EnsureContents(); err != nil {
			return nil, err
		}
		result, err := input.Load(ctx, ldr)
		if err != nil {
			return nil, err
		}
		return []*loader.Result{result}, nil
	}

	results := make([]*loader.Result, 0, len(cmd.Files))
	for _, file := range cmd.Files {
		result, err := ldr.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// writeCheckText renders diagnostics to stderr and a summary line. It
// returns the number of errors found.
func writeCheckText(stdout, stderr io.Writer, results []*loader.Result) int {
	var files, errorCount int
	seen := map[string]bool{}

	for _, result := range results {
		for _, file := range result.Files {
			if seen[file.Path] {
				continue
			}
			seen[file.Path] = true
			files++

			diagnostics := file.Diagnostics()
			if len(diagnostics) == 0 {
				continue
			}
			errorCount += len(diagnostics)

			if isTerminalWriter(stderr) {
				_, _ = fmt.Fprintln(stderr, NewErrorRenderer(file.Source.Content()).RenderAll(diagnostics))
			} else {
				formatter := errors.NewTextFormatter(errors.WithSource(file.Source.Content()))
				_, _ = fmt.Fprintln(stderr, formatter.FormatAll(diagnostics))
			}
			_, _ = fmt.Fprintln(stderr)
		}

		for _, u := range result.Unresolved {
			printWarningf(stderr, "cannot resolve %q imported by %s", u.Request, pathStyle.Render(u.From))
		}
	}

	if errorCount > 0 {
		printError(stderr, fmt.Sprintf("%d syntax error(s) found", errorCount))
		return errorCount
	}

	printSuccess(stdout, fmt.Sprintf("Check passed (%d file(s))", files))
	return 0
}

func writeCheckJSON(w io.Writer, results []*loader.Result) (int, error) {
	formatter := errors.NewJSONFormatter()
	report := checkReport{Files: []checkFileReport{}}
	seen := map[string]bool{}

	for _, result := range results {
		for _, file := range result.Files {
			if seen[file.Path] {
				continue
			}
			seen[file.Path] = true

			diagnostics := file.Diagnostics()
			report.ErrorCount += len(diagnostics)
			report.Files = append(report.Files, checkFileReport{
				Path:   file.Path,
				Errors: formatter.FormatAllToSlice(diagnostics),
			})
		}
		report.Unresolved = append(report.Unresolved, result.Unresolved...)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return 0, err
	}
	return report.ErrorCount, nil
}
