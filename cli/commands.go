package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/output"
	"github.com/robinvdvleuten/jsparse/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
	Verbose   bool `help:"Log parser and loader events to stderr." short:"v"`

	Edition           int    `help:"ECMAScript edition (5 to 13)." default:"13"`
	Strict            bool   `help:"Parse in strict mode."`
	JSX               bool   `help:"Accept JSX elements." name:"jsx"`
	Scripting         bool   `help:"Enable scripting mode: # comments, here strings, exec strings."`
	Shebang           bool   `help:"Skip a leading #! line."`
	SyntaxExtensions  bool   `help:"Accept non-standard syntax such as for each and expression closures."`
	FunctionStatement string `help:"Function declarations in statement position (${enum})." enum:"accept,warning,error" default:"accept"`
}

// Logger returns a development logger when --verbose is set.
func (g *Globals) Logger() *zap.Logger {
	if !g.Verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Environment builds the parse environment from the flags.
func (g *Globals) Environment(logger *zap.Logger) (*config.Environment, error) {
	behavior, err := config.ParseFunctionStatementBehavior(g.FunctionStatement)
	if err != nil {
		return nil, err
	}
	if g.Edition != 0 && (g.Edition < config.ES5 || g.Edition > config.Latest) {
		return nil, fmt.Errorf("unsupported edition %d", g.Edition)
	}

	opts := []config.Option{
		config.FunctionStatement(behavior),
		config.WithLogger(logger),
	}
	if g.Edition != 0 {
		opts = append(opts, config.Edition(g.Edition))
	}
	if g.Strict {
		opts = append(opts, config.Strict())
	}
	if g.JSX {
		opts = append(opts, config.JSX())
	}
	if g.Scripting {
		opts = append(opts, config.Scripting())
	}
	if g.Shebang {
		opts = append(opts, config.Shebang())
	}
	if g.SyntaxExtensions {
		opts = append(opts, config.SyntaxExtensions())
	}
	return config.New(opts...), nil
}

// startTelemetry installs a timing collector when --telemetry is set. The
// returned function ends the root timer and prints the report once.
func (g *Globals) startTelemetry(ctx context.Context, w io.Writer, name string) (context.Context, func()) {
	if !g.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)
	timer := collector.Start(name)

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			timer.End()
			_, _ = fmt.Fprintln(w)
			collector.Report(w, output.NewStyles(w))
		})
	}
}

type Commands struct {
	Globals

	Parse   ParseCmd   `cmd:"" help:"Parse a JavaScript file and print its syntax tree."`
	Tokens  TokensCmd  `cmd:"" help:"Print the token stream of a JavaScript file."`
	Check   CheckCmd   `cmd:"" help:"Parse JavaScript files and report syntax errors."`
	Modules ModulesCmd `cmd:"" help:"Print the imports and exports of a module."`
	Watch   WatchCmd   `cmd:"" help:"Check a file again whenever it or its imports change."`
}
