package errors

import (
	"fmt"
	"io"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

// DefaultLimit is the number of errors after which a Manager gives up.
const DefaultLimit = 100

// Reporter receives every error and warning a Manager accepts. Returning a
// non-nil error aborts the parse.
type Reporter interface {
	Report(err error, warning bool) error
}

// PrintReporter writes diagnostics to a writer.
type PrintReporter struct {
	W io.Writer
}

func (r *PrintReporter) Report(err error, warning bool) error {
	fmt.Fprintln(r.W, render(err, warning))
	return nil
}

// BufferReporter collects diagnostics in memory.
type BufferReporter struct {
	buf strings.Builder
}

func (r *BufferReporter) Report(err error, warning bool) error {
	r.buf.WriteString(render(err, warning))
	r.buf.WriteByte('\n')
	return nil
}

// String returns everything reported so far.
func (r *BufferReporter) String() string { return r.buf.String() }

// ThrowReporter returns every error to the caller, so the first error
// aborts the parse. Warnings are dropped.
type ThrowReporter struct{}

func (ThrowReporter) Report(err error, warning bool) error {
	if warning {
		return nil
	}
	return err
}

func render(err error, warning bool) string {
	msg := err.Error()
	if pe, ok := err.(*ParserError); ok {
		msg = pe.Formatted
	}
	if warning {
		return "warning: " + msg
	}
	return msg
}

// Manager counts errors and warnings and decides when parsing must stop.
// A Manager is not safe for concurrent use; give every parse its own.
type Manager struct {
	limit            int
	warningsAsErrors bool
	reporter         Reporter
	dump             io.Writer

	errorCount   int
	warningCount int
	first        *ParserError
	errs         []error
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLimit sets the error limit; 0 means unlimited.
func WithLimit(limit int) ManagerOption {
	return func(m *Manager) { m.limit = limit }
}

// WithWarningsAsErrors counts warnings toward the limit.
func WithWarningsAsErrors() ManagerOption {
	return func(m *Manager) { m.warningsAsErrors = true }
}

// WithReporter replaces the default BufferReporter.
func WithReporter(r Reporter) ManagerOption {
	return func(m *Manager) { m.reporter = r }
}

// WithDump sets where stack traces of internal failures are written.
func WithDump(w io.Writer) ManagerOption {
	return func(m *Manager) { m.dump = w }
}

// NewManager creates a Manager that buffers diagnostics unless configured
// otherwise.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{limit: DefaultLimit, reporter: &BufferReporter{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewThrowManager creates a Manager that aborts on the first error.
func NewThrowManager() *Manager {
	return NewManager(WithReporter(ThrowReporter{}))
}

// Error records err. It returns a non-nil error when the parse must abort:
// either the reporter refused to continue or the limit was exceeded.
func (m *Manager) Error(err error) error {
	if err == nil {
		return nil
	}
	if err := m.checkLimit(); err != nil {
		return err
	}
	m.errorCount++
	m.errs = append(m.errs, err)
	if pe, ok := err.(*ParserError); ok && m.first == nil {
		m.first = pe
	}
	return m.reporter.Report(err, false)
}

// ErrorMessage records an error that has no source position.
func (m *Manager) ErrorMessage(msg string) error {
	return m.Error(fmt.Errorf("%s", msg))
}

// Warning records a warning.
func (m *Manager) Warning(err error) error {
	if err == nil {
		return nil
	}
	if err := m.checkLimit(); err != nil {
		return err
	}
	m.warningCount++
	return m.reporter.Report(err, true)
}

// WarningAt records a warning at tok.
func (m *Manager) WarningAt(message string, src *source.Source, tok token.Token) error {
	return m.Warning(NewParserError(SyntaxError, message, src, tok))
}

// Internal records an unexpected failure, such as a recovered panic. The
// stack trace is written to the dump writer when one is configured.
func (m *Manager) Internal(v interface{}) error {
	wrapped := goerrors.Wrap(v, 2)
	if m.dump != nil {
		fmt.Fprintln(m.dump, wrapped.ErrorStack())
	}
	m.errorCount++
	m.errs = append(m.errs, wrapped)
	return wrapped
}

func (m *Manager) checkLimit() error {
	if m.limit == 0 {
		return nil
	}
	count := m.errorCount
	if m.warningsAsErrors {
		count += m.warningCount
	}
	if count > m.limit {
		return &TooManyErrorsError{Limit: m.limit}
	}
	return nil
}

// HasErrors reports whether any error was recorded.
func (m *Manager) HasErrors() bool { return m.errorCount > 0 }

// ErrorCount returns the number of recorded errors.
func (m *Manager) ErrorCount() int { return m.errorCount }

// WarningCount returns the number of recorded warnings.
func (m *Manager) WarningCount() int { return m.warningCount }

// First returns the first ParserError recorded, or nil.
func (m *Manager) First() *ParserError { return m.first }

// Errors returns all recorded errors in order.
func (m *Manager) Errors() []error { return m.errs }

// Reporter returns the reporter the manager writes to.
func (m *Manager) Reporter() Reporter { return m.reporter }

// Reset clears the counters so the manager can serve another parse.
func (m *Manager) Reset() {
	m.errorCount = 0
	m.warningCount = 0
	m.first = nil
	m.errs = nil
}

// Format renders a diagnostic in the form
//
//	<source>:<line>:<column> <message>
//	<source line>
//	<caret>
//
// The caret is indented to the column, keeping tabs from the source line so
// it lines up in a terminal. Wide characters take two cells.
func Format(message string, src *source.Source, line, column int, tok token.Token) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d %s\n", src.Name(), line, column, message)

	sourceLine := src.SourceLine(tok.Position())
	sb.WriteString(sourceLine)
	sb.WriteByte('\n')

	runes := []rune(sourceLine)
	for i := 0; i < column; i++ {
		switch {
		case i < len(runes) && runes[i] == '\t':
			sb.WriteByte('\t')
		case i < len(runes):
			sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(runes[i])))
		default:
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	return sb.String()
}
