package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	errLineNoStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A8A8A8", Dark: "#5F5F5F"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []rune
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []rune) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	if e, ok := err.(*errors.ParserError); ok {
		header := fmt.Sprintf("%s:%d:%d: %s", e.SourceName, e.Line, e.Column+1, e.Message)
		if r.source == nil {
			return errorStyle.Render(header)
		}
		return r.renderWithSourceContext(e.GetPosition(), header)
	}

	if e, ok := err.(interface {
		GetPosition() ast.Position
		Error() string
	}); ok && r.source != nil {
		return r.renderWithSourceContext(e.GetPosition(), e.Error())
	}

	return errorStyle.Render(err.Error())
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func (r *ErrorRenderer) renderWithSourceContext(pos ast.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(r.source), "\n")

	startLine := pos.Line - 3
	endLine := pos.Line + 1

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	width := len(fmt.Sprint(endLine + 1))
	for i := startLine; i <= endLine; i++ {
		line := strings.TrimRight(sourceLines[i], "\r")
		buf.WriteString(errLineNoStyle.Render(fmt.Sprintf("%*d │ ", width, i+1)))
		buf.WriteString(errContextStyle.Render(line))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString(strings.Repeat(" ", width+3))
			buf.WriteString(errors.CaretIndent(line, pos.Column-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}
