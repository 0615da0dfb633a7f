package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/jsparse/ast"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []rune // Optional source content for error context
	contextLines  int
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content used to show lines around an error.
func WithSource(source []rune) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// WithContextLines sets how many lines before the error line are shown.
func WithContextLines(n int) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.contextLines = n
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{contextLines: 2}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(interface {
		GetPosition() ast.Position
		Error() string
	}); ok {
		if tf.sourceContent != nil {
			return tf.formatWithSourceContext(e.GetPosition(), e.Error())
		}
		// Parser errors carry their own source line and caret
		if pe, ok := err.(*ParserError); ok && pe.Formatted != "" {
			return pe.Formatted
		}
		return e.Error()
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext shows the message followed by the source lines
// leading up to the error, with a caret under the error column.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(tf.sourceContent), "\n")

	startLine := pos.Line - 1 - tf.contextLines
	endLine := pos.Line // one line after, 0-based

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		line := strings.TrimRight(sourceLines[i], "\r")
		fmt.Fprintf(&buf, "%4d | %s\n", i+1, line)

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("     | ")
			buf.WriteString(CaretIndent(line, pos.Column-1))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// CaretIndent returns the padding that places a caret under the rune at
// column, keeping tabs and counting wide characters twice.
func CaretIndent(line string, column int) string {
	var sb strings.Builder
	for i, r := range []rune(line) {
		if i >= column {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string                 `json:"type"`
	Message  string                 `json:"message"`
	Position *PositionJSON          `json:"position,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Offset   int    `json:"offset"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	errJSON := jf.toJSON(err)
	data, _ := json.Marshal(errJSON)
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	jsonErrors := jf.FormatAllToSlice(errs)
	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]interface{}),
	}

	if e, ok := err.(interface{ GetPosition() ast.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	switch e := err.(type) {
	case *ParserError:
		errJSON.Type = e.Type.String()
		errJSON.Message = e.Message
		errJSON.Details["token"] = e.Token.Type().String()
	case *TooManyErrorsError:
		errJSON.Details["limit"] = e.Limit
	}

	return errJSON
}
