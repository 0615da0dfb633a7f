// Package errors provides the error types, the error manager and the error
// formatting used by the lexer and parser.
//
// Lexical and syntax errors are reported as *ParserError values carrying the
// source position and a preformatted diagnostic. A Manager counts reported
// errors and warnings and decides whether parsing can continue. Formatters
// render error lists for different consumers (CLI text, JSON).
package errors

import (
	"fmt"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

// ErrorType classifies a parser error.
type ErrorType uint8

const (
	// SyntaxError is an unexpected or missing token or an early error.
	SyntaxError ErrorType = iota
	// LexicalError is a malformed literal, comment or character.
	LexicalError
	// ReferenceError is an invalid assignment target.
	ReferenceError
)

func (t ErrorType) String() string {
	switch t {
	case SyntaxError:
		return "SyntaxError"
	case LexicalError:
		return "LexicalError"
	case ReferenceError:
		return "ReferenceError"
	}
	return "Error"
}

// ParserError is a lexical or syntax error at a source position.
type ParserError struct {
	Type ErrorType
	// Message is the bare message, e.g. "Expected ; but found }".
	Message string
	// Formatted is the full diagnostic including the source line and a caret.
	Formatted  string
	SourceName string
	// Line is 1-based.
	Line int
	// Column is 0-based.
	Column     int
	Token      token.Token
	Underlying error
}

// NewParserError builds an error for tok, computing its line and column
// from src and formatting the diagnostic.
func NewParserError(typ ErrorType, message string, src *source.Source, tok token.Token) *ParserError {
	pos := tok.Position()
	line := src.Line(pos)
	column := src.Column(pos)
	return &ParserError{
		Type:       typ,
		Message:    message,
		Formatted:  Format(message, src, line, column, tok),
		SourceName: src.Name(),
		Line:       line,
		Column:     column,
		Token:      tok,
	}
}

func (e *ParserError) Error() string {
	location := fmt.Sprintf("%s:%d:%d", e.SourceName, e.Line, e.Column)
	if e.SourceName == "" {
		location = fmt.Sprintf("line %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("%s %s", location, e.Message)
}

// GetPosition returns the position with a 1-based column.
func (e *ParserError) GetPosition() ast.Position {
	return ast.Position{
		Filename: e.SourceName,
		Offset:   e.Token.Position(),
		Line:     e.Line,
		Column:   e.Column + 1,
	}
}

func (e *ParserError) Unwrap() error {
	return e.Underlying
}

// TooManyErrorsError aborts a parse once the error limit is exceeded.
type TooManyErrorsError struct {
	Limit int
}

func (e *TooManyErrorsError) Error() string {
	return fmt.Sprintf("too many errors (limit %d)", e.Limit)
}

// IsFatal reports whether err must abort a parse rather than be recovered
// from at the next statement.
func IsFatal(err error) bool {
	switch err.(type) {
	case *ParserError:
		return false
	}
	return true
}
