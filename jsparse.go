// Package jsparse parses JavaScript source text into syntax trees.
//
// ParseScript and ParseModule cover the common case. Use the parser package
// directly for reparsing, standalone parameter lists and function bodies,
// or to inspect recovered errors alongside a partial tree.
package jsparse

import (
	"fmt"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/parser"
	"github.com/robinvdvleuten/jsparse/source"
)

// Error lists every error of a failed parse in source order.
type Error struct {
	Errors []error
}

func (e *Error) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.Errors[0], len(e.Errors)-1)
}

// Unwrap returns the individual errors, so errors.As finds the first
// *errors.ParserError.
func (e *Error) Unwrap() []error { return e.Errors }

// ParseScript parses content as a script named name.
func ParseScript(name, content string, opts ...config.Option) (*ast.Function, error) {
	return parse(name, content, false, opts)
}

// ParseModule parses content as a module named name. The returned function
// carries the module's imports and exports in its Module field.
func ParseModule(name, content string, opts ...config.Option) (*ast.Function, error) {
	return parse(name, content, true, opts)
}

func parse(name, content string, module bool, opts []config.Option) (*ast.Function, error) {
	src, err := source.New(name, content)
	if err != nil {
		return nil, err
	}

	errs := errors.NewManager()
	p := parser.New(src, config.New(opts...), errs)

	var fn *ast.Function
	if module {
		fn, err = p.ParseModule()
	} else {
		fn, err = p.Parse()
	}

	list := errs.Errors()
	if err != nil && !containsError(list, err) {
		list = append(list, err)
	}
	if len(list) > 0 {
		return nil, &Error{Errors: list}
	}
	return fn, nil
}

func containsError(list []error, err error) bool {
	for _, e := range list {
		if e == err {
			return true
		}
	}
	return false
}
