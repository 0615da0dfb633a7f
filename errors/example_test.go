package errors_test

import (
	"fmt"

	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

// Example showing how a parser error renders on the command line
func ExampleTextFormatter() {
	src, _ := source.New("app.js", "let x = ;")
	err := errors.NewParserError(errors.SyntaxError,
		errors.Message("parser.expected.operand", ";"), src, token.New(token.SEMICOLON, 8, 1))

	formatter := errors.NewTextFormatter()
	fmt.Println(formatter.Format(err))
	// Output:
	// app.js:1:8 Expected an operand but found ;
	// let x = ;
	//         ^
}

// Example showing how to use JSONFormatter for machine-readable output
func ExampleJSONFormatter() {
	src, _ := source.New("app.js", "let x = ;")
	errs := []error{
		errors.NewParserError(errors.SyntaxError,
			errors.Message("parser.expected.operand", ";"), src, token.New(token.SEMICOLON, 8, 1)),
	}

	formatter := errors.NewJSONFormatter()
	fmt.Println(formatter.FormatAll(errs))
	// Output:
	// [
	//   {
	//     "type": "SyntaxError",
	//     "message": "Expected an operand but found ;",
	//     "position": {
	//       "filename": "app.js",
	//       "offset": 8,
	//       "line": 1,
	//       "column": 9
	//     },
	//     "details": {
	//       "token": "SEMICOLON"
	//     }
	//   }
	// ]
}
