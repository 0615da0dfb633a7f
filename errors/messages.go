package errors

import (
	"strconv"
	"strings"
)

// messages maps message keys to templates. Placeholders are {0}, {1}, ...
var messages = map[string]string{
	// Lexer
	"lexer.missing.close.quote":          "Missing close quote",
	"lexer.invalid.hex":                  "Invalid hex digit",
	"lexer.invalid.octal":                "Invalid octal digit",
	"lexer.strict.no.octal":              "cannot use octal escapes in strict mode",
	"lexer.strict.no.nonoctaldecimal":    "cannot use non-octal decimal escapes in strict mode",
	"lexer.json.invalid.number":          "Invalid JSON number format",
	"lexer.invalid.escape.char":          "Invalid escape character",
	"lexer.illegal.identifier.character": "Illegal character in identifier",
	"lexer.missing.space.after.number":   "Missing space after numeric literal",
	"lexer.invalid.numeric.separator":    "Invalid use of numeric separator",
	"lexer.unterminated.comment":         "Missing close of comment",
	"lexer.unterminated.regex":           "Missing close of regular expression",
	"lexer.unterminated.template":        "Missing close of template literal",
	"lexer.here.missing.end.marker":      "Here string missing end marker \"{0}\"",
	"lexer.here.non.matching.delimiter":  "Non-matching here string delimiter",
	"lexer.edit.string.missing.brace":    "Edit string expression missing closing brace",
	"lexer.invalid.character":            "Unexpected character {0}",

	// Parser
	"parser.expected":                         "Expected {0} but found {1}",
	"parser.expected.stmt":                    "Expected statement but found {0}",
	"parser.expected.operand":                 "Expected an operand but found {0}",
	"parser.expected.lvalue":                  "Expected l-value but found {0}",
	"parser.expected.comma":                   "Expected comma but found {0}",
	"parser.expected.property.id":             "Expected property id but found {0}",
	"parser.expected.ident":                   "Expected ident but found {0}",
	"parser.expected.binding.identifier":      "Expected binding identifier",
	"parser.expected.named.import":            "Expected named import",
	"parser.expected.import":                  "Expected import clause or module specifier",
	"parser.expected.as":                      "Expected \"as\"",
	"parser.expected.from":                    "Expected \"from\"",
	"parser.expected.target":                  "Expected \"target\" after \"new.\"",
	"parser.expected.jsx.name.mismatch":       "Expected closing tag </{0}> but found </{1}>",
	"parser.invalid.export":                   "Invalid export declaration",
	"parser.invalid.lvalue":                   "Invalid left hand side for assignment",
	"parser.invalid.arrow.parameter":          "Invalid arrow function parameter",
	"parser.invalid.property.initializer":     "Invalid property initializer",
	"parser.invalid.destructuring.target":     "Invalid destructuring assignment target",
	"parser.invalid.return":                   "Invalid return statement",
	"parser.invalid.new.target":               "new.target expression is only allowed in functions",
	"parser.invalid.super":                    "invalid use of keyword \"super\"",
	"parser.invalid.private.ident":            "Invalid private identifier",
	"parser.invalid.static.initializer":       "Static initializer blocks must be static",
	"parser.invalid.for.await.of":             "for await is only allowed in async functions",
	"parser.invalid.nullish.mix":              "Cannot mix ?? with || or && without parentheses",
	"parser.invalid.optional.template":        "Tagged templates cannot be used in optional chains",
	"parser.invalid.optional.new":             "Optional chaining cannot appear in a new expression",
	"parser.invalid.rest.trailing.comma":      "Rest element may not have a trailing comma",
	"parser.invalid.rest.element":             "Rest element must be last element",
	"parser.invalid.await":                    "\"await\" is only allowed in async functions",
	"parser.invalid.yield":                    "\"yield\" is not allowed in this context",
	"parser.invalid.catch.parameter":          "Invalid catch parameter",
	"parser.invalid.decorator":                "Decorators are only allowed on classes and class members",
	"parser.missing.const.assignment":         "Missing assignment to constant \"{0}\"",
	"parser.missing.destructuring.assignment": "Missing assignment in destructuring declaration",
	"parser.missing.catch.or.finally":         "Missing catch or finally after try",
	"parser.multiple.constructors":            "Class contains more than one constructor",
	"parser.multiple.defaults":                "Duplicate default in switch statement",
	"parser.duplicate.label":                  "Duplicate label {0}",
	"parser.undefined.label":                  "Undefined label {0}",
	"parser.illegal.break.stmt":               "Illegal break statement",
	"parser.illegal.continue.stmt":            "Illegal continue statement",
	"parser.no.func.decl.here":                "Function declarations can only occur at program or function body level. You should use a function expression here instead.",
	"parser.no.func.decl.here.warn":           "Function declarations should only occur at program or function body level. Function declaration in nested block was converted to a function expression.",
	"parser.strict.no.with":                   "\"with\" statement cannot be used in strict mode",
	"parser.strict.name":                      "\"{0}\" cannot be used as {1} in strict mode",
	"parser.strict.cant.delete.ident":         "cannot delete identifier \"{0}\" in strict mode",
	"parser.strict.param.redefinition":        "strict mode function cannot have duplicate parameter name \"{0}\"",
	"parser.strict.no.octal":                  "cannot use octal value in strict mode",
	"parser.strict.no.func.decl.here":         "In strict mode, function declarations can only occur at program or function body level. You should use a function expression here instead.",
	"parser.param.redefinition":               "Duplicate parameter name \"{0}\"",
	"parser.redeclare.variable":               "Variable \"{0}\" has already been declared",
	"parser.unexpected.token":                 "Unexpected token {0}",
	"parser.unexpected.import.meta":           "import.meta is not supported",
	"parser.generator.constructor":            "Class constructor must not be a generator",
	"parser.async.constructor":                "Class constructor must not be async",
	"parser.accessor.constructor":             "Class constructor must not be an accessor",
	"parser.static.prototype.method":          "Static class method must not be named \"prototype\"",
	"parser.static.prototype.field":           "Static class field must not be named \"prototype\"",
	"parser.constructor.field":                "Class field must not be named \"constructor\"",
	"parser.for.in.loop.initializer":          "for-in loop declaration may not have an initializer",
	"parser.many.vars.in.for.in.loop":         "Only one variable allowed in {0} loop",
	"parser.not.lvalue.for.in.loop":           "Invalid left side value of {0} loop",
	"parser.use.strict.non.simple.param":      "\"use strict\" directive not allowed in function with non-simple parameter list",
	"parser.trailing.comma.in.json":           "Trailing comma is not allowed in JSON",
	"parser.syntax.extension":                 "{0} is a syntax extension",
	"parser.new.with.extension":               "Trailing object literal after new is a syntax extension",
	"parser.expected.jsx.child":               "Expected JSX child but found {0}",
	"parser.expected.jsx.attribute":           "Expected JSX attribute but found {0}",
	"parser.expected.binding":                 "Expected binding pattern but found {0}",
	"parser.unterminated.template.expression": "Missing close of template expression",
	"parser.property.redefinition":            "Property \"{0}\" already defined",
	"parser.multiple.proto.key":               "Property name __proto__ appears more than once in object literal",
	"parser.let.binding.for":                  "let is not a valid binding name in a for loop",
	"parser.for.each.without.in":              "for each can only be used with for..in",
	"parser.invalid.arrow.body":               "Expected arrow function body but found {0}",
}

// Message returns the formatted message for key. Unknown keys yield the
// key itself followed by the arguments.
func Message(key string, args ...string) string {
	tmpl, ok := messages[key]
	if !ok {
		if len(args) == 0 {
			return key
		}
		return key + ": " + strings.Join(args, ", ")
	}
	for i, arg := range args {
		tmpl = strings.ReplaceAll(tmpl, "{"+strconv.Itoa(i)+"}", arg)
	}
	return tmpl
}
