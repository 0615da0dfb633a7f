package ast

import "github.com/robinvdvleuten/jsparse/token"

// PropertyKey is an expression that can name a property without being
// computed: identifiers and string or number literals.
type PropertyKey interface {
	Expression
	PropertyName() string
}

// Ident is an identifier reference or binding.
//
// Example:
//
//	foo
type Ident struct {
	Range
	Name  string
	Flags IdentFlags
}

// NewIdent creates an identifier spanning from the token to finish.
func NewIdent(tok token.Token, finish int, name string) *Ident {
	return &Ident{Range: NewRange(tok, finish), Name: name}
}

func (i *Ident) PropertyName() string { return i.Name }

// Is reports whether all of the given flags are set.
func (i *Ident) Is(flags IdentFlags) bool { return i.Flags&flags == flags }

// With returns a copy of the identifier with additional flags.
func (i *Ident) With(flags IdentFlags) *Ident {
	c := *i
	c.Flags |= flags
	return &c
}

// Renamed returns a copy of the identifier with another name.
func (i *Ident) Renamed(name string) *Ident {
	c := *i
	c.Name = name
	return &c
}

// Literal is a primitive literal value: null, a boolean, a number, a
// string, a regular expression or an XML literal.
type Literal struct {
	Range
	Value token.Value
}

func (l *Literal) PropertyName() string { return l.Value.String() }

// IsString reports whether the literal is a string.
func (l *Literal) IsString() bool {
	_, ok := l.Value.(token.String)
	return ok
}

// ArrayLiteral is an array initializer. Elisions are nil elements.
//
// Example:
//
//	[a, , ...rest]
type ArrayLiteral struct {
	Range
	Elements         []Expression
	HasSpread        bool
	HasTrailingComma bool
}

// ObjectLiteral is an object initializer.
type ObjectLiteral struct {
	Range
	Properties []*Property
}

// Property is a member of an object literal. Accessor properties have a
// nil Value and at least one of Getter or Setter.
type Property struct {
	Range
	Key      Expression
	Value    Expression
	Getter   *Function
	Setter   *Function
	Static   bool
	Computed bool
	// Decorators precede methods of object literals written with "@".
	Decorators []Expression
	// CoverInitializedName marks shorthand properties with a default, which
	// are only valid as destructuring targets.
	CoverInitializedName bool
	// Proto marks a "__proto__: value" property.
	Proto bool
}

// KeyName returns the name of a non-computed key.
func (p *Property) KeyName() string {
	if key, ok := p.Key.(PropertyKey); ok {
		return key.PropertyName()
	}
	return ""
}

// Unary is a prefix or postfix operation. Spread elements, yield, await,
// new and delete are represented as unary nodes too.
type Unary struct {
	Range
	Op      token.Type
	Operand Expression
}

// IsPostfix reports whether the operator follows its operand.
func (u *Unary) IsPostfix() bool {
	return u.Op == token.INCPOSTFIX || u.Op == token.DECPOSTFIX
}

// Binary is an infix operation, including assignments and the comma operator.
type Binary struct {
	Range
	Op    token.Type
	Left  Expression
	Right Expression
}

// IsAssignment reports whether the operator assigns to Left.
func (b *Binary) IsAssignment() bool { return b.Op.IsAssignment() }

// Ternary is the conditional operator.
type Ternary struct {
	Range
	Test  Expression
	True  *JoinPredecessor
	False *JoinPredecessor
}

// JoinPredecessor wraps an expression that is evaluated conditionally, such
// as the right operand of a logical operator or a loop test.
type JoinPredecessor struct {
	Range
	Expression Expression
}

// NewJoinPredecessor wraps expr; a nil expression yields an empty marker.
func NewJoinPredecessor(expr Expression) *JoinPredecessor {
	if expr == nil {
		return &JoinPredecessor{}
	}
	return &JoinPredecessor{Range: Range{Token: expr.FirstToken(), Start: expr.Pos(), Finish: expr.End()}, Expression: expr}
}

// Call is a function call or the call part of a new expression.
type Call struct {
	Range
	LineNumber int
	Function   Expression
	Args       []Expression
	IsNew      bool
	// Optional marks calls written with "?.(".
	Optional bool
}

// Access is a property access with a dot.
type Access struct {
	Range
	Base     Expression
	Property string
	Optional bool
	Private  bool
}

// Index is a property access with brackets.
type Index struct {
	Range
	Base     Expression
	Index    Expression
	Optional bool
}

// ClassElementKind distinguishes class members.
type ClassElementKind uint8

const (
	MethodElement ClassElementKind = iota
	AccessorElement
	FieldElement
	StaticInitializerElement
	ConstructorElement
)

func (k ClassElementKind) String() string {
	switch k {
	case MethodElement:
		return "method"
	case AccessorElement:
		return "accessor"
	case FieldElement:
		return "field"
	case StaticInitializerElement:
		return "static initializer"
	case ConstructorElement:
		return "constructor"
	}
	return "unknown"
}

// ClassElement is a member of a class body.
type ClassElement struct {
	Range
	Kind       ClassElementKind
	Key        Expression
	Value      Expression
	Getter     *Function
	Setter     *Function
	Decorators []Expression
	Static     bool
	Computed   bool
}

// KeyName returns the name of a non-computed key.
func (c *ClassElement) KeyName() string {
	if key, ok := c.Key.(PropertyKey); ok {
		return key.PropertyName()
	}
	return ""
}

// Class is a class declaration or expression. A class without an explicit
// constructor gets a synthesized one.
//
// Example:
//
//	class A extends B { constructor() { super(); } get x() { return 1; } }
type Class struct {
	Range
	LineNumber  int
	Ident       *Ident
	Heritage    Expression
	Constructor *ClassElement
	Elements    []*ClassElement
	Decorators  []Expression
}

// JsxElement is a JSX element or fragment. Fragments have an empty name.
//
// Example:
//
//	<a href="x">{y}</a>
type JsxElement struct {
	Range
	Name       string
	Attributes []Expression
	Children   []Expression
}

// JsxAttribute is a name with an optional value. Spread attributes are
// represented as Unary nodes with SPREAD_OBJECT.
type JsxAttribute struct {
	Range
	Name  string
	Value Expression
}

// ExpressionList is a parenthesized list, used for arrow parameter lists.
type ExpressionList struct {
	Range
	Expressions []Expression
}

// RuntimeRequest names an operation the parser asks a later stage to perform.
type RuntimeRequest uint8

const (
	ReferenceError RuntimeRequest = iota
	ToString
	GetTemplateObject
)

func (r RuntimeRequest) String() string {
	switch r {
	case ReferenceError:
		return "REFERENCE_ERROR"
	case ToString:
		return "TO_STRING"
	case GetTemplateObject:
		return "GET_TEMPLATE_OBJECT"
	}
	return "UNKNOWN"
}

// Runtime is a synthesized request for runtime behavior, such as a deferred
// reference error or template object creation.
type Runtime struct {
	Range
	Request RuntimeRequest
	Args    []Expression
}

// ErrorExpr stands in for an expression or statement that failed to parse.
type ErrorExpr struct {
	Range
}

func (*Ident) exprNode()           {}
func (*Literal) exprNode()         {}
func (*ArrayLiteral) exprNode()    {}
func (*ObjectLiteral) exprNode()   {}
func (*Unary) exprNode()           {}
func (*Binary) exprNode()          {}
func (*Ternary) exprNode()         {}
func (*JoinPredecessor) exprNode() {}
func (*Call) exprNode()            {}
func (*Access) exprNode()          {}
func (*Index) exprNode()           {}
func (*Class) exprNode()           {}
func (*JsxElement) exprNode()      {}
func (*JsxAttribute) exprNode()    {}
func (*ExpressionList) exprNode()  {}
func (*Runtime) exprNode()         {}
func (*ErrorExpr) exprNode()       {}
func (*Function) exprNode()        {}
