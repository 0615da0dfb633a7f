package ast

import "fmt"

// Inspect traverses a tree in depth-first order. It calls f(node) for every
// node; if f returns true, Inspect continues with the node's children.
// Nil children are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	// Expressions
	case *Ident, *Literal, *ErrorExpr:
	case *ArrayLiteral:
		inspectExprs(n.Elements, f)
	case *ObjectLiteral:
		for _, p := range n.Properties {
			Inspect(p, f)
		}
	case *Property:
		inspectExprs(n.Decorators, f)
		inspectExpr(n.Key, f)
		inspectExpr(n.Value, f)
		inspectFunction(n.Getter, f)
		inspectFunction(n.Setter, f)
	case *Unary:
		inspectExpr(n.Operand, f)
	case *Binary:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *Ternary:
		inspectExpr(n.Test, f)
		inspectJoin(n.True, f)
		inspectJoin(n.False, f)
	case *JoinPredecessor:
		inspectExpr(n.Expression, f)
	case *Call:
		inspectExpr(n.Function, f)
		inspectExprs(n.Args, f)
	case *Access:
		inspectExpr(n.Base, f)
	case *Index:
		inspectExpr(n.Base, f)
		inspectExpr(n.Index, f)
	case *Class:
		inspectExprs(n.Decorators, f)
		if n.Ident != nil {
			Inspect(n.Ident, f)
		}
		inspectExpr(n.Heritage, f)
		if n.Constructor != nil {
			Inspect(n.Constructor, f)
		}
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *ClassElement:
		inspectExprs(n.Decorators, f)
		inspectExpr(n.Key, f)
		inspectExpr(n.Value, f)
		inspectFunction(n.Getter, f)
		inspectFunction(n.Setter, f)
	case *JsxElement:
		inspectExprs(n.Attributes, f)
		inspectExprs(n.Children, f)
	case *JsxAttribute:
		inspectExpr(n.Value, f)
	case *ExpressionList:
		inspectExprs(n.Expressions, f)
	case *Runtime:
		inspectExprs(n.Args, f)
	case *Function:
		if n.Ident != nil {
			Inspect(n.Ident, f)
		}
		for _, p := range n.Parameters {
			Inspect(p, f)
		}
		if n.Body != nil {
			Inspect(n.Body, f)
		}

	// Statements
	case *Block:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *ExpressionStatement:
		inspectExpr(n.Expression, f)
	case *Var:
		Inspect(n.Name, f)
		inspectExpr(n.Init, f)
	case *BlockStatement:
		Inspect(n.Block, f)
	case *If:
		inspectExpr(n.Test, f)
		inspectBlock(n.Pass, f)
		inspectBlock(n.Fail, f)
	case *For:
		inspectExpr(n.Init, f)
		inspectJoin(n.Test, f)
		inspectJoin(n.Modify, f)
		inspectBlock(n.Body, f)
	case *While:
		if n.DoWhile {
			inspectBlock(n.Body, f)
			inspectJoin(n.Test, f)
		} else {
			inspectJoin(n.Test, f)
			inspectBlock(n.Body, f)
		}
	case *Switch:
		inspectExpr(n.Expression, f)
		for _, c := range n.Cases {
			Inspect(c, f)
		}
	case *Case:
		inspectExpr(n.Test, f)
		inspectBlock(n.Body, f)
	case *Try:
		inspectBlock(n.Body, f)
		for _, c := range n.Catches {
			Inspect(c, f)
		}
		inspectBlock(n.Finally, f)
	case *Catch:
		inspectExpr(n.Parameter, f)
		inspectExpr(n.Condition, f)
		inspectBlock(n.Body, f)
	case *Label:
		inspectBlock(n.Body, f)
	case *Throw:
		inspectExpr(n.Expression, f)
	case *Return:
		inspectExpr(n.Expression, f)
	case *With:
		inspectExpr(n.Expression, f)
		inspectBlock(n.Body, f)
	case *Break, *Continue, *Empty, *Debugger, *ErrorStatement:

	// Modules
	case *ImportDeclaration:
		if n.ModuleSpecifier != nil {
			Inspect(n.ModuleSpecifier, f)
		}
		if n.Clause != nil {
			Inspect(n.Clause, f)
		}
		if n.From != nil {
			Inspect(n.From, f)
		}
	case *ImportClause:
		if n.Default != nil {
			Inspect(n.Default, f)
		}
		if n.NameSpace != nil {
			Inspect(n.NameSpace, f)
		}
		if n.Named != nil {
			Inspect(n.Named, f)
		}
	case *NameSpaceImport:
		Inspect(n.Binding, f)
	case *NamedImports:
		for _, s := range n.Specifiers {
			Inspect(s, f)
		}
	case *ImportSpecifier:
		Inspect(n.Name, f)
		if n.Binding != nil {
			Inspect(n.Binding, f)
		}
	case *From:
		Inspect(n.ModuleSpecifier, f)
	case *ExportDeclaration:
		if n.Clause != nil {
			Inspect(n.Clause, f)
		}
		if n.From != nil {
			Inspect(n.From, f)
		}
		if n.StarName != nil {
			Inspect(n.StarName, f)
		}
		inspectExpr(n.Expression, f)
		if n.Var != nil {
			Inspect(n.Var, f)
		}
	case *ExportClause:
		for _, s := range n.Specifiers {
			Inspect(s, f)
		}
	case *ExportSpecifier:
		Inspect(n.Local, f)
		if n.Export != nil {
			Inspect(n.Export, f)
		}

	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node type %T", n))
	}
}

func inspectExpr(e Expression, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}

func inspectExprs(list []Expression, f func(Node) bool) {
	for _, e := range list {
		if e != nil {
			Inspect(e, f)
		}
	}
}

func inspectFunction(fn *Function, f func(Node) bool) {
	if fn != nil {
		Inspect(fn, f)
	}
}

func inspectBlock(b *Block, f func(Node) bool) {
	if b != nil {
		Inspect(b, f)
	}
}

func inspectJoin(j *JoinPredecessor, f func(Node) bool) {
	if j != nil && j.Expression != nil {
		Inspect(j, f)
	}
}

// Functions returns every function in the tree rooted at node, in source order.
func Functions(node Node) []*Function {
	var out []*Function
	Inspect(node, func(n Node) bool {
		if fn, ok := n.(*Function); ok {
			out = append(out, fn)
		}
		return true
	})
	return out
}
