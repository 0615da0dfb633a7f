package parser

import (
	"strconv"
	"strings"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/token"
)

const (
	constructorName = "constructor"
	prototypeName   = "prototype"
)

// classDeclaration parses a class declaration and binds its name in the
// current block. An anonymous class is only allowed as a default export
// and is bound to the default export name.
func (p *Parser) classDeclaration(isDefault bool, decorators []ast.Expression) (*ast.Class, error) {
	class, err := p.class(true, isDefault, decorators)
	if err != nil {
		return nil, err
	}
	name := class.Ident
	if name == nil {
		name = ast.NewIdent(class.Token.Recast(token.IDENT), class.Token.End(), ast.DefaultExportBinding)
	}
	p.lc.appendStatement(&ast.Var{
		StmtRange:   ast.NewStmtRange(class.LineNumber, class.Token, class.End()),
		Name:        name,
		Init:        class,
		Flags:       ast.IsLet,
		SourceOrder: -1,
	})
	return class, nil
}

// classExpression parses a class in expression position.
func (p *Parser) classExpression() (*ast.Class, error) {
	return p.class(false, false, nil)
}

func (p *Parser) class(isStatement, isDefault bool, decorators []ast.Expression) (*ast.Class, error) {
	if p.typ == token.AT {
		more, err := p.decoratorList()
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, more...)
	}
	classToken, classLine := p.tok, p.line
	if err := p.expect(token.CLASS); err != nil {
		return nil, err
	}

	oldStrict := p.strict
	p.strict = true
	defer func() { p.strict = oldStrict }()

	var name *ast.Ident
	if p.isBindingIdentifier() {
		var err error
		if name, err = p.bindingIdentifier("class name"); err != nil {
			return nil, err
		}
	} else if isStatement && !isDefault {
		return nil, p.expected(token.IDENT.NameOrType())
	}

	class, err := p.classTail(classLine, classToken, name)
	if err != nil {
		return nil, err
	}
	class.Decorators = decorators
	return class, nil
}

// classTail parses the heritage and the body of a class.
func (p *Parser) classTail(classLine int, classToken token.Token, name *ast.Ident) (*ast.Class, error) {
	var heritage ast.Expression
	if p.typ == token.EXTENDS {
		p.next()
		var err error
		if heritage, err = p.leftHandSideExpression(); err != nil {
			return nil, err
		}
		if heritage == nil {
			return nil, p.error("expected.operand", p.found())
		}
	}
	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	type elementKey struct {
		static bool
		name   string
	}
	var (
		constructor *ast.ClassElement
		elements    []*ast.ClassElement
		index       = make(map[elementKey]int)
	)
	for {
		if p.typ == token.SEMICOLON {
			p.next()
			continue
		}
		if p.typ == token.RBRACE {
			break
		}
		elementToken := p.tok
		element, err := p.classElement(heritage != nil)
		if err != nil {
			return nil, err
		}
		switch {
		case element.Kind == ast.ConstructorElement:
			if constructor != nil {
				return nil, p.errorAt(elementToken, "multiple.constructors")
			}
			constructor = element
		case element.Computed, element.Kind == ast.FieldElement, element.Kind == ast.StaticInitializerElement:
			elements = append(elements, element)
		default:
			// A later definition overrides an earlier one, except that a
			// getter and a setter of the same name are combined.
			key := elementKey{static: element.Static, name: element.KeyName()}
			at, ok := index[key]
			if !ok {
				index[key] = len(elements)
				elements = append(elements, element)
				break
			}
			existing := elements[at]
			if element.Kind != ast.AccessorElement || existing.Kind != ast.AccessorElement {
				index[key] = len(elements)
				elements = append(elements, element)
				break
			}
			merged := *existing
			if element.Getter != nil {
				merged.Getter = element.Getter
			}
			if element.Setter != nil {
				merged.Setter = element.Setter
			}
			merged.Finish = element.Finish
			elements[at] = &merged
		}
	}
	lastToken := p.tok
	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	if constructor == nil {
		constructor = p.defaultClassConstructor(classLine, classToken, lastToken, name, heritage != nil)
	}
	return &ast.Class{
		Range:       ast.NewRange(classToken, p.finish),
		LineNumber:  classLine,
		Ident:       name,
		Heritage:    heritage,
		Constructor: constructor,
		Elements:    elements,
	}, nil
}

// defaultClassConstructor synthesizes "constructor() {}" or, for derived
// classes, "constructor(...args) { super(...args); }".
func (p *Parser) defaultClassConstructor(classLine int, classToken, lastToken token.Token, className *ast.Ident, subclass bool) *ast.ClassElement {
	finish := p.finish
	identToken := classToken.Recast(token.IDENT)
	var (
		statements []ast.Statement
		parameters []*ast.Ident
	)
	if subclass {
		super := ast.NewIdent(identToken, finish, superName).With(ast.DirectSuper)
		args := ast.NewIdent(identToken, finish, "args").With(ast.RestParameter)
		spread := &ast.Unary{Range: ast.NewRange(classToken.Recast(token.SPREAD_ARGUMENT), finish), Op: token.SPREAD_ARGUMENT, Operand: args}
		call := &ast.Call{Range: ast.NewRange(classToken, finish), LineNumber: classLine, Function: super, Args: []ast.Expression{spread}}
		statements = []ast.Statement{&ast.ExpressionStatement{StmtRange: ast.NewStmtRange(classLine, classToken, finish), Expression: call}}
		parameters = []*ast.Ident{args}
	}

	name := className
	if name == nil {
		name = ast.NewIdent(identToken, finish, constructorName)
	}
	fn := p.createFunction(name, classToken, ast.NormalFunction, classLine, parameters)
	fn.lastToken = lastToken
	fn.setFlag(ast.IsMethod | ast.IsClassConstructor)
	if subclass {
		fn.setFlag(ast.IsSubclassConstructor | ast.HasDirectSuper)
	}
	if className == nil {
		fn.setFlag(ast.IsAnonymous)
	}
	body := &ast.Block{Range: ast.NewRange(classToken, finish), Statements: statements, Flags: ast.IsBody}
	return &ast.ClassElement{
		Range: ast.NewRange(classToken, finish),
		Kind:  ast.ConstructorElement,
		Key:   name,
		Value: p.function(fn, classToken, body),
	}
}

// isStaticModifier reports whether the STATIC token starts a static
// member rather than naming one.
func (p *Parser) isStaticModifier() bool {
	switch t, _ := p.peekSignificant(1, true); t {
	case token.LPAREN, token.ASSIGN, token.SEMICOLON, token.RBRACE:
		return false
	}
	return true
}

// classElement parses a method, accessor, field or static block.
func (p *Parser) classElement(subclass bool) (*ast.ClassElement, error) {
	var decorators []ast.Expression
	if p.typ == token.AT && p.env.AtLeast(config.ES7) {
		var err error
		if decorators, err = p.decoratorList(); err != nil {
			return nil, err
		}
	}

	elementToken, elementLine := p.tok, p.line
	static := false
	if p.typ == token.STATIC && p.isStaticModifier() {
		static = true
		p.next()
	}
	if p.typ == token.LBRACE {
		if !static || !p.env.AtLeast(config.ES13) {
			return nil, p.error("invalid.static.initializer")
		}
		return p.staticInitializer(elementToken, elementLine)
	}

	async := false
	if p.isAsyncFunctionStart(true) {
		async = true
		p.next()
	}
	generator := false
	if p.typ == token.MUL && p.env.AtLeast(config.ES6) {
		generator = true
		p.next()
	}

	computed := p.typ == token.LBRACKET
	isIdent := p.typ == token.IDENT
	key, err := p.propertyName()
	if err != nil {
		return nil, err
	}
	keyName := ""
	if k, ok := key.(ast.PropertyKey); ok && !computed {
		keyName = k.PropertyName()
	}
	if strings.HasPrefix(keyName, "#") {
		if keyName == "#"+constructorName || !p.env.AtLeast(config.ES13) {
			return nil, p.errorAt(key.FirstToken(), "invalid.private.ident")
		}
		if ident, ok := key.(*ast.Ident); ok {
			key = ident.With(ast.PrivateName)
		}
	}

	element := &ast.ClassElement{Key: key, Decorators: decorators, Static: static, Computed: computed}
	flags := ast.IsMethod

	if isIdent && !computed && !generator && !async && (keyName == "get" || keyName == "set") && p.isPropertyNameStart() {
		getter := keyName == "get"
		accessor, err := p.propertyAccessorFunction(getter, elementToken, elementLine, flags)
		if err != nil {
			return nil, err
		}
		if err := p.verifyAllowedMethodName(accessor.key, static, accessor.computed, false, true); err != nil {
			return nil, err
		}
		element.Kind = ast.AccessorElement
		element.Key = accessor.key
		element.Computed = accessor.computed
		if getter {
			element.Getter = accessor.function
		} else {
			element.Setter = accessor.function
		}
		element.Range = ast.NewRange(elementToken, p.finish)
		return element, nil
	}

	if p.typ == token.LPAREN || generator || async {
		element.Kind = ast.MethodElement
		if !computed && !static && keyName == constructorName {
			if async {
				return nil, p.errorAt(key.FirstToken(), "async.constructor")
			}
			if !generator {
				element.Kind = ast.ConstructorElement
				flags |= ast.IsClassConstructor
				if subclass {
					flags |= ast.IsSubclassConstructor
				}
			}
		}
		if err := p.verifyAllowedMethodName(key, static, computed, generator, false); err != nil {
			return nil, err
		}
		if err := p.expectDontAdvance(token.LPAREN); err != nil {
			return nil, err
		}
		method, err := p.propertyMethodFunction(key, elementToken, elementLine, generator, async, flags, computed)
		if err != nil {
			return nil, err
		}
		element.Value = method.function
		element.Range = ast.NewRange(elementToken, p.finish)
		return element, nil
	}

	if !p.env.AtLeast(config.ES13) {
		return nil, p.expected(token.LPAREN.NameOrType())
	}
	return p.classField(element, elementToken, elementLine, keyName)
}

// verifyAllowedMethodName rejects generator and accessor constructors and
// static methods named prototype.
func (p *Parser) verifyAllowedMethodName(key ast.Expression, static, computed, generator, accessor bool) error {
	if computed {
		return nil
	}
	k, ok := key.(ast.PropertyKey)
	if !ok {
		return nil
	}
	name := k.PropertyName()
	switch {
	case !static && generator && name == constructorName:
		return p.errorAt(key.FirstToken(), "generator.constructor")
	case !static && accessor && name == constructorName:
		return p.errorAt(key.FirstToken(), "accessor.constructor")
	case static && name == prototypeName:
		return p.errorAt(key.FirstToken(), "static.prototype.method")
	}
	return nil
}

// classField parses the optional initializer of a field. The initializer
// becomes the body of a function that is run for every instance, or once
// for a static field.
func (p *Parser) classField(element *ast.ClassElement, elementToken token.Token, line int, keyName string) (*ast.ClassElement, error) {
	switch {
	case !element.Computed && keyName == constructorName:
		return nil, p.errorAt(element.Key.FirstToken(), "constructor.field")
	case !element.Computed && element.Static && keyName == prototypeName:
		return nil, p.errorAt(element.Key.FirstToken(), "static.prototype.field")
	}
	element.Kind = ast.FieldElement

	if p.typ == token.ASSIGN {
		assignToken := p.tok
		p.next()
		name := keyName
		if name == "" {
			name = anonymousPrefix + strconv.Itoa(line)
		}
		ident := ast.NewIdent(element.Key.FirstToken(), element.Key.End(), name)
		fn := p.createFunction(ident, assignToken, ast.ClassFieldInitializer, line, nil)
		fn.setFlag(ast.IsMethod | ast.HasExpressionBody)
		if element.Computed {
			fn.setFlag(ast.IsAnonymous)
		}

		p.lc.push(fn)
		p.hideDefaultName()
		body := p.newBlock()
		initToken := p.tok
		init, err := p.assignmentExpression(false)
		if err == nil {
			fn.lastToken = p.previousToken
			body.append(&ast.Return{
				StmtRange:  ast.NewStmtRange(line, init.FirstToken(), init.End()),
				Expression: init,
			})
		}
		p.lc.pop(body)
		p.popDefaultName()
		p.lc.pop(fn)
		if err != nil {
			return nil, err
		}
		element.Value = p.function(fn, assignToken, p.block(body, initToken, init.End(), ast.IsBody|ast.IsSynthetic))
	}

	if err := p.endOfLine(); err != nil {
		return nil, err
	}
	element.Range = ast.NewRange(elementToken, p.finish)
	return element, nil
}

// staticInitializer parses "static { ... }". The block becomes the body of
// a function run once when the class is defined.
func (p *Parser) staticInitializer(elementToken token.Token, line int) (*ast.ClassElement, error) {
	blockToken := p.tok
	ident := ast.NewIdent(blockToken, blockToken.End(), "static")
	fn := p.createFunction(ident, blockToken, ast.ClassFieldInitializer, line, nil)
	fn.setFlag(ast.IsMethod | ast.IsAnonymous)
	p.lc.push(fn)
	body, err := p.functionBody(fn)
	p.lc.pop(fn)
	if err != nil {
		return nil, err
	}
	return &ast.ClassElement{
		Range:  ast.NewRange(elementToken, p.finish),
		Kind:   ast.StaticInitializerElement,
		Value:  p.function(fn, blockToken, body),
		Static: true,
	}, nil
}

// decoratorList parses "@decorator" entries in front of a class or a
// member. A decorator is a dotted name with optional arguments, or any
// expression in parentheses.
func (p *Parser) decoratorList() ([]ast.Expression, error) {
	var decorators []ast.Expression
	for p.typ == token.AT {
		decoratorLine := p.line
		p.next()
		startToken := p.tok

		var expr ast.Expression
		if p.typ == token.LPAREN {
			p.next()
			var err error
			if expr, err = p.expression(); err != nil {
				return nil, err
			}
			if err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
		} else {
			ident, err := p.ident()
			if err != nil {
				return nil, err
			}
			expr = ident
			for p.typ == token.PERIOD {
				accessToken := p.tok
				p.next()
				if expr, err = p.propertyAccess(accessToken, expr, false); err != nil {
					return nil, err
				}
			}
		}
		if p.typ == token.LPAREN {
			args, err := p.argumentList()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{
				Range:      ast.Range{Token: startToken, Start: expr.Pos(), Finish: p.finish},
				LineNumber: decoratorLine,
				Function:   expr,
				Args:       args,
			}
		}
		decorators = append(decorators, expr)
	}
	return decorators, nil
}
