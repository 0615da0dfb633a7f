package lexer

import "github.com/robinvdvleuten/jsparse/token"

func (l *Lexer) scanRegEx() bool {
	if l.ch1 == '/' || l.ch1 == '*' {
		return false
	}
	start := l.position
	l.Skip(1)
	inBrackets := false
	for !l.AtEOF() && (l.ch0 != '/' || inBrackets) && !IsEOL(l.ch0) {
		if l.ch0 == '\\' {
			l.Skip(1)
			if IsEOL(l.ch0) {
				l.Reset(start)
				return false
			}
			l.Skip(1)
			continue
		}
		switch l.ch0 {
		case '[':
			inBrackets = true
		case ']':
			inBrackets = false
		}
		l.Skip(1)
	}
	if l.ch0 != '/' {
		l.Reset(start)
		return false
	}
	l.Skip(1)
	for !l.AtEOF() && IsIdentifierPart(l.ch0) || l.ch0 == '\\' && l.ch1 == 'u' {
		l.Skip(1)
	}
	l.addFrom(token.REGEX, start)
	return true
}

// scanString reads a quoted string. The token excludes the quotes. In
// scripting mode double quoted and backquoted strings are edit strings
// with embedded ${expression} parts.
func (l *Lexer) scanString() {
	typ := token.STRING
	quote := l.ch0
	l.Skip(1)
	state := l.SaveState()

	for !l.AtEOF() && l.ch0 != quote && !IsEOL(l.ch0) {
		if l.ch0 == '\\' {
			typ = token.ESCSTRING
			l.Skip(1)
			if IsEOL(l.ch0) {
				l.skipEOL(false)
				continue
			}
		}
		l.Skip(1)
	}

	if l.ch0 != quote {
		l.fail(l.position, "missing.close.quote")
		l.addFrom(typ, state.Position-1)
		return
	}
	l.Skip(1)

	state.Limit = l.position - 1
	if !l.opts.Scripting || state.IsEmpty() {
		l.add(typ, state.Position, state.Limit)
		return
	}
	switch quote {
	case '`':
		l.add(token.EXECSTRING, state.Position, state.Limit)
		l.add(token.LBRACE, state.Position, state.Position)
		l.editString(typ, state)
		l.add(token.RBRACE, state.Limit, state.Limit)
	case '"':
		l.editString(typ, state)
	default:
		l.add(typ, state.Position, state.Limit)
	}
}

// editString splits the string in state at every ${expression} and emits
// the pieces joined by "+", each expression lexed in parentheses.
func (l *Lexer) editString(stringType token.Type, state ScannerState) {
	l.within(state, func() {
		stringStart := l.position
		primed := false
		for !l.AtEOF() {
			if l.ch0 == '\\' && stringType == token.ESCSTRING {
				l.Skip(2)
				continue
			}
			if l.ch0 != '$' || l.ch1 != '{' {
				if IsEOL(l.ch0) {
					l.skipEOLChars()
					l.line++
					continue
				}
				l.Skip(1)
				continue
			}

			if !primed || stringStart != l.position {
				if primed {
					l.add(token.ADD, stringStart, stringStart+1)
				}
				l.add(stringType, stringStart, l.position)
				primed = true
			}
			l.Skip(2)

			expression := l.SaveState()
			braces := 1
			for !l.AtEOF() {
				if l.ch0 == '}' {
					braces--
					if braces == 0 {
						break
					}
				} else if l.ch0 == '{' {
					braces++
				}
				l.Skip(1)
			}
			if braces != 0 {
				l.fail(expression.Position-1, "edit.string.missing.brace")
			}
			expression.Limit = l.position
			l.Skip(1)
			stringStart = l.position

			l.add(token.ADD, expression.Position, expression.Position+1)
			l.add(token.LPAREN, expression.Position, expression.Position+1)
			l.within(expression, l.Lexify)
			l.add(token.RPAREN, l.position-1, l.position)
		}
		if stringStart != l.limit {
			if primed {
				l.add(token.ADD, stringStart, stringStart)
			}
			l.add(stringType, stringStart, l.limit)
		}
	})
	l.last = stringType
}

func (l *Lexer) hasHereMarker(identStart, identLength int) bool {
	l.skipWhitespace(false)
	start := l.position
	return l.identifierEqual(identStart, identLength, start, l.scanIdentifier())
}

// scanHereString reads <<MARKER (or <<<MARKER, which keeps the final line
// break) up to a line holding only MARKER. A quoted marker turns off
// ${expression} editing. The rest of the opening line is lexed after the
// string.
func (l *Lexer) scanHereString(lineInfo LineInfoFunc) bool {
	if !l.opts.Scripting {
		return false
	}
	saved := l.save()

	excludeLastEOL := l.ch2 != '<'
	if excludeLastEOL {
		l.Skip(2)
	} else {
		l.Skip(3)
	}

	quote := l.ch0
	noEditing := quote == '"' || quote == '\''
	if noEditing {
		l.Skip(1)
	}

	identStart := l.position
	identLength := l.scanIdentifier()
	if noEditing {
		if l.ch0 != quote {
			l.failLiteral(saved, "here.non.matching.delimiter")
			return true
		}
		l.Skip(1)
	}
	if identLength == 0 {
		l.restore(saved)
		return false
	}

	rest := l.SaveState()
	l.skipLine(false)
	rest.Limit = l.position

	str := l.SaveState()
	stringEnd := l.position
	found := false
	for !l.AtEOF() {
		l.skipWhitespace(false)
		if l.hasHereMarker(identStart, identLength) {
			found = true
			break
		}
		l.skipLine(false)
		stringEnd = l.position
	}

	str.Limit = stringEnd
	if str.IsEmpty() || !found {
		marker := string(l.content[identStart : identStart+identLength])
		l.failLiteral(saved, "here.missing.end.marker", marker)
		return true
	}
	if lineInfo != nil {
		lineInfo(l.line, l.lineStart(l.position))
	}

	if excludeLastEOL {
		if stringEnd > str.Position && l.content[stringEnd-1] == '\n' {
			stringEnd--
		}
		if stringEnd > str.Position && l.content[stringEnd-1] == '\r' {
			stringEnd--
		}
		str.Limit = stringEnd
	}

	if !noEditing && !str.IsEmpty() {
		l.editString(token.STRING, str)
	} else {
		l.add(token.STRING, str.Position, str.Limit)
	}

	l.within(rest, l.Lexify)
	return true
}

// failLiteral returns to saved and emits an ERROR token for the "<<" that
// failed to start a here string.
func (l *Lexer) failLiteral(saved snapshot, key string, args ...string) {
	l.restore(saved)
	start := l.position
	l.fail(start, key, args...)
	l.Skip(2)
	l.addFrom(token.ERROR, start)
}

func (l *Lexer) lineStart(position int) int {
	for position > 0 && !IsEOL(l.content[position-1]) {
		position--
	}
	return position
}

// handleTemplate reads template characters up to the closing backquote or
// the next "${".
func (l *Lexer) handleTemplate() {
	start := l.position
	for !l.AtEOF() {
		switch {
		case l.ch0 == '`':
			l.Skip(1)
			if l.templateExpression {
				l.add(token.TEMPLATE_TAIL, start, l.position-1)
			} else {
				l.add(token.TEMPLATE, start, l.position-1)
			}
			l.template = false
			l.templateExpression = false
			return
		case l.ch0 == '$' && l.ch1 == '{':
			l.Skip(2)
			if l.templateExpression {
				l.add(token.TEMPLATE_MIDDLE, start, l.position-2)
			} else {
				l.add(token.TEMPLATE_HEAD, start, l.position-2)
			}
			l.templateExpression = true
			l.pushState(templateState)
			l.template = false
			l.templateExpression = false
			return
		case l.ch0 == '\\':
			l.Skip(1)
			if IsEOL(l.ch0) {
				l.skipEOL(false)
				continue
			}
		case IsEOL(l.ch0):
			l.skipEOL(false)
			continue
		}
		l.Skip(1)
	}
}

func (l *Lexer) handleJSX() {
	if l.jsxTag {
		l.handleJSXTag()
		return
	}
	switch l.ch0 {
	case '<':
		l.Skip(1)
		l.addFrom(token.JSX_ELEM_START, l.position-1)
		if l.ch0 != '/' {
			l.openJSXElement(false)
		}
		l.jsxTag = true
	case '{':
		l.openJSXExpression()
	case '}', '>':
		l.Skip(1)
		l.addFrom(token.ERROR, l.position-1)
	default:
		l.scanJSXText()
	}
}

func (l *Lexer) handleJSXTag() {
	switch {
	case IsIdentifierStart(l.ch0), l.ch0 == '\\' && l.ch1 == 'u':
		l.scanJSXIdentifier()
		return
	case isStringDelimiter(l.ch0):
		l.scanJSXString()
		return
	}
	switch l.ch0 {
	case '=', '.', ':':
		typ, _ := token.LookupOperator(l.ch0, 0, 0, 0, l.opts.Edition)
		l.Skip(1)
		l.addFrom(typ, l.position-1)
	case '{':
		l.openJSXExpression()
	case '<':
		l.Skip(1)
		l.addFrom(token.JSX_ELEM_START, l.position-1)
		l.openJSXElement(true)
	case '/':
		l.Skip(1)
		l.addFrom(token.JSX_ELEM_CLOSE, l.position-1)
		l.jsxClosing = true
	case '>':
		l.Skip(1)
		l.addFrom(token.JSX_ELEM_END, l.position-1)
		l.jsxTag = false
		if l.jsxClosing {
			l.jsxClosing = false
			l.closeJSXElement()
		}
	default:
		l.Skip(1)
		l.addFrom(token.ERROR, l.position-1)
	}
}

// openJSXElement counts an element start. inTag is set for an element used
// as an attribute value.
func (l *Lexer) openJSXElement(inTag bool) {
	l.jsxTagCount++
	l.jsxInTag = append(l.jsxInTag, inTag)
}

// closeJSXElement ends the innermost element. An attribute value element
// hands control back to the tag it sits in.
func (l *Lexer) closeJSXElement() {
	l.jsxTagCount--
	if n := len(l.jsxInTag); n > 0 {
		l.jsxTag = l.jsxInTag[n-1]
		l.jsxInTag = l.jsxInTag[:n-1]
	}
}

func (l *Lexer) openJSXExpression() {
	l.Skip(1)
	l.addFrom(token.LBRACE, l.position-1)
	l.pushState(jsxState)
	l.jsxTagCount = 0
	l.jsxTag = false
	l.jsxClosing = false
	l.jsxInTag = nil
}

// scanJSXIdentifier reads a JSX name, which may contain dashes.
func (l *Lexer) scanJSXIdentifier() {
	start := l.position
	if l.scanIdentifier() > 0 {
		for l.ch0 == '-' || IsIdentifierPart(l.ch0) {
			l.Skip(1)
		}
	}
	l.addFrom(token.JSX_IDENTIFIER, start)
}

func (l *Lexer) scanJSXText() {
	start := l.position
	for !l.AtEOF() {
		if l.ch0 == '{' || l.ch0 == '}' || l.ch0 == '<' || l.ch0 == '>' {
			break
		}
		if IsEOL(l.ch0) {
			l.skipEOLChars()
			l.line++
			continue
		}
		l.Skip(1)
	}
	l.addFrom(token.JSX_TEXT, start)
}

// scanJSXString reads a quoted attribute value. Attribute values have no
// escapes; the token excludes the quotes.
func (l *Lexer) scanJSXString() {
	quote := l.ch0
	l.Skip(1)
	start := l.position
	for !l.AtEOF() && l.ch0 != quote {
		if IsEOL(l.ch0) {
			l.skipEOLChars()
			l.line++
			continue
		}
		l.Skip(1)
	}
	if l.AtEOF() {
		l.fail(l.position, "missing.close.quote")
		l.addFrom(token.JSX_STRING, start)
		return
	}
	l.Skip(1)
	l.add(token.JSX_STRING, start, l.position-1)
}

// scanDigits consumes digits of the given base. Numeric separators are
// accepted from ES2021 on and must sit between two digits.
func (l *Lexer) scanDigits(base int) {
	for {
		if convertDigit(l.ch0, base) != -1 {
			l.Skip(1)
			continue
		}
		if l.ch0 == '_' && l.opts.Edition >= 12 {
			if convertDigit(l.content[l.position-1], base) == -1 || convertDigit(l.ch1, base) == -1 {
				l.fail(l.position, "invalid.numeric.separator")
			}
			l.Skip(1)
			continue
		}
		return
	}
}

func (l *Lexer) scanNumber() {
	start := l.position
	typ := token.DECIMAL
	digit := convertDigit(l.ch0, 10)

	switch {
	case digit == 0 && (l.ch1 == 'x' || l.ch1 == 'X') && convertDigit(l.ch2, 16) != -1:
		l.Skip(2)
		l.scanDigits(16)
		typ = token.HEXADECIMAL
	case digit == 0 && l.opts.Edition >= 6 && (l.ch1 == 'o' || l.ch1 == 'O') && convertDigit(l.ch2, 8) != -1:
		l.Skip(2)
		l.scanDigits(8)
		typ = token.OCTAL
	case digit == 0 && l.opts.Edition >= 6 && (l.ch1 == 'b' || l.ch1 == 'B') && convertDigit(l.ch2, 2) != -1:
		l.Skip(2)
		l.scanDigits(2)
		typ = token.BINARY_NUMBER
	default:
		octal := digit == 0
		if digit != -1 {
			l.Skip(1)
		}
		for {
			d := convertDigit(l.ch0, 10)
			if d != -1 {
				octal = octal && d < 8
				l.Skip(1)
				continue
			}
			if l.ch0 == '_' && l.opts.Edition >= 12 && !octal {
				l.scanDigits(10)
				continue
			}
			break
		}
		if octal && l.position-start > 1 {
			typ = token.OCTAL_LEGACY
		} else if l.ch0 == '.' || l.ch0 == 'E' || l.ch0 == 'e' {
			if l.ch0 == '.' {
				l.Skip(1)
				l.scanDigits(10)
			}
			if l.ch0 == 'E' || l.ch0 == 'e' {
				l.Skip(1)
				if l.ch0 == '+' || l.ch0 == '-' {
					l.Skip(1)
				}
				l.scanDigits(10)
			}
			typ = token.FLOATING
		}
	}

	if l.ch0 == 'n' && l.opts.Edition >= 11 && isBigIntBase(typ) {
		typ = token.BIGINT
		l.Skip(1)
	}
	if IsIdentifierStart(l.ch0) {
		l.fail(l.position, "missing.space.after.number")
	}
	l.addFrom(typ, start)
}

func isBigIntBase(typ token.Type) bool {
	switch typ {
	case token.DECIMAL, token.HEXADECIMAL, token.OCTAL, token.BINARY_NUMBER:
		return true
	}
	return false
}
