package lexer

import (
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/token"
)

// Options configure a Lexer.
type Options struct {
	Edition   int
	Scripting bool
	Shebang   bool
	JSX       bool

	// PauseOnFunctionBody ends a batch right after the opening brace of a
	// function body, so the parser can skip the body before it is lexed.
	PauseOnFunctionBody bool
}

// LineInfoFunc receives the line number and line start position the
// lexer reached after reading a multi-line here string.
type LineInfoFunc func(line, linePosition int)

type innerKind uint8

const (
	jsxState innerKind = iota
	templateState
)

// innerState is the mode saved when an embedded expression opens inside a
// JSX element or a template literal. It is restored when the brace that
// closes the expression is read.
type innerState struct {
	kind innerKind

	jsxTagCount int
	jsxTag      bool
	jsxClosing  bool
	jsxInTag    []bool

	template           bool
	templateExpression bool

	nextStateChange int
}

// mode is the part of the lexer state that follows the nesting of JSX
// elements and template literals.
type mode struct {
	jsxTagCount int
	jsxTag      bool
	jsxClosing  bool
	// jsxInTag records, per open element, whether it is an attribute value
	// and so returns to the enclosing tag when it closes.
	jsxInTag    []bool

	template           bool
	templateExpression bool

	nextStateChange      int
	openExpressionBraces int
	innerStates          []innerState
}

// snapshot is everything a sub-range lex saves and restores.
type snapshot struct {
	scanner      ScannerState
	pendingLine  int
	linePosition int
	last         token.Type
	mode         mode
	nested       bool
	pauseOnBrace bool
}

// Lexer tokenizes a source into a TokenStream.
type Lexer struct {
	Scanner

	src    *source.Source
	stream *TokenStream
	opts   Options

	// nested is set while lexing a sub-range such as an edit string
	// expression. Nested lexing never emits EOF and never pauses.
	nested bool

	pendingLine  int
	linePosition int
	last         token.Type

	pauseOnNextLeftBrace bool

	mode

	failure *errors.ParserError
	errs    map[int]*errors.ParserError
}

// New creates a lexer over the whole source.
func New(src *source.Source, stream *TokenStream, opts Options) *Lexer {
	return NewRange(src, 0, src.Len(), stream, opts)
}

// NewRange creates a lexer over length characters of the source starting
// at start.
func NewRange(src *source.Source, start, length int, stream *TokenStream, opts Options) *Lexer {
	l := &Lexer{
		src:         src,
		stream:      stream,
		opts:        opts,
		pendingLine: 1,
		last:        token.EOL,
		errs:        make(map[int]*errors.ParserError),
	}
	l.init(src.Content(), 1, start, length)
	return l
}

// Source returns the source being lexed.
func (l *Lexer) Source() *source.Source { return l.src }

// Stream returns the stream tokens are appended to.
func (l *Lexer) Stream() *TokenStream { return l.stream }

// Options returns the options the lexer was created with.
func (l *Lexer) Options() Options { return l.opts }

// Resume discards all lexer modes and continues lexing at position as if a
// statement had just ended there. It is used to restart after a skipped
// function body.
func (l *Lexer) Resume(position, line, linePosition int) {
	l.limit = len(l.content)
	l.line = line
	l.Reset(position)
	l.pendingLine = -1
	l.linePosition = linePosition
	l.last = token.SEMICOLON
	l.mode = mode{}
	l.pauseOnNextLeftBrace = false
	l.failure = nil
}

// Embedded reports whether the lexer is inside a template literal or a JSX
// element. Resume would lose that state.
func (l *Lexer) Embedded() bool {
	return l.template || l.jsxTagCount > 0 || len(l.innerStates) > 0
}

func (l *Lexer) save() snapshot {
	return snapshot{
		scanner:      l.SaveState(),
		pendingLine:  l.pendingLine,
		linePosition: l.linePosition,
		last:         l.last,
		mode:         l.mode,
		nested:       l.nested,
		pauseOnBrace: l.pauseOnNextLeftBrace,
	}
}

func (l *Lexer) restore(s snapshot) {
	l.RestoreState(s.scanner)
	l.pendingLine = s.pendingLine
	l.linePosition = s.linePosition
	l.last = s.last
	l.mode = s.mode
	l.nested = s.nested
	l.pauseOnNextLeftBrace = s.pauseOnBrace
}

// within runs fn with the scanner limited to state and every mode cleared,
// then returns to where the lexer was. A line break still pending when fn
// starts is emitted at most once.
func (l *Lexer) within(state ScannerState, fn func()) {
	saved := l.save()
	l.RestoreState(state)
	l.mode = mode{}
	l.nested = true
	l.pauseOnNextLeftBrace = false
	l.last = token.EOL

	fn()

	flushed := l.pendingLine == -1
	l.restore(saved)
	if flushed {
		l.pendingLine = -1
	}
}

// fail records a lexical error. The next token added becomes an ERROR
// token carrying it.
func (l *Lexer) fail(position int, key string, args ...string) {
	if l.failure != nil {
		return
	}
	at := token.New(token.ERROR, position, 1)
	l.failure = errors.NewParserError(errors.LexicalError, errors.Message("lexer."+key, args...), l.src, at)
}

// Err returns the error behind an ERROR token.
func (l *Lexer) Err(tok token.Token) *errors.ParserError {
	if err, ok := l.errs[tok.Position()]; ok {
		return err
	}
	text := tok.Text(l.content)
	if text == "" {
		text = "eof"
	}
	return errors.NewParserError(errors.LexicalError, errors.Message("lexer.invalid.character", text), l.src, tok)
}

// add appends a token. Line breaks are held back so that a run of them
// produces a single EOL token for the last line.
func (l *Lexer) add(typ token.Type, start, end int) {
	l.last = typ
	if typ == token.EOL {
		l.pendingLine = end
		l.linePosition = start
		return
	}
	if l.pendingLine != -1 {
		l.stream.Put(token.New(token.EOL, l.linePosition, l.pendingLine))
		l.pendingLine = -1
	}
	if l.failure != nil {
		l.last = token.ERROR
		l.errs[start] = l.failure
		l.failure = nil
		typ = token.ERROR
	}
	l.stream.Put(token.New(typ, start, end-start))
}

func (l *Lexer) addFrom(typ token.Type, start int) {
	l.add(typ, start, l.position)
}

func (l *Lexer) skipEOL(addEOL bool) {
	l.skipEOLChars()
	l.line++
	if addEOL {
		l.add(token.EOL, l.position, l.line)
	}
}

func (l *Lexer) skipLine(addEOL bool) {
	for !IsEOL(l.ch0) && !l.AtEOF() {
		l.Skip(1)
	}
	l.skipEOL(addEOL)
}

func (l *Lexer) skipWhitespace(addEOL bool) bool {
	skipped := false
	for !l.AtEOF() {
		if IsEOL(l.ch0) {
			l.skipEOL(addEOL)
			skipped = true
		} else if IsWhitespace(l.ch0) {
			l.Skip(1)
			skipped = true
		} else {
			break
		}
	}
	return skipped
}

func (l *Lexer) skipComments() bool {
	start := l.position
	switch {
	case l.ch0 == '/' && l.ch1 == '/':
		l.Skip(2)
		directive := (l.ch0 == '#' || l.ch0 == '@') && l.ch1 == ' '
		for !l.AtEOF() && !IsEOL(l.ch0) {
			l.Skip(1)
		}
		if directive {
			l.addFrom(token.DIRECTIVE_COMMENT, start)
		} else {
			l.addFrom(token.COMMENT, start)
		}
		return true
	case l.ch0 == '/' && l.ch1 == '*':
		l.Skip(2)
		for !l.AtEOF() && !(l.ch0 == '*' && l.ch1 == '/') {
			if IsEOL(l.ch0) {
				l.skipEOL(true)
			} else {
				l.Skip(1)
			}
		}
		if l.AtEOF() {
			l.fail(start, "unterminated.comment")
		} else {
			l.Skip(2)
		}
		l.addFrom(token.COMMENT, start)
		return true
	case l.ch0 == '#':
		l.Skip(1)
		for !l.AtEOF() && !IsEOL(l.ch0) {
			l.Skip(1)
		}
		l.addFrom(token.COMMENT, start)
		return true
	}
	return false
}

func (l *Lexer) isHashComment() bool {
	if l.ch0 != '#' {
		return false
	}
	if l.opts.Scripting {
		return true
	}
	return l.opts.Shebang && l.ch1 == '!' && l.position == 0
}

// CanStartLiteral reports whether a token of type typ may be the start of a
// regular expression, a here string or a JSX element, depending on how the
// parser reads it.
func (l *Lexer) CanStartLiteral(typ token.Type) bool {
	return typ.StartsWith('/') || (l.opts.Scripting || l.opts.JSX) && typ.StartsWith('<')
}

// ScanLiteral rescans tok, the last token in the stream, as a regular
// expression or a here string. It reports false when the characters do not
// form one, leaving the stream untouched.
func (l *Lexer) ScanLiteral(tok token.Token, startType token.Type, lineInfo LineInfoFunc) bool {
	if !l.CanStartLiteral(startType) {
		return false
	}
	if l.stream.Get(l.stream.Last()) != tok {
		return false
	}
	resume := l.position
	l.Reset(tok.Position())
	scanned := false
	switch {
	case l.ch0 == '/':
		scanned = l.scanRegEx()
	case l.ch0 == '<' && l.ch1 == '<':
		scanned = l.scanHereString(lineInfo)
	}
	if !scanned {
		l.Reset(resume)
	}
	return scanned
}

// ScanJSX switches into JSX tag mode at tok, the "<" ending the stream.
func (l *Lexer) ScanJSX(tok token.Token, startType token.Type) bool {
	if !startType.StartsWith('<') {
		return false
	}
	if l.stream.Get(l.stream.Last()) != tok {
		return false
	}
	l.Reset(tok.Position())
	if l.ch0 == '<' && l.ch1 != '<' {
		l.jsxTagCount = 1
		l.jsxTag = true
		l.jsxInTag = []bool{false}
		l.Skip(1)
		return true
	}
	return false
}

func (l *Lexer) pushState(kind innerKind) {
	st := innerState{
		kind:               kind,
		jsxTagCount:        l.jsxTagCount,
		jsxTag:             l.jsxTag,
		jsxClosing:         l.jsxClosing,
		jsxInTag:           l.jsxInTag,
		template:           l.template,
		templateExpression: l.templateExpression,
		nextStateChange:    l.nextStateChange,
	}
	l.innerStates = append(l.innerStates, st)
	l.nextStateChange = l.openExpressionBraces
	l.openExpressionBraces++
}

func (l *Lexer) popState() innerState {
	st := l.innerStates[len(l.innerStates)-1]
	l.innerStates = l.innerStates[:len(l.innerStates)-1]
	switch st.kind {
	case jsxState:
		l.jsxTagCount = st.jsxTagCount
		l.jsxTag = st.jsxTag
		l.jsxClosing = st.jsxClosing
		l.jsxInTag = st.jsxInTag
	case templateState:
		l.template = st.template
		l.templateExpression = st.templateExpression
	}
	l.nextStateChange = st.nextStateChange
	return st
}

// Lexify appends a batch of tokens to the stream. A batch ends when the
// stream buffer fills up, at EOF, after a token that may start a literal,
// when an embedded expression closes, or at a paused function body.
func (l *Lexer) Lexify() {
	for !l.stream.IsFull() || l.nested {
		if l.AtEOF() {
			if !l.nested {
				if l.template {
					l.fail(l.position, "unterminated.template")
					l.template = false
				}
				l.addFrom(token.EOF, l.position)
			}
			return
		}

		if l.template {
			l.handleTemplate()
			continue
		}

		l.skipWhitespace(true)
		if l.AtEOF() {
			if !l.nested {
				l.addFrom(token.EOF, l.position)
			}
			return
		}

		if l.ch0 == '/' && l.skipComments() {
			continue
		}
		if l.isHashComment() && l.skipComments() {
			continue
		}

		if l.jsxTagCount > 0 {
			l.handleJSX()
			continue
		}

		if l.ch0 == '.' && convertDigit(l.ch1, 10) != -1 {
			l.scanNumber()
			continue
		}

		if typ, ok := l.lookupOperator(); ok {
			if len(l.innerStates) > 0 {
				switch typ {
				case token.LBRACE:
					l.openExpressionBraces++
				case token.RBRACE:
					l.openExpressionBraces--
					if l.openExpressionBraces == l.nextStateChange {
						st := l.popState()
						l.Skip(1)
						if st.kind == jsxState {
							l.addFrom(token.RBRACE, l.position-1)
						}
						if l.nested {
							continue
						}
						return
					}
				}
			}
			n := typ.Len()
			l.Skip(n)
			l.addFrom(typ, l.position-n)
			if l.nested {
				continue
			}
			if l.CanStartLiteral(typ) {
				return
			}
			if typ == token.LBRACE && l.pauseOnNextLeftBrace {
				l.pauseOnNextLeftBrace = false
				return
			}
			continue
		}

		switch {
		case IsIdentifierStart(l.ch0), l.ch0 == '\\' && l.ch1 == 'u', l.ch0 == '#':
			l.scanIdentifierOrKeyword()
		case isStringDelimiter(l.ch0):
			l.scanString()
		case isDecimalDigit(l.ch0):
			l.scanNumber()
		case isTemplateDelimiter(l.ch0) && l.opts.Edition >= 6:
			l.template = true
			l.Skip(1)
		case isTemplateDelimiter(l.ch0) && l.opts.Scripting:
			l.scanString()
		default:
			l.Skip(1)
			l.addFrom(token.ERROR, l.position-1)
		}
	}
}

// lookupOperator matches the punctuator at the cursor. "?." directly
// followed by a digit is a conditional operator followed by a number.
func (l *Lexer) lookupOperator() (token.Type, bool) {
	typ, ok := token.LookupOperator(l.ch0, l.ch1, l.ch2, l.ch3, l.opts.Edition)
	if ok && typ == token.OPTIONAL_ACCESS && isDecimalDigit(l.ch2) {
		return token.TERNARY, true
	}
	return typ, ok
}

func (l *Lexer) scanIdentifierOrKeyword() {
	start := l.position
	length := l.scanIdentifier()
	if length == 0 {
		l.Skip(1)
		l.addFrom(token.ERROR, start)
		return
	}
	typ := token.LookupKeyword(string(l.content[start : start+length]))
	if typ == token.FUNCTION && l.opts.PauseOnFunctionBody {
		l.pauseOnNextLeftBrace = true
	}
	l.addFrom(typ, start)
}

// scanIdentifier consumes an identifier, with unicode escapes and a
// leading "#" for private names, and returns its length.
func (l *Lexer) scanIdentifier() int {
	start := l.position
	switch {
	case l.ch0 == '\\' && l.ch1 == 'u':
		l.Skip(2)
		ch, ok := l.unicodeEscapeSequence(l.opts.Edition)
		if !ok {
			l.fail(l.position, "invalid.hex")
		} else if !IsIdentifierStart(rune(ch)) {
			l.fail(start, "illegal.identifier.character")
		}
	case IsIdentifierStart(l.ch0):
		l.Skip(1)
	case l.ch0 == '#' && l.opts.Edition >= 13 && (IsIdentifierStart(l.ch1) || l.ch1 == '\\'):
		l.Skip(1)
	default:
		return 0
	}
	for !l.AtEOF() {
		if l.ch0 == '\\' && l.ch1 == 'u' {
			at := l.position
			l.Skip(2)
			ch, ok := l.unicodeEscapeSequence(l.opts.Edition)
			if !ok {
				l.fail(l.position, "invalid.hex")
			} else if !IsIdentifierPart(rune(ch)) {
				l.fail(at, "illegal.identifier.character")
			}
		} else if IsIdentifierPart(l.ch0) {
			l.Skip(1)
		} else {
			break
		}
	}
	return l.position - start
}

func (l *Lexer) identifierEqual(aStart, aLength, bStart, bLength int) bool {
	if aLength != bLength {
		return false
	}
	for i := 0; i < aLength; i++ {
		if l.content[aStart+i] != l.content[bStart+i] {
			return false
		}
	}
	return true
}

// Tokenize lexes the whole source and returns every token up to and
// including EOF, comments and line breaks included. Characters are read
// without parser context, so "/" is always a division operator.
func Tokenize(src *source.Source, opts Options) ([]token.Token, error) {
	stream := NewTokenStream()
	l := New(src, stream, opts)
	var out []token.Token
	for k := 0; ; k++ {
		for k > stream.Last() {
			if stream.IsFull() {
				stream.Grow()
			}
			l.Lexify()
		}
		tok := stream.Get(k)
		out = append(out, tok)
		if tok.Type() == token.ERROR {
			return out, l.Err(tok)
		}
		if tok.Type() == token.EOF {
			return out, nil
		}
	}
}
