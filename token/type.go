package token

// Kind classifies a token type.
type Kind uint8

const (
	Special Kind = iota
	Unary
	Binary
	Bracket
	Keyword
	Literal
	IR
	Future
	FutureStrict
)

var kindNames = [...]string{
	Special:      "SPECIAL",
	Unary:        "UNARY",
	Binary:       "BINARY",
	Bracket:      "BRACKET",
	Keyword:      "KEYWORD",
	Literal:      "LITERAL",
	IR:           "IR",
	Future:       "FUTURE",
	FutureStrict: "FUTURESTRICT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Type represents the type of token scanned from the input.
type Type uint8

const (
	// Special tokens
	ERROR Type = iota
	EOF
	EOL
	COMMENT
	DIRECTIVE_COMMENT

	// Operators and punctuators
	NOT             // !
	NE              // !=
	NE_STRICT       // !==
	MOD             // %
	ASSIGN_MOD      // %=
	BIT_AND         // &
	AND             // &&
	ASSIGN_AND      // &&=
	ASSIGN_BIT_AND  // &=
	LPAREN          // (
	RPAREN          // )
	MUL             // *
	EXP             // **
	ASSIGN_EXP      // **=
	ASSIGN_MUL      // *=
	ADD             // +
	INCPREFIX       // ++
	ASSIGN_ADD      // +=
	COMMARIGHT      // ,
	SUB             // -
	DECPREFIX       // --
	ASSIGN_SUB      // -=
	PERIOD          // .
	ELLIPSIS        // ...
	DIV             // /
	ASSIGN_DIV      // /=
	COLON           // :
	SEMICOLON       // ;
	LT              // <
	SHL             // <<
	ASSIGN_SHL      // <<=
	LE              // <=
	ASSIGN          // =
	EQ              // ==
	EQ_STRICT       // ===
	ARROW           // =>
	GT              // >
	GE              // >=
	SAR             // >>
	ASSIGN_SAR      // >>=
	SHR             // >>>
	ASSIGN_SHR      // >>>=
	TERNARY         // ?
	OPTIONAL_ACCESS // ?.
	NULLISHCOALESC  // ??
	ASSIGN_NULLISH  // ??=
	AT              // @
	LBRACKET        // [
	RBRACKET        // ]
	BIT_XOR         // ^
	ASSIGN_BIT_XOR  // ^=
	LBRACE          // {
	BIT_OR          // |
	ASSIGN_BIT_OR   // |=
	OR              // ||
	ASSIGN_OR       // ||=
	RBRACE          // }
	BIT_NOT         // ~

	// Keywords
	BREAK
	CASE
	CATCH
	CLASS
	CONST
	CONTINUE
	DEBUGGER
	DEFAULT
	DELETE
	DO
	ELSE
	ENUM
	EXPORT
	EXTENDS
	FALSE
	FINALLY
	FOR
	FUNCTION
	IF
	IMPLEMENTS
	IMPORT
	IN
	INSTANCEOF
	INTERFACE
	LET
	NEW
	NULL
	PACKAGE
	PRIVATE
	PROTECTED
	PUBLIC
	RETURN
	STATIC
	SUPER
	SWITCH
	THIS
	THROW
	TRUE
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
	WITH
	YIELD

	// Literals
	DECIMAL
	HEXADECIMAL
	OCTAL_LEGACY
	OCTAL
	BINARY_NUMBER
	FLOATING
	BIGINT
	STRING
	ESCSTRING
	EXECSTRING
	IDENT
	REGEX
	XML
	TEMPLATE
	TEMPLATE_HEAD
	TEMPLATE_MIDDLE
	TEMPLATE_TAIL
	JSX_IDENTIFIER
	JSX_TEXT
	JSX_STRING
	JSX_ELEM_START
	JSX_ELEM_END
	JSX_ELEM_CLOSE

	// Synthesized by the parser
	COMMALEFT
	DECPOSTFIX
	INCPOSTFIX
	SPREAD_ARGUMENT
	SPREAD_ARRAY
	SPREAD_OBJECT
	YIELD_STAR
	AWAIT

	numTypes
)

// info holds the static classification of a Type.
type info struct {
	id         string
	kind       Kind
	name       string
	precedence int
	leftAssoc  bool
	edition    int
}

var infos = [numTypes]info{
	ERROR:             {id: "ERROR", kind: Special},
	EOF:               {id: "EOF", kind: Special},
	EOL:               {id: "EOL", kind: Special},
	COMMENT:           {id: "COMMENT", kind: Special},
	DIRECTIVE_COMMENT: {id: "DIRECTIVE_COMMENT", kind: Special},

	NOT:             {id: "NOT", kind: Unary, name: "!", precedence: 15},
	NE:              {id: "NE", kind: Binary, name: "!=", precedence: 9, leftAssoc: true},
	NE_STRICT:       {id: "NE_STRICT", kind: Binary, name: "!==", precedence: 9, leftAssoc: true},
	MOD:             {id: "MOD", kind: Binary, name: "%", precedence: 13, leftAssoc: true},
	ASSIGN_MOD:      {id: "ASSIGN_MOD", kind: Binary, name: "%=", precedence: 2},
	BIT_AND:         {id: "BIT_AND", kind: Binary, name: "&", precedence: 8, leftAssoc: true},
	AND:             {id: "AND", kind: Binary, name: "&&", precedence: 5, leftAssoc: true},
	ASSIGN_AND:      {id: "ASSIGN_AND", kind: Binary, name: "&&=", precedence: 2, edition: 12},
	ASSIGN_BIT_AND:  {id: "ASSIGN_BIT_AND", kind: Binary, name: "&=", precedence: 2},
	LPAREN:          {id: "LPAREN", kind: Bracket, name: "(", precedence: 17, leftAssoc: true},
	RPAREN:          {id: "RPAREN", kind: Bracket, name: ")", leftAssoc: true},
	MUL:             {id: "MUL", kind: Binary, name: "*", precedence: 13, leftAssoc: true},
	EXP:             {id: "EXP", kind: Binary, name: "**", precedence: 14, edition: 7},
	ASSIGN_EXP:      {id: "ASSIGN_EXP", kind: Binary, name: "**=", precedence: 2, edition: 7},
	ASSIGN_MUL:      {id: "ASSIGN_MUL", kind: Binary, name: "*=", precedence: 2},
	ADD:             {id: "ADD", kind: Binary, name: "+", precedence: 12, leftAssoc: true},
	INCPREFIX:       {id: "INCPREFIX", kind: Unary, name: "++", precedence: 16, leftAssoc: true},
	ASSIGN_ADD:      {id: "ASSIGN_ADD", kind: Binary, name: "+=", precedence: 2},
	COMMARIGHT:      {id: "COMMARIGHT", kind: Binary, name: ",", precedence: 1, leftAssoc: true},
	SUB:             {id: "SUB", kind: Binary, name: "-", precedence: 12, leftAssoc: true},
	DECPREFIX:       {id: "DECPREFIX", kind: Unary, name: "--", precedence: 16, leftAssoc: true},
	ASSIGN_SUB:      {id: "ASSIGN_SUB", kind: Binary, name: "-=", precedence: 2},
	PERIOD:          {id: "PERIOD", kind: Bracket, name: ".", precedence: 18, leftAssoc: true},
	ELLIPSIS:        {id: "ELLIPSIS", kind: Unary, name: "...", edition: 6},
	DIV:             {id: "DIV", kind: Binary, name: "/", precedence: 13, leftAssoc: true},
	ASSIGN_DIV:      {id: "ASSIGN_DIV", kind: Binary, name: "/=", precedence: 2},
	COLON:           {id: "COLON", kind: Binary, name: ":"},
	SEMICOLON:       {id: "SEMICOLON", kind: Binary, name: ";"},
	LT:              {id: "LT", kind: Binary, name: "<", precedence: 10, leftAssoc: true},
	SHL:             {id: "SHL", kind: Binary, name: "<<", precedence: 11, leftAssoc: true},
	ASSIGN_SHL:      {id: "ASSIGN_SHL", kind: Binary, name: "<<=", precedence: 2},
	LE:              {id: "LE", kind: Binary, name: "<=", precedence: 10, leftAssoc: true},
	ASSIGN:          {id: "ASSIGN", kind: Binary, name: "=", precedence: 2},
	EQ:              {id: "EQ", kind: Binary, name: "==", precedence: 9, leftAssoc: true},
	EQ_STRICT:       {id: "EQ_STRICT", kind: Binary, name: "===", precedence: 9, leftAssoc: true},
	ARROW:           {id: "ARROW", kind: Binary, name: "=>", precedence: 2, leftAssoc: true, edition: 6},
	GT:              {id: "GT", kind: Binary, name: ">", precedence: 10, leftAssoc: true},
	GE:              {id: "GE", kind: Binary, name: ">=", precedence: 10, leftAssoc: true},
	SAR:             {id: "SAR", kind: Binary, name: ">>", precedence: 11, leftAssoc: true},
	ASSIGN_SAR:      {id: "ASSIGN_SAR", kind: Binary, name: ">>=", precedence: 2},
	SHR:             {id: "SHR", kind: Binary, name: ">>>", precedence: 11, leftAssoc: true},
	ASSIGN_SHR:      {id: "ASSIGN_SHR", kind: Binary, name: ">>>=", precedence: 2},
	TERNARY:         {id: "TERNARY", kind: Binary, name: "?", precedence: 3},
	OPTIONAL_ACCESS: {id: "OPTIONAL_ACCESS", kind: Bracket, name: "?.", precedence: 18, leftAssoc: true, edition: 11},
	NULLISHCOALESC:  {id: "NULLISHCOALESC", kind: Binary, name: "??", precedence: 4, leftAssoc: true, edition: 11},
	ASSIGN_NULLISH:  {id: "ASSIGN_NULLISH", kind: Binary, name: "??=", precedence: 2, edition: 12},
	AT:              {id: "AT", kind: Unary, name: "@", edition: 7},
	LBRACKET:        {id: "LBRACKET", kind: Bracket, name: "[", precedence: 18, leftAssoc: true},
	RBRACKET:        {id: "RBRACKET", kind: Bracket, name: "]", leftAssoc: true},
	BIT_XOR:         {id: "BIT_XOR", kind: Binary, name: "^", precedence: 7, leftAssoc: true},
	ASSIGN_BIT_XOR:  {id: "ASSIGN_BIT_XOR", kind: Binary, name: "^=", precedence: 2},
	LBRACE:          {id: "LBRACE", kind: Bracket, name: "{"},
	BIT_OR:          {id: "BIT_OR", kind: Binary, name: "|", precedence: 6, leftAssoc: true},
	ASSIGN_BIT_OR:   {id: "ASSIGN_BIT_OR", kind: Binary, name: "|=", precedence: 2},
	OR:              {id: "OR", kind: Binary, name: "||", precedence: 4, leftAssoc: true},
	ASSIGN_OR:       {id: "ASSIGN_OR", kind: Binary, name: "||=", precedence: 2, edition: 12},
	RBRACE:          {id: "RBRACE", kind: Bracket, name: "}"},
	BIT_NOT:         {id: "BIT_NOT", kind: Unary, name: "~", precedence: 15},

	BREAK:      {id: "BREAK", kind: Keyword, name: "break"},
	CASE:       {id: "CASE", kind: Keyword, name: "case"},
	CATCH:      {id: "CATCH", kind: Keyword, name: "catch"},
	CLASS:      {id: "CLASS", kind: Future, name: "class"},
	CONST:      {id: "CONST", kind: Keyword, name: "const"},
	CONTINUE:   {id: "CONTINUE", kind: Keyword, name: "continue"},
	DEBUGGER:   {id: "DEBUGGER", kind: Keyword, name: "debugger"},
	DEFAULT:    {id: "DEFAULT", kind: Keyword, name: "default"},
	DELETE:     {id: "DELETE", kind: Unary, name: "delete", precedence: 15},
	DO:         {id: "DO", kind: Keyword, name: "do"},
	ELSE:       {id: "ELSE", kind: Keyword, name: "else"},
	ENUM:       {id: "ENUM", kind: Future, name: "enum"},
	EXPORT:     {id: "EXPORT", kind: Future, name: "export"},
	EXTENDS:    {id: "EXTENDS", kind: Future, name: "extends"},
	FALSE:      {id: "FALSE", kind: Literal, name: "false"},
	FINALLY:    {id: "FINALLY", kind: Keyword, name: "finally"},
	FOR:        {id: "FOR", kind: Keyword, name: "for"},
	FUNCTION:   {id: "FUNCTION", kind: Keyword, name: "function"},
	IF:         {id: "IF", kind: Keyword, name: "if"},
	IMPLEMENTS: {id: "IMPLEMENTS", kind: FutureStrict, name: "implements"},
	IMPORT:     {id: "IMPORT", kind: Future, name: "import"},
	IN:         {id: "IN", kind: Binary, name: "in", precedence: 10, leftAssoc: true},
	INSTANCEOF: {id: "INSTANCEOF", kind: Binary, name: "instanceof", precedence: 10, leftAssoc: true},
	INTERFACE:  {id: "INTERFACE", kind: FutureStrict, name: "interface"},
	LET:        {id: "LET", kind: FutureStrict, name: "let"},
	NEW:        {id: "NEW", kind: Unary, name: "new", precedence: 18},
	NULL:       {id: "NULL", kind: Literal, name: "null"},
	PACKAGE:    {id: "PACKAGE", kind: FutureStrict, name: "package"},
	PRIVATE:    {id: "PRIVATE", kind: FutureStrict, name: "private"},
	PROTECTED:  {id: "PROTECTED", kind: FutureStrict, name: "protected"},
	PUBLIC:     {id: "PUBLIC", kind: FutureStrict, name: "public"},
	RETURN:     {id: "RETURN", kind: Keyword, name: "return"},
	STATIC:     {id: "STATIC", kind: FutureStrict, name: "static"},
	SUPER:      {id: "SUPER", kind: Future, name: "super"},
	SWITCH:     {id: "SWITCH", kind: Keyword, name: "switch"},
	THIS:       {id: "THIS", kind: Keyword, name: "this"},
	THROW:      {id: "THROW", kind: Keyword, name: "throw"},
	TRUE:       {id: "TRUE", kind: Literal, name: "true"},
	TRY:        {id: "TRY", kind: Keyword, name: "try"},
	TYPEOF:     {id: "TYPEOF", kind: Unary, name: "typeof", precedence: 15},
	VAR:        {id: "VAR", kind: Keyword, name: "var"},
	VOID:       {id: "VOID", kind: Unary, name: "void", precedence: 15},
	WHILE:      {id: "WHILE", kind: Keyword, name: "while"},
	WITH:       {id: "WITH", kind: Keyword, name: "with"},
	YIELD:      {id: "YIELD", kind: FutureStrict, name: "yield"},

	DECIMAL:         {id: "DECIMAL", kind: Literal},
	HEXADECIMAL:     {id: "HEXADECIMAL", kind: Literal},
	OCTAL_LEGACY:    {id: "OCTAL_LEGACY", kind: Literal},
	OCTAL:           {id: "OCTAL", kind: Literal},
	BINARY_NUMBER:   {id: "BINARY_NUMBER", kind: Literal},
	FLOATING:        {id: "FLOATING", kind: Literal},
	BIGINT:          {id: "BIGINT", kind: Literal},
	STRING:          {id: "STRING", kind: Literal},
	ESCSTRING:       {id: "ESCSTRING", kind: Literal},
	EXECSTRING:      {id: "EXECSTRING", kind: Literal},
	IDENT:           {id: "IDENT", kind: Literal},
	REGEX:           {id: "REGEX", kind: Literal},
	XML:             {id: "XML", kind: Literal},
	TEMPLATE:        {id: "TEMPLATE", kind: Literal},
	TEMPLATE_HEAD:   {id: "TEMPLATE_HEAD", kind: Literal},
	TEMPLATE_MIDDLE: {id: "TEMPLATE_MIDDLE", kind: Literal},
	TEMPLATE_TAIL:   {id: "TEMPLATE_TAIL", kind: Literal},
	JSX_IDENTIFIER:  {id: "JSX_IDENTIFIER", kind: Literal},
	JSX_TEXT:        {id: "JSX_TEXT", kind: Literal},
	JSX_STRING:      {id: "JSX_STRING", kind: Literal},
	JSX_ELEM_START:  {id: "JSX_ELEM_START", kind: Special, name: "<"},
	JSX_ELEM_END:    {id: "JSX_ELEM_END", kind: Special, name: ">"},
	JSX_ELEM_CLOSE:  {id: "JSX_ELEM_CLOSE", kind: Special, name: "/"},

	COMMALEFT:       {id: "COMMALEFT", kind: IR},
	DECPOSTFIX:      {id: "DECPOSTFIX", kind: IR, name: "--"},
	INCPOSTFIX:      {id: "INCPOSTFIX", kind: IR, name: "++"},
	SPREAD_ARGUMENT: {id: "SPREAD_ARGUMENT", kind: IR, name: "..."},
	SPREAD_ARRAY:    {id: "SPREAD_ARRAY", kind: IR, name: "..."},
	SPREAD_OBJECT:   {id: "SPREAD_OBJECT", kind: IR, name: "..."},
	YIELD_STAR:      {id: "YIELD_STAR", kind: IR, name: "yield*"},
	AWAIT:           {id: "AWAIT", kind: IR, name: "await"},
}

// String returns the constant name of the type, e.g. "LBRACE".
func (t Type) String() string {
	if t < numTypes {
		return infos[t].id
	}
	return "UNKNOWN"
}

// Kind returns the classification of the type.
func (t Type) Kind() Kind { return infos[t].kind }

// Name returns the source spelling of operators and keywords, or "" for
// types without a fixed spelling.
func (t Type) Name() string { return infos[t].name }

// NameOrType returns the spelling if there is one, otherwise the lower-cased
// constant name. Used in "expected X" diagnostics.
func (t Type) NameOrType() string {
	if name := infos[t].name; name != "" {
		return name
	}
	return lower(infos[t].id)
}

// Len returns the length of the fixed spelling.
func (t Type) Len() int { return len(infos[t].name) }

// Precedence returns the binding power of operators, 0 otherwise.
func (t Type) Precedence() int { return infos[t].precedence }

// IsLeftAssociative reports whether equal-precedence operators group to the left.
func (t Type) IsLeftAssociative() bool { return infos[t].leftAssoc }

// Edition returns the first ECMAScript edition that recognizes the type, 0 if always.
func (t Type) Edition() int { return infos[t].edition }

// IsSupported reports whether the type is recognized in the given edition.
func (t Type) IsSupported(edition int) bool { return infos[t].edition <= edition }

// IsOperator reports whether the type is a binary operator. With noIn set,
// the "in" operator is excluded so a for-in head can be recognized.
func (t Type) IsOperator(noIn bool) bool {
	info := infos[t]
	return info.kind == Binary && (!noIn || t != IN) && info.precedence != 0
}

// IsAssignment reports whether the type is "=" or a compound assignment.
func (t Type) IsAssignment() bool {
	switch t {
	case ASSIGN, ASSIGN_ADD, ASSIGN_BIT_AND, ASSIGN_BIT_OR, ASSIGN_BIT_XOR,
		ASSIGN_DIV, ASSIGN_MOD, ASSIGN_EXP, ASSIGN_MUL, ASSIGN_SAR, ASSIGN_SHL,
		ASSIGN_SHR, ASSIGN_SUB, ASSIGN_AND, ASSIGN_OR, ASSIGN_NULLISH:
		return true
	}
	return false
}

// IsLogical reports whether the right operand is conditionally evaluated.
func (t Type) IsLogical() bool {
	return t == AND || t == OR || t == NULLISHCOALESC
}

// StartsWith reports whether the fixed spelling begins with c.
func (t Type) StartsWith(c rune) bool {
	name := infos[t].name
	return name != "" && rune(name[0]) == c
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
