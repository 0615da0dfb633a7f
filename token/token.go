package token

import "fmt"

// Token packs a type, a length and a position into one 64-bit value:
// bits 0-7 hold the type, bits 8-35 the length, bits 36-63 the position.
//
// EOL tokens reuse the fields: the position is the start of the new line and
// the length is the line number.
type Token uint64

const (
	lengthShift   = 8
	positionShift = 36

	// Bits is the width of the position and length fields.
	Bits = 28
	// MaxValue is the largest position or length a Token can carry.
	MaxValue = 1<<Bits - 1
)

// New packs a token. Position and length must fit in Bits bits.
func New(typ Type, position, length int) Token {
	return Token(uint64(position)<<positionShift | uint64(length&MaxValue)<<lengthShift | uint64(typ))
}

// Type returns the token type.
func (t Token) Type() Type { return Type(t & 0xff) }

// Position returns the start offset of the token.
func (t Token) Position() int { return int(t >> positionShift) }

// Length returns the number of characters the token spans.
func (t Token) Length() int { return int(t>>lengthShift) & MaxValue }

// End returns the offset just past the token.
func (t Token) End() int { return t.Position() + t.Length() }

// Recast returns the same span reinterpreted as another type.
func (t Token) Recast(typ Type) Token {
	return t&^0xff | Token(typ)
}

// WithDelimiter widens a string token to include its surrounding quotes.
func (t Token) WithDelimiter() Token {
	return New(t.Type(), t.Position()-1, t.Length()+2)
}

// Text returns the source spelling of the token.
func (t Token) Text(content []rune) string {
	start, end := t.Position(), t.End()
	if start > len(content) || end > len(content) || start > end {
		return ""
	}
	return string(content[start:end])
}

func (t Token) String() string {
	return fmt.Sprintf("%s@%d+%d", t.Type(), t.Position(), t.Length())
}
