package lexer

import "unicode"

// IsEOL reports whether r terminates a line.
func IsEOL(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsWhitespace reports whether r is JavaScript white space, line
// terminators excluded.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\u000b', '\u000c', '\u00a0', '\u1680', '\u180e',
		'\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// IsIdentifierStart reports whether r may start an identifier.
func IsIdentifierStart(r rune) bool {
	if r < 0x80 {
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '$' || r == '_'
	}
	return unicode.IsLetter(r) ||
		unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Sc, r) ||
		unicode.Is(unicode.Pc, r)
}

// IsIdentifierPart reports whether r may continue an identifier.
func IsIdentifierPart(r rune) bool {
	if r < 0x80 {
		return IsIdentifierStart(r) || '0' <= r && r <= '9'
	}
	return IsIdentifierStart(r) ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Cf, r)
}

func isStringDelimiter(r rune) bool { return r == '"' || r == '\'' }

func isTemplateDelimiter(r rune) bool { return r == '`' }

func isDecimalDigit(r rune) bool { return '0' <= r && r <= '9' }

// convertDigit returns the value of ch in base, or -1.
func convertDigit(ch rune, base int) int {
	var digit int
	switch {
	case '0' <= ch && ch <= '9':
		digit = int(ch - '0')
	case 'A' <= ch && ch <= 'Z':
		digit = int(ch-'A') + 10
	case 'a' <= ch && ch <= 'z':
		digit = int(ch-'a') + 10
	default:
		return -1
	}
	if digit < base {
		return digit
	}
	return -1
}

const maxCodePoint = 0x10ffff

func (s *Scanner) hexSequence(length int) (int, bool) {
	value := 0
	for i := 0; i < length; i++ {
		digit := convertDigit(s.ch0, 16)
		if digit == -1 {
			return value, false
		}
		value = digit | value<<4
		s.Skip(1)
	}
	return value, true
}

func (s *Scanner) varlenHexSequence() (int, bool) {
	s.Skip(1)
	value := 0
	for i := 0; !s.AtEOF(); i++ {
		if s.ch0 == '}' {
			s.Skip(1)
			return value, i != 0
		}
		digit := convertDigit(s.ch0, 16)
		if digit == -1 {
			return value, false
		}
		value = digit | value<<4
		if value > maxCodePoint {
			return -1, false
		}
		s.Skip(1)
	}
	return value, false
}

// unicodeEscapeSequence reads the part of a \u escape after the "u".
func (s *Scanner) unicodeEscapeSequence(edition int) (int, bool) {
	if s.ch0 == '{' && edition >= 6 {
		return s.varlenHexSequence()
	}
	return s.hexSequence(4)
}

func (s *Scanner) octalSequence() int {
	value := 0
	for i := 0; i < 3; i++ {
		digit := convertDigit(s.ch0, 8)
		if digit == -1 {
			break
		}
		value = digit | value<<3
		s.Skip(1)
		if i == 1 && value >= 32 {
			break
		}
	}
	return value
}

func (s *Scanner) skipEOLChars() {
	if s.ch0 == '\r' {
		s.Skip(1)
		if s.ch0 == '\n' {
			s.Skip(1)
		}
	} else {
		s.Skip(1)
	}
}
