package lexer

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/token"
)

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// ValueOf decodes the value of a literal, identifier or comment token.
// Numbers become Int, Long, Double or BigInt; strings have their escapes
// resolved, with octal escapes rejected when strict is set. Tokens without
// a value yield nil.
func (l *Lexer) ValueOf(tok token.Token, strict bool) (token.Value, error) {
	start, length := tok.Position(), tok.Length()
	text := func(from, n int) string {
		return string(l.content[from : from+n])
	}

	switch tok.Type() {
	case token.DECIMAL:
		return valueOf(stripSeparators(text(start, length)), 10), nil
	case token.HEXADECIMAL:
		return valueOf(stripSeparators(text(start+2, length-2)), 16), nil
	case token.OCTAL_LEGACY:
		return valueOf(text(start, length), 8), nil
	case token.OCTAL:
		return valueOf(stripSeparators(text(start+2, length-2)), 8), nil
	case token.BINARY_NUMBER:
		return valueOf(stripSeparators(text(start+2, length-2)), 2), nil
	case token.FLOATING:
		return floatingValue(stripSeparators(text(start, length))), nil
	case token.BIGINT:
		n, ok := new(big.Int).SetString(text(start, length-1), 0)
		if !ok {
			return nil, l.valueError(tok, start, "json.invalid.number")
		}
		return token.BigInt{Int: n}, nil
	case token.STRING, token.JSX_TEXT, token.JSX_STRING, token.DIRECTIVE_COMMENT:
		return token.String(text(start, length)), nil
	case token.ESCSTRING:
		return l.valueOfString(tok, strict)
	case token.TEMPLATE, token.TEMPLATE_HEAD, token.TEMPLATE_MIDDLE, token.TEMPLATE_TAIL:
		return l.valueOfString(tok, true)
	case token.IDENT, token.JSX_IDENTIFIER:
		return l.valueOfIdent(tok)
	case token.REGEX:
		return valueOfPattern(text(start, length)), nil
	case token.XML:
		return token.XMLValue{Expression: text(start, length)}, nil
	case token.ERROR:
		return nil, l.Err(tok)
	}
	return nil, nil
}

// RawString returns the source text of tok with every CR and CRLF turned
// into LF, as template literals see it.
func (l *Lexer) RawString(tok token.Token) string {
	var sb strings.Builder
	end := tok.End()
	for i := tok.Position(); i < end; i++ {
		ch := l.content[i]
		if ch == '\r' {
			sb.WriteByte('\n')
			if i+1 < end && l.content[i+1] == '\n' {
				i++
			}
			continue
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func (l *Lexer) valueError(tok token.Token, position int, key string, args ...string) *errors.ParserError {
	at := token.New(tok.Type(), position, 1)
	return errors.NewParserError(errors.LexicalError, errors.Message("lexer."+key, args...), l.src, at)
}

func stripSeparators(s string) string {
	if strings.IndexByte(s, '_') < 0 {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}

// valueOf converts digits in radix to the narrowest of Int and Long, or
// to Double when they overflow 64 bits.
func valueOf(s string, radix int) token.Value {
	if v, err := strconv.ParseInt(s, radix, 64); err == nil {
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return token.Int(v)
		}
		return token.Long(v)
	}
	if radix == 10 {
		f, _ := strconv.ParseFloat(s, 64)
		return token.Double(f)
	}
	if radix == 16 && len(s) >= 15 {
		if n, ok := new(big.Int).SetString(s, 16); ok {
			f, _ := new(big.Float).SetInt(n).Float64()
			return token.Double(f)
		}
	}
	value := 0.0
	for _, ch := range s {
		value = value*float64(radix) + float64(convertDigit(ch, radix))
	}
	return token.Double(value)
}

// floatingValue parses a floating literal. One without a decimal point
// whose value is an exact integer within 64 bits narrows to Int or Long.
func floatingValue(s string) token.Value {
	f, _ := strconv.ParseFloat(s, 64)
	if strings.IndexByte(s, '.') >= 0 {
		return token.Double(f)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return token.Double(f)
	}
	switch {
	case d.GreaterThanOrEqual(minInt32) && d.LessThanOrEqual(maxInt32):
		return token.Int(d.IntPart())
	case d.GreaterThanOrEqual(minInt64) && d.LessThanOrEqual(maxInt64):
		return token.Long(d.IntPart())
	}
	return token.Double(f)
}

func valueOfPattern(s string) token.Value {
	end := strings.LastIndexByte(s, '/')
	if end <= 0 {
		return token.Regex{Expression: strings.TrimPrefix(s, "/")}
	}
	return token.Regex{Expression: s[1:end], Options: s[end+1:]}
}

// decoder walks the characters of a single token.
func (l *Lexer) decoder(tok token.Token) *Scanner {
	return NewScanner(l.content, 0, tok.Position(), tok.Length())
}

func (l *Lexer) valueOfIdent(tok token.Token) (token.Value, error) {
	start, length := tok.Position(), tok.Length()
	raw := l.content[start : start+length]
	if !slices.Contains(raw, '\\') {
		return token.String(raw), nil
	}

	s := l.decoder(tok)
	var sb strings.Builder
	for !s.AtEOF() && !IsEOL(s.ch0) {
		if s.ch0 == '\\' && s.ch1 == 'u' {
			s.Skip(2)
			ch, ok := s.unicodeEscapeSequence(l.opts.Edition)
			if !ok {
				return nil, l.valueError(tok, s.position, "invalid.hex")
			}
			if IsWhitespace(rune(ch)) || IsEOL(rune(ch)) {
				return nil, l.valueError(tok, start, "illegal.identifier.character")
			}
			sb.WriteRune(rune(ch))
			continue
		}
		sb.WriteRune(s.ch0)
		s.Skip(1)
	}
	return token.String(sb.String()), nil
}

func (l *Lexer) valueOfString(tok token.Token, strict bool) (token.Value, error) {
	s := l.decoder(tok)
	var sb strings.Builder
	sb.Grow(tok.Length())

	for !s.AtEOF() {
		if s.ch0 == '\r' {
			sb.WriteByte('\n')
			s.skipEOLChars()
			continue
		}
		if s.ch0 != '\\' {
			sb.WriteRune(s.ch0)
			s.Skip(1)
			continue
		}

		s.Skip(1)
		next := s.ch0
		afterSlash := s.position
		s.Skip(1)

		switch next {
		case '0', '1', '2', '3', '4', '5', '6', '7':
			if strict && (next != '0' || isDecimalDigit(s.ch0)) {
				return nil, l.valueError(tok, afterSlash-1, "strict.no.octal")
			}
			s.Reset(afterSlash)
			sb.WriteRune(rune(s.octalSequence()))
		case '8', '9':
			if strict {
				return nil, l.valueError(tok, afterSlash-1, "strict.no.nonoctaldecimal")
			}
			sb.WriteRune(next)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'r':
			sb.WriteByte('\r')
		case 'v':
			sb.WriteByte('\v')
		case '\r':
			if s.ch0 == '\n' {
				s.Skip(1)
			}
		case '\n', '\u2028', '\u2029':
		case 'x':
			ch, ok := s.hexSequence(2)
			if !ok {
				return nil, l.valueError(tok, s.position, "invalid.hex")
			}
			sb.WriteRune(rune(ch))
		case 'u':
			ch, ok := s.unicodeEscapeSequence(l.opts.Edition)
			if !ok {
				return nil, l.valueError(tok, s.position, "invalid.hex")
			}
			sb.WriteRune(l.lowSurrogate(s, rune(ch)))
		default:
			sb.WriteRune(next)
		}
	}
	return token.String(sb.String()), nil
}

// lowSurrogate combines a high surrogate escape with an immediately
// following low surrogate escape.
func (l *Lexer) lowSurrogate(s *Scanner, high rune) rune {
	if high < 0xd800 || high > 0xdbff || s.ch0 != '\\' || s.ch1 != 'u' {
		return high
	}
	saved := s.position
	s.Skip(2)
	low, ok := s.unicodeEscapeSequence(l.opts.Edition)
	if !ok || low < 0xdc00 || low > 0xdfff {
		s.Reset(saved)
		return high
	}
	return utf16.DecodeRune(high, rune(low))
}
