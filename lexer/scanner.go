// Package lexer turns JavaScript source text into tokens.
//
// A Lexer appends tokens to a TokenStream in batches. The parser drives it:
// whenever it needs a token beyond the end of the stream it calls Lexify
// again. Tokens that can start a regular expression, a here string or a
// JSX element stop the batch, so the parser can decide how the following
// characters must be read.
package lexer

// ScannerState is a saved scanner cursor. Restoring it returns the scanner
// to exactly the same character.
type ScannerState struct {
	Position int
	Limit    int
	Line     int
}

// IsEmpty reports whether the state spans no characters.
func (s ScannerState) IsEmpty() bool { return s.Position == s.Limit }

// Scanner is a cursor over source characters with a lookahead window of
// four characters. Characters at or beyond the limit read as zero.
type Scanner struct {
	content  []rune
	position int
	limit    int
	line     int

	ch0, ch1, ch2, ch3 rune
}

// NewScanner creates a scanner over content[start:start+length], starting
// on the given line.
func NewScanner(content []rune, line, start, length int) *Scanner {
	s := &Scanner{}
	s.init(content, line, start, length)
	return s
}

func (s *Scanner) init(content []rune, line, start, length int) {
	s.content = content
	s.line = line
	s.limit = start + length
	if s.limit > len(content) {
		s.limit = len(content)
	}
	s.Reset(start)
}

func (s *Scanner) charAt(i int) rune {
	if i < s.limit && i >= 0 {
		return s.content[i]
	}
	return 0
}

// Reset moves the cursor to an absolute position and reloads the lookahead.
func (s *Scanner) Reset(i int) {
	s.ch0 = s.charAt(i)
	s.ch1 = s.charAt(i + 1)
	s.ch2 = s.charAt(i + 2)
	s.ch3 = s.charAt(i + 3)
	s.position = i
}

// Skip advances the cursor by n characters.
func (s *Scanner) Skip(n int) {
	if n == 1 && !s.AtEOF() {
		s.ch0 = s.ch1
		s.ch1 = s.ch2
		s.ch2 = s.ch3
		s.ch3 = s.charAt(s.position + 4)
		s.position++
	} else if n != 0 {
		s.Reset(s.position + n)
	}
}

// AtEOF reports whether the cursor reached the limit.
func (s *Scanner) AtEOF() bool { return s.position >= s.limit }

// Position returns the absolute position of the cursor.
func (s *Scanner) Position() int { return s.position }

// Limit returns the position the scanner stops at.
func (s *Scanner) Limit() int { return s.limit }

// Line returns the current line number.
func (s *Scanner) Line() int { return s.line }

// SaveState captures the cursor.
func (s *Scanner) SaveState() ScannerState {
	return ScannerState{Position: s.position, Limit: s.limit, Line: s.line}
}

// RestoreState returns the cursor to a saved state.
func (s *Scanner) RestoreState(state ScannerState) {
	s.limit = state.Limit
	s.line = state.Line
	s.Reset(state.Position)
}
