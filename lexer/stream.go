package lexer

import "github.com/robinvdvleuten/jsparse/token"

const initialStreamSize = 256

// TokenStream is a growable circular buffer of tokens addressed by an
// absolute, ever increasing index. Committing an index discards every token
// before it.
type TokenStream struct {
	buffer []token.Token
	count  int
	in     int
	out    int
	base   int
}

// NewTokenStream creates an empty stream.
func NewTokenStream() *TokenStream {
	return &TokenStream{buffer: make([]token.Token, initialStreamSize)}
}

func (s *TokenStream) next(position int) int {
	next := position + 1
	if next >= len(s.buffer) {
		next = 0
	}
	return next
}

func (s *TokenStream) index(k int) int {
	k -= s.base - s.out
	if k >= len(s.buffer) {
		k -= len(s.buffer)
	}
	return k
}

// IsEmpty reports whether the stream holds no tokens.
func (s *TokenStream) IsEmpty() bool { return s.count == 0 }

// IsFull reports whether the next Put grows the buffer.
func (s *TokenStream) IsFull() bool { return s.count == len(s.buffer) }

// Count returns the number of live tokens.
func (s *TokenStream) Count() int { return s.count }

// Cap returns the buffer capacity.
func (s *TokenStream) Cap() int { return len(s.buffer) }

// First returns the index of the oldest live token.
func (s *TokenStream) First() int { return s.base }

// Last returns the index of the newest token, First()-1 when empty.
func (s *TokenStream) Last() int { return s.base + s.count - 1 }

// RemoveLast drops the newest token.
func (s *TokenStream) RemoveLast() {
	if s.count != 0 {
		s.count--
		s.in--
		if s.in < 0 {
			s.in = len(s.buffer) - 1
		}
	}
}

// Put appends a token, growing the buffer when it is full.
func (s *TokenStream) Put(t token.Token) {
	if s.count == len(s.buffer) {
		s.Grow()
	}
	s.buffer[s.in] = t
	s.count++
	s.in = s.next(s.in)
}

// Get returns the token at absolute index k, which must lie between First
// and Last.
func (s *TokenStream) Get(k int) token.Token {
	return s.buffer[s.index(k)]
}

// Commit discards every token before absolute index k.
func (s *TokenStream) Commit(k int) {
	s.out = s.index(k)
	s.count -= k - s.base
	s.base = k
}

// Grow doubles the capacity, moving the live tokens to the front.
func (s *TokenStream) Grow() {
	grown := make([]token.Token, len(s.buffer)*2)
	switch {
	case s.count == 0:
	case s.in > s.out:
		copy(grown, s.buffer[s.out:s.out+s.count])
	default:
		portion := len(s.buffer) - s.out
		copy(grown, s.buffer[s.out:])
		copy(grown[portion:], s.buffer[:s.count-portion])
	}
	s.out = 0
	s.in = s.count
	s.buffer = grown
}

// Reset empties the stream and restarts indexing at zero.
func (s *TokenStream) Reset() {
	s.in = 0
	s.out = 0
	s.count = 0
	s.base = 0
}
