// Package source holds program text and maps positions to lines and columns.
//
// Positions are rune offsets into the content.
package source

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"os"
	"sort"
	"sync"
	"unicode/utf16"

	"github.com/robinvdvleuten/jsparse/token"
)

// maxLength is the longest content token positions can address.
var maxLength = token.MaxValue

// ContentTooLargeError is returned when the content cannot be addressed by
// token positions.
type ContentTooLargeError struct {
	Name   string
	Length int
	Limit  int
}

func (e *ContentTooLargeError) Error() string {
	return fmt.Sprintf("%s: source of %d characters exceeds the limit of %d", e.Name, e.Length, e.Limit)
}

// Source is an immutable view of program text.
//
// The only mutable part is the explicit URL, which can be set once by a
// sourceURL directive comment. The line table and digest are computed
// lazily and cached; a Source may be shared between goroutines.
type Source struct {
	name    string
	base    string
	url     string
	eval    bool
	content []rune

	mu          sync.Mutex
	explicitURL string
	urlSet      bool

	linesOnce sync.Once
	lines     []int

	digestOnce sync.Once
	digest     string
}

// Option configures a Source.
type Option func(*Source)

// WithBase records the base directory the source was loaded from.
func WithBase(base string) Option {
	return func(s *Source) { s.base = base }
}

// WithURL records the URL the source was loaded from.
func WithURL(url string) Option {
	return func(s *Source) { s.url = url }
}

// AsEval marks the source as the argument of an eval call.
func AsEval() Option {
	return func(s *Source) { s.eval = true }
}

// New creates a Source from text.
func New(name, content string, opts ...Option) (*Source, error) {
	return FromRunes(name, []rune(content), opts...)
}

// FromRunes creates a Source from decoded text. The slice is retained.
func FromRunes(name string, content []rune, opts ...Option) (*Source, error) {
	if len(content) > maxLength {
		return nil, &ContentTooLargeError{Name: name, Length: len(content), Limit: maxLength}
	}
	s := &Source{name: name, content: content}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ReadFile loads a Source from disk, using the path as its name.
func ReadFile(path string, opts ...Option) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return New(path, string(data), opts...)
}

// Name returns the name the source was created with.
func (s *Source) Name() string { return s.name }

// Base returns the base directory, if any.
func (s *Source) Base() string { return s.base }

// URL returns the origin URL, if any.
func (s *Source) URL() string { return s.url }

// IsEval reports whether the source is eval code.
func (s *Source) IsEval() bool { return s.eval }

// Len returns the number of runes in the content.
func (s *Source) Len() int { return len(s.content) }

// Content returns the underlying runes. Callers must not modify them.
func (s *Source) Content() []rune { return s.content }

// At returns the rune at position, or 0 when out of range.
func (s *Source) At(position int) rune {
	if position < 0 || position >= len(s.content) {
		return 0
	}
	return s.content[position]
}

// Substring returns length runes starting at start, clamped to the content.
func (s *Source) Substring(start, length int) string {
	end := start + length
	if start < 0 {
		start = 0
	}
	if end > len(s.content) {
		end = len(s.content)
	}
	if start >= end {
		return ""
	}
	return string(s.content[start:end])
}

// Text returns the whole content.
func (s *Source) Text() string { return string(s.content) }

// ExplicitURL returns the URL set by a sourceURL directive.
func (s *Source) ExplicitURL() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.explicitURL, s.urlSet
}

// SetExplicitURL records the URL from a sourceURL directive. Only the first
// call has an effect; it reports whether the URL was taken.
func (s *Source) SetExplicitURL(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.urlSet {
		return false
	}
	s.explicitURL = url
	s.urlSet = true
	return true
}

func (s *Source) lineTable() []int {
	s.linesOnce.Do(func() {
		s.lines = []int{0}
		for i, c := range s.content {
			if c == '\n' {
				s.lines = append(s.lines, i+1)
			}
		}
	})
	return s.lines
}

// Line returns the 1-based line number of position.
func (s *Source) Line(position int) int {
	lines := s.lineTable()
	return sort.Search(len(lines)-1, func(i int) bool { return position < lines[i+1] }) + 1
}

// Column returns the 0-based column of position.
func (s *Source) Column(position int) int {
	return position - s.lineStart(position)
}

// LineCount returns the number of lines.
func (s *Source) LineCount() int { return len(s.lineTable()) }

// SourceLine returns the full text of the line containing position,
// without its terminator.
func (s *Source) SourceLine(position int) string {
	start := s.lineStart(position)
	end := s.lineEnd(position)
	return string(s.content[start:end])
}

func (s *Source) lineStart(position int) int {
	if position > len(s.content) {
		position = len(s.content)
	}
	for i := position - 1; i >= 0; i-- {
		if c := s.content[i]; c == '\n' || c == '\r' {
			return i + 1
		}
	}
	return 0
}

func (s *Source) lineEnd(position int) int {
	if position < 0 {
		position = 0
	}
	for i := position; i < len(s.content); i++ {
		if c := s.content[i]; c == '\n' || c == '\r' {
			return i
		}
	}
	return len(s.content)
}

// Digest returns a stable fingerprint of the content and origin: SHA-1 over
// the UTF-16LE code units followed by name, base and URL, base64url encoded
// without padding.
func (s *Source) Digest() string {
	s.digestOnce.Do(func() {
		h := sha1.New()
		units := utf16.Encode(s.content)
		buf := make([]byte, 0, len(units)*2)
		for _, u := range units {
			buf = append(buf, byte(u), byte(u>>8))
		}
		h.Write(buf)
		h.Write([]byte(s.name))
		h.Write([]byte(s.base))
		h.Write([]byte(s.url))
		s.digest = base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	})
	return s.digest
}
