package source

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/jsparse/token"
)

func TestLineAndColumn(t *testing.T) {
	src, err := New("test.js", "var a;\nvar b;\r\n\tfoo();\n")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		position int
		line     int
		column   int
		text     string
	}{
		{"start", 0, 1, 0, "var a;"},
		{"first line", 4, 1, 4, "var a;"},
		{"second line", 7, 2, 0, "var b;"},
		{"after crlf", 15, 3, 0, "\tfoo();"},
		{"tab indented", 16, 3, 1, "\tfoo();"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.line, src.Line(tt.position))
			assert.Equal(t, tt.column, src.Column(tt.position))
			assert.Equal(t, tt.text, src.SourceLine(tt.position))
		})
	}
}

func TestAccessors(t *testing.T) {
	src, err := New("unicode.js", "x = 'héllo';", WithBase("/tmp"), WithURL("file:///tmp/unicode.js"))
	assert.NoError(t, err)

	assert.Equal(t, 12, src.Len())
	assert.Equal(t, 'é', src.At(6))
	assert.Equal(t, rune(0), src.At(-1))
	assert.Equal(t, rune(0), src.At(100))
	assert.Equal(t, "héllo", src.Substring(5, 5))
	assert.Equal(t, "';", src.Substring(10, 50))
	assert.Equal(t, "/tmp", src.Base())
	assert.False(t, src.IsEval())
}

func TestExplicitURLIsSetOnce(t *testing.T) {
	src, err := New("a.js", "")
	assert.NoError(t, err)

	_, ok := src.ExplicitURL()
	assert.False(t, ok)

	assert.True(t, src.SetExplicitURL("first.js"))
	assert.False(t, src.SetExplicitURL("second.js"))

	url, ok := src.ExplicitURL()
	assert.True(t, ok)
	assert.Equal(t, "first.js", url)
}

func TestDigest(t *testing.T) {
	a, _ := New("a.js", "var x = 1;")
	b, _ := New("a.js", "var x = 1;")
	c, _ := New("b.js", "var x = 1;")
	d, _ := New("a.js", "var x = 2;")

	assert.Equal(t, a.Digest(), b.Digest())
	assert.NotEqual(t, a.Digest(), c.Digest())
	assert.NotEqual(t, a.Digest(), d.Digest())
	assert.False(t, strings.ContainsAny(a.Digest(), "+/="))
	assert.Equal(t, 27, len(a.Digest()))
}

func TestContentTooLargeError(t *testing.T) {
	t.Run("Message", func(t *testing.T) {
		err := &ContentTooLargeError{Name: "huge.js", Length: 1 << 28, Limit: token.MaxValue}
		assert.Equal(t, "huge.js: source of 268435456 characters exceeds the limit of 268435455", err.Error())
	})

	t.Run("Rejected", func(t *testing.T) {
		defer func(limit int) { maxLength = limit }(maxLength)
		maxLength = 8

		_, err := New("limit.js", "var a = 1;")
		var tooLarge *ContentTooLargeError
		assert.True(t, errors.As(err, &tooLarge))
		assert.Equal(t, "limit.js", tooLarge.Name)
		assert.Equal(t, 10, tooLarge.Length)
		assert.Equal(t, 8, tooLarge.Limit)

		src, err := New("fits.js", "var a;")
		assert.NoError(t, err)
		assert.Equal(t, 6, src.Len())
	})
}
