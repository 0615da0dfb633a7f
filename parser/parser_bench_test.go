package parser

import (
	"os"
	"testing"

	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/source"
)

func BenchmarkParseKitchensink(b *testing.B) {
	data, err := os.ReadFile("../testdata/kitchensink.js")
	if err != nil {
		b.Fatal(err)
	}
	src, err := source.New("kitchensink.js", string(data))
	if err != nil {
		b.Fatal(err)
	}
	env := config.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := New(src, env, errors.NewManager()).Parse()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReparse(b *testing.B) {
	data, err := os.ReadFile("../testdata/kitchensink.js")
	if err != nil {
		b.Fatal(err)
	}
	src, err := source.New("kitchensink.js", string(data))
	if err != nil {
		b.Fatal(err)
	}
	env := config.New()
	prior, err := New(src, env, errors.NewManager()).Parse()
	if err != nil {
		b.Fatal(err)
	}
	reparse := NewReparse(prior, prior.ID)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := New(src, env, errors.NewManager(), WithReparse(reparse)).Parse()
		if err != nil {
			b.Fatal(err)
		}
	}
}
