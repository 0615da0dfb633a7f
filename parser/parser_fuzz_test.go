package parser

import (
	"testing"

	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/source"
)

func FuzzParser(f *testing.F) {
	seeds := []string{
		// Statements
		"var a = 1;",
		"let { a, b: [c] } = d;",
		"if (a) b(); else { c(); }",
		"for (const x of xs) { continue; }",
		"label: while (true) break label;",
		"try { a() } catch ({ message }) {} finally {}",
		"switch (x) { case 1: default: }",

		// Functions
		"function f(a, b = 1, ...c) { return a; }",
		"const g = async (x) => await x;",
		"function* gen() { yield* other(); }",
		"(a, b) => { 'use strict'; }",

		// Classes
		"class A extends B { #x = 1; static { } get y() { return 1; } }",
		"@dec class C { @m method() {} }",

		// Templates and JSX
		"`a${b}c`",
		"tag`x${y}`",
		"<a href=\"x\">{y}<br/></a>",
		"<></>",

		// Modules
		"import a, { b as c } from 'm'; export default class {}",
		"export * as ns from 'x';",

		// Edge cases
		"", "(", ")", "{", "}", "`${", "<a", "a =>", "class {", "/*",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", data, r)
			}
		}()

		src, err := source.New("fuzz.js", data)
		if err != nil {
			return
		}
		for _, module := range []bool{false, true} {
			errs := errors.NewManager()
			p := New(src, config.New(config.JSX()), errs)
			parse := p.Parse
			if module {
				parse = p.ParseModule
			}
			fn, err := parse()
			if err == nil && fn == nil {
				t.Errorf("parse of %q returned neither a tree nor an error", data)
			}
			if err != nil && fn != nil {
				t.Errorf("parse of %q returned a tree with error %v", data, err)
			}
		}
	})
}
