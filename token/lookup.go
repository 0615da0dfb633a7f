package token

import "sort"

// The tables below are built once at package initialization and only read
// afterwards, so they are safe for concurrent use by any number of lexers.
var (
	keywords  = buildKeywords()
	operators = buildOperators()
)

func buildKeywords() map[string]Type {
	m := make(map[string]Type)
	for t := Type(0); t < numTypes; t++ {
		info := infos[t]
		if info.name == "" || !isASCIILetter(info.name[0]) {
			continue
		}
		switch info.kind {
		case Keyword, Future, FutureStrict, Unary, Binary, Literal:
			m[info.name] = t
		}
	}
	return m
}

// buildOperators indexes operators by their first character, longest
// spelling first, so that the first hit is the longest match.
func buildOperators() map[rune][]Type {
	m := make(map[rune][]Type)
	for t := Type(0); t < numTypes; t++ {
		info := infos[t]
		if info.name == "" || isASCIILetter(info.name[0]) {
			continue
		}
		switch info.kind {
		case Unary, Binary, Bracket:
			first := rune(info.name[0])
			m[first] = append(m[first], t)
		}
	}
	for _, types := range m {
		sort.SliceStable(types, func(i, j int) bool {
			return len(infos[types[i]].name) > len(infos[types[j]].name)
		})
	}
	return m
}

// LookupKeyword returns the keyword type spelled by name, or IDENT.
func LookupKeyword(name string) Type {
	if t, ok := keywords[name]; ok {
		return t
	}
	return IDENT
}

// LookupOperator returns the longest operator spelled by the lookahead
// characters that the given edition recognizes, and false when none matches.
func LookupOperator(ch0, ch1, ch2, ch3 rune, edition int) (Type, bool) {
	window := [4]rune{ch0, ch1, ch2, ch3}
	for _, t := range operators[ch0] {
		info := infos[t]
		if info.edition <= edition && matches(info.name, window) {
			return t, true
		}
	}
	return ERROR, false
}

func matches(name string, window [4]rune) bool {
	if len(name) > len(window) {
		return false
	}
	for i := 0; i < len(name); i++ {
		if window[i] != rune(name[i]) {
			return false
		}
	}
	return true
}

// IsIdentifierName reports whether tokens of this type may be used where an
// IdentifierName is expected, such as after "." or as a property key.
func (t Type) IsIdentifierName() bool {
	if t == IDENT {
		return true
	}
	name := infos[t].name
	return name != "" && isASCIILetter(name[0])
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
