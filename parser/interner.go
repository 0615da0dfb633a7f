package parser

// Interner implements string interning for identifier names.
//
// The same few names (this, length, i, exports, the names of local
// variables) appear over and over in a script. Interning keeps one
// instance of each, so the idents of a tree share their name strings.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of the string.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternRunes converts a rune slice to a string and interns it.
func (i *Interner) InternRunes(r []rune) string {
	return i.Intern(string(r))
}

// Size returns the number of unique strings in the intern pool.
func (i *Interner) Size() int {
	return len(i.pool)
}

// Reset clears the intern pool.
func (i *Interner) Reset() {
	i.pool = make(map[string]string)
}
