package token

import (
	"math/big"
	"strconv"
)

// Value is the semantic value of a literal token. The set of implementations
// is closed: Int, Long, Double, BigInt, String, Bool, Null, Regex and XMLValue.
type Value interface {
	value()
	String() string
}

// Int is a numeric literal that fits in 32 bits.
type Int int32

// Long is an integral numeric literal that needs 64 bits.
type Long int64

// Double is a numeric literal that is not integral or does not fit in 64 bits.
type Double float64

// BigInt is an arbitrary precision literal such as 123n.
type BigInt struct{ *big.Int }

// String is a cooked string value.
type String string

// Bool is true or false.
type Bool bool

// Null is the null literal.
type Null struct{}

// Regex is a regular expression literal with its flags.
type Regex struct {
	Expression string
	Options    string
}

// XMLValue is an XML literal; only the raw text is kept.
type XMLValue struct {
	Expression string
}

func (Int) value()      {}
func (Long) value()     {}
func (Double) value()   {}
func (BigInt) value()   {}
func (String) value()   {}
func (Bool) value()     {}
func (Null) value()     {}
func (Regex) value()    {}
func (XMLValue) value() {}

func (v Int) String() string      { return strconv.FormatInt(int64(v), 10) }
func (v Long) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v Double) String() string   { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v BigInt) String() string   { return v.Int.String() + "n" }
func (v String) String() string   { return string(v) }
func (v Bool) String() string     { return strconv.FormatBool(bool(v)) }
func (Null) String() string       { return "null" }
func (v Regex) String() string    { return "/" + v.Expression + "/" + v.Options }
func (v XMLValue) String() string { return v.Expression }

// IsNumeric reports whether v is one of the number values.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Long, Double, BigInt:
		return true
	}
	return false
}
