package models

import (
	"fmt"
	"iter"
	"math/big"
)

// Kind is the tag of a Value. Lists compare their elements by Kind only.
type Kind int

// Value kinds
const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindNull
	KindList
	KindDictionary
)

var kindNames = [...]string{
	KindString:     "STRING",
	KindInt:        "INT",
	KindFloat:      "FLOAT",
	KindBool:       "BOOL",
	KindNull:       "NULL",
	KindList:       "LIST",
	KindDictionary: "DICTIONARY",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a node of a parsed value tree. The concrete types are String,
// Int, BigInt, Float, Bool, Null, List and *Dictionary.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a quoted string value, stored exactly as it appeared between the
// quotes.
type String string

// Int is an integer value.
type Int int64

// BigInt is an integer value outside the range of Int. It shares KindInt
// with Int. Use NewBigInt to construct one.
type BigInt struct {
	n *big.Int
}

// NewBigInt returns n as an Int when it fits in 64 bits and as a BigInt
// otherwise. The result does not alias n.
func NewBigInt(n *big.Int) Value {
	if n.IsInt64() {
		return Int(n.Int64())
	}
	return BigInt{n: new(big.Int).Set(n)}
}

// Big returns a copy of the value.
func (b BigInt) Big() *big.Int { return new(big.Int).Set(b.n) }

func (b BigInt) String() string { return b.n.String() }

// Float is a floating point value.
type Float float64

// Bool is a boolean value.
type Bool bool

// Null is the null value.
type Null struct{}

// List is an ordered sequence of values sharing one Kind.
type List []Value

func (String) Kind() Kind      { return KindString }
func (Int) Kind() Kind         { return KindInt }
func (BigInt) Kind() Kind      { return KindInt }
func (Float) Kind() Kind       { return KindFloat }
func (Bool) Kind() Kind        { return KindBool }
func (Null) Kind() Kind        { return KindNull }
func (List) Kind() Kind        { return KindList }
func (*Dictionary) Kind() Kind { return KindDictionary }

func (String) isValue()      {}
func (Int) isValue()         {}
func (BigInt) isValue()      {}
func (Float) isValue()       {}
func (Bool) isValue()        {}
func (Null) isValue()        {}
func (List) isValue()        {}
func (*Dictionary) isValue() {}

// Dictionary maps string keys to values and remembers insertion order.
// The zero value is an empty dictionary ready for use.
type Dictionary struct {
	keys   []string
	values map[string]Value
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{values: make(map[string]Value)}
}

// Set adds key with value v. It reports false, leaving d unchanged, if key
// is already present.
func (d *Dictionary) Set(key string, v Value) bool {
	if d.values == nil {
		d.values = make(map[string]Value)
	}
	if _, ok := d.values[key]; ok {
		return false
	}
	d.keys = append(d.keys, key)
	d.values[key] = v
	return true
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.keys) }

// Keys returns a copy of the keys in insertion order.
func (d *Dictionary) Keys() []string {
	return append([]string(nil), d.keys...)
}

// All iterates over the entries in insertion order.
func (d *Dictionary) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Equal reports whether a and b are the same tree. Dictionaries must agree on
// key order as well as contents.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Dictionary:
		bv := b.(*Dictionary)
		if av.Len() != bv.Len() {
			return false
		}
		for i, k := range av.keys {
			if bv.keys[i] != k || !Equal(av.values[k], bv.values[k]) {
				return false
			}
		}
		return true
	case BigInt:
		bv, ok := b.(BigInt)
		return ok && av.n.Cmp(bv.n) == 0
	default:
		return a == b
	}
}
