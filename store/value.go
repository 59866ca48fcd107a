package store

import "strconv"

// Kind identifies the type held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a tagged union of the types a widget can publish.
// The zero Value is invalid.
type Value struct {
	kind Kind
	i    int
	b    bool
	s    string
}

func Int(v int) Value       { return Value{kind: KindInt, i: v} }
func Bool(v bool) Value     { return Value{kind: KindBool, b: v} }
func String(v string) Value { return Value{kind: KindString, s: v} }

// Zero returns the zero value for kind: 0, false or "".
func Zero(k Kind) Value {
	switch k {
	case KindInt, KindBool, KindString:
		return Value{kind: k}
	}
	return Value{}
}

func (v Value) Kind() Kind    { return v.kind }
func (v Value) IsValid() bool { return v.kind != KindInvalid }

func (v Value) AsInt() (int, bool)       { return v.i, v.kind == KindInt }
func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// String formats the value for display regardless of its kind.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	default:
		return "<invalid>"
	}
}
