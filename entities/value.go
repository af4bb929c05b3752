package entities

import (
	"fmt"
	"strconv"
)

// Kind discriminates the typed variants a decoded field can take.
type Kind int

const (
	// KindText is a pass-through string value
	KindText Kind = iota

	// KindInt is a decimal integer value
	KindInt

	// KindFloat is a decimal floating point value
	KindFloat

	// KindBool is a boolean value (wire form '0' or '1')
	KindBool
)

// Value is one decoded, coerced response field.
type Value struct {
	Kind  Kind
	Int   int
	Float float64
	Text  string
	Bool  bool
}

// Convenience constructors used by the static tables and decoders.
func TextValue(s string) Value    { return Value{Kind: KindText, Text: s} }
func IntValue(n int) Value        { return Value{Kind: KindInt, Int: n} }
func FloatValue(f float64) Value  { return Value{Kind: KindFloat, Float: f} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }

// String renders the bare value without any unit annotation.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

// Interface returns the value as a plain Go type for JSON and MQTT
// consumers.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	default:
		return v.Text
	}
}

// Coercion converts the raw wire text of one field into a typed Value.
// It is a closed set of variants rather than arbitrary code so the
// entity table stays pure data.
type Coercion struct {
	kind   coercionKind
	opts   []string          // enum, indexed by the numeric wire code
	lookup map[string]string // enum, keyed by the exact wire code
}

type coercionKind int

const (
	coerceText coercionKind = iota
	coerceInt
	coerceFloat
	coerceBool
	coerceEnum
	coerceEnumMap
	coerceIntOrDash
)

// The shared coercion rules.
var (
	// Text passes the raw field through unchanged
	Text = Coercion{kind: coerceText}

	// Int parses the field as a decimal integer
	Int = Coercion{kind: coerceInt}

	// Float parses the field as a decimal floating point number
	Float = Coercion{kind: coerceFloat}

	// Bool maps '0' to false and '1' to true
	Bool = Coercion{kind: coerceBool}

	// IntOrDash parses an integer but passes a literal "-" through;
	// single (non-parallel) units report "-" for parallel-only fields
	IntOrDash = Coercion{kind: coerceIntOrDash}
)

// Enum maps a numeric wire code to the option at that index. A code
// outside the option list is a hard failure, never a default.
func Enum(opts ...string) Coercion {
	return Coercion{kind: coerceEnum, opts: opts}
}

// EnumMap maps an exact wire code to a name. An unknown code is a hard
// failure, never a default.
func EnumMap(lookup map[string]string) Coercion {
	return Coercion{kind: coerceEnumMap, lookup: lookup}
}

// Apply coerces one raw wire field.
func (c Coercion) Apply(raw string) (Value, error) {
	switch c.kind {
	case coerceText:
		return TextValue(raw), nil

	case coerceInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as integer: %w", raw, err)
		}
		return IntValue(n), nil

	case coerceFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as float: %w", raw, err)
		}
		return FloatValue(f), nil

	case coerceBool:
		switch raw {
		case "0":
			return BoolValue(false), nil
		case "1":
			return BoolValue(true), nil
		}
		return Value{}, fmt.Errorf("parse %q as boolean: expected 0 or 1", raw)

	case coerceIntOrDash:
		if raw == "-" {
			return TextValue(raw), nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse %q as integer: %w", raw, err)
		}
		return IntValue(n), nil

	case coerceEnum:
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parse enum code %q: %w", raw, err)
		}
		if idx < 0 || idx >= len(c.opts) {
			return Value{}, fmt.Errorf("enum code %d out of range 0-%d", idx, len(c.opts)-1)
		}
		return TextValue(c.opts[idx]), nil

	case coerceEnumMap:
		name, ok := c.lookup[raw]
		if !ok {
			return Value{}, fmt.Errorf("unknown enum code %q", raw)
		}
		return TextValue(name), nil
	}

	return Value{}, fmt.Errorf("unknown coercion kind %d", c.kind)
}
