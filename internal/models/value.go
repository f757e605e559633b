package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// ValueKind identifies which variant a Value holds
type ValueKind int

const (
	KindNone ValueKind = iota
	KindBool
	KindInt
	KindText
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	default:
		return "none"
	}
}

// Value is a single answer payload: a boolean for yes/no questions, an
// integer for scale questions or a string for free text. It encodes to the
// bare JSON scalar so persisted entries stay readable.
type Value struct {
	kind ValueKind
	b    bool
	n    int
	s    string
}

func BoolValue(b bool) Value   { return Value{kind: KindBool, b: b} }
func IntValue(n int) Value     { return Value{kind: KindInt, n: n} }
func TextValue(s string) Value { return Value{kind: KindText, s: s} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsZero() bool    { return v.kind == KindNone }

// Bool returns the boolean payload and whether v holds one
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer payload and whether v holds one
func (v Value) Int() (int, bool) { return v.n, v.kind == KindInt }

// Text returns the string payload and whether v holds one
func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }

// String renders the payload the way it is shown in history listings
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "yes"
		}
		return "no"
	case KindInt:
		return strconv.Itoa(v.n)
	case KindText:
		return v.s
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.n)
	case KindText:
		return json.Marshal(v.s)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("invalid boolean answer value: %w", err)
		}
		*v = BoolValue(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid text answer value: %w", err)
		}
		*v = TextValue(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("invalid answer value %s: %w", data, err)
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("invalid answer value %s: scale answers must be whole numbers", data)
		}
		*v = IntValue(int(f))
	}
	return nil
}
