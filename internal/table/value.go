package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind tags the content of a cell.
type Kind uint8

const (
	KindMissing Kind = iota
	KindString
	KindFloat
	KindBool
	KindTime
)

// Value is a single cell of a result table. The zero value is missing.
type Value struct {
	kind Kind
	s    string
	f    float64
	b    bool
	t    time.Time
}

// Missing returns a missing cell.
func Missing() Value {
	return Value{}
}

func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Float returns a numeric cell. NaN is stored as missing.
func Float(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindFloat, f: f}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time returns a timestamp cell. The zero time is stored as missing.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{kind: KindTime, t: t}
}

// OptionalString returns a string cell, or missing for blank input.
func OptionalString(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return String(s)
}

// OptionalFloat returns a numeric cell, or missing for a nil pointer.
func OptionalFloat(f *float64) Value {
	if f == nil {
		return Value{}
	}
	return Float(*f)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Str renders the cell as text. Dates without a clock component render as
// YYYY-MM-DD, other timestamps as RFC 3339.
func (v Value) Str() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindTime:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Float coerces the cell to a number. Strings are parsed after stripping
// thousands separators.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindString:
		raw := strings.ReplaceAll(strings.TrimSpace(v.s), ",", "")
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert %q to float", v.s)
		}
		return f, nil
	case KindMissing:
		return 0, fmt.Errorf("missing value has no numeric form")
	default:
		return 0, fmt.Errorf("could not convert %s to float", v.Str())
	}
}

// Bool coerces the cell to a boolean. Missing cells are false.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindFloat:
		return v.f != 0
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "", "0", "false", "no", "off":
			return false
		default:
			return true
		}
	case KindTime:
		return true
	default:
		return false
	}
}
