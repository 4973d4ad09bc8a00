package core

import (
	"math"
	"strconv"
	"strings"
)

type Value interface {
	String() string
	Truthy() bool
}

type IntValue int64

func (v IntValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntValue) Truthy() bool {
	return v != 0
}

type FloatValue float64

// String formats the float the way Felix has always printed them: integral
// values keep a trailing ".0" and very large or small magnitudes switch to
// exponent form.
func (v FloatValue) String() string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	exp := strconv.FormatFloat(f, 'e', -1, 64)
	e, err := strconv.Atoi(exp[strings.IndexByte(exp, 'e')+1:])
	if err == nil && (e < -4 || e >= 16) {
		return exp
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (v FloatValue) Truthy() bool {
	return v != 0
}

type StringValue string

func (v StringValue) String() string {
	return string(v)
}

func (v StringValue) Truthy() bool {
	return len(v) > 0
}

func typeName(v Value) string {
	switch v.(type) {
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case StringValue:
		return "string"
	}
	return "unknown"
}

func toFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case IntValue:
		return float64(v), true
	case FloatValue:
		return float64(v), true
	}
	return 0, false
}
