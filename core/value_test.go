package core

import (
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{IntValue(42), "42"},
		{IntValue(-7), "-7"},
		{FloatValue(5), "5.0"},
		{FloatValue(3.5), "3.5"},
		{FloatValue(-0.25), "-0.25"},
		{FloatValue(0.0001), "0.0001"},
		{FloatValue(0.00001), "1e-05"},
		{FloatValue(1e15), "1000000000000000.0"},
		{FloatValue(1e16), "1e+16"},
		{FloatValue(1.5e300), "1.5e+300"},
		{FloatValue(math.Inf(1)), "inf"},
		{FloatValue(0), "0.0"},
		{StringValue("hi there"), "hi there"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Errorf("%#v: expected %q, got %q", tt.value, tt.expected, got)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		value    Value
		expected bool
	}{
		{IntValue(0), false},
		{IntValue(-1), true},
		{FloatValue(0), false},
		{FloatValue(0.5), true},
		{StringValue(""), false},
		{StringValue("0"), true},
	}

	for _, tt := range tests {
		if got := tt.value.Truthy(); got != tt.expected {
			t.Errorf("%#v: expected %v, got %v", tt.value, tt.expected, got)
		}
	}
}
