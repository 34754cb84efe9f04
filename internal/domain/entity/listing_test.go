package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$45", 45, true},
		{"$1,200.50", 1200.5, true},
		{" 80 ", 80, true},
		{"$", 0, false},
		{"free", 0, false},
		{"", 0, false},
		{"$Inf", 0, false},
		{"Infinity", 0, false},
		{"NaN", 0, false},
		{"0x1p4", 0, false},
		{"1e3", 0, false},
		{"-5", 0, false},
		{"12.", 0, false},
		{"$0.99", 0.99, true},
	}

	for _, tc := range cases {
		got, ok := ParsePrice(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$45", FormatPrice("45"))
	assert.Equal(t, "$45", FormatPrice("$45"))
	assert.Equal(t, "", FormatPrice("  "))
}

func TestLookupCondition(t *testing.T) {
	assert.Equal(t, "Like New", LookupCondition("like-new").Label)
	assert.Equal(t, "bg-blue-100 text-blue-800", LookupCondition("New").Color)
	assert.Equal(t, "Good", LookupCondition("mint").Label)
}
