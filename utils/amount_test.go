package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"50,000.00", 50000, true},
		{"1,50,000", 150000, true},
		{"23,620.00/-", 23620, true},
		{"0", 0, true},
		{"1989", 1989, true},
		{"1990", 0, false},
		{"2024", 0, false},
		{"2100", 0, false},
		{"2101", 2101, true},
		{",", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"-500", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanAmount(t *testing.T) {
	v, ok := CleanAmount("Rs. 50,000")
	assert.True(t, ok)
	assert.Equal(t, 50000.0, v)

	v, ok = CleanAmount("Rs.1,880.50")
	assert.True(t, ok)
	assert.Equal(t, 1880.5, v)

	_, ok = CleanAmount("Rs. 2023")
	assert.False(t, ok)
}
