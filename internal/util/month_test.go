package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMonth(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"2026-01", true},
		{"1999-12", true},
		{"2026-1", false},
		{"2026/01", false},
		{"2026-01-02", false},
		{"", false},
		{"January 2026", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidMonth(tt.input))
		})
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-01-02"))
	assert.False(t, ValidDate("01/02/2026"))
	assert.False(t, ValidDate("2026-01"))
	assert.False(t, ValidDate(""))
}

func TestMonthOfDate(t *testing.T) {
	assert.Equal(t, "2026-01", MonthOfDate("2026-01-02"))
	assert.Equal(t, "2026-1", MonthOfDate("2026-1"))
}
