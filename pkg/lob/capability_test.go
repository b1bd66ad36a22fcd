package lob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServerVersion(t *testing.T) {
	tests := []struct {
		input string
		major int
		minor int
	}{
		{"9.2.24", 9, 2},
		{"9.3", 9, 3},
		{"9.3rc1", 9, 3},
		{"10.1", 10, 1},
		{"16.4", 16, 4},
		{"16.4 (Debian 16.4-1.pgdg120+1)", 16, 4},
		{"18beta1", 18, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			major, minor, err := parseServerVersion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.major, major)
			assert.Equal(t, tt.minor, minor)
		})
	}
}

func TestParseServerVersionInvalid(t *testing.T) {
	for _, input := range []string{"", "x.y", "banana"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := parseServerVersion(input)
			assert.Error(t, err)
		})
	}
}

func TestSixtyFourBitCutoff(t *testing.T) {
	// 64-bit addressing appeared in 9.3.
	tests := []struct {
		major, minor int
		want         bool
	}{
		{8, 4, false},
		{9, 2, false},
		{9, 3, true},
		{9, 6, true},
		{10, 0, true},
		{16, 4, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, supports64(tt.major, tt.minor), "%d.%d", tt.major, tt.minor)
	}
}
