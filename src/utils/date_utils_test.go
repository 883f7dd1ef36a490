package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "2024-01-15"},
		{"2024-01-15 10:30:00", "2024-01-15"},
		{"2024-06-02T11:45:12.000Z", "2024-06-02"},
		{"  2024-03-01 00:00:00  ", "2024-03-01"},
		{"Jan 02 2026 10:33:55", "2026-01-02"},
		{"01/02/2006 15:04:05", "2006-01-02"},
		{"2024/05/20", "2024-05-20"},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024-13-40", "2024-13-40 10:00:00"} {
		_, err := NormalizeDate(in)
		assert.Error(t, err, "input %q", in)
	}
}
