package stringsx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClip_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "hello", 10, "hello"},
		{"equal", "hello", 5, "hello"},
		{"clip", "hello", 3, "hel"},
		{"zero", "hello", 0, ""},
		{"neg", "hello", -1, ""},
		{"empty", "", 3, ""},
		{"multibyte", "привет", 3, "при"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Clip(tt.in, tt.max))
		})
	}
}

func TestPreview(t *testing.T) {
	require.Equal(t, "short", Preview("short", 10))
	require.Equal(t, "hello…", Preview("hello world", 6))
	require.Equal(t, "", Preview("hello", 0))
}

func TestSingleLine(t *testing.T) {
	require.Equal(t, "a b c", SingleLine("a\tb\nc"))
	require.Equal(t, "x  y", SingleLine("x\r\ny"))
	require.Equal(t, "plain", SingleLine("plain"))
}

func TestIsBlank(t *testing.T) {
	require.True(t, IsBlank(""))
	require.True(t, IsBlank("   \n\t  "))
	require.False(t, IsBlank(" x "))
}
