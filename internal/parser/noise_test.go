package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseFilter_Lines(t *testing.T) {
	f, err := NewNoiseFilter(DefaultLegalMarker, DefaultExcludePatterns)
	require.NoError(t, err)

	got := f.Lines("  01/02/2023 CAFE  \n\n   \nEnding Balance $10.00\nMember FDIC\nDirect Inquiries to 1-800\nCAFE CONT\nImportant Notice\n01/03/2023 AFTER")
	assert.Equal(t, []string{"01/02/2023 CAFE", "CAFE CONT"}, got)
}

func TestNoiseFilter_LinesSplitsAllLineBreaks(t *testing.T) {
	f, err := NewNoiseFilter(DefaultLegalMarker, DefaultExcludePatterns)
	require.NoError(t, err)

	got := f.Lines("a\r\nb\rc\fd\ve\u2028f\u2029g\u0085h\x1ci")
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}, got)
}

func TestNoiseFilter_Excluded(t *testing.T) {
	f, err := NewNoiseFilter(DefaultLegalMarker, DefaultExcludePatterns)
	require.NoError(t, err)

	tests := []struct {
		input string
		want  bool
	}{
		{"Beginning Balance $1,000.00", true},
		{"ENDING BALANCE", true},
		{"Accounts offered by American Express", true},
		{"COFFEE SHOP", false},
		{"Balance Transfer", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Excluded(tt.input))
		})
	}
}

func TestNoiseFilter_NoMarkerKeepsText(t *testing.T) {
	f, err := NewNoiseFilter("", nil)
	require.NoError(t, err)

	assert.Equal(t, "a\nImportant Notice\nb", f.Truncate("a\nImportant Notice\nb"))
	assert.False(t, f.Excluded("Beginning Balance"))
}

func TestNewNoiseFilter_InvalidPattern(t *testing.T) {
	_, err := NewNoiseFilter(DefaultLegalMarker, []string{"("})
	assert.Error(t, err)
}
