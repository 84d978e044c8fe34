package tenbis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"marker before", "₪400", "400"},
		{"marker before with space", "₪ 400", "400"},
		{"marker after", "400₪", "400"},
		{"marker after with space", "400 ₪", "400"},
		{"embedded in card text", "Monthly limit\n₪1000", "1000"},
		{"zero", "₪0", "0"},
		{"decimal suffix keeps integer part", "₪200.00", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no digits", "free delivery"},
		{"marker without digits", "₪"},
		{"digits without marker", "400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAmount(tt.text)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.text, parseErr.Text)
		})
	}
}

func TestParseAmount_MarkerSideEquivalence(t *testing.T) {
	// ₪n and n₪ must parse to the same value for any non-negative n.
	for _, n := range []int{0, 1, 7, 42, 200, 999, 1000, 123456} {
		before, err := ParseAmount(fmt.Sprintf("₪%d", n))
		require.NoError(t, err)

		after, err := ParseAmount(fmt.Sprintf("%d₪", n))
		require.NoError(t, err)

		assert.True(t, before.Equal(after), "₪%d != %d₪", n, n)
		assert.Equal(t, int64(n), before.IntPart())
	}
}
