package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomDigitsLengthAndCharset(t *testing.T) {
	for i := 0; i < 200; i++ {
		s, err := RandomDigits(6)
		require.NoError(t, err)
		require.Len(t, s, 6)
		for _, r := range s {
			require.True(t, r >= '0' && r <= '9', "unexpected rune %q in %q", r, s)
		}
	}
}

func TestRandomDigitsDefaultsToSix(t *testing.T) {
	s, err := RandomDigits(0)
	require.NoError(t, err)
	require.Len(t, s, 6)
}

func TestRandomDigitsOtherLengths(t *testing.T) {
	for _, n := range []int{1, 4, 8} {
		s, err := RandomDigits(n)
		require.NoError(t, err)
		require.Len(t, s, n)
	}
}
