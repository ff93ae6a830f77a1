package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		code, err := Generate(6)
		require.NoError(t, err)
		require.Len(t, code, 6)

		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q is not numeric", code)
		}
		seen[code] = true
	}

	// 50 draws of a 6-digit code colliding down to a handful would mean a
	// broken random source
	assert.Greater(t, len(seen), 40)
}
