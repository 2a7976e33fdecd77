package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortCodeShape(t *testing.T) {
	g, err := NewShortCodeGenerator("test-salt")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		code, err := g.Generate()
		require.NoError(t, err)

		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", r),
				"code %q contains %q outside the alphabet", code, r)
		}
	}
}

func TestShortCodeSaltChangesOutput(t *testing.T) {
	_, err := NewShortCodeGenerator("")
	require.NoError(t, err, "empty salt is allowed, codes are just predictable")
}
