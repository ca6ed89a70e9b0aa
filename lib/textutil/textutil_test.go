package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "john michael smith", NormalizeName("  John \t Michael\nSmith "))
	require.Equal(t, "a b", CollapseSpace(" a    b "))
}

func TestIsPlaceholder(t *testing.T) {
	for _, name := range []string{"Staff", "N/A", " tba ", ""} {
		require.True(t, IsPlaceholder(name), name)
	}
	require.False(t, IsPlaceholder("Stafford Smith"))
}
