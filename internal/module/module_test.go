package module

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Modules {
		require.False(t, seen[m.GetName()], m.GetName())
		seen[m.GetName()] = true
	}
	require.Len(t, seen, 8)
}
