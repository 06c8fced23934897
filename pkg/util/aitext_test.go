package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n[1,2]\n```":         `[1,2]`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"json {\"a\":1}":          `{"a":1}`,
	}
	for in, want := range cases {
		require.Equal(t, want, StripCodeFences(in), in)
	}
}

func TestNormalizeList(t *testing.T) {
	t.Parallel()

	got := NormalizeList([]string{" a ", "", "b", "a", "  "})
	require.Equal(t, []string{"a", "b"}, got)
}
