package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "simple", line: "1 2 3", want: []string{"1", "2", "3"}},
		{name: "newline", line: "1 2 3\n", want: []string{"1", "2", "3"}},
		{name: "windows line ending", line: "1 2 3\r\n", want: []string{"1", "2", "3"}},
		{name: "runs of spaces", line: "  1   2\t3  ", want: []string{"1", "2", "3"}},
		{name: "interior carriage return", line: "1\r2", want: []string{"1", "2"}},
		{name: "empty", line: "", want: nil},
		{name: "only whitespace", line: " \t\r\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fields(tt.line)
			if tt.want == nil {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSplit(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, Split("a,b", ','))
	require.Equal(t, []string{"a", "b"}, Split("a,,b,", ','))
	require.Equal(t, []string{"20", "20", "255", "srgb"}, Split("20,20,255,srgb", ','))
	require.Empty(t, Split("", ','))
}
