package store

import (
	"testing"

	"github.com/salescope-lab/salescope/internal/core/engine"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHolder_Swap(t *testing.T) {
	first := engine.NewSnapshot(nil, false)
	second := engine.NewSnapshot(nil, true)

	h := NewSnapshotHolder(first)
	require.Same(t, first, h.Current())

	held := h.Current() // a query in flight keeps its snapshot
	h.Swap(second)
	require.Same(t, second, h.Current())
	require.Same(t, first, held)
	require.NotEqual(t, first.Version(), second.Version())
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "SHIPPED", want: "Shipped"},
		{in: "shipped", want: "Shipped"},
		{in: "on hold", want: "On Hold"},
		{in: "  classic CARS ", want: "Classic Cars"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, TitleCase(tc.in), "input %q", tc.in)
	}
}
