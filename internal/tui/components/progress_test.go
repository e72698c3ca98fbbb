package components

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	t.Parallel()

	t.Run("creates progress with specified total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(10)
		require.NotNil(t, p.bar)
		require.Equal(t, 10, p.total)
	})

	t.Run("creates progress with zero total", func(t *testing.T) {
		t.Parallel()
		p := NewProgress(0)
		require.Equal(t, 0, p.total)
	})
}

func TestProgressView(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		total     int
		processed int
		percent   float64
		label     string
	}{
		{"zero total", 0, 0, 0, "0/0"},
		{"partial", 10, 5, 50, "5/10"},
		{"complete", 10, 10, 100, "10/10"},
		{"percent above range is clamped", 4, 4, 140, "4/4"},
		{"negative percent is clamped", 4, 0, -3, "0/4"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			view := NewProgress(tc.total).View(tc.processed, tc.percent)
			require.Contains(t, view, tc.label)
			require.NotEmpty(t, view)
		})
	}
}
