package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFocusWraps(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want Point
	}{
		{"in range", 2, 3, Point{2, 3}},
		{"one past the end", 4, 0, Point{0, 0}},
		{"one before the start", -1, 0, Point{3, 0}},
		{"both axes", -1, 4, Point{3, 0}},
		{"last division", 3, 3, Point{3, 3}},
		{"more than one lap is not normalized", 9, 0, Point{5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, 8, 4)
			g.SetFocus(tt.x, tt.y)
			assert.Equal(t, tt.want, g.Focus())
		})
	}
}

func TestPickUnstartedDivisionNoneStarted(t *testing.T) {
	g := newTestGrid(t, 8, 4)
	assert.Equal(t, Point{0, 0}, g.PickUnstartedDivision())
}

func TestPickUnstartedDivisionFrontier(t *testing.T) {
	tests := []struct {
		name    string
		x0, y0  int // toggle start inside the started division
		started Point
		want    []Point
	}{
		{"interior", 3, 5, Point{1, 2}, []Point{{0, 2}, {2, 2}, {1, 1}, {1, 3}}},
		{"corner wraps", 1, 1, Point{0, 0}, []Point{{3, 0}, {1, 0}, {0, 3}, {0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(t, 8, 4)
			_, _, err := g.Toggle(tt.x0, tt.y0, tt.x0, tt.y0+1)
			require.NoError(t, err)
			require.True(t, g.DivisionStarted(tt.started))
			require.Equal(t, 1, g.StartedCount())

			seen := map[Point]int{}
			for range 2000 {
				seen[g.PickUnstartedDivision()]++
			}

			assert.Len(t, seen, len(tt.want))
			for _, p := range tt.want {
				assert.Positive(t, seen[p], "neighbour %v never picked", p)
			}
		})
	}
}

func TestPickUnstartedDivisionExhausted(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	for _, step := range [][4]int{{0, 0, 1, 0}, {0, 1, 1, 1}, {1, 0, 1, 1}, {1, 1, 0, 1}} {
		_, _, err := g.Toggle(step[0], step[1], step[2], step[3])
		require.NoError(t, err)
	}
	require.Equal(t, 4, g.StartedCount())

	assert.Equal(t, Point{0, 0}, g.PickUnstartedDivision())
}

func TestSetRandomFocus(t *testing.T) {
	t.Run("frontier", func(t *testing.T) {
		g := newTestGrid(t, 8, 4)
		_, _, err := g.Toggle(3, 5, 4, 5)
		require.NoError(t, err)

		allowed := map[Point]bool{{0, 2}: true, {2, 2}: true, {1, 1}: true, {1, 3}: true}
		for range 100 {
			g.SetRandomFocus()
			assert.True(t, allowed[g.Focus()], "focus %v is not next to (1,2)", g.Focus())
		}
	})

	t.Run("nothing started", func(t *testing.T) {
		g := newTestGrid(t, 8, 4)
		seen := map[Point]bool{}
		for range 400 {
			g.SetRandomFocus()
			f := g.Focus()
			require.True(t, f.X >= 0 && f.X < 4 && f.Y >= 0 && f.Y < 4, "focus %v out of range", f)
			seen[f] = true
		}
		assert.Greater(t, len(seen), 1, "focus should be random, not pinned to (0,0)")
	})

	t.Run("everything started", func(t *testing.T) {
		g := newTestGrid(t, 4, 2, WithOnProbability(1))
		require.NoError(t, g.Load(g.Serialize()))
		require.Equal(t, 4, g.StartedCount())

		seen := map[Point]bool{}
		for range 200 {
			g.SetRandomFocus()
			seen[g.Focus()] = true
		}
		assert.Len(t, seen, 4)
	})
}
