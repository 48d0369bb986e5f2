package physics

import (
	"sort"
	"testing"
)

func TestPointInCircle(t *testing.T) {
	tests := []struct {
		px, py float64
		want   bool
	}{
		{10, 10, true},
		{35, 10, true}, // on the edge
		{35.1, 10, false},
		{28, 28, false},
	}
	for _, tt := range tests {
		if got := PointInCircle(tt.px, tt.py, 10, 10, 25); got != tt.want {
			t.Errorf("PointInCircle(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
		}
	}
}

func TestQueryAroundFindsNeighborsWithoutWrapping(t *testing.T) {
	g := NewSpatialGrid(400, 400, 80)
	g.Insert(10, 10, 0)   // top-left cell
	g.Insert(390, 10, 1)  // top-right cell, would be a neighbor only with wrapping
	g.Insert(100, 100, 2) // diagonal neighbor of top-left
	g.Insert(300, 300, 3)

	var got []int
	g.QueryAround(5, 5, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)

	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("neighbors of (5,5) = %v, want [0 2]", got)
	}
}

func TestQueryAroundStopsEarly(t *testing.T) {
	g := NewSpatialGrid(200, 200, 80)
	for i := 0; i < 5; i++ {
		g.Insert(50, 50, i)
	}

	calls := 0
	g.QueryAround(50, 50, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("callback ran %d times, want 1", calls)
	}
}

func TestClearAndCovers(t *testing.T) {
	g := NewSpatialGrid(800, 440, 80)
	g.Insert(400, 200, 7)
	g.Clear()

	found := false
	g.QueryAround(400, 200, func(int) bool {
		found = true
		return true
	})
	if found {
		t.Fatal("item still present after Clear")
	}

	if !g.Covers(790, 430) {
		t.Fatal("grid should cover a field with the same cell span")
	}
	if g.Covers(1000, 440) {
		t.Fatal("grid should not cover a wider field")
	}
}
