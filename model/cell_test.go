package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCells(t *testing.T) {
	cells := NewCells(true, false)
	require.Len(t, cells, 2)

	assert.True(t, cells[0].IsAlive())
	assert.False(t, cells[1].IsAlive())
	assert.Equal(t, 0, cells[0].Index())
	assert.Equal(t, 1, cells[1].Index())
	assert.NotEqual(t, cells[0].ID(), cells[1].ID())
	assert.Zero(t, cells[0].NeighborCount())

	cells[1].SetAlive(true)
	assert.True(t, cells[1].IsAlive())
}

func TestCell_AddNeighbor(t *testing.T) {
	cells := NewCells(true, true)

	assert.True(t, cells[0].AddNeighbor(&cells[1]))
	assert.Equal(t, 1, cells[0].NeighborCount())

	// same state is not the same cell, but the same cell twice is a duplicate
	assert.False(t, cells[0].AddNeighbor(&cells[1]))
	assert.Equal(t, 1, cells[0].NeighborCount())

	assert.False(t, cells[0].AddNeighbor(&cells[0]), "a cell is never its own neighbor")
	assert.False(t, cells[0].AddNeighbor(nil))
	assert.Equal(t, []int{1}, cells[0].Neighbors())
}

func TestCell_AddNeighbor_comparesByIdentity(t *testing.T) {
	arena := NewCells(true, false)
	other := NewCells(true)

	// other[0] shares arena[0]'s index but is a different cell
	assert.NotEqual(t, arena[0].ID(), other[0].ID())
	assert.False(t, arena[0].AddNeighbor(&other[0]), "cells from another arena are rejected")
	assert.False(t, other[0].AddNeighbor(&arena[0]))
	assert.Zero(t, arena[0].NeighborCount())
	assert.Equal(t, 0, arena[0].AliveNeighborCount(arena))

	// a copy of a cell keeps its identity, so it is a duplicate
	assert.True(t, arena[0].AddNeighbor(&arena[1]))
	alias := arena[1]
	alias.SetAlive(true)
	assert.False(t, arena[0].AddNeighbor(&alias))

	self := arena[0]
	assert.False(t, arena[0].AddNeighbor(&self), "a copy of the cell itself is still itself")
	assert.Equal(t, []int{1}, arena[0].Neighbors())
}

func TestCell_AddMultipleNeighbors(t *testing.T) {
	tests := []struct {
		name      string
		alive     []bool
		pick      []int
		wantCount int
		wantOK    bool
	}{
		{name: "four distinct", alive: []bool{false, true, true, false}, pick: []int{0, 1, 2, 3}, wantCount: 4, wantOK: true},
		{name: "empty", alive: nil, pick: nil, wantCount: 0, wantOK: true},
		{name: "single", alive: []bool{false}, pick: []int{0}, wantCount: 1, wantOK: true},
		{name: "one repeat", alive: []bool{false, true, true}, pick: []int{0, 1, 2, 1}, wantCount: 3, wantOK: false},
		{name: "same cell four times", alive: []bool{true}, pick: []int{0, 0, 0, 0}, wantCount: 1, wantOK: false},
		{name: "two cells interleaved", alive: []bool{true, false}, pick: []int{0, 0, 1, 1, 0, 1}, wantCount: 2, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the owner lives at the end of the arena
			arena := NewCells(append(tt.alive, true)...)
			owner := &arena[len(arena)-1]

			others := make([]*Cell, len(tt.pick))
			for i, p := range tt.pick {
				others[i] = &arena[p]
			}

			assert.Equal(t, tt.wantOK, owner.AddMultipleNeighbors(others...))
			assert.Equal(t, tt.wantCount, owner.NeighborCount())
		})
	}
}

func TestCell_AliveNeighborCount(t *testing.T) {
	arena := NewCells(false, true, true, false, true)
	owner := &arena[0]
	owner.AddMultipleNeighbors(&arena[1], &arena[2], &arena[3], &arena[4])

	assert.Equal(t, 3, owner.AliveNeighborCount(arena))

	arena[4].SetAlive(false)
	assert.Equal(t, 2, owner.AliveNeighborCount(arena), "count is recomputed every call")
}
