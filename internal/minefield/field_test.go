package minefield

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"9x9(10)", Params{9, 9, 10}, true},
		{"empty field", Params{1, 1, 0}, true},
		{"zero width", Params{0, 9, 10}, false},
		{"negative mines", Params{9, 9, -1}, false},
		{"full of mines", Params{3, 3, 9}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewPlacesExactMineCount(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	f, err := New(Params{Width: 8, Height: 8, MineCount: 8}, r)
	require.NoError(t, err)

	mines := 0
	for row := range f.Height {
		for col := range f.Width {
			if f.IsMine(row, col) {
				mines++
			}
		}
	}
	assert.Equal(t, 8, mines)
}

func TestNearbyMines(t *testing.T) {
	f := &Field{
		Params:  Params{Width: 3, Height: 3, MineCount: 2},
		grid:    make([]bool, 9),
		flagged: make(map[int]struct{}),
	}
	f.grid[f.index(0, 0)] = true
	f.grid[f.index(2, 2)] = true

	assert.Equal(t, 2, f.NearbyMines(1, 1))
	assert.Equal(t, 1, f.NearbyMines(0, 1))
	assert.Equal(t, 0, f.NearbyMines(0, 2))
	assert.Equal(t, 0, f.NearbyMines(2, 2)) // a mine does not count itself
}

func TestWon(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	f, err := New(Params{Width: 4, Height: 4, MineCount: 3}, r)
	require.NoError(t, err)

	assert.False(t, f.Won())

	for row := range f.Height {
		for col := range f.Width {
			if f.IsMine(row, col) {
				f.Flag(row, col)
			}
		}
	}
	assert.True(t, f.Won())
}

func TestWrongFlagBlocksWin(t *testing.T) {
	f := &Field{
		Params:  Params{Width: 2, Height: 1, MineCount: 1},
		grid:    []bool{true, false},
		flagged: make(map[int]struct{}),
	}
	f.Flag(0, 1)
	assert.False(t, f.Won())
}
