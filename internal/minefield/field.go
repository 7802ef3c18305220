package minefield

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

type Params struct {
	Width, Height, MineCount int
}

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("invalid field size %dx%d", p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount >= p.Width*p.Height {
		return fmt.Errorf(
			"invalid mine count %d for a %dx%d field",
			p.MineCount, p.Width, p.Height,
		)
	}
	return nil
}

func (p Params) CellCount() int {
	return p.Width * p.Height
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

// Seed is a short textual form of the params, usable as a map key.
func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

/*
Field is the minefield oracle: it knows where the mines really are and
answers neighborhood queries about squares a player has opened. Cells
are stored as a flat slice indexed row*Width+col.
*/
type Field struct {
	Params
	grid    []bool
	flagged map[int]struct{}
}

// New places MineCount mines on an empty grid by rejection sampling.
func New(params Params, r *rand.Rand) (*Field, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		Params:  params,
		grid:    make([]bool, params.CellCount()),
		flagged: make(map[int]struct{}),
	}
	placed := 0
	for placed < params.MineCount {
		i := r.IntN(len(f.grid))
		if !f.grid[i] {
			f.grid[i] = true
			placed++
		}
	}
	return f, nil
}

func (f *Field) index(row, col int) int {
	return row*f.Width + col
}

func (f *Field) IsMine(row, col int) bool {
	return f.grid[f.index(row, col)]
}

// NearbyMines counts the mines within one row and column of the given
// cell, the cell itself excluded.
func (f *Field) NearbyMines(row, col int) (count int) {
	for i := row - 1; i <= row+1; i++ {
		for j := col - 1; j <= col+1; j++ {
			if i == row && j == col {
				continue
			}
			if f.InBounds(i, j) && f.grid[f.index(i, j)] {
				count++
			}
		}
	}
	return
}

// Flag marks a cell the player believes to be a mine.
func (f *Field) Flag(row, col int) {
	f.flagged[f.index(row, col)] = struct{}{}
}

// Won reports whether the flagged cells are exactly the mines.
func (f *Field) Won() bool {
	if len(f.flagged) != f.MineCount {
		return false
	}
	for i := range f.flagged {
		if !f.grid[i] {
			return false
		}
	}
	return true
}

// [Field] implements [fmt.Stringer]
func (f *Field) String() string {
	var b strings.Builder
	for row := range f.Height {
		for col := range f.Width {
			if f.grid[f.index(row, col)] {
				fmt.Fprint(&b, "* ")
			} else {
				fmt.Fprint(&b, "- ")
			}
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
