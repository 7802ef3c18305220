package agent

import (
	"maps"
	"math/rand/v2"
	"slices"
)

/*
Agent accumulates knowledge about a single minefield and picks moves.

It never looks at the field itself; everything it knows arrives
through [Agent.AddKnowledge], one revealed square at a time. Sentences
never observe each other either - the only way information crosses
from one sentence into the rest is a [Agent.MarkMine] or
[Agent.MarkSafe] broadcast.

An agent is owned by exactly one game for its whole lifetime and is
not safe for concurrent use.
*/
type Agent struct {
	height, width int
	movesMade     map[Cell]struct{}
	safes         map[Cell]struct{}
	mines         map[Cell]struct{}
	knowledge     []*Sentence
	rnd           *rand.Rand
}

func New(height, width int, r *rand.Rand) *Agent {
	return &Agent{
		height:    height,
		width:     width,
		movesMade: make(map[Cell]struct{}),
		safes:     make(map[Cell]struct{}),
		mines:     make(map[Cell]struct{}),
		rnd:       r,
	}
}

// MarkMine promotes cell to a known mine and broadcasts the fact to
// every live sentence.
func (a *Agent) MarkMine(cell Cell) {
	a.mines[cell] = struct{}{}
	for _, s := range a.knowledge {
		s.MarkMine(cell)
	}
}

// MarkSafe promotes cell to known-safe and broadcasts the fact to
// every live sentence.
func (a *Agent) MarkSafe(cell Cell) {
	a.safes[cell] = struct{}{}
	for _, s := range a.knowledge {
		s.MarkSafe(cell)
	}
}

/*
settle draws the conclusions a sentence supports on its own: a zero
count proves every remaining cell safe, a count equal to the cell
count proves every remaining cell a mine. Marking mutates s.Cells
mid-walk (and the cell sets of every other sentence), hence the
snapshot.
*/
func (a *Agent) settle(s *Sentence) {
	if s.Count == 0 {
		for _, c := range slices.Collect(maps.Keys(s.Cells)) {
			a.MarkSafe(c)
		}
	} else if s.Count == s.Size() {
		for _, c := range slices.Collect(maps.Keys(s.Cells)) {
			a.MarkMine(c)
		}
	}
}

/*
resolve derives a new sentence from a nested pair: when every cell of
s2 lies inside s1, the cell difference s2-s1 with count difference
s2.Count-s1.Count is appended to the knowledge list. With s2 nested in
s1 that difference is empty, so whatever this derives collapses at the
next prune; pairing a sentence with itself is likewise harmless.
*/
func (a *Agent) resolve(s1, s2 *Sentence) {
	if s2.Size() == 0 {
		return
	}
	for c := range s2.Cells {
		if _, ok := s1.Cells[c]; !ok {
			return
		}
	}
	cells := make(map[Cell]struct{})
	for c := range s2.Cells {
		if _, ok := s1.Cells[c]; !ok {
			cells[c] = struct{}{}
		}
	}
	a.knowledge = append(a.knowledge, &Sentence{
		Cells: cells,
		Count: s2.Count - s1.Count,
	})
}

/*
infer runs one deductive pass over the current knowledge: largest
sentences first, settle each one, then resolve it against every
sentence at or after it in the pre-sorted snapshot. Sentences appended
during the pass are not revisited - saturation happens incrementally
over the course of a game as observations keep arriving, not inside a
single call.
*/
func (a *Agent) infer() {
	slices.SortStableFunc(a.knowledge, func(x, y *Sentence) int {
		return y.Size() - x.Size()
	})
	n := len(a.knowledge)
	for i := 0; i < n; i++ {
		a.settle(a.knowledge[i])
		for j := i; j < n; j++ {
			a.resolve(a.knowledge[i], a.knowledge[j])
		}
	}
}

// prune drops every sentence whose cell set has emptied out; an empty
// sentence carries no information.
func (a *Agent) prune() {
	a.knowledge = slices.DeleteFunc(a.knowledge, func(s *Sentence) bool {
		return s.Size() == 0
	})
}

// neighbors lists the in-bounds cells adjacent to cell, the cell
// itself excluded.
func (a *Agent) neighbors(cell Cell) []Cell {
	var cells []Cell
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			c := Cell{cell.Row + di, cell.Col + dj}
			if c.Row < 0 || c.Row >= a.height ||
				c.Col < 0 || c.Col >= a.width {
				continue
			}
			cells = append(cells, c)
		}
	}
	return cells
}

/*
AddKnowledge ingests one observation: cell was opened and had count
mines adjacent to it. The cell is recorded as played and safe, a
sentence over its full neighborhood is appended (neighbors already
classified are left in - settling strips them right back out), and one
deductive pass runs.
*/
func (a *Agent) AddKnowledge(cell Cell, count int) {
	a.movesMade[cell] = struct{}{}
	a.MarkSafe(cell)
	a.knowledge = append(a.knowledge, NewSentence(a.neighbors(cell), count))
	a.infer()
	a.prune()
}

// SafeMove picks a uniformly random cell that is proven safe and has
// not been played yet. ok is false when no such cell is known.
func (a *Agent) SafeMove() (Cell, bool) {
	var candidates []Cell
	for c := range a.safes {
		if _, played := a.movesMade[c]; !played {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	slices.SortFunc(candidates, compareCells)
	return candidates[a.rnd.IntN(len(candidates))], true
}

/*
RandomMove picks a uniformly random cell that is neither a known mine
nor already played, by rejection sampling. ok is false only when every
cell on the board is already classified, which also guarantees the
sampling loop terminates.
*/
func (a *Agent) RandomMove() (Cell, bool) {
	if len(a.safes)+len(a.mines) == a.height*a.width {
		return Cell{}, false
	}
	for {
		c := Cell{a.rnd.IntN(a.height), a.rnd.IntN(a.width)}
		if _, mine := a.mines[c]; mine {
			continue
		}
		if _, played := a.movesMade[c]; played {
			continue
		}
		return c, true
	}
}

// NextMove returns the cell to open next: a known-safe cell when one
// exists, otherwise a random guess. ok is false when the board is
// fully resolved and no move remains.
func (a *Agent) NextMove() (Cell, bool) {
	if c, ok := a.SafeMove(); ok {
		return c, true
	}
	return a.RandomMove()
}

// KnownMines lists every cell proven to be a mine, in board order.
func (a *Agent) KnownMines() []Cell {
	return slices.SortedFunc(maps.Keys(a.mines), compareCells)
}

// KnownSafes lists every cell proven safe, in board order.
func (a *Agent) KnownSafes() []Cell {
	return slices.SortedFunc(maps.Keys(a.safes), compareCells)
}

func (a *Agent) Played(cell Cell) bool {
	_, ok := a.movesMade[cell]
	return ok
}

// Resolved reports whether every cell on the board is classified.
func (a *Agent) Resolved() bool {
	return len(a.safes)+len(a.mines) == a.height*a.width
}
