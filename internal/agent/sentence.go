package agent

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Cell is a single board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

func compareCells(a, b Cell) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

/*
A Sentence is a logical statement about the minefield: exactly Count of
Cells are mines. Cells only ever contains squares whose contents are
still undetermined; as soon as a cell is proven safe or mined it gets
removed from every sentence that mentions it.
*/
type Sentence struct {
	Cells map[Cell]struct{}
	Count int
}

func NewSentence(cells []Cell, count int) *Sentence {
	s := &Sentence{
		Cells: make(map[Cell]struct{}, len(cells)),
		Count: count,
	}
	for _, c := range cells {
		s.Cells[c] = struct{}{}
	}
	return s
}

// MarkMine records that cell is a mine. Marking a cell the sentence
// does not mention is a no-op, so marks can be broadcast to every
// sentence without checking relevance first.
func (s *Sentence) MarkMine(cell Cell) {
	if _, ok := s.Cells[cell]; !ok {
		return
	}
	delete(s.Cells, cell)
	s.Count--
}

// MarkSafe records that cell is mine-free. No-op when the sentence
// does not mention cell.
func (s *Sentence) MarkSafe(cell Cell) {
	delete(s.Cells, cell)
}

func (s *Sentence) Size() int {
	return len(s.Cells)
}

func (s *Sentence) Equal(o *Sentence) bool {
	return s.Count == o.Count && maps.Equal(s.Cells, o.Cells)
}

// [Sentence] implements [fmt.Stringer]
func (s *Sentence) String() string {
	cells := slices.SortedFunc(maps.Keys(s.Cells), compareCells)
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	fmt.Fprintf(&b, "} = %d", s.Count)
	return b.String()
}
