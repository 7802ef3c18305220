package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentenceMarkMine(t *testing.T) {
	s := NewSentence([]Cell{{0, 0}, {0, 1}, {1, 1}}, 2)

	s.MarkMine(Cell{0, 1})
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 1, s.Count)
	assert.NotContains(t, s.Cells, Cell{0, 1})

	// marking a cell the sentence does not mention changes nothing
	s.MarkMine(Cell{5, 5})
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 1, s.Count)
}

func TestSentenceMarkSafe(t *testing.T) {
	s := NewSentence([]Cell{{0, 0}, {0, 1}, {1, 1}}, 2)

	s.MarkSafe(Cell{0, 0})
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 2, s.Count)
	assert.NotContains(t, s.Cells, Cell{0, 0})

	s.MarkSafe(Cell{5, 5})
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, 2, s.Count)
}

func TestSentenceCountStaysInBounds(t *testing.T) {
	s := NewSentence([]Cell{{0, 0}, {0, 1}, {0, 2}}, 2)
	for _, c := range []Cell{{0, 0}, {0, 1}} {
		s.MarkMine(c)
		assert.GreaterOrEqual(t, s.Count, 0)
		assert.LessOrEqual(t, s.Count, s.Size())
	}
	s.MarkSafe(Cell{0, 2})
	assert.GreaterOrEqual(t, s.Count, 0)
	assert.LessOrEqual(t, s.Count, s.Size())
}

func TestSentenceEqual(t *testing.T) {
	a := NewSentence([]Cell{{0, 0}, {0, 1}}, 1)
	b := NewSentence([]Cell{{0, 1}, {0, 0}}, 1)
	c := NewSentence([]Cell{{0, 0}, {0, 1}}, 2)
	d := NewSentence([]Cell{{0, 0}, {1, 1}}, 1)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestSentenceString(t *testing.T) {
	s := NewSentence([]Cell{{1, 0}, {0, 2}, {0, 1}}, 2)
	assert.Equal(t, "{0:1 0:2 1:0} = 2", s.String())

	empty := NewSentence(nil, 0)
	assert.Equal(t, "{} = 0", empty.String())
}
