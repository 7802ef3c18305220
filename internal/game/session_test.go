package game

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/minefield"
)

func TestMain(m *testing.M) {
	Log.SetLevel(logrus.WarnLevel)
	m.Run()
}

func TestSessionOnEmptyField(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewSession(minefield.Params{Width: 3, Height: 3}, r)
	require.NoError(t, err)

	res := s.Run()

	assert.True(t, res.Won)
	assert.Equal(t, 1, res.Moves)
	assert.Nil(t, res.Exploded)
}

func TestSessionAlwaysTerminates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params minefield.Params
	}{
		{"4x4(2)", minefield.Params{Width: 4, Height: 4, MineCount: 2}},
		{"8x8(8)", minefield.Params{Width: 8, Height: 8, MineCount: 8}},
		{"9x9(10)", minefield.Params{Width: 9, Height: 9, MineCount: 10}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			for seed := range uint64(25) {
				r := rand.New(rand.NewPCG(seed, seed+1))
				s, err := NewSession(test.params, r)
				require.NoError(t, err)

				res := s.Run()

				assert.True(t, s.Done())
				assert.Equal(t, res.Moves, res.SafeMoves+res.RandomMoves)
				assert.LessOrEqual(t, res.Moves, test.params.CellCount())
				if res.Won {
					assert.Nil(t, res.Exploded)
				}
				if res.Exploded != nil {
					assert.False(t, res.Won)
				}
				assert.False(t, res.EndedAt.Before(res.StartedAt))
			}
		})
	}
}

func TestSessionStepAfterDone(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewSession(minefield.Params{Width: 2, Height: 2}, r)
	require.NoError(t, err)

	s.Run()

	move, done := s.Step()
	assert.Nil(t, move)
	assert.True(t, done)
}

func TestSessionFirstMoveIsGuess(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewSession(minefield.Params{Width: 4, Height: 4, MineCount: 2}, r)
	require.NoError(t, err)

	move, _ := s.Step()
	require.NotNil(t, move)
	assert.True(t, move.Guess)
}

func TestResultGobRoundTrip(t *testing.T) {
	res := Result{
		Width: 8, Height: 8, MineCount: 8,
		Won: false, Moves: 12, SafeMoves: 9, RandomMoves: 3,
		Exploded:  &agent.Cell{Row: 3, Col: 5},
		StartedAt: time.Unix(1700000000, 0).UTC(),
		EndedAt:   time.Unix(1700000003, 0).UTC(),
	}

	buf, err := res.Bytes()
	require.NoError(t, err)

	decoded, err := DecodeResult(buf)
	require.NoError(t, err)
	assert.Equal(t, res, *decoded)
}

func TestResultMarshalJSON(t *testing.T) {
	res := Result{
		Width: 4, Height: 4, MineCount: 2,
		Won: true, Moves: 10, SafeMoves: 8, RandomMoves: 2,
		StartedAt: time.UnixMilli(1700000000000).UTC(),
		EndedAt:   time.UnixMilli(1700000001500).UTC(),
	}

	payload, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(payload, &m))
	assert.Equal(t, float64(4), m["width"])
	assert.Equal(t, float64(2), m["mine_count"])
	assert.Equal(t, true, m["won"])
	assert.Equal(t, float64(1700000000000), m["started_at"])
	assert.NotContains(t, m, "exploded")
	assert.InDelta(t, 1500, res.Playtime(), 0.001)
}
