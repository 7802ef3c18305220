package game

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"time"

	"github.com/vancomm/minesweeper-agent/internal/agent"
)

// Result is the record of one finished session.
type Result struct {
	Width, Height, MineCount      int
	Won                           bool
	Moves, SafeMoves, RandomMoves int
	Exploded                      *agent.Cell
	StartedAt, EndedAt            time.Time
}

func DecodeResult(buf []byte) (*Result, error) {
	var res Result
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r Result) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(r)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Playtime is the wall-clock duration of the session in milliseconds.
func (r Result) Playtime() float64 {
	return float64(r.EndedAt.Sub(r.StartedAt)) / float64(time.Millisecond)
}

type resultJSON struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	MineCount   int         `json:"mine_count"`
	Won         bool        `json:"won"`
	Moves       int         `json:"moves"`
	SafeMoves   int         `json:"safe_moves"`
	RandomMoves int         `json:"random_moves"`
	Exploded    *agent.Cell `json:"exploded,omitempty"`
	StartedAt   int64       `json:"started_at"`
	EndedAt     int64       `json:"ended_at"`
}

// [Result] implements [json.Marshaler]
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Width:       r.Width,
		Height:      r.Height,
		MineCount:   r.MineCount,
		Won:         r.Won,
		Moves:       r.Moves,
		SafeMoves:   r.SafeMoves,
		RandomMoves: r.RandomMoves,
		Exploded:    r.Exploded,
		StartedAt:   r.StartedAt.UnixMilli(),
		EndedAt:     r.EndedAt.UnixMilli(),
	})
}
