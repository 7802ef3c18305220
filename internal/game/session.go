package game

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/minefield"
)

var Log = logrus.New()

// Move describes a single step of a session: the cell the agent chose
// to open, whether it had to guess, what the field answered, and any
// mines the agent proved (and flagged) right after ingesting the
// answer.
type Move struct {
	Cell  agent.Cell   `json:"cell"`
	Guess bool         `json:"guess"`
	Mine  bool         `json:"mine"`
	Count int          `json:"count"`
	Flags []agent.Cell `json:"flags,omitempty"`
}

/*
Session owns one minefield and one agent and plays them against each
other: open a cell, feed the observed mine count into the agent, flag
whatever the agent proves, repeat. A session is single-use and not
safe for concurrent access.
*/
type Session struct {
	field   *minefield.Field
	agent   *agent.Agent
	flagged map[agent.Cell]struct{}

	won, dead              bool
	exploded               *agent.Cell
	safeMoves, randomMoves int
	startedAt, endedAt     time.Time

	log *logrus.Entry
}

func NewSession(params minefield.Params, r *rand.Rand) (*Session, error) {
	field, err := minefield.New(params, r)
	if err != nil {
		return nil, err
	}
	return &Session{
		field:     field,
		agent:     agent.New(params.Height, params.Width, r),
		flagged:   make(map[agent.Cell]struct{}),
		startedAt: time.Now().UTC(),
		log:       Log.WithField("field", params.Seed()),
	}, nil
}

func (s *Session) Done() bool {
	return s.won || s.dead
}

func (s *Session) finish() {
	if s.endedAt.IsZero() {
		s.endedAt = time.Now().UTC()
	}
}

/*
Step plays a single move. The returned move is nil when there was
nothing left to play; done is true once the game is over.
*/
func (s *Session) Step() (*Move, bool) {
	if s.Done() {
		return nil, true
	}

	move := &Move{}
	cell, ok := s.agent.SafeMove()
	if ok {
		s.safeMoves++
	} else {
		cell, ok = s.agent.RandomMove()
		if !ok {
			// every cell is classified, nothing left to open
			s.won = s.field.Won()
			s.dead = !s.won
			s.finish()
			return nil, true
		}
		move.Guess = true
		s.randomMoves++
	}
	move.Cell = cell

	if s.field.IsMine(cell.Row, cell.Col) {
		move.Mine = true
		s.dead = true
		s.exploded = &cell
		s.finish()
		s.log.Debugf("stepped on a mine at %s", cell)
		return move, true
	}

	move.Count = s.field.NearbyMines(cell.Row, cell.Col)
	s.agent.AddKnowledge(cell, move.Count)

	// flag mines the last pass proved
	for _, m := range s.agent.KnownMines() {
		if _, done := s.flagged[m]; !done {
			s.flagged[m] = struct{}{}
			s.field.Flag(m.Row, m.Col)
			move.Flags = append(move.Flags, m)
		}
	}

	if s.field.Won() {
		s.won = true
		s.finish()
	}
	return move, s.Done()
}

// Run plays the session to completion and reports the outcome. The
// move cap is a hard stop only; a session always terminates on its
// own by either flagging every mine or stepping on one.
func (s *Session) Run() Result {
	for range s.field.CellCount() + 1 {
		if _, done := s.Step(); done {
			break
		}
	}
	s.finish()
	return s.Result()
}

func (s *Session) Result() Result {
	return Result{
		Width:       s.field.Width,
		Height:      s.field.Height,
		MineCount:   s.field.MineCount,
		Won:         s.won,
		Moves:       s.safeMoves + s.randomMoves,
		SafeMoves:   s.safeMoves,
		RandomMoves: s.randomMoves,
		Exploded:    s.exploded,
		StartedAt:   s.startedAt,
		EndedAt:     s.endedAt,
	}
}
