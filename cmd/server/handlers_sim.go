package main

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-agent/internal/game"
	"github.com/vancomm/minesweeper-agent/internal/minefield"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

type SimParams struct {
	Width     int    `schema:"width,required"`
	Height    int    `schema:"height,required"`
	MineCount int    `schema:"mine_count,required"`
	Games     int    `schema:"games"`
	Seed      uint64 `schema:"seed"`
}

func (p SimParams) FieldParams() minefield.Params {
	return minefield.Params{
		Width:     p.Width,
		Height:    p.Height,
		MineCount: p.MineCount,
	}
}

func (p *SimParams) Validate() error {
	if err := p.FieldParams().Validate(); err != nil {
		return err
	}
	if p.Width*p.Height > config.Sim.MaxCells {
		return errors.New("field too large")
	}
	if p.Games < 0 || p.Games > config.Sim.MaxGames {
		return errors.New("bad game count")
	}
	if p.Games == 0 {
		p.Games = 1
	}
	if p.Seed == 0 {
		p.Seed = new(maphash.Hash).Sum64()
	}
	return nil
}

type SimGameResult struct {
	Id     int         `json:"id"`
	Result game.Result `json:"result"`
}

type SimResponse struct {
	Seed    uint64          `json:"seed"`
	Games   int             `json:"games"`
	Wins    int             `json:"wins"`
	WinRate float64         `json:"win_rate"`
	Results []SimGameResult `json:"results"`
}

func decodeSimParams(query url.Values) (*SimParams, error) {
	var params SimParams
	if err := dec.Decode(&params, query); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &params, nil
}

func handleRunSim(w http.ResponseWriter, r *http.Request) {
	params, err := decodeSimParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	var playerId *int
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		playerId = &claims.PlayerId
		refreshPlayerCookies(w, *claims)
	}

	resp := &SimResponse{
		Seed:    params.Seed,
		Games:   params.Games,
		Results: make([]SimGameResult, 0, params.Games),
	}
	for i := range params.Games {
		rnd := rand.New(rand.NewPCG(params.Seed, uint64(i)))
		s, err := game.NewSession(params.FieldParams(), rnd)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error(err)
			return
		}
		res := s.Run()
		if res.Won {
			resp.Wins++
		}
		id, err := pg.InsertResult(r.Context(), playerId, res)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error("unable to store sim result: ", err)
			return
		}
		resp.Results = append(resp.Results, SimGameResult{id, res})
	}
	resp.WinRate = float64(resp.Wins) / float64(resp.Games)

	if _, err := sendJSON(w, resp); err != nil {
		log.Error(err)
	}
}

func handleGetSim(w http.ResponseWriter, r *http.Request) {
	simResultId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	res, err := pg.GetResult(r.Context(), simResultId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, res); err != nil {
		log.Error(err)
	}
}

type RecordsQuery struct {
	Username  *string `schema:"username"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
}

func (q RecordsQuery) Options() []RecordsOption {
	var options []RecordsOption
	if q.Username != nil {
		options = append(options, RecordsForPlayer(*q.Username))
	}
	if q.Width != nil && q.Height != nil && q.MineCount != nil {
		options = append(options, RecordsForParams(minefield.Params{
			Width:     *q.Width,
			Height:    *q.Height,
			MineCount: *q.MineCount,
		}))
	}
	return options
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	var query RecordsQuery
	if err := dec.Decode(&query, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	records, err := getWinRateRecords(r.Context(), query.Options()...)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := getWinRateRecords(
		r.Context(), RecordsForPlayer(claims.Username),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}
