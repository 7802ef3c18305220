package main

import (
	"context"
	"math/rand/v2"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

type watchFrame struct {
	Move   *game.Move   `json:"move,omitempty"`
	Result *game.Result `json:"result,omitempty"`
	Id     *int         `json:"id,omitempty"`
}

// handleWatchWs plays a single game and streams it move by move, one
// JSON frame per move, closing with a frame that carries the final
// result and its stored id.
func handleWatchWs(w http.ResponseWriter, r *http.Request) {
	params, err := decodeSimParams(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	var playerId *int
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		playerId = &claims.PlayerId
	}

	rnd := rand.New(rand.NewPCG(params.Seed, 0))
	session, err := game.NewSession(params.FieldParams(), rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	for {
		move, done := session.Step()
		if move != nil {
			if err := c.WriteJSON(watchFrame{Move: move}); err != nil {
				log.Error("write: ", err)
				return
			}
		}
		if done {
			break
		}
	}

	res := session.Result()
	id, err := pg.InsertResult(context.Background(), playerId, res)
	if err != nil {
		log.Error("unable to store sim result: ", err)
		if err := c.WriteJSON(watchFrame{Result: &res}); err != nil {
			log.Error("write: ", err)
		}
		return
	}
	if err := c.WriteJSON(watchFrame{Result: &res, Id: &id}); err != nil {
		log.Error("write: ", err)
	}
}
