package main

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

type postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dbUrl string) (*postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return nil, err
	}
	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	return &postgres{db}, nil
}

func (pg *postgres) Ping(ctx context.Context) error {
	return pg.db.Ping(ctx)
}

func (pg *postgres) Close() {
	pg.db.Close()
}

func (pg *postgres) EnsureSchema(ctx context.Context) error {
	_, err := pg.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS player (
			player_id     serial PRIMARY KEY,
			username      text UNIQUE NOT NULL,
			password_hash bytea NOT NULL
		);
		CREATE TABLE IF NOT EXISTS sim_result (
			sim_result_id serial PRIMARY KEY,
			player_id     int REFERENCES player,
			width         int NOT NULL,
			height        int NOT NULL,
			mine_count    int NOT NULL,
			won           boolean NOT NULL,
			moves         int NOT NULL,
			safe_moves    int NOT NULL,
			random_moves  int NOT NULL,
			started_at    timestamptz NOT NULL,
			ended_at      timestamptz NOT NULL,
			result        bytea NOT NULL
		);`)
	return err
}

type Player struct {
	PlayerId     int    `json:"player_id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"-"`
}

func (pg *postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	var playerId int
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id`,
		pgx.NamedArgs{
			"username":      username,
			"password_hash": passwordHash,
		}).Scan(&playerId); err != nil {
		return nil, err
	}
	player := &Player{
		PlayerId: playerId,
		Username: username,
	}
	return player, nil
}

func (pg *postgres) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT player_id, username, password_hash
		FROM player
		WHERE username = $1;`,
		username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func (pg *postgres) InsertResult(
	ctx context.Context, playerId *int, res game.Result,
) (int, error) {
	buf, err := res.Bytes()
	if err != nil {
		return 0, err
	}
	var simResultId int
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO sim_result (
			player_id, width, height, mine_count,
			won, moves, safe_moves, random_moves,
			started_at, ended_at, result
		)
		VALUES (
			@player_id, @width, @height, @mine_count,
			@won, @moves, @safe_moves, @random_moves,
			@started_at, @ended_at, @result
		)
		RETURNING sim_result_id;`,
		pgx.NamedArgs{
			"player_id":    playerId,
			"width":        res.Width,
			"height":       res.Height,
			"mine_count":   res.MineCount,
			"won":          res.Won,
			"moves":        res.Moves,
			"safe_moves":   res.SafeMoves,
			"random_moves": res.RandomMoves,
			"started_at":   res.StartedAt,
			"ended_at":     res.EndedAt,
			"result":       buf,
		}).Scan(&simResultId); err != nil {
		return 0, err
	}
	return simResultId, nil
}

func (pg *postgres) GetResult(
	ctx context.Context, simResultId int,
) (*game.Result, error) {
	var buf []byte
	if err := pg.db.QueryRow(ctx, `
		SELECT result
		FROM sim_result
		WHERE sim_result_id = $1;`,
		simResultId).Scan(&buf); err != nil {
		return nil, err
	}
	return game.DecodeResult(buf)
}
