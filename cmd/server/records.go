package main

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-agent/internal/minefield"
)

// WinRateRecord aggregates the stored results of one player (or the
// anonymous pool) on one field configuration.
type WinRateRecord struct {
	Username  *string `json:"username"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MineCount int     `json:"mine_count"`
	Games     int     `json:"games"`
	Wins      int     `json:"wins"`
	WinRate   float64 `json:"win_rate"`
	AvgMoves  float64 `json:"avg_moves"`
}

type RecordFilters struct {
	username *string
	params   *minefield.Params
}

func (f RecordFilters) WhereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	whereClauses := []string{}
	if f.username != nil {
		args["username"] = *f.username
		whereClauses = append(whereClauses, "username = @username")
	}
	if f.params != nil {
		args["width"] = f.params.Width
		args["height"] = f.params.Height
		args["mineCount"] = f.params.MineCount
		whereClauses = append(
			whereClauses,
			"width = @width",
			"height = @height",
			"mine_count = @mineCount",
		)
	}

	if len(whereClauses) == 0 {
		return "", args
	}
	return strings.Join(whereClauses, " and "), args
}

type RecordsOption = func(*RecordFilters) error

func RecordsForPlayer(username string) RecordsOption {
	return func(f *RecordFilters) error {
		f.username = &username
		return nil
	}
}

func RecordsForParams(params minefield.Params) RecordsOption {
	return func(f *RecordFilters) error {
		f.params = &params
		return nil
	}
}

func getWinRateRecords(
	ctx context.Context, options ...RecordsOption,
) ([]WinRateRecord, error) {
	filters := &RecordFilters{}
	for _, op := range options {
		err := op(filters)
		if err != nil {
			return nil, err
		}
	}

	sql := `
	select
		username
		, width
		, height
		, mine_count
		, count(*) games
		, count(*) filter (where won) wins
		, (count(*) filter (where won))::float / count(*) win_rate
		, avg(moves) avg_moves
	from sim_result
		left outer join player using (player_id)`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		sql += "\n\twhere " + whereClause
	}
	sql += `
	group by username, width, height, mine_count
	order by win_rate desc, games desc;`

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[WinRateRecord])
}
