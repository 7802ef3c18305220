package main

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.SetDefaults()
	m.Run()
}

func TestDecodeSimParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		ok    bool
	}{
		{"ok", "width=8&height=8&mine_count=8", true},
		{"ok with games", "width=9&height=9&mine_count=10&games=5&seed=42", true},
		{"missing mines", "width=8&height=8", false},
		{"zero width", "width=0&height=8&mine_count=1", false},
		{"too many mines", "width=3&height=3&mine_count=9", false},
		{"field too large", "width=100&height=100&mine_count=10", false},
		{"too many games", "width=8&height=8&mine_count=8&games=100000", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			query, err := url.ParseQuery(test.query)
			require.NoError(t, err)
			params, err := decodeSimParams(query)
			if !test.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.GreaterOrEqual(t, params.Games, 1)
			assert.NotZero(t, params.Seed)
		})
	}
}

func TestRecordFiltersWhereClause(t *testing.T) {
	empty := RecordFilters{}
	clause, args := empty.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	filters := &RecordFilters{}
	require.NoError(t, RecordsForPlayer("gary")(filters))
	clause, args = filters.WhereClause()
	assert.Equal(t, "username = @username", clause)
	assert.Equal(t, "gary", args["username"])

	var query RecordsQuery
	width, height, mineCount := 9, 9, 10
	query.Width, query.Height, query.MineCount = &width, &height, &mineCount
	for _, op := range query.Options() {
		require.NoError(t, op(filters))
	}
	clause, args = filters.WhereClause()
	assert.Contains(t, clause, "width = @width")
	assert.Contains(t, clause, "mine_count = @mineCount")
	assert.Equal(t, 9, args["width"])
	assert.Equal(t, 9, args["height"])
	assert.Equal(t, 10, args["mineCount"])
}
