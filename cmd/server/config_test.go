package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigUnmarshal(t *testing.T) {
	payload := []byte(`{
		"mode": "production",
		"addr": ":9090",
		"postgres": {
			"host": "db", "port": 5432,
			"user": "mines", "password": "secret", "db_name": "mines"
		},
		"jwt": {
			"token_lifetime": "12h",
			"private_key_path": "/run/secrets/jwt-private-key.pem",
			"public_key_path": "/run/secrets/jwt-public-key.pem"
		},
		"log": {"file": "/var/log/server.log", "max_size_mb": 50},
		"sim": {"max_cells": 480, "max_games": 100}
	}`)

	var c Config
	require.NoError(t, json.Unmarshal(payload, &c))

	assert.True(t, c.Production())
	assert.False(t, c.Development())
	assert.Equal(t, ":9090", c.Addr)
	assert.Equal(t,
		"host=db port=5432 user=mines password=secret dbname=mines",
		c.Postgres.DbUrl())
	assert.Equal(t, 12*time.Hour, c.Jwt.TokenLifetime.Duration)
	assert.Equal(t, "/var/log/server.log", c.Log.File)
	assert.Equal(t, 480, c.Sim.MaxCells)
	assert.Equal(t, 100, c.Sim.MaxGames)
	assert.Equal(t, "12h0m0s", c.Fields()["jwt_token_lifetime"])
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
		ok    bool
	}{
		{"string", `"90s"`, 90 * time.Second, true},
		{"nanoseconds", `1500000000`, 1500 * time.Millisecond, true},
		{"garbage", `"soon"`, 0, false},
		{"wrong type", `true`, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(test.input), &d)
			if !test.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, d.Duration)
		})
	}
}

func TestConfigSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, 24*time.Hour, c.Jwt.TokenLifetime.Duration)
	assert.Equal(t, 30*24, c.Sim.MaxCells)
	assert.Equal(t, 1000, c.Sim.MaxGames)
	assert.True(t, c.Development())

	// explicit values survive
	c = Config{Addr: ":1234", Sim: SimConfig{MaxCells: 64, MaxGames: 10}}
	c.SetDefaults()
	assert.Equal(t, ":1234", c.Addr)
	assert.Equal(t, 64, c.Sim.MaxCells)
	assert.Equal(t, 10, c.Sim.MaxGames)
}
