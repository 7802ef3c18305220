package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DbName   string `json:"db_name"`
}

func (p PostgresConfig) DbUrl() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		p.Host, p.Port, p.User, p.Password, p.DbName,
	)
}

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type JwtConfig struct {
	TokenLifetime  Duration `json:"token_lifetime"`
	PrivateKeyPath string   `json:"private_key_path"`
	PublicKeyPath  string   `json:"public_key_path"`
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMb  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type SimConfig struct {
	// Hard caps on what a single request may ask for.
	MaxCells int `json:"max_cells"`
	MaxGames int `json:"max_games"`
}

type Config struct {
	Mode     string         `json:"mode"`
	Addr     string         `json:"addr"`
	Postgres PostgresConfig `json:"postgres"`
	Jwt      JwtConfig      `json:"jwt"`
	Log      LogConfig      `json:"log"`
	Sim      SimConfig      `json:"sim"`
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":               c.Mode,
		"addr":               c.Addr,
		"pg_host":            c.Postgres.Host,
		"pg_port":            c.Postgres.Port,
		"pg_user":            c.Postgres.User,
		"pg_db_name":         c.Postgres.DbName,
		"jwt_token_lifetime": c.Jwt.TokenLifetime.Duration.String(),
		"log_file":           c.Log.File,
		"sim_max_cells":      c.Sim.MaxCells,
		"sim_max_games":      c.Sim.MaxGames,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return !c.Production()
}

func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Jwt.TokenLifetime.Duration == 0 {
		c.Jwt.TokenLifetime.Duration = 24 * time.Hour
	}
	if c.Sim.MaxCells == 0 {
		c.Sim.MaxCells = 30 * 24
	}
	if c.Sim.MaxGames == 0 {
		c.Sim.MaxGames = 1000
	}
}
