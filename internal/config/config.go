package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig `yaml:"server" json:"server"`
	Data    DataConfig   `yaml:"data" json:"data"`
	Sync    SyncConfig   `yaml:"sync" json:"sync"`
	Balance Balance      `yaml:"balance" json:"balance"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// DataConfig selects the persistence backend. Backend is "file" or
// "sqlite"; SQLitePath is only read for the sqlite backend.
type DataConfig struct {
	Dir        string `yaml:"dir" json:"dir"`
	Backend    string `yaml:"backend" json:"backend"`
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path"`
}

// SyncConfig controls the optional remote mirror. Disabled by default;
// everything works offline without it.
type SyncConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	RedisAddr     string `yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string `yaml:"redis_password" json:"redis_password"`
	RedisDB       int    `yaml:"redis_db" json:"redis_db"`
	UserID        string `yaml:"user_id" json:"user_id"`
	QuietSeconds  int    `yaml:"quiet_seconds" json:"quiet_seconds"`
}

func (s *ServerConfig) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
}

func (d *DataConfig) ApplyDefaults() {
	if d.Dir == "" {
		d.Dir = "data"
	}
	if d.Backend == "" {
		d.Backend = "file"
	}
	if d.SQLitePath == "" {
		d.SQLitePath = "data/growth-tracker.db"
	}
}

func (s *SyncConfig) ApplyDefaults() {
	if s.RedisAddr == "" {
		s.RedisAddr = "localhost:6379"
	}
	if s.UserID == "" {
		s.UserID = "default"
	}
	if s.QuietSeconds == 0 {
		s.QuietSeconds = 2
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Data.ApplyDefaults()
	c.Sync.ApplyDefaults()
	c.Balance.ApplyDefaults()
}

// Load reads the yaml config at path. A missing file is not an error:
// the zero config with defaults applied is returned so the app runs
// with no config file at all.
func Load(path string) (*Config, error) {
	var r Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.ApplyDefaults()
			return &r, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
