package config

import (
	"encoding/json"
	"fmt"
	"os"

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

type Config struct {
	Mode     string         `json:"mode"`
	Addr     string         `json:"addr"`
	LogFile  string         `json:"log_file"`
	Postgres PostgresConfig `json:"postgres"`
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":       c.Mode,
		"addr":       c.Addr,
		"log_file":   c.LogFile,
		"pg_host":    c.Postgres.Host,
		"pg_port":    c.Postgres.Port,
		"pg_user":    c.Postgres.User,
		"pg_db_name": c.Postgres.DbName,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}
