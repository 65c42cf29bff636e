package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/flagx"
)

// JsonConfig is the on-disk shape of the optional config file. Durations
// are Go duration strings such as "24h". Empty fields keep earlier values.
type JsonConfig struct {
	EndpointAddrHTTP      string `json:"endpoint_addr_http"`
	DatabaseDSN           string `json:"database_dsn"`
	SecretKey             string `json:"secret_key"`
	TokenValidityDuration string `json:"token_validity_duration"`
	PasswordHashCost      int    `json:"password_hash_cost"`
	LogLevel              string `json:"log_level"`
	ShutdownTimeout       string `json:"shutdown_timeout"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}

	setString(&cfg.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.LogLevel, c.LogLevel)
	if c.PasswordHashCost != 0 {
		cfg.PasswordHashCost = c.PasswordHashCost
	}
	if err := setDuration(&cfg.TokenValidityDuration, c.TokenValidityDuration); err != nil {
		return err
	}
	return setDuration(&cfg.ShutdownTimeout, c.ShutdownTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
