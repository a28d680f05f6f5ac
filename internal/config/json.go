package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/paperback/internal/flagx"
	"github.com/dmitrijs2005/paperback/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify lifetimes either as strings like "1h"
// or as integer nanoseconds.
type JsonConfig struct {
	DataDir       string         `json:"data_dir"`
	RedisAddr     string         `json:"redis_addr"`
	RedisPassword string         `json:"redis_password"`
	TokenSecret   string         `json:"token_secret"`
	SessionTTL    timex.Duration `json:"session_ttl"`
	RefreshTTL    timex.Duration `json:"refresh_ttl"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. No flag, no file, no overlay. Read or unmarshal errors panic;
// a broken config file should stop startup, not be silently skipped.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
	if jc.RedisPassword != "" {
		cfg.RedisPassword = jc.RedisPassword
	}
	if jc.TokenSecret != "" {
		cfg.TokenSecret = jc.TokenSecret
	}
	if jc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = time.Duration(jc.SessionTTL.Duration)
	}
	if jc.RefreshTTL.Duration != 0 {
		cfg.RefreshTTL = time.Duration(jc.RefreshTTL.Duration)
	}
}
