package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/flagx"
	"github.com/dmitrijs2005/freelancehub/internal/timex"
	"github.com/goccy/go-yaml"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Absent fields
// keep the value from earlier sources.
type FileConfig struct {
	ServerURL           *string         `json:"server_url" yaml:"server_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	CacheDir            *string         `json:"cache_dir" yaml:"cache_dir"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	if flagx.IsYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(fc.RequestTimeout.Duration)
	}
	if fc.CacheDir != nil {
		cfg.CacheDir = *fc.CacheDir
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = time.Duration(fc.OnlineCheckInterval.Duration)
	}
	return nil
}
