package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/freelancehub/internal/flagx"
	"github.com/dmitrijs2005/freelancehub/internal/timex"
	"github.com/goccy/go-yaml"
)

// FileConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from zero values so that only present keys override.
type FileConfig struct {
	HTTPAddr                    *string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr                    *string         `json:"grpc_addr" yaml:"grpc_addr"`
	RoutePrefix                 *string         `json:"route_prefix" yaml:"route_prefix"`
	StoreBackend                *string         `json:"store_backend" yaml:"store_backend"`
	DataDir                     *string         `json:"data_dir" yaml:"data_dir"`
	DatabaseDSN                 *string         `json:"database_dsn" yaml:"database_dsn"`
	RedisURL                    *string         `json:"redis_url" yaml:"redis_url"`
	SecretKey                   *string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	LogLevel                    *string         `json:"log_level" yaml:"log_level"`
	LogFormat                   *string         `json:"log_format" yaml:"log_format"`
	HealthCheckInterval         *timex.Duration `json:"health_check_interval" yaml:"health_check_interval"`
	ReindexInterval             *timex.Duration `json:"reindex_interval" yaml:"reindex_interval"`
	DirectoryScanFallback       *bool           `json:"directory_scan_fallback" yaml:"directory_scan_fallback"`
	SeedDemoData                *bool           `json:"seed_demo_data" yaml:"seed_demo_data"`
}

// parseFile overlays the file named by -c / -config, if any. The format is
// chosen by extension: .yaml/.yml are YAML, anything else JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	if flagx.IsYAML(path) {
		err = yaml.Unmarshal(data, fc)
	} else {
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.HTTPAddr, fc.HTTPAddr)
	setString(&c.GRPCAddr, fc.GRPCAddr)
	setString(&c.RoutePrefix, fc.RoutePrefix)
	setString(&c.StoreBackend, fc.StoreBackend)
	setString(&c.DataDir, fc.DataDir)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.RedisURL, fc.RedisURL)
	setString(&c.SecretKey, fc.SecretKey)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFormat, fc.LogFormat)

	if fc.AccessTokenValidityDuration != nil {
		c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.HealthCheckInterval != nil {
		c.HealthCheckInterval = fc.HealthCheckInterval.Duration
	}
	if fc.ReindexInterval != nil {
		c.ReindexInterval = fc.ReindexInterval.Duration
	}
	if fc.DirectoryScanFallback != nil {
		c.DirectoryScanFallback = *fc.DirectoryScanFallback
	}
	if fc.SeedDemoData != nil {
		c.SeedDemoData = *fc.SeedDemoData
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
