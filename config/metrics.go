package config

import (
	"fmt"
	"path/filepath"

	"github.com/coldbox/coldbox/util"
)

// MetricsConfig controls the Prometheus text file written after each
// command. There is no listener, the file is meant for the node exporter
// textfile collector.
type MetricsConfig struct {
	TextFile string `long:"textfile" description:"Path of the Prometheus text file to write after each command, empty disables metrics"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.TextFile == "" {
		return nil
	}

	cfg.TextFile = util.CleanAndExpandPath(cfg.TextFile)
	if filepath.Ext(cfg.TextFile) != ".prom" {
		return fmt.Errorf("metrics text file %s must end in .prom", cfg.TextFile)
	}

	return nil
}

func (cfg *MetricsConfig) Enabled() bool {
	return cfg.TextFile != ""
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{}
}
