package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete analysis-server configuration.
type Config struct {
	Server   Settings `hcl:"server,block"`
	Analysis Analysis `hcl:"analysis,block"`
}

// Settings contains listener-level configuration.
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Analysis contains engine defaults applied to requests that do not set
// their own iteration counts.
type Analysis struct {
	FlopIterations    int `hcl:"flop_iterations,optional"`
	PreflopIterations int `hcl:"preflop_iterations,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8090,
			LogLevel: "info",
		},
		Analysis: Analysis{
			FlopIterations:    30_000,
			PreflopIterations: 10_000,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Analysis.FlopIterations == 0 {
		config.Analysis.FlopIterations = defaults.Analysis.FlopIterations
	}
	if config.Analysis.PreflopIterations == 0 {
		config.Analysis.PreflopIterations = defaults.Analysis.PreflopIterations
	}

	return &config, nil
}

// ListenAddr returns the host:port the server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
