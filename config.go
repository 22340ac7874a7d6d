package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"farmstand/filepipeline"
)

// ListenHost is the only address the server binds to.
const ListenHost = "127.0.0.1"

// Environment variables read by LoadConfig.
const (
	EnvConfigFile      = "FARM_CONFIG_FILE"
	EnvPort            = "PORT"
	EnvLogLevel        = "FARM_LOG_LEVEL"
	EnvDataFile        = "FARM_DATA_FILE"
	EnvTemplateDir     = "FARM_TEMPLATE_DIR"
	EnvPipelineEnabled = "FARM_PIPELINE_ENABLED"
	EnvPipelineDir     = "FARM_PIPELINE_DIR"
)

// Config holds all configuration for the server
type Config struct {
	Port            int    `yaml:"port"`
	LogLevel        string `yaml:"log_level"`
	DataFile        string `yaml:"data_file"`
	TemplateDir     string `yaml:"template_dir"`
	ReadTimeout     int    `yaml:"read_timeout_seconds"`
	WriteTimeout    int    `yaml:"write_timeout_seconds"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_seconds"`

	Pipeline PipelineConfig `yaml:"pipeline"`
}

// PipelineConfig controls the startup file jobs.
type PipelineConfig struct {
	Enabled             bool `yaml:"enabled"`
	filepipeline.Config `yaml:",inline"`
}

func defaultConfig() *Config {
	return &Config{
		Port:            8000,
		LogLevel:        "info",
		DataFile:        "dev-data/data.json",
		TemplateDir:     "templates",
		ReadTimeout:     10,
		WriteTimeout:    10,
		ShutdownTimeout: 30,
		Pipeline: PipelineConfig{
			Enabled: false,
			Config:  filepipeline.DefaultConfig(),
		},
	}
}

// LoadConfig starts from the defaults, applies the config file named by
// FARM_CONFIG_FILE and then the environment. Environment values win.
func LoadConfig() (*Config, error) {
	config := defaultConfig()

	if configFile := os.Getenv(EnvConfigFile); configFile != "" {
		if err := loadConfigFromFile(configFile, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadConfigFromEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadConfigFromEnv(config *Config) error {
	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, portStr, err)
		}
		config.Port = port
	}

	if logLevel := os.Getenv(EnvLogLevel); logLevel != "" {
		config.LogLevel = logLevel
	}

	if dataFile := os.Getenv(EnvDataFile); dataFile != "" {
		config.DataFile = dataFile
	}

	if templateDir := os.Getenv(EnvTemplateDir); templateDir != "" {
		config.TemplateDir = templateDir
	}

	if enabled := os.Getenv(EnvPipelineEnabled); enabled != "" {
		b, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPipelineEnabled, enabled, err)
		}
		config.Pipeline.Enabled = b
	}

	if dir := os.Getenv(EnvPipelineDir); dir != "" {
		config.Pipeline.Dir = dir
	}

	return nil
}

// loadConfigFromFile decodes a YAML file over config. JSON files are valid
// YAML and load the same way.
func loadConfigFromFile(filename string, config *Config) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the values LoadConfig cannot fix up on its own.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d (must be between 0 and 65535)", c.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.DataFile == "" {
		return errors.New("data file must be set")
	}
	if c.TemplateDir == "" {
		return errors.New("template dir must be set")
	}
	return nil
}

// Addr is the listen address, always on the loopback interface.
func (c *Config) Addr() string {
	return net.JoinHostPort(ListenHost, strconv.Itoa(c.Port))
}

func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
