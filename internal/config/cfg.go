package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

const (
	AppName        = "studyguide"
	defaultDataDir = ".studyguide"
	logFileName    = "studyguide.log"
)

type (
	StorageConfig struct {
		Backend string `yaml:"backend" validate:"required,oneof=file sqlite"`
		Dir     string `yaml:"dir"`
	}

	ExportConfig struct {
		Dir string `yaml:"dir"`
	}

	PrintConfig struct {
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`
	}

	UIConfig struct {
		InitialSection string `yaml:"initial_section"`
		Sidebar        bool   `yaml:"sidebar"`
		WrapWidth      int    `yaml:"wrap_width" validate:"gte=0"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Storage StorageConfig `yaml:"storage"`
		Export  ExportConfig  `yaml:"export"`
		Print   PrintConfig   `yaml:"print"`
		UI      UIConfig      `yaml:"ui"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := cfg.resolvePaths(); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// resolvePaths fills in directories left empty, the way the program expects
// to find them at run time.
func (cfg *Config) resolvePaths() error {
	if cfg.Storage.Dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error getting home directory: %w", err)
		}
		cfg.Storage.Dir = filepath.Join(homeDir, defaultDataDir)
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}
	if cfg.Logging.FileLogger.Level != "none" && cfg.Logging.FileLogger.Destination == "" {
		cfg.Logging.FileLogger.Destination = filepath.Join(cfg.Storage.Dir, logFileName)
	}
	for _, p := range []*string{&cfg.Storage.Dir, &cfg.Export.Dir, &cfg.Logging.FileLogger.Destination} {
		if *p != "" {
			*p = filepath.Clean(*p)
		}
	}
	return nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
