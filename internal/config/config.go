package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/versionsync"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".cargosync.yaml"

// Config is the main configuration structure for cargosync.
type Config struct {
	// Manifest is the path to the primary manifest (Cargo.toml).
	Manifest string `yaml:"manifest"`

	// Lockfile is the path to the optional lock file (Cargo.lock).
	Lockfile string `yaml:"lockfile"`

	// Package is the lock file entry whose version is kept in sync.
	Package string `yaml:"package"`

	// Theme selects the prompt theme used by --confirm.
	Theme string `yaml:"theme,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with the built-in defaults.
func (c *Config) ApplyDefaults() {
	if c.Manifest == "" {
		c.Manifest = versionsync.DefaultManifestPath
	}
	if c.Lockfile == "" {
		c.Lockfile = versionsync.DefaultLockfilePath
	}
	if c.Package == "" {
		c.Package = versionsync.DefaultPackageName
	}
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// osFileOpener is the production implementation of FileOpener.
type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// osFileWriter is the production implementation of FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// configHeader is written above the generated YAML.
const configHeader = `# cargosync configuration file.
# Command line flags override these values.

`

// yamlMarshaler is the production implementation of core.Marshaler using YAML.
// A non-empty header is emitted before the document.
type yamlMarshaler struct {
	header string
}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(m.header), data...), nil
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save saves the configuration to the default config file.
func (s *ConfigSaver) Save(cfg *Config) error {
	return s.SaveTo(cfg, DefaultConfigFile)
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

var defaultConfigSaver = NewConfigSaver(&yamlMarshaler{header: configHeader}, nil, nil)

// LoadConfigFn and SaveConfigFn are package variables so tests can stub them.
// SaveConfigFn writes DefaultConfigFile in the working directory.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config) error {
		return defaultConfigSaver.Save(cfg)
	}
)

// loadConfig reads .cargosync.yaml from the working directory.
// A missing file yields (nil, nil) and the caller falls back to Default.
func loadConfig() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom reads and strictly decodes the config file at path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW
