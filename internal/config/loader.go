package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".astralyrics"

// xdgConfigFile is the file name inside the XDG config directory.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .astralyrics configuration file.
// Empty fields leave the corresponding Config value untouched.
type File struct {
	// SearchAddress overrides the search host ("host:port").
	SearchAddress string `yaml:"search_addr,omitempty"`

	// DetailAddress overrides the lyrics display host ("host:port").
	DetailAddress string `yaml:"detail_addr,omitempty"`

	// Timeout is a Go duration string such as "30s". "0" disables the timeout.
	Timeout string `yaml:"timeout,omitempty"`

	// Proxy is a SOCKS5 proxy address ("[user:pass@]host:port").
	Proxy string `yaml:"proxy,omitempty"`

	// UserAgent overrides the HTTP User-Agent.
	UserAgent string `yaml:"user_agent,omitempty"`

	// MaxBodySize overrides the response size limit in bytes.
	MaxBodySize int64 `yaml:"max_body_size,omitempty"`

	// Sink selects the serve sink ("stream" or "command").
	Sink string `yaml:"sink,omitempty"`

	// DisplayCommand is the argv of the display command.
	DisplayCommand []string `yaml:"display_command,omitempty"`

	// NoticeCommand is the argv of the notice command.
	NoticeCommand []string `yaml:"notice_command,omitempty"`
}

// Apply overlays the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.SearchAddress != "" {
		cfg.SearchAddress = f.SearchAddress
	}
	if f.DetailAddress != "" {
		cfg.DetailAddress = f.DetailAddress
	}
	if f.Timeout != "" {
		timeout, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout: %w", ErrInvalidConfigFile, err)
		}
		cfg.Timeout = timeout
	}
	if f.Proxy != "" {
		cfg.ProxyAddress = f.Proxy
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.MaxBodySize != 0 {
		cfg.MaxBodySize = f.MaxBodySize
	}
	if f.Sink != "" {
		cfg.Sink = f.Sink
	}
	if len(f.DisplayCommand) > 0 {
		cfg.DisplayCommand = f.DisplayCommand
	}
	if len(f.NoticeCommand) > 0 {
		cfg.NoticeCommand = f.NoticeCommand
	}
	return nil
}

// LoadConfigFile loads the configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Unknown keys are rejected so that typos do not go unnoticed.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .astralyrics in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .astralyrics in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	cwd, _ := os.Getwd()        //nolint:errcheck // an empty dir is skipped
	home, _ := os.UserHomeDir() //nolint:errcheck // an empty dir is skipped
	return findConfigFile(configPath, cwd, xdg.ConfigHome, home)
}

func findConfigFile(configPath, cwd, configHome, home string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, AppName, xdgConfigFile))
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
