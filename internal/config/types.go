package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/virtsh/internal/libvirt"
	"github.com/jbweber/virtsh/internal/output"
)

const (
	// DefaultHistoryFile is the readline history file, relative to $HOME.
	DefaultHistoryFile = "~/.virtsh_history"

	// DefaultHistoryLimit is how many lines of history are kept.
	DefaultHistoryLimit = 500
)

// ShellConfig represents the shell's configuration file.
type ShellConfig struct {
	URI          string   `yaml:"uri,omitempty"`           // Hypervisor to connect to on startup (default: qemu:///system)
	SocketPath   string   `yaml:"socket_path,omitempty"`   // libvirtd socket for local URIs
	Timeout      Duration `yaml:"timeout,omitempty"`       // Dial timeout, e.g. "5s"
	HistoryFile  string   `yaml:"history_file,omitempty"`  // Line history, "~" expands to $HOME
	HistoryLimit int      `yaml:"history_limit,omitempty"` // Lines of history kept; 0 keeps none
	OutputFormat string   `yaml:"output_format,omitempty"` // table, yaml, or json
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// UnmarshalYAML parses strings like "5s" or "1m30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: timeout must be a duration string: %w", value.Line, err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", value.Line, s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when no file is present.
func Default() *ShellConfig {
	return &ShellConfig{
		URI:          libvirt.DefaultURI,
		SocketPath:   libvirt.DefaultSocket,
		Timeout:      Duration(libvirt.DefaultTimeout),
		HistoryFile:  DefaultHistoryFile,
		HistoryLimit: DefaultHistoryLimit,
		OutputFormat: string(output.FormatTable),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/virtsh/config.yaml, falling back to
// ~/.config/virtsh/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "virtsh", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file yields the defaults.
// Fields omitted from the file keep their default values.
func Load(path string) (*ShellConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over cfg and validates the result.
func Parse(data []byte, cfg *ShellConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return cfg.Validate()
}

// Validate checks the configuration for errors.
// Does not check that the hypervisor is reachable.
func (c *ShellConfig) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("uri is required")
	}
	u, err := url.Parse(c.URI)
	if err != nil {
		return fmt.Errorf("invalid uri %q: %w", c.URI, err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("uri must name a driver (e.g. qemu:///system), got %q", c.URI)
	}

	if c.SocketPath != "" && !filepath.IsAbs(c.SocketPath) {
		return fmt.Errorf("socket_path must be absolute, got %q", c.SocketPath)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", time.Duration(c.Timeout))
	}

	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be >= 0, got %d", c.HistoryLimit)
	}

	if c.OutputFormat != "" {
		if err := output.ValidateFormat(c.OutputFormat); err != nil {
			return fmt.Errorf("output_format: %w", err)
		}
	}

	return nil
}

// HistoryPath returns HistoryFile with a leading "~" expanded.
// An empty HistoryFile disables history.
func (c *ShellConfig) HistoryPath() (string, error) {
	return ExpandHome(c.HistoryFile)
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
