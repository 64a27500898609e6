package config

import (
	"errors"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultServerAddress = "127.0.0.1:8787"
	defaultAutosaveDelay = 2000
	defaultSearchDelay   = 300
)

// Config is the client-side configuration, read from ~/.nts/config.toml.
// Missing file or missing keys fall back to defaults.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Editor  EditorConfig  `toml:"editor"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Address string `toml:"address"`
}

type EditorConfig struct {
	Autosave        *bool `toml:"autosave"`
	AutosaveDelayMs int   `toml:"autosave_delay_ms"`
}

type UIConfig struct {
	Theme         string `toml:"theme"`
	SearchDelayMs int    `toml:"search_delay_ms"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Address: defaultServerAddress},
		Editor: EditorConfig{AutosaveDelayMs: defaultAutosaveDelay},
		UI:     UIConfig{Theme: "dark", SearchDelayMs: defaultSearchDelay},
	}
}

// Load reads the config file, applying defaults for anything unset.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func loadFromPath(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// BaseURL returns the notes server base URL derived from the configured
// address.
func (c Config) BaseURL() string {
	addr := strings.TrimSpace(c.Server.Address)
	if addr == "" {
		addr = defaultServerAddress
	}
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimRight(addr, "/")
	}
	return "http://" + strings.TrimRight(addr, "/")
}

// AutosaveEnabled defaults to on; the key only exists to switch it off.
func (c Config) AutosaveEnabled() bool {
	if c.Editor.Autosave == nil {
		return true
	}
	return *c.Editor.Autosave
}

func (c Config) AutosaveDelay() time.Duration {
	ms := c.Editor.AutosaveDelayMs
	if ms <= 0 {
		ms = defaultAutosaveDelay
	}
	return time.Duration(ms) * time.Millisecond
}

func (c Config) SearchDelay() time.Duration {
	ms := c.UI.SearchDelayMs
	if ms <= 0 {
		ms = defaultSearchDelay
	}
	return time.Duration(ms) * time.Millisecond
}

func (c Config) DarkTheme() bool {
	return strings.ToLower(strings.TrimSpace(c.UI.Theme)) != "light"
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// Marshal renders the effective configuration back as TOML, for `nts config`.
func (c Config) Marshal() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
