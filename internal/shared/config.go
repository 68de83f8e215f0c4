package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	// AppName names the config folder and the binary.
	AppName        = "spotydw"
	ConfigFileName = "config.toml"
	TokenFileName  = "spotify_token.json"
	DatabaseName   = "spotydw.db"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Download    DownloadConfig    `toml:"download"`
	Tools       ToolsConfig       `toml:"tools"`
	Database    DatabaseConfig    `toml:"database"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify    SpotifyConfig    `toml:"spotify"`
	SoundCloud SoundCloudConfig `toml:"soundcloud"`
}

// SpotifyConfig contains Spotify client-credentials app keys.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// SoundCloudConfig holds the OAuth token lifted from a logged-in browser session.
type SoundCloudConfig struct {
	OAuthToken string `toml:"oauth_token"`
}

// DownloadConfig controls where and how tracks are acquired and tagged.
type DownloadConfig struct {
	OutputDir   string  `toml:"output_dir"`
	Workers     int     `toml:"workers"`
	AudioFormat string  `toml:"audio_format"`
	Tagger      string  `toml:"tagger"`
	Playlist    bool    `toml:"playlist"`
	SearchRate  float64 `toml:"search_rate"`
}

// ToolsConfig points at the external yt-dlp and ffmpeg binaries.
type ToolsConfig struct {
	YtDlp  string `toml:"ytdlp"`
	FFmpeg string `toml:"ffmpeg"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// FilePath returns the configured database path, or [DatabaseName] inside [ConfigDir] when unset.
func (d DatabaseConfig) FilePath() (string, error) {
	if d.Path != "" {
		return d.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DatabaseName), nil
}

// LogConfig configures log level and the optional rotating log file.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
}

// ConfigDir returns the per-user directory holding config and cached tokens.
//
// It is $XDG_CONFIG_HOME/spotydw when set, ~/.config/spotydw otherwise, and %APPDATA%\spotydw on Windows.
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName), nil
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultConfigPath returns the config.toml path inside [ConfigDir].
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if _, err := toml.Decode(string(data), config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// SaveConfig encodes config as TOML to path, creating parent directories.
func SaveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides credentials with values found through lookup, typically [os.LookupEnv].
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("SPOTIFY_CLIENT_ID"); ok && v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v, ok := lookup("SPOTIFY_CLIENT_SECRET"); ok && v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
	if v, ok := lookup("SOUNDCLOUD_OAUTH_TOKEN"); ok && v != "" {
		c.Credentials.SoundCloud.OAuthToken = v
	}
}

// Validate reports unusable download settings.
func (c *Config) Validate() error {
	d := c.Download
	if d.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if d.AudioFormat == "" {
		return fmt.Errorf("%w: audio_format is required", ErrInvalidConfig)
	}
	switch d.Tagger {
	case "ffmpeg":
	case "id3":
		if d.AudioFormat != "mp3" {
			return fmt.Errorf("%w: the id3 tagger needs audio_format = \"mp3\", got %q", ErrInvalidConfig, d.AudioFormat)
		}
	default:
		return fmt.Errorf("%w: unknown tagger %q", ErrInvalidConfig, d.Tagger)
	}
	return nil
}
