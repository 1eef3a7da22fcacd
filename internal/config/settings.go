package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names read by ApplyEnv.
const (
	EnvDownloadDir = "MEDIA_FETCH_DIR"
	EnvFFmpeg      = "MEDIA_FETCH_FFMPEG"
	EnvUserAgent   = "MEDIA_FETCH_USER_AGENT"
	EnvChatID      = "TELEGRAM_CHAT_ID"
)

// DefaultURLs is the built-in list processed when no URL is given.
var DefaultURLs = []string{
	"https://transcoded-videos-v2.classx.co.in/videos/gyanbindu-data/342818-1747564844/encrypted-ff5de0/720p.zip",
}

// Settings holds all configuration options.
type Settings struct {
	// Input
	URLs []string `json:"urls"`

	// Output
	DownloadDir    string   `json:"download_dir"`
	OpenExtensions []string `json:"open_extensions"`

	// Actions
	OpenFiles bool `json:"open_files"`
	Notify    bool `json:"notify"`

	// Transport
	UserAgent             string  `json:"user_agent"`
	ResponseHeaderTimeout float64 `json:"response_header_timeout"` // seconds

	// Transcoder
	FFmpegPath string `json:"ffmpeg_path"`

	// Notification placeholder
	TelegramChatID string `json:"telegram_chat_id"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		URLs:                  append([]string(nil), DefaultURLs...),
		DownloadDir:           "./downloads",
		OpenExtensions:        []string{".mp4", ".pdf"},
		OpenFiles:             true,
		Notify:                true,
		UserAgent:             "media-fetcher",
		ResponseHeaderTimeout: 30,
		FFmpegPath:            "ffmpeg",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads the given .env files (".env" when none are given) and
// copies any set environment overrides into s.
//
// A missing .env file is not an error.
func (s *Settings) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return err
		}
	}

	if v := os.Getenv(EnvDownloadDir); v != "" {
		s.DownloadDir = v
	}
	if v := os.Getenv(EnvFFmpeg); v != "" {
		s.FFmpegPath = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		s.UserAgent = v
	}
	if v := os.Getenv(EnvChatID); v != "" {
		s.TelegramChatID = v
	}
	return nil
}

// HeaderTimeout returns ResponseHeaderTimeout as a duration.
func (s *Settings) HeaderTimeout() time.Duration {
	return time.Duration(s.ResponseHeaderTimeout * float64(time.Second))
}

// LoadWithEnv loads settings from path (defaults when path is empty) and
// applies environment overrides from envFile.
//
// On error the returned settings are still usable. A broken config file
// falls back to defaults, and environment overrides are applied either way.
func LoadWithEnv(path, envFile string) (*Settings, error) {
	settings := DefaultSettings()
	var loadErr error
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			loadErr = err
		} else {
			settings = loaded
		}
	}

	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	return settings, errors.Join(loadErr, settings.ApplyEnv(files...))
}
