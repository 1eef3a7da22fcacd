// Package config provides configuration management for media-fetcher.
//
// This package handles:
//   - Default configuration values, including the built-in URL list
//   - Loading and saving settings from JSON files
//   - Loading a .env file and applying environment overrides
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Downloads to ./downloads
//	// Opens .mp4 and .pdf files
//	// Uses ffmpeg from PATH for HLS streams
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// ApplyEnv loads a .env file (if present) with godotenv and then reads:
//   - MEDIA_FETCH_DIR: output directory
//   - MEDIA_FETCH_FFMPEG: transcoder executable
//   - MEDIA_FETCH_USER_AGENT: User-Agent header for downloads
//   - TELEGRAM_CHAT_ID: chat shown by the notification placeholder
package config
