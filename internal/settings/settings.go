// Package settings holds the device settings that are fixed per build or per
// host rather than edited by the owner: NTP server, cadences, debounce and
// Wi-Fi credentials.
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvNTPHost         = "MM_NTP_HOST"
	EnvNTPPort         = "MM_NTP_PORT"
	EnvNTPTimeout      = "MM_NTP_TIMEOUT"
	EnvSyncInterval    = "MM_SYNC_INTERVAL"
	EnvDisplayInterval = "MM_DISPLAY_INTERVAL"
	EnvDebounce        = "MM_DEBOUNCE"
	EnvStoragePath     = "MM_STORAGE_PATH"
	EnvLogLevel        = "MM_LOG_LEVEL"

	MinPortNumber = 1
	MaxPortNumber = 65535
)

type Settings struct {
	NTPHost         string
	NTPPort         int
	NTPTimeout      time.Duration
	SyncInterval    time.Duration
	DisplayInterval time.Duration
	Debounce        time.Duration

	// host builds only
	StoragePath string
	LogLevel    slog.Level

	// firmware only, set at build time
	WifiSSID     string
	WifiPassword string
}

func Defaults() Settings {
	return Settings{
		NTPHost:         "time.nist.gov",
		NTPPort:         123,
		NTPTimeout:      3 * time.Second,
		SyncInterval:    300 * time.Second,
		DisplayInterval: time.Second,
		Debounce:        250 * time.Millisecond,
		StoragePath:     "memento-mori.img",
		LogLevel:        slog.LevelInfo,
	}
}

// LoadFromEnv overrides Defaults from MM_* environment variables and
// validates the result.
func LoadFromEnv() (Settings, error) {
	d := Defaults()
	s := Settings{
		NTPHost:         envOrDefault(EnvNTPHost, d.NTPHost),
		StoragePath:     envOrDefault(EnvStoragePath, d.StoragePath),
		WifiSSID:        d.WifiSSID,
		WifiPassword:    d.WifiPassword,
		NTPPort:         d.NTPPort,
		NTPTimeout:      d.NTPTimeout,
		SyncInterval:    d.SyncInterval,
		DisplayInterval: d.DisplayInterval,
		Debounce:        d.Debounce,
		LogLevel:        d.LogLevel,
	}

	var err error
	if s.NTPPort, err = intEnvOrDefault(EnvNTPPort, d.NTPPort); err != nil {
		return Settings{}, err
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvNTPTimeout, &s.NTPTimeout},
		{EnvSyncInterval, &s.SyncInterval},
		{EnvDisplayInterval, &s.DisplayInterval},
		{EnvDebounce, &s.Debounce},
	}
	for _, e := range durations {
		if *e.dst, err = durationEnvOrDefault(e.key, *e.dst); err != nil {
			return Settings{}, err
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		if err := s.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Settings{}, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that the settings are coherent.
func (s Settings) Validate() error {
	if s.NTPHost == "" {
		return fmt.Errorf("invalid %s: must not be empty", EnvNTPHost)
	}
	if s.NTPPort < MinPortNumber || s.NTPPort > MaxPortNumber {
		return fmt.Errorf("invalid %s: must be in range %d..%d", EnvNTPPort, MinPortNumber, MaxPortNumber)
	}
	if s.NTPTimeout <= 0 {
		return fmt.Errorf("invalid %s: must be > 0", EnvNTPTimeout)
	}
	if s.NTPTimeout >= s.SyncInterval {
		return fmt.Errorf("invalid %s: must be shorter than %s", EnvNTPTimeout, EnvSyncInterval)
	}
	if s.DisplayInterval <= 0 {
		return fmt.Errorf("invalid %s: must be > 0", EnvDisplayInterval)
	}
	if s.Debounce < 0 {
		return fmt.Errorf("invalid %s: must be >= 0", EnvDebounce)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnvOrDefault(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnvOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
