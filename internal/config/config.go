package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Debug        bool
	Threads      int
	MoveOverhead time.Duration
}

// Load reads the engine configuration from the environment. Unset
// variables fall back to defaults; malformed values are errors so a
// typo never silently changes engine behavior.
func Load() (*Config, error) {
	var cfg = &Config{
		Debug:        false,
		Threads:      1,
		MoveOverhead: 50 * time.Millisecond,
	}
	if v := os.Getenv("CHEST_DEBUG"); v != "" {
		var debug, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CHEST_DEBUG: %w", err)
		}
		cfg.Debug = debug
	}
	if v := os.Getenv("CHEST_THREADS"); v != "" {
		var threads, err = strconv.Atoi(v)
		if err != nil || threads < 1 {
			return nil, fmt.Errorf("CHEST_THREADS: bad value %q", v)
		}
		cfg.Threads = threads
	}
	if v := os.Getenv("CHEST_MOVE_OVERHEAD_MS"); v != "" {
		var ms, err = strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("CHEST_MOVE_OVERHEAD_MS: bad value %q", v)
		}
		cfg.MoveOverhead = time.Duration(ms) * time.Millisecond
	}
	return cfg, nil
}
