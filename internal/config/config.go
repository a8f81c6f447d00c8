// internal/config/config.go
//
// Runtime configuration for the memory game.
// Values come from the environment (optionally seeded from a .env file by
// main) and may be overridden by command line flags.
//
// Environment variables:
//   MEMORY_ROWS, MEMORY_COLS     grid size; 0 means "ask the player"
//   MEMORY_CATEGORY              category name; empty means "ask the player"
//   MEMORY_CATEGORIES_FILE       YAML catalogue replacing the built-in one
//   MEMORY_REVEAL_DELAY          pause after a mismatch (Go duration, default 2s)
//   MEMORY_SEED                  fixed shuffle seed; 0 means random
//   MEMORY_DAILY                 "true" deals the same board to everyone today
//   DAILY_SALT                   HMAC salt for daily boards
//   LOG_LEVEL                    zerolog level (default warn)

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultRevealDelay = 2 * time.Second
	DefaultLogLevel    = "warn"
	DefaultDailySalt   = "local_dev_salt"
)

// Config bundles everything a game session needs before it starts.
type Config struct {
	Rows           int
	Cols           int
	Category       string
	CategoriesFile string
	RevealDelay    time.Duration
	Seed           uint64
	Daily          bool
	DailySalt      string
	LogLevel       string
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for anything unset or unparsable.
func FromEnv() Config {
	return Config{
		Rows:           envInt("MEMORY_ROWS", 0),
		Cols:           envInt("MEMORY_COLS", 0),
		Category:       getEnv("MEMORY_CATEGORY", ""),
		CategoriesFile: getEnv("MEMORY_CATEGORIES_FILE", ""),
		RevealDelay:    envDuration("MEMORY_REVEAL_DELAY", DefaultRevealDelay),
		Seed:           envUint("MEMORY_SEED", 0),
		Daily:          envBool("MEMORY_DAILY", false),
		DailySalt:      getEnv("DAILY_SALT", DefaultDailySalt),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
	}
}

// Validate checks values that can be judged before the game starts.
// Dimensions left at zero are asked for interactively, so only a preset
// pair is checked.
func (c Config) Validate() error {
	var errs []error
	if c.Rows < 0 || c.Cols < 0 {
		errs = append(errs, fmt.Errorf("rows and columns must be positive, got %dx%d", c.Rows, c.Cols))
	}
	if (c.Rows == 0) != (c.Cols == 0) {
		errs = append(errs, errors.New("rows and columns must be set together"))
	}
	if c.Rows > 0 && c.Cols > 0 && c.Rows > math.MaxInt/c.Cols {
		errs = append(errs, fmt.Errorf("%dx%d cells overflow int", c.Rows, c.Cols))
	} else if c.Rows > 0 && c.Cols > 0 && (c.Rows*c.Cols)%2 != 0 {
		errs = append(errs, fmt.Errorf("rows*cols must be even, got %dx%d", c.Rows, c.Cols))
	}
	if c.RevealDelay < 0 {
		errs = append(errs, fmt.Errorf("reveal delay must not be negative, got %s", c.RevealDelay))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// HasDimensions reports whether the grid size was preset.
func (c Config) HasDimensions() bool { return c.Rows > 0 && c.Cols > 0 }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func envUint(k string, def uint64) uint64 {
	if n, err := strconv.ParseUint(os.Getenv(k), 10, 64); err == nil {
		return n
	}
	return def
}

func envBool(k string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return b
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}
