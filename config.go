package gripedit

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tanema/gween/ease"
)

// Config tunes grip interaction.
type Config struct {
	// HitTolerancePixels is the grip pick radius in screen pixels. It is
	// divided by the view scale, so it stays constant on screen.
	HitTolerancePixels float64
	// WarmDelay is how long the pointer must rest on a grip before it turns warm.
	WarmDelay time.Duration
	// WarmFade is the duration of the warm highlight fade-in.
	WarmFade time.Duration
	// WarmEase shapes the warm highlight fade-in.
	WarmEase ease.TweenFunc
	// HistoryCapacity bounds the undo stack of a History created from this config.
	HistoryCapacity int
}

// Defaults used by DefaultConfig.
const (
	DefaultHitTolerancePixels = 8.0
	DefaultWarmDelay          = time.Second
	DefaultWarmFade           = 150 * time.Millisecond
	DefaultHistoryCapacity    = 100
)

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		HitTolerancePixels: DefaultHitTolerancePixels,
		WarmDelay:          DefaultWarmDelay,
		WarmFade:           DefaultWarmFade,
		WarmEase:           ease.OutQuad,
		HistoryCapacity:    DefaultHistoryCapacity,
	}
}

// ConfigFromEnv returns DefaultConfig with overrides from the environment:
//
//	GRIPEDIT_HIT_TOLERANCE_PX   float
//	GRIPEDIT_WARM_DELAY_MS      int
//	GRIPEDIT_WARM_FADE_MS       int
//	GRIPEDIT_HISTORY_CAPACITY   int
//
// Unparseable values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.HitTolerancePixels = getEnvAsFloat("GRIPEDIT_HIT_TOLERANCE_PX", cfg.HitTolerancePixels)
	cfg.WarmDelay = time.Duration(getEnvAsInt("GRIPEDIT_WARM_DELAY_MS", int(cfg.WarmDelay/time.Millisecond))) * time.Millisecond
	cfg.WarmFade = time.Duration(getEnvAsInt("GRIPEDIT_WARM_FADE_MS", int(cfg.WarmFade/time.Millisecond))) * time.Millisecond
	cfg.HistoryCapacity = getEnvAsInt("GRIPEDIT_HISTORY_CAPACITY", cfg.HistoryCapacity)
	return cfg
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	if !(c.HitTolerancePixels > 0) {
		return fmt.Errorf("gripedit: hit tolerance %v must be > 0", c.HitTolerancePixels)
	}
	if c.WarmDelay < 0 || c.WarmFade < 0 {
		return fmt.Errorf("gripedit: negative warm timing (delay %v, fade %v)", c.WarmDelay, c.WarmFade)
	}
	if c.WarmEase == nil {
		return fmt.Errorf("gripedit: nil warm ease function")
	}
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("gripedit: history capacity %d must be > 0", c.HistoryCapacity)
	}
	return nil
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
