// internal/config/config.go

// Package config loads engine defaults from the environment. Values
// configure new sessions; lobby commands may still override them
// per room.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the engine-wide defaults.
type Config struct {
	HandSize     int `env:"ONECARD_HAND_SIZE" envDefault:"7"`
	TurnTimerSec int `env:"ONECARD_TURN_TIMER_SEC" envDefault:"30"`
	UnoWindowMs  int `env:"ONECARD_UNO_WINDOW_MS" envDefault:"5000"`
	BotDelayMs   int `env:"ONECARD_BOT_DELAY_MS" envDefault:"1500"`
	TargetScore  int `env:"ONECARD_TARGET_SCORE" envDefault:"500"`

	LogLevel string `env:"ONECARD_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HandSize < 1 {
		return fmt.Errorf("hand size must be positive, got %d", c.HandSize)
	}
	if c.TurnTimerSec < 0 {
		return fmt.Errorf("turn timer must not be negative, got %d", c.TurnTimerSec)
	}
	if c.UnoWindowMs < 0 {
		return fmt.Errorf("uno window must not be negative, got %d", c.UnoWindowMs)
	}
	if c.BotDelayMs < 0 {
		return fmt.Errorf("bot delay must not be negative, got %d", c.BotDelayMs)
	}
	if c.TargetScore < 1 {
		return fmt.Errorf("target score must be positive, got %d", c.TargetScore)
	}
	return nil
}

// TurnTimeout returns the turn timer as a duration; zero disables it.
func (c *Config) TurnTimeout() time.Duration {
	return time.Duration(c.TurnTimerSec) * time.Second
}

// UnoWindow returns the uno catch window as a duration.
func (c *Config) UnoWindow() time.Duration {
	return time.Duration(c.UnoWindowMs) * time.Millisecond
}

// BotDelay returns the bot fallback delay as a duration.
func (c *Config) BotDelay() time.Duration {
	return time.Duration(c.BotDelayMs) * time.Millisecond
}
