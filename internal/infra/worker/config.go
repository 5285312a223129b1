// Package worker runs the periodic catalog reload. The durable store may
// be edited outside the service (the spreadsheet era habit survives), so
// the in-memory catalog is refreshed on a cron schedule.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"direct-admission/internal/pkg/config"
)

// ReloadConfig controls the reload schedule.
type ReloadConfig struct {
	// Schedule is a five-field cron expression. Default: "0 * * * *" (hourly)
	Schedule string

	// Timezone is the IANA zone the schedule is evaluated in. Default: "Asia/Kolkata"
	Timezone string

	// Timeout bounds a single reload. Range 5s-10m, default 2m.
	Timeout time.Duration
}

// DefaultConfig returns the hourly reload configuration.
func DefaultConfig() ReloadConfig {
	return ReloadConfig{
		Schedule: "0 * * * *",
		Timezone: "Asia/Kolkata",
		Timeout:  2 * time.Minute,
	}
}

// Validate reports every invalid field at once.
func (c *ReloadConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("reload schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.Timeout, 5*time.Second, 10*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("reload timeout: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv reads RELOAD_SCHEDULE, RELOAD_TIMEZONE and
// RELOAD_TIMEOUT. Invalid values fall back to the defaults with a warning
// (fail-open); the returned error is always nil.
func LoadConfigFromEnv(logger *slog.Logger, metrics *ReloadMetrics) (*ReloadConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	note := func(field, label string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", label),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("RELOAD_SCHEDULE", cfg.Schedule, config.ValidateCronSchedule)
	cfg.Schedule = result.Value.(string)
	note("reload_schedule", "Schedule", result)

	result = config.LoadEnvWithFallback("RELOAD_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	note("timezone", "Timezone", result)

	result = config.LoadEnvDuration("RELOAD_TIMEOUT", cfg.Timeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 5*time.Second, 10*time.Minute)
	})
	cfg.Timeout = result.Value.(time.Duration)
	note("reload_timeout", "Timeout", result)

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
