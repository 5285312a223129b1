package config

import (
	"cmp"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule accepts a five-field expression such as "0 * * * *".
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("invalid cron schedule: cannot be empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ValidateTimezone accepts any IANA name known to time.LoadLocation.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return errors.New("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return nil
}

// ValidateRange checks lo <= v <= hi.
func ValidateRange[T cmp.Ordered](v, lo, hi T) error {
	switch {
	case lo > hi:
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", lo, hi)
	case v < lo:
		return fmt.Errorf("value %v is below minimum %v", v, lo)
	case v > hi:
		return fmt.Errorf("value %v exceeds maximum %v", v, hi)
	}
	return nil
}

func ValidateDuration(d, lo, hi time.Duration) error { return ValidateRange(d, lo, hi) }

func ValidateIntRange(v, lo, hi int) error { return ValidateRange(v, lo, hi) }

// ValidateRatio accepts a sampling ratio in [0, 1].
func ValidateRatio(r float64) error { return ValidateRange(r, 0, 1) }
