package env

import (
	"fmt"
	"strconv"
	"time"
)

// Duration parses a duration from an environment variable value. Bare
// integers are taken as seconds. Negative durations are normalized to
// their positive counterpart.
func Duration(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		duration := time.Duration(seconds) * time.Second
		if duration < 0 {
			duration = -duration
		}
		return duration, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	if duration < 0 {
		duration = -duration
	}

	return duration, nil
}
