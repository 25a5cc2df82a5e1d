package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the per-call timeouts and the settle pauses used between
// dependent fabric operations. Values can be customized via environment variables.
type Timeouts struct {
	Login         time.Duration // Timeout for the login exchange
	Request       time.Duration // Timeout for every other fabric controller call
	PolicyRequest time.Duration // Timeout for every other policy controller call
	SiteSettle    time.Duration // Pause after fabric site creation
	ItemSettle    time.Duration // Pause after each fabric stage item
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - SDACTL_TIMEOUT_LOGIN (default: 30s)
//   - SDACTL_TIMEOUT_REQUEST (default: 60s)
//   - SDACTL_TIMEOUT_POLICY_REQUEST (default: 30s)
//   - SDACTL_SETTLE_SITE (default: 5s)
//   - SDACTL_SETTLE_ITEM (default: 2s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Login:         parseDuration("SDACTL_TIMEOUT_LOGIN", 30*time.Second),
		Request:       parseDuration("SDACTL_TIMEOUT_REQUEST", 60*time.Second),
		PolicyRequest: parseDuration("SDACTL_TIMEOUT_POLICY_REQUEST", 30*time.Second),
		SiteSettle:    parseDuration("SDACTL_SETTLE_SITE", 5*time.Second),
		ItemSettle:    parseDuration("SDACTL_SETTLE_ITEM", 2*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
// Plain integers are read as seconds.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	if secs, err := strconv.Atoi(val); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}
