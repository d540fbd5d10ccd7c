package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ClusterCreate     time.Duration // Timeout for AKS cluster create/update operations
	ResourceCreate    time.Duration // Timeout for other ARM create/update operations
	Delete            time.Duration // Timeout for delete operations
	ChartInstall      time.Duration // Timeout for Helm install/upgrade operations
	WebhookReady      time.Duration // Timeout for the certificate issuer webhook to come up
	Rollout           time.Duration // Timeout for deployment rollouts
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// DefaultTimeouts returns the built-in timeout values without consulting
// the environment.
func DefaultTimeouts() *Timeouts {
	return &Timeouts{
		ClusterCreate:     30 * time.Minute,
		ResourceCreate:    15 * time.Minute,
		Delete:            30 * time.Minute,
		ChartInstall:      10 * time.Minute,
		WebhookReady:      3 * time.Minute,
		Rollout:           5 * time.Minute,
		RetryMaxAttempts:  5,
		RetryInitialDelay: 2 * time.Second,
	}
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - STRAND_TIMEOUT_CLUSTER_CREATE (default: 30m)
//   - STRAND_TIMEOUT_RESOURCE_CREATE (default: 15m)
//   - STRAND_TIMEOUT_DELETE (default: 30m)
//   - STRAND_TIMEOUT_CHART_INSTALL (default: 10m)
//   - STRAND_TIMEOUT_WEBHOOK_READY (default: 3m)
//   - STRAND_TIMEOUT_ROLLOUT (default: 5m)
//   - STRAND_RETRY_MAX_ATTEMPTS (default: 5)
//   - STRAND_RETRY_INITIAL_DELAY (default: 2s)
func LoadTimeouts() *Timeouts {
	defaults := DefaultTimeouts()
	return &Timeouts{
		ClusterCreate:     parseDuration("STRAND_TIMEOUT_CLUSTER_CREATE", defaults.ClusterCreate),
		ResourceCreate:    parseDuration("STRAND_TIMEOUT_RESOURCE_CREATE", defaults.ResourceCreate),
		Delete:            parseDuration("STRAND_TIMEOUT_DELETE", defaults.Delete),
		ChartInstall:      parseDuration("STRAND_TIMEOUT_CHART_INSTALL", defaults.ChartInstall),
		WebhookReady:      parseDuration("STRAND_TIMEOUT_WEBHOOK_READY", defaults.WebhookReady),
		Rollout:           parseDuration("STRAND_TIMEOUT_ROLLOUT", defaults.Rollout),
		RetryMaxAttempts:  parseInt("STRAND_RETRY_MAX_ATTEMPTS", defaults.RetryMaxAttempts),
		RetryInitialDelay: parseDuration("STRAND_RETRY_INITIAL_DELAY", defaults.RetryInitialDelay),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
