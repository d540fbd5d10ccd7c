// Package config loads and validates the installer's environment
// configuration.
//
// The [Config] struct is the canonical representation of an installation's
// desired state: Azure identity, resource names, the platform domain, and
// feature toggles. It is read once from the process environment (optionally
// overlaid from an env-format file), validated all-or-nothing, and treated
// as immutable by every later stage. Timeout and retry tuning lives in
// [Timeouts], loaded separately so tests can shorten waits.
package config
