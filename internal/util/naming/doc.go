// Package naming derives Azure resource names from the cluster name.
//
// Derived names follow the pattern {cluster}-{type} where Azure allows it.
// Azure services disagree about permitted characters and lengths (storage
// accounts take 3-24 lowercase alphanumerics, agent pools at most 12), so
// each function normalizes the cluster name against the rules of the
// service it names. Deriving instead of asking keeps re-runs convergent:
// the same cluster name always reaches the same resources.
package naming
