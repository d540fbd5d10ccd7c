// Package azure wraps the Azure Resource Manager APIs behind narrow,
// per-resource interfaces.
//
// Every mutating call follows the same ensure pattern: look the resource up,
// reuse it when present, create it when the lookup reports not-found, and
// abort on any other lookup failure. Lookup failures are never treated as
// absence; acting on a wrong answer could double-create or clobber
// resources. Long-running operations block on their ARM pollers so callers
// observe completed state, never accepted-but-pending state.
package azure
