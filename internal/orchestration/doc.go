// Package orchestration coordinates the provisioning workflow. It owns the
// phase order and hands the accumulated state to the caller; the actual
// resource work lives in the per-phase provisioners.
package orchestration
