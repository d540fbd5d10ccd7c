// Package issuer installs the certificate issuing infrastructure: the
// cert-manager chart and the cluster-wide ACME issuer the platform
// certificate references.
package issuer
