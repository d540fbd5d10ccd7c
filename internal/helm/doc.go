// Package helm wraps the Helm SDK for the two charts the installer touches:
// the certificate issuer chart it installs into the cluster, and the platform
// chart it renders to manifests before applying them.
//
// Charts are downloaded at runtime from their repositories. All cluster
// access goes through in-memory kubeconfig bytes; no kubeconfig files are
// written to disk.
package helm
