// Package keygen generates RSA key pairs for SSH authentication.
//
// Keys are produced in PEM format (private) and OpenSSH authorized_keys
// format (public). AKS requires an SSH public key on the cluster's Linux
// profile even when node access is never used; the generated private key
// is held in memory only and discarded with the process.
package keygen
