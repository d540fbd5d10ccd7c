package naming

import (
	"fmt"
	"strings"
)

// Naming functions for Azure resources derived from the cluster name.
// Deterministic names let repeated runs find the resources they created
// before instead of allocating duplicates.

const (
	storageAccountMaxLen = 24
	storageSuffix        = "storage"
	agentPoolMaxLen      = 12
	databaseServerMaxLen = 63
)

// DatabaseServer returns the MySQL Flexible Server name for a cluster.
// Server names allow lowercase letters, digits, and hyphens.
func DatabaseServer(cluster string) string {
	name := fmt.Sprintf("%s-mysql", hyphenated(cluster))
	if len(name) > databaseServerMaxLen {
		name = name[:databaseServerMaxLen]
	}
	return strings.Trim(name, "-")
}

// StorageAccount returns the storage account name for a cluster. Storage
// accounts accept only 3-24 lowercase alphanumerics, so the cluster name
// is squeezed and truncated to leave room for the suffix.
func StorageAccount(cluster string) string {
	base := alphanumeric(cluster)
	if max := storageAccountMaxLen - len(storageSuffix); len(base) > max {
		base = base[:max]
	}
	return base + storageSuffix
}

// AgentPool normalizes a node pool name to AKS rules: at most 12
// lowercase alphanumerics, starting with a letter.
func AgentPool(name string) string {
	pool := alphanumeric(name)
	for len(pool) > 0 && pool[0] >= '0' && pool[0] <= '9' {
		pool = pool[1:]
	}
	if pool == "" {
		pool = "pool"
	}
	if len(pool) > agentPoolMaxLen {
		pool = pool[:agentPoolMaxLen]
	}
	return pool
}

// NodeResourceGroup returns the managed resource group AKS places node
// resources in, matching the MC_{group}_{cluster}_{location} convention.
func NodeResourceGroup(group, cluster, location string) string {
	return fmt.Sprintf("MC_%s_%s_%s", group, cluster, location)
}

// hyphenated lowercases the name and replaces runs of unsupported
// characters with single hyphens.
func hyphenated(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// alphanumeric lowercases the name and drops everything outside [a-z0-9].
func alphanumeric(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
