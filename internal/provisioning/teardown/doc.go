// Package teardown removes the cluster-bound pieces of an installation and
// deletes the AKS cluster itself. Deletions are existence-checked and
// tolerant of absent objects so a half-installed or half-removed
// environment tears down the same way a complete one does. Stateful
// resources (resource group, database server, storage account, DNS zone)
// are deliberately retained and reported for manual cleanup.
package teardown
