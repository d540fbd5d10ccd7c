// Package provisioning contains the shared types used by the install and
// uninstall pipelines: the provisioning context, the mutable run state, the
// Phase interface and the observer that reports progress.
//
// The actual work happens in the subpackages:
//
//   - infrastructure: resource group, AKS cluster, workspace node pool
//   - services: container registry, DNS zone, database, storage account
//   - issuer: cert-manager and the cluster certificate issuer
//   - teardown: confirmation and deletion for uninstall
//
// Phases run in order via RunPhases and communicate through the shared
// State. A phase that fails aborts the pipeline.
package provisioning
