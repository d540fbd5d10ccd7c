// Package infrastructure provisions the foundational Azure resources: the
// resource group, the AKS cluster with its system pool, the dedicated
// workspaces node pool, and the cluster admin credentials every later phase
// depends on.
package infrastructure
