package infrastructure

import (
	"github.com/strandhq/strand-azure/internal/provisioning"
)

const phase = "infrastructure"

// Provisioner handles infrastructure provisioning (resource group, cluster,
// node pools, admin credentials).
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. Order matters:
// the cluster needs the group, the pool needs the cluster, and the admin
// credentials must be in hand before any phase touches cluster objects.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Resource group
	if err := p.ProvisionResourceGroup(ctx); err != nil {
		return err
	}

	// 2. AKS cluster with its system pool
	if err := p.ProvisionCluster(ctx); err != nil {
		return err
	}

	// 3. Workspaces node pool
	if err := p.ProvisionWorkspacePool(ctx); err != nil {
		return err
	}

	// 4. Admin kubeconfig and kubelet identity
	if err := p.CollectClusterAccess(ctx); err != nil {
		return err
	}

	return nil
}
