package services

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/provisioning"
)

const phase = "services"

// Provisioner handles backing service provisioning (registry, DNS, database,
// storage).
type Provisioner struct{}

// NewProvisioner creates a new services provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. It requires the
// infrastructure phase to have run: the kubelet identity from state is the
// principal all RBAC grants target.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.KubeletPrincipalID == "" {
		return fmt.Errorf("kubelet identity missing from state; infrastructure phase must run first")
	}

	// 1. Container registry with pull access and admin credentials
	if err := p.ProvisionRegistry(ctx); err != nil {
		return err
	}

	// 2. Managed DNS zone (optional)
	if err := p.ProvisionDNSZone(ctx); err != nil {
		return err
	}

	// 3. MySQL Flexible Server, database and firewall rule
	if err := p.ProvisionDatabase(ctx); err != nil {
		return err
	}

	// 4. Storage account with blob access and account key
	if err := p.ProvisionStorage(ctx); err != nil {
		return err
	}

	return nil
}
