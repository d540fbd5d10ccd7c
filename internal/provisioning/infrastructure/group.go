package infrastructure

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/provisioning"
)

// ProvisionResourceGroup ensures the resource group every other resource
// lives in.
func (p *Provisioner) ProvisionResourceGroup(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[%s] Reconciling resource group %s...", phase, ctx.Config.ResourceGroup)

	if _, err := ctx.Azure.EnsureResourceGroup(ctx, ctx.Config.ResourceGroup, ctx.Config.Location); err != nil {
		return fmt.Errorf("failed to ensure resource group: %w", err)
	}

	ctx.Observer.Printf("[%s] Resource group %s ready in %s", phase, ctx.Config.ResourceGroup, ctx.Config.Location)
	return nil
}
