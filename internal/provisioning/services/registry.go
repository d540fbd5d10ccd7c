package services

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
)

// ProvisionRegistry ensures the container registry exists, grants the
// kubelet identity pull access, and stores the admin credentials in state
// for the secret propagation step.
func (p *Provisioner) ProvisionRegistry(ctx *provisioning.Context) error {
	name := ctx.Config.RegistryName
	ctx.Observer.Printf("[%s] Reconciling container registry %s...", phase, name)

	registry, err := ctx.Azure.EnsureRegistry(ctx, ctx.Config.ResourceGroup, name, ctx.Config.Location)
	if err != nil {
		return fmt.Errorf("failed to ensure container registry: %w", err)
	}
	if registry.ID == nil {
		return fmt.Errorf("container registry %s has no resource ID", name)
	}

	roleID := ctx.Azure.RoleDefinitionID(azure.RoleAcrPull)
	if err := ctx.Azure.EnsureRoleAssignment(ctx, *registry.ID, roleID, ctx.State.KubeletPrincipalID); err != nil {
		return fmt.Errorf("failed to grant registry pull access: %w", err)
	}
	provisioning.LogResourceConfigured(ctx.Observer, phase, "registry", name, "pull access granted to kubelet identity")

	creds, err := ctx.Azure.RegistryCredentials(ctx, ctx.Config.ResourceGroup, name)
	if err != nil {
		return fmt.Errorf("failed to fetch registry credentials: %w", err)
	}
	ctx.State.RegistryCredentials = creds

	ctx.Observer.Printf("[%s] Container registry %s ready at %s", phase, name, creds.LoginServer)
	return nil
}
