package services

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
)

// ProvisionDNSZone ensures the managed DNS zone for the platform domain and
// records its name servers so the operator can delegate the domain. Skipped
// entirely when managed DNS is disabled.
func (p *Provisioner) ProvisionDNSZone(ctx *provisioning.Context) error {
	if !ctx.Config.SetupManagedDNS {
		ctx.Observer.Printf("[%s] Managed DNS disabled, skipping zone setup", phase)
		return nil
	}

	zoneName := ctx.Config.Domain
	ctx.Observer.Printf("[%s] Reconciling DNS zone %s...", phase, zoneName)

	zone, err := ctx.Azure.EnsureDNSZone(ctx, ctx.Config.ResourceGroup, zoneName)
	if err != nil {
		return fmt.Errorf("failed to ensure DNS zone: %w", err)
	}
	if zone.ID == nil {
		return fmt.Errorf("DNS zone %s has no resource ID", zoneName)
	}

	roleID := ctx.Azure.RoleDefinitionID(azure.RoleDNSZoneContributor)
	if err := ctx.Azure.EnsureRoleAssignment(ctx, *zone.ID, roleID, ctx.State.KubeletPrincipalID); err != nil {
		return fmt.Errorf("failed to grant DNS zone access: %w", err)
	}
	provisioning.LogResourceConfigured(ctx.Observer, phase, "dns zone", zoneName, "zone contributor granted to kubelet identity")

	ctx.State.NameServers = azure.ZoneNameServers(zone)

	ctx.Observer.Printf("[%s] DNS zone %s ready; delegate the domain to: %v", phase, zoneName, ctx.State.NameServers)
	return nil
}
