package services

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/util/naming"
)

// ProvisionStorage ensures the object storage account backing workspace
// content, grants the kubelet identity blob access and captures the account
// key for the credential propagator.
func (p *Provisioner) ProvisionStorage(ctx *provisioning.Context) error {
	accountName := naming.StorageAccount(ctx.Config.ClusterName)
	ctx.Observer.Printf("[%s] Reconciling storage account %s...", phase, accountName)

	account, err := ctx.Azure.EnsureStorageAccount(ctx, ctx.Config.ResourceGroup, accountName, ctx.Config.Location)
	if err != nil {
		return fmt.Errorf("failed to ensure storage account: %w", err)
	}
	if account.ID == nil {
		return fmt.Errorf("storage account %s has no resource ID", accountName)
	}

	roleID := ctx.Azure.RoleDefinitionID(azure.RoleStorageBlobDataContributor)
	if err := ctx.Azure.EnsureRoleAssignment(ctx, *account.ID, roleID, ctx.State.KubeletPrincipalID); err != nil {
		return fmt.Errorf("failed to grant storage access: %w", err)
	}
	provisioning.LogResourceConfigured(ctx.Observer, phase, "storage account", accountName, "blob data contributor granted to kubelet identity")

	key, err := ctx.Azure.StorageAccountKey(ctx, ctx.Config.ResourceGroup, accountName)
	if err != nil {
		return fmt.Errorf("failed to fetch storage account key: %w", err)
	}

	ctx.State.StorageAccountName = accountName
	ctx.State.StorageAccountKey = key

	ctx.Observer.Printf("[%s] Storage account %s ready", phase, accountName)
	return nil
}
