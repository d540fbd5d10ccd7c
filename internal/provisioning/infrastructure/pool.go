package infrastructure

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/util/naming"
)

// ProvisionWorkspacePool ensures the dedicated workspaces node pool exists
// on the cluster. User workspaces run here, isolated from platform services
// on the system pool.
func (p *Provisioner) ProvisionWorkspacePool(ctx *provisioning.Context) error {
	poolName := naming.AgentPool(config.WorkspacesPoolName)
	ctx.Observer.Printf("[%s] Reconciling node pool %s...", phase, poolName)

	_, err := ctx.Azure.EnsureAgentPool(ctx, ctx.Config.ResourceGroup, ctx.Config.ClusterName, azure.AgentPoolOpts{
		Name:      poolName,
		VMSize:    ctx.Config.NodeVMSize,
		NodeCount: config.WorkspacesNodeCount,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure node pool %s: %w", poolName, err)
	}

	ctx.Observer.Printf("[%s] Node pool %s ready", phase, poolName)
	return nil
}
