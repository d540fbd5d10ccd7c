package infrastructure

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/util/keygen"
)

// sshKeyBits is the RSA key size for the cluster's Linux profile. AKS
// rejects anything below 2048.
const sshKeyBits = 4096

// ProvisionCluster ensures the AKS cluster exists. The SSH keypair is
// generated fresh on every run but only applied on create; an existing
// cluster keeps its original Linux profile.
func (p *Provisioner) ProvisionCluster(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[%s] Reconciling AKS cluster %s...", phase, ctx.Config.ClusterName)

	keyPair, err := keygen.GenerateRSAKeyPair(sshKeyBits)
	if err != nil {
		return fmt.Errorf("failed to generate SSH keypair: %w", err)
	}

	_, err = ctx.Azure.EnsureCluster(ctx, azure.ClusterCreateOpts{
		Name:            ctx.Config.ClusterName,
		ResourceGroup:   ctx.Config.ResourceGroup,
		Location:        ctx.Config.Location,
		NodeVMSize:      ctx.Config.NodeVMSize,
		SystemPoolName:  config.SystemPoolName,
		SystemNodeCount: config.SystemNodeCount,
		AdminUsername:   config.ClusterAdminUser,
		SSHPublicKey:    string(keyPair.PublicKey),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure AKS cluster: %w", err)
	}

	ctx.Observer.Printf("[%s] AKS cluster %s ready", phase, ctx.Config.ClusterName)
	return nil
}

// CollectClusterAccess fetches the admin kubeconfig and the kubelet identity
// into state. Nothing may touch cluster objects before this has run.
func (p *Provisioner) CollectClusterAccess(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[%s] Fetching admin credentials for %s...", phase, ctx.Config.ClusterName)

	kubeconfig, err := ctx.Azure.AdminKubeconfig(ctx, ctx.Config.ResourceGroup, ctx.Config.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to fetch admin kubeconfig: %w", err)
	}
	ctx.State.Kubeconfig = kubeconfig

	cluster, err := ctx.Azure.GetCluster(ctx, ctx.Config.ResourceGroup, ctx.Config.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to get cluster: %w", err)
	}

	principalID, err := azure.KubeletPrincipalID(cluster)
	if err != nil {
		return fmt.Errorf("failed to resolve kubelet identity: %w", err)
	}
	ctx.State.KubeletPrincipalID = principalID

	ctx.Observer.Printf("[%s] Cluster access ready (kubelet identity %s)", phase, principalID)
	return nil
}
