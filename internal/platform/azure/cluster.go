package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
)

// EnsureCluster ensures that an AKS cluster exists with the given
// specifications. An existing cluster is reused as-is; node pool changes to
// a live cluster go through EnsureAgentPool, not a cluster update.
func (c *RealClient) EnsureCluster(ctx context.Context, opts ClusterCreateOpts) (*armcontainerservice.ManagedCluster, error) {
	return (&EnsureOperation[*armcontainerservice.ManagedCluster, armcontainerservice.ManagedCluster]{
		Name:         opts.Name,
		ResourceType: "AKS cluster",
		Timeout:      c.timeouts.ClusterCreate,
		Get: func(ctx context.Context) (*armcontainerservice.ManagedCluster, error) {
			resp, err := c.clusters.Get(ctx, opts.ResourceGroup, opts.Name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.ManagedCluster, nil
		},
		Create: func(ctx context.Context, params armcontainerservice.ManagedCluster) (*armcontainerservice.ManagedCluster, error) {
			poller, err := c.clusters.BeginCreateOrUpdate(ctx, opts.ResourceGroup, opts.Name, params, nil)
			if err != nil {
				return nil, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return nil, err
			}
			return &resp.ManagedCluster, nil
		},
		CreateOptsMapper: func() armcontainerservice.ManagedCluster {
			return clusterParameters(opts)
		},
	}).Execute(ctx, c.timeouts)
}

// clusterParameters builds the ARM payload for a new cluster: a single
// system pool, a system-assigned identity, and the SSH key AKS insists on
// for the Linux profile.
func clusterParameters(opts ClusterCreateOpts) armcontainerservice.ManagedCluster {
	return armcontainerservice.ManagedCluster{
		Location: to.Ptr(opts.Location),
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcontainerservice.ManagedClusterProperties{
			DNSPrefix: to.Ptr(opts.Name),
			AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
				{
					Name:   to.Ptr(opts.SystemPoolName),
					Count:  to.Ptr(opts.SystemNodeCount),
					VMSize: to.Ptr(opts.NodeVMSize),
					Mode:   to.Ptr(armcontainerservice.AgentPoolModeSystem),
					OSType: to.Ptr(armcontainerservice.OSTypeLinux),
					Type:   to.Ptr(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
				},
			},
			LinuxProfile: &armcontainerservice.LinuxProfile{
				AdminUsername: to.Ptr(opts.AdminUsername),
				SSH: &armcontainerservice.SSHConfiguration{
					PublicKeys: []*armcontainerservice.SSHPublicKey{
						{KeyData: to.Ptr(opts.SSHPublicKey)},
					},
				},
			},
		},
	}
}

// EnsureAgentPool ensures that an additional agent pool exists on the
// cluster. Pools created here run in user mode so system pods stay on the
// system pool.
func (c *RealClient) EnsureAgentPool(ctx context.Context, resourceGroup, clusterName string, opts AgentPoolOpts) (*armcontainerservice.AgentPool, error) {
	return (&EnsureOperation[*armcontainerservice.AgentPool, armcontainerservice.AgentPool]{
		Name:         opts.Name,
		ResourceType: "agent pool",
		Timeout:      c.timeouts.ClusterCreate,
		Get: func(ctx context.Context) (*armcontainerservice.AgentPool, error) {
			resp, err := c.agentPools.Get(ctx, resourceGroup, clusterName, opts.Name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.AgentPool, nil
		},
		Create: func(ctx context.Context, params armcontainerservice.AgentPool) (*armcontainerservice.AgentPool, error) {
			poller, err := c.agentPools.BeginCreateOrUpdate(ctx, resourceGroup, clusterName, opts.Name, params, nil)
			if err != nil {
				return nil, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return nil, err
			}
			return &resp.AgentPool, nil
		},
		CreateOptsMapper: func() armcontainerservice.AgentPool {
			return armcontainerservice.AgentPool{
				Properties: &armcontainerservice.ManagedClusterAgentPoolProfileProperties{
					Count:  to.Ptr(opts.NodeCount),
					VMSize: to.Ptr(opts.VMSize),
					Mode:   to.Ptr(armcontainerservice.AgentPoolModeUser),
					OSType: to.Ptr(armcontainerservice.OSTypeLinux),
					Type:   to.Ptr(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
				},
			}
		},
	}).Execute(ctx, c.timeouts)
}

// GetCluster returns the AKS cluster with the given name.
func (c *RealClient) GetCluster(ctx context.Context, resourceGroup, name string) (*armcontainerservice.ManagedCluster, error) {
	resp, err := c.clusters.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get AKS cluster %s: %w", name, err)
	}
	return &resp.ManagedCluster, nil
}

// AdminKubeconfig returns the cluster-admin kubeconfig for the cluster.
func (c *RealClient) AdminKubeconfig(ctx context.Context, resourceGroup, name string) ([]byte, error) {
	resp, err := c.clusters.ListClusterAdminCredentials(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin credentials for cluster %s: %w", name, err)
	}
	if len(resp.Kubeconfigs) == 0 || resp.Kubeconfigs[0].Value == nil {
		return nil, fmt.Errorf("cluster %s returned no admin kubeconfig", name)
	}
	return resp.Kubeconfigs[0].Value, nil
}

// DeleteCluster deletes the AKS cluster and waits for completion.
func (c *RealClient) DeleteCluster(ctx context.Context, resourceGroup, name string) error {
	return (&DeleteOperation[*armcontainerservice.ManagedCluster]{
		Name:         name,
		ResourceType: "AKS cluster",
		Get: func(ctx context.Context) (*armcontainerservice.ManagedCluster, error) {
			resp, err := c.clusters.Get(ctx, resourceGroup, name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.ManagedCluster, nil
		},
		Delete: func(ctx context.Context) error {
			poller, err := c.clusters.BeginDelete(ctx, resourceGroup, name, nil)
			if err != nil {
				return err
			}
			_, err = poller.PollUntilDone(ctx, nil)
			return err
		},
	}).Execute(ctx, c.timeouts)
}

// KubeletPrincipalID extracts the object ID of the kubelet's managed
// identity from a cluster. This is the principal image pulls authenticate
// as, so it is the one that needs registry and storage grants.
func KubeletPrincipalID(cluster *armcontainerservice.ManagedCluster) (string, error) {
	if cluster == nil || cluster.Properties == nil {
		return "", fmt.Errorf("cluster has no properties")
	}
	profile, ok := cluster.Properties.IdentityProfile["kubeletidentity"]
	if !ok || profile == nil || profile.ObjectID == nil {
		return "", fmt.Errorf("cluster has no kubelet identity; is the cluster using a managed identity?")
	}
	return *profile.ObjectID, nil
}
