package azure

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterParameters(t *testing.T) {
	params := clusterParameters(ClusterCreateOpts{
		Name:            "strand",
		ResourceGroup:   "strand-rg",
		Location:        "westeurope",
		NodeVMSize:      "Standard_D4s_v3",
		SystemPoolName:  "services",
		SystemNodeCount: 2,
		AdminUsername:   "strand",
		SSHPublicKey:    "ssh-rsa AAAA... installer",
	})

	assert.Equal(t, "westeurope", *params.Location)
	require.NotNil(t, params.Identity)
	assert.Equal(t, armcontainerservice.ResourceIdentityTypeSystemAssigned, *params.Identity.Type)

	require.Len(t, params.Properties.AgentPoolProfiles, 1)
	pool := params.Properties.AgentPoolProfiles[0]
	assert.Equal(t, "services", *pool.Name)
	assert.Equal(t, int32(2), *pool.Count)
	assert.Equal(t, armcontainerservice.AgentPoolModeSystem, *pool.Mode)

	require.NotNil(t, params.Properties.LinuxProfile)
	assert.Equal(t, "strand", *params.Properties.LinuxProfile.AdminUsername)
	require.Len(t, params.Properties.LinuxProfile.SSH.PublicKeys, 1)
}

func TestKubeletPrincipalID(t *testing.T) {
	cluster := &armcontainerservice.ManagedCluster{
		Properties: &armcontainerservice.ManagedClusterProperties{
			IdentityProfile: map[string]*armcontainerservice.UserAssignedIdentity{
				"kubeletidentity": {
					ObjectID: to.Ptr("22222222-2222-2222-2222-222222222222"),
				},
			},
		},
	}

	id, err := KubeletPrincipalID(cluster)
	require.NoError(t, err)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", id)
}

func TestKubeletPrincipalID_Missing(t *testing.T) {
	_, err := KubeletPrincipalID(&armcontainerservice.ManagedCluster{
		Properties: &armcontainerservice.ManagedClusterProperties{},
	})
	assert.ErrorContains(t, err, "no kubelet identity")

	_, err = KubeletPrincipalID(nil)
	assert.Error(t, err)
}
