package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/mysql/armmysqlflexibleservers"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/strandhq/strand-azure/internal/config"
)

// RealClient implements ResourceManager using the Azure Resource Manager API.
type RealClient struct {
	subscriptionID string
	timeouts       *config.Timeouts

	groups        *armresources.ResourceGroupsClient
	clusters      *armcontainerservice.ManagedClustersClient
	agentPools    *armcontainerservice.AgentPoolsClient
	registries    *armcontainerregistry.RegistriesClient
	mysqlServers  *armmysqlflexibleservers.ServersClient
	mysqlDBs      *armmysqlflexibleservers.DatabasesClient
	mysqlFirewall *armmysqlflexibleservers.FirewallRulesClient
	storage       *armstorage.AccountsClient
	dnsZones      *armdns.ZonesClient
	assignments   *armauthorization.RoleAssignmentsClient
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// NewRealClient creates a RealClient for the given subscription. When cred
// is nil the default Azure credential chain is used (CLI login, managed
// identity, environment), which is how operators normally run the installer.
func NewRealClient(subscriptionID string, cred azcore.TokenCredential, opts ...ClientOption) (*RealClient, error) {
	if cred == nil {
		var err error
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build Azure credential: %w", err)
		}
	}

	c := &RealClient{
		subscriptionID: subscriptionID,
		timeouts:       config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.groups, err = armresources.NewResourceGroupsClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	if c.clusters, err = armcontainerservice.NewManagedClustersClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create managed clusters client: %w", err)
	}
	if c.agentPools, err = armcontainerservice.NewAgentPoolsClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create agent pools client: %w", err)
	}
	if c.registries, err = armcontainerregistry.NewRegistriesClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create registries client: %w", err)
	}
	if c.mysqlServers, err = armmysqlflexibleservers.NewServersClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create mysql servers client: %w", err)
	}
	if c.mysqlDBs, err = armmysqlflexibleservers.NewDatabasesClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create mysql databases client: %w", err)
	}
	if c.mysqlFirewall, err = armmysqlflexibleservers.NewFirewallRulesClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create mysql firewall rules client: %w", err)
	}
	if c.storage, err = armstorage.NewAccountsClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}
	if c.dnsZones, err = armdns.NewZonesClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create dns zones client: %w", err)
	}
	if c.assignments, err = armauthorization.NewRoleAssignmentsClient(subscriptionID, cred, nil); err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}

	return c, nil
}

// SubscriptionID returns the subscription this client operates on.
func (c *RealClient) SubscriptionID() string {
	return c.subscriptionID
}
