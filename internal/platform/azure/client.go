// Package azure provides a wrapper around the Azure Resource Manager APIs.
package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/mysql/armmysqlflexibleservers"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
)

// ClusterCreateOpts holds all parameters for creating an AKS cluster.
type ClusterCreateOpts struct {
	Name            string
	ResourceGroup   string
	Location        string
	NodeVMSize      string
	SystemPoolName  string
	SystemNodeCount int32
	AdminUsername   string
	SSHPublicKey    string
}

// AgentPoolOpts holds the parameters for an additional agent pool.
type AgentPoolOpts struct {
	Name      string
	VMSize    string
	NodeCount int32
}

// DatabaseServerOpts holds the parameters for a MySQL Flexible Server.
// AdminPassword is applied on create and rotated onto an existing server.
type DatabaseServerOpts struct {
	Name          string
	ResourceGroup string
	Location      string
	AdminUser     string
	AdminPassword string
}

// RegistryCredentials carries the admin login for a container registry.
// The password is propagated into a cluster secret and must never be logged.
type RegistryCredentials struct {
	LoginServer string
	Username    string
	Password    string
}

// GroupManager defines the interface for managing resource groups.
type GroupManager interface {
	EnsureResourceGroup(ctx context.Context, name, location string) (*armresources.ResourceGroup, error)
	GetResourceGroup(ctx context.Context, name string) (*armresources.ResourceGroup, error)
}

// ClusterManager defines the interface for managing AKS clusters.
type ClusterManager interface {
	EnsureCluster(ctx context.Context, opts ClusterCreateOpts) (*armcontainerservice.ManagedCluster, error)
	EnsureAgentPool(ctx context.Context, resourceGroup, clusterName string, opts AgentPoolOpts) (*armcontainerservice.AgentPool, error)
	GetCluster(ctx context.Context, resourceGroup, name string) (*armcontainerservice.ManagedCluster, error)
	// AdminKubeconfig returns the cluster-admin kubeconfig bytes. It is the
	// prerequisite for every cluster-object operation that follows.
	AdminKubeconfig(ctx context.Context, resourceGroup, name string) ([]byte, error)
	DeleteCluster(ctx context.Context, resourceGroup, name string) error
}

// RegistryManager defines the interface for managing container registries.
type RegistryManager interface {
	EnsureRegistry(ctx context.Context, resourceGroup, name, location string) (*armcontainerregistry.Registry, error)
	RegistryCredentials(ctx context.Context, resourceGroup, name string) (*RegistryCredentials, error)
}

// DatabaseManager defines the interface for managing MySQL Flexible Servers.
type DatabaseManager interface {
	EnsureDatabaseServer(ctx context.Context, opts DatabaseServerOpts) (*armmysqlflexibleservers.Server, error)
	EnsureDatabase(ctx context.Context, resourceGroup, serverName, databaseName string) error
	EnsureFirewallRule(ctx context.Context, resourceGroup, serverName, ruleName, startIP, endIP string) error
	GetDatabaseServer(ctx context.Context, resourceGroup, name string) (*armmysqlflexibleservers.Server, error)
}

// StorageManager defines the interface for managing storage accounts.
type StorageManager interface {
	EnsureStorageAccount(ctx context.Context, resourceGroup, name, location string) (*armstorage.Account, error)
	StorageAccountKey(ctx context.Context, resourceGroup, name string) (string, error)
	GetStorageAccount(ctx context.Context, resourceGroup, name string) (*armstorage.Account, error)
}

// DNSManager defines the interface for managing DNS zones.
type DNSManager interface {
	EnsureDNSZone(ctx context.Context, resourceGroup, name string) (*armdns.Zone, error)
	GetDNSZone(ctx context.Context, resourceGroup, name string) (*armdns.Zone, error)
}

// AccessManager defines the interface for granting RBAC roles.
type AccessManager interface {
	// EnsureRoleAssignment grants roleDefinitionID to principalID at scope.
	// An assignment that already exists counts as success.
	EnsureRoleAssignment(ctx context.Context, scope, roleDefinitionID, principalID string) error
	// RoleDefinitionID expands a built-in role GUID to its full ARM path.
	RoleDefinitionID(roleGUID string) string
}

// ResourceManager combines all Azure resource interfaces.
type ResourceManager interface {
	GroupManager
	ClusterManager
	RegistryManager
	DatabaseManager
	StorageManager
	DNSManager
	AccessManager
}
