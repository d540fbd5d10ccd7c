package testing

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/mysql/armmysqlflexibleservers"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"github.com/strandhq/strand-azure/internal/platform/azure"
)

// Resource kinds as they appear in recorded calls.
const (
	KindResourceGroup  = "resource-group"
	KindCluster        = "cluster"
	KindAgentPool      = "agent-pool"
	KindRegistry       = "registry"
	KindDatabaseServer = "database-server"
	KindDatabase       = "database"
	KindFirewallRule   = "firewall-rule"
	KindStorageAccount = "storage-account"
	KindDNSZone        = "dns-zone"
	KindRoleAssignment = "role-assignment"
)

// Operations as they appear in recorded calls.
const (
	OpCreate      = "create"      // resource was absent and got created
	OpUpdate      = "update"      // resource existed and was modified
	OpReuse       = "reuse"       // resource existed and was left untouched
	OpConfigure   = "configure"   // sub-resource applied (idempotent)
	OpCredentials = "credentials" // secret material was fetched
	OpGet         = "get"
	OpDelete      = "delete"
)

// Call records one operation performed against the fake.
type Call struct {
	Op   string
	Kind string
	Name string
}

// FakeClient is an in-memory implementation of azure.ResourceManager.
// Resources created or seeded during a test are remembered, so a second
// Ensure* records a reuse instead of a create. Every operation is appended
// to the call trace in order.
//
// Failures are injected per operation and kind:
//
//	fake.FailOn[testutil.OpCreate+" "+testutil.KindCluster] = errors.New("quota exceeded")
type FakeClient struct {
	mu    sync.Mutex
	calls []Call

	groups     map[string]*armresources.ResourceGroup
	clusters   map[string]*armcontainerservice.ManagedCluster
	agentPools map[string]*armcontainerservice.AgentPool
	registries map[string]*armcontainerregistry.Registry
	dbServers  map[string]*armmysqlflexibleservers.Server
	databases  map[string]bool
	firewall   map[string]bool
	storage    map[string]*armstorage.Account
	zones      map[string]*armdns.Zone
	roleGrants map[string]bool

	// FailOn maps "<op> <kind>" to the error that operation should return.
	FailOn map[string]error

	// Values returned for fetched material. All have working defaults.
	KubeconfigBytes []byte
	KubeletObjectID string
	RegistryCreds   *azure.RegistryCredentials
	StorageKey      string
	ZoneNameServers []string
}

// Ensure interface compliance
var _ azure.ResourceManager = (*FakeClient)(nil)

// NewFakeClient creates an empty fake with default credential material.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		groups:     make(map[string]*armresources.ResourceGroup),
		clusters:   make(map[string]*armcontainerservice.ManagedCluster),
		agentPools: make(map[string]*armcontainerservice.AgentPool),
		registries: make(map[string]*armcontainerregistry.Registry),
		dbServers:  make(map[string]*armmysqlflexibleservers.Server),
		databases:  make(map[string]bool),
		firewall:   make(map[string]bool),
		storage:    make(map[string]*armstorage.Account),
		zones:      make(map[string]*armdns.Zone),
		roleGrants: make(map[string]bool),
		FailOn:     make(map[string]error),

		KubeconfigBytes: []byte(TestKubeconfig),
		KubeletObjectID: "11111111-2222-3333-4444-555555555555",
		StorageKey:      "ZmFrZS1zdG9yYWdlLWtleQ==",
		ZoneNameServers: []string{
			"ns1-01.azure-dns.com.",
			"ns2-01.azure-dns.net.",
			"ns3-01.azure-dns.org.",
			"ns4-01.azure-dns.info.",
		},
	}
}

// Calls returns a copy of the recorded call trace.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]Call, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// CallsOp returns the recorded calls with the given operation.
func (f *FakeClient) CallsOp(op string) []Call {
	var matched []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			matched = append(matched, c)
		}
	}
	return matched
}

// ResetCalls clears the call trace but keeps the resource state. Used to
// separate a seeding pass from the assertions that follow.
func (f *FakeClient) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeClient) record(op, kind, name string) {
	f.calls = append(f.calls, Call{Op: op, Kind: kind, Name: name})
}

func (f *FakeClient) failure(op, kind string) error {
	return f.FailOn[op+" "+kind]
}

// notFound builds the 404 the real ARM API returns for absent resources.
func notFound() error {
	return &azcore.ResponseError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  "ResourceNotFound",
		RawResponse: &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       http.NoBody,
		},
	}
}

// --- Seeding -----------------------------------------------------------

// SeedResourceGroup marks a resource group as pre-existing.
func (f *FakeClient) SeedResourceGroup(name, location string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[name] = newFakeGroup(name, location)
}

// SeedCluster marks an AKS cluster as pre-existing.
func (f *FakeClient) SeedCluster(resourceGroup, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clusters[resourceGroup+"/"+name] = f.newFakeCluster(name)
}

// SeedAgentPool marks an agent pool as pre-existing.
func (f *FakeClient) SeedAgentPool(resourceGroup, clusterName, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agentPools[resourceGroup+"/"+clusterName+"/"+name] = newFakeAgentPool(name)
}

// SeedRegistry marks a container registry as pre-existing.
func (f *FakeClient) SeedRegistry(resourceGroup, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registries[resourceGroup+"/"+name] = newFakeRegistry(name)
}

// SeedDatabaseServer marks a MySQL Flexible Server as pre-existing.
func (f *FakeClient) SeedDatabaseServer(resourceGroup, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dbServers[resourceGroup+"/"+name] = newFakeDatabaseServer(name)
}

// SeedStorageAccount marks a storage account as pre-existing.
func (f *FakeClient) SeedStorageAccount(resourceGroup, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storage[resourceGroup+"/"+name] = newFakeStorageAccount(name)
}

// SeedDNSZone marks a DNS zone as pre-existing.
func (f *FakeClient) SeedDNSZone(resourceGroup, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.zones[resourceGroup+"/"+name] = f.newFakeZone(name)
}

// --- Resource groups ---------------------------------------------------

// EnsureResourceGroup implements azure.GroupManager.
func (f *FakeClient) EnsureResourceGroup(_ context.Context, name, location string) (*armresources.ResourceGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindResourceGroup); err != nil {
		return nil, err
	}
	if g, ok := f.groups[name]; ok {
		f.record(OpReuse, KindResourceGroup, name)
		return g, nil
	}
	if err := f.failure(OpCreate, KindResourceGroup); err != nil {
		return nil, err
	}
	g := newFakeGroup(name, location)
	f.groups[name] = g
	f.record(OpCreate, KindResourceGroup, name)
	return g, nil
}

// GetResourceGroup implements azure.GroupManager.
func (f *FakeClient) GetResourceGroup(_ context.Context, name string) (*armresources.ResourceGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindResourceGroup); err != nil {
		return nil, err
	}
	f.record(OpGet, KindResourceGroup, name)
	if g, ok := f.groups[name]; ok {
		return g, nil
	}
	return nil, notFound()
}

// --- Clusters ----------------------------------------------------------

// EnsureCluster implements azure.ClusterManager.
func (f *FakeClient) EnsureCluster(_ context.Context, opts azure.ClusterCreateOpts) (*armcontainerservice.ManagedCluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindCluster); err != nil {
		return nil, err
	}
	key := opts.ResourceGroup + "/" + opts.Name
	if c, ok := f.clusters[key]; ok {
		f.record(OpReuse, KindCluster, opts.Name)
		return c, nil
	}
	if err := f.failure(OpCreate, KindCluster); err != nil {
		return nil, err
	}
	c := f.newFakeCluster(opts.Name)
	f.clusters[key] = c
	f.record(OpCreate, KindCluster, opts.Name)
	return c, nil
}

// EnsureAgentPool implements azure.ClusterManager.
func (f *FakeClient) EnsureAgentPool(_ context.Context, resourceGroup, clusterName string, opts azure.AgentPoolOpts) (*armcontainerservice.AgentPool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindAgentPool); err != nil {
		return nil, err
	}
	key := resourceGroup + "/" + clusterName + "/" + opts.Name
	if p, ok := f.agentPools[key]; ok {
		f.record(OpReuse, KindAgentPool, opts.Name)
		return p, nil
	}
	if err := f.failure(OpCreate, KindAgentPool); err != nil {
		return nil, err
	}
	p := newFakeAgentPool(opts.Name)
	f.agentPools[key] = p
	f.record(OpCreate, KindAgentPool, opts.Name)
	return p, nil
}

// GetCluster implements azure.ClusterManager.
func (f *FakeClient) GetCluster(_ context.Context, resourceGroup, name string) (*armcontainerservice.ManagedCluster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindCluster); err != nil {
		return nil, err
	}
	f.record(OpGet, KindCluster, name)
	if c, ok := f.clusters[resourceGroup+"/"+name]; ok {
		return c, nil
	}
	return nil, notFound()
}

// AdminKubeconfig implements azure.ClusterManager.
func (f *FakeClient) AdminKubeconfig(_ context.Context, resourceGroup, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpCredentials, KindCluster); err != nil {
		return nil, err
	}
	if _, ok := f.clusters[resourceGroup+"/"+name]; !ok {
		return nil, notFound()
	}
	f.record(OpCredentials, KindCluster, name)
	return f.KubeconfigBytes, nil
}

// DeleteCluster implements azure.ClusterManager.
func (f *FakeClient) DeleteCluster(_ context.Context, resourceGroup, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpDelete, KindCluster); err != nil {
		return err
	}
	delete(f.clusters, resourceGroup+"/"+name)
	f.record(OpDelete, KindCluster, name)
	return nil
}

// --- Registries --------------------------------------------------------

// EnsureRegistry implements azure.RegistryManager.
func (f *FakeClient) EnsureRegistry(_ context.Context, resourceGroup, name, location string) (*armcontainerregistry.Registry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindRegistry); err != nil {
		return nil, err
	}
	key := resourceGroup + "/" + name
	if r, ok := f.registries[key]; ok {
		f.record(OpReuse, KindRegistry, name)
		return r, nil
	}
	if err := f.failure(OpCreate, KindRegistry); err != nil {
		return nil, err
	}
	r := newFakeRegistry(name)
	f.registries[key] = r
	f.record(OpCreate, KindRegistry, name)
	return r, nil
}

// RegistryCredentials implements azure.RegistryManager.
func (f *FakeClient) RegistryCredentials(_ context.Context, resourceGroup, name string) (*azure.RegistryCredentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpCredentials, KindRegistry); err != nil {
		return nil, err
	}
	if _, ok := f.registries[resourceGroup+"/"+name]; !ok {
		return nil, notFound()
	}
	f.record(OpCredentials, KindRegistry, name)
	if f.RegistryCreds != nil {
		return f.RegistryCreds, nil
	}
	return &azure.RegistryCredentials{
		LoginServer: name + ".azurecr.io",
		Username:    name,
		Password:    "fake-registry-password",
	}, nil
}

// --- Databases ---------------------------------------------------------

// EnsureDatabaseServer implements azure.DatabaseManager. A pre-existing
// server records an update, mirroring the password rotation the real
// client performs.
func (f *FakeClient) EnsureDatabaseServer(_ context.Context, opts azure.DatabaseServerOpts) (*armmysqlflexibleservers.Server, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindDatabaseServer); err != nil {
		return nil, err
	}
	key := opts.ResourceGroup + "/" + opts.Name
	if s, ok := f.dbServers[key]; ok {
		if err := f.failure(OpUpdate, KindDatabaseServer); err != nil {
			return nil, err
		}
		f.record(OpUpdate, KindDatabaseServer, opts.Name)
		return s, nil
	}
	if err := f.failure(OpCreate, KindDatabaseServer); err != nil {
		return nil, err
	}
	s := newFakeDatabaseServer(opts.Name)
	f.dbServers[key] = s
	f.record(OpCreate, KindDatabaseServer, opts.Name)
	return s, nil
}

// EnsureDatabase implements azure.DatabaseManager.
func (f *FakeClient) EnsureDatabase(_ context.Context, resourceGroup, serverName, databaseName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpConfigure, KindDatabase); err != nil {
		return err
	}
	f.databases[resourceGroup+"/"+serverName+"/"+databaseName] = true
	f.record(OpConfigure, KindDatabase, databaseName)
	return nil
}

// EnsureFirewallRule implements azure.DatabaseManager.
func (f *FakeClient) EnsureFirewallRule(_ context.Context, resourceGroup, serverName, ruleName, startIP, endIP string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpConfigure, KindFirewallRule); err != nil {
		return err
	}
	f.firewall[resourceGroup+"/"+serverName+"/"+ruleName] = true
	f.record(OpConfigure, KindFirewallRule, ruleName)
	return nil
}

// GetDatabaseServer implements azure.DatabaseManager.
func (f *FakeClient) GetDatabaseServer(_ context.Context, resourceGroup, name string) (*armmysqlflexibleservers.Server, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindDatabaseServer); err != nil {
		return nil, err
	}
	f.record(OpGet, KindDatabaseServer, name)
	if s, ok := f.dbServers[resourceGroup+"/"+name]; ok {
		return s, nil
	}
	return nil, notFound()
}

// --- Storage -----------------------------------------------------------

// EnsureStorageAccount implements azure.StorageManager.
func (f *FakeClient) EnsureStorageAccount(_ context.Context, resourceGroup, name, location string) (*armstorage.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindStorageAccount); err != nil {
		return nil, err
	}
	key := resourceGroup + "/" + name
	if a, ok := f.storage[key]; ok {
		f.record(OpReuse, KindStorageAccount, name)
		return a, nil
	}
	if err := f.failure(OpCreate, KindStorageAccount); err != nil {
		return nil, err
	}
	a := newFakeStorageAccount(name)
	f.storage[key] = a
	f.record(OpCreate, KindStorageAccount, name)
	return a, nil
}

// StorageAccountKey implements azure.StorageManager.
func (f *FakeClient) StorageAccountKey(_ context.Context, resourceGroup, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpCredentials, KindStorageAccount); err != nil {
		return "", err
	}
	if _, ok := f.storage[resourceGroup+"/"+name]; !ok {
		return "", notFound()
	}
	f.record(OpCredentials, KindStorageAccount, name)
	return f.StorageKey, nil
}

// GetStorageAccount implements azure.StorageManager.
func (f *FakeClient) GetStorageAccount(_ context.Context, resourceGroup, name string) (*armstorage.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindStorageAccount); err != nil {
		return nil, err
	}
	f.record(OpGet, KindStorageAccount, name)
	if a, ok := f.storage[resourceGroup+"/"+name]; ok {
		return a, nil
	}
	return nil, notFound()
}

// --- DNS ---------------------------------------------------------------

// EnsureDNSZone implements azure.DNSManager.
func (f *FakeClient) EnsureDNSZone(_ context.Context, resourceGroup, name string) (*armdns.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindDNSZone); err != nil {
		return nil, err
	}
	key := resourceGroup + "/" + name
	if z, ok := f.zones[key]; ok {
		f.record(OpReuse, KindDNSZone, name)
		return z, nil
	}
	if err := f.failure(OpCreate, KindDNSZone); err != nil {
		return nil, err
	}
	z := f.newFakeZone(name)
	f.zones[key] = z
	f.record(OpCreate, KindDNSZone, name)
	return z, nil
}

// GetDNSZone implements azure.DNSManager.
func (f *FakeClient) GetDNSZone(_ context.Context, resourceGroup, name string) (*armdns.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpGet, KindDNSZone); err != nil {
		return nil, err
	}
	f.record(OpGet, KindDNSZone, name)
	if z, ok := f.zones[resourceGroup+"/"+name]; ok {
		return z, nil
	}
	return nil, notFound()
}

// --- RBAC --------------------------------------------------------------

// EnsureRoleAssignment implements azure.AccessManager.
func (f *FakeClient) EnsureRoleAssignment(_ context.Context, scope, roleDefinitionID, principalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failure(OpConfigure, KindRoleAssignment); err != nil {
		return err
	}
	f.roleGrants[scope+"|"+roleDefinitionID+"|"+principalID] = true
	f.record(OpConfigure, KindRoleAssignment, roleGUID(roleDefinitionID))
	return nil
}

// RoleDefinitionID implements azure.AccessManager.
func (f *FakeClient) RoleDefinitionID(roleGUID string) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		"00000000-0000-0000-0000-000000000001", roleGUID)
}

// HasRoleGrant reports whether a grant was recorded for the given triple.
func (f *FakeClient) HasRoleGrant(scope, roleDefinitionID, principalID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roleGrants[scope+"|"+roleDefinitionID+"|"+principalID]
}

// roleGUID returns the trailing GUID of a role definition path.
func roleGUID(roleDefinitionID string) string {
	for i := len(roleDefinitionID) - 1; i >= 0; i-- {
		if roleDefinitionID[i] == '/' {
			return roleDefinitionID[i+1:]
		}
	}
	return roleDefinitionID
}

// --- Fake resource constructors ----------------------------------------

func newFakeGroup(name, location string) *armresources.ResourceGroup {
	return &armresources.ResourceGroup{
		ID:       to.Ptr("/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/" + name),
		Name:     to.Ptr(name),
		Location: to.Ptr(location),
	}
}

func (f *FakeClient) newFakeCluster(name string) *armcontainerservice.ManagedCluster {
	return &armcontainerservice.ManagedCluster{
		ID:   to.Ptr("/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg/providers/Microsoft.ContainerService/managedClusters/" + name),
		Name: to.Ptr(name),
		Properties: &armcontainerservice.ManagedClusterProperties{
			ProvisioningState: to.Ptr("Succeeded"),
			Fqdn:              to.Ptr(name + ".hcp.westeurope.azmk8s.io"),
			IdentityProfile: map[string]*armcontainerservice.UserAssignedIdentity{
				"kubeletidentity": {
					ObjectID: to.Ptr(f.KubeletObjectID),
				},
			},
		},
	}
}

func newFakeAgentPool(name string) *armcontainerservice.AgentPool {
	return &armcontainerservice.AgentPool{
		Name: to.Ptr(name),
		Properties: &armcontainerservice.ManagedClusterAgentPoolProfileProperties{
			ProvisioningState: to.Ptr("Succeeded"),
		},
	}
}

func newFakeRegistry(name string) *armcontainerregistry.Registry {
	return &armcontainerregistry.Registry{
		ID:   to.Ptr("/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg/providers/Microsoft.ContainerRegistry/registries/" + name),
		Name: to.Ptr(name),
		Properties: &armcontainerregistry.RegistryProperties{
			LoginServer: to.Ptr(name + ".azurecr.io"),
		},
	}
}

func newFakeDatabaseServer(name string) *armmysqlflexibleservers.Server {
	return &armmysqlflexibleservers.Server{
		ID:   to.Ptr("/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg/providers/Microsoft.DBforMySQL/flexibleServers/" + name),
		Name: to.Ptr(name),
		Properties: &armmysqlflexibleservers.ServerProperties{
			FullyQualifiedDomainName: to.Ptr(name + ".mysql.database.azure.com"),
		},
	}
}

func newFakeStorageAccount(name string) *armstorage.Account {
	return &armstorage.Account{
		ID:   to.Ptr("/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/" + name),
		Name: to.Ptr(name),
	}
}

func (f *FakeClient) newFakeZone(name string) *armdns.Zone {
	nameServers := make([]*string, 0, len(f.ZoneNameServers))
	for _, ns := range f.ZoneNameServers {
		nameServers = append(nameServers, to.Ptr(ns))
	}
	return &armdns.Zone{
		ID:   to.Ptr("/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/rg/providers/Microsoft.Network/dnszones/" + name),
		Name: to.Ptr(name),
		Properties: &armdns.ZoneProperties{
			NameServers: nameServers,
		},
	}
}
