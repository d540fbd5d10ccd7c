package testing

import (
	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/util/naming"
)

// TestKubeconfig is a minimal kubeconfig that client-go can parse. The fake
// returns it from AdminKubeconfig.
const TestKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://strand-test.hcp.westeurope.azmk8s.io:443
  name: strand-test
contexts:
- context:
    cluster: strand-test
    user: clusterAdmin
  name: strand-test
current-context: strand-test
users:
- name: clusterAdmin
  user:
    token: fake-admin-token
`

// ClientFixture provides pre-configured fakes for common test scenarios.
type ClientFixture struct {
	fake *FakeClient
}

// NewClientFixture creates a new fixture around an empty fake.
func NewClientFixture() *ClientFixture {
	return &ClientFixture{fake: NewFakeClient()}
}

// Fake returns the underlying FakeClient for custom configuration.
func (f *ClientFixture) Fake() *FakeClient {
	return f.fake
}

// FreshInstall returns a fake with no pre-existing resources, as seen on a
// first install into an empty subscription.
func (f *ClientFixture) FreshInstall() *FakeClient {
	return f.fake
}

// ExistingInstall seeds every resource a completed install leaves behind,
// named the way the given config names them. A pipeline run against it
// should reuse everything.
func (f *ClientFixture) ExistingInstall(cfg *config.Config) *FakeClient {
	f.fake.SeedResourceGroup(cfg.ResourceGroup, cfg.Location)
	f.fake.SeedCluster(cfg.ResourceGroup, cfg.ClusterName)
	f.fake.SeedAgentPool(cfg.ResourceGroup, cfg.ClusterName, config.WorkspacesPoolName)
	f.fake.SeedRegistry(cfg.ResourceGroup, cfg.RegistryName)
	f.fake.SeedDatabaseServer(cfg.ResourceGroup, naming.DatabaseServer(cfg.ClusterName))
	f.fake.SeedStorageAccount(cfg.ResourceGroup, naming.StorageAccount(cfg.ClusterName))
	if cfg.SetupManagedDNS {
		f.fake.SeedDNSZone(cfg.ResourceGroup, cfg.Domain)
	}
	return f.fake
}

// WithClusterError configures the fake to fail on cluster creation.
func (f *ClientFixture) WithClusterError(err error) *FakeClient {
	f.fake.FailOn[OpCreate+" "+KindCluster] = err
	return f.fake
}

// WithRegistryLookupError configures the fake to fail the registry
// existence check with a non-404 error.
func (f *ClientFixture) WithRegistryLookupError(err error) *FakeClient {
	f.fake.FailOn[OpGet+" "+KindRegistry] = err
	return f.fake
}
