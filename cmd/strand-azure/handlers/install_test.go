package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandhq/strand-azure/internal/compose"
	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/k8s"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	testutil "github.com/strandhq/strand-azure/internal/testing"
)

const testManifests = `apiVersion: v1
kind: ConfigMap
metadata:
  name: strand-config
  namespace: strand
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: server
  namespace: strand
`

// reconcilerStub returns a prepared state without touching anything.
type reconcilerStub struct {
	state *provisioning.State
	err   error
}

func (r *reconcilerStub) Reconcile(_ context.Context, _ *config.Config) (*provisioning.State, error) {
	return r.state, r.err
}

// installedState is the state a successful reconciliation produces.
func installedState() *provisioning.State {
	return &provisioning.State{
		Kubeconfig:         []byte(testutil.TestKubeconfig),
		KubeletPrincipalID: "11111111-2222-3333-4444-555555555555",
		RegistryCredentials: &azure.RegistryCredentials{
			LoginServer: "strandtest.azurecr.io",
			Username:    "strandtest",
			Password:    "registry-password",
		},
		DatabaseServerName: "strand-test-mysql",
		DatabaseHost:       "strand-test-mysql.mysql.database.azure.com",
		DatabasePassword:   "database-password",
		StorageAccountName: "strandteststorage",
		StorageAccountKey:  "storage-key",
	}
}

// stubInstall replaces every install collaborator with fakes and returns
// the fake cluster plus a cleanup function.
func stubInstall(t *testing.T, reconciler Reconciler) *testutil.FakeCluster {
	t.Helper()

	origLoad := loadConfig
	origClient := newAzureClient
	origReconciler := newReconciler
	origCluster := newCluster
	origRenderer := newRenderer
	origTTY := stdoutIsTTY
	t.Cleanup(func() {
		loadConfig = origLoad
		newAzureClient = origClient
		newReconciler = origReconciler
		newCluster = origCluster
		newRenderer = origRenderer
		stdoutIsTTY = origTTY
	})

	cluster := testutil.NewFakeCluster()
	loadConfig = func(_ string) (*config.Config, error) { return testutil.MinimalConfig(), nil }
	newAzureClient = func(_ *config.Config) (azure.ResourceManager, error) { return testutil.NewFakeClient(), nil }
	newReconciler = func(_ azure.ResourceManager, _ provisioning.Observer) Reconciler { return reconciler }
	newCluster = func(_ []byte) (k8s.Client, error) { return cluster, nil }
	newRenderer = func(_ *config.Config) compose.Renderer { return testutil.NewMockRenderer([]byte(testManifests)) }
	stdoutIsTTY = func() bool { return false }

	return cluster
}

func TestInstall_FullFlow(t *testing.T) {
	cluster := stubInstall(t, &reconcilerStub{state: installedState()})

	err := Install(context.Background(), InstallOptions{})

	require.NoError(t, err)

	calls := cluster.Calls()

	// Secrets first, then the rendered manifests, certificate, role
	// binding, and finally the proxy restart.
	upserts := cluster.CallsOp(testutil.ClusterOpUpsertSecret)
	require.Len(t, upserts, 3)
	assert.Equal(t, testutil.ClusterOpUpsertSecret, calls[0].Op, "credentials are written before any manifest")

	manifests := cluster.CallsOp(testutil.ClusterOpApplyManifests)
	require.Len(t, manifests, 2, "both manifest documents applied")
	assert.Equal(t, "ConfigMap", manifests[0].Kind)
	assert.Equal(t, "Deployment", manifests[1].Kind)

	applied := cluster.CallsOp(testutil.ClusterOpApplyObject)
	require.Len(t, applied, 2)
	assert.Equal(t, "Certificate", applied[0].Kind)
	assert.Equal(t, config.CertificateName, applied[0].Name)
	assert.Equal(t, "ClusterRoleBinding", applied[1].Kind)
	assert.Equal(t, config.AdminRoleBindingName, applied[1].Name)

	assert.Equal(t, testutil.ClusterOpRestart, calls[len(calls)-1].Op, "proxy restart is the final step")
	assert.Equal(t, config.ProxyDeployment, calls[len(calls)-1].Name)
}

func TestInstall_CertificateNames(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	names := CertificateDNSNames(cfg)
	assert.Equal(t, []string{
		"strand.example.com",
		"*.strand.example.com",
		"*.ws.strand.example.com",
	}, names)
}

func TestInstall_ReconcileFailureStopsRun(t *testing.T) {
	cluster := stubInstall(t, &reconcilerStub{err: errors.New("quota exceeded")})

	err := Install(context.Background(), InstallOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconciliation failed")
	assert.Empty(t, cluster.Calls(), "no cluster writes after a failed reconcile")
}

func TestInstall_ConfigFailureBeforeAnySideEffect(t *testing.T) {
	cluster := stubInstall(t, &reconcilerStub{state: installedState()})
	loadConfig = func(_ string) (*config.Config, error) {
		return nil, errors.New("missing required environment variable AZURE_SUBSCRIPTION_ID")
	}

	err := Install(context.Background(), InstallOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AZURE_SUBSCRIPTION_ID")
	assert.Empty(t, cluster.Calls())
}

func TestInstall_PropagationFailureSkipsDeploy(t *testing.T) {
	cluster := stubInstall(t, &reconcilerStub{state: installedState()})
	cluster.FailOn[testutil.ClusterOpUpsertSecret] = errors.New("connection refused")

	err := Install(context.Background(), InstallOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "credential propagation failed")
	assert.Empty(t, cluster.CallsOp(testutil.ClusterOpApplyManifests))
	assert.Empty(t, cluster.CallsOp(testutil.ClusterOpRestart))
}
