package teardown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/k8s"
	"github.com/strandhq/strand-azure/internal/provisioning"
	testutil "github.com/strandhq/strand-azure/internal/testing"
)

// fakeUninstaller records release uninstalls.
type fakeUninstaller struct {
	releases []string
	err      error
}

func (f *fakeUninstaller) Uninstall(releaseName string) error {
	if f.err != nil {
		return f.err
	}
	f.releases = append(f.releases, releaseName)
	return nil
}

// newTestController wires the controller to the given fakes.
func newTestController(fake *testutil.FakeClient, cluster *testutil.FakeCluster, uninstaller *fakeUninstaller) *Controller {
	c := NewController(fake, provisioning.NewConsoleObserver())
	c.newCluster = func(_ []byte) (k8s.Client, error) { return cluster, nil }
	c.newUninstaller = func(_ []byte, _ string, _ time.Duration) (ReleaseUninstaller, error) {
		return uninstaller, nil
	}
	return c
}

// seedInstalledSecrets puts the secrets a completed install leaves behind
// into the fake cluster.
func seedInstalledSecrets(cluster *testutil.FakeCluster, namespace string) {
	for _, name := range []string{config.PullSecretName, config.RegistrySecretName} {
		cluster.SeedSecret(&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		})
	}
}

func TestRun_FullSequence(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	fake := testutil.NewClientFixture().ExistingInstall(cfg)
	cluster := testutil.NewFakeCluster()
	seedInstalledSecrets(cluster, cfg.Namespace)
	uninstaller := &fakeUninstaller{}

	err := newTestController(fake, cluster, uninstaller).Run(context.Background(), cfg)

	require.NoError(t, err)

	deletes := cluster.CallsOp(testutil.ClusterOpDeleteSecret)
	require.Len(t, deletes, 2)
	assert.Equal(t, config.PullSecretName, deletes[0].Name)
	assert.Equal(t, config.RegistrySecretName, deletes[1].Name)

	services := cluster.CallsOp(testutil.ClusterOpDeleteService)
	require.Len(t, services, 1)
	assert.Equal(t, config.ProxyService, services[0].Name)

	assert.Equal(t, []string{config.PlatformReleaseName}, uninstaller.releases)

	clusterDeletes := fake.CallsOp(testutil.OpDelete)
	require.Len(t, clusterDeletes, 1)
	assert.Equal(t, testutil.KindCluster, clusterDeletes[0].Kind)
	assert.Equal(t, cfg.ClusterName, clusterDeletes[0].Name)
}

func TestRun_AbsentSecretsAreNotDeleted(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	fake := testutil.NewClientFixture().ExistingInstall(cfg)
	cluster := testutil.NewFakeCluster()
	uninstaller := &fakeUninstaller{}

	err := newTestController(fake, cluster, uninstaller).Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Empty(t, cluster.CallsOp(testutil.ClusterOpDeleteSecret),
		"no secret delete may be issued for absent secrets")

	clusterDeletes := fake.CallsOp(testutil.OpDelete)
	require.Len(t, clusterDeletes, 1, "cluster delete must still be attempted")
	assert.Equal(t, testutil.KindCluster, clusterDeletes[0].Kind)
}

func TestRun_MissingClusterSkipsInClusterCleanup(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	fake := testutil.NewFakeClient() // no cluster seeded
	cluster := testutil.NewFakeCluster()
	uninstaller := &fakeUninstaller{}

	err := newTestController(fake, cluster, uninstaller).Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.Empty(t, cluster.Calls(), "no cluster objects may be touched without a cluster")
	assert.Empty(t, uninstaller.releases)

	clusterDeletes := fake.CallsOp(testutil.OpDelete)
	require.Len(t, clusterDeletes, 1, "cluster delete runs regardless; absence is success")
}

func TestRun_CleanupOrderBeforeClusterDelete(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	fake := testutil.NewClientFixture().ExistingInstall(cfg)
	cluster := testutil.NewFakeCluster()
	seedInstalledSecrets(cluster, cfg.Namespace)
	uninstaller := &fakeUninstaller{err: errors.New("release stuck")}

	err := newTestController(fake, cluster, uninstaller).Run(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to uninstall platform release")
	assert.Empty(t, fake.CallsOp(testutil.OpDelete),
		"cluster delete must not start while in-cluster cleanup is failing")
}

func TestRun_CredentialFetchFailureStopsRun(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	fake := testutil.NewClientFixture().ExistingInstall(cfg)
	fake.FailOn[testutil.OpCredentials+" "+testutil.KindCluster] = errors.New("503 unavailable")
	cluster := testutil.NewFakeCluster()

	err := newTestController(fake, cluster, &fakeUninstaller{}).Run(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get cluster credentials")
	assert.Empty(t, fake.CallsOp(testutil.OpDelete))
}
