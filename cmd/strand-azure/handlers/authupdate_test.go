package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/k8s"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	testutil "github.com/strandhq/strand-azure/internal/testing"
)

// stubAuthUpdate replaces the auth-update collaborators and returns the
// fake cluster.
func stubAuthUpdate(t *testing.T) *testutil.FakeCluster {
	t.Helper()

	origLoad := loadConfig
	origClient := newAzureClient
	origCluster := newCluster
	t.Cleanup(func() {
		loadConfig = origLoad
		newAzureClient = origClient
		newCluster = origCluster
	})

	cfg := testutil.MinimalConfig()
	fake := testutil.NewFakeClient()
	fake.SeedCluster(cfg.ResourceGroup, cfg.ClusterName)
	cluster := testutil.NewFakeCluster()

	loadConfig = func(_ string) (*config.Config, error) { return cfg, nil }
	newAzureClient = func(_ *config.Config) (azure.ResourceManager, error) { return fake, nil }
	newCluster = func(_ []byte) (k8s.Client, error) { return cluster, nil }

	return cluster
}

func TestAuthUpdate_WritesSecretAndRestartsServer(t *testing.T) {
	cluster := stubAuthUpdate(t)

	providersFile := filepath.Join(t.TempDir(), "providers.yaml")
	content := []byte("providers:\n  - type: oidc\n    issuer: https://login.example.com\n")
	require.NoError(t, os.WriteFile(providersFile, content, 0o600))

	err := AuthUpdate(context.Background(), "", providersFile)

	require.NoError(t, err)

	cfg := testutil.MinimalConfig()
	secret := cluster.StoredSecret(cfg.Namespace, config.AuthProvidersSecretName)
	require.NotNil(t, secret)
	assert.Equal(t, content, secret.Data[providersKey])

	restarts := cluster.CallsOp(testutil.ClusterOpRestart)
	require.Len(t, restarts, 1)
	assert.Equal(t, config.ServerDeployment, restarts[0].Name)
}

func TestAuthUpdate_MissingFileFailsBeforeClusterAccess(t *testing.T) {
	cluster := stubAuthUpdate(t)

	err := AuthUpdate(context.Background(), "", "/nonexistent/providers.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read providers file")
	assert.Empty(t, cluster.Calls())
}
