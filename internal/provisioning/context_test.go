package provisioning_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/provisioning"
	testutil "github.com/strandhq/strand-azure/internal/testing"
)

func TestNewState(t *testing.T) {
	t.Parallel()
	state := provisioning.NewState()

	require.NotNil(t, state)
	assert.Empty(t, state.Kubeconfig)
	assert.Empty(t, state.KubeletPrincipalID)
	assert.Nil(t, state.RegistryCredentials)
	assert.Empty(t, state.DatabasePassword)
	assert.Empty(t, state.StorageAccountName)
	assert.Nil(t, state.NameServers)
}

func TestNewContext(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	fake := testutil.NewFakeClient()

	ctx := provisioning.NewContext(context.Background(), cfg, fake, nil)

	require.NotNil(t, ctx)
	assert.Equal(t, cfg, ctx.Config)
	assert.Equal(t, fake, ctx.Azure)
	assert.NotNil(t, ctx.State)
	assert.NotNil(t, ctx.Observer)
	assert.NotNil(t, ctx.Timeouts)
}

func TestNewContext_KeepsCustomObserver(t *testing.T) {
	t.Parallel()
	observer := provisioning.NewMockObserver()

	ctx := provisioning.NewContext(context.Background(), testutil.MinimalConfig(), testutil.NewFakeClient(), observer)

	assert.Equal(t, provisioning.Observer(observer), ctx.Observer)
}

func TestNewContext_TimeoutsFromConfig(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	cfg.Timeouts = &config.Timeouts{ClusterCreate: 7 * time.Minute}

	ctx := provisioning.NewContext(context.Background(), cfg, testutil.NewFakeClient(), nil)

	assert.Equal(t, 7*time.Minute, ctx.Timeouts.ClusterCreate)
}

func TestNewContext_DefaultTimeoutsWhenUnset(t *testing.T) {
	t.Parallel()
	cfg := testutil.MinimalConfig()
	cfg.Timeouts = nil

	ctx := provisioning.NewContext(context.Background(), cfg, testutil.NewFakeClient(), nil)

	require.NotNil(t, ctx.Timeouts)
	assert.Equal(t, config.DefaultTimeouts().ClusterCreate, ctx.Timeouts.ClusterCreate)
}
