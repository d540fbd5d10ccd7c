package helm

import (
	"context"
	"fmt"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/release"
)

// Client runs Helm release operations against one cluster and namespace.
type Client struct {
	namespace    string
	actionConfig *action.Configuration
	timeout      time.Duration
}

// NewClient creates a Helm client from kubeconfig bytes. Release state is
// stored in secrets, the Helm default.
func NewClient(kubeconfig []byte, namespace string, timeout time.Duration) (*Client, error) {
	restGetter := NewInMemoryRESTClientGetter(kubeconfig, namespace)

	actionConfig := new(action.Configuration)
	// Helm debug output goes nowhere; the installer reports progress itself.
	if err := actionConfig.Init(restGetter, namespace, "secret", func(format string, v ...interface{}) {}); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	return &Client{
		namespace:    namespace,
		actionConfig: actionConfig,
		timeout:      timeout,
	}, nil
}

// InstallOrUpgrade installs the chart when the release does not exist yet
// and upgrades it when it does, so repeated runs converge instead of
// failing on "release already exists".
func (c *Client) InstallOrUpgrade(ctx context.Context, releaseName string, spec ChartSpec, values Values) (*release.Release, error) {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(releaseName); err != nil {
		return c.install(ctx, releaseName, spec, values)
	}
	return c.upgrade(ctx, releaseName, spec, values)
}

func (c *Client) install(ctx context.Context, releaseName string, spec ChartSpec, values Values) (*release.Release, error) {
	installClient := action.NewInstall(c.actionConfig)
	installClient.ReleaseName = releaseName
	installClient.Namespace = c.namespace
	installClient.CreateNamespace = true
	installClient.Version = spec.Version
	installClient.Wait = true
	installClient.Timeout = c.timeout

	loaded, err := DownloadChart(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	return installClient.RunWithContext(ctx, loaded, values.ToMap())
}

func (c *Client) upgrade(ctx context.Context, releaseName string, spec ChartSpec, values Values) (*release.Release, error) {
	upgradeClient := action.NewUpgrade(c.actionConfig)
	upgradeClient.Namespace = c.namespace
	upgradeClient.Version = spec.Version
	upgradeClient.Wait = true
	upgradeClient.Timeout = c.timeout
	upgradeClient.ReuseValues = false

	loaded, err := DownloadChart(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	return upgradeClient.RunWithContext(ctx, releaseName, loaded, values.ToMap())
}

// Uninstall removes a Helm release. An unknown release is not an error;
// teardown treats absence as already done.
func (c *Client) Uninstall(releaseName string) error {
	exists, err := c.ReleaseExists(releaseName)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	uninstallClient := action.NewUninstall(c.actionConfig)
	uninstallClient.Wait = true
	uninstallClient.Timeout = c.timeout

	if _, err := uninstallClient.Run(releaseName); err != nil {
		return fmt.Errorf("failed to uninstall release %s: %w", releaseName, err)
	}
	return nil
}

// ReleaseExists checks if a release has any history.
func (c *Client) ReleaseExists(releaseName string) (bool, error) {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(releaseName); err != nil {
		return false, nil
	}
	return true, nil
}
