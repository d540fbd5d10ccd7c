package teardown

import (
	"context"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/helm"
	"github.com/strandhq/strand-azure/internal/k8s"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/util/naming"
)

const phase = "teardown"

// ReleaseUninstaller is the slice of the Helm client teardown needs.
type ReleaseUninstaller interface {
	Uninstall(releaseName string) error
}

// Controller removes an installation. Confirmation is the caller's job;
// once Run is invoked the sequence executes without further prompts.
type Controller struct {
	azure    azure.ResourceManager
	observer provisioning.Observer

	newCluster     func(kubeconfig []byte) (k8s.Client, error)
	newUninstaller func(kubeconfig []byte, namespace string, timeout time.Duration) (ReleaseUninstaller, error)
}

// NewController creates a teardown controller backed by the real cluster
// and Helm clients.
func NewController(client azure.ResourceManager, observer provisioning.Observer) *Controller {
	if observer == nil {
		observer = provisioning.NewConsoleObserver()
	}
	return &Controller{
		azure:    client,
		observer: observer,
		newCluster: k8s.NewFromKubeconfig,
		newUninstaller: func(kubeconfig []byte, namespace string, timeout time.Duration) (ReleaseUninstaller, error) {
			return helm.NewClient(kubeconfig, namespace, timeout)
		},
	}
}

// Run executes the teardown sequence: in-cluster cleanup first (secrets,
// proxy service, platform release), then cluster deletion. Every step
// treats absence as already done.
func (c *Controller) Run(ctx context.Context, cfg *config.Config) error {
	c.observer.Printf("[%s] Tearing down installation %s...", phase, cfg.ClusterName)

	if err := c.cleanupClusterObjects(ctx, cfg); err != nil {
		return err
	}

	if err := c.deleteCluster(ctx, cfg); err != nil {
		return err
	}

	c.printRetained(cfg)
	return nil
}

// cleanupClusterObjects removes the objects that would otherwise leak cloud
// resources past cluster deletion: the proxy service holds a load balancer
// and public IP, the platform release holds persistent volumes. A missing
// cluster means there is nothing to clean up.
func (c *Controller) cleanupClusterObjects(ctx context.Context, cfg *config.Config) error {
	kubeconfig, err := c.azure.AdminKubeconfig(ctx, cfg.ResourceGroup, cfg.ClusterName)
	if err != nil {
		if azure.IsNotFound(err) {
			c.observer.Printf("[%s] Cluster %s not found, skipping in-cluster cleanup", phase, cfg.ClusterName)
			return nil
		}
		return fmt.Errorf("failed to get cluster credentials: %w", err)
	}

	cluster, err := c.newCluster(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster client: %w", err)
	}

	for _, name := range []string{config.PullSecretName, config.RegistrySecretName} {
		if err := c.deleteSecretIfPresent(ctx, cfg, cluster, name); err != nil {
			return err
		}
	}

	provisioning.LogResourceDeleting(c.observer, phase, "service", config.ProxyService)
	if err := cluster.DeleteService(ctx, cfg.Namespace, config.ProxyService); err != nil {
		return fmt.Errorf("failed to delete proxy service: %w", err)
	}
	provisioning.LogResourceDeleted(c.observer, phase, "service", config.ProxyService)

	uninstaller, err := c.newUninstaller(kubeconfig, cfg.Namespace, cfg.Timeouts.ChartInstall)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}
	provisioning.LogResourceDeleting(c.observer, phase, "release", config.PlatformReleaseName)
	if err := uninstaller.Uninstall(config.PlatformReleaseName); err != nil {
		return fmt.Errorf("failed to uninstall platform release: %w", err)
	}
	provisioning.LogResourceDeleted(c.observer, phase, "release", config.PlatformReleaseName)

	return nil
}

// deleteSecretIfPresent deletes a secret only after confirming it exists,
// so the call trace of a teardown against a bare cluster stays empty.
func (c *Controller) deleteSecretIfPresent(ctx context.Context, cfg *config.Config, cluster k8s.Client, name string) error {
	if _, err := cluster.Secret(ctx, cfg.Namespace, name); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to check secret %s: %w", name, err)
	}

	provisioning.LogResourceDeleting(c.observer, phase, "secret", name)
	if err := cluster.DeleteSecret(ctx, cfg.Namespace, name); err != nil {
		return fmt.Errorf("failed to delete secret %s: %w", name, err)
	}
	provisioning.LogResourceDeleted(c.observer, phase, "secret", name)
	return nil
}

// deleteCluster removes the AKS cluster and blocks until deletion
// completes. Absence counts as success.
func (c *Controller) deleteCluster(ctx context.Context, cfg *config.Config) error {
	provisioning.LogResourceDeleting(c.observer, phase, "cluster", cfg.ClusterName)
	if err := c.azure.DeleteCluster(ctx, cfg.ResourceGroup, cfg.ClusterName); err != nil {
		return fmt.Errorf("failed to delete cluster: %w", err)
	}
	provisioning.LogResourceDeleted(c.observer, phase, "cluster", cfg.ClusterName)
	return nil
}

// printRetained lists the stateful resources teardown leaves in place.
func (c *Controller) printRetained(cfg *config.Config) {
	c.observer.Printf("[%s] The following resources were retained and must be removed manually:", phase)
	c.observer.Printf("[%s]   resource group:  %s", phase, cfg.ResourceGroup)
	c.observer.Printf("[%s]   database server: %s", phase, naming.DatabaseServer(cfg.ClusterName))
	c.observer.Printf("[%s]   storage account: %s", phase, naming.StorageAccount(cfg.ClusterName))
	if cfg.SetupManagedDNS {
		c.observer.Printf("[%s]   dns zone:        %s", phase, cfg.Domain)
	}
}
