package issuer

import (
	"context"
	"fmt"
	"time"

	"helm.sh/helm/v3/pkg/release"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/helm"
	"github.com/strandhq/strand-azure/internal/k8s"
	"github.com/strandhq/strand-azure/internal/provisioning"
)

const phase = "issuer"

// ChartInstaller is the slice of the Helm client this phase needs.
type ChartInstaller interface {
	InstallOrUpgrade(ctx context.Context, releaseName string, spec helm.ChartSpec, values helm.Values) (*release.Release, error)
}

// Provisioner installs cert-manager and the cluster issuer. The factory
// fields exist so tests can substitute fakes; production uses the defaults.
type Provisioner struct {
	newInstaller func(kubeconfig []byte, namespace string, timeout time.Duration) (ChartInstaller, error)
	newCluster   func(kubeconfig []byte) (k8s.Client, error)
}

// NewProvisioner creates an issuer provisioner backed by the real Helm and
// cluster clients.
func NewProvisioner() *Provisioner {
	return &Provisioner{
		newInstaller: func(kubeconfig []byte, namespace string, timeout time.Duration) (ChartInstaller, error) {
			return helm.NewClient(kubeconfig, namespace, timeout)
		},
		newCluster: k8s.NewFromKubeconfig,
	}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. It requires the
// admin kubeconfig from the infrastructure phase: everything here is a
// cluster-object operation.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if len(ctx.State.Kubeconfig) == 0 {
		return fmt.Errorf("kubeconfig missing from state; infrastructure phase must run first")
	}

	if err := p.installCertManager(ctx); err != nil {
		return err
	}

	return p.applyClusterIssuer(ctx)
}

// installCertManager installs or upgrades the cert-manager chart and waits
// for its webhook, which must answer before any Certificate or
// ClusterIssuer can be admitted.
func (p *Provisioner) installCertManager(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[%s] Installing cert-manager...", phase)

	installer, err := p.newInstaller(ctx.State.Kubeconfig, config.CertManagerNamespace, ctx.Timeouts.ChartInstall)
	if err != nil {
		return fmt.Errorf("failed to create helm client: %w", err)
	}

	values := helm.Values{
		"installCRDs": true,
	}
	if _, err := installer.InstallOrUpgrade(ctx, config.CertManagerReleaseName, helm.CertManagerSpec(), values); err != nil {
		return fmt.Errorf("failed to install cert-manager: %w", err)
	}
	provisioning.LogResourceConfigured(ctx.Observer, phase, "chart", config.CertManagerReleaseName, "installed")

	cluster, err := p.newCluster(ctx.State.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster client: %w", err)
	}
	if err := cluster.WaitForDeployment(ctx, config.CertManagerNamespace, config.CertManagerWebhookDeploy, ctx.Timeouts.WebhookReady); err != nil {
		return fmt.Errorf("cert-manager webhook not ready: %w", err)
	}

	ctx.Observer.Printf("[%s] cert-manager ready", phase)
	return nil
}

// applyClusterIssuer submits the ACME cluster issuer. Server-side apply
// makes re-runs converge on the same object.
func (p *Provisioner) applyClusterIssuer(ctx *provisioning.Context) error {
	ctx.Observer.Printf("[%s] Applying cluster issuer %s...", phase, config.ClusterIssuerName)

	cluster, err := p.newCluster(ctx.State.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster client: %w", err)
	}

	obj := ClusterIssuer(ctx.Config)
	if err := cluster.ApplyObject(ctx, obj); err != nil {
		return fmt.Errorf("failed to apply cluster issuer: %w", err)
	}
	provisioning.LogResourceConfigured(ctx.Observer, phase, "cluster issuer", config.ClusterIssuerName, "applied")

	return nil
}
