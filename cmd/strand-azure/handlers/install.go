// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework. Collaborators are
// created through factory function variables so tests can inject fakes.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/strandhq/strand-azure/internal/compose"
	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/helm"
	"github.com/strandhq/strand-azure/internal/k8s"
	"github.com/strandhq/strand-azure/internal/orchestration"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/propagation"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/ui/tui"
)

// Reconciler interface for testing - matches orchestration.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context, cfg *config.Config) (*provisioning.State, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig reads the installer configuration.
	loadConfig = config.Load

	// newAzureClient creates the resource manager for the subscription.
	newAzureClient = func(cfg *config.Config) (azure.ResourceManager, error) {
		return azure.NewRealClient(cfg.SubscriptionID, nil)
	}

	// newReconciler creates the provisioning reconciler.
	newReconciler = func(client azure.ResourceManager, observer provisioning.Observer) Reconciler {
		return orchestration.NewReconciler(client, observer)
	}

	// newCluster creates a cluster client from kubeconfig bytes.
	newCluster = k8s.NewFromKubeconfig

	// newRenderer creates the platform chart renderer.
	newRenderer = func(cfg *config.Config) compose.Renderer {
		return &helm.PlatformRenderer{
			Spec:      helm.PlatformSpec(cfg.ChartRepo, cfg.PlatformVersion),
			Namespace: cfg.Namespace,
		}
	}

	// materialize writes discovered credentials into cluster secrets.
	materialize = propagation.Materialize

	// runDashboard runs the install under the progress TUI.
	runDashboard = tui.RunInstall

	// stdoutIsTTY reports whether output goes to an interactive terminal.
	stdoutIsTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// InstallOptions carries the install command's flags.
type InstallOptions struct {
	EnvFile string
	NoTUI   bool
}

// Install provisions the full platform installation.
//
// The workflow:
//  1. Load and validate configuration; nothing runs with a broken config.
//  2. Reconcile Azure resources (infrastructure, issuer, services phases).
//  3. Write the generated credentials into cluster secrets.
//  4. Compose the installation document, render the platform chart, apply
//     the manifests, the certificate, and the admin role binding.
//  5. Restart the proxy so it serves the new configuration.
//
// Everything is idempotent; re-invocation after a failure resumes where
// the resources actually are.
func Install(ctx context.Context, opts InstallOptions) error {
	cfg, err := loadConfig(opts.EnvFile)
	if err != nil {
		return err
	}

	client, err := newAzureClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	if stdoutIsTTY() && !opts.NoTUI {
		if err := runDashboard(cfg.ClusterName, cfg.Domain, func(observer provisioning.Observer) error {
			return runInstall(ctx, cfg, client, observer)
		}); err != nil {
			return err
		}
		printInstallSummary(cfg)
		return nil
	}

	log.Printf("Installing %s (%s)", cfg.ClusterName, cfg.Domain)
	if err := runInstall(ctx, cfg, client, provisioning.NewConsoleObserver()); err != nil {
		return err
	}
	printInstallSummary(cfg)
	return nil
}

// runInstall executes the install steps against an established client,
// reporting progress through the observer.
func runInstall(ctx context.Context, cfg *config.Config, client azure.ResourceManager, observer provisioning.Observer) error {
	state, err := newReconciler(client, observer).Reconcile(ctx, cfg)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	cluster, err := newCluster(state.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster client: %w", err)
	}

	if err := runStep(observer, "propagation", func() error {
		return materialize(ctx, cfg, state, cluster, observer)
	}); err != nil {
		return fmt.Errorf("credential propagation failed: %w", err)
	}

	if err := runStep(observer, "deploy", func() error {
		return deployPlatform(ctx, cfg, state, cluster, observer)
	}); err != nil {
		return fmt.Errorf("platform deployment failed: %w", err)
	}

	if cfg.SetupManagedDNS && len(state.NameServers) > 0 {
		printNameServers(cfg, state.NameServers)
	}
	return nil
}

// runStep brackets a post-reconcile install step with the same phase
// events the pipeline emits, so the dashboard tracks it like any phase.
func runStep(observer provisioning.Observer, name string, fn func() error) error {
	start := time.Now()
	provisioning.LogPhaseStart(observer, name)
	if err := fn(); err != nil {
		provisioning.LogPhaseFailed(observer, name, err)
		return err
	}
	provisioning.LogPhaseComplete(observer, name, time.Since(start))
	return nil
}

// deployPlatform renders and applies the platform: manifests, the HTTPS
// certificate, cluster rights for the platform service account, then a
// proxy restart to pick everything up.
func deployPlatform(ctx context.Context, cfg *config.Config, state *provisioning.State, cluster k8s.Client, observer provisioning.Observer) error {
	doc, err := compose.Compose(cfg, state)
	if err != nil {
		return fmt.Errorf("failed to compose installation document: %w", err)
	}

	observer.Printf("[deploy] Rendering platform chart %s@%s...", cfg.ChartRepo, cfg.PlatformVersion)
	manifests, err := newRenderer(cfg).Render(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to render platform chart: %w", err)
	}

	observer.Printf("[deploy] Applying platform manifests...")
	if err := cluster.ApplyManifests(ctx, manifests); err != nil {
		return fmt.Errorf("failed to apply platform manifests: %w", err)
	}

	cert := k8s.Certificate(cfg.Namespace, config.CertificateName, config.CertificateSecretName,
		config.ClusterIssuerName, CertificateDNSNames(cfg))
	if err := cluster.ApplyObject(ctx, cert); err != nil {
		return fmt.Errorf("failed to apply certificate: %w", err)
	}

	binding := k8s.AdminRoleBinding(config.AdminRoleBindingName, cfg.Namespace, config.PlatformServiceAccount)
	if err := cluster.ApplyObject(ctx, binding); err != nil {
		return fmt.Errorf("failed to apply admin role binding: %w", err)
	}

	observer.Printf("[deploy] Restarting %s deployment...", config.ProxyDeployment)
	if err := cluster.RestartDeployment(ctx, cfg.Namespace, config.ProxyDeployment); err != nil {
		return fmt.Errorf("failed to restart proxy: %w", err)
	}

	return nil
}

// CertificateDNSNames returns the names the platform certificate covers:
// the domain itself, everything directly under it, and the workspace
// wildcard.
func CertificateDNSNames(cfg *config.Config) []string {
	return []string{
		cfg.Domain,
		"*." + cfg.Domain,
		"*." + config.WorkspaceSubdomain + "." + cfg.Domain,
	}
}

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	summaryKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// printInstallSummary outputs the completed installation's entry points.
func printInstallSummary(cfg *config.Config) {
	fmt.Println()
	fmt.Println(summaryTitleStyle.Render("Installation complete"))
	fmt.Printf("  %s https://%s\n", summaryKeyStyle.Render("platform: "), cfg.Domain)
	fmt.Printf("  %s %s\n", summaryKeyStyle.Render("registry: "), config.RegistryLoginServer(cfg.RegistryName))
	fmt.Printf("  %s %s\n", summaryKeyStyle.Render("namespace:"), cfg.Namespace)
	fmt.Println()
	fmt.Println("Certificates are issued once DNS resolves to the cluster's ingress IP.")
}

// printNameServers tells the operator where to point the domain's
// delegation. Without it the DNS-01 solver can never succeed.
func printNameServers(cfg *config.Config, nameServers []string) {
	fmt.Println()
	fmt.Printf("DNS zone %s created. Delegate the domain to:\n", cfg.Domain)
	for _, ns := range nameServers {
		fmt.Printf("  %s\n", strings.TrimSuffix(ns, "."))
	}
}
