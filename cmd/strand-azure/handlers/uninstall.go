package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/provisioning/teardown"
)

// Teardown interface for testing - matches teardown.Controller.
type Teardown interface {
	Run(ctx context.Context, cfg *config.Config) error
}

// Factory function variables for uninstall - can be replaced in tests.
var (
	// newTeardown creates the teardown controller.
	newTeardown = func(client azure.ResourceManager, observer provisioning.Observer) Teardown {
		return teardown.NewController(client, observer)
	}

	// confirmTeardown prompts for interactive confirmation.
	confirmTeardown = func(clusterName string) (bool, error) {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete installation %q?", clusterName)).
			Description("The AKS cluster and its workloads will be deleted.\nDatabase, storage account and DNS zone are retained.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		return confirmed, err
	}

	// stdinIsTTY reports whether a confirmation prompt can be shown.
	stdinIsTTY = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
)

// UninstallOptions carries the uninstall command's flags.
type UninstallOptions struct {
	EnvFile string
	Yes     bool
}

// Uninstall removes the installation after confirmation. A declined
// confirmation is a no-op success; a non-interactive invocation without
// --yes fails before any side effect.
func Uninstall(ctx context.Context, opts UninstallOptions) error {
	cfg, err := loadConfig(opts.EnvFile)
	if err != nil {
		return err
	}

	if !opts.Yes {
		if !stdinIsTTY() {
			return fmt.Errorf("no terminal available for confirmation; pass --yes to uninstall")
		}
		confirmed, err := confirmTeardown(cfg.ClusterName)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			log.Printf("Uninstall cancelled")
			return nil
		}
	}

	client, err := newAzureClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	if err := newTeardown(client, provisioning.NewConsoleObserver()).Run(ctx, cfg); err != nil {
		return fmt.Errorf("uninstall failed: %w", err)
	}

	log.Printf("Installation %s removed", cfg.ClusterName)
	return nil
}
