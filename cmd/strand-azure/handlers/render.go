package handlers

import (
	"context"
	"fmt"

	"github.com/strandhq/strand-azure/internal/compose"
	"github.com/strandhq/strand-azure/internal/provisioning"
)

// Render composes the installation document from configuration alone and
// prints it as YAML. No resource is contacted: discovered values fall back
// to their name-derived forms, which is what a fresh install would use.
func Render(_ context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	doc, err := compose.Compose(cfg, provisioning.NewState())
	if err != nil {
		return fmt.Errorf("failed to compose installation document: %w", err)
	}

	out, err := doc.ToYAML()
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	fmt.Print(string(out))
	return nil
}
