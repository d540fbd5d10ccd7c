package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/strandhq/strand-azure/internal/config"
)

// providersKey is the data key the platform reads the provider
// configuration from.
const providersKey = "providers.yaml"

// AuthUpdate replaces the auth provider configuration of a running
// installation: the file content goes into the auth-providers secret and
// the server deployment is restarted to load it.
func AuthUpdate(ctx context.Context, envFile, providersFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(providersFile)
	if err != nil {
		return fmt.Errorf("failed to read providers file: %w", err)
	}

	client, err := newAzureClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	kubeconfig, err := client.AdminKubeconfig(ctx, cfg.ResourceGroup, cfg.ClusterName)
	if err != nil {
		return fmt.Errorf("failed to get cluster credentials: %w", err)
	}

	cluster, err := newCluster(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create cluster client: %w", err)
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      config.AuthProvidersSecretName,
			Namespace: cfg.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			providersKey: content,
		},
	}
	if err := cluster.UpsertSecret(ctx, secret); err != nil {
		return fmt.Errorf("failed to update auth providers secret: %w", err)
	}

	log.Printf("Restarting %s deployment...", config.ServerDeployment)
	if err := cluster.RestartDeployment(ctx, cfg.Namespace, config.ServerDeployment); err != nil {
		return fmt.Errorf("failed to restart server: %w", err)
	}

	log.Printf("Auth providers updated")
	return nil
}
