package propagation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/crypto/material"
	"github.com/strandhq/strand-azure/internal/k8s"
	"github.com/strandhq/strand-azure/internal/provisioning"
)

const phase = "propagation"

// Materialize writes one secret per credentialed resource into the target
// namespace: registry pull credentials, database connection settings,
// storage account access, and the optional external pull secret. Every
// write replaces any previous value except the database encryption keyring,
// which is reused verbatim when present.
func Materialize(ctx context.Context, cfg *config.Config, state *provisioning.State, cluster k8s.Client, observer provisioning.Observer) error {
	if observer == nil {
		observer = provisioning.NewConsoleObserver()
	}

	if err := registrySecret(ctx, cfg, state, cluster, observer); err != nil {
		return err
	}
	if err := databaseSecret(ctx, cfg, state, cluster, observer); err != nil {
		return err
	}
	if err := storageSecret(ctx, cfg, state, cluster, observer); err != nil {
		return err
	}
	return pullSecret(ctx, cfg, cluster, observer)
}

// registrySecret writes the in-cluster pull credentials for the platform's
// own container registry.
func registrySecret(ctx context.Context, cfg *config.Config, state *provisioning.State, cluster k8s.Client, observer provisioning.Observer) error {
	creds := state.RegistryCredentials
	if creds == nil {
		return fmt.Errorf("registry credentials missing from state; services phase must run first")
	}

	dockerConfig, err := dockerConfigJSON(creds.LoginServer, creds.Username, creds.Password)
	if err != nil {
		return fmt.Errorf("failed to build registry docker config: %w", err)
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      config.RegistrySecretName,
			Namespace: cfg.Namespace,
		},
		Type: corev1.SecretTypeDockerConfigJson,
		Data: map[string][]byte{
			corev1.DockerConfigJsonKey: dockerConfig,
		},
	}
	if err := cluster.UpsertSecret(ctx, secret); err != nil {
		return fmt.Errorf("failed to write registry secret: %w", err)
	}
	provisioning.LogResourceConfigured(observer, phase, "secret", config.RegistrySecretName, "registry credentials written")
	return nil
}

// databaseSecret writes the connection settings plus the at-rest encryption
// keyring. The keyring is generated exactly once per installation: an
// existing value is carried forward untouched, even while the password
// around it rotates.
func databaseSecret(ctx context.Context, cfg *config.Config, state *provisioning.State, cluster k8s.Client, observer provisioning.Observer) error {
	if state.DatabaseHost == "" || state.DatabasePassword == "" {
		return fmt.Errorf("database credentials missing from state; services phase must run first")
	}

	keyring, err := encryptionKeyring(ctx, cfg, cluster, observer)
	if err != nil {
		return err
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      config.DatabaseSecretName,
			Namespace: cfg.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			"host":           []byte(state.DatabaseHost),
			"port":           []byte(strconv.Itoa(config.DatabasePort)),
			"username":       []byte(config.DatabaseAdminUser),
			"password":       []byte(state.DatabasePassword),
			"encryptionKeys": keyring,
		},
	}
	if err := cluster.UpsertSecret(ctx, secret); err != nil {
		return fmt.Errorf("failed to write database secret: %w", err)
	}
	provisioning.LogResourceConfigured(observer, phase, "secret", config.DatabaseSecretName, "database credentials written")
	return nil
}

// encryptionKeyring returns the keyring to store: the existing one when the
// database secret already carries it, a fresh single-entry ring otherwise.
func encryptionKeyring(ctx context.Context, cfg *config.Config, cluster k8s.Client, observer provisioning.Observer) ([]byte, error) {
	existing, err := cluster.Secret(ctx, cfg.Namespace, config.DatabaseSecretName)
	switch {
	case err == nil:
		if keyring := existing.Data["encryptionKeys"]; len(keyring) > 0 {
			if _, parseErr := material.ParseKeyring(keyring); parseErr != nil {
				return nil, fmt.Errorf("existing encryption keyring is unreadable, refusing to overwrite it: %w", parseErr)
			}
			observer.Printf("[%s] Reusing existing encryption keyring", phase)
			return keyring, nil
		}
	case !apierrors.IsNotFound(err):
		return nil, fmt.Errorf("failed to check for existing database secret: %w", err)
	}

	keyring, err := material.NewKeyring()
	if err != nil {
		return nil, fmt.Errorf("failed to generate encryption keyring: %w", err)
	}
	observer.Printf("[%s] Generated new encryption keyring", phase)
	return keyring, nil
}

// storageSecret writes the blob storage account access credentials.
func storageSecret(ctx context.Context, cfg *config.Config, state *provisioning.State, cluster k8s.Client, observer provisioning.Observer) error {
	if state.StorageAccountName == "" || state.StorageAccountKey == "" {
		return fmt.Errorf("storage credentials missing from state; services phase must run first")
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      config.StorageSecretName,
			Namespace: cfg.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			"accountName": []byte(state.StorageAccountName),
			"accountKey":  []byte(state.StorageAccountKey),
		},
	}
	if err := cluster.UpsertSecret(ctx, secret); err != nil {
		return fmt.Errorf("failed to write storage secret: %w", err)
	}
	provisioning.LogResourceConfigured(observer, phase, "secret", config.StorageSecretName, "storage credentials written")
	return nil
}

// pullSecret writes the external registry auth file as an image pull
// secret. Skipped entirely when no file is configured.
func pullSecret(ctx context.Context, cfg *config.Config, cluster k8s.Client, observer provisioning.Observer) error {
	if cfg.ImagePullSecretFile == "" {
		return nil
	}

	content, err := os.ReadFile(cfg.ImagePullSecretFile)
	if err != nil {
		return fmt.Errorf("failed to read image pull secret file: %w", err)
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      config.PullSecretName,
			Namespace: cfg.Namespace,
		},
		Type: corev1.SecretTypeDockerConfigJson,
		Data: map[string][]byte{
			corev1.DockerConfigJsonKey: content,
		},
	}
	if err := cluster.UpsertSecret(ctx, secret); err != nil {
		return fmt.Errorf("failed to write image pull secret: %w", err)
	}
	provisioning.LogResourceConfigured(observer, phase, "secret", config.PullSecretName, "image pull secret written")
	return nil
}

// dockerConfigJSON builds the auth document kubelet reads from
// dockerconfigjson secrets.
func dockerConfigJSON(server, username, password string) ([]byte, error) {
	auth := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	doc := map[string]any{
		"auths": map[string]any{
			server: map[string]string{
				"username": username,
				"password": password,
				"auth":     auth,
			},
		},
	}
	return json.Marshal(doc)
}
