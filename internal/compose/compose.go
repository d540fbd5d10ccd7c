package compose

import (
	"context"
	"fmt"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/provisioning"
)

// Renderer turns a document into Kubernetes manifests. The production
// implementation lives in internal/helm and renders the platform chart.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Compose builds the installation document for a deployment. Assignments are
// applied in a fixed order on top of the embedded default, so two runs with
// the same config and state produce byte-identical documents. All three
// backing services point at the externally provisioned resources; none run
// in-cluster.
func Compose(cfg *config.Config, state *provisioning.State) (Document, error) {
	doc, err := DefaultDocument()
	if err != nil {
		return Document{}, err
	}

	// 1. Installation identity.
	doc.Domain = cfg.Domain
	doc.Metadata.Region = cfg.Location

	// 2. TLS certificate, issued into the well-known secret.
	doc.Certificate = ObjectRef{Kind: "secret", Name: config.CertificateSecretName}

	// 3. Container registry.
	doc.ContainerRegistry.InCluster = false
	doc.ContainerRegistry.External = &RegistryExternal{
		URL:         registryURL(cfg, state),
		Certificate: ObjectRef{Kind: "secret", Name: config.RegistrySecretName},
	}

	// 4. Database.
	doc.Database.InCluster = false
	doc.Database.External = &DatabaseExternal{
		Certificate: ObjectRef{Kind: "secret", Name: config.DatabaseSecretName},
	}

	// 5. Object storage.
	doc.ObjectStorage.InCluster = false
	doc.ObjectStorage.Azure = &AzureStorage{
		Credentials: ObjectRef{Kind: "secret", Name: config.StorageSecretName},
	}

	if doc.Domain == "" {
		return Document{}, fmt.Errorf("document has no domain")
	}
	return doc, nil
}

// registryURL prefers the login server reported by the registry itself and
// falls back to the name-derived form when credentials were not fetched.
func registryURL(cfg *config.Config, state *provisioning.State) string {
	if state != nil && state.RegistryCredentials != nil && state.RegistryCredentials.LoginServer != "" {
		return state.RegistryCredentials.LoginServer
	}
	return config.RegistryLoginServer(cfg.RegistryName)
}
