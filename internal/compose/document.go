package compose

import (
	_ "embed"
	"fmt"

	"sigs.k8s.io/yaml"
)

//go:embed config.yaml
var defaultDocument []byte

// Document mirrors the platform installation config. Field order follows the
// serialized document; sigs.k8s.io/yaml marshals through the json tags.
type Document struct {
	APIVersion string   `json:"apiVersion"`
	Kind       string   `json:"kind"`
	Domain     string   `json:"domain"`
	Metadata   Metadata `json:"metadata"`

	Certificate       ObjectRef         `json:"certificate"`
	ContainerRegistry ContainerRegistry `json:"containerRegistry"`
	Database          Database          `json:"database"`
	ObjectStorage     ObjectStorage     `json:"objectStorage"`
	Workspace         Workspace         `json:"workspace"`
}

// Metadata carries installation-wide metadata.
type Metadata struct {
	Region string `json:"region"`
}

// ObjectRef points at a named Kubernetes object, normally a secret.
type ObjectRef struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// ContainerRegistry configures where workspace images live.
type ContainerRegistry struct {
	InCluster bool              `json:"inCluster"`
	External  *RegistryExternal `json:"external,omitempty"`
}

// RegistryExternal references an external registry and its credential secret.
type RegistryExternal struct {
	URL         string    `json:"url"`
	Certificate ObjectRef `json:"certificate"`
}

// Database configures the platform database connection.
type Database struct {
	InCluster bool              `json:"inCluster"`
	External  *DatabaseExternal `json:"external,omitempty"`
}

// DatabaseExternal references the credential secret of an external database.
type DatabaseExternal struct {
	Certificate ObjectRef `json:"certificate"`
}

// ObjectStorage configures workspace content storage.
type ObjectStorage struct {
	InCluster bool          `json:"inCluster"`
	Azure     *AzureStorage `json:"azure,omitempty"`
}

// AzureStorage references the credential secret of a storage account.
type AzureStorage struct {
	Credentials ObjectRef `json:"credentials"`
}

// Workspace carries workspace runtime settings.
type Workspace struct {
	Runtime Runtime `json:"runtime"`
}

// Runtime locates the containerd runtime directory on workspace nodes.
type Runtime struct {
	ContainerdRuntimeDir string `json:"containerdRuntimeDir"`
}

// DefaultDocument returns the embedded default document. Everything
// deployment-specific is left empty for Compose to fill in.
func DefaultDocument() (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(defaultDocument, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse embedded document: %w", err)
	}
	return doc, nil
}

// ToYAML serializes the document.
func (d Document) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return out, nil
}

// ToValues converts the document into a generic map for chart rendering.
func (d Document) ToValues() (map[string]any, error) {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to convert document to values: %w", err)
	}
	return values, nil
}
