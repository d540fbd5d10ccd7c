package testing

import (
	"github.com/strandhq/strand-azure/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			SubscriptionID:  "00000000-0000-0000-0000-000000000001",
			TenantID:        "00000000-0000-0000-0000-000000000002",
			ResourceGroup:   "strand-test",
			ClusterName:     "strand-test",
			Location:        "westeurope",
			RegistryName:    "strandtest",
			Domain:          "strand.example.com",
			Namespace:       config.DefaultNamespace,
			NodeVMSize:      config.DefaultNodeVMSize,
			PlatformVersion: config.DefaultPlatformVersion,
			ChartRepo:       config.DefaultChartRepo,
			IssuerEmail:     "certificates@strand.example.com",
			Timeouts:        config.DefaultTimeouts(),
		},
	}
}

// WithClusterName sets the cluster name.
func (b *ConfigBuilder) WithClusterName(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ClusterName = name
	return newBuilder
}

// WithResourceGroup sets the resource group name.
func (b *ConfigBuilder) WithResourceGroup(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ResourceGroup = name
	return newBuilder
}

// WithLocation sets the Azure region.
func (b *ConfigBuilder) WithLocation(location string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Location = location
	return newBuilder
}

// WithDomain sets the platform domain.
func (b *ConfigBuilder) WithDomain(domain string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Domain = domain
	return newBuilder
}

// WithRegistryName sets the container registry name.
func (b *ConfigBuilder) WithRegistryName(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.RegistryName = name
	return newBuilder
}

// WithManagedDNS toggles managed DNS zone provisioning.
func (b *ConfigBuilder) WithManagedDNS(enabled bool) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.SetupManagedDNS = enabled
	return newBuilder
}

// WithNamespace sets the target namespace.
func (b *ConfigBuilder) WithNamespace(namespace string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Namespace = namespace
	return newBuilder
}

// WithImagePullSecretFile sets the path to an external registry auth file.
func (b *ConfigBuilder) WithImagePullSecretFile(path string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ImagePullSecretFile = path
	return newBuilder
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg // copy
	return &cfg
}

// clone creates a copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	newCfg := b.cfg
	if b.cfg.Timeouts != nil {
		timeouts := *b.cfg.Timeouts
		newCfg.Timeouts = &timeouts
	}
	return &ConfigBuilder{cfg: newCfg}
}

// MinimalConfig returns a minimal valid config for simple tests.
func MinimalConfig() *config.Config {
	return NewConfigBuilder().Build()
}

// ManagedDNSConfig returns a config with the managed DNS zone enabled.
func ManagedDNSConfig() *config.Config {
	return NewConfigBuilder().WithManagedDNS(true).Build()
}
