package config

import "fmt"

// Config holds the validated installer configuration.
//
// All fields come from the environment (see Load). The struct is populated
// once and never mutated afterwards; discovered runtime values live in
// provisioning state, not here.
type Config struct {
	// Azure identity.
	SubscriptionID string
	TenantID       string

	// Resource addressing.
	ResourceGroup string
	ClusterName   string
	Location      string
	RegistryName  string

	// Platform identity.
	Domain    string
	Namespace string

	// Feature toggles and tuning.
	SetupManagedDNS     bool
	NodeVMSize          string
	PlatformVersion     string
	ChartRepo           string
	ImagePullSecretFile string
	IssuerEmail         string

	Timeouts *Timeouts
}

// WorkspaceDomain returns the wildcard base for workspace URLs,
// e.g. "ws.strand.example.com" for domain "strand.example.com".
func (c *Config) WorkspaceDomain() string {
	return fmt.Sprintf("%s.%s", WorkspaceSubdomain, c.Domain)
}

// DatabaseHost returns the fully qualified host of the MySQL Flexible
// Server for a given server name.
func DatabaseHost(serverName string) string {
	return fmt.Sprintf("%s.mysql.database.azure.com", serverName)
}

// RegistryLoginServer returns the login server of the container registry.
func RegistryLoginServer(registryName string) string {
	return fmt.Sprintf("%s.azurecr.io", registryName)
}

// BlobEndpoint returns the public blob endpoint of a storage account.
func BlobEndpoint(accountName string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net", accountName)
}
