package config

// Environment variable names recognized by Load. Exposed as constants so
// validation errors and tests refer to the exact spelling users set.
const (
	EnvSubscriptionID      = "AZURE_SUBSCRIPTION_ID"
	EnvTenantID            = "AZURE_TENANT_ID"
	EnvResourceGroup       = "RESOURCE_GROUP"
	EnvClusterName         = "CLUSTER_NAME"
	EnvDomain              = "DOMAIN"
	EnvLocation            = "LOCATION"
	EnvRegistryName        = "REGISTRY_NAME"
	EnvSetupManagedDNS     = "SETUP_MANAGED_DNS"
	EnvNodeVMSize          = "NODE_VM_SIZE"
	EnvPlatformVersion     = "PLATFORM_VERSION"
	EnvNamespace           = "NAMESPACE"
	EnvImagePullSecretFile = "IMAGE_PULL_SECRET_FILE"
	EnvIssuerEmail         = "ISSUER_EMAIL"
	EnvChartRepo           = "PLATFORM_CHART_REPO"
)

// Defaults applied when the optional variables are unset.
const (
	DefaultNamespace       = "strand"
	DefaultNodeVMSize      = "Standard_D4s_v3"
	DefaultPlatformVersion = "2026.8.0"
	DefaultChartRepo       = "https://charts.strand.dev"
)

// Names of the Kubernetes objects the installer owns. Stable names are what
// make repeated installs replace instead of accumulate.
const (
	RegistrySecretName      = "strand-registry"
	DatabaseSecretName      = "strand-database"
	StorageSecretName       = "strand-storage"
	PullSecretName          = "strand-pull-secret"
	AuthProvidersSecretName = "strand-auth-providers"

	CertificateName       = "https-certificates"
	CertificateSecretName = "https-certificates"

	ClusterIssuerName        = "strand-issuer"
	PlatformServiceAccount   = "strand"
	AdminRoleBindingName     = "strand-admin"
	CertManagerReleaseName   = "cert-manager"
	CertManagerNamespace     = "cert-manager"
	CertManagerWebhookDeploy = "cert-manager-webhook"

	ProxyDeployment  = "proxy"
	ServerDeployment = "server"
	ProxyService     = "proxy"

	PlatformReleaseName = "strand"
)

// Workspace subdomain: workspaces are served under *.ws.{domain}.
const WorkspaceSubdomain = "ws"

// Node pool names. The system pool runs platform services, the workspaces
// pool is dedicated to user workspaces.
const (
	SystemPoolName     = "services"
	WorkspacesPoolName = "workspaces"
)

// Node pool sizing and the Linux profile admin user for new clusters.
const (
	SystemNodeCount     = 1
	WorkspacesNodeCount = 2
	ClusterAdminUser    = "azureuser"
)

// Database settings for the MySQL Flexible Server.
const (
	DatabaseAdminUser = "strand"
	DatabaseName      = "strand"
	DatabasePort      = 3306
)
