package config

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	clusterNameRe  = regexp.MustCompile(`^[a-z]([a-z0-9-]{0,61}[a-z0-9])?$`)
	registryNameRe = regexp.MustCompile(`^[a-zA-Z0-9]{5,50}$`)
	locationRe     = regexp.MustCompile(`^[a-z0-9]+$`)
	domainLabelRe  = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)
)

// Validate checks the configuration and returns a detailed error on the
// first problem found. Required variables are checked in a fixed order so
// the reported variable is deterministic across runs.
func (c *Config) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{EnvSubscriptionID, c.SubscriptionID},
		{EnvTenantID, c.TenantID},
		{EnvResourceGroup, c.ResourceGroup},
		{EnvClusterName, c.ClusterName},
		{EnvDomain, c.Domain},
		{EnvLocation, c.Location},
		{EnvRegistryName, c.RegistryName},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.env)
		}
	}

	if !clusterNameRe.MatchString(c.ClusterName) {
		return fmt.Errorf("invalid %s %q: must be 1-63 lowercase alphanumeric characters or hyphens, starting with a letter",
			EnvClusterName, c.ClusterName)
	}

	if err := validateDomain(c.Domain); err != nil {
		return fmt.Errorf("invalid %s %q: %w", EnvDomain, c.Domain, err)
	}

	if !locationRe.MatchString(c.Location) {
		return fmt.Errorf("invalid %s %q: must be an Azure region name such as westeurope or eastus2",
			EnvLocation, c.Location)
	}

	if !registryNameRe.MatchString(c.RegistryName) {
		return fmt.Errorf("invalid %s %q: must be 5-50 alphanumeric characters",
			EnvRegistryName, c.RegistryName)
	}

	if c.IssuerEmail != "" && !strings.Contains(c.IssuerEmail, "@") {
		return fmt.Errorf("invalid %s %q: must be an email address", EnvIssuerEmail, c.IssuerEmail)
	}

	return nil
}

// validateDomain checks that the domain is a plausible DNS name with at
// least two labels. Workspace URLs are minted under it, so a bare host
// would produce unusable certificates.
func validateDomain(domain string) error {
	labels := strings.Split(strings.TrimSuffix(domain, "."), ".")
	if len(labels) < 2 {
		return fmt.Errorf("must contain at least two DNS labels")
	}
	for _, label := range labels {
		if !domainLabelRe.MatchString(label) {
			return fmt.Errorf("label %q is not a valid DNS label", label)
		}
	}
	return nil
}
