package services

import (
	"fmt"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/crypto/material"
	"github.com/strandhq/strand-azure/internal/platform/azure"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/util/naming"
)

// allowAzureRule is the firewall rule that opens the server to Azure-hosted
// services. The 0.0.0.0 range is the ARM convention for that, not a
// wildcard over the public internet.
const allowAzureRule = "allow-azure-services"

const databasePasswordLength = 32

// ProvisionDatabase ensures the MySQL Flexible Server, the platform database
// and the firewall rule that lets the cluster connect. A fresh admin password
// is generated on every run: it is set at create time and rotated onto an
// existing server, then handed to the credential propagator through state so
// the cluster secret always matches the server.
func (p *Provisioner) ProvisionDatabase(ctx *provisioning.Context) error {
	serverName := naming.DatabaseServer(ctx.Config.ClusterName)
	ctx.Observer.Printf("[%s] Reconciling MySQL server %s...", phase, serverName)

	password, err := material.Password(databasePasswordLength)
	if err != nil {
		return fmt.Errorf("failed to generate database password: %w", err)
	}

	server, err := ctx.Azure.EnsureDatabaseServer(ctx, azure.DatabaseServerOpts{
		Name:          serverName,
		ResourceGroup: ctx.Config.ResourceGroup,
		Location:      ctx.Config.Location,
		AdminUser:     config.DatabaseAdminUser,
		AdminPassword: password,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure MySQL server: %w", err)
	}

	if err := ctx.Azure.EnsureDatabase(ctx, ctx.Config.ResourceGroup, serverName, config.DatabaseName); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	provisioning.LogResourceConfigured(ctx.Observer, phase, "database", config.DatabaseName, "schema ensured on "+serverName)

	if err := ctx.Azure.EnsureFirewallRule(ctx, ctx.Config.ResourceGroup, serverName, allowAzureRule, "0.0.0.0", "0.0.0.0"); err != nil {
		return fmt.Errorf("failed to ensure firewall rule: %w", err)
	}
	provisioning.LogResourceConfigured(ctx.Observer, phase, "firewall rule", allowAzureRule, "azure services allowed")

	host := config.DatabaseHost(serverName)
	if server.Properties != nil && server.Properties.FullyQualifiedDomainName != nil {
		host = *server.Properties.FullyQualifiedDomainName
	}

	ctx.State.DatabaseServerName = serverName
	ctx.State.DatabaseHost = host
	ctx.State.DatabasePassword = password

	ctx.Observer.Printf("[%s] MySQL server %s ready at %s", phase, serverName, host)
	return nil
}
