package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/mysql/armmysqlflexibleservers"
)

// EnsureDatabaseServer ensures that a MySQL Flexible Server exists. The
// admin password in opts is always applied: it is set at create time and
// rotated onto an existing server via update. Rotation is the one
// deliberately non-convergent step of a run; the new password is written to
// the cluster secret immediately afterwards, so the platform never sees the
// old one.
func (c *RealClient) EnsureDatabaseServer(ctx context.Context, opts DatabaseServerOpts) (*armmysqlflexibleservers.Server, error) {
	return (&EnsureOperation[*armmysqlflexibleservers.Server, armmysqlflexibleservers.Server]{
		Name:         opts.Name,
		ResourceType: "MySQL server",
		Get: func(ctx context.Context) (*armmysqlflexibleservers.Server, error) {
			resp, err := c.mysqlServers.Get(ctx, opts.ResourceGroup, opts.Name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Server, nil
		},
		Create: func(ctx context.Context, params armmysqlflexibleservers.Server) (*armmysqlflexibleservers.Server, error) {
			poller, err := c.mysqlServers.BeginCreate(ctx, opts.ResourceGroup, opts.Name, params, nil)
			if err != nil {
				return nil, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Server, nil
		},
		Update: func(ctx context.Context, existing *armmysqlflexibleservers.Server) (*armmysqlflexibleservers.Server, error) {
			poller, err := c.mysqlServers.BeginUpdate(ctx, opts.ResourceGroup, opts.Name, armmysqlflexibleservers.ServerForUpdate{
				Properties: &armmysqlflexibleservers.ServerPropertiesForUpdate{
					AdministratorLoginPassword: to.Ptr(opts.AdminPassword),
				},
			}, nil)
			if err != nil {
				return nil, err
			}
			if _, err := poller.PollUntilDone(ctx, nil); err != nil {
				return nil, err
			}
			return existing, nil
		},
		CreateOptsMapper: func() armmysqlflexibleservers.Server {
			return armmysqlflexibleservers.Server{
				Location: to.Ptr(opts.Location),
				SKU: &armmysqlflexibleservers.SKU{
					Name: to.Ptr("Standard_D2ds_v4"),
					Tier: to.Ptr(armmysqlflexibleservers.SKUTierGeneralPurpose),
				},
				Properties: &armmysqlflexibleservers.ServerProperties{
					AdministratorLogin:         to.Ptr(opts.AdminUser),
					AdministratorLoginPassword: to.Ptr(opts.AdminPassword),
					Version:                    to.Ptr(armmysqlflexibleservers.ServerVersionEight021),
					Storage: &armmysqlflexibleservers.Storage{
						StorageSizeGB: to.Ptr[int32](128),
					},
					Backup: &armmysqlflexibleservers.Backup{
						BackupRetentionDays: to.Ptr[int32](7),
					},
				},
			}
		},
	}).Execute(ctx, c.timeouts)
}

// EnsureDatabase ensures that a database exists on the server.
func (c *RealClient) EnsureDatabase(ctx context.Context, resourceGroup, serverName, databaseName string) error {
	_, err := (&EnsureOperation[*armmysqlflexibleservers.Database, armmysqlflexibleservers.Database]{
		Name:         databaseName,
		ResourceType: "database",
		Get: func(ctx context.Context) (*armmysqlflexibleservers.Database, error) {
			resp, err := c.mysqlDBs.Get(ctx, resourceGroup, serverName, databaseName, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Database, nil
		},
		Create: func(ctx context.Context, params armmysqlflexibleservers.Database) (*armmysqlflexibleservers.Database, error) {
			poller, err := c.mysqlDBs.BeginCreateOrUpdate(ctx, resourceGroup, serverName, databaseName, params, nil)
			if err != nil {
				return nil, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Database, nil
		},
		CreateOptsMapper: func() armmysqlflexibleservers.Database {
			return armmysqlflexibleservers.Database{
				Properties: &armmysqlflexibleservers.DatabaseProperties{
					Charset:   to.Ptr("utf8mb4"),
					Collation: to.Ptr("utf8mb4_unicode_ci"),
				},
			}
		},
	}).Execute(ctx, c.timeouts)
	return err
}

// EnsureFirewallRule ensures that a firewall rule exists on the server.
// The 0.0.0.0-0.0.0.0 range is the ARM idiom for "allow Azure services",
// which is what lets the cluster reach the database.
func (c *RealClient) EnsureFirewallRule(ctx context.Context, resourceGroup, serverName, ruleName, startIP, endIP string) error {
	_, err := (&EnsureOperation[*armmysqlflexibleservers.FirewallRule, armmysqlflexibleservers.FirewallRule]{
		Name:         ruleName,
		ResourceType: "firewall rule",
		Get: func(ctx context.Context) (*armmysqlflexibleservers.FirewallRule, error) {
			resp, err := c.mysqlFirewall.Get(ctx, resourceGroup, serverName, ruleName, nil)
			if err != nil {
				return nil, err
			}
			return &resp.FirewallRule, nil
		},
		Create: func(ctx context.Context, params armmysqlflexibleservers.FirewallRule) (*armmysqlflexibleservers.FirewallRule, error) {
			poller, err := c.mysqlFirewall.BeginCreateOrUpdate(ctx, resourceGroup, serverName, ruleName, params, nil)
			if err != nil {
				return nil, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return nil, err
			}
			return &resp.FirewallRule, nil
		},
		CreateOptsMapper: func() armmysqlflexibleservers.FirewallRule {
			return armmysqlflexibleservers.FirewallRule{
				Properties: &armmysqlflexibleservers.FirewallRuleProperties{
					StartIPAddress: to.Ptr(startIP),
					EndIPAddress:   to.Ptr(endIP),
				},
			}
		},
	}).Execute(ctx, c.timeouts)
	return err
}

// GetDatabaseServer returns the MySQL Flexible Server with the given name.
func (c *RealClient) GetDatabaseServer(ctx context.Context, resourceGroup, name string) (*armmysqlflexibleservers.Server, error) {
	resp, err := c.mysqlServers.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get MySQL server %s: %w", name, err)
	}
	return &resp.Server, nil
}
