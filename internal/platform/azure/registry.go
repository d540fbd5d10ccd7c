package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
)

// EnsureRegistry ensures that a container registry exists. The admin user
// is enabled because the platform pulls with username/password credentials
// propagated into the cluster.
func (c *RealClient) EnsureRegistry(ctx context.Context, resourceGroup, name, location string) (*armcontainerregistry.Registry, error) {
	return (&EnsureOperation[*armcontainerregistry.Registry, armcontainerregistry.Registry]{
		Name:         name,
		ResourceType: "container registry",
		Get: func(ctx context.Context) (*armcontainerregistry.Registry, error) {
			resp, err := c.registries.Get(ctx, resourceGroup, name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Registry, nil
		},
		Create: func(ctx context.Context, params armcontainerregistry.Registry) (*armcontainerregistry.Registry, error) {
			poller, err := c.registries.BeginCreate(ctx, resourceGroup, name, params, nil)
			if err != nil {
				return nil, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Registry, nil
		},
		CreateOptsMapper: func() armcontainerregistry.Registry {
			return armcontainerregistry.Registry{
				Location: to.Ptr(location),
				SKU: &armcontainerregistry.SKU{
					Name: to.Ptr(armcontainerregistry.SKUNameStandard),
				},
				Properties: &armcontainerregistry.RegistryProperties{
					AdminUserEnabled: to.Ptr(true),
				},
			}
		},
	}).Execute(ctx, c.timeouts)
}

// RegistryCredentials returns the admin login for the registry.
func (c *RealClient) RegistryCredentials(ctx context.Context, resourceGroup, name string) (*RegistryCredentials, error) {
	reg, err := c.registries.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get container registry %s: %w", name, err)
	}

	creds, err := c.registries.ListCredentials(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials for registry %s: %w", name, err)
	}
	if creds.Username == nil || len(creds.Passwords) == 0 || creds.Passwords[0].Value == nil {
		return nil, fmt.Errorf("registry %s returned no admin credentials; is the admin user enabled?", name)
	}

	loginServer := ""
	if reg.Properties != nil && reg.Properties.LoginServer != nil {
		loginServer = *reg.Properties.LoginServer
	}

	return &RegistryCredentials{
		LoginServer: loginServer,
		Username:    *creds.Username,
		Password:    *creds.Passwords[0].Value,
	}, nil
}
