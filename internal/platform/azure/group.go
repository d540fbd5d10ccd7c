package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// EnsureResourceGroup ensures that a resource group exists in the given
// location. An existing group is reused regardless of its location; moving
// a group is not something an installer should attempt.
func (c *RealClient) EnsureResourceGroup(ctx context.Context, name, location string) (*armresources.ResourceGroup, error) {
	return (&EnsureOperation[*armresources.ResourceGroup, armresources.ResourceGroup]{
		Name:         name,
		ResourceType: "resource group",
		Get: func(ctx context.Context) (*armresources.ResourceGroup, error) {
			resp, err := c.groups.Get(ctx, name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.ResourceGroup, nil
		},
		Create: func(ctx context.Context, params armresources.ResourceGroup) (*armresources.ResourceGroup, error) {
			resp, err := c.groups.CreateOrUpdate(ctx, name, params, nil)
			if err != nil {
				return nil, err
			}
			return &resp.ResourceGroup, nil
		},
		CreateOptsMapper: func() armresources.ResourceGroup {
			return armresources.ResourceGroup{
				Location: to.Ptr(location),
			}
		},
	}).Execute(ctx, c.timeouts)
}

// GetResourceGroup returns the resource group with the given name.
func (c *RealClient) GetResourceGroup(ctx context.Context, name string) (*armresources.ResourceGroup, error) {
	resp, err := c.groups.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource group %s: %w", name, err)
	}
	return &resp.ResourceGroup, nil
}
