package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
)

// EnsureStorageAccount ensures that a storage account exists. Workspace
// content and images are stored as blobs, so the account is a plain
// StorageV2 with public blob access disabled.
func (c *RealClient) EnsureStorageAccount(ctx context.Context, resourceGroup, name, location string) (*armstorage.Account, error) {
	return (&EnsureOperation[*armstorage.Account, armstorage.AccountCreateParameters]{
		Name:         name,
		ResourceType: "storage account",
		Get: func(ctx context.Context) (*armstorage.Account, error) {
			resp, err := c.storage.GetProperties(ctx, resourceGroup, name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Account, nil
		},
		Create: func(ctx context.Context, params armstorage.AccountCreateParameters) (*armstorage.Account, error) {
			poller, err := c.storage.BeginCreate(ctx, resourceGroup, name, params, nil)
			if err != nil {
				return nil, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Account, nil
		},
		CreateOptsMapper: func() armstorage.AccountCreateParameters {
			return armstorage.AccountCreateParameters{
				Location: to.Ptr(location),
				Kind:     to.Ptr(armstorage.KindStorageV2),
				SKU: &armstorage.SKU{
					Name: to.Ptr(armstorage.SKUNameStandardLRS),
				},
				Properties: &armstorage.AccountPropertiesCreateParameters{
					AllowBlobPublicAccess: to.Ptr(false),
					MinimumTLSVersion:     to.Ptr(armstorage.MinimumTLSVersionTLS12),
				},
			}
		},
	}).Execute(ctx, c.timeouts)
}

// StorageAccountKey returns the primary access key of the storage account.
func (c *RealClient) StorageAccountKey(ctx context.Context, resourceGroup, name string) (string, error) {
	resp, err := c.storage.ListKeys(ctx, resourceGroup, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list keys for storage account %s: %w", name, err)
	}
	if len(resp.Keys) == 0 || resp.Keys[0].Value == nil {
		return "", fmt.Errorf("storage account %s returned no access keys", name)
	}
	return *resp.Keys[0].Value, nil
}

// GetStorageAccount returns the storage account with the given name.
func (c *RealClient) GetStorageAccount(ctx context.Context, resourceGroup, name string) (*armstorage.Account, error) {
	resp, err := c.storage.GetProperties(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage account %s: %w", name, err)
	}
	return &resp.Account, nil
}
