package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
)

// EnsureDNSZone ensures that a public DNS zone exists for the domain.
// The returned zone carries the name servers the operator must delegate
// the domain to.
func (c *RealClient) EnsureDNSZone(ctx context.Context, resourceGroup, name string) (*armdns.Zone, error) {
	return (&EnsureOperation[*armdns.Zone, armdns.Zone]{
		Name:         name,
		ResourceType: "DNS zone",
		Get: func(ctx context.Context) (*armdns.Zone, error) {
			resp, err := c.dnsZones.Get(ctx, resourceGroup, name, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Zone, nil
		},
		Create: func(ctx context.Context, params armdns.Zone) (*armdns.Zone, error) {
			resp, err := c.dnsZones.CreateOrUpdate(ctx, resourceGroup, name, params, nil)
			if err != nil {
				return nil, err
			}
			return &resp.Zone, nil
		},
		CreateOptsMapper: func() armdns.Zone {
			// Public DNS zones are global resources.
			return armdns.Zone{
				Location: to.Ptr("global"),
			}
		},
	}).Execute(ctx, c.timeouts)
}

// GetDNSZone returns the DNS zone with the given name.
func (c *RealClient) GetDNSZone(ctx context.Context, resourceGroup, name string) (*armdns.Zone, error) {
	resp, err := c.dnsZones.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get DNS zone %s: %w", name, err)
	}
	return &resp.Zone, nil
}

// ZoneNameServers extracts the name server list from a zone.
func ZoneNameServers(zone *armdns.Zone) []string {
	if zone == nil || zone.Properties == nil {
		return nil
	}
	servers := make([]string, 0, len(zone.Properties.NameServers))
	for _, ns := range zone.Properties.NameServers {
		if ns != nil {
			servers = append(servers, *ns)
		}
	}
	return servers
}
