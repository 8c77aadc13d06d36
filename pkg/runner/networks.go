package runner

import (
	"context"

	"github.com/alpacax/vpnexclude/pkg/dashboard"
	"github.com/rs/zerolog/log"
)

type networkLister interface {
	GetOrganizationNetworks(ctx context.Context, organizationID string) ([]dashboard.Network, error)
}

// ApplianceNetworks lists the organization's networks and keeps those with
// the appliance product type, in API order.
func ApplianceNetworks(ctx context.Context, api networkLister, organizationID string) ([]dashboard.Network, error) {
	networks, err := api.GetOrganizationNetworks(ctx, organizationID)
	if err != nil {
		return nil, fatal("list networks", err)
	}

	appliances := FilterApplianceNetworks(networks)
	log.Debug().Msgf("%d of %d networks have an appliance.", len(appliances), len(networks))
	return appliances, nil
}

func FilterApplianceNetworks(networks []dashboard.Network) []dashboard.Network {
	var appliances []dashboard.Network
	for _, network := range networks {
		if network.HasProductType(dashboard.ProductTypeAppliance) {
			appliances = append(appliances, network)
		}
	}
	return appliances
}
