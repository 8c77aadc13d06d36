package runner

import (
	"context"

	"github.com/alpacax/vpnexclude/pkg/dashboard"
	"github.com/alpacax/vpnexclude/pkg/exclusion"
	"github.com/rs/zerolog/log"
)

type exclusionLister interface {
	GetOrganizationApplianceTrafficShapingVpnExclusionsByNetwork(ctx context.Context, organizationID string) ([]dashboard.NetworkVpnExclusions, error)
}

// CollectExistingRules maps network id to the exclusions the network has
// today. Networks missing from the listing have no entry.
func CollectExistingRules(ctx context.Context, api exclusionLister, organizationID string) (map[string]exclusion.Set, error) {
	items, err := api.GetOrganizationApplianceTrafficShapingVpnExclusionsByNetwork(ctx, organizationID)
	if err != nil {
		return nil, fatal("collect existing exclusions", err)
	}

	existing := make(map[string]exclusion.Set, len(items))
	for _, item := range items {
		existing[item.NetworkID] = item.Set
		log.Debug().
			Str("network", item.NetworkID).
			Int("custom", len(item.Custom)).
			Int("major_applications", len(item.MajorApplications)).
			Msg("Existing exclusions.")
	}
	return existing, nil
}
