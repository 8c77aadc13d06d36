package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alpacax/vpnexclude/pkg/exclusion"
)

// GetOrganizationApplianceTrafficShapingVpnExclusionsByNetwork returns the
// VPN exclusion state of every network in the organization that has any.
func (c *Client) GetOrganizationApplianceTrafficShapingVpnExclusionsByNetwork(ctx context.Context, organizationID string) ([]NetworkVpnExclusions, error) {
	var result []NetworkVpnExclusions
	path := fmt.Sprintf("/organizations/%s/appliance/trafficShaping/vpnExclusions/byNetwork", url.PathEscape(organizationID))

	err := c.getAllPages(ctx, path, vpnExclusionsMaxPerPage, func(page []byte) error {
		var body struct {
			Items []NetworkVpnExclusions `json:"items"`
		}
		if err := json.Unmarshal(page, &body); err != nil {
			return err
		}
		result = append(result, body.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list VPN exclusions of organization %s: %w", organizationID, err)
	}
	return result, nil
}

// UpdateNetworkApplianceTrafficShapingVpnExclusions replaces the VPN
// exclusion rules of one network.
func (c *Client) UpdateNetworkApplianceTrafficShapingVpnExclusions(ctx context.Context, networkID string, exclusions exclusion.Set) (*exclusion.Set, error) {
	target := fmt.Sprintf("%s/networks/%s/appliance/trafficShaping/vpnExclusions", c.baseURL, url.PathEscape(networkID))

	resp, err := c.do(ctx, http.MethodPut, target, exclusions)
	if err != nil {
		return nil, err
	}

	var updated exclusion.Set
	if len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, &updated); err != nil {
			return nil, fmt.Errorf("unexpected response when updating network %s: %w", networkID, err)
		}
	}
	return &updated, nil
}
