package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Maximum page sizes accepted by the listing endpoints.
const (
	networksMaxPerPage      = 100000
	vpnExclusionsMaxPerPage = 1000
)

// GetOrganizations lists the organizations the API key has access to.
func (c *Client) GetOrganizations(ctx context.Context) ([]Organization, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/organizations", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	var orgs []Organization
	if err := json.Unmarshal(resp.body, &orgs); err != nil {
		return nil, fmt.Errorf("unexpected response when listing organizations: %w", err)
	}
	return orgs, nil
}

// GetOrganizationNetworks lists every network of the organization, following
// all pages.
func (c *Client) GetOrganizationNetworks(ctx context.Context, organizationID string) ([]Network, error) {
	var networks []Network
	path := fmt.Sprintf("/organizations/%s/networks", url.PathEscape(organizationID))

	err := c.getAllPages(ctx, path, networksMaxPerPage, func(page []byte) error {
		var items []Network
		if err := json.Unmarshal(page, &items); err != nil {
			return err
		}
		networks = append(networks, items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list networks of organization %s: %w", organizationID, err)
	}
	return networks, nil
}
