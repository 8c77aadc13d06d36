package dashboard

import (
	"slices"

	"github.com/alpacax/vpnexclude/pkg/exclusion"
)

const ProductTypeAppliance = "appliance"

type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Network struct {
	ID             string   `json:"id"`
	OrganizationID string   `json:"organizationId"`
	Name           string   `json:"name"`
	ProductTypes   []string `json:"productTypes"`
	TimeZone       string   `json:"timeZone,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

func (n Network) HasProductType(productType string) bool {
	return slices.Contains(n.ProductTypes, productType)
}

// NetworkVpnExclusions is one item of the organization-wide exclusions
// listing.
type NetworkVpnExclusions struct {
	NetworkID   string `json:"networkId"`
	NetworkName string `json:"networkName"`
	exclusion.Set
}
