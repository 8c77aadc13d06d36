package runner

import (
	"context"

	"github.com/alpacax/vpnexclude/pkg/dashboard"
	"github.com/alpacax/vpnexclude/pkg/exclusion"
)

// DashboardAPI is the subset of the dashboard client used by a run.
// *dashboard.Client implements it.
type DashboardAPI interface {
	// GetOrganizations lists the organizations visible to the API key
	GetOrganizations(ctx context.Context) ([]dashboard.Organization, error)

	// GetOrganizationNetworks lists every network of an organization, all pages
	GetOrganizationNetworks(ctx context.Context, organizationID string) ([]dashboard.Network, error)

	// GetOrganizationApplianceTrafficShapingVpnExclusionsByNetwork returns the
	// current exclusions of every network in an organization, all pages
	GetOrganizationApplianceTrafficShapingVpnExclusionsByNetwork(ctx context.Context, organizationID string) ([]dashboard.NetworkVpnExclusions, error)

	// UpdateNetworkApplianceTrafficShapingVpnExclusions replaces the
	// exclusions of one network
	UpdateNetworkApplianceTrafficShapingVpnExclusions(ctx context.Context, networkID string, exclusions exclusion.Set) (*exclusion.Set, error)
}

// Reporter receives operator-facing progress. *reporter.Console implements it.
type Reporter interface {
	// Step announces the start of a numbered step
	Step(number int, title string)

	Infof(format string, args ...interface{})
	Successf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// NetworkStarted is called before a network's write, index is 1-based
	NetworkStarted(name string, index, total int)

	// StartProgress, Advance and StopProgress drive the overall counter
	StartProgress(total int)
	Advance()
	StopProgress()
}
