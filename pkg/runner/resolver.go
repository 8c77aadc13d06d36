package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/alpacax/vpnexclude/pkg/dashboard"
	"github.com/rs/zerolog/log"
)

type organizationLister interface {
	GetOrganizations(ctx context.Context) ([]dashboard.Organization, error)
}

// ResolveOrganization returns the id of the first organization whose name
// equals name exactly (case-sensitive).
func ResolveOrganization(ctx context.Context, api organizationLister, name string) (string, error) {
	orgs, err := api.GetOrganizations(ctx)
	if err != nil {
		return "", fatal("resolve organization", err)
	}

	for _, org := range orgs {
		if org.Name == name {
			log.Debug().Msgf("Organization %q resolved to %s.", name, org.ID)
			return org.ID, nil
		}
	}

	log.Debug().Msgf("Organization %q not among %d visible organizations.", name, len(orgs))
	return "", fatal("resolve organization", fmt.Errorf("%w: %s", ErrOrganizationNotFound, name))
}

// FindOrganization resolves name like ResolveOrganization and tells the
// operator when no organization carries it.
func FindOrganization(ctx context.Context, api organizationLister, reporter Reporter, name string) (string, error) {
	orgID, err := ResolveOrganization(ctx, api, name)
	if errors.Is(err, ErrOrganizationNotFound) {
		reporter.Errorf("Error: Org. Name %s not found...", name)
	}
	return orgID, err
}
