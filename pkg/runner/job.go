package runner

import (
	"context"

	"github.com/alpacax/vpnexclude/pkg/config"
	"github.com/alpacax/vpnexclude/pkg/exclusion"
	"github.com/rs/zerolog/log"
)

// Job is one run of the tool: resolve the organization, find its appliance
// networks, optionally read their current exclusions, parse the CSV and push
// the result to every network.
type Job struct {
	api       DashboardAPI
	reporter  Reporter
	orgName   string
	csvFile   string
	overwrite bool
	step      int
}

func NewJob(api DashboardAPI, reporter Reporter, settings config.Settings) *Job {
	return &Job{
		api:       api,
		reporter:  reporter,
		orgName:   settings.OrgName,
		csvFile:   settings.CSVFile,
		overwrite: settings.Overwrite,
	}
}

// Run executes the job. Per-network write rejections are reported and
// recorded in the outcomes; every other failure ends the run with an error.
func (j *Job) Run(ctx context.Context) ([]Outcome, error) {
	j.nextStep("Get Org ID")
	orgID, err := FindOrganization(ctx, j.api, j.reporter, j.orgName)
	if err != nil {
		return nil, err
	}
	j.reporter.Infof("Found %s for %s!", orgID, j.orgName)

	j.nextStep("Get Appliance Networks")
	networks, err := ApplianceNetworks(ctx, j.api, orgID)
	if err != nil {
		return nil, err
	}
	j.reporter.Infof("Found %d Appliance Networks", len(networks))

	var existing map[string]exclusion.Set
	if !j.overwrite {
		j.nextStep("Get Existing VPN Exclusions")
		existing, err = CollectExistingRules(ctx, j.api, orgID)
		if err != nil {
			return nil, err
		}
		j.reporter.Infof("Found existing exclusions for %d networks", len(existing))
	}

	j.nextStep("Creating VPN Custom Exclusions")
	rules, err := exclusion.ParseFile(j.csvFile)
	if err != nil {
		return nil, fatal("read exclusions", err)
	}
	j.reporter.Infof("Custom exclusions created: %v", rules)

	j.nextStep("Adding VPN Custom Exclusions to Networks")
	log.Info().
		Str("organization", orgID).
		Int("networks", len(networks)).
		Int("rules", len(rules)).
		Bool("overwrite", j.overwrite).
		Msg("Applying exclusions.")

	return NewApplier(j.api, j.reporter, rules, existing, j.overwrite).Apply(ctx, networks)
}

func (j *Job) nextStep(title string) {
	j.step++
	j.reporter.Step(j.step, title)
}
