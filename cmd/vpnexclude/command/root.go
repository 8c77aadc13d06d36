package command

import (
	"errors"

	"github.com/alpacax/vpnexclude/cmd/vpnexclude/command/common"
	"github.com/alpacax/vpnexclude/cmd/vpnexclude/command/networks"
	"github.com/alpacax/vpnexclude/pkg/dashboard"
	"github.com/alpacax/vpnexclude/pkg/logger"
	"github.com/alpacax/vpnexclude/pkg/reporter"
	"github.com/alpacax/vpnexclude/pkg/runner"
	"github.com/alpacax/vpnexclude/pkg/version"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNoCSV = errors.New("no exclusion CSV file given, use --csv or [exclusions] csv_file")

var RootCmd = &cobra.Command{
	Use:   common.Name,
	Short: "Bulk-apply VPN exclusion rules to every appliance network of an organization",
	Long: `Reads VPN traffic-shaping exclusion rules (destination, port, protocol) from a
CSV file and writes them to every appliance network of a Meraki organization.

By default the rules are merged with each network's existing exclusions.
With --overwrite the existing exclusions are replaced.

Examples:
  vpnexclude --org "HQ" --csv exclusions.csv
  vpnexclude --config ./vpnexclude.conf --overwrite
  vpnexclude networks --org "HQ"`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runApply,
}

func init() {
	common.BindFlags(RootCmd)
	RootCmd.AddCommand(networks.NetworksCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	settings, err := common.LoadSettings(cmd)
	if err != nil {
		return err
	}
	if settings.CSVFile == "" {
		return errNoCSV
	}

	logRotate, runID := logger.InitLogger(settings)
	if logRotate != nil {
		defer func() { _ = logRotate.Close() }()
	}
	log.Info().Msgf("Starting %s... (version: %s, run: %s)", common.Name, version.Version, runID)

	console := reporter.NewConsole(cmd.OutOrStdout())
	console.Title("Meraki VPN Exclusion Tool")

	client := dashboard.NewClient(settings)
	outcomes, err := runner.NewJob(client, console, settings).Run(cmd.Context())
	if err != nil {
		log.Error().Err(err).Msgf("Run aborted (%s).", runner.Classify(err))
		return err
	}

	failed := 0
	for _, o := range outcomes {
		if o.State == runner.StateFailed {
			failed++
		}
	}
	log.Info().Msgf("Processed %d networks, %d failed.", len(outcomes), failed)
	return nil
}
