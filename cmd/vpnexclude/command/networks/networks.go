package networks

import (
	"strconv"
	"strings"

	"github.com/alpacax/vpnexclude/cmd/vpnexclude/command/common"
	"github.com/alpacax/vpnexclude/pkg/dashboard"
	"github.com/alpacax/vpnexclude/pkg/logger"
	"github.com/alpacax/vpnexclude/pkg/reporter"
	"github.com/alpacax/vpnexclude/pkg/runner"
	"github.com/spf13/cobra"
)

var NetworksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the organization's appliance networks and their current VPN exclusions",
	Long: `Lists every appliance network of the organization with the number of custom
and major application VPN exclusions it has today. Nothing is changed.

Examples:
  vpnexclude networks --org "HQ"`,
	SilenceUsage: true,
	RunE:         runNetworks,
}

func runNetworks(cmd *cobra.Command, args []string) error {
	settings, err := common.LoadSettings(cmd)
	if err != nil {
		return err
	}

	logRotate, _ := logger.InitLogger(settings)
	if logRotate != nil {
		defer func() { _ = logRotate.Close() }()
	}

	ctx := cmd.Context()
	client := dashboard.NewClient(settings)
	console := reporter.NewConsole(cmd.OutOrStdout())

	orgID, err := runner.FindOrganization(ctx, client, console, settings.OrgName)
	if err != nil {
		return err
	}
	appliances, err := runner.ApplianceNetworks(ctx, client, orgID)
	if err != nil {
		return err
	}
	existing, err := runner.CollectExistingRules(ctx, client, orgID)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(appliances))
	for _, network := range appliances {
		current := existing[network.ID]
		rows = append(rows, []string{
			network.ID,
			network.Name,
			strings.Join(network.ProductTypes, ", "),
			strconv.Itoa(len(current.Custom)),
			strconv.Itoa(len(current.MajorApplications)),
		})
	}

	console.Infof("Found %d Appliance Networks in %s", len(appliances), settings.OrgName)
	return console.Table([]string{"ID", "Name", "Product Types", "Custom", "Major Applications"}, rows)
}
