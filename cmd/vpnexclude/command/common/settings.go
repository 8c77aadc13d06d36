package common

import (
	"github.com/alpacax/vpnexclude/pkg/config"
	"github.com/alpacax/vpnexclude/pkg/logger"
	"github.com/spf13/cobra"
)

const Name = "vpnexclude"

// BindFlags registers the flags shared by every command. They override the
// config file and environment.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file path (default search: ./vpnexclude.conf, ~/.vpnexclude.conf, /etc/vpnexclude/vpnexclude.conf)")
	flags.String("api-key", "", "Dashboard API key (default $"+config.APIKeyEnv+")")
	flags.String("base-url", "", "Dashboard API base URL")
	flags.String("org", "", "Organization name (exact, case-sensitive)")
	flags.String("csv", "", "CSV file with destination,port,protocol columns")
	flags.Bool("overwrite", false, "Replace existing exclusions instead of merging with them")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log-file", "", "Write logs to this file, rotated")
}

// LoadSettings resolves the run settings from the config file, environment
// and the flags bound by BindFlags.
func LoadSettings(cmd *cobra.Command) (config.Settings, error) {
	logger.Bootstrap()

	flags := cmd.Flags()
	explicit, _ := flags.GetString("config")

	var overrides config.Overrides
	overrides.APIKey, _ = flags.GetString("api-key")
	overrides.BaseURL, _ = flags.GetString("base-url")
	overrides.OrgName, _ = flags.GetString("org")
	overrides.CSVFile, _ = flags.GetString("csv")
	overrides.LogFile, _ = flags.GetString("log-file")
	if flags.Changed("overwrite") {
		overwrite, _ := flags.GetBool("overwrite")
		overrides.Overwrite = &overwrite
	}
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		overrides.Debug = &debug
	}

	return config.LoadConfig(config.Files(Name, explicit), overrides)
}
