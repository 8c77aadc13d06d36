package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/go-playground/validator.v9"
	"gopkg.in/ini.v1"
)

const (
	APIKeyEnv = "MERAKI_DASHBOARD_API_KEY"

	DefaultBaseURL    = "https://api.meraki.com/api/v1"
	DefaultTimeout    = 60
	DefaultMaxRetries = 2
	DefaultPerPage    = 1000

	// Limits for warnings
	MaxReasonableTimeoutSeconds = 600
)

var ErrNoConfig = errors.New("no valid config file found")

// LoadConfig reads the first usable file from configFiles, then applies the
// API key environment variable and the command line overrides on top of it.
// A missing file is not an error as long as the remaining sources provide
// every required value.
func LoadConfig(configFiles []string, overrides Overrides) (Settings, error) {
	var config Config

	validConfigFile := findConfigFile(configFiles)
	if validConfigFile != "" {
		iniData, err := ini.Load(validConfigFile)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to load config file %s: %w", validConfigFile, err)
		}

		if err = iniData.MapTo(&config); err != nil {
			return Settings{}, fmt.Errorf("failed to parse config file %s: %w", validConfigFile, err)
		}
	} else {
		log.Debug().Err(ErrNoConfig).Msg("Relying on environment and flags.")
	}

	if apiKey := os.Getenv(APIKeyEnv); apiKey != "" {
		config.Dashboard.APIKey = apiKey
	}
	applyOverrides(&config, overrides)

	return validateConfig(config)
}

func findConfigFile(configFiles []string) string {
	for _, configFile := range configFiles {
		if configFile == "" {
			continue
		}
		fileInfo, statErr := os.Stat(configFile)
		if statErr != nil {
			if !os.IsNotExist(statErr) {
				log.Error().Err(statErr).Msgf("Error accessing config file %s.", configFile)
			}
			continue
		}

		if fileInfo.Size() == 0 {
			log.Debug().Msgf("Config file %s is empty, skipping...", configFile)
			continue
		}

		log.Debug().Msgf("Using config file %s.", configFile)
		return configFile
	}
	return ""
}

func applyOverrides(config *Config, o Overrides) {
	if o.APIKey != "" {
		config.Dashboard.APIKey = o.APIKey
	}
	if o.BaseURL != "" {
		config.Dashboard.BaseURL = o.BaseURL
	}
	if o.OrgName != "" {
		config.Organization.Name = o.OrgName
	}
	if o.CSVFile != "" {
		config.Exclusions.CSVFile = o.CSVFile
	}
	if o.LogFile != "" {
		config.Logging.File = o.LogFile
	}
	if o.Overwrite != nil {
		config.Exclusions.Overwrite = *o.Overwrite
	}
	if o.Debug != nil {
		config.Logging.Debug = *o.Debug
	}
}

func validateConfig(config Config) (Settings, error) {
	log.Debug().Msg("Validating configuration fields...")

	settings := Settings{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		PerPage:    DefaultPerPage,
		SSLVerify:  true,
		APIKey:     strings.TrimSpace(config.Dashboard.APIKey),
		OrgName:    config.Organization.Name,
		CSVFile:    config.Exclusions.CSVFile,
		Overwrite:  config.Exclusions.Overwrite,
		Debug:      config.Logging.Debug,
		LogFile:    config.Logging.File,
	}

	if val := config.Dashboard.BaseURL; val != "" {
		if !strings.HasPrefix(val, "http://") && !strings.HasPrefix(val, "https://") {
			return settings, fmt.Errorf("dashboard base url %q is invalid", val)
		}
		settings.BaseURL = strings.TrimSuffix(val, "/")
	}

	// Pointers distinguish "not configured" (nil) from "explicitly set to 0"
	if config.Dashboard.Timeout != nil {
		settings.Timeout = *config.Dashboard.Timeout
	}
	if config.Dashboard.MaxRetries != nil {
		settings.MaxRetries = *config.Dashboard.MaxRetries
	}
	if config.Dashboard.PerPage > 0 {
		settings.PerPage = config.Dashboard.PerPage
	}
	if config.Dashboard.SSLVerify != nil {
		settings.SSLVerify = *config.Dashboard.SSLVerify
	}

	if !settings.SSLVerify {
		log.Warn().Msg(
			"SSL verification is turned off. " +
				"Please be aware that this setting is not appropriate for production use.",
		)
	} else if caCert := config.Dashboard.CaCert; caCert != "" {
		if _, err := os.Stat(caCert); os.IsNotExist(err) {
			return settings, fmt.Errorf("given path for CA certificate does not exist: %s", caCert)
		}
		settings.CaCert = caCert
	}

	if settings.Timeout > MaxReasonableTimeoutSeconds {
		log.Warn().Msgf("Dashboard timeout (%d seconds) seems very high, consider reducing it", settings.Timeout)
	}

	if err := validator.New().Struct(settings); err != nil {
		return settings, describeValidationError(err)
	}

	return settings, nil
}

func describeValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Files returns the config file search path. An explicit path, when given,
// is tried first.
func Files(name, explicit string) []string {
	return []string{
		explicit,
		fmt.Sprintf("%s.conf", name),
		filepath.Join(os.Getenv("HOME"), fmt.Sprintf(".%s.conf", name)),
		fmt.Sprintf("/etc/%s/%s.conf", name, name),
	}
}
