package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/clcollins/aidash/pkg/deprecation"
	"github.com/clcollins/aidash/pkg/incident"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exampleConfig = `
# Example aidash configuration file
---
# This is an example configuration file for aidash.  It is intended to be used
# as a reference for the configuration options available to the user.  The
# configuration file is located at ~/.config/aidash/aidash.yaml

# All options are optional

# Editor used to write incident descriptions (ctrl+e in the report form)
# %%FILE%% is replaced with the file to edit, otherwise it is appended
editor: vim

# Go time layout used to show when incidents were reported
time_format: Jan 2, 2006 3:04:05 PM

# Severity filter on startup: All, Low, Medium or High
severity_filter: All

# Sort order on startup: Newest or Oldest
sort_order: Newest

# Serve Prometheus metrics on this address while the dashboard runs
# metrics_address: localhost:9090`
)

const description = `The config command is used to create or validate the aidash config file.
The config file is located at ~/.config/aidash/aidash.yaml and is used to store
the configuration options for the aidash application.`

var (
	defaultOptionalKeys = map[string]string{
		"editor":          defaultEditor,
		"time_format":     "Jan 2, 2006 3:04:05 PM",
		"severity_filter": string(incident.All),
		"sort_order":      string(incident.Newest),
	}
	optionalKeys = map[string]string{
		"editor":          fmt.Sprintf("Editor to use for incident descriptions (default: %v)", defaultOptionalKeys["editor"]),
		"time_format":     fmt.Sprintf("Go time layout for report times (default: %v)", defaultOptionalKeys["time_format"]),
		"severity_filter": fmt.Sprintf("Severity filter on startup (default: %v)", defaultOptionalKeys["severity_filter"]),
		"sort_order":      fmt.Sprintf("Sort order on startup (default: %v)", defaultOptionalKeys["sort_order"]),
	}
)

// Config is the resolved aidash configuration
type Config struct {
	Editor         string `mapstructure:"editor"`
	TimeFormat     string `mapstructure:"time_format" validate:"required"`
	SeverityFilter string `mapstructure:"severity_filter" validate:"required"`
	SortOrder      string `mapstructure:"sort_order" validate:"required"`
	MetricsAddress string `mapstructure:"metrics_address" validate:"omitempty,hostname_port"`
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Create or validate the aidash config file",
	Long:         description + "\n\n" + exampleConfig,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case cmd.Flag("create").Value.String() == "true":
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", exampleConfig)
			return nil
		case cmd.Flag("validate").Value.String() == "true":
			err := validateConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config file is valid")
			return nil
		default:
			return cmd.Usage()
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolP("create", "c", false, "print a sample config file")
	configCmd.Flags().BoolP("validate", "v", false, "validate the config file")
	configCmd.MarkFlagsMutuallyExclusive("create", "validate")
}

// setConfigDefaults registers the default value of every optional key
func setConfigDefaults() {
	for k, v := range defaultOptionalKeys {
		viper.SetDefault(k, v)
	}
}

// loadConfig unmarshals and validates the settings viper has collected from
// the config file, environment and flags
func loadConfig() (Config, error) {
	var c Config

	err := viper.Unmarshal(&c)
	if err != nil {
		return c, fmt.Errorf("unmarshal config error: %w", err)
	}

	valid := validator.New()
	if err = valid.Struct(c); err != nil {
		return c, fmt.Errorf("validate config error: %w", err)
	}

	if _, err := incident.ParseSeverityFilter(c.SeverityFilter); err != nil {
		return c, fmt.Errorf("validate config error: %w", err)
	}

	if _, err := incident.ParseSortOrder(c.SortOrder); err != nil {
		return c, fmt.Errorf("validate config error: %w", err)
	}

	return c, nil
}

// validateConfig reports deprecated and missing keys, then validates the config
func validateConfig() error {
	errs := []error{}
	settings := viper.GetViper().AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if deprecation.Deprecated(k) {
			r, _ := deprecation.Replacement(k)
			log.Info("Found deprecated key; you may remove this from your config", "key_name", k, "replaced_by", r)
			continue
		}

		log.Debug("Found key", k, fmt.Sprintf("%v", settings[k]))
	}

	for k, v := range optionalKeys {
		if !viper.InConfig(k) {
			log.Warn("missing optional key; using default value", "key_name", k, "key_description", v, "default", defaultOptionalKeys[k])
		}
	}

	if _, err := loadConfig(); err != nil {
		errs = append(errs, err)
	}

	if e := viper.GetString("editor"); strings.TrimSpace(e) == "" {
		log.Warn("no editor configured; ctrl+e in the report form is disabled")
	}

	return errors.Join(errs...)
}
