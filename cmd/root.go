/*
Copyright © 2023 Chris Collins 'collins.christopher@gmail.com'

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/clcollins/aidash/pkg/incident"
	"github.com/clcollins/aidash/pkg/launcher"
	"github.com/clcollins/aidash/pkg/metrics"
	"github.com/clcollins/aidash/pkg/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cfgFile = "aidash"
const cfgFilePath = ".config/aidash/"
const defaultEditor = "vim"

var debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aidash",
	Short: "TUI dashboard for browsing and reporting AI safety incidents",
	Long: `'aidash' is a TUI dashboard for AI safety incidents.  It
lists reported incidents, filters them by severity, sorts them
by report time, expands their details, and lets you report new
ones.  Incidents are kept in memory for the life of the
dashboard and are not saved anywhere.`,
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		closeLog, err := setupLogging(runtime.GOOS, debug)
		if err != nil {
			return err
		}
		defer closeLog() //nolint:errcheck

		if debug {
			for k, v := range viper.GetViper().AllSettings() {
				log.Debug("Found key", k, fmt.Sprintf("%v", v))
			}
		}

		c, err := loadConfig()
		if err != nil {
			return err
		}

		dashboard, err := newDashboard(c)
		if err != nil {
			return err
		}

		// A missing editor only disables ctrl+e in the report form
		editor, err := launcher.NewEditorLauncher(c.Editor)
		if err != nil {
			log.Warn("external editor disabled", "error", err)
		}

		recorder := metrics.NewRecorder()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if c.MetricsAddress != "" {
			go func() {
				if err := recorder.Serve(ctx, c.MetricsAddress); err != nil {
					log.Error("metrics server stopped", "error", err)
				}
			}()
		}

		m, _ := tui.InitialModel(tui.Options{
			Dashboard:  dashboard,
			Editor:     editor,
			Recorder:   recorder,
			TimeFormat: c.TimeFormat,
			Debug:      debug,
		})

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = p.Run()
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debugging output")
	rootCmd.PersistentFlags().StringP("severity", "s", "", "Severity filter on startup: All, Low, Medium or High")
	rootCmd.PersistentFlags().String("sort", "", "Sort order on startup: Newest or Oldest")
	rootCmd.Flags().StringP("editor", "e", "", "Editor to use for incident descriptions; default is `$EDITOR` environment variable")
	rootCmd.Flags().String("metrics-address", "", "Serve Prometheus metrics on this address, eg: localhost:9090")

	// Flags override the environment, which overrides the config file
	cobra.CheckErr(viper.BindPFlag("severity_filter", rootCmd.PersistentFlags().Lookup("severity")))
	cobra.CheckErr(viper.BindPFlag("sort_order", rootCmd.PersistentFlags().Lookup("sort")))
	cobra.CheckErr(viper.BindPFlag("editor", rootCmd.Flags().Lookup("editor")))
	cobra.CheckErr(viper.BindPFlag("metrics_address", rootCmd.Flags().Lookup("metrics-address")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Find home directory.
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	setConfigDefaults()

	viper.AddConfigPath(home + "/" + cfgFilePath)
	viper.SetConfigName(cfgFile)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug("Config file not found; using defaults", "error", err)
		} else {
			fmt.Fprintln(os.Stderr, "Config file error: "+err.Error())
		}
	}
}

// newDashboard builds the incident dashboard with the configured initial
// filter and sort order
func newDashboard(c Config) (*incident.Dashboard, error) {
	f, err := incident.ParseSeverityFilter(c.SeverityFilter)
	if err != nil {
		return nil, err
	}

	o, err := incident.ParseSortOrder(c.SortOrder)
	if err != nil {
		return nil, err
	}

	return incident.NewDashboard(
		incident.WithSeverityFilter(f),
		incident.WithSortOrder(o),
	), nil
}
