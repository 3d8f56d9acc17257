package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/clcollins/aidash/pkg/incident"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the incident list without starting the TUI",
	Long: `The list command prints the sample incidents using the same
severity filter and sort order as the dashboard, then exits.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		d, err := newDashboard(c)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		out, err := renderList(d.Visible(), output, c.TimeFormat)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("output", "o", outputTable, "Output format: table or yaml")
}

func renderList(incidents []incident.Incident, output, timeFormat string) (string, error) {
	switch output {
	case outputYAML:
		b, err := yaml.Marshal(struct {
			Incidents []incident.Incident `yaml:"incidents"`
		}{incidents})
		if err != nil {
			return "", fmt.Errorf("failed to marshal incidents: %w", err)
		}
		return string(b), nil

	case outputTable:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "TITLE", "SEVERITY", "REPORTED")
		for _, i := range incidents {
			t.Row(strconv.Itoa(i.ID), i.Title, i.Severity.String(), i.ReportedAt.Local().Format(timeFormat))
		}
		return t.Render(), nil

	default:
		return "", fmt.Errorf("unknown output format %q: must be %s or %s", output, outputTable, outputYAML)
	}
}
