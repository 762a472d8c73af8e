package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucent-dev/lucent/internal/api"
)

func newInsightsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print recent insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			end := time.Now()
			if err := a.acts.FetchInsights(context.Background(), end.AddDate(0, 0, -days), end); err != nil {
				return err
			}

			snap := a.store.Snapshot()
			if len(snap.Insights) == 0 {
				fmt.Println("No insights for the selected range.")
				return nil
			}

			for _, ins := range snap.Insights {
				fmt.Printf("%s  %-40s  score %.2f\n",
					ins.Timestamp.Format("2006-01-02 15:04"), ins.Title, ins.Score)
				if ins.Description != "" {
					fmt.Printf("                    %s\n", ins.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "how many days of insights to fetch")
	return cmd
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or patch settings",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			settings := a.store.Snapshot().Settings
			fmt.Printf("theme:          %s\n", settings.Theme)
			fmt.Printf("notifications:  %v\n", settings.Notifications)
			fmt.Printf("dataCollection: %v\n", settings.DataCollection)

			names := make([]string, 0, len(settings.Integrations))
			for name := range settings.Integrations {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("integrations.%s: %v\n", name, settings.Integrations[name])
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set key=value [key=value ...]",
		Short: "Send a settings patch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parsePatch(args)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.acts.SaveSettings(context.Background(), patch); err != nil {
				return err
			}
			fmt.Println("Settings saved.")
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

// parsePatch turns key=value arguments into a settings patch. Booleans
// are parsed; theme stays a string; dotted integration keys pass
// through untouched.
func parsePatch(args []string) (api.SettingsPatch, error) {
	patch := api.SettingsPatch{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid setting %q, expected key=value", arg)
		}

		if key == "theme" {
			patch[key] = value
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for %s, expected true/false", value, key)
		}
		patch[key] = b
	}
	return patch, nil
}

func newReportCmd() *cobra.Command {
	var (
		history bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "report [insight-id]",
		Short: "Generate a report for an insight, or list recorded reports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if history {
				var reports []api.Report
				if len(args) == 1 {
					reports, err = a.db.ReportsForInsight(args[0])
				} else {
					reports, err = a.db.RecentReports(limit)
				}
				if err != nil {
					return err
				}
				if len(reports) == 0 {
					fmt.Println("No reports recorded.")
					return nil
				}
				for _, r := range reports {
					fmt.Println(formatReportLine(r))
				}
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("an insight id is required to generate a report")
			}

			report, err := a.acts.GenerateReport(context.Background(), args[0])
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "list recorded reports instead of generating one")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum history entries to list")
	return cmd
}

// formatReportLine renders one history entry: timestamp, insight,
// report id and the summary when the body carries one.
func formatReportLine(r api.Report) string {
	line := fmt.Sprintf("%s  %-12s  %s", r.GeneratedAt.Format("2006-01-02 15:04"), r.InsightID, r.ID)
	if summary, ok := r.Body["summary"].(string); ok && summary != "" {
		line += "  " + summary
	}
	return line
}

func newExportCmd() *cobra.Command {
	var (
		format string
		days   int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download an export payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != string(api.ExportCSV) && format != string(api.ExportJSON) {
				return fmt.Errorf("invalid format %q, expected csv or json", format)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			end := time.Now()
			if out == "" {
				out = fmt.Sprintf("lucent-export-%s.%s", end.Format("20060102-150405"), format)
			}

			if err := a.acts.ExportData(context.Background(), api.ExportFormat(format), end.AddDate(0, 0, -days), end, out); err != nil {
				return err
			}
			fmt.Printf("Export written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format (csv or json)")
	cmd.Flags().IntVar(&days, "days", 30, "how many days of data to export")
	cmd.Flags().StringVar(&out, "out", "", "output path (defaults to a timestamped file)")
	return cmd
}
