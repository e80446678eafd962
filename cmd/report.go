package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/report"
	"github.com/abhisek/careerfit/internal/ui/reportview"
)

var completeCmd = &cobra.Command{
	Use:   "complete <attempt>",
	Short: "Finish an attempt and print its report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rep, err := e.svc.Complete(cmd.Context(), identity(cmd), args[0])
		var incomplete *assessment.ErrIncompleteProfile
		if errors.As(err, &incomplete) {
			return fmt.Errorf("%w\n\nStart them with: careerfit begin %s", err, incomplete.Missing[0])
		}
		if err != nil {
			return err
		}
		return printReport(cmd, rep)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <attempt>",
	Short: "Print the report of a completed attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		top, _ := cmd.Flags().GetInt("top")
		rep, err := e.svc.Report(cmd.Context(), identity(cmd), args[0], top)
		if err != nil {
			return err
		}
		return printReport(cmd, rep)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <attempt>",
	Short: "Export a completed attempt's report as a flat record or view model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		top, _ := cmd.Flags().GetInt("top")
		format, _ := cmd.Flags().GetString("format")
		rep, err := e.svc.Report(cmd.Context(), identity(cmd), args[0], top)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			return writeJSON(cmd.OutOrStdout(), report.Flatten(rep))
		case "view":
			return writeJSON(cmd.OutOrStdout(), report.NewViewModel(rep))
		default:
			return fmt.Errorf("unknown format %q (use json or view)", format)
		}
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <attempt>",
	Short: "Show an attempt's current dimension scores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.svc.Profile(cmd.Context(), identity(cmd), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range p.Dimensions {
			if !d.Determined {
				fmt.Fprintf(out, "%-22s  %s\n", d.Name, "-")
				continue
			}
			fmt.Fprintf(out, "%-22s  %6.2f  %6.2f%%  %s\n", d.Name, d.Value, d.Percent, d.Label)
		}
		if p.Holland != nil {
			fmt.Fprintf(out, "\nHolland code: %s\n", p.Holland.Code)
		}
		return nil
	},
}

// printReport renders rep in the --output format.
func printReport(cmd *cobra.Command, rep *report.Report) error {
	output, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(output) {
	case "json":
		return writeJSON(cmd.OutOrStdout(), rep)
	case "text", "":
		width, _ := cmd.Flags().GetInt("width")
		_, err := lipgloss.Fprintln(cmd.OutOrStdout(), reportview.Render(report.NewViewModel(rep), width))
		return err
	default:
		return fmt.Errorf("unknown output %q (use text or json)", output)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{completeCmd, reportCmd} {
		c.Flags().StringP("output", "o", "text", "Output: text or json")
		c.Flags().Int("width", 0, "Render width for text output")
	}
	reportCmd.Flags().Int("top", 0, "Number of careers to include (default from config)")
	exportCmd.Flags().Int("top", 0, "Number of careers to include (default from config)")
	exportCmd.Flags().String("format", "json", "Export format: json (flat record) or view (sectioned view model)")

	rootCmd.AddCommand(profileCmd)
}
