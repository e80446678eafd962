package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/instrument"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List available assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogOnly(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		ins, err := cat.Instruments(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s  %-12s  %9s  %s\n", "Slug", "Category", "Questions", "Name")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, c := range instrument.AllCategories() {
			for _, in := range ins {
				if in.Category != c {
					continue
				}
				qs, err := cat.Questions(ctx, in.ID)
				if err != nil {
					return err
				}
				count := fmt.Sprint(len(qs))
				if in.Composite != nil {
					count = "requires " + strings.Join(in.Composite.Requires, ",")
				}
				fmt.Fprintf(out, "%-14s  %-12s  %9s  %s\n", in.Slug, c.DisplayName(), count, in.Name)
			}
		}
		return nil
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions <slug>",
	Short: "List an assessment's questions and answer options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogOnly(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		in, err := cat.Instrument(ctx, args[0])
		if err != nil {
			return err
		}
		qs, err := cat.Questions(ctx, in.ID)
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s has no questions of its own.\n", in.Name)
			return nil
		}

		out := cmd.OutOrStdout()
		for _, q := range qs {
			if !q.Active() {
				continue
			}
			fmt.Fprintf(out, "%-24s  %s\n", q.ID, q.Text)
			opts := make([]string, len(q.Options))
			for i, o := range q.Options {
				opts[i] = o.Value + "=" + o.Label
			}
			fmt.Fprintf(out, "%-24s  %s\n", "", strings.Join(opts, "  "))
		}
		return nil
	},
}

var occupationsCmd = &cobra.Command{
	Use:   "occupations",
	Short: "List occupations careers are matched against",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogOnly(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		occs, err := cat.Occupations(ctx)
		if err != nil {
			return err
		}
		var order []string
		if in, err := cat.Instrument(ctx, catalog.SlugInterests); err == nil {
			for _, d := range in.Dimensions {
				order = append(order, d.Code)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s  %-28s  %-7s  %s\n", "Code", "Title", "Holland", "Skills")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, o := range occs {
			skills := make([]string, len(o.Skills))
			for i, s := range o.Skills {
				skills[i] = fmt.Sprintf("%s>=%v", s.Skill, s.Level)
			}
			fmt.Fprintf(out, "%-8s  %-28s  %-7s  %s\n", o.Code, o.Title, o.HollandCode(order), strings.Join(skills, ", "))
		}
		fmt.Fprintf(out, "\n%d occupations\n", len(occs))
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate or print catalog documents",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML or JSON catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := catalog.Open(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		ins, _ := s.Instruments(ctx)
		occs, _ := s.Occupations(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d instruments, %d occupations)\n", args[0], len(ins), len(occs))
		return nil
	},
}

var catalogDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the built-in catalog as a starting point for a custom one",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		b := catalog.Seed()

		out := cmd.OutOrStdout()
		switch format {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(b)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		default:
			return fmt.Errorf("unknown format %q (use yaml or json)", format)
		}
	},
}

func init() {
	catalogDumpCmd.Flags().String("format", "yaml", "Output format: yaml or json")

	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogDumpCmd)
}
