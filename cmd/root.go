package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/assessment"
)

var rootCmd = &cobra.Command{
	Use:   "careerfit",
	Short: "Psychometric assessments and career matching",
	Long: "careerfit scores interest, personality and skill assessments and ranks occupations\n" +
		"against the combined profile.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("db", "", "Path to SQLite database file (overrides CAREERFIT_DB env var)")
	pf.String("catalog", "", "Path to a YAML or JSON catalog (default: built-in catalog)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("user", "", "User id that owns attempts")
	pf.String("session", "local", "Session id that owns attempts when no --user is given")
	pf.Bool("metrics", false, "Print collected metrics to stderr on exit")

	rootCmd.AddCommand(instrumentsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(occupationsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(beginCmd)
	rootCmd.AddCommand(retakeCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(attemptsCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// identity returns the caller from --user and --session.
func identity(cmd *cobra.Command) assessment.Identity {
	user, _ := cmd.Flags().GetString("user")
	session, _ := cmd.Flags().GetString("session")
	return assessment.Identity{UserID: user, SessionID: session}
}
