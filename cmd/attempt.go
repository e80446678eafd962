package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/assessment"
)

var beginCmd = &cobra.Command{
	Use:   "begin <slug>",
	Short: "Resume or start an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return startAttempt(cmd, args[0], false)
	},
}

var retakeCmd = &cobra.Command{
	Use:   "retake <slug>",
	Short: "Start a fresh attempt at an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return startAttempt(cmd, args[0], true)
	},
}

func startAttempt(cmd *cobra.Command, slug string, fresh bool) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	who := identity(cmd)
	var a *assessment.Attempt
	if fresh {
		a, err = e.svc.Retake(cmd.Context(), who, slug)
	} else {
		a, err = e.svc.Begin(cmd.Context(), who, slug)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", a.ID, a.Slug, a.Status)
	return nil
}

var answerCmd = &cobra.Command{
	Use:   "answer <attempt> <question> <value>",
	Short: "Record an answer, replacing any earlier answer to the question",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		spent, _ := cmd.Flags().GetDuration("time")
		res, err := e.svc.Submit(cmd.Context(), identity(cmd), args[0], assessment.Submission{
			QuestionID: args[1],
			Raw:        args[2],
			TimeSpent:  spent,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		p := res.Progress
		fmt.Fprintf(out, "%d/%d answered (%.2f%%)\n", p.Answered, p.Total, p.Percent)
		if res.Unscored {
			fmt.Fprintln(out, "note: this answer is stored but does not count towards any score")
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <attempt>",
	Short: "Show how many questions an attempt has answered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.svc.Progress(cmd.Context(), identity(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d answered (%.2f%%)\n", p.Answered, p.Total, p.Percent)
		return nil
	},
}

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List your attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := e.svc.Attempts(cmd.Context(), identity(cmd))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No attempts yet.")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-14s  %-11s  %-19s  %s\n", "ID", "Assessment", "Status", "Started", "Completed")
		for _, a := range list {
			done := ""
			if a.CompletedAt != nil {
				done = a.CompletedAt.Local().Format(time.DateTime)
			}
			fmt.Fprintf(out, "%-36s  %-14s  %-11s  %-19s  %s\n",
				a.ID, a.Slug, a.Status, a.StartedAt.Local().Format(time.DateTime), done)
		}
		return nil
	},
}

func init() {
	answerCmd.Flags().Duration("time", 0, "Time spent on the question, e.g. 12s")
}
