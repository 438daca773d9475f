package ikctl

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/bytedance/sonic"
	"github.com/dmitrijs2005/interviewkeeper/internal/interviews"
	"github.com/spf13/cobra"
)

func newInterviewCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Inspect stored interviews",
	}
	cmd.AddCommand(newInterviewListCommand(c), newInterviewShowCommand(c))
	return cmd
}

func newInterviewListCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List the interviews of a user, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			list, err := svc.Interviews.ListInterviews(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSummaries(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func printSummaries(w io.Writer, list []*interviews.Interview) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tMODE\tTURNS")
	for _, iv := range list {
		s := iv.Summary()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.ID, s.CreatedAt, s.Mode, s.Turns)
	}
	_ = tw.Flush()
}

func newInterviewShowCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <interview-id>",
		Short: "Print an interview as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			iv, err := svc.Interviews.GetInterview(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("interview %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), iv)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	b, err := json.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
