package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List stored users",
		RunE:  runUsers,
	})
}

func runUsers(cmd *cobra.Command, args []string) error {
	_, st, err := openCoach(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	recs, skipped, err := st.ListAll(cmd.Context())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGOAL\tREMINDERS")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", r.UserID, r.Name, r.Goal, len(r.Reminders))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d malformed log tokens skipped\n", skipped)
	}
	return nil
}
