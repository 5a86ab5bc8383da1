package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:     "exec <command> [args...]",
		Short:   "Run a coach command, e.g. exec log_water 250",
		Args:    cobra.MinimumNArgs(1),
		Example: "  healthctl -u 42 exec profile Ana 70 175 fitness\n  healthctl -u 42 exec remind walk at 18:00",
		RunE:    runExec,
	})
	RootCmd.AddCommand(&cobra.Command{
		Use:   "chat <message...>",
		Short: "Send a free-text message",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChat,
	})
}

func runExec(cmd *cobra.Command, args []string) error {
	coach, st, err := openCoach(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	at, err := now()
	if err != nil {
		return err
	}
	res, err := coach.Dispatch(cmd.Context(), userFlag, at, args[0], args[1:])
	return emit(cmd.OutOrStdout(), res, err)
}

func runChat(cmd *cobra.Command, args []string) error {
	coach, st, err := openCoach(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	at, err := now()
	if err != nil {
		return err
	}
	res, err := coach.Message(cmd.Context(), userFlag, at, strings.Join(args, " "))
	return emit(cmd.OutOrStdout(), res, err)
}
