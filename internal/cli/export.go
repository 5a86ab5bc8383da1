package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a user's data to health_data_<id>.csv",
		RunE:  runExport,
	}
	cmd.Flags().StringP("out", "o", ".", "Output directory")
	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	coach, st, err := openCoach(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	at, err := now()
	if err != nil {
		return err
	}
	res, err := coach.ExportData(cmd.Context(), userFlag, at)
	if err != nil {
		return emit(cmd.OutOrStdout(), nil, err)
	}
	path := filepath.Join(out, res.Filename)
	if err := os.WriteFile(path, res.CSV, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
