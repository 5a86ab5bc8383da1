// Package cli implements healthctl, a local console for the coach that
// talks to the configured store directly.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/config"
	"github.com/yourname/healthcoach/internal/render"
	"github.com/yourname/healthcoach/internal/service"
	"github.com/yourname/healthcoach/internal/storage"
)

var (
	backendFlag string
	pathFlag    string
	formatFlag  string
	userFlag    uint64
	nowFlag     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:          "healthctl",
	Short:        "Drive the health coach from a terminal",
	Long:         "Run coach commands, chat and export user data against the configured store without the HTTP server.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "Storage backend: file, sqlite or postgres (default from config)")
	RootCmd.PersistentFlags().StringVarP(&pathFlag, "db", "d", "", "Data file, SQLite path or Postgres DSN for the chosen backend")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().Uint64VarP(&userFlag, "user", "u", 0, "User id")
	RootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "Override the clock (RFC 3339)")
}

// loadConfig applies flag overrides on top of the usual config sources.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(os.Getenv("HEALTHCOACH_CONFIG"))
	if err != nil {
		return nil, err
	}
	if backendFlag != "" {
		cfg.StorageBackend = backendFlag
	}
	if pathFlag != "" {
		switch cfg.StorageBackend {
		case config.BackendFile:
			cfg.DataFile = pathFlag
		case config.BackendSQLite:
			cfg.SQLitePath = pathFlag
		case config.BackendPostgres:
			cfg.PostgresDSN = pathFlag
		}
	}
	return cfg, cfg.Validate()
}

func openCoach(cmd *cobra.Command) (*service.Coach, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := internal.NewLogger(cfg.Env, "warn")
	if err != nil {
		return nil, nil, err
	}
	st, err := storage.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return service.NewCoach(st, logger), st, nil
}

func now() (time.Time, error) {
	if nowFlag == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, nowFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	return t, nil
}

// emit prints a result, or the user-facing reply for a command error. Only
// storage failures make the process exit non-zero.
func emit(w io.Writer, res any, err error) error {
	if err != nil {
		if internal.StatusFor(err) >= 500 {
			return err
		}
		fmt.Fprintln(w, render.Error(err))
		return nil
	}
	if formatFlag == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	text, err := render.Text(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}
