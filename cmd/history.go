package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dtl-import/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errHistoryDisabled = errors.New("history database is not enabled (DATABASE_ENABLED=true)")

// historyCmd lists recorded import runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded import runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Database.Enabled {
			return errHistoryDisabled
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		hist, err := openHistory(cfg.Database, l)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		runs, err := hist.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		if len(runs) == 0 {
			l.Info("No runs recorded")
		}
		for _, run := range runs {
			l.Info("Run",
				zap.String("id", run.ID),
				zap.Time("started_at", run.StartedAt),
				zap.Int64("duration_ms", run.DurationMs),
				zap.Bool("dry_run", run.DryRun),
				zap.String("netbox_version", run.NetBoxVersion),
				zap.Int("devices_added", run.DevicesAdded),
				zap.Int("ports_updated", run.PortsUpdated),
				zap.Int("manufacturers_created", run.ManufacturersCreated),
				zap.Int("modules_added", run.ModulesAdded),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of runs to show")
	historyCmd.Flags().Bool("json", false, "Output the runs as JSON")
	RootCmd.AddCommand(historyCmd)
}
