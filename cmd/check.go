package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dtl-import/core/catalog"
	"dtl-import/core/logger"
	"dtl-import/core/netbox"
	"dtl-import/core/repo"
	"dtl-import/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errCheckFailed = errors.New("pre-flight check failed")

// checkCmd verifies the checkout and the NetBox connection without importing.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the library checkout and the NetBox connection",
	Long: `Reports missing library folders and the NetBox version, including whether module
types are supported. The checkout is not updated. Outputs log lines by default or JSON with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		client, err := netbox.NewClient(cfg.NetBox, l)
		if err != nil {
			return fmt.Errorf("failed to create netbox client: %w", err)
		}
		svc := importer.NewService(client, repo.New(cfg.Repo, l), cfg.Catalog.Filter(), l)
		report := svc.Check(cmd.Context())

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			logReport(l, report)
		}

		if !report.OK() {
			return errCheckFailed
		}
		return nil
	},
}

func logReport(l *zap.Logger, report importer.CheckReport) {
	for _, folder := range report.Layout.Missing {
		l.Error("Required folder missing", zap.String("folder", folder))
	}
	for _, folder := range report.Layout.Optional {
		l.Warn("Optional folder missing", zap.String("folder", folder))
	}
	if report.Layout.OK() {
		l.Info("Library layout OK", zap.Strings("required", catalog.RequiredFolders))
	}

	if report.NetBoxError != "" {
		l.Error("NetBox unreachable", zap.String("error", report.NetBoxError))
		return
	}
	l.Info("NetBox reachable", zap.String("version", report.NetBoxVersion), zap.Bool("modules", report.Modules))
}

func init() {
	checkCmd.Flags().Bool("json", false, "Output the report as JSON")
	RootCmd.AddCommand(checkCmd)
}
