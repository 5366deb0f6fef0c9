package importer

import (
	"time"

	"dtl-import/core/reconcile"

	"go.uber.org/zap"
)

// Summary describes one import run.
type Summary struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DryRun     bool      `json:"dry_run"`
	// Commit is the library revision that was imported.
	Commit        string `json:"commit,omitempty"`
	NetBoxVersion string `json:"netbox_version"`
	Modules       bool   `json:"modules"`

	Vendors       int `json:"vendors"`
	DeviceTypes   int `json:"device_types"`
	DeviceRoles   int `json:"device_roles"`
	ModuleVendors int `json:"module_vendors"`
	ModuleTypes   int `json:"module_types"`
	// SkippedFiles counts library files that could not be parsed.
	SkippedFiles int `json:"skipped_files"`

	Report reconcile.Report `json:"report"`
}

// Duration returns how long the run took.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Log writes the end-of-run summary lines.
func (s *Summary) Log(logger *zap.Logger) {
	c := s.Report.Counters
	logger.Debug("Run finished", zap.String("run_id", s.ID), zap.Duration("duration", s.Duration()))
	logger.Info("Devices created", zap.Int("count", c.Added))
	logger.Info("Images uploaded", zap.Int("count", c.Images))
	logger.Info("Interfaces/ports updated", zap.Int("count", c.Updated))
	logger.Info("Manufacturers created", zap.Int("count", c.Manufacturer))
	logger.Info("Device roles created", zap.Int("count", c.DeviceRole))
	if s.Modules {
		logger.Info("Modules created", zap.Int("count", c.ModuleAdded))
		logger.Info("Module interfaces/ports created", zap.Int("count", c.ModulePortAdded))
	}
	if s.DryRun {
		planned := 0
		for _, t := range s.Report.Tallies {
			planned += t.Planned
		}
		logger.Info("Dry run, nothing was created", zap.Int("planned", planned))
	}
}
