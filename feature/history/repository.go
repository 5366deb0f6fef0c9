package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dtl-import/core/database"
	"dtl-import/feature/history/models"
	"dtl-import/feature/importer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSchemaMismatch is returned when the history table lacks columns after migration.
var ErrSchemaMismatch = errors.New("history table schema mismatch")

// Repository stores import runs in the history database.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRepository creates a new history repository.
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates or updates the history table and verifies its columns.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Run{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", models.TableName, err)
	}

	missing, err := database.MissingColumns(r.db, models.TableName, models.Columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

// Record stores summary as a new run.
func (r *Repository) Record(ctx context.Context, summary *importer.Summary) error {
	run := models.Run{
		ID:            summary.ID,
		StartedAt:     summary.StartedAt,
		FinishedAt:    summary.FinishedAt,
		DurationMs:    summary.Duration().Milliseconds(),
		DryRun:        summary.DryRun,
		Commit:        summary.Commit,
		NetBoxVersion: summary.NetBoxVersion,
		Modules:       summary.Modules,
		Vendors:       summary.Vendors,
		DeviceTypes:   summary.DeviceTypes,
		DeviceRoles:   summary.DeviceRoles,
		ModuleVendors: summary.ModuleVendors,
		ModuleTypes:   summary.ModuleTypes,
		SkippedFiles:  summary.SkippedFiles,
	}
	run.SetCounters(summary.Report.Counters)
	if err := run.SetTallies(summary.Report.Tallies); err != nil {
		return fmt.Errorf("failed to encode tallies: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	r.logger.Debug("Run recorded", zap.String("run_id", run.ID))
	return nil
}

// List returns the newest runs first, at most limit when limit > 0.
func (r *Repository) List(ctx context.Context, limit int) ([]models.Run, error) {
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var runs []models.Run
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run by id. A missing run yields gorm.ErrRecordNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
