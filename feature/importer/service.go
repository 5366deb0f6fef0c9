package importer

import (
	"context"
	"fmt"
	"time"

	"dtl-import/core/catalog"
	"dtl-import/core/netbox"
	"dtl-import/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository provides the library checkout.
type Repository interface {
	Sync(ctx context.Context) error
	Path() string
	Head() (string, error)
}

// Recorder persists run summaries.
type Recorder interface {
	Record(ctx context.Context, summary *Summary) error
}

// RunOptions controls a single run.
type RunOptions struct {
	// DryRun reads NetBox but creates nothing.
	DryRun bool
	// SkipPull imports the checkout as it is.
	SkipPull bool
}

// Service runs imports of the device-type library into NetBox.
type Service struct {
	client   netbox.Client
	repo     Repository
	filter   catalog.Filter
	logger   *zap.Logger
	archive  *Archive
	recorder Recorder
}

// NewService creates a new import service.
func NewService(client netbox.Client, repo Repository, filter catalog.Filter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		repo:   repo,
		filter: filter,
		logger: logger,
	}
}

// WithArchive stores every summary in archive.
func (s *Service) WithArchive(archive *Archive) *Service {
	s.archive = archive
	return s
}

// WithRecorder records every summary with recorder.
func (s *Service) WithRecorder(recorder Recorder) *Service {
	s.recorder = recorder
	return s
}

// Run updates the checkout and reconciles it into NetBox: manufacturers, device roles
// and device types, then module vendors and module types when NetBox supports them.
// Only setup failures are returned; rejected requests are logged and counted.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	summary := &Summary{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    opts.DryRun,
	}
	log := s.logger.With(zap.String("run_id", summary.ID))

	if !opts.SkipPull {
		if err := s.repo.Sync(ctx); err != nil {
			return nil, fmt.Errorf("failed to update library: %w", err)
		}
	}
	if head, err := s.repo.Head(); err == nil {
		summary.Commit = head
	}

	caps, err := s.capabilities(ctx)
	if err != nil {
		return nil, err
	}
	summary.NetBoxVersion = caps.Version
	summary.Modules = caps.Modules

	loader := catalog.NewLoader(s.repo.Path(), log)
	devices, err := loader.Load(catalog.DeviceTypes, s.filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load device types: %w", err)
	}
	roles, err := loader.DeviceRoles()
	if err != nil {
		return nil, fmt.Errorf("failed to load device roles: %w", err)
	}
	summary.Vendors = len(devices.Vendors)
	summary.DeviceTypes = len(devices.Records)
	summary.DeviceRoles = len(roles)
	summary.SkippedFiles = len(devices.Skipped)
	log.Info("Vendors found", zap.Int("count", summary.Vendors))
	log.Info("Device types found", zap.Int("count", summary.DeviceTypes))
	log.Info("Device roles found", zap.Int("count", summary.DeviceRoles))

	engine := reconcile.New(s.client, log, reconcile.Options{DryRun: opts.DryRun, Images: loader})
	engine.ReconcileManufacturers(ctx, devices.Vendors)
	engine.ReconcileDeviceRoles(ctx, roles)
	engine.ReconcileDeviceTypes(ctx, devices.Records)

	if caps.Modules {
		log.Info("Modules enabled, creating modules")
		modules, err := loader.Load(catalog.ModuleTypes, s.filter)
		if err != nil {
			log.Warn("Module types not loaded", zap.Error(err))
		} else {
			summary.ModuleVendors = len(modules.Vendors)
			summary.ModuleTypes = len(modules.Records)
			summary.SkippedFiles += len(modules.Skipped)
			log.Info("Module vendors found", zap.Int("count", summary.ModuleVendors))
			log.Info("Module types found", zap.Int("count", summary.ModuleTypes))

			engine.ReconcileManufacturers(ctx, modules.Vendors)
			engine.ReconcileModuleTypes(ctx, modules.Records)
		}
	}

	summary.FinishedAt = time.Now().UTC()
	summary.Report = engine.Report()
	summary.Log(log)
	s.persist(ctx, log, summary)

	return summary, nil
}

func (s *Service) capabilities(ctx context.Context) (netbox.Capabilities, error) {
	version, err := s.client.Version(ctx)
	if err != nil {
		return netbox.Capabilities{}, fmt.Errorf("failed to read netbox version: %w", err)
	}
	caps, err := netbox.ParseCapabilities(version)
	if err != nil {
		return netbox.Capabilities{}, err
	}
	return caps, nil
}

// persist hands the summary to the recorder and the archive. Failures are logged only.
func (s *Service) persist(ctx context.Context, log *zap.Logger, summary *Summary) {
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, summary); err != nil {
			log.Warn("Failed to record run", zap.Error(err))
		}
	}
	if s.archive != nil {
		if name, err := s.archive.Store(ctx, summary); err != nil {
			log.Warn("Failed to archive run summary", zap.Error(err))
		} else {
			log.Debug("Run summary archived", zap.String("object", name))
		}
	}
}

// CheckReport is the outcome of a pre-flight check.
type CheckReport struct {
	Layout        catalog.LayoutReport `json:"layout"`
	NetBoxVersion string               `json:"netbox_version,omitempty"`
	Modules       bool                 `json:"modules"`
	NetBoxError   string               `json:"netbox_error,omitempty"`
}

// OK reports whether an import can run.
func (r CheckReport) OK() bool {
	return r.Layout.OK() && r.NetBoxError == ""
}

// Check verifies the checkout layout and NetBox reachability without changing anything.
func (s *Service) Check(ctx context.Context) CheckReport {
	report := CheckReport{
		Layout: catalog.NewLoader(s.repo.Path(), s.logger).CheckStructure(),
	}
	caps, err := s.capabilities(ctx)
	if err != nil {
		report.NetBoxError = err.Error()
		return report
	}
	report.NetBoxVersion = caps.Version
	report.Modules = caps.Modules
	return report
}
