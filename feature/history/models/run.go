package models

import (
	"encoding/json"
	"time"

	"dtl-import/core/reconcile"
)

// TableName of the run history.
const TableName = "import_runs"

// Run is one recorded import run.
type Run struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	StartedAt     time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt    time.Time `gorm:"column:finished_at" json:"finished_at"`
	DurationMs    int64     `gorm:"column:duration_ms" json:"duration_ms"`
	DryRun        bool      `gorm:"column:dry_run" json:"dry_run"`
	Commit        string    `gorm:"column:commit_hash;size:40" json:"commit"`
	NetBoxVersion string    `gorm:"column:netbox_version;size:32" json:"netbox_version"`
	Modules       bool      `gorm:"column:modules" json:"modules"`

	Vendors       int `gorm:"column:vendors" json:"vendors"`
	DeviceTypes   int `gorm:"column:device_types" json:"device_types"`
	DeviceRoles   int `gorm:"column:device_roles" json:"device_roles"`
	ModuleVendors int `gorm:"column:module_vendors" json:"module_vendors"`
	ModuleTypes   int `gorm:"column:module_types" json:"module_types"`
	SkippedFiles  int `gorm:"column:skipped_files" json:"skipped_files"`

	DevicesAdded         int `gorm:"column:devices_added" json:"devices_added"`
	PortsUpdated         int `gorm:"column:ports_updated" json:"ports_updated"`
	ManufacturersCreated int `gorm:"column:manufacturers_created" json:"manufacturers_created"`
	DeviceRolesCreated   int `gorm:"column:device_roles_created" json:"device_roles_created"`
	ModulesAdded         int `gorm:"column:modules_added" json:"modules_added"`
	ModulePortsAdded     int `gorm:"column:module_ports_added" json:"module_ports_added"`
	ImagesUploaded       int `gorm:"column:images_uploaded" json:"images_uploaded"`

	// Tallies holds the JSON encoded per-kind tallies.
	Tallies string `gorm:"column:tallies;type:text" json:"-"`
}

// TableName overrides the table name used by GORM.
func (Run) TableName() string {
	return TableName
}

// Columns lists the columns the history code reads and writes.
var Columns = []string{
	"id", "started_at", "finished_at", "duration_ms", "dry_run", "commit_hash", "netbox_version", "modules",
	"vendors", "device_types", "device_roles", "module_vendors", "module_types", "skipped_files",
	"devices_added", "ports_updated", "manufacturers_created", "device_roles_created",
	"modules_added", "module_ports_added", "images_uploaded", "tallies",
}

// SetCounters copies the outcome counters of a run.
func (r *Run) SetCounters(c reconcile.Counters) {
	r.DevicesAdded = c.Added
	r.PortsUpdated = c.Updated
	r.ManufacturersCreated = c.Manufacturer
	r.DeviceRolesCreated = c.DeviceRole
	r.ModulesAdded = c.ModuleAdded
	r.ModulePortsAdded = c.ModulePortAdded
	r.ImagesUploaded = c.Images
}

// SetTallies encodes tallies into the Tallies column.
func (r *Run) SetTallies(tallies map[string]reconcile.Tally) error {
	data, err := json.Marshal(tallies)
	if err != nil {
		return err
	}
	r.Tallies = string(data)
	return nil
}

// DecodeTallies returns the per-kind tallies. An empty column yields nil.
func (r *Run) DecodeTallies() (map[string]reconcile.Tally, error) {
	if r.Tallies == "" {
		return nil, nil
	}
	var tallies map[string]reconcile.Tally
	if err := json.Unmarshal([]byte(r.Tallies), &tallies); err != nil {
		return nil, err
	}
	return tallies, nil
}
