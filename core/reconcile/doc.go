// Package reconcile creates the device-type library entities missing from NetBox.
//
// Reconciliation is one-directional and additive: catalog records are the source of
// truth, remote records are created when absent and never updated or deleted.
//
// # Phases
//
// The importer drives an Engine through these calls, in order:
//
//	engine.ReconcileManufacturers(ctx, deviceVendors)
//	engine.ReconcileDeviceRoles(ctx, roles)
//	engine.ReconcileDeviceTypes(ctx, deviceRecords)
//	// NetBox 3.2 and later
//	engine.ReconcileManufacturers(ctx, moduleVendors)
//	engine.ReconcileModuleTypes(ctx, moduleRecords)
//
// Manufacturers and device roles are matched by name, device types by model and
// module types by manufacturer slug and model. Each phase lists the existing records
// once and issues one batched create for the missing ones.
//
// # Sub-entities
//
// Ports, outlets and bays of a device or module type share one routine configured by
// the Specs table: fetch the scope's name index, partition, resolve cross-references,
// create in one batch. Front ports need their rear port (required reference), power
// outlets may name a power port (optional reference). Order sequences the kinds so a
// referenced kind is always created first. Indexes are cached for the duration of a
// phase and extended with the objects each create returns; parents created during the
// phase are known to be empty and are never listed.
//
// # Failures
//
// A rejected request is logged with the server payload and only affects its batch.
// Nothing is retried. Counters mirror what the API actually returned and every input
// lands in exactly one Tally bucket: existing, created, unresolved, failed or planned
// (dry run).
package reconcile
