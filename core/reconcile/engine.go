package reconcile

import (
	"context"
	"errors"

	"dtl-import/core/catalog"
	"dtl-import/core/netbox"

	"go.uber.org/zap"
)

// Engine creates the catalog entities missing from NetBox.
// It never updates or deletes remote records and is not safe for concurrent use.
type Engine struct {
	client   netbox.Client
	logger   *zap.Logger
	opts     Options
	counters Counters
	tallies  map[string]*Tally
	cache    *snapshotCache
	// nextPlanned hands out placeholder scope ids for parents a dry run would create.
	nextPlanned int
}

// New creates an Engine.
func New(client netbox.Client, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		client:  client,
		logger:  logger,
		opts:    opts,
		tallies: make(map[string]*Tally),
		cache:   newSnapshotCache(),
	}
}

// Counters returns the counters accumulated so far.
func (e *Engine) Counters() Counters {
	return e.counters
}

// Report returns the counters and a copy of every tally.
func (e *Engine) Report() Report {
	tallies := make(map[string]Tally, len(e.tallies))
	for key, t := range e.tallies {
		tallies[key] = *t
	}
	return Report{Counters: e.counters, Tallies: tallies}
}

func (e *Engine) tally(key string) *Tally {
	t, ok := e.tallies[key]
	if !ok {
		t = &Tally{}
		e.tallies[key] = t
	}
	return t
}

// named is a top-level candidate keyed by name.
type named struct {
	name    string
	payload map[string]any
}

// ReconcileManufacturers creates the vendors that have no manufacturer of the same name.
func (e *Engine) ReconcileManufacturers(ctx context.Context, vendors []catalog.Manufacturer) {
	candidates := make([]named, 0, len(vendors))
	for _, v := range vendors {
		candidates = append(candidates, named{name: v.Name, payload: map[string]any{"name": v.Name, "slug": v.Slug}})
	}
	e.reconcileNamed(ctx, "Manufacturer", netbox.Manufacturers, TallyManufacturers, candidates, &e.counters.Manufacturer)
}

// ReconcileDeviceRoles creates the device roles that do not exist yet.
func (e *Engine) ReconcileDeviceRoles(ctx context.Context, roles []catalog.DeviceRole) {
	candidates := make([]named, 0, len(roles))
	for _, r := range roles {
		payload := make(map[string]any, len(r.Attributes)+1)
		for k, v := range r.Attributes {
			payload[k] = v
		}
		payload["name"] = r.Name
		candidates = append(candidates, named{name: r.Name, payload: payload})
	}
	e.reconcileNamed(ctx, "Device role", netbox.DeviceRoles, TallyDeviceRoles, candidates, &e.counters.DeviceRole)
}

// reconcileNamed partitions candidates against a fresh listing and creates the
// missing ones with one batched call. A failed call leaves counter unchanged.
func (e *Engine) reconcileNamed(ctx context.Context, label string, endpoint netbox.Endpoint, tallyKey string, candidates []named, counter *int) {
	t := e.tally(tallyKey)

	existing, err := e.client.List(ctx, endpoint, nil)
	if err != nil {
		e.logger.Error("Failed to list existing entities", append(errorFields(err), zap.String("endpoint", string(endpoint)))...)
		t.Failed += len(candidates)
		return
	}
	index := make(map[string]netbox.Object, len(existing))
	for _, obj := range existing {
		index[obj.Name] = obj
	}

	seen := make(map[string]bool, len(candidates))
	var toCreate []map[string]any
	for _, c := range candidates {
		if obj, ok := index[c.name]; ok {
			e.logger.Debug(label+" exists", zap.String("name", c.name), zap.Int("id", obj.ID))
			t.Existing++
			continue
		}
		if seen[c.name] {
			t.Existing++
			continue
		}
		seen[c.name] = true
		e.logger.Debug(label+" queued for addition", zap.String("name", c.name))
		toCreate = append(toCreate, c.payload)
	}

	if len(toCreate) == 0 {
		return
	}
	if e.opts.DryRun {
		t.Planned += len(toCreate)
		return
	}

	created, err := e.client.Create(ctx, endpoint, toCreate)
	if err != nil {
		e.logger.Error("Failed to create entities", append(errorFields(err), zap.String("endpoint", string(endpoint)), zap.Int("count", len(toCreate)))...)
		t.Failed += len(toCreate)
		return
	}

	for _, obj := range created {
		e.logger.Debug(label+" created", zap.String("name", obj.Name), zap.Int("id", obj.ID))
	}
	*counter += len(created)
	t.Created += len(created)
	if missing := len(toCreate) - len(created); missing > 0 {
		t.Failed += missing
	}
}

// errorFields describes err for logging, including the server payload of a rejected request.
func errorFields(err error) []zap.Field {
	var reqErr *netbox.RequestError
	if errors.As(err, &reqErr) {
		return []zap.Field{
			zap.Int("status", reqErr.StatusCode),
			zap.String("response", reqErr.Body),
			zap.Error(err),
		}
	}
	return []zap.Field{zap.Error(err)}
}
