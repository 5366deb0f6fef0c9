package reconcile

import (
	"context"

	"dtl-import/core/catalog"
	"dtl-import/core/netbox"
	"dtl-import/core/utils"

	"go.uber.org/zap"
)

var imageFields = []string{catalog.FrontImage, catalog.RearImage}

// parentKind configures the typed-entity routine for device or module types.
type parentKind struct {
	label    string
	scope    ScopeType
	endpoint netbox.Endpoint
	tallyKey string
	key      func(manufacturerSlug, model string) string
	counter  *int
	images   bool
}

// ReconcileDeviceTypes creates missing device types by model and then reconciles the
// sub-entities of every record, new or existing.
func (e *Engine) ReconcileDeviceTypes(ctx context.Context, records []catalog.Record) {
	e.reconcileParents(ctx, parentKind{
		label:    "Device type",
		scope:    ScopeDeviceType,
		endpoint: netbox.DeviceTypes,
		tallyKey: TallyDeviceTypes,
		key:      func(_, model string) string { return model },
		counter:  &e.counters.Added,
		images:   true,
	}, records)
}

// ReconcileModuleTypes creates missing module types keyed by manufacturer slug and
// model and then reconciles their sub-entities.
func (e *Engine) ReconcileModuleTypes(ctx context.Context, records []catalog.Record) {
	e.reconcileParents(ctx, parentKind{
		label:    "Module type",
		scope:    ScopeModuleType,
		endpoint: netbox.ModuleTypes,
		tallyKey: TallyModuleTypes,
		key:      func(manufacturer, model string) string { return manufacturer + "/" + model },
		counter:  &e.counters.ModuleAdded,
	}, records)
}

func (e *Engine) reconcileParents(ctx context.Context, kind parentKind, records []catalog.Record) {
	// Each phase starts from fresh snapshots.
	e.cache = newSnapshotCache()
	t := e.tally(kind.tallyKey)

	existing, err := e.client.List(ctx, kind.endpoint, nil)
	if err != nil {
		e.logger.Error("Failed to list existing entities", append(errorFields(err), zap.String("endpoint", string(kind.endpoint)))...)
		t.Failed += len(records)
		return
	}
	index := make(map[string]netbox.Object, len(existing))
	for _, obj := range existing {
		manufacturer := ""
		if obj.Manufacturer != nil {
			manufacturer = obj.Manufacturer.Slug
		}
		index[kind.key(manufacturer, obj.Model)] = obj
	}

	for _, record := range records {
		key := kind.key(record.Manufacturer.Slug, record.Model)
		if obj, ok := index[key]; ok {
			e.logger.Debug(kind.label+" exists", zap.String("model", record.Model), zap.Int("id", obj.ID))
			t.Existing++
			e.reconcileComponents(ctx, Scope{Type: kind.scope, ID: obj.ID}, record.Components, Order)
			continue
		}

		payload, images := parentPayload(record)
		e.logger.Debug(kind.label+" queued for addition", zap.String("model", record.Model))

		if e.opts.DryRun {
			t.Planned++
			e.nextPlanned--
			scope := Scope{Type: kind.scope, ID: e.nextPlanned}
			e.cache.seed(scope)
			e.reconcileComponents(ctx, scope, record.Components, Order)
			continue
		}

		created, err := e.client.Create(ctx, kind.endpoint, []map[string]any{payload})
		if err != nil || len(created) == 0 {
			if err != nil {
				e.logger.Error("Failed to create "+kind.label, append(errorFields(err), zap.String("model", record.Model), zap.String("file", record.SourcePath))...)
			}
			t.Failed++
			e.skipComponents(kind.scope, record.Components)
			continue
		}

		obj := created[0]
		e.logger.Debug(kind.label+" created", zap.String("model", obj.Model), zap.Int("id", obj.ID))
		t.Created++
		*kind.counter++
		index[key] = obj

		scope := Scope{Type: kind.scope, ID: obj.ID}
		e.cache.seed(scope)
		if kind.images && len(images) > 0 {
			e.uploadImages(ctx, record, obj.ID, images)
		}
		e.reconcileComponents(ctx, scope, record.Components, Order)
	}
}

// parentPayload builds the create payload of a record: its attributes without
// sub-entity lists, the manufacturer by slug and truthy image flags deferred.
func parentPayload(record catalog.Record) (map[string]any, []string) {
	payload := make(map[string]any, len(record.Attributes)+1)
	for k, v := range record.Attributes {
		payload[k] = v
	}
	payload["manufacturer"] = map[string]any{"slug": record.Manufacturer.Slug}

	var images []string
	for _, field := range imageFields {
		value, ok := payload[field]
		if !ok {
			continue
		}
		delete(payload, field)
		if utils.IsTruthy(value) {
			images = append(images, field)
		}
	}
	return payload, images
}

// skipComponents accounts for the sub-entities of a parent that could not be created.
func (e *Engine) skipComponents(scope ScopeType, components map[catalog.Kind][]catalog.Component) {
	for kind, list := range components {
		spec, ok := Specs[kind]
		switch {
		case !ok || len(list) == 0:
		case spec.Supports(scope):
			e.tally(TallyKey(scope, kind)).Failed += len(list)
		default:
			e.tally(TallyKey(scope, kind)).Unresolved += len(list)
		}
	}
}

// uploadImages attaches the elevation images found for record to a new device type.
// A missing file skips that image only.
func (e *Engine) uploadImages(ctx context.Context, record catalog.Record, id int, fields []string) {
	if e.opts.Images == nil {
		return
	}

	files := make(map[string]string, len(fields))
	for _, field := range fields {
		path, ok := e.opts.Images.FindImage(record, field)
		if !ok {
			e.logger.Warn("Elevation image not found", zap.String("slug", record.Slug), zap.String("field", field))
			continue
		}
		files[field] = path
	}
	if len(files) == 0 {
		return
	}

	if err := e.client.UploadImages(ctx, id, files); err != nil {
		e.logger.Error("Failed to upload images", append(errorFields(err), zap.String("slug", record.Slug), zap.Int("id", id))...)
		return
	}
	e.logger.Debug("Images uploaded", zap.String("slug", record.Slug), zap.Int("count", len(files)))
	e.counters.Images += len(files)
}
