package reconcile

import (
	"context"

	"dtl-import/core/catalog"
	"dtl-import/core/utils"

	"go.uber.org/zap"
)

// reconcileComponents reconciles the sub-entities of one parent, kind by kind in order.
// Kinds the scope does not accept are counted as unresolved.
func (e *Engine) reconcileComponents(ctx context.Context, scope Scope, components map[catalog.Kind][]catalog.Component, order []catalog.Kind) {
	for _, kind := range order {
		list := components[kind]
		if len(list) == 0 {
			continue
		}
		spec, ok := Specs[kind]
		if !ok {
			continue
		}
		if !spec.Supports(scope.Type) {
			e.logger.Warn("Sub-entity kind not supported for scope",
				zap.String("kind", string(kind)), zap.String("scope", string(scope.Type)), zap.Int("count", len(list)))
			e.tally(TallyKey(scope.Type, kind)).Unresolved += len(list)
			continue
		}
		e.reconcileKind(ctx, spec, scope, list)
	}
}

// reconcileKind creates the components of one kind missing under scope with a single
// batched call. Cross-reference fields are rewritten from sibling names to remote ids.
func (e *Engine) reconcileKind(ctx context.Context, spec KindSpec, scope Scope, components []catalog.Component) {
	t := e.tally(TallyKey(scope.Type, spec.Kind))
	log := e.logger.With(zap.String("kind", string(spec.Kind)), zap.String("scope", string(scope.Type)), zap.Int("scope_id", scope.ID))

	index, err := e.cache.index(ctx, e.client, spec, scope)
	if err != nil {
		log.Error("Failed to list existing sub-entities", errorFields(err)...)
		t.Failed += len(components)
		return
	}

	var pending []catalog.Component
	for _, c := range components {
		if obj, ok := index[c.Name]; ok {
			log.Debug("Sub-entity exists", zap.String("name", c.Name), zap.Int("id", obj.ID))
			t.Existing++
			continue
		}
		pending = append(pending, c)
	}
	if len(pending) == 0 {
		return
	}

	payloads := make([]map[string]any, 0, len(pending))
	names := make([]string, 0, len(pending))
	for _, c := range pending {
		payload := make(map[string]any, len(c.Attributes)+1)
		for k, v := range c.Attributes {
			payload[k] = v
		}
		payload[string(scope.Type)] = scope.ID

		if spec.CrossRef != nil && !e.resolveCrossRef(ctx, log, spec.CrossRef, scope, c.Name, payload) {
			t.Unresolved++
			continue
		}

		log.Debug("Sub-entity queued for addition", zap.String("name", c.Name))
		payloads = append(payloads, payload)
		names = append(names, c.Name)
	}
	if len(payloads) == 0 {
		return
	}

	if e.opts.DryRun {
		t.Planned += len(payloads)
		e.cache.plan(scope, spec.Kind, names)
		return
	}

	created, err := e.client.Create(ctx, spec.Endpoint, payloads)
	if err != nil {
		log.Error("Failed to create sub-entities", append(errorFields(err), zap.Int("count", len(payloads)))...)
		t.Failed += len(payloads)
		return
	}

	e.cache.merge(scope, spec.Kind, created)
	for _, obj := range created {
		log.Debug("Sub-entity created", zap.String("name", obj.Name), zap.Int("id", obj.ID))
	}
	t.Created += len(created)
	if missing := len(payloads) - len(created); missing > 0 {
		t.Failed += missing
	}

	switch scope.Type {
	case ScopeDeviceType:
		e.counters.Updated += len(created)
	case ScopeModuleType:
		e.counters.ModulePortAdded += len(created)
	}
}

// resolveCrossRef rewrites the reference field of payload to the sibling's remote id.
// It returns false when a required reference cannot be resolved. An unresolved
// optional reference is removed from the payload.
func (e *Engine) resolveCrossRef(ctx context.Context, log *zap.Logger, ref *CrossRef, scope Scope, name string, payload map[string]any) bool {
	target := utils.ToString(payload[ref.Field])
	if target == "" {
		delete(payload, ref.Field)
		if ref.Required {
			log.Warn("Sub-entity has no reference, skipping", zap.String("name", name), zap.String("field", ref.Field))
			return false
		}
		return true
	}

	siblings, err := e.cache.index(ctx, e.client, Specs[ref.Kind], scope)
	if err != nil {
		log.Error("Failed to list referenced sub-entities", append(errorFields(err), zap.String("ref_kind", string(ref.Kind)))...)
		siblings = nil
	}

	if sibling, ok := siblings[target]; ok {
		payload[ref.Field] = sibling.ID
		return true
	}
	if e.opts.DryRun && e.cache.isPlanned(scope, ref.Kind, target) {
		return true
	}

	delete(payload, ref.Field)
	if ref.Required {
		log.Warn("Referenced sub-entity not found, skipping",
			zap.String("name", name), zap.String("field", ref.Field), zap.String("ref", target))
		return false
	}
	return true
}
