package reconcile

import (
	"context"
	"net/url"
	"strconv"

	"dtl-import/core/catalog"
	"dtl-import/core/netbox"
)

// Scope identifies one parent record.
type Scope struct {
	Type ScopeType
	ID   int
}

type snapshotKey struct {
	scope Scope
	kind  catalog.Kind
}

// snapshotCache holds the existing sub-entities of each kind and scope, indexed by name.
// It lives for one phase: snapshots are fetched once and extended with created records.
type snapshotCache struct {
	indexes map[snapshotKey]map[string]netbox.Object
	// empty marks scopes created during the phase, which have no sub-entities yet.
	empty map[Scope]bool
	// planned holds the names a dry run would create.
	planned map[snapshotKey]map[string]bool
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{
		indexes: make(map[snapshotKey]map[string]netbox.Object),
		empty:   make(map[Scope]bool),
		planned: make(map[snapshotKey]map[string]bool),
	}
}

// seed marks scope as freshly created so no listing is issued for it.
func (c *snapshotCache) seed(scope Scope) {
	c.empty[scope] = true
}

// index returns the name index of kind under scope, listing it on first use.
func (c *snapshotCache) index(ctx context.Context, client netbox.Client, spec KindSpec, scope Scope) (map[string]netbox.Object, error) {
	key := snapshotKey{scope: scope, kind: spec.Kind}
	if idx, ok := c.indexes[key]; ok {
		return idx, nil
	}

	idx := make(map[string]netbox.Object)
	if !c.empty[scope] {
		filter := url.Values{scopeFilters[scope.Type]: {strconv.Itoa(scope.ID)}}
		objects, err := client.List(ctx, spec.Endpoint, filter)
		if err != nil {
			return nil, err
		}
		for _, obj := range objects {
			idx[obj.Name] = obj
		}
	}

	c.indexes[key] = idx
	return idx, nil
}

// merge adds created objects to the index of kind under scope.
func (c *snapshotCache) merge(scope Scope, kind catalog.Kind, objects []netbox.Object) {
	key := snapshotKey{scope: scope, kind: kind}
	idx, ok := c.indexes[key]
	if !ok {
		idx = make(map[string]netbox.Object)
		c.indexes[key] = idx
	}
	for _, obj := range objects {
		idx[obj.Name] = obj
	}
}

func (c *snapshotCache) plan(scope Scope, kind catalog.Kind, names []string) {
	key := snapshotKey{scope: scope, kind: kind}
	set, ok := c.planned[key]
	if !ok {
		set = make(map[string]bool)
		c.planned[key] = set
	}
	for _, name := range names {
		set[name] = true
	}
}

func (c *snapshotCache) isPlanned(scope Scope, kind catalog.Kind, name string) bool {
	return c.planned[snapshotKey{scope: scope, kind: kind}][name]
}
