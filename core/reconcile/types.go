package reconcile

import (
	"dtl-import/core/catalog"
	"dtl-import/core/netbox"
)

// ScopeType is the kind of parent a sub-entity belongs to.
type ScopeType string

const (
	ScopeDeviceType ScopeType = "device_type"
	ScopeModuleType ScopeType = "module_type"
)

// scopeFilters maps a scope to the query parameter selecting its sub-entities.
var scopeFilters = map[ScopeType]string{
	ScopeDeviceType: "devicetype_id",
	ScopeModuleType: "moduletype_id",
}

// CrossRef describes a field holding the name of a sibling of another kind.
type CrossRef struct {
	// Field is the attribute rewritten from a sibling name to its remote id.
	Field string
	// Kind is the sibling kind the name refers to.
	Kind catalog.Kind
	// Required entries are skipped when the sibling cannot be resolved.
	// Optional references are dropped instead.
	Required bool
}

// KindSpec configures the generic sub-entity routine for one kind.
type KindSpec struct {
	Kind     catalog.Kind
	Endpoint netbox.Endpoint
	CrossRef *CrossRef
	// Scopes lists the parents NetBox accepts this kind under.
	Scopes []ScopeType
}

// Supports reports whether the kind can be created under scope.
func (s KindSpec) Supports(scope ScopeType) bool {
	for _, sc := range s.Scopes {
		if sc == scope {
			return true
		}
	}
	return false
}

// Counters are the outcome counts of a run.
type Counters struct {
	// Added counts device types created.
	Added int `json:"added"`
	// Updated counts device-type sub-entities created.
	Updated int `json:"updated"`
	// Manufacturer counts manufacturers created.
	Manufacturer int `json:"manufacturer"`
	// DeviceRole counts device roles created.
	DeviceRole int `json:"device_role"`
	// ModuleAdded counts module types created.
	ModuleAdded int `json:"module_added"`
	// ModulePortAdded counts module-type sub-entities created.
	ModulePortAdded int `json:"module_port_added"`
	// Images counts elevation images uploaded.
	Images int `json:"images"`
}

// Tally partitions the inputs of one kind. Every input lands in exactly one field.
type Tally struct {
	Existing   int `json:"existing"`
	Created    int `json:"created"`
	Unresolved int `json:"unresolved"`
	Failed     int `json:"failed"`
	// Planned counts entries that would be created in a dry run.
	Planned int `json:"planned"`
}

// Total returns the number of inputs accounted for.
func (t Tally) Total() int {
	return t.Existing + t.Created + t.Unresolved + t.Failed + t.Planned
}

// Report is the outcome of a run.
type Report struct {
	Counters Counters         `json:"counters"`
	Tallies  map[string]Tally `json:"tallies"`
}

// ImageLocator finds the elevation image file of a record.
type ImageLocator interface {
	FindImage(record catalog.Record, field string) (string, bool)
}

// Options controls engine behavior.
type Options struct {
	// DryRun reads snapshots but never creates anything.
	DryRun bool
	// Images resolves device-type elevation images. Nil disables uploads.
	Images ImageLocator
}

// Tally keys of the top-level kinds.
const (
	TallyManufacturers = "manufacturers"
	TallyDeviceRoles   = "device_roles"
	TallyDeviceTypes   = "device_types"
	TallyModuleTypes   = "module_types"
)

// TallyKey returns the tally key of a sub-entity kind under scope.
func TallyKey(scope ScopeType, kind catalog.Kind) string {
	return string(scope) + "/" + string(kind)
}
