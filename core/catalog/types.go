package catalog

// Section is a top-level folder of the library holding per-vendor YAML files.
type Section string

const (
	DeviceTypes Section = "device-types"
	ModuleTypes Section = "module-types"
)

const (
	// RolesDir holds the device role definitions.
	RolesDir = "device-roles"
	// ImagesDir holds the elevation images, one folder per vendor.
	ImagesDir = "elevation-images"
)

// Kind identifies a sub-entity list by its YAML key.
type Kind string

const (
	Interfaces         Kind = "interfaces"
	PowerPorts         Kind = "power-ports"
	PowerOutlets       Kind = "power-outlets"
	ConsolePorts       Kind = "console-ports"
	ConsoleServerPorts Kind = "console-server-ports"
	RearPorts          Kind = "rear-ports"
	FrontPorts         Kind = "front-ports"
	DeviceBays         Kind = "device-bays"
	ModuleBays         Kind = "module-bays"
)

// Kinds lists every sub-entity kind a record may declare.
var Kinds = []Kind{
	Interfaces, PowerPorts, PowerOutlets, ConsolePorts, ConsoleServerPorts,
	RearPorts, FrontPorts, DeviceBays, ModuleBays,
}

// IsKind reports whether key is a sub-entity list key.
func IsKind(key string) bool {
	for _, k := range Kinds {
		if string(k) == key {
			return true
		}
	}
	return false
}

// Manufacturer is a vendor as NetBox names it.
type Manufacturer struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Component is one sub-entity declared in a record.
// Cross-reference fields such as rear_port or power_port hold sibling names.
type Component struct {
	Name       string
	Attributes map[string]any
}

// Record is a parsed device-type or module-type file.
type Record struct {
	// Vendor is the library folder the file was found in.
	Vendor       string
	Manufacturer Manufacturer
	Model        string
	// Slug is empty for module types.
	Slug string
	// Attributes holds every top-level key except manufacturer and the sub-entity lists.
	Attributes map[string]any
	Components map[Kind][]Component
	SourcePath string
}

// DeviceRole is a parsed device role file.
type DeviceRole struct {
	Name       string
	Attributes map[string]any
}

// Set is the outcome of loading one section.
type Set struct {
	Vendors []Manufacturer
	Records []Record
	// Skipped lists the files that could not be parsed.
	Skipped []string
}

// Filter restricts which vendors and slugs are loaded. Empty lists match everything.
type Filter struct {
	Vendors []string
	Slugs   []string
}
