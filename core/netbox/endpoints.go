package netbox

// Endpoint is a NetBox REST endpoint path relative to /api/.
type Endpoint string

const (
	Manufacturers Endpoint = "dcim/manufacturers"
	DeviceRoles   Endpoint = "dcim/device-roles"
	DeviceTypes   Endpoint = "dcim/device-types"
	ModuleTypes   Endpoint = "dcim/module-types"

	InterfaceTemplates         Endpoint = "dcim/interface-templates"
	PowerPortTemplates         Endpoint = "dcim/power-port-templates"
	PowerOutletTemplates       Endpoint = "dcim/power-outlet-templates"
	ConsolePortTemplates       Endpoint = "dcim/console-port-templates"
	ConsoleServerPortTemplates Endpoint = "dcim/console-server-port-templates"
	RearPortTemplates          Endpoint = "dcim/rear-port-templates"
	FrontPortTemplates         Endpoint = "dcim/front-port-templates"
	DeviceBayTemplates         Endpoint = "dcim/device-bay-templates"
	ModuleBayTemplates         Endpoint = "dcim/module-bay-templates"
)
