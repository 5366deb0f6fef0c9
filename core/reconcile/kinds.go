package reconcile

import (
	"dtl-import/core/catalog"
	"dtl-import/core/netbox"
)

var bothScopes = []ScopeType{ScopeDeviceType, ScopeModuleType}

// Specs describes every sub-entity kind.
var Specs = map[catalog.Kind]KindSpec{
	catalog.Interfaces:         {Kind: catalog.Interfaces, Endpoint: netbox.InterfaceTemplates, Scopes: bothScopes},
	catalog.PowerPorts:         {Kind: catalog.PowerPorts, Endpoint: netbox.PowerPortTemplates, Scopes: bothScopes},
	catalog.ConsolePorts:       {Kind: catalog.ConsolePorts, Endpoint: netbox.ConsolePortTemplates, Scopes: bothScopes},
	catalog.ConsoleServerPorts: {Kind: catalog.ConsoleServerPorts, Endpoint: netbox.ConsoleServerPortTemplates, Scopes: bothScopes},
	catalog.RearPorts:          {Kind: catalog.RearPorts, Endpoint: netbox.RearPortTemplates, Scopes: bothScopes},
	catalog.PowerOutlets: {
		Kind:     catalog.PowerOutlets,
		Endpoint: netbox.PowerOutletTemplates,
		CrossRef: &CrossRef{Field: "power_port", Kind: catalog.PowerPorts},
		Scopes:   bothScopes,
	},
	catalog.FrontPorts: {
		Kind:     catalog.FrontPorts,
		Endpoint: netbox.FrontPortTemplates,
		CrossRef: &CrossRef{Field: "rear_port", Kind: catalog.RearPorts, Required: true},
		Scopes:   bothScopes,
	},
	catalog.DeviceBays: {Kind: catalog.DeviceBays, Endpoint: netbox.DeviceBayTemplates, Scopes: []ScopeType{ScopeDeviceType}},
	catalog.ModuleBays: {Kind: catalog.ModuleBays, Endpoint: netbox.ModuleBayTemplates, Scopes: bothScopes},
}

// Order is the sequence sub-entity kinds are reconciled in.
// Rear ports precede front ports and power ports precede power outlets.
var Order = []catalog.Kind{
	catalog.Interfaces,
	catalog.PowerPorts,
	catalog.ConsolePorts,
	catalog.PowerOutlets,
	catalog.ConsoleServerPorts,
	catalog.RearPorts,
	catalog.FrontPorts,
	catalog.DeviceBays,
	catalog.ModuleBays,
}
