package catalog

import "strings"

// Config holds the catalog filters.
type Config struct {
	// Vendors is a comma separated list of vendor folder names to import.
	Vendors string `mapstructure:"vendors" default:""`
	// Slugs is a space separated list of device-type slugs to import.
	Slugs string `mapstructure:"slugs" default:""`
}

// Filter returns the parsed filter lists.
func (c Config) Filter() Filter {
	var vendors []string
	for _, v := range strings.Split(c.Vendors, ",") {
		if v = strings.TrimSpace(v); v != "" {
			vendors = append(vendors, v)
		}
	}
	return Filter{
		Vendors: vendors,
		Slugs:   strings.Fields(c.Slugs),
	}
}
