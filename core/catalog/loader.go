package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"dtl-import/core/utils"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	yamlExtensions = []string{".yaml", ".yml"}
	nonWord        = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// Slugify lowercases name and replaces runs of non-word characters with a dash.
func Slugify(name string) string {
	return nonWord.ReplaceAllString(strings.ToLower(name), "-")
}

// Loader reads records from a device-type library checkout.
type Loader struct {
	root   string
	logger *zap.Logger
}

// NewLoader creates a loader for the library checked out at root.
func NewLoader(root string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{root: root, logger: logger}
}

// Root returns the library path.
func (l *Loader) Root() string {
	return l.root
}

// Load discovers the vendors of section and parses their files, applying filter.
// Files that fail to parse are logged and listed in Set.Skipped.
func (l *Loader) Load(section Section, filter Filter) (*Set, error) {
	base := filepath.Join(l.root, string(section))
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", base, err)
	}

	wanted := make(map[string]bool, len(filter.Vendors))
	for _, v := range filter.Vendors {
		wanted[strings.ToLower(v)] = true
	}

	set := &Set{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := entry.Name()
		if strings.EqualFold(folder, "testing") {
			continue
		}
		if len(wanted) > 0 && !wanted[strings.ToLower(folder)] {
			continue
		}

		set.Vendors = append(set.Vendors, Manufacturer{Name: folder, Slug: Slugify(folder)})

		files, err := yamlFiles(filepath.Join(base, folder))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			record, err := l.parseRecord(folder, file)
			if err != nil {
				l.logger.Warn("Skipping unreadable file", zap.String("file", file), zap.Error(err))
				set.Skipped = append(set.Skipped, file)
				continue
			}
			if !matchesSlug(section, record, filter.Slugs) {
				continue
			}
			set.Records = append(set.Records, *record)
		}
	}

	return set, nil
}

// DeviceRoles parses the device-roles folder. A missing folder yields no roles.
func (l *Loader) DeviceRoles() ([]DeviceRole, error) {
	dir := filepath.Join(l.root, RolesDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}

	var roles []DeviceRole
	for _, file := range files {
		data, err := readYAML(file)
		if err != nil {
			l.logger.Warn("Skipping unreadable file", zap.String("file", file), zap.Error(err))
			continue
		}
		name := utils.ToString(data["name"])
		if name == "" {
			l.logger.Warn("Skipping device role without name", zap.String("file", file))
			continue
		}
		if utils.ToString(data["slug"]) == "" {
			data["slug"] = Slugify(name)
		}
		roles = append(roles, DeviceRole{Name: name, Attributes: data})
	}
	return roles, nil
}

func (l *Loader) parseRecord(vendor, file string) (*Record, error) {
	data, err := readYAML(file)
	if err != nil {
		return nil, err
	}

	model := utils.ToString(data["model"])
	if model == "" {
		return nil, fmt.Errorf("missing model")
	}

	manufacturer := utils.ToString(data["manufacturer"])
	if manufacturer == "" {
		manufacturer = vendor
	}

	record := &Record{
		Vendor:       vendor,
		Manufacturer: Manufacturer{Name: manufacturer, Slug: Slugify(manufacturer)},
		Model:        model,
		Slug:         utils.ToString(data["slug"]),
		Attributes:   make(map[string]any),
		Components:   make(map[Kind][]Component),
		SourcePath:   file,
	}

	for key, value := range data {
		switch {
		case key == "manufacturer":
		case IsKind(key):
			components, err := parseComponents(key, value)
			if err != nil {
				return nil, err
			}
			record.Components[Kind(key)] = components
		default:
			record.Attributes[key] = value
		}
	}

	return record, nil
}

func parseComponents(key string, value any) ([]Component, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list", key)
	}

	components := make([]Component, 0, len(items))
	for i, item := range items {
		attrs, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not a mapping", key, i)
		}
		name := utils.ToString(attrs["name"])
		if name == "" {
			return nil, fmt.Errorf("%s[%d] has no name", key, i)
		}
		components = append(components, Component{Name: name, Attributes: attrs})
	}
	return components, nil
}

func matchesSlug(section Section, record *Record, slugs []string) bool {
	if len(slugs) == 0 {
		return true
	}
	slug := record.Slug
	if section == ModuleTypes || slug == "" {
		slug = Slugify(record.Model)
	}
	for _, s := range slugs {
		if strings.EqualFold(s, slug) {
			return true
		}
	}
	return false
}

func readYAML(file string) (map[string]any, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("empty document")
	}
	return data, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, allowed := range yamlExtensions {
			if ext == allowed {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
