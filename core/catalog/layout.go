package catalog

import (
	"os"
	"path/filepath"
)

// RequiredFolders lists the folders a library checkout must contain.
var RequiredFolders = []string{string(DeviceTypes)}

// OptionalFolders are used when present.
var OptionalFolders = []string{string(ModuleTypes), RolesDir, ImagesDir}

// LayoutReport describes which library folders exist.
type LayoutReport struct {
	Missing  []string `json:"missing"`
	Optional []string `json:"optional_missing"`
}

// OK reports whether every required folder is present.
func (r LayoutReport) OK() bool {
	return len(r.Missing) == 0
}

// CheckStructure reports the required and optional folders missing from the checkout.
func (l *Loader) CheckStructure() LayoutReport {
	var report LayoutReport
	for _, folder := range RequiredFolders {
		if !isDir(filepath.Join(l.root, folder)) {
			report.Missing = append(report.Missing, folder)
		}
	}
	for _, folder := range OptionalFolders {
		if !isDir(filepath.Join(l.root, folder)) {
			report.Optional = append(report.Optional, folder)
		}
	}
	return report
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
