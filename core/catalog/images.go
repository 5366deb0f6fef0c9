package catalog

import (
	"path/filepath"
	"sort"
)

// Image faces and the device-type fields they are uploaded to.
const (
	FrontImage = "front_image"
	RearImage  = "rear_image"
)

var imageFaces = map[string]string{
	FrontImage: "front",
	RearImage:  "rear",
}

// FindImage returns the elevation image of record for field (front_image or rear_image).
// Images live at elevation-images/<vendor>/<slug>.<front|rear>.<ext>.
func (l *Loader) FindImage(record Record, field string) (string, bool) {
	face, ok := imageFaces[field]
	if !ok || record.Slug == "" {
		return "", false
	}

	pattern := filepath.Join(l.root, ImagesDir, glob(record.Vendor), glob(record.Slug)+"."+face+".*")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

// glob escapes the pattern metacharacters of a literal path element.
func glob(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
