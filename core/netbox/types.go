package netbox

import (
	"context"
	"fmt"
	"net/url"
)

// Client is the subset of the NetBox API used by the importer.
type Client interface {
	// List returns every object of the endpoint matching filter, following pagination.
	List(ctx context.Context, endpoint Endpoint, filter url.Values) ([]Object, error)
	// Create posts payload as one bulk request and returns the created objects.
	Create(ctx context.Context, endpoint Endpoint, payload []map[string]any) ([]Object, error)
	// UploadImages attaches local image files to a device type in one multipart PATCH.
	// The keys of images are the device type fields (front_image, rear_image).
	UploadImages(ctx context.Context, deviceTypeID int, images map[string]string) error
	// Version returns the API version reported by the server (e.g. "4.1").
	Version(ctx context.Context) (string, error)
}

// Ref is a nested object reference as returned inside other objects.
type Ref struct {
	ID    int    `json:"id"`
	Name  string `json:"name,omitempty"`
	Slug  string `json:"slug,omitempty"`
	Model string `json:"model,omitempty"`
}

// Object is a remote NetBox record. Only the fields needed to index
// existing records are decoded.
type Object struct {
	ID           int    `json:"id"`
	Display      string `json:"display,omitempty"`
	Name         string `json:"name,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Model        string `json:"model,omitempty"`
	Manufacturer *Ref   `json:"manufacturer,omitempty"`
	DeviceType   *Ref   `json:"device_type,omitempty"`
	ModuleType   *Ref   `json:"module_type,omitempty"`
}

// Page is one page of a NetBox list response.
type Page struct {
	Count    int      `json:"count"`
	Next     string   `json:"next"`
	Previous string   `json:"previous"`
	Results  []Object `json:"results"`
}

// RequestError is returned when NetBox answers with a non-success status.
// Body carries the server-provided error payload (usually field validation messages).
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("netbox: %s %s returned %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}
