package reconcile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"dtl-import/core/catalog"
	"dtl-import/core/netbox"
	"dtl-import/core/utils"
)

// fakeNetBox is an in-memory NetBox. Batches are rejected atomically, like the real API.
type fakeNetBox struct {
	nextID     int
	objects    map[netbox.Endpoint][]netbox.Object
	payloads   map[netbox.Endpoint][]map[string]any
	createCall map[netbox.Endpoint]int
	listCall   map[netbox.Endpoint]int
	failCreate map[netbox.Endpoint]error
	failList   map[netbox.Endpoint]error
	uploads    map[int]map[string]string
}

func newFakeNetBox() *fakeNetBox {
	return &fakeNetBox{
		nextID:     100,
		objects:    make(map[netbox.Endpoint][]netbox.Object),
		payloads:   make(map[netbox.Endpoint][]map[string]any),
		createCall: make(map[netbox.Endpoint]int),
		listCall:   make(map[netbox.Endpoint]int),
		failCreate: make(map[netbox.Endpoint]error),
		failList:   make(map[netbox.Endpoint]error),
		uploads:    make(map[int]map[string]string),
	}
}

func (f *fakeNetBox) List(_ context.Context, endpoint netbox.Endpoint, filter url.Values) ([]netbox.Object, error) {
	f.listCall[endpoint]++
	if err := f.failList[endpoint]; err != nil {
		return nil, err
	}

	var out []netbox.Object
	for _, obj := range f.objects[endpoint] {
		if id := filter.Get("devicetype_id"); id != "" && (obj.DeviceType == nil || strconv.Itoa(obj.DeviceType.ID) != id) {
			continue
		}
		if id := filter.Get("moduletype_id"); id != "" && (obj.ModuleType == nil || strconv.Itoa(obj.ModuleType.ID) != id) {
			continue
		}
		out = append(out, obj)
	}
	return out, nil
}

func (f *fakeNetBox) Create(_ context.Context, endpoint netbox.Endpoint, payload []map[string]any) ([]netbox.Object, error) {
	f.createCall[endpoint]++
	if err := f.failCreate[endpoint]; err != nil {
		return nil, err
	}

	created := make([]netbox.Object, 0, len(payload))
	for _, p := range payload {
		obj, err := f.build(endpoint, p)
		if err != nil {
			return nil, err
		}
		created = append(created, obj)
	}

	f.objects[endpoint] = append(f.objects[endpoint], created...)
	f.payloads[endpoint] = append(f.payloads[endpoint], payload...)
	return created, nil
}

func (f *fakeNetBox) build(endpoint netbox.Endpoint, p map[string]any) (netbox.Object, error) {
	f.nextID++
	obj := netbox.Object{
		ID:    f.nextID,
		Name:  utils.ToString(p["name"]),
		Slug:  utils.ToString(p["slug"]),
		Model: utils.ToString(p["model"]),
	}
	if m, ok := p["manufacturer"].(map[string]any); ok {
		obj.Manufacturer = &netbox.Ref{Slug: utils.ToString(m["slug"])}
	}
	if id, ok := p["device_type"].(int); ok {
		obj.DeviceType = &netbox.Ref{ID: id}
	}
	if id, ok := p["module_type"].(int); ok {
		obj.ModuleType = &netbox.Ref{ID: id}
	}

	if endpoint == netbox.FrontPortTemplates {
		if _, ok := p["rear_port"].(int); !ok {
			return obj, badRequest(endpoint, `{"rear_port":["This field is required."]}`)
		}
	}
	if _, ok := p["front_image"]; ok {
		return obj, badRequest(endpoint, `{"front_image":["The submitted data was not a file."]}`)
	}
	for _, existing := range f.objects[endpoint] {
		if obj.Name != "" && existing.Name == obj.Name && sameParent(existing, obj) {
			return obj, badRequest(endpoint, fmt.Sprintf(`{"name":["%s already exists"]}`, obj.Name))
		}
	}
	return obj, nil
}

func sameParent(a, b netbox.Object) bool {
	switch {
	case a.DeviceType != nil && b.DeviceType != nil:
		return a.DeviceType.ID == b.DeviceType.ID
	case a.ModuleType != nil && b.ModuleType != nil:
		return a.ModuleType.ID == b.ModuleType.ID
	default:
		return a.DeviceType == nil && b.DeviceType == nil && a.ModuleType == nil && b.ModuleType == nil
	}
}

func badRequest(endpoint netbox.Endpoint, body string) error {
	return &netbox.RequestError{
		Method:     http.MethodPost,
		URL:        "https://netbox.example.com/api/" + string(endpoint) + "/",
		StatusCode: http.StatusBadRequest,
		Body:       body,
	}
}

func (f *fakeNetBox) UploadImages(_ context.Context, deviceTypeID int, images map[string]string) error {
	f.uploads[deviceTypeID] = images
	return nil
}

func (f *fakeNetBox) Version(context.Context) (string, error) {
	return "4.1", nil
}

// add stores an object as if it had been created earlier.
func (f *fakeNetBox) add(endpoint netbox.Endpoint, obj netbox.Object) netbox.Object {
	f.nextID++
	obj.ID = f.nextID
	f.objects[endpoint] = append(f.objects[endpoint], obj)
	return obj
}

func (f *fakeNetBox) names(endpoint netbox.Endpoint) []string {
	var names []string
	for _, obj := range f.objects[endpoint] {
		names = append(names, obj.Name)
	}
	return names
}

// fakeImages resolves images from a fixed map keyed by slug and field.
type fakeImages map[string]string

func (f fakeImages) FindImage(record catalog.Record, field string) (string, bool) {
	path, ok := f[record.Slug+"/"+field]
	return path, ok
}
