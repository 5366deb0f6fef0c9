package mocks

import (
	"context"
	"net/url"

	"dtl-import/core/netbox"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of netbox.Client
type Client struct {
	mock.Mock
}

func (m *Client) List(ctx context.Context, endpoint netbox.Endpoint, filter url.Values) ([]netbox.Object, error) {
	args := m.Called(ctx, endpoint, filter)
	if objs, ok := args.Get(0).([]netbox.Object); ok {
		return objs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Create(ctx context.Context, endpoint netbox.Endpoint, payload []map[string]any) ([]netbox.Object, error) {
	args := m.Called(ctx, endpoint, payload)
	if objs, ok := args.Get(0).([]netbox.Object); ok {
		return objs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UploadImages(ctx context.Context, deviceTypeID int, images map[string]string) error {
	args := m.Called(ctx, deviceTypeID, images)
	return args.Error(0)
}

func (m *Client) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
