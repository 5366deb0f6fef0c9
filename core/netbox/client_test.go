package netbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, server *httptest.Server, token string) *APIClient {
	t.Helper()
	client, err := NewClient(Config{
		URL:             server.URL,
		Token:           token,
		IgnoreSSLErrors: true,
		PageSize:        2,
	}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{Token: "abc"}, nil)
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = NewClient(Config{URL: "https://netbox.example.com"}, nil)
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = NewClient(Config{URL: "not a url", Token: "abc"}, nil)
	assert.Error(t, err)

	client, err := NewClient(Config{URL: "https://netbox.example.com/", Token: "abc"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://netbox.example.com", client.baseURL)
	assert.Equal(t, 1000, client.pageSize)
}

func TestAuthorization(t *testing.T) {
	assert.Equal(t, "Token 0123456789abcdef", authorization("0123456789abcdef"))
	assert.Equal(t, "Bearer nbt_abc.def", authorization("nbt_abc.def"))
}

func TestList_FollowsPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dcim/interface-templates/" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Token test-token" {
			http.Error(w, "missing/invalid auth", http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "7", r.URL.Query().Get("devicetype_id"))

		switch r.URL.Query().Get("offset") {
		case "":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count": 3,
				"next":  fmt.Sprintf("%s/api/dcim/interface-templates/?devicetype_id=7&limit=2&offset=2", server.URL),
				"results": []map[string]any{
					{"id": 1, "name": "eth0", "device_type": map[string]any{"id": 7}},
					{"id": 2, "name": "eth1", "device_type": map[string]any{"id": 7}},
				},
			})
		case "2":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count": 3,
				"next":  nil,
				"results": []map[string]any{
					{"id": 3, "name": "eth2", "device_type": map[string]any{"id": 7}},
				},
			})
		default:
			http.Error(w, "unexpected offset", http.StatusBadRequest)
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "test-token")
	objects, err := client.List(context.Background(), InterfaceTemplates, url.Values{"devicetype_id": {"7"}})
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, "eth2", objects[2].Name)
	require.NotNil(t, objects[0].DeviceType)
	assert.Equal(t, 7, objects[0].DeviceType.ID)
}

func TestCreate(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/dcim/manufacturers/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		created := make([]map[string]any, 0, len(payload))
		for i, item := range payload {
			created = append(created, map[string]any{"id": i + 10, "name": item["name"], "slug": item["slug"]})
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "test-token")
	objects, err := client.Create(context.Background(), Manufacturers, []map[string]any{
		{"name": "Acme", "slug": "acme"},
		{"name": "Globex", "slug": "globex"},
	})
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, 10, objects[0].ID)
	assert.Equal(t, "globex", objects[1].Slug)
}

func TestCreate_RequestError(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"slug":["manufacturer with this slug already exists."]}]`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "test-token")
	_, err := client.Create(context.Background(), Manufacturers, []map[string]any{{"name": "Acme", "slug": "acme"}})
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "already exists")
	assert.Equal(t, http.MethodPost, reqErr.Method)
}

func TestUploadImages(t *testing.T) {
	dir := t.TempDir()
	front := filepath.Join(dir, "abc-1.front.png")
	rear := filepath.Join(dir, "abc-1.rear.jpg")
	require.NoError(t, os.WriteFile(front, []byte("front-bytes"), 0o644))
	require.NoError(t, os.WriteFile(rear, []byte("rear-bytes"), 0o644))

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/dcim/device-types/42/", r.URL.Path)
		assert.Equal(t, "Bearer nbt_key.secret", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		for field, want := range map[string]string{"front_image": "front-bytes", "rear_image": "rear-bytes"} {
			f, _, err := r.FormFile(field)
			require.NoError(t, err)
			data, err := io.ReadAll(f)
			require.NoError(t, err)
			assert.Equal(t, want, string(data))
			_ = f.Close()
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42})
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "nbt_key.secret")
	err := client.UploadImages(context.Background(), 42, map[string]string{
		"front_image": front,
		"rear_image":  rear,
	})
	assert.NoError(t, err)
}

func TestUploadImages_MissingFile(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "test-token")
	err := client.UploadImages(context.Background(), 1, map[string]string{"front_image": "/does/not/exist.png"})
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/", r.URL.Path)
		w.Header().Set("API-Version", "3.7")
		_ = json.NewEncoder(w).Encode(map[string]any{"dcim": "/api/dcim/"})
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "test-token")
	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.7", version)
}

func TestVersion_Unauthorized(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token"}`, http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, "bad")
	_, err := client.Version(context.Background())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
}
