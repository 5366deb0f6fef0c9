package netbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// maxErrorBody bounds how much of an error response is kept in a RequestError.
	maxErrorBody = 64 * 1024

	// versionHeader is the response header carrying the API version.
	versionHeader = "API-Version"
)

var (
	// ErrMissingURL is returned when no NetBox URL is configured.
	ErrMissingURL = errors.New("netbox url is not set")
	// ErrMissingToken is returned when no NetBox API token is configured.
	ErrMissingToken = errors.New("netbox token is not set")
)

// APIClient talks to the NetBox REST API over HTTP.
type APIClient struct {
	baseURL  string
	token    string
	pageSize int
	http     *http.Client
	logger   *zap.Logger
}

// NewClient creates a new NetBox API client based on the configuration.
func NewClient(cfg Config, logger *zap.Logger) (*APIClient, error) {
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid netbox url %q: %w", cfg.URL, err)
	}

	// Ensure defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		//nolint:gosec // verification is disabled only when IGNORE_SSL_ERRORS is set
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.IgnoreSSLErrors},
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &APIClient{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		token:    cfg.Token,
		pageSize: pageSize,
		http:     &http.Client{Transport: transport},
		logger:   logger,
	}, nil
}

// authorization returns the Authorization header value. NetBox v2 tokens
// (prefixed nbt_) use the Bearer scheme, legacy tokens use Token.
func authorization(token string) string {
	if strings.HasPrefix(token, "nbt_") {
		return "Bearer " + token
	}
	return "Token " + token
}

func (c *APIClient) endpointURL(endpoint Endpoint) string {
	return c.baseURL + "/api/" + string(endpoint) + "/"
}

// do executes the request with authentication headers and returns the response
// body. Non-2xx responses are converted into a *RequestError.
func (c *APIClient) do(req *http.Request) (*http.Response, []byte, error) {
	req.Header.Set("Authorization", authorization(c.token))
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.String(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("NetBox request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return resp, nil, &RequestError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp, body, nil
}

// List returns every object of the endpoint matching filter, following the
// `next` links of paginated responses.
func (c *APIClient) List(ctx context.Context, endpoint Endpoint, filter url.Values) ([]Object, error) {
	query := url.Values{}
	for key, values := range filter {
		query[key] = append([]string(nil), values...)
	}
	query.Set("limit", strconv.Itoa(c.pageSize))

	next := c.endpointURL(endpoint) + "?" + query.Encode()
	var objects []Object

	for next != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		_, body, err := c.do(req)
		if err != nil {
			return nil, err
		}

		var page Page
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to decode %s page: %w", endpoint, err)
		}

		objects = append(objects, page.Results...)
		next = page.Next
	}

	return objects, nil
}

// Create posts payload as one bulk create request and returns the created objects.
func (c *APIClient) Create(ctx context.Context, endpoint Endpoint, payload []map[string]any) ([]Object, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var created []Object
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode %s create response: %w", endpoint, err)
	}

	return created, nil
}

// UploadImages attaches local image files to a device type with one multipart PATCH.
func (c *APIClient) UploadImages(ctx context.Context, deviceTypeID int, images map[string]string) error {
	if len(images) == 0 {
		return nil
	}

	fields := make([]string, 0, len(images))
	for field := range images {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range fields {
		if err := attachFile(writer, field, images[field]); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	target := fmt.Sprintf("%s%d/", c.endpointURL(DeviceTypes), deviceTypeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, target, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, _, err = c.do(req)
	return err
}

func attachFile(writer *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form field %s: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return nil
}

// Version returns the API version reported in the API-Version header of the API root.
func (c *APIClient) Version(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/", http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, _, err := c.do(req)
	if err != nil {
		return "", err
	}

	version := resp.Header.Get(versionHeader)
	if version == "" {
		return "", fmt.Errorf("netbox did not report an %s header", versionHeader)
	}
	return version, nil
}
