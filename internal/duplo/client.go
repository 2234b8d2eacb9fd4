package duplo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

type Credentials struct {
	Host   string
	Token  string
	Tenant string
}

type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for portal requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// Client talks to one DuploCloud portal with one token. It is immutable
// after construction apart from the cached default tenant ID.
type Client struct {
	host   string
	token  string
	tenant string
	http   *http.Client

	tenantMu sync.Mutex
	tenantID string
}

// NewFromCreds builds a client from static credentials.
func NewFromCreds(creds Credentials, opts ...Option) (*Client, error) {
	host := strings.TrimRight(strings.TrimSpace(creds.Host), "/")
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid duplo host %q: %w", host, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid duplo host %q: scheme and host required", host)
	}
	c := &Client{
		host:   host,
		token:  strings.TrimSpace(creds.Token),
		tenant: strings.TrimSpace(creds.Tenant),
		http:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Host() string {
	return c.host
}

// DefaultTenant is the tenant name from DUPLO_TENANT, if any.
func (c *Client) DefaultTenant() string {
	return c.tenant
}

func (c *Client) Load(kind Kind, tenantID string) (Resource, error) {
	s := scope{client: c, tenantID: strings.TrimSpace(tenantID)}
	switch kind {
	case KindTenant:
		return &tenants{client: c}, nil
	case KindHosts:
		return &hosts{scope: s}, nil
	case KindService:
		return &services{scope: s}, nil
	case KindRDS:
		return &rdsInstances{scope: s}, nil
	case KindS3:
		return &s3Buckets{scope: s}, nil
	case KindECS:
		return &ecsResource{scope: s}, nil
	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}

func (c *Client) get(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) put(ctx context.Context, path string, body any) (any, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) delete(ctx context.Context, path string) (any, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	endpoint := c.host + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	klog.V(4).InfoS("duplo request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return decodeBody(raw), nil
}

func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	var out any
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return string(trimmed)
	}
	return out
}

// defaultTenantID resolves DUPLO_TENANT (a tenant name) to its ID once.
func (c *Client) defaultTenantID(ctx context.Context) (string, error) {
	c.tenantMu.Lock()
	defer c.tenantMu.Unlock()
	if c.tenantID != "" {
		return c.tenantID, nil
	}
	if c.tenant == "" {
		return "", NewError("tenant is required: pass a tenant ID or set DUPLO_TENANT", http.StatusBadRequest)
	}
	found, err := (&tenants{client: c}).Find(ctx, c.tenant)
	if err != nil {
		return "", err
	}
	id := stringField(found, "TenantId")
	if id == "" {
		return "", NewError(fmt.Sprintf("tenant '%s' has no TenantId", c.tenant), http.StatusNotFound)
	}
	c.tenantID = id
	return id, nil
}

type scope struct {
	client   *Client
	tenantID string
}

func (s scope) id(ctx context.Context) (string, error) {
	if s.tenantID != "" {
		return s.tenantID, nil
	}
	return s.client.defaultTenantID(ctx)
}

func (s scope) path(ctx context.Context, format string, args ...any) (string, error) {
	id, err := s.id(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(format, append([]any{url.PathEscape(id)}, args...)...), nil
}

// findByField returns the first item in a list payload whose field equals name.
func findByField(list any, field, name string) (map[string]any, bool) {
	items, ok := list.([]any)
	if !ok {
		return nil, false
	}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if stringField(obj, field) == name {
			return obj, true
		}
	}
	return nil, false
}

func asObject(kind Kind, name string, payload any) (map[string]any, error) {
	if payload == nil {
		return nil, notFound(kind, name)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, errors.New("unexpected response shape for " + string(kind) + " " + name)
	}
	return obj, nil
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	if value, ok := obj[key].(string); ok {
		return value
	}
	return ""
}
