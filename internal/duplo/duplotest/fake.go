// Package duplotest provides in-memory fakes of the duplo resource handles
// that record every verb call.
package duplotest

import (
	"context"
	"sync"

	"duplocloud-mcp/internal/duplo"
)

type Load struct {
	Kind     duplo.Kind
	TenantID string
}

type Call struct {
	Verb string
	Args []any
}

// Client is a duplo.Loader that returns the registered Resource for a kind.
type Client struct {
	mu        sync.Mutex
	Resources map[duplo.Kind]*Resource
	Loads     []Load
	LoadErr   error
}

func NewClient() *Client {
	return &Client{Resources: map[duplo.Kind]*Resource{}}
}

// Resource registers (or returns) the fake for kind.
func (c *Client) Resource(kind duplo.Kind) *Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res, ok := c.Resources[kind]; ok {
		return res
	}
	res := &Resource{kind: kind, Returns: map[string]any{}, Errors: map[string]error{}}
	c.Resources[kind] = res
	return res
}

func (c *Client) Load(kind duplo.Kind, tenantID string) (duplo.Resource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Loads = append(c.Loads, Load{Kind: kind, TenantID: tenantID})
	if c.LoadErr != nil {
		return nil, c.LoadErr
	}
	res, ok := c.Resources[kind]
	if !ok {
		res = &Resource{kind: kind, Returns: map[string]any{}, Errors: map[string]error{}}
		c.Resources[kind] = res
	}
	return res, nil
}

// Resource implements every verb interface. Returns and Errors are keyed by
// verb name ("List", "Find", "UpdateImage", ...).
type Resource struct {
	kind    duplo.Kind
	mu      sync.Mutex
	Returns map[string]any
	Errors  map[string]error
	Calls   []Call
}

func (r *Resource) Kind() duplo.Kind {
	return r.kind
}

// CallsTo returns the recorded calls of one verb.
func (r *Resource) CallsTo(verb string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, call := range r.Calls {
		if call.Verb == verb {
			out = append(out, call)
		}
	}
	return out
}

func (r *Resource) record(verb string, args ...any) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Verb: verb, Args: args})
	return r.Returns[verb], r.Errors[verb]
}

func (r *Resource) List(ctx context.Context) (any, error) {
	return r.record("List")
}

func (r *Resource) Find(ctx context.Context, name string) (map[string]any, error) {
	res, err := r.record("Find", name)
	if err != nil {
		return nil, err
	}
	obj, _ := res.(map[string]any)
	if obj == nil {
		return nil, nil
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	return out, nil
}

func (r *Resource) Create(ctx context.Context, body map[string]any) (any, error) {
	return r.record("Create", body)
}

func (r *Resource) Delete(ctx context.Context, name string) (any, error) {
	return r.record("Delete", name)
}

func (r *Resource) Update(ctx context.Context, name string, body map[string]any) (any, error) {
	return r.record("Update", name, body)
}

func (r *Resource) Restart(ctx context.Context, name string) (any, error) {
	return r.record("Restart", name)
}

func (r *Resource) Reboot(ctx context.Context, name string) (any, error) {
	return r.record("Reboot", name)
}

func (r *Resource) UpdateImage(ctx context.Context, name, image string) (any, error) {
	return r.record("UpdateImage", name, image)
}

func (r *Resource) UpdateReplicas(ctx context.Context, name string, replicas int) (any, error) {
	return r.record("UpdateReplicas", name, replicas)
}

func (r *Resource) SetInstanceSize(ctx context.Context, name, size string) (any, error) {
	return r.record("SetInstanceSize", name, size)
}

func (r *Resource) ListServices(ctx context.Context) (any, error) {
	return r.record("ListServices")
}

func (r *Resource) ListTaskDefFamilies(ctx context.Context) (any, error) {
	return r.record("ListTaskDefFamilies")
}

func (r *Resource) ListTasks(ctx context.Context, serviceName string) (any, error) {
	return r.record("ListTasks", serviceName)
}

func (r *Resource) RunTask(ctx context.Context, family string, replicas int) (any, error) {
	return r.record("RunTask", family, replicas)
}

func (r *Resource) DeleteService(ctx context.Context, name string) (any, error) {
	return r.record("DeleteService", name)
}

// Provider returns a duplo.Provider whose environment is fixed and whose
// factory always yields c.
func (c *Client) Provider() *duplo.Provider {
	env := map[string]string{
		duplo.EnvHost:  "https://test.duplocloud.net",
		duplo.EnvToken: "test-token-123",
	}
	return duplo.NewProvider(
		duplo.WithGetenv(func(key string) string { return env[key] }),
		duplo.WithFactory(func(duplo.Credentials) (duplo.Loader, error) { return c, nil }),
	)
}
