package duplo

import (
	"context"
	"net/url"
)

type tenants struct {
	client *Client
}

func (t *tenants) Kind() Kind {
	return KindTenant
}

func (t *tenants) List(ctx context.Context) (any, error) {
	return t.client.get(ctx, "admin/GetTenantsForUser")
}

func (t *tenants) Find(ctx context.Context, name string) (map[string]any, error) {
	list, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	if found, ok := findByField(list, "AccountName", name); ok {
		return found, nil
	}
	return nil, notFound(KindTenant, name)
}

func (t *tenants) Create(ctx context.Context, body map[string]any) (any, error) {
	return t.client.post(ctx, "admin/AddTenant", body)
}

func (t *tenants) Delete(ctx context.Context, name string) (any, error) {
	found, err := t.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	if _, err := t.client.post(ctx, "admin/DeleteTenant/"+url.PathEscape(stringField(found, "TenantId")), nil); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Tenant '" + name + "' deleted"}, nil
}
