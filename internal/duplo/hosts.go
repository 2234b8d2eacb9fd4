package duplo

import (
	"context"
	"net/url"
)

type hosts struct {
	scope
}

func (h *hosts) Kind() Kind {
	return KindHosts
}

func (h *hosts) List(ctx context.Context) (any, error) {
	path, err := h.path(ctx, "subscriptions/%s/GetNativeHosts")
	if err != nil {
		return nil, err
	}
	return h.client.get(ctx, path)
}

func (h *hosts) Find(ctx context.Context, name string) (map[string]any, error) {
	list, err := h.List(ctx)
	if err != nil {
		return nil, err
	}
	if found, ok := findByField(list, "FriendlyName", name); ok {
		return found, nil
	}
	return nil, notFound(KindHosts, name)
}

func (h *hosts) Create(ctx context.Context, body map[string]any) (any, error) {
	id, err := h.id(ctx)
	if err != nil {
		return nil, err
	}
	payload := copyBody(body)
	payload["TenantId"] = id
	res, err := h.client.post(ctx, "subscriptions/"+url.PathEscape(id)+"/CreateNativeHost", payload)
	if err != nil {
		return nil, err
	}
	out := map[string]any{"message": "Successfully created host '" + stringField(body, "FriendlyName") + "'"}
	if res != nil {
		out["id"] = res
	}
	return out, nil
}

func (h *hosts) Delete(ctx context.Context, name string) (any, error) {
	id, err := h.id(ctx)
	if err != nil {
		return nil, err
	}
	found, err := h.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	body := map[string]any{"TenantId": id, "InstanceId": stringField(found, "InstanceId")}
	if _, err := h.client.post(ctx, "subscriptions/"+url.PathEscape(id)+"/TerminateNativeHost", body); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Successfully deleted host '" + name + "'"}, nil
}

func (h *hosts) Reboot(ctx context.Context, name string) (any, error) {
	id, err := h.id(ctx)
	if err != nil {
		return nil, err
	}
	found, err := h.Find(ctx, name)
	if err != nil {
		return nil, err
	}
	path := "subscriptions/" + url.PathEscape(id) + "/RebootNativeHost/" + url.PathEscape(stringField(found, "InstanceId"))
	if _, err := h.client.post(ctx, path, nil); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Successfully rebooted host '" + name + "'"}, nil
}

func copyBody(body map[string]any) map[string]any {
	out := make(map[string]any, len(body)+1)
	for k, v := range body {
		out[k] = v
	}
	return out
}
