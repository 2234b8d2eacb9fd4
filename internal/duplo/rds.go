package duplo

import (
	"context"
	"net/url"
)

type rdsInstances struct {
	scope
}

func (r *rdsInstances) Kind() Kind {
	return KindRDS
}

func (r *rdsInstances) List(ctx context.Context) (any, error) {
	path, err := r.path(ctx, "v3/subscriptions/%s/aws/rds/instance")
	if err != nil {
		return nil, err
	}
	return r.client.get(ctx, path)
}

func (r *rdsInstances) Find(ctx context.Context, name string) (map[string]any, error) {
	path, err := r.path(ctx, "v3/subscriptions/%s/aws/rds/instance/%s", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	res, err := r.client.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return asObject(KindRDS, name, res)
}

func (r *rdsInstances) Create(ctx context.Context, body map[string]any) (any, error) {
	path, err := r.path(ctx, "v3/subscriptions/%s/aws/rds/instance")
	if err != nil {
		return nil, err
	}
	return r.client.post(ctx, path, body)
}

func (r *rdsInstances) Delete(ctx context.Context, name string) (any, error) {
	path, err := r.path(ctx, "v3/subscriptions/%s/aws/rds/instance/%s", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	if _, err := r.client.delete(ctx, path); err != nil {
		return nil, err
	}
	return map[string]any{"message": "aws/rds/instance/" + name + " deleted"}, nil
}

func (r *rdsInstances) SetInstanceSize(ctx context.Context, name, size string) (any, error) {
	path, err := r.path(ctx, "v3/subscriptions/%s/aws/rds/instance/%s/size", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	if _, err := r.client.put(ctx, path, map[string]any{"SizeEx": size}); err != nil {
		return nil, err
	}
	return map[string]any{"message": "DB instance " + name + " resized to " + size}, nil
}
