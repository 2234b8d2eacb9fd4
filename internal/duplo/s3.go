package duplo

import (
	"context"
	"net/url"
)

type s3Buckets struct {
	scope
}

func (b *s3Buckets) Kind() Kind {
	return KindS3
}

func (b *s3Buckets) List(ctx context.Context) (any, error) {
	path, err := b.path(ctx, "v3/subscriptions/%s/aws/s3bucket")
	if err != nil {
		return nil, err
	}
	return b.client.get(ctx, path)
}

func (b *s3Buckets) Find(ctx context.Context, name string) (map[string]any, error) {
	path, err := b.path(ctx, "v3/subscriptions/%s/aws/s3bucket/%s", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	res, err := b.client.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return asObject(KindS3, name, res)
}

func (b *s3Buckets) Create(ctx context.Context, body map[string]any) (any, error) {
	path, err := b.path(ctx, "v3/subscriptions/%s/aws/s3bucket")
	if err != nil {
		return nil, err
	}
	return b.client.post(ctx, path, body)
}

func (b *s3Buckets) Update(ctx context.Context, name string, body map[string]any) (any, error) {
	path, err := b.path(ctx, "v3/subscriptions/%s/aws/s3bucket/%s", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	return b.client.put(ctx, path, body)
}

func (b *s3Buckets) Delete(ctx context.Context, name string) (any, error) {
	path, err := b.path(ctx, "v3/subscriptions/%s/aws/s3bucket/%s", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	if _, err := b.client.delete(ctx, path); err != nil {
		return nil, err
	}
	return map[string]any{"message": "aws/s3bucket/" + name + " deleted"}, nil
}
