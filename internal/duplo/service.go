package duplo

import (
	"context"
	"net/url"
)

type services struct {
	scope
}

func (s *services) Kind() Kind {
	return KindService
}

func (s *services) List(ctx context.Context) (any, error) {
	path, err := s.path(ctx, "subscriptions/%s/GetReplicationControllers")
	if err != nil {
		return nil, err
	}
	return s.client.get(ctx, path)
}

func (s *services) Find(ctx context.Context, name string) (map[string]any, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if found, ok := findByField(list, "Name", name); ok {
		return found, nil
	}
	return nil, notFound(KindService, name)
}

func (s *services) Create(ctx context.Context, body map[string]any) (any, error) {
	path, err := s.path(ctx, "subscriptions/%s/ReplicationControllerUpdate")
	if err != nil {
		return nil, err
	}
	if _, err := s.client.post(ctx, path, body); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Successfully created service '" + stringField(body, "Name") + "'"}, nil
}

func (s *services) Delete(ctx context.Context, name string) (any, error) {
	path, err := s.path(ctx, "subscriptions/%s/ReplicationControllerUpdate")
	if err != nil {
		return nil, err
	}
	if _, err := s.client.post(ctx, path, map[string]any{"Name": name, "State": "delete"}); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Successfully deleted service '" + name + "'"}, nil
}

func (s *services) Restart(ctx context.Context, name string) (any, error) {
	path, err := s.path(ctx, "subscriptions/%s/ReplicationControllerReboot/%s", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	if _, err := s.client.post(ctx, path, nil); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Successfully restarted service '" + name + "'"}, nil
}

func (s *services) UpdateImage(ctx context.Context, name, image string) (any, error) {
	if err := s.change(ctx, map[string]any{"Name": name, "Image": image}); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Successfully updated image for service '" + name + "'"}, nil
}

func (s *services) UpdateReplicas(ctx context.Context, name string, replicas int) (any, error) {
	if err := s.change(ctx, map[string]any{"Name": name, "Replicas": replicas}); err != nil {
		return nil, err
	}
	return map[string]any{"message": "Successfully updated replicas for service '" + name + "'"}, nil
}

func (s *services) change(ctx context.Context, body map[string]any) error {
	path, err := s.path(ctx, "subscriptions/%s/ReplicationControllerChange")
	if err != nil {
		return err
	}
	_, err = s.client.post(ctx, path, body)
	return err
}
