package duplo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type ecsResource struct {
	scope
}

func (e *ecsResource) Kind() Kind {
	return KindECS
}

func (e *ecsResource) ListServices(ctx context.Context) (any, error) {
	path, err := e.path(ctx, "v3/subscriptions/%s/aws/ecs/service")
	if err != nil {
		return nil, err
	}
	return e.client.get(ctx, path)
}

func (e *ecsResource) ListTaskDefFamilies(ctx context.Context) (any, error) {
	path, err := e.path(ctx, "v3/subscriptions/%s/aws/ecs/taskDefFamily")
	if err != nil {
		return nil, err
	}
	return e.client.get(ctx, path)
}

func (e *ecsResource) ListTasks(ctx context.Context, serviceName string) (any, error) {
	path, err := e.path(ctx, "subscriptions/%s/GetEcsTasks/%s", url.PathEscape(serviceName))
	if err != nil {
		return nil, err
	}
	return e.client.get(ctx, path)
}

func (e *ecsResource) RunTask(ctx context.Context, family string, replicas int) (any, error) {
	arn, err := e.latestTaskDefArn(ctx, family)
	if err != nil {
		return nil, err
	}
	path, err := e.path(ctx, "subscriptions/%s/RunEcsTask")
	if err != nil {
		return nil, err
	}
	return e.client.post(ctx, path, map[string]any{"TaskDefinition": arn, "Count": replicas})
}

// UpdateImage registers a new revision of the family with image on its first
// container, then points the service of the same name at it.
func (e *ecsResource) UpdateImage(ctx context.Context, family, image string) (any, error) {
	arn, err := e.latestTaskDefArn(ctx, family)
	if err != nil {
		return nil, err
	}
	findPath, err := e.path(ctx, "subscriptions/%s/FindEcsTaskDefinition")
	if err != nil {
		return nil, err
	}
	res, err := e.client.post(ctx, findPath, map[string]any{"Arn": arn})
	if err != nil {
		return nil, err
	}
	def, err := asObject(KindECS, family, res)
	if err != nil {
		return nil, err
	}
	containers, _ := def["ContainerDefinitions"].([]any)
	if len(containers) == 0 {
		return nil, NewError(fmt.Sprintf("task definition '%s' has no containers", family), http.StatusBadRequest)
	}
	first, ok := containers[0].(map[string]any)
	if !ok {
		return nil, NewError(fmt.Sprintf("task definition '%s' has an invalid container", family), http.StatusBadRequest)
	}
	first["Image"] = image

	updatePath, err := e.path(ctx, "subscriptions/%s/UpdateEcsTaskDefinition")
	if err != nil {
		return nil, err
	}
	newArn, err := e.client.post(ctx, updatePath, def)
	if err != nil {
		return nil, err
	}

	svcList, err := e.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if svc, ok := findByField(svcList, "Name", family); ok {
		body := copyBody(svc)
		body["TaskDefinition"] = newArn
		svcPath, err := e.path(ctx, "subscriptions/%s/UpdateEcsService")
		if err != nil {
			return nil, err
		}
		if _, err := e.client.post(ctx, svcPath, body); err != nil {
			return nil, err
		}
	}
	return map[string]any{"message": "Updating a task definition and its corresponding service."}, nil
}

func (e *ecsResource) DeleteService(ctx context.Context, name string) (any, error) {
	path, err := e.path(ctx, "v3/subscriptions/%s/aws/ecs/service/%s", url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	if _, err := e.client.delete(ctx, path); err != nil {
		return nil, err
	}
	return map[string]any{"message": "ECS service '" + name + "' deleted"}, nil
}

func (e *ecsResource) latestTaskDefArn(ctx context.Context, family string) (string, error) {
	path, err := e.path(ctx, "v3/subscriptions/%s/aws/ecs/taskDefFamily/%s", url.PathEscape(family))
	if err != nil {
		return "", err
	}
	res, err := e.client.get(ctx, path)
	if err != nil {
		return "", err
	}
	obj, err := asObject(KindECS, family, res)
	if err != nil {
		return "", err
	}
	arns, _ := obj["VersionArns"].([]any)
	if len(arns) == 0 {
		return "", NewError(fmt.Sprintf("task definition family '%s' has no revisions", family), http.StatusNotFound)
	}
	arn, _ := arns[len(arns)-1].(string)
	if arn == "" {
		return "", NewError(fmt.Sprintf("task definition family '%s' has no revisions", family), http.StatusNotFound)
	}
	return arn, nil
}
