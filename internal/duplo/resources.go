package duplo

import (
	"context"
	"fmt"
	"reflect"
)

type Kind string

const (
	KindTenant  Kind = "tenant"
	KindHosts   Kind = "hosts"
	KindService Kind = "service"
	KindRDS     Kind = "rds"
	KindS3      Kind = "s3"
	KindECS     Kind = "ecs"
)

// Loader resolves a resource handle for a kind, scoped to a tenant. Tenant
// scoping is a parameter so that a shared loader is safe across concurrent
// calls.
type Loader interface {
	Load(kind Kind, tenantID string) (Resource, error)
}

// Resource is a handle bound to one kind and tenant. Verbs are discovered
// through the capability interfaces below.
type Resource interface {
	Kind() Kind
}

type Lister interface {
	List(ctx context.Context) (any, error)
}

type Finder interface {
	Find(ctx context.Context, name string) (map[string]any, error)
}

type Creator interface {
	Create(ctx context.Context, body map[string]any) (any, error)
}

type Deleter interface {
	Delete(ctx context.Context, name string) (any, error)
}

type Updater interface {
	Update(ctx context.Context, name string, body map[string]any) (any, error)
}

type Restarter interface {
	Restart(ctx context.Context, name string) (any, error)
}

type Rebooter interface {
	Reboot(ctx context.Context, name string) (any, error)
}

type ImageUpdater interface {
	UpdateImage(ctx context.Context, name, image string) (any, error)
}

type ReplicaUpdater interface {
	UpdateReplicas(ctx context.Context, name string, replicas int) (any, error)
}

type InstanceResizer interface {
	SetInstanceSize(ctx context.Context, name, size string) (any, error)
}

type ServiceLister interface {
	ListServices(ctx context.Context) (any, error)
}

type TaskDefFamilyLister interface {
	ListTaskDefFamilies(ctx context.Context) (any, error)
}

type TaskLister interface {
	ListTasks(ctx context.Context, serviceName string) (any, error)
}

type TaskRunner interface {
	RunTask(ctx context.Context, family string, replicas int) (any, error)
}

type ServiceDeleter interface {
	DeleteService(ctx context.Context, name string) (any, error)
}

// As returns res as the verb interface T, or an error naming the missing verb.
func As[T any](res Resource) (T, error) {
	verb, ok := res.(T)
	if !ok {
		var zero T
		kind := Kind("nil")
		if res != nil {
			kind = res.Kind()
		}
		return zero, fmt.Errorf("%s resource does not support %s", kind, reflect.TypeOf((*T)(nil)).Elem().Name())
	}
	return verb, nil
}
