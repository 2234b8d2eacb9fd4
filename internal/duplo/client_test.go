package duplo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
	Auth   string
}

type portal struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter)
}

func newPortal(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*portal, *Client) {
	t.Helper()
	p := &portal{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		p.mu.Lock()
		p.requests = append(p.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: body, Auth: r.Header.Get("Authorization")})
		p.mu.Unlock()
		handler, ok := p.routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"Message":"no route"}`))
			return
		}
		handler(w)
	}))
	t.Cleanup(srv.Close)
	client, err := NewFromCreds(Credentials{Host: srv.URL + "/", Token: "tok", Tenant: "dev"})
	require.NoError(t, err)
	return p, client
}

func jsonReply(payload string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}
}

func emptyReply(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func TestNewFromCredsRejectsBadHost(t *testing.T) {
	_, err := NewFromCreds(Credentials{Host: "not-a-url", Token: "t"})
	require.Error(t, err)
}

func TestLoadUnknownKind(t *testing.T) {
	client, err := NewFromCreds(Credentials{Host: "https://h", Token: "t"})
	require.NoError(t, err)
	_, err = client.Load(Kind("nope"), "tid")
	require.Error(t, err)
}

func TestLoadReturnsTypedHandles(t *testing.T) {
	client, err := NewFromCreds(Credentials{Host: "https://h", Token: "t"})
	require.NoError(t, err)
	for _, kind := range []Kind{KindTenant, KindHosts, KindService, KindRDS, KindS3, KindECS} {
		res, err := client.Load(kind, "tid")
		require.NoError(t, err)
		assert.Equal(t, kind, res.Kind())
	}
}

func TestServiceListSendsTokenAndTenant(t *testing.T) {
	p, client := newPortal(t, map[string]func(http.ResponseWriter){
		"GET /subscriptions/tid-001/GetReplicationControllers": jsonReply(`[{"Name":"web-app","Image":"nginx:latest"}]`),
	})
	res, err := client.Load(KindService, "tid-001")
	require.NoError(t, err)
	out, err := res.(Lister).List(context.Background())
	require.NoError(t, err)
	items := out.([]any)
	require.Len(t, items, 1)
	require.Len(t, p.requests, 1)
	assert.Equal(t, "Bearer tok", p.requests[0].Auth)
}

func TestErrorStatusCarriesResponse(t *testing.T) {
	_, client := newPortal(t, map[string]func(http.ResponseWriter){
		"GET /v3/subscriptions/tid/aws/s3bucket/missing": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail":"access denied"}`))
		},
	})
	res, err := client.Load(KindS3, "tid")
	require.NoError(t, err)
	_, err = res.(Finder).Find(context.Background(), "missing")
	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, http.StatusForbidden, derr.Code)
	assert.Equal(t, `{"detail":"access denied"}`, derr.Response)
}

func TestFindByNameNotFound(t *testing.T) {
	_, client := newPortal(t, map[string]func(http.ResponseWriter){
		"GET /subscriptions/tid/GetNativeHosts": jsonReply(`[{"FriendlyName":"host-1","InstanceId":"i-1"}]`),
	})
	res, err := client.Load(KindHosts, "tid")
	require.NoError(t, err)
	_, err = res.(Finder).Find(context.Background(), "host-2")
	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, http.StatusNotFound, derr.Code)
	assert.Nil(t, derr.Response)
}

func TestHostRebootUsesInstanceID(t *testing.T) {
	p, client := newPortal(t, map[string]func(http.ResponseWriter){
		"GET /subscriptions/tid/GetNativeHosts":         jsonReply(`[{"FriendlyName":"host-1","InstanceId":"i-abc"}]`),
		"POST /subscriptions/tid/RebootNativeHost/i-abc": emptyReply,
	})
	res, err := client.Load(KindHosts, "tid")
	require.NoError(t, err)
	out, err := res.(Rebooter).Reboot(context.Background(), "host-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "Successfully rebooted host 'host-1'"}, out)
	assert.Equal(t, "/subscriptions/tid/RebootNativeHost/i-abc", p.requests[1].Path)
}

func TestDefaultTenantResolvedByName(t *testing.T) {
	p, client := newPortal(t, map[string]func(http.ResponseWriter){
		"GET /admin/GetTenantsForUser":                  jsonReply(`[{"AccountName":"dev","TenantId":"tid-dev"}]`),
		"GET /v3/subscriptions/tid-dev/aws/rds/instance": jsonReply(`[]`),
	})
	res, err := client.Load(KindRDS, "")
	require.NoError(t, err)
	_, err = res.(Lister).List(context.Background())
	require.NoError(t, err)
	_, err = res.(Lister).List(context.Background())
	require.NoError(t, err)
	// tenant lookup happens once
	assert.Len(t, p.requests, 3)
}

func TestScopedLoadWithoutAnyTenant(t *testing.T) {
	client, err := NewFromCreds(Credentials{Host: "https://h", Token: "t"})
	require.NoError(t, err)
	res, err := client.Load(KindS3, "")
	require.NoError(t, err)
	_, err = res.(Lister).List(context.Background())
	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, http.StatusBadRequest, derr.Code)
}

func TestRDSResize(t *testing.T) {
	p, client := newPortal(t, map[string]func(http.ResponseWriter){
		"PUT /v3/subscriptions/tid/aws/rds/instance/mydb/size": emptyReply,
	})
	res, err := client.Load(KindRDS, "tid")
	require.NoError(t, err)
	out, err := res.(InstanceResizer).SetInstanceSize(context.Background(), "mydb", "db.t3.small")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "DB instance mydb resized to db.t3.small"}, out)
	assert.Equal(t, map[string]any{"SizeEx": "db.t3.small"}, p.requests[0].Body)
}

func TestNonJSONBodyReturnedAsString(t *testing.T) {
	_, client := newPortal(t, map[string]func(http.ResponseWriter){
		"POST /admin/AddTenant": func(w http.ResponseWriter) { _, _ = w.Write([]byte("ok")) },
	})
	res, err := client.Load(KindTenant, "")
	require.NoError(t, err)
	out, err := res.(Creator).Create(context.Background(), map[string]any{"AccountName": "x", "PlanID": "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestECSUpdateImage(t *testing.T) {
	p, client := newPortal(t, map[string]func(http.ResponseWriter){
		"GET /v3/subscriptions/tid/aws/ecs/taskDefFamily/api": jsonReply(`{"Family":"api","VersionArns":["arn:1","arn:2"]}`),
		"POST /subscriptions/tid/FindEcsTaskDefinition":       jsonReply(`{"Family":"api","ContainerDefinitions":[{"Name":"api","Image":"old"}]}`),
		"POST /subscriptions/tid/UpdateEcsTaskDefinition":     jsonReply(`"arn:3"`),
		"GET /v3/subscriptions/tid/aws/ecs/service":           jsonReply(`[{"Name":"api","TaskDefinition":"arn:2"}]`),
		"POST /subscriptions/tid/UpdateEcsService":            emptyReply,
	})
	res, err := client.Load(KindECS, "tid")
	require.NoError(t, err)
	_, err = res.(ImageUpdater).UpdateImage(context.Background(), "api", "new")
	require.NoError(t, err)
	require.Len(t, p.requests, 5)
	assert.Equal(t, map[string]any{"Arn": "arn:2"}, p.requests[1].Body)
	containers := p.requests[2].Body["ContainerDefinitions"].([]any)
	assert.Equal(t, "new", containers[0].(map[string]any)["Image"])
	assert.Equal(t, "arn:3", p.requests[4].Body["TaskDefinition"])
}

func TestAsResolvesVerbs(t *testing.T) {
	client, err := NewFromCreds(Credentials{Host: "https://h", Token: "t"})
	require.NoError(t, err)
	res, err := client.Load(KindS3, "tid")
	require.NoError(t, err)

	_, err = As[Lister](res)
	require.NoError(t, err)

	_, err = As[Rebooter](res)
	require.EqualError(t, err, "s3 resource does not support Rebooter")

	_, err = As[Lister](nil)
	require.EqualError(t, err, "nil resource does not support Lister")
}
