package duplo

import (
	"os"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

const (
	EnvHost   = "DUPLO_HOST"
	EnvToken  = "DUPLO_TOKEN"
	EnvTenant = "DUPLO_TENANT"
)

// Factory builds a Loader from credentials. NewFromCreds is the default.
type Factory func(Credentials) (Loader, error)

type ProviderOption func(*Provider)

// WithGetenv replaces os.Getenv as the configuration source.
func WithGetenv(getenv func(string) string) ProviderOption {
	return func(p *Provider) {
		if getenv != nil {
			p.getenv = getenv
		}
	}
}

func WithFactory(factory Factory) ProviderOption {
	return func(p *Provider) {
		if factory != nil {
			p.factory = factory
		}
	}
}

// Provider lazily builds one client from the environment and hands the same
// instance to every caller until Reset.
type Provider struct {
	mu      sync.Mutex
	client  Loader
	getenv  func(string) string
	factory Factory
}

func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{
		getenv: os.Getenv,
		factory: func(creds Credentials) (Loader, error) {
			return NewFromCreds(creds)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Client() (Loader, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	host := strings.TrimSpace(p.getenv(EnvHost))
	token := strings.TrimSpace(p.getenv(EnvToken))
	tenant := strings.TrimSpace(p.getenv(EnvTenant))
	if host == "" {
		return nil, configError(EnvHost)
	}
	if token == "" {
		return nil, configError(EnvToken)
	}

	client, err := p.factory(Credentials{Host: host, Token: token, Tenant: tenant})
	if err != nil {
		return nil, err
	}
	klog.V(1).InfoS("duplo client initialized", "host", host, "defaultTenant", tenant)
	p.client = client
	return client, nil
}

// Reset drops the cached client; the next Client call reads the environment
// again.
func (p *Provider) Reset() {
	p.mu.Lock()
	p.client = nil
	p.mu.Unlock()
}
