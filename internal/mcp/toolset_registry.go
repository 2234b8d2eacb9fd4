package mcp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Toolset groups the tools for one DuploCloud resource family. Toolsets
// register a factory from init() and are instantiated per runtime build, so
// a config reload never shares toolset state with the previous build.
type Toolset interface {
	ID() string
	Version() string
	// Init receives the shared runtime. It must not contact the portal.
	Init(ctx ToolsetContext) error
	Register(reg Registry) error
}

type ToolsetFactory func() Toolset

var ErrUnknownToolset = errors.New("unknown toolset")

type toolsetCatalog struct {
	mu        sync.RWMutex
	factories map[string]ToolsetFactory
}

var toolsets = toolsetCatalog{factories: map[string]ToolsetFactory{}}

func RegisterToolset(id string, factory ToolsetFactory) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("toolset id required")
	}
	if factory == nil {
		return fmt.Errorf("toolset %q: factory required", id)
	}
	toolsets.mu.Lock()
	defer toolsets.mu.Unlock()
	if _, exists := toolsets.factories[id]; exists {
		return fmt.Errorf("toolset %q already registered", id)
	}
	toolsets.factories[id] = factory
	return nil
}

func MustRegisterToolset(id string, factory ToolsetFactory) {
	if err := RegisterToolset(id, factory); err != nil {
		panic(err)
	}
}

// NewToolset builds the toolset registered under id. An id nobody registered
// yields ErrUnknownToolset naming the ids that are available.
func NewToolset(id string) (Toolset, error) {
	toolsets.mu.RLock()
	factory, ok := toolsets.factories[id]
	toolsets.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownToolset, id, strings.Join(RegisteredToolsets(), ", "))
	}
	toolset := factory()
	if toolset == nil {
		return nil, fmt.Errorf("toolset %q: factory returned nil", id)
	}
	if toolset.ID() != id {
		return nil, fmt.Errorf("toolset %q: factory built %q", id, toolset.ID())
	}
	return toolset, nil
}

func RegisteredToolsets() []string {
	toolsets.mu.RLock()
	defer toolsets.mu.RUnlock()
	ids := make([]string, 0, len(toolsets.factories))
	for id := range toolsets.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
