package service

func schemaTenant() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id"},
	}
}

func schemaService() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id", "name"},
	}
}

func schemaCreate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
			"image":     map[string]any{"type": "string", "description": "Docker image, e.g. nginx:latest."},
			"replicas":  map[string]any{"type": "integer", "default": 1},
		},
		"required": []string{"tenant_id", "name", "image"},
	}
}

func schemaUpdate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
			"image":     map[string]any{"type": "string"},
			"replicas":  map[string]any{"type": "integer"},
		},
		"required": []string{"tenant_id", "name"},
	}
}
