package ecs

func schemaTenant() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id"},
	}
}

func schemaTaskList() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id":    map[string]any{"type": "string"},
			"service_name": map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id", "service_name"},
	}
}

func schemaTaskRun() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id":   map[string]any{"type": "string"},
			"family_name": map[string]any{"type": "string"},
			"replicas":    map[string]any{"type": "integer", "default": 1},
		},
		"required": []string{"tenant_id", "family_name"},
	}
}

func schemaServiceUpdate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string", "description": "Task definition family name."},
			"image":     map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id", "name", "image"},
	}
}

func schemaServiceDelete() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id", "name"},
	}
}
