package host

func schemaTenant() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id"},
	}
}

func schemaHost() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string", "description": "Host friendly name."},
		},
		"required": []string{"tenant_id", "name"},
	}
}

func schemaCreate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id":      map[string]any{"type": "string"},
			"friendly_name":  map[string]any{"type": "string"},
			"capacity":       map[string]any{"type": "string", "description": "Instance type, e.g. t3.medium."},
			"agent_platform": map[string]any{"type": "integer", "default": 0, "description": "0 for Linux docker, 7 for EKS, 4 for none."},
		},
		"required": []string{"tenant_id", "friendly_name", "capacity"},
	}
}
