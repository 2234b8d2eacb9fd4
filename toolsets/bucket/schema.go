package bucket

func schemaTenant() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id"},
	}
}

func schemaBucket() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id", "name"},
	}
}

func schemaUpdate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id":  map[string]any{"type": "string"},
			"name":       map[string]any{"type": "string"},
			"versioning": map[string]any{"type": "boolean", "description": "Enable or disable versioning."},
		},
		"required": []string{"tenant_id", "name"},
	}
}
