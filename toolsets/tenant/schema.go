package tenant

func schemaList() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func schemaName() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "description": "Tenant name."},
		},
		"required": []string{"name"},
	}
}

func schemaCreate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"account_name": map[string]any{"type": "string", "description": "Name of the new tenant."},
			"plan_id":      map[string]any{"type": "string", "description": "Infrastructure plan the tenant belongs to."},
		},
		"required": []string{"account_name", "plan_id"},
	}
}
