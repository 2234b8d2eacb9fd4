package database

func schemaTenant() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id"},
	}
}

func schemaDatabase() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string", "description": "Database instance identifier."},
		},
		"required": []string{"tenant_id", "name"},
	}
}

func schemaCreate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id":       map[string]any{"type": "string"},
			"identifier":      map[string]any{"type": "string"},
			"engine":          map[string]any{"type": "string", "description": "mysql, postgres, mariadb, ..."},
			"size":            map[string]any{"type": "string", "description": "Instance class, e.g. db.t3.micro."},
			"master_username": map[string]any{"type": "string", "default": "master"},
			"master_password": map[string]any{"type": "string"},
		},
		"required": []string{"tenant_id", "identifier", "engine", "size"},
	}
}

func schemaUpdate() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tenant_id": map[string]any{"type": "string"},
			"name":      map[string]any{"type": "string"},
			"size":      map[string]any{"type": "string", "description": "New instance class."},
		},
		"required": []string{"tenant_id", "name"},
	}
}
