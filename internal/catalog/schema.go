package catalog

// bundleSchema is the JSON schema a catalog document must satisfy before
// it is decoded. Semantic checks live in Validate.
var bundleSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "instruments"},
	"properties": map[string]any{
		"version": map[string]any{"type": "string", "minLength": 2},
		"instruments": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"$ref": "#/$defs/instrument"},
		},
		"questions": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/question"},
		},
		"occupations": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/occupation"},
		},
	},
	"$defs": map[string]any{
		"instrument": map[string]any{
			"type":     "object",
			"required": []any{"id", "slug", "name", "category"},
			"properties": map[string]any{
				"id":       map[string]any{"type": "string", "minLength": 1},
				"slug":     map[string]any{"type": "string", "pattern": "^[a-z0-9][a-z0-9-]*$"},
				"name":     map[string]any{"type": "string", "minLength": 1},
				"category": map[string]any{"enum": []any{"interest", "personality", "skill", "composite"}},
				"scale": map[string]any{
					"type":     "object",
					"required": []any{"min", "max"},
					"properties": map[string]any{
						"min": map[string]any{"type": "number"},
						"max": map[string]any{"type": "number"},
					},
				},
				"dimensions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"code", "name"},
						"properties": map[string]any{
							"code":         map[string]any{"type": "string", "minLength": 1},
							"name":         map[string]any{"type": "string", "minLength": 1},
							"environments": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						},
					},
				},
				"bands": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"label", "min", "max"},
					},
				},
				"levels": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"label", "min"},
						"properties": map[string]any{
							"min": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
						},
					},
				},
				"composite": map[string]any{
					"type":     "object",
					"required": []any{"requires", "weights"},
					"properties": map[string]any{
						"requires":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"weights":         map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "number", "minimum": 0}},
						"ready_threshold": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
						"top_n":           map[string]any{"type": "integer", "minimum": 0},
					},
				},
			},
		},
		"question": map[string]any{
			"type":     "object",
			"required": []any{"id", "instrument_id", "dimension"},
			"properties": map[string]any{
				"id":            map[string]any{"type": "string", "minLength": 1},
				"instrument_id": map[string]any{"type": "string", "minLength": 1},
				"dimension":     map[string]any{"type": "string", "minLength": 1},
				"order":         map[string]any{"type": "integer"},
				"options": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"value"},
					},
				},
				"scoring": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "number"},
				},
			},
		},
		"occupation": map[string]any{
			"type":     "object",
			"required": []any{"code", "title", "interests"},
			"properties": map[string]any{
				"code":  map[string]any{"type": "string", "minLength": 1},
				"title": map[string]any{"type": "string", "minLength": 1},
				"interests": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
				},
				"skills": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"skill", "level"},
					},
				},
				"personality": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"trait", "band"},
					},
				},
			},
		},
	},
}
