package deck

// importSchema describes a deck file accepted by Import.
var importSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "cards"},
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"difficulty":  map[string]any{"type": "string"},
		"cards": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"front", "back"},
				"properties": map[string]any{
					"front": map[string]any{"type": "string", "minLength": 1},
					"back":  map[string]any{"type": "string", "minLength": 1},
					"hint":  map[string]any{"type": "string"},
					"wrongAnswers": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}
