package assist

import "github.com/abhisek/flashiz/internal/llm"

// HintSchema is the output of a hint request.
var HintSchema = &llm.Schema{
	Name:        "card-hint",
	Description: "A short hint that nudges toward the answer without giving it away",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One sentence hint, at most 20 words, that never contains the answer",
				"minLength":   1,
			},
		},
		"required":             []any{"hint"},
		"additionalProperties": false,
	},
}

// DistractorSchema is the output of a distractor request.
var DistractorSchema = &llm.Schema{
	Name:        "card-distractors",
	Description: "Plausible but wrong answers for a flashcard",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"distractors": map[string]any{
				"type":        "array",
				"description": "Wrong answers of the same kind and length as the correct answer",
				"items":       map[string]any{"type": "string", "minLength": 1},
				"minItems":    1,
				"maxItems":    5,
			},
		},
		"required":             []any{"distractors"},
		"additionalProperties": false,
	},
}
