package curriculum

import "github.com/abhisek/edustream/internal/llm"

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string"},
	}
}

// LearningPathSchema defines the JSON schema for learning path generation.
var LearningPathSchema = &llm.Schema{
	Name:        "learning-path",
	Description: "A structured learning roadmap of sequential modules with activities, resources and a check-in project",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The subject or skill the roadmap covers",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences describing the journey",
			},
			"totalEstimatedWeeks": map[string]any{
				"type":        "string",
				"description": "Estimated duration, e.g. \"8-10 weeks\"",
			},
			"prerequisites": stringArray("What the learner should know before starting"),
			"outcomes":      stringArray("What the learner will be able to do at the end"),
			"modules": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Unique identifier within this roadmap, e.g. \"unit-1\"",
						},
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"duration": map[string]any{
							"type":        "string",
							"description": "Time to complete, e.g. \"2 weeks\"",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"Beginner", "Intermediate", "Advanced"},
						},
						"activities": stringArray("Specific learning activities"),
						"resources": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name": map[string]any{"type": "string"},
									"url":  map[string]any{"type": "string"},
									"type": map[string]any{
										"type": "string",
										"enum": []any{"video", "article", "quiz", "tool"},
									},
								},
								"required":             []any{"name", "url", "type"},
								"additionalProperties": false,
							},
						},
						"project": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title":       map[string]any{"type": "string"},
								"description": map[string]any{"type": "string"},
							},
							"required":             []any{"title", "description"},
							"additionalProperties": false,
						},
					},
					"required":             []any{"id", "title", "description", "duration", "difficulty", "activities", "resources", "project"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topic", "summary", "totalEstimatedWeeks", "modules", "outcomes", "prerequisites"},
		"additionalProperties": false,
	},
}
