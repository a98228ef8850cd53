// Package classify maps billing rows to AI reporting categories. The rule
// table is an ordered list evaluated top to bottom; the first matching rule
// wins, so model-specific rules sit above the service-level buckets and the
// catch-all sits last. Every input maps to exactly one label.
package classify

import "strings"

type rule struct {
	substr string
	label  string
}

// Model rules match against the lowercased SKU description or Vertex model
// ID. Versioned families (1.5, 3.5) come before their bare-name fallbacks so
// "gemini-1.5-pro-001" never lands in the generic Gemini Pro bucket.
var modelRules = []rule{
	{"gemini-1.5-pro", "Gemini 1.5 Pro/Provisional"},
	{"gemini 1.5 pro", "Gemini 1.5 Pro/Provisional"},
	{"gemini-1.5-flash", "Gemini 1.5 Flash"},
	{"gemini 1.5 flash", "Gemini 1.5 Flash"},
	{"gemini ultra", "Gemini Ultra"},
	{"gemini pro", "Gemini Pro"},
	{"gemini flash", "Gemini Flash"},
	{"claude-3-5-sonnet", "Claude 3.5 Sonnet"},
	{"claude 3.5 sonnet", "Claude 3.5 Sonnet"},
	{"claude-3-5-haiku", "Claude 3.5 Haiku"},
	{"claude 3.5 haiku", "Claude 3.5 Haiku"},
	{"claude-3-opus", "Claude 3 Opus"},
	{"claude 3 opus", "Claude 3 Opus"},
	{"claude-3-sonnet", "Claude 3 Sonnet"},
	{"claude 3 sonnet", "Claude 3 Sonnet"},
	{"claude-3-haiku", "Claude 3 Haiku"},
	{"claude 3 haiku", "Claude 3 Haiku"},
	{"llama", "Llama"},
}

const (
	vertexOtherLabel = "Vertex AI - Other Models"
	geminiAPILabel   = "Gemini API - Other Models"
	nonAILabel       = "Non-AI Services"
	unknownModel     = "Unknown Model"
)

// Category returns the AI reporting category for one billing row.
// skuOrModel is the Vertex model ID when the export carries one, otherwise
// the SKU description.
func Category(serviceName, skuOrModel string) string {
	needle := strings.ToLower(skuOrModel)
	for _, r := range modelRules {
		if strings.Contains(needle, r.substr) {
			return r.label
		}
	}

	svc := strings.ToLower(serviceName)
	if strings.Contains(svc, "vertex ai") {
		return vertexOtherLabel
	}
	if strings.Contains(svc, "generative language") || strings.Contains(svc, "gemini api") {
		return geminiAPILabel
	}

	return nonAILabel
}

// ModelLabel returns the "<service> - <model>" grouping key. The Vertex
// model ID is used verbatim when present; otherwise the SKU description is
// matched against the model rules; rows with no identifiable model get
// "<service> - Unknown Model".
func ModelLabel(serviceName, skuDescription, modelID string) string {
	if modelID != "" {
		return serviceName + " - " + modelID
	}

	needle := strings.ToLower(skuDescription)
	for _, r := range modelRules {
		if strings.Contains(needle, r.substr) {
			return serviceName + " - " + r.label
		}
	}

	return serviceName + " - " + unknownModel
}
