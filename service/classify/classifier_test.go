package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryKnownModels(t *testing.T) {
	tests := []struct {
		service string
		sku     string
		want    string
	}{
		{"Vertex AI", "gemini-1.5-pro-001", "Gemini 1.5 Pro/Provisional"},
		{"Vertex AI", "Gemini 1.5 Pro Text Input", "Gemini 1.5 Pro/Provisional"},
		{"Vertex AI", "gemini-1.5-flash-002", "Gemini 1.5 Flash"},
		{"Vertex AI", "Claude 3.5 Sonnet Output Tokens", "Claude 3.5 Sonnet"},
		{"Vertex AI", "claude-3-5-haiku", "Claude 3.5 Haiku"},
		{"Vertex AI", "Llama 3.1 405B Instruct", "Llama"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Category(tt.service, tt.sku), "Category(%q, %q)", tt.service, tt.sku)
	}
}

func TestCategoryServiceBuckets(t *testing.T) {
	assert.Equal(t, "Vertex AI - Other Models", Category("Vertex AI", "some-unrecognized-sku"))
	assert.Equal(t, "Gemini API - Other Models", Category("Generative Language API", "token usage"))
	assert.Equal(t, "Non-AI Services", Category("Compute Engine", ""))
	assert.Equal(t, "Non-AI Services", Category("Cloud Storage", "Standard Storage US"))
}

// Rule order matters: a versioned family match must win over the bare-name
// fallback, and a model match must win over the service bucket.
func TestCategoryPrecedence(t *testing.T) {
	// Contains both "gemini-1.5-pro" and, were it split differently,
	// material for the generic rules; the versioned rule sits first.
	assert.Equal(t, "Gemini 1.5 Pro/Provisional", Category("Vertex AI", "gemini-1.5-pro-preview-0409"))

	// A recognized model on a Vertex row never falls into the Vertex bucket.
	assert.Equal(t, "Llama", Category("Vertex AI", "llama-3-70b"))

	// A recognized model string wins even for a service with its own bucket.
	assert.Equal(t, "Gemini Pro", Category("Generative Language API", "Gemini Pro Input"))
}

func TestCategoryIsTotal(t *testing.T) {
	// No input falls through without a label.
	assert.NotEmpty(t, Category("", ""))
	assert.Equal(t, "Non-AI Services", Category("", ""))
}

func TestModelLabel(t *testing.T) {
	assert.Equal(t, "Vertex AI - gemini-1.5-pro-001",
		ModelLabel("Vertex AI", "Gemini 1.5 Pro Text Input", "gemini-1.5-pro-001"))

	assert.Equal(t, "Vertex AI - Claude 3 Opus",
		ModelLabel("Vertex AI", "Claude 3 Opus Output Tokens", ""))

	assert.Equal(t, "Compute Engine - Unknown Model",
		ModelLabel("Compute Engine", "N1 Predefined Instance Core", ""))

	assert.Equal(t, "Vertex AI - Unknown Model",
		ModelLabel("Vertex AI", "some-unrecognized-sku", ""))
}
