package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := Render("Hello {{name}}, your order #{{orderId}} is ready.", map[string]string{
		"name":    "Ravi",
		"orderId": "42",
	})
	assert.Equal(t, "Hello Ravi, your order #42 is ready.", out)
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	out := Render("Hi {{name}}, code: {{code}}", map[string]string{"name": "Ravi"})
	assert.Equal(t, "Hi Ravi, code: {{code}}", out)
}

func TestRenderWithWhitespace(t *testing.T) {
	out := Render("Total: {{ amount }}", map[string]string{"amount": "199"})
	assert.Equal(t, "Total: 199", out)
}

func TestRenderNoPlaceholders(t *testing.T) {
	assert.Equal(t, "plain text", Render("plain text", nil))
}

func TestPlaceholders(t *testing.T) {
	keys := Placeholders("{{a}} and {{b}} then {{a}} again")
	assert.Equal(t, []string{"a", "b"}, keys)
}
