package liquid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMessageTemplate(t *testing.T) {
	t.Run("renders variables", func(t *testing.T) {
		out, err := RenderMessageTemplate("Hello {{ name }}, re: {{ subject }}", map[string]interface{}{
			"name":    "Ada",
			"subject": "Invoice #1234",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Hello Ada, re: Invoice #1234", out)
	})

	t.Run("missing variables render empty", func(t *testing.T) {
		out, err := RenderMessageTemplate("Hi {{ missing }}!", map[string]interface{}{})
		assert.NoError(t, err)
		assert.Equal(t, "Hi !", out)
	})

	t.Run("empty template is an error", func(t *testing.T) {
		_, err := RenderMessageTemplate("", nil)
		assert.Error(t, err)
	})

	t.Run("invalid syntax is an error", func(t *testing.T) {
		_, err := RenderMessageTemplate("{% unclosed", nil)
		assert.Error(t, err)
	})
}
