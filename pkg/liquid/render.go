package liquid

import (
	"fmt"

	"github.com/osteele/liquid"
)

// RenderMessageTemplate renders a Liquid template with the provided data.
// Used for message subjects and bodies before they are handed to the mailer.
func RenderMessageTemplate(template string, data map[string]interface{}) (string, error) {
	if template == "" {
		return "", fmt.Errorf("template content is empty")
	}

	engine := liquid.NewEngine()

	rendered, err := engine.ParseAndRenderString(template, data)
	if err != nil {
		return "", fmt.Errorf("liquid rendering failed: %w", err)
	}

	return rendered, nil
}
