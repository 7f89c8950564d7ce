// Package static is an offline stand-in for the generation gateway so the
// server can run locally without an upstream API key. It echoes the request
// into a minimal utility-class page.
package static

import (
	"context"
	"fmt"
	"html"
	"strings"

	"pagesmith/internal/domain/services"
)

type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

// Complete returns the last user message for enhancement-shaped requests and
// a placeholder HTML document for generation-shaped ones.
func (p *Provider) Complete(_ context.Context, _ string, messages []services.Message) (string, error) {
	var system, user string
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = m.Content
		case "user":
			user = m.Content
		}
	}

	// Enhancement prompts ask for rewritten text, not markup.
	if !strings.Contains(system, "HTML") {
		return "Make the following change precisely: " + strings.TrimSpace(user), nil
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Placeholder Page</title>
<script src="https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4"></script>
</head>
<body class="bg-gray-50 text-gray-900">
<main class="max-w-2xl mx-auto p-8">
<h1 class="text-3xl font-bold mb-4">Placeholder Page</h1>
<p class="text-gray-600">%s</p>
</main>
<script>console.log("static provider page");</script>
</body>
</html>`, html.EscapeString(strings.TrimSpace(user))), nil
}
