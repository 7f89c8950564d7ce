package service

import "testing"

func TestSanitizeGenerated(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "html fence",
			input: "```html\n<html><body>hi</body></html>\n```",
			want:  "<html><body>hi</body></html>",
		},
		{
			name:  "bare fence",
			input: "```\n<p>x</p>\n```",
			want:  "<p>x</p>",
		},
		{
			name:  "uppercase language tag",
			input: "```HTML\n<div></div>\n```",
			want:  "<div></div>",
		},
		{
			name:  "no fences unchanged",
			input: "<!DOCTYPE html><html></html>",
			want:  "<!DOCTYPE html><html></html>",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  \n<p>x</p>\n\n",
			want:  "<p>x</p>",
		},
		{
			name:  "closing fence with trailing whitespace",
			input: "```html\n<p>x</p>\n```  ",
			want:  "<p>x</p>",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "fences only",
			input: "```html\n```",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeGenerated(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeGenerated(%q) = %q, want %q", tt.input, got, tt.want)
			}

			// Idempotent: sanitizing twice equals sanitizing once.
			if again := SanitizeGenerated(got); again != got {
				t.Errorf("not idempotent: second pass turned %q into %q", got, again)
			}
		})
	}
}
