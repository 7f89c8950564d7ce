package service

import (
	"fmt"

	"pagesmith/internal/domain/services"
)

// System instructions for the two gateway calls of a revision and the two of
// a project creation. Wording matters less than the hard output-format rules:
// the code-generation prompts must forbid prose and fences so the sanitizer
// stays a fallback, not a load-bearing parser.

const enhanceRevisionSystem = `You are a prompt enhancement specialist. The user wants to make changes to their website. Enhance their request to be more specific and actionable for a web developer.

Enhance this by:
1. Being specific about what elements to change
2. Mentioning design details (colors, spacing, sizes)
3. Clarifying the desired outcome
4. Using clear technical terms

Return ONLY the enhanced request, nothing else. Keep it concise (1-2 sentences).`

const applyRevisionSystem = `You are an expert web developer.

CRITICAL REQUIREMENTS:
- Return ONLY the complete updated HTML code with the requested changes.
- Use Tailwind CSS for ALL styling (NO custom CSS).
- Use Tailwind utility classes for all styling changes.
- Include all JavaScript in <script> tags before closing </body>
- Make sure it's a complete, standalone HTML document with Tailwind CSS
- Return the HTML Code Only, nothing else

Apply the requested changes while maintaining the Tailwind CSS styling approach.`

const enhanceCreationSystem = `You are a prompt enhancement specialist. Take the user's website request and expand it into a detailed, comprehensive prompt that will help create the best possible website.

Enhance this prompt by:
1. Adding specific design details (layout, color scheme, typography)
2. Specifying key sections and features
3. Describing the user experience and interactions
4. Including modern web design best practices
5. Mentioning responsive design requirements
6. Adding any missing but important elements

Return ONLY the enhanced prompt, nothing else. Make it detailed but concise (2-3 paragraphs max).`

const generateCreationSystem = `You are an expert web developer. Create a complete, production-ready, single-page website based on the user's request.

CRITICAL REQUIREMENTS:
- You MUST output valid HTML ONLY.
- Use Tailwind CSS for ALL styling
- Include this EXACT script in the <head>: <script src="https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4"></script>
- Use Tailwind utility classes extensively for styling, animations, and responsiveness
- Make it fully functional and interactive with JavaScript in <script> tag before closing </body>
- Make it responsive using Tailwind responsive classes (sm:, md:, lg:, xl:)
- Include all necessary meta tags
- Use placeholder images from https://placehold.co/600x400
- Do NOT include markdown, explanations, notes, or code fences.

The HTML should be complete and ready to render as-is with Tailwind CSS.`

// Conversation log wording, kept stable because clients key UI states off it.
const (
	msgEnhancedPrompt  = `I've enhanced your prompt to: "%s"`
	msgRevisionStarted = "Now making changes to your website..."
	msgRevisionDone    = "I've made the changes to your website! You can now preview it"
	msgCreationStarted = "Now generating your website..."
	msgCreationDone    = "I've created your website! You can now preview it and request any changes."
	msgRolledBack      = "I've rolled back your website to the selected version. You can now preview it."
)

func enhanceRevisionMessages(prompt string) []services.Message {
	return []services.Message{
		{Role: "system", Content: enhanceRevisionSystem},
		{Role: "user", Content: fmt.Sprintf("User's request: %q", prompt)},
	}
}

func applyRevisionMessages(currentCode, enhancedPrompt string) []services.Message {
	return []services.Message{
		{Role: "system", Content: applyRevisionSystem},
		{Role: "user", Content: fmt.Sprintf("Here is the current website code: %q. The user wants this change %q", currentCode, enhancedPrompt)},
	}
}

func enhanceCreationMessages(prompt string) []services.Message {
	return []services.Message{
		{Role: "system", Content: enhanceCreationSystem},
		{Role: "user", Content: prompt},
	}
}

func generateCreationMessages(enhancedPrompt string) []services.Message {
	return []services.Message{
		{Role: "system", Content: generateCreationSystem},
		{Role: "user", Content: enhancedPrompt},
	}
}
