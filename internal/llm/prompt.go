package llm

import "ragchat/internal/domain"

// systemPrompt conditions the assistant for grounded answering.
const systemPrompt = "You are a helpful AI assistant who answers clearly and uses Markdown formatting. " +
	"If context is provided, use it. Otherwise answer independently."

// BuildMessages assembles the chat messages for one question. A
// non-empty context block wraps the question in grounding instructions;
// an empty block falls back to an unconditioned prompt with just the
// question.
func BuildMessages(contextText, question string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildUserPrompt(contextText, question)},
	}
}

// BuildUserPrompt renders the user-facing prompt text, shared by both
// generation call shapes.
func BuildUserPrompt(contextText, question string) string {
	if contextText == "" {
		return question
	}
	return "You're given relevant context from user files:\n\n" + contextText + "\n\nNow answer:\n" + question
}
