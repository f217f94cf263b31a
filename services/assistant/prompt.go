package assistant

import (
	"rqbackend/clients"
	"rqbackend/core"
	"rqbackend/models"
)

// SystemPreamble is prepended to every prompt
const SystemPreamble = "You are the Research Quest assistant, an AI helper for research teams. " +
	"Help users find literature, plan experiments, analyse data, and use the collaboration tools " +
	"(chat, file sharing, task boards, and the analysis tool gallery). " +
	"Keep answers clear, accurate, and concise, and say so when you are unsure."

type promptBuilder struct {
	tokenCounter *core.TokenCounter
	// maxPromptTokens of 0 sends the full transcript
	maxPromptTokens int
	maxTokens       int
	temperature     float64
}

// build assembles the preamble, prior transcript and the new user turn
func (b *promptBuilder) build(history []models.Message, content string) *clients.CompletionRequest {
	turns := make([]clients.CompletionTurn, 0, len(history)+1)
	for _, message := range history {
		turns = append(turns, clients.CompletionTurn{Role: message.Role, Content: message.Content})
	}
	turns = append(turns, clients.CompletionTurn{Role: models.MessageRoleUser, Content: content})

	if b.maxPromptTokens > 0 {
		turns = b.fitBudget(turns)
	}

	return &clients.CompletionRequest{
		SystemPrompt: SystemPreamble,
		Turns:        turns,
		MaxTokens:    b.maxTokens,
		Temperature:  b.temperature,
	}
}

// fitBudget drops the oldest turns until the estimate fits, always keeping the newest turn.
// The result never starts with an assistant turn.
func (b *promptBuilder) fitBudget(turns []clients.CompletionTurn) []clients.CompletionTurn {
	total := b.tokenCounter.CountTokens(SystemPreamble)
	for _, turn := range turns {
		total += b.tokenCounter.CountTokens(turn.Content)
	}

	start := 0
	for total > b.maxPromptTokens && start < len(turns)-1 {
		total -= b.tokenCounter.CountTokens(turns[start].Content)
		start++
	}
	for start < len(turns)-1 && turns[start].Role == models.MessageRoleAssistant {
		start++
	}
	return turns[start:]
}
