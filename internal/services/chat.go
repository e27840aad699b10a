package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/hrdesk/assistant-backend/internal/clients/openai"
	"github.com/hrdesk/assistant-backend/internal/domain"
	"github.com/hrdesk/assistant-backend/internal/pkg/apperr"
	"github.com/hrdesk/assistant-backend/internal/pkg/logger"
)

// ChatService answers employee questions grounded in retrieved document
// chunks: embed the question, query the store, pick the best confidence tier
// and generate a completion over that context.
type ChatService interface {
	Answer(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error)
}

type ChatConfig struct {
	// TopK is how many similarity matches are requested per question.
	TopK int
	// HistoryLimit caps how many prior conversation turns are replayed.
	HistoryLimit int
}

type chatService struct {
	log     *logger.Logger
	embed   EmbeddingService
	vectors VectorService
	ai      openai.Client
	cfg     ChatConfig
}

func NewChatService(log *logger.Logger, embed EmbeddingService, vectors VectorService, ai openai.Client, cfg ChatConfig) ChatService {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 6
	}
	return &chatService{
		log:     log.With("service", "ChatService"),
		embed:   embed,
		vectors: vectors,
		ai:      ai,
		cfg:     cfg,
	}
}

func (s *chatService) Answer(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.ChatResult{}, apperr.ErrNoMessage
	}

	s.log.Info("Processing chat query",
		"department", req.Department,
		"history_turns", len(req.ConversationHistory),
	)

	questionEmbedding, err := s.embed.Embed(ctx, message)
	if err != nil {
		return domain.ChatResult{}, fmt.Errorf("embed question: %w", err)
	}

	var filter map[string]any
	if dep := strings.TrimSpace(req.Department); dep != "" && dep != "all" {
		filter = map[string]any{"department": dep}
	}

	matches, err := s.vectors.Query(ctx, questionEmbedding, s.cfg.TopK, filter)
	if err != nil {
		return domain.ChatResult{}, &apperr.SearchError{Err: err}
	}

	relevant, confidence := selectTier(matches)
	s.log.Debug("Tiered search results",
		"total", len(matches),
		"relevant", len(relevant),
		"confidence", confidence,
	)

	if len(relevant) == 0 {
		return domain.ChatResult{}, &apperr.NoRelevantContentError{SearchResults: len(matches)}
	}

	contextText := buildContext(relevant)

	messages := make([]domain.ChatMessage, 0, s.cfg.HistoryLimit+2)
	messages = append(messages, domain.ChatMessage{
		Role:    "system",
		Content: systemPrompt(confidence, contextText),
	})
	history := req.ConversationHistory
	if len(history) > s.cfg.HistoryLimit {
		history = history[len(history)-s.cfg.HistoryLimit:]
	}
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: "user", Content: message})

	answer, err := s.ai.ChatComplete(ctx, messages)
	if err != nil {
		return domain.ChatResult{}, fmt.Errorf("generate response: %w", err)
	}

	sources := make([]domain.Source, len(relevant))
	for i, m := range relevant {
		sources[i] = domain.Source{
			Filename:   m.Metadata.Filename,
			Score:      math.Round(m.Score*100) / 100,
			Department: m.Metadata.Department,
		}
	}

	return domain.ChatResult{
		Response:           answer,
		Sources:            sources,
		ContextUsed:        len(contextText) > 0,
		RelevantChunks:     len(relevant),
		TotalSearchResults: len(matches),
		ConfidenceLevel:    confidence,
	}, nil
}

// selectTier partitions matches by similarity score and picks the best
// non-empty tier, never blending tiers. Boundaries: a score of exactly 0.7
// is medium, exactly 0.5 is low, and 0.3 or below is discarded. Store
// ordering is preserved within the chosen tier.
func selectTier(matches []domain.Match) ([]domain.Match, string) {
	var high, medium, low []domain.Match
	for _, m := range matches {
		switch {
		case m.Score > 0.7:
			high = append(high, m)
		case m.Score > 0.5:
			medium = append(medium, m)
		case m.Score > 0.3:
			low = append(low, m)
		}
	}
	switch {
	case len(high) > 0:
		return high, domain.ConfidenceHigh
	case len(medium) > 0:
		return medium, domain.ConfidenceMedium
	case len(low) > 0:
		return low, domain.ConfidenceLow
	default:
		return nil, domain.ConfidenceNone
	}
}

func buildContext(matches []domain.Match) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("[%s] %s", m.Metadata.Filename, m.Metadata.Text)
	}
	return strings.Join(parts, "\n\n")
}

func systemPrompt(confidence, context string) string {
	switch confidence {
	case domain.ConfidenceHigh:
		return `You are a friendly and helpful HR assistant for this company. You have access to high-quality, relevant company documents to answer the user's question accurately.

GUIDELINES:
- Be conversational, warm, and professional in your tone
- Use the provided context to give accurate, specific information
- Always mention the source document when referencing specific policies
- Feel free to be helpful and engaging while staying factual
- If you need clarification, ask follow-up questions

Company Document Context:
` + context
	case domain.ConfidenceMedium:
		return `You are a helpful HR assistant for this company. You have some relevant information from company documents, though it may not be perfectly matched to the question.

GUIDELINES:
- Be conversational and helpful
- Use the available context but acknowledge if information seems partial
- Mention source documents when referencing policies
- Suggest contacting HR directly for complete details if needed
- Be honest about the limitations of the available information

Company Document Context:
` + context
	default:
		return `You are a friendly HR assistant for this company. The available information may only be loosely related to the user's question.

GUIDELINES:
- Be conversational and understanding
- Use any relevant context you have, but be clear about limitations
- Acknowledge that you may not have the complete answer
- Encourage the user to contact HR directly for authoritative information
- Still try to be helpful with what information is available
- Suggest rephrasing the question if it might help find better information

Available Context:
` + context
	}
}
