package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindfitAPI/internal/chat"
	"mindfitAPI/internal/llm"
	"mindfitAPI/internal/retrieval"
	"mindfitAPI/internal/sentiment"
	"mindfitAPI/middleware"
	"mindfitAPI/utils"
)

const retrievedSnippets = 3

// ChatService orchestrates one exchange: get-or-create the user's session,
// build a prompt from recent history plus optional retrieved context,
// generate, persist both turns, classify the raw user message.
type ChatService struct {
	db         *pgxpool.Pool
	llm        *llm.Client
	retriever  *retrieval.Store // nil means history-only mode
	classifier sentiment.Classifier
}

func NewChatService(db *pgxpool.Pool, llmClient *llm.Client, retriever *retrieval.Store, classifier sentiment.Classifier) *ChatService {
	return &ChatService{
		db:         db,
		llm:        llmClient,
		retriever:  retriever,
		classifier: classifier,
	}
}

func (s *ChatService) Respond(ctx context.Context, userID, message string) (*chat.ChatResponse, error) {
	session, err := s.getOrCreateSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	var retrieved []string
	if s.retriever != nil {
		retrieved, err = s.retriever.Retrieve(ctx, userID, message, retrievedSnippets)
		if err != nil {
			// Retrieval trouble degrades to history-only, never fails the chat.
			log.Printf("Respond: retrieval failed for user %s, continuing without context: %v", userID, err)
			retrieved = nil
		}
	}

	prompt := chat.BuildPrompt(session.Messages, retrieved, message)
	answer := s.llm.Generate(ctx, prompt, nil)
	if answer == llm.FallbackMessage {
		middleware.CountLLMFallback()
	}

	now := time.Now()
	if err := s.appendExchange(ctx, userID, message, answer, now); err != nil {
		return nil, err
	}

	insights := s.classifier.Classify(ctx, message)

	return &chat.ChatResponse{
		Response:    answer,
		Sentiment:   insights.Emotion.Label,
		Suggestions: utils.SuggestionsForEmotion(insights.Emotion.Label),
	}, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]chat.Message, error) {
	var messages []chat.Message

	err := s.db.QueryRow(ctx, `SELECT messages FROM chat_sessions WHERE user_id = $1`, userID).Scan(&messages)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []chat.Message{}, nil
		}
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	if messages == nil {
		messages = []chat.Message{}
	}
	return messages, nil
}

func (s *ChatService) ClearHistory(ctx context.Context, userID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM chat_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// getOrCreateSession enforces the one-session-per-user invariant.
func (s *ChatService) getOrCreateSession(ctx context.Context, userID string) (*chat.Session, error) {
	session := &chat.Session{UserID: userID}

	query := `SELECT messages, created_at, updated_at FROM chat_sessions WHERE user_id = $1`
	err := s.db.QueryRow(ctx, query, userID).Scan(&session.Messages, &session.CreatedAt, &session.UpdatedAt)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	now := time.Now()
	insert := `
	INSERT INTO chat_sessions (user_id, messages, created_at, updated_at)
	VALUES ($1, '[]'::jsonb, $2, $2)
	`
	if _, err := s.db.Exec(ctx, insert, userID, now); err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	session.CreatedAt = now
	session.UpdatedAt = now
	return session, nil
}

// appendExchange pushes the user message and the assistant reply, in that
// order, onto the session's message array.
func (s *ChatService) appendExchange(ctx context.Context, userID, userContent, assistantContent string, now time.Time) error {
	turns := []chat.Message{
		{Role: chat.RoleUser, Content: userContent, Timestamp: now},
		{Role: chat.RoleAssistant, Content: assistantContent, Timestamp: now},
	}

	query := `
	UPDATE chat_sessions
	SET messages = messages || $2, updated_at = $3
	WHERE user_id = $1
	`

	result, err := s.db.Exec(ctx, query, userID, turns, now)
	if err != nil {
		return fmt.Errorf("failed to append chat messages: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat session disappeared for user %s", userID)
	}
	return nil
}
