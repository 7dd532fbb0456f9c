package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindfitAPI/internal/journal"
	"mindfitAPI/internal/llm"
	"mindfitAPI/internal/retrieval"
)

const insightPromptFormat = `Based on the following journal entry, provide a brief, supportive insight that might help the person.
Be empathetic and constructive. Keep it to 2-3 sentences maximum.

Journal entry: %s`

type JournalService struct {
	db        *pgxpool.Pool
	llm       *llm.Client
	retriever *retrieval.Store // nil disables entry indexing
}

func NewJournalService(db *pgxpool.Pool, llmClient *llm.Client, retriever *retrieval.Store) *JournalService {
	return &JournalService{db: db, llm: llmClient, retriever: retriever}
}

func (s *JournalService) Create(ctx context.Context, userID string, req *journal.CreateEntryRequest) (*journal.EntryResponse, error) {
	now := time.Now()
	entry := &journal.Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   req.Content,
		Mood:      req.Mood,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	query := `
	INSERT INTO journal_entries (id, user_id, content, mood, tags, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.Exec(ctx, query, entry.ID, entry.UserID, entry.Content, entry.Mood, entry.Tags, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	// Index the entry so chat can recall it later. Best effort only.
	if s.retriever != nil {
		if err := s.retriever.Add(ctx, userID, []string{entry.Content}); err != nil {
			log.Printf("Create: failed to index journal entry %s: %v", entry.ID, err)
		}
	}

	insights := s.llm.Generate(ctx, fmt.Sprintf(insightPromptFormat, entry.Content), nil)

	return &journal.EntryResponse{
		ID:        entry.ID,
		Content:   entry.Content,
		Mood:      entry.Mood,
		Tags:      entry.Tags,
		CreatedAt: entry.CreatedAt,
		Insights:  insights,
	}, nil
}

func (s *JournalService) List(ctx context.Context, userID string) ([]*journal.EntryResponse, error) {
	query := `
	SELECT id, content, mood, tags, created_at
	FROM journal_entries
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*journal.EntryResponse
	for rows.Next() {
		e := &journal.EntryResponse{}
		if err := rows.Scan(&e.ID, &e.Content, &e.Mood, &e.Tags, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if entries == nil {
		entries = []*journal.EntryResponse{}
	}
	return entries, nil
}

func (s *JournalService) Get(ctx context.Context, userID, entryID string) (*journal.EntryResponse, error) {
	e := &journal.EntryResponse{}

	query := `
	SELECT id, content, mood, tags, created_at
	FROM journal_entries
	WHERE id = $1 AND user_id = $2
	`

	err := s.db.QueryRow(ctx, query, entryID, userID).Scan(&e.ID, &e.Content, &e.Mood, &e.Tags, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	e.Insights = s.llm.Generate(ctx, fmt.Sprintf(insightPromptFormat, e.Content), nil)
	return e, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, entryID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
