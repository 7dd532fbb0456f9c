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

	"mindfitAPI/internal/mood"
)

type MoodService struct {
	db *pgxpool.Pool
}

func NewMoodService(db *pgxpool.Pool) *MoodService {
	return &MoodService{db: db}
}

// Create inserts an immutable mood entry and updates the user's streak and
// badges. It returns the entry, the updated streak and any newly earned
// badges. The streak continues when a prior entry exists in
// [start of yesterday, now); otherwise it resets to 1 with the new entry
// counting as day one.
func (s *MoodService) Create(ctx context.Context, userID string, req *mood.CreateEntryRequest) (*mood.EntryResponse, int, []string, error) {
	now := time.Now()

	// The window is evaluated over prior entries only, before this insert.
	windowStart, windowEnd := mood.QualifyWindow(now)
	var continued bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM mood_entries
			WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		)`, userID, windowStart, windowEnd).Scan(&continued)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to check streak window: %w", err)
	}

	entry := &mood.Entry{
		ID:          uuid.New().String(),
		UserID:      userID,
		MoodScore:   req.MoodScore,
		EnergyLevel: req.EnergyLevel,
		FocusLevel:  req.FocusLevel,
		Notes:       req.Notes,
		CreatedAt:   now,
	}

	insert := `
	INSERT INTO mood_entries (id, user_id, mood_score, energy_level, focus_level, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.Exec(ctx, insert, entry.ID, entry.UserID, entry.MoodScore, entry.EnergyLevel, entry.FocusLevel, entry.Notes, entry.CreatedAt)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	var currentStreak int
	var badges []string
	err = s.db.QueryRow(ctx, `SELECT streak, badges FROM users WHERE id = $1`, userID).Scan(&currentStreak, &badges)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, nil, ErrNotFound
		}
		return nil, 0, nil, fmt.Errorf("failed to get user streak: %w", err)
	}

	streak := mood.NextStreak(currentStreak, continued)
	if _, err := s.db.Exec(ctx, `UPDATE users SET streak = $2, updated_at = NOW() WHERE id = $1`, userID, streak); err != nil {
		return nil, 0, nil, fmt.Errorf("failed to update streak: %w", err)
	}

	newBadges := mood.NewBadges(streak, badges)
	if len(newBadges) > 0 {
		if _, err := s.db.Exec(ctx, `UPDATE users SET badges = badges || $2 WHERE id = $1`, userID, newBadges); err != nil {
			return nil, 0, nil, fmt.Errorf("failed to award badges: %w", err)
		}
		log.Printf("Create: user %s earned badges %v at streak %d", userID, newBadges, streak)
	}

	resp := &mood.EntryResponse{
		ID:          entry.ID,
		MoodScore:   entry.MoodScore,
		EnergyLevel: entry.EnergyLevel,
		FocusLevel:  entry.FocusLevel,
		Notes:       entry.Notes,
		CreatedAt:   entry.CreatedAt,
	}
	return resp, streak, newBadges, nil
}

func (s *MoodService) List(ctx context.Context, userID string) ([]*mood.EntryResponse, error) {
	query := `
	SELECT id, mood_score, energy_level, focus_level, notes, created_at
	FROM mood_entries
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	defer rows.Close()

	var entries []*mood.EntryResponse
	for rows.Next() {
		e := &mood.EntryResponse{}
		if err := rows.Scan(&e.ID, &e.MoodScore, &e.EnergyLevel, &e.FocusLevel, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if entries == nil {
		entries = []*mood.EntryResponse{}
	}
	return entries, nil
}

// Stats reports all-time averages, the 7-day trend and the stored streak.
func (s *MoodService) Stats(ctx context.Context, userID string) (*mood.Stats, error) {
	query := `
	SELECT id, user_id, mood_score, energy_level, focus_level, notes, created_at
	FROM mood_entries
	WHERE user_id = $1
	ORDER BY created_at ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mood entries: %w", err)
	}
	defer rows.Close()

	var entries []mood.Entry
	for rows.Next() {
		var e mood.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.MoodScore, &e.EnergyLevel, &e.FocusLevel, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if len(entries) == 0 {
		return &mood.Stats{MoodTrend: []mood.TrendPoint{}}, nil
	}

	var streak int
	if err := s.db.QueryRow(ctx, `SELECT streak FROM users WHERE id = $1`, userID).Scan(&streak); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user streak: %w", err)
	}

	avgMood, avgEnergy, avgFocus := mood.Averages(entries)

	return &mood.Stats{
		AverageMood:   avgMood,
		AverageEnergy: avgEnergy,
		AverageFocus:  avgFocus,
		MoodTrend:     mood.WeeklyTrend(entries, time.Now()),
		StreakDays:    streak,
	}, nil
}
