package journal

import "time"

type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Mood      *string   `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateEntryRequest struct {
	Content string   `json:"content" validate:"required"`
	Mood    *string  `json:"mood,omitempty"`
	Tags    []string `json:"tags"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Mood      *string   `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	Insights  string    `json:"insights,omitempty"`
}
