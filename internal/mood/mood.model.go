package mood

import "time"

// Entry is a single mood check-in. Entries are immutable once created.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MoodScore   int       `json:"mood_score"`
	EnergyLevel int       `json:"energy_level"`
	FocusLevel  int       `json:"focus_level"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateEntryRequest struct {
	MoodScore   int     `json:"mood_score"`
	EnergyLevel int     `json:"energy_level"`
	FocusLevel  int     `json:"focus_level"`
	Notes       *string `json:"notes,omitempty"`
}

type EntryResponse struct {
	ID          string    `json:"id"`
	MoodScore   int       `json:"mood_score"`
	EnergyLevel int       `json:"energy_level"`
	FocusLevel  int       `json:"focus_level"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TrendPoint struct {
	Date  string `json:"date"`
	Value *int   `json:"value"`
}

type Stats struct {
	AverageMood   float64      `json:"average_mood"`
	AverageEnergy float64      `json:"average_energy"`
	AverageFocus  float64      `json:"average_focus"`
	MoodTrend     []TrendPoint `json:"mood_trend"`
	StreakDays    int          `json:"streak_days"`
}
