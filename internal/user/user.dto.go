package user

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Streak    int       `json:"streak"`
	Badges    []string  `json:"badges"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserStats struct {
	Streak         int      `json:"streak"`
	Badges         []string `json:"badges"`
	JournalEntries int      `json:"journal_entries"`
	MoodCheckins   int      `json:"mood_checkins"`
}
