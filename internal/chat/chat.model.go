package chat

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds the single per-user conversation. Messages are append-only;
// the whole session is deleted when history is cleared.
type Session struct {
	UserID    string    `json:"user_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppendExchange records one completed turn: the user message first, then the
// assistant reply, both stamped with now.
func (s *Session) AppendExchange(userContent, assistantContent string, now time.Time) {
	s.Messages = append(s.Messages,
		Message{Role: RoleUser, Content: userContent, Timestamp: now},
		Message{Role: RoleAssistant, Content: assistantContent, Timestamp: now},
	)
	s.UpdatedAt = now
}
