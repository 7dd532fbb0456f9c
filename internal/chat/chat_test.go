package chat

import (
	"strings"
	"testing"
	"time"
)

func TestAppendExchangeOrder(t *testing.T) {
	s := &Session{UserID: "u1"}
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	s.AppendExchange("hello", "Hi! How are you feeling today?", now)

	if len(s.Messages) != 2 {
		t.Fatalf("expected exactly 2 messages, got %d", len(s.Messages))
	}
	if s.Messages[0].Role != RoleUser || s.Messages[0].Content != "hello" {
		t.Errorf("expected user message first, got %+v", s.Messages[0])
	}
	if s.Messages[1].Role != RoleAssistant {
		t.Errorf("expected assistant message second, got %+v", s.Messages[1])
	}
	if !s.UpdatedAt.Equal(now) {
		t.Errorf("expected updated_at %v, got %v", now, s.UpdatedAt)
	}
}

func TestRecentHistoryWindow(t *testing.T) {
	var messages []Message
	for i := 0; i < 10; i++ {
		messages = append(messages, Message{Role: RoleUser, Content: string(rune('a' + i))})
	}

	recent := RecentHistory(messages)

	if len(recent) != MemoryWindow {
		t.Fatalf("expected %d messages, got %d", MemoryWindow, len(recent))
	}
	if recent[0].Content != "e" || recent[len(recent)-1].Content != "j" {
		t.Errorf("expected the last %d messages, got %q..%q", MemoryWindow, recent[0].Content, recent[len(recent)-1].Content)
	}
}

func TestRecentHistoryShorterThanWindow(t *testing.T) {
	messages := []Message{{Role: RoleUser, Content: "only one"}}

	recent := RecentHistory(messages)
	if len(recent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(recent))
	}
}

func TestBuildPromptIncludesHistoryAndQuestion(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "I slept badly"},
		{Role: RoleAssistant, Content: "That sounds rough."},
	}

	prompt := BuildPrompt(history, nil, "  any tips?  ")

	if !strings.Contains(prompt, "user: I slept badly") {
		t.Errorf("expected history line in prompt, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "assistant: That sounds rough.") {
		t.Errorf("expected assistant line in prompt, got:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "User: any tips?\nAssistant:") {
		t.Errorf("expected trimmed question at the end, got:\n%s", prompt)
	}
}

func TestBuildPromptTruncatesHistory(t *testing.T) {
	var history []Message
	for i := 0; i < 20; i++ {
		history = append(history, Message{Role: RoleUser, Content: "old message"})
	}

	prompt := BuildPrompt(history, nil, "question")

	if got := strings.Count(prompt, "user: old message"); got != MemoryWindow {
		t.Errorf("expected %d history lines, got %d", MemoryWindow, got)
	}
}

func TestBuildPromptInjectsRetrievedContext(t *testing.T) {
	prompt := BuildPrompt(nil, []string{"journal: I started running"}, "how do I keep it up?")

	if !strings.Contains(prompt, "Relevant context from earlier conversations:") {
		t.Errorf("expected retrieved context header, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- journal: I started running") {
		t.Errorf("expected snippet line, got:\n%s", prompt)
	}
}

func TestBuildPromptWithoutRetrievalHasNoContextHeader(t *testing.T) {
	prompt := BuildPrompt(nil, nil, "hello")

	if strings.Contains(prompt, "Relevant context") {
		t.Errorf("history-only prompt must not mention retrieved context:\n%s", prompt)
	}
}
