package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func testClient(complete completeFunc) *Client {
	return &Client{complete: complete}
}

func TestGenerateFailureYieldsFallback(t *testing.T) {
	c := testClient(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	})

	got := c.Generate(context.Background(), "hello", nil)

	if got != FallbackMessage {
		t.Errorf("expected fallback message, got %q", got)
	}
}

func TestGeneratePrependsPersonaContext(t *testing.T) {
	var seen string
	c := testClient(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "ok", nil
	})

	c.Generate(context.Background(), "the prompt body", nil)

	if !strings.HasPrefix(seen, "User message and context:\n") {
		t.Errorf("expected wrapped prompt, got %q", seen)
	}
	if !strings.Contains(seen, "the prompt body") {
		t.Errorf("expected original prompt inside, got %q", seen)
	}
}

func TestGenerateStopSequences(t *testing.T) {
	c := testClient(func(ctx context.Context, prompt string) (string, error) {
		return "keep this STOP drop this", nil
	})

	got := c.Generate(context.Background(), "x", []string{"STOP"})

	if got != "keep this" {
		t.Errorf("expected truncation at stop sequence, got %q", got)
	}
}

func TestGenerateTrimsWhitespace(t *testing.T) {
	c := testClient(func(ctx context.Context, prompt string) (string, error) {
		return "\n\n  an answer  \n", nil
	})

	got := c.Generate(context.Background(), "x", nil)

	if got != "an answer" {
		t.Errorf("expected trimmed output, got %q", got)
	}
}
