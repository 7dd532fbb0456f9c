package llm

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const defaultModel = "gpt-4o-mini"

// FallbackMessage is returned whenever generation fails. The user must always
// get a response, never an error.
const FallbackMessage = "I'm sorry, I had trouble generating a response. Could you please try again?"

// CoachPersona is prepended to every generation call so the tone and safety
// rules hold even if a caller builds a bare prompt.
const CoachPersona = `You are a supportive and empathetic mental fitness coach. Your goal is to help users build emotional resilience,
focus, and productivity through thoughtful conversations. You use principles from Cognitive Behavioral Therapy (CBT)
and mindfulness practices.

Guidelines:
1. Be empathetic and supportive, but not clinical or overly formal
2. Ask open-ended questions to encourage reflection
3. Provide practical, actionable advice when appropriate
4. Recognize emotional states from user's text
5. Suggest relevant mindfulness or CBT techniques when helpful
6. Maintain a positive and encouraging tone
7. Never provide medical advice or attempt to diagnose conditions
8. If a user appears to be in crisis, gently suggest professional help

Remember that your purpose is to be a supportive companion for daily mental wellness,
not to replace professional mental health care.`

type completeFunc func(ctx context.Context, prompt string) (string, error)

// Client wraps the hosted generation API behind a never-fails Generate.
type Client struct {
	complete completeFunc
}

// NewClient builds a client for the configured model. OPENAI_API_KEY and
// OPENAI_MODEL come from the environment.
func NewClient() *Client {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	api := openai.NewClient(option.WithAPIKey(os.Getenv("OPENAI_API_KEY")))

	return &Client{
		complete: func(ctx context.Context, prompt string) (string, error) {
			resp, err := api.Responses.New(ctx, responses.ResponseNewParams{
				Model:        model,
				Instructions: openai.String(CoachPersona),
				Input: responses.ResponseNewParamsInputUnion{
					OfString: openai.String(prompt),
				},
			})
			if err != nil {
				return "", err
			}
			return resp.OutputText(), nil
		},
	}
}

// Generate produces text for the prompt. Any downstream failure yields the
// fixed fallback message instead of an error. Output is truncated at the
// first stop sequence found and trimmed of surrounding whitespace.
func (c *Client) Generate(ctx context.Context, prompt string, stop []string) string {
	text, err := c.complete(ctx, "User message and context:\n"+prompt)
	if err != nil {
		log.Printf("LLM: generation failed, substituting fallback: %v", err)
		text = FallbackMessage
	}

	for _, s := range stop {
		if idx := strings.Index(text, s); idx >= 0 {
			text = text[:idx]
		}
	}

	return strings.TrimSpace(text)
}
