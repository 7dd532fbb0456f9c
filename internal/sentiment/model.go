package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const (
	defaultSentimentModel = "distilbert-base-uncased-finetuned-sst-2-english"
	defaultEmotionModel   = "bhadresh-savani/distilbert-base-uncased-emotion"
	inferenceBaseURL      = "https://api-inference.huggingface.co/models/"
)

// ModelClassifier calls hosted text-classification models over HTTP. A failed
// call substitutes a fixed neutral result; it never switches back to the
// heuristic backend.
type ModelClassifier struct {
	token          string
	sentimentModel string
	emotionModel   string
	httpClient     *http.Client
	baseURL        string
}

func newModelClassifier(token string) *ModelClassifier {
	sentimentModel := os.Getenv("HF_SENTIMENT_MODEL")
	if sentimentModel == "" {
		sentimentModel = defaultSentimentModel
	}
	emotionModel := os.Getenv("HF_EMOTION_MODEL")
	if emotionModel == "" {
		emotionModel = defaultEmotionModel
	}

	return &ModelClassifier{
		token:          token,
		sentimentModel: sentimentModel,
		emotionModel:   emotionModel,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		baseURL:        inferenceBaseURL,
	}
}

func (m *ModelClassifier) Classify(ctx context.Context, text string) Insights {
	insights := Insights{
		Sentiment: Score{Label: LabelNeutral, Score: 0.5},
		Emotion:   Score{Label: "joy", Score: 0.5},
	}

	if s, err := m.classifyWith(ctx, m.sentimentModel, text); err != nil {
		log.Printf("Sentiment: inference call failed, substituting neutral: %v", err)
	} else {
		insights.Sentiment = s
	}

	if e, err := m.classifyWith(ctx, m.emotionModel, text); err != nil {
		log.Printf("Sentiment: emotion inference failed, substituting default: %v", err)
	} else {
		insights.Emotion = e
	}

	return insights
}

func (m *ModelClassifier) classifyWith(ctx context.Context, model, text string) (Score, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return Score{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+model, bytes.NewReader(body))
	if err != nil {
		return Score{}, err
	}
	req.Header.Set("Authorization", "Bearer "+m.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Score{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Score{}, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, payload)
	}

	// The API returns one ranked label list per input.
	var result [][]Score
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Score{}, fmt.Errorf("malformed inference response: %w", err)
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return Score{}, fmt.Errorf("empty inference response")
	}

	top := result[0][0]
	for _, candidate := range result[0][1:] {
		if candidate.Score > top.Score {
			top = candidate
		}
	}
	return top, nil
}
