package sentiment

import (
	"context"
	"log"
	"os"
	"strings"
)

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
)

type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Insights struct {
	Sentiment Score `json:"sentiment"`
	Emotion   Score `json:"emotion"`
}

// Classifier turns free text into a sentiment label and an emotion label.
// Implementations never fail; degraded output is substituted instead.
type Classifier interface {
	Classify(ctx context.Context, text string) Insights
}

// NewClassifier picks the backend once for the process lifetime: the hosted
// model when an inference token is configured, the keyword heuristic
// otherwise. There is no per-call switching afterwards.
func NewClassifier() Classifier {
	if token := os.Getenv("HF_API_TOKEN"); token != "" {
		log.Println("Sentiment: using hosted inference backend")
		return newModelClassifier(token)
	}
	log.Println("Sentiment: inference token not set, using heuristic backend")
	return HeuristicClassifier{}
}

var positiveWords = []string{
	"good", "great", "happy", "love", "calm", "okay", "fine", "grateful", "hopeful", "relaxed",
}

var negativeWords = []string{
	"bad", "sad", "depressed", "angry", "upset", "stressed", "anxious", "worried", "afraid", "tired",
}

// emotionKeywords is ordered; the first emotion reaching the highest hit
// count wins a tie.
var emotionKeywords = []struct {
	emotion string
	words   []string
}{
	{"sadness", []string{"sad", "down", "depressed", "lonely", "cry", "empty"}},
	{"anger", []string{"angry", "mad", "furious", "annoyed", "irritated", "rage"}},
	{"fear", []string{"fear", "afraid", "scared", "anxious", "worried", "panic"}},
	{"joy", []string{"happy", "joy", "excited", "grateful", "content", "proud"}},
}

// HeuristicClassifier counts keyword occurrences with case-insensitive
// substring matching. Used when no trained model backend is available.
type HeuristicClassifier struct{}

func (HeuristicClassifier) Classify(_ context.Context, text string) Insights {
	lower := strings.ToLower(strings.TrimSpace(text))

	return Insights{
		Sentiment: heuristicSentiment(lower),
		Emotion:   heuristicEmotion(lower),
	}
}

func heuristicSentiment(lower string) Score {
	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	label := LabelNeutral
	switch {
	case pos > neg:
		label = LabelPositive
	case neg > pos:
		label = LabelNegative
	}

	diff := pos - neg
	if diff < 0 {
		diff = -diff
	}
	return Score{Label: label, Score: capScore(0.5+0.1*float64(diff), 0.99)}
}

func heuristicEmotion(lower string) Score {
	// joy is the default when nothing matches at all.
	best := "joy"
	bestHits := 0

	for _, ek := range emotionKeywords {
		hits := 0
		for _, w := range ek.words {
			if strings.Contains(lower, w) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = ek.emotion, hits
		}
	}

	return Score{Label: best, Score: capScore(0.5+0.1*float64(bestHits), 0.95)}
}

func capScore(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}
