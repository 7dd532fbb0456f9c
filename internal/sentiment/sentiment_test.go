package sentiment

import (
	"context"
	"math"
	"testing"
)

func TestHeuristicSentimentPositive(t *testing.T) {
	c := HeuristicClassifier{}

	// "good" and "happy" hit the positive set, nothing negative.
	got := c.Classify(context.Background(), "I am good and happy")

	if got.Sentiment.Label != LabelPositive {
		t.Errorf("expected %s, got %s", LabelPositive, got.Sentiment.Label)
	}
	if math.Abs(got.Sentiment.Score-0.7) > 1e-9 {
		t.Errorf("expected score 0.7, got %v", got.Sentiment.Score)
	}
}

func TestHeuristicSentimentNegative(t *testing.T) {
	c := HeuristicClassifier{}

	got := c.Classify(context.Background(), "I feel sad and tired and stressed")

	if got.Sentiment.Label != LabelNegative {
		t.Errorf("expected %s, got %s", LabelNegative, got.Sentiment.Label)
	}
	if math.Abs(got.Sentiment.Score-0.8) > 1e-9 {
		t.Errorf("expected score 0.8, got %v", got.Sentiment.Score)
	}
}

func TestHeuristicSentimentNeutralOnTie(t *testing.T) {
	c := HeuristicClassifier{}

	// One positive ("happy"), one negative ("sad").
	got := c.Classify(context.Background(), "happy but also sad")

	if got.Sentiment.Label != LabelNeutral {
		t.Errorf("expected %s, got %s", LabelNeutral, got.Sentiment.Label)
	}
	if got.Sentiment.Score != 0.5 {
		t.Errorf("expected score 0.5, got %v", got.Sentiment.Score)
	}
}

func TestHeuristicSentimentScoreCapped(t *testing.T) {
	c := HeuristicClassifier{}

	got := c.Classify(context.Background(), "bad sad depressed angry upset stressed anxious worried afraid tired")

	if got.Sentiment.Label != LabelNegative {
		t.Errorf("expected %s, got %s", LabelNegative, got.Sentiment.Label)
	}
	if got.Sentiment.Score != 0.99 {
		t.Errorf("expected capped score 0.99, got %v", got.Sentiment.Score)
	}
}

func TestHeuristicEmotionDefaultsToJoy(t *testing.T) {
	c := HeuristicClassifier{}

	got := c.Classify(context.Background(), "the weather report mentioned rain")

	if got.Emotion.Label != "joy" {
		t.Errorf("expected default joy, got %s", got.Emotion.Label)
	}
	if got.Emotion.Score != 0.5 {
		t.Errorf("expected score 0.5, got %v", got.Emotion.Score)
	}
}

func TestHeuristicEmotionTieBreakOrder(t *testing.T) {
	c := HeuristicClassifier{}

	// One hit each for sadness ("lonely") and anger ("furious"); sadness
	// comes first in the fixed order so it wins the tie.
	got := c.Classify(context.Background(), "lonely and furious")

	if got.Emotion.Label != "sadness" {
		t.Errorf("expected sadness to win the tie, got %s", got.Emotion.Label)
	}
	if math.Abs(got.Emotion.Score-0.6) > 1e-9 {
		t.Errorf("expected score 0.6, got %v", got.Emotion.Score)
	}
}

func TestHeuristicEmotionPicksHighestHits(t *testing.T) {
	c := HeuristicClassifier{}

	got := c.Classify(context.Background(), "I feel scared, anxious and full of panic about tomorrow")

	if got.Emotion.Label != "fear" {
		t.Errorf("expected fear, got %s", got.Emotion.Label)
	}
}

func TestClassifyAlwaysReturnsKnownLabels(t *testing.T) {
	c := HeuristicClassifier{}
	sentiments := map[string]bool{LabelPositive: true, LabelNegative: true, LabelNeutral: true}
	emotions := map[string]bool{"sadness": true, "anger": true, "fear": true, "joy": true}

	inputs := []string{
		"", "   ", "HAPPY DAYS", "i am so mad and furious", "empty inside",
		"panic attack at work", "grateful and proud", "x", "1234567890",
	}

	for _, in := range inputs {
		got := c.Classify(context.Background(), in)
		if !sentiments[got.Sentiment.Label] {
			t.Errorf("input %q: unknown sentiment label %q", in, got.Sentiment.Label)
		}
		if !emotions[got.Emotion.Label] {
			t.Errorf("input %q: unknown emotion label %q", in, got.Emotion.Label)
		}
		if got.Sentiment.Score < 0 || got.Sentiment.Score > 1 {
			t.Errorf("input %q: sentiment score %v out of range", in, got.Sentiment.Score)
		}
		if got.Emotion.Score < 0 || got.Emotion.Score > 1 {
			t.Errorf("input %q: emotion score %v out of range", in, got.Emotion.Score)
		}
	}
}

func TestHeuristicMatchingIsCaseInsensitive(t *testing.T) {
	c := HeuristicClassifier{}

	got := c.Classify(context.Background(), "I am GRATEFUL and HOPEFUL")

	if got.Sentiment.Label != LabelPositive {
		t.Errorf("expected %s, got %s", LabelPositive, got.Sentiment.Label)
	}
}
