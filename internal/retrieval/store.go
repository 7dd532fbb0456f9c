package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultEmbeddingModel = "text-embedding-3-small"
	defaultStoreDir       = "./vector_stores"
)

type embedFunc func(ctx context.Context, inputs []string) ([][]float64, error)

// Store is a per-user similarity index over previously stored snippets,
// persisted as one JSON file per user. A nil *Store means retrieval is
// disabled and callers run history-only.
type Store struct {
	dir   string
	embed embedFunc
}

type indexItem struct {
	Text   string    `json:"text"`
	Vector []float64 `json:"vector"`
}

type userIndex struct {
	Items []indexItem `json:"items"`
}

// NewStore resolves the USE_RETRIEVAL flag (auto/true/false) against the
// available embedding backend. Unavailability is a configuration outcome,
// not an error: the result is simply nil.
func NewStore() *Store {
	mode := os.Getenv("USE_RETRIEVAL")
	if mode == "" {
		mode = "auto"
	}
	if mode == "false" {
		return nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		if mode == "true" {
			log.Println("Retrieval: requested but no embedding credentials, running history-only")
		}
		return nil
	}

	model := os.Getenv("EMBEDDING_MODEL")
	if model == "" {
		model = defaultEmbeddingModel
	}
	dir := os.Getenv("VECTOR_STORE_DIR")
	if dir == "" {
		dir = defaultStoreDir
	}

	api := openai.NewClient(option.WithAPIKey(apiKey))

	return &Store{
		dir: dir,
		embed: func(ctx context.Context, inputs []string) ([][]float64, error) {
			resp, err := api.Embeddings.New(ctx, openai.EmbeddingNewParams{
				Model: model,
				Input: openai.EmbeddingNewParamsInputUnion{
					OfArrayOfStrings: inputs,
				},
			})
			if err != nil {
				return nil, err
			}
			if len(resp.Data) != len(inputs) {
				return nil, fmt.Errorf("embedding API returned %d vectors for %d inputs", len(resp.Data), len(inputs))
			}
			vectors := make([][]float64, len(resp.Data))
			for i, d := range resp.Data {
				vectors[i] = d.Embedding
			}
			return vectors, nil
		},
	}
}

// Retrieve returns up to k stored snippets most similar to the query. A user
// with no index yet yields no results and no error.
func (s *Store) Retrieve(ctx context.Context, userID, query string, k int) ([]string, error) {
	idx, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	if idx == nil || len(idx.Items) == 0 {
		return nil, nil
	}

	vectors, err := s.embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	queryVec := vectors[0]

	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, 0, len(idx.Items))
	for _, item := range idx.Items {
		ranked = append(ranked, scored{item.Text, cosine(queryVec, item.Vector)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if k > len(ranked) {
		k = len(ranked)
	}
	results := make([]string, 0, k)
	for _, r := range ranked[:k] {
		results = append(results, r.text)
	}
	return results, nil
}

// Add embeds the snippets and appends them to the user's index.
func (s *Store) Add(ctx context.Context, userID string, texts []string) error {
	if len(texts) == 0 {
		return nil
	}

	vectors, err := s.embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed snippets: %w", err)
	}

	idx, err := s.load(userID)
	if err != nil {
		return err
	}
	if idx == nil {
		idx = &userIndex{}
	}
	for i, text := range texts {
		idx.Items = append(idx.Items, indexItem{Text: text, Vector: vectors[i]})
	}

	return s.save(userID, idx)
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.dir, userID+".json")
}

func (s *Store) load(userID string) (*userIndex, error) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx userIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("corrupt index for user %s: %w", userID, err)
	}
	return &idx, nil
}

func (s *Store) save(userID string, idx *userIndex) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store dir: %w", err)
	}

	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(userID), data, 0o644)
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
