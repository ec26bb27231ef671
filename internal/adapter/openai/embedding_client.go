package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"boardgame-recommender/internal/domain"
)

// EmbeddingClient encodes text through an OpenAI-compatible embeddings
// endpoint. The index this service queries was embedded with the same
// model upstream.
type EmbeddingClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     *slog.Logger
}

// NewEmbeddingClient constructs an embedding client for the given endpoint and model.
func NewEmbeddingClient(baseURL, apiKey, model string, client *http.Client, log *slog.Logger) *EmbeddingClient {
	return &EmbeddingClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
		log:     log,
	}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

func (e *EmbeddingClient) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if e.apiKey == "" {
		e.log.Error("embedding service API key is not configured")
		return nil, domain.ErrNotConfigured
	}

	start := time.Now()
	reqBody := embeddingRequest{
		Model: e.model,
		Input: texts,
	}
	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	url := fmt.Sprintf("%s/embeddings", e.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Error("embedding call failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		e.log.Error("embedding endpoint returned non-OK status",
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: embedding status %d", domain.ErrRetrievalUnavailable, resp.StatusCode)
	}

	var respBody embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("%w: failed to decode embedding response: %v", domain.ErrRetrievalUnavailable, err)
	}
	if respBody.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRetrievalUnavailable, respBody.Error.Message)
	}

	// The API may reorder entries; the index field is authoritative.
	embeddings := make([][]float32, len(texts))
	for _, item := range respBody.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", domain.ErrRetrievalUnavailable, item.Index)
		}
		embeddings[item.Index] = item.Embedding
	}
	for i, emb := range embeddings {
		if emb == nil {
			return nil, fmt.Errorf("%w: missing embedding for input %d", domain.ErrRetrievalUnavailable, i)
		}
	}

	e.log.Info("embedding completed",
		slog.Int("text_count", len(texts)),
		slog.Duration("elapsed", time.Since(start)))

	return embeddings, nil
}

// Version returns the wrapped model name.
func (e *EmbeddingClient) Version() string {
	return e.model
}

var _ domain.VectorEncoder = (*EmbeddingClient)(nil)
