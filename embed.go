package embedkit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// inputTypeDocument is the input type tag the service expects for document
// embeddings.
const inputTypeDocument = "document"

// maxErrorBody caps how much of an error response body is kept on a
// TransportError.
const maxErrorBody = 4 << 10

// Embedder converts text into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

var _ Embedder = (*Client)(nil)

// EmbeddingRequest is the payload sent to the embeddings endpoint.
type EmbeddingRequest struct {
	Inputs         []string `json:"inputs"`
	InputType      string   `json:"input_type"`
	EmbeddingModel string   `json:"embedding_model"`
}

// EmbeddingResponse mirrors the service's response shape. Embedding stays nil
// when the field is absent or null, which is what the validation keys on.
type EmbeddingResponse struct {
	Embeddings []EmbeddingItem `json:"embeddings"`
}

type EmbeddingItem struct {
	Embedding []float64 `json:"embedding"`
}

// Embed requests an embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.do(ctx, EmbeddingRequest{
		Inputs:         []string{text},
		InputType:      inputTypeDocument,
		EmbeddingModel: c.config.Model,
	}, c.config.EmbedTimeout)
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) == 0 {
		return nil, ErrMissingEmbeddings
	}

	vector := resp.Embeddings[0].Embedding
	if vector == nil {
		return nil, ErrMissingEmbedding
	}

	return vector, nil
}

// EmbedBatch requests embedding vectors for all texts in one call and returns
// them in input order. An empty input returns an empty slice without touching
// the network.
//
// The service is trusted to answer one result per input in input order; there
// is no correlation identifier to verify ordering with, only the count.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	resp, err := c.do(ctx, EmbeddingRequest{
		Inputs:         texts,
		InputType:      inputTypeDocument,
		EmbeddingModel: c.config.Model,
	}, c.config.BatchTimeout)
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) == 0 {
		return nil, ErrMissingEmbeddings
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, errors.Wrapf(ErrCountMismatch, "expected %d, got %d", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float64, 0, len(resp.Embeddings))
	for i, item := range resp.Embeddings {
		if item.Embedding == nil {
			return nil, errors.Wrapf(ErrMissingEmbedding, "response item %d", i)
		}

		vectors = append(vectors, item.Embedding)
	}

	return vectors, nil
}

// do performs the single outbound round trip shared by both operations.
// Every failure path surfaces to the caller; nothing is retried.
func (c *Client) do(ctx context.Context, req EmbeddingRequest, timeout time.Duration) (*EmbeddingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqContext := &Context{
		Context:   ctx,
		RequestID: uuid.New().String(),
		Logger:    c.logger,
	}

	for _, hook := range c.config.BeforeRequest {
		req = hook(reqContext, req)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "encode embeddings request")
	}

	c.logger.Debug("sending embeddings request",
		"request_id", reqContext.RequestID,
		"model", req.EmbeddingModel,
		"inputs", len(req.Inputs),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build embeddings request")
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.applyAfterHooks(reqContext, nil, errors.Wrap(err, "embeddings request"))
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))

		return c.applyAfterHooks(reqContext, nil, &TransportError{
			StatusCode: httpResp.StatusCode,
			Status:     httpResp.Status,
			Body:       bytes.TrimSpace(errBody),
		})
	}

	var resp EmbeddingResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return c.applyAfterHooks(reqContext, nil, errors.Wrap(err, "decode embeddings response"))
	}

	return c.applyAfterHooks(reqContext, &resp, nil)
}

func (c *Client) applyAfterHooks(ctx *Context, resp *EmbeddingResponse, err error) (*EmbeddingResponse, error) {
	for _, hook := range c.config.AfterRequest {
		resp, err = hook(ctx, resp, err)
	}

	return resp, err
}
