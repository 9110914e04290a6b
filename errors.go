package embedkit

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingEmbeddings reports a response whose "embeddings" field is
	// absent, null, or empty.
	ErrMissingEmbeddings = errors.New(`invalid response payload: missing "embeddings"`)

	// ErrMissingEmbedding reports a response item without an "embedding"
	// field. In batch responses it is wrapped with the offending index.
	ErrMissingEmbedding = errors.New(`invalid response payload: missing "embedding"`)

	// ErrCountMismatch reports a batch response whose item count does not
	// equal the number of input texts. It is wrapped with both counts.
	ErrCountMismatch = errors.New("response length mismatch")
)

// TransportError is returned when the service answers with a non-2xx status.
// The response body is retained (capped) for diagnosis.
type TransportError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *TransportError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("embeddings request failed: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("embeddings request failed: %s", e.Status)
}
