package embedkit

import (
	"context"
	"log/slog"
)

// Context is the request-scoped context handed to hooks. RequestID is a
// fresh correlation ID per outbound call, shared with the debug logs.
type Context struct {
	context.Context

	RequestID string
	Logger    *slog.Logger
}

// BeforeRequestHook may rewrite the outgoing payload before it is sent.
type BeforeRequestHook func(ctx *Context, req EmbeddingRequest) EmbeddingRequest

// AfterRequestHook observes the parsed response, or the error that replaced
// it, and may substitute either. Hooks run in registration order; they must
// not retry the call.
type AfterRequestHook func(ctx *Context, resp *EmbeddingResponse, err error) (*EmbeddingResponse, error)
