package embedkit

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultEmbedTimeout = 30 * time.Second
	defaultBatchTimeout = 60 * time.Second
)

type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Config)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// EmbedTimeout bounds single-text calls, BatchTimeout bounds batch calls.
	// Batch calls get the longer default to accommodate larger payloads.
	EmbedTimeout time.Duration
	BatchTimeout time.Duration

	HTTPClient *http.Client
	Logger     *slog.Logger
	LogLevel   slog.Level

	BeforeRequest []BeforeRequestHook
	AfterRequest  []AfterRequestHook
}

// NewClient creates a new embedkit Client with the given options.
// No network activity happens here; the configuration is fixed for the
// lifetime of the client and safe to read from concurrent callers.
func NewClient(opts ...ClientOption) *Client {
	c := Config{
		EmbedTimeout: defaultEmbedTimeout,
		BatchTimeout: defaultBatchTimeout,
		LogLevel:     slog.LevelInfo,
	}

	for _, opt := range opts {
		opt(&c)
	}

	// A trailing slash would double up once the endpoint path is appended.
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: c.LogLevel,
		}))
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		config:     c,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithAPIKey sets the API key used as the bearer token.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

// WithBaseURL sets the base URL of the embedding service.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithModel sets the embedding model requested from the service.
func WithModel(model string) ClientOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithEmbedTimeout overrides the deadline applied to single-text calls.
func WithEmbedTimeout(timeout time.Duration) ClientOption {
	return func(c *Config) {
		c.EmbedTimeout = timeout
	}
}

// WithBatchTimeout overrides the deadline applied to batch calls.
func WithBatchTimeout(timeout time.Duration) ClientOption {
	return func(c *Config) {
		c.BatchTimeout = timeout
	}
}

// WithHTTPClient sets the underlying HTTP client. Connection pooling and
// keep-alive behavior belong to this client, not to embedkit.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Config) {
		c.HTTPClient = httpClient
	}
}

// WithLogger sets the logger. When unset, a text logger on stderr is built
// from the configured LogLevel.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithLogLevel sets the minimum log level for the client's internal logging.
func WithLogLevel(level slog.Level) ClientOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

func WithBeforeRequestHook(hook BeforeRequestHook) ClientOption {
	return func(c *Config) {
		c.BeforeRequest = append(c.BeforeRequest, hook)
	}
}

func WithAfterRequestHook(hook AfterRequestHook) ClientOption {
	return func(c *Config) {
		c.AfterRequest = append(c.AfterRequest, hook)
	}
}
