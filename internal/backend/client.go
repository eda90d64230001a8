package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/metrics"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

const (
	defaultBaseURL = "http://localhost:5001"
	defaultTimeout = 15 * time.Second
	apiPrefix      = "/api/v1"

	// maxErrorMessage bounds backend error text kept for logs and callers.
	maxErrorMessage = 300
)

var tracer = otel.Tracer("dentist-booking-web/internal/backend")

// Client calls the booking backend REST API. All hosts come from one base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	metrics    *metrics.BackendMetrics
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithMetrics(m *metrics.BackendMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient constructs a backend client rooted at baseURL.
func NewClient(baseURL string, logger *logging.Logger, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the backend's response wrapper. The backend spells the success
// flag "sucess" on some dentist routes, so both keys are read.
type envelope struct {
	Success *bool           `json:"success"`
	Sucess  *bool           `json:"sucess"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) failed() bool {
	return (e.Success != nil && !*e.Success) || (e.Sucess != nil && !*e.Sucess)
}

// wrapped reports whether the body carried any envelope key. Bare documents
// decode into an envelope without error but set none of them.
func (e envelope) wrapped() bool {
	return e.Success != nil || e.Sucess != nil || e.Data != nil
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do issues one request and decodes the envelope's data into out.
// token may be empty for unauthenticated routes.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) (err error) {
	ctx, span := tracer.Start(ctx, "backend."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("backend.path", path),
	)

	start := time.Now()
	defer func() {
		code := "ok"
		if err != nil {
			code = string(CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, code)
		}
		c.metrics.ObserveRequest(op, code, time.Since(start).Seconds())
	}()

	var bodyReader io.Reader
	if body != nil {
		payload, merr := json.Marshal(body)
		if merr != nil {
			return &Error{Op: op, Code: CodeBadRequest, Err: fmt.Errorf("marshal request: %w", merr)}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, bodyReader)
	if err != nil {
		return &Error{Op: op, Code: CodeBadRequest, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Code: CodeNetwork, Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Code: CodeNetwork, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.message()
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		msg = truncate(msg, maxErrorMessage)
		c.logger.Warn("backend non-2xx response", "operation", op, "status", resp.StatusCode, "path", path, "body", msg)
		return &Error{Op: op, Code: codeForStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if decodeErr != nil || !env.wrapped() {
		if out == nil {
			return nil
		}
		// Some routes answer with the bare document instead of an envelope.
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Op: op, Code: CodeDecode, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}
	if env.failed() {
		return &Error{Op: op, Code: CodeRejected, Status: resp.StatusCode, Message: env.message()}
	}
	if out == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Op: op, Code: CodeDecode, Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// checkID validates a record id before it is put into a path.
func checkID(op, hexID string) error {
	if _, err := models.ParseID(hexID); err != nil {
		return &Error{Op: op, Code: CodeBadRequest, Err: err}
	}
	return nil
}
