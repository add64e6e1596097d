package webhook

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/transfer-market/internal/domain/notification"
	"github.com/riskibarqy/transfer-market/internal/platform/logging"
	"github.com/riskibarqy/transfer-market/internal/platform/resilience"
	"github.com/riskibarqy/transfer-market/internal/usecase"
)

var errWebhookTransient = crerr.New("notification webhook transient failure")

type ClientConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client posts stored notifications to an outside endpoint.
type Client struct {
	http    *fasthttp.Client
	url     string
	token   string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid NOTIFY_WEBHOOK_URL")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "transfer-market-notify",
			MaxIdleConnDuration: time.Minute,
		},
		url:     target,
		token:   strings.TrimSpace(cfg.Token),
		timeout: timeout,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:  logger.Named("webhook"),
	}, nil
}

var _ usecase.NotificationSender = (*Client)(nil)

func (c *Client) Send(ctx context.Context, n notification.Notification) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "webhook circuit breaker rejected delivery", "state", c.breaker.State(), "notification_id", n.ID)
		return fmt.Errorf("%w: notification webhook: %w", usecase.ErrDependencyUnavailable, err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ctx.Err()
		}
		timeout = min(timeout, remaining)
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	if err := sonic.ConfigDefault.NewEncoder(body).Encode(newPayload(n)); err != nil {
		return crerr.Wrap(err, "encode notification payload")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", c.url),
			attribute.Int64("notification.id", n.ID),
			attribute.String("notification.kind", string(n.Kind)),
		)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Idempotency-Key", "notification-"+strconv.FormatInt(n.ID, 10))
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.SetBody(body.B)

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		callErr := fmt.Errorf("%w: post notification id=%d: %v", errWebhookTransient, n.ID, err)
		c.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		respBody := truncateForLog(strings.TrimSpace(string(resp.Body())), 512)
		var callErr error
		if isRetryableStatus(status) {
			callErr = fmt.Errorf("%w: post notification id=%d status=%d body=%s", errWebhookTransient, n.ID, status, respBody)
		} else {
			callErr = fmt.Errorf("post notification id=%d status=%d body=%s", n.ID, status, respBody)
		}
		c.recordCircuitResult(callErr)
		return callErr
	}

	c.recordCircuitResult(nil)
	c.logger.DebugContext(ctx, "notification delivered", "notification_id", n.ID, "user_id", n.UserID, "status", status)
	return nil
}

func (c *Client) recordCircuitResult(err error) {
	if err != nil && isCircuitFailure(err) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type payload struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"created_at"`
}

func newPayload(n notification.Notification) payload {
	return payload{
		ID:        n.ID,
		UserID:    n.UserID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		URL:       n.URL,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errWebhookTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
