package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/incgamma/internal/types"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// ErrToolFailed is wrapped by errors for results reported with success=false
var ErrToolFailed = errors.New("tool failed")

// Client calls a remote incgamma server
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	mu      sync.RWMutex
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.resty.SetTimeout(d) }
}

// WithRetry configures retry behavior
func WithRetry(maxRetries int, minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.resty.SetRetryCount(maxRetries).
			SetRetryWaitTime(minWait).
			SetRetryMaxWaitTime(maxWait)
	}
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.SetRateLimit(rps) }
}

// Limits are the optional per-request evaluator overrides
type Limits struct {
	Epsilon       *float64
	MaxIterations *int
}

// Evaluation is the decoded result of a math.gamma.p or math.gamma.q call
type Evaluation struct {
	Value      float64
	Region     string
	Iterations int
	Delegated  bool
}

type apiError struct {
	Error string `json:"error"`
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	// Pooled transport shared with retryablehttp defaults
	transport := retryablehttp.NewClient().HTTPClient.Transport

	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTransport(transport).
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("User-Agent", "incgamma-client/1.0").
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			code := resp.StatusCode()
			return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
		})
	r.SetJSONMarshaler(sonic.Marshal)
	r.SetJSONUnmarshaler(sonic.Unmarshal)

	c := &Client{
		resty:   r,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
}

// Health returns the server health document
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.get(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Services lists the services registered on the server
func (c *Client) Services(ctx context.Context) ([]types.Service, error) {
	var out struct {
		Services []types.Service `json:"services"`
	}
	if err := c.get(ctx, "/services", &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

// Execute runs a tool remotely. A tool that reports failure is returned as
// a result, not an error.
func (c *Client) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	var result types.Result
	err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetBody(types.ExecuteRequest{ToolID: toolID, Params: params}).
			SetResult(&result).
			Post("/services/execute")
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Evaluate computes P(a,x) or Q(a,x) on the server
func (c *Client) Evaluate(ctx context.Context, fn gamma.Function, a, x float64, limits *Limits) (*Evaluation, error) {
	params := map[string]interface{}{"a": a, "x": x}
	if limits != nil {
		if limits.Epsilon != nil {
			params["epsilon"] = *limits.Epsilon
		}
		if limits.MaxIterations != nil {
			params["maxIterations"] = *limits.MaxIterations
		}
	}

	toolID := "math.gamma.p"
	if fn == gamma.FunctionQ {
		toolID = "math.gamma.q"
	}

	result, err := c.Execute(ctx, toolID, params)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		msg := "unknown error"
		if result.Error != nil {
			msg = *result.Error
		}
		return nil, fmt.Errorf("%w: %s", ErrToolFailed, msg)
	}

	return decodeEvaluation(result.Data)
}

func decodeEvaluation(data map[string]interface{}) (*Evaluation, error) {
	value, ok := data["result"].(float64)
	if !ok {
		return nil, fmt.Errorf("malformed result: %v", data["result"])
	}

	ev := &Evaluation{Value: value}
	ev.Region, _ = data["region"].(string)
	ev.Delegated, _ = data["delegated"].(bool)
	if n, ok := data["iterations"].(float64); ok {
		ev.Iterations = int(n)
	}
	return ev, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(out).Get(path)
	})
}

func (c *Client) do(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) error {
	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	var apiErr apiError
	resp, err := send(c.resty.R().SetContext(ctx).SetError(&apiErr))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return fmt.Errorf("%s %s: %d: %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", resp.Request.Method, resp.Request.URL, resp.StatusCode())
	}
	return nil
}
