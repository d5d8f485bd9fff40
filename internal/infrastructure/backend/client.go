package backend

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/config"
)

type tokenKey struct{}

// WithToken attaches the session's backend token to ctx. Every call made
// with that context carries it as a bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client is the single configured transport to the lab backend.
type Client struct {
	http *resty.Client
	log  *logrus.Logger

	mu             sync.RWMutex
	onUnauthorized []func(ctx context.Context)
}

func NewClient(cfg config.BackendConfig, log *logrus.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.RetryCount > 0 {
		httpClient.
			SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				// Only reads are safe to repeat.
				return err != nil && r != nil && r.Request != nil && r.Request.Method == http.MethodGet
			})
	}

	return newClient(httpClient, log)
}

func newClient(httpClient *resty.Client, log *logrus.Logger) *Client {
	c := &Client{http: httpClient, log: log}
	httpClient.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if token := TokenFrom(r.Context()); token != "" {
			r.SetAuthToken(token)
		}
		return nil
	})
	return c
}

// OnUnauthorized registers fn to run whenever a call comes back 401.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	hooks := append([]func(context.Context){}, c.onUnauthorized...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

// Do issues one request and returns the raw body of a 2xx response.
// Any other outcome is an *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method":  method,
			"path":    path,
			"latency": time.Since(start).String(),
		}).Warnf("Failed to reach backend: %+v", err)
		return nil, &Error{
			Kind:    KindNetwork,
			Message: "backend unreachable",
			cause:   errors.Wrapf(err, "%s %s", method, path),
		}
	}

	c.log.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode(),
		"latency": resp.Time().String(),
	}).Debug("backend call")

	if !resp.IsSuccess() {
		be := parseError(resp.StatusCode(), resp.Body())
		if be.Kind == KindUnauthorized {
			c.unauthorized(ctx)
		}
		return nil, be
	}
	return resp.Body(), nil
}

// Call issues a request and decodes the data envelope of the response into out.
// out may be nil when the body is not needed.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	raw, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := decodeData(raw, out); err != nil {
		return &Error{Kind: KindServer, Status: http.StatusOK, Message: "unexpected response body", cause: errors.WithStack(err)}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Call(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Call(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Call(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Call(ctx, http.MethodDelete, path, nil, nil, nil)
}
