package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Bearing/internal/calc/bearing"
	"Bearing/internal/calc/premium/batch"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bearing api: %d %s", e.Status, e.Message)
}

// Client talks to a running bearing service. The session cookie set by
// Login is kept in the client's cookie jar.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c, logger: logger}
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}
	return nil
}

func (c *Client) Login(ctx context.Context, login, password string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"login": login, "password": password}).
		Post("/api/login")
	if err := check(resp, err); err != nil {
		c.logger.Warn("login failed", zap.String("login", login), zap.Error(err))
		return err
	}
	return nil
}

func (c *Client) Evaluate(ctx context.Context, in bearing.Input) (bearing.Result, error) {
	var res bearing.Result
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&res).
		Post("/api/user/tools/bearing/calc")
	if err := check(resp, err); err != nil {
		return bearing.Result{}, err
	}
	return res, nil
}

func (c *Client) Batch(ctx context.Context, in batch.Input) (batch.Result, error) {
	var res batch.Result
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&res).
		Post("/api/user/tools-premium/bearing/batch")
	if err := check(resp, err); err != nil {
		return batch.Result{}, err
	}
	c.logger.Debug("remote batch evaluated", zap.Int("count", res.Count), zap.Int("failed", res.Failed))
	return res, nil
}

func (c *Client) Materials(ctx context.Context) (bearing.Listing, error) {
	var res bearing.Listing
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&res).
		Get("/api/materials")
	if err := check(resp, err); err != nil {
		return bearing.Listing{}, err
	}
	return res, nil
}
