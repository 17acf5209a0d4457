// Package api talks to the Grooviti backend over JSON/HTTP.
//
// Reads that are safe to repeat (event list, event detail, notifications) are
// retried with bounded exponential backoff on transport failures and 5xx
// answers. Everything else, booking creation in particular, is sent exactly
// once per call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/joshua-takyi/grooviti/internal/models"
)

const maxBodyBytes = 4 << 20

type Client struct {
	baseURL    string
	hc         *http.Client
	logger     *slog.Logger
	retries    uint64
	newBackOff func() backoff.BackOff
	metrics    *Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithReadRetries bounds how many times an idempotent read is repeated.
func WithReadRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = fn }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 15 * time.Second},
		logger:  slog.Default(),
		retries: 3,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 300 * time.Millisecond
			b.MaxElapsedTime = 10 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	op     string
	method string
	path   string
	token  string
	body   interface{}
}

// status is the part of every response envelope the client inspects.
type status struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (s status) text(code int) string {
	switch {
	case s.Message != "":
		return s.Message
	case s.Error != "":
		return s.Error
	case code >= 400:
		return http.StatusText(code)
	}
	return "Something went wrong"
}

func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	var body io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.metrics.observe(cl.op, "transport_error", time.Since(start))
		return fmt.Errorf("%s: %w", cl.op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.observe(cl.op, "transport_error", time.Since(start))
		return fmt.Errorf("%s: read response: %w", cl.op, err)
	}

	var st status
	decodeErr := json.Unmarshal(raw, &st)
	if resp.StatusCode >= 400 || !st.Success {
		c.metrics.observe(cl.op, "rejected", time.Since(start))
		apiErr := &Error{Op: cl.op, Status: resp.StatusCode, Message: st.text(resp.StatusCode)}
		c.logger.Debug("backend rejected request",
			"op", cl.op,
			"request_id", requestID,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}
	if decodeErr != nil {
		c.metrics.observe(cl.op, "decode_error", time.Since(start))
		return &decodeError{op: cl.op, err: decodeErr}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.metrics.observe(cl.op, "decode_error", time.Since(start))
			return &decodeError{op: cl.op, err: err}
		}
	}

	c.metrics.observe(cl.op, "ok", time.Since(start))
	c.logger.Debug("backend request", "op", cl.op, "request_id", requestID, "latency", time.Since(start))
	return nil
}

// read performs an idempotent call with bounded retries.
func (c *Client) read(ctx context.Context, cl call, out interface{}) error {
	op := func() error {
		err := c.do(ctx, cl, out)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.retries), ctx)
	return backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
		c.logger.Warn("retrying backend read", "op", cl.op, "error", err, "wait", wait)
	})
}

func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var resp struct {
		Data []models.Event `json:"data"`
	}
	if err := c.read(ctx, call{op: "list events", method: http.MethodGet, path: "/api/event/list"}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.Event{}
	}
	return resp.Data, nil
}

// GetEvent returns ErrNotFound when the backend has no such event, including
// the case where it answers 200 with "success": false. Other rejections keep
// their status and message.
func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "get event"
	if strings.TrimSpace(id) == "" {
		return nil, &Error{Op: op, Status: http.StatusNotFound, Message: "Event not found"}
	}

	var resp struct {
		Data *models.Event `json:"data"`
	}
	err := c.read(ctx, call{op: op, method: http.MethodGet, path: "/api/event/" + url.PathEscape(id)}, &resp)
	var apiErr *Error
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusOK) {
		return nil, &Error{Op: op, Status: http.StatusNotFound, Message: "Event not found"}
	}
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &Error{Op: op, Status: http.StatusNotFound, Message: "Event not found"}
	}
	return resp.Data, nil
}

// Register creates an account and returns the backend's confirmation text.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var st status
	if err := c.do(ctx, call{op: "register", method: http.MethodPost, path: "/api/user/register", body: req}, &st); err != nil {
		return "", err
	}
	return st.Message, nil
}

type LoginResult struct {
	Token string
	Email string
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp models.LoginResponse
	body := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, call{op: "login", method: http.MethodPost, path: "/api/user/login", body: body}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &Error{Op: "login", Status: http.StatusOK, Message: "Login failed, no token issued"}
	}
	return &LoginResult{Token: resp.Token, Email: resp.Email}, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("profile: %w", ErrUnauthorized)
	}
	var resp models.ProfileResponse
	if err := c.do(ctx, call{op: "profile", method: http.MethodGet, path: "/api/user/profile", token: token}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// CreateBooking opens an order for req. It is never retried.
func (c *Client) CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.BookingOrder, error) {
	const op = "create booking"
	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	var resp models.BookingResponse
	if err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/api/booking/ticket", token: token, body: req}, &resp); err != nil {
		return nil, err
	}
	if resp.OrderID == "" {
		return nil, &Error{Op: op, Status: http.StatusOK, Message: "Booking failed, no order was issued"}
	}
	return &resp.BookingOrder, nil
}

// RegisterOrganizer signs up an organizer and returns the subscription order
// to pay. Like CreateBooking it is never retried.
func (c *Client) RegisterOrganizer(ctx context.Context, req models.OrganizerRequest) (*models.OrganizerOrder, error) {
	const op = "register organizer"
	var resp models.OrganizerResponse
	if err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/api/organizer/register", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp.OrganizerOrder, nil
}

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var resp struct {
		Data []models.Notification `json:"data"`
	}
	if err := c.read(ctx, call{op: "list notifications", method: http.MethodGet, path: "/api/notifications"}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.Notification{}
	}
	return resp.Data, nil
}
