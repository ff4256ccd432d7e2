// Package upstream предоставляет HTTP-клиенты внешних сервисов заказов, платежей и настроек.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout  = 10 * time.Second
	errorBodyLimit  = 4 << 10
	contentTypeJSON = "application/json"
)

// ErrUnexpectedStatus возвращается, если внешний сервис ответил не-2xx статусом.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError описывает ответ внешнего сервиса с неуспешным HTTP-статусом.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.Code, e.Body)
}

// Is позволяет сравнивать ошибку с ErrUnexpectedStatus через errors.Is.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Endpoints содержит адреса внешних сервисов.
type Endpoints struct {
	OrderURL    string
	PaymentURL  string
	SettingsURL string
}

// Client инкапсулирует HTTP-взаимодействие с сервисами заказов, платежей и настроек.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
	timeout    time.Duration
}

// Option настраивает Client.
type Option func(*Client)

// WithTransport подменяет транспорт HTTP-клиента, например для сбора метрик.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient создаёт клиент внешних сервисов. Таймаут применяется к каждому запросу.
func NewClient(endpoints Endpoints, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		endpoints: Endpoints{
			OrderURL:    normalizeURL(endpoints.OrderURL),
			PaymentURL:  normalizeURL(endpoints.PaymentURL),
			SettingsURL: normalizeURL(endpoints.SettingsURL),
		},
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	return raw
}

func (c *Client) doJSON(ctx context.Context, method, url string, body any, header http.Header, out any) error {
	if url == "" {
		return fmt.Errorf("endpoint not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
