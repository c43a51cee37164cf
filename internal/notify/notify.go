// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package notify posts short operator messages, such as paid-order alerts,
// to a chat webhook. Delivery is best effort: failures are logged and
// counted, never returned to the payment flow as fatal.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/mbtisaju/internal/config"
	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/metrics"
)

// ErrRateLimited is returned when a message is dropped by the limiter.
var ErrRateLimited = errors.New("notify: rate limited")

// maxContentLength is the chat platform's message size limit.
const maxContentLength = 2000

// Notifier sends a text message.
type Notifier interface {
	Notify(ctx context.Context, content string) error
}

// Webhook posts {"content": "..."} to a URL.
type Webhook struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

type payload struct {
	Content string `json:"content"`
}

// New returns a Webhook for cfg, or a no-op notifier when disabled.
func New(cfg *config.NotifyConfig) Notifier {
	if cfg == nil || !cfg.Enabled || cfg.WebhookURL == "" {
		return Nop{}
	}
	return NewWebhook(cfg.WebhookURL, cfg.MinInterval)
}

// NewWebhook allows one message per minInterval with a burst of 3.
// A zero interval disables limiting.
func NewWebhook(url string, minInterval time.Duration) *Webhook {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Webhook{
		url:     url,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(limit, 3),
	}
}

// Notify sends content, dropping it when the limiter has no tokens.
func (w *Webhook) Notify(ctx context.Context, content string) error {
	if !w.limiter.Allow() {
		metrics.RecordNotification("dropped")
		return ErrRateLimited
	}
	err := w.send(ctx, content)
	if err != nil {
		metrics.RecordNotification("failure")
		logging.Ctx(ctx).Warn().Str("error", logging.SanitizeError(err)).Msg("Webhook notification failed")
		return err
	}
	metrics.RecordNotification("success")
	return nil
}

func (w *Webhook) send(ctx context.Context, content string) error {
	if r := []rune(content); len(r) > maxContentLength {
		content = string(r[:maxContentLength-3]) + "..."
	}
	body, err := json.Marshal(payload{Content: content})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MBTISaju-Notify/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Nop discards every message.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, string) error { return nil }
