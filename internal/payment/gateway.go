// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// ErrGateway wraps every failure reported by or on the way to the gateway.
var ErrGateway = errors.New("payment gateway error")

// Gateway confirms a payment that the client authorized at checkout.
type Gateway interface {
	Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error)
}

// ConfirmRequest is the body sent to the gateway and accepted from clients.
type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey" validate:"required,min=6,max=200"`
	OrderID    string `json:"orderId" validate:"required,orderid"`
	Amount     int64  `json:"amount" validate:"required,min=1"`
}

// Confirmation is the gateway's answer to a successful confirm.
type Confirmation struct {
	PaymentKey  string    `json:"paymentKey"`
	OrderID     string    `json:"orderId"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	TotalAmount int64     `json:"totalAmount"`
	ApprovedAt  time.Time `json:"approvedAt"`
}

// GatewayError is a non-2xx gateway response.
type GatewayError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *GatewayError) Unwrap() error { return ErrGateway }

// Rejected reports whether the gateway definitively declined the payment,
// as opposed to a transient server failure.
func (e *GatewayError) Rejected() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// HTTPGateway talks to the gateway's REST API.
type HTTPGateway struct {
	baseURL string
	auth    string
	client  *http.Client
}

// NewHTTPGateway authenticates with HTTP Basic using secretKey as the user
// name and an empty password.
func NewHTTPGateway(baseURL, secretKey string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":")),
		client:  &http.Client{Timeout: timeout},
	}
}

// Confirm calls POST {base}/v1/payments/confirm.
func (g *HTTPGateway) Confirm(ctx context.Context, req ConfirmRequest) (*Confirmation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal confirm request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create confirm request: %w", err)
	}
	httpReq.Header.Set("Authorization", g.auth)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.PaymentKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGateway, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK {
		gerr := &GatewayError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, gerr); jsonErr != nil || gerr.Code == "" {
			gerr.Code = "UNKNOWN"
			gerr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, gerr
	}

	var c Confirmation
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: decode confirmation: %w", ErrGateway, err)
	}
	return &c, nil
}
