// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package models

import "time"

// OrderStatus is the payment state of an order.
type OrderStatus string

// Order states. Pending orders move to paid or failed exactly once.
const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

// Order is a report purchase tied to a stored analysis.
type Order struct {
	ID         string      `json:"orderId"`
	AnalysisID string      `json:"analysisId"`
	Product    string      `json:"product"`
	OrderName  string      `json:"orderName"`
	Amount     int64       `json:"amount"`
	Status     OrderStatus `json:"status"`
	PaymentKey string      `json:"-"`
	Method     string      `json:"method,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	PaidAt     *time.Time  `json:"paidAt,omitempty"`
}

// IsPaid reports whether the order has been confirmed.
func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}
