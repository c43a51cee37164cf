// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/mbtisaju/internal/database"
	"github.com/tomtom215/mbtisaju/internal/logging"
	"github.com/tomtom215/mbtisaju/internal/metrics"
	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/notify"
)

// confirmReservationTTL bounds how long a crashed confirmation can block
// retries of the same order.
const confirmReservationTTL = 2 * time.Minute

var (
	// ErrUnknownProduct is returned for a product code outside the catalog.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrAnalysisNotFound is returned when an order references no analysis.
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrOrderNotFound is returned when a confirmation names no order.
	ErrOrderNotFound = errors.New("order not found")

	// ErrAmountMismatch is returned when the confirmed amount differs from
	// the order amount.
	ErrAmountMismatch = errors.New("payment amount does not match order")

	// ErrAlreadyProcessed is returned when an order has left the pending
	// state under a different payment key.
	ErrAlreadyProcessed = errors.New("order already processed")

	// ErrKeyReused is returned when a known payment key is presented for a
	// different order.
	ErrKeyReused = errors.New("payment key already used for another order")
)

// Store is the persistence the payment flow needs.
type Store interface {
	GetAnalysis(ctx context.Context, id string) (*models.Analysis, error)
	InsertOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	MarkOrderPaid(ctx context.Context, id, paymentKey, method string, paidAt time.Time) error
	MarkOrderFailed(ctx context.Context, id string) error
}

// Service runs order creation and confirmation.
type Service struct {
	store    Store
	gateway  Gateway
	idem     *IdempotencyStore
	notifier notify.Notifier
	now      func() time.Time

	wg sync.WaitGroup
}

// NewService wires the payment flow. A nil notifier disables notifications.
func NewService(store Store, gateway Gateway, idem *IdempotencyStore, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		store:    store,
		gateway:  gateway,
		idem:     idem,
		notifier: notifier,
		now:      time.Now,
	}
}

// NewOrderID returns a gateway-safe order identifier.
func NewOrderID() string {
	return "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// CreateOrder records a pending order for product against analysisID.
func (s *Service) CreateOrder(ctx context.Context, analysisID, product string) (*models.Order, error) {
	p, ok := LookupProduct(product)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, product)
	}
	if _, err := s.store.GetAnalysis(ctx, analysisID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAnalysisNotFound, analysisID)
		}
		return nil, fmt.Errorf("load analysis: %w", err)
	}

	o := &models.Order{
		ID:         NewOrderID(),
		AnalysisID: analysisID,
		Product:    p.Code,
		OrderName:  p.Name,
		Amount:     p.Amount,
		Status:     models.OrderPending,
		CreatedAt:  s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.store.InsertOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}
	metrics.RecordPayment(p.Code, "created")
	logging.Ctx(ctx).Info().Str("order_id", o.ID).Str("product", p.Code).Int64("amount", p.Amount).Msg("Order created")
	return o, nil
}

// Confirm completes payment for req.OrderID. Repeating a successful
// confirmation with the same payment key returns the paid order again
// without contacting the gateway.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*models.Order, error) {
	log := logging.Ctx(ctx).With().Str("order_id", req.OrderID).Str("payment_key", logging.Mask(req.PaymentKey)).Logger()

	if prior, err := s.idem.Get(ctx, req.PaymentKey); err == nil {
		if prior.OrderID != req.OrderID {
			return nil, ErrKeyReused
		}
		metrics.RecordIdempotentReplay()
		log.Debug().Msg("Replaying stored confirmation")
		return s.loadOrder(ctx, req.OrderID)
	} else if !errors.Is(err, ErrNoOutcome) {
		log.Warn().Err(err).Msg("Idempotency lookup failed; continuing")
	}

	if err := s.idem.Reserve(ctx, req.OrderID, confirmReservationTTL); err != nil {
		if errors.Is(err, ErrConfirmInFlight) {
			log.Info().Msg("Confirmation already in progress")
		}
		return nil, err
	}
	defer func() {
		if err := s.idem.Release(ctx, req.OrderID); err != nil {
			log.Warn().Err(err).Msg("Failed to release confirmation reservation")
		}
	}()

	order, err := s.loadOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderPending {
		if order.IsPaid() && order.PaymentKey == req.PaymentKey {
			metrics.RecordIdempotentReplay()
			return order, nil
		}
		return nil, fmt.Errorf("%w: order is %s", ErrAlreadyProcessed, order.Status)
	}
	if order.Amount != req.Amount {
		metrics.RecordPayment(order.Product, "amount_mismatch")
		log.Warn().Int64("expected", order.Amount).Int64("got", req.Amount).Msg("Confirm amount mismatch")
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrAmountMismatch, order.Amount, req.Amount)
	}

	conf, err := s.gateway.Confirm(ctx, req)
	if err != nil {
		return nil, s.gatewayFailure(ctx, order, err)
	}
	if conf.TotalAmount != 0 && conf.TotalAmount != order.Amount {
		metrics.RecordPayment(order.Product, "amount_mismatch")
		return nil, fmt.Errorf("%w: gateway approved %d for order of %d", ErrAmountMismatch, conf.TotalAmount, order.Amount)
	}

	paidAt := conf.ApprovedAt
	if paidAt.IsZero() {
		paidAt = s.now()
	}
	paidAt = paidAt.UTC().Truncate(time.Microsecond)
	if err := s.store.MarkOrderPaid(ctx, order.ID, req.PaymentKey, conf.Method, paidAt); err != nil {
		// The gateway has captured the payment; surface loudly for manual follow-up.
		log.Error().Err(err).Msg("Payment confirmed by gateway but order update failed")
		return nil, fmt.Errorf("record payment: %w", err)
	}

	if err := s.idem.Put(ctx, req.PaymentKey, &Outcome{
		OrderID: order.ID, Amount: order.Amount, Method: conf.Method, ApprovedAt: paidAt,
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to store confirmation outcome")
	}

	order.Status = models.OrderPaid
	order.PaymentKey = req.PaymentKey
	order.Method = conf.Method
	order.PaidAt = &paidAt

	metrics.RecordPayment(order.Product, "paid")
	log.Info().Int64("amount", order.Amount).Str("method", conf.Method).Msg("Payment confirmed")
	s.notifyPaid(ctx, order)
	return order, nil
}

// Order returns the stored order with id.
func (s *Service) Order(ctx context.Context, id string) (*models.Order, error) {
	return s.loadOrder(ctx, id)
}

func (s *Service) loadOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.store.GetOrder(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	return o, nil
}

// gatewayFailure marks the order failed only when the gateway declined it;
// transient failures leave it pending so the client can retry.
func (s *Service) gatewayFailure(ctx context.Context, order *models.Order, err error) error {
	log := logging.Ctx(ctx)
	var gerr *GatewayError
	switch {
	case errors.Is(err, ErrCircuitOpen):
		metrics.RecordPayment(order.Product, "circuit_open")
		log.Warn().Str("order_id", order.ID).Msg("Payment gateway circuit open")
		return err
	case errors.As(err, &gerr) && gerr.Rejected():
		metrics.RecordPayment(order.Product, "rejected")
		if mErr := s.store.MarkOrderFailed(ctx, order.ID); mErr != nil {
			log.Warn().Err(mErr).Str("order_id", order.ID).Msg("Failed to mark order failed")
		}
		log.Info().Str("order_id", order.ID).Str("code", gerr.Code).Msg("Payment declined by gateway")
		return err
	default:
		metrics.RecordPayment(order.Product, "gateway_error")
		log.Warn().Str("order_id", order.ID).Str("error", logging.SanitizeError(err)).Msg("Payment gateway call failed")
		if !errors.Is(err, ErrGateway) {
			return fmt.Errorf("%w: %w", ErrGateway, err)
		}
		return err
	}
}

func (s *Service) notifyPaid(ctx context.Context, o *models.Order) {
	msg := fmt.Sprintf("결제 완료: %s (%s) %s원", o.OrderName, o.ID, formatKRW(o.Amount))
	notifyCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(notifyCtx, 15*time.Second)
		defer cancel()
		_ = s.notifier.Notify(ctx, msg)
	}()
}

// Wait blocks until in-flight notifications finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

// formatKRW renders n with thousands separators.
func formatKRW(n int64) string {
	s := fmt.Sprint(n)
	if n < 0 {
		return "-" + formatKRW(-n)
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
