// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mbtisaju/internal/payment"
	"github.com/tomtom215/mbtisaju/internal/validation"
)

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	AnalysisID string `json:"analysisId" validate:"required,uuid"`
	Product    string `json:"product" validate:"required,oneof=basic_report premium_report"`
}

type productList struct {
	Enabled  bool              `json:"enabled"`
	Products []payment.Product `json:"products"`
}

// Products lists the catalog and whether purchases are possible.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	publicCache(w, 10*time.Minute)
	NewResponseWriter(w, r).Success(productList{
		Enabled:  h.payments != nil,
		Products: payment.Products(),
	})
}

// CreateOrder records a pending order for an analysis.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requirePayments(rw) {
		return
	}

	var req OrderRequest
	if !decodeAndValidate(rw, &req) {
		return
	}

	order, err := h.payments.CreateOrder(r.Context(), req.AnalysisID, req.Product)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Created(order)
}

// ConfirmPayment completes a payment the client authorized with the
// gateway. Repeating a successful call is safe.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requirePayments(rw) {
		return
	}

	var req payment.ConfirmRequest
	if !decodeAndValidate(rw, &req) {
		return
	}

	order, err := h.payments.Confirm(r.Context(), req)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(order)
}

// Report renders the consultation report of a paid order.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.requirePayments(rw) {
		return
	}

	orderID := chi.URLParam(r, "orderID")
	if err := validation.GetValidator().Var(orderID, "orderid"); err != nil {
		respondServiceError(rw, payment.ErrOrderNotFound)
		return
	}

	order, err := h.payments.Order(r.Context(), orderID)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	report, err := h.analyses.BuildReport(r.Context(), order)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(report)
}
