// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

// Package payment sells consultation reports.
//
// The flow is: CreateOrder records a pending order for a catalog product;
// the client completes checkout with the payment gateway and calls Confirm
// with the gateway's payment key; Confirm verifies the amount against the
// pending order, confirms with the gateway behind a circuit breaker, marks
// the order paid and notifies operators.
//
// Confirmed payment keys are remembered in a badger store so a repeated
// confirmation (browser retry, double click) returns the stored outcome
// without calling the gateway a second time.
package payment
