// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package models

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"databaseConnected"`
	PaymentsEnabled   bool    `json:"paymentsEnabled"`
	Uptime            float64 `json:"uptimeSeconds"`
}

// OverviewStats summarizes usage for the admin dashboard.
type OverviewStats struct {
	TotalAnalyses int64   `json:"totalAnalyses"`
	AnalysesToday int64   `json:"analysesToday"`
	LunarShare    float64 `json:"lunarShare"`
	UnknownTime   int64   `json:"unknownTime"`
	TotalOrders   int64   `json:"totalOrders"`
	PaidOrders    int64   `json:"paidOrders"`
	RevenueKRW    int64   `json:"revenueKrw"`
}

// DistributionItem is one bucket of a categorical distribution.
type DistributionItem struct {
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DailyCount is the number of analyses created on one UTC day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
