// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package payment

// Product codes.
const (
	ProductBasic   = "basic_report"
	ProductPremium = "premium_report"
)

// Product is a purchasable report. Amounts are in KRW.
type Product struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Amount  int64  `json:"amount"`
	Premium bool   `json:"premium"`
}

var catalog = []Product{
	{Code: ProductBasic, Name: "MBTI 사주 기본 리포트", Amount: 4900},
	{Code: ProductPremium, Name: "MBTI 사주 프리미엄 리포트", Amount: 9900, Premium: true},
}

// Products returns the catalog in display order.
func Products() []Product {
	out := make([]Product, len(catalog))
	copy(out, catalog)
	return out
}

// LookupProduct finds a product by code.
func LookupProduct(code string) (Product, bool) {
	for _, p := range catalog {
		if p.Code == code {
			return p, true
		}
	}
	return Product{}, false
}
