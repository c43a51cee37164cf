// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/payment"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

// ErrNotPaid is returned when a report is requested for an unpaid order.
var ErrNotPaid = errors.New("order is not paid")

// Report is the paid consultation report.
type Report struct {
	OrderID     string              `json:"orderId"`
	Product     string              `json:"product"`
	Premium     bool                `json:"premium"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Name        string              `json:"name,omitempty"`
	Saju        *saju.Result        `json:"saju"`
	Elements    ElementBalance      `json:"elements"`
	Sibsin      []SibsinEntry       `json:"sibsin"`
	Pillars     []PillarDetail      `json:"pillars,omitempty"`
	MBTI        *models.MBTIOutcome `json:"mbti,omitempty"`
	Synthesis   string              `json:"synthesis"`
}

// ElementBalance comments on the five-element census.
type ElementBalance struct {
	Dominant   saju.Element   `json:"dominant"`
	Missing    []saju.Element `json:"missing"`
	Commentary string         `json:"commentary"`
}

// SibsinEntry is one row of the full sibsin table.
type SibsinEntry struct {
	Label   string `json:"label"`
	Hanja   string `json:"hanja"`
	Count   int    `json:"count"`
	Meaning string `json:"meaning"`
	Primary bool   `json:"primary,omitempty"`
}

// PillarDetail labels one pillar's stem and branch against the day stem.
// The day stem is the reference itself and has no stem label.
type PillarDetail struct {
	Pillar       string `json:"pillar"`
	Hangul       string `json:"hangul"`
	Hanja        string `json:"hanja"`
	StemSibsin   string `json:"stemSibsin,omitempty"`
	BranchSibsin string `json:"branchSibsin"`
}

var elementNotes = map[saju.Element]string{
	saju.Wood:  "성장과 시작",
	saju.Fire:  "열정과 표현",
	saju.Earth: "안정과 신뢰",
	saju.Metal: "결단과 원칙",
	saju.Water: "지혜와 유연함",
}

var temperamentNotes = map[string]string{
	"NT": "논리와 전략으로 문제를 푸는 성향",
	"NF": "의미와 관계를 중시하는 성향",
	"SJ": "책임감과 질서를 중시하는 성향",
	"SP": "현장에서 유연하게 움직이는 성향",
}

// BuildReport renders the report for a paid order.
func (s *Service) BuildReport(ctx context.Context, order *models.Order) (*Report, error) {
	if !order.IsPaid() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotPaid, order.ID, order.Status)
	}
	product, ok := payment.LookupProduct(order.Product)
	if !ok {
		return nil, fmt.Errorf("%w: %q", payment.ErrUnknownProduct, order.Product)
	}

	a, err := s.Get(ctx, order.AnalysisID)
	if err != nil {
		return nil, err
	}

	fp, err := a.Saju.FourPillars()
	if err != nil {
		return nil, fmt.Errorf("rebuild pillars: %w", err)
	}

	r := &Report{
		OrderID:     order.ID,
		Product:     product.Code,
		Premium:     product.Premium,
		GeneratedAt: s.now().UTC(),
		Name:        a.Name,
		Saju:        a.Saju,
		Elements:    elementBalance(a.Saju.Ohaeng, a.Saju.Ilgan.Element),
		Sibsin:      sibsinTable(a.Saju.Sibsin, a.Saju.PrimarySibsin.Label),
		MBTI:        a.MBTI,
	}
	if product.Premium {
		r.Pillars = pillarDetails(fp)
	}
	r.Synthesis = synthesis(a)
	return r, nil
}

func elementBalance(c saju.ElementCount, self saju.Element) ElementBalance {
	dominant := c.Dominant()
	missing := c.Missing()
	if missing == nil {
		missing = []saju.Element{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s) 기운이 %d개로 가장 강해 %s의 성향이 두드러집니다.",
		dominant.Korean(), dominant.Hanja(), c.Get(dominant), elementNotes[dominant])
	fmt.Fprintf(&b, " 일간의 오행은 %s(%s)이며 같은 기운이 %d개 있습니다.",
		self.Korean(), self.Hanja(), c.Get(self))
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, e := range missing {
			names[i] = fmt.Sprintf("%s(%s)", e.Korean(), e.Hanja())
		}
		fmt.Fprintf(&b, " 부족한 기운은 %s입니다.", strings.Join(names, ", "))
	} else {
		b.WriteString(" 다섯 기운이 모두 갖추어져 있습니다.")
	}
	return ElementBalance{Dominant: dominant, Missing: missing, Commentary: b.String()}
}

func sibsinTable(c saju.SibsinCount, primary saju.Sibsin) []SibsinEntry {
	out := make([]SibsinEntry, 0, len(saju.SibsinOrder))
	for _, s := range saju.SibsinOrder {
		out = append(out, SibsinEntry{
			Label:   s.Korean(),
			Hanja:   s.Hanja(),
			Count:   c.Get(s),
			Meaning: s.Meaning(),
			Primary: s == primary,
		})
	}
	return out
}

func pillarDetails(fp saju.FourPillars) []PillarDetail {
	self := fp.Self()
	stems := saju.StemSibsin(fp)
	out := make([]PillarDetail, 0, len(fp))
	for i, p := range fp {
		pillar := saju.Pillar(i)
		d := PillarDetail{
			Pillar:       pillar.String(),
			Hangul:       p.String(),
			Hanja:        p.Hanja(),
			BranchSibsin: saju.ClassifySibsin(self, p.Branch.Element(), p.Branch.Polarity()).Korean(),
		}
		if s, ok := stems[pillar]; ok {
			d.StemSibsin = s.Korean()
		}
		out = append(out, d)
	}
	return out
}

func synthesis(a *models.Analysis) string {
	primary := a.Saju.PrimarySibsin
	text := fmt.Sprintf("사주에서는 %s(%s)의 기질이 중심에 있습니다. %s",
		primary.Label.Korean(), primary.Label.Hanja(), primary.Meaning)
	if a.MBTI == nil {
		return text
	}
	note, ok := temperamentNotes[a.MBTI.Profile.Temperament]
	if !ok {
		return text
	}
	return fmt.Sprintf("%s MBTI %s(%s)는 %s으로, 사주의 기질과 함께 살펴보면 자신의 강점을 더 선명하게 이해할 수 있습니다.",
		text, a.MBTI.Type, a.MBTI.Profile.Nickname, note)
}
