// MBTI Saju - MBTI and Four Pillars Analysis Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mbtisaju

package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/mbtisaju/internal/config"
	"github.com/tomtom215/mbtisaju/internal/database"
	"github.com/tomtom215/mbtisaju/internal/mbti"
	"github.com/tomtom215/mbtisaju/internal/models"
	"github.com/tomtom215/mbtisaju/internal/payment"
	"github.com/tomtom215/mbtisaju/internal/saju"
)

// chart1990 is the chart of 1990-05-15 12:00: 庚午 辛巳 庚辰 壬午.
var chart1990 = saju.RawPillars{
	{Stem: "庚", Branch: "午"},
	{Stem: "辛", Branch: "巳"},
	{Stem: "庚", Branch: "辰"},
	{Stem: "壬", Branch: "午"},
}

type countingOracle struct {
	calls atomic.Int32
	err   error
}

func (o *countingOracle) DateToStemBranch(saju.CalendarDate, int, bool) (saju.RawPillars, error) {
	o.calls.Add(1)
	if o.err != nil {
		return saju.RawPillars{}, o.err
	}
	return chart1990, nil
}

type memStore struct {
	mu   sync.Mutex
	rows map[string]*models.Analysis
	err  error
}

func newMemStore() *memStore { return &memStore{rows: map[string]*models.Analysis{}} }

func (s *memStore) InsertAnalysis(_ context.Context, a *models.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.rows[a.ID] = a
	return nil
}

func (s *memStore) GetAnalysis(_ context.Context, id string) (*models.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return a, nil
}

func newTestService(t *testing.T, cacheEnabled bool) (*Service, *countingOracle, *memStore) {
	t.Helper()
	oracle := &countingOracle{}
	store := newMemStore()
	svc := NewService(saju.NewAnalyzer(oracle), store, &config.CacheConfig{
		Enabled: cacheEnabled, Size: 16, TTL: time.Minute,
	})
	return svc, oracle, store
}

func intPtr(v int) *int { return &v }

func birth() BirthRequest {
	return BirthRequest{Year: 1990, Month: 5, Day: 15, TimeIndex: intPtr(6)}
}

func TestBirthRequest_Input(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		req  BirthRequest
		want saju.BirthInput
	}{
		{
			name: "known slot",
			req:  BirthRequest{Year: 1990, Month: 5, Day: 15, TimeIndex: intPtr(0)},
			want: saju.BirthInput{Date: saju.CalendarDate{Year: 1990, Month: 5, Day: 15}, TimeIndex: 0},
		},
		{
			name: "unknown slot",
			req:  BirthRequest{Year: 1990, Month: 5, Day: 15},
			want: saju.BirthInput{Date: saju.CalendarDate{Year: 1990, Month: 5, Day: 15}, TimeIndex: saju.TimeUnknown},
		},
		{
			name: "leap ignored for solar",
			req:  BirthRequest{Year: 2020, Month: 4, Day: 1, IsLeapMonth: true},
			want: saju.BirthInput{Date: saju.CalendarDate{Year: 2020, Month: 4, Day: 1}, TimeIndex: saju.TimeUnknown},
		},
		{
			name: "lunar leap",
			req:  BirthRequest{Year: 2020, Month: 4, Day: 1, IsLunar: true, IsLeapMonth: true},
			want: saju.BirthInput{Date: saju.CalendarDate{Year: 2020, Month: 4, Day: 1, Leap: true}, TimeIndex: saju.TimeUnknown, IsLunar: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.req.Input(); got != tt.want {
				t.Errorf("Input() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculate_Caches(t *testing.T) {
	t.Parallel()
	svc, oracle, _ := newTestService(t, true)
	b := birth()

	first, cached, err := svc.Calculate(b.Input())
	if err != nil || cached {
		t.Fatalf("first Calculate: cached=%v err=%v", cached, err)
	}
	second, cached, err := svc.Calculate(b.Input())
	if err != nil || !cached {
		t.Fatalf("second Calculate: cached=%v err=%v", cached, err)
	}
	if first != second {
		t.Error("cached result is a different value")
	}
	if oracle.calls.Load() != 1 {
		t.Errorf("oracle calls = %d, want 1", oracle.calls.Load())
	}

	unknown := b
	unknown.TimeIndex = nil
	r, cached, err := svc.Calculate(unknown.Input())
	if err != nil || cached {
		t.Fatalf("unknown-time Calculate: cached=%v err=%v", cached, err)
	}
	if r.BirthInfo.TimeKnown || r.BirthInfo.Hour != 12 {
		t.Errorf("unknown time birth info = %+v", r.BirthInfo)
	}
	if s := svc.CacheStats(); s.Hits != 1 || s.Size != 2 {
		t.Errorf("cache stats = %+v", s)
	}
}

func TestCalculate_NoCache(t *testing.T) {
	t.Parallel()
	svc, oracle, _ := newTestService(t, false)
	b := birth()
	for i := 0; i < 2; i++ {
		if _, cached, err := svc.Calculate(b.Input()); err != nil || cached {
			t.Fatalf("Calculate: cached=%v err=%v", cached, err)
		}
	}
	if oracle.calls.Load() != 2 {
		t.Errorf("oracle calls = %d, want 2", oracle.calls.Load())
	}
	if svc.SweepCache() != 0 {
		t.Error("SweepCache on disabled cache removed entries")
	}
}

func TestCalculate_InvalidDate(t *testing.T) {
	t.Parallel()
	svc, oracle, _ := newTestService(t, true)
	_, _, err := svc.Calculate(saju.BirthInput{Date: saju.CalendarDate{Year: 1990, Month: 2, Day: 30}, TimeIndex: 3})
	if !errors.Is(err, saju.ErrInvalidDate) {
		t.Errorf("err = %v, want ErrInvalidDate", err)
	}
	if oracle.calls.Load() != 0 {
		t.Error("oracle called for invalid date")
	}
}

func TestCalculate_OracleError(t *testing.T) {
	t.Parallel()
	svc, oracle, _ := newTestService(t, true)
	oracle.err = errors.New("calendar offline")
	b := birth()
	if _, _, err := svc.Calculate(b.Input()); err == nil || !strings.Contains(err.Error(), "calendar offline") {
		t.Errorf("err = %v", err)
	}
}

func TestResolveMBTI(t *testing.T) {
	t.Parallel()

	if out, err := ResolveMBTI("", nil); out != nil || err != nil {
		t.Errorf("empty: %+v, %v", out, err)
	}

	out, err := ResolveMBTI("enfp", nil)
	if err != nil || out.Type != "ENFP" || out.Source != models.MBTISourceDeclared || out.Profile.Nickname == "" {
		t.Errorf("declared: %+v, %v", out, err)
	}

	if _, err := ResolveMBTI("XXXX", nil); !errors.Is(err, mbti.ErrInvalidType) {
		t.Errorf("bad type err = %v", err)
	}

	answers := allAnswers(5)
	out, err = ResolveMBTI("", answers)
	if err != nil || out.Source != models.MBTISourceQuestionnaire || len(out.Axes) != 4 {
		t.Errorf("questionnaire: %+v, %v", out, err)
	}

	if _, err := ResolveMBTI("INTJ", answers); !errors.Is(err, ErrMBTIConflict) {
		t.Errorf("conflict err = %v", err)
	}
}

func allAnswers(value int) []mbti.Answer {
	qs := mbti.Questions()
	out := make([]mbti.Answer, len(qs))
	for i, q := range qs {
		out[i] = mbti.Answer{QuestionID: q.ID, Value: value}
	}
	return out
}

func TestAnalyze_StoresAndGets(t *testing.T) {
	t.Parallel()
	svc, _, store := newTestService(t, true)
	ctx := context.Background()

	a, err := svc.Analyze(ctx, &Request{BirthRequest: birth(), Name: "홍길동", MBTI: "INTJ"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(a.ID) != 36 || a.CreatedAt.IsZero() {
		t.Errorf("analysis = %+v", a)
	}
	if a.PrimarySibsin() != "편관" || a.Saju.PrimarySibsin.Count != 2 {
		t.Errorf("primary = %+v", a.Saju.PrimarySibsin)
	}
	if len(store.rows) != 1 {
		t.Errorf("stored rows = %d", len(store.rows))
	}

	got, err := svc.Get(ctx, a.ID)
	if err != nil || got.ID != a.ID {
		t.Errorf("Get = %+v, %v", got, err)
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing err = %v", err)
	}
}

func TestAnalyze_StoreFailure(t *testing.T) {
	t.Parallel()
	svc, _, store := newTestService(t, true)
	store.err = errors.New("disk full")
	if _, err := svc.Analyze(context.Background(), &Request{BirthRequest: birth()}); err == nil {
		t.Error("Analyze succeeded despite store failure")
	}
}

func TestAnalyze_BadAnswersRejectedBeforeCalculation(t *testing.T) {
	t.Parallel()
	svc, oracle, _ := newTestService(t, true)
	_, err := svc.Analyze(context.Background(), &Request{
		BirthRequest: birth(),
		Answers:      []mbti.Answer{{QuestionID: 9999, Value: 3}},
	})
	if !errors.Is(err, mbti.ErrInvalidAnswer) {
		t.Errorf("err = %v, want ErrInvalidAnswer", err)
	}
	if oracle.calls.Load() != 0 {
		t.Error("oracle called despite invalid answers")
	}
}

func paidOrder(analysisID, product string) *models.Order {
	now := time.Now().UTC()
	return &models.Order{
		ID: "order_test01", AnalysisID: analysisID, Product: product,
		Status: models.OrderPaid, PaidAt: &now,
	}
}

func TestBuildReport(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t, true)
	ctx := context.Background()
	a, err := svc.Analyze(ctx, &Request{BirthRequest: birth(), MBTI: "ENTJ"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	t.Run("basic", func(t *testing.T) {
		r, err := svc.BuildReport(ctx, paidOrder(a.ID, payment.ProductBasic))
		if err != nil {
			t.Fatalf("BuildReport: %v", err)
		}
		if r.Premium || r.Pillars != nil {
			t.Errorf("basic report has premium detail: %+v", r.Pillars)
		}
		if len(r.Sibsin) != 10 {
			t.Fatalf("sibsin rows = %d", len(r.Sibsin))
		}
		var primaries, total int
		for _, e := range r.Sibsin {
			total += e.Count
			if e.Primary {
				primaries++
				if e.Label != "편관" {
					t.Errorf("primary row = %+v", e)
				}
			}
		}
		if primaries != 1 || total != 4 {
			t.Errorf("primaries = %d, total = %d", primaries, total)
		}
		if r.Elements.Dominant != saju.Metal && r.Elements.Dominant != saju.Fire {
			t.Errorf("dominant = %v", r.Elements.Dominant)
		}
		if !strings.Contains(r.Synthesis, "ENTJ") || !strings.Contains(r.Synthesis, "편관") {
			t.Errorf("synthesis = %q", r.Synthesis)
		}
	})

	t.Run("premium", func(t *testing.T) {
		r, err := svc.BuildReport(ctx, paidOrder(a.ID, payment.ProductPremium))
		if err != nil {
			t.Fatalf("BuildReport: %v", err)
		}
		if len(r.Pillars) != 4 {
			t.Fatalf("pillars = %+v", r.Pillars)
		}
		day := r.Pillars[saju.PillarDay]
		if day.StemSibsin != "" || day.Hanja != "庚辰" {
			t.Errorf("day pillar = %+v", day)
		}
		// 壬 is yang water and 午 yang fire against yang metal.
		if hour := r.Pillars[saju.PillarHour]; hour.StemSibsin != "식신" || hour.BranchSibsin != "편관" {
			t.Errorf("hour pillar = %+v", hour)
		}
	})

	t.Run("unpaid", func(t *testing.T) {
		o := paidOrder(a.ID, payment.ProductBasic)
		o.Status = models.OrderPending
		if _, err := svc.BuildReport(ctx, o); !errors.Is(err, ErrNotPaid) {
			t.Errorf("err = %v, want ErrNotPaid", err)
		}
	})

	t.Run("missing analysis", func(t *testing.T) {
		if _, err := svc.BuildReport(ctx, paidOrder("gone", payment.ProductBasic)); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestElementBalance_NoMissing(t *testing.T) {
	t.Parallel()
	c := saju.ElementCount{2, 2, 2, 1, 1}
	b := elementBalance(c, saju.Wood)
	if b.Dominant != saju.Wood || len(b.Missing) != 0 || b.Missing == nil {
		t.Errorf("balance = %+v", b)
	}
	if !strings.Contains(b.Commentary, "모두 갖추어져") {
		t.Errorf("commentary = %q", b.Commentary)
	}
}
