package notifier

import (
	"strings"
	"testing"
	"time"

	"ChainSentinel/internal/collector"
	"ChainSentinel/internal/model"
)

func sampleReport() *model.Report {
	premium := 0.2
	modelPrice := 80_000.0
	return &model.Report{
		GeneratedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Asset:        "bitcoin",
		Currency:     "usd",
		Rate:         5.4,
		RateCurrency: "BRL",
		Rows: []model.IndicatorResult{
			{Name: model.IndicatorAltSeason, Value: 40, Signal: model.SignalNeutral, Available: true},
			{Name: model.IndicatorMVRVZ, Value: 0.5, Signal: model.SignalAccumulate, Available: true},
			{Name: model.IndicatorRealized, Value: 50_000, Signal: model.SignalAboveRealized, Secondary: &premium, Available: true},
			{Name: model.IndicatorS2F, Value: 120, Signal: model.SignalBelowModel, Secondary: &modelPrice, Available: true},
		},
	}
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(sampleReport())

	for _, want := range []string{
		"bitcoin",
		"40%",
		"ACCUMULATE",
		"$50000",
		"+20.0%",
		"model $80000",
		"USD/BRL: 5.40",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "fallback rate") {
		t.Error("no fallback warning expected for a live rate")
	}
}

func TestFormatReport_UnavailableRowAndFallback(t *testing.T) {
	rep := sampleReport()
	rep.RateFallback = true
	rep.Rows = append(rep.Rows, model.IndicatorResult{
		Name:   model.IndicatorRealized,
		Signal: model.SignalUnavailable,
	})

	out := FormatReport(rep)
	if !strings.Contains(out, "unavailable") {
		t.Error("expected an explicit unavailable marker")
	}
	if !strings.Contains(out, "fallback rate") {
		t.Error("expected a fallback-rate warning")
	}
}

func TestFormatFetchFailure(t *testing.T) {
	err := &collector.FetchError{Kind: collector.RateLimited, Resource: "price series"}
	out := FormatFetchFailure(err)
	if !strings.Contains(out, "rate limited") || !strings.Contains(out, "quota") {
		t.Errorf("expected a specific rate-limit message, got %q", out)
	}

	plain := FormatFetchFailure(errOpaque{})
	if !strings.Contains(plain, "Refresh failed") {
		t.Errorf("expected generic failure message, got %q", plain)
	}
}

type errOpaque struct{}

func (errOpaque) Error() string { return "opaque" }
