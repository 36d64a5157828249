package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"ChainSentinel/internal/model"
)

func TestSQLiteRecorder_RecordRefresh(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	rec, err := NewSQLiteRecorder(dbPath)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	secondary := 80_000.0
	rep := &model.Report{
		GeneratedAt:  time.Now(),
		Asset:        "bitcoin",
		Currency:     "usd",
		Rate:         5.4,
		RateFallback: true,
		Rows: []model.IndicatorResult{
			{Name: model.IndicatorMVRVZ, Value: 0.5, Signal: model.SignalAccumulate, Available: true},
			{Name: model.IndicatorS2F, Value: 120, Secondary: &secondary, Signal: model.SignalBelowModel, Available: true},
			{Name: model.IndicatorRealized, Signal: model.SignalUnavailable},
		},
	}

	if err := rec.RecordRefresh(rep); err != nil {
		t.Fatalf("record refresh: %v", err)
	}
	if err := rec.RecordRefresh(rep); err != nil {
		t.Fatalf("record second refresh: %v", err)
	}

	var snapshots, rows int
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM refresh_snapshots").Scan(&snapshots); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM indicator_rows").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if snapshots != 2 {
		t.Errorf("expected 2 snapshots, got %d", snapshots)
	}
	if rows != 6 {
		t.Errorf("expected 6 indicator rows, got %d", rows)
	}

	var fallback int
	if err := rec.db.QueryRow("SELECT rate_fallback FROM refresh_snapshots LIMIT 1").Scan(&fallback); err != nil {
		t.Fatalf("read fallback flag: %v", err)
	}
	if fallback != 1 {
		t.Error("expected fallback flag persisted as 1")
	}
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoopRecorder()
	if err := rec.RecordRefresh(&model.Report{}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
}
