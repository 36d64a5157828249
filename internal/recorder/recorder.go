package recorder

import "ChainSentinel/internal/model"

// Recorder persists refresh history for later analysis (e.g. Grafana
// over the SQLite file). Recording is best-effort: a recorder error
// never fails the refresh that produced the report.
type Recorder interface {
	RecordRefresh(rep *model.Report) error
	Close() error
}
