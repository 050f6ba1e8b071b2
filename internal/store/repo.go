package store

import (
	"context"
	"time"

	"github.com/abhisek/wellcheck/internal/screening"
)

// QueryOpts configures report queries with filtering and pagination.
type QueryOpts struct {
	Limit         int       // max results (0 = unlimited)
	InstrumentID  string    // exact match ("" = any)
	EscalatedOnly bool      // only reports that escalated
	From          time.Time // completed_at >= From
	To            time.Time // completed_at <= To
}

// ReportRecord is a persisted score report.
type ReportRecord struct {
	ID           int64
	Sequence     int64
	SessionID    string
	InstrumentID string
	Total        int
	MaxScore     int
	Severity     string
	BandLabel    string
	Escalate     bool
	Reasons      []string
	Responses    map[string]int
	CompletedAt  time.Time
}

// RecordFromReport flattens a report for storage.
func RecordFromReport(r screening.Report) *ReportRecord {
	reasons := make([]string, 0, len(r.Reasons()))
	for _, reason := range r.Reasons() {
		reasons = append(reasons, string(reason))
	}
	return &ReportRecord{
		SessionID:    r.SessionID(),
		InstrumentID: string(r.InstrumentID()),
		Total:        r.Total(),
		MaxScore:     r.MaxScore(),
		Severity:     string(r.Severity()),
		BandLabel:    r.Band().Label,
		Escalate:     r.Escalate(),
		Reasons:      reasons,
		Responses:    r.Responses(),
		CompletedAt:  r.CompletedAt(),
	}
}

// ReportRepo manages completed score reports.
type ReportRepo interface {
	// Save stores a new report and sets its ID and Sequence.
	Save(ctx context.Context, rec *ReportRecord) error

	// Get returns the report with the given ID, or nil if none exists.
	Get(ctx context.Context, id int64) (*ReportRecord, error)

	// List returns reports newest first.
	List(ctx context.Context, opts QueryOpts) ([]ReportRecord, error)

	// Count returns the number of stored reports.
	Count(ctx context.Context) (int, error)

	// Prune deletes all but the N most recent reports.
	Prune(ctx context.Context, keep int) error

	// Purge deletes every report and returns how many were removed.
	Purge(ctx context.Context) (int64, error)
}
