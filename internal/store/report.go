package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const reportsTable = "reports"

// timeLayout is fixed-width so TEXT comparison matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var reportColumns = []string{
	"id", "sequence", "session_id", "instrument_id", "total", "max_score",
	"severity", "band_label", "escalate", "reasons", "responses", "completed_at",
}

// reportRepo implements ReportRepo with the ent SQL builder.
type reportRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *reportRepo) Save(ctx context.Context, rec *ReportRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	reasons := rec.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	reasonsJSON, err := json.Marshal(reasons)
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}
	responses := rec.Responses
	if responses == nil {
		responses = map[string]int{}
	}
	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	completedAt := rec.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	query, args := builder().Insert(reportsTable).
		Columns(reportColumns[1:]...).
		Values(
			seqNum,
			rec.SessionID,
			rec.InstrumentID,
			rec.Total,
			rec.MaxScore,
			rec.Severity,
			rec.BandLabel,
			rec.Escalate,
			string(reasonsJSON),
			string(responsesJSON),
			formatTime(completedAt),
		).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	rec.ID = id
	rec.Sequence = seqNum
	rec.CompletedAt = completedAt.UTC()
	return nil
}

func (r *reportRepo) Get(ctx context.Context, id int64) (*ReportRecord, error) {
	query, args := builder().Select(reportColumns...).
		From(builder().Table(reportsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	row := r.db.QueryRowContext(ctx, query, args...)
	rec, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query report: %w", err)
	}
	return rec, nil
}

func (r *reportRepo) List(ctx context.Context, opts QueryOpts) ([]ReportRecord, error) {
	sel := builder().Select(reportColumns...).
		From(builder().Table(reportsTable)).
		OrderBy(entsql.Desc("sequence"))

	if opts.InstrumentID != "" {
		sel.Where(entsql.EQ("instrument_id", opts.InstrumentID))
	}
	if opts.EscalatedOnly {
		sel.Where(entsql.EQ("escalate", true))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("completed_at", formatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("completed_at", formatTime(opts.To)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []ReportRecord
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return out, nil
}

func (r *reportRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(builder().Table(reportsTable)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}

func (r *reportRepo) Prune(ctx context.Context, keep int) error {
	// Find the sequence threshold: the newest report past the keep window.
	query, args := builder().Select("sequence").
		From(builder().Table(reportsTable)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep reports exist
		}
		return fmt.Errorf("query reports for prune: %w", err)
	}

	query, args = builder().Delete(reportsTable).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}
	return nil
}

func (r *reportRepo) Purge(ctx context.Context) (int64, error) {
	query, args := builder().Delete(reportsTable).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge reports: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(s rowScanner) (*ReportRecord, error) {
	var (
		rec           ReportRecord
		reasonsJSON   string
		responsesJSON string
		completedAt   storedTime
	)
	err := s.Scan(
		&rec.ID,
		&rec.Sequence,
		&rec.SessionID,
		&rec.InstrumentID,
		&rec.Total,
		&rec.MaxScore,
		&rec.Severity,
		&rec.BandLabel,
		&rec.Escalate,
		&reasonsJSON,
		&responsesJSON,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(reasonsJSON), &rec.Reasons); err != nil {
		return nil, fmt.Errorf("unmarshal reasons: %w", err)
	}
	if err := json.Unmarshal([]byte(responsesJSON), &rec.Responses); err != nil {
		return nil, fmt.Errorf("unmarshal responses: %w", err)
	}
	rec.CompletedAt = completedAt.Time
	return &rec, nil
}

// storedTime scans completed_at. The column is declared datetime, so the
// driver may hand back either the stored text or an already parsed time.
type storedTime struct {
	time.Time
}

func (st *storedTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		st.Time = v.UTC()
		return nil
	case string:
		return st.parse(v)
	case []byte:
		return st.parse(string(v))
	default:
		return fmt.Errorf("parse completed_at: unsupported type %T", src)
	}
}

func (st *storedTime) parse(s string) error {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		return fmt.Errorf("parse completed_at: %w", err)
	}
	st.Time = t.UTC()
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
