package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/wellcheck/internal/screening"
)

// EscalationNotice is the message sent to crisis-support collaborators when a
// report escalates. It carries scores and reasons, never free text.
type EscalationNotice struct {
	ReportID     int64     `json:"report_id,omitempty"`
	SessionID    string    `json:"session_id"`
	InstrumentID string    `json:"instrument_id"`
	Total        int       `json:"total"`
	MaxScore     int       `json:"max_score"`
	Severity     string    `json:"severity"`
	Reasons      []string  `json:"reasons"`
	CompletedAt  time.Time `json:"completed_at"`
}

// NoticeFromReport builds a notice for r. reportID is the stored report's ID,
// or 0 when the report was not saved.
func NoticeFromReport(r screening.Report, reportID int64) EscalationNotice {
	reasons := make([]string, 0, len(r.Reasons()))
	for _, reason := range r.Reasons() {
		reasons = append(reasons, string(reason))
	}
	return EscalationNotice{
		ReportID:     reportID,
		SessionID:    r.SessionID(),
		InstrumentID: string(r.InstrumentID()),
		Total:        r.Total(),
		MaxScore:     r.MaxScore(),
		Severity:     string(r.Severity()),
		Reasons:      reasons,
		CompletedAt:  r.CompletedAt(),
	}
}

// Notifier forwards escalation notices.
type Notifier interface {
	Notify(ctx context.Context, n EscalationNotice) error
}

// LogNotifier records notices as warn-level log entries. It is the fallback
// when no broker is configured.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier returns a LogNotifier writing to log.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n EscalationNotice) error {
	l.log.Warn("assessment escalated",
		zap.Int64("report_id", n.ReportID),
		zap.String("session_id", n.SessionID),
		zap.String("instrument", n.InstrumentID),
		zap.Int("total", n.Total),
		zap.String("severity", n.Severity),
		zap.Strings("reasons", n.Reasons),
	)
	return nil
}
