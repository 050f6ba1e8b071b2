package dispatch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/wellcheck/internal/notify"
	"github.com/abhisek/wellcheck/internal/screening"
	"github.com/abhisek/wellcheck/internal/store"
)

// Options configures a Dispatcher. Every field is optional.
type Options struct {
	Repo     store.ReportRepo
	Notifier notify.Notifier
	Logger   *zap.Logger

	// Keep caps stored reports after each save; 0 keeps everything.
	Keep int
}

// Dispatcher hands completed reports to the persistence and crisis
// notification collaborators. It never alters the report.
type Dispatcher struct {
	repo     store.ReportRepo
	notifier notify.Notifier
	log      *zap.Logger
	keep     int
}

// New returns a Dispatcher.
func New(opts Options) *Dispatcher {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		repo:     opts.Repo,
		notifier: opts.Notifier,
		log:      log,
		keep:     opts.Keep,
	}
}

// Outcome describes what Handle did with a report.
type Outcome struct {
	ReportID int64 // 0 when not saved
	Saved    bool
	Notified bool
}

// Handle saves r and, when it escalates, forwards a notice. A save failure
// does not prevent the notice; all failures are logged and returned joined.
func (d *Dispatcher) Handle(ctx context.Context, r screening.Report) (Outcome, error) {
	var (
		out  Outcome
		errs []error
	)

	log := d.log.With(
		zap.String("session_id", r.SessionID()),
		zap.String("instrument", string(r.InstrumentID())),
	)

	if d.repo != nil {
		rec := store.RecordFromReport(r)
		if err := d.repo.Save(ctx, rec); err != nil {
			log.Error("save report failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("save report: %w", err))
		} else {
			out.ReportID = rec.ID
			out.Saved = true
			log.Info("report saved",
				zap.Int64("report_id", rec.ID),
				zap.Int("total", r.Total()),
				zap.String("severity", string(r.Severity())),
			)
			if d.keep > 0 {
				if err := d.repo.Prune(ctx, d.keep); err != nil {
					log.Warn("prune reports failed", zap.Error(err))
					errs = append(errs, fmt.Errorf("prune reports: %w", err))
				}
			}
		}
	}

	if r.Escalate() && d.notifier != nil {
		if err := d.notifier.Notify(ctx, notify.NoticeFromReport(r, out.ReportID)); err != nil {
			log.Error("escalation notice failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("notify escalation: %w", err))
		} else {
			out.Notified = true
		}
	}

	return out, errors.Join(errs...)
}
