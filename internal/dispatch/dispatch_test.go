package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/notify"
	"github.com/abhisek/wellcheck/internal/screening"
	"github.com/abhisek/wellcheck/internal/store"
)

type fakeRepo struct {
	// Unimplemented methods panic.
	store.ReportRepo

	saved   []*store.ReportRecord
	pruned  []int
	saveErr error
}

func (f *fakeRepo) Save(_ context.Context, rec *store.ReportRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	rec.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeRepo) Prune(_ context.Context, keep int) error {
	f.pruned = append(f.pruned, keep)
	return nil
}

type fakeNotifier struct {
	notices []notify.EscalationNotice
	err     error
}

func (f *fakeNotifier) Notify(_ context.Context, n notify.EscalationNotice) error {
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, n)
	return nil
}

func report(t *testing.T, id instrument.ID, value int) screening.Report {
	t.Helper()
	in, err := instrument.Get(id)
	require.NoError(t, err)
	c := screening.NewCollector(in)
	for _, q := range in.Questions {
		require.NoError(t, c.RecordAnswer(q.ID, value))
	}
	r, err := screening.Evaluate(c)
	require.NoError(t, err)
	return r.Stamped("sess", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
}

func TestHandle_SavesWithoutNotifyingWhenNotEscalated(t *testing.T) {
	repo := &fakeRepo{}
	n := &fakeNotifier{}
	d := New(Options{Repo: repo, Notifier: n})

	out, err := d.Handle(context.Background(), report(t, instrument.Anxiety, 1))
	require.NoError(t, err)
	assert.Equal(t, Outcome{ReportID: 1, Saved: true}, out)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, 7, repo.saved[0].Total)
	assert.Empty(t, n.notices)
	assert.Empty(t, repo.pruned)
}

func TestHandle_NotifiesWithReportID(t *testing.T) {
	repo := &fakeRepo{}
	n := &fakeNotifier{}
	d := New(Options{Repo: repo, Notifier: n, Keep: 20})

	out, err := d.Handle(context.Background(), report(t, instrument.Depression, 3))
	require.NoError(t, err)
	assert.True(t, out.Saved)
	assert.True(t, out.Notified)
	require.Len(t, n.notices, 1)
	assert.Equal(t, int64(1), n.notices[0].ReportID)
	assert.Equal(t, []int{20}, repo.pruned)
}

func TestHandle_SaveFailureStillNotifies(t *testing.T) {
	boom := errors.New("disk full")
	core, logs := observer.New(zapcore.InfoLevel)
	n := &fakeNotifier{}
	d := New(Options{Repo: &fakeRepo{saveErr: boom}, Notifier: n, Logger: zap.New(core)})

	r := report(t, instrument.Depression, 3)
	out, err := d.Handle(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, out.Saved)
	assert.True(t, out.Notified)
	require.Len(t, n.notices, 1)
	assert.Zero(t, n.notices[0].ReportID)
	assert.Equal(t, 1, logs.FilterMessage("save report failed").Len())

	// The report itself is untouched.
	assert.Equal(t, 27, r.Total())
	assert.True(t, r.Escalate())
}

func TestHandle_NotifyFailure(t *testing.T) {
	boom := errors.New("broker down")
	d := New(Options{Repo: &fakeRepo{}, Notifier: &fakeNotifier{err: boom}})

	out, err := d.Handle(context.Background(), report(t, instrument.Anxiety, 3))
	assert.ErrorIs(t, err, boom)
	assert.True(t, out.Saved)
	assert.False(t, out.Notified)
}

func TestHandle_NoCollaborators(t *testing.T) {
	d := New(Options{})
	out, err := d.Handle(context.Background(), report(t, instrument.Depression, 3))
	require.NoError(t, err)
	assert.Equal(t, Outcome{}, out)
}

func TestHandle_WithSQLiteStore(t *testing.T) {
	s, err := store.Open("file:dispatch_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	d := New(Options{Repo: s.ReportRepo(), Keep: 2})
	for _, v := range []int{0, 1, 2} {
		_, err := d.Handle(context.Background(), report(t, instrument.Anxiety, v))
		require.NoError(t, err)
	}

	recs, err := s.ReportRepo().List(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 14, recs[0].Total)
	assert.Equal(t, 7, recs[1].Total)
}
