package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wellcheck/internal/config"
	"github.com/abhisek/wellcheck/internal/dispatch"
	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/logger"
	"github.com/abhisek/wellcheck/internal/notify"
	"github.com/abhisek/wellcheck/internal/screening"
	"github.com/abhisek/wellcheck/internal/store"
)

// deps is everything a command may need, built from config.
type deps struct {
	cfg        *config.Config
	log        *zap.Logger
	engine     *screening.Engine
	store      *store.Store // nil when reports are not saved
	dispatcher *dispatch.Dispatcher

	closers []io.Closer
}

type depsOpts struct {
	// tui keeps logs off the terminal unless a log file is configured.
	tui bool
	// needStore opens the database even when WELLCHECK_SAVE_REPORTS is off.
	needStore bool
	// notify connects the escalation notifier. Only commands that finalize
	// reports set it.
	notify bool
}

func buildDeps(cmd *cobra.Command, opts depsOpts) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	d := &deps{cfg: cfg}

	out := cfg.LogFile
	if out == "" && !opts.tui && cfg.IsDevelopment() {
		out = "stderr"
	}
	d.log, err = logger.New(logger.Options{Level: cfg.LogLevel, Env: cfg.Env, OutputPath: out})
	if err != nil {
		return nil, err
	}

	d.engine, err = loadEngine(cfg)
	if err != nil {
		d.Close()
		return nil, err
	}

	if cfg.SaveReports || opts.needStore {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.store = st
		d.closers = append(d.closers, st)
		d.log.Debug("store opened", zap.String("path", dbPath))
	}

	dopts := dispatch.Options{
		Logger: d.log,
		Keep:   cfg.HistoryKeep,
	}
	if opts.notify {
		dopts.Notifier = d.notifier(cmd)
	}
	if d.store != nil && cfg.SaveReports {
		dopts.Repo = d.store.ReportRepo()
	}
	d.dispatcher = dispatch.New(dopts)

	return d, nil
}

// notifier dials the escalation queue when configured and falls back to
// logging escalations.
func (d *deps) notifier(cmd *cobra.Command) notify.Notifier {
	if d.cfg.AMQPURL == "" {
		return notify.NewLogNotifier(d.log)
	}
	n, err := notify.DialAMQP(d.cfg.AMQPURL, d.cfg.EscalationQueue)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Escalation queue unavailable:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Escalations will only be logged.")
		d.log.Warn("amqp dial failed", zap.Error(err))
		return notify.NewLogNotifier(d.log)
	}
	d.closers = append(d.closers, n)
	d.log.Info("escalation queue connected", zap.String("queue", n.Queue()))
	return n
}

// repo returns the report repository, or nil when no store is open.
func (d *deps) repo() store.ReportRepo {
	if d.store == nil {
		return nil
	}
	return d.store.ReportRepo()
}

func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	d.closers = nil
	if d.log != nil {
		_ = d.log.Sync()
	}
	return errors.Join(errs...)
}

// loadEngine uses the built-in catalog unless WELLCHECK_CATALOG_DIR points
// at replacement instrument files.
func loadEngine(cfg *config.Config) (*screening.Engine, error) {
	if cfg.CatalogDir == "" {
		return screening.Default(), nil
	}
	ins, err := instrument.LoadDir(cfg.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cat, err := instrument.NewCatalog(ins...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return screening.New(cat), nil
}
