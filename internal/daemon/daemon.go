package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/robfig/cron/v3"

	"slate/internal/config"
	"slate/internal/logging"
	"slate/internal/pipeline"
	"slate/internal/takes"
)

// Daemon coordinates the background services and enforces single-instance
// execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *takes.Store
	orch    *pipeline.Orchestrator
	tracker *pipeline.Tracker

	lockPath string
	lock     *flock.Flock

	sweeper *cron.Cron
	api     *apiServer

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DBPath       string
	LockFilePath string
	TrackedRuns  int
	TotalTakes   int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *takes.Store, orch *pipeline.Orchestrator, tracker *pipeline.Tracker, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || orch == nil || tracker == nil {
		return nil, errors.New("daemon requires config, store, orchestrator, and tracker")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "slated.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		orch:     orch,
		tracker:  tracker,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and launches the API server and the
// progress sweeper.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another slate daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	if err := d.startSweeper(); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		return err
	}
	if d.api != nil {
		if err := d.api.start(d.ctx); err != nil {
			d.stopSweeper()
			_ = d.lock.Unlock()
			d.cancel()
			return err
		}
	}

	d.running.Store(true)
	d.logger.Info("slate daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background services and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.api != nil {
		d.api.stop()
	}
	d.stopSweeper()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("slate daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Process starts an asynchronous pipeline run for a take.
func (d *Daemon) Process(takeID int64) {
	ctx := d.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	go func() {
		if err := d.orch.ProcessTake(ctx, takeID); err != nil {
			d.logger.Error("pipeline run failed",
				logging.Int64(logging.FieldTakeID, takeID),
				logging.Error(err),
			)
		}
	}()
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	total := 0
	if list, err := d.store.List(ctx); err == nil {
		total = len(list)
	}
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DBPath:       d.store.Path(),
		LockFilePath: d.lockPath,
		TrackedRuns:  d.tracker.Len(),
		TotalTakes:   total,
	}
}

// startSweeper schedules the progress-record eviction sweep. The tracker is
// bounded on insert as well, so a failed schedule is a configuration error
// rather than a leak.
func (d *Daemon) startSweeper() error {
	schedule := d.cfg.Pipeline.EvictionSchedule
	if schedule == "" {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if dropped := d.tracker.Evict(time.Now()); dropped > 0 {
			d.logger.Debug("evicted stale progress records", logging.Int("dropped", dropped))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule progress sweep %q: %w", schedule, err)
	}
	c.Start()
	d.sweeper = c
	return nil
}

func (d *Daemon) stopSweeper() {
	if d.sweeper == nil {
		return
	}
	d.sweeper.Stop()
	d.sweeper = nil
}
