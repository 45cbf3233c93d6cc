package workers

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/msalikhov/passvault/internal/config"
	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/internal/service"
	"github.com/msalikhov/passvault/internal/store"
)

type autoBackupJob struct {
	backup      service.BackupService
	preferences store.PreferenceRepository
	cfg         config.Workers
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutoBackupJob creates a job that periodically exports the vault to the
// configured backup directory. The job is idle until Run or Start is called.
func NewAutoBackupJob(cfg config.Workers, backup service.BackupService, preferences store.PreferenceRepository, log *logger.Logger) *autoBackupJob {
	return &autoBackupJob{
		backup:      backup,
		preferences: preferences,
		cfg:         cfg,
		logger:      log,
	}
}

// Run implements Worker. The job runs until Stop is called.
func (j *autoBackupJob) Run() {
	j.Start(context.Background(), j.cfg.BackupInterval)
}

// Start stops any previously running job, then launches a background
// goroutine that exports the vault every interval. If interval is zero or
// negative it defaults to 24 hours. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *autoBackupJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

// runOnce performs a single export. A failed export skips the tick with a
// warning; the next tick tries again.
func (j *autoBackupJob) runOnce(ctx context.Context) {
	path, result, err := j.backup.ExportToFile(ctx)
	if err != nil {
		j.logger.Warn().Err(err).Msg("auto-backup skipped")
		return
	}

	stamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := j.preferences.Set(ctx, store.PrefLastBackupAt, stamp); err != nil {
		j.logger.Warn().Err(err).Msg("auto-backup finished but last-backup time was not stamped")
	}

	j.logger.Info().
		Str("path", path).
		Int("records", result.SuccessCount).
		Msg("auto-backup finished")
}

// Stop signals the background goroutine to exit and blocks until it has
// fully terminated. Safe to call when the job is not running.
func (j *autoBackupJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
