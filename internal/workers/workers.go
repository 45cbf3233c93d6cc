package workers

import (
	"github.com/msalikhov/passvault/internal/config"
	"github.com/msalikhov/passvault/internal/logger"
	"github.com/msalikhov/passvault/internal/service"
	"github.com/msalikhov/passvault/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background jobs enabled by configuration.
// Currently the only job is the periodic auto-backup.
func NewWorkers(cfg config.Workers, backup service.BackupService, preferences store.PreferenceRepository, log *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.AutoBackup {
		w.workers = append(w.workers, NewAutoBackupJob(cfg, backup, preferences, log))
	}
	return w
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop halts every worker that supports being stopped and blocks until
// each has fully exited.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		if stoppable, ok := worker.(interface{ Stop() }); ok {
			stoppable.Stop()
		}
	}
}
