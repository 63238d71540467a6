package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const retentionRunTimeout = 5 * time.Minute

type JournalPruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// JournalRetentionJob deletes journal rows past the retention window.
type JournalRetentionJob struct {
	pruner    JournalPruner
	retention time.Duration
	logger    *zap.Logger
}

func NewJournalRetentionJob(pruner JournalPruner, retentionDays int, logger *zap.Logger) *JournalRetentionJob {
	return &JournalRetentionJob{
		pruner:    pruner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger.Named("journal_retention"),
	}
}

func (j *JournalRetentionJob) Run(ctx context.Context) error {
	if j.retention <= 0 {
		j.logger.Debug("retention disabled")
		return nil
	}
	n, err := j.pruner.Prune(ctx, j.retention)
	if err != nil {
		return fmt.Errorf("journal retention: %w", err)
	}
	j.logger.Info("journal retention finished", zap.Int64("deleted", n))
	return nil
}

// Schedule registers the job on c with a standard five-field cron spec.
func (j *JournalRetentionJob) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), retentionRunTimeout)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.logger.Error("journal retention failed", zap.Error(err))
		}
	})
	if err != nil {
		return 0, fmt.Errorf("invalid retention schedule %q: %w", spec, err)
	}
	return id, nil
}
