package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler returns a cron that recovers panics and never overlaps a job with itself.
func NewScheduler(logger *zap.Logger) *cron.Cron {
	cl := cronLogger{sugar: logger.Named("cron").Sugar()}
	return cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}
