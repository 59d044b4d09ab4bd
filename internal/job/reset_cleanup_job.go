package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/gridwatch/gridboard/internal/service"
)

// ResetCleanupJob purges expired password-reset tokens. The change
// flow already refuses stale tokens; this just keeps the table small.
type ResetCleanupJob struct {
	resets service.ResetStore
}

func NewResetCleanupJob(resets service.ResetStore) *ResetCleanupJob {
	return &ResetCleanupJob{resets: resets}
}

func (j *ResetCleanupJob) Name() string {
	return "reset_cleanup"
}

func (j *ResetCleanupJob) Run(ctx context.Context) error {
	if j.resets == nil {
		return nil
	}
	deleted, err := j.resets.DeleteExpired(ctx, time.Now().Unix())
	if err != nil {
		return err
	}
	if deleted > 0 {
		logutil.GetLogger(ctx).Info("expired reset tokens purged", zap.Int64("count", deleted))
	}
	return nil
}
