package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/docchat/internal/repo"
)

// SessionCleanupJob removes conversation sessions that have been idle longer
// than the retention window. Session lifecycle belongs to the storage layer,
// not the chat pipeline, so this runs out of band.
type SessionCleanupJob struct {
	sessions      *repo.SessionRepo
	retentionDays int
}

func NewSessionCleanupJob(sessions *repo.SessionRepo, retentionDays int) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions, retentionDays: retentionDays}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	if j.sessions == nil {
		return nil
	}
	retentionDays := j.retentionDays
	if retentionDays <= 0 {
		retentionDays = 90
	}
	cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour).Unix()
	removed, err := j.sessions.DeleteIdleBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		logutil.GetLogger(ctx).Info("idle sessions removed", zap.Int64("count", removed))
	}
	return nil
}
