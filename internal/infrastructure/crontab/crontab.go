package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/infrastructure/logger"
	"koita-chat-api/internal/infrastructure/metrics"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	CronJobTimeout = 5 * time.Minute // Timeout for each cron job execution
)

// Purger removes temporary conversations older than a retention window.
type Purger interface {
	PurgeTemporary(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Config struct {
	PurgeSchedule string
	Retention     time.Duration
}

type Crontab struct {
	ctab   *crontab.Crontab
	purger Purger
	cfg    Config
}

func NewCrontab(purger Purger, cfg Config) *Crontab {
	return &Crontab{
		ctab:   crontab.New(),
		purger: purger,
		cfg:    cfg,
	}
}

// Run schedules the jobs and blocks until ctx is done.
func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	if err := c.ctab.AddJob(c.cfg.PurgeSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), CronJobTimeout)
		defer cancel()
		c.PurgeTemporaryConversations(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add temporary conversation purge job")
	}
	log.Info().
		Str("schedule", c.cfg.PurgeSchedule).
		Dur("retention", c.cfg.Retention).
		Msg("Temporary conversation purge scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// PurgeTemporaryConversations runs one purge pass and reports how many conversations were removed.
func (c *Crontab) PurgeTemporaryConversations(ctx context.Context) int64 {
	log := logger.GetLogger()

	purged, err := c.purger.PurgeTemporary(ctx, c.cfg.Retention)
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge temporary conversations")
		return 0
	}
	metrics.TempConversationsPurgedTotal.Add(float64(purged))
	log.Debug().Int64("purged", purged).Msg("Temporary conversation purge finished")
	return purged
}

var _ Purger = (*conversation.Service)(nil)
