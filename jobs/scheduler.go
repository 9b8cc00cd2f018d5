// Package jobs runs the background maintenance work, currently the periodic
// display-name sync.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"societyhub/services"
)

type Scheduler struct {
	c *cron.Cron
}

// Start schedules the batch display-name sync on the given cron spec.
func Start(spec string, users *services.UserAdminService) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		result, err := users.SyncAllDisplayNames(ctx)
		if err != nil {
			zap.L().Error("scheduled display-name sync failed", zap.Error(err))
			return
		}
		zap.L().Info("scheduled display-name sync finished",
			zap.Int("synced", result.Synced),
			zap.Int("unchanged", result.Unchanged),
			zap.Int("errors", result.Errors))
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	zap.L().Info("display-name sync scheduled", zap.String("spec", spec))
	return &Scheduler{c: c}, nil
}

func (s *Scheduler) Stop() {
	if s != nil && s.c != nil {
		s.c.Stop()
		zap.L().Info("scheduler stopped")
	}
}
