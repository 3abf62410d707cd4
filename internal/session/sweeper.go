package session

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NewSweeper schedules SweepIdle on m using a cron schedule such as "@every 5m".
// The caller starts and stops the returned scheduler.
func NewSweeper(m *Manager, schedule string, maxIdle time.Duration, logger *zap.SugaredLogger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(schedule, func() {
		if n := m.SweepIdle(maxIdle); n > 0 {
			logger.Infow("swept idle sessions", "closed", n, "open", m.Len())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session sweep schedule %q: %w", schedule, err)
	}
	return c, nil
}
