package ladder

import (
	"time"

	"tcgladder/internal/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExpirySweeper marks stale pending challenges as Expired on a schedule.
// Expiry only looks at Pending rows, so a challenge accepted between sweeps
// is never touched.
type ExpirySweeper struct {
	DB     *gorm.DB
	Logger *zap.Logger
	TTL    time.Duration

	cron *cron.Cron
}

func NewExpirySweeper(db *gorm.DB, logger *zap.Logger, ttl time.Duration) *ExpirySweeper {
	return &ExpirySweeper{DB: db, Logger: logger, TTL: ttl}
}

// Start schedules the sweep and runs one immediately to catch challenges
// that went stale while the server was down.
func (s *ExpirySweeper) Start(schedule string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	go s.Sweep()
	return nil
}

func (s *ExpirySweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep expires every pending challenge older than the TTL.
func (s *ExpirySweeper) Sweep() {
	challenges := &repositories.ChallengeRepository{DB: s.DB}
	cutoff := time.Now().Add(-s.TTL)
	expired, err := challenges.ExpirePendingOlderThan(cutoff)
	if err != nil {
		s.Logger.Error("challenge expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		s.Logger.Info("expired stale challenges", zap.Int64("count", expired))
	}
}
