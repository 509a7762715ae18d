package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lobbychat/lobby-chat-api/chat"
)

// Scheduler handles periodic background jobs for the chat service
type Scheduler struct {
	cron       *cron.Cron
	Moderation *chat.Moderation
}

// NewScheduler creates a new scheduler instance
func NewScheduler(moderation *chat.Moderation) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Moderation: moderation,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Prune expired timeout entries every minute. Expired entries are
	// already inert (expiry is checked lazily on submission); the sweep
	// keeps the map from growing unbounded.
	_, err := s.cron.AddFunc("@every 1m", s.pruneTimeouts)
	if err != nil {
		zap.S().Errorw("failed to schedule timeout pruning job", "error", err)
		return
	}

	s.cron.Start()
	zap.S().Info("Moderation janitor started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Moderation janitor stopped")
}

func (s *Scheduler) pruneTimeouts() {
	if pruned := s.Moderation.PruneExpired(); pruned > 0 {
		zap.S().Infow("pruned expired timeouts", "count", pruned)
	}
}
