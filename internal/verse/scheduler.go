package verse

import (
	"context"
	"log"
	"time"

	"github.com/taiwoajasa245/daily-verse-api/pkg/config"
)

// StartScheduler keeps the current date resolved so the midnight rollover
// does not wait on the first request of the day.
// - In dev: runs every hour.
// - In prod: runs every 24 hours.
// ResolveForDate is idempotent, so firing more often than needed is harmless.
func (s *Selector) StartScheduler(ctx context.Context) {
	tickerDuration := time.Hour // default for testing (local/dev)

	appEnv := config.GetAppEnv()
	if appEnv == "production" {
		tickerDuration = 24 * time.Hour
	}

	ticker := time.NewTicker(tickerDuration)
	defer ticker.Stop()

	log.Printf("DailyVerse scheduler started (%s interval)\n", tickerDuration)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped gracefully")
			return
		case <-ticker.C:
			s.preResolveToday(ctx)
		}
	}
}

func (s *Selector) preResolveToday(ctx context.Context) {
	today := DateOf(time.Now())

	verse, err := s.ResolveForDate(ctx, today)
	if err != nil {
		log.Printf("Failed to pre-resolve verse for %s: %v", today.Format("2006-01-02"), err)
		return
	}
	log.Printf("Verse for %s is %s", today.Format("2006-01-02"), verse.Ref())
}
