package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/databases"
	"github.com/cityfix/cityfix-api/logging"
	"github.com/cityfix/cityfix-api/services"
	templates "github.com/cityfix/cityfix-api/templates/html"
)

const (
	digestJobName = "daily_stats_digest"
	digestLockTTL = 10 * time.Minute
	digestTimeout = 5 * time.Minute
)

// Scheduler runs periodic background jobs. Every job takes a distributed
// lock first so only one instance does the work.
type Scheduler struct {
	cron       *cron.Cron
	Stats      services.Stats
	LockDB     databases.LockDatabase
	Mailer     Mailer
	cronSpec   string
	digestTo   string
	instanceID string
	log        *zap.SugaredLogger
	now        func() time.Time
}

// NewScheduler creates a scheduler for the digest job. A nil mailer only logs
// the digest.
func NewScheduler(stats services.Stats, lockDB databases.LockDatabase, mailer Mailer, conf *config.Config) *Scheduler {
	instanceID := os.Getenv("DYNO")
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Stats:      stats,
		LockDB:     lockDB,
		Mailer:     mailer,
		cronSpec:   conf.DigestCron,
		digestTo:   conf.DigestToEmail,
		instanceID: instanceID,
		log:        logging.New("scheduler"),
		now:        time.Now,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cronSpec, s.sendDigest); err != nil {
		return fmt.Errorf("failed to register digest job %q: %w", s.cronSpec, err)
	}
	s.cron.Start()
	s.log.Infow("scheduler started", "digestCron", s.cronSpec, "instance", s.instanceID)
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	if err := s.RunDigest(ctx); err != nil {
		s.log.Errorw("digest job failed", "error", err)
	}
}

// RunDigest computes the statistics digest and mails it. It is a no-op when
// another instance holds the lock.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	acquired, err := s.LockDB.TryAcquireLock(ctx, digestJobName, s.instanceID, digestLockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		s.log.Debug("digest job already running on another instance, skipping")
		return nil
	}
	defer func() {
		if err := s.LockDB.ReleaseLock(context.Background(), digestJobName, s.instanceID); err != nil {
			s.log.Warnw("failed to release digest lock", "error", err)
		}
	}()

	summary, err := s.Stats.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}
	categories, err := s.Stats.ByCategory(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute categories: %w", err)
	}

	subject := templates.DigestSubject(s.now())
	text := templates.DigestText(*summary, categories)
	s.log.Infow("daily digest",
		"totalReports", summary.TotalReports,
		"resolutionRate", summary.ResolutionRate,
		"pending", summary.ByStatus.Pending,
	)

	if s.Mailer == nil || s.digestTo == "" {
		s.log.Debug("digest mail not configured, skipping send")
		return nil
	}
	return s.Mailer.Send(ctx, s.digestTo, "CityFix admins", subject, templates.RenderGenericEmail(subject, text), text)
}
