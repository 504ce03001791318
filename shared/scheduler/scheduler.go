package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"shorts-analyzer/shared/monitoring"

	"github.com/robfig/cron/v3"
)

// Agent is the unit of work the scheduler drives.
type Agent interface {
	Name() string
	Initialize() error
	// RunOnce performs one full run and returns a one-line summary.
	RunOnce(ctx context.Context) (string, error)
}

// Scheduler runs an agent on a cron schedule, recording outcomes and
// serving health checks. Overlapping runs are skipped.
type Scheduler struct {
	schedule   string
	healthPort int
	monitor    *monitoring.Monitor
	agent      Agent
	cron       *cron.Cron
}

func New(schedule string, healthPort int, agent Agent) *Scheduler {
	return &Scheduler{
		schedule:   schedule,
		healthPort: healthPort,
		monitor:    monitoring.NewMonitor(),
		agent:      agent,
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.agent.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize agent: %w", err)
	}

	healthServer := monitoring.NewHealthServer(s.monitor, s.healthPort)
	healthServer.Start()

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled job for %s: %v", s.agent.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Scheduler started for %s with schedule: %s", s.agent.Name(), s.schedule)
	s.cron.Start()

	<-ctx.Done()
	log.Printf("Scheduler stopped for %s", s.agent.Name())
	s.cron.Stop()
	return ctx.Err()
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()
	log.Printf("Starting %s run...", s.agent.Name())

	summary, err := s.agent.RunOnce(ctx)
	duration := time.Since(start)
	if err != nil {
		s.monitor.RecordFailure(fmt.Errorf("%s failed: %w", s.agent.Name(), err), duration)
		return fmt.Errorf("%s run failed: %w", s.agent.Name(), err)
	}

	s.monitor.RecordSuccess(summary, duration)
	return nil
}
