// Package scheduler wires the hourly cron trigger to the notification pass.
// The pass itself lives in the service layer; this package only owns the
// tick source.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"birthdayreminder/internal/domain/service"
)

type Scheduler struct {
	cron   *cron.Cron
	engine *service.Scheduler
	spec   string
	log    zerolog.Logger
}

func New(engine *service.Scheduler, spec string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		engine: engine,
		spec:   spec,
		log:    logger.With().Str("component", "cron").Logger(),
	}
}

// Start registers the hourly pass and starts the cron loop. A pass that is
// still running when the next tick fires causes that tick to be skipped;
// the engine is not designed for overlapping passes.
func (s *Scheduler) Start() error {
	job := cron.NewChain(cron.SkipIfStillRunning(cronLogger{s.log})).Then(cron.FuncJob(func() {
		s.engine.RunPass(time.Now())
	}))

	if _, err := s.cron.AddJob(s.spec, job); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("notification scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("notification scheduler stopped")
}

// cronLogger adapts zerolog to the cron.Logger interface.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
