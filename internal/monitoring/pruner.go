package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/avelar-dev/taskcast-be/internal/services"
)

// Pruner periodically deletes weather readings older than the
// retention period. Readings are append-only, so without it duplicate
// rows for a city would pile up forever.
type Pruner struct {
	weatherSvc services.WeatherServiceProvider
	schedule   cron.Schedule
	retention  time.Duration
	done       chan bool
}

// NewPruner creates a pruner from a standard cron expression.
func NewPruner(weatherSvc services.WeatherServiceProvider, cronExpr string, retention time.Duration) (*Pruner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Pruner{
		weatherSvc: weatherSvc,
		schedule:   schedule,
		retention:  retention,
		done:       make(chan bool),
	}, nil
}

// Run executes prune passes at the scheduled times until Stop is called.
func (p *Pruner) Run() {
	log.Info().Dur("retention", p.retention).Msg("Starting reading pruner")

	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-p.done:
			timer.Stop()
			log.Info().Msg("Stopping reading pruner")
			return
		case <-timer.C:
			p.prune()
		}
	}
}

// Stop halts the pruner.
func (p *Pruner) Stop() {
	p.done <- true
}

func (p *Pruner) prune() {
	cutoff := time.Now().Add(-p.retention)
	deleted, err := p.weatherSvc.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Pruner: failed to delete stale readings")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruner: removed stale readings")
	}
}
