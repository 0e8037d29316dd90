// Package worker drives everything time-based: it polls the durable job
// queue for due alarm fires and escalations, and runs the periodic rule
// passes. Jobs live in the database, so nothing pending is lost across a
// restart; handlers are idempotent because delivery is at-least-once.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/internal/service"
	"github.com/limbo/cadence/pkg/cleanup"
	"github.com/limbo/cadence/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	claimBatchSize = 50
	// A running job older than this is presumed orphaned by a dead worker
	staleClaimAge = 5 * time.Minute
	handleTimeout = 30 * time.Second
)

type Worker struct {
	jobs   repository.JobsRepositoryI
	alarms service.AlarmsServiceI
	rules  service.RulesServiceI
	logger *logrus.Logger
	cron   *cron.Cron
}

func New(jobsRepo repository.JobsRepositoryI, alarms service.AlarmsServiceI, rules service.RulesServiceI, logger *logrus.Logger) *Worker {
	if jobsRepo == nil || alarms == nil || rules == nil {
		log.Fatal("on worker provided nil dependencies")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Worker{
		jobs:   jobsRepo,
		alarms: alarms,
		rules:  rules,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the schedules and runs the cron loop in the background.
func (w *Worker) Start() error {
	// Due-job polling every few seconds keeps fire latency low without
	// holding any in-process timer state
	if _, err := w.cron.AddFunc("@every 5s", w.pollOnce); err != nil {
		return err
	}
	if _, err := w.cron.AddFunc("@every 1m", w.releaseStale); err != nil {
		return err
	}
	// The at-risk rule is keyed per habit per day, so an hourly pass is
	// safe; it only starts emitting once users cross their late hour
	if _, err := w.cron.AddFunc("@hourly", w.eveningPass); err != nil {
		return err
	}
	if _, err := w.cron.AddFunc("30 0 * * *", w.nightlyCleanPass); err != nil {
		return err
	}
	w.cron.Start()
	cleanup.Register(&cleanup.Job{
		Name: "stopping worker cron",
		F: func() error {
			<-w.cron.Stop().Done()
			return nil
		},
	})
	w.logger.Info("worker started")
	return nil
}

func (w *Worker) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	now := time.Now()
	jobs, err := w.jobs.ClaimDue(ctx, now, claimBatchSize)
	if err != nil {
		w.logger.WithError(err).Error("claiming due jobs failed")
		return
	}
	for _, job := range jobs {
		var handleErr error
		switch job.Kind {
		case service.JobKindAlarmFire:
			handleErr = w.alarms.HandleFire(ctx, job.Payload, now)
		case service.JobKindEscalation:
			handleErr = w.alarms.HandleEscalation(ctx, job.Payload, now)
		default:
			w.logger.WithField("kind", job.Kind).Warn("unknown job kind, dropping")
		}
		if handleErr != nil {
			// Left running; releaseStale requeues it for another attempt
			w.logger.WithError(handleErr).WithFields(logrus.Fields{
				"job": job.ID, "kind": job.Kind,
			}).Error("job handler failed")
			continue
		}
		if err = w.jobs.MarkDone(ctx, job.ID); err != nil {
			w.logger.WithError(err).WithField("job", job.ID).Error("marking job done failed")
			continue
		}
		metrics.JobsProcessed.Inc()
	}
}

func (w *Worker) releaseStale() {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	released, err := w.jobs.ReleaseStale(ctx, time.Now().Add(-staleClaimAge))
	if err != nil {
		w.logger.WithError(err).Error("releasing stale jobs failed")
		return
	}
	if released > 0 {
		w.logger.WithField("count", released).Warn("requeued stale jobs")
	}
}

func (w *Worker) eveningPass() {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	if err := w.rules.EveningPass(ctx, time.Now()); err != nil {
		w.logger.WithError(err).Error("evening rules pass failed")
	}
}

func (w *Worker) nightlyCleanPass() {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	if err := w.rules.NightlyCleanPass(ctx, time.Now()); err != nil {
		w.logger.WithError(err).Error("nightly clean pass failed")
	}
}
