// Package relay moves pending outbox events to a Publisher on a cron schedule.
package relay

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
)

type Source interface {
	ListPending(ctx context.Context, limit int) ([]*outbox.Event, error)
}

type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}

type Recorder interface {
	OutboxRelayed(result string, n int)
}

type nopRecorder struct{}

func (nopRecorder) OutboxRelayed(string, int) {}

type Relay struct {
	Source    Source
	Repo      *outbox.Repo
	Committer Committer
	Publisher Publisher
	Clock     clock.Clock
	Log       logrus.FieldLogger
	Metrics   Recorder
	BatchSize int
}

func New(src Source, committer Committer, pub Publisher, clk clock.Clock, log logrus.FieldLogger, batchSize int) *Relay {
	if batchSize < 1 {
		batchSize = 100
	}
	return &Relay{
		Source:    src,
		Repo:      outbox.NewRepo(),
		Committer: committer,
		Publisher: pub,
		Clock:     clk,
		Log:       log,
		Metrics:   nopRecorder{},
		BatchSize: batchSize,
	}
}

// RunOnce publishes one batch and marks the published events processed in a
// single commit. It returns how many events were marked.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	events, err := r.Source.ListPending(ctx, r.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	plan := commitplan.NewPlan("outbox.relay")
	failed := 0
	for _, e := range events {
		if err := r.Publisher.Publish(ctx, e); err != nil {
			failed++
			r.Log.WithError(err).WithField("event_id", e.EventID).Warn("publish outbox event")
			continue
		}
		plan.Add(r.Repo.MarkProcessedMut(e.EventID, r.Clock.Now()))
	}
	r.Metrics.OutboxRelayed("failed", failed)

	if err := r.Committer.Apply(ctx, plan); err != nil {
		return 0, fmt.Errorf("mark outbox events processed: %w", err)
	}
	r.Metrics.OutboxRelayed("published", plan.Len())
	return plan.Len(), nil
}

// Start schedules RunOnce with a cron spec such as "@every 10s". Runs never
// overlap. Stop the returned cron to shut the relay down.
func (r *Relay) Start(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(r.Log)),
		cron.SkipIfStillRunning(cron.PrintfLogger(r.Log)),
	))
	_, err := c.AddFunc(spec, func() {
		n, err := r.RunOnce(ctx)
		if err != nil {
			r.Log.WithError(err).Error("outbox relay run failed")
			return
		}
		if n > 0 {
			r.Log.WithField("count", n).Debug("outbox events relayed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule outbox relay %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
