package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/outbox"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	commitplan "github.com/murkotick/storefront-service/internal/pkg/committer"
	"github.com/murkotick/storefront-service/internal/pkg/logger"
)

type stubSource struct {
	events []*outbox.Event
	limit  int
	err    error
}

func (s *stubSource) ListPending(_ context.Context, limit int) ([]*outbox.Event, error) {
	s.limit = limit
	return s.events, s.err
}

type recordingCommitter struct {
	plans []*commitplan.Plan
	err   error
}

func (c *recordingCommitter) Apply(_ context.Context, p *commitplan.Plan) error {
	c.plans = append(c.plans, p)
	return c.err
}

type flakyPublisher struct {
	failFor   map[string]bool
	published []string
}

func (p *flakyPublisher) Publish(_ context.Context, e *outbox.Event) error {
	if p.failFor[e.EventID] {
		return errors.New("broker down")
	}
	p.published = append(p.published, e.EventID)
	return nil
}

type countingRecorder map[string]int

func (c countingRecorder) OutboxRelayed(result string, n int) { c[result] += n }

func events(ids ...string) []*outbox.Event {
	out := make([]*outbox.Event, 0, len(ids))
	for _, id := range ids {
		e := outbox.NewEvent("order.placed", "o-"+id, "{}", time.Now())
		e.EventID = id
		out = append(out, e)
	}
	return out
}

func TestRunOnce_FailedPublishStaysPending(t *testing.T) {
	src := &stubSource{events: events("a", "b", "c")}
	cm := &recordingCommitter{}
	pub := &flakyPublisher{failFor: map[string]bool{"b": true}}
	rec := countingRecorder{}

	r := New(src, cm, pub, clock.NewFake(time.Now()), logger.Discard(), 50)
	r.Metrics = rec

	n, err := r.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, 50, src.limit)
	assert.Equal(t, []string{"a", "c"}, pub.published)
	require.Len(t, cm.plans, 1)
	assert.Equal(t, 2, cm.plans[0].Len())
	assert.Equal(t, 2, rec["published"])
	assert.Equal(t, 1, rec["failed"])
}

func TestRunOnce_NothingPending(t *testing.T) {
	cm := &recordingCommitter{}
	r := New(&stubSource{}, cm, &flakyPublisher{}, clock.NewFake(time.Now()), logger.Discard(), 0)

	n, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, cm.plans)
	assert.Equal(t, 100, r.BatchSize)
}

func TestRunOnce_Errors(t *testing.T) {
	boom := errors.New("unavailable")

	r := New(&stubSource{err: boom}, &recordingCommitter{}, &flakyPublisher{}, clock.NewFake(time.Now()), logger.Discard(), 10)
	_, err := r.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)

	r = New(&stubSource{events: events("a")}, &recordingCommitter{err: boom}, &flakyPublisher{}, clock.NewFake(time.Now()), logger.Discard(), 10)
	_, err = r.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestStart_RejectsBadSpec(t *testing.T) {
	r := New(&stubSource{}, &recordingCommitter{}, &flakyPublisher{}, clock.NewFake(time.Now()), logger.Discard(), 10)

	_, err := r.Start(context.Background(), "every now and then")
	require.Error(t, err)

	c, err := r.Start(context.Background(), "@every 1h")
	require.NoError(t, err)
	<-c.Stop().Done()
}

func TestLogPublisher(t *testing.T) {
	require.NoError(t, LogPublisher{Log: logger.Discard()}.Publish(context.Background(), events("a")[0]))
}
