// Package watch implements the in-process fanout behind the live campaign
// list feed. Mutating campaign operations notify the broker, which re-runs
// each subscriber's filtered query and pushes the fresh snapshot.
package watch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	"github.com/Ryan-Musomba/givehub/internal/middleware"
)

// snapshotLimit caps how many campaigns a single snapshot carries.
const snapshotLimit = 100

type subscriber struct {
	filter portsrepo.CampaignFilter
	ch     chan []domain.Campaign
}

// Broker fans campaign list changes out to SSE subscribers. Each subscriber
// registers a filter; on every Notify the broker re-queries the repository
// once per distinct subscriber and delivers the snapshot. Slow subscribers
// have stale snapshots replaced rather than queued.
type Broker struct {
	reader portsrepo.CampaignReader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewBroker creates a Broker that serves snapshots from the given reader.
func NewBroker(reader portsrepo.CampaignReader) *Broker {
	return &Broker{
		reader: reader,
		subs:   make(map[*subscriber]struct{}),
	}
}

// Subscribe registers a filtered subscription and returns the snapshot
// channel plus a cancel func. The current snapshot is delivered before
// Subscribe returns. The channel is closed on cancel.
func (b *Broker) Subscribe(ctx context.Context, filter portsrepo.CampaignFilter) (<-chan []domain.Campaign, func(), error) {
	initial, _, err := b.reader.ListCampaigns(ctx, filter, snapshotLimit, nil)
	if err != nil {
		return nil, nil, err
	}

	sub := &subscriber{
		filter: filter,
		ch:     make(chan []domain.Campaign, 1),
	}
	sub.ch <- initial

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, sub)
			b.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel, nil
}

// Notify re-queries every subscriber's filter and pushes fresh snapshots.
// Called by campaign and donation writes after a successful commit.
func (b *Broker) Notify(ctx context.Context) {
	logger := middleware.GetLoggerFromCtx(ctx)

	b.mu.Lock()
	subs := make([]*subscriber, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		snapshot, _, err := b.reader.ListCampaigns(ctx, sub.filter, snapshotLimit, nil)
		if err != nil {
			logger.Warn("Failed to refresh watch snapshot", slog.String("error", err.Error()))
			continue
		}

		b.mu.Lock()
		_, alive := b.subs[sub]
		if alive {
			// Drop the undelivered snapshot, if any, so the subscriber
			// always gets the latest state rather than a backlog.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- snapshot
		}
		b.mu.Unlock()
	}
}

// SubscriberCount reports how many subscriptions are active.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
