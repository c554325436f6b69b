package watch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	portsrepo "github.com/Ryan-Musomba/givehub/internal/core/ports/repositories"
	"github.com/Ryan-Musomba/givehub/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCampaignReader serves snapshots from an in-memory slice, applying only
// the status filter since that is all the broker tests need.
type stubCampaignReader struct {
	mu        sync.Mutex
	campaigns []domain.Campaign
	listErr   error
	listCalls int
}

func (s *stubCampaignReader) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	panic("not used")
}

func (s *stubCampaignReader) ListCampaigns(ctx context.Context, filter portsrepo.CampaignFilter, limit int, nextToken *string) ([]domain.Campaign, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, nil, s.listErr
	}
	var out []domain.Campaign
	for _, c := range s.campaigns {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil, nil
}

func (s *stubCampaignReader) setCampaigns(campaigns []domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = campaigns
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	reader := &stubCampaignReader{campaigns: []domain.Campaign{
		{CampaignID: "c1", Status: domain.StatusApproved},
		{CampaignID: "c2", Status: domain.StatusPending},
	}}
	broker := watch.NewBroker(reader)

	ch, cancel, err := broker.Subscribe(context.Background(), portsrepo.CampaignFilter{Status: domain.StatusApproved})
	require.NoError(t, err)
	defer cancel()

	snapshot := <-ch
	require.Len(t, snapshot, 1)
	assert.Equal(t, "c1", snapshot[0].CampaignID)
	assert.Equal(t, 1, broker.SubscriberCount())
}

func TestNotifyPushesFreshSnapshot(t *testing.T) {
	reader := &stubCampaignReader{campaigns: []domain.Campaign{
		{CampaignID: "c1", Status: domain.StatusApproved},
	}}
	broker := watch.NewBroker(reader)

	ch, cancel, err := broker.Subscribe(context.Background(), portsrepo.CampaignFilter{Status: domain.StatusApproved})
	require.NoError(t, err)
	defer cancel()

	<-ch // drain initial snapshot

	reader.setCampaigns([]domain.Campaign{
		{CampaignID: "c1", Status: domain.StatusApproved},
		{CampaignID: "c3", Status: domain.StatusApproved},
	})
	broker.Notify(context.Background())

	snapshot := <-ch
	assert.Len(t, snapshot, 2)
}

func TestNotifyReplacesStaleSnapshot(t *testing.T) {
	reader := &stubCampaignReader{}
	broker := watch.NewBroker(reader)

	ch, cancel, err := broker.Subscribe(context.Background(), portsrepo.CampaignFilter{})
	require.NoError(t, err)
	defer cancel()

	// Leave the initial snapshot undrained and push two more. The subscriber
	// must see only the latest one.
	reader.setCampaigns([]domain.Campaign{{CampaignID: "stale", Status: domain.StatusApproved}})
	broker.Notify(context.Background())
	reader.setCampaigns([]domain.Campaign{{CampaignID: "latest", Status: domain.StatusApproved}})
	broker.Notify(context.Background())

	snapshot := <-ch
	require.Len(t, snapshot, 1)
	assert.Equal(t, "latest", snapshot[0].CampaignID)
}

func TestCancelRemovesSubscriberAndClosesChannel(t *testing.T) {
	reader := &stubCampaignReader{}
	broker := watch.NewBroker(reader)

	ch, cancel, err := broker.Subscribe(context.Background(), portsrepo.CampaignFilter{})
	require.NoError(t, err)

	<-ch
	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, broker.SubscriberCount())

	// Notify after cancel must not panic or re-query for the dead subscriber.
	before := reader.listCalls
	broker.Notify(context.Background())
	assert.Equal(t, before, reader.listCalls)
}

func TestSubscribeSurfacesReaderError(t *testing.T) {
	reader := &stubCampaignReader{listErr: assert.AnError}
	broker := watch.NewBroker(reader)

	_, _, err := broker.Subscribe(context.Background(), portsrepo.CampaignFilter{})
	require.Error(t, err)
	assert.Equal(t, 0, broker.SubscriberCount())
}
