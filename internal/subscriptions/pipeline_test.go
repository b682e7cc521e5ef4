package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/youtube"
)

// mockAPI scripts the pipeline's view of the Data API.
type mockAPI struct {
	pages        []*youtube.SubscriptionsPage
	pageErr      error
	pageCalls    int
	detailErrs   map[int]error
	detailCalls  int
	details      map[string]youtube.ChannelDetail
	unsubErr     error
	unsubscribed []string
}

func (m *mockAPI) Subscriptions(ctx context.Context, pageToken string) (*youtube.SubscriptionsPage, error) {
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	if m.pageCalls >= len(m.pages) {
		return nil, fmt.Errorf("unexpected page request %d", m.pageCalls)
	}
	page := m.pages[m.pageCalls]
	m.pageCalls++
	return page, nil
}

func (m *mockAPI) ChannelDetails(ctx context.Context, channelIDs []string) (map[string]youtube.ChannelDetail, error) {
	call := m.detailCalls
	m.detailCalls++

	if err, ok := m.detailErrs[call]; ok {
		return nil, err
	}

	batch := make(map[string]youtube.ChannelDetail)
	for _, id := range channelIDs {
		if detail, ok := m.details[id]; ok {
			batch[id] = detail
		}
	}
	return batch, nil
}

func (m *mockAPI) Unsubscribe(ctx context.Context, subscriptionID string) error {
	if m.unsubErr != nil {
		return m.unsubErr
	}
	m.unsubscribed = append(m.unsubscribed, subscriptionID)
	return nil
}

func makeSubs(n int) []models.Subscription {
	subs := make([]models.Subscription, n)
	for i := range subs {
		subs[i] = models.Subscription{
			ID:        fmt.Sprintf("sub%d", i),
			ChannelID: fmt.Sprintf("UC%d", i),
			Title:     fmt.Sprintf("Channel %d", i),
		}
	}
	return subs
}

func newTestService(t *testing.T, api *mockAPI) *Service {
	t.Helper()
	return NewService(api, NewCache(t.TempDir()), nil)
}

func TestService_FetchAll(t *testing.T) {
	ctx := context.Background()

	t.Run("follows pagination to exhaustion", func(t *testing.T) {
		subs := makeSubs(5)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{
				{Items: subs[:2], NextPageToken: "p2"},
				{Items: subs[2:4], NextPageToken: "p3"},
				{Items: subs[4:]},
			},
		}
		service := newTestService(t, api)

		got, err := service.FetchAll(ctx)
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}

		if len(got) != 5 {
			t.Errorf("expected 5 subscriptions, got %d", len(got))
		}
		if api.pageCalls != 3 {
			t.Errorf("expected 3 page requests, got %d", api.pageCalls)
		}
	})

	t.Run("attaches enrichment keyed by channel id", func(t *testing.T) {
		subs := makeSubs(2)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{{Items: subs}},
			details: map[string]youtube.ChannelDetail{
				"UC0": {
					Statistics: models.Statistics{SubscriberCount: "1000"},
					Thumbnails: &models.Thumbnails{High: models.Thumbnail{URL: "https://example.com/h.jpg"}},
				},
			},
		}
		service := newTestService(t, api)

		got, err := service.FetchAll(ctx)
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}

		if got[0].Statistics == nil || got[0].Statistics.SubscriberCount != "1000" {
			t.Errorf("expected enriched statistics, got %+v", got[0].Statistics)
		}
		if got[0].Thumbnails.High.URL != "https://example.com/h.jpg" {
			t.Error("enrichment thumbnails should replace the listing's")
		}
		if got[1].Statistics != nil {
			t.Error("channels absent from enrichment stay unenriched")
		}
	})

	t.Run("a detail without statistics leaves them absent", func(t *testing.T) {
		subs := makeSubs(1)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{{Items: subs}},
			details: map[string]youtube.ChannelDetail{
				// Channels with hidden counters return no statistics fields.
				"UC0": {Thumbnails: &models.Thumbnails{High: models.Thumbnail{URL: "https://example.com/h.jpg"}}},
			},
		}
		service := newTestService(t, api)

		got, err := service.FetchAll(ctx)
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}

		if got[0].Statistics != nil {
			t.Errorf("expected absent statistics, got %+v", got[0].Statistics)
		}
		if got[0].Thumbnails.High.URL != "https://example.com/h.jpg" {
			t.Error("thumbnails should still be applied")
		}
	})

	t.Run("batches 120 channels into three requests", func(t *testing.T) {
		subs := makeSubs(120)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{{Items: subs}},
		}
		service := newTestService(t, api)

		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}

		if api.detailCalls != 3 {
			t.Errorf("expected 3 enrichment batches for 120 channels, got %d", api.detailCalls)
		}
	})

	t.Run("a failed batch degrades instead of failing the fetch", func(t *testing.T) {
		subs := makeSubs(120)
		details := make(map[string]youtube.ChannelDetail, 120)
		for _, sub := range subs {
			details[sub.ChannelID] = youtube.ChannelDetail{Statistics: models.Statistics{SubscriberCount: "7"}}
		}

		api := &mockAPI{
			pages:      []*youtube.SubscriptionsPage{{Items: subs}},
			details:    details,
			detailErrs: map[int]error{1: errors.New("batch exploded")},
		}
		service := newTestService(t, api)

		got, err := service.FetchAll(ctx)
		if err != nil {
			t.Fatalf("enrichment failure must not fail the fetch: %v", err)
		}

		if got[0].Statistics == nil {
			t.Error("first batch should be enriched")
		}
		if got[60].Statistics != nil {
			t.Error("channels in the failed batch must stay unenriched")
		}
		if got[110].Statistics == nil {
			t.Error("batches after the failed one should still be enriched")
		}
	})

	t.Run("hard pagination failure keeps the previous list", func(t *testing.T) {
		subs := makeSubs(3)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{{Items: subs}},
		}
		service := newTestService(t, api)

		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("seed fetch failed: %v", err)
		}

		service.Invalidate()
		api.pageErr = errors.New("network down")

		if _, err := service.FetchAll(ctx); err == nil {
			t.Fatal("expected pagination failure to surface")
		}

		snap := service.Snapshot()
		if snap.Count != 3 {
			t.Errorf("previously published list must survive a failed fetch, got %d", snap.Count)
		}
		if snap.Err == "" {
			t.Error("snapshot should carry the failure")
		}
	})

	t.Run("serves the cache without network calls", func(t *testing.T) {
		subs := makeSubs(2)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{{Items: subs}},
		}
		service := newTestService(t, api)

		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("first fetch failed: %v", err)
		}

		// Second fetch must be answered from the cache.
		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("cached fetch failed: %v", err)
		}
		if api.pageCalls != 1 {
			t.Errorf("expected a single page request, got %d", api.pageCalls)
		}
	})

	t.Run("refresh bypasses the cache", func(t *testing.T) {
		subs := makeSubs(2)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{
				{Items: subs},
				{Items: subs},
			},
		}
		service := newTestService(t, api)

		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("first fetch failed: %v", err)
		}
		if _, err := service.Refresh(ctx); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}

		if api.pageCalls != 2 {
			t.Errorf("refresh must hit the network, got %d page calls", api.pageCalls)
		}
	})
}

func TestService_Unsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates the cache and drops the row", func(t *testing.T) {
		subs := makeSubs(3)
		api := &mockAPI{
			pages: []*youtube.SubscriptionsPage{
				{Items: subs},
				{Items: subs[1:]},
			},
		}
		service := newTestService(t, api)

		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		if err := service.Unsubscribe(ctx, "sub0"); err != nil {
			t.Fatalf("Unsubscribe failed: %v", err)
		}

		snap := service.Snapshot()
		if snap.Count != 2 {
			t.Errorf("expected 2 subscriptions after unsubscribe, got %d", snap.Count)
		}
		for _, sub := range snap.Subscriptions {
			if sub.ID == "sub0" {
				t.Error("unsubscribed row must be dropped")
			}
		}

		// The next fetch must be a full re-fetch, not a cache hit.
		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("post-unsubscribe fetch failed: %v", err)
		}
		if api.pageCalls != 2 {
			t.Errorf("expected re-fetch after unsubscribe, got %d page calls", api.pageCalls)
		}
	})

	t.Run("a failed unsubscribe changes nothing", func(t *testing.T) {
		subs := makeSubs(2)
		api := &mockAPI{
			pages:    []*youtube.SubscriptionsPage{{Items: subs}},
			unsubErr: errors.New("forbidden"),
		}
		service := newTestService(t, api)

		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		if err := service.Unsubscribe(ctx, "sub0"); err == nil {
			t.Fatal("expected unsubscribe error")
		}

		if service.Snapshot().Count != 2 {
			t.Error("published list must be untouched when the mutation fails")
		}

		// Cache is still valid: no extra page requests.
		if _, err := service.FetchAll(ctx); err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if api.pageCalls != 1 {
			t.Errorf("cache must survive a failed unsubscribe, got %d page calls", api.pageCalls)
		}
	})
}
