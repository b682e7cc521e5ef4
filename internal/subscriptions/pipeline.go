package subscriptions

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
	"github.com/desertthunder/subdeck/internal/youtube"
)

// API is the slice of the YouTube client the pipeline consumes.
type API interface {
	Subscriptions(ctx context.Context, pageToken string) (*youtube.SubscriptionsPage, error)
	ChannelDetails(ctx context.Context, channelIDs []string) (map[string]youtube.ChannelDetail, error)
	Unsubscribe(ctx context.Context, subscriptionID string) error
}

// Snapshot is the read model published to consumers.
type Snapshot struct {
	Subscriptions []models.Subscription
	Loading       bool
	Err           string
	Count         int
}

// Service is the subscription fetch pipeline: paginated collection fetch,
// batched enrichment, a time-boxed cache, and explicit invalidation on
// mutation. It publishes its result as a read model; it never partially
// replaces a previously published list on a hard failure.
type Service struct {
	api    API
	cache  *Cache
	logger *log.Logger

	mu      sync.Mutex
	subs    []models.Subscription
	loading bool
	err     string
}

// NewService creates the fetch pipeline over the given API client and cache.
func NewService(api API, cache *Cache, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{api: api, cache: cache, logger: logger}
}

// Snapshot returns the current read model.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Subscriptions: s.subs,
		Loading:       s.loading,
		Err:           s.err,
		Count:         len(s.subs),
	}
}

func (s *Service) publish(subs []models.Subscription) {
	s.mu.Lock()
	s.subs = subs
	s.loading = false
	s.err = ""
	s.mu.Unlock()
}

func (s *Service) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = err.Error()
	s.mu.Unlock()
}

// FetchAll returns the complete enriched subscription collection.
//
// A valid cache entry is returned without any network call. On a miss the
// pipeline pages through the collection sequentially, enriches channel
// statistics in batches of at most 50 ids (failed batches are skipped;
// missing statistics degrade to absent rather than failing the fetch),
// merges keyed by channel id, caches the result, and publishes it.
func (s *Service) FetchAll(ctx context.Context) ([]models.Subscription, error) {
	if cached, ok := s.cache.Get(); ok {
		s.publish(cached)
		return cached, nil
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	all, err := s.fetchPages(ctx)
	if err != nil {
		// Hard failure: leave the previously published list untouched.
		s.fail(err)
		return nil, err
	}

	merged := s.enrich(ctx, all)

	if err := s.cache.Put(merged); err != nil {
		s.logger.Warn("failed to write subscription cache", "error", err)
	}

	s.publish(merged)
	return merged, nil
}

// fetchPages follows the nextPageToken cursor until exhausted. Pagination is
// strictly sequential; any non-success status aborts the entire fetch.
func (s *Service) fetchPages(ctx context.Context) ([]models.Subscription, error) {
	var all []models.Subscription
	pageToken := ""

	for {
		page, err := s.api.Subscriptions(ctx, pageToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		all = append(all, page.Items...)

		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

// enrich attaches channel statistics and fresher thumbnails. The merge is
// keyed by channel id, so batch completion order cannot change the result.
func (s *Service) enrich(ctx context.Context, subs []models.Subscription) []models.Subscription {
	details := make(map[string]youtube.ChannelDetail)

	for _, chunk := range youtube.ChunkIDs(distinctChannelIDs(subs)) {
		batch, err := s.api.ChannelDetails(ctx, chunk)
		if err != nil {
			s.logger.Warn("enrichment batch failed, skipping", "ids", len(chunk), "error", err)
			continue
		}
		for id, detail := range batch {
			details[id] = detail
		}
	}

	merged := make([]models.Subscription, len(subs))
	for i, sub := range subs {
		detail, ok := details[sub.ChannelID]
		if ok {
			if detail.Thumbnails != nil {
				// Channels API thumbnails are fresher than the
				// subscription-list ones.
				sub.Thumbnails = *detail.Thumbnails
			}
			// Hidden counters come back as an empty statistics object;
			// those rows stay unenriched rather than carrying zeroes.
			if detail.Statistics != (models.Statistics{}) {
				stats := detail.Statistics
				sub.Statistics = &stats
			}
		}
		merged[i] = sub
	}

	return merged
}

// distinctChannelIDs returns the channel ids referenced by subs, first
// occurrence order preserved.
func distinctChannelIDs(subs []models.Subscription) []string {
	seen := make(map[string]bool, len(subs))
	var ids []string
	for _, sub := range subs {
		if sub.ChannelID == "" || seen[sub.ChannelID] {
			continue
		}
		seen[sub.ChannelID] = true
		ids = append(ids, sub.ChannelID)
	}
	return ids
}

// Invalidate deletes the cache entry so the next FetchAll performs a full
// network re-fetch.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

// Refresh invalidates the cache and re-runs the full pipeline.
func (s *Service) Refresh(ctx context.Context) ([]models.Subscription, error) {
	s.Invalidate()
	return s.FetchAll(ctx)
}

// Unsubscribe removes a subscription by relationship id. On success the
// cache is invalidated (guaranteeing the next fetch is a miss) and the
// published list drops the row; on failure both are left untouched.
func (s *Service) Unsubscribe(ctx context.Context, subscriptionID string) error {
	if err := s.api.Unsubscribe(ctx, subscriptionID); err != nil {
		return err
	}

	s.cache.Invalidate()

	s.mu.Lock()
	kept := s.subs[:0:0]
	for _, sub := range s.subs {
		if sub.ID != subscriptionID {
			kept = append(kept, sub)
		}
	}
	s.subs = kept
	s.mu.Unlock()

	return nil
}
