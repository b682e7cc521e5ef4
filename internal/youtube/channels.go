package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/subdeck/internal/models"
)

// ChannelDetail is the enrichment payload for one channel: statistics plus
// thumbnails fresher than those on the subscription listing.
type ChannelDetail struct {
	Statistics models.Statistics
	Thumbnails *models.Thumbnails
}

// ChannelDetails fetches statistics and thumbnails for up to [maxBatchIDs]
// channels in a single request. Results are keyed by channel id; ids the API
// does not return are simply absent from the map.
func (c *Client) ChannelDetails(ctx context.Context, channelIDs []string) (map[string]ChannelDetail, error) {
	if len(channelIDs) == 0 {
		return map[string]ChannelDetail{}, nil
	}
	if len(channelIDs) > maxBatchIDs {
		return nil, fmt.Errorf("maximum %d channel IDs allowed, got %d", maxBatchIDs, len(channelIDs))
	}

	endpoint := "/channels?part=snippet,statistics&id=" + url.QueryEscape(strings.Join(channelIDs, ","))

	var response struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Thumbnails *models.Thumbnails `json:"thumbnails"`
			} `json:"snippet"`
			Statistics models.Statistics `json:"statistics"`
		} `json:"items"`
	}

	if err := c.doRequest(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}

	details := make(map[string]ChannelDetail, len(response.Items))
	for _, item := range response.Items {
		details[item.ID] = ChannelDetail{
			Statistics: item.Statistics,
			Thumbnails: item.Snippet.Thumbnails,
		}
	}

	return details, nil
}

// ChunkIDs partitions ids into batches of at most [maxBatchIDs], preserving
// order.
func ChunkIDs(ids []string) [][]string {
	var chunks [][]string
	for i := 0; i < len(ids); i += maxBatchIDs {
		end := i + maxBatchIDs
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}
