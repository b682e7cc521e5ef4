package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/subdeck/internal/models"
)

// subscriptionItem mirrors one element of subscriptions.list.
type subscriptionItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		PublishedAt time.Time         `json:"publishedAt"`
		Thumbnails  models.Thumbnails `json:"thumbnails"`
		ResourceID  struct {
			ChannelID string `json:"channelId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

// SubscriptionsPage holds one page of the user's subscription collection.
type SubscriptionsPage struct {
	Items         []models.Subscription
	NextPageToken string
}

// Subscriptions fetches one page of the authenticated user's subscriptions.
// An empty pageToken requests the first page; the caller follows
// NextPageToken until it is empty.
func (c *Client) Subscriptions(ctx context.Context, pageToken string) (*SubscriptionsPage, error) {
	endpoint := "/subscriptions?part=snippet&mine=true&maxResults=50"
	if pageToken != "" {
		endpoint += "&pageToken=" + url.QueryEscape(pageToken)
	}

	var response struct {
		Items         []subscriptionItem `json:"items"`
		NextPageToken string             `json:"nextPageToken"`
	}

	if err := c.doRequest(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}

	page := &SubscriptionsPage{NextPageToken: response.NextPageToken}
	for _, item := range response.Items {
		page.Items = append(page.Items, models.Subscription{
			ID:          item.ID,
			ChannelID:   item.Snippet.ResourceID.ChannelID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			PublishedAt: item.Snippet.PublishedAt,
			Thumbnails:  item.Snippet.Thumbnails,
		})
	}

	return page, nil
}

// Unsubscribe deletes a subscription by its relationship id (not the
// channel id). Non-2xx is a failure; no retry is attempted.
func (c *Client) Unsubscribe(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return fmt.Errorf("subscription id is required")
	}

	endpoint := "/subscriptions?id=" + url.QueryEscape(subscriptionID)
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil); err != nil {
		return fmt.Errorf("unsubscribe failed: %w", err)
	}

	return nil
}
