// package models defines the data model for the subscription dashboard
package models

import "time"

// Thumbnail is a single channel image resource at one resolution.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Thumbnails holds the resolutions YouTube returns for a channel.
type Thumbnails struct {
	Default Thumbnail  `json:"default"`
	Medium  *Thumbnail `json:"medium,omitempty"`
	High    Thumbnail  `json:"high"`
}

// BestURL returns the highest-resolution thumbnail URL available.
func (t Thumbnails) BestURL() string {
	if t.High.URL != "" {
		return t.High.URL
	}
	if t.Medium != nil && t.Medium.URL != "" {
		return t.Medium.URL
	}
	return t.Default.URL
}

// Statistics holds channel counters from the channels.list enrichment call.
// Counts are decimal strings on the wire.
type Statistics struct {
	SubscriberCount string `json:"subscriberCount,omitempty"`
	VideoCount      string `json:"videoCount,omitempty"`
	ViewCount       string `json:"viewCount,omitempty"`
}

// Subscription represents one followed channel as seen by the current user.
//
// ID is the subscription relationship identifier (used for unsubscribe),
// distinct from ChannelID. Statistics is nil until enrichment completes;
// a failed enrichment batch leaves it nil.
type Subscription struct {
	ID          string      `json:"id"`
	ChannelID   string      `json:"channelId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	PublishedAt time.Time   `json:"publishedAt"`
	Thumbnails  Thumbnails  `json:"thumbnails"`
	Statistics  *Statistics `json:"statistics,omitempty"`
}

// UserProfile is the authenticated user's profile from the userinfo endpoint.
type UserProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Locale  string `json:"locale"`
}

// ChannelList is a user-defined named list of channels stored locally.
type ChannelList struct {
	ID        string
	Sequence  int
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListChannel is a channel's membership entry within a ChannelList.
type ListChannel struct {
	ListID       string
	ChannelID    string
	Title        string
	ThumbnailURL string
	AddedAt      time.Time
}
