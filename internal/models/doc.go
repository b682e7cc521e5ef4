// Package models defines domain entities shared across the subdeck packages.
//
// The package contains two categories of types:
//
// 1. API-shaped records: structs mirroring the YouTube Data API responses the
// fetch pipeline consumes
//   - [Subscription] : one followed channel, enriched in place with [Statistics]
//   - [Thumbnails] / [Thumbnail] : channel imagery at multiple resolutions
//   - [UserProfile] : the signed-in user's Google profile
//
// 2. Persistent entities: SQLite-backed rows managed by internal/lists
//   - [ChannelList] : a user-defined named list of channels
//   - [ListChannel] : a channel's membership within a list
//
// Subscription records are replaced wholesale on every successful fetch; the
// enrichment merge is the only field-level update they receive.
package models
