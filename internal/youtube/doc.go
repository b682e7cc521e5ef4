// Package youtube implements the thin authenticated client for the three
// YouTube Data API surfaces the dashboard consumes:
//
//   - subscriptions.list, paginated via pageToken ([Client.Subscriptions])
//   - channels.list, batched ≤50 ids per call ([Client.ChannelDetails])
//   - subscriptions.delete ([Client.Unsubscribe])
//
// The client holds the bearer token and a shared rate limiter; caching,
// pagination-until-exhausted, and enrichment merging live one layer up in
// internal/subscriptions.
package youtube
