// Package subscriptions implements the subscription data-acquisition
// pipeline: full-collection pagination, batched statistics enrichment, a
// 15-minute file-backed cache, and explicit invalidation on mutation.
//
// [Service.FetchAll] is the single entry point consumers use; the [Snapshot]
// read model republishes its result to the CLI and TUI. The cache is deleted
// (not merely aged out) after every unsubscribe and forced refresh, so a
// mutation is always followed by a full re-fetch.
package subscriptions
