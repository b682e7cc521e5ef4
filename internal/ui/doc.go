// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow over the subscription dashboard:
//  1. [SubscriptionListView] : Browse, filter (/), sort (s), and refresh (r) the collection
//  2. [ConfirmUnsubscribeView] : Confirm removal of the selected channel
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// All data access flows through the subscriptions pipeline, so the cache and invalidation rules apply identically in the TUI and the CLI.
//
// Keyboard navigation uses vim-style bindings (j/k, d, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
