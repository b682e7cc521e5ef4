package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/subdeck/internal/formatter"
	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
	"github.com/desertthunder/subdeck/internal/ui"
	"github.com/urfave/cli/v3"
)

func parseSortMode(value string) (ui.SortMode, error) {
	switch value {
	case "", "title":
		return ui.SortByTitle, nil
	case "newest":
		return ui.SortByNewest, nil
	case "subscribers":
		return ui.SortBySubscribers, nil
	default:
		return ui.SortByTitle, fmt.Errorf("%w: unknown sort %q (title, newest, subscribers)", shared.ErrInvalidArgument, value)
	}
}

// filterSubscriptions returns subscriptions whose title contains the query,
// case-insensitively.
func filterSubscriptions(subs []models.Subscription, query string) []models.Subscription {
	if query == "" {
		return subs
	}

	query = strings.ToLower(query)
	var matched []models.Subscription
	for _, sub := range subs {
		if strings.Contains(strings.ToLower(sub.Title), query) {
			matched = append(matched, sub)
		}
	}
	return matched
}

// SubsList prints the subscription collection, served from the cache when a
// valid entry exists.
func (r *Runner) SubsList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(ctx); err != nil {
		return err
	}

	subs, err := r.service.FetchAll(ctx)
	if err != nil {
		return err
	}

	mode, err := parseSortMode(cmd.String("sort"))
	if err != nil {
		return err
	}

	subs = filterSubscriptions(ui.SortSubscriptions(subs, mode), cmd.String("search"))

	if limit := cmd.Int("limit"); limit > 0 && len(subs) > int(limit) {
		subs = subs[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(subs, cmd.Bool("pretty"))
	}

	r.writePlain("Subscriptions: %d\n\n", len(subs))
	for i, sub := range subs {
		line := fmt.Sprintf("%3d. %s", i+1, sub.Title)
		if sub.Statistics != nil && sub.Statistics.SubscriberCount != "" {
			line += fmt.Sprintf(" (%s subscribers)", shared.FormatCount(sub.Statistics.SubscriberCount))
		}
		r.writePlain("%s\n", line)
	}

	return nil
}

// SubsRefresh invalidates the cache and re-fetches the full collection.
func (r *Runner) SubsRefresh(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(ctx); err != nil {
		return err
	}

	subs, err := r.service.Refresh(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Refreshed %d subscriptions\n", len(subs))
	return nil
}

// SubsUnsubscribe removes a subscription by its relationship id and
// invalidates the cache.
func (r *Runner) SubsUnsubscribe(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(ctx); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: subscription id is required", shared.ErrMissingArgument)
	}

	if err := r.service.Unsubscribe(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Unsubscribed\n")
	return nil
}

// SubsExport writes the collection to CSV, Markdown, plain text, or JSON.
func (r *Runner) SubsExport(ctx context.Context, cmd *cli.Command) error {
	session, err := r.requireSession(ctx)
	if err != nil {
		return err
	}

	subs, err := r.service.FetchAll(ctx)
	if err != nil {
		return err
	}

	export := &formatter.SubscriptionExport{
		Profile:       session.Profile,
		Subscriptions: subs,
	}

	output := cmd.String("output")

	switch format := cmd.String("format"); format {
	case "csv":
		files, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		for _, f := range files {
			r.writePlain("✓ Wrote %s\n", f)
		}
	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", path)
	case "text", "txt":
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", path)
	case "json":
		data, err := formatter.ToJSON(export)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	default:
		return fmt.Errorf("%w: unknown format %q (csv, markdown, text, json)", shared.ErrInvalidArgument, format)
	}

	return nil
}
