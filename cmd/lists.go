package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/subdeck/internal/lists"
	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// openRepository opens the SQLite database and wraps it in a lists
// repository. The caller owns the returned connection.
func (r *Runner) openRepository() (*lists.Repository, *sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database (run 'subdeck setup database' first): %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return lists.NewRepository(db), db, nil
}

// ListsCreate creates a new named list.
func (r *Runner) ListsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")

	repo, db, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := repo.Create(name)
	if err != nil {
		return err
	}

	r.writePlain("✓ Created list '%s' (%s)\n", list.Name, list.ID)
	return nil
}

// ListsAll prints every list with its channel count.
func (r *Runner) ListsAll(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	all, err := repo.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(all, true)
	}

	if len(all) == 0 {
		r.writePlain("No lists yet. Create one with 'subdeck lists create <name>'\n")
		return nil
	}

	for _, list := range all {
		count, err := repo.ChannelCount(list.ID)
		if err != nil {
			return err
		}
		r.writePlain("%s — %d channels (created %s)\n", list.Name, count, shared.FormatDate(list.CreatedAt))
	}

	return nil
}

// ListsShow prints the channels in a list.
func (r *Runner) ListsShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")

	repo, db, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := repo.GetByName(name)
	if err != nil {
		return err
	}

	channels, err := repo.Channels(list.ID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(channels, true)
	}

	r.writePlain("%s (%d channels)\n\n", list.Name, len(channels))
	for i, ch := range channels {
		r.writePlain("%3d. %s (added %s)\n", i+1, ch.Title, shared.FormatDate(ch.AddedAt))
	}

	return nil
}

// ListsRename renames a list.
func (r *Runner) ListsRename(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	newName := cmd.StringArg("new-name")

	repo, db, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := repo.GetByName(name)
	if err != nil {
		return err
	}

	if err := repo.Rename(list.ID, newName); err != nil {
		return err
	}

	r.writePlain("✓ Renamed '%s' to '%s'\n", name, strings.TrimSpace(newName))
	return nil
}

// ListsDelete deletes a list and its memberships.
func (r *Runner) ListsDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")

	repo, db, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := repo.GetByName(name)
	if err != nil {
		return err
	}

	if err := repo.Delete(list.ID); err != nil {
		return err
	}

	r.writePlain("✓ Deleted list '%s'\n", list.Name)
	return nil
}

// ListsToggle adds a subscribed channel to a list, or removes it when already
// present. The channel metadata is resolved from the subscription collection.
func (r *Runner) ListsToggle(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	channelID := cmd.String("channel")

	if channelID == "" {
		return fmt.Errorf("%w: --channel is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(ctx); err != nil {
		return err
	}

	subs, err := r.service.FetchAll(ctx)
	if err != nil {
		return err
	}

	var channel *models.Subscription
	for i := range subs {
		if subs[i].ChannelID == channelID {
			channel = &subs[i]
			break
		}
	}
	if channel == nil {
		return fmt.Errorf("%w: channel %s is not in your subscriptions", shared.ErrSubscriptionNotFound, channelID)
	}

	repo, db, err := r.openRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := repo.GetByName(name)
	if err != nil {
		return err
	}

	member, err := repo.ToggleChannel(list.ID, models.ListChannel{
		ChannelID:    channel.ChannelID,
		Title:        channel.Title,
		ThumbnailURL: channel.Thumbnails.BestURL(),
	})
	if err != nil {
		return err
	}

	if member {
		r.writePlain("✓ Added %s to '%s'\n", channel.Title, list.Name)
	} else {
		r.writePlain("✓ Removed %s from '%s'\n", channel.Title, list.Name)
	}

	return nil
}
