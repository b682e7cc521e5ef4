// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with Google using OAuth2 + PKCE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Seconds to wait for the authorization callback",
						Value: 300,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "status",
				Usage: "Check current authentication state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session",
				Action: r.AuthLogout,
			},
		},
	}
}

// subsCommand handles subscription operations
func subsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "subs",
		Aliases: []string{"subscriptions"},
		Usage:   "YouTube subscription operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List subscriptions (cached for 15 minutes)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: title, newest, or subscribers",
						Value: "title",
					},
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Filter channels by title substring",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of channels to print (0 = all)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SubsList,
			},
			{
				Name:   "refresh",
				Usage:  "Invalidate the cache and re-fetch all subscriptions",
				Action: r.SubsRefresh,
			},
			{
				Name:  "unsubscribe",
				Usage: "Unsubscribe from a channel by subscription id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SubsUnsubscribe,
			},
			{
				Name:  "export",
				Usage: "Export subscriptions to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, text, or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.SubsExport,
			},
		},
	}
}

// listsCommand handles named channel list operations
func listsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lists",
		Usage: "Manage named channel lists",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.ListsCreate,
			},
			{
				Name:  "all",
				Usage: "Show every list with its channel count",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListsAll,
			},
			{
				Name:  "show",
				Usage: "Show the channels in a list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ListsShow,
			},
			{
				Name:  "rename",
				Usage: "Rename a list",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
					&cli.StringArg{Name: "new-name"},
				},
				Action: r.ListsRename,
			},
			{
				Name:  "delete",
				Usage: "Delete a list and its memberships",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.ListsDelete,
			},
			{
				Name:  "toggle",
				Usage: "Add a channel to a list, or remove it when present",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "channel",
						Usage:    "Channel id to toggle",
						Required: true,
					},
				},
				Action: r.ListsToggle,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive subscription management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for subscription management",
		Action:  r.TUI,
	}
}
