// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, moviesCommand, watchlistCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

// setupCommand handles setup operations for configuration and storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize watchlist storage and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// moviesCommand handles catalog browsing.
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: append(jsonFlags(), &cli.BoolFlag{
					Name:  "direct",
					Usage: "Query the catalog directly instead of the search service",
				}),
				Action: r.MoviesSearch,
			},
			{
				Name:   "browse",
				Usage:  "Show the Now Playing, Upcoming and Popular sliders",
				Flags:  jsonFlags(),
				Action: r.MoviesBrowse,
			},
			{
				Name:  "show",
				Usage: "Show a movie's details, cast and similar titles",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  jsonFlags(),
				Action: r.MoviesShow,
			},
			{
				Name:  "trailer",
				Usage: "Print (or open) a movie's trailer link",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the trailer in the system browser",
					},
				},
				Action: r.MoviesTrailer,
			},
		},
	}
}

// watchlistCommand handles the saved movie list.
func watchlistCommand(r *Runner) *cli.Command {
	idArg := func() []cli.Argument {
		return []cli.Argument{&cli.StringArg{Name: "id"}}
	}
	sortFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "Sort order: added, year or rating",
			Value:   "added",
		}
	}

	return &cli.Command{
		Name:    "watchlist",
		Aliases: []string{"wl"},
		Usage:   "Manage your watchlist",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List saved movies",
				Flags:  append(jsonFlags(), sortFlag()),
				Action: r.WatchlistList,
			},
			{
				Name:      "add",
				Usage:     "Add a movie by catalog id",
				Arguments: idArg(),
				Action:    r.WatchlistAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a movie by catalog id",
				Arguments: idArg(),
				Action:    r.WatchlistRemove,
			},
			{
				Name:      "toggle",
				Usage:     "Add the movie if missing, otherwise remove it",
				Arguments: idArg(),
				Action:    r.WatchlistToggle,
			},
			{
				Name:  "export",
				Usage: "Export the watchlist to CSV, Markdown, text or JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Comma separated formats (csv, md, txt, json) or \"all\"",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, or directory when exporting several formats",
					},
					sortFlag(),
				},
				Action: r.WatchlistExport,
			},
		},
	}
}

// serveCommand runs the local search endpoint.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the movie search endpoint used by the search client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie browser",
		Action:  r.TUI,
	}
}
