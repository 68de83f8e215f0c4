// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand writes the default config and prepares the history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file if missing and run database migrations",
		Action: r.Setup,
	}
}

// configCommand persists provider credentials
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Save Spotify app credentials and the SoundCloud token",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "client_id"},
			&cli.StringArg{Name: "client_secret"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "soundcloud-token",
				Usage: "SoundCloud OAuth token",
			},
			&cli.StringFlag{
				Name:  "curl-file",
				Usage: "File holding a SoundCloud request copied as cURL, used to extract the OAuth token",
			},
		},
		Action: r.Configure,
	}
}

// downloadCommand resolves a URL and downloads every track it names
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Download a Spotify track, album or playlist, or a SoundCloud track or set",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (overrides download.output_dir)",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent jobs for collections, 0 uses the number of CPUs",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Audio format requested from yt-dlp",
			},
			&cli.StringFlag{
				Name:  "tagger",
				Usage: "Metadata writer: ffmpeg or id3",
			},
			&cli.BoolFlag{
				Name:  "playlist",
				Usage: "Write an M3U playlist next to a collection's files",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a CSV report of the batch to this path",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the batch manifest as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Show an interactive progress view",
			},
		},
		Action: r.Download,
	}
}

// searchCommand runs a candidate search without downloading
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search YouTube the way download does and list the ranked candidates",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "duration",
				Usage: "Reference duration in milliseconds; marks the candidate download would pick",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// historyCommand lists recorded batches and their downloads
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent download batches",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of batches to list",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "batch",
				Usage: "Show the downloads of one batch",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.History,
	}
}

// inspectCommand reads back the tags of a downloaded file
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show the ID3 tags embedded in an MP3 file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Inspect,
	}
}
