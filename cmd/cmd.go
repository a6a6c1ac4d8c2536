// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// spotifyCredentialFlags are accepted by every command that talks to the
// Spotify API. Values fall back to the config file, then the environment.
func spotifyCredentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "client-id",
			Usage: "Spotify client ID (overrides config and SPOTIFY_CLIENT_ID)",
		},
		&cli.StringFlag{
			Name:  "client-secret",
			Usage: "Spotify client secret (overrides config and SPOTIFY_CLIENT_SECRET)",
		},
	}
}

// headersFlag names the YouTube Music headers file for commands that talk to
// the YouTube Music API.
func headersFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "headers",
		Usage: "Path to YouTube Music headers JSON (overrides config and YTM_HEADERS_PATH)",
	}
}

// playlistLocatorFlags accept a playlist either as a full URL or a bare ID.
func playlistLocatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Spotify playlist URL",
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "Spotify playlist ID",
		},
	}
}

// setupCommand initializes the config file and cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create the config file, initialize the database, and run migrations",
		Action: r.Setup,
	}
}

// transferCommand runs a full playlist transfer.
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer a Spotify playlist to YouTube Music",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "Spotify playlist URL",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent search workers (default from config)",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "Write the transfer report JSON to this path",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Write failed tracks CSV to this path",
			},
			headersFlag(),
		}, spotifyCredentialFlags()...),
		Action: r.Transfer,
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP transfer API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (default from config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// spotifyCommand handles Spotify operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify playlist operations",
		Commands: []*cli.Command{
			{
				Name:   "playlist",
				Usage:  "Show playlist metadata",
				Flags:  append(playlistLocatorFlags(), spotifyCredentialFlags()...),
				Action: r.SpotifyPlaylist,
			},
			{
				Name:  "export",
				Usage: "Export a playlist's full track listing",
				Flags: append(append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (derived from the playlist ID when empty)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, or text",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:  "cover",
						Usage: "Cover image URL for markdown exports",
					},
				}, playlistLocatorFlags()...), spotifyCredentialFlags()...),
				Action: r.SpotifyExport,
			},
		},
	}
}

// ytmusicCommand handles YouTube Music operations
func ytmusicCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "ytmusic",
		Aliases: []string{"ytm", "yt"},
		Usage:   "YouTube Music operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search YouTube Music for tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 5,
					},
					headersFlag(),
				},
				Action: r.YTMusicSearch,
			},
			{
				Name:  "create",
				Usage: "Create a playlist on YouTube Music",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Playlist description",
					},
					&cli.BoolFlag{
						Name:  "public",
						Usage: "Make the playlist public",
					},
					headersFlag(),
				},
				Action: r.YTMusicCreate,
			},
			{
				Name:  "headers",
				Usage: "Build a headers file from a browser cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to a file containing the cURL command",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the headers JSON (default: headers path from config)",
					},
				},
				Action: r.YTMusicHeaders,
				Commands: []*cli.Command{
					{
						Name:  "test",
						Usage: "Validate a headers file against the required fields",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "file",
								Usage: "Headers file to validate (default: headers path from config)",
							},
						},
						Action: r.YTMusicHeadersTest,
					},
				},
			},
		},
	}
}

// cacheCommand handles local snapshot operations
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Snapshot and inspect the local library cache",
		Commands: []*cli.Command{
			{
				Name:   "playlist",
				Usage:  "Snapshot a Spotify playlist and its tracks into the cache",
				Flags:  append(playlistLocatorFlags(), spotifyCredentialFlags()...),
				Action: r.CachePlaylist,
			},
			{
				Name:  "playlists",
				Usage: "List cached playlists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "service",
						Usage: "Filter by originating service",
					},
				},
				Action: r.CachePlaylists,
			},
			{
				Name:  "tracks",
				Usage: "List cached tracks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "service",
						Usage: "Filter by originating service",
					},
				},
				Action: r.CacheTracks,
			},
		},
	}
}
