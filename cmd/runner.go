package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playlift/internal/services"
	"github.com/desertthunder/playlift/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer

	// source and destination override per-command service construction.
	// Commands build fresh handles when these are nil; tests inject stubs.
	source      services.SourceService
	destination services.DestinationService

	configLoaded bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Source      services.SourceService
	Destination services.DestinationService
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	configLoaded := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		logger:       opts.Logger,
		output:       opts.Output,
		source:       opts.Source,
		destination:  opts.Destination,
		configLoaded: configLoaded,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, transferCommand, serveCommand, spotifyCommand, ytmusicCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// prepare applies the global flags before a command action runs: --verbose
// raises the log level and --config names the configuration file. A Runner
// constructed with an explicit Config keeps it.
func (r *Runner) prepare(cmd *cli.Command) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if r.configLoaded {
		return
	}
	r.configLoaded = true

	path := cmd.String("config")
	if path == "" {
		path = "config.toml"
	}
	r.configPath = path

	if _, err := os.Stat(path); err != nil {
		r.logger.Debug("no config file, using defaults", "path", path)
		return
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return
	}
	r.config = config
}

// spotifyCredentials resolves Spotify client credentials, preferring command
// flags, then the config file, then the environment.
func (r *Runner) spotifyCredentials(cmd *cli.Command) map[string]string {
	clientID := cmd.String("client-id")
	if clientID == "" {
		clientID = r.config.Credentials.Spotify.ClientID
	}
	if clientID == "" {
		clientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}

	clientSecret := cmd.String("client-secret")
	if clientSecret == "" {
		clientSecret = r.config.Credentials.Spotify.ClientSecret
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}

	return map[string]string{
		"client_id":     clientID,
		"client_secret": clientSecret,
	}
}

// headersPath resolves the YouTube Music headers file path, preferring the
// --headers flag, then the config file, then the environment.
func (r *Runner) headersPath(cmd *cli.Command) string {
	if path := cmd.String("headers"); path != "" {
		return path
	}
	return r.configuredHeadersPath()
}

// configuredHeadersPath resolves the headers path for commands that do not
// take a --headers flag.
func (r *Runner) configuredHeadersPath() string {
	if path := r.config.Credentials.YouTube.HeadersPath; path != "" {
		return path
	}
	return os.Getenv("YTM_HEADERS_PATH")
}

// resolveSource returns the injected source service or builds a Spotify
// client, along with the credentials its Authenticate call expects.
func (r *Runner) resolveSource(cmd *cli.Command) (services.SourceService, map[string]string, error) {
	creds := r.spotifyCredentials(cmd)
	if r.source != nil {
		return r.source, creds, nil
	}

	source, err := services.NewSpotifyService(creds)
	if err != nil {
		return nil, nil, err
	}
	return source, creds, nil
}

// resolveDestination returns the injected destination service or builds a
// YouTube Music client, along with its credentials.
func (r *Runner) resolveDestination(cmd *cli.Command) (services.DestinationService, map[string]string) {
	creds := map[string]string{"headers_path": r.headersPath(cmd)}
	if r.destination != nil {
		return r.destination, creds
	}
	return services.NewYouTubeService(nil), creds
}

// openDatabase opens the configured SQLite cache, applying pool settings and
// any pending migrations. The caller owns the returned handle.
func (r *Runner) openDatabase() (*sql.DB, error) {
	path := r.config.Database.Path
	if path == "" {
		return nil, fmt.Errorf("%w: database path not configured", shared.ErrMissingConfig)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
