package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotydw/internal/media"
	"github.com/desertthunder/spotydw/internal/shared"
	"github.com/urfave/cli/v3"
)

// Endpoints overrides the remote services the runner talks to. Empty fields use the public hosts.
type Endpoints struct {
	SpotifyAPI   string
	SpotifyToken string
	SoundCloud   string
	YouTube      string
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	endpoints  Endpoints
	httpClient *http.Client
	logger     *log.Logger
	fixedLog   bool
	logOutput  io.Writer
	output     io.Writer
	lookupEnv  func(string) (string, bool)
	downloader media.Downloader
	tagger     media.Tagger
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Endpoints  Endpoints
	HTTPClient *http.Client
	// Logger, when set, is used as is instead of one built from the [log] section.
	Logger    *log.Logger
	LogOutput io.Writer
	Output    io.Writer
	LookupEnv func(string) (string, bool)
	// Downloader and Tagger replace the yt-dlp and tagger subprocesses.
	Downloader media.Downloader
	Tagger     media.Tagger
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	fixedLog := opts.Logger != nil
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(opts.LogOutput)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	return &Runner{
		config:     opts.Config,
		endpoints:  opts.Endpoints,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		fixedLog:   fixedLog,
		logOutput:  opts.LogOutput,
		output:     opts.Output,
		lookupEnv:  opts.LookupEnv,
		downloader: opts.Downloader,
		tagger:     opts.Tagger,
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    shared.AppName,
		Usage:   "Download Spotify and SoundCloud tracks through matching YouTube uploads",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.load,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, configCommand, downloadCommand, searchCommand, historyCommand, inspectCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// load reads the config file named by --config (or the default location), applies environment
// overrides and rebuilds the logger from its [log] section.
//
// A missing file is not an error: the embedded defaults are used and `setup` can create it later.
func (r *Runner) load(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path == "" {
		p, err := shared.DefaultConfigPath()
		if err != nil {
			return ctx, err
		}
		path = p
	}
	r.configPath = path

	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}
	r.config.ApplyEnv(r.lookupEnv)

	if !r.fixedLog {
		r.logger = shared.NewFileLogger(r.logOutput, r.config.Log)
	}
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.logger.Debug("configuration loaded", "path", path)
	return ctx, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return r.writeRaw(output)
}

func (r *Runner) writeRaw(output []byte) error {
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
