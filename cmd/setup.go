package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/spotydw/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template when absent and migrates the history database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.logger.Info("config file created", "path", r.configPath)
	}

	dbPath, err := r.config.Database.FilePath()
	if err != nil {
		return err
	}
	r.logger.Info("initializing database", "path", dbPath)

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writePlain("✓ Config: %s\n", r.configPath)
	r.writePlain("✓ Database: %s\n", dbPath)
	return nil
}

// Configure stores Spotify client credentials and, optionally, a SoundCloud OAuth token.
//
// The token comes from --soundcloud-token or is extracted from a browser request saved with --curl-file.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) error {
	clientID := cmd.StringArg("client_id")
	clientSecret := cmd.StringArg("client_secret")
	token := cmd.String("soundcloud-token")
	curlFile := cmd.String("curl-file")

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret are required", shared.ErrMissingArgument)
	}
	if token != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --soundcloud-token and --curl-file", shared.ErrInvalidArgument)
	}

	if curlFile != "" {
		headers, err := shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		if token, err = headers.SoundCloudToken(); err != nil {
			return err
		}
		r.logger.Info("extracted soundcloud token", "file", curlFile)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(r.configPath); err == nil {
		loaded, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return err
		}
		config = loaded
	}

	config.Credentials.Spotify.ClientID = clientID
	config.Credentials.Spotify.ClientSecret = clientSecret
	if token != "" {
		config.Credentials.SoundCloud.OAuthToken = token
	}

	if err := shared.SaveConfig(r.configPath, config); err != nil {
		return err
	}
	r.config.Credentials = config.Credentials

	r.writePlain("✓ Credentials saved to %s\n", r.configPath)
	if token != "" {
		r.writePlain("✓ SoundCloud token configured\n")
	}
	return nil
}
