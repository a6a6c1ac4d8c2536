package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/playlift/internal/formatter"
	"github.com/desertthunder/playlift/internal/repositories"
	"github.com/desertthunder/playlift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Transfer runs a full Spotify to YouTube Music playlist transfer.
//
// Progress streams to the logger so stdout stays clean for the report, which
// renders as a table or, with --json, as the raw report document.
func (r *Runner) Transfer(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	locator := cmd.String("url")

	source, sourceCreds, err := r.resolveSource(cmd)
	if err != nil {
		return err
	}
	destination, destCreds := r.resolveDestination(cmd)

	opts := tasks.TransferOptions{
		Workers:     cmd.Int("workers"),
		SearchRate:  r.config.Transfer.SearchRate,
		SearchLimit: r.config.Transfer.SearchLimit,
	}
	if opts.Workers <= 0 {
		opts.Workers = r.config.Transfer.Workers
	}

	engine := tasks.NewTransferEngine(source, destination, opts)
	engine.SetLogger(r.logger)

	// Matched tracks are recorded in the cache when setup has created it.
	// The transfer itself never creates the database.
	if path := r.config.Database.Path; path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if db, dbErr := r.openDatabase(); dbErr != nil {
				r.logger.Warn("cache unavailable", "error", dbErr)
			} else {
				defer db.Close()
				engine.SetTrackCache(repositories.NewTrackCacheAdapter(repositories.NewTrackRepository(db)))
			}
		}
	}

	r.logger.Info("starting transfer", "locator", locator)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if update.Phase == tasks.SearchTracks {
				r.logger.Debug(update.Message)
				continue
			}
			r.logger.Info(update.Message)
		}
	}()

	report, err := engine.Transfer(ctx, locator, sourceCreds, destCreds, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(report, true); err != nil {
			return err
		}
	} else if err := r.writePlain("%s", formatter.RenderTransferReport(report)); err != nil {
		return err
	}

	if path := cmd.String("save"); path != "" {
		saved, err := formatter.SaveReportJSON(report, path)
		if err != nil {
			return err
		}
		r.logger.Info("report saved", "file", saved)
	}

	if path := cmd.String("csv"); path != "" {
		data, err := formatter.FailedTracksCSV(report)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write failed tracks CSV: %w", err)
		}
		r.logger.Info("failed tracks saved", "file", path)
	}

	return nil
}
