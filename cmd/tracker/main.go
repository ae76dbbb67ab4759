package main

import (
	"context"
	"time"

	"github.com/satinder147/expense-tracker/internal/config"
	"github.com/satinder147/expense-tracker/internal/logger"
	"github.com/satinder147/expense-tracker/internal/mailbox"
	"github.com/satinder147/expense-tracker/internal/notes"
	"github.com/satinder147/expense-tracker/internal/pipeline"
	"github.com/satinder147/expense-tracker/internal/storage"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	var source pipeline.Source
	if cfg.IMAPAddr != "" {
		source = &mailbox.Client{
			Addr:     cfg.IMAPAddr,
			Username: cfg.Username,
			Password: cfg.AppPassword,
			Subject:  cfg.IMAPSubject,
		}
	} else {
		source = &storage.Bucket{Name: cfg.Bucket}
	}
	publisher := notes.NewPublisher(notes.NewClient(cfg.AppPassword), cfg.NotesDBID)

	log.Info().
		Time("period_start", cfg.PeriodStart).
		Str("work_dir", cfg.WorkDir).
		Msg("starting expense tracker run")

	if err := pipeline.New(source, publisher, cfg).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}

	log.Info().Msg("run completed")
}
