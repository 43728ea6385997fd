package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/draft"
	"tableflip.dev/walkjournal/pkg/logging"
	"tableflip.dev/walkjournal/pkg/repository"
	"tableflip.dev/walkjournal/pkg/store"
)

// journal is everything a command needs, opened from the user's config.
type journal struct {
	config   *store.FileConfig
	store    *store.Store
	draftDir string
	svc      *app.Service
	logger   *slog.Logger
	closers  []io.Closer
}

// openJournal opens the store and the draft cache.
func openJournal(ctx context.Context) (*journal, error) {
	j, err := openDrafts()
	if err != nil {
		return nil, err
	}
	opts := store.OptionsFor(j.config)
	opts.Logger = j.logger
	s, err := store.Open(ctx, opts)
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("open journal at %s: %w", j.config.BasePath(), err)
	}
	j.store = s
	j.closers = append(j.closers, s)
	j.svc.Repository = repository.New(s, j.logger)
	j.svc.Watcher = s
	return j, nil
}

// openDrafts opens only the draft cache, leaving the store closed so draft
// commands work while another process holds the journal.
func openDrafts() (*journal, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, closer := logging.New(cfg.Log)
	j := &journal{
		config:   cfg,
		draftDir: draft.Dir(cfg.BasePath(), cfg.Name()),
		logger:   logger,
		closers:  []io.Closer{closer},
	}
	drafts, err := draft.New(j.draftDir)
	if err != nil {
		j.Close()
		return nil, err
	}
	j.svc = &app.Service{Drafts: drafts, Logger: logger}
	return j, nil
}

func (j *journal) Close() {
	for i := len(j.closers) - 1; i >= 0; i-- {
		if err := j.closers[i].Close(); err != nil && j.logger != nil {
			j.logger.Warn("close", "err", err)
		}
	}
	j.closers = nil
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
