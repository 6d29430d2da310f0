package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/config"
	"github.com/amonks/kanban/internal/paths"
	"github.com/amonks/kanban/internal/slot"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// closeTimeout bounds the final flush when a command exits.
const closeTimeout = 30 * time.Second

// session is an open store plus everything needed to shut it down.
type session struct {
	store  *board.Store
	logger *log.Logger
	close  func() error
}

// loadConfig reads --config when given, otherwise the merged global and
// project config for the working directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

func newLogger(cfg *config.Config, out io.Writer) (*log.Logger, error) {
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return nil, err
	}
	if dbg, err := strconv.ParseBool(os.Getenv("KANBAN_DEBUG")); err == nil && dbg {
		level = log.DebugLevel
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

// openSession loads config and opens the configured store. Callers must
// call close, which flushes pending writes and reports a failed save.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Storage.Timeout()
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, closeSlot, err := slot.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.WithFields(log.Fields{
		"slot": cfg.Storage.Backend,
		"key":  cfg.Storage.Key,
	}).Debug("opened slot")

	store, err := board.Open(ctx, s, board.Options{
		Logger:       logger,
		WriteTimeout: timeout,
	})
	if err != nil {
		closeSlot()
		return nil, err
	}

	return &session{
		store:  store,
		logger: logger,
		close: func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			storeErr := store.Close(closeCtx)
			if storeErr != nil {
				storeErr = fmt.Errorf("save boards: %w", storeErr)
			}
			return errors.Join(storeErr, closeSlot())
		},
	}, nil
}

// withSession runs fn against an open store and closes it afterwards,
// returning the first error.
func withSession(cmd *cobra.Command, fn func(*session) error) (err error) {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sess.close(); err == nil {
			err = closeErr
		}
	}()
	return fn(sess)
}
