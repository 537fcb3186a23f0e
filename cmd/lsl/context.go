package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/fhuszti/lsl-go/internal/config"
	"github.com/fhuszti/lsl-go/internal/history"
	"github.com/fhuszti/lsl-go/internal/pipeline"
	"github.com/fhuszti/lsl-go/internal/transport"
)

type commandContext struct {
	configOnce sync.Once
	config     *config.ClientSettings
	configErr  error

	store   history.Store
	closeFn func() error

	status pipeline.Source
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.ClientSettings, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.LoadClient()
	})
	return c.config, c.configErr
}

// historyStore opens the configured backing on first use.
func (c *commandContext) historyStore(ctx context.Context) (history.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	switch cfg.HistoryBackend {
	case config.HistoryBackendSQLite:
		s, err := history.OpenSQLiteStore(ctx, cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("open upload history: %w", err)
		}
		c.store, c.closeFn = s, s.Close
	default:
		s, err := history.NewFileStore(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("open upload history: %w", err)
		}
		c.store = s
	}
	return c.store, nil
}

// statusSource reports pipeline progress; elapsed time until the backend exposes real status.
func (c *commandContext) statusSource() pipeline.Source {
	if c.status == nil {
		c.status = pipeline.ElapsedSource{}
	}
	return c.status
}

func (c *commandContext) client() (*transport.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return transport.NewClient(cfg.APIBaseURL, nil), nil
}

func (c *commandContext) close() error {
	if c.closeFn == nil {
		return nil
	}
	err := c.closeFn()
	c.closeFn = nil
	return err
}
