package cmd

import (
	"context"

	"github.com/jimezsa/jamscrape/internal/config"
	"github.com/jimezsa/jamscrape/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Ctx    context.Context
	UI     *ui.UI
	Config config.Config
	Logger zerolog.Logger

	// NewCollector builds the scraping collaborator. Nil means DefaultCollector.
	NewCollector CollectorFactory
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
