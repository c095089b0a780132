package scraper

import (
	"context"
	"errors"

	"github.com/jimezsa/jamscrape/internal/models"
)

var (
	ErrUnknownSite = errors.New("unknown site")
	ErrNoSites     = errors.New("no sites requested")
)

type Scraper interface {
	Name() string
	Search(ctx context.Context, params models.SearchParams) ([]models.Job, error)
}
