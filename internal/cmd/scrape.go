package cmd

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jimezsa/jamscrape/internal/export"
	"github.com/jimezsa/jamscrape/internal/listing"
	"github.com/jimezsa/jamscrape/internal/scraper"
)

var validate = validator.New()

type ScrapeOptions struct {
	Query           string   `validate:"required"`
	Location        string   `validate:"required"`
	Sites           []string `validate:"min=1,dive,required"`
	MaxJobs         int      `validate:"gte=1"`
	JobType         string
	ExperienceLevel string
	Output          string `validate:"required"`
	Proxies         string
}

// StartupError reports that the scraping collaborator could not be built.
// No output file is written in that case.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("failed to initialize scrapers: %v", e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// reportedError wraps a failure whose status line was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// Reported tells main whether err was already shown to the user.
func Reported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}

func runScrape(ctx *Context, opts ScrapeOptions) (err error) {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	newCollector := ctx.NewCollector
	if newCollector == nil {
		newCollector = DefaultCollector
	}
	collector, err := newCollector(ctx, opts.Proxies)
	if err != nil {
		return &StartupError{Err: err}
	}

	ctx.UI.Infof("Starting job scrape: %s in %s", opts.Query, opts.Location)
	if opts.ExperienceLevel != "" {
		ctx.Logger.Debug().Str("experience_level", opts.ExperienceLevel).Msg("experience level is not applied to the search")
	}

	defer func() {
		if err == nil {
			return
		}
		ctx.UI.Errorf("Error during job scraping: %v", err)
		if writeErr := export.WriteEmpty(opts.Output); writeErr != nil {
			err = errors.Join(err, fmt.Errorf("write %s: %w", opts.Output, writeErr))
		}
		err = &reportedError{err: err}
	}()

	tbl, err := collector.ScrapeJobs(ctx.context(), scraper.Request{
		Sites:         opts.Sites,
		SearchTerm:    opts.Query,
		Location:      opts.Location,
		ResultsWanted: opts.MaxJobs,
		HoursOld:      ctx.Config.HoursOld,
		Country:       ctx.Config.DefaultCountry,
		JobType:       opts.JobType,
		FetchDetails:  ctx.Config.FetchDetails,
	})
	if err != nil {
		return err
	}

	if tbl.Empty() {
		ctx.UI.Warnf("No jobs found")
		return export.WriteEmpty(opts.Output)
	}

	normalizer := listing.Normalizer{DescriptionLimit: ctx.Config.DescriptionLimit}
	listings, err := normalizer.Normalize(tbl)
	if err != nil {
		return err
	}
	if err := export.WriteListings(opts.Output, listings); err != nil {
		return err
	}

	ctx.Logger.Debug().Int("listings", len(listings)).Str("output", opts.Output).Msg("wrote listings")
	ctx.UI.Successf("Successfully scraped %d jobs", len(listings))
	return nil
}
