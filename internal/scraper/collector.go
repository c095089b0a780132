package scraper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/table"
	"github.com/rs/zerolog"
)

// Request is the input of a collection run.
type Request struct {
	Sites         []string
	SearchTerm    string
	Location      string
	ResultsWanted int
	HoursOld      int
	Country       string
	JobType       string
	FetchDetails  bool
}

func (r Request) params() models.SearchParams {
	return models.SearchParams{
		Query:        r.SearchTerm,
		Location:     r.Location,
		Country:      r.Country,
		Limit:        r.ResultsWanted,
		JobType:      searchJobType(r.JobType),
		Hours:        r.HoursOld,
		FetchDetails: r.FetchDetails,
	}
}

// Collector runs the selected site scrapers and flattens their output into
// a result table.
type Collector struct {
	registry map[string]Scraper
	logger   zerolog.Logger
}

func NewCollector(registry map[string]Scraper, logger zerolog.Logger) *Collector {
	return &Collector{registry: registry, logger: logger}
}

// ScrapeJobs queries every requested site concurrently. ResultsWanted caps
// each site separately. Rows are ordered by site. Failing sites are logged
// and skipped; the call fails only when every site fails.
func (c *Collector) ScrapeJobs(ctx context.Context, req Request) (*table.Table, error) {
	selected, err := SelectScrapers(c.registry, req.Sites)
	if err != nil {
		return nil, err
	}

	jobs, failures := runScrapers(ctx, selected, req.params())
	for _, failure := range failures {
		c.logger.Warn().Str("site", failure.site).Err(failure.err).Msg("scraper failed")
	}
	if len(failures) == len(selected) {
		errs := make([]error, 0, len(failures))
		for _, failure := range failures {
			errs = append(errs, fmt.Errorf("%s: %w", failure.site, failure.err))
		}
		return nil, errors.Join(errs...)
	}

	c.logger.Debug().Int("rows", len(jobs)).Int("sites", len(selected)).Msg("collection finished")
	return table.FromJobs(jobs), nil
}

type scraperResult struct {
	site string
	jobs []models.Job
	err  error
}

type scraperFailure struct {
	site string
	err  error
}

func runScrapers(ctx context.Context, scrapers []Scraper, params models.SearchParams) ([]models.Job, []scraperFailure) {
	var (
		wg      sync.WaitGroup
		results = make(chan scraperResult, len(scrapers))
	)

	for _, sc := range scrapers {
		wg.Add(1)
		go func(sc Scraper) {
			defer wg.Done()
			jobs, err := sc.Search(ctx, params)
			results <- scraperResult{site: sc.Name(), jobs: jobs, err: err}
		}(sc)
	}

	wg.Wait()
	close(results)

	var (
		all      []models.Job
		failures []scraperFailure
	)
	for res := range results {
		if res.err != nil {
			failures = append(failures, scraperFailure{site: res.site, err: res.err})
			continue
		}
		all = append(all, limitJobs(res.jobs, params.Limit)...)
	}

	sortJobsBySite(all)
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].site < failures[j].site
	})
	return all, failures
}

func sortJobsBySite(jobs []models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return strings.ToLower(jobs[i].Site) < strings.ToLower(jobs[j].Site)
	})
}
