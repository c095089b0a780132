package scraper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jimezsa/jamscrape/internal/network"
)

const (
	SiteLinkedIn     = "linkedin"
	SiteIndeed       = "indeed"
	SiteGlassdoor    = "glassdoor"
	SiteZipRecruiter = "ziprecruiter"
	SiteGoogleJobs   = "google"
	SiteStepstone    = "stepstone"
)

// Registry builds one scraper per supported site. Each scraper gets its own
// client so cookie jars and proxy state are not shared across boards.
func Registry(opts network.Options) (map[string]Scraper, error) {
	constructors := map[string]func(*network.Client) Scraper{
		SiteLinkedIn:     func(c *network.Client) Scraper { return NewLinkedIn(c) },
		SiteIndeed:       func(c *network.Client) Scraper { return NewIndeed(c) },
		SiteGlassdoor:    func(c *network.Client) Scraper { return NewGlassdoor(c) },
		SiteZipRecruiter: func(c *network.Client) Scraper { return NewZipRecruiter(c) },
		SiteGoogleJobs:   func(c *network.Client) Scraper { return NewGoogleJobs(c) },
		SiteStepstone:    func(c *network.Client) Scraper { return NewStepstone(c) },
	}

	registry := make(map[string]Scraper, len(constructors))
	for site, build := range constructors {
		client, err := network.NewClient(opts)
		if err != nil {
			return nil, fmt.Errorf("%s client: %w", site, err)
		}
		registry[site] = build(client)
	}
	return registry, nil
}

// SupportedSites lists registry keys in sorted order.
func SupportedSites(registry map[string]Scraper) []string {
	sites := make([]string, 0, len(registry))
	for site := range registry {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites
}

func NormalizeSites(sites []string) []string {
	out := make([]string, 0, len(sites))
	seen := make(map[string]struct{}, len(sites))
	for _, site := range sites {
		site = strings.ToLower(strings.TrimSpace(site))
		if site == "" {
			continue
		}
		site = strings.TrimPrefix(site, "www.")
		site = expandAlias(site)
		if _, ok := seen[site]; ok {
			continue
		}
		seen[site] = struct{}{}
		out = append(out, site)
	}
	return out
}

func expandAlias(site string) string {
	switch site {
	case "zip", "zip-recruiter", "zip_recruiter":
		return SiteZipRecruiter
	case "stepstone.de", "stepstone-de":
		return SiteStepstone
	case "google_jobs", "google-jobs", "googlejobs":
		return SiteGoogleJobs
	case "linkedin.com", "indeed.com", "glassdoor.com", "ziprecruiter.com":
		return strings.TrimSuffix(site, ".com")
	default:
		return site
	}
}

// SelectScrapers resolves requested site names against registry. "all"
// selects every registered scraper.
func SelectScrapers(registry map[string]Scraper, sites []string) ([]Scraper, error) {
	requested := NormalizeSites(sites)
	if len(requested) == 0 {
		return nil, ErrNoSites
	}
	if len(requested) == 1 && requested[0] == "all" {
		requested = SupportedSites(registry)
	}

	selected := make([]Scraper, 0, len(requested))
	for _, site := range requested {
		sc, ok := registry[site]
		if !ok {
			return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownSite, site, strings.Join(SupportedSites(registry), ", "))
		}
		selected = append(selected, sc)
	}
	return selected, nil
}
