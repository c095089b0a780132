package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/network"
)

const googleBaseURL = "https://www.google.com"

type GoogleJobs struct {
	client *network.Client
}

func NewGoogleJobs(client *network.Client) *GoogleJobs {
	return &GoogleJobs{client: client}
}

func (g *GoogleJobs) Name() string {
	return SiteGoogleJobs
}

func (g *GoogleJobs) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	doc, err := fetchDocument(ctx, g.client, buildGoogleJobsURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("google: %w", err)
	}

	jobs := parseJSONLDJobs(doc, SiteGoogleJobs)
	jobs = append(jobs, parseGoogleJobsAnchors(doc)...)
	jobs = dedupeJobs(jobs)

	return limitJobs(jobs, params.Limit), nil
}

func buildGoogleJobsURL(params models.SearchParams) string {
	query := strings.TrimSpace(params.Query + " jobs")
	if params.Location != "" {
		query += " near " + params.Location
	}
	if params.Hours > 0 && params.Hours <= 72 {
		query += " since yesterday"
	} else if params.Hours > 0 {
		query += " in the last week"
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("udm", "8")
	values.Set("hl", "en")
	if gl := countryToGoogleGL(params.Country); gl != "" {
		values.Set("gl", gl)
	}
	return googleBaseURL + "/search?" + values.Encode()
}

func parseGoogleJobsAnchors(doc *goquery.Document) []models.Job {
	var jobs []models.Job

	doc.Find("a[href*='htidocid']").Each(func(_ int, s *goquery.Selection) {
		title := cleanText(s.Text())
		link := absoluteURL(googleBaseURL, s.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}
		jobs = append(jobs, models.Job{
			Site:   SiteGoogleJobs,
			Title:  title,
			URL:    link,
			Remote: isRemote(title, ""),
		})
	})

	return jobs
}

// countryToGoogleGL maps a country name or code to Google's gl parameter.
func countryToGoogleGL(country string) string {
	country = strings.ToLower(strings.TrimSpace(country))
	switch country {
	case "":
		return ""
	case "usa", "us", "united states":
		return "us"
	case "uk", "gb", "united kingdom":
		return "gb"
	case "germany", "deutschland":
		return "de"
	case "canada":
		return "ca"
	case "australia":
		return "au"
	default:
		return country
	}
}
