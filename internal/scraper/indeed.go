package scraper

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/network"
)

type Indeed struct {
	client *network.Client
}

func NewIndeed(client *network.Client) *Indeed {
	return &Indeed{client: client}
}

func (i *Indeed) Name() string {
	return SiteIndeed
}

func (i *Indeed) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	searchURL := buildIndeedURL(params)
	doc, err := fetchDocument(ctx, i.client, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("indeed: %w", err)
	}

	jobs := parseIndeedJobs(doc, params)
	if len(jobs) == 0 {
		jobs = parseJSONLDJobs(doc, SiteIndeed)
	}
	return limitJobs(jobs, params.Limit), nil
}

func parseIndeedJobs(doc *goquery.Document, params models.SearchParams) []models.Job {
	base := baseIndeedURL(params.Country)
	country := strings.ToUpper(countryToGoogleGL(params.Country))

	var jobs []models.Job
	doc.Find("a.tapItem").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h2.jobTitle span").First().Text())
		company := strings.TrimSpace(s.Find("span.companyName").First().Text())
		location := strings.TrimSpace(s.Find("div.companyLocation").First().Text())
		snippet := strings.TrimSpace(s.Find("div.job-snippet").Text())
		posted := strings.TrimSpace(s.Find("span.date").Text())
		salary := cleanText(s.Find("div.salary-snippet-container, div.metadata.salary-snippet-container, span.estimated-salary").First().Text())

		link, _ := s.Attr("href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = base + link
		}

		if title == "" || link == "" {
			return
		}

		job := models.Job{
			Site:        SiteIndeed,
			Title:       title,
			Company:     company,
			Location:    location,
			URL:         link,
			Snippet:     normalizeSnippet(snippet),
			Description: normalizeSnippet(snippet),
			PostedAtRaw: posted,
			Remote:      isRemote(location, snippet),
			JobType:     params.JobType,
		}
		job.City, job.State, _ = splitLocation(location)
		if location != "" {
			job.Country = country
		}
		if comp := parseSalaryText(salary); comp != nil {
			job.Compensation = comp
			job.SalarySource = models.SalarySourceDirect
		}

		jobs = append(jobs, job)
	})
	return jobs
}

func buildIndeedURL(params models.SearchParams) string {
	base := baseIndeedURL(params.Country)
	values := url.Values{}
	values.Set("q", params.Query)
	if params.Location != "" {
		values.Set("l", params.Location)
	}
	if params.JobType != "" {
		values.Set("jt", params.JobType)
	}
	if params.Hours > 0 {
		values.Set("fromage", fmt.Sprintf("%d", hoursToDays(params.Hours)))
	}
	return fmt.Sprintf("%s/jobs?%s", base, values.Encode())
}

func baseIndeedURL(country string) string {
	code := countryToGoogleGL(country)
	switch code {
	case "", "us":
		return "https://www.indeed.com"
	case "gb":
		code = "uk"
	}
	return fmt.Sprintf("https://%s.indeed.com", code)
}

func hoursToDays(hours int) int {
	days := int(math.Ceil(float64(hours) / 24.0))
	if days < 1 {
		days = 1
	}
	return days
}

func normalizeSnippet(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
