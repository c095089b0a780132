package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/network"
)

var glassdoorAgePattern = regexp.MustCompile(`^(\d+)\s*([hd])\+?$`)

// Glassdoor scrapes the public search page. Cards are read from both the
// current list markup and the older react listing.
type Glassdoor struct {
	client *network.Client
	now    func() time.Time
}

func NewGlassdoor(client *network.Client) *Glassdoor {
	return &Glassdoor{client: client, now: time.Now}
}

func (g *Glassdoor) Name() string {
	return SiteGlassdoor
}

func (g *Glassdoor) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	doc, err := fetchDocument(ctx, g.client, buildGlassdoorURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("glassdoor: %w", err)
	}

	base := glassdoorBaseURL(params.Country)
	jobs := parseJSONLDJobs(doc, SiteGlassdoor)
	jobs = append(jobs, parseGlassdoorCards(doc, base, g.now())...)
	return limitJobs(dedupeJobs(jobs), params.Limit), nil
}

func glassdoorBaseURL(country string) string {
	switch countryToGoogleGL(country) {
	case "gb":
		return "https://www.glassdoor.co.uk"
	case "de":
		return "https://www.glassdoor.de"
	case "ca":
		return "https://www.glassdoor.ca"
	case "au":
		return "https://www.glassdoor.com.au"
	default:
		return "https://www.glassdoor.com"
	}
}

func buildGlassdoorURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("sc.keyword", params.Query)
	if params.Location != "" {
		values.Set("locKeyword", params.Location)
	}
	if params.JobType != "" {
		values.Set("jobType", params.JobType)
	}
	if params.Hours > 0 {
		values.Set("fromAge", strconv.Itoa(hoursToDays(params.Hours)))
	}
	return glassdoorBaseURL(params.Country) + "/Job/jobs.htm?" + values.Encode()
}

func parseGlassdoorCards(doc *goquery.Document, base string, now time.Time) []models.Job {
	var jobs []models.Job

	doc.Find("li[data-test='jobListing'], .react-job-listing").Each(func(_ int, card *goquery.Selection) {
		anchor := card.Find("a[data-test='job-title'], a.jobLink").First()
		title := cleanText(anchor.Text())
		link := absoluteURL(base, anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}

		location := firstText(card, "[data-test='emp-location']", ".jobLocation")
		job := models.Job{
			Site:     SiteGlassdoor,
			Title:    title,
			Company:  firstText(card, "[class*='EmployerProfile_compactEmployerName']", ".jobEmployerName", ".jobEmpolyerName"),
			Location: location,
			URL:      stripQuery(link),
			Remote:   isRemote(location, ""),
		}
		job.City, job.State, job.Country = splitLocation(location)

		if age := firstText(card, "[data-test='job-age']"); age != "" {
			job.PostedAtRaw = age
			if posted, ok := glassdoorPostedAt(age, now); ok {
				job.PostedAt = posted
			}
		}
		if comp := parseSalaryText(firstText(card, "[data-test='detailSalary']", ".salarySnippet")); comp != nil {
			job.Compensation = comp
			job.SalarySource = models.SalarySourceDirect
		}

		jobs = append(jobs, job)
	})

	return jobs
}

// glassdoorPostedAt turns relative ages such as "24h", "3d" or "30d+" into
// a date relative to now.
func glassdoorPostedAt(age string, now time.Time) (time.Time, bool) {
	match := glassdoorAgePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(age)))
	if match == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return time.Time{}, false
	}
	unit := time.Hour
	if match[2] == "d" {
		unit = 24 * time.Hour
	}
	return now.Add(-time.Duration(n) * unit), true
}

func firstText(s *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if text := cleanText(s.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
