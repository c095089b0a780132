package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/network"
)

const (
	linkedInPageSize  = 25
	linkedInMaxOffset = 1000
	linkedInSearchURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"
	linkedInDetailAPI = "https://www.linkedin.com/jobs-guest/jobs/api/jobPosting/"
)

var linkedInJobIDPattern = regexp.MustCompile(`(\d{6,})/?$`)

type LinkedIn struct {
	client *network.Client
}

func NewLinkedIn(client *network.Client) *LinkedIn {
	return &LinkedIn{client: client}
}

func (l *LinkedIn) Name() string {
	return SiteLinkedIn
}

func (l *LinkedIn) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	var jobs []models.Job
	seen := map[string]struct{}{}

	for start := 0; start < linkedInMaxOffset; start += linkedInPageSize {
		if params.Limit > 0 && len(jobs) >= params.Limit {
			break
		}

		doc, err := fetchDocument(ctx, l.client, buildLinkedInURL(params, start), nil)
		if err != nil {
			if len(jobs) > 0 {
				break
			}
			return nil, fmt.Errorf("linkedin: %w", err)
		}

		added := 0
		for _, job := range parseLinkedInJobs(doc) {
			key := linkedInDetailURL(job.URL)
			if key == "" {
				key = job.URL
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			jobs = append(jobs, job)
			added++
		}
		if added == 0 {
			break
		}
	}

	jobs = limitJobs(jobs, params.Limit)
	if params.FetchDetails {
		for idx := range jobs {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			l.enrich(ctx, &jobs[idx])
		}
	}
	return jobs, nil
}

// enrich fills description and criteria from the posting page. Failures
// leave the card data untouched.
func (l *LinkedIn) enrich(ctx context.Context, job *models.Job) {
	detailURL := linkedInDetailURL(job.URL)
	if detailURL == "" {
		return
	}
	doc, err := fetchDocument(ctx, l.client, detailURL, nil)
	if err != nil {
		return
	}

	if description := parseLinkedInDescription(doc); description != "" {
		job.Description = description
		if job.Compensation == nil {
			if comp := parseSalaryText(description); comp != nil {
				job.Compensation = comp
				job.SalarySource = models.SalarySourceDescription
			}
		}
	}
	criteria := parseLinkedInCriteria(doc)
	if level := criteria["seniority level"]; level != "" && !strings.EqualFold(level, "not applicable") {
		job.JobLevel = strings.ToLower(level)
	}
	if industry := criteria["industries"]; industry != "" {
		job.CompanyIndustry = industry
	}
	if jobType := criteria["employment type"]; jobType != "" && job.JobType == "" {
		job.JobType = normalizeJobType(jobType)
	}
}

func buildLinkedInURL(params models.SearchParams, start int) string {
	values := url.Values{}
	values.Set("keywords", params.Query)
	if params.Location != "" {
		values.Set("location", params.Location)
	}
	if start > 0 {
		values.Set("start", fmt.Sprintf("%d", start))
	}
	if params.Hours > 0 {
		values.Set("f_TPR", fmt.Sprintf("r%d", params.Hours*3600))
	}
	if code := linkedInJobTypeCode(params.JobType); code != "" {
		values.Set("f_JT", code)
	}
	return linkedInSearchURL + "?" + values.Encode()
}

func linkedInJobTypeCode(jobType string) string {
	switch normalizeJobType(jobType) {
	case "fulltime":
		return "F"
	case "parttime":
		return "P"
	case "contract":
		return "C"
	case "internship":
		return "I"
	default:
		return ""
	}
}

func parseLinkedInJobs(doc *goquery.Document) []models.Job {
	var jobs []models.Job

	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		link := strings.TrimSpace(s.Find("a.base-card__full-link").First().AttrOr("href", ""))
		title := cleanText(s.Find("h3.base-search-card__title").First().Text())
		if link == "" || title == "" {
			return
		}

		subtitle := s.Find("h4.base-search-card__subtitle").First()
		company := cleanText(subtitle.Text())
		companyURL := stripQuery(subtitle.Find("a").First().AttrOr("href", ""))
		location := cleanText(s.Find("span.job-search-card__location").First().Text())
		snippet := cleanText(s.Find("div.job-search-card__snippet").First().Text())
		salary := cleanText(s.Find("span.job-search-card__salary-info").First().Text())

		posted := s.Find("time").First()
		postedRaw := strings.TrimSpace(posted.AttrOr("datetime", ""))
		if postedRaw == "" {
			postedRaw = cleanText(posted.Text())
		}

		job := models.Job{
			Site:        SiteLinkedIn,
			Title:       title,
			Company:     company,
			CompanyURL:  companyURL,
			Location:    location,
			URL:         stripQuery(link),
			Snippet:     snippet,
			PostedAtRaw: postedRaw,
			Remote:      isRemote(location, snippet),
		}
		if ts, err := parsePostedAt(postedRaw); err == nil {
			job.PostedAt = ts
		}
		job.City, job.State, job.Country = splitLocation(location)
		if comp := parseSalaryText(salary); comp != nil {
			job.Compensation = comp
			job.SalarySource = models.SalarySourceDirect
		}

		jobs = append(jobs, job)
	})

	return jobs
}

// linkedInDetailURL maps a public job URL to the guest posting endpoint.
func linkedInDetailURL(jobURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(jobURL))
	if err != nil {
		return ""
	}
	match := linkedInJobIDPattern.FindStringSubmatch(parsed.Path)
	if match == nil {
		return ""
	}
	return linkedInDetailAPI + match[1]
}

func parseLinkedInDescription(doc *goquery.Document) string {
	markup := doc.Find("div.show-more-less-html__markup").First()
	if markup.Length() == 0 {
		markup = doc.Find("div.description__text").First()
	}
	if markup.Length() == 0 {
		return ""
	}
	return selectionText(markup)
}

func parseLinkedInCriteria(doc *goquery.Document) map[string]string {
	criteria := map[string]string{}
	doc.Find("li.description__job-criteria-item").Each(func(_ int, s *goquery.Selection) {
		key := strings.ToLower(cleanText(s.Find("h3.description__job-criteria-subheader").Text()))
		value := cleanText(s.Find("span.description__job-criteria-text").Text())
		if key != "" && value != "" {
			criteria[key] = value
		}
	})
	return criteria
}

func stripQuery(raw string) string {
	if idx := strings.IndexAny(raw, "?#"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}
