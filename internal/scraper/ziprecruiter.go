package scraper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/network"
)

const zipRecruiterBaseURL = "https://www.ziprecruiter.com"

type ZipRecruiter struct {
	client *network.Client
}

func NewZipRecruiter(client *network.Client) *ZipRecruiter {
	return &ZipRecruiter{client: client}
}

func (z *ZipRecruiter) Name() string {
	return SiteZipRecruiter
}

func (z *ZipRecruiter) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	doc, err := fetchDocument(ctx, z.client, buildZipRecruiterURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("ziprecruiter: %w", err)
	}

	jobs := parseZipRecruiterJobs(doc)
	jobs = append(jobs, parseJSONLDJobs(doc, SiteZipRecruiter)...)
	jobs = dedupeJobs(jobs)

	return limitJobs(jobs, params.Limit), nil
}

func buildZipRecruiterURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("search", params.Query)
	if params.Location != "" {
		values.Set("location", params.Location)
	}
	if params.Hours > 0 {
		values.Set("days", fmt.Sprintf("%d", hoursToDays(params.Hours)))
	}
	if params.JobType != "" {
		values.Set("refine_by_employment", "employment_type:"+params.JobType)
	}
	return zipRecruiterBaseURL + "/jobs-search?" + values.Encode()
}

func parseZipRecruiterJobs(doc *goquery.Document) []models.Job {
	var jobs []models.Job

	doc.Find("article.job_result").Each(func(_ int, s *goquery.Selection) {
		anchor := s.Find("a.job_link").First()
		title := cleanText(anchor.Text())
		link := absoluteURL(zipRecruiterBaseURL, anchor.AttrOr("href", ""))
		if title == "" || link == "" {
			return
		}

		companyLink := s.Find("a.t_org_link").First()
		location := cleanText(s.Find(".location").First().Text())
		snippet := cleanText(s.Find(".job_snippet").First().Text())
		salary := cleanText(s.Find(".job_salary, .perk_item.perk_pay").First().Text())

		job := models.Job{
			Site:        SiteZipRecruiter,
			Title:       title,
			Company:     cleanText(companyLink.Text()),
			CompanyURL:  absoluteURL(zipRecruiterBaseURL, companyLink.AttrOr("href", "")),
			Location:    location,
			URL:         link,
			Snippet:     snippet,
			Description: snippet,
			Remote:      isRemote(location, snippet),
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
