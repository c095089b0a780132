package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/network"
)

const (
	stepstoneMaxPages = 20
	stepstoneBaseURL  = "https://www.stepstone.de"
)

var stepstoneHeaders = map[string]string{
	"accept-language": "de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7",
}

type Stepstone struct {
	client *network.Client
}

func NewStepstone(client *network.Client) *Stepstone {
	return &Stepstone{client: client}
}

func (s *Stepstone) Name() string {
	return SiteStepstone
}

func (s *Stepstone) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	var jobs []models.Job
	limit := params.Limit

	seen := map[string]struct{}{}
	for page := 1; page <= stepstoneMaxPages; page++ {
		if limit > 0 && len(jobs) >= limit {
			break
		}

		searchURL := buildStepstoneURL(params, page)
		doc, err := fetchDocument(ctx, s.client, searchURL, stepstoneHeaders)
		if err != nil {
			if len(jobs) > 0 {
				break
			}
			return nil, fmt.Errorf("stepstone: %w", err)
		}

		pageJobs := parseStepstoneJobs(doc)
		if len(pageJobs) == 0 {
			break
		}

		added := 0
		for _, job := range pageJobs {
			if job.URL == "" {
				continue
			}
			if _, ok := seen[job.URL]; ok {
				continue
			}
			seen[job.URL] = struct{}{}
			jobs = append(jobs, job)
			added++
			if limit > 0 && len(jobs) >= limit {
				break
			}
		}

		if added == 0 {
			break
		}
	}

	if params.FetchDetails {
		for idx := range jobs {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.enrich(ctx, &jobs[idx])
		}
	}
	return jobs, nil
}

func (s *Stepstone) enrich(ctx context.Context, job *models.Job) {
	doc, err := fetchDocument(ctx, s.client, job.URL, stepstoneHeaders)
	if err != nil {
		return
	}
	if description := parseStepstoneDescription(doc); description != "" {
		job.Description = description
		if job.Compensation == nil {
			if comp := parseSalaryText(description); comp != nil {
				job.Compensation = comp
				job.SalarySource = models.SalarySourceDescription
			}
		}
	}
}

// parseStepstoneDescription reads the job ad body, falling back to the
// JSON-LD posting embedded in the page.
func parseStepstoneDescription(doc *goquery.Document) string {
	body := doc.Find("[data-at='jobad-description'], [data-testid='job-ad-content']").First()
	if body.Length() > 0 {
		if text := selectionText(body); text != "" {
			return text
		}
	}
	for _, job := range parseJSONLDJobs(doc, SiteStepstone) {
		if job.Description != "" {
			return job.Description
		}
	}
	return ""
}

func buildStepstoneURL(params models.SearchParams, page int) string {
	base := stepstoneBaseURL + "/jobs"
	query := stepstoneSlug(params.Query)
	if query == "" {
		query = strings.ToLower(strings.TrimSpace(params.Query))
	}
	path := fmt.Sprintf("%s/%s", base, url.PathEscape(query))
	if params.Location != "" {
		location := stepstoneSlug(params.Location)
		if location != "" {
			path = fmt.Sprintf("%s/in-%s", path, url.PathEscape(location))
		}
	}

	values := url.Values{}
	if page > 1 {
		values.Set("page", fmt.Sprintf("%d", page))
	}
	if params.Hours > 0 {
		values.Set("ag", stepstoneAge(params.Hours))
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func stepstoneAge(hours int) string {
	if hoursToDays(hours) <= 1 {
		return "age_1"
	}
	return "age_7"
}

func stepstoneSlug(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	var b strings.Builder
	lastDash := false
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func parseStepstoneJobs(doc *goquery.Document) []models.Job {
	jobs := parseJSONLDJobs(doc, SiteStepstone)
	jobs = append(jobs, parseStepstoneJobCards(doc)...)
	return dedupeJobs(jobs)
}

func parseStepstoneJobCards(doc *goquery.Document) []models.Job {
	var jobs []models.Job
	seen := map[string]struct{}{}

	doc.Find("a[href*='stellenangebote--']").Each(func(_ int, s *goquery.Selection) {
		link := absoluteURL(stepstoneBaseURL, strings.TrimSpace(s.AttrOr("href", "")))
		title := cleanText(s.Text())
		if link == "" || title == "" {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}

		card := readStepstoneCard(stepstoneCardForAnchor(s), title)
		job := models.Job{
			Site:        SiteStepstone,
			Title:       title,
			Company:     card.company,
			Location:    card.location,
			URL:         link,
			Snippet:     card.snippet,
			PostedAtRaw: card.posted,
			Remote:      card.remote || isRemote(card.location, card.snippet),
		}
		if ts, err := parsePostedAt(card.posted); err == nil {
			job.PostedAt = ts
		}
		job.City, job.State, job.Country = splitLocation(card.location)
		if job.Country == "" && job.City != "" {
			job.Country = "Germany"
		}
		if card.salary != nil {
			job.Compensation = card.salary
			job.SalarySource = models.SalarySourceDirect
		}
		jobs = append(jobs, job)
	})

	return jobs
}

func stepstoneCardForAnchor(s *goquery.Selection) *goquery.Selection {
	for _, tag := range []string{"article", "li", "section", "div"} {
		if card := s.Closest(tag); card.Length() > 0 {
			return card
		}
	}
	return s.Parent()
}

type stepstoneCard struct {
	company  string
	location string
	snippet  string
	posted   string
	salary   *models.Compensation
	remote   bool
}

type stepstoneLine int

const (
	stepstoneLineText stepstoneLine = iota
	stepstoneLineRemote
	stepstoneLinePosted
	stepstoneLineNoise
)

var stepstoneLabels = map[string]bool{
	"gehalt":  true,
	"mehr":    true,
	"neu":     true,
	"top-job": true,
}

// readStepstoneCard sorts the text lines of a result card. Company and
// location are the first two plain lines; the teaser is the first long
// plain line after them.
func readStepstoneCard(card *goquery.Selection, title string) stepstoneCard {
	var out stepstoneCard
	if card == nil || card.Length() == 0 {
		return out
	}
	out.posted = stepstonePostedText(card)

	var plain []string
	for _, line := range stepstoneCardLines(card, title) {
		switch classifyStepstoneLine(line) {
		case stepstoneLineRemote:
			out.remote = true
		case stepstoneLinePosted:
			if out.posted == "" {
				out.posted = line
			}
		case stepstoneLineText:
			if out.salary == nil {
				if comp := parseSalaryText(line); comp != nil {
					out.salary = comp
					continue
				}
			}
			plain = append(plain, line)
		}
	}

	if len(plain) > 0 {
		out.company = plain[0]
	}
	if len(plain) > 1 {
		out.location = plain[1]
	}
	if len(plain) > 2 {
		out.snippet = plain[2]
		for _, line := range plain[2:] {
			if len(line) >= 30 {
				out.snippet = line
				break
			}
		}
	}
	return out
}

func classifyStepstoneLine(line string) stepstoneLine {
	value := strings.ToLower(line)
	switch {
	case containsAny(value, "home-office", "homeoffice", "remote"):
		return stepstoneLineRemote
	case value == "heute", value == "gestern", strings.HasPrefix(value, "vor "):
		return stepstoneLinePosted
	case stepstoneLabels[value], containsAny(value, "gehalt anzeigen", "schnelle bewerbung", "anschreiben nicht erforderlich"):
		return stepstoneLineNoise
	}
	return stepstoneLineText
}

// stepstoneCardLines returns the distinct non-empty lines of a card,
// without the title.
func stepstoneCardLines(card *goquery.Selection, title string) []string {
	var lines []string
	seen := map[string]bool{title: true}
	for _, part := range strings.Split(card.Text(), "\n") {
		line := cleanText(part)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	return lines
}

func stepstonePostedText(card *goquery.Selection) string {
	posted := card.Find("time").First()
	if value := cleanText(posted.AttrOr("datetime", "")); value != "" {
		return value
	}
	return cleanText(posted.Text())
}
