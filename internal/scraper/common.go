package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/network"
)

func fetchDocument(ctx context.Context, client *network.Client, target string, headers map[string]string) (*goquery.Document, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	applyHeaders(req, headers)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: http %d", network.ErrRequestFailed, resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	merged := map[string]string{
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language": "en-US,en;q=0.9",
	}
	for key, value := range headers {
		merged[strings.ToLower(key)] = value
	}
	for key, value := range merged {
		req.Header.Set(key, value)
	}
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

// htmlToText flattens an HTML fragment to whitespace-normalized text while
// keeping paragraph breaks.
func htmlToText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return cleanText(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return cleanText(fragment)
	}
	return selectionText(doc.Selection)
}

func selectionText(s *goquery.Selection) string {
	s.Find("br").ReplaceWithHtml("\n")
	s.Find("p, li, div, h1, h2, h3, h4, ul, ol").Each(func(_ int, block *goquery.Selection) {
		block.AppendHtml("\n")
	})

	var lines []string
	for _, line := range strings.Split(s.Text(), "\n") {
		line = cleanText(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func absoluteURL(base string, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

func parsePostedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02",
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %s", value)
}

func parseJSONLDJobs(doc *goquery.Document, site string) []models.Job {
	var jobs []models.Job
	seen := map[string]struct{}{}

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		data, err := decodeJSONLD(raw)
		if err != nil {
			return
		}

		for _, job := range extractJobsFromJSONLD(data, site) {
			key := dedupeKey(job)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			jobs = append(jobs, job)
		}
	})

	return jobs
}

func decodeJSONLD(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "<!--")
	raw = strings.TrimSuffix(raw, "-->")
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "\u2028", "")
	raw = strings.ReplaceAll(raw, "\u2029", "")

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func extractJobsFromJSONLD(data any, site string) []models.Job {
	var jobs []models.Job

	switch value := data.(type) {
	case []any:
		for _, item := range value {
			jobs = append(jobs, extractJobsFromJSONLD(item, site)...)
		}
	case map[string]any:
		if typ := strings.ToLower(stringValue(value["@type"], value["type"])); typ != "" {
			switch typ {
			case "jobposting":
				jobs = append(jobs, jobFromJobPosting(value, site))
				return jobs
			case "itemlist":
				jobs = append(jobs, jobsFromItemList(value, site)...)
			}
		}
		if graph, ok := value["@graph"]; ok {
			jobs = append(jobs, extractJobsFromJSONLD(graph, site)...)
		}
		if main, ok := value["mainEntity"]; ok {
			jobs = append(jobs, extractJobsFromJSONLD(main, site)...)
		}
	}

	return jobs
}

func jobsFromItemList(value map[string]any, site string) []models.Job {
	items, ok := value["itemListElement"]
	if !ok {
		return nil
	}

	var jobs []models.Job
	switch list := items.(type) {
	case []any:
		for _, item := range list {
			jobs = append(jobs, extractJobsFromJSONLD(item, site)...)
		}
	case map[string]any:
		jobs = append(jobs, extractJobsFromJSONLD(list, site)...)
	}
	return jobs
}

func jobFromJobPosting(value map[string]any, site string) models.Job {
	job := models.Job{Site: site}
	job.Title = stringValue(value["title"], value["name"])
	job.Company = stringValue(mapValue(value["hiringOrganization"], "name"))
	job.CompanyURL = stringValue(mapValue(value["hiringOrganization"], "sameAs"), mapValue(value["hiringOrganization"], "url"))
	job.CompanyIndustry = stringValue(value["industry"])
	job.URL = stringValue(value["url"], value["@id"])
	job.JobType = normalizeJobType(stringValue(value["employmentType"]))
	job.JobLevel = stringValue(value["experienceRequirements"], value["occupationalCategory"])
	job.PostedAtRaw = stringValue(value["datePosted"])
	if job.PostedAtRaw != "" {
		if ts, err := parsePostedAt(job.PostedAtRaw); err == nil {
			job.PostedAt = ts
		}
	}

	job.Location = locationFromJSONLD(value["jobLocation"])
	job.City, job.State, job.Country = addressPartsFromJSONLD(value["jobLocation"])

	job.Description = htmlToText(stringValue(value["description"]))
	job.Snippet = truncate(cleanText(job.Description), 240)
	job.Remote = strings.Contains(strings.ToLower(job.Location), "remote") ||
		strings.EqualFold(stringValue(value["jobLocationType"]), "TELECOMMUTE")

	if comp := compensationFromJSONLD(value["baseSalary"]); comp != nil {
		job.Compensation = comp
		job.SalarySource = models.SalarySourceDirect
	}
	return job
}

// compensationFromJSONLD reads a schema.org MonetaryAmount.
func compensationFromJSONLD(value any) *models.Compensation {
	salary, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	comp := &models.Compensation{
		Currency: strings.ToUpper(stringValue(salary["currency"])),
	}

	switch amount := salary["value"].(type) {
	case map[string]any:
		comp.MinAmount = floatValue(amount["minValue"])
		comp.MaxAmount = floatValue(amount["maxValue"])
		if comp.MinAmount == nil && comp.MaxAmount == nil {
			exact := floatValue(amount["value"])
			comp.MinAmount, comp.MaxAmount = exact, exact
		}
		comp.Interval = normalizeInterval(stringValue(amount["unitText"]))
	default:
		exact := floatValue(amount)
		comp.MinAmount, comp.MaxAmount = exact, exact
	}
	if comp.Interval == "" {
		comp.Interval = normalizeInterval(stringValue(salary["unitText"]))
	}

	if comp.MinAmount == nil && comp.MaxAmount == nil {
		return nil
	}
	return comp
}

func locationFromJSONLD(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case []any:
		var parts []string
		for _, item := range v {
			loc := locationFromJSONLD(item)
			if loc != "" {
				parts = append(parts, loc)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		address := v["address"]
		if addressMap, ok := address.(map[string]any); ok {
			return joinAddress(addressMap)
		}
		return joinAddress(v)
	case string:
		return v
	}

	return ""
}

// addressPartsFromJSONLD returns city, state and country of the first
// location entry.
func addressPartsFromJSONLD(value any) (string, string, string) {
	switch v := value.(type) {
	case []any:
		if len(v) > 0 {
			return addressPartsFromJSONLD(v[0])
		}
	case map[string]any:
		address := v
		if nested, ok := v["address"].(map[string]any); ok {
			address = nested
		}
		return stringValue(address["addressLocality"]),
			stringValue(address["addressRegion"]),
			stringValue(address["addressCountry"])
	case string:
		return splitLocation(v)
	}
	return "", "", ""
}

func joinAddress(value map[string]any) string {
	parts := []string{
		stringValue(value["streetAddress"]),
		stringValue(value["addressLocality"]),
		stringValue(value["addressRegion"]),
		stringValue(value["postalCode"]),
		stringValue(value["addressCountry"]),
	}
	var cleaned []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cleaned = append(cleaned, part)
	}
	return strings.Join(cleaned, ", ")
}

func stringValue(values ...any) string {
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		case int:
			return fmt.Sprintf("%d", v)
		case int64:
			return fmt.Sprintf("%d", v)
		case json.Number:
			return v.String()
		case fmt.Stringer:
			if v.String() != "" {
				return strings.TrimSpace(v.String())
			}
		case []any:
			if len(v) > 0 {
				if first := stringValue(v[0]); first != "" {
					return first
				}
			}
		case map[string]any:
			if name := stringValue(v["name"]); name != "" {
				return name
			}
		}
	}
	return ""
}

func floatValue(value any) *float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func mapValue(value any, key string) any {
	if value == nil {
		return nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

func truncate(value string, max int) string {
	if max <= 0 {
		return value
	}
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	return strings.TrimSpace(value[:max]) + "..."
}

func normalizeJobType(value string) string {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "":
		return ""
	case "fulltime", "vollzeit":
		return "fulltime"
	case "parttime", "teilzeit":
		return "parttime"
	case "contract", "contractor", "temporary", "befristet":
		return "contract"
	case "intern", "internship", "praktikum":
		return "internship"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// searchJobType maps free-form input to a filter the boards understand.
// Unrecognized values disable the filter instead of failing the search.
func searchJobType(value string) string {
	switch jobType := normalizeJobType(value); jobType {
	case "fulltime", "parttime", "contract", "internship":
		return jobType
	default:
		return ""
	}
}

func isRemote(location string, snippet string) bool {
	value := strings.ToLower(location + " " + snippet)
	return strings.Contains(value, "remote")
}

func dedupeKey(job models.Job) string {
	if job.URL != "" {
		return job.URL
	}
	if job.Title == "" && job.Company == "" && job.Location == "" {
		return ""
	}
	return strings.ToLower(job.Title + "|" + job.Company + "|" + job.Location)
}

func dedupeJobs(jobs []models.Job) []models.Job {
	seen := map[string]struct{}{}
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		key := dedupeKey(job)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, job)
	}
	return out
}

func limitJobs(jobs []models.Job, limit int) []models.Job {
	if limit <= 0 || len(jobs) <= limit {
		return jobs
	}
	return jobs[:limit]
}
