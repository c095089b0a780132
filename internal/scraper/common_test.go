package scraper

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jamscrape/internal/models"
)

func TestParsePostedAt(t *testing.T) {
	cases := []struct {
		value  string
		layout string
	}{
		{"2024-01-02", "2006-01-02"},
		{"2024-01-02T15:04:05-0700", "2006-01-02T15:04:05-0700"},
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Format(time.RFC3339), time.RFC3339},
	}

	for _, tc := range cases {
		parsed, err := parsePostedAt(tc.value)
		if err != nil {
			t.Fatalf("expected parse success for %s: %v", tc.value, err)
		}
		if parsed.IsZero() {
			t.Fatalf("parsed time should not be zero for %s", tc.value)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com/path/page"
	cases := []struct {
		href string
		want string
	}{
		{"/jobs/1", "https://example.com/jobs/1"},
		{"https://other.com/a", "https://other.com/a"},
		{"//cdn.example.com/asset", "https://cdn.example.com/asset"},
	}

	for _, tc := range cases {
		got := absoluteURL(base, tc.href)
		if got != tc.want {
			t.Fatalf("absoluteURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestParseJSONLDJobs(t *testing.T) {
	html := `
<!doctype html>
<html>
<head>
  <script type="application/ld+json">
  {
    "@context": "http://schema.org",
    "@type": "JobPosting",
    "title": "Go Developer",
    "hiringOrganization": {"name": "Acme"},
    "jobLocation": {"address": {"addressLocality": "Austin", "addressRegion": "TX", "addressCountry": "US"}},
    "url": "https://example.com/job1",
    "datePosted": "2024-01-15",
    "description": "Build APIs"
  }
  </script>
  <script type="application/ld+json">
  {
    "@graph": [
      {
        "@type": "JobPosting",
        "title": "Platform Engineer",
        "hiringOrganization": {"name": "Beta"},
        "jobLocation": {"address": {"addressLocality": "Remote"}},
        "url": "https://example.com/job2",
        "datePosted": "2024-01-16",
        "description": "Remote role"
      }
    ]
  }
  </script>
</head>
<body></body>
</html>`

	doc := mustDoc(t, html)
	jobs := parseJSONLDJobs(doc, SiteGoogleJobs)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	if jobs[0].Title == "" || jobs[0].Company == "" || jobs[0].URL == "" {
		t.Fatalf("job missing required fields: %+v", jobs[0])
	}
}

func TestJSONLDSalaryAndLocation(t *testing.T) {
	job := jobFromJobPosting(map[string]any{
		"title":              "SRE",
		"hiringOrganization": map[string]any{"name": "Gamma"},
		"url":                "https://example.com/job3",
		"baseSalary": map[string]any{
			"currency": "USD",
			"value":    map[string]any{"minValue": 100000, "maxValue": 150000},
		},
		"jobLocation": map[string]any{
			"address": map[string]any{
				"streetAddress":   "1 Main",
				"addressLocality": "Denver",
				"addressRegion":   "CO",
				"postalCode":      "80202",
				"addressCountry":  "US",
			},
		},
		"description": strings.Repeat("a", 300),
	}, SiteLinkedIn)

	comp := job.Compensation
	if comp == nil || comp.Currency != "USD" || *comp.MinAmount != 100000 || *comp.MaxAmount != 150000 {
		t.Fatalf("unexpected compensation: %+v", comp)
	}
	if job.SalarySource != models.SalarySourceDirect {
		t.Fatalf("SalarySource = %q, want %q", job.SalarySource, models.SalarySourceDirect)
	}
	if job.City != "Denver" || job.State != "CO" || job.Country != "US" {
		t.Fatalf("unexpected address parts: %q %q %q", job.City, job.State, job.Country)
	}
	if !strings.Contains(job.Location, "Denver") {
		t.Fatalf("expected location to include city, got %q", job.Location)
	}
	if !strings.HasSuffix(job.Snippet, "...") {
		t.Fatalf("expected snippet to be truncated, got %q", job.Snippet)
	}
}

func TestDedupeJobs(t *testing.T) {
	jobs := []models.Job{
		{Site: "x", Title: "A", Company: "C", Location: "Remote", URL: "https://example.com/a", Remote: true},
		{Site: "x", Title: "A", Company: "C", Location: "Remote", URL: "https://example.com/a", Remote: true},
		{Site: "x", Title: "B", Company: "C", Location: "NY", URL: "https://example.com/b", Remote: false},
	}

	jobs = append(jobs, models.Job{Site: "x"}, models.Job{Site: "x", Title: "B", Company: "c", Location: "ny"})

	deduped := dedupeJobs(jobs)
	if len(deduped) != 3 {
		t.Fatalf("expected 3 jobs after dedupe, got %d", len(deduped))
	}
	if deduped[0].URL != "https://example.com/a" || deduped[1].URL != "https://example.com/b" || deduped[2].URL != "" {
		t.Fatalf("unexpected dedupe order: %+v", deduped)
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}

func TestJSONLDCompensationAndAddress(t *testing.T) {
	job := jobFromJobPosting(map[string]any{
		"title":              "Backend Engineer",
		"hiringOrganization": map[string]any{"name": "Delta", "sameAs": "https://delta.example.com"},
		"industry":           "Software Development",
		"employmentType":     "FULL_TIME",
		"url":                "https://example.com/job4",
		"datePosted":         "2024-02-01",
		"baseSalary": map[string]any{
			"@type":    "MonetaryAmount",
			"currency": "usd",
			"value":    map[string]any{"minValue": 90000.0, "maxValue": "130,000", "unitText": "YEAR"},
		},
		"jobLocation": []any{
			map[string]any{"address": map[string]any{"addressLocality": "Seattle", "addressRegion": "WA", "addressCountry": "US"}},
		},
		"description": "<p>Own services.</p><ul><li>Go</li><li>Postgres</li></ul>",
	}, SiteGlassdoor)

	if job.Compensation == nil {
		t.Fatalf("expected compensation")
	}
	if *job.Compensation.MinAmount != 90000 || *job.Compensation.MaxAmount != 130000 {
		t.Fatalf("unexpected amounts: %+v", job.Compensation)
	}
	if job.Compensation.Interval != "yearly" || job.Compensation.Currency != "USD" {
		t.Fatalf("unexpected interval/currency: %+v", job.Compensation)
	}
	if job.SalarySource != "direct_data" {
		t.Fatalf("SalarySource = %q, want direct_data", job.SalarySource)
	}
	if job.City != "Seattle" || job.State != "WA" || job.Country != "US" {
		t.Fatalf("unexpected address parts: %q %q %q", job.City, job.State, job.Country)
	}
	if job.CompanyURL != "https://delta.example.com" || job.CompanyIndustry != "Software Development" {
		t.Fatalf("unexpected company fields: %+v", job)
	}
	if job.JobType != "fulltime" {
		t.Fatalf("JobType = %q, want fulltime", job.JobType)
	}
	if job.Description != "Own services.\nGo\nPostgres" {
		t.Fatalf("unexpected description: %q", job.Description)
	}
	if job.PostedAt.IsZero() {
		t.Fatalf("expected PostedAt to be parsed")
	}
}

func TestJSONLDExactSalary(t *testing.T) {
	comp := compensationFromJSONLD(map[string]any{
		"currency": "EUR",
		"value":    map[string]any{"value": 25.5, "unitText": "HOUR"},
	})
	if comp == nil || *comp.MinAmount != 25.5 || *comp.MaxAmount != 25.5 || comp.Interval != "hourly" {
		t.Fatalf("unexpected compensation: %+v", comp)
	}

	if compensationFromJSONLD(map[string]any{"currency": "USD"}) != nil {
		t.Fatalf("expected nil compensation without amounts")
	}
	if compensationFromJSONLD("competitive") != nil {
		t.Fatalf("expected nil compensation for plain text")
	}
}

func TestNormalizeJobType(t *testing.T) {
	cases := map[string]string{
		"FULL_TIME":  "fulltime",
		"Part-time":  "parttime",
		"Contractor": "contract",
		"INTERN":     "internship",
		"Vollzeit":   "fulltime",
		"":           "",
		"Volunteer":  "volunteer",
	}
	for input, want := range cases {
		if got := normalizeJobType(input); got != want {
			t.Fatalf("normalizeJobType(%q) = %q, want %q", input, got, want)
		}
	}
}
