package scraper

import (
	"net/url"
	"testing"

	"github.com/jimezsa/jamscrape/internal/models"
)

func TestGoogleJobsPage(t *testing.T) {
	html := `
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "JobPosting",
  "title": "Site Reliability Engineer",
  "hiringOrganization": {"name": "Initech", "sameAs": "https://initech.example"},
  "url": "https://careers.initech.example/jobs/sre-1",
  "datePosted": "2024-04-18",
  "jobLocation": {"address": {"addressLocality": "Toronto", "addressRegion": "ON", "addressCountry": "CA"}},
  "baseSalary": {"currency": "cad", "value": {"minValue": 95000, "maxValue": 115000, "unitText": "YEAR"}}
}
</script>
<div>
  <a href="/search?q=sre&amp;htidocid=abc123">Remote SRE Contractor</a>
  <a href="/search?q=sre">Unrelated link</a>
</div>`

	doc := mustDoc(t, html)
	jobs := append(parseJSONLDJobs(doc, SiteGoogleJobs), parseGoogleJobsAnchors(doc)...)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	posted := jobs[0]
	if posted.Site != SiteGoogleJobs || posted.Company != "Initech" || posted.CompanyURL != "https://initech.example" {
		t.Fatalf("unexpected posting: %+v", posted)
	}
	if posted.City != "Toronto" || posted.State != "ON" || posted.Country != "CA" {
		t.Fatalf("location parts = %q %q %q", posted.City, posted.State, posted.Country)
	}
	comp := posted.Compensation
	if comp == nil || comp.MinAmount == nil || comp.MaxAmount == nil {
		t.Fatalf("expected compensation, got %+v", comp)
	}
	if *comp.MinAmount != 95000 || *comp.MaxAmount != 115000 || comp.Currency != "CAD" || comp.Interval != models.IntervalYearly {
		t.Fatalf("unexpected compensation: %v-%v %s %s", *comp.MinAmount, *comp.MaxAmount, comp.Currency, comp.Interval)
	}
	if posted.SalarySource != models.SalarySourceDirect {
		t.Fatalf("SalarySource = %q", posted.SalarySource)
	}

	anchor := jobs[1]
	if anchor.URL != "https://www.google.com/search?q=sre&htidocid=abc123" {
		t.Fatalf("anchor URL = %q", anchor.URL)
	}
	if !anchor.Remote || anchor.Compensation != nil {
		t.Fatalf("unexpected anchor job: %+v", anchor)
	}
}

func TestBuildGoogleJobsURL(t *testing.T) {
	cases := []struct {
		params models.SearchParams
		q      string
		gl     string
	}{
		{models.SearchParams{Query: "golang", Location: "Munich", Country: "germany", Hours: 24}, "golang jobs near Munich since yesterday", "de"},
		{models.SearchParams{Query: "golang", Hours: 168, Country: "uk"}, "golang jobs in the last week", "gb"},
		{models.SearchParams{Query: "golang"}, "golang jobs", ""},
	}
	for _, tc := range cases {
		parsed, err := url.Parse(buildGoogleJobsURL(tc.params))
		if err != nil {
			t.Fatal(err)
		}
		values := parsed.Query()
		if got := values.Get("q"); got != tc.q {
			t.Fatalf("q = %q, want %q", got, tc.q)
		}
		if got := values.Get("gl"); got != tc.gl {
			t.Fatalf("gl = %q, want %q", got, tc.gl)
		}
		if values.Get("udm") != "8" || values.Get("hl") != "en" {
			t.Fatalf("missing jobs vertical parameters: %s", parsed.RawQuery)
		}
	}
}

func TestCountryToGoogleGLNames(t *testing.T) {
	cases := map[string]string{
		"United States":  "us",
		"united kingdom": "gb",
		"Deutschland":    "de",
		"Australia":      "au",
		"fr":             "fr",
		"":               "",
	}
	for input, want := range cases {
		if got := countryToGoogleGL(input); got != want {
			t.Fatalf("countryToGoogleGL(%q) = %q, want %q", input, got, want)
		}
	}
}
