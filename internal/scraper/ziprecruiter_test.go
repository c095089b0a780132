package scraper

import (
	"testing"

	"github.com/jimezsa/jamscrape/internal/models"
)

func TestParseZipRecruiterJobs(t *testing.T) {
	html := `
<article class="job_result">
  <a class="job_link" href="/c/Zip-Co/Job/Platform-Engineer/-in-Phoenix,AZ?jid=123">Platform Engineer</a>
  <a class="t_org_link" href="/co/Zip-Co">Zip Co</a>
  <div class="location">Phoenix, AZ 85004</div>
  <div class="job_snippet">Run the build fleet.</div>
  <div class="job_salary">$55 - $70 an hour</div>
</article>
<article class="job_result">
  <a class="job_link" href="/c/Other/Job/SRE">SRE</a>
  <div class="location">Remote</div>
  <div class="job_snippet">Keep things up</div>
</article>
<article class="job_result">
  <div class="location">Nowhere</div>
</article>`

	jobs := parseZipRecruiterJobs(mustDoc(t, html))
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	job := jobs[0]
	if job.Company != "Zip Co" || job.CompanyURL != "https://www.ziprecruiter.com/co/Zip-Co" {
		t.Fatalf("unexpected company: %q %q", job.Company, job.CompanyURL)
	}
	if job.City != "Phoenix" || job.State != "AZ" {
		t.Fatalf("unexpected city/state: %q %q", job.City, job.State)
	}
	if job.Description != "Run the build fleet." {
		t.Fatalf("unexpected description: %q", job.Description)
	}
	comp := job.Compensation
	if comp == nil || *comp.MinAmount != 55 || *comp.MaxAmount != 70 || comp.Interval != models.IntervalHourly {
		t.Fatalf("unexpected compensation: %+v", comp)
	}
	if job.SalarySource != models.SalarySourceDirect {
		t.Fatalf("SalarySource = %q", job.SalarySource)
	}

	if !jobs[1].Remote || jobs[1].City != "" || jobs[1].Compensation != nil {
		t.Fatalf("unexpected remote card: %+v", jobs[1])
	}
}

func TestBuildZipRecruiterURL(t *testing.T) {
	got := buildZipRecruiterURL(models.SearchParams{Query: "go", Location: "Austin, TX", Hours: 30, JobType: "parttime"})
	if !containsAll(got, []string{"search=go", "location=Austin%2C+TX", "days=2", "employment_type%3Aparttime"}) {
		t.Fatalf("unexpected ziprecruiter url: %s", got)
	}
}
