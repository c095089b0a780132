package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/jamscrape/internal/cmd"
	"github.com/jimezsa/jamscrape/internal/models"
	"github.com/jimezsa/jamscrape/internal/scraper"
	"github.com/jimezsa/jamscrape/internal/table"
)

type stubCollector struct {
	table *table.Table
	err   error
}

func (s stubCollector) ScrapeJobs(context.Context, scraper.Request) (*table.Table, error) {
	return s.table, s.err
}

func collectorReturning(tbl *table.Table, err error) cmd.CollectorFactory {
	return func(*cmd.Context, string) (cmd.JobCollector, error) {
		return stubCollector{table: tbl, err: err}, nil
	}
}

// isolate keeps config, .env and proxy lookups away from the developer's
// machine and returns the output path for the run.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"JAMSCRAPE_COLOR",
		"JAMSCRAPE_VERBOSE",
		"JAMSCRAPE_PROXIES",
		"JAMSCRAPE_DEFAULT_COUNTRY",
		"JAMSCRAPE_HOURS_OLD",
		"JAMSCRAPE_FETCH_DETAILS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return filepath.Join(t.TempDir(), "jobs.json")
}

func scrapeArgs(output string) []string {
	return []string{
		"--query", "golang",
		"--location", "Berlin",
		"--sites", "indeed",
		"--color", "never",
		"--output", output,
	}
}

func TestRunWritesListings(t *testing.T) {
	output := isolate(t)
	tbl := table.FromJobs([]models.Job{{Site: "indeed", Title: "Go Developer", Company: "Acme", URL: "https://example.com/1"}})

	var stderr bytes.Buffer
	if code := run(scrapeArgs(output), &stderr, collectorReturning(tbl, nil)); code != 0 {
		t.Fatalf("run() = %d, want 0; stderr:\n%s", code, stderr.String())
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"title": "Go Developer"`) {
		t.Fatalf("unexpected output: %s", data)
	}
	if !strings.Contains(stderr.String(), "Successfully scraped 1 jobs") {
		t.Fatalf("missing success line: %s", stderr.String())
	}
}

func TestRunNoJobsExitsZero(t *testing.T) {
	output := isolate(t)

	var stderr bytes.Buffer
	if code := run(scrapeArgs(output), &stderr, collectorReturning(table.New(), nil)); code != 0 {
		t.Fatalf("run() = %d, want 0; stderr:\n%s", code, stderr.String())
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("output = %q, want []", data)
	}
	if !strings.Contains(stderr.String(), "No jobs found") {
		t.Fatalf("missing warning: %s", stderr.String())
	}
}

func TestRunScrapeFailureReportsOnce(t *testing.T) {
	output := isolate(t)

	var stderr bytes.Buffer
	code := run(scrapeArgs(output), &stderr, collectorReturning(nil, errors.New("upstream unavailable")))
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if n := strings.Count(stderr.String(), "upstream unavailable"); n != 1 {
		t.Fatalf("error printed %d times, want 1:\n%s", n, stderr.String())
	}
	if !strings.Contains(stderr.String(), "Error during job scraping: upstream unavailable") {
		t.Fatalf("missing failure line: %s", stderr.String())
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("output = %q, want []", data)
	}
}

func TestRunStartupFailureWritesNothing(t *testing.T) {
	output := isolate(t)
	failing := func(*cmd.Context, string) (cmd.JobCollector, error) {
		return nil, errors.New("no scrapers")
	}

	var stderr bytes.Buffer
	if code := run(scrapeArgs(output), &stderr, failing); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Error: failed to initialize scrapers: no scrapers") {
		t.Fatalf("missing startup error: %s", stderr.String())
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output file should not exist, stat error = %v", err)
	}
}

func TestRunMissingOutputFailsToParse(t *testing.T) {
	isolate(t)
	called := false
	factory := func(*cmd.Context, string) (cmd.JobCollector, error) {
		called = true
		return stubCollector{table: table.New()}, nil
	}

	var stderr bytes.Buffer
	code := run([]string{"--query", "golang", "--location", "Berlin", "--sites", "indeed"}, &stderr, factory)
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if called {
		t.Fatalf("collector built despite parse error")
	}
	if !strings.Contains(stderr.String(), "--output") {
		t.Fatalf("expected missing flag in error: %s", stderr.String())
	}
}

func TestBuildVersion(t *testing.T) {
	defer func(v, c, d string) { version, commit, date = v, c, d }(version, commit, date)

	version, commit, date = "1.2.0", "", ""
	if got := buildVersion(); got != "1.2.0" {
		t.Fatalf("buildVersion() = %q", got)
	}
	commit, date = "abc123", "2025-01-01"
	if got := buildVersion(); got != "1.2.0 (abc123, 2025-01-01)" {
		t.Fatalf("buildVersion() = %q", got)
	}
}
