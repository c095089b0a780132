// Package table holds the tabular result set produced by the scraping
// collector: ordered rows of optional, loosely typed cells.
package table

import (
	"strings"

	"github.com/jimezsa/jamscrape/internal/models"
)

// Column names emitted by the collector.
const (
	ColTitle           = "title"
	ColCompany         = "company"
	ColCompanyURL      = "company_url"
	ColJobURL          = "job_url"
	ColLocation        = "location"
	ColCity            = "city"
	ColState           = "state"
	ColCountry         = "country"
	ColIsRemote        = "is_remote"
	ColJobType         = "job_type"
	ColDatePosted      = "date_posted"
	ColDescription     = "description"
	ColSite            = "site"
	ColJobLevel        = "job_level"
	ColCompanyIndustry = "company_industry"
	ColSalarySource    = "salary_source"
	ColMinAmount       = "min_amount"
	ColMaxAmount       = "max_amount"
	ColInterval        = "interval"
	ColCurrency        = "currency"
)

// JobColumns is the column set of a table built by FromJobs.
var JobColumns = []string{
	ColSite,
	ColJobURL,
	ColTitle,
	ColCompany,
	ColLocation,
	ColCity,
	ColState,
	ColCountry,
	ColDatePosted,
	ColJobType,
	ColSalarySource,
	ColInterval,
	ColMinAmount,
	ColMaxAmount,
	ColCurrency,
	ColIsRemote,
	ColJobLevel,
	ColCompanyIndustry,
	ColCompanyURL,
	ColDescription,
}

// Row maps column names to cells. Absent columns read as missing.
type Row map[string]Value

func (r Row) Get(column string) Value {
	if r == nil {
		return Missing()
	}
	return r[column]
}

type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

// Append adds a row, registering any column not seen before.
func (t *Table) Append(row Row) {
	for column := range row {
		if !t.HasColumn(column) {
			t.Columns = append(t.Columns, column)
		}
	}
	t.Rows = append(t.Rows, row)
}

func (t *Table) HasColumn(column string) bool {
	for _, existing := range t.Columns {
		if existing == column {
			return true
		}
	}
	return false
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether t is nil or has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// FromJobs flattens scraper output into a table, one row per job in order.
func FromJobs(jobs []models.Job) *Table {
	out := New(JobColumns...)
	out.Rows = make([]Row, 0, len(jobs))
	for _, job := range jobs {
		out.Rows = append(out.Rows, rowFromJob(job))
	}
	return out
}

func rowFromJob(job models.Job) Row {
	description := job.Description
	if strings.TrimSpace(description) == "" {
		description = job.Snippet
	}

	row := Row{
		ColSite:            OptionalString(job.Site),
		ColJobURL:          OptionalString(job.URL),
		ColTitle:           OptionalString(job.Title),
		ColCompany:         OptionalString(job.Company),
		ColLocation:        OptionalString(job.Location),
		ColCity:            OptionalString(job.City),
		ColState:           OptionalString(job.State),
		ColCountry:         OptionalString(job.Country),
		ColJobType:         OptionalString(job.JobType),
		ColSalarySource:    Missing(),
		ColInterval:        Missing(),
		ColMinAmount:       Missing(),
		ColMaxAmount:       Missing(),
		ColCurrency:        Missing(),
		ColIsRemote:        Bool(job.Remote),
		ColJobLevel:        OptionalString(job.JobLevel),
		ColCompanyIndustry: OptionalString(job.CompanyIndustry),
		ColCompanyURL:      OptionalString(job.CompanyURL),
		ColDescription:     OptionalString(description),
	}

	switch {
	case !job.PostedAt.IsZero():
		row[ColDatePosted] = Time(job.PostedAt)
	default:
		row[ColDatePosted] = OptionalString(job.PostedAtRaw)
	}

	if comp := job.Compensation; comp != nil && (comp.MinAmount != nil || comp.MaxAmount != nil) {
		row[ColMinAmount] = OptionalFloat(comp.MinAmount)
		row[ColMaxAmount] = OptionalFloat(comp.MaxAmount)
		row[ColInterval] = OptionalString(comp.Interval)
		row[ColCurrency] = OptionalString(comp.Currency)
		row[ColSalarySource] = OptionalString(job.SalarySource)
	}

	return row
}
