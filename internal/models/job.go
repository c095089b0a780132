package models

import "time"

// Job is the posting returned by scrapers before it is flattened into a table.
// Empty strings mean the board did not report the field.
type Job struct {
	Site            string
	Title           string
	Company         string
	CompanyURL      string
	CompanyIndustry string
	Location        string
	City            string
	State           string
	Country         string
	URL             string
	Remote          bool
	JobType         string
	JobLevel        string
	SalarySource    string
	Compensation    *Compensation
	Description     string
	Snippet         string
	PostedAt        time.Time
	PostedAtRaw     string
}

// Compensation is a parsed salary range. Nil amounts are unknown.
type Compensation struct {
	MinAmount *float64
	MaxAmount *float64
	Interval  string
	Currency  string
}

// Salary sources reported alongside a compensation.
const (
	SalarySourceDirect      = "direct_data"
	SalarySourceDescription = "description"
)

// Compensation intervals.
const (
	IntervalYearly  = "yearly"
	IntervalMonthly = "monthly"
	IntervalWeekly  = "weekly"
	IntervalDaily   = "daily"
	IntervalHourly  = "hourly"
)
