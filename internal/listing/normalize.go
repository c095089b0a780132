// Package listing converts collector result tables into JobListing records.
package listing

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/jimezsa/jamscrape/internal/table"
)

const (
	DefaultDescriptionLimit = 5000
	DefaultSite             = "unknown"
	DefaultInterval         = "yearly"
	DefaultCurrency         = "USD"
)

// Normalizer maps table rows to listings. The zero value uses time.Now and
// DefaultDescriptionLimit.
type Normalizer struct {
	Now              func() time.Time
	DescriptionLimit int
}

// Normalize returns one listing per row, in row order. A nil or empty table
// yields an empty, non-nil slice.
func (n Normalizer) Normalize(tbl *table.Table) ([]JobListing, error) {
	if tbl.Empty() {
		return []JobListing{}, nil
	}

	out := make([]JobListing, 0, tbl.Len())
	for idx, row := range tbl.Rows {
		job, err := n.NormalizeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", idx, err)
		}
		out = append(out, job)
	}
	return out, nil
}

// NormalizeRow converts a single row.
func (n Normalizer) NormalizeRow(row table.Row) (JobListing, error) {
	job := JobListing{
		Title:           stringOr(row.Get(table.ColTitle), ""),
		Company:         stringOr(row.Get(table.ColCompany), ""),
		CompanyURL:      nullable(row.Get(table.ColCompanyURL)),
		JobURL:          stringOr(row.Get(table.ColJobURL), ""),
		Location:        stringOr(row.Get(table.ColLocation), ""),
		City:            nullable(row.Get(table.ColCity)),
		State:           nullable(row.Get(table.ColState)),
		Country:         nullable(row.Get(table.ColCountry)),
		IsRemote:        row.Get(table.ColIsRemote).Bool(),
		JobType:         nullable(row.Get(table.ColJobType)),
		DatePosted:      stringOr(row.Get(table.ColDatePosted), n.now().Format(time.RFC3339)),
		Description:     truncateRunes(stringOr(row.Get(table.ColDescription), ""), n.descriptionLimit()),
		Site:            stringOr(row.Get(table.ColSite), DefaultSite),
		JobLevel:        nullable(row.Get(table.ColJobLevel)),
		CompanyIndustry: nullable(row.Get(table.ColCompanyIndustry)),
		SalarySource:    nullable(row.Get(table.ColSalarySource)),
	}

	comp, err := compensationFromRow(row)
	if err != nil {
		return JobListing{}, err
	}
	job.Compensation = comp

	return job, nil
}

func compensationFromRow(row table.Row) (*Compensation, error) {
	minCell := row.Get(table.ColMinAmount)
	maxCell := row.Get(table.ColMaxAmount)
	if minCell.IsMissing() && maxCell.IsMissing() {
		return nil, nil
	}

	minAmount, err := amount(minCell)
	if err != nil {
		return nil, fmt.Errorf("min_amount: %w", err)
	}
	maxAmount, err := amount(maxCell)
	if err != nil {
		return nil, fmt.Errorf("max_amount: %w", err)
	}

	return &Compensation{
		MinAmount: minAmount,
		MaxAmount: maxAmount,
		Interval:  stringOr(row.Get(table.ColInterval), DefaultInterval),
		Currency:  stringOr(row.Get(table.ColCurrency), DefaultCurrency),
	}, nil
}

func amount(cell table.Value) (*Amount, error) {
	if cell.IsMissing() {
		return nil, nil
	}
	f, err := cell.Float()
	if err != nil {
		return nil, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("amount %v is not finite", f)
	}
	a := Amount(f)
	return &a, nil
}

func stringOr(cell table.Value, fallback string) string {
	if cell.IsMissing() {
		return fallback
	}
	return cell.Str()
}

func nullable(cell table.Value) *string {
	if cell.IsMissing() {
		return nil
	}
	s := cell.Str()
	return &s
}

func truncateRunes(value string, max int) string {
	if max <= 0 || utf8.RuneCountInString(value) <= max {
		return value
	}
	count := 0
	for idx := range value {
		if count == max {
			return value[:idx]
		}
		count++
	}
	return value
}

func (n Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n Normalizer) descriptionLimit() int {
	if n.DescriptionLimit > 0 {
		return n.DescriptionLimit
	}
	return DefaultDescriptionLimit
}
