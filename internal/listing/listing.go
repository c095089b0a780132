package listing

import (
	"strconv"
	"strings"
)

// JobListing is one normalized output record.
type JobListing struct {
	Title           string        `json:"title"`
	Company         string        `json:"company"`
	CompanyURL      *string       `json:"company_url"`
	JobURL          string        `json:"job_url"`
	Location        string        `json:"location"`
	City            *string       `json:"city"`
	State           *string       `json:"state"`
	Country         *string       `json:"country"`
	IsRemote        bool          `json:"is_remote"`
	JobType         *string       `json:"job_type"`
	DatePosted      string        `json:"date_posted"`
	Description     string        `json:"description"`
	Site            string        `json:"site"`
	JobLevel        *string       `json:"job_level"`
	CompanyIndustry *string       `json:"company_industry"`
	SalarySource    *string       `json:"salary_source"`
	Compensation    *Compensation `json:"compensation,omitempty"`
}

type Compensation struct {
	MinAmount *Amount `json:"min_amount"`
	MaxAmount *Amount `json:"max_amount"`
	Interval  string  `json:"interval"`
	Currency  string  `json:"currency"`
}

// Amount is a salary figure. It always encodes with a fractional part so
// whole numbers read as 80000.0 rather than 80000.
type Amount float64

func (a Amount) MarshalJSON() ([]byte, error) {
	out := strconv.FormatFloat(float64(a), 'f', -1, 64)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return []byte(out), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}
