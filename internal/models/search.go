package models

// SearchParams captures the normalized search inputs used by scrapers.
type SearchParams struct {
	Query        string
	Location     string
	Country      string
	Limit        int
	JobType      string
	Hours        int
	FetchDetails bool
}
