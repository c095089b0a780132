package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jimezsa/jamscrape/internal/models"
)

const (
	salaryNumber = `(\d{1,3}(?:[,.]\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d+)?)\s*(k)?`
	salaryPeriod = `(?:\s*/\s*(?:hr|hour|day|wk|week|mo|month|yr|year))?`
	salaryMarker = `(?:(USD|EUR|GBP|CAD|AUD|CHF)\b|([$€£]))`
)

// Amounts only count when a currency symbol or code is attached, so
// "3-5 years" in a description is never read as pay.
var (
	salaryRangePattern  = regexp.MustCompile(`(?i)([$€£])?\s*` + salaryNumber + salaryPeriod + `\s*(?:-|–|to)\s*([$€£])?\s*` + salaryNumber + `(?:\s*` + salaryMarker + `)?`)
	salarySymbolPattern = regexp.MustCompile(`([$€£])\s*` + salaryNumber + `\b`)
	salaryCodePattern   = regexp.MustCompile(`(?i)` + salaryNumber + `\s*` + salaryMarker)
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
}

// parseSalaryText extracts a compensation from free text such as
// "$80,000 - $120,000 a year" or "€45/hr". It returns nil when no amount
// with a currency marker is found.
func parseSalaryText(text string) *models.Compensation {
	text = cleanText(text)
	if text == "" {
		return nil
	}

	comp := &models.Compensation{Interval: intervalFromText(text)}
	if !matchSalaryRange(text, comp) && !matchSalaryAmount(text, comp) {
		return nil
	}
	if comp.Interval == "" {
		comp.Interval = guessInterval(comp)
	}
	return comp
}

func matchSalaryRange(text string, comp *models.Compensation) bool {
	for _, match := range salaryRangePattern.FindAllStringSubmatch(text, -1) {
		currency := currencyMarker(match[1], match[4], match[7], match[8])
		if currency == "" {
			continue
		}
		low := salaryAmount(match[2], match[3] != "" || match[6] != "")
		high := salaryAmount(match[5], match[6] != "")
		if low == nil && high == nil {
			continue
		}
		comp.Currency, comp.MinAmount, comp.MaxAmount = currency, low, high
		return true
	}
	return false
}

func matchSalaryAmount(text string, comp *models.Compensation) bool {
	var currency, number, thousands string
	if match := salarySymbolPattern.FindStringSubmatch(text); match != nil {
		currency, number, thousands = currencyMarker(match[1]), match[2], match[3]
	} else if match := salaryCodePattern.FindStringSubmatch(text); match != nil {
		currency, number, thousands = currencyMarker(match[3], match[4]), match[1], match[2]
	} else {
		return false
	}

	value := salaryAmount(number, thousands != "")
	if value == nil {
		return false
	}
	comp.Currency, comp.MinAmount, comp.MaxAmount = currency, value, value
	return true
}

// currencyMarker returns the ISO code for the first non-empty symbol or code.
func currencyMarker(markers ...string) string {
	for _, marker := range markers {
		marker = strings.ToUpper(strings.TrimSpace(marker))
		if marker == "" {
			continue
		}
		if code, ok := currencySymbols[marker]; ok {
			return code
		}
		return marker
	}
	return ""
}

func salaryAmount(raw string, thousands bool) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.Count(raw, ".") > 0 && strings.Count(raw, ",") == 0 && len(raw)-strings.LastIndex(raw, ".") == 4 {
		// European thousands separator: 60.000
		raw = strings.ReplaceAll(raw, ".", "")
	}
	raw = strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if thousands {
		value *= 1000
	}
	return &value
}

func intervalFromText(text string) string {
	value := strings.ToLower(text)
	switch {
	case containsAny(value, "/hr", "/hour", "an hour", "per hour", "hourly", "pro stunde"):
		return models.IntervalHourly
	case containsAny(value, "/day", "a day", "per day", "daily"):
		return models.IntervalDaily
	case containsAny(value, "/wk", "/week", "a week", "per week", "weekly"):
		return models.IntervalWeekly
	case containsAny(value, "/mo", "/month", "a month", "per month", "monthly", "pro monat"):
		return models.IntervalMonthly
	case containsAny(value, "/yr", "/year", "a year", "per year", "yearly", "annual", "pro jahr"):
		return models.IntervalYearly
	}
	return ""
}

// guessInterval infers the pay period from magnitude when the text does not
// say. Small figures are hourly, mid-sized ones monthly.
func guessInterval(comp *models.Compensation) string {
	ref := comp.MaxAmount
	if ref == nil {
		ref = comp.MinAmount
	}
	switch {
	case *ref < 350:
		return models.IntervalHourly
	case *ref < 15000:
		return models.IntervalMonthly
	default:
		return models.IntervalYearly
	}
}

func normalizeInterval(unit string) string {
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "HOUR", "HOURLY":
		return models.IntervalHourly
	case "DAY", "DAILY":
		return models.IntervalDaily
	case "WEEK", "WEEKLY":
		return models.IntervalWeekly
	case "MONTH", "MONTHLY":
		return models.IntervalMonthly
	case "YEAR", "YEARLY", "ANNUAL":
		return models.IntervalYearly
	default:
		return ""
	}
}

func containsAny(value string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(value, needle) {
			return true
		}
	}
	return false
}
