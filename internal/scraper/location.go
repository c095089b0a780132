package scraper

import "strings"

// splitLocation turns "City, ST" or "City, State, Country" into parts.
// Remote markers and empty segments are dropped.
func splitLocation(location string) (city, state, country string) {
	var parts []string
	for _, part := range strings.Split(location, ",") {
		part = cleanText(part)
		if part == "" || strings.EqualFold(part, "remote") {
			continue
		}
		parts = append(parts, part)
	}

	switch len(parts) {
	case 0:
	case 1:
		city = parts[0]
	case 2:
		city, state = parts[0], parts[1]
	default:
		city, state, country = parts[0], parts[1], parts[len(parts)-1]
	}

	// Indeed appends ZIP codes to states: "Austin, TX 78701".
	if fields := strings.Fields(state); len(fields) == 2 && isDigits(fields[1]) {
		state = fields[0]
	}
	return city, state, country
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
