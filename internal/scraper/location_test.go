package scraper

import "testing"

func TestSplitLocation(t *testing.T) {
	cases := []struct {
		input                string
		city, state, country string
	}{
		{"Austin, TX", "Austin", "TX", ""},
		{"Austin, TX 78701", "Austin", "TX", ""},
		{"Munich, Bavaria, Germany", "Munich", "Bavaria", "Germany"},
		{"Berlin", "Berlin", "", ""},
		{"Remote", "", "", ""},
		{"", "", "", ""},
	}

	for _, tc := range cases {
		city, state, country := splitLocation(tc.input)
		if city != tc.city || state != tc.state || country != tc.country {
			t.Fatalf("splitLocation(%q) = %q, %q, %q; want %q, %q, %q", tc.input, city, state, country, tc.city, tc.state, tc.country)
		}
	}
}
