package normalize

// Options carries the values that used to be literals in the page script.
// Priority years are ordered most-recent-first and are injected, never
// derived from the clock.
type Options struct {
	FocusKey      string
	Countries     []string
	AnnualYears   []string
	GrowthYears   []string
	PriorityYears []string
}

// DefaultOptions mirrors the factsheet as published.
func DefaultOptions() Options {
	return Options{
		FocusKey:      "India",
		Countries:     []string{"India", "China", "United States", "Brazil", "Japan"},
		AnnualYears:   []string{"2000", "2005", "2010", "2015", "2020", "2024", "2025", "2030"},
		GrowthYears:   []string{"2021", "2022", "2023", "2024", "2025"},
		PriorityYears: []string{"2025", "2024"},
	}
}

// Fallback returns the fallback list for a policy name ("annual" or
// "growth"); unknown policies get the annual list.
func (o Options) Fallback(policy string) []string {
	if policy == "growth" {
		return o.GrowthYears
	}
	return o.AnnualYears
}
