package domain

import "strings"

// PageSize is the fixed number of rows shown per list page.
const PageSize = 5

// StatusAll is the filter value that passes every status.
const StatusAll Status = "all"

// FilterStatus returns the subset of apps whose status equals s.
// StatusAll returns apps unchanged.
func FilterStatus(apps []Application, s Status) []Application {
	if s == StatusAll {
		return apps
	}
	out := make([]Application, 0, len(apps))
	for _, a := range apps {
		if a.Status == s {
			out = append(out, a)
		}
	}
	return out
}

// MatchesQuery reports whether a contains q as a case-insensitive
// substring of its company name, position title, location or source.
// An empty query matches everything.
func MatchesQuery(a Application, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.CompanyName), q) ||
		strings.Contains(strings.ToLower(a.PositionTitle), q) ||
		strings.Contains(strings.ToLower(a.Location), q) ||
		strings.Contains(strings.ToLower(a.Source), q)
}

// Search returns the subset of apps matching q per MatchesQuery.
func Search(apps []Application, q string) []Application {
	if strings.TrimSpace(q) == "" {
		return apps
	}
	out := make([]Application, 0, len(apps))
	for _, a := range apps {
		if MatchesQuery(a, q) {
			out = append(out, a)
		}
	}
	return out
}

// Derive applies the status filter, then the search query.
func Derive(apps []Application, s Status, q string) []Application {
	return Search(FilterStatus(apps, s), q)
}

// TotalPages returns ceil(n / PageSize). Zero items is zero pages.
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Page returns the 1-based page p of apps. Pages outside [1, TotalPages]
// return an empty slice.
func Page(apps []Application, p int) []Application {
	if p < 1 {
		return nil
	}
	start := (p - 1) * PageSize
	if start >= len(apps) {
		return nil
	}
	end := start + PageSize
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end]
}

// Stats holds aggregate counts over the full, unfiltered record set.
// The counts never change while only the filter or search query does.
type Stats struct {
	Total     int
	Applied   int
	Interview int
	Offer     int
	Rejected  int
}

// CountStats computes Stats over apps.
func CountStats(apps []Application) Stats {
	s := Stats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case StatusApplied:
			s.Applied++
		case StatusInterview:
			s.Interview++
		case StatusOffer:
			s.Offer++
		case StatusRejected:
			s.Rejected++
		}
	}
	return s
}
