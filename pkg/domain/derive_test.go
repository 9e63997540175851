package domain

import "testing"

func makeApp(id, company, position, location, source string, status Status) Application {
	return Application{
		ID:            id,
		CompanyName:   company,
		PositionTitle: position,
		Location:      location,
		Source:        source,
		Status:        status,
	}
}

func sampleApps() []Application {
	return []Application{
		makeApp("1", "Acme Corp", "Backend Engineer", "Kigali", "LinkedIn", StatusApplied),
		makeApp("2", "Globex", "Frontend Engineer", "Remote", "Indeed", StatusInterview),
		makeApp("3", "Initech", "Platform Engineer", "Berlin", "Referral", StatusOffer),
		makeApp("4", "Umbrella", "SRE", "Remote", "LinkedIn", StatusRejected),
		makeApp("5", "Hooli", "Data Engineer", "Kigali", "Company site", StatusApplied),
		makeApp("6", "Stark Industries", "Backend Engineer", "Remote", "LinkedIn", StatusInReview),
		makeApp("7", "Wayne Enterprises", "Security Engineer", "Gotham", "Referral", StatusWithdrawn),
	}
}

func TestFilterStatusExactMatch(t *testing.T) {
	apps := sampleApps()
	got := FilterStatus(apps, StatusApplied)
	if len(got) != 2 {
		t.Fatalf("FilterStatus(applied) returned %d apps, want 2", len(got))
	}
	for _, a := range got {
		if a.Status != StatusApplied {
			t.Errorf("filtered set contains status %q", a.Status)
		}
	}
}

func TestFilterStatusAllPassesEverything(t *testing.T) {
	apps := sampleApps()
	got := FilterStatus(apps, StatusAll)
	if len(got) != len(apps) {
		t.Errorf("FilterStatus(all) returned %d apps, want %d", len(got), len(apps))
	}
}

func TestFilterStatusNoMatches(t *testing.T) {
	apps := sampleApps()
	got := FilterStatus(apps, StatusClosed)
	if len(got) != 0 {
		t.Errorf("FilterStatus(closed) returned %d apps, want 0", len(got))
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	apps := sampleApps()
	got := Search(apps, "acme")
	if len(got) != 1 || got[0].CompanyName != "Acme Corp" {
		t.Fatalf("Search(acme) = %v, want just Acme Corp", got)
	}
}

func TestSearchCoversAllFourFields(t *testing.T) {
	apps := sampleApps()
	cases := []struct {
		query string
		want  int
	}{
		{"globex", 1},    // company name
		{"backend", 2},   // position title
		{"kigali", 2},    // location
		{"linkedin", 3},  // source
		{"REMOTE", 3},    // case-insensitive
		{"zzz", 0},       // no match
		{"", len(apps)},  // empty matches all
		{"  ", len(apps)}, // whitespace-only matches all
	}
	for _, tc := range cases {
		got := Search(apps, tc.query)
		if len(got) != tc.want {
			t.Errorf("Search(%q) returned %d apps, want %d", tc.query, len(got), tc.want)
		}
	}
}

func TestSearchResultsSatisfyPredicate(t *testing.T) {
	apps := sampleApps()
	for _, a := range Search(apps, "engineer") {
		if !MatchesQuery(a, "engineer") {
			t.Errorf("search result %q does not match its own query", a.ID)
		}
	}
}

func TestDeriveFilterThenSearch(t *testing.T) {
	apps := sampleApps()
	got := Derive(apps, StatusApplied, "hooli")
	if len(got) != 1 || got[0].ID != "5" {
		t.Fatalf("Derive(applied, hooli) = %v, want app 5", got)
	}
	// A search that only matches outside the filter yields nothing
	if got := Derive(apps, StatusOffer, "acme"); len(got) != 0 {
		t.Errorf("Derive(offer, acme) returned %d apps, want 0", len(got))
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{10, 2},
		{11, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.n); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestPageSlices(t *testing.T) {
	apps := sampleApps() // 7 items, PageSize 5

	p1 := Page(apps, 1)
	if len(p1) != 5 {
		t.Fatalf("page 1 has %d items, want 5", len(p1))
	}
	if p1[0].ID != "1" || p1[4].ID != "5" {
		t.Errorf("page 1 = [%s..%s], want [1..5]", p1[0].ID, p1[4].ID)
	}

	p2 := Page(apps, 2)
	if len(p2) != 2 {
		t.Fatalf("page 2 has %d items, want 2", len(p2))
	}
	if p2[0].ID != "6" {
		t.Errorf("page 2 starts at %s, want 6", p2[0].ID)
	}
}

func TestPageOutOfRange(t *testing.T) {
	apps := sampleApps()
	if got := Page(apps, 0); got != nil {
		t.Errorf("Page(0) = %v, want nil", got)
	}
	if got := Page(apps, 3); got != nil {
		t.Errorf("Page(3) = %v, want nil", got)
	}
	if got := Page(nil, 1); got != nil {
		t.Errorf("Page(empty, 1) = %v, want nil", got)
	}
}

func TestCountStats(t *testing.T) {
	stats := CountStats(sampleApps())
	if stats.Total != 7 {
		t.Errorf("Total = %d, want 7", stats.Total)
	}
	if stats.Applied != 2 {
		t.Errorf("Applied = %d, want 2", stats.Applied)
	}
	if stats.Interview != 1 {
		t.Errorf("Interview = %d, want 1", stats.Interview)
	}
	if stats.Offer != 1 {
		t.Errorf("Offer = %d, want 1", stats.Offer)
	}
	if stats.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", stats.Rejected)
	}
}

func TestStatsIgnoreFilterAndSearch(t *testing.T) {
	// Stats are computed over the full set; deriving a narrow view
	// must not change what CountStats reports for the source data.
	apps := sampleApps()
	before := CountStats(apps)
	_ = Derive(apps, StatusOffer, "initech")
	after := CountStats(apps)
	if before != after {
		t.Errorf("stats changed after derivation: %+v != %+v", before, after)
	}
}
