package project

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

// testCatalog mirrors a small explore-page data set: mixed categories,
// overlapping skills, varying open-role counts and activity times.
func testCatalog() []*Project {
	return []*Project{
		{
			ID: "p1", Title: "AI-Powered Healthcare Assistant",
			Description: "ML tool for medical diagnostics.",
			Category:    "Healthcare",
			Skills:      []string{"Machine Learning", "Python", "Data Science"},
			OpenRoles:   []OpenRole{{ID: "r1"}, {ID: "r2"}},
			CreatedAt:   day(15), LastActivityAt: day(20),
		},
		{
			ID: "p2", Title: "Sustainable Urban Farming Platform",
			Description: "Connect urban farmers with local markets.",
			Category:    "Sustainability",
			Skills:      []string{"React", "Node.js", "Agriculture"},
			OpenRoles:   []OpenRole{{ID: "r3"}, {ID: "r4"}, {ID: "r5"}},
			CreatedAt:   day(20), LastActivityAt: day(26),
		},
		{
			ID: "p3", Title: "AR Educational App for Children",
			Description: "Augmented reality app for learning.",
			Category:    "Education",
			Skills:      []string{"Unity", "AR Development"},
			OpenRoles:   nil,
			CreatedAt:   day(8), LastActivityAt: day(25),
		},
		{
			ID: "p4", Title: "Blockchain Supply Chain Tracker",
			Description: "Transparent supply chain for ethical sourcing.",
			Category:    "Blockchain",
			Skills:      []string{"Solidity", "React", "Supply Chain"},
			OpenRoles:   []OpenRole{{ID: "r6"}, {ID: "r7"}},
			CreatedAt:   day(28), LastActivityAt: day(27),
		},
		{
			ID: "p5", Title: "Community Health Outreach",
			Description: "Organizing local health workshops.",
			Category:    "Healthcare",
			Skills:      []string{"Content Creation", "Marketing"},
			OpenRoles:   nil,
			CreatedAt:   day(15), LastActivityAt: day(18),
		},
	}
}

func ids(ps []*Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func assertOrder(t *testing.T, got []*Project, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d projects %v, got %d %v", len(want), want, len(got), ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (full order %v)", i, id, got[i].ID, ids(got))
		}
	}
}

func TestFilter_NoOptionsReturnsCatalogOrder(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{})
	assertOrder(t, got, "p1", "p2", "p3", "p4", "p5")
}

func TestFilter_DoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	FilterProjects(catalog, ListingQuery{SortBy: SortNewest})
	assertOrder(t, catalog, "p1", "p2", "p3", "p4", "p5")
}

func TestFilter_TextMatchesTitleDescriptionOrSkill(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"title match case-insensitive", "HEALTHCARE", []string{"p1"}},
		{"description match", "ethical sourcing", []string{"p4"}},
		{"skill match", "react", []string{"p2", "p4"}},
		{"substring of skill", "learn", []string{"p1", "p3"}},
		{"no match", "quantum", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProjects(testCatalog(), ListingQuery{Text: tt.text})
			assertOrder(t, got, tt.want...)
		})
	}
}

func TestFilter_CategoryExactMatch(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{Category: "Healthcare"})
	assertOrder(t, got, "p1", "p5")
}

func TestFilter_CategorySentinelDisablesFilter(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{Category: "All Categories"})
	assertOrder(t, got, "p1", "p2", "p3", "p4", "p5")
}

func TestFilter_SkillsAnyOf(t *testing.T) {
	// A project matches if it contains ANY requested tag.
	got := FilterProjects(testCatalog(), ListingQuery{Skills: []string{"React"}})
	assertOrder(t, got, "p2", "p4")

	got = FilterProjects(testCatalog(), ListingQuery{Skills: []string{"React", "Unity"}})
	assertOrder(t, got, "p2", "p3", "p4")
}

func TestFilter_SkillsExactTagOnly(t *testing.T) {
	// Skill tags match exactly, unlike free text.
	got := FilterProjects(testCatalog(), ListingQuery{Skills: []string{"react"}})
	assertOrder(t, got)
}

func TestFilter_HasOpenRoles(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{HasOpenRoles: true})
	assertOrder(t, got, "p1", "p2", "p4")
}

func TestFilter_SortNewest(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{SortBy: SortNewest})
	// p1 and p5 share a creation date; the stable sort keeps p1 first.
	assertOrder(t, got, "p4", "p2", "p1", "p5", "p3")

	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Errorf("creation timestamps not non-increasing at %d", i)
		}
	}
}

func TestFilter_SortActivity(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{SortBy: SortActivity})
	assertOrder(t, got, "p4", "p2", "p3", "p1", "p5")
}

func TestFilter_SortOpenings(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{SortBy: SortOpenings})
	// p1 and p4 both have two roles; stable sort keeps p1 ahead. p3 and p5
	// have none and keep their relative order at the tail.
	assertOrder(t, got, "p2", "p1", "p4", "p3", "p5")
}

func TestFilter_UnknownSortKeepsOrder(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{SortBy: "bogus"})
	assertOrder(t, got, "p1", "p2", "p3", "p4", "p5")
}

func TestFilter_CombinedFiltersEmptyResultIsValid(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{
		Category:     "Healthcare",
		HasOpenRoles: true,
	})
	assertOrder(t, got, "p1")

	// Healthcare projects without open roles exist, but none match both
	// filters after narrowing further; empty is a valid outcome.
	got = FilterProjects(testCatalog(), ListingQuery{
		Category:     "Education",
		HasOpenRoles: true,
	})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestFilter_FiltersCompose(t *testing.T) {
	got := FilterProjects(testCatalog(), ListingQuery{
		Text:         "app",
		HasOpenRoles: false,
		SortBy:       SortNewest,
	})
	assertOrder(t, got, "p3")
}

func TestFilter_EmptyCatalog(t *testing.T) {
	got := FilterProjects(nil, ListingQuery{Text: "anything", SortBy: SortNewest})
	if len(got) != 0 {
		t.Fatalf("expected empty result for empty catalog, got %d", len(got))
	}
}
