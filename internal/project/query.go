package project

import (
	"sort"
	"strings"
)

// FilterProjects narrows the full catalog to the listings matching q and
// orders the result. The catalog is expected in stored (insertion) order;
// relevance keeps it, and every sort is stable so ties preserve the catalog's
// relative order. An empty result is a valid outcome, not an error.
func FilterProjects(catalog []*Project, q ListingQuery) []*Project {
	results := make([]*Project, len(catalog))
	copy(results, catalog)

	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		results = keep(results, func(p *Project) bool {
			return matchesText(p, needle)
		})
	}

	if q.Category != "" && q.Category != "All Categories" {
		results = keep(results, func(p *Project) bool {
			return p.Category == q.Category
		})
	}

	if len(q.Skills) > 0 {
		results = keep(results, func(p *Project) bool {
			return hasAnySkill(p, q.Skills)
		})
	}

	if q.HasOpenRoles {
		results = keep(results, func(p *Project) bool {
			return len(p.OpenRoles) > 0
		})
	}

	switch q.SortBy {
	case SortNewest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	case SortActivity:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].LastActivityAt.After(results[j].LastActivityAt)
		})
	case SortOpenings:
		sort.SliceStable(results, func(i, j int) bool {
			return len(results[i].OpenRoles) > len(results[j].OpenRoles)
		})
	default:
		// relevance: input catalog order, no scoring model.
	}

	return results
}

// matchesText reports whether the lowercased needle appears in the title,
// description, or any skill tag.
func matchesText(p *Project, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, skill := range p.Skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}

// hasAnySkill reports whether the project lists at least one of the wanted
// tags (inclusive OR, exact match).
func hasAnySkill(p *Project, wanted []string) bool {
	for _, w := range wanted {
		for _, skill := range p.Skills {
			if skill == w {
				return true
			}
		}
	}
	return false
}

func keep(in []*Project, pred func(*Project) bool) []*Project {
	out := in[:0]
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
