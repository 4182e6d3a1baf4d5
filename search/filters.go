package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/smartsearch/core"
)

// filterCheck scores one populated filter field against a person.
type filterCheck func(p *core.Person) (Match, bool)

// ApplyFilters returns the people satisfying every populated field of
// filters, scored with the same weights as intent search and sorted by
// descending score.
//
// fc carries data the classifier resolved alongside the filters: the ids
// of people linked to matching deals and the sector of each organization.
// It may be nil when no deal or sector filter is set. A filter set with no
// populated fields matches nobody.
func (s *Searcher) ApplyFilters(filters *core.Filters, people []*core.Person, fc *core.FilterContext) ([]*core.SearchResult, error) {
	if filters == nil {
		return nil, fmt.Errorf("%w: filters required", core.ErrInvalidFilters)
	}
	if err := core.ValidateFilters(filters); err != nil {
		return nil, err
	}
	if fc == nil {
		fc = &core.FilterContext{}
	}

	checks := s.filterChecks(filters, fc)
	results := make([]*core.SearchResult, 0)
	if len(checks) == 0 {
		s.logger.Debug("no populated filters")
		return results, nil
	}

	for _, person := range people {
		if person == nil {
			continue
		}
		result := &core.SearchResult{PersonId: person.Id}
		matched := 0
		for _, check := range checks {
			match, ok := check(person)
			if !ok {
				break
			}
			matched++
			result.Score += match.Score
			result.Explanations = append(result.Explanations, match.Explanation)
		}
		if matched == len(checks) {
			results = append(results, result)
		}
	}

	rank(results)
	s.logger.Debug("filters applied", "filters", len(checks), "results", len(results))
	return results, nil
}

func (s *Searcher) filterChecks(f *core.Filters, fc *core.FilterContext) []filterCheck {
	m := s.matcher()
	var checks []filterCheck

	if v := strings.TrimSpace(f.Company); v != "" {
		checks = append(checks, func(p *core.Person) (Match, bool) { return matchCompany(v, p) })
	}
	if v := strings.TrimSpace(f.Name); v != "" {
		checks = append(checks, func(p *core.Person) (Match, bool) { return matchName(v, p) })
	}
	if v := strings.TrimSpace(f.Title); v != "" {
		checks = append(checks, func(p *core.Person) (Match, bool) { return matchRole(v, p) })
	}
	if v := strings.TrimSpace(f.Source); v != "" {
		checks = append(checks, func(p *core.Person) (Match, bool) { return m.matchSource(v, p) })
	}
	if len(f.Warmth) > 0 {
		levels := make([]core.Warmth, len(f.Warmth))
		for i, w := range f.Warmth {
			levels[i] = core.Warmth(w)
		}
		checks = append(checks, func(p *core.Person) (Match, bool) { return matchWarmth(levels, p) })
	}
	if f.AddedWithinDays != nil {
		days := *f.AddedWithinDays
		checks = append(checks, func(p *core.Person) (Match, bool) { return m.matchAddedWithin(days, p) })
	}
	if v := strings.ToLower(strings.TrimSpace(f.Location)); v != "" {
		checks = append(checks, func(p *core.Person) (Match, bool) {
			loc := p.Location()
			if !containsFold(loc, v) {
				return Match{}, false
			}
			return Match{Score: scoreLocation, Explanation: "Location: " + loc}, true
		})
	}
	if v := strings.ToLower(strings.TrimSpace(f.Email)); v != "" {
		checks = append(checks, func(p *core.Person) (Match, bool) {
			if !containsFold(p.Email, v) {
				return Match{}, false
			}
			return Match{Score: scoreEmail, Explanation: "Email: " + p.Email}, true
		})
	}
	if len(f.Tags) > 0 {
		tags := f.Tags
		checks = append(checks, func(p *core.Person) (Match, bool) {
			for _, tag := range tags {
				if match, ok := matchTag(tag, p); ok {
					return match, true
				}
			}
			return Match{}, false
		})
	}
	if len(f.OrgKind) > 0 {
		kinds := f.OrgKind
		checks = append(checks, func(p *core.Person) (Match, bool) {
			for _, kind := range kinds {
				if p.OrgKind != "" && strings.EqualFold(p.OrgKind, strings.TrimSpace(kind)) {
					return Match{Score: scoreOrgKind, Explanation: "Organization type: " + p.OrgKind}, true
				}
			}
			return Match{}, false
		})
	}
	if v := strings.ToLower(strings.TrimSpace(f.OrgSector)); v != "" {
		sectors := fc.OrgSectors
		checks = append(checks, func(p *core.Person) (Match, bool) {
			if p.OrgId == nil {
				return Match{}, false
			}
			sector, ok := sectors[*p.OrgId]
			if !ok || !(containsFold(sector.Sector, v) || containsFold(sector.SubSector, v)) {
				return Match{}, false
			}
			label := sector.Sector
			if sector.SubSector != "" {
				label += " / " + sector.SubSector
			}
			return Match{Score: scoreOrgSector, Explanation: "Sector: " + label}, true
		})
	}
	if f.HasDealContext() {
		ids := fc.MatchedPersonIds
		checks = append(checks, func(p *core.Person) (Match, bool) {
			if !slices.Contains(ids, p.Id) {
				return Match{}, false
			}
			return Match{Score: scoreDeal, Explanation: "Linked to matching deal"}, true
		})
	}
	return checks
}

// matchName applies the name tiers of free-text scoring only.
func matchName(name string, p *core.Person) (Match, bool) {
	match, ok := scoreFreeText(name, p)
	if !ok || match.Score < scoreNameContains {
		return Match{}, false
	}
	return match, true
}
