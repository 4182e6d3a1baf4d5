package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/sources"
)

// Match is the outcome of scoring one intent, filter or free text against
// one person.
type Match struct {
	Score       int
	Explanation string
}

// matcher scores intents against people at a fixed instant.
type matcher struct {
	resolve func(string) *core.Source
	now     time.Time
}

func (m matcher) match(intent core.Intent, p *core.Person) (Match, bool) {
	switch intent.Type {
	case core.IntentCompany:
		return matchCompany(intent.Value, p)
	case core.IntentSource:
		return m.matchSource(intent.Value, p)
	case core.IntentRole:
		return matchRole(intent.Value, p)
	case core.IntentWarmth:
		return matchWarmth(parseLevels(intent.Value), p)
	case core.IntentTime:
		days, err := strconv.Atoi(strings.TrimSpace(intent.Value))
		if err != nil {
			return Match{}, false
		}
		return m.matchAddedWithin(days, p)
	case core.IntentTag:
		return matchTag(intent.Value, p)
	case core.IntentName:
		return scoreFreeText(intent.Value, p)
	}
	// Owner intents have nothing to compare against on a person.
	return Match{}, false
}

func matchCompany(company string, p *core.Person) (Match, bool) {
	want := strings.ToLower(strings.TrimSpace(company))
	have := strings.ToLower(p.Org)
	if want == "" || have == "" {
		return Match{}, false
	}
	if have == want {
		return Match{Score: scoreCompanyExact, Explanation: "Company: " + p.Org}, true
	}
	if strings.Contains(have, want) || strings.Contains(want, have) {
		return Match{Score: scoreCompanyPartial, Explanation: "Company match: " + p.Org}, true
	}
	return Match{}, false
}

// matchSource compares resolved sources: same name scores higher than a
// shared category.
func (m matcher) matchSource(source string, p *core.Person) (Match, bool) {
	if p.Source == "" {
		return Match{}, false
	}
	have := m.resolve(p.Source)
	want := m.resolve(source)
	if have == nil || want == nil {
		return Match{}, false
	}
	if strings.EqualFold(have.Name, want.Name) {
		return Match{Score: scoreSourceExact, Explanation: "Source: " + have.Name}, true
	}
	if have.Category == want.Category {
		label := sources.CategoryInfo(have.Category).Label
		return Match{Score: scoreSourceCategory, Explanation: "Source category: " + label}, true
	}
	return Match{}, false
}

func matchRole(role string, p *core.Person) (Match, bool) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" || !containsFold(p.Title, role) {
		return Match{}, false
	}
	return Match{Score: scoreRole, Explanation: "Role: " + p.Title}, true
}

func matchWarmth(levels []core.Warmth, p *core.Person) (Match, bool) {
	for _, level := range levels {
		if p.Warmth == level {
			return Match{Score: scoreWarmth, Explanation: "Warmth: " + strings.ToLower(p.Warmth.String())}, true
		}
	}
	return Match{}, false
}

// parseLevels reads a comma-joined warmth list such as "1,2,3". Entries
// that are not integers are skipped.
func parseLevels(value string) []core.Warmth {
	parts := strings.Split(value, ",")
	levels := make([]core.Warmth, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		levels = append(levels, core.Warmth(n))
	}
	return levels
}

func (m matcher) matchAddedWithin(days int, p *core.Person) (Match, bool) {
	if p.CreatedAt.IsZero() {
		return Match{}, false
	}
	cutoff := m.now.Add(-time.Duration(days) * 24 * time.Hour)
	if p.CreatedAt.Before(cutoff) {
		return Match{}, false
	}
	return Match{Score: scoreTime, Explanation: "Added " + relativeTime(p.CreatedAt, m.now)}, true
}

func matchTag(tag string, p *core.Person) (Match, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return Match{}, false
	}
	for _, t := range p.Tags {
		if containsFold(t, tag) {
			return Match{Score: scoreTag, Explanation: "Tag: " + t}, true
		}
	}
	return Match{}, false
}

// relativeTime renders how long before now t was, in whole days, weeks or
// months.
func relativeTime(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week") + " ago"
	default:
		return plural(days/30, "month") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
