package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/smartsearch/core"
)

// scoreFreeText scores loose text against a person. Tiers are checked from
// strongest to weakest and the first that applies is returned:
//
//	100 exact full name
//	 80 full, first or last name prefix
//	 60 full name substring
//	 50 email substring
//	 40 title substring
//	 40 organization substring
//	 30 location substring
func scoreFreeText(text string, p *core.Person) (Match, bool) {
	text = strings.TrimSpace(text)
	q := strings.ToLower(text)
	if q == "" {
		return Match{}, false
	}

	full := strings.ToLower(p.FullName())
	first := strings.ToLower(p.FirstName)
	last := strings.ToLower(p.LastName)

	switch {
	case full != "" && full == q:
		return Match{Score: scoreNameExact, Explanation: "Exact name match"}, true
	case strings.HasPrefix(full, q) || strings.HasPrefix(first, q) || strings.HasPrefix(last, q):
		return Match{Score: scoreNamePrefix, Explanation: fmt.Sprintf("Name starts with %q", text)}, true
	case strings.Contains(full, q):
		return Match{Score: scoreNameContains, Explanation: fmt.Sprintf("Name contains %q", text)}, true
	case containsFold(p.Email, q):
		return Match{Score: scoreEmail, Explanation: "Email: " + p.Email}, true
	case containsFold(p.Title, q):
		return Match{Score: scoreTitle, Explanation: "Title: " + p.Title}, true
	case containsFold(p.Org, q):
		return Match{Score: scoreOrg, Explanation: "Company: " + p.Org}, true
	}
	if loc := p.Location(); containsFold(loc, q) {
		return Match{Score: scoreLocation, Explanation: "Location: " + loc}, true
	}
	return Match{}, false
}

// containsFold reports whether lowered needle occurs in s, ignoring case.
// An empty s never matches.
func containsFold(s, needle string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), needle)
}
