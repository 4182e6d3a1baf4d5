package search

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/smartsearch/core"
)

// parseState is threaded through the extraction steps. Each step returns a
// new state; none mutates the one it was given.
type parseState struct {
	remaining string
	intents   []core.Intent
}

// claim returns a state with the matched span [start, end) cut out of the
// remaining text and intent appended.
func (st parseState) claim(start, end int, intent core.Intent) parseState {
	intents := make([]core.Intent, len(st.intents), len(st.intents)+1)
	copy(intents, st.intents)
	return parseState{
		remaining: st.remaining[:start] + " " + st.remaining[end:],
		intents:   append(intents, intent),
	}
}

func (st parseState) claimMatch(re *regexp.Regexp, intent core.Intent) (parseState, bool) {
	loc := re.FindStringIndex(st.remaining)
	if loc == nil {
		return st, false
	}
	return st.claim(loc[0], loc[1], intent), true
}

type parseStep func(parseState) parseState

// Parser extracts intents from raw queries against a fixed set of
// organizations and sources. Patterns for both are compiled once in
// NewParser, so a Parser can be reused across queries and goroutines.
type Parser struct {
	steps []parseStep
}

// NewParser builds a Parser. knownOrgs supplies the organization names the
// company step looks for and sources the acquisition channels, in
// resolution order.
func NewParser(knownOrgs []string, sources []core.Source) *Parser {
	return &Parser{
		steps: []parseStep{
			extractOwner,
			extractTime,
			extractWarmth,
			sourceStep(sources),
			companyStep(knownOrgs),
			extractRole,
		},
	}
}

// Parse extracts intents from a raw query.
//
// Extraction runs as a fixed sequence of steps: owner, time window, warmth,
// source, company, role. Each step claims at most one intent and removes the
// text it matched so later steps cannot see it. Filler words are then
// stripped and whatever is left becomes a name intent and the query's free
// text.
func (p *Parser) Parse(raw string) *core.Query {
	raw = strings.TrimSpace(raw)
	st := parseState{remaining: raw}
	for _, step := range p.steps {
		st = step(st)
	}

	query := &core.Query{Raw: raw, Intents: st.intents}
	residual := stripFiller(st.remaining)
	if utf8.RuneCountInString(residual) > 1 {
		query.FreeText = residual
		query.Intents = append(query.Intents, core.Intent{
			Type:  core.IntentName,
			Value: residual,
			Label: "Name: " + strconv.Quote(residual),
		})
	}
	if query.Intents == nil {
		query.Intents = []core.Intent{}
	}
	return query
}

// Parse is a one-shot NewParser(knownOrgs, sources).Parse(raw).
func Parse(raw string, knownOrgs []string, sources []core.Source) *core.Query {
	return NewParser(knownOrgs, sources).Parse(raw)
}

func extractOwner(st parseState) parseState {
	for _, o := range ownerPatterns {
		intent := core.Intent{
			Type:  core.IntentOwner,
			Value: o.id,
			Label: "Sourced by " + capitalize(o.name),
		}
		for _, re := range o.patterns {
			if next, ok := st.claimMatch(re, intent); ok {
				return next
			}
		}
	}
	return st
}

func extractTime(st parseState) parseState {
	lower := strings.ToLower(st.remaining)
	for _, p := range phrasePatterns {
		if !strings.Contains(lower, p.phrase) {
			continue
		}
		intent := core.Intent{
			Type:  core.IntentTime,
			Value: strconv.Itoa(p.days),
			Label: "Added " + p.phrase,
		}
		next, _ := st.claimMatch(p.re, intent)
		return next
	}
	return st
}

func extractWarmth(st parseState) parseState {
	for _, w := range warmthPatterns {
		intent := core.Intent{
			Type:  core.IntentWarmth,
			Value: w.levels,
			Label: "Warmth: " + w.keyword,
		}
		if next, ok := st.claimMatch(w.re, intent); ok {
			return next
		}
	}
	return st
}

// claimPattern pairs an intent with the patterns that claim it, tried in
// order.
type claimPattern struct {
	intent   core.Intent
	patterns []*regexp.Regexp
}

func claimFirst(st parseState, candidates []claimPattern) parseState {
	for _, c := range candidates {
		for _, re := range c.patterns {
			if next, ok := st.claimMatch(re, c.intent); ok {
				return next
			}
		}
	}
	return st
}

// sourceStep matches source names in registry order. Context phrases such
// as "from Referral" or "LinkedIn contacts" are tried before the bare name,
// and bare names of three characters or fewer are never matched alone.
// Patterns are compiled once when the step is built.
func sourceStep(sources []core.Source) parseStep {
	candidates := make([]claimPattern, 0, len(sources))
	for _, src := range sources {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			continue
		}
		patterns := []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:sourced\s+from|from|via|through|source:?)\s+` + phrasePattern(name)),
			regexp.MustCompile(`(?i)` + wordPattern(name) + `\s+(?:contacts|people|source)\b`),
		}
		if utf8.RuneCountInString(name) > 3 {
			patterns = append(patterns, regexp.MustCompile(`(?i)`+wordPattern(name)))
		}
		candidates = append(candidates, claimPattern{
			intent: core.Intent{
				Type:  core.IntentSource,
				Value: src.Name,
				Label: "Source: " + src.Name,
			},
			patterns: patterns,
		})
	}
	return func(st parseState) parseState {
		return claimFirst(st, candidates)
	}
}

// companyStep matches known organization names, longest first so that
// "Goldman Sachs Asset Management" wins over "Goldman Sachs".
func companyStep(knownOrgs []string) parseStep {
	orgs := orderOrgs(knownOrgs)
	candidates := make([]claimPattern, 0, len(orgs))
	for _, org := range orgs {
		name := wordPattern(org)
		candidates = append(candidates, claimPattern{
			intent: core.Intent{
				Type:  core.IntentCompany,
				Value: org,
				Label: "Company: " + org,
			},
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:people\s+at|contacts\s+at|team\s+at|who\s+works?\s+at|at|from)\s+` + name),
				regexp.MustCompile(`(?i)` + name),
			},
		})
	}
	return func(st parseState) parseState {
		return claimFirst(st, candidates)
	}
}

// orderOrgs trims and de-duplicates org names case-insensitively, drops
// names shorter than two characters and sorts the rest longest first.
// Equal lengths keep their input order.
func orderOrgs(knownOrgs []string) []string {
	seen := make(map[string]struct{}, len(knownOrgs))
	orgs := make([]string, 0, len(knownOrgs))
	for _, org := range knownOrgs {
		org = strings.TrimSpace(org)
		if utf8.RuneCountInString(org) < 2 {
			continue
		}
		key := strings.ToLower(org)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		orgs = append(orgs, org)
	}
	sort.SliceStable(orgs, func(i, j int) bool {
		return utf8.RuneCountInString(orgs[i]) > utf8.RuneCountInString(orgs[j])
	})
	return orgs
}

func extractRole(st parseState) parseState {
	for _, r := range rolePatterns {
		intent := core.Intent{
			Type:  core.IntentRole,
			Value: r.keyword,
			Label: "Role: " + r.keyword,
		}
		if next, ok := st.claimMatch(r.re, intent); ok {
			return next
		}
	}
	return st
}

// stripFiller removes filler words and punctuation-only tokens and
// collapses whitespace.
func stripFiller(text string) string {
	text = fillerPattern.ReplaceAllString(text, " ")
	tokens := spaceRun.Split(strings.TrimSpace(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if strings.IndexFunc(tok, isAlnum) >= 0 {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
