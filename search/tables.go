package search

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Score weights. Intent matches and external filters share one table.
const (
	scoreCompanyExact   = 100
	scoreCompanyPartial = 80
	scoreSourceExact    = 50
	scoreSourceCategory = 30
	scoreRole           = 60
	scoreWarmth         = 40
	scoreTime           = 30
	scoreTag            = 40

	scoreNameExact    = 100
	scoreNamePrefix   = 80
	scoreNameContains = 60
	scoreEmail        = 50
	scoreTitle        = 40
	scoreOrg          = 40
	scoreLocation     = 30

	scoreOrgKind   = 70
	scoreOrgSector = 70
	scoreDeal      = 90
)

type owner struct {
	name string
	id   string
}

// owners is ordered; the first name with a matching phrase wins.
var owners = []owner{
	{name: "brendan", id: "1"},
	{name: "chris", id: "2"},
	{name: "gabe", id: "3"},
	{name: "gabriel", id: "3"},
}

type timePhrase struct {
	phrase string
	days   int
}

// timePhrases is tested in order by plain substring containment.
var timePhrases = []timePhrase{
	{"this week", 7},
	{"this month", 30},
	{"last week", 7},
	{"last month", 30},
	{"last quarter", 90},
	{"this quarter", 90},
	{"last year", 365},
	{"recent", 30},
	{"recently", 30},
	{"new", 14},
	{"past week", 7},
	{"past month", 30},
}

type warmthKeyword struct {
	keyword string
	levels  string
}

// "not cold" precedes "cold" so the negation is not swallowed.
var warmthKeywords = []warmthKeyword{
	{"not cold", "1,2,3"},
	{"cold", "0"},
	{"warm", "1"},
	{"hot", "2"},
	{"champion", "3"},
	{"champions", "3"},
	{"engaged", "2,3"},
}

// roleKeywords is ordered so longer titles claim text before their parts.
var roleKeywords = []string{
	"ceo",
	"cfo",
	"coo",
	"cto",
	"cio",
	"managing director",
	"managing partner",
	"general partner",
	"partner",
	"director",
	"vp",
	"vice president",
	"head of",
	"president",
	"principal",
	"associate",
	"analyst",
	"co-founder",
	"founder",
	"chairman",
	"investor",
	"advisor",
	"banker",
}

var fillerWords = []string{
	"show", "find", "search", "list", "get", "all", "the", "for", "me",
	"who", "are", "is", "with", "and", "or", "contacts", "people", "outreach",
}

type compiledOwner struct {
	owner
	patterns []*regexp.Regexp
}

type compiledPhrase struct {
	timePhrase
	re *regexp.Regexp
}

type compiledWarmth struct {
	warmthKeyword
	re *regexp.Regexp
}

type compiledRole struct {
	keyword string
	re      *regexp.Regexp
}

var (
	ownerPatterns  []compiledOwner
	phrasePatterns []compiledPhrase
	warmthPatterns []compiledWarmth
	rolePatterns   []compiledRole
	fillerPattern  *regexp.Regexp
	spaceRun       = regexp.MustCompile(`\s+`)
)

func init() {
	for _, o := range owners {
		name := regexp.QuoteMeta(o.name)
		ownerPatterns = append(ownerPatterns, compiledOwner{
			owner: o,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bsourced\s+by\s+` + name + `\b`),
				regexp.MustCompile(`(?i)\b` + name + `['’]s\s+(?:contacts|people|list)\b`),
				regexp.MustCompile(`(?i)\bassigned\s+to\s+` + name + `\b`),
				regexp.MustCompile(`(?i)\bowned\s+by\s+` + name + `\b`),
			},
		})
	}

	for _, p := range timePhrases {
		phrasePatterns = append(phrasePatterns, compiledPhrase{
			timePhrase: p,
			re:         regexp.MustCompile(`(?i)` + regexp.QuoteMeta(p.phrase)),
		})
	}

	for _, w := range warmthKeywords {
		warmthPatterns = append(warmthPatterns, compiledWarmth{
			warmthKeyword: w,
			re:            regexp.MustCompile(`(?i)` + wordPattern(w.keyword)),
		})
	}

	for _, r := range roleKeywords {
		rolePatterns = append(rolePatterns, compiledRole{
			keyword: r,
			re:      regexp.MustCompile(`(?i)` + wordPattern(r)),
		})
	}

	quoted := make([]string, len(fillerWords))
	for i, w := range fillerWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	fillerPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// phrasePattern quotes a phrase for use in a regexp, letting any run of
// whitespace stand in for the spaces between its words.
func phrasePattern(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}

// wordPattern is phrasePattern wrapped in word boundaries. A boundary is
// only added on a side that starts or ends with a word character, so names
// like "AT&T" or "J.P. Morgan." still match.
func wordPattern(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	pattern := phrasePattern(phrase)
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)
	if isWordRune(first) {
		pattern = `\b` + pattern
	}
	if isWordRune(last) {
		pattern += `\b`
	}
	return pattern
}

func isWordRune(r rune) bool {
	return r == '_' || (r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
