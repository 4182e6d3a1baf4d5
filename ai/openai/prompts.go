package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/sources"
)

const filterResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name":            {"type": "string"},
    "company":         {"type": "string"},
    "title":           {"type": "string"},
    "source":          {"type": "string"},
    "warmth":          {"type": "array", "items": {"type": "integer", "minimum": 0, "maximum": 3}},
    "location":        {"type": "string"},
    "addedWithinDays": {"type": "integer", "minimum": 1},
    "email":           {"type": "string"},
    "tags":            {"type": "array", "items": {"type": "string"}},
    "orgKind":         {"type": "array", "items": {"type": "string"}},
    "orgSector":       {"type": "string"},
    "dealName":        {"type": "string"},
    "dealSector":      {"type": "string"},
    "dealStatus":      {"type": "string"}
  },
  "additionalProperties": false
}`

const filterPromptTemplate = `Convert a CRM contact search into structured filters and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Include only the fields the search actually asks for. Omit every other field; never output empty strings or empty arrays.
- Every included field must match for a contact to be returned, so do not guess.
- warmth is a list of levels: %s.
- source must be one of the known sources below when the search names one of them, otherwise the words used in the search.
- addedWithinDays is the number of days for phrases like "this week" (7), "this month" (30) or "this quarter" (90).
- dealName, dealSector and dealStatus describe deals the contact is linked to, not the contact's own company.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Known sources:
%s

Example:
Input: "hot or champion contacts at Blackstone"
Output:
{"company":"Blackstone","warmth":[2,3]}

Example:
Input: "founders in fintech we met at a conference this month"
Output:
{"title":"founder","orgSector":"fintech","source":"Conference","addedWithinDays":30}

Example (informal, no punctuation):
Input: "ppl linked to the series b deal in boston"
Output:
{"dealName":"series b","location":"boston"}`

// buildSystemPrompt creates the system prompt with warmth levels and the
// source catalog embedded.
func buildSystemPrompt(catalog []core.Source) string {
	levels := make([]string, 0, 4)
	for w := core.WarmthCold; w <= core.WarmthChampion; w++ {
		levels = append(levels, fmt.Sprintf("%d = %s", w, w))
	}

	var b strings.Builder
	for _, category := range sources.Categories() {
		names := make([]string, 0)
		for _, src := range catalog {
			if src.Category == category.Id {
				names = append(names, src.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", category.Label, strings.Join(names, ", "))
	}

	return fmt.Sprintf(filterPromptTemplate,
		filterResponseSchema,
		strings.Join(levels, ", "),
		strings.TrimRight(b.String(), "\n"))
}
