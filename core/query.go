package core

// IntentType identifies what an extracted intent constrains.
type IntentType string

const (
	IntentOwner   IntentType = "owner"
	IntentRole    IntentType = "role"
	IntentWarmth  IntentType = "warmth"
	IntentTime    IntentType = "time"
	IntentSource  IntentType = "source"
	IntentCompany IntentType = "company"
	IntentTag     IntentType = "tag"
	IntentName    IntentType = "name"
)

// Intent is one typed piece of meaning pulled out of a search query.
//
// Value encoding depends on Type: warmth intents carry comma-joined warmth
// levels ("1,2,3"), time intents a day count ("30"), owner intents the owner
// id, and everything else the matched text.
type Intent struct {
	Type  IntentType `json:"type"`
	Value string     `json:"value"`
	Label string     `json:"label"`
}

// Query is the parsed form of a raw search string.
type Query struct {
	Raw      string   `json:"raw"`
	FreeText string   `json:"freeText"`
	Intents  []Intent `json:"intents"`
}

// Empty reports whether nothing searchable was extracted.
func (q *Query) Empty() bool {
	return q == nil || (len(q.Intents) == 0 && q.FreeText == "")
}

// HasIntent reports whether the query carries an intent of type t.
func (q *Query) HasIntent(t IntentType) bool {
	if q == nil {
		return false
	}
	for _, intent := range q.Intents {
		if intent.Type == t {
			return true
		}
	}
	return false
}

// SearchResult is a scored, explained match for one person.
type SearchResult struct {
	PersonId       int64    `json:"personId"`
	Score          int      `json:"score"`
	Explanations   []string `json:"explanations"`
	MatchedIntents []Intent `json:"matchedIntents,omitempty"`
}

// Filters is the structured filter set produced by an external classifier.
// Unset fields do not constrain the result.
type Filters struct {
	Name            string   `json:"name,omitempty"`
	Company         string   `json:"company,omitempty"`
	Title           string   `json:"title,omitempty"`
	Source          string   `json:"source,omitempty"`
	Warmth          []int    `json:"warmth,omitempty" validate:"omitempty,dive,min=0,max=3"`
	Location        string   `json:"location,omitempty"`
	AddedWithinDays *int     `json:"addedWithinDays,omitempty" validate:"omitempty,min=1"`
	Email           string   `json:"email,omitempty"`
	Tags            []string `json:"tags,omitempty" validate:"omitempty,dive,required"`
	OrgKind         []string `json:"orgKind,omitempty" validate:"omitempty,dive,required"`
	OrgSector       string   `json:"orgSector,omitempty"`
	DealName        string   `json:"dealName,omitempty"`
	DealSector      string   `json:"dealSector,omitempty"`
	DealStatus      string   `json:"dealStatus,omitempty"`
}

// HasDealContext reports whether any deal field is set. Deal fields are
// resolved upstream into FilterContext.MatchedPersonIds.
func (f *Filters) HasDealContext() bool {
	return f.DealName != "" || f.DealSector != "" || f.DealStatus != ""
}

// OrgSector is the sector classification of an organization.
type OrgSector struct {
	Sector    string `json:"sector"`
	SubSector string `json:"subSector,omitempty"`
}

// FilterContext carries data resolved alongside Filters by the upstream
// classifier service.
type FilterContext struct {
	// MatchedPersonIds are the people linked to deals matching the deal filters.
	MatchedPersonIds []int64 `json:"matchedPersonIds,omitempty"`
	// OrgSectors maps organization id to its sector.
	OrgSectors map[int64]OrgSector `json:"orgSectorMap,omitempty"`
}
