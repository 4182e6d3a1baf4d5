package sources

import (
	"strings"

	"github.com/poiesic/smartsearch/core"
)

// Category is the display metadata for a source category.
type Category struct {
	Id    core.SourceCategory
	Label string
	Color string
}

// categories is ordered; the last entry is the fallback for unknown ids.
var categories = []Category{
	{Id: core.CategoryRelationship, Label: "Relationship", Color: "#10b981"},
	{Id: core.CategoryEvent, Label: "Event", Color: "#8b5cf6"},
	{Id: core.CategoryDigital, Label: "Digital", Color: "#3b82f6"},
	{Id: core.CategoryOutbound, Label: "Outbound", Color: "#f59e0b"},
	{Id: core.CategoryInbound, Label: "Inbound", Color: "#06b6d4"},
	{Id: core.CategoryOther, Label: "Other", Color: "#6b7280"},
}

var defaultSources = []core.Source{
	{Name: "Referral", Category: core.CategoryRelationship, Description: "Introduced by an existing contact"},
	{Name: "Personal Network", Category: core.CategoryRelationship, Description: "Known personally before entering the CRM"},
	{Name: "Existing Client", Category: core.CategoryRelationship, Description: "Came through a current client relationship"},
	{Name: "Investor Intro", Category: core.CategoryRelationship, Description: "Introduced by an investor"},
	{Name: "Conference", Category: core.CategoryEvent},
	{Name: "Networking Event", Category: core.CategoryEvent},
	{Name: "Webinar", Category: core.CategoryEvent},
	{Name: "Trade Show", Category: core.CategoryEvent},
	{Name: "LinkedIn", Category: core.CategoryDigital},
	{Name: "Twitter", Category: core.CategoryDigital},
	{Name: "Website", Category: core.CategoryDigital},
	{Name: "Newsletter", Category: core.CategoryDigital},
	{Name: "Cold Outreach", Category: core.CategoryOutbound},
	{Name: "Cold Email", Category: core.CategoryOutbound},
	{Name: "Cold Call", Category: core.CategoryOutbound},
	{Name: "Inbound Inquiry", Category: core.CategoryInbound},
	{Name: "Contact Form", Category: core.CategoryInbound},
	{Name: "Other", Category: core.CategoryOther},
}

// Defaults returns a copy of the default catalog in catalog order.
func Defaults() []core.Source {
	out := make([]core.Source, len(defaultSources))
	copy(out, defaultSources)
	return out
}

// Categories returns the category metadata table in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryInfo returns display metadata for id, falling back to "other".
func CategoryInfo(id core.SourceCategory) Category {
	for _, c := range categories {
		if c.Id == id {
			return c
		}
	}
	return categories[len(categories)-1]
}

// Resolve maps raw onto the default catalog. See Registry.Resolve.
func Resolve(raw string) *core.Source {
	return resolve(raw, defaultSources, nil)
}

// resolve tries an exact case-insensitive match over each list in turn,
// then repeats with underscores read as spaces, then gives up and buckets
// the value into "other".
func resolve(raw string, lists ...[]core.Source) *core.Source {
	if raw == "" {
		return nil
	}
	if s := lookup(raw, lists); s != nil {
		return s
	}
	if spaced := strings.ReplaceAll(raw, "_", " "); spaced != raw {
		if s := lookup(spaced, lists); s != nil {
			return s
		}
	}
	return &core.Source{Name: raw, Category: core.CategoryOther}
}

func lookup(name string, lists [][]core.Source) *core.Source {
	for _, list := range lists {
		for i := range list {
			if strings.EqualFold(list[i].Name, name) {
				s := list[i]
				return &s
			}
		}
	}
	return nil
}
