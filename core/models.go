package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier used for storage index keys.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Warmth is the ordinal relationship temperature of a contact.
type Warmth int

const (
	WarmthCold Warmth = iota
	WarmthWarm
	WarmthHot
	WarmthChampion
)

var warmthLabels = [...]string{"Cold", "Warm", "Hot", "Champion"}

// String returns the display label, e.g. "Hot".
func (w Warmth) String() string {
	if !w.Valid() {
		return "Unknown"
	}
	return warmthLabels[w]
}

// Valid reports whether w is one of the four defined levels.
func (w Warmth) Valid() bool {
	return w >= WarmthCold && w <= WarmthChampion
}

// Person is a contact record as delivered by the record provider.
// Empty strings stand in for absent optional text fields.
type Person struct {
	Id              int64      `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Title           string     `json:"title,omitempty"`
	Org             string     `json:"org,omitempty"`
	OrgId           *int64     `json:"orgId,omitempty"`
	OrgKind         string     `json:"orgKind,omitempty"`
	Email           string     `json:"email,omitempty"`
	Warmth          Warmth     `json:"warmth"`
	Source          string     `json:"source,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	Country         string     `json:"country,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastContactedAt *time.Time `json:"lastContactedAt,omitempty"`
}

// FullName joins first and last name with a single space.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Location joins the non-empty city, state and country parts with ", ".
func (p *Person) Location() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.City, p.State, p.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// SourceCategory groups acquisition channels.
type SourceCategory string

const (
	CategoryRelationship SourceCategory = "relationship"
	CategoryEvent        SourceCategory = "event"
	CategoryDigital      SourceCategory = "digital"
	CategoryOutbound     SourceCategory = "outbound"
	CategoryInbound      SourceCategory = "inbound"
	CategoryOther        SourceCategory = "other"
)

// Valid reports whether c is one of the six known categories.
func (c SourceCategory) Valid() bool {
	switch c {
	case CategoryRelationship, CategoryEvent, CategoryDigital,
		CategoryOutbound, CategoryInbound, CategoryOther:
		return true
	}
	return false
}

// Source is an acquisition channel a contact entered through.
type Source struct {
	Name        string         `json:"name"`
	Category    SourceCategory `json:"category"`
	Description string         `json:"description,omitempty"`
}
