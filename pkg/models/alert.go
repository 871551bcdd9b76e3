package models

import "time"

// Category identifies an emergency category a resident can raise.
type Category string

const (
	CategoryMedical Category = "Medical Emergency"
	CategoryFire    Category = "Fire Emergency"
	CategoryTheft   Category = "Theft"
)

// Categories lists all selectable emergency categories in display order.
func Categories() []Category {
	return []Category{CategoryMedical, CategoryFire, CategoryTheft}
}

// ToneID returns the alarm tone for this category, or "" if the category
// does not sound a local alarm (Theft only files a report).
func (c Category) ToneID() string {
	switch c {
	case CategoryMedical:
		return "medical"
	case CategoryFire:
		return "fire"
	default:
		return ""
	}
}

// AlertRecord is a server-side emergency alert as returned by the
// active-alerts endpoint. This client only observes these records, it never
// mutates them.
type AlertRecord struct {
	ID         string    `json:"id"`
	BuildingID string    `json:"building_id"`
	Category   string    `json:"category"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToneID maps the record's category onto a local alarm tone, falling back
// to the fire siren for unknown categories so a building alert is never
// silent just because the server introduced a new label.
func (r AlertRecord) ToneID() string {
	if tone := Category(r.Category).ToneID(); tone != "" {
		return tone
	}
	return "fire"
}
