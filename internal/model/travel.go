// Package model defines the travel planning data model.
package model

import (
	"time"
)

// TravelStyle selects the tone and guidance used for extraction and synthesis.
type TravelStyle string

const (
	StyleEconomic  TravelStyle = "economic"
	StyleLuxury    TravelStyle = "luxury"
	StyleFamily    TravelStyle = "family"
	StyleAdventure TravelStyle = "adventure"
	StyleCultural  TravelStyle = "cultural"
)

// Styles lists all supported travel styles in display order.
func Styles() []TravelStyle {
	return []TravelStyle{StyleEconomic, StyleLuxury, StyleFamily, StyleAdventure, StyleCultural}
}

// ParseTravelStyle validates a raw style tag.
func ParseTravelStyle(s string) (TravelStyle, bool) {
	switch TravelStyle(s) {
	case StyleEconomic, StyleLuxury, StyleFamily, StyleAdventure, StyleCultural:
		return TravelStyle(s), true
	}
	return "", false
}

// StyleInfo is the display metadata returned by the styles endpoint.
type StyleInfo struct {
	ID          TravelStyle `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
}

// TripParameters is the structured record extracted from free-form narrative.
// Nullable fields stay nil when the narrative gave no signal; no cross-field
// validation is performed (duration is not reconciled against the dates).
type TripParameters struct {
	Destination         *string  `json:"destination"`
	StartDate           *string  `json:"start_date"`
	EndDate             *string  `json:"end_date"`
	Duration            *int     `json:"duration"`
	Budget              *string  `json:"budget"`
	Interests           []string `json:"interests"`
	Transportation      *string  `json:"transportation"`
	Accommodation       *string  `json:"accommodation"`
	SpecialRequirements *string  `json:"special_requirements"`
	ConfidenceScore     float64  `json:"confidence_score"`
}

// Importance ranks how much a clarification matters.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// SeverityRank returns the sort rank for an importance level (high first).
func (i Importance) SeverityRank() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceMedium:
		return 1
	default:
		return 2
	}
}

// Ambiguity is a flagged gap in trip parameters paired with a clarifying
// question for the end user.
type Ambiguity struct {
	Category    string     `json:"category"`
	Issue       string     `json:"issue"`
	Question    string     `json:"question"`
	Importance  Importance `json:"importance"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// Location is a named place, optionally with an address.
type Location struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Activity is a single itinerary entry within a day.
type Activity struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    Location `json:"location"`
	StartTime   string   `json:"start_time,omitempty"`
	Category    string   `json:"category"`
}

// DayPlan is an ordered day of activities.
type DayPlan struct {
	Date       string     `json:"date"`
	DayTitle   string     `json:"day_title"`
	Activities []Activity `json:"activities"`
}

// Recommendation is a supplementary point of interest.
type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    Location `json:"location"`
}

// TravelPlanResponse is the full assembled plan returned to the caller.
type TravelPlanResponse struct {
	PlanID      string      `json:"plan_id"`
	Title       string      `json:"title"`
	TravelStyle TravelStyle `json:"travel_style"`
	Summary     string      `json:"summary"`

	Destination string  `json:"destination"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Duration    *int    `json:"duration"`

	DailyPlans      []DayPlan                   `json:"daily_plans"`
	Recommendations map[string][]Recommendation `json:"recommendations"`

	CreatedAt       time.Time `json:"created_at"`
	ProcessingTime  float64   `json:"processing_time"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// AmbiguityReport is the response of the ambiguity-detection endpoint.
type AmbiguityReport struct {
	Ambiguities     []Ambiguity    `json:"ambiguities"`
	ParsedInfo      TripParameters `json:"parsed_info"`
	HasAmbiguities  bool           `json:"has_ambiguities"`
	ConfidenceScore float64        `json:"confidence_score"`
}

// ClarificationAnswer is one answered clarification question.
type ClarificationAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ClarifyRequest resubmits the original narrative together with answers to
// previously surfaced questions.
type ClarifyRequest struct {
	TravelStyle  string                `json:"travel_style"`
	OriginalInfo string                `json:"original_info"`
	Answers      []ClarificationAnswer `json:"answers"`
}
