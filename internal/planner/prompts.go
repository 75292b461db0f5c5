package planner

import (
	"fmt"
	"strings"

	"github.com/onetrip/travel-planner/internal/model"
)

// styleDescriptions feed the extraction prompt. Unknown styles fall back to
// genericStyleDescription instead of failing.
var styleDescriptions = map[model.TravelStyle]string{
	model.StyleEconomic:  "a budget-conscious trip focused on low-cost optimization",
	model.StyleLuxury:    "a luxury trip centered on premium services and high-end experiences",
	model.StyleFamily:    "a family trip prioritizing safety and convenience",
	model.StyleAdventure: "an adventurous trip centered on activities and hands-on experiences",
	model.StyleCultural:  "a cultural trip focused on history, heritage and local traditions",
}

const genericStyleDescription = "a general-purpose trip"

// styleGuidelines feed the itinerary-synthesis prompt.
var styleGuidelines = map[model.TravelStyle]string{
	model.StyleEconomic:  "Maximize experiences on a low budget. Favor free attractions, inexpensive local restaurants and public transport.",
	model.StyleLuxury:    "Prioritize premium experiences and comfort. Favor fine dining, luxury shopping and premium services.",
	model.StyleFamily:    "Make every stop safe and convenient for the whole family. Favor child-friendly venues and safe transport.",
	model.StyleAdventure: "Build the days around thrilling activities. Favor outdoor activities, extreme sports and adventurous experiences.",
	model.StyleCultural:  "Immerse the traveler in local culture and history. Favor museums, historical sites and traditional experiences.",
}

const genericStyleGuideline = "Build a general sightseeing-oriented plan."

// StyleDescription returns the extraction guidance text for a style.
func StyleDescription(style model.TravelStyle) string {
	if d, ok := styleDescriptions[style]; ok {
		return d
	}
	return genericStyleDescription
}

// StyleGuideline returns the synthesis guidance text for a style.
func StyleGuideline(style model.TravelStyle) string {
	if g, ok := styleGuidelines[style]; ok {
		return g
	}
	return genericStyleGuideline
}

// StyleCatalog returns display metadata for the supported styles.
func StyleCatalog() []model.StyleInfo {
	return []model.StyleInfo{
		{ID: model.StyleEconomic, Name: "Economic", Description: "Budget optimization", Icon: "💰"},
		{ID: model.StyleLuxury, Name: "Luxury", Description: "Premium services", Icon: "✨"},
		{ID: model.StyleFamily, Name: "Family", Description: "Safety and convenience", Icon: "👨‍👩‍👧‍👦"},
		{ID: model.StyleAdventure, Name: "Adventure", Description: "Activities and experiences", Icon: "🏔️"},
		{ID: model.StyleCultural, Name: "Cultural", Description: "History and heritage", Icon: "🏛️"},
	}
}

func extractionSystemPrompt(style model.TravelStyle) string {
	return fmt.Sprintf(`You are a professional travel planning assistant.
Analyze the travel information provided by the user and convert it into structured JSON.

Selected travel style: %s

Respond with exactly this JSON format:
{
    "destination": "destination (e.g. Tokyo, Japan)",
    "start_date": "start date (YYYY-MM-DD, or null)",
    "end_date": "end date (YYYY-MM-DD, or null)",
    "duration": "trip length in days (number; compute it if possible, otherwise null)",
    "budget": "budget information (string, or null)",
    "interests": ["list of interests"],
    "transportation": "transportation details (string, or null)",
    "accommodation": "accommodation details (string, or null)",
    "special_requirements": "special requirements (string, or null)",
    "confidence_score": 0.8
}

Rules:
- Return only valid JSON
- Use null for missing information
- Dates must use the YYYY-MM-DD format
- Convert relative date expressions into absolute dates where possible`, StyleDescription(style))
}

func extractionUserPrompt(travelInfo string) string {
	return fmt.Sprintf(`Analyze the following travel information and convert it into JSON:

%s

Return the structured JSON for the information above.`, travelInfo)
}

func synthesisSystemPrompt(style model.TravelStyle) string {
	return fmt.Sprintf(`You are an expert travel guide. Write a detailed day-by-day travel plan from the given trip information.

Travel style: %s - %s

Respond with exactly this JSON format:
{
    "daily_plans": [
        {
            "date": "YYYY-MM-DD",
            "day_title": "title for the day",
            "activities": [
                {
                    "id": "activity_1",
                    "title": "activity title",
                    "description": "detailed description",
                    "location": {
                        "name": "place name",
                        "address": "address"
                    },
                    "start_time": "HH:MM",
                    "category": "category (transport, sightseeing, food, shopping, lodging, ...)"
                }
            ]
        }
    ]
}

Rules:
- Use real places and realistic timings
- Order stops efficiently, accounting for travel time between them
- Budget 1-3 hours per activity
- Include meals and rest
- Pick places and activities that fit the travel style`, style, StyleGuideline(style))
}

func synthesisUserPrompt(params model.TripParameters) string {
	return fmt.Sprintf(`Write a detailed day-by-day travel plan for this trip:

%s

Keep the plan realistic and actionable, with an efficient route and sensible time allocation for each day.`, formatParameters(params))
}

const ambiguitySystemPrompt = `You are a travel planning expert. Analyze the travel information the user provided, find ambiguous or incomplete parts, and generate clarifying questions.

Treat the following as ambiguities:
1. The destination is too broad or not specific
2. The travel dates are unclear
3. Budget information is missing or vague
4. Companion information is unclear
5. Transportation or accommodation details are missing
6. Interests or preferences are unclear

Respond with this JSON format:
{
    "ambiguities": [
        {
            "category": "dates",
            "issue": "No specific travel dates were given",
            "question": "What are your exact departure and return dates?",
            "importance": "high",
            "suggestions": ["March 15-18", "first week of April", "a holiday weekend"]
        }
    ]
}

Classify importance as high, medium or low, and ask at most 5 questions.`

func ambiguityUserPrompt(travelInfo string, params model.TripParameters) string {
	return fmt.Sprintf(`Find the ambiguous or incomplete parts of this travel information:

Original text:
%s

Parsed information:
%s

Identify what additional information is needed to produce a more accurate plan.`, travelInfo, formatParameters(params))
}

// formatParameters renders trip parameters as prompt-friendly labeled lines.
func formatParameters(p model.TripParameters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Destination: %s\n", strOrNone(p.Destination))
	fmt.Fprintf(&b, "- Start date: %s\n", strOrNone(p.StartDate))
	fmt.Fprintf(&b, "- End date: %s\n", strOrNone(p.EndDate))
	if p.Duration != nil {
		fmt.Fprintf(&b, "- Duration: %d days\n", *p.Duration)
	} else {
		b.WriteString("- Duration: not specified\n")
	}
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(p.Interests, ", "))
	fmt.Fprintf(&b, "- Budget: %s\n", strOrNone(p.Budget))
	fmt.Fprintf(&b, "- Transportation: %s\n", strOrNone(p.Transportation))
	fmt.Fprintf(&b, "- Accommodation: %s\n", strOrNone(p.Accommodation))
	fmt.Fprintf(&b, "- Special requirements: %s", strOrNone(p.SpecialRequirements))
	return b.String()
}

func strOrNone(s *string) string {
	if s == nil || *s == "" {
		return "not specified"
	}
	return *s
}
