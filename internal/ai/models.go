package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// TravelExtraction captures the structured output requested by extraction prompts.
// Fields the model could not determine come back as JSON null.
type TravelExtraction struct {
	// Origin is the city the traveller departs from.
	Origin *string `json:"origin"`

	// Destination is the city the traveller is heading to.
	Destination *string `json:"destination"`

	// Date is the travel date, requested as YYYY-MM-DD but not guaranteed.
	Date *string `json:"date"`
}

var jsonObjectRE = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject returns the outermost {...} span of a free-text completion.
// Models often wrap JSON in prose or markdown fences.
func ExtractJSONObject(text string) (string, bool) {
	span := jsonObjectRE.FindString(text)
	if span == "" {
		return "", false
	}
	return span, true
}

// ParseTravelExtraction decodes the first JSON object embedded in raw.
func ParseTravelExtraction(raw string) (TravelExtraction, error) {
	var out TravelExtraction
	span, ok := ExtractJSONObject(raw)
	if !ok {
		return out, fmt.Errorf("no JSON object in model reply")
	}
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		return out, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, strings.TrimSpace(span))
	}
	return out, nil
}
