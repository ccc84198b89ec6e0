package travel

import (
	"fmt"
	"strings"
)

const (
	askOrigin      = "Which city are you departing from?"
	askDestination = "Where would you like to go?"
	askDate        = "When would you like to travel?"
)

// Prompt builds the clarifying reply for a partially known trip: one question
// per missing field, then a recap of what is already understood. An unparsed
// date fragment is quoted back instead of the generic date question.
func Prompt(info TravelInfo) string {
	var lines []string
	if info.Origin == "" {
		lines = append(lines, askOrigin)
	}
	if info.Destination == "" {
		lines = append(lines, askDestination)
	}
	if info.Date == "" {
		if info.DateRaw != "" {
			lines = append(lines, fmt.Sprintf("I couldn't understand the date %q. Could you give it as YYYY-MM-DD or like \"June 15\"?", info.DateRaw))
		} else {
			lines = append(lines, askDate)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "Great, I have everything I need.")
	}

	if recap := Recap(info); recap != "" {
		lines = append(lines, "", recap)
	}
	return strings.Join(lines, "\n")
}

// Recap lists the known fields one per line, or "" when nothing is known.
func Recap(info TravelInfo) string {
	var known []string
	if info.Origin != "" {
		known = append(known, "From: "+info.Origin)
	}
	if info.Destination != "" {
		known = append(known, "To: "+info.Destination)
	}
	if info.Date != "" {
		known = append(known, "Date: "+info.Date)
	}
	if len(known) == 0 {
		return ""
	}
	return "Here's what I have so far:\n" + strings.Join(known, "\n")
}
