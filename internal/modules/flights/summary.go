package flights

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const displayLayout = "January 02, 2006 at 15:04"

var upstreamTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Describe maps a search outcome to reply text. Upstream failures become
// apologetic text, never errors.
func Describe(q Query, its []Itinerary, err error) string {
	var status *StatusError
	switch {
	case errors.As(err, &status):
		return fmt.Sprintf("%s The flight search service returned status %d.", NoFlightsMessage(q), status.Status)
	case err != nil:
		return "Sorry, I couldn't reach the flight search service right now. Please try again in a moment."
	case len(its) == 0:
		return NoFlightsMessage(q)
	default:
		return Summarize(q.Origin, q.Destination, its[0])
	}
}

func NoFlightsMessage(q Query) string {
	return fmt.Sprintf("No flights found from %s (%s) to %s (%s) on %s.",
		q.Origin, q.OriginCode, q.Destination, q.DestinationCode, q.Date)
}

// Summarize describes the first and last segment of it, total flying time,
// stops, price and the operating airline.
func Summarize(origin, destination string, it Itinerary) string {
	if len(it.Segments) == 0 {
		return fmt.Sprintf("Flight found from %s to %s, but no segment details available.", origin, destination)
	}
	first, last := it.Segments[0], it.Segments[len(it.Segments)-1]

	total := 0
	for _, seg := range it.Segments {
		total += seg.DurationMinutes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Flight found from %s to %s!\n\n", origin, destination)
	fmt.Fprintf(&b, "Departure: %s (%s) on %s\n", first.DepartureCity, first.DepartureAirportCode, displayTime(first.DepartureTime))
	fmt.Fprintf(&b, "Arrival: %s (%s) on %s\n", last.ArrivalCity, last.ArrivalAirportCode, displayTime(last.ArrivalTime))
	fmt.Fprintf(&b, "Duration: %dh %dm\n", total/60, total%60)
	fmt.Fprintf(&b, "Stops: %d\n", len(it.Segments)-1)
	fmt.Fprintf(&b, "Price: %s\n", it.Price)
	fmt.Fprintf(&b, "Airline: %s", first.AirlineName)
	if first.FlightNumber != "" {
		fmt.Fprintf(&b, "\nFlight: %s", first.FlightNumber)
		if first.CabinClass != "" {
			fmt.Fprintf(&b, " (%s)", strings.ToLower(first.CabinClass))
		}
	}
	return b.String()
}

// displayTime renders an upstream timestamp in its own offset; unknown
// layouts are shown as sent.
func displayTime(raw string) string {
	for _, layout := range upstreamTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayLayout)
		}
	}
	return raw
}
