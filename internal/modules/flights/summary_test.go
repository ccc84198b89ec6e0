package flights

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_MultiSegment(t *testing.T) {
	var payload searchResponse
	require.NoError(t, json.Unmarshal([]byte(twoLegs), &payload))

	want := "Flight found from Paris to Rome!\n\n" +
		"Departure: Paris (CDG) on August 10, 2024 at 08:15\n" +
		"Arrival: Rome (FCO) on August 10, 2024 at 12:35\n" +
		"Duration: 2h 50m\n" +
		"Stops: 1\n" +
		"Price: EUR 213.40\n" +
		"Airline: Swiss\n" +
		"Flight: LX639 (economy)"
	assert.Equal(t, want, Summarize("Paris", "Rome", payload.Itineraries[0]))
}

func TestSummarize_NumericFareAndDefaults(t *testing.T) {
	var it Itinerary
	require.NoError(t, json.Unmarshal([]byte(`{
		"segments":[{"departureCity":"Oslo","departureAirportCode":"OSL","departureTime":"2025-01-03T07:05:00",
		             "arrivalCity":"Bergen","arrivalAirportCode":"BGO","arrivalTime":"not-a-time",
		             "airlineName":"Widerøe","duration":55}],
		"price":{"totalFare":99.9}}`), &it))

	got := Summarize("Oslo", "Bergen", it)
	assert.Contains(t, got, "Departure: Oslo (OSL) on January 03, 2025 at 07:05")
	assert.Contains(t, got, "Arrival: Bergen (BGO) on not-a-time")
	assert.Contains(t, got, "Duration: 0h 55m")
	assert.Contains(t, got, "Stops: 0")
	assert.Contains(t, got, "Price: USD 99.9")
	assert.NotContains(t, got, "Flight:")
}

func TestSummarize_NoSegments(t *testing.T) {
	got := Summarize("Oslo", "Rome", Itinerary{})
	assert.Equal(t, "Flight found from Oslo to Rome, but no segment details available.", got)
}

func TestSummarize_MissingFare(t *testing.T) {
	got := Summarize("Oslo", "Rome", Itinerary{Segments: []Segment{{AirlineName: "SAS"}}})
	assert.Contains(t, got, "Price: USD N/A")
}
