// README: Flight-search payloads as returned by the remote search API.
package flights

import "tripchat/internal/types"

type Segment struct {
	DepartureCity        string `json:"departureCity"`
	DepartureAirportCode string `json:"departureAirportCode"`
	DepartureTime        string `json:"departureTime"`
	ArrivalCity          string `json:"arrivalCity"`
	ArrivalAirportCode   string `json:"arrivalAirportCode"`
	ArrivalTime          string `json:"arrivalTime"`
	AirlineName          string `json:"airlineName"`
	FlightNumber         string `json:"flightNumber"`
	CabinClass           string `json:"cabinClass"`
	DurationMinutes      int    `json:"duration"`
}

type Itinerary struct {
	Segments []Segment   `json:"segments"`
	Price    types.Money `json:"price"`
}

type searchResponse struct {
	Itineraries []Itinerary `json:"itineraries"`
}

// Query is a complete trip with the codes actually sent to the search API.
// A code falls back to the city name when the lookup could not resolve it.
type Query struct {
	Origin          string
	OriginCode      string
	Destination     string
	DestinationCode string
	Date            string
}
