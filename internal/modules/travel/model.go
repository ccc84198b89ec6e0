// README: Travel-intent types: intents, extraction candidates, the resolved trip and conversation states.
package travel

import (
	"errors"
	"strings"
)

type Intent string

const (
	IntentFlightQuery Intent = "flight_query"
	IntentVague       Intent = "vague_travel_intent"
	IntentGeneral     Intent = "general_question"
)

type Field string

const (
	FieldOrigin      Field = "origin"
	FieldDestination Field = "destination"
	FieldDate        Field = "date"
)

// Candidate is one proposed value for a field. Confidence only ranks
// competing candidates; it is not a probability.
type Candidate struct {
	Value      string
	Confidence float64
}

// Candidates groups the per-field candidate sets produced by one extractor.
type Candidates struct {
	Origin      CandidateSet
	Destination CandidateSet
	Date        CandidateSet
}

func (c Candidates) Merge(o Candidates) Candidates {
	return Candidates{
		Origin:      c.Origin.Merge(o.Origin),
		Destination: c.Destination.Merge(o.Destination),
		Date:        c.Date.Merge(o.Date),
	}
}

func (c Candidates) Empty() bool {
	return len(c.Origin) == 0 && len(c.Destination) == 0 && len(c.Date) == 0
}

// TravelInfo is the resolved trip. Empty strings mean "unknown".
// Date is empty or YYYY-MM-DD; DateRaw is the text the date came from, kept
// even when it could not be parsed so it can be quoted back to the user.
type TravelInfo struct {
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Date        string `json:"date,omitempty"`
	DateRaw     string `json:"date_raw,omitempty"`
}

func (t TravelInfo) Complete() bool {
	return t.Origin != "" && t.Destination != "" && t.Date != ""
}

// Missing lists unknown fields in the order they are asked for.
func (t TravelInfo) Missing() []Field {
	var out []Field
	if t.Origin == "" {
		out = append(out, FieldOrigin)
	}
	if t.Destination == "" {
		out = append(out, FieldDestination)
	}
	if t.Date == "" {
		out = append(out, FieldDate)
	}
	return out
}

// State is the conversation position carried by the caller between requests.
// The zero value means no conversation is in progress.
type State string

const (
	StateAwaitingOrigin      State = "awaiting_origin"
	StateAwaitingDestination State = "awaiting_destination"
	StateAwaitingDate        State = "awaiting_date"
	StateComplete            State = "complete"
)

var ErrUnknownState = errors.New("unknown conversation state")

func ParseState(s string) (State, error) {
	switch st := State(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StateAwaitingOrigin, StateAwaitingDestination, StateAwaitingDate, StateComplete:
		return st, nil
	default:
		return "", ErrUnknownState
	}
}

// InProgress reports whether the caller is mid-way through collecting a trip.
func (s State) InProgress() bool {
	return s == StateAwaitingOrigin || s == StateAwaitingDestination || s == StateAwaitingDate
}
