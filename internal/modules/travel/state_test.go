package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextState(t *testing.T) {
	assert.Equal(t, StateAwaitingOrigin, NextState(TravelInfo{Destination: "Rome"}))
	assert.Equal(t, StateAwaitingDestination, NextState(TravelInfo{Origin: "Oslo", Date: "2024-08-10"}))
	assert.Equal(t, StateAwaitingDate, NextState(TravelInfo{Origin: "Oslo", Destination: "Rome", DateRaw: "soon"}))
	assert.Equal(t, StateComplete, NextState(TravelInfo{Origin: "Oslo", Destination: "Rome", Date: "2024-08-10"}))
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"", "awaiting_origin", "Awaiting_Destination", " awaiting_date ", "complete"} {
		_, err := ParseState(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseState("awaiting_pizza")
	assert.ErrorIs(t, err, ErrUnknownState)
	assert.True(t, StateAwaitingDate.InProgress())
	assert.False(t, StateComplete.InProgress())
	assert.False(t, State("").InProgress())
}

func TestApplyReply(t *testing.T) {
	tests := []struct {
		name  string
		state State
		info  TravelInfo
		msg   string
		want  TravelInfo
	}{
		{"origin", StateAwaitingOrigin, TravelInfo{Destination: "Rome"}, "Lisbon please", TravelInfo{Origin: "Lisbon", Destination: "Rome"}},
		{"origin equals destination", StateAwaitingOrigin, TravelInfo{Destination: "Rome"}, "rome", TravelInfo{Destination: "Rome"}},
		{"not a city", StateAwaitingDestination, TravelInfo{Origin: "Oslo"}, "yes", TravelInfo{Origin: "Oslo"}},
		{"destination", StateAwaitingDestination, TravelInfo{Origin: "Oslo"}, "New York!", TravelInfo{Origin: "Oslo", Destination: "New York"}},
		{"date", StateAwaitingDate, TravelInfo{}, "tomorrow", TravelInfo{Date: "2024-07-02", DateRaw: "tomorrow"}},
		{"date beats relative word", StateAwaitingDate, TravelInfo{}, "June 15, not today", TravelInfo{Date: "2025-06-15", DateRaw: "June 15, not today"}},
		{"bad date", StateAwaitingDate, TravelInfo{}, "whenever", TravelInfo{DateRaw: "whenever"}},
		{"known field untouched", StateAwaitingOrigin, TravelInfo{Origin: "Oslo"}, "Paris", TravelInfo{Origin: "Oslo"}},
		{"no state", "", TravelInfo{}, "Paris", TravelInfo{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyReply(tt.state, tt.info, tt.msg, refDate))
		})
	}
}
