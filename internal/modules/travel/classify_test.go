package travel

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Intent
	}{
		{"I want to book a flight", IntentFlightQuery},
		{"any cheap fares to Rome?", IntentFlightQuery},
		{"Book me something to Lisbon", IntentFlightQuery},
		{"one-way to Madrid", IntentFlightQuery},
		{"What is your baggage policy?", IntentGeneral},
		{"How do I book?", IntentGeneral},
		{"", IntentGeneral},
		{"I want a vacation", IntentVague},
		{"planning a getaway this summer", IntentVague},
		{"i want to go somewhere", IntentVague},
	}
	for _, tt := range tests {
		if got := Classify(tt.msg); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.msg, got, tt.want)
		}
	}
}
