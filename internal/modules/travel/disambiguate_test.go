package travel

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var refDate = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func resolve(msg string) TravelInfo {
	return Resolve(NewPatternExtractor().Extract(context.Background(), msg), msg, refDate)
}

func TestResolve_FromToBothOrders(t *testing.T) {
	cities := [][2]string{
		{"Paris", "Rome"},
		{"New York", "London"},
		{"San Francisco", "Los Angeles"},
		{"Lisbon", "Tokyo"},
		{"Rio De Janeiro", "Buenos Aires"},
	}
	dates := []struct{ text, iso string }{
		{"2024-08-10", "2024-08-10"},
		{"15 June", "2025-06-15"},
		{"June 15, 2025", "2025-06-15"},
		{"12/25/2024", "2024-12-25"},
		{"tomorrow", "2024-07-02"},
	}
	for _, pair := range cities {
		a, b := pair[0], pair[1]
		for _, d := range dates {
			for _, msg := range []string{
				fmt.Sprintf("from %s to %s on %s", a, b, d.text),
				fmt.Sprintf("to %s from %s on %s", b, a, d.text),
				fmt.Sprintf("I need a flight from %s to %s on %s please", a, b, d.text),
			} {
				got := resolve(msg)
				assert.Equal(t, TravelInfo{Origin: a, Destination: b, Date: d.iso, DateRaw: normalizeMessage(d.text)}, got, msg)
			}
		}
	}
}

func TestResolve_SameCityConflict(t *testing.T) {
	tests := []struct {
		msg  string
		want TravelInfo
	}{
		{"trip to Paris from Paris", TravelInfo{Destination: "Paris"}},
		{"from Paris to Paris", TravelInfo{Destination: "Paris"}},
		{"I'm from Paris and want a trip to Paris", TravelInfo{Destination: "Paris"}},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := resolve(tt.msg)
			assert.Equal(t, tt.want, got)
			if got.Origin != "" {
				assert.NotEqual(t, got.Origin, got.Destination)
			}
		})
	}
}

func TestResolve_SameCityOnlyFromPhrase(t *testing.T) {
	c := Candidates{
		Origin:      CandidateSet{{"oslo", 0.8}},
		Destination: CandidateSet{{"oslo", 0.85}},
	}
	got := Resolve(c, "destination: oslo, leaving from oslo", refDate)
	assert.Equal(t, "Oslo", got.Origin)
	assert.Empty(t, got.Destination)
}

func TestResolve_SelfDeclaredOrigin(t *testing.T) {
	c := Candidates{Destination: CandidateSet{{"rome", 0.75}}}
	got := Resolve(c, "I am from Milan, thinking about Rome", refDate)
	assert.Equal(t, "Milan", got.Origin)
	assert.Equal(t, "Rome", got.Destination)
}

func TestResolve_UnparsedDateKeptRaw(t *testing.T) {
	got := resolve("fly from Paris to Rome on 31/31/2024")
	assert.Empty(t, got.Date)
	assert.Equal(t, "31/31/2024", got.DateRaw)
}

func TestResolve_PrefersDateThatNormalizes(t *testing.T) {
	c := Candidates{Date: CandidateSet{{"31/31/2024", 0.95}, {"tomorrow", 0.8}}}
	got := Resolve(c, "", refDate)
	assert.Equal(t, "2024-07-02", got.Date)
	assert.Equal(t, "tomorrow", got.DateRaw)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "New York", titleCase("new york"))
	assert.Equal(t, "St. Louis", titleCase("st. louis"))
	assert.Equal(t, "", titleCase(""))
}
