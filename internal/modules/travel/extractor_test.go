package travel

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(msg string) Candidates {
	return NewPatternExtractor().Extract(context.Background(), msg)
}

func values(s CandidateSet) []string {
	var out []string
	for _, c := range s {
		out = append(out, c.Value)
	}
	return out
}

func TestPatternExtractor_FromTo(t *testing.T) {
	c := extract("I want to book a flight from New York to London on June 5")
	assert.Equal(t, []string{"new york"}, values(c.Origin))
	assert.Equal(t, []string{"london"}, values(c.Destination))
	assert.Equal(t, []string{"june 5"}, values(c.Date))
}

func TestPatternExtractor_CueConfidence(t *testing.T) {
	c := extract("departing from Lisbon, going to Oslo")
	best, ok := c.Origin.Best()
	require.True(t, ok)
	assert.Equal(t, Candidate{"lisbon", 0.95}, best)

	best, ok = c.Destination.Best()
	require.True(t, ok)
	assert.Equal(t, Candidate{"oslo", 0.9}, best)
}

func TestPatternExtractor_DiscardsNonCities(t *testing.T) {
	tests := []string{
		"I need to get to the airport",
		"I want to go somewhere warm",
		"can you help me to change my flight",
		"from me to you",
		"go to an",
	}
	for _, msg := range tests {
		t.Run(msg, func(t *testing.T) {
			c := extract(msg)
			assert.Empty(t, c.Origin)
			assert.Empty(t, c.Destination)
		})
	}
}

func TestPatternExtractor_TrimsAtBoundaries(t *testing.T) {
	tests := []struct {
		msg  string
		dest string
	}{
		{"fly to rio de janeiro next week", "rio de janeiro"},
		{"flights to St. Louis tomorrow", "st. louis"},
		{"heading to Berlin. Any tips?", "berlin"},
		{"trip to the bahamas in march", "the bahamas"},
		{"flying to Tokyo via Seoul", "tokyo"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			best, ok := extract(tt.msg).Destination.Best()
			require.True(t, ok)
			assert.Equal(t, tt.dest, best.Value)
		})
	}
}

func TestPatternExtractor_OtherCues(t *testing.T) {
	c := extract("I'm based in Denver and would love visiting Kyoto")
	assert.Equal(t, []string{"denver"}, values(c.Origin))
	assert.Equal(t, []string{"kyoto"}, values(c.Destination))

	c = extract("leaving Madrid, arriving in Athens")
	assert.Equal(t, []string{"madrid"}, values(c.Origin))
	assert.Equal(t, []string{"athens"}, values(c.Destination))
}

func TestPatternExtractor_DateForms(t *testing.T) {
	tests := []struct {
		msg  string
		want string
		conf float64
	}{
		{"on 2024-08-10", "2024-08-10", 0.95},
		{"on march 3rd, 2025 please", "march 3rd, 2025", 0.9},
		{"the 15th of june", "15th of june", 0.9},
		{"on 10/08/2024", "10/08/2024", 0.85},
		{"on 10.08.2024", "10.08.2024", 0.85},
		{"leaving tmr", "tmr", 0.8},
		{"sometime next month", "next month", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			best, ok := extract(tt.msg).Date.Best()
			require.True(t, ok)
			assert.Equal(t, tt.want, best.Value)
			assert.Equal(t, tt.conf, best.Confidence)
		})
	}
}

func TestPatternExtractor_NoDateInISOParts(t *testing.T) {
	c := extract("fly on 2024-08-10")
	assert.Equal(t, []string{"2024-08-10"}, values(c.Date))
}

func TestPatternExtractor_CustomRules(t *testing.T) {
	p := NewPatternExtractor(DefaultRules[len(DefaultRules)-1])
	c := p.Extract(context.Background(), "from paris tomorrow")
	assert.Empty(t, c.Origin)
	assert.Equal(t, []string{"tomorrow"}, values(c.Date))
}

func ExamplePatternExtractor_Extract() {
	c := NewPatternExtractor().Extract(context.Background(), "Flying from Boston to Denver on 2025-02-14")
	o, _ := c.Origin.Best()
	d, _ := c.Destination.Best()
	fmt.Println(o.Value, "->", d.Value)
	// Output: boston -> denver
}
