// README: Language-model fallback extractor; asks the LLM for a JSON guess and never fails the caller.
package travel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripchat/internal/ai"
)

// ModelConfidence ranks model guesses below every pattern rule, so the model
// only fills fields the patterns left empty.
const ModelConfidence = 0.5

const extractionPrompt = `Extract travel information from the user's message.
Today's date is %s.
Respond with only a JSON object with the keys "origin", "destination" and "date".
Use city names for origin and destination and YYYY-MM-DD for date.
Use null for anything the message does not state.

Message: %q`

// Layouts accepted for model-supplied dates, tried in order.
var modelDateLayouts = []string{
	isoLayout,
	"January 2, 2006",
	"2 January 2006",
	"2-1-2006",
	"1/2/2006",
}

type ModelExtractor struct {
	llm ai.LLMProvider
	log *zap.Logger
	now func() time.Time
}

func NewModelExtractor(llm ai.LLMProvider, log *zap.Logger, now func() time.Time) *ModelExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &ModelExtractor{llm: llm, log: log, now: now}
}

func (m *ModelExtractor) Extract(ctx context.Context, message string) Candidates {
	if m == nil || m.llm == nil {
		return Candidates{}
	}
	prompt := fmt.Sprintf(extractionPrompt, m.now().Format(isoLayout), message)
	reply, err := m.llm.Complete(ctx, prompt)
	if err != nil {
		m.log.Warn("model extraction failed", zap.String("provider", m.llm.Name()), zap.Error(err))
		return Candidates{}
	}
	parsed, err := ai.ParseTravelExtraction(reply)
	if err != nil {
		m.log.Debug("model extraction unparseable", zap.String("reply", reply), zap.Error(err))
		return Candidates{}
	}

	var out Candidates
	if city, ok := modelCity(parsed.Origin); ok {
		out.Origin = CandidateSet{{Value: city, Confidence: ModelConfidence}}
	}
	if city, ok := modelCity(parsed.Destination); ok {
		out.Destination = CandidateSet{{Value: city, Confidence: ModelConfidence}}
	}
	if parsed.Date != nil {
		if iso, ok := parseModelDate(*parsed.Date); ok {
			out.Date = CandidateSet{{Value: iso, Confidence: ModelConfidence}}
		} else {
			m.log.Debug("model date discarded", zap.String("date", *parsed.Date))
		}
	}
	return out
}

func modelCity(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	city := normalizeMessage(strings.Trim(*v, " .,"))
	if city == "null" || !validCity(city) {
		return "", false
	}
	return city, true
}

func parseModelDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range modelDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoLayout), true
		}
	}
	return "", false
}
