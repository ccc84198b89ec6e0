package travel

import "regexp"

var (
	flightKeywordsRe = regexp.MustCompile(`\b(?:flights?|fly|flying|airfares?|fares?|tickets?|airlines?|planes?|one[- ]way|round[- ]trip|layovers?)\b`)
	bookShapeRe      = regexp.MustCompile(`\bbook(?:ing)?\b.*\b(?:to|for)\b`)
	vagueKeywordsRe  = regexp.MustCompile(`\b(?:trips?|vacations?|holidays?|journey|travel(?:l?ing)?|getaway|tour)\b|\bi want to go\b|\bplan a trip\b`)
)

// Classify sorts a message into one of the three intents. It is total:
// anything without a travel cue is a general question.
func Classify(message string) Intent {
	text := normalizeMessage(message)
	switch {
	case flightKeywordsRe.MatchString(text), bookShapeRe.MatchString(text):
		return IntentFlightQuery
	case vagueKeywordsRe.MatchString(text):
		return IntentVague
	default:
		return IntentGeneral
	}
}
