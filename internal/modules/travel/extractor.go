// README: Pattern extractor: an ordered rule table of (field, regexp, confidence) evaluated over the message.
package travel

import (
	"context"
	"regexp"
	"strings"
)

// Extractor proposes candidates for a message. Implementations never fail;
// an extractor with nothing to say returns empty Candidates.
type Extractor interface {
	Extract(ctx context.Context, message string) Candidates
}

// Rule is one row of the extraction table. For origin and destination the
// pattern is a cue and the value is the city span that follows it. For dates
// the value is the matched text itself.
type Rule struct {
	Field      Field
	Pattern    *regexp.Regexp
	Confidence float64
}

const monthAlt = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`

var (
	isoDateRe    = regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`)
	monthDayRe   = regexp.MustCompile(`\b(?:` + monthAlt + `)\.?\s+\d{1,2}(?:st|nd|rd|th)?\b(?:,?\s+\d{4}\b)?`)
	dayMonthRe   = regexp.MustCompile(`\b\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?(?:` + monthAlt + `)\b(?:,?\s+\d{4}\b)?`)
	numericRe    = regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`)
	relativeRe   = regexp.MustCompile(`\b(?:today|tonight|tomorrow|tmrw|tmr|next\s+week|next\s+month)\b`)
	selfOriginRe = regexp.MustCompile(`\bi(?:'m|\s+am)\s+from\s+`)
)

// DefaultRules is the extraction table, evaluated top to bottom.
var DefaultRules = []Rule{
	{FieldOrigin, regexp.MustCompile(`\b(?:departing|leaving|flying|starting|travell?ing)\s+from\s+`), 0.95},
	{FieldOrigin, regexp.MustCompile(`\bfrom\s+`), 0.8},
	{FieldOrigin, regexp.MustCompile(`\bbased\s+in\s+`), 0.7},
	{FieldOrigin, regexp.MustCompile(`\b(?:departing|leaving|departure|starting)\s+`), 0.6},

	{FieldDestination, regexp.MustCompile(`\b(?:go|going|fly|flying|travel|travell?ing|headed|heading|trip|flights?|getaway|vacation|holiday)\s+to\s+`), 0.9},
	{FieldDestination, regexp.MustCompile(`\barriving\s+(?:at|in)\s+`), 0.9},
	{FieldDestination, regexp.MustCompile(`\bdestination(?:\s+is)?:?\s+`), 0.85},
	{FieldDestination, regexp.MustCompile(`\bvisit(?:ing)?\s+`), 0.85},
	{FieldDestination, regexp.MustCompile(`\bto\s+`), 0.75},

	{FieldDate, isoDateRe, 0.95},
	{FieldDate, monthDayRe, 0.9},
	{FieldDate, dayMonthRe, 0.9},
	{FieldDate, numericRe, 0.85},
	{FieldDate, relativeRe, 0.8},
}

type PatternExtractor struct {
	rules []Rule
}

// NewPatternExtractor uses DefaultRules when no rules are given.
func NewPatternExtractor(rules ...Rule) *PatternExtractor {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &PatternExtractor{rules: rules}
}

func (p *PatternExtractor) Extract(_ context.Context, message string) Candidates {
	text := normalizeMessage(message)
	var origin, dest, date []Candidate
	for _, r := range p.rules {
		for _, loc := range r.Pattern.FindAllStringIndex(text, -1) {
			switch r.Field {
			case FieldDate:
				date = append(date, Candidate{Value: strings.TrimSpace(text[loc[0]:loc[1]]), Confidence: r.Confidence})
			case FieldOrigin:
				if city, ok := cityAt(text, loc[1]); ok {
					origin = append(origin, Candidate{Value: city, Confidence: r.Confidence})
				}
			case FieldDestination:
				if city, ok := cityAt(text, loc[1]); ok {
					dest = append(dest, Candidate{Value: city, Confidence: r.Confidence})
				}
			}
		}
	}
	return Candidates{Origin: Reduce(origin), Destination: Reduce(dest), Date: Reduce(date)}
}

// normalizeMessage lowercases, folds typographic apostrophes and collapses whitespace.
func normalizeMessage(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "’", "'")
	return strings.Join(strings.Fields(s), " ")
}

var citySpanRe = regexp.MustCompile(`^([a-z][a-z'.\-]*(?:\s+[a-z][a-z'.\-]*){0,3})`)

// cityAt reads up to four words starting at offset and trims them to a city name.
func cityAt(text string, offset int) (string, bool) {
	if offset >= len(text) {
		return "", false
	}
	m := citySpanRe.FindStringSubmatch(text[offset:])
	if m == nil {
		return "", false
	}
	city := trimCity(m[1])
	return city, validCity(city)
}

// trimCity keeps words up to the first boundary word, or through a word that ends a sentence.
func trimCity(span string) string {
	var kept []string
	for i, raw := range strings.Fields(span) {
		w := strings.Trim(raw, "'-")
		endsSentence := false
		if strings.HasSuffix(w, ".") && !abbreviations[w] {
			w = strings.TrimRight(w, ".")
			endsSentence = true
		}
		if w == "" || cityBoundary[w] || (i > 0 && w == "the") {
			break
		}
		kept = append(kept, w)
		if endsSentence {
			break
		}
	}
	return strings.Join(kept, " ")
}

func validCity(city string) bool {
	if len(city) < 3 || stopwords[city] {
		return false
	}
	words := strings.Fields(city)
	first := words[0]
	if nonCity[first] || (stopwords[first] && first != "the") {
		return false
	}
	if first == "the" && (len(words) == 1 || nonCity[words[1]]) {
		return false
	}
	return true
}

var stopwords = setOf("to", "in", "at", "from", "on", "the", "a", "an")

var abbreviations = setOf("st.", "ste.", "ft.", "mt.", "pt.")

var cityBoundary = setOf(
	"to", "from", "on", "in", "at", "for", "by", "via", "with", "and", "or", "but", "so", "then",
	"i", "if", "when", "because", "that", "which", "who",
	"next", "this", "tomorrow", "today", "tonight", "tmrw", "tmr",
	"departing", "leaving", "returning", "arriving", "flying", "going", "please", "around", "before", "after",
	"january", "february", "march", "april", "may", "june", "july", "august", "september", "october",
	"november", "december", "jan", "feb", "mar", "apr", "jun", "jul", "aug", "sept", "sep", "oct", "nov", "dec",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
)

var nonCity = setOf(
	"book", "go", "fly", "travel", "visit", "see", "get", "find", "know", "make", "plan", "have", "be",
	"buy", "take", "leave", "change", "cancel", "check", "help", "ask", "pay", "return", "come", "stay",
	"me", "my", "you", "your", "us", "our", "we", "him", "her", "them", "their", "it", "its", "i",
	"there", "here", "home", "somewhere", "anywhere", "everywhere", "where",
	"flight", "flights", "trip", "vacation", "holiday", "airport", "ticket", "tickets", "fare", "fares",
	"a", "an", "some", "any", "one", "two", "this", "that", "what", "how", "which", "do", "does",
	"yes", "no", "yeah", "yep", "nope", "ok", "okay", "sure", "thanks", "thank", "hi", "hello", "hey",
	"not", "don't", "dont", "can't", "cannot", "maybe", "about", "work", "school", "family", "friends",
)

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
