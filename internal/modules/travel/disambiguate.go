// README: Disambiguator: picks one value per field and enforces origin != destination.
package travel

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Resolve turns candidates into a TravelInfo. Rules, in order:
//  1. highest confidence per field, ties to the first seen;
//  2. a city proposed as both origin and destination keeps the role whose
//     "from X" / "to X" phrase appears alone in the message, else destination;
//  3. a missing origin is retried from "i'm from X" / "i am from X";
//  4. city words are title-cased.
//
// The date is the highest-ranked date candidate that normalizes against ref.
// When none does, the best raw span is kept in DateRaw and Date stays empty.
func Resolve(c Candidates, message string, ref time.Time) TravelInfo {
	text := normalizeMessage(message)
	var info TravelInfo
	if best, ok := c.Origin.Best(); ok {
		info.Origin = best.Value
	}
	if best, ok := c.Destination.Best(); ok {
		info.Destination = best.Value
	}

	if info.Origin != "" && info.Origin == info.Destination {
		fromHit := strings.Contains(text, "from "+info.Origin)
		toHit := strings.Contains(text, "to "+info.Origin)
		if fromHit && !toHit {
			info.Destination = ""
		} else {
			info.Origin = ""
		}
	}

	if info.Origin == "" {
		if city, ok := selfDeclaredOrigin(text); ok && city != info.Destination {
			info.Origin = city
		}
	}

	info.Origin = titleCase(info.Origin)
	info.Destination = titleCase(info.Destination)

	for _, cand := range c.Date.Ranked() {
		if iso, ok := Normalize(cand.Value, ref); ok {
			info.Date, info.DateRaw = iso, cand.Value
			break
		}
	}
	if info.Date == "" {
		if best, ok := c.Date.Best(); ok {
			info.DateRaw = best.Value
		}
	}
	return info
}

func selfDeclaredOrigin(text string) (string, bool) {
	loc := selfOriginRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return cityAt(text, loc[1])
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// sameCity compares two resolved city names ignoring case.
func sameCity(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
