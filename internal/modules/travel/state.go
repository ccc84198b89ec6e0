// README: Conversation state machine; the caller carries the state and known fields between requests.
package travel

import (
	"strings"
	"time"
)

// NextState is the state a caller should send back with the user's next
// message: the first missing field in asking order, or Complete.
func NextState(info TravelInfo) State {
	switch {
	case info.Origin == "":
		return StateAwaitingOrigin
	case info.Destination == "":
		return StateAwaitingDestination
	case info.Date == "":
		return StateAwaitingDate
	default:
		return StateComplete
	}
}

// ApplyReply reads a bare reply ("Paris", "next friday") as the field the
// conversation was waiting for. Fields already known are left alone.
func ApplyReply(state State, info TravelInfo, message string, ref time.Time) TravelInfo {
	switch state {
	case StateAwaitingOrigin:
		if info.Origin == "" {
			if city, ok := bareCity(message); ok && !sameCity(city, info.Destination) {
				info.Origin = city
			}
		}
	case StateAwaitingDestination:
		if info.Destination == "" {
			if city, ok := bareCity(message); ok && !sameCity(city, info.Origin) {
				info.Destination = city
			}
		}
	case StateAwaitingDate:
		if info.Date == "" {
			raw := strings.TrimSpace(message)
			if iso, ok := Normalize(raw, ref); ok {
				info.Date, info.DateRaw = iso, raw
			} else if info.DateRaw == "" {
				info.DateRaw = raw
			}
		}
	}
	return info
}

func bareCity(message string) (string, bool) {
	text := strings.Trim(normalizeMessage(message), " !?,")
	city, ok := cityAt(text, 0)
	if !ok {
		return "", false
	}
	return titleCase(city), true
}

// combine overlays fresh onto carried: a field found in this message replaces
// the carried one. The date and its raw text travel together. A carried city
// that collides with a fresh one in the other role is dropped.
func combine(carried, fresh TravelInfo) TravelInfo {
	out := carried
	if fresh.Origin != "" {
		out.Origin = fresh.Origin
	}
	if fresh.Destination != "" {
		out.Destination = fresh.Destination
	}
	if fresh.Date != "" || fresh.DateRaw != "" {
		out.Date, out.DateRaw = fresh.Date, fresh.DateRaw
	}
	if sameCity(out.Origin, out.Destination) {
		if fresh.Destination != "" {
			out.Origin = ""
		} else {
			out.Destination = ""
		}
	}
	return out
}
