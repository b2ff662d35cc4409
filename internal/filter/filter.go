// Package filter selects events by keyword.
package filter

import (
	"strings"

	"github.com/inovacc/rsvpr/internal/meetup"
)

// Match returns the events whose name or description contains at least
// one keyword, case-insensitive. Empty keywords match everything. Input
// order is preserved and the input slice is never modified.
func Match(events []meetup.Event, keywords []string) []meetup.Event {
	if len(keywords) == 0 {
		return events
	}

	lowered := make([]string, 0, len(keywords))

	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}

	if len(lowered) == 0 {
		return events
	}

	matched := make([]meetup.Event, 0, len(events))

	for _, ev := range events {
		name := strings.ToLower(ev.Name)
		desc := strings.ToLower(ev.Description)

		for _, k := range lowered {
			if strings.Contains(name, k) || strings.Contains(desc, k) {
				matched = append(matched, ev)
				break
			}
		}
	}

	return matched
}
