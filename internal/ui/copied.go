package ui

import (
	"time"

	"github.com/five82/leadflow/internal/pipeline"
)

// copiedFor is how long a field shows its copied mark.
const copiedFor = 2 * time.Second

type copyField int

const (
	fieldWebsite copyField = iota
	fieldEmail
	fieldSummary
	fieldPainPoints
	fieldOutreach
)

func (f copyField) label() string {
	switch f {
	case fieldWebsite:
		return "Website"
	case fieldEmail:
		return "Email"
	case fieldSummary:
		return "Summary"
	case fieldPainPoints:
		return "Pain Points"
	case fieldOutreach:
		return "Outreach Email"
	default:
		return ""
	}
}

func (f copyField) value(l pipeline.Lead) string {
	switch f {
	case fieldWebsite:
		return l.Website
	case fieldEmail:
		return l.Email
	case fieldSummary:
		return l.Summary
	case fieldPainPoints:
		return l.PainPoints
	case fieldOutreach:
		return l.OutreachEmail
	default:
		return ""
	}
}

// copyMarks maps a field to the time its copied mark disappears. A newer
// copy of the same field replaces the older expiry.
type copyMarks map[copyField]time.Time

func (c copyMarks) mark(f copyField, until time.Time) {
	c[f] = until
}

func (c copyMarks) active(f copyField, now time.Time) bool {
	until, ok := c[f]
	return ok && now.Before(until)
}

// expire drops every mark whose expiry is not after now.
func (c copyMarks) expire(now time.Time) {
	for f, until := range c {
		if !now.Before(until) {
			delete(c, f)
		}
	}
}

// clear drops every mark. Marks belong to the selected lead.
func (c copyMarks) clear() {
	clear(c)
}
