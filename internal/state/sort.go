package state

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/leadflow/internal/pipeline"
)

// SortKey selects the lead field used for ordering.
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByWebsite SortKey = "website"
	SortByEmail   SortKey = "email"
)

// SortKeys lists the sortable columns in display order.
var SortKeys = []SortKey{SortByName, SortByWebsite, SortByEmail}

// Sort is the table ordering. The zero value sorts by name ascending.
type Sort struct {
	Key        SortKey
	Descending bool
}

// Toggle returns the ordering after the user picks key: the same key flips
// direction, a new key starts ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.key() == key {
		return Sort{Key: key, Descending: !s.Descending}
	}
	return Sort{Key: key}
}

// Active returns the effective sort key.
func (s Sort) Active() SortKey {
	return s.key()
}

func (s Sort) key() SortKey {
	switch s.Key {
	case SortByWebsite, SortByEmail:
		return s.Key
	default:
		return SortByName
	}
}

// FieldValue returns the text compared for key.
func FieldValue(lead pipeline.Lead, key SortKey) string {
	switch key {
	case SortByWebsite:
		return lead.Website
	case SortByEmail:
		return lead.Email
	default:
		return lead.Name
	}
}

// View returns indices into leads in display order. The leads slice is not
// reordered; ties keep their stored relative order.
func (s Sort) View(leads []pipeline.Lead) []int {
	order := make([]int, len(leads))
	for i := range order {
		order[i] = i
	}
	if len(leads) < 2 {
		return order
	}

	key := s.key()
	col := collate.New(language.English)
	slices.SortStableFunc(order, func(a, b int) int {
		cmp := col.CompareString(FieldValue(leads[a], key), FieldValue(leads[b], key))
		if s.Descending {
			return -cmp
		}
		return cmp
	})
	return order
}

// Sorted returns a sorted copy of leads.
func (s Sort) Sorted(leads []pipeline.Lead) []pipeline.Lead {
	order := s.View(leads)
	out := make([]pipeline.Lead, len(order))
	for i, idx := range order {
		out[i] = leads[idx]
	}
	return out
}
