package state

import (
	"reflect"
	"testing"

	"github.com/five82/leadflow/internal/pipeline"
)

func names(leads []pipeline.Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.Name
	}
	return out
}

func TestSort_ToggleSameKeyFlipsDirection(t *testing.T) {
	var s Sort
	if s.Active() != SortByName || s.Descending {
		t.Fatalf("zero Sort = %#v, want name ascending", s)
	}
	s = s.Toggle(SortByName)
	if s.Active() != SortByName || !s.Descending {
		t.Fatalf("after first toggle = %#v, want name descending", s)
	}
	s = s.Toggle(SortByName)
	if s.Descending {
		t.Fatalf("after second toggle = %#v, want ascending", s)
	}
}

func TestSort_NewKeyResetsToAscending(t *testing.T) {
	s := Sort{Key: SortByName, Descending: true}
	s = s.Toggle(SortByEmail)
	if s.Active() != SortByEmail || s.Descending {
		t.Fatalf("Toggle(email) = %#v, want email ascending", s)
	}
}

func TestSort_ViewDoesNotReorderStoredLeads(t *testing.T) {
	leads := []pipeline.Lead{{Name: "Charlie"}, {Name: "alpha"}, {Name: "Bravo"}}
	order := Sort{}.View(leads)

	if !reflect.DeepEqual(order, []int{1, 2, 0}) {
		t.Fatalf("View = %v, want [1 2 0]", order)
	}
	if got := names(leads); !reflect.DeepEqual(got, []string{"Charlie", "alpha", "Bravo"}) {
		t.Fatalf("stored order changed: %v", got)
	}
}

func TestSort_MissingFieldSortsAsEmpty(t *testing.T) {
	leads := []pipeline.Lead{
		{Name: "B", Website: "https://b.example"},
		{Name: "A"},
		{Name: "C", Website: "https://a.example"},
	}
	got := names(Sort{Key: SortByWebsite}.Sorted(leads))
	if want := []string{"A", "C", "B"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted by website = %v, want %v", got, want)
	}
	got = names(Sort{Key: SortByWebsite, Descending: true}.Sorted(leads))
	if want := []string{"B", "C", "A"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted by website desc = %v, want %v", got, want)
	}
}

func TestSort_TiesKeepStoredOrder(t *testing.T) {
	leads := []pipeline.Lead{
		{Name: "first", Email: "same@example.com"},
		{Name: "second", Email: "same@example.com"},
		{Name: "third", Email: "another@example.com"},
		{Name: "fourth", Email: "same@example.com"},
	}
	got := names(Sort{Key: SortByEmail}.Sorted(leads))
	if want := []string{"third", "first", "second", "fourth"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ascending = %v, want %v", got, want)
	}
	got = names(Sort{Key: SortByEmail, Descending: true}.Sorted(leads))
	if want := []string{"first", "second", "fourth", "third"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("descending = %v, want %v", got, want)
	}
}

func TestSort_UnknownKeyFallsBackToName(t *testing.T) {
	s := Sort{Key: SortKey("phone")}
	if s.Active() != SortByName {
		t.Fatalf("Active() = %q, want name", s.Active())
	}
	if got := FieldValue(pipeline.Lead{Name: "n", Website: "w", Email: "e"}, SortKey("phone")); got != "n" {
		t.Fatalf("FieldValue fallback = %q, want n", got)
	}
}
