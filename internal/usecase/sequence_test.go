package usecase

import (
	"testing"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
)

func TestComparePriorities(t *testing.T) {
	cases := []struct {
		name string
		a, b []int
		want int
	}{
		{"equal", []int{1, 2}, []int{2, 1}, 0},
		{"element-wise", []int{2, 3}, []int{2, 4}, -1},
		{"prefix first", []int{1}, []int{1, 2}, -1},
		{"empty sorts last", nil, []int{9}, 1},
		{"both empty", nil, nil, 0},
	}
	for _, tc := range cases {
		if got := comparePriorities(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: comparePriorities(%v, %v) = %d, want %d", tc.name, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestPlanPositionsOrdersBySeniority(t *testing.T) {
	siblings := []domain.Sibling{
		{URI: "item-a", Position: 4, Priorities: []int{3}},
		{URI: "item-b", Position: 5, Priorities: []int{1, 2}},
		{URI: "item-c", Position: 6, Priorities: []int{1}},
		{URI: "item-d", Position: 7},
	}

	changes := PlanPositions(siblings)

	// Expected order: item-c (1), item-b (1,2), item-a (3), item-d (none).
	// Positions renumber from the current minimum, 4; item-b and item-d
	// already sit at their targets and are not rewritten.
	want := map[string]int{"item-c": 4, "item-a": 6}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %+v", changes)
	}
	for _, change := range changes {
		target, ok := want[change.URI]
		if !ok {
			t.Fatalf("unexpected change for %s", change.URI)
		}
		if change.NewPosition != target {
			t.Fatalf("%s moved to %d, want %d", change.URI, change.NewPosition, target)
		}
	}
}

func TestPlanPositionsKeepsManualOrderWithinGroup(t *testing.T) {
	siblings := []domain.Sibling{
		{URI: "item-a", Position: 3, Priorities: []int{2}},
		{URI: "item-b", Position: 1, Priorities: []int{2}},
		{URI: "item-c", Position: 2, Priorities: []int{2}},
	}

	changes := PlanPositions(siblings)
	if len(changes) != 0 {
		t.Fatalf("equal priorities in contiguous positions need no changes, got %+v", changes)
	}
}

func TestPlanPositionsWritesOnlyMovedItems(t *testing.T) {
	siblings := []domain.Sibling{
		{URI: "item-a", Position: 10, Priorities: []int{1}},
		{URI: "item-b", Position: 11, Priorities: []int{5}},
		{URI: "item-c", Position: 12, Priorities: []int{3}},
	}

	changes := PlanPositions(siblings)
	if len(changes) != 2 {
		t.Fatalf("item-a already sits at its target, got %+v", changes)
	}
	for _, change := range changes {
		if change.URI == "item-a" {
			t.Fatalf("item-a must not be rewritten")
		}
	}
}

func TestPlanPositionsEmpty(t *testing.T) {
	if changes := PlanPositions(nil); changes != nil {
		t.Fatalf("expected no changes for empty input, got %+v", changes)
	}
}
