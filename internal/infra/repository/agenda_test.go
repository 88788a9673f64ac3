package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/domain"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

type fakeSparqlStore struct {
	selects   []string
	updates   []string
	responses []*sparql.Response
	askResult bool
}

func (f *fakeSparqlStore) Select(_ context.Context, query string) (*sparql.Response, error) {
	f.selects = append(f.selects, query)
	if len(f.responses) > 0 {
		resp := f.responses[0]
		f.responses = f.responses[1:]
		return resp, nil
	}
	return &sparql.Response{}, nil
}

func (f *fakeSparqlStore) Construct(context.Context, string) ([]sparql.Triple, error) {
	return nil, nil
}

func (f *fakeSparqlStore) Ask(context.Context, string) (bool, error) {
	return f.askResult, nil
}

func (f *fakeSparqlStore) Update(_ context.Context, update string) error {
	f.updates = append(f.updates, update)
	return nil
}

func positionResponse(position string) *sparql.Response {
	resp := &sparql.Response{}
	resp.Head.Vars = []string{"agendaitemPosition"}
	resp.Results.Bindings = []sparql.Binding{
		{"agendaitemPosition": {Type: "typed-literal", Value: position, Datatype: "http://www.w3.org/2001/XMLSchema#integer"}},
	}
	return resp
}

func TestSiblingsAppliesApprovedFloor(t *testing.T) {
	siblingsResp := &sparql.Response{}
	siblingsResp.Head.Vars = []string{"agendaitem", "agendaitemCreated", "agendaitemPosition", "mandateePriority"}
	siblingsResp.Results.Bindings = []sparql.Binding{
		{
			"agendaitem":         {Type: "uri", Value: "http://example.org/item/1"},
			"agendaitemPosition": {Type: "typed-literal", Value: "6", Datatype: "http://www.w3.org/2001/XMLSchema#integer"},
			"mandateePriority":   {Type: "typed-literal", Value: "2", Datatype: "http://www.w3.org/2001/XMLSchema#integer"},
		},
		{
			"agendaitem":         {Type: "uri", Value: "http://example.org/item/1"},
			"agendaitemPosition": {Type: "typed-literal", Value: "6", Datatype: "http://www.w3.org/2001/XMLSchema#integer"},
			"mandateePriority":   {Type: "typed-literal", Value: "4", Datatype: "http://www.w3.org/2001/XMLSchema#integer"},
		},
	}

	store := &fakeSparqlStore{responses: []*sparql.Response{positionResponse("5"), siblingsResp}}
	repo := NewAgendaRepository(store)

	siblings, err := repo.Siblings(context.Background(), "http://example.org/agenda/1", "http://example.org/type/nota")
	if err != nil {
		t.Fatalf("siblings failed: %v", err)
	}

	if len(store.selects) != 2 {
		t.Fatalf("expected floor query and main query, got %d", len(store.selects))
	}
	if !strings.Contains(store.selects[1], "?agendaitemPosition > 5") {
		t.Fatalf("approved floor missing from main query: %s", store.selects[1])
	}

	if len(siblings) != 1 {
		t.Fatalf("rows for one item must reduce to one sibling, got %d", len(siblings))
	}
	got := siblings[0]
	if got.Position != 6 {
		t.Fatalf("unexpected position %d", got.Position)
	}
	if len(got.Priorities) != 2 || got.Priorities[0] != 2 || got.Priorities[1] != 4 {
		t.Fatalf("unexpected priorities %v", got.Priorities)
	}
}

func TestSiblingsWithoutApprovedItems(t *testing.T) {
	store := &fakeSparqlStore{responses: []*sparql.Response{{}, {}}}
	repo := NewAgendaRepository(store)

	if _, err := repo.Siblings(context.Background(), "http://example.org/agenda/1", "t"); err != nil {
		t.Fatalf("siblings failed: %v", err)
	}
	if strings.Contains(store.selects[1], "FILTER ( ?agendaitemPosition >") {
		t.Fatalf("no floor filter expected without approved items: %s", store.selects[1])
	}
}

func TestApplyPositionsWritesValuesRows(t *testing.T) {
	store := &fakeSparqlStore{}
	repo := NewAgendaRepository(store)

	err := repo.ApplyPositions(context.Background(), []domain.PositionChange{
		{URI: "http://example.org/item/1", OldPosition: 4, NewPosition: 2},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(store.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(store.updates))
	}
	update := store.updates[0]
	if !strings.Contains(update, "VALUES (?agendaitem ?oldPosition ?newPosition)") {
		t.Fatalf("VALUES block missing: %s", update)
	}
	if !strings.Contains(update, "<http://example.org/item/1>") {
		t.Fatalf("row missing: %s", update)
	}
}

func TestApplyPositionsSkipsEmptyChangeSet(t *testing.T) {
	store := &fakeSparqlStore{}
	repo := NewAgendaRepository(store)

	if err := repo.ApplyPositions(context.Background(), nil); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(store.updates) != 0 {
		t.Fatalf("no update expected for an empty change set")
	}
}
