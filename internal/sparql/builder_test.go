package sparql

import (
	"strings"
	"testing"
	"time"
)

func TestUpdateInsertData(t *testing.T) {
	update := NewUpdate().Insert(
		Pattern(IRI("http://example.org/s"), IRI("http://example.org/p"), Str("value")),
	)

	got := update.String()
	if !strings.HasPrefix(got, "INSERT DATA {") {
		t.Fatalf("expected INSERT DATA form, got %s", got)
	}
	if !strings.Contains(got, `<http://example.org/s> <http://example.org/p> """value""" .`) {
		t.Fatalf("statement missing from update: %s", got)
	}
}

func TestUpdateConditioned(t *testing.T) {
	update := NewUpdate().
		Delete(Pattern(IRI("http://example.org/agenda"), IRI("http://example.org/modified"), Var("oldModified"))).
		Insert(Pattern(IRI("http://example.org/agenda"), IRI("http://example.org/modified"), DateTime(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))).
		Where(Pattern(IRI("http://example.org/agenda"), IRI("http://example.org/modified"), Var("oldModified")))

	got := update.String()
	for _, want := range []string{"DELETE {", "INSERT {", "WHERE {", "?oldModified"} {
		if !strings.Contains(got, want) {
			t.Fatalf("update missing %q: %s", want, got)
		}
	}
}

func TestUpdateWhereValues(t *testing.T) {
	update := NewUpdate().
		Delete(Pattern(Var("agendaitem"), IRI("http://schema.org/position"), Var("oldPosition"))).
		Insert(Pattern(Var("agendaitem"), IRI("http://schema.org/position"), Var("newPosition"))).
		WhereValues(
			[]string{"agendaitem", "oldPosition", "newPosition"},
			[][]Node{
				{IRI("http://example.org/item/1"), Int(4), Int(2)},
				{IRI("http://example.org/item/2"), Int(2), Int(3)},
			},
		)

	got := update.String()
	if !strings.Contains(got, "VALUES (?agendaitem ?oldPosition ?newPosition)") {
		t.Fatalf("VALUES header missing: %s", got)
	}
	if !strings.Contains(got, `(<http://example.org/item/1> "4"^^<http://www.w3.org/2001/XMLSchema#integer> "2"^^<http://www.w3.org/2001/XMLSchema#integer>)`) {
		t.Fatalf("VALUES row missing: %s", got)
	}
}

func TestAskAndDeleteWhere(t *testing.T) {
	ask := Ask(Pattern(IRI("http://example.org/s"), Var("p"), Var("o")))
	if !strings.HasPrefix(ask, "ASK WHERE {") {
		t.Fatalf("unexpected ask form: %s", ask)
	}

	del := DeleteWhere(Pattern(Var("s"), Var("p"), IRI("http://example.org/o")))
	if !strings.HasPrefix(del, "DELETE WHERE {") {
		t.Fatalf("unexpected delete form: %s", del)
	}
	if !strings.Contains(del, "?s ?p <http://example.org/o> .") {
		t.Fatalf("pattern missing: %s", del)
	}
}

func TestEscapeString(t *testing.T) {
	got := EscapeString(`a "quoted" value \ with backslash`)
	if !strings.HasPrefix(got, `"""`) || !strings.HasSuffix(got, `"""`) {
		t.Fatalf("expected triple quoting, got %s", got)
	}
	if strings.Contains(got, `"quoted"`) && !strings.Contains(got, `\"quoted\"`) {
		t.Fatalf("quotes not escaped: %s", got)
	}
}

func TestEscapeURIStripsBrokenCharacters(t *testing.T) {
	got := EscapeURI("http://example.org/a b<c>")
	if strings.ContainsAny(strings.Trim(got, "<>"), " <>") {
		t.Fatalf("unsafe characters survived: %s", got)
	}
}
