package sparql

import (
	"strconv"
	"time"
)

// Term is one bound value in a SPARQL JSON result.
type Term struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Typed coerces the term by its datatype tag: integers and datetimes get
// native types, everything else stays a string (URIs included).
func (t Term) Typed() any {
	switch t.Datatype {
	case xsdInteger:
		if n, err := strconv.Atoi(t.Value); err == nil {
			return n
		}
		return t.Value
	case xsdDateTime:
		if ts, err := time.Parse(time.RFC3339, t.Value); err == nil {
			return ts
		}
		return t.Value
	default:
		return t.Value
	}
}

// Binding is one result row, keyed by variable name.
type Binding map[string]Term

// Response is the application/sparql-results+json envelope. Boolean is set
// for ASK responses only.
type Response struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean,omitempty"`
}

// Triple is one s/p/o row from a CONSTRUCT result.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// ShapeError signals a result set whose columns do not match what the query
// promised. The fetch layer surfaces it before any reduction runs.
type ShapeError struct {
	Expected []string
	Got      []string
}

func (e ShapeError) Error() string {
	return "unexpected result shape: expected variables " +
		"[" + join(e.Expected) + "], got [" + join(e.Got) + "]"
}

func join(vars []string) string {
	out := ""
	for i, v := range vars {
		if i > 0 {
			out += " "
		}
		out += v
	}
	return out
}

// ResponseToTriples interprets a response as a triple set. The response must
// carry exactly the s, p, o variables of a CONSTRUCT query.
func ResponseToTriples(resp *Response) ([]Triple, error) {
	want := []string{"s", "p", "o"}
	if len(resp.Head.Vars) != 3 ||
		resp.Head.Vars[0] != "s" || resp.Head.Vars[1] != "p" || resp.Head.Vars[2] != "o" {
		return nil, ShapeError{Expected: want, Got: resp.Head.Vars}
	}
	triples := make([]Triple, 0, len(resp.Results.Bindings))
	for _, b := range resp.Results.Bindings {
		triples = append(triples, Triple{
			Subject:   b["s"],
			Predicate: b["p"],
			Object:    b["o"],
		})
	}
	return triples, nil
}
