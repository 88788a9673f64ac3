package sparql

import (
	"time"
)

// Field holds the value(s) a resource has for one variable or predicate.
// Values keep encounter order; an identical value is only recorded once, a
// distinct second value promotes the field to a list. A field therefore never
// mixes list and scalar semantics: Len() == 1 means every row agreed.
type Field struct {
	values []any
}

func (f Field) Len() int { return len(f.values) }

// IsList reports whether the rows disagreed on this field.
func (f Field) IsList() bool { return len(f.values) > 1 }

// One returns the single agreed value, or the first of a list.
func (f Field) One() any {
	if len(f.values) == 0 {
		return nil
	}
	return f.values[0]
}

// All returns every distinct value in encounter order.
func (f Field) All() []any { return f.values }

// String returns the first value as a string, or "".
func (f Field) String() string {
	if s, ok := f.One().(string); ok {
		return s
	}
	return ""
}

// Strings returns all values that are strings, in encounter order.
func (f Field) Strings() []string {
	out := make([]string, 0, len(f.values))
	for _, v := range f.values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Int returns the first value as an int, or 0.
func (f Field) Int() int {
	if n, ok := f.One().(int); ok {
		return n
	}
	return 0
}

// Ints returns all values that are ints, in encounter order.
func (f Field) Ints() []int {
	out := make([]int, 0, len(f.values))
	for _, v := range f.values {
		if n, ok := v.(int); ok {
			out = append(out, n)
		}
	}
	return out
}

// Time returns the first value as a time.Time, or the zero time.
func (f Field) Time() time.Time {
	if ts, ok := f.One().(time.Time); ok {
		return ts
	}
	return time.Time{}
}

func sameValue(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
		return false
	}
	return a == b
}

func (f *Field) add(value any) {
	for _, existing := range f.values {
		if sameValue(existing, value) {
			return
		}
	}
	f.values = append(f.values, value)
}

// Resource is one reduced record, keyed by its identifier.
type Resource struct {
	URI    string
	Fields map[string]Field
}

func (r *Resource) Field(name string) Field {
	return r.Fields[name]
}

// HasType reports whether the resource's "a" field contains the given RDF
// type, as mapped by TriplesToResources.
func (r *Resource) HasType(rdfType string) bool {
	for _, v := range r.Fields["a"].Strings() {
		if v == rdfType {
			return true
		}
	}
	return false
}

func (r *Resource) field(name string) *Field {
	f := r.Fields[name]
	return &f
}

func (r *Resource) set(name string, f *Field) {
	r.Fields[name] = *f
}

// Reduce collapses a column-oriented result set into one record per value of
// the identity variable. When identityVar is empty the first selected
// variable is used. Terms are coerced by their datatype tag.
func Reduce(resp *Response, identityVar string) []*Resource {
	if len(resp.Results.Bindings) == 0 {
		return nil
	}
	if identityVar == "" {
		identityVar = resp.Head.Vars[0]
	}

	byID := map[string]*Resource{}
	var order []string

	for _, binding := range resp.Results.Bindings {
		id, ok := binding[identityVar]
		if !ok {
			continue
		}
		resource, ok := byID[id.Value]
		if !ok {
			resource = &Resource{URI: id.Value, Fields: map[string]Field{}}
			byID[id.Value] = resource
			order = append(order, id.Value)
		}
		for _, variable := range resp.Head.Vars {
			term, bound := binding[variable]
			if !bound {
				continue
			}
			f := resource.field(variable)
			f.add(term.Typed())
			resource.set(variable, f)
		}
	}

	out := make([]*Resource, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// TriplesToResources groups a triple set into resources using a predicate
// mapping. A mapping entry "<predicate>" names the field stored on the
// subject; an entry "^<predicate>" additionally stores the subject on the
// object's resource under the given field (inverse grouping). Predicates
// without a mapping entry are kept under their full URI.
func TriplesToResources(triples []Triple, mapping map[string]string) []*Resource {
	byID := map[string]*Resource{}
	var order []string

	resourceFor := func(uri string) *Resource {
		resource, ok := byID[uri]
		if !ok {
			resource = &Resource{URI: uri, Fields: map[string]Field{}}
			byID[uri] = resource
			order = append(order, uri)
		}
		return resource
	}

	for _, triple := range triples {
		s := triple.Subject.Value
		p := triple.Predicate.Value
		o := triple.Object.Value

		field, ok := mapping[p]
		if !ok {
			field = p
		}
		if field != "" {
			resource := resourceFor(s)
			f := resource.field(field)
			f.add(o)
			resource.set(field, f)
		}

		if inverse, ok := mapping["^"+p]; ok {
			resource := resourceFor(o)
			f := resource.field(inverse)
			f.add(s)
			resource.set(inverse, f)
		}
	}

	out := make([]*Resource, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// FilterByType returns the resources carrying the given RDF type.
func FilterByType(resources []*Resource, rdfType string) []*Resource {
	var out []*Resource
	for _, r := range resources {
		if r.HasType(rdfType) {
			out = append(out, r)
		}
	}
	return out
}
