package sparql

import (
	"fmt"
	"strings"
	"time"
)

const (
	xsdInteger  = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
	muBoolean   = "http://mu.semte.ch/vocabularies/typed-literals/boolean"
)

var uriEscaper = strings.NewReplacer(
	"\\", "%5C",
	"<", "%3C",
	">", "%3E",
	"\"", "%22",
	"{", "%7B",
	"}", "%7D",
	"|", "%7C",
	"^", "%5E",
	"`", "%60",
	" ", "%20",
	"\n", "%0A",
	"\t", "%09",
)

// EscapeURI renders a URI as a SPARQL IRI term, percent-encoding the
// characters that would break out of the angle brackets.
func EscapeURI(uri string) string {
	return "<" + uriEscaper.Replace(uri) + ">"
}

var stringEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"\"", "\\\"",
)

// EscapeString renders a string literal. Triple quotes keep multi-line
// values (news item HTML bodies) intact.
func EscapeString(value string) string {
	return `"""` + stringEscaper.Replace(value) + `"""`
}

// EscapeInt renders an xsd:integer typed literal.
func EscapeInt(value int) string {
	return fmt.Sprintf("\"%d\"^^%s", value, EscapeURI(xsdInteger))
}

// EscapeDateTime renders an xsd:dateTime typed literal in UTC.
func EscapeDateTime(value time.Time) string {
	return fmt.Sprintf("\"%s\"^^%s", value.UTC().Format(time.RFC3339), EscapeURI(xsdDateTime))
}

// EscapeBool renders the mu typed-literal boolean used throughout the
// application graphs, not the xsd one.
func EscapeBool(value bool) string {
	if value {
		return fmt.Sprintf("\"true\"^^%s", EscapeURI(muBoolean))
	}
	return fmt.Sprintf("\"false\"^^%s", EscapeURI(muBoolean))
}
