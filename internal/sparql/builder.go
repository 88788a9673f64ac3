package sparql

import (
	"strings"
	"time"
)

// Node is a single pre-escaped term of a statement pattern. Values can only
// enter a pattern through one of the constructors below, which keeps caller
// input out of the query text.
type Node struct {
	text string
}

func (n Node) String() string { return n.text }

// IRI builds a URI node.
func IRI(uri string) Node { return Node{text: EscapeURI(uri)} }

// Str builds a string literal node.
func Str(value string) Node { return Node{text: EscapeString(value)} }

// Int builds an xsd:integer literal node.
func Int(value int) Node { return Node{text: EscapeInt(value)} }

// DateTime builds an xsd:dateTime literal node.
func DateTime(value time.Time) Node { return Node{text: EscapeDateTime(value)} }

// Bool builds a mu typed-literal boolean node.
func Bool(value bool) Node { return Node{text: EscapeBool(value)} }

// Var builds a variable node. The name must be a plain identifier.
func Var(name string) Node { return Node{text: "?" + name} }

// Statement is one s/p/o pattern with all terms bound or variable.
type Statement struct {
	S, P, O Node
}

// Pattern is a convenience constructor for Statement.
func Pattern(s, p, o Node) Statement {
	return Statement{S: s, P: p, O: o}
}

func writeStatements(sb *strings.Builder, statements []Statement) {
	for _, st := range statements {
		sb.WriteString("  ")
		sb.WriteString(st.S.String())
		sb.WriteString(" ")
		sb.WriteString(st.P.String())
		sb.WriteString(" ")
		sb.WriteString(st.O.String())
		sb.WriteString(" .\n")
	}
}

// Update composes a DELETE/INSERT/WHERE update out of statement patterns.
// With neither deletes nor a where clause it degrades to INSERT DATA.
type Update struct {
	deletes    []Statement
	inserts    []Statement
	where      []Statement
	whereVars  []string
	whereRows  [][]Node
}

func NewUpdate() *Update { return &Update{} }

func (u *Update) Delete(statements ...Statement) *Update {
	u.deletes = append(u.deletes, statements...)
	return u
}

func (u *Update) Insert(statements ...Statement) *Update {
	u.inserts = append(u.inserts, statements...)
	return u
}

func (u *Update) Where(statements ...Statement) *Update {
	u.where = append(u.where, statements...)
	return u
}

// WhereValues adds a VALUES block binding vars to each row in turn.
func (u *Update) WhereValues(vars []string, rows [][]Node) *Update {
	u.whereVars = vars
	u.whereRows = rows
	return u
}

func (u *Update) String() string {
	var sb strings.Builder
	if len(u.deletes) == 0 && len(u.where) == 0 && len(u.whereRows) == 0 {
		sb.WriteString("INSERT DATA {\n")
		writeStatements(&sb, u.inserts)
		sb.WriteString("}")
		return sb.String()
	}
	if len(u.deletes) > 0 {
		sb.WriteString("DELETE {\n")
		writeStatements(&sb, u.deletes)
		sb.WriteString("}\n")
	}
	sb.WriteString("INSERT {\n")
	writeStatements(&sb, u.inserts)
	sb.WriteString("}\nWHERE {\n")
	if len(u.whereRows) > 0 {
		sb.WriteString("  VALUES (")
		for i, v := range u.whereVars {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString("?" + v)
		}
		sb.WriteString(") {\n")
		for _, row := range u.whereRows {
			sb.WriteString("    (")
			for i, n := range row {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(n.String())
			}
			sb.WriteString(")\n")
		}
		sb.WriteString("  }\n")
	}
	writeStatements(&sb, u.where)
	sb.WriteString("}")
	return sb.String()
}

// Ask renders an existence check over the given patterns.
func Ask(statements ...Statement) string {
	var sb strings.Builder
	sb.WriteString("ASK WHERE {\n")
	writeStatements(&sb, statements)
	sb.WriteString("}")
	return sb.String()
}

// DeleteWhere renders a DELETE WHERE update over the given patterns.
func DeleteWhere(statements ...Statement) string {
	var sb strings.Builder
	sb.WriteString("DELETE WHERE {\n")
	writeStatements(&sb, statements)
	sb.WriteString("}")
	return sb.String()
}
