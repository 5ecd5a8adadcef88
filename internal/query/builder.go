// Package query builds parameterized SELECT statements from optional
// predicates. Count and page queries are rendered from the same Builder, so
// they always share one WHERE clause and argument list.
//
// Placeholders are written as "?"; callers rebind them for their driver
// (sqlx.DB.Rebind).
package query

import (
	"fmt"
	"math"
	"strings"
)

type Builder struct {
	clauses []string
	args    []any
}

func New() *Builder {
	return &Builder{}
}

// Where adds a clause AND-ed with the others. The number of "?" in clause
// must match len(args).
func (b *Builder) Where(clause string, args ...any) *Builder {
	if n := strings.Count(clause, "?"); n != len(args) {
		panic(fmt.Sprintf("query: clause %q has %d placeholders but %d args", clause, n, len(args)))
	}
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
	return b
}

// WhereIf adds the clause only when cond holds.
func (b *Builder) WhereIf(cond bool, clause string, args ...any) *Builder {
	if cond {
		return b.Where(clause, args...)
	}
	return b
}

// Len returns the number of clauses.
func (b *Builder) Len() int { return len(b.clauses) }

// WhereSQL renders " WHERE a AND b", or "" without clauses.
func (b *Builder) WhereSQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// Args returns a copy of the accumulated arguments.
func (b *Builder) Args() []any {
	out := make([]any, len(b.args))
	copy(out, b.args)
	return out
}

// Count renders SELECT COUNT(*) over table with the predicate.
func (b *Builder) Count(table string) (string, []any) {
	return "SELECT COUNT(*) FROM " + table + b.WhereSQL(), b.Args()
}

// Select renders the listing statement. A nil page returns every row.
func (b *Builder) Select(columns, table string, order []Order, page *Page) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columns)
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	sb.WriteString(b.WhereSQL())

	if len(order) > 0 {
		parts := make([]string, len(order))
		for i, o := range order {
			parts[i] = o.String()
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	args := b.Args()
	if page != nil {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, page.Limit, page.Offset())
	}

	return sb.String(), args
}

// Order is one ORDER BY term. Column must come from a whitelist, never from
// user input directly.
type Order struct {
	Column string
	Desc   bool
}

func (o Order) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// Page is a 1-based page of Limit rows.
type Page struct {
	Number int
	Limit  int
}

// InRange reports whether the page's offset is representable as an int.
func (p Page) InRange() bool {
	return p.Limit > 0 && p.Number >= 1 && p.Number-1 <= math.MaxInt/p.Limit
}

// Offset saturates at math.MaxInt instead of wrapping.
func (p Page) Offset() int {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	if !p.InRange() {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// TotalPages is ceil(total/limit), zero for an empty result.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
