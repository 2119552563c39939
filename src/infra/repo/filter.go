package repo

import (
	"fmt"
	"strings"

	"qaboard/src/core/domain"
)

// column is a closed set of searchable columns. User input never becomes a column.
type column string

const (
	columnTitle    column = "title"
	columnCategory column = "category"
)

// predicate accumulates a WHERE clause from fully parameterized fragments.
// It starts as "match all"; each condition binds the next positional parameter.
type predicate struct {
	clauses []string
	args    []any
}

func matchAll() *predicate {
	return &predicate{clauses: []string{"1=1"}}
}

// containsFold appends a case-insensitive substring condition on col.
func (p *predicate) containsFold(col column, value string) *predicate {
	p.args = append(p.args, "%"+escapeLike(value)+"%")
	p.clauses = append(p.clauses, fmt.Sprintf("%s ILIKE $%d", col, len(p.args)))
	return p
}

func (p *predicate) SQL() string {
	return strings.Join(p.clauses, " AND ")
}

func (p *predicate) Args() []any {
	return p.args
}

// composeSearch builds the search predicate. Title is always bound before
// category so parameter positions are deterministic.
func composeSearch(f domain.SearchFilter) (*predicate, error) {
	if f.IsEmpty() {
		return nil, domain.NewValidationError("search", "title or category is required")
	}
	p := matchAll()
	if f.Title != "" {
		p.containsFold(columnTitle, f.Title)
	}
	if f.Category != "" {
		p.containsFold(columnCategory, f.Category)
	}
	return p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
