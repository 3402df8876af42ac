// internal/data/projection.go
// Rendering of validated query plans into SQL fragments. The plan's columns
// come from registered mappings or code constants, never from raw client
// input, which is what makes the fmt-based interpolation here safe.
package data

import (
	"fmt"
	"strings"

	"github.com/rsen253/library-api/internal/query"
)

// orderByClause renders the plan's sort keys as the body of an ORDER BY,
// always appending the primary key ascending as a stable tie-break so
// repeated identical queries page consistently.
func orderByClause(keys []query.SortKey, tieBreak string) string {
	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key.Column)
		if key.Descending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
		b.WriteString(", ")
	}
	b.WriteString(tieBreak)
	b.WriteString(" ASC")
	return b.String()
}

// likeEscaper neutralises the LIKE metacharacters in a search value so a
// client searching for "100%" matches that literal text instead of every row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// whereClause renders the plan's filters as the body of a WHERE plus the
// matching placeholder arguments, numbering placeholders from firstArg.
// Filters AND together; the columns inside one filter OR together. All
// matching is case-insensitive on trimmed values.
func whereClause(filters []query.Filter, firstArg int) (string, []any) {
	if len(filters) == 0 {
		return "TRUE", nil
	}

	var (
		conditions []string
		args       []any
	)
	for _, filter := range filters {
		value := strings.ToLower(strings.TrimSpace(filter.Value))
		if filter.Op == query.FilterContains {
			value = "%" + likeEscaper.Replace(value) + "%"
		}
		args = append(args, value)
		placeholder := fmt.Sprintf("$%d", firstArg+len(args)-1)

		alternatives := make([]string, 0, len(filter.Columns))
		for _, column := range filter.Columns {
			switch filter.Op {
			case query.FilterContains:
				alternatives = append(alternatives, fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, column, placeholder))
			default:
				alternatives = append(alternatives, fmt.Sprintf("LOWER(%s) = %s", column, placeholder))
			}
		}
		conditions = append(conditions, "("+strings.Join(alternatives, " OR ")+")")
	}

	return strings.Join(conditions, " AND "), args
}
