package store

import (
	"strconv"
	"strings"

	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	"github.com/shopspring/decimal"
)

// placeholder renders the n-th (1-based) bind parameter of a dialect.
type placeholder func(n int) string

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

func questionPlaceholder(int) string { return "?" }

// buildListQuery renders the filtered, paged catalog query. Filters are
// substring matches; rows come newest first.
func buildListQuery(columns string, filter models.GameFilter, ph placeholder) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 4)

	sb.WriteString("SELECT ")
	sb.WriteString(columns)
	sb.WriteString(" FROM games WHERE 1=1")

	if filter.Genre != "" {
		args = append(args, containsPattern(filter.Genre))
		sb.WriteString(" AND genre LIKE " + ph(len(args)) + ` ESCAPE '\'`)
	}
	if filter.Platform != "" {
		args = append(args, containsPattern(filter.Platform))
		sb.WriteString(" AND platform LIKE " + ph(len(args)) + ` ESCAPE '\'`)
	}

	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	args = append(args, filter.Limit)
	sb.WriteString(" LIMIT " + ph(len(args)))
	args = append(args, filter.Offset)
	sb.WriteString(" OFFSET " + ph(len(args)))

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps value for a LIKE substring match, escaping wildcards.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func decimalArg(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}
