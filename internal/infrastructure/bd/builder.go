package db

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"field-service/pkg/types"
)

// ApplyListParams adds whitelisted filters, sort and pagination to a select.
// Keys missing from allowedMap are ignored. Comma-separated values become IN lists.
func ApplyListParams(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	builder = ApplyFilters(builder, filter, allowedMap)

	for _, jsonField := range sortedKeys(filter.Sort) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		sqlDir := "ASC"
		if strings.ToLower(filter.Sort[jsonField]) == "desc" {
			sqlDir = "DESC"
		}
		builder = builder.OrderBy(fmt.Sprintf("%s %s", dbCol, sqlDir))
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			builder = builder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			builder = builder.Offset(uint64(filter.Offset))
		}
	}

	return builder
}

// ApplyFilters adds only the WHERE part, for count queries.
func ApplyFilters(builder sq.SelectBuilder, filter types.Filter, allowedMap map[string]string) sq.SelectBuilder {
	for _, jsonField := range sortedKeys(filter.Filter) {
		dbCol, ok := allowedMap[jsonField]
		if !ok {
			continue
		}
		val := filter.Filter[jsonField]
		if s, ok := val.(string); ok && strings.Contains(s, ",") {
			builder = builder.Where(sq.Eq{dbCol: strings.Split(s, ",")})
		} else {
			builder = builder.Where(sq.Eq{dbCol: val})
		}
	}
	return builder
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
