package repository

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPageSize is the fixed number of documents per catalogue page.
const DefaultPageSize = 6

// Filter is a built query: the bson filter document plus skip/limit derived
// from the page parameter.
type Filter struct {
	Query bson.M
	Skip  int64
	Limit int64
}

var comparisonOps = map[string]string{
	"gte": "$gte",
	"lte": "$lte",
	"gt":  "$gt",
	"lt":  "$lt",
}

// BuildFilter turns request query parameters into a Filter. Applied in
// order: a case-insensitive substring match on name for `search`, skip/limit
// pagination for `page` (1-indexed), then a pass-through filter for the
// remaining parameters. Shorthand comparison keys of the form
// `price[gte]=10` are rewritten to operator syntax ({price: {$gte: 10}});
// everything else is handed to the database layer unchanged. This is a raw
// parameter pass-through, not a sanitizer.
func BuildFilter(params url.Values, pageSize int64) Filter {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	query := bson.M{}

	if search := params.Get("search"); search != "" {
		query["name"] = primitive.Regex{Pattern: search, Options: "i"}
	}

	page := int64(1)
	if p := params.Get("page"); p != "" {
		if n, err := strconv.ParseInt(p, 10, 64); err == nil && n > 0 {
			page = n
		}
	}

	for key, values := range params {
		if key == "search" || key == "page" || len(values) == 0 {
			continue
		}

		field, op, ok := splitComparison(key)
		if !ok {
			query[key] = coerce(values[0])
			continue
		}

		sub, _ := query[field].(bson.M)
		if sub == nil {
			sub = bson.M{}
		}
		sub[op] = coerce(values[0])
		query[field] = sub
	}

	return Filter{
		Query: query,
		Skip:  pageSize * (page - 1),
		Limit: pageSize,
	}
}

// splitComparison parses keys of the form field[op] where op is one of
// gte, lte, gt, lt.
func splitComparison(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}

	mongoOp, known := comparisonOps[key[open+1:len(key)-1]]
	if !known {
		return "", "", false
	}
	return key[:open], mongoOp, true
}

// coerce converts numeric-looking strings to numbers so range comparisons
// work against numeric fields.
func coerce(value string) interface{} {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
